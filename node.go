package dtf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// NodeType defines all of the atoms in our universe, or the types of data we
// will encounter while generating a diff
type NodeType uint8

const (
	// NTNull is the absence of a value
	NTNull NodeType = iota
	// NTBool is true or false
	NTBool
	// NTNumber is any numeric value, integer or floating point
	NTNumber
	// NTString is a string of text
	NTString
	// NTArray is an ordered list of values
	NTArray
	// NTObject is an ordered mapping of unique string keys to values
	NTObject
)

// String returns the type name used in type diffs
func (nt NodeType) String() string {
	switch nt {
	case NTNull:
		return "null"
	case NTBool:
		return "bool"
	case NTNumber:
		return "number"
	case NTString:
		return "string"
	case NTArray:
		return "array"
	case NTObject:
		return "object"
	}
	return fmt.Sprintf("NodeType(%d)", uint8(nt))
}

// MarshalText implements encoding.TextMarshaler
func (nt NodeType) MarshalText() ([]byte, error) {
	if nt > NTObject {
		return nil, fmt.Errorf("invalid node type %d", uint8(nt))
	}
	return []byte(nt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (nt *NodeType) UnmarshalText(text []byte) error {
	for t := NTNull; t <= NTObject; t++ {
		if t.String() == string(text) {
			*nt = t
			return nil
		}
	}
	return fmt.Errorf("unknown node type %q", string(text))
}

// Node is a single value in a document tree. JSON and YAML inputs are both
// normalized into Nodes before comparison. Nodes are immutable once built.
// A nil *Node reads as null.
type Node struct {
	t NodeType
	// canonical rendering for scalars
	scalar string
	items  []*Node
	keys   []string
	fields map[string]*Node
}

// Field is a key / value pair used to construct objects
type Field struct {
	Key   string
	Value *Node
}

var (
	nullNode  = &Node{t: NTNull, scalar: "null"}
	trueNode  = &Node{t: NTBool, scalar: "true"}
	falseNode = &Node{t: NTBool, scalar: "false"}
)

// Null returns a null node
func Null() *Node { return nullNode }

// Bool returns a boolean node
func Bool(b bool) *Node {
	if b {
		return trueNode
	}
	return falseNode
}

// Int returns a number node holding an integer
func Int(i int64) *Node {
	return &Node{t: NTNumber, scalar: strconv.FormatInt(i, 10)}
}

// Canonical renderings of the IEEE special values, in YAML core schema form
const (
	posInf = ".inf"
	negInf = "-.inf"
	notNum = ".nan"
)

// maxExactExponent bounds the decimal exponent of literals canonicalized
// exactly. Literals past it are read as float64
const maxExactExponent = 1000

// Float returns a number node. Floats with an integral value render the same
// as the equivalent integer, every digit written out
func Float(f float64) *Node {
	return &Node{t: NTNumber, scalar: formatFloat(f)}
}

// ParseNumber creates a number node from a decimal literal, such as a JSON
// number or a YAML int / float. Literals that denote the same value ("1",
// "1.0", "1e0", "0.1e1") produce nodes with identical canonical renderings.
// YAML's ".inf", "-.inf" and ".nan" are accepted in any letter case
func ParseNumber(lit string) (*Node, error) {
	s, err := canonicalNumber(lit)
	if err != nil {
		return nil, err
	}
	return &Node{t: NTNumber, scalar: s}, nil
}

func canonicalNumber(lit string) (string, error) {
	if s, ok := specialNumber(lit); ok {
		return s, nil
	}
	exp, ok := decimalExponent(lit)
	if !ok {
		return "", fmt.Errorf("invalid number literal %q", lit)
	}
	if exp > maxExactExponent || exp < -maxExactExponent {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return "", fmt.Errorf("invalid number literal %q", lit)
		}
		return formatFloat(f), nil
	}
	r, ok := new(big.Rat).SetString(lit)
	if !ok {
		return "", fmt.Errorf("invalid number literal %q", lit)
	}
	if r.IsInt() {
		return r.Num().String(), nil
	}
	f, _ := r.Float64()
	return formatFloat(f), nil
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return notNum
	case math.IsInf(f, 1):
		return posInf
	case math.IsInf(f, -1):
		return negInf
	case f == math.Trunc(f):
		i, _ := big.NewFloat(f).Int(nil)
		return i.String()
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// specialNumber matches the YAML core spellings of infinity & NaN
func specialNumber(lit string) (string, bool) {
	sign, body := "", lit
	if body != "" && (body[0] == '+' || body[0] == '-') {
		sign, body = body[:1], body[1:]
	}
	switch strings.ToLower(body) {
	case ".inf":
		if sign == "-" {
			return negInf, true
		}
		return posInf, true
	case ".nan":
		if sign == "" {
			return notNum, true
		}
	}
	return "", false
}

// decimalExponent checks lit is an optionally signed decimal with an optional
// fraction and exponent, returning the exponent's value
func decimalExponent(lit string) (int64, bool) {
	i, digits := 0, 0
	if i < len(lit) && (lit[i] == '+' || lit[i] == '-') {
		i++
	}
	for ; i < len(lit) && isDigit(lit[i]); i++ {
		digits++
	}
	if i < len(lit) && lit[i] == '.' {
		for i++; i < len(lit) && isDigit(lit[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if i == len(lit) {
		return 0, true
	}
	if lit[i] != 'e' && lit[i] != 'E' {
		return 0, false
	}
	exp, err := strconv.ParseInt(lit[i+1:], 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		if lit[i+1] == '-' {
			return math.MinInt64, true
		}
		return math.MaxInt64, true
	}
	return exp, err == nil
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// String returns a string node
func String(s string) *Node {
	return &Node{t: NTString, scalar: quote(s)}
}

// Array returns an array node holding items in order. nil items are read as
// null
func Array(items ...*Node) *Node {
	n := &Node{t: NTArray, items: make([]*Node, len(items))}
	for i, it := range items {
		if it == nil {
			it = nullNode
		}
		n.items[i] = it
	}
	return n
}

// Object returns an object node. Key order is preserved. When a key is
// repeated the key keeps its first position and takes the last value
func Object(fields ...Field) *Node {
	n := &Node{
		t:      NTObject,
		keys:   make([]string, 0, len(fields)),
		fields: make(map[string]*Node, len(fields)),
	}
	for _, f := range fields {
		v := f.Value
		if v == nil {
			v = nullNode
		}
		if _, ok := n.fields[f.Key]; !ok {
			n.keys = append(n.keys, f.Key)
		}
		n.fields[f.Key] = v
	}
	return n
}

// FromValue converts a tree of go values created by unmarshaling, such as
// the output of json.Unmarshal into an interface{}, into a Node. Objects built
// from go maps have their keys sorted, go maps carry no order
func FromValue(v interface{}) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return nullNode, nil
	case *Node:
		if x == nil {
			return nullNode, nil
		}
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case json.Number:
		return ParseNumber(x.String())
	case float64:
		return Float(x), nil
	case float32:
		return Float(float64(x)), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return ParseNumber(strconv.FormatUint(uint64(x), 10))
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return ParseNumber(strconv.FormatUint(x, 10))
	case []interface{}:
		items := make([]*Node, len(x))
		for i, el := range x {
			n, err := FromValue(el)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = n
		}
		return Array(items...), nil
	case map[string]interface{}:
		// gotta sort keys, go maps have no order
		names := make([]string, 0, len(x))
		for name := range x {
			names = append(names, name)
		}
		sort.Strings(names)

		fields := make([]Field, len(names))
		for i, name := range names {
			n, err := FromValue(x[name])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			fields[i] = Field{Key: name, Value: n}
		}
		return Object(fields...), nil
	}

	// fall back to reflection for typed slices & maps
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]interface{}, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return FromValue(items)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return FromValue(m)
	}
	return nil, fmt.Errorf("unexpected type: %T", v)
}

// Type returns the type tag of this node
func (n *Node) Type() NodeType {
	if n == nil {
		return NTNull
	}
	return n.t
}

// IsScalar returns true for null, bool, number and string nodes
func (n *Node) IsScalar() bool {
	t := n.Type()
	return t != NTArray && t != NTObject
}

// Keys lists object keys in insertion order. ok is false if n is not an
// object
func (n *Node) Keys() (keys []string, ok bool) {
	if n.Type() != NTObject {
		return nil, false
	}
	return n.keys, true
}

// Field gets the value of an object key. ok is false if n is not an object or
// doesn't define key
func (n *Node) Field(key string) (*Node, bool) {
	if n.Type() != NTObject {
		return nil, false
	}
	v, ok := n.fields[key]
	return v, ok
}

// Items lists array elements in order. ok is false if n is not an array
func (n *Node) Items() (items []*Node, ok bool) {
	if n.Type() != NTArray {
		return nil, false
	}
	return n.items, true
}

// Scalar returns the canonical rendering of a scalar node. ok is false for
// arrays & objects
func (n *Node) Scalar() (string, bool) {
	if n == nil {
		return nullNode.scalar, true
	}
	if !n.IsScalar() {
		return "", false
	}
	return n.scalar, true
}

// Len returns the number of children of an array or object, zero for scalars
func (n *Node) Len() int {
	switch n.Type() {
	case NTArray:
		return len(n.items)
	case NTObject:
		return len(n.keys)
	}
	return 0
}

// String returns the canonical rendering of a node. Scalars render as JSON
// literals, compound values as compact JSON with object keys sorted, so the
// rendering of a value never depends on how its source document was laid out
func (n *Node) String() string {
	if n.IsScalar() {
		s, _ := n.Scalar()
		return s
	}
	buf := &bytes.Buffer{}
	n.writeCanonical(buf)
	return buf.String()
}

func (n *Node) writeCanonical(buf *bytes.Buffer) {
	switch n.Type() {
	case NTArray:
		buf.WriteByte('[')
		for i, it := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			it.writeCanonical(buf)
		}
		buf.WriteByte(']')
	case NTObject:
		keys := make([]string, len(n.keys))
		copy(keys, n.keys)
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(quote(k))
			buf.WriteByte(':')
			n.fields[k].writeCanonical(buf)
		}
		buf.WriteByte('}')
	default:
		s, _ := n.Scalar()
		buf.WriteString(s)
	}
}

// Equal reports whether two nodes have identical canonical renderings
func (n *Node) Equal(o *Node) bool {
	if n.Type() != o.Type() {
		return false
	}
	if n.IsScalar() {
		a, _ := n.Scalar()
		b, _ := o.Scalar()
		return a == b
	}
	return n.String() == o.String()
}

// Count returns the number of nodes in the tree rooted at n, including n
func (n *Node) Count() int {
	count := 1
	switch n.Type() {
	case NTArray:
		for _, it := range n.items {
			count += it.Count()
		}
	case NTObject:
		for _, k := range n.keys {
			count += n.fields[k].Count()
		}
	}
	return count
}

// MarshalJSON writes a node as JSON, keeping object keys in insertion order
func (n *Node) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	n.writeOrdered(buf)
	return buf.Bytes(), nil
}

func (n *Node) writeOrdered(buf *bytes.Buffer) {
	switch n.Type() {
	case NTArray:
		buf.WriteByte('[')
		for i, it := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			it.writeOrdered(buf)
		}
		buf.WriteByte(']')
	case NTObject:
		buf.WriteByte('{')
		for i, k := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(quote(k))
			buf.WriteByte(':')
			n.fields[k].writeOrdered(buf)
		}
		buf.WriteByte('}')
	default:
		s, _ := n.Scalar()
		if n.Type() == NTNumber && !isJSONNumber(s) {
			// NaN & infinities have no JSON form
			s = quote(s)
		}
		buf.WriteString(s)
	}
}

func isJSONNumber(s string) bool {
	return s != notNum && s != posInf && s != negInf
}

// quote renders s as a JSON string literal without HTML escaping
func quote(s string) string {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// encoding a string can't fail
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
