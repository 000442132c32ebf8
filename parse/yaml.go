package parse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/qri-io/dtf"
	"gopkg.in/yaml.v3"
)

const (
	tagNull  = "!!null"
	tagBool  = "!!bool"
	tagInt   = "!!int"
	tagFloat = "!!float"
	tagStr   = "!!str"
	tagMerge = "!!merge"
)

// YAML parses the first document of a YAML stream. Aliases are expanded and
// "<<" merge keys are applied, keys defined in the mapping itself win over
// merged ones
func YAML(data []byte) (*dtf.Node, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrEmptyDocument
	}

	n, err := convertYAML(doc.Content[0], 0)
	if err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return requireObject(n)
}

// maxAliasDepth bounds alias expansion, guarding against self referencing
// documents
const maxAliasDepth = 64

func convertYAML(yn *yaml.Node, aliasDepth int) (*dtf.Node, error) {
	switch yn.Kind {
	case yaml.AliasNode:
		if aliasDepth >= maxAliasDepth || yn.Alias == nil {
			return nil, fmt.Errorf("line %d: alias %q nests too deeply", yn.Line, yn.Value)
		}
		return convertYAML(yn.Alias, aliasDepth+1)
	case yaml.ScalarNode:
		return yamlScalar(yn)
	case yaml.SequenceNode:
		items := make([]*dtf.Node, len(yn.Content))
		for i, c := range yn.Content {
			it, err := convertYAML(c, aliasDepth)
			if err != nil {
				return nil, err
			}
			items[i] = it
		}
		return dtf.Array(items...), nil
	case yaml.MappingNode:
		fields, err := yamlFields(yn, aliasDepth)
		if err != nil {
			return nil, err
		}
		return dtf.Object(fields...), nil
	case yaml.DocumentNode:
		if len(yn.Content) == 0 {
			return dtf.Null(), nil
		}
		return convertYAML(yn.Content[0], aliasDepth)
	}
	return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", yn.Line, yn.Kind)
}

func yamlFields(yn *yaml.Node, aliasDepth int) ([]dtf.Field, error) {
	var (
		fields []dtf.Field
		merged []dtf.Field
		own    = map[string]bool{}
	)

	for i := 0; i+1 < len(yn.Content); i += 2 {
		k, v := yn.Content[i], yn.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == tagMerge {
			mf, err := mergeFields(v, aliasDepth)
			if err != nil {
				return nil, err
			}
			merged = append(merged, mf...)
			continue
		}

		key, err := yamlKey(k)
		if err != nil {
			return nil, err
		}
		val, err := convertYAML(v, aliasDepth)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		own[key] = true
		fields = append(fields, dtf.Field{Key: key, Value: val})
	}

	for _, f := range merged {
		if !own[f.Key] {
			own[f.Key] = true
			fields = append(fields, f)
		}
	}
	return fields, nil
}

// mergeFields resolves the value of a "<<" key, a mapping or a sequence of
// mappings. earlier mappings in a sequence take precedence
func mergeFields(v *yaml.Node, aliasDepth int) ([]dtf.Field, error) {
	for v.Kind == yaml.AliasNode {
		if aliasDepth >= maxAliasDepth || v.Alias == nil {
			return nil, fmt.Errorf("line %d: merge alias nests too deeply", v.Line)
		}
		v = v.Alias
		aliasDepth++
	}

	switch v.Kind {
	case yaml.MappingNode:
		return yamlFields(v, aliasDepth)
	case yaml.SequenceNode:
		var (
			fields []dtf.Field
			seen   = map[string]bool{}
		)
		for _, c := range v.Content {
			mf, err := mergeFields(c, aliasDepth)
			if err != nil {
				return nil, err
			}
			for _, f := range mf {
				if !seen[f.Key] {
					seen[f.Key] = true
					fields = append(fields, f)
				}
			}
		}
		return fields, nil
	}
	return nil, fmt.Errorf("line %d: merge value must be a mapping", v.Line)
}

// yamlKey renders a mapping key as a string. documents compared by dtf key
// objects by string, so scalar keys of any type use their source text
func yamlKey(k *yaml.Node) (string, error) {
	for k.Kind == yaml.AliasNode && k.Alias != nil {
		k = k.Alias
	}
	if k.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
	}
	return k.Value, nil
}

func yamlScalar(yn *yaml.Node) (*dtf.Node, error) {
	switch yn.ShortTag() {
	case tagNull:
		return dtf.Null(), nil
	case tagBool:
		var b bool
		if err := yn.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", yn.Line, err)
		}
		return dtf.Bool(b), nil
	case tagInt:
		var i int64
		if err := yn.Decode(&i); err == nil {
			return dtf.Int(i), nil
		}
		// out of int64 range
		return intLiteral(yn)
	case tagFloat:
		if n, err := numberLiteral(yn); err == nil {
			return n, nil
		}
		var f float64
		if err := yn.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", yn.Line, err)
		}
		return dtf.Float(f), nil
	case tagStr:
		return dtf.String(yn.Value), nil
	}
	// custom tags: keep the text
	return dtf.String(yn.Value), nil
}

// intLiteral reads integers in any base YAML allows: decimal, 0x hex, 0o or
// 0 octal, 0b binary
func intLiteral(yn *yaml.Node) (*dtf.Node, error) {
	lit := strings.ReplaceAll(yn.Value, "_", "")
	if i, ok := new(big.Int).SetString(lit, 0); ok {
		return dtf.ParseNumber(i.String())
	}
	return numberLiteral(yn)
}

func numberLiteral(yn *yaml.Node) (*dtf.Node, error) {
	lit := strings.ReplaceAll(yn.Value, "_", "")
	n, err := dtf.ParseNumber(lit)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", yn.Line, err)
	}
	return n, nil
}
