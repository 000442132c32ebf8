package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/qri-io/dtf"
)

// JSON parses a JSON document. Object keys keep document order, numbers keep
// their literal precision until canonicalized by dtf.ParseNumber
func JSON(data []byte) (*dtf.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	n, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid json: unexpected data after document at offset %d", dec.InputOffset())
	}
	return requireObject(n)
}

func decodeValue(dec *json.Decoder) (*dtf.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch t := tok.(type) {
	case nil:
		return dtf.Null(), nil
	case bool:
		return dtf.Bool(t), nil
	case string:
		return dtf.String(t), nil
	case json.Number:
		return dtf.ParseNumber(t.String())
	case json.Delim:
		switch t {
		case '[':
			var items []*dtf.Node
			for dec.More() {
				it, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, it)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return dtf.Array(items...), nil
		case '{':
			var fields []dtf.Field
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", key, err)
				}
				fields = append(fields, dtf.Field{Key: key, Value: v})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return dtf.Object(fields...), nil
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}
