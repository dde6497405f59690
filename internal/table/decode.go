package table

import (
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
)

// FromJSON decodes a record set. Three shapes are accepted:
//
//	[{"a":1,"b":2},{"a":3}]   array of row objects, missing cells are null
//	{"a":[1,3],"b":[2,4]}      object of equally long column arrays
//	{"a":1,"b":2}              object of scalars, a single row
//
// Scalars next to column arrays are repeated on every row. Column order
// follows first appearance in the document.
func FromJSON(data []byte) (*Table, error) {
	if !json.Valid(data) {
		return nil, ErrMalformedJSON
	}

	_, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}

	switch dataType {
	case jsonparser.Array:
		return fromRecords(data)
	case jsonparser.Object:
		return fromObject(data)
	default:
		return nil, fmt.Errorf("%w: got %s", ErrNotRecordSet, dataType)
	}
}

func fromRecords(data []byte) (*Table, error) {
	var (
		order   []string
		seen    = map[string]bool{}
		records []map[string]any
		failure error
	)

	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if failure != nil {
			return
		}
		if err != nil {
			failure = err
			return
		}
		if dataType != jsonparser.Object {
			failure = fmt.Errorf("%w: row %d is %s, not an object", ErrNotRecordSet, len(records), dataType)
			return
		}

		record := map[string]any{}
		failure = jsonparser.ObjectEach(value, func(key, v []byte, vt jsonparser.ValueType, _ int) error {
			name := string(key)
			cell, err := decodeValue(v, vt)
			if err != nil {
				return err
			}
			if !seen[name] {
				seen[name] = true
				order = append(order, name)
			}
			record[name] = cell
			return nil
		})
		records = append(records, record)
	})
	if failure != nil {
		return nil, failure
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}

	t := New(order...)
	if len(order) == 0 {
		return t, nil
	}
	for _, record := range records {
		row := make([]any, len(order))
		for i, name := range order {
			row[i] = record[name]
		}
		if err := t.AppendRow(row...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func fromObject(data []byte) (*Table, error) {
	type entry struct {
		name   string
		values []any
		scalar any
		isList bool
	}

	var entries []entry
	rows := -1

	err := jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		name := string(key)

		if dataType != jsonparser.Array {
			cell, err := decodeValue(value, dataType)
			if err != nil {
				return err
			}
			entries = append(entries, entry{name: name, scalar: cell})
			return nil
		}

		values := []any{}
		var failure error
		_, err := jsonparser.ArrayEach(value, func(v []byte, vt jsonparser.ValueType, _ int, err error) {
			if failure != nil {
				return
			}
			if err != nil {
				failure = err
				return
			}
			cell, err := decodeValue(v, vt)
			if err != nil {
				failure = err
				return
			}
			values = append(values, cell)
		})
		if failure != nil {
			return failure
		}
		if err != nil {
			return err
		}

		if rows >= 0 && len(values) != rows {
			return fmt.Errorf("%w: column %q has %d values, expected %d", ErrColumnLength, name, len(values), rows)
		}
		rows = len(values)
		entries = append(entries, entry{name: name, values: values, isList: true})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if rows < 0 {
		rows = 1
	}

	t := New()
	for _, e := range entries {
		if _, dup := t.index[e.name]; dup {
			continue
		}
		values := e.values
		if !e.isList {
			values = make([]any, rows)
			for i := range values {
				values[i] = e.scalar
			}
		}
		if err := t.AddColumn(e.name, values); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// decodeValue maps a raw JSON value onto a Go value that encodes back to the
// same JSON. Numbers stay json.Number so integers survive the round trip.
func decodeValue(value []byte, dataType jsonparser.ValueType) (any, error) {
	switch dataType {
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Number:
		return json.Number(string(value)), nil
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	case jsonparser.Null:
		return nil, nil
	case jsonparser.Object, jsonparser.Array:
		return json.RawMessage(append([]byte(nil), value...)), nil
	default:
		return nil, fmt.Errorf("%w: unexpected %s value", ErrMalformedJSON, dataType)
	}
}
