package cell

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// ============================================================
// n-cube simple JSON cell bridge
// ============================================================
//
// Cube files store a cell as
//
//	{"type":"long","value":42}
//	{"type":"exp","url":"http://host/exp.groovy","cache":true}
//
// Numbers are read with UseNumber so integral values stay integral and
// reach the decoder as int64 rather than float64.

// JSONCell is the on-disk shape of one cell.
type JSONCell struct {
	Type  string          `json:"type,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
	URL   string          `json:"url,omitempty"`
	Cache bool            `json:"cache,omitempty"`
}

// FromJSON decodes one JSON cell object into a runtime value.
func (d *Decoder) FromJSON(data []byte) (any, error) {
	var c JSONCell
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("cell: JSON parse error: %w", err)
	}
	return d.FromJSONCell(c)
}

// FromJSON is Decoder.FromJSON on a default Decoder.
func FromJSON(data []byte) (any, error) {
	return defaultDecoder.FromJSON(data)
}

// FromJSONCell decodes an already unmarshalled cell object.
func (d *Decoder) FromJSONCell(c JSONCell) (any, error) {
	var raw any
	if len(c.Value) > 0 {
		var err error
		raw, err = RawFromJSON(c.Value)
		if err != nil {
			return nil, err
		}
	}
	return d.Decode(raw, c.URL, c.Type, c.Cache)
}

// RawFromJSON converts one JSON value into the raw shapes Decode accepts:
// nil, bool, string, int64, json.Number or []any. Numbers that do not fit an
// int64 stay as json.Number so the cell type decides how to read them.
func RawFromJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("cell: JSON parse error: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("cell: JSON parse error: trailing data after value")
	}
	return fromJSONValue(v), nil
}

func fromJSONValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		return val
	case []any:
		items := make([]any, len(val))
		for i, elem := range val {
			items[i] = fromJSONValue(elem)
		}
		return items
	default:
		// Objects are not a cell value shape; let Decode name the type.
		return val
	}
}

// ToJSONCell converts a runtime value into its JSON cell object. Scalar
// values are written as canonical text so that every type round-trips
// through FromJSONCell.
func ToJSONCell(v any) (JSONCell, error) {
	rec, err := Encode(v)
	if err != nil {
		return JSONCell{}, err
	}
	if rec.IsNull() {
		return JSONCell{Value: json.RawMessage("null")}, nil
	}
	c := JSONCell{Type: rec.Type.String(), Cache: rec.Cacheable}
	if rec.URL {
		c.URL = rec.Value
		return c, nil
	}
	value, err := json.Marshal(rec.Value)
	if err != nil {
		return JSONCell{}, err
	}
	c.Value = value
	return c, nil
}
