package cell

import "fmt"

// decodeLegacyArray decodes an array cell element by element against the
// same type.
//
// Deprecated: array cells are only found in old cube files. Current writers
// use an expression that builds the list instead. Do not route new shapes
// through here.
func (d *Decoder) decodeLegacyArray(typ string, items []any) ([]any, error) {
	out := make([]any, len(items))
	for i, item := range items {
		v, err := d.Decode(item, "", typ, false)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
