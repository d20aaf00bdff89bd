package cell

import (
	"encoding/json"
	"fmt"
)

// Record is the canonical storage and wire form of a cell.
//
// The zero Record is the null cell: no value and TagNull. When URL is true,
// Value holds the URL rather than the content.
type Record struct {
	Value     string
	Type      Tag
	URL       bool
	Cacheable bool
}

// IsNull reports whether r is the null cell.
func (r Record) IsNull() bool {
	return r.Type == TagNull && r.Value == ""
}

// Validate checks the record invariants: nulls are symmetric, the tag is
// registered, and URLs only appear on tags that allow them.
func (r Record) Validate() error {
	if !r.Type.Valid() {
		return &Error{Kind: ErrUnknownTag, Literal: r.Type.String()}
	}
	if r.Type == TagNull && (r.Value != "" || r.URL) {
		return newError(ErrAsymmetricNull, r.Type, r.Value, nil)
	}
	if r.URL && !r.Type.AllowsURL() {
		return newError(ErrInvalidURLTypeCombination, r.Type, r.Value, nil)
	}
	return nil
}

// CollapseToUISupportedTypes returns r with its tag collapsed for display.
// The value is untouched. See Tag.Collapse.
func (r Record) CollapseToUISupportedTypes() Record {
	r.Type = r.Type.Collapse()
	return r
}

// String returns a short debugging form.
func (r Record) String() string {
	if r.IsNull() {
		return "null"
	}
	s := fmt.Sprintf("%s(%q)", r.Type, r.Value)
	if r.URL {
		s += " url"
	}
	if r.Cacheable {
		s += " cached"
	}
	return s
}

// recordJSON is the wire shape of a Record.
type recordJSON struct {
	Value     *string `json:"value"`
	Type      Tag     `json:"type"`
	URL       bool    `json:"isUrl"`
	Cacheable bool    `json:"isCached"`
}

// MarshalJSON writes the null cell as {"value":null,"type":null,...}.
func (r Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{Type: r.Type, URL: r.URL, Cacheable: r.Cacheable}
	if !r.IsNull() {
		v := r.Value
		out.Value = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a record and rejects asymmetric nulls.
func (r *Record) UnmarshalJSON(data []byte) error {
	var in recordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	rec := Record{Type: in.Type, URL: in.URL, Cacheable: in.Cacheable}
	if in.Value != nil {
		rec.Value = *in.Value
	}
	if (in.Value == nil) != (in.Type == TagNull) {
		literal := "null"
		if in.Value != nil {
			literal = *in.Value
		}
		return newError(ErrAsymmetricNull, in.Type, literal, nil)
	}
	if err := rec.Validate(); err != nil {
		return err
	}
	*r = rec
	return nil
}
