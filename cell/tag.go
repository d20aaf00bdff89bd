package cell

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Tag identifies the kind of value a cell holds.
type Tag uint8

const (
	TagNull Tag = iota
	TagString
	TagLong
	TagInteger
	TagShort
	TagByte
	TagBoolean
	TagDouble
	TagFloat
	TagBigDecimal
	TagBigInteger
	TagBinary
	TagDate
	TagPoint2D
	TagPoint3D
	TagLatLon
	TagExp      // Expression command
	TagMethod   // Method command
	TagTemplate // Template command

	tagCount
)

// tagNames is the persisted spelling of every tag. Do not change it.
var tagNames = [tagCount]string{
	TagNull:       "null",
	TagString:     "string",
	TagLong:       "long",
	TagInteger:    "integer",
	TagShort:      "short",
	TagByte:       "byte",
	TagBoolean:    "boolean",
	TagDouble:     "double",
	TagFloat:      "float",
	TagBigDecimal: "bigdecimal",
	TagBigInteger: "biginteger",
	TagBinary:     "binary",
	TagDate:       "date",
	TagPoint2D:    "point2d",
	TagPoint3D:    "point3d",
	TagLatLon:     "latlon",
	TagExp:        "exp",
	TagMethod:     "method",
	TagTemplate:   "template",
}

var tagsByName = func() map[string]Tag {
	m := make(map[string]Tag, tagCount+1)
	for t := Tag(0); t < tagCount; t++ {
		m[tagNames[t]] = t
	}
	// Older cube files spell date this way.
	m["datetime"] = TagDate
	return m
}()

// String returns the canonical tag name.
func (t Tag) String() string {
	if t < tagCount {
		return tagNames[t]
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// Valid reports whether t is a member of the registry.
func (t Tag) Valid() bool {
	return t < tagCount
}

// IsCommand reports whether cells of this tag hold a deferred computation.
func (t Tag) IsCommand() bool {
	return t == TagExp || t == TagMethod || t == TagTemplate
}

// AllowsURL reports whether a cell of this tag may be backed by a URL.
func (t Tag) AllowsURL() bool {
	switch t {
	case TagExp, TagMethod, TagTemplate, TagString, TagBinary:
		return true
	}
	return false
}

// Tags returns every registered tag in declaration order.
func Tags() []Tag {
	tags := make([]Tag, 0, tagCount)
	for t := Tag(0); t < tagCount; t++ {
		tags = append(tags, t)
	}
	return tags
}

// ParseTag returns the tag with the given canonical name.
// Unknown names are an error; there is no default.
func ParseTag(name string) (Tag, error) {
	if t, ok := tagsByName[name]; ok {
		return t, nil
	}
	return TagNull, &Error{Kind: ErrUnknownTag, Literal: name, Hint: suggestTag(name)}
}

// parseTagFold is ParseTag ignoring case, used where old writers were loose.
func parseTagFold(name string) (Tag, error) {
	if t, ok := tagsByName[name]; ok {
		return t, nil
	}
	if t, ok := tagsByName[strings.ToLower(name)]; ok {
		return t, nil
	}
	return ParseTag(name)
}

// suggestTag returns the closest registered name, or "" if nothing is close.
func suggestTag(name string) string {
	if name == "" {
		return ""
	}
	names := make([]string, 0, tagCount)
	for t := Tag(0); t < tagCount; t++ {
		names = append(names, tagNames[t])
	}
	ranks := fuzzy.RankFindFold(name, names)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

// MarshalText implements encoding.TextMarshaler.
func (t Tag) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("cell: invalid tag %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tag) UnmarshalText(text []byte) error {
	parsed, err := ParseTag(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON writes TagNull as JSON null and every other tag as its name.
func (t Tag) MarshalJSON() ([]byte, error) {
	if t == TagNull {
		return []byte("null"), nil
	}
	text, err := t.MarshalText()
	if err != nil {
		return nil, err
	}
	return []byte(`"` + string(text) + `"`), nil
}

// UnmarshalJSON reads JSON null as TagNull.
func (t *Tag) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*t = TagNull
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("cell: tag must be a JSON string, got %s", s)
	}
	return t.UnmarshalText([]byte(s[1 : len(s)-1]))
}

// Collapse narrows the tag for presentation contexts that do not
// distinguish numeric widths. It is lossy: never collapse before storing.
//
//	byte, short, integer -> long
//	float                -> double
//	biginteger           -> bigdecimal
func (t Tag) Collapse() Tag {
	switch t {
	case TagByte, TagShort, TagInteger:
		return TagLong
	case TagFloat:
		return TagDouble
	case TagBigInteger:
		return TagBigDecimal
	default:
		return t
	}
}
