package cell

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// nullLiteral is the string some writers use in place of JSON null.
const nullLiteral = "null"

var hexPattern = regexp.MustCompile(`^[0-9a-fA-F]+$`)

// Decoder rebuilds runtime values from canonical text or decoded JSON.
// The zero value is not usable; call NewDecoder.
type Decoder struct {
	parseDate DateParser
	loc       *time.Location
}

// NewDecoder returns a Decoder with the given options applied.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{parseDate: ParseDate, loc: time.UTC}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDecoder = NewDecoder()

// Decode is Decoder.Decode on a default Decoder.
func Decode(raw any, url, typ string, cacheable bool) (any, error) {
	return defaultDecoder.Decode(raw, url, typ, cacheable)
}

// DecodeValue is Decoder.DecodeValue on a default Decoder.
func DecodeValue(typ string, raw any) (any, error) {
	return defaultDecoder.DecodeValue(typ, raw)
}

// DecodeRecord is Decoder.DecodeRecord on a default Decoder.
func DecodeRecord(r Record) (any, error) {
	return defaultDecoder.DecodeRecord(r)
}

// Decode rebuilds a cell value. When url is non-empty the result is a
// URL-backed command of the requested type and raw is ignored; only exp,
// method, template, string and binary may carry a URL. Otherwise raw is
// decoded by DecodeValue.
func (d *Decoder) Decode(raw any, url, typ string, cacheable bool) (any, error) {
	if url == "" {
		return d.DecodeValue(typ, raw)
	}
	tag, err := parseTagFold(typ)
	if err != nil || !tag.AllowsURL() {
		return nil, &Error{Kind: ErrInvalidURLTypeCombination, Tag: typ, Literal: url}
	}
	switch tag {
	case TagExp:
		return NewExpression("", url, cacheable), nil
	case TagMethod:
		return NewMethod("", url, cacheable), nil
	case TagTemplate:
		return NewTemplate("", url, cacheable), nil
	case TagString:
		return NewStringURL(url, cacheable), nil
	default: // TagBinary
		return NewBinaryURL(url, cacheable), nil
	}
}

// DecodeRecord decodes a canonical record. Dates are read as UTC, the zone
// Encode writes them in.
func (d *Decoder) DecodeRecord(r Record) (any, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.IsNull() {
		return nil, nil
	}
	if r.URL {
		return d.Decode(nil, r.Value, r.Type.String(), r.Cacheable)
	}
	if r.Type == TagDate && r.Value != nullLiteral {
		// Record dates are UTC whatever zone the decoder assumes for input.
		t, err := d.parseDate(strings.TrimSpace(r.Value), time.UTC)
		if err != nil {
			return nil, &Error{Kind: ErrDateParse, Tag: r.Type.String(), Literal: r.Value, Cause: err}
		}
		return t, nil
	}
	v, err := d.DecodeValue(r.Type.String(), r.Value)
	if err != nil {
		return nil, err
	}
	// Inline commands keep the record's cache flag.
	switch c := v.(type) {
	case *Expression:
		c.cacheable = r.Cacheable
	case *Method:
		c.cacheable = r.Cacheable
	case *Template:
		c.cacheable = r.Cacheable
	}
	return v, nil
}

// DecodeValue rebuilds a value from raw, which is either canonical text or
// a scalar already decoded from JSON. typ is a tag name; "" means the type
// is not known.
//
// Numbers and booleans that arrive already decoded are narrowed or widened
// only when typ asks for it. Text is trimmed and parsed according to typ.
// A nil raw value, or the text "null", decodes to nil for every type.
func (d *Decoder) DecodeValue(typ string, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	if s, ok := raw.(string); ok && s == nullLiteral {
		return nil, nil
	}

	tag := TagNull
	if typ != "" {
		t, err := ParseTag(typ)
		if err != nil {
			return nil, err
		}
		tag = t
	}

	switch val := raw.(type) {
	case float64:
		return fromDouble(tag, val), nil
	case float32:
		return fromDouble(tag, float64(val)), nil
	case int64:
		return fromLong(tag, val), nil
	case int:
		return fromLong(tag, int64(val)), nil
	case int32:
		return fromLong(tag, int64(val)), nil
	case json.Number:
		return fromNumber(tag, val)
	case bool:
		return val, nil
	case string:
		return d.fromText(typ, tag, strings.TrimSpace(val))
	case []any:
		return d.decodeLegacyArray(typ, val)
	default:
		return nil, &Error{
			Kind:    ErrUnsupportedRawShape,
			Tag:     typ,
			Literal: fmt.Sprintf("%T", raw),
		}
	}
}

// fromDouble converts a floating JSON number. Only float and bigdecimal
// change the representation.
func fromDouble(tag Tag, f float64) any {
	switch tag {
	case TagBigDecimal:
		return decimal.NewFromFloat(f)
	case TagFloat:
		return float32(f)
	default:
		return f
	}
}

// fromNumber converts a JSON number still held as text. biginteger and
// bigdecimal read the text exactly. An integer wider than int64 becomes a
// *big.Int when the type is unknown and is an error for the narrower
// integral types.
func fromNumber(tag Tag, n json.Number) (any, error) {
	s := n.String()
	switch tag {
	case TagBigInteger:
		if b, ok := new(big.Int).SetString(s, 10); ok {
			return b, nil
		}
	case TagBigDecimal:
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, newError(ErrNumberParse, tag, s, err)
		}
		return d, nil
	}
	if i, err := n.Int64(); err == nil {
		return fromLong(tag, i), nil
	}
	if !strings.ContainsAny(s, ".eE") {
		switch tag {
		case TagDouble, TagFloat:
		case TagNull:
			if b, ok := new(big.Int).SetString(s, 10); ok {
				return b, nil
			}
		default:
			return nil, newError(ErrNumberParse, tag, s, errIntegerRange)
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, newError(ErrNumberParse, tag, s, err)
	}
	return fromDouble(tag, f), nil
}

var errIntegerRange = errors.New("integer out of range")

// fromLong converts an integral JSON number. Narrowing truncates the way a
// Java cast does.
func fromLong(tag Tag, n int64) any {
	switch tag {
	case TagInteger:
		return int32(n)
	case TagBigInteger:
		return big.NewInt(n)
	case TagByte:
		return int8(n)
	case TagShort:
		return int16(n)
	case TagBigDecimal:
		return decimal.NewFromInt(n)
	default:
		return n
	}
}

// fromText parses trimmed canonical text. Every tag is handled explicitly.
func (d *Decoder) fromText(typ string, tag Tag, s string) (any, error) {
	if typ == "" {
		return s, nil
	}
	switch tag {
	case TagString:
		return s, nil
	case TagBoolean:
		switch {
		case strings.EqualFold(s, "true"):
			return true, nil
		case strings.EqualFold(s, "false"):
			return false, nil
		}
		return nil, newError(ErrInvalidBooleanLiteral, tag, s, nil)
	case TagByte:
		n, err := strconv.ParseInt(s, 10, 8)
		if err != nil {
			return nil, newError(ErrNumberParse, tag, s, err)
		}
		return int8(n), nil
	case TagShort:
		n, err := strconv.ParseInt(s, 10, 16)
		if err != nil {
			return nil, newError(ErrNumberParse, tag, s, err)
		}
		return int16(n), nil
	case TagInteger:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, newError(ErrNumberParse, tag, s, err)
		}
		return int32(n), nil
	case TagLong:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, newError(ErrNumberParse, tag, s, err)
		}
		return n, nil
	case TagDouble:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, newError(ErrNumberParse, tag, s, err)
		}
		return f, nil
	case TagFloat:
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, newError(ErrNumberParse, tag, s, err)
		}
		return float32(f), nil
	case TagBigInteger:
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, newError(ErrNumberParse, tag, s, nil)
		}
		return n, nil
	case TagBigDecimal:
		n, err := decimal.NewFromString(s)
		if err != nil {
			return nil, newError(ErrNumberParse, tag, s, err)
		}
		return n, nil
	case TagDate:
		t, err := d.parseDate(s, d.loc)
		if err != nil {
			return nil, &Error{Kind: ErrDateParse, Tag: typ, Literal: s, Cause: err}
		}
		return t, nil
	case TagBinary:
		return parseHex(s)
	case TagPoint2D:
		return ParsePoint2D(s)
	case TagPoint3D:
		return ParsePoint3D(s)
	case TagLatLon:
		return ParseLatLon(s)
	case TagExp:
		return NewExpression(s, "", true), nil
	case TagMethod:
		return NewMethod(s, "", true), nil
	case TagTemplate:
		return NewTemplate(s, "", true), nil
	case TagNull:
		return nil, newError(ErrAsymmetricNull, tag, s, nil)
	}
	return nil, &Error{Kind: ErrUnknownTag, Literal: typ}
}

// parseHex decodes binary cell text such as "10AF3F".
func parseHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, newError(ErrMalformedBinaryLiteral, TagBinary, s,
			fmt.Errorf("hex values must have an even number of digits"))
	}
	if !hexPattern.MatchString(s) {
		return nil, newError(ErrMalformedBinaryLiteral, TagBinary, s,
			fmt.Errorf("hex values may only contain 0-9 and A-F"))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, newError(ErrMalformedBinaryLiteral, TagBinary, s, err)
	}
	return b, nil
}
