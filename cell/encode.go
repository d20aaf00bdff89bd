package cell

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Encode converts a runtime value to its canonical record.
//
// The accepted Go types are listed on Tag's constants: string, int64 (or
// int), int32, int16, int8, bool, float64, float32, decimal.Decimal,
// *big.Int, []byte, time.Time, Point2D, Point3D, LatLon and the Command
// variants. nil encodes as the null record. Anything else fails with
// ErrUnrecognizedValueType.
//
// Dates are written as UTC wall-clock time with no zone.
func Encode(v any) (Record, error) {
	switch val := v.(type) {
	case nil:
		return Record{}, nil
	case string:
		return Record{Value: val, Type: TagString}, nil
	case int64:
		return Record{Value: strconv.FormatInt(val, 10), Type: TagLong}, nil
	case int:
		return Record{Value: strconv.Itoa(val), Type: TagLong}, nil
	case int32:
		return Record{Value: strconv.FormatInt(int64(val), 10), Type: TagInteger}, nil
	case int16:
		return Record{Value: strconv.FormatInt(int64(val), 10), Type: TagShort}, nil
	case int8:
		return Record{Value: strconv.FormatInt(int64(val), 10), Type: TagByte}, nil
	case bool:
		return Record{Value: strconv.FormatBool(val), Type: TagBoolean}, nil
	case float64:
		return Record{Value: FormatForEditing(val), Type: TagDouble}, nil
	case float32:
		return Record{Value: FormatForEditing(val), Type: TagFloat}, nil
	case decimal.Decimal:
		return Record{Value: val.String(), Type: TagBigDecimal}, nil
	case *big.Int:
		if val == nil {
			return Record{}, nil
		}
		return Record{Value: val.String(), Type: TagBigInteger}, nil
	case []byte:
		return Record{Value: strings.ToUpper(hex.EncodeToString(val)), Type: TagBinary}, nil
	case time.Time:
		return Record{Value: val.UTC().Format(DateLayout), Type: TagDate}, nil
	case Point2D:
		return Record{Value: val.String(), Type: TagPoint2D}, nil
	case Point3D:
		return Record{Value: val.String(), Type: TagPoint3D}, nil
	case LatLon:
		return Record{Value: val.String(), Type: TagLatLon}, nil
	case Command:
		return encodeCommand(val), nil
	default:
		return Record{}, &Error{
			Kind:    ErrUnrecognizedValueType,
			Literal: fmt.Sprintf("%v (%T)", v, v),
		}
	}
}

// encodeCommand stores the URL for URL-backed commands and the body otherwise.
func encodeCommand(c Command) Record {
	rec := Record{Type: c.Tag(), Cacheable: c.Cacheable()}
	if url := c.URL(); url != "" {
		rec.Value = url
		rec.URL = true
	} else {
		rec.Value = c.Cmd()
	}
	return rec
}

// TagOf returns the tag v would be encoded under.
func TagOf(v any) (Tag, error) {
	rec, err := Encode(v)
	if err != nil {
		return TagNull, err
	}
	return rec.Type, nil
}
