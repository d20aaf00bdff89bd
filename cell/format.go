package cell

import (
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DateLayout is the fixed date rendering, yyyy-MM-dd HH:mm:ss.
const DateLayout = "2006-01-02 15:04:05"

// NullDisplay is what a null cell shows as.
const NullDisplay = "Default"

// maxFractionDigits matches the #,##0.0############## pattern cells have
// always been rendered with.
const maxFractionDigits = 15

// Grouping is always English so output does not depend on the host locale.
var printer = message.NewPrinter(language.English)

// FormatForDisplay renders v for people to read. Numbers are grouped by
// thousands, dates use DateLayout, and nil is NullDisplay.
func FormatForDisplay(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return NullDisplay, nil
	case time.Time:
		return val.Format(DateLayout), nil
	case float64:
		return displayFloat(val), nil
	case float32:
		return displayFloat(float64(val)), nil
	case decimal.Decimal:
		return displayDecimal(val)
	case int64, int32, int16, int8, int:
		return printer.Sprintf("%d", val), nil
	case *big.Int:
		if val == nil {
			return NullDisplay, nil
		}
		return groupDigits(val.String()), nil
	default:
		return naturalText(v), nil
	}
}

// FormatForEditing renders v in a form that parses back to the same value.
func FormatForEditing(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format(DateLayout)
	case float64:
		return editFloat(val)
	case float32:
		return editFloat(float64(val))
	case decimal.Decimal:
		return val.String()
	default:
		return naturalText(v)
	}
}

// editFloat starts from the shortest decimal that reads back as f, rounds
// it half-even to maxFractionDigits and keeps at least one fraction digit.
// float32 values are widened first, so 1.1f shows as 1.100000023841858.
func editFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := decimal.NewFromFloat(f).RoundBank(maxFractionDigits).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func displayFloat(f float64) string {
	s := editFloat(f)
	whole, frac, ok := strings.Cut(s, ".")
	if !ok {
		return s
	}
	return groupDigits(whole) + "." + frac
}

// displayDecimal groups the integer part only and keeps the fraction as is.
func displayDecimal(d decimal.Decimal) (string, error) {
	s := d.String()
	if !strings.Contains(s, ".") {
		return groupDigits(s), nil
	}
	pieces := strings.Split(s, ".")
	if len(pieces) != 2 {
		return "", &Error{Kind: ErrInvalidDecimalShape, Tag: TagBigDecimal.String(), Literal: s}
	}
	return groupDigits(pieces[0]) + "." + pieces[1], nil
}

// groupDigits inserts thousands separators into an optionally signed run of
// decimal digits. Used for values wider than int64.
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
		if sign == "+" {
			sign = ""
		}
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.Grow(len(sign) + len(s) + len(s)/3)
	b.WriteString(sign)
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// naturalText is the plain text form of values with no special rule.
func naturalText(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return strings.ToUpper(hex.EncodeToString(val))
	case Command:
		if val.URL() != "" {
			return val.URL()
		}
		return val.Cmd()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}
