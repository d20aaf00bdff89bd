package cell

import (
	"time"

	"github.com/araddon/dateparse"
)

// DateParser turns free-form date text into a time. loc is the zone assumed
// when the text carries none.
type DateParser func(text string, loc *time.Location) (time.Time, error)

// Option configures a Decoder.
type Option func(*Decoder)

// WithDateParser replaces the permissive default date parser.
func WithDateParser(p DateParser) Option {
	return func(d *Decoder) {
		d.parseDate = p
	}
}

// WithLocation sets the zone for dates that do not name one (default UTC).
func WithLocation(loc *time.Location) Option {
	return func(d *Decoder) {
		if loc != nil {
			d.loc = loc
		}
	}
}

// ParseDate is the default DateParser. It accepts most common date and
// date-time layouts.
func ParseDate(text string, loc *time.Location) (time.Time, error) {
	return dateparse.ParseIn(text, loc)
}
