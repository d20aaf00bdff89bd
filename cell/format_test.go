package cell

import (
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForDisplay(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "Default"},
		{"string", "plain", "plain"},
		{"double", 1234.5, "1,234.5"},
		{"double_whole", 1000000.0, "1,000,000.0"},
		{"double_small", 0.25, "0.25"},
		{"double_inexact", 19.99, "19.99"},
		{"double_inexact_grouped", 1234.56, "1,234.56"},
		{"double_millions", 1234567.891, "1,234,567.891"},
		{"double_negative", -1234.5, "-1,234.5"},
		{"double_long_fraction", 0.30000000000000004, "0.3"},
		{"float", float32(2.5), "2.5"},
		{"float_widened", float32(1.1), "1.100000023841858"},
		{"long", int64(1234567), "1,234,567"},
		{"int_negative", -1234, "-1,234"},
		{"short", int16(999), "999"},
		{"decimal", decimal.RequireFromString("1234.500"), "1,234.5"},
		{"decimal_negative", decimal.RequireFromString("-9876543.21"), "-9,876,543.21"},
		{"decimal_whole", decimal.RequireFromString("1000"), "1,000"},
		{"biginteger", new(big.Int).Lsh(big.NewInt(1), 70), "1,180,591,620,717,411,303,424"},
		{"date", time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC), "2024-03-01 10:20:30"},
		{"binary", []byte{0xde, 0xad}, "DEAD"},
		{"bool", true, "true"},
		{"latlon", LatLon{45, -122}, "45, -122"},
		{"exp", NewExpression("a + b", "", true), "a + b"},
		{"url", NewStringURL("http://host/s", false), "http://host/s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatForDisplay(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatForEditing(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"double", 1234567.5, "1234567.5"},
		{"double_whole", 3.0, "3.0"},
		{"double_inexact", 19.99, "19.99"},
		{"double_grouping_free", 1234567.891, "1234567.891"},
		{"double_tiny", 1e-20, "0.0"},
		{"float", float32(0.5), "0.5"},
		{"decimal", decimal.RequireFromString("1234567.8900"), "1234567.89"},
		{"long", int64(1234567), "1234567"},
		{"date", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "2024-03-01 00:00:00"},
		{"point3d", Point3D{1, 2, 3}, "1, 2, 3"},
		{"method_url", NewMethod("", "http://host/m", true), "http://host/m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatForEditing(tt.value))
		})
	}
}

func TestFormatForEditing_ParsesBack(t *testing.T) {
	for _, f := range []float64{0.1, -17.75, 123456789.125, 1e-5, 19.99, 1234.56, 1234567.891} {
		got, err := DecodeValue("double", FormatForEditing(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
}

func TestEncode_FloatText(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{19.99, "19.99"},
		{1234.56, "1234.56"},
		{1234567.891, "1234567.891"},
		{float32(1.1), "1.100000023841858"},
	}
	for _, tt := range tests {
		rec, err := Encode(tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, rec.Value)

		back, err := DecodeRecord(rec)
		require.NoError(t, err)
		assert.Equal(t, tt.value, back)
	}
}

func TestGroupDigits(t *testing.T) {
	tests := map[string]string{
		"":         "",
		"1":        "1",
		"123":      "123",
		"1234":     "1,234",
		"-123456":  "-123,456",
		"+1234567": "1,234,567",
	}
	for in, want := range tests {
		assert.Equal(t, want, groupDigits(in), "groupDigits(%q)", in)
	}
}
