package cell

import (
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want any
	}{
		{"long", `{"type":"long","value":42}`, int64(42)},
		{"integer_narrowed", `{"type":"integer","value":42}`, int32(42)},
		{"double", `{"type":"double","value":1.5}`, 1.5},
		{"untyped_number", `{"value":3}`, int64(3)},
		{"text_long", `{"type":"long","value":"42"}`, int64(42)},
		{"bool", `{"type":"boolean","value":true}`, true},
		{"latlon", `{"type":"latlon","value":"45.0, -122.0"}`, LatLon{45, -122}},
		{"null", `{"type":"string","value":null}`, nil},
		{"missing_value", `{"type":"string"}`, nil},
		{"array", `{"type":"short","value":[1,"2"]}`, []any{int16(1), int16(2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromJSON([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromJSON_URL(t *testing.T) {
	v, err := FromJSON([]byte(`{"type":"method","url":"http://host/m.groovy","cache":true}`))
	require.NoError(t, err)
	m, ok := v.(*Method)
	require.True(t, ok, "got %T", v)
	assert.Equal(t, "http://host/m.groovy", m.URL())
	assert.True(t, m.Cacheable())

	_, err = FromJSON([]byte(`{"type":"double","url":"http://host/x"}`))
	assert.ErrorIs(t, err, ErrInvalidURLTypeCombination)
}

func TestFromJSON_Errors(t *testing.T) {
	_, err := FromJSON([]byte(`{"type":`))
	assert.Error(t, err)

	_, err = FromJSON([]byte(`{"type":"long","value":{"a":1}}`))
	assert.ErrorIs(t, err, ErrUnsupportedRawShape)

	_, err = RawFromJSON([]byte(`1 2`))
	assert.Error(t, err)
}

func TestRawFromJSON_KeepsIntegers(t *testing.T) {
	v, err := RawFromJSON([]byte(`9007199254740993`))
	require.NoError(t, err)
	assert.Equal(t, int64(9007199254740993), v)

	v, err = RawFromJSON([]byte(`2.5e0`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("2.5e0"), v)

	v, err = DecodeValue("", v)
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)
}

func TestFromJSON_WideNumbers(t *testing.T) {
	const wide = "123456789012345678901234567890"

	v, err := FromJSON([]byte(`{"type":"biginteger","value":` + wide + `}`))
	require.NoError(t, err)
	n, ok := v.(*big.Int)
	require.True(t, ok, "got %T", v)
	assert.Equal(t, wide, n.String())

	v, err = FromJSON([]byte(`{"type":"bigdecimal","value":` + wide + `.000000000000000000001}`))
	require.NoError(t, err)
	d, ok := v.(decimal.Decimal)
	require.True(t, ok, "got %T", v)
	assert.Equal(t, wide+".000000000000000000001", d.String())

	v, err = FromJSON([]byte(`{"value":` + wide + `}`))
	require.NoError(t, err)
	n, ok = v.(*big.Int)
	require.True(t, ok, "got %T", v)
	assert.Equal(t, wide, n.String())

	v, err = FromJSON([]byte(`{"type":"double","value":` + wide + `}`))
	require.NoError(t, err)
	assert.Equal(t, 1.2345678901234568e+29, v)

	for _, typ := range []string{"long", "integer", "string"} {
		_, err = FromJSON([]byte(`{"type":"` + typ + `","value":` + wide + `}`))
		assert.ErrorIs(t, err, ErrNumberParse, typ)
	}

	_, err = FromJSON([]byte(`{"type":"double","value":1e400}`))
	assert.ErrorIs(t, err, ErrNumberParse)
}

func TestToJSONCell_RoundTrip(t *testing.T) {
	values := []any{
		"text",
		int64(-5),
		int8(3),
		2.75,
		decimal.RequireFromString("10.01"),
		big.NewInt(77),
		[]byte{1, 2, 3},
		time.Date(2020, 2, 29, 12, 0, 0, 0, time.UTC),
		Point2D{1, 2},
		NewTemplate("<p/>", "", true),
		NewBinaryURL("http://host/b", true),
	}

	for _, v := range values {
		c, err := ToJSONCell(v)
		require.NoError(t, err)

		data, err := json.Marshal(c)
		require.NoError(t, err)

		got, err := FromJSON(data)
		require.NoError(t, err, "%s", data)

		if cmd, ok := v.(Command); ok {
			back := got.(Command)
			assert.Equal(t, cmd.Tag(), back.Tag())
			assert.Equal(t, cmd.Cmd(), back.Cmd())
			assert.Equal(t, cmd.URL(), back.URL())
			continue
		}
		assertSameValue(t, v, got)
	}
}

func TestToJSONCell_Null(t *testing.T) {
	c, err := ToJSONCell(nil)
	require.NoError(t, err)
	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":null}`, string(data))
}
