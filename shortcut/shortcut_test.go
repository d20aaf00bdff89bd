package shortcut

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fixed_call", "$rates(coord)", "getFixedCubeCell('rates',coord)"},
		{"fixed_call_map", "$rates([state:'OH'])", "getFixedCubeCell('rates',[state:'OH'])"},
		{"fixed_index", "x = $rates[state:'OH']", "x = getFixedCubeCell('rates',[state:'OH'])"},
		{"relative_call", "@rates(input)", "getRelativeCubeCell('rates',input)"},
		{"relative_index", " @rates[age:30]", " getRelativeCubeCell('rates',[age:30])"},
		{"dotted_name", "$app.rates-v2[a:1]", "getFixedCubeCell('app.rates-v2',[a:1])"},
		{"own_fixed", "$(coord)", "getFixedCell(coord)"},
		{"own_fixed_index", "$[age:30]", "getFixedCell([age:30])"},
		{"own_relative", "1 + @(coord)", "1 + getRelativeCell(coord)"},
		{"own_relative_index", "@[age:30]", "getRelativeCell([age:30])"},
		{"two_refs", "$a(m) + @b[y:2]", "getFixedCubeCell('a',m) + getRelativeCubeCell('b',[y:2])"},
		{"after_identifier", "price$x(1)", "price$x(1)"},
		{"no_refs", "input.age * 2", "input.age * 2"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expand(tt.in))
			assert.Equal(t, tt.want, Analyzer{}.Expand(tt.in))
		})
	}
}

func TestCubeNames(t *testing.T) {
	names := make(map[string]struct{})
	CubeNames(`$rates(a:1) + @rates[b:2] + $(c:3) + ncubeMgr.getCube('zip.codes') + @tax(x:1)`, names)
	Analyzer{}.CubeNames(`ncubeMgr.getCube("other")`, names)

	assert.Equal(t, map[string]struct{}{
		"rates":     {},
		"zip.codes": {},
		"tax":       {},
		"other":     {},
	}, names)
}

func TestScopeKeys(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"input.region", []string{"region"}},
		{"input?.state + INPUT.Age", []string{"state", "Age"}},
		{"myinput.x + a.input.y", nil},
		{"(input.a, input.b_2)", []string{"a", "b_2"}},
		{"output.x", nil},
	}

	for _, tt := range tests {
		keys := make(map[string]struct{})
		ScopeKeys(tt.in, keys)
		want := make(map[string]struct{})
		for _, k := range tt.want {
			want[k] = struct{}{}
		}
		assert.Equal(t, want, keys, "ScopeKeys(%q)", tt.in)
	}
}
