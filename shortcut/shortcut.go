// Package shortcut expands the abbreviated cube references that expression,
// method and template cells may contain, and reports which cubes and input
// coordinates a piece of command text depends on.
//
// Four reference forms are recognized:
//
//	$cube(coord)   $cube[k:v]    fixed cell of another cube
//	@cube(coord)   @cube[k:v]    cell of another cube relative to the current input
//	$(coord)       $[k:v]        fixed cell of the executing cube
//	@(coord)       @[k:v]        relative cell of the executing cube
//
// The parenthesized forms take an expression that evaluates to a coordinate
// map. The bracketed forms take map entries and become a map literal.
//
// A reference must not directly follow a letter, digit or underscore, so
// "price$x(1)" is left alone.
package shortcut

import "regexp"

// CubeNameChars is the character class allowed in cube names.
const CubeNameChars = `0-9a-zA-Z:._-`

const notIdent = `([^a-zA-Z0-9_]|^)`

var (
	absCubeCall  = regexp.MustCompile(notIdent + `[$]([` + CubeNameChars + `]+)[(]([^)]*)[)]`)
	absCubeIndex = regexp.MustCompile(notIdent + `[$]([` + CubeNameChars + `]+)\[([^\]]*)\]`)
	absCellCall  = regexp.MustCompile(notIdent + `[$][(]([^)]*)[)]`)
	absCellIndex = regexp.MustCompile(notIdent + `[$]\[([^\]]*)\]`)
	relCubeCall  = regexp.MustCompile(notIdent + `[@]([` + CubeNameChars + `]+)[(]([^)]*)[)]`)
	relCubeIndex = regexp.MustCompile(notIdent + `[@]([` + CubeNameChars + `]+)\[([^\]]*)\]`)
	relCellCall  = regexp.MustCompile(notIdent + `[@][(]([^)]*)[)]`)
	relCellIndex = regexp.MustCompile(notIdent + `[@]\[([^\]]*)\]`)
	explicitCube = regexp.MustCompile(notIdent + `ncubeMgr\.getCube\(['"]([` + CubeNameChars + `]+)['"]\)`)
)

// InputVar matches an input coordinate access such as input.state or
// input?.state. Group 2 is the coordinate name.
var InputVar = regexp.MustCompile(`(?i)([^a-zA-Z0-9_.]|^)input[?]?[.]([a-zA-Z0-9_]+)`)

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

// Applied in order, each to the output of the one before.
var rewrites = []rewrite{
	{absCubeCall, "${1}getFixedCubeCell('${2}',${3})"},
	{absCubeIndex, "${1}getFixedCubeCell('${2}',[${3}])"},
	{absCellCall, "${1}getFixedCell(${2})"},
	{absCellIndex, "${1}getFixedCell([${2}])"},
	{relCubeCall, "${1}getRelativeCubeCell('${2}',${3})"},
	{relCubeIndex, "${1}getRelativeCubeCell('${2}',[${3}])"},
	{relCellCall, "${1}getRelativeCell(${2})"},
	{relCellIndex, "${1}getRelativeCell([${2}])"},
}

var cubeRefs = []*regexp.Regexp{absCubeCall, absCubeIndex, relCubeCall, relCubeIndex, explicitCube}

// Analyzer is the default short-cut analyzer. The zero value is ready to use
// and safe for concurrent use.
type Analyzer struct{}

// Expand rewrites every short-cut reference in text into its call form.
func (Analyzer) Expand(text string) string {
	return Expand(text)
}

// CubeNames adds the name of every cube text refers to into the set.
func (Analyzer) CubeNames(text string, into map[string]struct{}) {
	CubeNames(text, into)
}

// Expand rewrites every short-cut reference in text into its call form:
//
//	$rates(coord)       ->  getFixedCubeCell('rates',coord)
//	@rates[state:'OH']  ->  getRelativeCubeCell('rates',[state:'OH'])
//	$[age:30]           ->  getFixedCell([age:30])
func Expand(text string) string {
	for _, r := range rewrites {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	return text
}

// CubeNames adds the name of every cube referenced by text, through a
// short-cut or an explicit ncubeMgr.getCube('name') call, into the set.
func CubeNames(text string, into map[string]struct{}) {
	for _, re := range cubeRefs {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			into[m[2]] = struct{}{}
		}
	}
}

// ScopeKeys adds the name of every input coordinate text reads into the set.
func ScopeKeys(text string, into map[string]struct{}) {
	for _, m := range InputVar.FindAllStringSubmatch(text, -1) {
		into[m[2]] = struct{}{}
	}
}
