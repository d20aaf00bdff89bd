// Package template prepares template cells for rendering.
//
// A template body is XML mixed with three kinds of embedded regions:
//
//	<gsp:scriptlet>...</gsp:scriptlet>    script block
//	<gsp:expression>...</gsp:expression>  expression block
//	${...}                                interpolation
//
// Cube short-cut references may appear inside any region. The scanner
// reports which cubes and input coordinates the regions use and rewrites the
// short-cuts into call form. The Assembler then injects the closures those
// calls need and hands the text to a rendering Engine.
package template

import (
	"regexp"
	"strings"

	"github.com/megabites2013/n-cube/shortcut"
)

// Analyzer expands and inspects the short-cut references inside one region.
// shortcut.Analyzer is the default implementation.
type Analyzer interface {
	Expand(text string) string
	CubeNames(text string, into map[string]struct{})
}

// region is one kind of embedded region. Group 1 of re is the inner text.
type region struct {
	re    *regexp.Regexp
	open  string
	close string
}

const (
	scriptOpen  = "<gsp:scriptlet>"
	scriptClose = "</gsp:scriptlet>"
)

// Scanned in this order. Script and expression blocks may span lines, which
// the line-bound patterns of older n-cube releases did not allow.
// Interpolations stay on one line.
var regions = []region{
	{regexp.MustCompile(`(?s)<gsp:scriptlet>(.*?)</gsp:scriptlet>`), scriptOpen, scriptClose},
	{regexp.MustCompile(`(?s)<gsp:expression>(.*?)</gsp:expression>`), "<gsp:expression>", "</gsp:expression>"},
	{regexp.MustCompile(`\$\{(.*?)\}`), "${", "}"},
}

// eachRegion calls fn with the inner text of every region of every kind.
func eachRegion(body string, fn func(inner string)) {
	for _, r := range regions {
		for _, m := range r.re.FindAllStringSubmatch(body, -1) {
			fn(m[1])
		}
	}
}

// CubeNames adds every cube referenced from inside a region of body into the
// set. Text outside regions is never inspected.
func CubeNames(body string, a Analyzer, into map[string]struct{}) {
	eachRegion(body, func(inner string) {
		a.CubeNames(inner, into)
	})
}

// ScopeKeys adds the name of every input coordinate read inside a region of
// body into the set. ${input.region} contributes "region".
func ScopeKeys(body string, into map[string]struct{}) {
	eachRegion(body, func(inner string) {
		shortcut.ScopeKeys(inner, into)
	})
}

// RewriteShortcuts expands the short-cut references inside every region of
// body. Delimiters and all text outside regions are kept byte for byte. Each
// region kind is rewritten in a single pass, so expanded text is not
// expanded again by the same pass.
func RewriteShortcuts(body string, a Analyzer) string {
	for _, r := range regions {
		body = rewriteRegion(body, r, a)
	}
	return body
}

func rewriteRegion(body string, r region, a Analyzer) string {
	matches := r.re.FindAllStringSubmatchIndex(body, -1)
	if len(matches) == 0 {
		return body
	}
	var b strings.Builder
	b.Grow(len(body))
	last := 0
	for _, m := range matches {
		b.WriteString(body[last:m[0]])
		b.WriteString(r.open)
		b.WriteString(a.Expand(body[m[2]:m[3]]))
		b.WriteString(r.close)
		last = m[1]
	}
	b.WriteString(body[last:])
	return b.String()
}
