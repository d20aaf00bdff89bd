package template

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"regexp"

	"go.alis.build/alog"

	"github.com/megabites2013/n-cube/cell"
	"github.com/megabites2013/n-cube/shortcut"
)

// Closures is the support script injected into every assembled template.
// It defines the functions that expanded short-cuts call.
//
//go:embed closures.gsp
var Closures string

// rootTag finds the first opening tag that declares a namespace. It does not
// cross lines.
var rootTag = regexp.MustCompile(`<.*?xmlns.*?>`)

// ErrTemplateSetup matches every *SetupError.
var ErrTemplateSetup = errors.New("template setup failed")

// ErrURLNotFetched is the cause of a SetupError for a URL-backed template
// whose content was never resolved into an inline body.
var ErrURLNotFetched = errors.New("url-backed template has no inline body")

// SetupError reports that a template could not be compiled or rendered.
type SetupError struct {
	Cube string // Name of the executing cube
	Err  error
}

func (e *SetupError) Error() string {
	msg := fmt.Sprintf("error setting up template, cube '%s'", e.Cube)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SetupError) Unwrap() error { return e.Err }

func (e *SetupError) Is(target error) bool { return target == ErrTemplateSetup }

// Cube is the executing cube as far as rendering is concerned.
type Cube interface {
	Name() string
}

// Vars is what a template sees while it renders.
type Vars struct {
	Cube    Cube           // bound to "ncube"
	Manager any            // bound to "ncubeMgr"
	Input   map[string]any // bound to "input"
	Output  map[string]any // bound to "output"
	Stack   []any          // bound to "stack"
	Extra   map[string]any // merged in first; the names above win
}

// Map returns the variable mapping handed to Compiled.Render.
func (v Vars) Map() map[string]any {
	m := make(map[string]any, len(v.Extra)+5)
	for k, val := range v.Extra {
		m[k] = val
	}
	m["ncube"] = v.Cube
	m["ncubeMgr"] = v.Manager
	m["input"] = v.Input
	m["output"] = v.Output
	m["stack"] = v.Stack
	return m
}

func (v Vars) cubeName() string {
	if v.Cube == nil {
		return ""
	}
	return v.Cube.Name()
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithAnalyzer replaces the default short-cut analyzer.
func WithAnalyzer(a Analyzer) Option {
	return func(as *Assembler) { as.analyzer = a }
}

// WithClosures replaces the injected support script.
func WithClosures(text string) Option {
	return func(as *Assembler) { as.closures = text }
}

// Assembler turns template cells into rendered text.
//
// An Assembler is safe for concurrent use. Compiled templates are kept on the
// cell.Template itself, so each cell compiles at most once no matter how many
// goroutines render it.
type Assembler struct {
	engine   Engine
	analyzer Analyzer
	closures string
}

// New returns an Assembler that compiles with engine.
func New(engine Engine, opts ...Option) *Assembler {
	a := &Assembler{
		engine:   engine,
		analyzer: shortcut.Analyzer{},
		closures: Closures,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble rewrites the short-cuts in body and injects the closures as a
// script block right after the root tag, or at the very start when body has
// no namespaced root tag.
func (a *Assembler) Assemble(body string) string {
	text := RewriteShortcuts(body, a.analyzer)
	split := 0
	if loc := rootTag.FindStringIndex(text); loc != nil {
		split = loc[1]
	}
	return text[:split] + scriptOpen + a.closures + scriptClose + text[split:]
}

// Render compiles tpl on first use and renders it with vars.
//
// Any failure is returned as a *SetupError and recorded on tpl with
// SetCompileError. A failed compile is kept, so later calls fail the same way
// without compiling again.
//
// The compiled form lives on tpl, not on the Assembler. Whichever Assembler
// renders tpl first decides its engine and closures; any other Assembler
// rendering the same tpl reuses that result.
func (a *Assembler) Render(ctx context.Context, tpl *cell.Template, vars Vars) (string, error) {
	built, err := tpl.Compiled(func() (any, error) {
		return a.compile(ctx, tpl)
	})
	if err != nil {
		return "", a.fail(ctx, tpl, vars, err)
	}
	c, ok := built.(Compiled)
	if !ok {
		return "", a.fail(ctx, tpl, vars, fmt.Errorf("template slot holds %T, not a compiled template", built))
	}
	out, err := c.Render(vars.Map())
	if err != nil {
		return "", a.fail(ctx, tpl, vars, err)
	}
	return out, nil
}

func (a *Assembler) compile(ctx context.Context, tpl *cell.Template) (Compiled, error) {
	if tpl.Cmd() == "" && tpl.URL() != "" {
		return nil, fmt.Errorf("%w: %s", ErrURLNotFetched, tpl.URL())
	}
	text := a.Assemble(tpl.Cmd())
	alog.Debugf(ctx, "compiling template (%d bytes assembled)", len(text))
	c, err := a.engine.Compile(text)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.New("engine returned no compiled template")
	}
	return c, nil
}

func (a *Assembler) fail(ctx context.Context, tpl *cell.Template, vars Vars, err error) error {
	serr := &SetupError{Cube: vars.cubeName(), Err: err}
	tpl.SetCompileError(fmt.Sprintf("error setting up template, cube '%s', %v", serr.Cube, err))
	alog.Errorf(ctx, "%v", serr)
	return serr
}
