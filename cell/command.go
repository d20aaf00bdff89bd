package cell

import "sync"

// Command is a cell whose value is a deferred computation or a reference to
// remote content. This package only carries the declarative shape of a
// command; executing it belongs to the scripting runtime.
type Command interface {
	// Tag is the type the command is persisted under.
	Tag() Tag
	// Cmd is the inline body, empty when the command is URL-backed.
	Cmd() string
	// URL is the backing URL, empty for inline commands.
	URL() string
	Cacheable() bool
	// CompileError returns the last diagnostic recorded by whoever compiled
	// the command, or "".
	CompileError() string
	SetCompileError(msg string)
}

// command holds the state shared by every Command variant.
type command struct {
	cmd       string
	url       string
	cacheable bool

	mu         sync.Mutex
	compileErr string
}

// init sets the declarative fields. A URL wins over an inline body.
func (c *command) init(cmd, url string, cacheable bool) {
	if url != "" {
		cmd = ""
	}
	c.cmd, c.url, c.cacheable = cmd, url, cacheable
}

func (c *command) Cmd() string     { return c.cmd }
func (c *command) URL() string     { return c.url }
func (c *command) Cacheable() bool { return c.cacheable }

// IsURL reports whether the command content lives behind its URL.
func (c *command) IsURL() bool { return c.url != "" }

func (c *command) CompileError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compileErr
}

func (c *command) SetCompileError(msg string) {
	c.mu.Lock()
	c.compileErr = msg
	c.mu.Unlock()
}

// Expression is an expression command (tag exp).
type Expression struct{ command }

// NewExpression creates an expression from an inline body or a URL.
// When url is non-empty the body is ignored.
func NewExpression(cmd, url string, cacheable bool) *Expression {
	c := &Expression{}
	c.init(cmd, url, cacheable)
	return c
}

func (*Expression) Tag() Tag { return TagExp }

// Method is a method-body command (tag method).
type Method struct{ command }

// NewMethod creates a method command from an inline body or a URL.
func NewMethod(cmd, url string, cacheable bool) *Method {
	c := &Method{}
	c.init(cmd, url, cacheable)
	return c
}

func (*Method) Tag() Tag { return TagMethod }

// Template is a template command (tag template).
//
// Besides its declarative shape, a Template owns a build-once slot that a
// template compiler uses to keep its compiled form per cell instance.
type Template struct {
	command

	once     sync.Once
	compiled any
	buildErr error
}

// NewTemplate creates a template command from an inline body or a URL.
func NewTemplate(cmd, url string, cacheable bool) *Template {
	t := &Template{}
	t.init(cmd, url, cacheable)
	return t
}

func (*Template) Tag() Tag { return TagTemplate }

// Compiled returns the result of build, running build at most once for the
// lifetime of t. Concurrent first callers block until the single build
// finishes and all observe the same result, including a failure.
func (t *Template) Compiled(build func() (any, error)) (any, error) {
	t.once.Do(func() {
		t.compiled, t.buildErr = build()
	})
	return t.compiled, t.buildErr
}

// StringURL is a string cell whose content is fetched from a URL.
type StringURL struct{ command }

// NewStringURL creates a URL-backed string cell.
func NewStringURL(url string, cacheable bool) *StringURL {
	c := &StringURL{}
	c.init("", url, cacheable)
	return c
}

func (*StringURL) Tag() Tag { return TagString }

// BinaryURL is a binary cell whose content is fetched from a URL.
type BinaryURL struct{ command }

// NewBinaryURL creates a URL-backed binary cell.
func NewBinaryURL(url string, cacheable bool) *BinaryURL {
	c := &BinaryURL{}
	c.init("", url, cacheable)
	return c
}

func (*BinaryURL) Tag() Tag { return TagBinary }

var (
	_ Command = (*Expression)(nil)
	_ Command = (*Method)(nil)
	_ Command = (*Template)(nil)
	_ Command = (*StringURL)(nil)
	_ Command = (*BinaryURL)(nil)
)
