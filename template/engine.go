package template

// Engine compiles assembled template text. Implementations wrap whatever
// XML-aware template language the host runs; this package never interprets
// the text itself.
type Engine interface {
	Compile(text string) (Compiled, error)
}

// Compiled is a template ready to render. Render may be called from several
// goroutines at once.
type Compiled interface {
	Render(vars map[string]any) (string, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(text string) (Compiled, error)

// Compile calls f(text).
func (f EngineFunc) Compile(text string) (Compiled, error) { return f(text) }

// RenderFunc adapts a function to the Compiled interface.
type RenderFunc func(vars map[string]any) (string, error)

// Render calls f(vars).
func (f RenderFunc) Render(vars map[string]any) (string, error) { return f(vars) }
