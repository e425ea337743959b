package pdfgen

import "context"

// Context carries caller-supplied values substituted into a template at
// render time. Values are whatever the request JSON decoded to; no schema
// is enforced.
type Context map[string]any

// Markup is rendered HTML plus the directory relative asset references
// resolve against during composition.
type Markup struct {
	HTML    string
	BaseDir string
}

// Document is the result of one composition. Path is set when the PDF was
// persisted, Bytes when it is returned in memory. Exactly one is populated.
type Document struct {
	Bytes []byte
	Path  string
}

// Written reports whether the document was persisted to disk.
func (d Document) Written() bool {
	return d.Path != ""
}

// Engine renders HTML content into PDF bytes.
type Engine interface {
	Render(ctx context.Context, html []byte, baseDir string) ([]byte, error)
}

// EngineFunc adapts a function to an Engine.
type EngineFunc func(ctx context.Context, html []byte, baseDir string) ([]byte, error)

func (f EngineFunc) Render(ctx context.Context, html []byte, baseDir string) ([]byte, error) {
	if f == nil {
		return nil, NewError(KindInternal, "pdf engine func is nil", nil)
	}
	return f(ctx, html, baseDir)
}

// DocumentStore persists composed documents under a fixed root.
type DocumentStore interface {
	Write(key string, data []byte) (string, error)
}

// Logger provides logging hooks.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards all log output.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
