package pdfgen

import "context"

// GenerateRequest describes one PDF generation.
type GenerateRequest struct {
	Template string
	Context  Context
	Output   string
}

// Service orchestrates the render-then-compose pipeline.
type Service struct {
	Renderer   *Renderer
	Compositor Compositor
	Logger     Logger
}

// NewService wires a service from its collaborators.
func NewService(renderer *Renderer, compositor Compositor, logger Logger) *Service {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Service{Renderer: renderer, Compositor: compositor, Logger: logger}
}

// Generate validates and renders the named template with the request
// context, converts the result to PDF, and either returns the bytes or
// persists them under the output root.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (Document, error) {
	if s == nil || s.Renderer == nil {
		return Document{}, NewError(KindInternal, "service requires a renderer", nil)
	}

	markup, err := s.Renderer.Render(req.Template, req.Context)
	if err != nil {
		s.Logger.Errorf("render %s: %v", req.Template, err)
		return Document{}, err
	}
	s.Logger.Debugf("rendered %s (%d bytes of html)", req.Template, len(markup.HTML))

	doc, err := s.Compositor.Compose(ctx, markup, req.Output)
	if err != nil {
		s.Logger.Errorf("compose %s: %v", req.Template, err)
		return Document{}, err
	}

	if doc.Written() {
		s.Logger.Infof("generated %s -> %s", req.Template, doc.Path)
	} else {
		s.Logger.Infof("generated %s (%d bytes)", req.Template, len(doc.Bytes))
	}
	return doc, nil
}

// RenderHTML runs the renderer only and returns the raw markup. Used by the
// debug route to inspect a template's output before generating a PDF.
func (s *Service) RenderHTML(name string, ctx Context) (Markup, error) {
	if s == nil || s.Renderer == nil {
		return Markup{}, NewError(KindInternal, "service requires a renderer", nil)
	}
	return s.Renderer.Render(name, ctx)
}
