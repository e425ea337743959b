package pdfgen

import "context"

// Compositor converts rendered markup into a paginated PDF document and
// decides between an in-memory result and a persisted one.
type Compositor struct {
	Engine Engine
	Store  DocumentStore
}

// Compose converts markup to PDF bytes. When target is empty the bytes are
// returned directly and no file is touched. When target is set the document
// is written through the store (parent directories created, existing file
// overwritten) and the written path is returned. Repeated composition to
// the same target is idempotent in its end state; each call still pays the
// full conversion cost.
func (c Compositor) Compose(ctx context.Context, markup Markup, target string) (Document, error) {
	if c.Engine == nil {
		return Document{}, NewError(KindInternal, "compositor requires an engine", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	pdf, err := c.Engine.Render(ctx, []byte(markup.HTML), markup.BaseDir)
	if err != nil {
		return Document{}, NewError(KindComposition, "pdf conversion failed", err)
	}

	if target == "" {
		return Document{Bytes: pdf}, nil
	}

	if c.Store == nil {
		return Document{}, NewError(KindInternal, "compositor requires a store for persisted output", nil)
	}

	path, err := c.Store.Write(target, pdf)
	if err != nil {
		if KindFromError(err) == KindValidation {
			return Document{}, err
		}
		return Document{}, NewError(KindComposition, "pdf write failed", err)
	}
	return Document{Path: path}, nil
}
