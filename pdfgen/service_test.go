package pdfgen

import (
	"bytes"
	"context"
	"os"
	"testing"
)

func TestService_Generate_Bytes(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "invoice.html", "<p>Client: {{ client }}</p>")

	var gotHTML []byte
	engine := EngineFunc(func(ctx context.Context, html []byte, baseDir string) ([]byte, error) {
		gotHTML = html
		return []byte("%PDF-1.7 fake"), nil
	})
	service := NewService(NewRenderer(root), Compositor{Engine: engine}, nil)

	doc, err := service.Generate(context.Background(), GenerateRequest{
		Template: "invoice.html",
		Context:  Context{"client": "Acme"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if doc.Written() {
		t.Fatalf("expected transient result")
	}
	if !bytes.Contains(gotHTML, []byte("Client: Acme")) {
		t.Fatalf("expected rendered html to reach engine, got %q", gotHTML)
	}
	if !bytes.HasPrefix(doc.Bytes, []byte("%PDF")) {
		t.Fatalf("expected pdf bytes, got %q", doc.Bytes)
	}
}

func TestService_Generate_PersistsOutput(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "invoice.html", "ok")

	out := t.TempDir()
	service := NewService(
		NewRenderer(root),
		Compositor{Engine: pdfEngine([]byte("%PDF-1.7 fake")), Store: &memStore{root: out}},
		nil,
	)

	doc, err := service.Generate(context.Background(), GenerateRequest{
		Template: "invoice.html",
		Output:   "invoices/2024/a.pdf",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !doc.Written() {
		t.Fatalf("expected persisted result")
	}
	if _, err := os.Stat(doc.Path); err != nil {
		t.Fatalf("expected file at %q: %v", doc.Path, err)
	}
}

func TestService_Generate_RenderErrorSkipsEngine(t *testing.T) {
	called := false
	engine := EngineFunc(func(ctx context.Context, html []byte, baseDir string) ([]byte, error) {
		called = true
		return nil, nil
	})
	service := NewService(NewRenderer(t.TempDir()), Compositor{Engine: engine}, nil)

	_, err := service.Generate(context.Background(), GenerateRequest{Template: "missing.html"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if kind := KindFromError(err); kind != KindNotFound {
		t.Fatalf("expected not_found, got %q", kind)
	}
	if called {
		t.Fatalf("engine must not run when rendering fails")
	}
}

func TestService_RenderHTML(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "debug.html", "<h1>{{ title }}</h1>")

	service := NewService(NewRenderer(root), Compositor{}, nil)
	markup, err := service.RenderHTML("debug.html", Context{"title": "Preview"})
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if markup.HTML != "<h1>Preview</h1>" {
		t.Fatalf("unexpected markup: %q", markup.HTML)
	}
}
