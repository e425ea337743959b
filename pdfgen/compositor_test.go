package pdfgen

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type memStore struct {
	root   string
	writes int
}

func (s *memStore) Write(key string, data []byte) (string, error) {
	s.writes++
	target := filepath.Join(s.root, key)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", err
	}
	return target, nil
}

func pdfEngine(payload []byte) Engine {
	return EngineFunc(func(ctx context.Context, html []byte, baseDir string) ([]byte, error) {
		return payload, nil
	})
}

func TestCompositor_Compose_ReturnsBytes(t *testing.T) {
	payload := []byte("%PDF-1.7 fake")
	compositor := Compositor{Engine: pdfEngine(payload)}

	doc, err := compositor.Compose(context.Background(), Markup{HTML: "<p>ok</p>"}, "")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if doc.Written() {
		t.Fatalf("expected transient document, got path %q", doc.Path)
	}
	if len(doc.Bytes) == 0 || !bytes.HasPrefix(doc.Bytes, []byte("%PDF")) {
		t.Fatalf("expected pdf bytes, got %q", doc.Bytes)
	}
}

func TestCompositor_Compose_WritesTarget(t *testing.T) {
	root := t.TempDir()
	store := &memStore{root: root}
	compositor := Compositor{Engine: pdfEngine([]byte("%PDF-1.7 fake")), Store: store}

	doc, err := compositor.Compose(context.Background(), Markup{HTML: "<p>ok</p>"}, "invoices/2024/a.pdf")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !doc.Written() {
		t.Fatalf("expected written document")
	}
	if doc.Bytes != nil {
		t.Fatalf("expected no in-memory bytes for persisted output")
	}

	data, err := os.ReadFile(doc.Path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected pdf content on disk, got %q", data)
	}
}

func TestCompositor_Compose_OverwriteIsIdempotent(t *testing.T) {
	root := t.TempDir()
	store := &memStore{root: root}
	compositor := Compositor{Engine: pdfEngine([]byte("%PDF-1.7 fake")), Store: store}
	markup := Markup{HTML: "<p>ok</p>"}

	first, err := compositor.Compose(context.Background(), markup, "out.pdf")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	second, err := compositor.Compose(context.Background(), markup, "out.pdf")
	if err != nil {
		t.Fatalf("compose again: %v", err)
	}
	if first.Path != second.Path {
		t.Fatalf("expected same target path, got %q and %q", first.Path, second.Path)
	}
	if store.writes != 2 {
		t.Fatalf("expected 2 writes, got %d", store.writes)
	}

	data, err := os.ReadFile(second.Path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "%PDF-1.7 fake" {
		t.Fatalf("expected overwritten file to equal a single composition, got %q", data)
	}
}

func TestCompositor_Compose_EngineFailure(t *testing.T) {
	compositor := Compositor{
		Engine: EngineFunc(func(ctx context.Context, html []byte, baseDir string) ([]byte, error) {
			return nil, errors.New("boom")
		}),
	}

	_, err := compositor.Compose(context.Background(), Markup{HTML: "<p>ok</p>"}, "")
	if err == nil {
		t.Fatalf("expected error")
	}
	if kind := KindFromError(err); kind != KindComposition {
		t.Fatalf("expected composition error, got %q", kind)
	}
}

func TestCompositor_Compose_RequiresEngine(t *testing.T) {
	_, err := Compositor{}.Compose(context.Background(), Markup{}, "")
	if err == nil {
		t.Fatalf("expected error")
	}
	if kind := KindFromError(err); kind != KindInternal {
		t.Fatalf("expected internal error, got %q", kind)
	}
}

func TestCompositor_Compose_PassesBaseDir(t *testing.T) {
	var seen string
	compositor := Compositor{
		Engine: EngineFunc(func(ctx context.Context, html []byte, baseDir string) ([]byte, error) {
			seen = baseDir
			return []byte("%PDF"), nil
		}),
	}

	_, err := compositor.Compose(context.Background(), Markup{HTML: "x", BaseDir: "/srv/templates"}, "")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if seen != "/srv/templates" {
		t.Fatalf("expected base dir to reach engine, got %q", seen)
	}
}
