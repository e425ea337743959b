package enginepdf

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func chromeBinaryPath(t *testing.T) string {
	t.Helper()

	chromePath := os.Getenv("CHROME_BIN")
	if chromePath == "" {
		paths := []string{"google-chrome", "chromium", "chromium-browser"}
		for _, candidate := range paths {
			if path, err := exec.LookPath(candidate); err == nil {
				chromePath = path
				break
			}
		}
	}
	if chromePath == "" {
		t.Skip("chromium binary not found; set CHROME_BIN to run this test")
	}

	return chromePath
}

func TestParseLengthInches(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{input: "1in", want: 1},
		{input: "25.4mm", want: 1},
		{input: "2.54cm", want: 1},
		{input: "72pt", want: 1},
		{input: "96px", want: 1},
		{input: "2", want: 2},
	}

	for _, tc := range tests {
		got, err := parseLengthInches(tc.input)
		if err != nil {
			t.Fatalf("parseLengthInches(%q): %v", tc.input, err)
		}
		if diff := got - tc.want; diff > 0.0001 || diff < -0.0001 {
			t.Fatalf("parseLengthInches(%q): expected %f, got %f", tc.input, tc.want, got)
		}
	}

	if _, err := parseLengthInches("10furlongs"); err == nil {
		t.Fatalf("expected error for unsupported unit")
	}
}

func TestBuildPrintToPDFParams_PageSize(t *testing.T) {
	params, err := buildPrintToPDFParams(Options{
		PageSize:        "A4",
		PrintBackground: boolPtr(true),
		MarginTop:       "10mm",
	})
	if err != nil {
		t.Fatalf("buildPrintToPDFParams: %v", err)
	}
	if params.PaperWidth == 0 || params.PaperHeight == 0 {
		t.Fatalf("expected paper size to be set, got width=%f height=%f", params.PaperWidth, params.PaperHeight)
	}
	if params.MarginTop == 0 {
		t.Fatalf("expected margin top to be set")
	}
	if !params.PrintBackground {
		t.Fatalf("expected print background true")
	}
}

func TestBuildPrintToPDFParams_RejectsBadScale(t *testing.T) {
	if _, err := buildPrintToPDFParams(Options{Scale: 5}); err == nil {
		t.Fatalf("expected scale validation error")
	}
}

func TestBuildPrintToPDFParams_RejectsUnknownPageSize(t *testing.T) {
	if _, err := buildPrintToPDFParams(Options{PageSize: "TABLOID-XL"}); err == nil {
		t.Fatalf("expected page size validation error")
	}
}

func TestFileBaseURL(t *testing.T) {
	dir := t.TempDir()
	base := fileBaseURL(dir)
	if !strings.HasPrefix(base, "file://") {
		t.Fatalf("expected file scheme, got %q", base)
	}
	if !strings.HasSuffix(base, "/") {
		t.Fatalf("expected trailing slash, got %q", base)
	}
	if !strings.Contains(base, filepath.ToSlash(dir)) {
		t.Fatalf("expected dir in url, got %q", base)
	}

	if fileBaseURL("") != "" {
		t.Fatalf("expected empty url for empty dir")
	}
}

func TestInjectBaseHref(t *testing.T) {
	input := []byte("<html><head><title>Test</title></head><body>ok</body></html>")
	out := injectBaseHref(input, "file:///srv/templates/")
	if !bytes.Contains(out, []byte(`<base href="file:///srv/templates/">`)) {
		t.Fatalf("expected base tag to be injected, got %q", out)
	}

	// An existing base tag wins.
	withBase := []byte(`<html><head><base href="x"></head></html>`)
	if out := injectBaseHref(withBase, "file:///other/"); !bytes.Equal(out, withBase) {
		t.Fatalf("expected input untouched when base tag present")
	}

	// No head: one is synthesized.
	out = injectBaseHref([]byte("<html><body>ok</body></html>"), "file:///srv/")
	if !bytes.Contains(out, []byte("<head><base")) {
		t.Fatalf("expected synthesized head, got %q", out)
	}
}

func TestAllocatorOptionsFromArgs(t *testing.T) {
	options := allocatorOptionsFromArgs([]string{"--no-sandbox", "disable-dev-shm-usage", "", "--lang=en-US"})
	if len(options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(options))
	}
}

func TestChromiumEngine_Render_Smoke(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping chromium smoke test in short mode")
	}

	chromePath := chromeBinaryPath(t)

	engine := &ChromiumEngine{
		BrowserPath: chromePath,
		Headless:    true,
		Timeout:     10 * time.Second,
		Args:        []string{"--no-sandbox", "--disable-dev-shm-usage"},
		Defaults: Options{
			PageSize:        "A4",
			PrintBackground: boolPtr(true),
		},
	}
	t.Cleanup(func() {
		_ = engine.Close()
	})

	pdf, err := engine.Render(context.Background(), []byte("<html><body><h1>Hello</h1></body></html>"), t.TempDir())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(pdf) < 4 || string(pdf[:4]) != "%PDF" {
		t.Fatalf("expected pdf output, got %q", string(pdf[:4]))
	}
}

func TestWKHTMLTOPDFEngine_Render_Smoke(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping wkhtmltopdf smoke test in short mode")
	}
	if _, err := exec.LookPath("wkhtmltopdf"); err != nil {
		t.Skip("wkhtmltopdf binary not found")
	}

	engine := WKHTMLTOPDFEngine{Timeout: 10 * time.Second}
	pdf, err := engine.Render(context.Background(), []byte("<html><body>ok</body></html>"), t.TempDir())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(pdf) < 4 || string(pdf[:4]) != "%PDF" {
		t.Fatalf("expected pdf output, got %q", string(pdf[:4]))
	}
}
