package enginepdf

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/goliatone/go-pdfgen/pdfgen"
)

// WKHTMLTOPDFEngine invokes wkhtmltopdf for HTML-to-PDF conversion. It is
// the fallback for hosts without a Chromium binary.
type WKHTMLTOPDFEngine struct {
	Command string
	Args    []string
	Env     []string
	Timeout time.Duration
}

var _ pdfgen.Engine = WKHTMLTOPDFEngine{}

// Render executes wkhtmltopdf using stdin/stdout for HTML/PDF. baseDir is
// handed to wkhtmltopdf via its working directory so relative asset
// references resolve against the template's directory.
func (e WKHTMLTOPDFEngine) Render(ctx context.Context, htmlInput []byte, baseDir string) ([]byte, error) {
	cmdPath := strings.TrimSpace(e.Command)
	if cmdPath == "" {
		cmdPath = "wkhtmltopdf"
	}
	if ctx == nil {
		ctx = context.Background()
	}
	cmdCtx := ctx
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	args := append([]string{}, e.Args...)
	args = append(args, "--enable-local-file-access", "-", "-")
	cmd := exec.CommandContext(cmdCtx, cmdPath, args...)
	if baseDir != "" {
		cmd.Dir = baseDir
	}
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}
	cmd.Stdin = bytes.NewReader(htmlInput)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := strings.TrimSpace(stderr.String())
		if message == "" {
			message = "wkhtmltopdf failed"
		}
		return nil, pdfgen.NewError(pdfgen.KindComposition, message, err)
	}
	return stdout.Bytes(), nil
}
