package pdfgen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// rawSubstitution disables pongo2's HTML auto-escaping once per process.
// Existing templates rely on injecting raw HTML through context values, so
// interpolated text is emitted unescaped.
var rawSubstitution sync.Once

// Renderer resolves template names against a fixed root directory and
// renders them with a caller-supplied context.
//
// Templates are re-read and re-compiled on every call; generation is
// infrequent and template files are small, so there is no parse cache.
type Renderer struct {
	Root string
}

// NewRenderer creates a renderer rooted at dir.
func NewRenderer(dir string) *Renderer {
	rawSubstitution.Do(func() {
		pongo2.SetAutoescape(false)
	})
	return &Renderer{Root: dir}
}

// Render resolves name under the templates root and renders it with ctx.
// The returned markup carries the template's parent directory as BaseDir.
func (r *Renderer) Render(name string, ctx Context) (Markup, error) {
	if r == nil || r.Root == "" {
		return Markup{}, NewError(KindInternal, "renderer requires a templates root", nil)
	}

	path, err := r.Resolve(name)
	if err != nil {
		return Markup{}, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Markup{}, NewError(KindNotFound, fmt.Sprintf("template not found: %s", name), err)
		}
		return Markup{}, NewError(KindRender, fmt.Sprintf("template read failed: %s", name), err)
	}

	tpl, err := pongo2.FromBytes(content)
	if err != nil {
		return Markup{}, NewError(KindRender, fmt.Sprintf("template compile failed: %s", name), err)
	}

	if ctx == nil {
		ctx = Context{}
	}
	out, err := tpl.Execute(pongo2.Context(ctx))
	if err != nil {
		return Markup{}, NewError(KindRender, fmt.Sprintf("template render failed: %s", name), err)
	}

	return Markup{HTML: out, BaseDir: filepath.Dir(path)}, nil
}

// Resolve validates name and joins it onto the templates root. The name
// must be a single path component; anything carrying directory segments is
// rejected before the filesystem is touched.
func (r *Renderer) Resolve(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	path := filepath.Join(r.Root, name)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", NewError(KindNotFound, fmt.Sprintf("template not found: %s", name), nil)
		}
		return "", NewError(KindRender, fmt.Sprintf("template stat failed: %s", name), err)
	}
	if info.IsDir() {
		return "", NewError(KindNotFound, fmt.Sprintf("template not found: %s", name), nil)
	}
	return path, nil
}

// ValidateName rejects names that are empty or contain directory segments.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewError(KindValidation, "template name is required", nil)
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return NewError(KindValidation, fmt.Sprintf("invalid template name: %s", name), nil)
	}
	if strings.ContainsAny(name, `/\`) {
		return NewError(KindValidation, fmt.Sprintf("invalid template name: %s", name), nil)
	}
	return nil
}
