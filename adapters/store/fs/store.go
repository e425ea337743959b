package storefs

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-pdfgen/pdfgen"
)

// Store persists generated documents under a fixed root directory.
//
// Keys are caller-influenced relative fragments; resolution confines them
// to the root so a crafted key cannot escape it. Writes go straight to the
// target file. A crash mid-write can leave a truncated document; disk
// lifetime of written files is managed externally.
type Store struct {
	Root string
}

// NewStore creates a filesystem-backed document store.
func NewStore(root string) *Store {
	return &Store{Root: root}
}

// Write persists data at key under the root, creating parent directories
// as needed and overwriting any existing file. It returns the absolute
// path of the written file.
func (s *Store) Write(key string, data []byte) (string, error) {
	if s == nil || s.Root == "" {
		return "", pdfgen.NewError(pdfgen.KindInternal, "store root is required", nil)
	}

	target, err := s.Resolve(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", err
	}
	return target, nil
}

// Resolve maps key to an absolute path under the root, rejecting keys that
// are empty or escape it.
func (s *Store) Resolve(key string) (string, error) {
	clean := path.Clean("/" + filepath.ToSlash(key))
	rel := strings.TrimPrefix(clean, "/")
	if rel == "" || rel == "." {
		return "", pdfgen.NewError(pdfgen.KindValidation, "invalid output path", nil)
	}

	root, err := filepath.Abs(s.Root)
	if err != nil {
		return "", err
	}
	target := filepath.Join(root, filepath.FromSlash(rel))
	if !strings.HasPrefix(target, root+string(os.PathSeparator)) && target != root {
		return "", pdfgen.NewError(pdfgen.KindValidation, "output path escapes root", nil)
	}
	return target, nil
}
