package pdfgen

import (
	"path/filepath"
	"strings"
)

// DownloadFilename derives the suggested attachment filename for a
// template: its base name with the extension swapped for .pdf.
func DownloadFilename(template string) string {
	base := filepath.Base(template)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." {
		stem = "document"
	}
	return stem + ".pdf"
}
