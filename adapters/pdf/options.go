package enginepdf

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-pdfgen/pdfgen"
)

// ExternalAssetsPolicy controls network access during conversion.
type ExternalAssetsPolicy string

const (
	// ExternalAssetsAllow permits http(s) subresources in templates.
	ExternalAssetsAllow ExternalAssetsPolicy = "allow"
	// ExternalAssetsBlock blocks all http(s) subresources; only
	// template-relative file assets resolve.
	ExternalAssetsBlock ExternalAssetsPolicy = "block"
)

// Options configure page geometry for PDF conversion.
type Options struct {
	PageSize             string
	Landscape            *bool
	PrintBackground      *bool
	Scale                float64
	MarginTop            string
	MarginBottom         string
	MarginLeft           string
	MarginRight          string
	PreferCSSPageSize    *bool
	ExternalAssetsPolicy ExternalAssetsPolicy
}

const defaultScale = 1.0

var lengthPattern = regexp.MustCompile(`^\s*([0-9]+(?:\.[0-9]+)?)\s*([a-zA-Z]*)\s*$`)

var pageSizesInches = map[string]struct {
	width  float64
	height float64
}{
	"A3":     {width: 11.69, height: 16.54},
	"A4":     {width: 8.27, height: 11.69},
	"A5":     {width: 5.83, height: 8.27},
	"LETTER": {width: 8.5, height: 11},
	"LEGAL":  {width: 8.5, height: 14},
}

func pageSizeInches(name string) (width, height float64, err error) {
	size, ok := pageSizesInches[strings.ToUpper(name)]
	if !ok {
		return 0, 0, pdfgen.NewError(pdfgen.KindValidation, fmt.Sprintf("unsupported pdf page size: %s", name), nil)
	}
	return size.width, size.height, nil
}

func parseLengthInches(value string) (float64, error) {
	matches := lengthPattern.FindStringSubmatch(value)
	if len(matches) != 3 {
		return 0, pdfgen.NewError(pdfgen.KindValidation, fmt.Sprintf("invalid pdf length: %s", value), nil)
	}

	raw := matches[1]
	unit := strings.ToLower(matches[2])
	if unit == "" {
		unit = "in"
	}

	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, pdfgen.NewError(pdfgen.KindValidation, fmt.Sprintf("invalid pdf length: %s", value), err)
	}

	switch unit {
	case "in":
		return amount, nil
	case "cm":
		return amount / 2.54, nil
	case "mm":
		return amount / 25.4, nil
	case "pt":
		return amount / 72.0, nil
	case "px":
		return amount / 96.0, nil
	default:
		return 0, pdfgen.NewError(pdfgen.KindValidation, fmt.Sprintf("unsupported pdf length unit: %s", unit), nil)
	}
}

func boolPtr(value bool) *bool {
	return &value
}
