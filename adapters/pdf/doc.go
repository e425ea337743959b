// Package enginepdf provides HTML-to-PDF engines backed by headless
// Chromium (chromedp) or a wkhtmltopdf binary.
package enginepdf
