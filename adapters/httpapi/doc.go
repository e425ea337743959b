// Package httpapi exposes the PDF generation pipeline over HTTP using
// fiber: the generate endpoint, the raw-HTML debug route, health, static
// asset passthrough and the Basic credential gate.
package httpapi
