package httpapi

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	errorslib "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pdfgen/pdfgen"
)

// GenerateResponse confirms a persisted PDF.
type GenerateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// HealthResponse describes the health endpoint payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// ErrorResponse describes JSON error responses.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains error details.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// WriteError maps err through the error taxonomy and writes the JSON
// error envelope.
func WriteError(c *fiber.Ctx, err error) error {
	ge := pdfgen.AsGoError(err)
	status := statusForError(ge)
	return c.Status(status).JSON(ErrorResponse{
		Error: ErrorBody{
			Message: ge.Message,
			Code:    ge.TextCode,
		},
	})
}

func statusForError(err *errorslib.Error) int {
	if err == nil {
		return http.StatusInternalServerError
	}
	switch err.TextCode {
	case "unauthorized":
		return http.StatusUnauthorized
	case "unsupported_media_type":
		return http.StatusUnsupportedMediaType
	}
	switch err.Category {
	case errorslib.CategoryValidation:
		return http.StatusBadRequest
	case errorslib.CategoryAuthz:
		return http.StatusForbidden
	case errorslib.CategoryNotFound:
		return http.StatusNotFound
	case errorslib.CategoryOperation:
		if err.TextCode == "canceled" {
			return http.StatusConflict
		}
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
