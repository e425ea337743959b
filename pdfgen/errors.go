package pdfgen

import (
	"context"
	"errors"

	errorslib "github.com/goliatone/go-errors"
)

// ErrorKind defines pdfgen error kinds.
type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindUnauthorized     ErrorKind = "unauthorized"
	KindNotFound         ErrorKind = "not_found"
	KindUnsupportedMedia ErrorKind = "unsupported_media"
	KindRender           ErrorKind = "render"
	KindComposition      ErrorKind = "composition"
	KindTimeout          ErrorKind = "timeout"
	KindCanceled         ErrorKind = "canceled"
	KindInternal         ErrorKind = "internal"
)

// PipelineError wraps errors with a kind.
type PipelineError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *PipelineError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewError creates a new pipeline error.
func NewError(kind ErrorKind, msg string, err error) *PipelineError {
	return &PipelineError{Kind: kind, Msg: msg, Err: err}
}

// AsGoError maps an error into a go-errors error.
func AsGoError(err error) *errorslib.Error {
	if err == nil {
		return nil
	}

	var ge *errorslib.Error
	if errors.As(err, &ge) {
		return ge
	}

	kind := KindInternal
	msg := err.Error()

	var perr *PipelineError
	if errors.As(err, &perr) {
		kind = perr.Kind
		if perr.Msg != "" {
			msg = perr.Error()
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		kind = KindCanceled
	}

	switch kind {
	case KindValidation:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode("validation")
	case KindUnauthorized:
		return errorslib.New(msg, errorslib.CategoryAuthz).WithTextCode("unauthorized")
	case KindNotFound:
		return errorslib.New(msg, errorslib.CategoryNotFound).WithTextCode("not_found")
	case KindUnsupportedMedia:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode("unsupported_media_type")
	case KindRender:
		return errorslib.New(msg, errorslib.CategoryInternal).WithTextCode("render_failed")
	case KindComposition:
		return errorslib.New(msg, errorslib.CategoryInternal).WithTextCode("composition_failed")
	case KindTimeout:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("timeout")
	case KindCanceled:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("canceled")
	default:
		return errorslib.New(msg, errorslib.CategoryInternal).WithTextCode("internal")
	}
}

// KindFromError maps an error to its pipeline error kind.
func KindFromError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var perr *PipelineError
	if errors.As(err, &perr) {
		return perr.Kind
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}

	return KindInternal
}
