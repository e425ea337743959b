package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-pdfgen/pdfgen"
)

// DefaultRenderConfig is the render-config filename used by the debug
// route when the query does not name one.
const DefaultRenderConfig = "render_config.json"

type generatePayload struct {
	Template string          `json:"template"`
	Context  json.RawMessage `json:"context"`
	Output   string          `json:"output"`
}

// decodeGenerateRequest parses a generate-pdf JSON body into a pipeline
// request. The context field must be absent or a JSON object; anything
// else is a validation error.
func decodeGenerateRequest(body []byte) (pdfgen.GenerateRequest, error) {
	var payload generatePayload
	decoder := json.NewDecoder(bytes.NewReader(body))
	if err := decoder.Decode(&payload); err != nil {
		return pdfgen.GenerateRequest{}, pdfgen.NewError(pdfgen.KindValidation, "invalid request payload", err)
	}

	if payload.Template == "" {
		return pdfgen.GenerateRequest{}, pdfgen.NewError(pdfgen.KindValidation, "field 'template' is required", nil)
	}

	renderCtx, err := decodeContext(payload.Context)
	if err != nil {
		return pdfgen.GenerateRequest{}, err
	}

	return pdfgen.GenerateRequest{
		Template: payload.Template,
		Context:  renderCtx,
		Output:   payload.Output,
	}, nil
}

func decodeContext(raw json.RawMessage) (pdfgen.Context, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return pdfgen.Context{}, nil
	}
	var renderCtx pdfgen.Context
	if err := json.Unmarshal(raw, &renderCtx); err != nil {
		return nil, pdfgen.NewError(pdfgen.KindValidation, "field 'context' must be a JSON object", err)
	}
	return renderCtx, nil
}

// RenderConfig is an on-disk JSON file describing one render for the
// debug route.
type RenderConfig struct {
	Template string          `json:"template"`
	Context  json.RawMessage `json:"context"`
	Output   string          `json:"output"`
}

// loadRenderConfig resolves name under root (single path component only)
// and parses it as a render config.
func loadRenderConfig(root, name string) (RenderConfig, pdfgen.Context, error) {
	if err := pdfgen.ValidateName(name); err != nil {
		return RenderConfig{}, nil, err
	}

	data, err := os.ReadFile(filepath.Join(root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return RenderConfig{}, nil, pdfgen.NewError(pdfgen.KindNotFound, fmt.Sprintf("render config not found: %s", name), err)
		}
		return RenderConfig{}, nil, pdfgen.NewError(pdfgen.KindInternal, fmt.Sprintf("render config read failed: %s", name), err)
	}

	var cfg RenderConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return RenderConfig{}, nil, pdfgen.NewError(pdfgen.KindInternal, fmt.Sprintf("render config parse failed: %s", name), err)
	}
	if cfg.Template == "" {
		return RenderConfig{}, nil, pdfgen.NewError(pdfgen.KindValidation, fmt.Sprintf("render config %s missing 'template'", name), nil)
	}

	renderCtx, err := decodeContext(cfg.Context)
	if err != nil {
		return RenderConfig{}, nil, err
	}
	return cfg, renderCtx, nil
}
