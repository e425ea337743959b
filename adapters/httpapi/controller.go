package httpapi

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-pdfgen/pdfgen"
)

// Config configures the HTTP controller.
type Config struct {
	Service    *pdfgen.Service
	ConfigRoot string
	Logger     pdfgen.Logger
}

// Controller exposes the PDF generation endpoints.
type Controller struct {
	service    *pdfgen.Service
	configRoot string
	logger     pdfgen.Logger
}

// NewController creates an HTTP controller.
func NewController(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = pdfgen.NopLogger{}
	}
	return &Controller{
		service:    cfg.Service,
		configRoot: cfg.ConfigRoot,
		logger:     logger,
	}
}

// GeneratePDF handles POST /api/generate-pdf.
func (ctl *Controller) GeneratePDF(c *fiber.Ctx) error {
	if ctl == nil || ctl.service == nil {
		return WriteError(c, pdfgen.NewError(pdfgen.KindInternal, "pdf service not configured", nil))
	}
	if !c.Is("json") {
		return WriteError(c, pdfgen.NewError(pdfgen.KindUnsupportedMedia, "Content-Type must be application/json", nil))
	}

	req, err := decodeGenerateRequest(c.Body())
	if err != nil {
		return WriteError(c, err)
	}

	doc, err := ctl.service.Generate(c.UserContext(), req)
	if err != nil {
		return WriteError(c, err)
	}

	if doc.Written() {
		return c.JSON(GenerateResponse{
			Success: true,
			Message: "PDF generated successfully",
			Path:    doc.Path,
		})
	}

	filename := pdfgen.DownloadFilename(req.Template)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(doc.Bytes)
}

// RenderTemplate handles GET /api/render-template. It loads the named
// render config, runs the renderer only, and returns the raw HTML so a
// template's output can be inspected before generating a PDF.
func (ctl *Controller) RenderTemplate(c *fiber.Ctx) error {
	if ctl == nil || ctl.service == nil {
		return WriteError(c, pdfgen.NewError(pdfgen.KindInternal, "pdf service not configured", nil))
	}

	name := c.Query("config", DefaultRenderConfig)
	cfg, renderCtx, err := loadRenderConfig(ctl.configRoot, name)
	if err != nil {
		return WriteError(c, err)
	}

	markup, err := ctl.service.RenderHTML(cfg.Template, renderCtx)
	if err != nil {
		return WriteError(c, err)
	}

	ctl.logger.Debugf("rendered %s via config %s", cfg.Template, name)
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(markup.HTML)
}

// Health handles GET /api/health.
func (ctl *Controller) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "healthy", Service: "pdf-generator"})
}
