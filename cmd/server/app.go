package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	enginepdf "github.com/goliatone/go-pdfgen/adapters/pdf"
	storefs "github.com/goliatone/go-pdfgen/adapters/store/fs"

	"github.com/goliatone/go-pdfgen/adapters/httpapi"
	"github.com/goliatone/go-pdfgen/cmd/server/config"
	"github.com/goliatone/go-pdfgen/pdfgen"
)

// App holds the application dependencies.
type App struct {
	Config  config.Config
	Logger  *SimpleLogger
	Service *pdfgen.Service
	engine  pdfgen.Engine
}

// NewApp creates and initializes the application.
func NewApp(cfg config.Config) (*App, error) {
	log := &SimpleLogger{prefix: "go-pdfgen"}

	if cfg.Auth.Username == "" || cfg.Auth.Password == "" {
		return nil, fmt.Errorf("BASIC_USER and BASIC_PASSWORD must be set")
	}

	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	engine, err := buildEngine(cfg.PDF)
	if err != nil {
		return nil, err
	}

	renderer := pdfgen.NewRenderer(cfg.Paths.TemplatesDir)
	compositor := pdfgen.Compositor{
		Engine: engine,
		Store:  storefs.NewStore(cfg.Paths.OutputDir),
	}
	service := pdfgen.NewService(renderer, compositor, log)

	return &App{
		Config:  cfg,
		Logger:  log,
		Service: service,
		engine:  engine,
	}, nil
}

// Close releases app resources.
func (a *App) Close() error {
	if closer, ok := a.engine.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// BuildFiber assembles the fiber app with middleware and routes.
func (a *App) BuildFiber() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "go-pdfgen",
	})

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(httpapi.BasicAuth(httpapi.BasicAuthConfig{
		Username: a.Config.Auth.Username,
		Password: a.Config.Auth.Password,
		Exempt:   []string{"/api/health", "/favicon.ico"},
	}))

	controller := httpapi.NewController(httpapi.Config{
		Service:    a.Service,
		ConfigRoot: a.Config.Paths.ConfigDir,
		Logger:     a.Logger,
	})
	controller.RegisterRoutes(app, httpapi.StaticConfig{Root: a.Config.Paths.AssetsDir})

	return app
}

func buildEngine(cfg config.PDFConfig) (pdfgen.Engine, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	defaults := enginepdf.Options{
		PageSize:     cfg.PageSize,
		Scale:        cfg.Scale,
		MarginTop:    cfg.MarginTop,
		MarginBottom: cfg.MarginBottom,
		MarginLeft:   cfg.MarginLeft,
		MarginRight:  cfg.MarginRight,
	}
	if cfg.PrintBackground {
		defaults.PrintBackground = &cfg.PrintBackground
	}

	switch cfg.Engine {
	case "", "chromium":
		return &enginepdf.ChromiumEngine{
			BrowserPath: cfg.ChromiumPath,
			Headless:    cfg.Headless,
			Timeout:     timeout,
			Args:        cfg.Args,
			Defaults:    defaults,
		}, nil
	case "wkhtmltopdf":
		return enginepdf.WKHTMLTOPDFEngine{
			Command: cfg.WKHTMLTOPDFPath,
			Timeout: timeout,
		}, nil
	default:
		return nil, fmt.Errorf("unknown pdf engine: %s", cfg.Engine)
	}
}

// SimpleLogger is a basic logger implementation.
type SimpleLogger struct {
	prefix string
}

func (l *SimpleLogger) Debugf(format string, args ...any) {
	fmt.Printf("[DEBUG] %s: %s\n", l.prefix, fmt.Sprintf(format, args...))
}

func (l *SimpleLogger) Infof(format string, args ...any) {
	fmt.Printf("[INFO] %s: %s\n", l.prefix, fmt.Sprintf(format, args...))
}

func (l *SimpleLogger) Errorf(format string, args ...any) {
	fmt.Printf("[ERROR] %s: %s\n", l.prefix, fmt.Sprintf(format, args...))
}
