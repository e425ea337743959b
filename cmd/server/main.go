package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/goliatone/go-pdfgen/cmd/server/config"
)

func main() {
	cfg := config.Defaults()

	// Override from environment
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if host := os.Getenv("HOST"); host != "" {
		cfg.Server.Host = host
	}
	if dir := os.Getenv("PDFGEN_TEMPLATES_DIR"); dir != "" {
		cfg.Paths.TemplatesDir = dir
		cfg.Paths.AssetsDir = dir
	}
	if dir := os.Getenv("PDFGEN_OUTPUT_DIR"); dir != "" {
		cfg.Paths.OutputDir = dir
	}
	if dir := os.Getenv("PDFGEN_CONFIG_DIR"); dir != "" {
		cfg.Paths.ConfigDir = dir
	}
	if dir := os.Getenv("PDFGEN_ASSETS_DIR"); dir != "" {
		cfg.Paths.AssetsDir = dir
	}

	cfg.Auth.Username = os.Getenv("BASIC_USER")
	cfg.Auth.Password = os.Getenv("BASIC_PASSWORD")

	// PDF engine overrides
	if engine := os.Getenv("PDFGEN_ENGINE"); engine != "" {
		cfg.PDF.Engine = engine
	}
	if path := os.Getenv("PDFGEN_CHROMIUM_PATH"); path != "" {
		cfg.PDF.ChromiumPath = path
	}
	if path := os.Getenv("PDFGEN_WKHTMLTOPDF_PATH"); path != "" {
		cfg.PDF.WKHTMLTOPDFPath = path
	}
	if headless := os.Getenv("PDFGEN_HEADLESS"); headless != "" {
		if parsed, err := strconv.ParseBool(headless); err == nil {
			cfg.PDF.Headless = parsed
		}
	}
	if args := os.Getenv("PDFGEN_CHROMIUM_ARGS"); args != "" {
		cfg.PDF.Args = splitCSV(args)
	}
	if timeout := os.Getenv("PDFGEN_TIMEOUT"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil && t > 0 {
			cfg.PDF.TimeoutSeconds = t
		}
	}
	if pageSize := os.Getenv("PDFGEN_PAGE_SIZE"); pageSize != "" {
		cfg.PDF.PageSize = pageSize
	}
	if scale := os.Getenv("PDFGEN_SCALE"); scale != "" {
		if parsed, err := strconv.ParseFloat(scale, 64); err == nil {
			cfg.PDF.Scale = parsed
		}
	}
	if printBg := os.Getenv("PDFGEN_PRINT_BACKGROUND"); printBg != "" {
		if parsed, err := strconv.ParseBool(printBg); err == nil {
			cfg.PDF.PrintBackground = parsed
		}
	}
	if margin := os.Getenv("PDFGEN_MARGIN_TOP"); margin != "" {
		cfg.PDF.MarginTop = margin
	}
	if margin := os.Getenv("PDFGEN_MARGIN_BOTTOM"); margin != "" {
		cfg.PDF.MarginBottom = margin
	}
	if margin := os.Getenv("PDFGEN_MARGIN_LEFT"); margin != "" {
		cfg.PDF.MarginLeft = margin
	}
	if margin := os.Getenv("PDFGEN_MARGIN_RIGHT"); margin != "" {
		cfg.PDF.MarginRight = margin
	}

	app, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("failed to create app: %v", err)
	}
	defer app.Close()

	srv := app.BuildFiber()

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	go func() {
		log.Printf("Starting server on http://%s", addr)
		if err := srv.Listen(addr); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
