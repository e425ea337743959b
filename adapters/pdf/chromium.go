package enginepdf

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/goliatone/go-pdfgen/pdfgen"
)

// ChromiumEngine renders PDF output using a shared headless Chromium
// instance. Each Render call opens its own tab; the browser itself is
// started lazily and reused across requests.
type ChromiumEngine struct {
	BrowserPath string
	Headless    bool
	Timeout     time.Duration
	Args        []string

	Defaults Options

	initOnce      sync.Once
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

var _ pdfgen.Engine = (*ChromiumEngine)(nil)

// Render executes Chromium-based HTML-to-PDF conversion. Relative asset
// references in the markup resolve against baseDir via an injected
// file:// base tag.
func (e *ChromiumEngine) Render(ctx context.Context, htmlInput []byte, baseDir string) ([]byte, error) {
	if e == nil {
		return nil, pdfgen.NewError(pdfgen.KindInternal, "chromium engine is nil", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if err := e.ensureBrowser(); err != nil {
		return nil, pdfgen.NewError(pdfgen.KindInternal, "chromium engine init failed", err)
	}

	tabCtx, cancel := chromedp.NewContext(e.browserCtx)
	defer cancel()

	execCtx, cancelReq := context.WithCancel(tabCtx)
	defer cancelReq()
	go func() {
		select {
		case <-ctx.Done():
			cancelReq()
		case <-execCtx.Done():
		}
	}()
	if e.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		execCtx, cancelTimeout = context.WithTimeout(execCtx, e.Timeout)
		defer cancelTimeout()
	}

	options := e.defaultOptions()
	input := injectBaseHref(htmlInput, fileBaseURL(baseDir))

	var pdf []byte
	actions := []chromedp.Action{}
	if options.ExternalAssetsPolicy == ExternalAssetsBlock {
		actions = append(actions,
			network.Enable(),
			network.SetBlockedURLs([]string{"http://*", "https://*"}),
		)
	}

	actions = append(actions,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(input)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			params, err := buildPrintToPDFParams(options)
			if err != nil {
				return err
			}
			pdf, _, err = params.Do(ctx)
			return err
		}),
	)

	if err := chromedp.Run(execCtx, actions...); err != nil {
		return nil, pdfgen.NewError(pdfgen.KindComposition, "chromium pdf render failed", err)
	}
	return pdf, nil
}

// Close releases Chromium resources if they have been initialized.
func (e *ChromiumEngine) Close() error {
	if e == nil {
		return nil
	}
	if e.browserCancel != nil {
		e.browserCancel()
	}
	if e.allocCancel != nil {
		e.allocCancel()
	}
	return nil
}

func (e *ChromiumEngine) ensureBrowser() error {
	e.initOnce.Do(func() {
		options := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
		if e.BrowserPath != "" {
			options = append(options, chromedp.ExecPath(e.BrowserPath))
		}
		options = append(options, chromedp.Flag("headless", e.Headless))
		// Templates reference file:// assets from a document set via CDP.
		options = append(options, chromedp.Flag("allow-file-access-from-files", true))
		options = append(options, allocatorOptionsFromArgs(e.Args)...)

		e.allocCtx, e.allocCancel = chromedp.NewExecAllocator(context.Background(), options...)
		e.browserCtx, e.browserCancel = chromedp.NewContext(e.allocCtx)
	})
	if e.allocCtx == nil || e.browserCtx == nil {
		return errors.New("chromium allocator unavailable")
	}
	return nil
}

func (e *ChromiumEngine) defaultOptions() Options {
	defaults := e.Defaults
	if defaults.Scale == 0 {
		defaults.Scale = defaultScale
	}
	if defaults.PrintBackground == nil {
		defaults.PrintBackground = boolPtr(true)
	}
	return defaults
}

func buildPrintToPDFParams(opts Options) (*page.PrintToPDFParams, error) {
	params := page.PrintToPDF()

	scale := opts.Scale
	if scale == 0 {
		scale = defaultScale
	}
	if scale < 0.1 || scale > 2.0 {
		return nil, pdfgen.NewError(pdfgen.KindValidation, "pdf scale must be between 0.1 and 2.0", nil)
	}
	params = params.WithScale(scale)

	if opts.Landscape != nil {
		params = params.WithLandscape(*opts.Landscape)
	}
	if opts.PrintBackground != nil {
		params = params.WithPrintBackground(*opts.PrintBackground)
	}

	preferCSS := false
	if opts.PreferCSSPageSize != nil {
		preferCSS = *opts.PreferCSSPageSize
	} else if opts.PageSize == "" {
		preferCSS = true
	}
	if preferCSS {
		params = params.WithPreferCSSPageSize(true)
	}

	if opts.PageSize != "" {
		width, height, err := pageSizeInches(opts.PageSize)
		if err != nil {
			return nil, err
		}
		params = params.WithPaperWidth(width).WithPaperHeight(height)
	}

	if opts.MarginTop != "" {
		value, err := parseLengthInches(opts.MarginTop)
		if err != nil {
			return nil, err
		}
		params = params.WithMarginTop(value)
	}
	if opts.MarginBottom != "" {
		value, err := parseLengthInches(opts.MarginBottom)
		if err != nil {
			return nil, err
		}
		params = params.WithMarginBottom(value)
	}
	if opts.MarginLeft != "" {
		value, err := parseLengthInches(opts.MarginLeft)
		if err != nil {
			return nil, err
		}
		params = params.WithMarginLeft(value)
	}
	if opts.MarginRight != "" {
		value, err := parseLengthInches(opts.MarginRight)
		if err != nil {
			return nil, err
		}
		params = params.WithMarginRight(value)
	}

	return params, nil
}

// fileBaseURL converts a template directory into a file:// URL suitable
// for a <base href>. Returns "" when dir is empty or not resolvable.
func fileBaseURL(dir string) string {
	if strings.TrimSpace(dir) == "" {
		return ""
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	base := u.String()
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

func injectBaseHref(htmlInput []byte, baseURL string) []byte {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return htmlInput
	}

	lower := strings.ToLower(string(htmlInput))
	if strings.Contains(lower, "<base") {
		return htmlInput
	}

	baseTag := fmt.Sprintf(`<base href="%s">`, html.EscapeString(baseURL))
	if headIdx := strings.Index(lower, "<head"); headIdx >= 0 {
		if end := strings.Index(lower[headIdx:], ">"); end >= 0 {
			insertPos := headIdx + end + 1
			return append(append([]byte{}, htmlInput[:insertPos]...), append([]byte(baseTag), htmlInput[insertPos:]...)...)
		}
	}

	if htmlIdx := strings.Index(lower, "<html"); htmlIdx >= 0 {
		if end := strings.Index(lower[htmlIdx:], ">"); end >= 0 {
			insertPos := htmlIdx + end + 1
			injected := fmt.Sprintf("<head>%s</head>", baseTag)
			return append(append([]byte{}, htmlInput[:insertPos]...), append([]byte(injected), htmlInput[insertPos:]...)...)
		}
	}

	return append([]byte(baseTag), htmlInput...)
}

func allocatorOptionsFromArgs(args []string) []chromedp.ExecAllocatorOption {
	options := make([]chromedp.ExecAllocatorOption, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		arg = strings.TrimPrefix(arg, "--")
		if arg == "" {
			continue
		}
		if name, value, ok := strings.Cut(arg, "="); ok {
			options = append(options, chromedp.Flag(name, value))
			continue
		}
		options = append(options, chromedp.Flag(arg, true))
	}
	return options
}
