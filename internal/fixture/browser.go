package fixture

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/metinatakli/cinescope-autotests/internal/config"
	"github.com/playwright-community/playwright-go"
)

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Browser is one Chromium instance shared by a whole suite.
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     config.BrowserConfig
	logger  *slog.Logger
}

func LaunchBrowser(cfg config.BrowserConfig, logger *slog.Logger) (*Browser, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w (run: go run github.com/playwright-community/playwright-go/cmd/playwright install chromium)", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMo.Milliseconds())),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	logger.Info("browser launched", "headless", cfg.Headless, "version", browser.Version())

	return &Browser{pw: pw, browser: browser, cfg: cfg, logger: logger}, nil
}

func (b *Browser) Close() error {
	return errors.Join(b.browser.Close(), b.pw.Stop())
}

// PageSession is a page in its own traced browser context.
type PageSession struct {
	Page playwright.Page

	context   playwright.BrowserContext
	tracePath string
	logger    *slog.Logger
}

// NewPage opens a page in a fresh context with tracing started. The trace
// is written to <trace dir>/<name>.zip when the session is closed.
func (b *Browser) NewPage(name string) (*PageSession, error) {
	bctx, err := b.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("new browser context: %w", err)
	}

	err = bctx.Tracing().Start(playwright.TracingStartOptions{
		Screenshots: playwright.Bool(true),
		Snapshots:   playwright.Bool(true),
		Sources:     playwright.Bool(true),
	})
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("start tracing: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("new page: %w", err)
	}

	page.SetDefaultTimeout(float64(b.cfg.Timeout.Milliseconds()))

	return &PageSession{
		Page:      page,
		context:   bctx,
		tracePath: TracePath(b.cfg.TraceDir, name),
		logger:    b.logger,
	}, nil
}

// Close always attempts every step: page, then trace, then context.
func (p *PageSession) Close() (string, error) {
	var errs []error

	if err := p.Page.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close page: %w", err))
	}

	if err := os.MkdirAll(filepath.Dir(p.tracePath), 0o755); err != nil {
		errs = append(errs, fmt.Errorf("create trace dir: %w", err))
	} else if err := p.context.Tracing().Stop(p.tracePath); err != nil {
		errs = append(errs, fmt.Errorf("stop tracing: %w", err))
	}

	if err := p.context.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close browser context: %w", err))
	}

	err := errors.Join(errs...)
	if err == nil {
		p.logger.Info("trace saved", "path", p.tracePath)
	}

	return p.tracePath, err
}

// TracePath maps a test name onto a file name under dir.
func TracePath(dir, name string) string {
	clean := unsafeFileChars.ReplaceAllString(name, "_")
	if clean == "" {
		clean = "trace"
	}

	return filepath.Join(dir, clean+".zip")
}
