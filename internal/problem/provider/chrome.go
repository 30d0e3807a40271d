package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	appErr "leetcph/pkg/errors"
	"leetcph/pkg/utils/logger"
)

const (
	defaultPageTimeout     = 30 * time.Second
	defaultSelectorTimeout = 10 * time.Second
)

// ChromeConfig configures the headless browser provider.
type ChromeConfig struct {
	ContentClass string
	UserAgent    string
	// ExecPath overrides browser discovery.
	ExecPath        string
	Headless        bool
	PageTimeout     time.Duration
	SelectorTimeout time.Duration
}

// ChromeProvider renders the page in a headless browser so client-side
// content is present before the blocks are read.
type ChromeProvider struct {
	cfg ChromeConfig
}

// NewChromeProvider creates a browser-backed provider.
func NewChromeProvider(cfg ChromeConfig) *ChromeProvider {
	if cfg.ContentClass == "" {
		cfg.ContentClass = DefaultContentClass
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.PageTimeout <= 0 {
		cfg.PageTimeout = defaultPageTimeout
	}
	if cfg.SelectorTimeout <= 0 {
		cfg.SelectorTimeout = defaultSelectorTimeout
	}
	return &ChromeProvider{cfg: cfg}
}

// Open starts a browser process. The process lives until Close.
func (p *ChromeProvider) Open(ctx context.Context) (Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.UserAgent(p.cfg.UserAgent),
		chromedp.Flag("headless", p.cfg.Headless),
	)
	if p.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(p.cfg.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	// First Run on the browser context starts the process.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, appErr.Wrapf(err, appErr.NetworkError, "launch browser failed: %v", err)
	}
	logger.Debug(ctx, "browser started", zap.Bool("headless", p.cfg.Headless))
	return &chromeSession{
		cfg:         p.cfg,
		browserCtx:  browserCtx,
		cancelAlloc: cancelAlloc,
	}, nil
}

type chromeSession struct {
	cfg         ChromeConfig
	browserCtx  context.Context
	cancelAlloc context.CancelFunc

	closeOnce sync.Once
	closeErr  error
}

func (s *chromeSession) FetchBlocks(ctx context.Context, pageURL string) ([]string, error) {
	tabCtx, cancelTab := chromedp.NewContext(s.browserCtx)
	defer cancelTab()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	if err := chromedp.Run(tabCtx); err != nil {
		return nil, chromeError(ctx, err, appErr.NetworkError, "open tab failed")
	}

	navCtx, cancelNav := context.WithTimeout(tabCtx, s.cfg.PageTimeout)
	err := chromedp.Run(navCtx, chromedp.Navigate(pageURL))
	cancelNav()
	if err != nil {
		return nil, chromeError(ctx, err, appErr.FetchTimeout, "Timed out loading problem page")
	}

	selector := "." + s.cfg.ContentClass
	waitCtx, cancelWait := context.WithTimeout(tabCtx, s.cfg.SelectorTimeout)
	err = chromedp.Run(waitCtx, chromedp.WaitVisible(selector, chromedp.ByQuery))
	cancelWait()
	if err != nil {
		return nil, chromeError(ctx, err, appErr.ContentNotFound, fmt.Sprintf("Content region %s not found", selector))
	}

	var blocks []string
	script := fmt.Sprintf(`(() => {
		const root = document.querySelector(%q);
		if (!root) return [];
		return Array.from(root.querySelectorAll("pre")).map(p => p.textContent || "");
	})()`, selector)
	if err := chromedp.Run(tabCtx, chromedp.Evaluate(script, &blocks)); err != nil {
		return nil, chromeError(ctx, err, appErr.NetworkError, "read content region failed")
	}
	return blocks, nil
}

func (s *chromeSession) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = chromedp.Cancel(s.browserCtx)
		s.cancelAlloc()
		if errors.Is(s.closeErr, context.Canceled) {
			s.closeErr = nil
		}
	})
	return s.closeErr
}

// chromeError maps a failed browser step to a coded error. A deadline on the
// caller's context is always a FetchTimeout; a step's own deadline maps to
// onDeadline; anything else is a NetworkError.
func chromeError(ctx context.Context, err error, onDeadline appErr.ErrorCode, msg string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return appErr.Wrapf(err, appErr.FetchTimeout, "Timed out loading problem page")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return appErr.Wrapf(err, onDeadline, "%s", msg)
	}
	return appErr.Wrapf(err, appErr.NetworkError, "%s: %v", msg, err)
}
