package provider

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	appErr "leetcph/pkg/errors"
	"leetcph/pkg/utils/logger"
)

const maxPageBytes = 16 << 20

// HTTPConfig configures the plain HTTP provider.
type HTTPConfig struct {
	ContentClass string
	UserAgent    string
	Timeout      time.Duration
}

// HTTPProvider downloads the page and parses it without running scripts.
// It only works for pages whose statement is present in the served HTML.
type HTTPProvider struct {
	cfg    HTTPConfig
	client *http.Client
}

// NewHTTPProvider creates a provider using client, or a default client when nil.
func NewHTTPProvider(cfg HTTPConfig, client *http.Client) *HTTPProvider {
	if cfg.ContentClass == "" {
		cfg.ContentClass = DefaultContentClass
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &HTTPProvider{cfg: cfg, client: client}
}

func (p *HTTPProvider) Open(ctx context.Context) (Session, error) {
	return &httpSession{cfg: p.cfg, client: p.client}, nil
}

type httpSession struct {
	cfg    HTTPConfig
	client *http.Client
}

func (s *httpSession) FetchBlocks(ctx context.Context, pageURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, appErr.Wrapf(err, appErr.InvalidURL, "build request failed")
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	req.Header.Set("Accept", "text/html")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, requestError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	logger.Debug(ctx, "page downloaded",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, appErr.Newf(appErr.NetworkError, "Unexpected HTTP status %d", resp.StatusCode).
			WithDetail("status", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, requestError(ctx, err)
	}
	blocks, ok := preBlocks(doc, s.cfg.ContentClass)
	if !ok {
		return nil, appErr.Newf(appErr.ContentNotFound, "Content region .%s not found", s.cfg.ContentClass)
	}
	return blocks, nil
}

func (s *httpSession) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

func requestError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return appErr.Wrapf(err, appErr.FetchTimeout, "Timed out loading problem page")
	}
	var timeoutErr interface{ Timeout() bool }
	if errors.As(err, &timeoutErr) && timeoutErr.Timeout() {
		return appErr.Wrapf(err, appErr.FetchTimeout, "Timed out loading problem page")
	}
	return appErr.Wrapf(err, appErr.NetworkError, "request failed: %v", err)
}

// preBlocks finds the first element carrying class and returns the text of
// each pre element below it.
func preBlocks(doc *html.Node, class string) ([]string, bool) {
	region := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && hasClass(n, class)
	})
	if region == nil {
		return nil, false
	}
	var blocks []string
	walk(region, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Pre {
			blocks = append(blocks, textContent(n))
			return false
		}
		return true
	})
	return blocks, true
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if found != nil {
			return false
		}
		if match(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// walk visits n and its descendants depth first; returning false from visit
// skips the children of that node.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		switch {
		case c.Type == html.TextNode:
			b.WriteString(c.Data)
		case c.Type == html.ElementNode && c.DataAtom == atom.Br:
			b.WriteString("\n")
		}
		return true
	})
	return b.String()
}
