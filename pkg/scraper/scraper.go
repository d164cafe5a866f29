// Package scraper provides the HTTP client used to fetch swimcloud pages and
// API responses and to download files
package scraper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultUserAgent is sent on API requests unless overridden
const DefaultUserAgent = "Mozilla/5.0"

// Fetcher performs a GET request and returns the response body. A non-2xx
// response is reported as a *StatusError.
type Fetcher interface {
	Get(ctx context.Context, url string, params map[string]string, headers map[string]string) ([]byte, error)
}

// StatusError is returned for responses outside the 2xx range
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("non-2xx status code %d for %s", e.StatusCode, e.URL)
}

// Options configures a Client
type Options struct {
	Timeout          time.Duration
	UserAgent        string
	CloudflareBypass bool
	// RawDir, when set, receives a copy of every response body
	RawDir string
	Logger *zap.Logger
}

// Client is a Fetcher backed by resty
type Client struct {
	http   *resty.Client
	rawDir string
	logger *zap.Logger
	count  atomic.Int64
}

// NewClient creates a client from opts
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetHeader("User-Agent", opts.UserAgent)
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	return &Client{
		http:   client,
		rawDir: opts.RawDir,
		logger: opts.Logger,
	}
}

// Get sends a GET request with the given query parameters and headers
func (c *Client) Get(ctx context.Context, url string, params map[string]string, headers map[string]string) ([]byte, error) {
	log := c.logger.With(zap.String("url", url))
	log.Debug("fetching URL", zap.Any("params", params))

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetHeaders(headers).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("error fetching URL: %w", err)
	}

	log.Debug("HTTP status",
		zap.Int("status", res.StatusCode()),
		zap.String("content_type", res.Header().Get("Content-Type")),
		zap.Int("bytes", len(res.Body())),
	)
	if !res.IsSuccess() {
		return nil, &StatusError{StatusCode: res.StatusCode(), URL: res.Request.URL}
	}

	body := res.Body()
	if c.rawDir != "" {
		c.saveRaw(url, body)
	}
	return body, nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9]+`)

func (c *Client) saveRaw(url string, body []byte) {
	if err := os.MkdirAll(c.rawDir, 0755); err != nil {
		c.logger.Warn("failed to create raw directory", zap.String("dir", c.rawDir), zap.Error(err))
		return
	}

	slug := strings.Trim(unsafeChars.ReplaceAllString(strings.TrimPrefix(url, "https://"), "_"), "_")
	if len(slug) > 120 {
		slug = slug[:120]
	}
	name := filepath.Join(c.rawDir, fmt.Sprintf("%04d_%s.txt", c.count.Add(1), slug))
	if err := SaveContentToFile(name, string(body)); err != nil {
		c.logger.Warn("failed to save raw response", zap.String("file", name), zap.Error(err))
	}
}

// DownloadPDF downloads a PDF file from a URL and saves it locally
func DownloadPDF(ctx context.Context, f Fetcher, url string, localPath string) error {
	body, err := f.Get(ctx, url, nil, map[string]string{"Accept": "application/pdf"})
	if err != nil {
		return fmt.Errorf("error fetching PDF: %w", err)
	}

	if err := os.WriteFile(localPath, body, 0644); err != nil {
		return fmt.Errorf("error saving PDF to file: %w", err)
	}
	return nil
}

// SaveContentToFile saves content to a file
func SaveContentToFile(filename string, content string) error {
	return os.WriteFile(filename, []byte(content), 0644)
}

// ExtractPDFLinks returns the href of every link on a page that points at a PDF
func ExtractPDFLinks(htmlContent string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML content: %w", err)
	}

	var links []string
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		path := strings.ToLower(strings.SplitN(href, "?", 2)[0])
		if !strings.HasSuffix(path, ".pdf") || seen[href] {
			return
		}
		seen[href] = true
		links = append(links, href)
	})
	return links, nil
}

// ResolveRelativeURL resolves a relative URL to an absolute URL
func ResolveRelativeURL(baseURL, relativeURL string) string {
	// Check if the relative URL is already an absolute URL
	if strings.HasPrefix(relativeURL, "http://") || strings.HasPrefix(relativeURL, "https://") {
		return relativeURL
	}

	// If no protocol, assume https
	if !strings.HasPrefix(baseURL, "https://") && !strings.HasPrefix(baseURL, "http://") {
		baseURL = "https://" + baseURL
	}

	// Root relative links keep only the scheme and host of the base
	if strings.HasPrefix(relativeURL, "/") {
		schemeEnd := strings.Index(baseURL, "://") + 3
		if hostEnd := strings.Index(baseURL[schemeEnd:], "/"); hostEnd >= 0 {
			baseURL = baseURL[:schemeEnd+hostEnd]
		}
		return baseURL + relativeURL
	}

	// Get base directory by removing the filename component
	baseDir := baseURL
	lastSlashIndex := strings.LastIndex(baseURL, "/")
	if lastSlashIndex > len("https://") && lastSlashIndex < len(baseURL)-1 {
		baseDir = baseURL[:lastSlashIndex+1]
	} else if !strings.HasSuffix(baseDir, "/") {
		baseDir += "/"
	}

	return baseDir + relativeURL
}
