// Package swimcloud talks to swimcloud.com: the swimmer and team JSON APIs and
// the roster, recruiting and team index pages
package swimcloud

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/myusername/swim-scraper/pkg/scraper"
	"github.com/myusername/swim-scraper/pkg/teams"
)

const (
	// DefaultBaseURL is the swimcloud site root
	DefaultBaseURL = "https://www.swimcloud.com"
	// DefaultBrowserUserAgent is sent on HTML page requests
	DefaultBrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/81.0.4044.138 Safari/537.36"
	// DefaultReferer is sent on HTML page requests
	DefaultReferer = "https://google.com/"
	// DefaultPageDelay is the pause between team index pages
	DefaultPageDelay = 50 * time.Millisecond
)

var (
	// ErrInvalidGender is returned when a gender other than "M" or "F" is requested
	ErrInvalidGender = errors.New("gender must be M or F")
	// ErrUnknownTeam is returned when a team name is not in the reference table
	ErrUnknownTeam = errors.New("unknown team")
	// ErrUnknownState is returned when a recruiting state name has no abbreviation
	ErrUnknownState = errors.New("unknown state")
)

// Options configures a Client
type Options struct {
	BaseURL          string
	UserAgent        string
	BrowserUserAgent string
	Referer          string
	PageDelay        time.Duration
	Logger           *zap.Logger
	// Now returns the current time, used to pick the default season
	Now func() time.Time
}

// Client fetches and normalizes swimcloud data
type Client struct {
	fetcher scraper.Fetcher
	teams   *teams.Service
	opts    Options
	logger  *zap.Logger
}

// NewClient creates a client that fetches through f and resolves teams
// through svc. A nil svc resolves against an empty table.
func NewClient(f scraper.Fetcher, svc *teams.Service, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = scraper.DefaultUserAgent
	}
	if opts.BrowserUserAgent == "" {
		opts.BrowserUserAgent = DefaultBrowserUserAgent
	}
	if opts.Referer == "" {
		opts.Referer = DefaultReferer
	}
	if opts.PageDelay < 0 {
		opts.PageDelay = 0
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if svc == nil {
		svc = teams.NewService(nil, opts.Logger)
	}

	return &Client{
		fetcher: f,
		teams:   svc,
		opts:    opts,
		logger:  opts.Logger,
	}
}

// Teams returns the reference table service used by the client
func (c *Client) Teams() *teams.Service {
	return c.teams
}

func (c *Client) url(format string, args ...any) string {
	return c.opts.BaseURL + fmt.Sprintf(format, args...)
}

func (c *Client) getJSON(ctx context.Context, url string, params map[string]string) ([]byte, error) {
	return c.fetcher.Get(ctx, url, params, map[string]string{
		"User-Agent": c.opts.UserAgent,
		"Accept":     "application/json",
	})
}

func (c *Client) getPage(ctx context.Context, url string, params map[string]string) (string, error) {
	body, err := c.fetcher.Get(ctx, url, params, map[string]string{
		"User-Agent": c.opts.BrowserUserAgent,
		"Referer":    c.opts.Referer,
	})
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func checkGender(gender string) error {
	if gender != "M" && gender != "F" {
		return fmt.Errorf("%w: got %q", ErrInvalidGender, gender)
	}
	return nil
}
