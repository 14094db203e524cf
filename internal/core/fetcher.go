package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is the user agent string sent with every request.
	DefaultUserAgent = "duckfetch/1.0"

	// DefaultMaxBytes caps the size of a single fetched resource.
	DefaultMaxBytes int64 = 5 << 20
)

// FetcherOptions configures a Fetcher.
type FetcherOptions struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
	Client    *http.Client // Optional; overrides Timeout when set
	Logger    *slog.Logger
}

// Fetcher retrieves text resources over HTTP(S). All failures are returned
// as FetchResult values; Fetch never returns an error.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
	log       *slog.Logger
}

// NewFetcher creates a Fetcher, filling unset options with defaults.
func NewFetcher(opts FetcherOptions) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:    client,
		userAgent: opts.UserAgent,
		maxBytes:  opts.MaxBytes,
		log:       logger,
	}
}

// Fetch issues a single GET for rawURL. OK is set for 2xx responses only.
// Transport-level failures yield Status 0 and a short diagnostic in Err.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) FetchResult {
	result := FetchResult{URL: rawURL}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		result.Err = "invalid URL"
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		result.Err = fmt.Sprintf("building request: %v", err)
		return result
	}
	req.Header.Set("User-Agent", f.userAgent)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		result.Err = diagnose(err)
		f.log.Debug("fetch failed", "url", rawURL, "error", err)
		return result
	}
	defer func() { _ = resp.Body.Close() }()
	result.Status = resp.StatusCode

	// Read one byte past the limit so oversized bodies can be detected.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		result.Err = fmt.Sprintf("reading response body: %v", err)
		return result
	}

	if int64(len(body)) > f.maxBytes {
		result.Content = string(body[:f.maxBytes])
		result.Err = fmt.Sprintf("response exceeds %d bytes", f.maxBytes)
		return result
	}
	result.Content = string(body)
	result.OK = resp.StatusCode >= 200 && resp.StatusCode < 300
	if !result.OK {
		result.Err = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}

	f.log.Debug("fetched", "url", rawURL, "status", resp.StatusCode,
		"bytes", len(body), "elapsed", time.Since(start))
	return result
}

// diagnose reduces a transport error to a short, stable description.
func diagnose(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such host"):
		return "host not found"
	case strings.Contains(msg, "connection refused"):
		return "connection refused"
	case strings.Contains(msg, "Client.Timeout") || strings.Contains(msg, "deadline exceeded"):
		return "request timed out"
	case strings.Contains(msg, "context canceled"):
		return "request canceled"
	}
	return msg
}
