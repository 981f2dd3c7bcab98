package csvfeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	perr "csvconnector/internal/platform/errors"
	"csvconnector/internal/services/connector/domain"
)

const (
	// DefaultTimeout bounds the whole GET including the body read
	DefaultTimeout = 30 * time.Second
	defaultUA      = "csvconnector"
)

// HTTPFetcher implements domain.Fetcher with a single GET
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
	MaxBytes  int64 // 0 = unlimited
}

// FetchOption customises an HTTPFetcher
type FetchOption func(*HTTPFetcher)

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) FetchOption {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.UserAgent = ua
		}
	}
}

// WithMaxBytes caps the body size; larger responses fail the fetch
func WithMaxBytes(n int64) FetchOption {
	return func(f *HTTPFetcher) { f.MaxBytes = n }
}

// WithClient swaps the http client, mostly for tests
func WithClient(c *http.Client) FetchOption {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.Client = c
		}
	}
}

// NewHTTPFetcher creates a fetcher whose client gives up after d (DefaultTimeout when d <= 0)
func NewHTTPFetcher(d time.Duration, opts ...FetchOption) *HTTPFetcher {
	if d <= 0 {
		d = DefaultTimeout
	}
	f := &HTTPFetcher{Client: &http.Client{Timeout: d}, UserAgent: defaultUA}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch GETs url and returns the decoded body
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (domain.Payload, error) {
	if strings.TrimSpace(url) == "" {
		return domain.Payload{}, perr.WithField(perr.Fetchf("source url is empty"), "CSV_API_URL")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Payload{}, perr.Wrapf(err, perr.ErrorCodeFetch, "bad source url %q", url)
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	resp, err := f.Client.Do(req)
	if err != nil {
		return domain.Payload{}, perr.WithOp(perr.Wrapf(err, perr.ErrorCodeFetch, "GET %s", url), "request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return domain.Payload{Status: resp.StatusCode, URL: url},
			perr.Fetchf("GET %s: unexpected status %d", url, resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if f.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, f.MaxBytes+1)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return domain.Payload{}, perr.WithOp(perr.Wrapf(err, perr.ErrorCodeFetch, "GET %s: read body", url), "read_body")
	}
	if f.MaxBytes > 0 && int64(len(raw)) > f.MaxBytes {
		return domain.Payload{}, perr.Fetchf("GET %s: body exceeds %d bytes", url, f.MaxBytes)
	}

	text, err := decodeText(raw)
	if err != nil {
		return domain.Payload{}, perr.WithOp(perr.Wrapf(err, perr.ErrorCodeFetch, "GET %s: decode body", url), "decode")
	}

	return domain.Payload{
		URL:         url,
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        text,
		Bytes:       len(raw),
	}, nil
}

// decodeText strips a byte order mark and converts UTF-16 to UTF-8; input without a BOM is read as UTF-8
func decodeText(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return "", fmt.Errorf("bom decode: %w", err)
	}
	return string(out), nil
}
