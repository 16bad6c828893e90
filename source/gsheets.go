package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://docs.google.com"
	DefaultTimeout = 15 * time.Second

	maxBodyBytes  = 8 << 20
	byteOrderMark = "\ufeff"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type GoogleSheetsConfig struct {
	BaseURL           string
	SpreadsheetID     string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64
	HTTPClient        httpDoer
}

// GoogleSheets reads tabs of a spreadsheet shared as "anyone with the link"
// through the gviz CSV export. The endpoint identifier is the tab gid.
type GoogleSheets struct {
	baseURL       string
	spreadsheetID string
	userAgent     string
	httpClient    httpDoer
	limiter       *rate.Limiter
}

// StatusError reports a non-success HTTP response for one endpoint.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("fetch endpoint %s: HTTP %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("fetch endpoint %s: HTTP %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

func NewGoogleSheets(cfg GoogleSheetsConfig) (*GoogleSheets, error) {
	spreadsheetID := strings.TrimSpace(cfg.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet ID is required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsedBase, err := url.Parse(baseURL)
	if err != nil || parsedBase.Scheme == "" || parsedBase.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	doer := cfg.HTTPClient
	if doer == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		doer = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &GoogleSheets{
		baseURL:       baseURL,
		spreadsheetID: spreadsheetID,
		userAgent:     strings.TrimSpace(cfg.UserAgent),
		httpClient:    doer,
		limiter:       limiter,
	}, nil
}

// CategoryURL returns the CSV export URL of the tab with the given gid.
func (s *GoogleSheets) CategoryURL(gid string) string {
	return fmt.Sprintf(
		"%s/spreadsheets/d/%s/gviz/tq?tqx=out:csv&gid=%s",
		s.baseURL,
		url.PathEscape(s.spreadsheetID),
		url.QueryEscape(gid),
	)
}

func (s *GoogleSheets) FetchCategoryText(ctx context.Context, endpoint string) (string, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("wait for request slot: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.CategoryURL(endpoint), nil)
	if err != nil {
		return "", fmt.Errorf("create request for endpoint %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")
	req.Header.Set("Cache-Control", "no-store")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request endpoint %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("read endpoint %s body: %w", endpoint, err)
	}
	if len(body) > maxBodyBytes {
		return "", fmt.Errorf("endpoint %s body exceeds %d bytes", endpoint, maxBodyBytes)
	}

	return strings.TrimPrefix(string(body), byteOrderMark), nil
}
