// Package noaa opens the raw HURDAT2 feed, either from the National Hurricane
// Center over HTTP or from a local copy on disk.
package noaa

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/hurricane-landfall-service/internal/domain"
)

// HTTPSource streams the feed from a URL.
type HTTPSource struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPSource creates a source for url. The timeout covers the whole
// download, body included.
func NewHTTPSource(url string, timeout time.Duration, logger *slog.Logger) *HTTPSource {
	return &HTTPSource{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Name returns the feed URL.
func (s *HTTPSource) Name() string { return s.url }

// Open issues the GET request and returns the response body for streaming.
// Any failure, including a non-200 status, is a *domain.FetchError.
func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, &domain.FetchError{Source: s.url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Source: s.url, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &domain.FetchError{
			Source: s.url,
			Err:    fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	s.logger.Debug("feed response received", "url", s.url, "content_length", resp.ContentLength)
	return resp.Body, nil
}

// CheckReachable sends a HEAD request for the feed URL without downloading
// the body. A transport failure or a status of 400 and above is a
// *domain.FetchError.
func (s *HTTPSource) CheckReachable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.url, nil)
	if err != nil {
		return &domain.FetchError{Source: s.url, Err: fmt.Errorf("create request: %w", err)}
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return &domain.FetchError{Source: s.url, Err: err}
	}
	resp.Body.Close() //nolint:errcheck // HEAD has no body
	if resp.StatusCode >= http.StatusBadRequest {
		return &domain.FetchError{Source: s.url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	return nil
}

// FileSource reads the feed from a local file.
type FileSource struct {
	path string
}

// NewFileSource creates a source for a HURDAT2 file on disk.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the file path.
func (s *FileSource) Name() string { return s.path }

// Open opens the file. Errors are *domain.FetchError.
func (s *FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, &domain.FetchError{Source: s.path, Err: err}
	}
	return f, nil
}

// CheckReachable confirms the file exists and is not a directory.
func (s *FileSource) CheckReachable(_ context.Context) error {
	info, err := os.Stat(s.path)
	if err != nil {
		return &domain.FetchError{Source: s.path, Err: err}
	}
	if info.IsDir() {
		return &domain.FetchError{Source: s.path, Err: fmt.Errorf("%s is a directory", s.path)}
	}
	return nil
}

// Source is implemented by HTTPSource and FileSource.
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// NewSource picks an HTTPSource for http(s) URLs and a FileSource otherwise.
func NewSource(location string, timeout time.Duration, logger *slog.Logger) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, timeout, logger)
	}
	return NewFileSource(strings.TrimPrefix(location, "file://"))
}
