package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"beanmart/internal/common"
)

// Remote fetch policy. Only timeout-class failures are retried; connection
// and HTTP-status failures fail the fetch immediately.
const (
	fetchTimeout  = 60 * time.Second
	fetchMaxBytes = 50 * 1024 * 1024
	fetchAttempts = 3
	fetchBackoff  = 2 * time.Second
)

// FetchErrorKind classifies a failed remote fetch for error translation.
type FetchErrorKind int

const (
	FetchErrorOther FetchErrorKind = iota
	FetchErrorTimeout
	FetchErrorConnect
	FetchErrorNotFound
)

// FetchError is surfaced after the retry budget is exhausted. It unwraps to
// ErrInvalidInput: a URL the server cannot download is the caller's problem.
type FetchError struct {
	Kind FetchErrorKind
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchErrorTimeout:
		return "download timeout"
	case FetchErrorConnect:
		return "failed to connect"
	case FetchErrorNotFound:
		return "image not found at URL"
	default:
		return fmt.Sprintf("failed to download image: %v", e.Err)
	}
}

func (e *FetchError) Unwrap() error { return common.ErrInvalidInput }

// RemoteFetcher downloads URL-sourced images. The zero field values are
// replaced with the production policy above; tests shrink them.
type RemoteFetcher struct {
	Client   *http.Client
	Timeout  time.Duration
	MaxBytes int64
	Attempts int
	Backoff  time.Duration
}

func NewRemoteFetcher() *RemoteFetcher {
	return &RemoteFetcher{}
}

// Fetch performs an HTTP GET with bounded timeout and size cap, retrying
// timeout-class failures up to the attempt budget with a fixed backoff.
// Returns the body and the response content type.
func (f *RemoteFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = fetchTimeout
	}
	maxBytes := f.MaxBytes
	if maxBytes <= 0 {
		maxBytes = fetchMaxBytes
	}
	attempts := f.Attempts
	if attempts <= 0 {
		attempts = fetchAttempts
	}
	backoff := f.Backoff
	if backoff <= 0 {
		backoff = fetchBackoff
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	var lastErr *FetchError
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, "", &FetchError{Kind: FetchErrorTimeout, URL: url, Err: ctx.Err()}
			}
		}

		data, contentType, ferr := f.fetchOnce(ctx, client, url, timeout, maxBytes)
		if ferr == nil {
			return data, contentType, nil
		}
		lastErr = ferr
		if ferr.Kind != FetchErrorTimeout {
			break
		}
	}
	return nil, "", lastErr
}

func (f *RemoteFetcher) fetchOnce(ctx context.Context, client *http.Client, url string, timeout time.Duration, maxBytes int64) ([]byte, string, *FetchError) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", &FetchError{Kind: FetchErrorOther, URL: url, Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", &FetchError{Kind: classifyFetchError(err), URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", &FetchError{Kind: FetchErrorNotFound, URL: url, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", &FetchError{Kind: FetchErrorOther, URL: url, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	// Read one byte past the cap so an at-limit body can be told apart
	// from an oversized one.
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, "", &FetchError{Kind: classifyFetchError(err), URL: url, Err: err}
	}
	if int64(len(data)) > maxBytes {
		return nil, "", &FetchError{Kind: FetchErrorOther, URL: url, Err: fmt.Errorf("response exceeds %d bytes", maxBytes)}
	}

	contentType := resp.Header.Get("Content-Type")
	if idx := strings.IndexByte(contentType, ';'); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	return data, contentType, nil
}

func classifyFetchError(err error) FetchErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return FetchErrorTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FetchErrorTimeout
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return FetchErrorTimeout
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host"):
		return FetchErrorConnect
	default:
		return FetchErrorOther
	}
}
