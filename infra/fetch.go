package infra

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tranvu/cinesync/utils"
)

// ErrMaxRetries is the terminal failure after every attempt was exhausted.
var ErrMaxRetries = errors.New("max retries exceeded")

// FetchService retrieves remote resources with exponential backoff on
// rate-limiting and transport failures.
type FetchService struct {
	client *http.Client
	sleep  func(ctx context.Context, d time.Duration) error
}

func InitFetchService() *FetchService {
	return &FetchService{
		client: &http.Client{Timeout: 5 * time.Minute},
		sleep:  sleepWithContext,
	}
}

// NewFetchService allows injecting the HTTP client and the wait function.
func NewFetchService(client *http.Client, sleep func(ctx context.Context, d time.Duration) error) *FetchService {
	if client == nil {
		client = http.DefaultClient
	}
	if sleep == nil {
		sleep = sleepWithContext
	}
	return &FetchService{client: client, sleep: sleep}
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// FetchWithRetry performs a GET against url. A 429 response or a transport
// error triggers a retry after 2^attempt seconds, up to maxAttempts. Any
// other non-success status is returned immediately as an UpstreamError with
// the body preserved. The caller owns the returned body.
func (f *FetchService) FetchWithRetry(ctx context.Context, url string, maxAttempts int, headers map[string]string) (*http.Response, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, utils.NewValidationError("invalid fetch url %q: %v", url, err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = err
			if err := f.backoff(ctx, attempt, maxAttempts); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("rate limited (status %d)", resp.StatusCode)
			if err := f.backoff(ctx, attempt, maxAttempts); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			_ = resp.Body.Close()
			return nil, &utils.UpstreamError{Status: resp.StatusCode, Body: string(body)}
		}

		return resp, nil
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", ErrMaxRetries, maxAttempts, lastErr)
}

func (f *FetchService) backoff(ctx context.Context, attempt, maxAttempts int) error {
	if attempt == maxAttempts {
		// no wait after the final attempt
		return nil
	}
	return f.sleep(ctx, time.Duration(1<<uint(attempt))*time.Second)
}
