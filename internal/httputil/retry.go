// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"
)

// MinBackoff is the floor for the 429 retry sleep. Tests override this to
// avoid real sleeps.
var MinBackoff = 2 * time.Second

// DoWithRetry executes an HTTP request and retries on HTTP 429 (Too Many
// Requests) with a fixed backoff, indefinitely, until the request succeeds,
// fails with a non-429 status, or the context is cancelled. Callers pass the
// backoff they want between attempts; values below MinBackoff are raised to
// it. On each 429 the response body is drained and closed before sleeping.
//
// The caller sees every non-429 response as-is, including error statuses.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, backoff time.Duration) (*http.Response, error) {
	if backoff < MinBackoff {
		backoff = MinBackoff
	}

	for {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Drain and close the body before retrying the same request.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
