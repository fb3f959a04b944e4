/*
 *  Copyright (c) 2026, APIBlaze, Inc. All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Sentinel errors for the two recoverable-by-retry failure classes. They are
// distinguished from application errors (APIError), which must not be
// silently retried.
var (
	ErrRequestTimeout = errors.New("request timeout")
	ErrNetworkError   = errors.New("network error")
)

// APIError is a structured non-2xx response from an upstream service
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

// Error implements the error interface for APIError
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("upstream error (%d): %s: %s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("upstream error (%d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an upstream 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsConflict reports whether err is an upstream 409
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// IsRetryable reports whether the error is a timeout or transport failure
// that a caller may retry by re-invoking the action.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRequestTimeout) || errors.Is(err, ErrNetworkError)
}

// HTTPClient wraps an http.Client with a default per-request timeout and
// error normalization. Callers override the timeout by attaching their own
// deadline to the request context.
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// NewHTTPClient creates a client with the given default timeout
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		client:  &http.Client{},
		timeout: timeout,
	}
}

// Do executes the request. A timeout-triggered abort surfaces as
// ErrRequestTimeout; any other transport failure as ErrNetworkError.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	cancel := context.CancelFunc(func() {})
	if _, ok := ctx.Deadline(); !ok {
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		req = req.WithContext(ctx)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		cancel()
		if isTimeout(ctx, err) {
			return nil, fmt.Errorf("%w after %s: %s %s", ErrRequestTimeout, c.timeout, req.Method, req.URL.Path)
		}
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	// The body must stay readable after Do returns; tie the context's
	// lifetime to the body instead of cancelling here.
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
