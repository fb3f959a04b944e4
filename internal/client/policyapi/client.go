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

package policyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"dashboard-api/config"
	"dashboard-api/internal/client"
)

// Client is the typed wrapper over the policies API holding route-level
// authorization and cache rules.
type Client struct {
	cfg        config.Upstream
	httpClient *client.HTTPClient
}

// NewClient creates a policies-API client from upstream configuration
func NewClient(cfg config.Upstream) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: client.NewHTTPClient(cfg.Timeout()),
	}
}

// buildURL joins the base URL with pre-escaped path segments. Route paths
// contain slashes and must travel as a single segment.
func (c *Client) buildURL(segments ...string) string {
	base := strings.TrimRight(c.cfg.BaseURL, "/")
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	return base + "/" + strings.Join(escaped, "/")
}

func (c *Client) newJSONRequest(ctx context.Context, method, url string, v interface{}) (*http.Request, error) {
	var body io.Reader
	if v != nil {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if v != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do executes the request with the policy credential header injected
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.cfg.HeaderName != "" && c.cfg.APIKey != "" {
		req.Header.Set(c.cfg.HeaderName, c.cfg.APIKey)
	}
	return c.httpClient.Do(req)
}

// doAndDecode executes the request and decodes a 2xx JSON body into out
func (c *Client) doAndDecode(req *http.Request, out interface{}) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	b, _ := io.ReadAll(resp.Body)
	var envelope struct {
		Error   string `json:"error"`
		Details string `json:"details,omitempty"`
	}
	if err := json.Unmarshal(b, &envelope); err == nil && envelope.Error != "" {
		return &client.APIError{
			StatusCode: resp.StatusCode,
			Message:    envelope.Error,
			Details:    envelope.Details,
		}
	}
	return &client.APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}
}
