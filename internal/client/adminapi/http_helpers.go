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

package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"dashboard-api/internal/client"
)

// errorEnvelope is the backend's failure convention: {error, details?}
type errorEnvelope struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// buildURL joins the base URL with path segments ensuring single slashes
func (c *Client) buildURL(parts ...string) string {
	base := strings.TrimRight(c.cfg.BaseURL, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.Trim(p, "/")
		if trimmed == "" {
			continue
		}
		for _, sub := range strings.Split(trimmed, "/") {
			if sub != "" {
				segments = append(segments, url.PathEscape(sub))
			}
		}
	}
	if len(segments) == 0 {
		return base
	}
	return base + "/" + strings.Join(segments, "/")
}

// newJSONRequest marshals v to JSON (if non-nil) and builds the request
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

// doAndDecode executes the request and decodes a 2xx JSON body into out.
// A 204 (or nil out) discards the body. Non-2xx responses become APIError
// with the {error, details} envelope when present, falling back to the
// generic HTTP status text.
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

// doDelete executes a delete request, treating 404 as success since deletes
// are idempotent.
func (c *Client) doDelete(req *http.Request) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 || resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return decodeAPIError(resp)
}

// decodeAPIError turns a non-2xx response into a structured APIError
func decodeAPIError(resp *http.Response) error {
	b, _ := io.ReadAll(resp.Body)
	var envelope errorEnvelope
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
