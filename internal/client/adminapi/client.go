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
	"net/http"

	"dashboard-api/config"
	"dashboard-api/internal/client"
)

// Client is the typed wrapper over the gateway admin API. It is stateless;
// the server-held API key is attached to every request so secret material
// never reaches the browser.
type Client struct {
	cfg        config.Upstream
	httpClient *client.HTTPClient
}

// NewClient creates an admin-API client from upstream configuration
func NewClient(cfg config.Upstream) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: client.NewHTTPClient(cfg.Timeout()),
	}
}

// do executes the request with the admin credential header injected
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.cfg.HeaderName != "" && c.cfg.APIKey != "" {
		req.Header.Set(c.cfg.HeaderName, c.cfg.APIKey)
	}
	return c.httpClient.Do(req)
}
