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
	"context"
	"net/http"

	"dashboard-api/internal/dto"
	"dashboard-api/internal/model"
)

// ListAuthConfigs fetches all auth configs for a team
func (c *Client) ListAuthConfigs(ctx context.Context, teamID string) ([]model.AuthConfig, error) {
	url := c.buildURL("auth-configs") + "?team=" + teamID
	req, err := c.newJSONRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	var out []model.AuthConfig
	if err := c.doAndDecode(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAuthConfig creates a named user pool
func (c *Client) CreateAuthConfig(ctx context.Context, body *dto.CreateAuthConfigRequest) (*model.AuthConfig, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, c.buildURL("auth-configs"), body)
	if err != nil {
		return nil, err
	}
	var out model.AuthConfig
	if err := c.doAndDecode(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAuthConfig renames a user pool
func (c *Client) UpdateAuthConfig(ctx context.Context, configID string, body *dto.UpdateAuthConfigRequest) (*model.AuthConfig, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPatch, c.buildURL("auth-configs", configID), body)
	if err != nil {
		return nil, err
	}
	var out model.AuthConfig
	if err := c.doAndDecode(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAuthConfig deletes a user pool; 404 is treated as success
func (c *Client) DeleteAuthConfig(ctx context.Context, configID string) error {
	req, err := c.newJSONRequest(ctx, http.MethodDelete, c.buildURL("auth-configs", configID), nil)
	if err != nil {
		return err
	}
	return c.doDelete(req)
}

// CreateWithDefaultGitHub is the single server-side composite call wiring the
// platform-default GitHub OAuth app: config + client + provider in one shot.
func (c *Client) CreateWithDefaultGitHub(ctx context.Context, teamID, name string) (*dto.DefaultGitHubAuthResponse, error) {
	body := map[string]string{"team_id": teamID, "name": name}
	req, err := c.newJSONRequest(ctx, http.MethodPost, c.buildURL("auth-configs", "create-with-default-github"), body)
	if err != nil {
		return nil, err
	}
	var out dto.DefaultGitHubAuthResponse
	if err := c.doAndDecode(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
