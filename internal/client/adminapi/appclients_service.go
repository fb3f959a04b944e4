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

// ListAppClients fetches the app clients under an auth config
func (c *Client) ListAppClients(ctx context.Context, configID string) ([]model.AppClient, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, c.buildURL("auth-configs", configID, "app-clients"), nil)
	if err != nil {
		return nil, err
	}
	var out []model.AppClient
	if err := c.doAndDecode(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAppClient fetches a single app client. The response never carries the
// client secret; it is shown once at creation only.
func (c *Client) GetAppClient(ctx context.Context, configID, clientID string) (*model.AppClient, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, c.buildURL("auth-configs", configID, "app-clients", clientID), nil)
	if err != nil {
		return nil, err
	}
	var out model.AppClient
	if err := c.doAndDecode(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAppClient registers an OAuth client and returns the one-time secret
func (c *Client) CreateAppClient(ctx context.Context, configID string, body *dto.CreateAppClientRequest) (*dto.AppClientCreatedResponse, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, c.buildURL("auth-configs", configID, "app-clients"), body)
	if err != nil {
		return nil, err
	}
	var out dto.AppClientCreatedResponse
	if err := c.doAndDecode(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAppClient patches URI sets, scopes or the verified flag
func (c *Client) UpdateAppClient(ctx context.Context, configID, clientID string, body *dto.UpdateAppClientRequest) (*model.AppClient, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPatch, c.buildURL("auth-configs", configID, "app-clients", clientID), body)
	if err != nil {
		return nil, err
	}
	var out model.AppClient
	if err := c.doAndDecode(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAppClient deletes an app client; 404 is treated as success
func (c *Client) DeleteAppClient(ctx context.Context, configID, clientID string) error {
	req, err := c.newJSONRequest(ctx, http.MethodDelete, c.buildURL("auth-configs", configID, "app-clients", clientID), nil)
	if err != nil {
		return err
	}
	return c.doDelete(req)
}
