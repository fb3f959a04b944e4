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

// ListProviders fetches the social providers wired to an app client
func (c *Client) ListProviders(ctx context.Context, configID, clientID string) ([]model.SocialProvider, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet,
		c.buildURL("auth-configs", configID, "app-clients", clientID, "providers"), nil)
	if err != nil {
		return nil, err
	}
	var out []model.SocialProvider
	if err := c.doAndDecode(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProvider attaches an external identity provider to an app client
func (c *Client) CreateProvider(ctx context.Context, configID, clientID string, body *dto.ProviderRequest) (*model.SocialProvider, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost,
		c.buildURL("auth-configs", configID, "app-clients", clientID, "providers"), body)
	if err != nil {
		return nil, err
	}
	var out model.SocialProvider
	if err := c.doAndDecode(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProvider patches a provider's credentials or token-handling flags
func (c *Client) UpdateProvider(ctx context.Context, configID, clientID, providerID string, body *dto.ProviderRequest) (*model.SocialProvider, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPatch,
		c.buildURL("auth-configs", configID, "app-clients", clientID, "providers", providerID), body)
	if err != nil {
		return nil, err
	}
	var out model.SocialProvider
	if err := c.doAndDecode(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProvider removes a provider; 404 is treated as success
func (c *Client) DeleteProvider(ctx context.Context, configID, clientID, providerID string) error {
	req, err := c.newJSONRequest(ctx, http.MethodDelete,
		c.buildURL("auth-configs", configID, "app-clients", clientID, "providers", providerID), nil)
	if err != nil {
		return err
	}
	return c.doDelete(req)
}
