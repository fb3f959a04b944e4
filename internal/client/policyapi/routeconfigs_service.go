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
	"context"
	"net/http"

	"dashboard-api/internal/client"
	"dashboard-api/internal/dto"
	"dashboard-api/internal/model"
)

// GetRouteConfigs fetches the persisted route overrides for project+version.
// A 404 means nothing was ever saved and yields an empty list.
func (c *Client) GetRouteConfigs(ctx context.Context, projectID, apiVersion string) ([]model.RouteEntry, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, c.buildURL("route-configs", projectID, apiVersion), nil)
	if err != nil {
		return nil, err
	}
	var out dto.RouteConfigsResponse
	if err := c.doAndDecode(req, &out); err != nil {
		if client.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out.Routes, nil
}

// PutRouteConfig upserts one route override. The update is attempted first;
// a 404 falls back to a single create call.
func (c *Client) PutRouteConfig(ctx context.Context, projectID, apiVersion string, entry model.RouteEntry) error {
	url := c.buildURL("route-configs", projectID, apiVersion, entry.Path, entry.Method)
	req, err := c.newJSONRequest(ctx, http.MethodPut, url, entry)
	if err != nil {
		return err
	}
	err = c.doAndDecode(req, nil)
	if err == nil || !client.IsNotFound(err) {
		return err
	}

	// Route not known to the backend yet; create it. A second failure
	// surfaces to the caller.
	req, err = c.newJSONRequest(ctx, http.MethodPost, url, entry)
	if err != nil {
		return err
	}
	return c.doAndDecode(req, nil)
}

// DeleteRouteConfig removes one route override; 404 is treated as success
func (c *Client) DeleteRouteConfig(ctx context.Context, projectID, apiVersion, path, method string) error {
	url := c.buildURL("route-configs", projectID, apiVersion, path, method)
	req, err := c.newJSONRequest(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	err = c.doAndDecode(req, nil)
	if err != nil && client.IsNotFound(err) {
		return nil
	}
	return err
}
