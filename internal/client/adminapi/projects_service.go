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
	"strconv"

	"dashboard-api/internal/dto"
	"dashboard-api/internal/model"
)

// ListProjects fetches one page of active projects for a team
func (c *Client) ListProjects(ctx context.Context, teamID string, limit, offset int) (*dto.ProjectListResponse, error) {
	url := c.buildURL("proxies") +
		"?team=" + teamID +
		"&status=active" +
		"&limit=" + strconv.Itoa(limit) +
		"&offset=" + strconv.Itoa(offset)
	req, err := c.newJSONRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	var out dto.ProjectListResponse
	if err := c.doAndDecode(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProject issues the single bundled project-creation call
func (c *Client) CreateProject(ctx context.Context, body *dto.CreateProjectRequest) (*model.Project, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, c.buildURL("proxies"), body)
	if err != nil {
		return nil, err
	}
	var out model.Project
	if err := c.doAndDecode(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckProjectAvailability checks name/subdomain/version uniqueness
func (c *Client) CheckProjectAvailability(ctx context.Context, teamID, name, subdomain, apiVersion string) (*dto.ProjectCheckResponse, error) {
	url := c.buildURL("projects", "check") +
		"?team=" + teamID +
		"&name=" + name +
		"&subdomain=" + subdomain +
		"&version=" + apiVersion
	req, err := c.newJSONRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	var out dto.ProjectCheckResponse
	if err := c.doAndDecode(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject soft-deletes a project; 404 is treated as success
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	req, err := c.newJSONRequest(ctx, http.MethodDelete, c.buildURL("delete-proxy", projectID), nil)
	if err != nil {
		return err
	}
	return c.doDelete(req)
}
