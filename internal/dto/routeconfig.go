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

package dto

import "dashboard-api/internal/model"

// RouteConfigsResponse is the policy API's wrapper for persisted entries
type RouteConfigsResponse struct {
	Routes []model.RouteEntry `json:"routes"`
}

// SyncRoutesRequest asks for a merged view of a spec against saved overrides
type SyncRoutesRequest struct {
	ProjectID  string `json:"project_id"`
	APIVersion string `json:"api_version"`
	// Spec is the raw OpenAPI document (JSON or YAML)
	Spec []byte `json:"spec"`
}

// RouteGroup is the presentation grouping by base path
type RouteGroup struct {
	BasePath string             `json:"base_path"`
	Routes   []model.RouteEntry `json:"routes"`
}

// SyncRoutesResponse is the merged, grouped view
type SyncRoutesResponse struct {
	Groups []RouteGroup `json:"groups"`
	Total  int          `json:"total"`
}

// SaveRoutesRequest persists staged route overrides for project+version
type SaveRoutesRequest struct {
	ProjectID  string             `json:"project_id"`
	APIVersion string             `json:"api_version"`
	Routes     []model.RouteEntry `json:"routes"`
}

// SaveRoutesResponse reports how many entries actually deviated from
// defaults and were written.
type SaveRoutesResponse struct {
	Persisted int `json:"persisted"`
	Skipped   int `json:"skipped"`
}
