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

// CreateProjectRequest is the single bundled call creating the project record
type CreateProjectRequest struct {
	TeamID       string                       `json:"team_id"`
	Name         string                       `json:"name"`
	Subdomain    string                       `json:"subdomain"`
	APIVersion   string                       `json:"api_version"`
	Source       model.SpecSource             `json:"source"`
	Environments map[string]model.Environment `json:"environments"`
	Throttling   model.Throttling             `json:"throttling"`
	AuthType     string                       `json:"auth_type"` // none | social
	AuthConfigID string                       `json:"auth_config_id,omitempty"`
	AppClientID  string                       `json:"default_app_client_id,omitempty"`
	RequestsAuth model.RequestsAuth           `json:"requests_auth"`
}

// ProjectListResponse is one page of active projects for a team
type ProjectListResponse struct {
	Projects []model.Project `json:"projects"`
	Total    int             `json:"total"`
	Limit    int             `json:"limit"`
	Offset   int             `json:"offset"`
}

// ProjectCheckResponse reports name/subdomain/version availability
type ProjectCheckResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}
