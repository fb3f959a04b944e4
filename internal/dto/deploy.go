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

// DeployRequest carries everything one deploy action needs. The three social
// auth paths are mutually exclusive: ReuseAuthConfigID set, BringOwnProvider
// true, or neither (platform-default GitHub OAuth app).
type DeployRequest struct {
	TeamID     string `json:"team_id"`
	Name       string `json:"name"`
	Subdomain  string `json:"subdomain"`
	APIVersion string `json:"api_version"`

	// EditingProjectID is set when the deploy replaces an existing project
	EditingProjectID string `json:"editing_project_id,omitempty"`

	Source       model.SpecSource             `json:"source"`
	Environments map[string]model.Environment `json:"environments"`
	Throttling   model.Throttling             `json:"throttling"`

	SocialAuthEnabled bool `json:"social_auth_enabled"`

	// Path (a): reuse an existing config + client
	ReuseAuthConfigID string `json:"reuse_auth_config_id,omitempty"`
	ReuseAppClientID  string `json:"reuse_app_client_id,omitempty"`

	// Path (b): bring your own provider credentials
	BringOwnProvider bool              `json:"bring_own_provider,omitempty"`
	Providers        []ProviderRequest `json:"providers,omitempty"`

	// Auth-method derivation inputs. Empty AuthMethods with social auth off
	// yields a passthrough policy.
	AuthMethods []AuthMethodInput `json:"auth_methods,omitempty"`

	// Staged route-level overrides persisted after the project exists
	Routes []model.RouteEntry `json:"routes,omitempty"`
}

// AuthMethodInput is one user-selected verification mechanism. Issuer,
// audience and endpoint strings may contain the {projectName}, {apiVersion}
// and {appClientId} placeholders.
type AuthMethodInput struct {
	Type      string   `json:"type"` // jwt | opaque | api_key
	Issuers   []string `json:"issuers,omitempty"`
	Audiences []string `json:"audiences,omitempty"`
	Endpoint  string   `json:"endpoint,omitempty"`
	Header    string   `json:"header,omitempty"`
}

// DeployResponse reports the outcome of one deploy action
type DeployResponse struct {
	Project *model.Project `json:"project"`
	// RoutesPersisted is the count of staged overrides written
	RoutesPersisted int `json:"routes_persisted"`
}

// StatusEvent is pushed over the status stream while a deploy progresses
type StatusEvent struct {
	TeamID    string                 `json:"team_id"`
	ProjectID string                 `json:"project_id,omitempty"`
	Name      string                 `json:"name"`
	Stage     string                 `json:"stage"`
	Status    model.DeploymentStatus `json:"status"`
	Error     string                 `json:"error,omitempty"`
}
