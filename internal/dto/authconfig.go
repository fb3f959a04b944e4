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

// CreateAuthConfigRequest creates a named user pool
type CreateAuthConfigRequest struct {
	TeamID          string `json:"team_id"`
	Name            string `json:"name" binding:"required,min=1,max=64"`
	BringMyOwnOAuth bool   `json:"bring_my_own_oauth"`
}

// UpdateAuthConfigRequest renames a user pool
type UpdateAuthConfigRequest struct {
	Name string `json:"name" binding:"required,min=1,max=64"`
}

// CreateAppClientRequest registers an OAuth client under an auth config
type CreateAppClientRequest struct {
	Name         string   `json:"name" binding:"required,min=1,max=64"`
	RedirectURIs []string `json:"redirect_uris"`
	SignoutURIs  []string `json:"signout_uris"`
	Scopes       []string `json:"scopes"`
}

// AppClientCreatedResponse is the only place the client secret ever appears;
// it is not retrievable again after this response.
type AppClientCreatedResponse struct {
	Client       model.AppClient `json:"client"`
	ClientSecret string          `json:"client_secret"`
}

// UpdateAppClientRequest patches URI sets and scopes. Nil slices mean
// "leave unchanged"; mandatory scopes are re-added if omitted.
type UpdateAppClientRequest struct {
	Name         *string  `json:"name,omitempty"`
	RedirectURIs []string `json:"redirect_uris,omitempty"`
	SignoutURIs  []string `json:"signout_uris,omitempty"`
	Scopes       []string `json:"scopes,omitempty"`
	Verified     *bool    `json:"verified,omitempty"`
}

// ProviderRequest creates or patches a social provider on an app client
type ProviderRequest struct {
	Type            model.ProviderType `json:"type" binding:"required"`
	OAuthClientID   string             `json:"oauth_client_id"`
	OAuthSecret     string             `json:"oauth_client_secret"`
	Domain          string             `json:"domain,omitempty"`
	MapRefreshToken bool               `json:"map_refresh_token,omitempty"`
	PassIDToken     bool               `json:"pass_id_token,omitempty"`
}

// DefaultGitHubAuthResponse is the result of the single server-side composite
// call wiring the platform-default GitHub OAuth app.
type DefaultGitHubAuthResponse struct {
	AuthConfig model.AuthConfig     `json:"auth_config"`
	AppClient  model.AppClient      `json:"app_client"`
	Provider   model.SocialProvider `json:"provider"`
}
