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

package client

import (
	"context"

	"dashboard-api/internal/dto"
	"dashboard-api/internal/model"
)

// ProjectAPI defines the admin-API project operations the dashboard consumes
type ProjectAPI interface {
	ListProjects(ctx context.Context, teamID string, limit, offset int) (*dto.ProjectListResponse, error)
	CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*model.Project, error)
	CheckProjectAvailability(ctx context.Context, teamID, name, subdomain, apiVersion string) (*dto.ProjectCheckResponse, error)
	DeleteProject(ctx context.Context, projectID string) error
}

// AuthAPI defines the admin-API auth-config/app-client/provider operations
type AuthAPI interface {
	ListAuthConfigs(ctx context.Context, teamID string) ([]model.AuthConfig, error)
	CreateAuthConfig(ctx context.Context, req *dto.CreateAuthConfigRequest) (*model.AuthConfig, error)
	UpdateAuthConfig(ctx context.Context, configID string, req *dto.UpdateAuthConfigRequest) (*model.AuthConfig, error)
	DeleteAuthConfig(ctx context.Context, configID string) error
	CreateWithDefaultGitHub(ctx context.Context, teamID, name string) (*dto.DefaultGitHubAuthResponse, error)

	ListAppClients(ctx context.Context, configID string) ([]model.AppClient, error)
	GetAppClient(ctx context.Context, configID, clientID string) (*model.AppClient, error)
	CreateAppClient(ctx context.Context, configID string, req *dto.CreateAppClientRequest) (*dto.AppClientCreatedResponse, error)
	UpdateAppClient(ctx context.Context, configID, clientID string, req *dto.UpdateAppClientRequest) (*model.AppClient, error)
	DeleteAppClient(ctx context.Context, configID, clientID string) error

	ListProviders(ctx context.Context, configID, clientID string) ([]model.SocialProvider, error)
	CreateProvider(ctx context.Context, configID, clientID string, req *dto.ProviderRequest) (*model.SocialProvider, error)
	UpdateProvider(ctx context.Context, configID, clientID, providerID string, req *dto.ProviderRequest) (*model.SocialProvider, error)
	DeleteProvider(ctx context.Context, configID, clientID, providerID string) error
}

// RouteConfigAPI defines the policies-API operations for route overrides
type RouteConfigAPI interface {
	GetRouteConfigs(ctx context.Context, projectID, apiVersion string) ([]model.RouteEntry, error)
	PutRouteConfig(ctx context.Context, projectID, apiVersion string, entry model.RouteEntry) error
	DeleteRouteConfig(ctx context.Context, projectID, apiVersion, path, method string) error
}

// SpecSourceAPI fetches OpenAPI documents from GitHub-hosted sources
type SpecSourceAPI interface {
	ListBranches(ctx context.Context, owner, repo string) ([]string, error)
	FetchFileContent(ctx context.Context, owner, repo, branch, path string) ([]byte, error)
}
