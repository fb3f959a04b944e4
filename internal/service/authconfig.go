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

package service

import (
	"context"

	"dashboard-api/internal/cache"
	"dashboard-api/internal/client"
	"dashboard-api/internal/constants"
	"dashboard-api/internal/dto"
	"dashboard-api/internal/model"
	"dashboard-api/internal/utils"
)

// AuthConfigService manages auth configs, their app clients and social
// providers. Mutations go through the backend API and are followed by a
// targeted cache patch so the dashboard reflects them without a cold reload.
type AuthConfigService struct {
	authAPI client.AuthAPI
	store   *cache.Store
}

// NewAuthConfigService creates a new auth-config management service
func NewAuthConfigService(authAPI client.AuthAPI, store *cache.Store) *AuthConfigService {
	return &AuthConfigService{authAPI: authAPI, store: store}
}

// ListAuthConfigs serves the cached auth-config list
func (s *AuthConfigService) ListAuthConfigs() []model.AuthConfig {
	return s.store.AuthConfigs()
}

// CreateAuthConfig creates a new auth config. The config list is a top-level
// cached collection, so creation is followed by a full refetch.
func (s *AuthConfigService) CreateAuthConfig(ctx context.Context, req *dto.CreateAuthConfigRequest) (*model.AuthConfig, error) {
	created, err := s.authAPI.CreateAuthConfig(ctx, req)
	if err != nil {
		return nil, err
	}
	s.refetch(ctx, req.TeamID)
	return created, nil
}

// UpdateAuthConfig renames an auth config
func (s *AuthConfigService) UpdateAuthConfig(ctx context.Context, configID string, req *dto.UpdateAuthConfigRequest) (*model.AuthConfig, error) {
	updated, err := s.authAPI.UpdateAuthConfig(ctx, configID, req)
	if err != nil {
		return nil, err
	}
	s.refetch(ctx, "")
	return updated, nil
}

// DeleteAuthConfig deletes an auth config and everything under it
func (s *AuthConfigService) DeleteAuthConfig(ctx context.Context, configID string) error {
	if err := s.authAPI.DeleteAuthConfig(ctx, configID); err != nil {
		return err
	}
	s.refetch(ctx, "")
	return nil
}

// CreateWithDefaultGitHub provisions a config, client and GitHub provider in
// one composite backend call
func (s *AuthConfigService) CreateWithDefaultGitHub(ctx context.Context, teamID, name string) (*dto.DefaultGitHubAuthResponse, error) {
	res, err := s.authAPI.CreateWithDefaultGitHub(ctx, teamID, name)
	if err != nil {
		return nil, err
	}
	s.refetch(ctx, teamID)
	return res, nil
}

// ListAppClients serves the app clients of one config, fetching lazily on
// first access
func (s *AuthConfigService) ListAppClients(ctx context.Context, configID string) ([]model.AppClient, error) {
	return s.store.FetchAppClientsForConfig(ctx, configID)
}

// CreateAppClient creates an app client with normalized URIs and scopes and
// patches it into the cached list. The client secret in the response is shown
// once and never cached.
func (s *AuthConfigService) CreateAppClient(ctx context.Context, configID string, req *dto.CreateAppClientRequest) (*dto.AppClientCreatedResponse, error) {
	req.RedirectURIs = model.NormalizeURIs(req.RedirectURIs)
	req.SignoutURIs = model.NormalizeURIs(req.SignoutURIs)
	req.Scopes = model.NormalizeScopes(req.Scopes)

	created, err := s.authAPI.CreateAppClient(ctx, configID, req)
	if err != nil {
		return nil, err
	}

	clients, ferr := s.store.FetchAppClientsForConfig(ctx, configID)
	if ferr == nil {
		s.store.SetAppClientsForConfig(configID, append(clients, created.Client))
	}
	return created, nil
}

// UpdateAppClient applies a partial update. Mandatory scopes cannot be
// removed: an explicit scope list always gets them re-added before the call
// goes upstream.
func (s *AuthConfigService) UpdateAppClient(ctx context.Context, configID, clientID string, req *dto.UpdateAppClientRequest) (*model.AppClient, error) {
	if req.RedirectURIs != nil {
		req.RedirectURIs = model.NormalizeURIs(req.RedirectURIs)
	}
	if req.SignoutURIs != nil {
		req.SignoutURIs = model.NormalizeURIs(req.SignoutURIs)
	}
	if req.Scopes != nil {
		req.Scopes = model.NormalizeScopes(req.Scopes)
	}

	updated, err := s.authAPI.UpdateAppClient(ctx, configID, clientID, req)
	if err != nil {
		return nil, err
	}
	s.store.UpdateAppClientInCache(*updated)
	return updated, nil
}

// DeleteAppClient deletes an app client and drops it from the cached list
func (s *AuthConfigService) DeleteAppClient(ctx context.Context, configID, clientID string) error {
	if err := s.authAPI.DeleteAppClient(ctx, configID, clientID); err != nil {
		return err
	}
	clients, ferr := s.store.FetchAppClientsForConfig(ctx, configID)
	if ferr == nil {
		remaining := make([]model.AppClient, 0, len(clients))
		for _, c := range clients {
			if c.ID != clientID {
				remaining = append(remaining, c)
			}
		}
		s.store.SetAppClientsForConfig(configID, remaining)
	}
	return nil
}

// ListProviders serves the social providers of one app client
func (s *AuthConfigService) ListProviders(ctx context.Context, configID, clientID string) ([]model.SocialProvider, error) {
	return s.store.FetchProvidersForClient(ctx, configID, clientID)
}

// CreateProvider attaches a social provider to an app client
func (s *AuthConfigService) CreateProvider(ctx context.Context, configID, clientID string, req *dto.ProviderRequest) (*model.SocialProvider, error) {
	if err := validateProvider(req); err != nil {
		return nil, err
	}
	created, err := s.authAPI.CreateProvider(ctx, configID, clientID, req)
	if err != nil {
		return nil, err
	}
	providers, ferr := s.store.FetchProvidersForClient(ctx, configID, clientID)
	if ferr == nil {
		s.store.SetProvidersForClient(configID, clientID, append(providers, *created))
	}
	return created, nil
}

// UpdateProvider updates a provider's credentials or token mapping
func (s *AuthConfigService) UpdateProvider(ctx context.Context, configID, clientID, providerID string, req *dto.ProviderRequest) (*model.SocialProvider, error) {
	if err := validateProvider(req); err != nil {
		return nil, err
	}
	updated, err := s.authAPI.UpdateProvider(ctx, configID, clientID, providerID, req)
	if err != nil {
		return nil, err
	}
	providers, ferr := s.store.FetchProvidersForClient(ctx, configID, clientID)
	if ferr == nil {
		for i := range providers {
			if providers[i].ID == providerID {
				providers[i] = *updated
			}
		}
		s.store.SetProvidersForClient(configID, clientID, providers)
	}
	return updated, nil
}

// DeleteProvider detaches a provider from an app client
func (s *AuthConfigService) DeleteProvider(ctx context.Context, configID, clientID, providerID string) error {
	if err := s.authAPI.DeleteProvider(ctx, configID, clientID, providerID); err != nil {
		return err
	}
	providers, ferr := s.store.FetchProvidersForClient(ctx, configID, clientID)
	if ferr == nil {
		remaining := make([]model.SocialProvider, 0, len(providers))
		for _, p := range providers {
			if p.ID != providerID {
				remaining = append(remaining, p)
			}
		}
		s.store.SetProvidersForClient(configID, clientID, remaining)
	}
	return nil
}

func validateProvider(req *dto.ProviderRequest) error {
	if !model.ValidProviderType(req.Type) {
		return constants.ErrInvalidProviderType
	}
	if req.OAuthClientID == "" || req.OAuthSecret == "" {
		return constants.ErrProviderCredsRequired
	}
	return nil
}

// refetch reloads the top-level collections after a structural mutation.
// Failure here only leaves the cache stale; the mutation already succeeded.
func (s *AuthConfigService) refetch(ctx context.Context, teamID string) {
	if err := s.store.InvalidateAndRefetch(ctx, teamID); err != nil {
		utils.LogError("cache refetch after mutation failed", err)
	}
}
