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

package cache

import (
	"context"
	"sync"

	"dashboard-api/internal/client"
	"dashboard-api/internal/constants"
	"dashboard-api/internal/metrics"
	"dashboard-api/internal/model"
	"dashboard-api/internal/utils"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Store is the dashboard cache: an invalidatable, process-local aggregate of
// the backend's collections. It is never the write path - all mutations go
// through the API clients and are followed by a targeted patch or a full
// InvalidateAndRefetch. Construct one per composition root and pass it
// explicitly; there is no package-level instance.
type Store struct {
	projectAPI client.ProjectAPI
	authAPI    client.AuthAPI
	pageSize   int

	mu                      sync.RWMutex
	projects                []model.Project
	authConfigs             []model.AuthConfig
	appClientsByConfig      map[string][]model.AppClient
	providersByConfigClient map[string][]model.SocialProvider
	isBootstrapping         bool
	lastTeamID              string
	lastErr                 error

	// flight deduplicates concurrent lazy fetches of the same uncached key
	flight singleflight.Group
}

// NewStore creates an empty cache backed by the given API clients
func NewStore(projectAPI client.ProjectAPI, authAPI client.AuthAPI, pageSize int) *Store {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Store{
		projectAPI:              projectAPI,
		authAPI:                 authAPI,
		pageSize:                pageSize,
		appClientsByConfig:      make(map[string][]model.AppClient),
		providersByConfigClient: make(map[string][]model.SocialProvider),
	}
}

func providerKey(configID, clientID string) string {
	return configID + "-" + clientID
}

// FetchBootstrap cold-loads the top-level collections for a team: the
// auth-config list and all active projects, fetched in parallel. App clients
// and providers are fetched lazily on drill-down. On failure the error is
// recorded and returned; the bootstrapping flag is always reset.
func (s *Store) FetchBootstrap(ctx context.Context, teamID string) error {
	if teamID == "" {
		return constants.ErrTeamRequired
	}

	s.mu.Lock()
	s.isBootstrapping = true
	s.lastTeamID = teamID
	s.lastErr = nil
	s.mu.Unlock()

	var (
		configs  []model.AuthConfig
		projects []model.Project
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		configs, err = s.authAPI.ListAuthConfigs(gctx, teamID)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = s.fetchAllProjects(gctx, teamID)
		return err
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isBootstrapping = false
	if err != nil {
		s.lastErr = err
		metrics.CacheBootstrapsTotal.WithLabelValues("error").Inc()
		utils.LogError("cache bootstrap failed", err)
		return err
	}
	s.authConfigs = configs
	s.projects = projects
	metrics.CacheBootstrapsTotal.WithLabelValues("success").Inc()
	return nil
}

// fetchAllProjects pages through every active project for the team
func (s *Store) fetchAllProjects(ctx context.Context, teamID string) ([]model.Project, error) {
	var all []model.Project
	offset := 0
	for {
		page, err := s.projectAPI.ListProjects(ctx, teamID, s.pageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Projects...)
		offset += len(page.Projects)
		if len(page.Projects) < s.pageSize || offset >= page.Total {
			return all, nil
		}
	}
}

// InvalidateAndRefetch resets the cache to its initial state and
// re-bootstraps - a full cold reload, not a delta merge. The explicit teamID
// wins; otherwise the last-used one is reused.
func (s *Store) InvalidateAndRefetch(ctx context.Context, teamID string) error {
	s.mu.Lock()
	if teamID == "" {
		teamID = s.lastTeamID
	}
	s.reset()
	s.mu.Unlock()

	if teamID == "" {
		return constants.ErrCacheNotBootstrapped
	}
	return s.FetchBootstrap(ctx, teamID)
}

// ClearCache resets the store to its initial empty state
func (s *Store) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	s.lastTeamID = ""
}

// reset must be called with the lock held
func (s *Store) reset() {
	s.projects = nil
	s.authConfigs = nil
	s.appClientsByConfig = make(map[string][]model.AppClient)
	s.providersByConfigClient = make(map[string][]model.SocialProvider)
	s.isBootstrapping = false
	s.lastErr = nil
}

// FetchAppClientsForConfig lazily loads the app clients of one auth config.
// Once the key is present this is a no-op; concurrent callers of the same
// uncached key share a single upstream request.
func (s *Store) FetchAppClientsForConfig(ctx context.Context, configID string) ([]model.AppClient, error) {
	s.mu.RLock()
	cached, ok := s.appClientsByConfig[configID]
	s.mu.RUnlock()
	if ok {
		metrics.CacheLazyFetchesTotal.WithLabelValues("app_clients", "cached").Inc()
		return cached, nil
	}

	v, err, _ := s.flight.Do("clients:"+configID, func() (interface{}, error) {
		clients, err := s.authAPI.ListAppClients(ctx, configID)
		if err != nil {
			return nil, err
		}
		if clients == nil {
			clients = []model.AppClient{}
		}
		s.mu.Lock()
		s.appClientsByConfig[configID] = clients
		s.mu.Unlock()
		metrics.CacheLazyFetchesTotal.WithLabelValues("app_clients", "fetched").Inc()
		return clients, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.AppClient), nil
}

// FetchProvidersForClient lazily loads the providers of one app client,
// keyed by (auth config, client).
func (s *Store) FetchProvidersForClient(ctx context.Context, configID, clientID string) ([]model.SocialProvider, error) {
	key := providerKey(configID, clientID)

	s.mu.RLock()
	cached, ok := s.providersByConfigClient[key]
	s.mu.RUnlock()
	if ok {
		metrics.CacheLazyFetchesTotal.WithLabelValues("providers", "cached").Inc()
		return cached, nil
	}

	v, err, _ := s.flight.Do("providers:"+key, func() (interface{}, error) {
		providers, err := s.authAPI.ListProviders(ctx, configID, clientID)
		if err != nil {
			return nil, err
		}
		if providers == nil {
			providers = []model.SocialProvider{}
		}
		s.mu.Lock()
		s.providersByConfigClient[key] = providers
		s.mu.Unlock()
		metrics.CacheLazyFetchesTotal.WithLabelValues("providers", "fetched").Inc()
		return providers, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.SocialProvider), nil
}

// UpdateAppClientInCache patches a single cached app client in place after a
// targeted mutation (e.g. verification), avoiding a full refetch. Unknown
// clients are ignored; the next lazy fetch will pick them up.
func (s *Store) UpdateAppClientInCache(updated model.AppClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clients, ok := s.appClientsByConfig[updated.AuthConfigID]
	if !ok {
		return
	}
	for i := range clients {
		if clients[i].ID == updated.ID {
			clients[i] = updated
			return
		}
	}
}

// SetAppClientsForConfig replaces the cached client list for one config
func (s *Store) SetAppClientsForConfig(configID string, clients []model.AppClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if clients == nil {
		clients = []model.AppClient{}
	}
	s.appClientsByConfig[configID] = clients
}

// SetProvidersForClient replaces the cached provider list for one
// (auth config, client) pair
func (s *Store) SetProvidersForClient(configID, clientID string, providers []model.SocialProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if providers == nil {
		providers = []model.SocialProvider{}
	}
	s.providersByConfigClient[providerKey(configID, clientID)] = providers
}

// Projects returns a copy of the cached project list
func (s *Store) Projects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// AuthConfigs returns a copy of the cached auth-config list
func (s *Store) AuthConfigs() []model.AuthConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.AuthConfig, len(s.authConfigs))
	copy(out, s.authConfigs)
	return out
}

// AuthConfigByName finds a cached auth config by exact name
func (s *Store) AuthConfigByName(name string) (model.AuthConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, cfg := range s.authConfigs {
		if cfg.Name == name {
			return cfg, true
		}
	}
	return model.AuthConfig{}, false
}

// IsBootstrapping reports whether a bootstrap is in flight
func (s *Store) IsBootstrapping() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isBootstrapping
}

// LastTeamID returns the team the cache was last bootstrapped for
func (s *Store) LastTeamID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTeamID
}

// LastError returns the most recent bootstrap failure, if any
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
