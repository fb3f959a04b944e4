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
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"dashboard-api/internal/client"
	"dashboard-api/internal/constants"
	"dashboard-api/internal/dto"
	"dashboard-api/internal/model"
)

type stubProjectAPI struct {
	client.ProjectAPI
	listFn    func(ctx context.Context, teamID string, limit, offset int) (*dto.ProjectListResponse, error)
	listCalls int32
}

func (s *stubProjectAPI) ListProjects(ctx context.Context, teamID string, limit, offset int) (*dto.ProjectListResponse, error) {
	atomic.AddInt32(&s.listCalls, 1)
	if s.listFn != nil {
		return s.listFn(ctx, teamID, limit, offset)
	}
	return &dto.ProjectListResponse{Projects: []model.Project{}}, nil
}

type stubAuthAPI struct {
	client.AuthAPI
	listConfigsFn   func(ctx context.Context, teamID string) ([]model.AuthConfig, error)
	listClientsFn   func(ctx context.Context, configID string) ([]model.AppClient, error)
	listProvidersFn func(ctx context.Context, configID, clientID string) ([]model.SocialProvider, error)

	clientCalls   int32
	providerCalls int32
}

func (s *stubAuthAPI) ListAuthConfigs(ctx context.Context, teamID string) ([]model.AuthConfig, error) {
	if s.listConfigsFn != nil {
		return s.listConfigsFn(ctx, teamID)
	}
	return []model.AuthConfig{}, nil
}

func (s *stubAuthAPI) ListAppClients(ctx context.Context, configID string) ([]model.AppClient, error) {
	atomic.AddInt32(&s.clientCalls, 1)
	if s.listClientsFn != nil {
		return s.listClientsFn(ctx, configID)
	}
	return []model.AppClient{}, nil
}

func (s *stubAuthAPI) ListProviders(ctx context.Context, configID, clientID string) ([]model.SocialProvider, error) {
	atomic.AddInt32(&s.providerCalls, 1)
	if s.listProvidersFn != nil {
		return s.listProvidersFn(ctx, configID, clientID)
	}
	return []model.SocialProvider{}, nil
}

func pagedProjects(total int) func(ctx context.Context, teamID string, limit, offset int) (*dto.ProjectListResponse, error) {
	return func(ctx context.Context, teamID string, limit, offset int) (*dto.ProjectListResponse, error) {
		var page []model.Project
		for i := offset; i < total && i < offset+limit; i++ {
			page = append(page, model.Project{ID: string(rune('a' + i))})
		}
		return &dto.ProjectListResponse{Projects: page, Total: total, Limit: limit, Offset: offset}, nil
	}
}

func TestFetchBootstrap(t *testing.T) {
	projectAPI := &stubProjectAPI{listFn: pagedProjects(5)}
	authAPI := &stubAuthAPI{
		listConfigsFn: func(ctx context.Context, teamID string) ([]model.AuthConfig, error) {
			return []model.AuthConfig{{ID: "cfg-1", Name: "pool"}}, nil
		},
	}
	store := NewStore(projectAPI, authAPI, 2)

	if err := store.FetchBootstrap(context.Background(), "team-1"); err != nil {
		t.Fatalf("FetchBootstrap() error = %v", err)
	}

	if got := len(store.Projects()); got != 5 {
		t.Errorf("cached %d projects, want 5 across pages", got)
	}
	// 5 projects at page size 2 needs 3 pages
	if calls := atomic.LoadInt32(&projectAPI.listCalls); calls != 3 {
		t.Errorf("list calls = %d, want 3", calls)
	}
	if got := len(store.AuthConfigs()); got != 1 {
		t.Errorf("cached %d auth configs, want 1", got)
	}
	if store.IsBootstrapping() {
		t.Error("bootstrapping flag still set after completion")
	}
	if store.LastTeamID() != "team-1" {
		t.Errorf("last team = %q, want team-1", store.LastTeamID())
	}
}

func TestFetchBootstrapRequiresTeam(t *testing.T) {
	store := NewStore(&stubProjectAPI{}, &stubAuthAPI{}, 10)
	if err := store.FetchBootstrap(context.Background(), ""); !errors.Is(err, constants.ErrTeamRequired) {
		t.Errorf("FetchBootstrap() error = %v, want ErrTeamRequired", err)
	}
}

func TestFetchBootstrapFailureRecorded(t *testing.T) {
	bootErr := errors.New("upstream down")
	authAPI := &stubAuthAPI{
		listConfigsFn: func(ctx context.Context, teamID string) ([]model.AuthConfig, error) {
			return nil, bootErr
		},
	}
	store := NewStore(&stubProjectAPI{}, authAPI, 10)

	if err := store.FetchBootstrap(context.Background(), "team-1"); !errors.Is(err, bootErr) {
		t.Fatalf("FetchBootstrap() error = %v, want the upstream error", err)
	}
	if !errors.Is(store.LastError(), bootErr) {
		t.Errorf("LastError() = %v, want the upstream error", store.LastError())
	}
	if store.IsBootstrapping() {
		t.Error("bootstrapping flag still set after failure")
	}
}

func TestFetchAppClientsAtMostOnce(t *testing.T) {
	authAPI := &stubAuthAPI{
		listClientsFn: func(ctx context.Context, configID string) ([]model.AppClient, error) {
			return []model.AppClient{{ID: "client-1", AuthConfigID: configID}}, nil
		},
	}
	store := NewStore(&stubProjectAPI{}, authAPI, 10)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clients, err := store.FetchAppClientsForConfig(context.Background(), "cfg-1")
			if err != nil || len(clients) != 1 {
				t.Errorf("FetchAppClientsForConfig() = %v, %v", clients, err)
			}
		}()
	}
	wg.Wait()

	// Second sequential access is served from cache
	if _, err := store.FetchAppClientsForConfig(context.Background(), "cfg-1"); err != nil {
		t.Fatalf("cached fetch error = %v", err)
	}
	if calls := atomic.LoadInt32(&authAPI.clientCalls); calls != 1 {
		t.Errorf("upstream client list calls = %d, want exactly 1", calls)
	}
}

func TestFetchAppClientsErrorNotCached(t *testing.T) {
	fetchErr := errors.New("boom")
	fail := true
	authAPI := &stubAuthAPI{
		listClientsFn: func(ctx context.Context, configID string) ([]model.AppClient, error) {
			if fail {
				return nil, fetchErr
			}
			return []model.AppClient{{ID: "client-1"}}, nil
		},
	}
	store := NewStore(&stubProjectAPI{}, authAPI, 10)

	if _, err := store.FetchAppClientsForConfig(context.Background(), "cfg-1"); !errors.Is(err, fetchErr) {
		t.Fatalf("first fetch error = %v, want boom", err)
	}

	// A failed fetch must not poison the key
	fail = false
	clients, err := store.FetchAppClientsForConfig(context.Background(), "cfg-1")
	if err != nil || len(clients) != 1 {
		t.Errorf("retry after failure = %v, %v, want one client", clients, err)
	}
}

func TestFetchProvidersKeyedPerClient(t *testing.T) {
	authAPI := &stubAuthAPI{
		listProvidersFn: func(ctx context.Context, configID, clientID string) ([]model.SocialProvider, error) {
			return []model.SocialProvider{{ID: "prov-" + clientID}}, nil
		},
	}
	store := NewStore(&stubProjectAPI{}, authAPI, 10)

	a, _ := store.FetchProvidersForClient(context.Background(), "cfg-1", "client-a")
	b, _ := store.FetchProvidersForClient(context.Background(), "cfg-1", "client-b")
	if a[0].ID == b[0].ID {
		t.Error("provider caches for different clients collided")
	}
	if calls := atomic.LoadInt32(&authAPI.providerCalls); calls != 2 {
		t.Errorf("provider list calls = %d, want 2", calls)
	}
}

func TestInvalidateAndRefetch(t *testing.T) {
	projectAPI := &stubProjectAPI{listFn: pagedProjects(1)}
	authAPI := &stubAuthAPI{}
	store := NewStore(projectAPI, authAPI, 10)

	if err := store.FetchBootstrap(context.Background(), "team-1"); err != nil {
		t.Fatalf("FetchBootstrap() error = %v", err)
	}
	if _, err := store.FetchAppClientsForConfig(context.Background(), "cfg-1"); err != nil {
		t.Fatalf("lazy fetch error = %v", err)
	}

	// Empty teamID reuses the last one
	if err := store.InvalidateAndRefetch(context.Background(), ""); err != nil {
		t.Fatalf("InvalidateAndRefetch() error = %v", err)
	}
	if store.LastTeamID() != "team-1" {
		t.Errorf("last team = %q, want team-1", store.LastTeamID())
	}

	// Lazy keys were dropped; the next access refetches
	if _, err := store.FetchAppClientsForConfig(context.Background(), "cfg-1"); err != nil {
		t.Fatalf("lazy fetch after invalidate error = %v", err)
	}
	if calls := atomic.LoadInt32(&authAPI.clientCalls); calls != 2 {
		t.Errorf("client list calls = %d, want 2 (before and after invalidate)", calls)
	}
}

func TestInvalidateAndRefetchIsIdempotent(t *testing.T) {
	projectAPI := &stubProjectAPI{listFn: pagedProjects(2)}
	store := NewStore(projectAPI, &stubAuthAPI{}, 10)

	if err := store.FetchBootstrap(context.Background(), "team-1"); err != nil {
		t.Fatalf("FetchBootstrap() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := store.InvalidateAndRefetch(context.Background(), ""); err != nil {
			t.Fatalf("InvalidateAndRefetch() #%d error = %v", i, err)
		}
		if got := len(store.Projects()); got != 2 {
			t.Fatalf("after invalidate #%d: %d projects, want 2", i, got)
		}
	}
}

func TestInvalidateWithoutBootstrap(t *testing.T) {
	store := NewStore(&stubProjectAPI{}, &stubAuthAPI{}, 10)
	if err := store.InvalidateAndRefetch(context.Background(), ""); !errors.Is(err, constants.ErrCacheNotBootstrapped) {
		t.Errorf("InvalidateAndRefetch() error = %v, want ErrCacheNotBootstrapped", err)
	}
}

func TestUpdateAppClientInCache(t *testing.T) {
	authAPI := &stubAuthAPI{
		listClientsFn: func(ctx context.Context, configID string) ([]model.AppClient, error) {
			return []model.AppClient{{ID: "client-1", AuthConfigID: configID, Verified: false}}, nil
		},
	}
	store := NewStore(&stubProjectAPI{}, authAPI, 10)

	if _, err := store.FetchAppClientsForConfig(context.Background(), "cfg-1"); err != nil {
		t.Fatalf("lazy fetch error = %v", err)
	}

	store.UpdateAppClientInCache(model.AppClient{ID: "client-1", AuthConfigID: "cfg-1", Verified: true})
	clients, _ := store.FetchAppClientsForConfig(context.Background(), "cfg-1")
	if !clients[0].Verified {
		t.Error("targeted patch did not stick")
	}

	// Patching a client under an unloaded config is a no-op
	store.UpdateAppClientInCache(model.AppClient{ID: "ghost", AuthConfigID: "cfg-unknown"})
	if calls := atomic.LoadInt32(&authAPI.clientCalls); calls != 1 {
		t.Errorf("client list calls = %d, want 1", calls)
	}
}

func TestAuthConfigByName(t *testing.T) {
	authAPI := &stubAuthAPI{
		listConfigsFn: func(ctx context.Context, teamID string) ([]model.AuthConfig, error) {
			return []model.AuthConfig{{ID: "cfg-1", Name: "petstore-user-pool"}}, nil
		},
	}
	store := NewStore(&stubProjectAPI{}, authAPI, 10)
	if err := store.FetchBootstrap(context.Background(), "team-1"); err != nil {
		t.Fatalf("FetchBootstrap() error = %v", err)
	}

	if cfg, ok := store.AuthConfigByName("petstore-user-pool"); !ok || cfg.ID != "cfg-1" {
		t.Errorf("AuthConfigByName() = %+v, %v", cfg, ok)
	}
	if _, ok := store.AuthConfigByName("missing"); ok {
		t.Error("found an auth config that does not exist")
	}
}
