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
	"errors"
	"testing"

	"dashboard-api/config"
	"dashboard-api/internal/cache"
	"dashboard-api/internal/constants"
	"dashboard-api/internal/dto"
	"dashboard-api/internal/model"
)

type mockProjectAPI struct {
	listFn   func(ctx context.Context, teamID string, limit, offset int) (*dto.ProjectListResponse, error)
	createFn func(ctx context.Context, req *dto.CreateProjectRequest) (*model.Project, error)
	checkFn  func(ctx context.Context, teamID, name, subdomain, apiVersion string) (*dto.ProjectCheckResponse, error)
	deleteFn func(ctx context.Context, projectID string) error

	createdReqs []*dto.CreateProjectRequest
	deletedIDs  []string
}

func (m *mockProjectAPI) ListProjects(ctx context.Context, teamID string, limit, offset int) (*dto.ProjectListResponse, error) {
	if m.listFn != nil {
		return m.listFn(ctx, teamID, limit, offset)
	}
	return &dto.ProjectListResponse{Projects: []model.Project{}}, nil
}

func (m *mockProjectAPI) CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*model.Project, error) {
	m.createdReqs = append(m.createdReqs, req)
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return &model.Project{ID: "proj-1", Name: req.Name}, nil
}

func (m *mockProjectAPI) CheckProjectAvailability(ctx context.Context, teamID, name, subdomain, apiVersion string) (*dto.ProjectCheckResponse, error) {
	if m.checkFn != nil {
		return m.checkFn(ctx, teamID, name, subdomain, apiVersion)
	}
	return &dto.ProjectCheckResponse{Available: true}, nil
}

func (m *mockProjectAPI) DeleteProject(ctx context.Context, projectID string) error {
	m.deletedIDs = append(m.deletedIDs, projectID)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, projectID)
	}
	return nil
}

type mockAuthAPI struct {
	createConfigFn   func(ctx context.Context, req *dto.CreateAuthConfigRequest) (*model.AuthConfig, error)
	createClientFn   func(ctx context.Context, configID string, req *dto.CreateAppClientRequest) (*dto.AppClientCreatedResponse, error)
	createProviderFn func(ctx context.Context, configID, clientID string, req *dto.ProviderRequest) (*model.SocialProvider, error)
	defaultGitHubFn  func(ctx context.Context, teamID, name string) (*dto.DefaultGitHubAuthResponse, error)
	listClientsFn    func(ctx context.Context, configID string) ([]model.AppClient, error)

	deletions []string // kind:id in call order
}

func (m *mockAuthAPI) ListAuthConfigs(ctx context.Context, teamID string) ([]model.AuthConfig, error) {
	return []model.AuthConfig{}, nil
}

func (m *mockAuthAPI) CreateAuthConfig(ctx context.Context, req *dto.CreateAuthConfigRequest) (*model.AuthConfig, error) {
	if m.createConfigFn != nil {
		return m.createConfigFn(ctx, req)
	}
	return &model.AuthConfig{ID: "cfg-1", Name: req.Name}, nil
}

func (m *mockAuthAPI) UpdateAuthConfig(ctx context.Context, configID string, req *dto.UpdateAuthConfigRequest) (*model.AuthConfig, error) {
	return &model.AuthConfig{ID: configID}, nil
}

func (m *mockAuthAPI) DeleteAuthConfig(ctx context.Context, configID string) error {
	m.deletions = append(m.deletions, "config:"+configID)
	return nil
}

func (m *mockAuthAPI) CreateWithDefaultGitHub(ctx context.Context, teamID, name string) (*dto.DefaultGitHubAuthResponse, error) {
	if m.defaultGitHubFn != nil {
		return m.defaultGitHubFn(ctx, teamID, name)
	}
	return &dto.DefaultGitHubAuthResponse{
		AuthConfig: model.AuthConfig{ID: "cfg-gh", Name: name},
		AppClient:  model.AppClient{ID: "client-gh", AuthConfigID: "cfg-gh"},
	}, nil
}

func (m *mockAuthAPI) ListAppClients(ctx context.Context, configID string) ([]model.AppClient, error) {
	if m.listClientsFn != nil {
		return m.listClientsFn(ctx, configID)
	}
	return []model.AppClient{}, nil
}

func (m *mockAuthAPI) GetAppClient(ctx context.Context, configID, clientID string) (*model.AppClient, error) {
	return &model.AppClient{ID: clientID, AuthConfigID: configID}, nil
}

func (m *mockAuthAPI) CreateAppClient(ctx context.Context, configID string, req *dto.CreateAppClientRequest) (*dto.AppClientCreatedResponse, error) {
	if m.createClientFn != nil {
		return m.createClientFn(ctx, configID, req)
	}
	return &dto.AppClientCreatedResponse{
		Client:       model.AppClient{ID: "client-1", AuthConfigID: configID, Name: req.Name},
		ClientSecret: "secret",
	}, nil
}

func (m *mockAuthAPI) UpdateAppClient(ctx context.Context, configID, clientID string, req *dto.UpdateAppClientRequest) (*model.AppClient, error) {
	return &model.AppClient{ID: clientID, AuthConfigID: configID}, nil
}

func (m *mockAuthAPI) DeleteAppClient(ctx context.Context, configID, clientID string) error {
	m.deletions = append(m.deletions, "client:"+clientID)
	return nil
}

func (m *mockAuthAPI) ListProviders(ctx context.Context, configID, clientID string) ([]model.SocialProvider, error) {
	return []model.SocialProvider{}, nil
}

func (m *mockAuthAPI) CreateProvider(ctx context.Context, configID, clientID string, req *dto.ProviderRequest) (*model.SocialProvider, error) {
	if m.createProviderFn != nil {
		return m.createProviderFn(ctx, configID, clientID, req)
	}
	return &model.SocialProvider{ID: "prov-1", Type: req.Type, AuthConfigID: configID, AppClientID: clientID}, nil
}

func (m *mockAuthAPI) UpdateProvider(ctx context.Context, configID, clientID, providerID string, req *dto.ProviderRequest) (*model.SocialProvider, error) {
	return &model.SocialProvider{ID: providerID}, nil
}

func (m *mockAuthAPI) DeleteProvider(ctx context.Context, configID, clientID, providerID string) error {
	m.deletions = append(m.deletions, "provider:"+providerID)
	return nil
}

type mockRouteConfigAPI struct {
	getFn func(ctx context.Context, projectID, apiVersion string) ([]model.RouteEntry, error)
	putFn func(ctx context.Context, projectID, apiVersion string, entry model.RouteEntry) error

	puts    []model.RouteEntry
	deletes []string
}

func (m *mockRouteConfigAPI) GetRouteConfigs(ctx context.Context, projectID, apiVersion string) ([]model.RouteEntry, error) {
	if m.getFn != nil {
		return m.getFn(ctx, projectID, apiVersion)
	}
	return nil, nil
}

func (m *mockRouteConfigAPI) PutRouteConfig(ctx context.Context, projectID, apiVersion string, entry model.RouteEntry) error {
	m.puts = append(m.puts, entry)
	if m.putFn != nil {
		return m.putFn(ctx, projectID, apiVersion, entry)
	}
	return nil
}

func (m *mockRouteConfigAPI) DeleteRouteConfig(ctx context.Context, projectID, apiVersion, path, method string) error {
	m.deletes = append(m.deletes, method+" "+path)
	return nil
}

func testDeployConfig() *config.Server {
	return &config.Server{
		Deploy: config.Deploy{
			AuthDomain:      "auth.apiblaze.com",
			ProxyDomain:     "proxy.apiblaze.com",
			ProjectPageSize: 50,
		},
	}
}

func newTestDeployment(projectAPI *mockProjectAPI, authAPI *mockAuthAPI, routeAPI *mockRouteConfigAPI) *DeploymentService {
	store := cache.NewStore(projectAPI, authAPI, 50)
	return NewDeploymentService(projectAPI, authAPI, routeAPI, store, nil, testDeployConfig())
}

func TestDeployWithoutSocialAuth(t *testing.T) {
	projectAPI := &mockProjectAPI{}
	authAPI := &mockAuthAPI{}
	routeAPI := &mockRouteConfigAPI{}
	svc := newTestDeployment(projectAPI, authAPI, routeAPI)

	defaultRoute := model.NewRouteEntry("/pets", "get", "List pets")
	customRoute := model.NewRouteEntry("/pets", "post", "Create pet")
	customRoute.RequireAuthentication = false

	resp, err := svc.Deploy(context.Background(), &dto.DeployRequest{
		TeamID:     "team-1",
		Name:       "petstore",
		APIVersion: "v1",
		Routes:     []model.RouteEntry{defaultRoute, customRoute},
	})
	if err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}

	if len(projectAPI.createdReqs) != 1 {
		t.Fatalf("expected 1 project creation, got %d", len(projectAPI.createdReqs))
	}
	created := projectAPI.createdReqs[0]
	if created.AuthType != "none" {
		t.Errorf("auth type = %q, want none", created.AuthType)
	}
	if created.RequestsAuth.Mode != "passthrough" {
		t.Errorf("requests_auth mode = %q, want passthrough", created.RequestsAuth.Mode)
	}
	if len(created.RequestsAuth.Methods) != 0 {
		t.Errorf("expected no auth methods, got %d", len(created.RequestsAuth.Methods))
	}
	if len(authAPI.deletions) != 0 {
		t.Errorf("expected no rollback deletions, got %v", authAPI.deletions)
	}
	// Only the non-default entry needs persisting
	if resp.RoutesPersisted != 1 {
		t.Errorf("routes persisted = %d, want 1", resp.RoutesPersisted)
	}
	if len(routeAPI.puts) != 1 || routeAPI.puts[0].Method != "post" {
		t.Errorf("unexpected route puts: %+v", routeAPI.puts)
	}
}

func TestDeployRejectsInvalidStagedTemplate(t *testing.T) {
	projectAPI := &mockProjectAPI{}
	routeAPI := &mockRouteConfigAPI{}
	svc := newTestDeployment(projectAPI, &mockAuthAPI{}, routeAPI)

	badRoute := model.NewRouteEntry("/pets", "post", "Create pet")
	badRoute.PreRequestAuthTemplate = `{"claims": ` // truncated JSON

	_, err := svc.Deploy(context.Background(), &dto.DeployRequest{
		TeamID:     "team-1",
		Name:       "petstore",
		APIVersion: "v1",
		Routes:     []model.RouteEntry{badRoute},
	})
	if !errors.Is(err, constants.ErrRouteTemplateInvalid) {
		t.Fatalf("Deploy() error = %v, want ErrRouteTemplateInvalid", err)
	}
	// Validation happens before any resource exists
	if len(projectAPI.createdReqs) != 0 {
		t.Errorf("expected no project creation, got %d", len(projectAPI.createdReqs))
	}
	if len(routeAPI.puts) != 0 {
		t.Errorf("expected no route puts, got %+v", routeAPI.puts)
	}
}

func TestDeployNameRequired(t *testing.T) {
	svc := newTestDeployment(&mockProjectAPI{}, &mockAuthAPI{}, &mockRouteConfigAPI{})

	_, err := svc.Deploy(context.Background(), &dto.DeployRequest{TeamID: "team-1", Name: "   "})
	if !errors.Is(err, constants.ErrProjectNameRequired) {
		t.Errorf("Deploy() error = %v, want ErrProjectNameRequired", err)
	}
}

func TestDeployNameTaken(t *testing.T) {
	projectAPI := &mockProjectAPI{
		checkFn: func(ctx context.Context, teamID, name, subdomain, apiVersion string) (*dto.ProjectCheckResponse, error) {
			return &dto.ProjectCheckResponse{Available: false, Reason: "name in use"}, nil
		},
	}
	svc := newTestDeployment(projectAPI, &mockAuthAPI{}, &mockRouteConfigAPI{})

	_, err := svc.Deploy(context.Background(), &dto.DeployRequest{TeamID: "team-1", Name: "petstore"})
	if !errors.Is(err, constants.ErrProjectNameTaken) {
		t.Errorf("Deploy() error = %v, want ErrProjectNameTaken", err)
	}
	if len(projectAPI.createdReqs) != 0 {
		t.Errorf("expected no project creation, got %d", len(projectAPI.createdReqs))
	}
}

func TestDeployAvailabilityCheckFailureProceeds(t *testing.T) {
	projectAPI := &mockProjectAPI{
		checkFn: func(ctx context.Context, teamID, name, subdomain, apiVersion string) (*dto.ProjectCheckResponse, error) {
			return nil, errors.New("upstream unavailable")
		},
	}
	svc := newTestDeployment(projectAPI, &mockAuthAPI{}, &mockRouteConfigAPI{})

	// The backend re-validates on create; a failed pre-check must not block
	if _, err := svc.Deploy(context.Background(), &dto.DeployRequest{TeamID: "team-1", Name: "petstore"}); err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}
	if len(projectAPI.createdReqs) != 1 {
		t.Errorf("expected project creation despite failed check, got %d", len(projectAPI.createdReqs))
	}
}

func TestDeployRedeployDeletesExistingFirst(t *testing.T) {
	projectAPI := &mockProjectAPI{}
	svc := newTestDeployment(projectAPI, &mockAuthAPI{}, &mockRouteConfigAPI{})

	_, err := svc.Deploy(context.Background(), &dto.DeployRequest{
		TeamID:           "team-1",
		Name:             "petstore",
		EditingProjectID: "proj-old",
	})
	if err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}
	if len(projectAPI.deletedIDs) != 1 || projectAPI.deletedIDs[0] != "proj-old" {
		t.Errorf("deleted IDs = %v, want [proj-old]", projectAPI.deletedIDs)
	}
}

func TestDeployRedeployDeleteFailureAborts(t *testing.T) {
	projectAPI := &mockProjectAPI{
		deleteFn: func(ctx context.Context, projectID string) error {
			return errors.New("delete failed")
		},
	}
	svc := newTestDeployment(projectAPI, &mockAuthAPI{}, &mockRouteConfigAPI{})

	_, err := svc.Deploy(context.Background(), &dto.DeployRequest{
		TeamID:           "team-1",
		Name:             "petstore",
		EditingProjectID: "proj-old",
	})
	if err == nil {
		t.Fatal("Deploy() expected error, got nil")
	}
	if len(projectAPI.createdReqs) != 0 {
		t.Errorf("expected no project creation after failed delete, got %d", len(projectAPI.createdReqs))
	}
}

func TestDeployReuseAuthConfig(t *testing.T) {
	authAPI := &mockAuthAPI{
		listClientsFn: func(ctx context.Context, configID string) ([]model.AppClient, error) {
			return []model.AppClient{
				{ID: "client-a", AuthConfigID: configID},
				{ID: "client-b", AuthConfigID: configID},
			}, nil
		},
	}
	projectAPI := &mockProjectAPI{}
	svc := newTestDeployment(projectAPI, authAPI, &mockRouteConfigAPI{})

	_, err := svc.Deploy(context.Background(), &dto.DeployRequest{
		TeamID:            "team-1",
		Name:              "petstore",
		APIVersion:        "v1",
		SocialAuthEnabled: true,
		ReuseAuthConfigID: "cfg-existing",
	})
	if err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}

	created := projectAPI.createdReqs[0]
	if created.AuthType != "social" {
		t.Errorf("auth type = %q, want social", created.AuthType)
	}
	if created.AuthConfigID != "cfg-existing" {
		t.Errorf("auth config ID = %q, want cfg-existing", created.AuthConfigID)
	}
	// First client wins when none was selected
	if created.AppClientID != "client-a" {
		t.Errorf("app client ID = %q, want client-a", created.AppClientID)
	}
	if len(authAPI.deletions) != 0 {
		t.Errorf("reuse path must create nothing, but rollback ran: %v", authAPI.deletions)
	}
}

func TestDeployReuseAuthConfigWithoutClients(t *testing.T) {
	svc := newTestDeployment(&mockProjectAPI{}, &mockAuthAPI{}, &mockRouteConfigAPI{})

	_, err := svc.Deploy(context.Background(), &dto.DeployRequest{
		TeamID:            "team-1",
		Name:              "petstore",
		SocialAuthEnabled: true,
		ReuseAuthConfigID: "cfg-empty",
	})
	if !errors.Is(err, constants.ErrAuthConfigNoClients) {
		t.Errorf("Deploy() error = %v, want ErrAuthConfigNoClients", err)
	}
}

func TestDeployBringOwnProviderRollback(t *testing.T) {
	providerCalls := 0
	upstreamErr := errors.New("provider creation failed")
	authAPI := &mockAuthAPI{
		createProviderFn: func(ctx context.Context, configID, clientID string, req *dto.ProviderRequest) (*model.SocialProvider, error) {
			providerCalls++
			if providerCalls == 2 {
				return nil, upstreamErr
			}
			return &model.SocialProvider{ID: "prov-1", Type: req.Type}, nil
		},
	}
	projectAPI := &mockProjectAPI{}
	svc := newTestDeployment(projectAPI, authAPI, &mockRouteConfigAPI{})

	_, err := svc.Deploy(context.Background(), &dto.DeployRequest{
		TeamID:            "team-1",
		Name:              "petstore",
		SocialAuthEnabled: true,
		BringOwnProvider:  true,
		Providers: []dto.ProviderRequest{
			{Type: model.ProviderGoogle, OAuthClientID: "id1", OAuthSecret: "sec1"},
			{Type: model.ProviderGitHub, OAuthClientID: "id2", OAuthSecret: "sec2"},
		},
	})
	if !errors.Is(err, upstreamErr) {
		t.Fatalf("Deploy() error = %v, want the original provider error", err)
	}

	// Three resources were created before the failure: config, client, one
	// provider. Exactly those three get deleted, newest first.
	want := []string{"provider:prov-1", "client:client-1", "config:cfg-1"}
	if len(authAPI.deletions) != len(want) {
		t.Fatalf("deletions = %v, want %v", authAPI.deletions, want)
	}
	for i := range want {
		if authAPI.deletions[i] != want[i] {
			t.Errorf("deletion[%d] = %q, want %q", i, authAPI.deletions[i], want[i])
		}
	}
	if len(projectAPI.createdReqs) != 0 {
		t.Errorf("expected no project creation, got %d", len(projectAPI.createdReqs))
	}
}

func TestDeployBringOwnProviderValidation(t *testing.T) {
	tests := []struct {
		name     string
		provider dto.ProviderRequest
		wantErr  error
	}{
		{
			name:     "unknown provider type",
			provider: dto.ProviderRequest{Type: "myspace", OAuthClientID: "id", OAuthSecret: "sec"},
			wantErr:  constants.ErrInvalidProviderType,
		},
		{
			name:     "missing credentials",
			provider: dto.ProviderRequest{Type: model.ProviderGoogle},
			wantErr:  constants.ErrProviderCredsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authAPI := &mockAuthAPI{}
			svc := newTestDeployment(&mockProjectAPI{}, authAPI, &mockRouteConfigAPI{})

			_, err := svc.Deploy(context.Background(), &dto.DeployRequest{
				TeamID:            "team-1",
				Name:              "petstore",
				SocialAuthEnabled: true,
				BringOwnProvider:  true,
				Providers:         []dto.ProviderRequest{tt.provider},
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Deploy() error = %v, want %v", err, tt.wantErr)
			}
			// Validation happens before anything is created
			if len(authAPI.deletions) != 0 {
				t.Errorf("expected no rollback, got %v", authAPI.deletions)
			}
		})
	}
}

func TestDeployDefaultGitHubRollbackOnCreateFailure(t *testing.T) {
	createErr := errors.New("project quota exceeded")
	projectAPI := &mockProjectAPI{
		createFn: func(ctx context.Context, req *dto.CreateProjectRequest) (*model.Project, error) {
			return nil, createErr
		},
	}
	authAPI := &mockAuthAPI{}
	svc := newTestDeployment(projectAPI, authAPI, &mockRouteConfigAPI{})

	_, err := svc.Deploy(context.Background(), &dto.DeployRequest{
		TeamID:            "team-1",
		Name:              "petstore",
		SocialAuthEnabled: true,
	})
	if !errors.Is(err, createErr) {
		t.Fatalf("Deploy() error = %v, want the project creation error", err)
	}

	want := []string{"client:client-gh", "config:cfg-gh"}
	if len(authAPI.deletions) != len(want) {
		t.Fatalf("deletions = %v, want %v", authAPI.deletions, want)
	}
	for i := range want {
		if authAPI.deletions[i] != want[i] {
			t.Errorf("deletion[%d] = %q, want %q", i, authAPI.deletions[i], want[i])
		}
	}
}

func TestDeriveRequestsAuth(t *testing.T) {
	svc := newTestDeployment(&mockProjectAPI{}, &mockAuthAPI{}, &mockRouteConfigAPI{})

	t.Run("social auth without explicit methods defaults to jwt", func(t *testing.T) {
		got := svc.deriveRequestsAuth(&dto.DeployRequest{
			Name:              "Pet Store",
			APIVersion:        "v1",
			SocialAuthEnabled: true,
		}, "client-1")
		if got.Mode != "authenticate" {
			t.Fatalf("mode = %q, want authenticate", got.Mode)
		}
		if len(got.Methods) != 1 || got.Methods[0].Type != "jwt" {
			t.Fatalf("methods = %+v, want a single jwt method", got.Methods)
		}
		wantIssuer := "https://auth.apiblaze.com/pet-store/v1"
		if got.Methods[0].Issuers[0] != wantIssuer {
			t.Errorf("issuer = %q, want %q", got.Methods[0].Issuers[0], wantIssuer)
		}
		if got.Methods[0].Audiences[0] != "client-1" {
			t.Errorf("audience = %q, want client-1", got.Methods[0].Audiences[0])
		}
	})

	t.Run("jwt without app client derives audience URL", func(t *testing.T) {
		got := svc.deriveRequestsAuth(&dto.DeployRequest{
			Name:        "petstore",
			APIVersion:  "v2",
			AuthMethods: []dto.AuthMethodInput{{Type: "jwt"}},
		}, "")
		wantAudience := "https://petstore.proxy.apiblaze.com/v2"
		if got.Methods[0].Audiences[0] != wantAudience {
			t.Errorf("audience = %q, want %q", got.Methods[0].Audiences[0], wantAudience)
		}
	})

	t.Run("placeholders are substituted", func(t *testing.T) {
		got := svc.deriveRequestsAuth(&dto.DeployRequest{
			Name:       "petstore",
			APIVersion: "v1",
			AuthMethods: []dto.AuthMethodInput{{
				Type:     "opaque",
				Endpoint: "https://introspect.example.com/{projectName}/{apiVersion}",
				Issuers:  []string{"https://issuer.example.com/{appClientId}"},
			}},
		}, "client-9")
		if got.Methods[0].Endpoint != "https://introspect.example.com/petstore/v1" {
			t.Errorf("endpoint = %q", got.Methods[0].Endpoint)
		}
		if got.Methods[0].Issuers[0] != "https://issuer.example.com/client-9" {
			t.Errorf("issuer = %q", got.Methods[0].Issuers[0])
		}
	})

	t.Run("user supplied values win over defaults", func(t *testing.T) {
		got := svc.deriveRequestsAuth(&dto.DeployRequest{
			Name:       "petstore",
			APIVersion: "v1",
			AuthMethods: []dto.AuthMethodInput{{
				Type:      "jwt",
				Issuers:   []string{"https://my-issuer.example.com"},
				Audiences: []string{"my-audience"},
			}},
		}, "client-1")
		if got.Methods[0].Issuers[0] != "https://my-issuer.example.com" {
			t.Errorf("issuer = %q, want the user-supplied one", got.Methods[0].Issuers[0])
		}
		if got.Methods[0].Audiences[0] != "my-audience" {
			t.Errorf("audience = %q, want the user-supplied one", got.Methods[0].Audiences[0])
		}
	})
}

func TestDeployRoutePersistenceFailureKeepsProject(t *testing.T) {
	putErr := errors.New("policy store down")
	routeAPI := &mockRouteConfigAPI{
		putFn: func(ctx context.Context, projectID, apiVersion string, entry model.RouteEntry) error {
			return putErr
		},
	}
	authAPI := &mockAuthAPI{}
	svc := newTestDeployment(&mockProjectAPI{}, authAPI, routeAPI)

	custom := model.NewRouteEntry("/pets", "get", "")
	custom.RequireAuthentication = false

	_, err := svc.Deploy(context.Background(), &dto.DeployRequest{
		TeamID: "team-1",
		Name:   "petstore",
		Routes: []model.RouteEntry{custom},
	})
	if !errors.Is(err, putErr) {
		t.Fatalf("Deploy() error = %v, want the route persistence error", err)
	}
	// The project stands; no auth rollback happens after creation
	if len(authAPI.deletions) != 0 {
		t.Errorf("expected no rollback after project creation, got %v", authAPI.deletions)
	}
}
