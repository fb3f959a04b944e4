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
	"fmt"
	"strings"
	"time"

	"dashboard-api/config"
	"dashboard-api/internal/cache"
	"dashboard-api/internal/client"
	"dashboard-api/internal/constants"
	"dashboard-api/internal/dto"
	"dashboard-api/internal/metrics"
	"dashboard-api/internal/model"
	"dashboard-api/internal/utils"
)

// Notifier pushes deployment status events to connected dashboard sessions
type Notifier interface {
	PublishStatus(event dto.StatusEvent)
}

// DeploymentService orchestrates one deploy action: a multi-step,
// multi-resource creation sequence with compensating rollback on failure.
// Steps are strictly sequential because later steps depend on identifiers
// produced by earlier ones.
type DeploymentService struct {
	projectAPI client.ProjectAPI
	authAPI    client.AuthAPI
	routeAPI   client.RouteConfigAPI
	store      *cache.Store
	notifier   Notifier
	cfg        *config.Server
}

// NewDeploymentService creates a new deployment orchestrator
func NewDeploymentService(
	projectAPI client.ProjectAPI,
	authAPI client.AuthAPI,
	routeAPI client.RouteConfigAPI,
	store *cache.Store,
	notifier Notifier,
	cfg *config.Server,
) *DeploymentService {
	return &DeploymentService{
		projectAPI: projectAPI,
		authAPI:    authAPI,
		routeAPI:   routeAPI,
		store:      store,
		notifier:   notifier,
		cfg:        cfg,
	}
}

// resourceKind tags one entry in the rollback journal
type resourceKind string

const (
	resourceAuthConfig resourceKind = "auth_config"
	resourceAppClient  resourceKind = "app_client"
	resourceProvider   resourceKind = "provider"
)

// createdResource identifies one auth resource created by this deploy
// attempt. Pre-existing resources are never journaled and therefore never
// rolled back.
type createdResource struct {
	kind       resourceKind
	configID   string
	clientID   string
	providerID string
}

// authResolution is the outcome of the auth-resolution stage
type authResolution struct {
	authConfigID string
	appClientID  string
}

// Deploy runs the full deployment sequence. Any failure after the pre-flight
// stage triggers best-effort rollback of exactly the resources created by
// this attempt; the original error is always the one surfaced.
func (s *DeploymentService) Deploy(ctx context.Context, req *dto.DeployRequest) (*dto.DeployResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, constants.ErrProjectNameRequired
	}
	// Staged route overrides are validated up front; malformed template JSON
	// must never reach the policy store, and failing here costs nothing.
	for _, entry := range req.Routes {
		if !model.ValidTemplate(entry.PreRequestAuthTemplate) || !model.ValidTemplate(entry.PostResponsePolicyTemplate) {
			return nil, constants.ErrRouteTemplateInvalid
		}
	}
	s.publish(req, "", "preflight", model.StatusDeploying, "")

	// Stage 1: pre-flight. Replacing an existing project requires its
	// deletion first; that failing is a hard abort - nothing has been
	// created yet, so no rollback is needed.
	if req.EditingProjectID != "" {
		if err := s.projectAPI.DeleteProject(ctx, req.EditingProjectID); err != nil {
			s.publish(req, "", "preflight", model.StatusError, err.Error())
			metrics.DeploymentsTotal.WithLabelValues("failed").Inc()
			return nil, fmt.Errorf("failed to delete existing project before redeploy: %w", err)
		}
	} else {
		// Best-effort uniqueness check; the backend re-validates, so a
		// failed check is swallowed and deployment proceeds.
		check, err := s.projectAPI.CheckProjectAvailability(ctx, req.TeamID, req.Name, req.Subdomain, req.APIVersion)
		if err != nil {
			utils.LogWarning(fmt.Sprintf("availability check failed for %q, proceeding: %v", req.Name, err))
		} else if !check.Available {
			s.publish(req, "", "preflight", model.StatusError, check.Reason)
			metrics.DeploymentsTotal.WithLabelValues("failed").Inc()
			return nil, constants.ErrProjectNameTaken
		}
	}

	// Stage 2: auth resolution
	var journal []createdResource
	var auth authResolution
	if req.SocialAuthEnabled {
		s.publish(req, "", "auth", model.StatusDeploying, "")
		stageStart := time.Now()
		resolved, created, err := s.resolveAuth(ctx, req)
		journal = created
		metrics.DeploymentStageDuration.WithLabelValues("auth").Observe(time.Since(stageStart).Seconds())
		if err != nil {
			s.rollback(ctx, journal)
			s.publish(req, "", "auth", model.StatusError, err.Error())
			metrics.DeploymentsTotal.WithLabelValues("rolled_back").Inc()
			return nil, err
		}
		auth = resolved
	}

	// Stage 3: auth-method derivation
	requestsAuth := s.deriveRequestsAuth(req, auth.appClientID)

	// Stage 4: project creation - one bundled call
	s.publish(req, "", "create", model.StatusDeploying, "")
	authType := "none"
	if req.SocialAuthEnabled {
		authType = "social"
	}
	stageStart := time.Now()
	project, err := s.projectAPI.CreateProject(ctx, &dto.CreateProjectRequest{
		TeamID:       req.TeamID,
		Name:         req.Name,
		Subdomain:    req.Subdomain,
		APIVersion:   req.APIVersion,
		Source:       req.Source,
		Environments: knownEnvironments(req.Environments),
		Throttling:   req.Throttling,
		AuthType:     authType,
		AuthConfigID: auth.authConfigID,
		AppClientID:  auth.appClientID,
		RequestsAuth: requestsAuth,
	})
	metrics.DeploymentStageDuration.WithLabelValues("create").Observe(time.Since(stageStart).Seconds())
	if err != nil {
		s.rollback(ctx, journal)
		s.publish(req, "", "create", model.StatusError, err.Error())
		metrics.DeploymentsTotal.WithLabelValues("rolled_back").Inc()
		return nil, err
	}

	// Stage 5: persist staged route overrides now that the project exists.
	// The project stands either way; a persistence failure surfaces without
	// rollback.
	persisted := 0
	if len(req.Routes) > 0 {
		s.publish(req, project.ID, "routes", model.StatusDeploying, "")
		persisted, err = s.persistRoutes(ctx, project.ID, req.APIVersion, req.Routes)
		if err != nil {
			s.publish(req, project.ID, "routes", model.StatusError, err.Error())
			metrics.DeploymentsTotal.WithLabelValues("failed").Inc()
			return nil, fmt.Errorf("project deployed but route config persistence failed: %w", err)
		}
	}

	s.publish(req, project.ID, "done", model.StatusActive, "")
	metrics.DeploymentsTotal.WithLabelValues("success").Inc()
	return &dto.DeployResponse{Project: project, RoutesPersisted: persisted}, nil
}

// resolveAuth runs one of the three mutually exclusive social-auth paths and
// returns the rollback journal of every resource created along the way.
func (s *DeploymentService) resolveAuth(ctx context.Context, req *dto.DeployRequest) (authResolution, []createdResource, error) {
	var journal []createdResource

	switch {
	case req.ReuseAuthConfigID != "":
		// Path (a): reuse. Nothing is created, nothing is journaled.
		clients, err := s.store.FetchAppClientsForConfig(ctx, req.ReuseAuthConfigID)
		if err != nil {
			return authResolution{}, journal, err
		}
		if len(clients) == 0 {
			return authResolution{}, journal, constants.ErrAuthConfigNoClients
		}
		clientID := req.ReuseAppClientID
		if clientID == "" {
			clientID = clients[0].ID
		}
		return authResolution{authConfigID: req.ReuseAuthConfigID, appClientID: clientID}, journal, nil

	case req.BringOwnProvider:
		// Path (b): create config (unless the derived name exists), client,
		// then the user's providers.
		for _, p := range req.Providers {
			if !model.ValidProviderType(p.Type) {
				return authResolution{}, journal, constants.ErrInvalidProviderType
			}
			if p.OAuthClientID == "" || p.OAuthSecret == "" {
				return authResolution{}, journal, constants.ErrProviderCredsRequired
			}
		}

		configName := derivedAuthConfigName(req.Name)
		var configID string
		if existing, ok := s.store.AuthConfigByName(configName); ok {
			configID = existing.ID
		} else {
			created, err := s.authAPI.CreateAuthConfig(ctx, &dto.CreateAuthConfigRequest{
				TeamID:          req.TeamID,
				Name:            configName,
				BringMyOwnOAuth: true,
			})
			if err != nil {
				return authResolution{}, journal, err
			}
			configID = created.ID
			journal = append(journal, createdResource{kind: resourceAuthConfig, configID: configID})
		}

		appClient, err := s.authAPI.CreateAppClient(ctx, configID, &dto.CreateAppClientRequest{
			Name: req.Name + "-client",
		})
		if err != nil {
			return authResolution{}, journal, err
		}
		journal = append(journal, createdResource{kind: resourceAppClient, configID: configID, clientID: appClient.Client.ID})

		for i := range req.Providers {
			provider, err := s.authAPI.CreateProvider(ctx, configID, appClient.Client.ID, &req.Providers[i])
			if err != nil {
				return authResolution{}, journal, err
			}
			journal = append(journal, createdResource{
				kind:       resourceProvider,
				configID:   configID,
				clientID:   appClient.Client.ID,
				providerID: provider.ID,
			})
		}
		return authResolution{authConfigID: configID, appClientID: appClient.Client.ID}, journal, nil

	default:
		// Path (c): platform-default GitHub OAuth app via one composite call
		res, err := s.authAPI.CreateWithDefaultGitHub(ctx, req.TeamID, derivedAuthConfigName(req.Name))
		if err != nil {
			return authResolution{}, journal, err
		}
		journal = append(journal,
			createdResource{kind: resourceAuthConfig, configID: res.AuthConfig.ID},
			createdResource{kind: resourceAppClient, configID: res.AuthConfig.ID, clientID: res.AppClient.ID},
		)
		return authResolution{authConfigID: res.AuthConfig.ID, appClientID: res.AppClient.ID}, journal, nil
	}
}

// rollback best-effort deletes the journaled resources in reverse creation
// order. Failures are logged, never retried, and never mask the original
// deploy error.
func (s *DeploymentService) rollback(ctx context.Context, journal []createdResource) {
	for i := len(journal) - 1; i >= 0; i-- {
		r := journal[i]
		var err error
		switch r.kind {
		case resourceProvider:
			err = s.authAPI.DeleteProvider(ctx, r.configID, r.clientID, r.providerID)
		case resourceAppClient:
			err = s.authAPI.DeleteAppClient(ctx, r.configID, r.clientID)
		case resourceAuthConfig:
			err = s.authAPI.DeleteAuthConfig(ctx, r.configID)
		}
		if err != nil {
			utils.LogErrorWithContext("rollback deletion failed", err, map[string]interface{}{
				"kind":      r.kind,
				"config_id": r.configID,
				"client_id": r.clientID,
			})
			continue
		}
		metrics.RollbackResourcesTotal.Inc()
	}
}

// deriveRequestsAuth builds the requests_auth policy for project creation.
// With no methods selected and social auth off the proxy passes requests
// through unverified.
func (s *DeploymentService) deriveRequestsAuth(req *dto.DeployRequest, appClientID string) model.RequestsAuth {
	inputs := req.AuthMethods
	if len(inputs) == 0 {
		if !req.SocialAuthEnabled {
			return model.RequestsAuth{Mode: "passthrough", Methods: []model.AuthMethod{}}
		}
		// Social auth with no explicit selection verifies JWTs by default
		inputs = []dto.AuthMethodInput{{Type: "jwt"}}
	}

	sub := func(v string) string {
		v = strings.ReplaceAll(v, constants.PlaceholderProjectName, req.Name)
		v = strings.ReplaceAll(v, constants.PlaceholderAPIVersion, req.APIVersion)
		v = strings.ReplaceAll(v, constants.PlaceholderAppClientID, appClientID)
		return v
	}

	methods := make([]model.AuthMethod, 0, len(inputs))
	for _, in := range inputs {
		m := model.AuthMethod{Type: in.Type, Endpoint: sub(in.Endpoint), HeaderName: in.Header}
		for _, iss := range in.Issuers {
			m.Issuers = append(m.Issuers, sub(iss))
		}
		for _, aud := range in.Audiences {
			m.Audiences = append(m.Audiences, sub(aud))
		}
		if in.Type == "jwt" {
			if len(m.Issuers) == 0 {
				m.Issuers = []string{s.defaultIssuerURL(req.Name, req.APIVersion)}
			}
			if len(m.Audiences) == 0 {
				if appClientID != "" {
					m.Audiences = []string{appClientID}
				} else {
					m.Audiences = []string{s.defaultAudienceURL(req.Name, req.APIVersion)}
				}
			}
		}
		methods = append(methods, m)
	}
	return model.RequestsAuth{Mode: "authenticate", Methods: methods}
}

// knownEnvironments drops entries whose key is not a recognized deployment
// environment; the backend rejects the whole request otherwise.
func knownEnvironments(envs map[string]model.Environment) map[string]model.Environment {
	if len(envs) == 0 {
		return envs
	}
	out := make(map[string]model.Environment, len(envs))
	for key, env := range envs {
		if _, ok := constants.EnvironmentLabels[key]; ok {
			out[key] = env
		}
	}
	return out
}

// persistRoutes writes only the staged entries deviating from the default
// policy, minimizing payload and avoiding accidental override of server-side
// defaults.
func (s *DeploymentService) persistRoutes(ctx context.Context, projectID, apiVersion string, routes []model.RouteEntry) (int, error) {
	persisted := 0
	for _, entry := range GetRoutesWithConfig(routes) {
		if err := s.routeAPI.PutRouteConfig(ctx, projectID, apiVersion, entry); err != nil {
			return persisted, err
		}
		persisted++
	}
	return persisted, nil
}

func (s *DeploymentService) publish(req *dto.DeployRequest, projectID, stage string, status model.DeploymentStatus, errMsg string) {
	if s.notifier == nil {
		return
	}
	s.notifier.PublishStatus(dto.StatusEvent{
		TeamID:    req.TeamID,
		ProjectID: projectID,
		Name:      req.Name,
		Stage:     stage,
		Status:    status,
		Error:     errMsg,
	})
}

// defaultIssuerURL is the deterministic issuer derived from project identity
func (s *DeploymentService) defaultIssuerURL(name, apiVersion string) string {
	return fmt.Sprintf("https://%s/%s/%s", s.cfg.Deploy.AuthDomain, slug(name), apiVersion)
}

// defaultAudienceURL is the deterministic audience used when no app client
// exists to serve as one
func (s *DeploymentService) defaultAudienceURL(name, apiVersion string) string {
	return fmt.Sprintf("https://%s.%s/%s", slug(name), s.cfg.Deploy.ProxyDomain, apiVersion)
}

// derivedAuthConfigName is the deterministic user-pool name for a project
func derivedAuthConfigName(projectName string) string {
	return slug(projectName) + "-user-pool"
}

// slug lowercases and hyphenates a display name for use in URLs
func slug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(strings.TrimSpace(name)), "-"))
}
