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

package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Server holds the configuration parameters for the dashboard BFF.
type Server struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"DEBUG"`

	// Server configurations
	Port string `envconfig:"PORT" default:"9280"`

	// Upstream admin API (project / auth-config / app-client CRUD).
	// The browser never talks to it directly; the BFF attaches the admin key.
	AdminAPI Upstream `envconfig:"ADMIN_API"`

	// Upstream policies API (route-level authorization / cache rules)
	PolicyAPI Upstream `envconfig:"POLICY_API"`

	// GitHub API access for repo-hosted OpenAPI specs
	GitHub GitHub `envconfig:"GITHUB"`

	// JWT session verification configuration
	JWT JWT `envconfig:"JWT"`

	// CORS configuration for the dashboard origin
	CORS CORS `envconfig:"CORS"`

	// Deployment defaults applied when the user leaves fields empty
	Deploy Deploy `envconfig:"DEPLOY"`
}

// Upstream holds connection settings for one backend service.
type Upstream struct {
	BaseURL string `envconfig:"BASE_URL" default:"http://localhost:9243/api/v1"`
	APIKey  string `envconfig:"API_KEY" default:""`
	// HeaderName is the header the API key is sent in
	HeaderName string `envconfig:"HEADER_NAME" default:"x-apiblaze-api-key"`
	// TimeoutSeconds is the per-request timeout; callers may override per call
	TimeoutSeconds int `envconfig:"TIMEOUT_SECONDS" default:"30"`
}

// Timeout returns the upstream request timeout as a duration.
func (u Upstream) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// GitHub holds GitHub API access configuration
type GitHub struct {
	APIBaseURL string `envconfig:"API_BASE_URL" default:"https://api.github.com"`
	// Token is optional; unauthenticated requests work for public repos
	Token          string `envconfig:"TOKEN" default:""`
	TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"30"`
}

// JWT holds session-token verification configuration
type JWT struct {
	SecretKey      string   `envconfig:"SECRET_KEY" default:"your-secret-key-change-in-production"`
	Issuer         string   `envconfig:"ISSUER" default:"apiblaze-auth"`
	SkipPaths      []string `envconfig:"SKIP_PATHS" default:"/health,/metrics"`
	SkipValidation bool     `envconfig:"SKIP_VALIDATION" default:"true"` // Skip signature validation for development
}

// CORS holds allowed dashboard origins
type CORS struct {
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// Deploy holds deterministic defaults used by the deployment orchestrator
type Deploy struct {
	// AuthDomain is the base domain for derived JWT issuer URLs
	AuthDomain string `envconfig:"AUTH_DOMAIN" default:"auth.apiblaze.com"`
	// ProxyDomain is the base domain deployed proxies are served under
	ProxyDomain string `envconfig:"PROXY_DOMAIN" default:"proxy.apiblaze.com"`
	// ProjectPageSize is the page size used when paginating active projects
	ProjectPageSize int `envconfig:"PROJECT_PAGE_SIZE" default:"50"`
}

// package-level variable and mutex for thread safety
var (
	processOnce     sync.Once
	settingInstance *Server
)

// GetConfig initializes and returns a singleton instance of the Server struct.
// It uses sync.Once to ensure that the initialization logic is executed only
// once, making it safe for concurrent use. If there is an error during the
// initialization, the function will panic.
func GetConfig() *Server {
	var err error
	processOnce.Do(func() {
		settingInstance = &Server{}
		err = envconfig.Process("", settingInstance)
		if err == nil {
			err = validateUpstreams(settingInstance)
		}
	})
	if err != nil {
		panic(err)
	}
	return settingInstance
}

// validateUpstreams ensures the configured upstreams are usable.
func validateUpstreams(cfg *Server) error {
	if cfg.AdminAPI.BaseURL == "" {
		return fmt.Errorf("ADMIN_API_BASE_URL is not configured")
	}
	if cfg.PolicyAPI.BaseURL == "" {
		return fmt.Errorf("POLICY_API_BASE_URL is not configured")
	}
	if cfg.AdminAPI.TimeoutSeconds <= 0 {
		return fmt.Errorf("ADMIN_API_TIMEOUT_SECONDS must be positive, got %d", cfg.AdminAPI.TimeoutSeconds)
	}
	if cfg.PolicyAPI.TimeoutSeconds <= 0 {
		return fmt.Errorf("POLICY_API_TIMEOUT_SECONDS must be positive, got %d", cfg.PolicyAPI.TimeoutSeconds)
	}
	if cfg.Deploy.ProjectPageSize <= 0 {
		return fmt.Errorf("DEPLOY_PROJECT_PAGE_SIZE must be positive, got %d", cfg.Deploy.ProjectPageSize)
	}
	return nil
}
