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

package model

import (
	"time"

	"dashboard-api/internal/constants"
)

// SourceType identifies where a project's OpenAPI spec comes from
type SourceType string

const (
	SourceGitHub     SourceType = "github"
	SourceUpload     SourceType = "upload"
	SourceTargetOnly SourceType = "target_only"
)

// DeploymentStatus is the lifecycle state of a deployed proxy
type DeploymentStatus string

const (
	StatusDeploying DeploymentStatus = "deploying"
	StatusActive    DeploymentStatus = "active"
	StatusError     DeploymentStatus = "error"
)

// Project represents one deployed (or deploying) API proxy
type Project struct {
	ID                 string                 `json:"project_id"`
	Name               string                 `json:"name"`
	Subdomain          string                 `json:"subdomain"`
	APIVersion         string                 `json:"api_version"`
	Source             SpecSource             `json:"source"`
	Environments       map[string]Environment `json:"environments"`
	Throttling         Throttling             `json:"throttling"`
	AuthConfigID       string                 `json:"auth_config_id,omitempty"`
	DefaultAppClientID string                 `json:"default_app_client_id,omitempty"`
	Status             DeploymentStatus       `json:"status"`
	StatusAge          time.Duration          `json:"status_age,omitempty"`
	LastError          string                 `json:"last_error,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// SpecSource is the variant describing where the OpenAPI document lives.
// Exactly one of the variant field groups is populated, keyed by Type.
type SpecSource struct {
	Type SourceType `json:"type"`

	// github variant
	Owner  string `json:"owner,omitempty"`
	Repo   string `json:"repo,omitempty"`
	Path   string `json:"path,omitempty"`
	Branch string `json:"branch,omitempty"`

	// upload variant: the raw document
	Content []byte `json:"content,omitempty"`

	// target_only variant
	TargetURL string `json:"target_url,omitempty"`
}

// Environment is one target server with its variable overrides
type Environment struct {
	BaseURL         string            `json:"base_url"`
	PathOverrides   map[string]string `json:"path_overrides,omitempty"`
	HeaderOverrides map[string]string `json:"header_overrides,omitempty"`
	BodyOverrides   map[string]string `json:"body_overrides,omitempty"`
}

// Throttling holds the three-tier rate limits for a project.
// Invariant: UserRateLimit <= ProxyDailyQuota <= AccountMonthlyQuota,
// maintained by clamping on edit rather than rejecting input.
type Throttling struct {
	UserRateLimit       int `json:"user_rate_limit"`
	ProxyDailyQuota     int `json:"proxy_daily_quota"`
	AccountMonthlyQuota int `json:"account_monthly_quota"`
}

// DefaultThrottling returns the platform default limits
func DefaultThrottling() Throttling {
	return Throttling{
		UserRateLimit:       constants.DefaultUserRateLimit,
		ProxyDailyQuota:     constants.DefaultProxyDailyQuota,
		AccountMonthlyQuota: constants.DefaultAccountMonthlyQuota,
	}
}

// SetUserRateLimit applies a user edit, clamping to the daily quota
func (t *Throttling) SetUserRateLimit(v int) {
	if v <= 0 {
		v = constants.DefaultUserRateLimit
	}
	if v > t.ProxyDailyQuota {
		v = t.ProxyDailyQuota
	}
	t.UserRateLimit = v
}

// SetProxyDailyQuota applies a user edit. A value above the monthly quota
// resets the daily quota to its default; the user rate limit is re-clamped
// either way.
func (t *Throttling) SetProxyDailyQuota(v int) {
	if v <= 0 || v > t.AccountMonthlyQuota {
		v = constants.DefaultProxyDailyQuota
	}
	if v > t.AccountMonthlyQuota {
		v = t.AccountMonthlyQuota
	}
	t.ProxyDailyQuota = v
	if t.UserRateLimit > t.ProxyDailyQuota {
		t.UserRateLimit = t.ProxyDailyQuota
	}
}

// SetAccountMonthlyQuota applies an account-level edit and cascades the clamp
func (t *Throttling) SetAccountMonthlyQuota(v int) {
	if v <= 0 {
		v = constants.DefaultAccountMonthlyQuota
	}
	t.AccountMonthlyQuota = v
	if t.ProxyDailyQuota > t.AccountMonthlyQuota {
		t.ProxyDailyQuota = t.AccountMonthlyQuota
	}
	if t.UserRateLimit > t.ProxyDailyQuota {
		t.UserRateLimit = t.ProxyDailyQuota
	}
}
