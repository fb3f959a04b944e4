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
	"sort"
	"strings"
	"time"

	"dashboard-api/internal/constants"
)

// AuthConfig is a named user pool grouping one or more app clients
type AuthConfig struct {
	ID              string    `json:"auth_config_id"`
	Name            string    `json:"name"`
	BringMyOwnOAuth bool      `json:"bring_my_own_oauth"`
	CreatedAt       time.Time `json:"created_at"`
}

// AppClient is an OAuth 2.0 client registration under an auth config.
// The client secret is returned exactly once at creation time and is never
// part of the cached model.
type AppClient struct {
	ID           string    `json:"client_id"`
	AuthConfigID string    `json:"auth_config_id"`
	Name         string    `json:"name"`
	RedirectURIs []string  `json:"redirect_uris"`
	SignoutURIs  []string  `json:"signout_uris"`
	Scopes       []string  `json:"scopes"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeURIs deduplicates and sorts a URI set
func NormalizeURIs(uris []string) []string {
	seen := make(map[string]struct{}, len(uris))
	out := make([]string, 0, len(uris))
	for _, u := range uris {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// NormalizeScopes deduplicates the scope set and guarantees the mandatory
// scopes are present regardless of what the caller sent.
func NormalizeScopes(scopes []string) []string {
	seen := make(map[string]struct{}, len(scopes)+len(constants.MandatoryScopes))
	out := make([]string, 0, len(scopes)+len(constants.MandatoryScopes))
	for _, s := range constants.MandatoryScopes {
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, s := range scopes {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// IsMandatoryScope reports whether a scope can never be removed from a client
func IsMandatoryScope(scope string) bool {
	for _, s := range constants.MandatoryScopes {
		if s == scope {
			return true
		}
	}
	return false
}

// ProviderType identifies an external identity provider
type ProviderType string

const (
	ProviderGoogle    ProviderType = "google"
	ProviderGitHub    ProviderType = "github"
	ProviderMicrosoft ProviderType = "microsoft"
	ProviderFacebook  ProviderType = "facebook"
	ProviderAuth0     ProviderType = "auth0"
	ProviderOther     ProviderType = "other"
)

// ValidProviderType reports whether t is a known provider type
func ValidProviderType(t ProviderType) bool {
	switch t {
	case ProviderGoogle, ProviderGitHub, ProviderMicrosoft, ProviderFacebook, ProviderAuth0, ProviderOther:
		return true
	}
	return false
}

// SocialProvider is one external identity provider wired to an app client
type SocialProvider struct {
	ID           string       `json:"provider_id"`
	Type         ProviderType `json:"type"`
	AuthConfigID string       `json:"auth_config_id"`
	AppClientID  string       `json:"client_id"`
	OAuthClient  string       `json:"oauth_client_id"`
	Domain       string       `json:"domain,omitempty"`
	// Per-provider token-handling flags
	MapRefreshToken bool      `json:"map_refresh_token,omitempty"`
	PassIDToken     bool      `json:"pass_id_token,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
