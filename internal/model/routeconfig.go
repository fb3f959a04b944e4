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
	"encoding/json"
	"strings"
)

// RouteEntry is the per-(path, method) authorization/cache override for a
// deployed API. Only entries deviating from the default policy are persisted.
type RouteEntry struct {
	Path        string `json:"path"`
	Method      string `json:"method"`
	Description string `json:"description,omitempty"`

	RequireAuthentication bool `json:"require_authentication"`

	// JSON-encoded authorization-check arrays, validated client-side
	PreRequestAuthTemplate     string `json:"pre_request_auth_template,omitempty"`
	PostResponsePolicyTemplate string `json:"post_response_policy_template,omitempty"`

	// Opaque cache rules, nil when trivial
	CacheRules map[string]interface{} `json:"cache_rules,omitempty"`
}

// NewRouteEntry returns an entry carrying the default policy for (path, method)
func NewRouteEntry(path, method, description string) RouteEntry {
	return RouteEntry{
		Path:                  path,
		Method:                strings.ToLower(method),
		Description:           description,
		RequireAuthentication: true,
	}
}

// IsDefault reports whether the entry carries only default values and
// therefore must not be persisted.
func (r RouteEntry) IsDefault() bool {
	return r.RequireAuthentication &&
		r.PreRequestAuthTemplate == "" &&
		r.PostResponsePolicyTemplate == "" &&
		len(r.CacheRules) == 0
}

// Key returns the exact merge key for the entry
func (r RouteEntry) Key() string {
	return strings.ToLower(r.Method) + " " + r.Path
}

// BasePath truncates the path at the first path-parameter token so that
// /items and /items/{id} group together for display.
func (r RouteEntry) BasePath() string {
	if i := strings.Index(r.Path, "{"); i >= 0 {
		base := strings.TrimRight(r.Path[:i], "/")
		if base == "" {
			return "/"
		}
		return base
	}
	return r.Path
}

// ValidTemplate reports whether s is syntactically valid JSON and is an
// object or array. Empty templates are valid (no checks configured).
func ValidTemplate(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return true
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return false
	}
	return json.Valid([]byte(trimmed))
}

// RequestsAuth is the derived authentication policy bundled into project
// creation. Mode passthrough forwards requests without verifying identity.
type RequestsAuth struct {
	Mode    string       `json:"mode"` // passthrough | authenticate
	Methods []AuthMethod `json:"methods"`
}

// AuthMethod is one enabled verification mechanism
type AuthMethod struct {
	Type      string   `json:"type"` // jwt | opaque | api_key
	Issuers   []string `json:"issuers,omitempty"`
	Audiences []string `json:"audiences,omitempty"`
	// Endpoint is the introspection endpoint for opaque tokens
	Endpoint string `json:"endpoint,omitempty"`
	// HeaderName carries the api key header
	HeaderName string `json:"header_name,omitempty"`
}
