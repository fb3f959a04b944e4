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
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"dashboard-api/internal/client"
	"dashboard-api/internal/constants"
	"dashboard-api/internal/dto"
	"dashboard-api/internal/metrics"
	"dashboard-api/internal/model"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// RouteService keeps per-route gateway configuration in step with the
// project's OpenAPI definition. The definition decides which routes exist;
// the policy store decides how each one behaves.
type RouteService struct {
	routeAPI client.RouteConfigAPI
	specAPI  client.SpecSourceAPI
}

// NewRouteService creates a new route synchronizer
func NewRouteService(routeAPI client.RouteConfigAPI, specAPI client.SpecSourceAPI) *RouteService {
	return &RouteService{routeAPI: routeAPI, specAPI: specAPI}
}

// SyncRoutes extracts the route set from the given OpenAPI definition, merges
// in the persisted per-route configuration, and returns the result grouped by
// base path for display.
func (s *RouteService) SyncRoutes(ctx context.Context, req *dto.SyncRoutesRequest) (*dto.SyncRoutesResponse, *dto.SpecParseError, error) {
	doc, parseErr := s.ParseSpec(req.Spec)
	if parseErr != nil {
		return nil, parseErr, nil
	}

	specRoutes := ExtractRoutes(doc)
	persisted, err := s.routeAPI.GetRouteConfigs(ctx, req.ProjectID, req.APIVersion)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load persisted route configs: %w", err)
	}

	merged := MergeRoutes(specRoutes, persisted)
	metrics.RouteSyncEntries.Observe(float64(len(merged)))
	return &dto.SyncRoutesResponse{
		Groups: GroupByBasePath(merged),
		Total:  len(merged),
	}, nil, nil
}

// SaveRoutes persists the staged entries that deviate from the default
// policy and deletes the persisted record of any entry reverted to defaults.
func (s *RouteService) SaveRoutes(ctx context.Context, req *dto.SaveRoutesRequest) (*dto.SaveRoutesResponse, error) {
	resp := &dto.SaveRoutesResponse{}
	for _, entry := range req.Routes {
		if entry.IsDefault() {
			// Reverting to defaults removes the override; deletion of a
			// record that never existed is a no-op upstream.
			if err := s.routeAPI.DeleteRouteConfig(ctx, req.ProjectID, req.APIVersion, entry.Path, entry.Method); err != nil {
				return resp, err
			}
			resp.Skipped++
			continue
		}
		if !model.ValidTemplate(entry.PreRequestAuthTemplate) || !model.ValidTemplate(entry.PostResponsePolicyTemplate) {
			return resp, constants.ErrRouteTemplateInvalid
		}
		if err := s.routeAPI.PutRouteConfig(ctx, req.ProjectID, req.APIVersion, entry); err != nil {
			return resp, err
		}
		resp.Persisted++
	}
	return resp, nil
}

// ValidateSpec parses an OpenAPI definition supplied inline or fetched from a
// GitHub repository and reports its identity and operation count.
func (s *RouteService) ValidateSpec(ctx context.Context, req *dto.ValidateSpecRequest) (*dto.ValidateSpecResponse, error) {
	content := req.Content
	if len(content) == 0 {
		if req.Owner == "" || req.Repo == "" || req.Path == "" {
			return nil, constants.ErrInvalidProjectSource
		}
		fetched, err := s.specAPI.FetchFileContent(ctx, req.Owner, req.Repo, req.Branch, req.Path)
		if err != nil {
			return nil, err
		}
		content = fetched
	}

	doc, parseErr := s.ParseSpec(content)
	if parseErr != nil {
		return &dto.ValidateSpecResponse{Valid: false, Error: parseErr}, nil
	}

	resp := &dto.ValidateSpecResponse{Valid: true, Operations: len(ExtractRoutes(doc))}
	if doc.Info != nil {
		resp.Title = doc.Info.Title
		resp.Version = doc.Info.Version
	}
	return resp, nil
}

// ParseSpec builds a v3 document from JSON or YAML content. Swagger 2.0
// documents are converted up so the rest of the pipeline only ever sees v3.
func (s *RouteService) ParseSpec(content []byte) (*openapi3.T, *dto.SpecParseError) {
	var probe struct {
		OpenAPI string `json:"openapi" yaml:"openapi"`
		Swagger string `json:"swagger" yaml:"swagger"`
	}
	if err := yaml.Unmarshal(content, &probe); err != nil {
		return nil, buildParseError(err, content)
	}

	if probe.Swagger != "" {
		if !strings.HasPrefix(probe.Swagger, "2.") {
			return nil, &dto.SpecParseError{
				Message:     fmt.Sprintf("unsupported swagger version %q", probe.Swagger),
				Suggestions: []string{"supported versions are Swagger 2.0 and OpenAPI 3.x"},
			}
		}
		doc, err := convertSwagger2(content)
		if err != nil {
			return nil, buildParseError(err, content)
		}
		return doc, nil
	}

	if probe.OpenAPI == "" {
		return nil, &dto.SpecParseError{
			Message:     constants.ErrSpecUnsupported.Error(),
			Suggestions: []string{"the document declares neither an openapi nor a swagger version field"},
		}
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(content)
	if err != nil {
		return nil, buildParseError(err, content)
	}
	if doc.Paths == nil {
		return nil, &dto.SpecParseError{
			Message:     "document has no paths section",
			Suggestions: []string{"add at least one path to the definition"},
		}
	}
	return doc, nil
}

// convertSwagger2 upgrades a Swagger 2.0 document to v3. The v2 decoder is
// JSON-only, so YAML input is round-tripped through a generic map first.
func convertSwagger2(content []byte) (*openapi3.T, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, err
	}
	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var docV2 openapi2.T
	if err := json.Unmarshal(jsonBytes, &docV2); err != nil {
		return nil, err
	}
	return openapi2conv.ToV3(&docV2)
}

// ExtractRoutes walks every (path, method) pair in the document and produces
// a default-policy entry for each. The description comes from the operation
// summary, falling back to its description.
func ExtractRoutes(doc *openapi3.T) []model.RouteEntry {
	var routes []model.RouteEntry
	if doc == nil || doc.Paths == nil {
		return routes
	}

	allowed := make(map[string]bool, len(constants.StandardHTTPMethods))
	for _, m := range constants.StandardHTTPMethods {
		allowed[m] = true
	}

	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || !allowed[strings.ToLower(method)] {
				continue
			}
			description := op.Summary
			if description == "" {
				description = op.Description
			}
			routes = append(routes, model.NewRouteEntry(path, method, description))
		}
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	return routes
}

// MergeRoutes overlays persisted configuration onto the extracted route set.
// The definition owns the set of routes and their descriptions; the persisted
// record owns everything else. Persisted entries whose route no longer exists
// in the definition are dropped.
func MergeRoutes(specRoutes, persisted []model.RouteEntry) []model.RouteEntry {
	byKey := make(map[string]model.RouteEntry, len(persisted))
	for _, p := range persisted {
		byKey[p.Key()] = p
	}

	merged := make([]model.RouteEntry, 0, len(specRoutes))
	for _, sr := range specRoutes {
		if p, ok := byKey[sr.Key()]; ok {
			p.Description = sr.Description
			merged = append(merged, p)
			continue
		}
		merged = append(merged, sr)
	}
	return merged
}

// GroupByBasePath buckets routes by their base path, both groups and members
// in stable order
func GroupByBasePath(routes []model.RouteEntry) []dto.RouteGroup {
	buckets := make(map[string][]model.RouteEntry)
	for _, r := range routes {
		base := r.BasePath()
		buckets[base] = append(buckets[base], r)
	}

	bases := make([]string, 0, len(buckets))
	for base := range buckets {
		bases = append(bases, base)
	}
	sort.Strings(bases)

	groups := make([]dto.RouteGroup, 0, len(bases))
	for _, base := range bases {
		groups = append(groups, dto.RouteGroup{BasePath: base, Routes: buckets[base]})
	}
	return groups
}

// GetRoutesWithConfig filters a staged route set down to the entries that
// carry non-default configuration and therefore need persisting
func GetRoutesWithConfig(routes []model.RouteEntry) []model.RouteEntry {
	out := make([]model.RouteEntry, 0, len(routes))
	for _, r := range routes {
		if !r.IsDefault() {
			out = append(out, r)
		}
	}
	return out
}

var yamlLineRe = regexp.MustCompile(`line (\d+):`)

// buildParseError shapes a parser failure for the dashboard: the message,
// the offending line with a small snippet when the parser reports one, and
// any actionable suggestions.
func buildParseError(err error, content []byte) *dto.SpecParseError {
	pe := &dto.SpecParseError{Message: err.Error()}

	if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
		line, _ := strconv.Atoi(m[1])
		pe.Details = &dto.SpecErrorDetail{Line: line, Snippet: snippetAt(content, line)}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "did not find expected"), strings.Contains(msg, "mapping values"):
		pe.Suggestions = append(pe.Suggestions, "check the indentation around the reported line")
	case strings.Contains(msg, "cannot unmarshal"):
		pe.Suggestions = append(pe.Suggestions, "a field has a value of the wrong type")
	}
	return pe
}

// snippetAt returns the 1-based line plus one line of context on each side
func snippetAt(content []byte, line int) string {
	lines := strings.Split(string(content), "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	start := line - 2
	if start < 0 {
		start = 0
	}
	end := line + 1
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}
