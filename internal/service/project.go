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
	"strings"

	"dashboard-api/internal/cache"
	"dashboard-api/internal/client"
	"dashboard-api/internal/constants"
	"dashboard-api/internal/dto"
	"dashboard-api/internal/model"
	"dashboard-api/internal/utils"
)

// ProjectService serves the project collection and the GitHub spec-source
// browsing that feeds project creation
type ProjectService struct {
	projectAPI client.ProjectAPI
	specAPI    client.SpecSourceAPI
	store      *cache.Store
}

// NewProjectService creates a new project service
func NewProjectService(projectAPI client.ProjectAPI, specAPI client.SpecSourceAPI, store *cache.Store) *ProjectService {
	return &ProjectService{projectAPI: projectAPI, specAPI: specAPI, store: store}
}

// Projects serves the cached project list
func (s *ProjectService) Projects() []model.Project {
	return s.store.Projects()
}

// CheckAvailability asks the backend whether a (name, subdomain, version)
// triple is free
func (s *ProjectService) CheckAvailability(ctx context.Context, teamID, name, subdomain, apiVersion string) (*dto.ProjectCheckResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, constants.ErrProjectNameRequired
	}
	return s.projectAPI.CheckProjectAvailability(ctx, teamID, name, subdomain, apiVersion)
}

// DeleteProject removes a project and reloads the cached list
func (s *ProjectService) DeleteProject(ctx context.Context, projectID string) error {
	if err := s.projectAPI.DeleteProject(ctx, projectID); err != nil {
		return err
	}
	if err := s.store.InvalidateAndRefetch(ctx, ""); err != nil {
		utils.LogError("cache refetch after project deletion failed", err)
	}
	return nil
}

// ListBranches lists the branches of a GitHub repository for spec selection
func (s *ProjectService) ListBranches(ctx context.Context, owner, repo string) ([]string, error) {
	if owner == "" || repo == "" {
		return nil, constants.ErrInvalidProjectSource
	}
	return s.specAPI.ListBranches(ctx, owner, repo)
}

// FetchSpecContent fetches one file from a GitHub repository
func (s *ProjectService) FetchSpecContent(ctx context.Context, owner, repo, branch, path string) ([]byte, error) {
	if owner == "" || repo == "" || path == "" {
		return nil, constants.ErrInvalidProjectSource
	}
	return s.specAPI.FetchFileContent(ctx, owner, repo, branch, path)
}
