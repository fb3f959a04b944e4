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

package handler

import (
	"errors"
	"net/http"

	"dashboard-api/internal/constants"
	"dashboard-api/internal/service"
	"dashboard-api/internal/utils"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects handles GET /api/v1/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": h.projectService.Projects()})
}

// CheckAvailability handles GET /api/v1/projects/check
func (h *ProjectHandler) CheckAvailability(c *gin.Context) {
	teamID, ok := teamFromContext(c)
	if !ok {
		return
	}

	name := c.Query("name")
	check, err := h.projectService.CheckAvailability(c.Request.Context(), teamID,
		name, c.Query("subdomain"), c.Query("version"))
	if err != nil {
		if errors.Is(err, constants.ErrProjectNameRequired) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
				"Project name is required"))
			return
		}
		respondUpstreamError(c, err, "Failed to check project availability")
		return
	}

	c.JSON(http.StatusOK, check)
}

// DeleteProject handles DELETE /api/v1/projects/:projectId
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}

	projectID := c.Param("projectId")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			"Project ID is required"))
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), projectID); err != nil {
		respondUpstreamError(c, err, "Failed to delete project")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListBranches handles GET /api/v1/github/:owner/:repo/branches
func (h *ProjectHandler) ListBranches(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}

	branches, err := h.projectService.ListBranches(c.Request.Context(), c.Param("owner"), c.Param("repo"))
	if err != nil {
		if errors.Is(err, constants.ErrInvalidProjectSource) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
				"Repository owner and name are required"))
			return
		}
		respondUpstreamError(c, err, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"branches": branches})
}

// FetchSpecContent handles GET /api/v1/github/:owner/:repo/content
func (h *ProjectHandler) FetchSpecContent(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}

	content, err := h.projectService.FetchSpecContent(c.Request.Context(),
		c.Param("owner"), c.Param("repo"), c.Query("branch"), c.Query("path"))
	if err != nil {
		if errors.Is(err, constants.ErrInvalidProjectSource) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
				"Repository owner, name and file path are required"))
			return
		}
		respondUpstreamError(c, err, err.Error())
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", content)
}
