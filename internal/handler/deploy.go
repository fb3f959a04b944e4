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

	"dashboard-api/internal/cache"
	"dashboard-api/internal/constants"
	"dashboard-api/internal/dto"
	"dashboard-api/internal/service"
	"dashboard-api/internal/utils"

	"github.com/gin-gonic/gin"
)

type DeployHandler struct {
	deployService *service.DeploymentService
	store         *cache.Store
}

func NewDeployHandler(deployService *service.DeploymentService, store *cache.Store) *DeployHandler {
	return &DeployHandler{
		deployService: deployService,
		store:         store,
	}
}

// Deploy handles POST /api/v1/deploy
func (h *DeployHandler) Deploy(c *gin.Context) {
	teamID, ok := teamFromContext(c)
	if !ok {
		return
	}

	var req dto.DeployRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			utils.FormatValidationError(err)))
		return
	}
	req.TeamID = teamID

	if req.ReuseAuthConfigID != "" && req.BringOwnProvider {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			"Reusing an auth config and bringing your own provider are mutually exclusive"))
		return
	}

	resp, err := h.deployService.Deploy(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, constants.ErrProjectNameRequired):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
				"Project name is required"))
		case errors.Is(err, constants.ErrProjectNameTaken):
			c.JSON(http.StatusConflict, utils.NewErrorResponse(409, "Conflict",
				"Project name, subdomain or version is already in use"))
		case errors.Is(err, constants.ErrAuthConfigNoClients):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
				"The selected auth config has no app clients"))
		case errors.Is(err, constants.ErrRouteTemplateInvalid):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
				"A staged route template is not valid JSON"))
		case errors.Is(err, constants.ErrInvalidProviderType),
			errors.Is(err, constants.ErrProviderCredsRequired):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request", err.Error()))
		default:
			respondUpstreamError(c, err, "Deployment failed")
		}
		return
	}

	// The deploy changed the top-level collections; reload before the
	// dashboard re-renders
	if err := h.store.InvalidateAndRefetch(c.Request.Context(), teamID); err != nil {
		utils.LogError("cache refetch after deploy failed", err)
	}

	c.JSON(http.StatusCreated, resp)
}
