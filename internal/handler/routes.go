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
	"dashboard-api/internal/dto"
	"dashboard-api/internal/service"
	"dashboard-api/internal/utils"

	"github.com/gin-gonic/gin"
)

type RouteConfigHandler struct {
	routeService *service.RouteService
}

func NewRouteConfigHandler(routeService *service.RouteService) *RouteConfigHandler {
	return &RouteConfigHandler{
		routeService: routeService,
	}
}

// SyncRoutes handles POST /api/v1/route-configs/sync
func (h *RouteConfigHandler) SyncRoutes(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}

	var req dto.SyncRoutesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			utils.FormatValidationError(err)))
		return
	}

	resp, parseErr, err := h.routeService.SyncRoutes(c.Request.Context(), &req)
	if err != nil {
		respondUpstreamError(c, err, "Failed to sync route configuration")
		return
	}
	if parseErr != nil {
		c.JSON(http.StatusUnprocessableEntity, utils.NewSpecErrorResponse(422, *parseErr))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SaveRoutes handles POST /api/v1/route-configs/save
func (h *RouteConfigHandler) SaveRoutes(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}

	var req dto.SaveRoutesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			utils.FormatValidationError(err)))
		return
	}

	resp, err := h.routeService.SaveRoutes(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, constants.ErrRouteTemplateInvalid) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
				"A route template is not valid JSON"))
			return
		}
		respondUpstreamError(c, err, "Failed to save route configuration")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ValidateSpec handles POST /api/v1/specs/validate
func (h *RouteConfigHandler) ValidateSpec(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}

	var req dto.ValidateSpecRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			utils.FormatValidationError(err)))
		return
	}

	resp, err := h.routeService.ValidateSpec(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, constants.ErrInvalidProjectSource) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
				"Provide spec content inline or a GitHub owner, repo and path"))
			return
		}
		respondUpstreamError(c, err, err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}
