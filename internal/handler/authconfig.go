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

type AuthConfigHandler struct {
	authService *service.AuthConfigService
}

func NewAuthConfigHandler(authService *service.AuthConfigService) *AuthConfigHandler {
	return &AuthConfigHandler{
		authService: authService,
	}
}

// ListAuthConfigs handles GET /api/v1/auth-configs
func (h *AuthConfigHandler) ListAuthConfigs(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"auth_configs": h.authService.ListAuthConfigs()})
}

// CreateAuthConfig handles POST /api/v1/auth-configs
func (h *AuthConfigHandler) CreateAuthConfig(c *gin.Context) {
	teamID, ok := teamFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateAuthConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			utils.FormatValidationError(err)))
		return
	}
	req.TeamID = teamID

	created, err := h.authService.CreateAuthConfig(c.Request.Context(), &req)
	if err != nil {
		respondUpstreamError(c, err, "Failed to create auth config")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateAuthConfig handles PUT /api/v1/auth-configs/:configId
func (h *AuthConfigHandler) UpdateAuthConfig(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}

	var req dto.UpdateAuthConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			utils.FormatValidationError(err)))
		return
	}

	updated, err := h.authService.UpdateAuthConfig(c.Request.Context(), c.Param("configId"), &req)
	if err != nil {
		respondUpstreamError(c, err, "Failed to update auth config")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteAuthConfig handles DELETE /api/v1/auth-configs/:configId
func (h *AuthConfigHandler) DeleteAuthConfig(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}

	if err := h.authService.DeleteAuthConfig(c.Request.Context(), c.Param("configId")); err != nil {
		respondUpstreamError(c, err, "Failed to delete auth config")
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateWithDefaultGitHub handles POST /api/v1/auth-configs/default-github
func (h *AuthConfigHandler) CreateWithDefaultGitHub(c *gin.Context) {
	teamID, ok := teamFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			utils.FormatValidationError(err)))
		return
	}

	res, err := h.authService.CreateWithDefaultGitHub(c.Request.Context(), teamID, req.Name)
	if err != nil {
		respondUpstreamError(c, err, "Failed to provision default GitHub auth")
		return
	}

	c.JSON(http.StatusCreated, res)
}

// ListAppClients handles GET /api/v1/auth-configs/:configId/clients
func (h *AuthConfigHandler) ListAppClients(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}

	clients, err := h.authService.ListAppClients(c.Request.Context(), c.Param("configId"))
	if err != nil {
		respondUpstreamError(c, err, "Failed to list app clients")
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// CreateAppClient handles POST /api/v1/auth-configs/:configId/clients.
// The response carries the client secret exactly once.
func (h *AuthConfigHandler) CreateAppClient(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}

	var req dto.CreateAppClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			utils.FormatValidationError(err)))
		return
	}

	created, err := h.authService.CreateAppClient(c.Request.Context(), c.Param("configId"), &req)
	if err != nil {
		respondUpstreamError(c, err, "Failed to create app client")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateAppClient handles PATCH /api/v1/auth-configs/:configId/clients/:clientId
func (h *AuthConfigHandler) UpdateAppClient(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}

	var req dto.UpdateAppClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			utils.FormatValidationError(err)))
		return
	}

	updated, err := h.authService.UpdateAppClient(c.Request.Context(),
		c.Param("configId"), c.Param("clientId"), &req)
	if err != nil {
		respondUpstreamError(c, err, "Failed to update app client")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteAppClient handles DELETE /api/v1/auth-configs/:configId/clients/:clientId
func (h *AuthConfigHandler) DeleteAppClient(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}

	if err := h.authService.DeleteAppClient(c.Request.Context(),
		c.Param("configId"), c.Param("clientId")); err != nil {
		respondUpstreamError(c, err, "Failed to delete app client")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListProviders handles GET /api/v1/auth-configs/:configId/clients/:clientId/providers
func (h *AuthConfigHandler) ListProviders(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}

	providers, err := h.authService.ListProviders(c.Request.Context(),
		c.Param("configId"), c.Param("clientId"))
	if err != nil {
		respondUpstreamError(c, err, "Failed to list providers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// CreateProvider handles POST /api/v1/auth-configs/:configId/clients/:clientId/providers
func (h *AuthConfigHandler) CreateProvider(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}

	var req dto.ProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			utils.FormatValidationError(err)))
		return
	}

	created, err := h.authService.CreateProvider(c.Request.Context(),
		c.Param("configId"), c.Param("clientId"), &req)
	if err != nil {
		if errors.Is(err, constants.ErrInvalidProviderType) || errors.Is(err, constants.ErrProviderCredsRequired) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request", err.Error()))
			return
		}
		respondUpstreamError(c, err, "Failed to create provider")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateProvider handles PUT /api/v1/auth-configs/:configId/clients/:clientId/providers/:providerId
func (h *AuthConfigHandler) UpdateProvider(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}

	var req dto.ProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request",
			utils.FormatValidationError(err)))
		return
	}

	updated, err := h.authService.UpdateProvider(c.Request.Context(),
		c.Param("configId"), c.Param("clientId"), c.Param("providerId"), &req)
	if err != nil {
		if errors.Is(err, constants.ErrInvalidProviderType) || errors.Is(err, constants.ErrProviderCredsRequired) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request", err.Error()))
			return
		}
		respondUpstreamError(c, err, "Failed to update provider")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteProvider handles DELETE /api/v1/auth-configs/:configId/clients/:clientId/providers/:providerId
func (h *AuthConfigHandler) DeleteProvider(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}

	if err := h.authService.DeleteProvider(c.Request.Context(),
		c.Param("configId"), c.Param("clientId"), c.Param("providerId")); err != nil {
		respondUpstreamError(c, err, "Failed to delete provider")
		return
	}

	c.Status(http.StatusNoContent)
}
