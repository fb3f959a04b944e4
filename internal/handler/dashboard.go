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
	"dashboard-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the cached dashboard collections and the cache
// lifecycle operations
type DashboardHandler struct {
	store *cache.Store
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(store *cache.Store) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// Bootstrap handles POST /api/v1/dashboard/bootstrap
func (h *DashboardHandler) Bootstrap(c *gin.Context) {
	teamID, ok := teamFromContext(c)
	if !ok {
		return
	}

	if err := h.store.FetchBootstrap(c.Request.Context(), teamID); err != nil {
		respondUpstreamError(c, err, "Failed to load dashboard data")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":     h.store.Projects(),
		"auth_configs": h.store.AuthConfigs(),
	})
}

// Snapshot handles GET /api/v1/dashboard
func (h *DashboardHandler) Snapshot(c *gin.Context) {
	if _, ok := teamFromContext(c); !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":        h.store.Projects(),
		"auth_configs":    h.store.AuthConfigs(),
		"environments":    environmentOptions(),
		"is_bootstrapped": h.store.LastTeamID() != "",
		"is_refreshing":   h.store.IsBootstrapping(),
	})
}

// environmentOptions lists the deployment environments in display order so
// the dashboard renders them consistently.
func environmentOptions() []gin.H {
	opts := make([]gin.H, 0, len(constants.EnvironmentOrder))
	for _, key := range constants.EnvironmentOrder {
		opts = append(opts, gin.H{"id": key, "label": constants.EnvironmentLabels[key]})
	}
	return opts
}

// Refresh handles POST /api/v1/dashboard/refresh - a full cold reload
func (h *DashboardHandler) Refresh(c *gin.Context) {
	teamID, ok := teamFromContext(c)
	if !ok {
		return
	}

	if err := h.store.InvalidateAndRefetch(c.Request.Context(), teamID); err != nil {
		if errors.Is(err, constants.ErrCacheNotBootstrapped) {
			c.JSON(http.StatusConflict, utils.NewErrorResponse(409, "Conflict",
				"Dashboard was never bootstrapped for this session"))
			return
		}
		respondUpstreamError(c, err, "Failed to refresh dashboard data")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":     h.store.Projects(),
		"auth_configs": h.store.AuthConfigs(),
	})
}
