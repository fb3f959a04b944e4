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

	"dashboard-api/internal/client"
	"dashboard-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// respondUpstreamError maps a client-layer failure onto the HTTP surface.
// Timeouts and transport failures are marked retryable so the dashboard can
// offer a retry action; upstream application errors keep their status and
// message.
func respondUpstreamError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, client.ErrRequestTimeout) {
		c.JSON(http.StatusGatewayTimeout, utils.NewRetryableErrorResponse(504, "Request timeout",
			"The upstream service did not respond in time"))
		return
	}
	if errors.Is(err, client.ErrNetworkError) {
		c.JSON(http.StatusBadGateway, utils.NewRetryableErrorResponse(502, "Network error",
			"The upstream service could not be reached"))
		return
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.StatusCode, utils.NewErrorResponse(apiErr.StatusCode, apiErr.Message, apiErr.Details))
		return
	}

	c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(500, "Internal Server Error", fallback))
}

// teamFromContext fetches the team claim, writing the 401 itself on absence
func teamFromContext(c *gin.Context) (string, bool) {
	team, exists := c.Get("team")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(401, "Unauthorized",
			"Team claim not found in token"))
		return "", false
	}
	teamStr, ok := team.(string)
	if !ok || teamStr == "" {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(401, "Unauthorized",
			"Team claim not found in token"))
		return "", false
	}
	return teamStr, true
}
