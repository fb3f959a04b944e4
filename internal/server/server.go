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

package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"dashboard-api/config"
	"dashboard-api/internal/cache"
	"dashboard-api/internal/client/adminapi"
	"dashboard-api/internal/client/github"
	"dashboard-api/internal/client/policyapi"
	"dashboard-api/internal/handler"
	"dashboard-api/internal/metrics"
	"dashboard-api/internal/middleware"
	"dashboard-api/internal/service"
	"dashboard-api/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	router *gin.Engine
	store  *cache.Store
	hub    *websocket.Hub
	http   *http.Server
}

// StartDashboardAPIServer creates a new server instance with all dependencies initialized
func StartDashboardAPIServer(cfg *config.Server) (*Server, error) {
	// Register prometheus collectors before anything records a sample
	metrics.Init()

	// Initialize upstream clients
	projectClient := adminapi.NewClient(cfg.AdminAPI)
	policyClient := policyapi.NewClient(cfg.PolicyAPI)
	githubClient := github.NewClient(cfg.GitHub)

	// Initialize the dashboard cache and the status stream hub
	store := cache.NewStore(projectClient, projectClient, cfg.Deploy.ProjectPageSize)
	hub := websocket.NewHub()

	// Initialize services
	projectService := service.NewProjectService(projectClient, githubClient, store)
	authService := service.NewAuthConfigService(projectClient, store)
	routeService := service.NewRouteService(policyClient, githubClient)
	deployService := service.NewDeploymentService(projectClient, projectClient, policyClient, store, hub, cfg)

	// Initialize handlers
	dashboardHandler := handler.NewDashboardHandler(store)
	projectHandler := handler.NewProjectHandler(projectService)
	authHandler := handler.NewAuthConfigHandler(authService)
	routeHandler := handler.NewRouteConfigHandler(routeService)
	deployHandler := handler.NewDeployHandler(deployService, store)
	statusHandler := handler.NewStatusStreamHandler(hub, cfg.CORS.AllowedOrigins)

	// Setup router
	router := gin.Default()

	// Configure and apply CORS middleware first (before auth middleware)
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Configure and apply JWT authentication middleware
	authConfig := middleware.AuthConfig{
		SecretKey:      cfg.JWT.SecretKey,
		TokenIssuer:    cfg.JWT.Issuer,
		SkipPaths:      cfg.JWT.SkipPaths,
		SkipValidation: cfg.JWT.SkipValidation,
	}
	router.Use(middleware.AuthMiddleware(authConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/dashboard/bootstrap", dashboardHandler.Bootstrap)
		v1.GET("/dashboard", dashboardHandler.Snapshot)
		v1.POST("/dashboard/refresh", dashboardHandler.Refresh)

		v1.GET("/projects", projectHandler.ListProjects)
		v1.GET("/projects/check", projectHandler.CheckAvailability)
		v1.DELETE("/projects/:projectId", projectHandler.DeleteProject)

		v1.GET("/github/:owner/:repo/branches", projectHandler.ListBranches)
		v1.GET("/github/:owner/:repo/content", projectHandler.FetchSpecContent)

		v1.GET("/auth-configs", authHandler.ListAuthConfigs)
		v1.POST("/auth-configs", authHandler.CreateAuthConfig)
		v1.POST("/auth-configs/default-github", authHandler.CreateWithDefaultGitHub)
		v1.PUT("/auth-configs/:configId", authHandler.UpdateAuthConfig)
		v1.DELETE("/auth-configs/:configId", authHandler.DeleteAuthConfig)
		v1.GET("/auth-configs/:configId/clients", authHandler.ListAppClients)
		v1.POST("/auth-configs/:configId/clients", authHandler.CreateAppClient)
		v1.PATCH("/auth-configs/:configId/clients/:clientId", authHandler.UpdateAppClient)
		v1.DELETE("/auth-configs/:configId/clients/:clientId", authHandler.DeleteAppClient)
		v1.GET("/auth-configs/:configId/clients/:clientId/providers", authHandler.ListProviders)
		v1.POST("/auth-configs/:configId/clients/:clientId/providers", authHandler.CreateProvider)
		v1.PUT("/auth-configs/:configId/clients/:clientId/providers/:providerId", authHandler.UpdateProvider)
		v1.DELETE("/auth-configs/:configId/clients/:clientId/providers/:providerId", authHandler.DeleteProvider)

		v1.POST("/deploy", deployHandler.Deploy)

		v1.POST("/route-configs/sync", routeHandler.SyncRoutes)
		v1.POST("/route-configs/save", routeHandler.SaveRoutes)
		v1.POST("/specs/validate", routeHandler.ValidateSpec)

		v1.GET("/ws/status", statusHandler.Stream)
	}

	return &Server{
		router: router,
		store:  store,
		hub:    hub,
	}, nil
}

// Start runs the HTTP server until Stop is called
func (s *Server) Start(port string) error {
	if port == "" {
		return fmt.Errorf("port cannot be empty")
	}

	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("[INFO] Dashboard API listening on :%s", port)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop drains in-flight requests and closes all status stream connections
func (s *Server) Stop(ctx context.Context) error {
	s.hub.Shutdown()
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
