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

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

const namespace = "dashboard_api"

// Collectors are created at declaration so instrumented code can record
// samples before (or without) Init registering them with a registry.
var (
	once     sync.Once
	registry *prometheus.Registry

	DeploymentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deployments_total",
		Help:      "Deploy attempts by outcome (success, rolled_back, failed)",
	}, []string{"outcome"})

	DeploymentStageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "deployment_stage_duration_seconds",
		Help:      "Duration of each deployment stage",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})

	RollbackResourcesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rollback_resources_total",
		Help:      "Auth resources deleted by deploy rollbacks",
	})

	CacheBootstrapsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_bootstraps_total",
		Help:      "Dashboard cache bootstraps by outcome",
	}, []string{"outcome"})

	CacheLazyFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lazy_fetches_total",
		Help:      "Lazy per-resource cache fetches by resource and result (fetched, cached)",
	}, []string{"resource", "result"})

	RouteSyncEntries = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "route_sync_entries",
		Help:      "Route entries extracted per spec sync",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
	})
)

// Init registers all collectors exactly once and returns the registry
func Init() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			DeploymentsTotal,
			DeploymentStageDuration,
			RollbackResourcesTotal,
			CacheBootstrapsTotal,
			CacheLazyFetchesTotal,
			RouteSyncEntries,
		)
	})
	return registry
}

// Handler returns the /metrics HTTP handler backed by the registry
func Handler() http.Handler {
	return promhttp.HandlerFor(Init(), promhttp.HandlerOpts{})
}
