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

package constants

// Deployment environments offered by the dashboard. These must stay consistent
// with the backend's own defaults.
var EnvironmentLabels = map[string]string{
	"dev":  "Development",
	"test": "Testing",
	"prod": "Production",
}

// EnvironmentOrder is the display order for environments
var EnvironmentOrder = []string{"dev", "test", "prod"}

// Scopes every app client must authorize; they cannot be removed.
var MandatoryScopes = []string{"email", "openid", "profile"}

// StandardHTTPMethods are the HTTP verbs route entries are extracted for
var StandardHTTPMethods = []string{"get", "post", "put", "patch", "delete", "head", "options"}

// Placeholder tokens substituted into user-supplied issuer/audience/endpoint strings
const (
	PlaceholderProjectName = "{projectName}"
	PlaceholderAPIVersion  = "{apiVersion}"
	PlaceholderAppClientID = "{appClientId}"
)

// Throttling defaults
const (
	DefaultUserRateLimit       = 10     // requests/sec per user
	DefaultProxyDailyQuota     = 10000  // requests/day per project
	DefaultAccountMonthlyQuota = 100000 // requests/month per account
)
