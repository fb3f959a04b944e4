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

import "errors"

var (
	ErrProjectNameRequired  = errors.New("project name is required")
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectNameTaken     = errors.New("project name, subdomain or version already in use")
	ErrInvalidProjectSource = errors.New("invalid project source")
)

var (
	ErrAuthConfigNotFound    = errors.New("auth config not found")
	ErrAuthConfigNoClients   = errors.New("auth config has no app clients")
	ErrAppClientNotFound     = errors.New("app client not found")
	ErrProviderNotFound      = errors.New("provider not found")
	ErrMandatoryScope        = errors.New("scope is mandatory and cannot be removed")
	ErrInvalidProviderType   = errors.New("invalid provider type")
	ErrProviderCredsRequired = errors.New("provider client id and secret are required")
)

var (
	ErrRouteTemplateInvalid = errors.New("route template is not valid JSON")
	ErrRouteConfigNotFound  = errors.New("route config not found")
	ErrSpecUnsupported      = errors.New("unsupported OpenAPI document version")
)

var (
	ErrCacheNotBootstrapped = errors.New("dashboard cache has not been bootstrapped")
	ErrTeamRequired         = errors.New("team id is required")
)
