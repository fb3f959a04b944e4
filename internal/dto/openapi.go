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

package dto

// ValidateSpecRequest validates an OpenAPI document before deployment.
// Either the raw content or a GitHub location is provided.
type ValidateSpecRequest struct {
	Content []byte `json:"content,omitempty"`
	Owner   string `json:"owner,omitempty"`
	Repo    string `json:"repo,omitempty"`
	Path    string `json:"path,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

// ValidateSpecResponse reports validity plus basic document facts
type ValidateSpecResponse struct {
	Valid      bool            `json:"valid"`
	Title      string          `json:"title,omitempty"`
	Version    string          `json:"version,omitempty"`
	Operations int             `json:"operations,omitempty"`
	Error      *SpecParseError `json:"error,omitempty"`
}

// SpecParseError pinpoints a parse failure for the user. Snippet and
// suggestions are rendered when present since locating the bad line in an
// OpenAPI document materially helps the user fix it.
type SpecParseError struct {
	Message     string           `json:"message"`
	Details     *SpecErrorDetail `json:"details,omitempty"`
	Suggestions []string         `json:"suggestions,omitempty"`
}

// SpecErrorDetail carries position info when the parser provides it
type SpecErrorDetail struct {
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}
