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

package utils

import "dashboard-api/internal/dto"

// ErrorResponse represents the standard error response format: a short title
// plus an optional longer description.
type ErrorResponse struct {
	Code        int    `json:"code"`
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
	// Retryable marks network/timeout failures the caller may retry by
	// re-invoking the action
	Retryable bool `json:"retryable,omitempty"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(code int, message string, description ...string) ErrorResponse {
	resp := ErrorResponse{
		Code:    code,
		Message: message,
	}
	if len(description) > 0 {
		resp.Description = description[0]
	}
	return resp
}

// NewRetryableErrorResponse marks the response as recoverable-by-retry
func NewRetryableErrorResponse(code int, message string, description ...string) ErrorResponse {
	resp := NewErrorResponse(code, message, description...)
	resp.Retryable = true
	return resp
}

// SpecErrorResponse renders a structured spec-parsing failure, including the
// offending snippet and suggestions when the parser provides them.
type SpecErrorResponse struct {
	Code  int                `json:"code"`
	Error dto.SpecParseError `json:"error"`
}

// NewSpecErrorResponse wraps a parse error for the HTTP surface
func NewSpecErrorResponse(code int, parseErr dto.SpecParseError) SpecErrorResponse {
	return SpecErrorResponse{Code: code, Error: parseErr}
}
