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

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationError converts validator errors to user-friendly messages
func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error() // Not a validation error, return as-is
	}
	var messages []string
	for _, fieldError := range validationErrors {
		fieldName := getUserFriendlyFieldName(fieldError.Field())
		messages = append(messages, getValidationErrorMessage(fieldName, fieldError.Tag(), fieldError.Param()))
	}
	return strings.Join(messages, "; ")
}

// getUserFriendlyFieldName maps struct field names to user-facing field names
func getUserFriendlyFieldName(fieldName string) string {
	fieldMap := map[string]string{
		"Name":          "name",
		"Subdomain":     "subdomain",
		"APIVersion":    "API version",
		"TeamID":        "team ID",
		"Type":          "provider type",
		"OAuthClientID": "OAuth client ID",
		"OAuthSecret":   "OAuth client secret",
		"Domain":        "domain",
		"RedirectURIs":  "redirect URIs",
		"SignoutURIs":   "signout URIs",
		"Scopes":        "scopes",
		"ProjectID":     "project ID",
	}
	if friendly, exists := fieldMap[fieldName]; exists {
		return friendly
	}
	return strings.ToLower(fieldName)
}

// getValidationErrorMessage creates user-friendly validation error messages
func getValidationErrorMessage(fieldName, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", fieldName)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fieldName, param)
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", fieldName, param)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fieldName)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fieldName, strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", fieldName)
	}
}
