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

package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dashboard-api/config"
	"dashboard-api/internal/client"
)

// Client fetches repo-hosted OpenAPI specs through the GitHub REST API.
// The token (when configured) stays server-side.
type Client struct {
	baseURL    string
	token      string
	httpClient *client.HTTPClient
}

// NewClient creates a GitHub client from configuration
func NewClient(cfg config.GitHub) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		token:      cfg.Token,
		httpClient: client.NewHTTPClient(time.Duration(cfg.TimeoutSeconds) * time.Second),
	}
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.httpClient.Do(req)
}

// checkStatus maps GitHub status codes onto user-actionable errors
func checkStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("repository, branch or file not found, or repository is private")
	case http.StatusForbidden:
		return fmt.Errorf("access forbidden - repository may be private or rate limit exceeded")
	case http.StatusUnauthorized:
		return fmt.Errorf("unauthorized access - repository may be private")
	default:
		return fmt.Errorf("unexpected response status: %d", resp.StatusCode)
	}
}

// ListBranches fetches all branch names of a repository, following GitHub's
// Link-header pagination.
func (c *Client) ListBranches(ctx context.Context, owner, repo string) ([]string, error) {
	apiURL := fmt.Sprintf("%s/repos/%s/%s/branches?per_page=100", c.baseURL, owner, repo)

	var names []string
	for apiURL != "" {
		resp, err := c.get(ctx, apiURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch repository branches: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			resp.Body.Close()
			return nil, err
		}

		var page []struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("failed to parse repository branches: %w", err)
		}
		for _, b := range page {
			names = append(names, b.Name)
		}

		next := extractNextLink(resp.Header.Get("link"))
		resp.Body.Close()
		apiURL = next
	}
	return names, nil
}

// FetchFileContent fetches one file from a repository branch. Small files
// arrive base64-encoded inline; large files are pulled from download_url.
func (c *Client) FetchFileContent(ctx context.Context, owner, repo, branch, path string) ([]byte, error) {
	apiURL := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s", c.baseURL, owner, repo, path, branch)

	resp, err := c.get(ctx, apiURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file content: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var fileResponse struct {
		Content     string `json:"content"`
		Encoding    string `json:"encoding"`
		DownloadURL string `json:"download_url"`
		Size        int    `json:"size"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&fileResponse); err != nil {
		return nil, fmt.Errorf("failed to parse file content response: %w", err)
	}

	if fileResponse.Content != "" && fileResponse.Encoding == "base64" {
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(fileResponse.Content, "\n", ""))
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 content: %w", err)
		}
		return decoded, nil
	}

	if fileResponse.DownloadURL != "" {
		downloadResp, err := c.get(ctx, fileResponse.DownloadURL)
		if err != nil {
			return nil, fmt.Errorf("failed to download file from raw URL: %w", err)
		}
		defer downloadResp.Body.Close()
		if downloadResp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to download file, status: %d", downloadResp.StatusCode)
		}
		content, err := io.ReadAll(downloadResp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read downloaded content: %w", err)
		}
		return content, nil
	}

	return nil, fmt.Errorf("file content not available in GitHub API response")
}

// extractNextLink parses the GitHub Link header to find the next page URL
func extractNextLink(linkHeader string) string {
	if linkHeader == "" {
		return ""
	}
	for _, link := range strings.Split(linkHeader, ",") {
		parts := strings.Split(strings.TrimSpace(link), ";")
		if len(parts) != 2 {
			continue
		}
		url := strings.Trim(strings.TrimSpace(parts[0]), "<>")
		if strings.Contains(strings.TrimSpace(parts[1]), `rel="next"`) {
			return url
		}
	}
	return ""
}
