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
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dashboard-api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srvURL, token string) *Client {
	return NewClient(config.GitHub{APIBaseURL: srvURL, Token: token, TimeoutSeconds: 5})
}

func TestListBranchesPagination(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer gh-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))

		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"name":"release"}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/acme/specs/branches?per_page=100&page=2>; rel="next"`, srv.URL))
		fmt.Fprint(w, `[{"name":"main"},{"name":"develop"}]`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "gh-token")
	branches, err := c.ListBranches(context.Background(), "acme", "specs")
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "develop", "release"}, branches)
}

func TestListBranchesErrorMapping(t *testing.T) {
	tests := []struct {
		status  int
		contain string
	}{
		{http.StatusNotFound, "not found"},
		{http.StatusForbidden, "rate limit"},
		{http.StatusUnauthorized, "unauthorized"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := newTestClient(srv.URL, "")
			_, err := c.ListBranches(context.Background(), "acme", "specs")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contain)
		})
	}
}

func TestFetchFileContentInline(t *testing.T) {
	content := "openapi: 3.0.0\ninfo:\n  title: Petstore\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/specs/contents/openapi.yaml", r.URL.Path)
		assert.Equal(t, "main", r.URL.Query().Get("ref"))
		// GitHub wraps inline base64 at 60 columns
		encoded := base64.StdEncoding.EncodeToString([]byte(content))
		wrapped := encoded[:20] + "\n" + encoded[20:]
		fmt.Fprintf(w, `{"content":%q,"encoding":"base64","size":%d}`, wrapped, len(content))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	got, err := c.FetchFileContent(context.Background(), "acme", "specs", "main", "openapi.yaml")
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestFetchFileContentViaDownloadURL(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/raw/openapi.yaml" {
			fmt.Fprint(w, "openapi: 3.0.0")
			return
		}
		// Large files carry no inline content
		fmt.Fprintf(w, `{"content":"","encoding":"","download_url":"%s/raw/openapi.yaml","size":2000000}`, srv.URL)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	got, err := c.FetchFileContent(context.Background(), "acme", "specs", "main", "openapi.yaml")
	require.NoError(t, err)
	assert.Equal(t, "openapi: 3.0.0", string(got))
}

func TestFetchFileContentUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"content":"","encoding":"","download_url":"","size":0}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	_, err := c.FetchFileContent(context.Background(), "acme", "specs", "main", "openapi.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestExtractNextLink(t *testing.T) {
	header := `<https://api.github.com/repos/a/b/branches?page=3>; rel="next", <https://api.github.com/repos/a/b/branches?page=5>; rel="last"`
	assert.Equal(t, "https://api.github.com/repos/a/b/branches?page=3", extractNextLink(header))
	assert.Equal(t, "", extractNextLink(`<https://x>; rel="last"`))
	assert.Equal(t, "", extractNextLink(""))
}
