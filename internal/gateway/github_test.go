package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/gitgrade/internal/domain"
)

var testRepo = domain.RepositoryIdentifier{Owner: "acme", Name: "widget"}

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
// withGraphQL controls whether path lookups go through the GraphQL client.
func setupTestGateway(t *testing.T, handler http.Handler, withGraphQL bool) *GitHubGateway {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	gateway := &GitHubGateway{
		restClient: restClient,
		logger:     log.New(io.Discard, "", 0),
	}
	if withGraphQL {
		gateway.graphqlClient = githubv4.NewEnterpriseClient(server.URL, server.Client())
	}
	return gateway
}

func TestNewGitHubGateway(t *testing.T) {
	logger := log.New(io.Discard, "", 0)

	anonymous, err := NewGitHubGateway(Options{Timeout: time.Second}, logger)
	require.NoError(t, err)
	assert.Nil(t, anonymous.graphqlClient)
	assert.Equal(t, "https://api.github.com/", anonymous.restClient.BaseURL.String())

	enterprise, err := NewGitHubGateway(Options{
		Token:      "ghp_test",
		BaseURL:    "https://ghe.example.com/api/v3/",
		GraphQLURL: "https://ghe.example.com/api/graphql",
	}, logger)
	require.NoError(t, err)
	assert.NotNil(t, enterprise.graphqlClient)
	assert.Equal(t, "https://ghe.example.com/api/v3/", enterprise.restClient.BaseURL.String())
}

func TestGitHubGateway_FetchMetadata(t *testing.T) {
	testCases := []struct {
		name        string
		handlerFunc func(w http.ResponseWriter, r *http.Request)
		expected    *domain.RepositoryMetadata
		expectError bool
	}{
		{
			name: "happy path - all fields present",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/acme/widget", r.URL.Path)
				fmt.Fprint(w, `{"full_name":"acme/widget","description":"A widget","license":{"key":"mit"},"stargazers_count":12,"forks_count":3,"open_issues_count":4}`)
			},
			expected: &domain.RepositoryMetadata{
				FullName: "acme/widget", Description: "A widget", HasLicense: true,
				Stars: 12, Forks: 3, OpenIssues: 4,
			},
		},
		{
			name: "missing description, license and counters",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"full_name":"acme/widget","description":null,"license":null}`)
			},
			expected: &domain.RepositoryMetadata{FullName: "acme/widget"},
		},
		{
			name: "error case - rate limited",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
			},
			expectError: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc), false)
			metadata, err := gateway.FetchMetadata(context.Background(), testRepo)
			if tc.expectError {
				assert.ErrorIs(t, err, domain.ErrUnavailable)
				assert.Nil(t, metadata)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, metadata)
		})
	}
}

func TestGitHubGateway_FetchLanguages(t *testing.T) {
	gateway := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widget/languages", r.URL.Path)
		fmt.Fprint(w, `{"Go": 12000, "Shell": 300}`)
	}), false)

	languages, err := gateway.FetchLanguages(context.Background(), testRepo)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Go": 12000, "Shell": 300}, languages)
}

func TestGitHubGateway_FetchCommits(t *testing.T) {
	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expected       []domain.Commit
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - requests the limit and maps dates",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/acme/widget/commits", r.URL.Path)
				assert.Equal(t, "30", r.URL.Query().Get("per_page"))
				fmt.Fprint(w, `[{"sha":"a1","commit":{"author":{"date":"2024-05-02T10:00:00Z"}}},{"sha":"b2","commit":{"author":{"date":"2024-05-01T10:00:00Z"}}}]`)
			},
			expected: []domain.Commit{
				{SHA: "a1", AuthoredAt: time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)},
				{SHA: "b2", AuthoredAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
			},
		},
		{
			name: "empty repository",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
				fmt.Fprint(w, `{"message": "Git Repository is empty."}`)
			},
			expectError:    true,
			expectedErrMsg: "list commits acme/widget",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc), false)
			commits, err := gateway.FetchCommits(context.Background(), testRepo, 30)
			if tc.expectError {
				assert.ErrorIs(t, err, domain.ErrUnavailable)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
				return
			}
			require.NoError(t, err)
			require.Len(t, commits, len(tc.expected))
			for i := range tc.expected {
				assert.Equal(t, tc.expected[i].SHA, commits[i].SHA)
				assert.True(t, tc.expected[i].AuthoredAt.Equal(commits[i].AuthoredAt))
			}
		})
	}
}

func TestGitHubGateway_FetchPulls(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected []domain.PullRequest
	}{
		{
			name:     "returns pull requests",
			body:     `[{"number": 7, "state": "open"}, {"number": 6, "state": "closed"}]`,
			expected: []domain.PullRequest{{Number: 7, State: "open"}, {Number: 6, State: "closed"}},
		},
		{
			name:     "empty list is a successful fetch",
			body:     `[]`,
			expected: []domain.PullRequest{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/acme/widget/pulls", r.URL.Path)
				assert.Equal(t, "all", r.URL.Query().Get("state"))
				assert.Equal(t, "10", r.URL.Query().Get("per_page"))
				fmt.Fprint(w, tc.body)
			}), false)

			pulls, err := gateway.FetchPulls(context.Background(), testRepo, "all", 10)
			require.NoError(t, err)
			assert.NotNil(t, pulls)
			assert.Equal(t, tc.expected, pulls)
		})
	}
}

func TestGitHubGateway_FetchPath_REST(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/acme/widget/contents/README.md":
			fmt.Fprint(w, `{"type":"file","name":"README.md","path":"README.md","size":812}`)
		case "/repos/acme/widget/contents/.github/workflows":
			fmt.Fprint(w, `[{"type":"file","name":"ci.yml","path":".github/workflows/ci.yml","size":120},{"type":"file","name":"release.yml","path":".github/workflows/release.yml","size":90}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
		}
	})
	gateway := setupTestGateway(t, handler, false)
	ctx := context.Background()

	readme, err := gateway.FetchPath(ctx, testRepo, "README.md")
	require.NoError(t, err)
	assert.Equal(t, &domain.PathEntry{Path: "README.md", Type: "file", Size: 812}, readme)

	workflows, err := gateway.FetchPath(ctx, testRepo, ".github/workflows/")
	require.NoError(t, err)
	assert.Equal(t, &domain.PathEntry{Path: ".github/workflows", Type: "dir", Size: 2}, workflows)

	missing, err := gateway.FetchPath(ctx, testRepo, "tests")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Nil(t, missing)
}

func TestGitHubGateway_FetchPath_GraphQL(t *testing.T) {
	testCases := []struct {
		name         string
		path         string
		responseBody string
		expected     *domain.PathEntry
		expectError  bool
		bodyContains string
	}{
		{
			name:         "blob",
			path:         "README.md",
			responseBody: `{"data":{"repository":{"object":{"__typename":"Blob","byteSize":812}}}}`,
			expected:     &domain.PathEntry{Path: "README.md", Type: "file", Size: 812},
			bodyContains: "HEAD:README.md",
		},
		{
			name:         "tree",
			path:         "src/test",
			responseBody: `{"data":{"repository":{"object":{"__typename":"Tree","entries":[{"name":"a"},{"name":"b"},{"name":"c"}]}}}}`,
			expected:     &domain.PathEntry{Path: "src/test", Type: "dir", Size: 3},
			bodyContains: "HEAD:src/test",
		},
		{
			name:         "missing path yields null object",
			path:         "tests",
			responseBody: `{"data":{"repository":{"object":null}}}`,
			expectError:  true,
			bodyContains: "HEAD:tests",
		},
		{
			name:         "graphql error",
			path:         "tests",
			responseBody: `{"errors":[{"message":"Something went wrong"}]}`,
			expectError:  true,
			bodyContains: "HEAD:tests",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), tc.bodyContains)
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, tc.responseBody)
			}
			gateway := setupTestGateway(t, http.HandlerFunc(handler), true)

			entry, err := gateway.FetchPath(context.Background(), testRepo, tc.path)
			if tc.expectError {
				assert.ErrorIs(t, err, domain.ErrUnavailable)
				assert.Nil(t, entry)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, entry)
		})
	}
}

func TestGitHubGateway_FetchRootEntries_REST(t *testing.T) {
	testCases := []struct {
		name        string
		status      int
		body        string
		expected    []domain.PathEntry
		expectError bool
	}{
		{
			name:   "mixed entries",
			status: http.StatusOK,
			body: `[{"type":"file","name":"ReadMe.md","path":"ReadMe.md","size":640},` +
				`{"type":"dir","name":"docs","path":"docs","size":0},` +
				`{"type":"file","name":"go.mod","path":"go.mod","size":90}]`,
			expected: []domain.PathEntry{
				{Path: "ReadMe.md", Type: "file", Size: 640},
				{Path: "docs", Type: "dir"},
				{Path: "go.mod", Type: "file", Size: 90},
			},
		},
		{
			name:        "empty repository",
			status:      http.StatusNotFound,
			body:        `{"message": "This repository is empty."}`,
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/acme/widget/contents/", r.URL.Path)
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			})
			gateway := setupTestGateway(t, handler, false)

			entries, err := gateway.FetchRootEntries(context.Background(), testRepo)
			if tc.expectError {
				assert.ErrorIs(t, err, domain.ErrUnavailable)
				assert.Nil(t, entries)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, entries)
		})
	}
}

func TestGitHubGateway_FetchRootEntries_GraphQL(t *testing.T) {
	testCases := []struct {
		name         string
		responseBody string
		expected     []domain.PathEntry
		expectError  bool
	}{
		{
			name: "tree entries",
			responseBody: `{"data":{"repository":{"object":{"__typename":"Tree","entries":[` +
				`{"name":"README","type":"blob","object":{"byteSize":700}},` +
				`{"name":"src","type":"tree","object":{}},` +
				`{"name":"vendor-lib","type":"commit","object":{}}]}}}}`,
			expected: []domain.PathEntry{
				{Path: "README", Type: "file", Size: 700},
				{Path: "src", Type: "dir"},
				{Path: "vendor-lib", Type: "submodule"},
			},
		},
		{
			name:         "empty repository yields null object",
			responseBody: `{"data":{"repository":{"object":null}}}`,
			expectError:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), `"expression":"HEAD:"`)
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, tc.responseBody)
			}
			gateway := setupTestGateway(t, http.HandlerFunc(handler), true)

			entries, err := gateway.FetchRootEntries(context.Background(), testRepo)
			if tc.expectError {
				assert.ErrorIs(t, err, domain.ErrUnavailable)
				assert.Nil(t, entries)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, entries)
		})
	}
}
