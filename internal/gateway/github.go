// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/gitgrade/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching repository facts.
// Every method wraps its failure in domain.ErrUnavailable.
type Fetcher interface {
	FetchMetadata(ctx context.Context, id domain.RepositoryIdentifier) (*domain.RepositoryMetadata, error)
	FetchLanguages(ctx context.Context, id domain.RepositoryIdentifier) (map[string]int, error)
	FetchCommits(ctx context.Context, id domain.RepositoryIdentifier, limit int) ([]domain.Commit, error)
	FetchPulls(ctx context.Context, id domain.RepositoryIdentifier, state string, limit int) ([]domain.PullRequest, error)
	FetchPath(ctx context.Context, id domain.RepositoryIdentifier, path string) (*domain.PathEntry, error)
	FetchRootEntries(ctx context.Context, id domain.RepositoryIdentifier) ([]domain.PathEntry, error)
}

// Options configures a GitHubGateway.
type Options struct {
	// Token is optional. Without it, requests are anonymous and paths are looked up over REST.
	Token            string
	BaseURL          string
	GraphQLURL       string
	Timeout          time.Duration
	MaxRateLimitWait time.Duration
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client

	// graphqlClient is nil for anonymous access; GitHub's GraphQL API requires a token.
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(opts Options, logger *log.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil,
		github_ratelimit.WithSingleSleepLimit(opts.MaxRateLimitWait, func(cbCtx *github_ratelimit.CallbackContext) {
			if cbCtx.SleepUntil != nil {
				logger.Printf("Secondary rate limit hit, reset at %s exceeds allowed wait", cbCtx.SleepUntil.Format(time.RFC3339))
				return
			}
			logger.Println("Secondary rate limit hit, not waiting")
		}))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	var transport http.RoundTripper = rateLimitWaiter
	if opts.Token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}),
		}
	}
	httpClient := &http.Client{Transport: transport, Timeout: opts.Timeout}

	restClient := github.NewClient(httpClient)
	if opts.BaseURL != "" {
		restClient, err = restClient.WithEnterpriseURLs(opts.BaseURL, opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to set enterprise url: %w", err)
		}
	}
	restClient.UserAgent = "gitgrade"

	g := &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}
	if opts.Token != "" {
		if opts.GraphQLURL != "" {
			g.graphqlClient = githubv4.NewEnterpriseClient(opts.GraphQLURL, httpClient)
		} else {
			g.graphqlClient = githubv4.NewClient(httpClient)
		}
	}
	return g, nil
}

func unavailable(op string, id domain.RepositoryIdentifier, err error) error {
	return fmt.Errorf("%w: %s %s: %v", domain.ErrUnavailable, op, id, err)
}

// FetchMetadata fetches the repository description, license and counters.
// Missing counters default to zero.
func (g *GitHubGateway) FetchMetadata(ctx context.Context, id domain.RepositoryIdentifier) (*domain.RepositoryMetadata, error) {
	g.logger.Printf("Fetching metadata for %s...", id)
	repo, _, err := g.restClient.Repositories.Get(ctx, id.Owner, id.Name)
	if err != nil {
		return nil, unavailable("get repository", id, err)
	}
	if repo.StargazersCount == nil || repo.ForksCount == nil || repo.OpenIssuesCount == nil {
		g.logger.Printf("Metadata for %s is missing counters, defaulting to zero", id)
	}
	return &domain.RepositoryMetadata{
		FullName:    repo.GetFullName(),
		Description: repo.GetDescription(),
		HasLicense:  repo.License != nil,
		Stars:       repo.GetStargazersCount(),
		Forks:       repo.GetForksCount(),
		OpenIssues:  repo.GetOpenIssuesCount(),
	}, nil
}

// FetchLanguages fetches the language to byte-count breakdown.
func (g *GitHubGateway) FetchLanguages(ctx context.Context, id domain.RepositoryIdentifier) (map[string]int, error) {
	g.logger.Printf("Fetching languages for %s...", id)
	languages, _, err := g.restClient.Repositories.ListLanguages(ctx, id.Owner, id.Name)
	if err != nil {
		return nil, unavailable("list languages", id, err)
	}
	if languages == nil {
		languages = map[string]int{}
	}
	return languages, nil
}

// FetchCommits fetches at most limit commits from the default branch, newest first.
func (g *GitHubGateway) FetchCommits(ctx context.Context, id domain.RepositoryIdentifier, limit int) ([]domain.Commit, error) {
	g.logger.Printf("Fetching up to %d commits for %s...", limit, id)
	opts := &github.CommitsListOptions{ListOptions: github.ListOptions{PerPage: limit}}
	commits, _, err := g.restClient.Repositories.ListCommits(ctx, id.Owner, id.Name, opts)
	if err != nil {
		return nil, unavailable("list commits", id, err)
	}
	result := make([]domain.Commit, 0, len(commits))
	for _, c := range commits {
		result = append(result, domain.Commit{
			SHA:        c.GetSHA(),
			AuthoredAt: c.GetCommit().GetAuthor().GetDate().Time,
		})
	}
	return result, nil
}

// FetchPulls fetches at most limit pull requests in the given state ("open", "closed" or "all").
func (g *GitHubGateway) FetchPulls(ctx context.Context, id domain.RepositoryIdentifier, state string, limit int) ([]domain.PullRequest, error) {
	g.logger.Printf("Fetching up to %d %s pull requests for %s...", limit, state, id)
	opts := &github.PullRequestListOptions{
		State:       state,
		ListOptions: github.ListOptions{PerPage: limit},
	}
	pulls, _, err := g.restClient.PullRequests.List(ctx, id.Owner, id.Name, opts)
	if err != nil {
		return nil, unavailable("list pull requests", id, err)
	}
	result := make([]domain.PullRequest, 0, len(pulls))
	for _, pr := range pulls {
		result = append(result, domain.PullRequest{Number: pr.GetNumber(), State: pr.GetState()})
	}
	return result, nil
}

// FetchPath looks up a file or directory at the default branch head.
func (g *GitHubGateway) FetchPath(ctx context.Context, id domain.RepositoryIdentifier, path string) (*domain.PathEntry, error) {
	path = strings.Trim(path, "/")
	if g.graphqlClient != nil {
		return g.fetchPathGraphQL(ctx, id, path)
	}
	return g.fetchPathREST(ctx, id, path)
}

func (g *GitHubGateway) fetchPathREST(ctx context.Context, id domain.RepositoryIdentifier, path string) (*domain.PathEntry, error) {
	file, dir, _, err := g.restClient.Repositories.GetContents(ctx, id.Owner, id.Name, path, nil)
	if err != nil {
		return nil, unavailable("get contents "+path, id, err)
	}
	if file != nil {
		return &domain.PathEntry{Path: path, Type: "file", Size: file.GetSize()}, nil
	}
	return &domain.PathEntry{Path: path, Type: "dir", Size: len(dir)}, nil
}

// FetchRootEntries lists the top-level entries at the default branch head.
// Entry paths are bare names and directory sizes are zero.
func (g *GitHubGateway) FetchRootEntries(ctx context.Context, id domain.RepositoryIdentifier) ([]domain.PathEntry, error) {
	g.logger.Printf("Listing root entries for %s...", id)
	if g.graphqlClient != nil {
		return g.fetchRootEntriesGraphQL(ctx, id)
	}
	_, dir, _, err := g.restClient.Repositories.GetContents(ctx, id.Owner, id.Name, "", nil)
	if err != nil {
		return nil, unavailable("list root contents", id, err)
	}
	entries := make([]domain.PathEntry, 0, len(dir))
	for _, c := range dir {
		entry := domain.PathEntry{Path: c.GetName(), Type: c.GetType()}
		if entry.Type == "file" {
			entry.Size = c.GetSize()
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
