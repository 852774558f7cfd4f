// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"
	"path"
	"strings"

	"github.com/naka-gawa/gitgrade/internal/config"
	"github.com/naka-gawa/gitgrade/internal/domain"
	"github.com/naka-gawa/gitgrade/internal/gateway"
	"golang.org/x/sync/errgroup"
)

// Analyzer is the use case for grading a repository.
// It gathers repository facts from the fetcher and scores them against the rubric.
// An Analyzer holds no per-request state and is safe for concurrent use.
type Analyzer struct {
	fetcher gateway.Fetcher
	rubric  config.Rubric
	logger  *log.Logger
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer(fetcher gateway.Fetcher, rubric config.Rubric, logger *log.Logger) *Analyzer {
	return &Analyzer{
		fetcher: fetcher,
		rubric:  rubric,
		logger:  logger,
	}
}

// AnalyzeURL parses a repository URL and analyzes it.
// The only error it returns is domain.ErrInvalidIdentifier, before any network access.
func (a *Analyzer) AnalyzeURL(ctx context.Context, rawURL string) (*domain.AnalysisResult, error) {
	id, err := domain.ParseIdentifier(rawURL)
	if err != nil {
		return nil, err
	}
	return a.Analyze(ctx, id), nil
}

// Analyze grades one repository. When metadata cannot be fetched it returns
// the fixed fallback report instead of an error.
func (a *Analyzer) Analyze(ctx context.Context, id domain.RepositoryIdentifier) *domain.AnalysisResult {
	a.logger.Printf("Usecase: Starting analysis of %s...", id)

	metadata, err := a.fetcher.FetchMetadata(ctx, id)
	if err != nil || metadata == nil {
		a.logger.Printf("Usecase: Metadata unavailable for %s, returning fallback report: %v", id, err)
		return FallbackResult(id)
	}

	facts := a.collectFacts(ctx, id, *metadata)
	result := Score(facts, a.rubric)

	a.logger.Printf("Usecase: Analysis of %s complete, score %d.", id, result.Score)
	return result
}

// collectFacts gathers everything the rubric needs. Failed lookups are logged
// and recorded as absent; they never abort the analysis.
func (a *Analyzer) collectFacts(ctx context.Context, id domain.RepositoryIdentifier, metadata domain.RepositoryMetadata) *domain.RepositoryFacts {
	facts := &domain.RepositoryFacts{Identifier: id, Metadata: metadata}
	health := a.rubric.Health

	// The activity lookups are independent; each goroutine owns one field.
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		languages, err := a.fetcher.FetchLanguages(egCtx, id)
		if err != nil {
			a.logger.Printf("Usecase: %v", err)
			return nil
		}
		if languages == nil {
			languages = map[string]int{}
		}
		facts.Languages = languages
		return nil
	})

	eg.Go(func() error {
		commits, err := a.fetcher.FetchCommits(egCtx, id, health.CommitSampleSize)
		if err != nil {
			a.logger.Printf("Usecase: %v", err)
			return nil
		}
		if commits == nil {
			commits = []domain.Commit{}
		}
		facts.Commits = commits
		return nil
	})

	eg.Go(func() error {
		pulls, err := a.fetcher.FetchPulls(egCtx, id, health.PullState, health.PullSampleSize)
		if err != nil {
			a.logger.Printf("Usecase: %v", err)
			return nil
		}
		if pulls == nil {
			pulls = []domain.PullRequest{}
		}
		facts.PullRequests = pulls
		return nil
	})

	_ = eg.Wait()

	facts.Readme = a.findReadme(ctx, id)

	// Path lookups run in rubric order and stop at the first hit within each group.
	facts.HasGitignore = a.firstPath(ctx, id, []string{a.rubric.CodeQuality.GitignorePath}) != nil
	if tooling := a.firstPath(ctx, id, a.rubric.CodeQuality.ToolingFiles); tooling != nil {
		facts.ToolingFile = tooling.Path
	}
	facts.HasTests = a.firstPath(ctx, id, a.rubric.Testing.TestPaths) != nil
	facts.HasWorkflows = a.firstPath(ctx, id, []string{a.rubric.CICD.WorkflowPath}) != nil

	return facts
}

// findReadme matches the root listing against the README candidates ignoring
// case. When the listing is unavailable the candidates are looked up verbatim.
func (a *Analyzer) findReadme(ctx context.Context, id domain.RepositoryIdentifier) *domain.PathEntry {
	entries, err := a.fetcher.FetchRootEntries(ctx, id)
	if err != nil {
		a.logger.Printf("Usecase: %v, trying README candidates", err)
		return a.firstPath(ctx, id, a.rubric.Documentation.ReadmePaths)
	}
	return matchReadme(entries, a.rubric.Documentation.ReadmePaths)
}

// matchReadme returns the first file equal to a candidate ignoring case, then
// any file whose name without extension is README, or nil.
func matchReadme(entries []domain.PathEntry, candidates []string) *domain.PathEntry {
	for _, candidate := range candidates {
		for _, entry := range entries {
			if entry.Type == "file" && strings.EqualFold(entry.Path, candidate) {
				found := entry
				return &found
			}
		}
	}
	for _, entry := range entries {
		stem := strings.TrimSuffix(entry.Path, path.Ext(entry.Path))
		if entry.Type == "file" && strings.EqualFold(stem, "readme") {
			found := entry
			return &found
		}
	}
	return nil
}

// firstPath returns the first of paths that exists, or nil.
func (a *Analyzer) firstPath(ctx context.Context, id domain.RepositoryIdentifier, paths []string) *domain.PathEntry {
	for _, candidate := range paths {
		entry, err := a.fetcher.FetchPath(ctx, id, candidate)
		if err != nil || entry == nil {
			continue
		}
		found := *entry
		if found.Path == "" {
			found.Path = candidate
		}
		return &found
	}
	return nil
}
