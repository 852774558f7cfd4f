package domain

import "time"

// RepositoryMetadata is the subset of repository metadata used for scoring.
type RepositoryMetadata struct {
	FullName    string
	Description string
	HasLicense  bool
	Stars       int
	Forks       int
	OpenIssues  int
}

// Commit is a single entry of the recent commit history.
type Commit struct {
	SHA        string
	AuthoredAt time.Time
}

// PullRequest is a single entry of the recent pull request list.
type PullRequest struct {
	Number int
	State  string
}

// PathEntry describes a file or directory found in the repository.
type PathEntry struct {
	Path string
	Type string // "file" or "dir"
	Size int
}

// RepositoryFacts is a snapshot of everything needed to score one repository.
// Failed secondary lookups are recorded as absent.
type RepositoryFacts struct {
	Identifier RepositoryIdentifier
	Metadata   RepositoryMetadata

	// Languages maps language name to byte count. Nil when the lookup failed.
	Languages map[string]int

	// Commits is nil when the commit lookup failed.
	Commits []Commit

	// PullRequests is nil when the pull request lookup failed; an empty,
	// non-nil slice means the lookup succeeded with no results.
	PullRequests []PullRequest

	Readme       *PathEntry
	HasGitignore bool
	// ToolingFile is the first lint/build config file found at the root, or "".
	ToolingFile  string
	HasTests     bool
	HasWorkflows bool
}

// CommitsAvailable reports whether the commit lookup succeeded.
func (f *RepositoryFacts) CommitsAvailable() bool {
	return f.Commits != nil
}

// PullsAvailable reports whether the pull request lookup succeeded.
func (f *RepositoryFacts) PullsAvailable() bool {
	return f.PullRequests != nil
}
