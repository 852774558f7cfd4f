// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"fmt"
	"strings"
)

// RepositoryIdentifier names a hosted repository.
type RepositoryIdentifier struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// String returns the identifier in owner/name form.
func (id RepositoryIdentifier) String() string {
	return id.Owner + "/" + id.Name
}

// ParseIdentifier extracts owner and name from a repository URL such as
// https://github.com/acme/widget(.git). The last two non-empty path segments
// are used, so a trailing slash is ignored.
func ParseIdentifier(rawURL string) (RepositoryIdentifier, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(rawURL), "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 4 {
		return RepositoryIdentifier{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, rawURL)
	}
	owner := parts[len(parts)-2]
	name := strings.TrimSuffix(parts[len(parts)-1], ".git")
	if owner == "" || name == "" {
		return RepositoryIdentifier{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, rawURL)
	}
	return RepositoryIdentifier{Owner: owner, Name: name}, nil
}
