package gateway

import (
	"context"
	"errors"

	"github.com/shurcooL/githubv4"

	"github.com/naka-gawa/gitgrade/internal/domain"
)

// pathObjectQuery resolves a single HEAD:<path> expression. A missing path
// yields a null object, which leaves Typename empty.
type pathObjectQuery struct {
	Repository struct {
		Object struct {
			Typename string `graphql:"__typename"`
			Blob     struct {
				ByteSize int
			} `graphql:"... on Blob"`
			Tree struct {
				Entries []struct {
					Name string
				}
			} `graphql:"... on Tree"`
		} `graphql:"object(expression: $expression)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// rootEntriesQuery lists the tree at HEAD with blob sizes.
type rootEntriesQuery struct {
	Repository struct {
		Object struct {
			Typename string `graphql:"__typename"`
			Tree     struct {
				Entries []struct {
					Name   string
					Type   string
					Object struct {
						Blob struct {
							ByteSize int
						} `graphql:"... on Blob"`
					}
				}
			} `graphql:"... on Tree"`
		} `graphql:"object(expression: $expression)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

var errPathNotFound = errors.New("path not found")

// treeEntryTypes maps git object types to the REST contents vocabulary.
var treeEntryTypes = map[string]string{
	"blob":   "file",
	"tree":   "dir",
	"commit": "submodule",
}

func (g *GitHubGateway) fetchPathGraphQL(ctx context.Context, id domain.RepositoryIdentifier, path string) (*domain.PathEntry, error) {
	variables := map[string]interface{}{
		"owner":      githubv4.String(id.Owner),
		"name":       githubv4.String(id.Name),
		"expression": githubv4.String("HEAD:" + path),
	}
	var q pathObjectQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, unavailable("query object "+path, id, err)
	}

	switch q.Repository.Object.Typename {
	case "Blob":
		return &domain.PathEntry{Path: path, Type: "file", Size: q.Repository.Object.Blob.ByteSize}, nil
	case "Tree":
		return &domain.PathEntry{Path: path, Type: "dir", Size: len(q.Repository.Object.Tree.Entries)}, nil
	default:
		return nil, unavailable("query object "+path, id, errPathNotFound)
	}
}

func (g *GitHubGateway) fetchRootEntriesGraphQL(ctx context.Context, id domain.RepositoryIdentifier) ([]domain.PathEntry, error) {
	variables := map[string]interface{}{
		"owner":      githubv4.String(id.Owner),
		"name":       githubv4.String(id.Name),
		"expression": githubv4.String("HEAD:"),
	}
	var q rootEntriesQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, unavailable("query root tree", id, err)
	}
	if q.Repository.Object.Typename != "Tree" {
		return nil, unavailable("query root tree", id, errPathNotFound)
	}

	entries := make([]domain.PathEntry, 0, len(q.Repository.Object.Tree.Entries))
	for _, e := range q.Repository.Object.Tree.Entries {
		entry := domain.PathEntry{Path: e.Name, Type: e.Type}
		if mapped, ok := treeEntryTypes[e.Type]; ok {
			entry.Type = mapped
		}
		if entry.Type == "file" {
			entry.Size = e.Object.Blob.ByteSize
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
