package domain

import "errors"

// ErrInvalidIdentifier is returned when a repository URL cannot be split into owner and name.
var ErrInvalidIdentifier = errors.New("invalid repository identifier")

// ErrUnavailable is returned by data sources when a repository fact could not be fetched.
// Not-found, rate-limited and network failures all map to it.
var ErrUnavailable = errors.New("repository data unavailable")
