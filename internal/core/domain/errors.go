package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrProjectNotFound indicates the requested project does not exist
	ErrProjectNotFound = errors.New("project not found")

	// ErrProjectExists indicates a project with that name already exists
	ErrProjectExists = errors.New("project already exists")

	// ErrInvalidProjectName indicates the project name contains disallowed characters
	ErrInvalidProjectName = errors.New("project name can only contain letters, digits, '-' and '_'")

	// ErrInvalidAPIKey indicates the supplied api-key does not match the project's key
	ErrInvalidAPIKey = errors.New("invalid api-key")

	// ErrNotBuilt indicates the project index has not been built yet
	ErrNotBuilt = errors.New("you need to build the index first")

	// ErrCacheMiss indicates the query cache has no entry for the key
	ErrCacheMiss = errors.New("cache miss")

	// ErrEmptyQuery indicates the request carried no user message
	ErrEmptyQuery = errors.New("query is required")
)

// MissingArtifactError indicates a required index artifact table could not be
// located. Querying before building the index is the most common operator
// mistake, so the error carries the table name for an actionable message.
type MissingArtifactError struct {
	Table string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("missing index artifact %q: build the index first", e.Table)
}

// EngineBuildError wraps a failure to assemble a search engine, preserving
// the underlying cause.
type EngineBuildError struct {
	Mode SearchMode
	Err  error
}

func (e *EngineBuildError) Error() string {
	return fmt.Sprintf("building %s search engine: %v", e.Mode, e.Err)
}

func (e *EngineBuildError) Unwrap() error { return e.Err }

// MalformedFilenameError indicates a pdf_cache filename does not match the
// <document>.pdf_page_<N>.png grammar.
type MalformedFilenameError struct {
	Name string
}

func (e *MalformedFilenameError) Error() string {
	return fmt.Sprintf("malformed page cache filename %q", e.Name)
}
