// Package catalog keeps a registry of tracked root directories and answers
// which root, if any, contains a given path.
package catalog

import (
	"errors"
	"time"

	"fpath-go/internal/fpath"
)

var (
	ErrNotTracked = errors.New("path is not inside a tracked root")
	ErrIgnored    = errors.New("path matches an ignore pattern")
)

// Root is a tracked directory. Path is always a fully qualified directory.
type Root struct {
	ID        string
	Path      fpath.Path
	CreatedAt time.Time
}

// Location places a path inside a tracked root.
type Location struct {
	Root     *Root
	Relative fpath.Path
	Ignored  bool
}

// TrackResult describes the outcome of Service.Track.
type TrackResult struct {
	Root *Root
	// Created is false when the path was already tracked or covered by an
	// existing ancestor root.
	Created bool
	// Consolidated holds descendant roots that were replaced by Root.
	Consolidated []*Root
}

// Store persists tracked roots.
type Store interface {
	// FindRoot returns the root whose Path.Key equals key, or nil if none.
	FindRoot(key string) (*Root, error)

	// ListRoots returns every tracked root in no particular order.
	ListRoots() ([]*Root, error)

	// CreateRoot inserts root and deletes the roots listed in replaces in a
	// single transaction.
	CreateRoot(root *Root, replaces []string) error

	// DeleteRoot removes the root with the given ID.
	DeleteRoot(id string) error

	Close() error
}

// Matcher decides whether a root-relative path is ignored.
type Matcher interface {
	Match(rel fpath.Path) bool
}

// Resolver turns a command-line argument into a fully qualified path.
type Resolver interface {
	Resolve(raw string) (fpath.Path, error)
}

// IsFullyQualified reports whether p names a location without reference to a
// working directory. The path must be rooted. Windows paths also need a drive
// or host: `\data` is relative to the current drive.
func IsFullyQualified(p fpath.Path) bool {
	if !p.IsRooted() {
		return false
	}
	if p.Style().Separator == fpath.Windows.Separator {
		return p.DriveOrHost() != ""
	}
	return true
}
