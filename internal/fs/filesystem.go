package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"fpath-go/internal/catalog"
	"fpath-go/internal/fpath"
)

// OSResolver resolves command-line arguments against the real filesystem.
type OSResolver struct {
	style fpath.Style
	getwd func() (string, error)
}

// NewOSResolver creates a resolver that parses arguments with st.
func NewOSResolver(st fpath.Style) *OSResolver {
	return &OSResolver{style: st, getwd: os.Getwd}
}

// Resolve parses raw and qualifies it against the working directory.
// Existing directories come back as directory paths. A path that does not
// exist is returned as parsed so it can still be located or untracked.
func (r *OSResolver) Resolve(raw string) (fpath.Path, error) {
	p, err := r.style.Parse(raw)
	if err != nil {
		return fpath.Path{}, err
	}

	if !catalog.IsFullyQualified(p) {
		wd, err := r.getwd()
		if err != nil {
			return fpath.Path{}, fmt.Errorf("getting working directory: %w", err)
		}
		cwd, err := r.style.Parse(wd)
		if err != nil {
			return fpath.Path{}, fmt.Errorf("parsing working directory: %w", err)
		}
		cwd = cwd.AsDirectory()
		if p.IsRooted() {
			p = p.WithRoot(cwd.Root())
		} else if p, err = cwd.Combine(p); err != nil {
			return fpath.Path{}, err
		}
	}

	info, err := os.Lstat(p.AsFile().String())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return fpath.Path{}, fmt.Errorf("stat path: %w", err)
	}

	// Check for special file types we don't support
	mode := info.Mode()
	if mode&os.ModeSymlink != 0 {
		return fpath.Path{}, fmt.Errorf("symlinks not supported: %s", p)
	}
	if mode&os.ModeDevice != 0 {
		return fpath.Path{}, fmt.Errorf("device files not supported: %s", p)
	}
	if mode&os.ModeNamedPipe != 0 {
		return fpath.Path{}, fmt.Errorf("named pipes not supported: %s", p)
	}
	if mode&os.ModeSocket != 0 {
		return fpath.Path{}, fmt.Errorf("sockets not supported: %s", p)
	}

	if info.IsDir() {
		return p.AsDirectory(), nil
	}
	return p.AsFile(), nil
}

// Compile-time check that OSResolver implements catalog.Resolver interface
var _ catalog.Resolver = (*OSResolver)(nil)
