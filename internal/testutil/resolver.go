package testutil

import (
	"fmt"

	"fpath-go/internal/catalog"
	"fpath-go/internal/fpath"
)

// StubResolver resolves relative arguments against a fixed working
// directory without touching the filesystem.
type StubResolver struct {
	Style fpath.Style
	Cwd   fpath.Path
}

// NewStubResolver parses cwd with st. It panics if cwd is not fully qualified.
func NewStubResolver(st fpath.Style, cwd string) *StubResolver {
	p := st.MustParse(cwd).AsDirectory()
	if !catalog.IsFullyQualified(p) {
		panic(fmt.Sprintf("testutil: working directory %q is not fully qualified", cwd))
	}
	return &StubResolver{Style: st, Cwd: p}
}

func (r *StubResolver) Resolve(raw string) (fpath.Path, error) {
	p, err := r.Style.Parse(raw)
	if err != nil {
		return fpath.Path{}, err
	}
	if catalog.IsFullyQualified(p) {
		return p, nil
	}
	if p.IsRooted() {
		return p.WithRoot(r.Cwd.Root()), nil
	}
	return r.Cwd.Combine(p)
}
