package catalog

import (
	"fmt"
	"slices"

	"fpath-go/internal/fpath"
)

// Service implements root tracking on top of a Store.
type Service struct {
	store  Store
	ignore Matcher
	logger Logger
	clock  Clock
	ids    IDGenerator
}

// NewService wires a Service. ignore and logger may be nil.
func NewService(store Store, ignore Matcher, logger Logger, clock Clock, ids IDGenerator) *Service {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Service{
		store:  store,
		ignore: ignore,
		logger: logger,
		clock:  clock,
		ids:    ids,
	}
}

// Track starts tracking p as a root directory. Tracking a path that is
// already tracked, or that lies below a tracked root, changes nothing.
// Tracked roots below p are folded into the new root.
func (s *Service) Track(p fpath.Path) (*TrackResult, error) {
	if !IsFullyQualified(p) {
		return nil, fmt.Errorf("tracking %s: %w", p, fpath.ErrNotAbsolute)
	}
	p = p.AsDirectory()
	if s.ignored(p.WithoutRoot()) {
		return nil, fmt.Errorf("tracking %s: %w", p, ErrIgnored)
	}

	roots, err := s.store.ListRoots()
	if err != nil {
		return nil, fmt.Errorf("listing roots: %w", err)
	}

	var descendants []*Root
	for _, r := range roots {
		rel, sameRoot := fpath.Relate(r.Path, p)
		if !sameRoot {
			continue
		}
		switch rel {
		case fpath.RelEqual:
			s.logger.Debug("root already tracked", "path", p.String(), "id", r.ID)
			return &TrackResult{Root: r}, nil
		case fpath.RelParent:
			s.logger.Info("path covered by existing root", "path", p.String(), "root", r.Path.String())
			return &TrackResult{Root: r}, nil
		case fpath.RelChild:
			descendants = append(descendants, r)
		}
	}

	root := &Root{ID: s.ids.New(), Path: p, CreatedAt: s.clock.Now()}
	replaces := make([]string, len(descendants))
	for i, d := range descendants {
		replaces[i] = d.ID
	}
	if err := s.store.CreateRoot(root, replaces); err != nil {
		return nil, fmt.Errorf("creating root %s: %w", p, err)
	}

	for _, d := range descendants {
		s.logger.Info("consolidated root", "path", d.Path.String(), "into", p.String())
	}
	s.logger.Info("tracking root", "path", p.String(), "id", root.ID)
	return &TrackResult{Root: root, Created: true, Consolidated: descendants}, nil
}

// Untrack stops tracking the root equal to p.
func (s *Service) Untrack(p fpath.Path) (*Root, error) {
	r, err := s.store.FindRoot(p.Key())
	if err != nil {
		return nil, fmt.Errorf("finding root %s: %w", p, err)
	}
	if r == nil {
		return nil, fmt.Errorf("untracking %s: %w", p, ErrNotTracked)
	}
	if err := s.store.DeleteRoot(r.ID); err != nil {
		return nil, fmt.Errorf("deleting root %s: %w", p, err)
	}
	s.logger.Info("untracked root", "path", r.Path.String(), "id", r.ID)
	return r, nil
}

// Roots returns every tracked root in path order.
func (s *Service) Roots() ([]*Root, error) {
	roots, err := s.store.ListRoots()
	if err != nil {
		return nil, fmt.Errorf("listing roots: %w", err)
	}
	slices.SortFunc(roots, func(a, b *Root) int { return fpath.Compare(a.Path, b.Path) })
	return roots, nil
}

// Locate finds the tracked root containing p and the path of p relative to it.
func (s *Service) Locate(p fpath.Path) (*Location, error) {
	roots, err := s.store.ListRoots()
	if err != nil {
		return nil, fmt.Errorf("listing roots: %w", err)
	}

	var best *Root
	for _, r := range roots {
		if !r.Path.Contains(p) {
			continue
		}
		// Prefer the outermost root if roots nest.
		if best == nil || len(r.Path.Segments()) < len(best.Path.Segments()) {
			best = r
		}
	}
	if best == nil {
		return nil, fmt.Errorf("locating %s: %w", p, ErrNotTracked)
	}

	rel, err := p.Relativize(best.Path)
	if err != nil {
		return nil, fmt.Errorf("locating %s: %w", p, err)
	}
	return &Location{Root: best, Relative: rel, Ignored: s.ignored(rel)}, nil
}

func (s *Service) ignored(rel fpath.Path) bool {
	return s.ignore != nil && !rel.IsCurrent() && s.ignore.Match(rel)
}
