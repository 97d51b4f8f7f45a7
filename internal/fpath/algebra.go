package fpath

import "strings"

// Combine appends rel to p, treating p as a directory. rel must not carry a
// drive or host. A rooted rel replaces everything in p but its drive or host.
// Dot segments introduced by rel are collapsed against p.
func (p Path) Combine(rel Path) (Path, error) {
	r := rel.data()
	if r.driveOrHost != "" {
		return Path{}, &PathError{Op: "combine", Path: p.String(), Arg: rel.String(), Err: ErrAbsoluteCombine}
	}
	if rel.IsCurrent() {
		return p, nil
	}
	st := p.Style()
	if p.d == nil && rel.d != nil {
		st = rel.d.style
	}
	d := p.data()
	if r.root != "" {
		return assemble(st, d.driveOrHost, st.sep(), rel.relativePart(r.dir)), nil
	}
	fragment := p.relativePart(true) + rel.relativePart(r.dir)
	return assemble(st, d.driveOrHost, d.root, fragment), nil
}

// CombineString parses rel in p's style and combines it with p.
func (p Path) CombineString(rel string) (Path, error) {
	r, err := p.Style().Parse(rel)
	if err != nil {
		return Path{}, err
	}
	return p.Combine(r)
}

// Join parses base and rel with the default style and combines them.
func Join(base, rel string) (Path, error) {
	b, err := Parse(base)
	if err != nil {
		return Path{}, err
	}
	return b.CombineString(rel)
}

// Relativize returns the relative path leading from base to p, so that
// base.Combine(result) equals p. base is treated as a directory. Both paths
// must share their drive or host and root folder.
func (p Path) Relativize(base Path) (Path, error) {
	d, b := p.data(), base.data()
	if foldKey(d.driveOrHost) != foldKey(b.driveOrHost) || foldKey(d.root) != foldKey(b.root) {
		return Path{}, &PathError{Op: "relativize", Path: p.String(), Arg: base.String(), Err: ErrDifferentRoot}
	}
	ps, bs := p.Segments(), base.Segments()
	k := 0
	for k < len(ps) && k < len(bs) && foldKey(ps[k]) == foldKey(bs[k]) {
		k++
	}
	segs := make([]string, 0, len(bs)-k+len(ps)-k)
	for _, s := range bs[k:] {
		if s == ".." {
			return Path{}, &PathError{Op: "relativize", Path: p.String(), Arg: base.String(), Err: ErrCannotRelativize}
		}
		segs = append(segs, "..")
	}
	segs = append(segs, ps[k:]...)
	return fromSegments(p.Style(), "", "", segs, d.dir), nil
}

// RelativizeString parses base in p's style and relativizes p against it.
func (p Path) RelativizeString(base string) (Path, error) {
	b, err := p.Style().Parse(base)
	if err != nil {
		return Path{}, err
	}
	return p.Relativize(b)
}

// relativePart renders everything after the root. asDir appends a separator
// after a final name.
func (p Path) relativePart(asDir bool) string {
	d := p.data()
	s := d.prefix + d.name + d.ext
	if asDir && (d.name != "" || d.ext != "") {
		s += p.sep()
	}
	return s
}

// fromSegments builds a path from already canonical segments. A trailing ".."
// stays in the prefix.
func fromSegments(st Style, driveOrHost, root string, segs []string, dir bool) Path {
	if len(segs) == 0 {
		return newPath(st, driveOrHost, root, "", "", "", true)
	}
	sep := st.sep()
	body, last := segs[:len(segs)-1], segs[len(segs)-1]
	if last == ".." {
		body, last = segs, ""
	}
	var sb strings.Builder
	for _, s := range body {
		sb.WriteString(s)
		sb.WriteString(sep)
	}
	name, ext := splitExt(last)
	return newPath(st, driveOrHost, root, sb.String(), name, ext, dir)
}
