package fpath

import "strings"

// WithName replaces the final segment. The name may carry an extension; it
// must not contain separators and must not be empty or made only of dots.
func (p Path) WithName(name string) (Path, error) {
	n, err := p.checkName("with name", name)
	if err != nil {
		return Path{}, err
	}
	d := p.data()
	base, ext := splitExt(n)
	return newPath(p.Style(), d.driveOrHost, d.root, d.prefix, base, ext, d.dir && p.hasName()), nil
}

// WithExtension replaces the extension. The leading dot is optional and an
// empty ext removes the extension.
func (p Path) WithExtension(ext string) (Path, error) {
	d := p.data()
	if !p.hasName() {
		return Path{}, &PathError{Op: "with extension", Path: p.String(), Arg: ext, Err: ErrNoName}
	}
	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}
	n, err := p.checkName("with extension", d.name+ext)
	if err != nil {
		return Path{}, err
	}
	base, e := splitExt(n)
	return newPath(p.Style(), d.driveOrHost, d.root, d.prefix, base, e, d.dir), nil
}

// WithoutExtension drops the last extension. Names such as ".profile" that
// would be left without a base name are returned unchanged.
func (p Path) WithoutExtension() Path {
	d := p.data()
	if d.ext == "" || d.name == "" || allDots(d.name) {
		return p
	}
	base, ext := splitExt(d.name)
	return newPath(p.Style(), d.driveOrHost, d.root, d.prefix, base, ext, d.dir)
}

// WithoutExtensions drops every extension, so "a.tar.gz" becomes "a".
func (p Path) WithoutExtensions() Path {
	cur := p
	for {
		next := cur.WithoutExtension()
		if next.d == cur.d {
			return cur
		}
		cur = next
	}
}

// WithRoot moves p under the drive, host and root folder of root. Any ".."
// segments that cannot climb above the new root are dropped.
func (p Path) WithRoot(root Path) Path {
	st := p.Style()
	r := root.data()
	rootFolder := restyle(r.root, st)
	return assemble(st, restyle(r.driveOrHost, st), rootFolder, p.relativePart(p.IsDirectory()))
}

// WithoutRoot drops the drive, host and root folder.
func (p Path) WithoutRoot() Path {
	d := p.data()
	if d.driveOrHost == "" && d.root == "" {
		return p
	}
	return newPath(p.Style(), "", "", d.prefix, d.name, d.ext, d.dir)
}

// WithoutDrive drops the drive or host but keeps the path rooted. A UNC share
// becomes the first segment below the root.
func (p Path) WithoutDrive() Path {
	d := p.data()
	if d.driveOrHost == "" {
		return p
	}
	st := p.Style()
	if len(d.root) > 1 {
		return assemble(st, "", st.sep(), d.root[1:]+p.relativePart(p.IsDirectory()))
	}
	return newPath(st, "", d.root, d.prefix, d.name, d.ext, d.dir)
}

// AsDirectory marks a named path as a directory.
func (p Path) AsDirectory() Path {
	d := p.data()
	if !p.hasName() || d.dir {
		return p
	}
	return newPath(p.Style(), d.driveOrHost, d.root, d.prefix, d.name, d.ext, true)
}

// AsFile marks a named path as a file. Paths without a name stay directories.
func (p Path) AsFile() Path {
	d := p.data()
	if !p.hasName() || !d.dir {
		return p
	}
	return newPath(p.Style(), d.driveOrHost, d.root, d.prefix, d.name, d.ext, false)
}

// SubpathAfter returns the relative path made of every segment after the
// first n.
func (p Path) SubpathAfter(n int) Path {
	segs := p.Segments()
	n = max(n, 0)
	if n >= len(segs) {
		return newPath(p.Style(), "", "", "", "", "", true)
	}
	return fromSegments(p.Style(), "", "", segs[n:], p.IsDirectory())
}

// SubpathBefore returns the root and the first n segments as a directory.
// When n covers every segment p is returned.
func (p Path) SubpathBefore(n int) Path {
	segs := p.Segments()
	if n >= len(segs) {
		return p
	}
	d := p.data()
	return fromSegments(p.Style(), d.driveOrHost, d.root, segs[:max(n, 0)], true)
}

func (p Path) hasName() bool {
	d := p.data()
	return d.name != "" || d.ext != ""
}

// checkName validates a single segment supplied by a caller.
func (p Path) checkName(op, name string) (string, error) {
	if strings.ContainsAny(name, `\/`) {
		return "", &PathError{Op: op, Path: p.String(), Arg: name, Err: ErrInvalidName}
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isInvalid(c) {
			return "", &ParseError{Value: name, Kind: InvalidCharacter, Start: i, Length: 1}
		}
		if c == ':' {
			return "", &ParseError{Value: name, Kind: InvalidDriveLetter, Start: 0, Length: i + 1}
		}
	}
	s, kind := trimSegment(name)
	if kind != segName {
		return "", &PathError{Op: op, Path: p.String(), Arg: name, Err: ErrInvalidName}
	}
	return s, nil
}

// restyle rewrites separators in s to st's separator.
func restyle(s string, st Style) string {
	sep := st.normalize().Separator
	if !strings.ContainsAny(s, `\/`) {
		return s
	}
	b := []byte(s)
	for i := range b {
		if isSep(b[i]) {
			b[i] = sep
		}
	}
	return string(b)
}
