// Package fpath implements an immutable, cross-platform file path value.
//
// A path string is parsed once into five canonical components:
//
//	driveOrHost  "C:" or `\\host`, or empty
//	rootFolder   empty, a single separator, or `\share\` below a host
//	prefix       separator-terminated parent segments, e.g. `a\b\`
//	name         base name without extension
//	extension    empty or starting with "."
//
// plus a directory flag. Dot segments are collapsed, separators unified and
// invalid characters rejected during parsing; every other operation is a pure
// transformation of those components. Comparison is ordinal and
// case-insensitive. Nothing in this package touches the filesystem.
package fpath

import (
	"strings"
	"sync/atomic"
)

// Path is an immutable canonical path. The zero value is Empty.
// Paths are safe for concurrent use.
type Path struct {
	d *pathData
}

// Empty is the current directory: every component is empty.
var Empty = Path{}

type pathData struct {
	style       Style
	driveOrHost string
	root        string
	prefix      string
	name        string
	ext         string
	dir         bool

	// parent memoizes Parent. Racing writers store equal values.
	parent atomic.Pointer[pathData]
}

var (
	emptyData pathData
	// noParent marks a memoized "has no parent" result.
	noParent = &pathData{}
)

func newPath(st Style, driveOrHost, root, prefix, name, ext string, dir bool) Path {
	if name == "" && ext == "" {
		dir = true
	}
	return Path{d: &pathData{
		style:       st.normalize(),
		driveOrHost: driveOrHost,
		root:        root,
		prefix:      prefix,
		name:        name,
		ext:         ext,
		dir:         dir,
	}}
}

func (p Path) data() *pathData {
	if p.d == nil {
		return &emptyData
	}
	return p.d
}

// Style returns the style the path renders with.
func (p Path) Style() Style {
	if p.d == nil {
		return DefaultStyle()
	}
	return p.d.style
}

func (p Path) sep() string {
	return p.Style().sep()
}

// String renders the canonical form. Directories with a name end in a
// separator; a path made only of ".." segments does not.
func (p Path) String() string {
	d := p.data()
	var sb strings.Builder
	sb.Grow(len(d.driveOrHost) + len(d.root) + len(d.prefix) + len(d.name) + len(d.ext) + 1)
	sb.WriteString(d.driveOrHost)
	sb.WriteString(d.root)
	if d.name == "" && d.ext == "" {
		sb.WriteString(strings.TrimSuffix(d.prefix, p.sep()))
		return sb.String()
	}
	sb.WriteString(d.prefix)
	sb.WriteString(d.name)
	sb.WriteString(d.ext)
	if d.dir {
		sb.WriteString(p.sep())
	}
	return sb.String()
}

// DirectoryPath renders the path as a directory, always ending in a separator
// when there is anything after the drive or host.
func (p Path) DirectoryPath() string {
	d := p.data()
	s := d.driveOrHost + d.root + d.prefix + d.name + d.ext
	if d.name != "" || d.ext != "" {
		s += p.sep()
	}
	return s
}

// AbsoluteString returns String for absolute paths and ErrNotAbsolute otherwise.
func (p Path) AbsoluteString() (string, error) {
	if !p.IsAbsolute() {
		return "", &PathError{Op: "absolute", Path: p.String(), Err: ErrNotAbsolute}
	}
	return p.String(), nil
}

// DriveOrHost returns "X:", `\\host` or "".
func (p Path) DriveOrHost() string { return p.data().driveOrHost }

// Drive returns the drive letter with its colon, or "".
func (p Path) Drive() string {
	if d := p.data(); len(d.driveOrHost) == 2 {
		return d.driveOrHost
	}
	return ""
}

// Host returns the network host including its leading separators, or "".
func (p Path) Host() string {
	if p.IsUNC() {
		return p.data().driveOrHost
	}
	return ""
}

// Share returns the UNC share name without separators, or "".
func (p Path) Share() string {
	d := p.data()
	if len(d.root) < 3 {
		return ""
	}
	return d.root[1 : len(d.root)-1]
}

// RootFolder returns "", a single separator, or `\share\`.
func (p Path) RootFolder() string { return p.data().root }

// Prefix returns the separator-terminated parent segments.
func (p Path) Prefix() string { return p.data().prefix }

// Name returns the final segment including its extension, or "" when there is
// no final segment. A run of three or more dots names the file one dot
// shorter, so "..." is the name "..".
func (p Path) Name() string {
	d := p.data()
	if isDotRun(d.name, d.ext) {
		return d.name[1:]
	}
	return d.name + d.ext
}

// NameWithoutExtension returns the final segment without its extension.
func (p Path) NameWithoutExtension() string {
	d := p.data()
	if isDotRun(d.name, d.ext) {
		return d.name[1:]
	}
	return d.name
}

func isDotRun(name, ext string) bool {
	return ext == "" && len(name) > 2 && allDots(name)
}

// Extension returns the extension including its dot, or "".
func (p Path) Extension() string { return p.data().ext }

// HasExtension reports whether the final segment has an extension.
func (p Path) HasExtension() bool { return p.data().ext != "" }

// IsDirectory reports whether the path denotes a directory.
func (p Path) IsDirectory() bool {
	d := p.data()
	return d.dir || (d.name == "" && d.ext == "")
}

// IsAbsolute reports whether the path has both a drive or host and a root.
func (p Path) IsAbsolute() bool {
	d := p.data()
	return d.driveOrHost != "" && d.root != ""
}

// IsRooted reports whether the path has a root folder.
func (p Path) IsRooted() bool { return p.data().root != "" }

// IsRoot reports whether the path is a root folder and nothing else.
func (p Path) IsRoot() bool {
	d := p.data()
	return d.root != "" && d.prefix == "" && d.name == "" && d.ext == ""
}

// IsCurrent reports whether the path is the current directory.
func (p Path) IsCurrent() bool {
	d := p.data()
	return d.driveOrHost == "" && d.root == "" && d.prefix == "" && d.name == "" && d.ext == ""
}

// IsExternal reports whether combining the path with any base would escape
// that base.
func (p Path) IsExternal() bool {
	d := p.data()
	if d.root != "" {
		return false
	}
	return strings.HasPrefix(d.prefix, ".."+p.sep())
}

// IsUNC reports whether the path starts with a network host.
func (p Path) IsUNC() bool { return len(p.data().driveOrHost) > 2 }

// Root returns the drive or host and root folder as a path of their own.
func (p Path) Root() Path {
	d := p.data()
	return newPath(p.Style(), d.driveOrHost, d.root, "", "", "", true)
}

// Segments returns the prefix segments followed by the final name, if any.
func (p Path) Segments() []string {
	d := p.data()
	var segs []string
	if d.prefix != "" {
		segs = strings.Split(strings.TrimSuffix(d.prefix, p.sep()), p.sep())
	}
	if d.name != "" || d.ext != "" {
		segs = append(segs, d.name+d.ext)
	}
	return segs
}

// Parent returns the directory containing p. ok is false for roots and bare
// hosts. The parent of a path made of ".." segments adds one more.
func (p Path) Parent() (parent Path, ok bool) {
	if p.d == nil {
		return p.computeParent()
	}
	if cached := p.d.parent.Load(); cached != nil {
		if cached == noParent {
			return Path{}, false
		}
		return Path{d: cached}, true
	}
	parent, ok = p.computeParent()
	if !ok {
		p.d.parent.Store(noParent)
		return Path{}, false
	}
	p.d.parent.Store(parent.data())
	return parent, true
}

func (p Path) computeParent() (Path, bool) {
	d := p.data()
	st, sep := p.Style(), p.sep()
	if d.name != "" || d.ext != "" {
		return dirFromPrefix(st, d.driveOrHost, d.root, d.prefix), true
	}
	if real := lastRealSegment(d.prefix); real >= 0 {
		return dirFromPrefix(st, d.driveOrHost, d.root, d.prefix[:real]), true
	}
	if d.root != "" || len(d.driveOrHost) > 2 {
		return Path{}, false
	}
	return newPath(st, d.driveOrHost, "", d.prefix+".."+sep, "", "", true), true
}

// Ancestor returns the n-th parent of p; Ancestor(0) is p itself.
func (p Path) Ancestor(n int) (Path, bool) {
	cur := p
	for i := 0; i < n; i++ {
		next, ok := cur.Parent()
		if !ok {
			return Path{}, false
		}
		cur = next
	}
	return cur, true
}

// Ancestors returns the parents of p, nearest first, stopping at the root or
// the current directory. Parent references are never climbed past.
func (p Path) Ancestors() []Path {
	if !p.hasRealSegment() {
		return nil
	}
	var out []Path
	cur := p
	for {
		next, ok := cur.Parent()
		if !ok {
			return out
		}
		out = append(out, next)
		if !next.hasRealSegment() {
			return out
		}
		cur = next
	}
}

func (p Path) hasRealSegment() bool {
	d := p.data()
	if d.name != "" || d.ext != "" {
		return true
	}
	return lastRealSegment(d.prefix) >= 0
}

// dirFromPrefix turns a separator-terminated prefix into a directory path,
// moving its last real segment into the name.
func dirFromPrefix(st Style, driveOrHost, root, prefix string) Path {
	i := lastRealSegment(prefix)
	if i < 0 {
		return newPath(st, driveOrHost, root, prefix, "", "", true)
	}
	name, ext := splitExt(prefix[i : len(prefix)-1])
	return newPath(st, driveOrHost, root, prefix[:i], name, ext, true)
}

// lastRealSegment returns the offset of the prefix's final segment, or -1 when
// the prefix is empty or ends in "..".
func lastRealSegment(prefix string) int {
	if prefix == "" {
		return -1
	}
	body := prefix[:len(prefix)-1]
	i := strings.LastIndexByte(body, prefix[len(prefix)-1]) + 1
	if body[i:] == ".." {
		return -1
	}
	return i
}
