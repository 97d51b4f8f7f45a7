package fpath

import "strings"

// Relation classifies how one path sits relative to another.
type Relation int

const (
	RelNone Relation = iota
	RelEqual
	RelChild
	RelParent
	RelImplicitChild
	RelImplicitParent
	RelSibling
	RelCommonAncestor
)

func (r Relation) String() string {
	switch r {
	case RelEqual:
		return "equal"
	case RelChild:
		return "child"
	case RelParent:
		return "parent"
	case RelImplicitChild:
		return "implicit-child"
	case RelImplicitParent:
		return "implicit-parent"
	case RelSibling:
		return "sibling"
	case RelCommonAncestor:
		return "common-ancestor"
	default:
		return "none"
	}
}

// Inverse returns the relation seen from the other side.
func (r Relation) Inverse() Relation {
	switch r {
	case RelChild:
		return RelParent
	case RelParent:
		return RelChild
	case RelImplicitChild:
		return RelImplicitParent
	case RelImplicitParent:
		return RelImplicitChild
	default:
		return r
	}
}

// Relate describes x relative to y: RelParent means x is an ancestor of y.
// sameRoot reports whether both paths share drive, host and root folder,
// independently of the relation. Paths where only one side is rooted are
// RelNone.
//
// Both directory forms are walked case-insensitively. Running out of one side
// on a separator makes it a parent; running out elsewhere (the current
// directory, a bare drive) makes it an implicit parent. When both sides have
// characters left, a shared separator-aligned run means a common ancestor and
// anything else is a sibling.
func Relate(x, y Path) (rel Relation, sameRoot bool) {
	xd, yd := x.data(), y.data()
	sameRoot = foldKey(xd.driveOrHost) == foldKey(yd.driveOrHost) && foldKey(xd.root) == foldKey(yd.root)
	if x.IsRooted() != y.IsRooted() {
		return RelNone, sameRoot
	}

	a, b := x.Key(), y.Key()
	i, boundary := 0, false
	for i < len(a) && i < len(b) && a[i] == b[i] {
		if a[i] == '/' {
			boundary = true
		}
		i++
	}

	switch {
	case i == len(a) && i == len(b):
		return RelEqual, sameRoot
	case i == len(a):
		if strings.HasSuffix(a, "/") {
			return RelParent, sameRoot
		}
		return RelImplicitParent, sameRoot
	case i == len(b):
		if strings.HasSuffix(b, "/") {
			return RelChild, sameRoot
		}
		return RelImplicitChild, sameRoot
	case boundary && sameRoot:
		return RelCommonAncestor, sameRoot
	}
	return RelSibling, sameRoot
}

// Relate is shorthand for Relate(p, other).
func (p Path) Relate(other Path) (Relation, bool) {
	return Relate(p, other)
}

// Contains reports whether other is p itself or lies below p.
func (p Path) Contains(other Path) bool {
	rel, same := Relate(p, other)
	return same && (rel == RelEqual || rel == RelParent)
}
