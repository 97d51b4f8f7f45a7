package fpath_test

import (
	"testing"

	"fpath-go/internal/fpath"
)

func TestRelate(t *testing.T) {
	tests := []struct {
		x, y     string
		want     fpath.Relation
		sameRoot bool
	}{
		{`C:\a\`, `C:\a\b`, fpath.RelParent, true},
		{`C:\a\b`, `C:\a\`, fpath.RelChild, true},
		{`C:\a`, `c:\A\`, fpath.RelEqual, true},
		{``, `a`, fpath.RelImplicitParent, true},
		{`a`, ``, fpath.RelImplicitChild, true},
		{`C:`, `C:a`, fpath.RelImplicitParent, true},
		{`C:\a\b`, `C:\a\c`, fpath.RelCommonAncestor, true},
		{`C:\a`, `C:\b`, fpath.RelCommonAncestor, true},
		{`a`, `b`, fpath.RelSibling, true},
		{`ab`, `ac`, fpath.RelSibling, true},
		{`C:\a`, `D:\a`, fpath.RelSibling, false},
		{`\\h\s\x`, `\\h\t\x`, fpath.RelSibling, false},
		{`\a`, `a`, fpath.RelNone, false},
		{`C:\a`, `C:a`, fpath.RelNone, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.x+"~"+tt.y, func(t *testing.T) {
			t.Parallel()
			x, y := win(tt.x), win(tt.y)
			got, same := fpath.Relate(x, y)
			if got != tt.want || same != tt.sameRoot {
				t.Errorf("Relate() = %v, %v, want %v, %v", got, same, tt.want, tt.sameRoot)
			}
			back, _ := y.Relate(x)
			if back != got.Inverse() {
				t.Errorf("reverse Relate() = %v, want %v", back, got.Inverse())
			}
		})
	}
}

func TestRelate_MixedStyles(t *testing.T) {
	posix := fpath.POSIX.MustParse
	tests := []struct {
		name     string
		x, y     fpath.Path
		want     fpath.Relation
		sameRoot bool
	}{
		{"drive parent", win(`C:\a\`), posix("c:/A/b"), fpath.RelParent, true},
		{"drive equal", posix("C:/a/b/"), win(`c:\a\B`), fpath.RelEqual, true},
		{"unc child", posix("//h/s/x/y"), win(`\\H\S\x\`), fpath.RelChild, true},
		{"unc other share", win(`\\h\s\x`), posix("//h/t/x"), fpath.RelSibling, false},
		{"rooted without drive", posix("/a/b"), win(`\a\c`), fpath.RelCommonAncestor, true},
		{"drive against bare root", win(`C:\a`), posix("/a"), fpath.RelSibling, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, same := fpath.Relate(tt.x, tt.y)
			if got != tt.want || same != tt.sameRoot {
				t.Errorf("Relate(%q, %q) = %v, %v, want %v, %v", tt.x, tt.y, got, same, tt.want, tt.sameRoot)
			}
			if _, back := fpath.Relate(tt.y, tt.x); back != same {
				t.Errorf("reverse sameRoot = %v, want %v", back, same)
			}
		})
	}
}

func TestRelation_String(t *testing.T) {
	tests := map[fpath.Relation]string{
		fpath.RelNone:           "none",
		fpath.RelEqual:          "equal",
		fpath.RelChild:          "child",
		fpath.RelParent:         "parent",
		fpath.RelImplicitChild:  "implicit-child",
		fpath.RelImplicitParent: "implicit-parent",
		fpath.RelSibling:        "sibling",
		fpath.RelCommonAncestor: "common-ancestor",
	}
	for r, want := range tests {
		if got := r.String(); got != want {
			t.Errorf("Relation(%d).String() = %q, want %q", int(r), got, want)
		}
	}
}

func TestPath_Contains(t *testing.T) {
	root := win(`C:\data\`)
	if !root.Contains(win(`c:\DATA\x\y.txt`)) {
		t.Error("Contains(child) = false, want true")
	}
	if !root.Contains(win(`C:\data`)) {
		t.Error("Contains(self) = false, want true")
	}
	if root.Contains(win(`C:\database`)) {
		t.Error("Contains(C:\\database) = true, want false")
	}
	if root.Contains(win(`D:\data\x`)) {
		t.Error("Contains(other drive) = true, want false")
	}
}
