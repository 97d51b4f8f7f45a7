package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"fpath-go/internal/catalog"
	"fpath-go/internal/database/migrations"
	"fpath-go/internal/fpath"
)

// pathInfo is the breakdown printed by parse, combine, rel and edit.
type pathInfo struct {
	Path        string `json:"path"`
	Style       string `json:"style"`
	DriveOrHost string `json:"drive_or_host,omitempty"`
	Share       string `json:"share,omitempty"`
	RootFolder  string `json:"root,omitempty"`
	Prefix      string `json:"prefix,omitempty"`
	Name        string `json:"name,omitempty"`
	Extension   string `json:"extension,omitempty"`
	Directory   bool   `json:"directory"`
	Absolute    bool   `json:"absolute"`
	Rooted      bool   `json:"rooted"`
	UNC         bool   `json:"unc"`
	External    bool   `json:"external"`
	Key         string `json:"key"`
}

func newPathInfo(p fpath.Path) pathInfo {
	return pathInfo{
		Path:        p.String(),
		Style:       p.Style().String(),
		DriveOrHost: p.DriveOrHost(),
		Share:       p.Share(),
		RootFolder:  p.RootFolder(),
		Prefix:      p.Prefix(),
		Name:        p.NameWithoutExtension(),
		Extension:   p.Extension(),
		Directory:   p.IsDirectory(),
		Absolute:    p.IsAbsolute(),
		Rooted:      p.IsRooted(),
		UNC:         p.IsUNC(),
		External:    p.IsExternal(),
		Key:         p.Key(),
	}
}

func (i pathInfo) header() []string { return []string{"FIELD", "VALUE"} }

func (i pathInfo) rows() [][]string {
	return [][]string{
		{"path", i.Path},
		{"style", i.Style},
		{"drive_or_host", i.DriveOrHost},
		{"share", i.Share},
		{"root", i.RootFolder},
		{"prefix", i.Prefix},
		{"name", i.Name},
		{"extension", i.Extension},
		{"directory", strconv.FormatBool(i.Directory)},
		{"absolute", strconv.FormatBool(i.Absolute)},
		{"rooted", strconv.FormatBool(i.Rooted)},
		{"unc", strconv.FormatBool(i.UNC)},
		{"external", strconv.FormatBool(i.External)},
		{"key", i.Key},
	}
}

// pathList prints one path per line.
type pathList []string

func newPathList(paths []fpath.Path) pathList {
	l := make(pathList, len(paths))
	for i, p := range paths {
		l[i] = p.String()
	}
	return l
}

func (l pathList) header() []string { return []string{"PATH"} }

func (l pathList) rows() [][]string {
	rows := make([][]string, len(l))
	for i, p := range l {
		rows[i] = []string{p}
	}
	return rows
}

type relationInfo struct {
	X        string `json:"x"`
	Y        string `json:"y"`
	Relation string `json:"relation"`
	SameRoot bool   `json:"same_root"`
}

func (r relationInfo) header() []string { return []string{"X", "Y", "RELATION", "SAME_ROOT"} }

func (r relationInfo) rows() [][]string {
	return [][]string{{r.X, r.Y, r.Relation, strconv.FormatBool(r.SameRoot)}}
}

type rootInfo struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// rootList renders tracked roots with their age relative to now.
type rootList struct {
	Roots []rootInfo `json:"roots"`
	now   time.Time
}

func newRootList(roots []*catalog.Root, now time.Time) rootList {
	l := rootList{Roots: make([]rootInfo, len(roots)), now: now}
	for i, r := range roots {
		l.Roots[i] = rootInfo{ID: r.ID, Path: r.Path.String(), CreatedAt: r.CreatedAt}
	}
	return l
}

func (l rootList) header() []string { return []string{"PATH", "ADDED", "ID"} }

func (l rootList) rows() [][]string {
	rows := make([][]string, len(l.Roots))
	for i, r := range l.Roots {
		rows[i] = []string{r.Path, humanize.RelTime(r.CreatedAt, l.now, "ago", "from now"), r.ID}
	}
	return rows
}

type trackInfo struct {
	Root         string   `json:"root"`
	Created      bool     `json:"created"`
	Consolidated []string `json:"consolidated,omitempty"`
}

func newTrackInfo(res *catalog.TrackResult) trackInfo {
	info := trackInfo{Root: res.Root.Path.String(), Created: res.Created}
	for _, r := range res.Consolidated {
		info.Consolidated = append(info.Consolidated, r.Path.String())
	}
	return info
}

func (t trackInfo) String() string {
	if !t.Created {
		return fmt.Sprintf("Already tracked by %s", t.Root)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tracking %s", t.Root)
	for _, c := range t.Consolidated {
		fmt.Fprintf(&sb, "\n  replaces %s", c)
	}
	return sb.String()
}

type locationInfo struct {
	Root     string `json:"root"`
	Relative string `json:"relative"`
	Ignored  bool   `json:"ignored"`
}

func newLocationInfo(loc *catalog.Location) locationInfo {
	return locationInfo{Root: loc.Root.Path.String(), Relative: loc.Relative.String(), Ignored: loc.Ignored}
}

func (l locationInfo) header() []string { return []string{"ROOT", "RELATIVE", "IGNORED"} }

func (l locationInfo) rows() [][]string {
	return [][]string{{l.Root, l.Relative, strconv.FormatBool(l.Ignored)}}
}

type schemaInfo struct {
	Current uint `json:"current"`
	Latest  uint `json:"latest"`
	Dirty   bool `json:"dirty"`
	Empty   bool `json:"empty"`
}

func newSchemaInfo(st migrations.Status) schemaInfo {
	return schemaInfo{Current: st.Current, Latest: st.Latest, Dirty: st.Dirty, Empty: st.Empty}
}

func (s schemaInfo) String() string {
	switch {
	case s.Empty:
		return fmt.Sprintf("Schema not initialized (latest %d)", s.Latest)
	case s.Dirty:
		return fmt.Sprintf("Schema version %d is dirty (latest %d)", s.Current, s.Latest)
	default:
		return fmt.Sprintf("Schema version %d (latest %d)", s.Current, s.Latest)
	}
}

// describeError renders err for humans. Parse errors get a caret line under
// the offending span.
func describeError(err error) string {
	var pe *fpath.ParseError
	if !errors.As(err, &pe) || pe.Kind == fpath.NullValue || pe.Length <= 0 {
		return err.Error()
	}
	if pe.Start < 0 || pe.Start+pe.Length > len(pe.Value) {
		return err.Error()
	}
	return fmt.Sprintf("%v\n  %s\n  %s%s", err, pe.Value, strings.Repeat(" ", pe.Start), strings.Repeat("^", pe.Length))
}
