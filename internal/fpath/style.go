package fpath

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
)

// Flags toggles optional syntax accepted by the parser.
type Flags uint8

const (
	// AllowDrive accepts a leading drive letter such as "C:".
	AllowDrive Flags = 1 << iota
	// AllowUNC accepts a leading network host such as `\\host\share`.
	AllowUNC
	// AllowURI accepts a leading "file:" scheme.
	AllowURI
	// AllowLongPath accepts the `\\?\` and `\\.\` prefixes.
	AllowLongPath

	DefaultFlags = AllowDrive | AllowUNC | AllowURI | AllowLongPath
)

// Style selects the separator used to render paths and the syntax the parser
// accepts. Both `\` and `/` are always accepted as input separators.
type Style struct {
	Separator byte
	Flags     Flags
}

var (
	// Windows renders paths with a backslash.
	Windows = Style{Separator: '\\', Flags: DefaultFlags}
	// POSIX renders paths with a forward slash.
	POSIX = Style{Separator: '/', Flags: DefaultFlags}
)

var defaultStyle atomic.Pointer[Style]

// HostStyle returns the style matching the running operating system.
func HostStyle() Style {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return POSIX
}

// DefaultStyle returns the style used by the package-level Parse functions.
// It is HostStyle unless SetDefaultStyle has been called.
func DefaultStyle() Style {
	if s := defaultStyle.Load(); s != nil {
		return *s
	}
	return HostStyle()
}

// SetDefaultStyle replaces the process-wide default style. It should be called
// once during start-up. Paths that already exist keep the style they were
// created with.
func SetDefaultStyle(s Style) {
	s = s.normalize()
	defaultStyle.Store(&s)
}

// StyleByName resolves "windows", "posix" or "host" (also the empty string).
func StyleByName(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "host":
		return HostStyle(), nil
	case "windows", "win":
		return Windows, nil
	case "posix", "unix":
		return POSIX, nil
	default:
		return Style{}, fmt.Errorf("unknown path style: %q", name)
	}
}

// Without returns a copy of s with the given flags cleared.
func (s Style) Without(f Flags) Style {
	s.Flags &^= f
	return s
}

// Has reports whether all of f are enabled.
func (s Style) Has(f Flags) bool {
	return s.Flags&f == f
}

// RelativeRoot returns the path consisting of a single root separator.
func (s Style) RelativeRoot() Path {
	s = s.normalize()
	return newPath(s, "", string(s.Separator), "", "", "", true)
}

func (s Style) String() string {
	switch s.Separator {
	case '/':
		return "posix"
	default:
		return "windows"
	}
}

func (s Style) sep() string {
	return string(s.normalize().Separator)
}

// normalize maps a zero or unknown separator onto the host style.
func (s Style) normalize() Style {
	if s.Separator != '\\' && s.Separator != '/' {
		s.Separator = HostStyle().Separator
	}
	return s
}

// RelativeRoot returns the root separator path in the default style.
func RelativeRoot() Path {
	return DefaultStyle().RelativeRoot()
}

func isSep(c byte) bool {
	return c == '\\' || c == '/'
}
