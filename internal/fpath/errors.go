package fpath

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	None ErrorKind = iota
	InvalidDriveLetter
	InvalidCharacter
	InvalidLongPathPrefix
	NullValue
)

func (k ErrorKind) String() string {
	switch k {
	case None:
		return "none"
	case InvalidDriveLetter:
		return "invalid drive letter"
	case InvalidCharacter:
		return "invalid character"
	case InvalidLongPathPrefix:
		return "invalid long path prefix"
	case NullValue:
		return "null value"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

var (
	ErrInvalidDriveLetter    = errors.New("invalid drive letter")
	ErrInvalidCharacter      = errors.New("invalid character")
	ErrInvalidLongPathPrefix = errors.New("invalid long path prefix")
	ErrNullValue             = errors.New("null path value")
)

// Errors returned by the path algebra. These are caller mistakes rather than
// malformed input.
var (
	ErrAbsoluteCombine  = errors.New("cannot combine with a path that has a drive or host")
	ErrDifferentRoot    = errors.New("paths do not share a drive, host or root")
	ErrCannotRelativize = errors.New("base escapes above its own root")
	ErrInvalidName      = errors.New("invalid file name")
	ErrNoName           = errors.New("path has no name")
	ErrNotAbsolute      = errors.New("path is not absolute")
)

// ParseError describes why a string could not be parsed. Start and Length are
// byte offsets into Value.
type ParseError struct {
	Value  string
	Kind   ErrorKind
	Start  int
	Length int
}

// ErrorValue returns the offending part of Value.
func (e ParseError) ErrorValue() string {
	start, end := e.Start, e.Start+e.Length
	if start < 0 || end > len(e.Value) || start > end {
		return ""
	}
	return e.Value[start:end]
}

func (e *ParseError) Error() string {
	if e.Kind == NullValue {
		return "fpath: null path value"
	}
	return fmt.Sprintf("fpath: %s %q at offset %d in %q", e.Kind, e.ErrorValue(), e.Start, e.Value)
}

// Unwrap exposes the sentinel for Kind so errors.Is works on parse errors.
func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case InvalidDriveLetter:
		return ErrInvalidDriveLetter
	case InvalidCharacter:
		return ErrInvalidCharacter
	case InvalidLongPathPrefix:
		return ErrInvalidLongPathPrefix
	case NullValue:
		return ErrNullValue
	default:
		return nil
	}
}

// PathError records a failed path operation and the paths involved.
type PathError struct {
	Op   string
	Path string
	Arg  string
	Err  error
}

func (e *PathError) Error() string {
	if e.Arg == "" {
		return fmt.Sprintf("fpath: %s %q: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("fpath: %s %q with %q: %v", e.Op, e.Path, e.Arg, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }
