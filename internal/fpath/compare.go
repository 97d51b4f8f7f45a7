package fpath

import (
	"hash/fnv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Key returns a case-folded form of DirectoryPath with both separators
// mapped to '/'. Equal paths have equal keys, so Key works as a map key.
func (p Path) Key() string {
	return foldKey(p.DirectoryPath())
}

// Equal reports whether p and q denote the same path, ignoring case. A file
// and the directory of the same name are equal.
func (p Path) Equal(q Path) bool {
	return p.Key() == q.Key()
}

// Compare orders paths consistently with Equal.
func (p Path) Compare(q Path) int {
	return strings.Compare(p.Key(), q.Key())
}

// Compare orders paths consistently with Equal. It suits slices.SortFunc.
func Compare(x, y Path) int {
	return x.Compare(y)
}

// Hash returns a hash consistent with Equal.
func (p Path) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(p.Key()))
	return h.Sum64()
}

// foldKey upper-cases valid runes and copies bytes that are not valid UTF-8
// through unchanged, so distinct raw bytes keep distinct keys.
func foldKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c == '\\' {
				c = '/'
			} else if 'a' <= c && c <= 'z' {
				c -= 'a' - 'A'
			}
			b.WriteByte(c)
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(c)
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
		i += size
	}
	return b.String()
}
