package fpath

import (
	"strings"
	"unicode"
)

// char is one input character after percent-decoding. off and n locate the
// character in the original string so errors can report exact spans.
type char struct {
	c   byte
	off int
	n   int
}

func decode(s string) []char {
	out := make([]char, 0, len(s))
	for i := 0; i < len(s); {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			out = append(out, char{c: unhex(s[i+1])<<4 | unhex(s[i+2]), off: i, n: 3})
			i += 3
			continue
		}
		out = append(out, char{c: s[i], off: i, n: 1})
		i++
	}
	return out
}

// literal is decode without percent handling, for text that is already canonical.
func literal(s string) []char {
	out := make([]char, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = char{c: s[i], off: i, n: 1}
	}
	return out
}

type segKind int

const (
	segEmpty segKind = iota
	segCurrent
	segParent
	segDots // three or more dots, kept as a literal name
	segName
)

// builder is the scratch state of a single parse. Segments are appended to
// buf, each terminated by the separator; marks holds the offset at which every
// pending segment starts so ".." can pop back to it.
type builder struct {
	style   Style
	src     string
	in      []char
	pos     int

	driveOrHost string
	root        string

	buf     []byte
	marks   []int
	escapes int

	name string
	ext  string
	dir  bool
}

// Parse parses s using the default style.
func Parse(s string) (Path, error) {
	return DefaultStyle().Parse(s)
}

// TryParse parses s using the default style and reports failures as data.
func TryParse(s string) (Path, ParseError, bool) {
	return DefaultStyle().TryParse(s)
}

// MustParse is like Parse but panics on malformed input. It is meant for
// constants and tests.
func MustParse(s string) Path {
	return DefaultStyle().MustParse(s)
}

// Parse parses s into its canonical form. The returned error is a *ParseError.
func (st Style) Parse(s string) (Path, error) {
	p, perr := st.parse(s)
	if perr != nil {
		return Path{}, perr
	}
	return p, nil
}

// TryParse is Parse without an error value: ok is false and pe describes the
// failure when s is malformed.
func (st Style) TryParse(s string) (p Path, pe ParseError, ok bool) {
	p, perr := st.parse(s)
	if perr != nil {
		return Path{}, *perr, false
	}
	return p, ParseError{Value: s}, true
}

// MustParse is like Parse but panics on malformed input.
func (st Style) MustParse(s string) Path {
	p, err := st.Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (st Style) parse(s string) (Path, *ParseError) {
	trimmed := strings.TrimRightFunc(s, isTrailingJunk)
	b := &builder{style: st.normalize(), src: s, in: decode(trimmed)}
	if err := b.parseRoot(); err != nil {
		return Path{}, err
	}
	if err := b.parseSegments(); err != nil {
		return Path{}, err
	}
	return b.path(), nil
}

// assemble builds a path from canonical root components and a root-relative
// fragment, collapsing any dot segments the fragment introduces.
func assemble(st Style, driveOrHost, root, fragment string) Path {
	b := &builder{
		style:       st.normalize(),
		src:         fragment,
		in:          literal(fragment),
		driveOrHost: driveOrHost,
		root:        root,
	}
	b.collectSegments()
	return b.path()
}

func (b *builder) path() Path {
	dir := b.dir || (b.name == "" && b.ext == "")
	return newPath(b.style, b.driveOrHost, b.root, string(b.buf), b.name, b.ext, dir)
}

func (b *builder) parseRoot() *ParseError {
	switch {
	case b.sepAt(0) && b.sepAt(1):
		if b.at(2, '?') || (b.at(2, '.') && (b.sepAt(3) || len(b.in) == 3)) {
			if !b.style.Has(AllowLongPath) {
				return b.fail(InvalidLongPathPrefix, 0, 3)
			}
			return b.parseLongPath()
		}
		if !b.style.Has(AllowUNC) {
			b.parseRootSeparator()
			return nil
		}
		return b.parseHost(2, false)
	case b.sepAt(0):
		b.parseRootSeparator()
		return nil
	}
	return b.parseDriveOrScheme()
}

// parseLongPath resolves `\\?\C:\` and `\\?\UNC\host\share\` into the plain
// drive and UNC forms.
func (b *builder) parseLongPath() *ParseError {
	if !b.sepAt(3) {
		return b.fail(InvalidLongPathPrefix, 0, 4)
	}
	switch {
	case b.letterAt(4) && b.at(5, ':'):
		if !b.style.Has(AllowDrive) {
			return b.fail(InvalidDriveLetter, 4, 6)
		}
		if len(b.in) > 6 && !b.sepAt(6) {
			return b.fail(InvalidLongPathPrefix, 0, 7)
		}
		b.driveOrHost = string([]byte{b.in[4].c, ':'})
		b.pos = 6
		b.parseRootSeparator()
		return nil
	case b.wordAt(4, "UNC") && b.sepAt(7):
		if !b.style.Has(AllowUNC) {
			return b.fail(InvalidLongPathPrefix, 0, 8)
		}
		return b.parseHost(8, true)
	}
	return b.fail(InvalidLongPathPrefix, 0, b.tokenEnd(4))
}

// parseHost reads `host[\share]` starting at char index at. strict rejects an
// empty host, as required after `\\?\UNC\`.
func (b *builder) parseHost(at int, strict bool) *ParseError {
	end := b.tokenEnd(at)
	if end == at {
		if strict {
			return b.fail(InvalidLongPathPrefix, 0, at)
		}
		b.pos = at
		b.parseRootSeparator()
		return nil
	}
	for i := at; i < end; i++ {
		if isInvalid(b.in[i].c) {
			return b.fail(InvalidCharacter, i, i+1)
		}
	}
	sep := b.style.sep()
	b.driveOrHost = sep + sep + b.text(at, end)
	b.pos = end
	if !b.sepAt(b.pos) {
		return nil
	}
	b.skipSeps()

	// The first real segment after the host is the share; dot segments
	// before it cannot climb above the host and are skipped.
	for b.pos < len(b.in) {
		start := b.pos
		end := b.tokenEnd(start)
		for i := start; i < end; i++ {
			if err := b.checkChar(i, start); err != nil {
				return err
			}
		}
		share, kind := trimSegment(b.text(start, end))
		b.pos = end
		b.skipSeps()
		if kind == segName || kind == segDots {
			b.root = sep + share + sep
			return nil
		}
	}
	b.root = sep
	return nil
}

func (b *builder) parseDriveOrScheme() *ParseError {
	k := -1
	for i := 0; i < len(b.in); i++ {
		c := b.in[i].c
		if isSep(c) || isInvalid(c) {
			break
		}
		if c == ':' {
			k = i
			break
		}
	}
	if k < 0 {
		return nil
	}
	switch {
	case k == 1 && isLetter(b.in[0].c):
		if !b.style.Has(AllowDrive) {
			return b.fail(InvalidDriveLetter, 0, 2)
		}
		b.driveOrHost = string([]byte{b.in[0].c, ':'})
		b.pos = 2
		if b.sepAt(b.pos) {
			b.parseRootSeparator()
		}
		return nil
	case k > 1 && b.style.Has(AllowURI) && strings.EqualFold(b.text(0, k), "file"):
		b.pos = k + 1
		return b.parseURI()
	}
	return b.fail(InvalidDriveLetter, 0, k+1)
}

// parseURI handles what follows "file:". Two separators introduce an
// authority; any other count is a local path. A drive letter in the authority
// position, as in "file://c|/x", is a local path too.
func (b *builder) parseURI() *ParseError {
	n := 0
	for b.sepAt(b.pos + n) {
		n++
	}
	if n == 2 {
		start := b.pos + 2
		if b.driveAt(start) {
			b.pos = start
			return b.parseURILocal(false)
		}
		end := b.tokenEnd(start)
		if !strings.EqualFold(b.text(start, end), "localhost") {
			return b.parseHost(start, false)
		}
		b.pos = end
		return b.parseURILocal(false)
	}
	b.pos += n
	return b.parseURILocal(n > 0)
}

func (b *builder) parseURILocal(rooted bool) *ParseError {
	for b.sepAt(b.pos) {
		rooted = true
		b.pos++
	}
	i := b.pos
	if b.driveAt(i) {
		if !b.style.Has(AllowDrive) {
			return b.fail(InvalidDriveLetter, i, i+2)
		}
		b.driveOrHost = string([]byte{b.in[i].c, ':'})
		b.pos = i + 2
		b.parseRootSeparator()
		return nil
	}
	if rooted {
		b.root = b.style.sep()
	}
	return nil
}

// driveAt reports whether a URI drive such as "c:" or "c|" starts at i and
// fills the whole token.
func (b *builder) driveAt(i int) bool {
	return b.letterAt(i) && (b.at(i+1, ':') || b.at(i+1, '|')) && (i+2 == len(b.in) || b.sepAt(i+2))
}

func (b *builder) parseRootSeparator() {
	b.root = b.style.sep()
	b.skipSeps()
}

func (b *builder) parseSegments() *ParseError {
	if err := b.checkSegments(); err != nil {
		return err
	}
	b.collectSegments()
	return nil
}

// checkSegments rejects invalid characters between pos and the end of input.
func (b *builder) checkSegments() *ParseError {
	segStart := b.pos
	for i := b.pos; i < len(b.in); i++ {
		if isSep(b.in[i].c) {
			segStart = i + 1
			continue
		}
		if err := b.checkChar(i, segStart); err != nil {
			return err
		}
	}
	return nil
}

// collectSegments resolves the remaining input into prefix, name and
// extension. The input must already be valid.
func (b *builder) collectSegments() {
	var seg []byte
	for i := b.pos; i < len(b.in); i++ {
		c := b.in[i].c
		if isSep(c) {
			if len(seg) > 0 {
				b.push(string(seg))
				seg = seg[:0]
			}
			continue
		}
		seg = append(seg, c)
	}
	b.pos = len(b.in)

	if len(seg) > 0 {
		last, kind := trimSegment(string(seg))
		if kind == segName || kind == segDots {
			b.name, b.ext = splitExt(last)
			return
		}
		b.push(string(seg))
	}
	b.finishDirectory()
}

// push resolves one segment against the pending ones.
func (b *builder) push(raw string) {
	seg, kind := trimSegment(raw)
	switch kind {
	case segEmpty, segCurrent:
		return
	case segParent:
		switch {
		case len(b.marks) > b.escapes:
			top := b.marks[len(b.marks)-1]
			b.marks = b.marks[:len(b.marks)-1]
			b.buf = b.buf[:top]
		case b.root != "":
			// ".." at the root stays at the root.
		default:
			b.marks = append(b.marks, len(b.buf))
			b.escapes++
			b.buf = append(b.buf, '.', '.', b.style.Separator)
		}
		return
	}
	b.marks = append(b.marks, len(b.buf))
	b.buf = append(b.buf, seg...)
	b.buf = append(b.buf, b.style.Separator)
}

// finishDirectory marks the result as a directory and moves the last real
// segment out of the prefix into the name.
func (b *builder) finishDirectory() {
	b.dir = true
	if len(b.marks) == b.escapes {
		return
	}
	top := b.marks[len(b.marks)-1]
	last := string(b.buf[top : len(b.buf)-1])
	b.marks = b.marks[:len(b.marks)-1]
	b.buf = b.buf[:top]
	b.name, b.ext = splitExt(last)
}

func (b *builder) checkChar(i, segStart int) *ParseError {
	c := b.in[i].c
	if isInvalid(c) {
		return b.fail(InvalidCharacter, i, i+1)
	}
	if c == ':' {
		return b.fail(InvalidDriveLetter, segStart, i+1)
	}
	return nil
}

// fail reports the chars [from, to) as the offending span.
func (b *builder) fail(kind ErrorKind, from, to int) *ParseError {
	start := b.offset(from)
	return &ParseError{Value: b.src, Kind: kind, Start: start, Length: b.offset(to) - start}
}

// offset maps a char index to a byte offset in the original string.
func (b *builder) offset(i int) int {
	if i < len(b.in) {
		return b.in[i].off
	}
	if len(b.in) == 0 {
		return 0
	}
	last := b.in[len(b.in)-1]
	return last.off + last.n
}

func (b *builder) at(i int, c byte) bool {
	return i < len(b.in) && b.in[i].c == c
}

func (b *builder) sepAt(i int) bool {
	return i < len(b.in) && isSep(b.in[i].c)
}

func (b *builder) letterAt(i int) bool {
	return i < len(b.in) && isLetter(b.in[i].c)
}

func (b *builder) wordAt(i int, w string) bool {
	if i+len(w) > len(b.in) {
		return false
	}
	for j := 0; j < len(w); j++ {
		if upper(b.in[i+j].c) != w[j] {
			return false
		}
	}
	return true
}

func (b *builder) skipSeps() {
	for b.sepAt(b.pos) {
		b.pos++
	}
}

// tokenEnd returns the index of the first separator at or after i.
func (b *builder) tokenEnd(i int) int {
	for i < len(b.in) && !isSep(b.in[i].c) {
		i++
	}
	return i
}

func (b *builder) text(from, to int) string {
	buf := make([]byte, 0, to-from)
	for i := from; i < to && i < len(b.in); i++ {
		buf = append(buf, b.in[i].c)
	}
	return string(buf)
}

// trimSegment strips trailing dots and spaces from a segment and classifies it.
// Segments made only of dots are never trimmed that way: "." and ".." are
// navigation, longer runs are kept whole so they render and parse back the
// same. Name reports such a run one dot shorter.
func trimSegment(raw string) (string, segKind) {
	s := strings.TrimRightFunc(raw, unicode.IsSpace)
	if s == "" {
		if raw == "" {
			return "", segEmpty
		}
		return "", segCurrent
	}
	if allDots(s) {
		switch len(s) {
		case 1:
			return ".", segCurrent
		case 2:
			return "..", segParent
		}
		return s, segDots
	}
	s = strings.TrimRightFunc(s, func(r rune) bool { return r == '.' || unicode.IsSpace(r) })
	if s == "" {
		return "", segCurrent
	}
	return s, segName
}

// splitExt cuts a segment at its last dot. Dot-only names have no extension.
func splitExt(seg string) (name, ext string) {
	if allDots(seg) {
		return seg, ""
	}
	i := strings.LastIndexByte(seg, '.')
	if i < 0 {
		return seg, ""
	}
	return seg[:i], seg[i:]
}

func allDots(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '.' {
			return false
		}
	}
	return s != ""
}

func isTrailingJunk(r rune) bool {
	return r < 0x20 || unicode.IsSpace(r)
}

func isInvalid(c byte) bool {
	return c < 0x20 || c == '"' || c == '<' || c == '>' || c == '|'
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
