package fpath_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fpath-go/internal/fpath"
)

type parts struct {
	DriveOrHost string
	Root        string
	Prefix      string
	Name        string
	Ext         string
	Dir         bool
	String      string
}

func partsOf(p fpath.Path) parts {
	return parts{
		DriveOrHost: p.DriveOrHost(),
		Root:        p.RootFolder(),
		Prefix:      p.Prefix(),
		Name:        p.NameWithoutExtension(),
		Ext:         p.Extension(),
		Dir:         p.IsDirectory(),
		String:      p.String(),
	}
}

func TestParse_Windows(t *testing.T) {
	tests := []struct {
		in   string
		want parts
	}{
		{``, parts{Dir: true}},
		{`.`, parts{Dir: true}},
		{`a`, parts{Name: "a", String: `a`}},
		{`C:\a\b.txt`, parts{DriveOrHost: "C:", Root: `\`, Prefix: `a\`, Name: "b", Ext: ".txt", String: `C:\a\b.txt`}},
		{`c:/d/../..`, parts{DriveOrHost: "c:", Root: `\`, Dir: true, String: `c:\`}},
		{`d\..\..`, parts{Prefix: `..\`, Dir: true, String: `..`}},
		{`a/./b//c/`, parts{Prefix: `a\b\`, Name: "c", Dir: true, String: `a\b\c\`}},
		{`C:`, parts{DriveOrHost: "C:", Dir: true, String: `C:`}},
		{`C:a`, parts{DriveOrHost: "C:", Name: "a", String: `C:a`}},
		{`c:..\a`, parts{DriveOrHost: "c:", Prefix: `..\`, Name: "a", String: `c:..\a`}},
		{`\a\`, parts{Root: `\`, Name: "a", Dir: true, String: `\a\`}},
		{`\..\a`, parts{Root: `\`, Name: "a", String: `\a`}},
		{`\\server\share\dir\file.txt`, parts{DriveOrHost: `\\server`, Root: `\share\`, Prefix: `dir\`, Name: "file", Ext: ".txt", String: `\\server\share\dir\file.txt`}},
		{`\\host`, parts{DriveOrHost: `\\host`, Dir: true, String: `\\host`}},
		{`\\host\`, parts{DriveOrHost: `\\host`, Root: `\`, Dir: true, String: `\\host\`}},
		{`\\host\.\share\x`, parts{DriveOrHost: `\\host`, Root: `\share\`, Name: "x", String: `\\host\share\x`}},
		{`\\?\UNC\h\r\`, parts{DriveOrHost: `\\h`, Root: `\r\`, Dir: true, String: `\\h\r\`}},
		{`\\?\C:\x`, parts{DriveOrHost: "C:", Root: `\`, Name: "x", String: `C:\x`}},
		{`\\.\C:\x\`, parts{DriveOrHost: "C:", Root: `\`, Name: "x", Dir: true, String: `C:\x\`}},
		{`file:///C:/Users/a%20b/x.txt`, parts{DriveOrHost: "C:", Root: `\`, Prefix: `Users\a b\`, Name: "x", Ext: ".txt", String: `C:\Users\a b\x.txt`}},
		{`file://server/share/x`, parts{DriveOrHost: `\\server`, Root: `\share\`, Name: "x", String: `\\server\share\x`}},
		{`FILE://localhost/c|/x`, parts{DriveOrHost: "c:", Root: `\`, Name: "x", String: `c:\x`}},
		{`file://c|/x`, parts{DriveOrHost: "c:", Root: `\`, Name: "x", String: `c:\x`}},
		{`file://C:/x/`, parts{DriveOrHost: "C:", Root: `\`, Name: "x", Dir: true, String: `C:\x\`}},
		{`file:/etc/hosts`, parts{Root: `\`, Prefix: `etc\`, Name: "hosts", String: `\etc\hosts`}},
		{`file:notes.md`, parts{Name: "notes", Ext: ".md", String: `notes.md`}},
		{`a%2Fb`, parts{Prefix: `a\`, Name: "b", String: `a\b`}},
		{`a. `, parts{Name: "a", String: `a`}},
		{"a/b \n", parts{Prefix: `a\`, Name: "b", String: `a\b`}},
		{`..e`, parts{Name: ".", Ext: ".e", String: `..e`}},
		{`...e`, parts{Name: "..", Ext: ".e", String: `...e`}},
		{`...`, parts{Name: "..", String: `...`}},
		{`....`, parts{Name: "...", String: `....`}},
		{`a/...`, parts{Prefix: `a\`, Name: "..", String: `a\...`}},
		{`a/.../b`, parts{Prefix: `a\...\`, Name: "b", String: `a\...\b`}},
		{`.bashrc`, parts{Ext: ".bashrc", String: `.bashrc`}},
		{`a.tar.gz`, parts{Name: "a.tar", Ext: ".gz", String: `a.tar.gz`}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			p, err := fpath.Windows.Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, partsOf(p)); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParse_POSIX(t *testing.T) {
	tests := []struct {
		in   string
		want parts
	}{
		{`/usr/local/bin/`, parts{Root: "/", Prefix: "usr/local/", Name: "bin", Dir: true, String: "/usr/local/bin/"}},
		{`C:\Windows`, parts{DriveOrHost: "C:", Root: "/", Name: "Windows", String: "C:/Windows"}},
		{`//host/share/f`, parts{DriveOrHost: "//host", Root: "/share/", Name: "f", String: "//host/share/f"}},
		{`../x/..`, parts{Prefix: "../", Dir: true, String: ".."}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			p := fpath.POSIX.MustParse(tt.in)
			if diff := cmp.Diff(tt.want, partsOf(p)); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		style  fpath.Style
		in     string
		kind   fpath.ErrorKind
		start  int
		length int
		target error
	}{
		{"invalid character", fpath.Windows, "file>name", fpath.InvalidCharacter, 4, 1, fpath.ErrInvalidCharacter},
		{"invalid character after root", fpath.Windows, `C:\a|b`, fpath.InvalidCharacter, 4, 1, fpath.ErrInvalidCharacter},
		{"encoded invalid character", fpath.Windows, "a%3Cb", fpath.InvalidCharacter, 1, 3, fpath.ErrInvalidCharacter},
		{"long drive token", fpath.Windows, "ab:c", fpath.InvalidDriveLetter, 0, 3, fpath.ErrInvalidDriveLetter},
		{"digit drive", fpath.Windows, "1:", fpath.InvalidDriveLetter, 0, 2, fpath.ErrInvalidDriveLetter},
		{"colon inside segment", fpath.Windows, `a\b:c`, fpath.InvalidDriveLetter, 2, 2, fpath.ErrInvalidDriveLetter},
		{"unknown long prefix", fpath.Windows, `\\?\X`, fpath.InvalidLongPathPrefix, 0, 5, fpath.ErrInvalidLongPathPrefix},
		{"long UNC without host", fpath.Windows, `\\?\UNC\`, fpath.InvalidLongPathPrefix, 0, 8, fpath.ErrInvalidLongPathPrefix},
		{"drive disabled", fpath.POSIX.Without(fpath.AllowDrive), `C:\x`, fpath.InvalidDriveLetter, 0, 2, fpath.ErrInvalidDriveLetter},
		{"long path disabled", fpath.Windows.Without(fpath.AllowLongPath), `\\?\C:\`, fpath.InvalidLongPathPrefix, 0, 3, fpath.ErrInvalidLongPathPrefix},
		{"uri disabled", fpath.Windows.Without(fpath.AllowURI), "file:x", fpath.InvalidDriveLetter, 0, 5, fpath.ErrInvalidDriveLetter},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.style.Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.in)
			}
			var pe *fpath.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q) error = %T, want *fpath.ParseError", tt.in, err)
			}
			if pe.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", pe.Kind, tt.kind)
			}
			if pe.Start != tt.start || pe.Length != tt.length {
				t.Errorf("span = (%d, %d), want (%d, %d)", pe.Start, pe.Length, tt.start, tt.length)
			}
			if pe.Value != tt.in {
				t.Errorf("Value = %q, want %q", pe.Value, tt.in)
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.target)
			}
		})
	}
}

func TestParse_UNCDisabled(t *testing.T) {
	p := fpath.Windows.Without(fpath.AllowUNC).MustParse(`\\h\s`)
	want := parts{Root: `\`, Prefix: `h\`, Name: "s", String: `\h\s`}
	if diff := cmp.Diff(want, partsOf(p)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTryParse(t *testing.T) {
	t.Run("reports failure as data", func(t *testing.T) {
		_, pe, ok := fpath.Windows.TryParse("file>name")
		if ok {
			t.Fatal("TryParse() ok = true, want false")
		}
		if pe.Kind != fpath.InvalidCharacter {
			t.Errorf("Kind = %v, want %v", pe.Kind, fpath.InvalidCharacter)
		}
		if got := pe.ErrorValue(); got != ">" {
			t.Errorf("ErrorValue() = %q, want %q", got, ">")
		}
	})

	t.Run("succeeds with no error kind", func(t *testing.T) {
		p, pe, ok := fpath.Windows.TryParse(`C:\a`)
		if !ok {
			t.Fatalf("TryParse() ok = false, error %v", pe.Kind)
		}
		if pe.Kind != fpath.None {
			t.Errorf("Kind = %v, want %v", pe.Kind, fpath.None)
		}
		if p.String() != `C:\a` {
			t.Errorf("String() = %q, want %q", p.String(), `C:\a`)
		}
	})
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse() did not panic")
		}
	}()
	fpath.Windows.MustParse("a<b")
}

func TestParse_Idempotent(t *testing.T) {
	inputs := []string{
		`C:\a\b.txt`, `d\..\..`, `\\?\UNC\h\r\`, `file:///C:/x/y/`, `..\..\a`, `\\h\s\`, `C:`, `a.b.c`,
		`a/...`, `...`, `a/..../b/`,
	}
	for _, in := range inputs {
		p := fpath.Windows.MustParse(in)
		again := fpath.Windows.MustParse(p.String())
		if diff := cmp.Diff(partsOf(p), partsOf(again)); diff != "" {
			t.Errorf("reparse of %q mismatch (-first +second):\n%s", in, diff)
		}
	}
}

func TestStyleByName(t *testing.T) {
	tests := []struct {
		name    string
		want    fpath.Style
		wantErr bool
	}{
		{"windows", fpath.Windows, false},
		{"POSIX", fpath.POSIX, false},
		{"unix", fpath.POSIX, false},
		{"", fpath.HostStyle(), false},
		{"host", fpath.HostStyle(), false},
		{"amiga", fpath.Style{}, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := fpath.StyleByName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("StyleByName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("StyleByName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestStyle_Normalize(t *testing.T) {
	p := fpath.Style{Separator: 'x', Flags: fpath.DefaultFlags}.MustParse("a/b")
	want := "a" + string(fpath.HostStyle().Separator) + "b"
	if p.String() != want {
		t.Errorf("String() = %q, want %q", p.String(), want)
	}
}
