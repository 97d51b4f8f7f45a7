package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/kr/pretty"
	"golang.org/x/term"
)

type printer interface {
	Emit(any)
	Error(string)
}

// table is implemented by values with a tabular text form.
type table interface {
	header() []string
	rows() [][]string
}

// newPrinter returns a JSON printer when asJSON is set, otherwise a text
// printer that aligns columns when out is a terminal.
func newPrinter(out io.Writer, asJSON bool) printer {
	if asJSON {
		return newJSONPrinter(out)
	}
	return newTextPrinter(out, isTerminal(out))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var _ printer = (*jsonPrinter)(nil)

type jsonPrinter struct {
	out io.Writer
}

func newJSONPrinter(out io.Writer) *jsonPrinter {
	return &jsonPrinter{out: out}
}

func (pp *jsonPrinter) Emit(v any) {
	pp.encode(v)
}

func (pp *jsonPrinter) Error(msg string) {
	type error struct {
		Error string `json:"error"`
	}
	pp.encode(error{Error: msg})
}

func (pp *jsonPrinter) encode(v any) {
	out, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	out = append(out, '\n')
	if _, err := pp.out.Write(out); err != nil {
		panic(err)
	}
}

var _ printer = (*textPrinter)(nil)

type textPrinter struct {
	out io.Writer
	// aligned pads columns and prints headers; otherwise rows are
	// tab-separated for scripts.
	aligned bool
}

func newTextPrinter(out io.Writer, aligned bool) *textPrinter {
	return &textPrinter{out: out, aligned: aligned}
}

func (pp *textPrinter) Emit(v any) {
	switch v := v.(type) {
	case table:
		pp.table(v)
	case string:
		pp.print(v)
	case fmt.Stringer:
		pp.print(v.String())
	default:
		pp.print(pretty.Sprint(v))
	}
}

func (pp *textPrinter) Error(msg string) {
	pp.print(color.RedString("error: %v", msg))
}

func (pp *textPrinter) table(t table) {
	if !pp.aligned {
		for _, row := range t.rows() {
			pp.print(strings.Join(row, "\t"))
		}
		return
	}
	tw := tabwriter.NewWriter(pp.out, 0, 0, 2, ' ', 0)
	if h := t.header(); len(h) > 0 {
		fmt.Fprintln(tw, strings.Join(h, "\t"))
	}
	for _, row := range t.rows() {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		panic(err)
	}
}

func (pp *textPrinter) print(v string) {
	if len(v) == 0 {
		return
	}
	if _, err := pp.out.Write([]byte(v)); err != nil {
		panic(err)
	}
	if v[len(v)-1] != '\n' {
		if _, err := pp.out.Write([]byte{'\n'}); err != nil {
			panic(err)
		}
	}
}
