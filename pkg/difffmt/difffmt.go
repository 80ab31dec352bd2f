// Package difffmt renders comparison outcomes: a cycle-safe pretty-printer
// for values and the human-readable mismatch report, including the
// positional list diff.
package difffmt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/speakeasy-api/structdiff"
)

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
)

// Config controls report rendering. The zero Config is usable.
type Config struct {
	// Color enables ANSI coloring of diverging lines.
	Color bool
	// MaxValueWidth truncates rendered values to the given display width.
	// Zero means the default of 100 columns.
	MaxValueWidth int
	// Opts are the comparison options the mismatch was produced under, so
	// the positional diff re-compares elements the same way (margins in
	// particular).
	Opts structdiff.Options
}

func (c Config) maxWidth() int {
	if c.MaxValueWidth > 0 {
		return c.MaxValueWidth
	}
	return 100
}

func (c Config) red(s string) string {
	if !c.Color {
		return s
	}
	return colorRed + s + colorReset
}

func (c Config) green(s string) string {
	if !c.Color {
		return s
	}
	return colorGreen + s + colorReset
}

// Pretty renders a value deterministically. Nested composites render inline;
// function and opaque-handle values render as stable type-tag placeholders,
// never raw addresses, so output is identical across runs. A container the
// renderer is already inside renders as a numbered cycle marker.
func Pretty(v structdiff.Value) string {
	p := &printer{inProgress: make(map[*structdiff.Composite]int)}
	var b strings.Builder
	p.print(&b, v)
	return b.String()
}

type printer struct {
	inProgress map[*structdiff.Composite]int
	nextID     int
}

func (p *printer) print(b *strings.Builder, v structdiff.Value) {
	switch v.Kind() {
	case structdiff.KindNil:
		b.WriteString("nil")
	case structdiff.KindBool:
		t, _ := v.AsBool()
		b.WriteString(strconv.FormatBool(t))
	case structdiff.KindNumber:
		f, _ := v.AsNumber()
		b.WriteString(formatNumber(f))
	case structdiff.KindString:
		s, _ := v.AsString()
		b.WriteString(strconv.Quote(s))
	case structdiff.KindFunc:
		b.WriteString("<function>")
	case structdiff.KindOpaque:
		tag, _ := v.OpaqueTag()
		if tag == "" {
			tag = "opaque"
		}
		b.WriteString("<" + tag + ">")
	case structdiff.KindComposite:
		c, _ := v.AsComposite()
		p.printComposite(b, c)
	default:
		b.WriteString("<unknown>")
	}
}

func (p *printer) printComposite(b *strings.Builder, c *structdiff.Composite) {
	if id, ok := p.inProgress[c]; ok {
		fmt.Fprintf(b, "<cycle #%d>", id)
		return
	}
	p.nextID++
	p.inProgress[c] = p.nextID
	defer delete(p.inProgress, c)

	if _, isList := c.ListLen(); isList {
		b.WriteByte('[')
		for i, pr := range c.Pairs() {
			if i > 0 {
				b.WriteString(", ")
			}
			p.print(b, pr.Val)
		}
		b.WriteByte(']')
		return
	}

	b.WriteByte('{')
	for i, pr := range c.Pairs() {
		if i > 0 {
			b.WriteString(", ")
		}
		p.printKey(b, pr.Key)
		b.WriteString(": ")
		p.print(b, pr.Val)
	}
	b.WriteByte('}')
}

func (p *printer) printKey(b *strings.Builder, key Value) {
	if s, ok := key.AsString(); ok && isIdent(s) {
		b.WriteString(s)
		return
	}
	b.WriteByte('[')
	p.print(b, key)
	b.WriteByte(']')
}

// Value aliases the engine's value type for local signatures.
type Value = structdiff.Value

func formatNumber(f float64) string {
	switch structdiff.ClassifyNumber(f) {
	case structdiff.NumNaN:
		return "nan"
	case structdiff.NumPosInf:
		return "inf"
	case structdiff.NumNegInf:
		return "-inf"
	case structdiff.NumNegZero:
		return "-0"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// PathString renders a divergence path, for example `value.items[3]`.
func PathString(path []structdiff.Value) string {
	var b strings.Builder
	b.WriteString("value")
	for _, key := range path {
		if s, ok := key.AsString(); ok && isIdent(s) {
			b.WriteByte('.')
			b.WriteString(s)
			continue
		}
		b.WriteByte('[')
		b.WriteString(Pretty(key))
		b.WriteByte(']')
	}
	return b.String()
}

// Report explains a comparison outcome. For two list-shaped composites it
// renders the positional diff: sizes, first/last diverging index, `=` lines
// for the common prefix, `-`/`+` lines for each side's diverging middle and
// `=` lines for the common suffix. Anything else gets the generic report:
// both pretty-printed sub-values plus the divergence path. Output is
// deterministic, so repeated calls on the same mismatch render identically.
func Report(actual, expected structdiff.Value, res structdiff.Result, cfg ...Config) string {
	conf := Config{}
	if len(cfg) > 0 {
		conf = cfg[0]
	}
	if res.Equal {
		return "values match\n"
	}
	if d, ok := structdiff.AnalyzeLists(actual, expected, conf.Opts); ok {
		return renderListDiff(d, conf)
	}
	return renderGeneric(actual, expected, res, conf)
}

func renderListDiff(d *structdiff.ListDiff, conf Config) string {
	var b strings.Builder

	if d.SameLength {
		fmt.Fprintf(&b, "lists A and B both have %d entries\n", d.ActualLen)
	} else {
		fmt.Fprintf(&b, "list A has %d entries, list B has %d entries\n", d.ActualLen, d.ExpectedLen)
	}
	if d.SuffixLen > 0 {
		fmt.Fprintf(&b, "first diverging at index %d, re-converging at A[%d], B[%d]\n",
			d.FirstDiverging, d.ReconvergeActual(), d.ReconvergeExpected())
	} else {
		fmt.Fprintf(&b, "first diverging at index %d\n", d.FirstDiverging)
	}

	type line struct {
		label string
		val   string
		mark  byte
	}
	var lines []line
	section := func(title string) {
		lines = append(lines, line{label: title})
	}

	if len(d.Prefix) > 0 {
		section("common prefix:")
		for _, e := range d.Prefix {
			lines = append(lines, line{
				label: fmt.Sprintf("= A[%d], B[%d]:", e.Index, e.Index),
				val:   Pretty(e.Val),
				mark:  '=',
			})
		}
	}
	if len(d.ActualMid) > 0 || len(d.ExpectedMid) > 0 {
		section("diverging entries:")
		for _, e := range d.ActualMid {
			lines = append(lines, line{
				label: fmt.Sprintf("- A[%d]:", e.Index),
				val:   Pretty(e.Val),
				mark:  '-',
			})
		}
		for _, e := range d.ExpectedMid {
			lines = append(lines, line{
				label: fmt.Sprintf("+ B[%d]:", e.Index),
				val:   Pretty(e.Val),
				mark:  '+',
			})
		}
	}
	if len(d.Suffix) > 0 {
		section("common suffix:")
		for _, e := range d.Suffix {
			lines = append(lines, line{
				label: fmt.Sprintf("= A[%d], B[%d]:", e.AIndex, e.BIndex),
				val:   Pretty(e.Val),
				mark:  '=',
			})
		}
	}

	// Align the value column across all entry lines.
	labelWidth := 0
	for _, ln := range lines {
		if ln.mark == 0 {
			continue
		}
		if w := runewidth.StringWidth(ln.label); w > labelWidth {
			labelWidth = w
		}
	}
	for _, ln := range lines {
		if ln.mark == 0 {
			b.WriteString(ln.label)
			b.WriteByte('\n')
			continue
		}
		text := ln.label + strings.Repeat(" ", labelWidth-runewidth.StringWidth(ln.label)+1) +
			runewidth.Truncate(ln.val, conf.maxWidth(), "...")
		switch ln.mark {
		case '-':
			text = conf.red(text)
		case '+':
			text = conf.green(text)
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String()
}

func renderGeneric(actual, expected structdiff.Value, res structdiff.Result, conf Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "values differ at %s (%s)\n", PathString(res.Path), res.Reason)

	av, aok := valueAt(actual, res.Path)
	bv, bok := valueAt(expected, res.Path)
	b.WriteString(conf.red("actual:   "+renderOrAbsent(av, aok, conf)) + "\n")
	b.WriteString(conf.green("expected: "+renderOrAbsent(bv, bok, conf)) + "\n")
	return b.String()
}

func renderOrAbsent(v structdiff.Value, present bool, conf Config) string {
	if !present {
		return "<absent>"
	}
	return runewidth.Truncate(Pretty(v), conf.maxWidth(), "...")
}

// valueAt walks a divergence path down one side. A missing key (the key-set
// mismatch case) reports absence rather than faulting.
func valueAt(v structdiff.Value, path []structdiff.Value) (structdiff.Value, bool) {
	cur := v
	for _, key := range path {
		c, ok := cur.AsComposite()
		if !ok {
			return structdiff.Value{}, false
		}
		next, ok := c.Get(key)
		if !ok {
			return structdiff.Value{}, false
		}
		cur = next
	}
	return cur, true
}
