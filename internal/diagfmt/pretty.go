package diagfmt

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"stellar/internal/diag"
	"stellar/internal/source"
)

type palette struct {
	sev    map[diag.Severity]*color.Color
	gutter *color.Color
	second *color.Color
	bold   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		gutter: color.New(color.FgBlue, color.Bold),
		second: color.New(color.FgBlue),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.sev[diag.SevError], p.sev[diag.SevWarning], p.sev[diag.SevInfo], p.gutter, p.second, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строки исходника с подчёркиванием меток (^ для основной, - для
// вторичных), затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	items := bag.Items()
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &items[i], fs, opts, pal)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "\n... %d more diagnostic(s) not shown\n", n)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sp := d.Span()
	start, _ := fs.Resolve(sp)
	sev := pal.sev[d.Severity]
	if sev == nil {
		sev = pal.bold
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(fs, sp.File, opts.PathMode), start.Line, start.Col,
		sev.Sprint(d.Severity.String()), d.Code.ID(), pal.bold.Sprint(d.Message))

	if opts.ShowPreview {
		labels := append([]diag.Label(nil), d.Labels...)
		sort.SliceStable(labels, func(i, j int) bool {
			if labels[i].Role != labels[j].Role {
				return labels[i].Role == diag.RolePrimary
			}
			return labels[i].Span.Start < labels[j].Span.Start
		})
		for _, l := range labels {
			writePreview(w, fs, l, opts, pal, sev)
		}
	}
	if opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  %s %s\n", pal.gutter.Sprint("="), note)
		}
	}
}

func writePreview(w io.Writer, fs *source.FileSet, l diag.Label, opts PrettyOpts, pal palette, sev *color.Color) {
	f, ok := fs.Lookup(l.Span.File)
	if !ok {
		return
	}
	start, end := fs.Resolve(l.Span)
	tab := strings.Repeat(" ", tabWidth(opts))

	first := uint32(1)
	if int(start.Line) > int(opts.Context) {
		first = start.Line - uint32(max(opts.Context, 0))
	}
	numWidth := len(strconv.FormatUint(uint64(start.Line), 10))
	for ln := first; ln <= start.Line; ln++ {
		text := strings.ReplaceAll(f.GetLine(ln), "\t", tab)
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "...")
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", numWidth, ln), text)
	}

	line := f.GetLine(start.Line)
	col := min(int(start.Col)-1, len(line))
	lead := runewidth.StringWidth(strings.ReplaceAll(line[:col], "\t", tab))

	// многострочная метка подчёркивается до конца первой строки
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(line))
	}
	width := 1
	if stop > col {
		width = max(runewidth.StringWidth(strings.ReplaceAll(line[col:stop], "\t", tab)), 1)
	}

	mark, c := "^", sev
	if l.Role == diag.RoleSecondary {
		mark, c = "-", pal.second
	}
	underline := strings.Repeat(" ", lead) + c.Sprint(strings.Repeat(mark, width))
	if l.Text != "" {
		underline += " " + c.Sprint(l.Text)
	}
	fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*s |", numWidth, ""), underline)
}

func tabWidth(opts PrettyOpts) int {
	if opts.TabWidth == 0 {
		return 4
	}
	return int(opts.TabWidth)
}

// Short prints one line per diagnostic: path:line:col: severity CODE: message.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	items := bag.Items()
	for i := range items {
		d := &items[i]
		sp := d.Span()
		start, _ := fs.Resolve(sp)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			formatPath(fs, sp.File, mode), start.Line, start.Col,
			d.Severity.Label(), d.Code.ID(), d.Message)
	}
}
