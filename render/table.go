package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/qri-io/dtf"
	"github.com/qri-io/dtf/parse"
)

const (
	keyTitle   = "Key Differences"
	typeTitle  = "Type Differences"
	valueTitle = "Value Differences"
	arrayTitle = "Array Differences"

	checkmark = "✓"
	multiply  = "×"

	maxColumnWidth = 80
)

var cellStyle = lipgloss.NewStyle().Padding(0, 1).MaxWidth(maxColumnWidth + 2)

// painter colours cell text when colour is enabled
type painter struct {
	on bool
}

func (p painter) paint(s string, attr color.Attribute) string {
	if !p.on {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}

// newTable builds a bordered table. the title is centred above it
func newTable(title string, opts Options, headers ...string) (*table.Table, func(t *table.Table) string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })

	render := func(t *table.Table) string {
		body := t.Render()
		style := lipgloss.NewStyle().Width(lipgloss.Width(body)).Align(lipgloss.Center)
		if opts.Color {
			style = style.Bold(true)
		}
		return style.Render(title) + "\n" + body
	}
	return t, render
}

// KeyTable renders key differences, marking which side holds each key
func KeyTable(diffs []dtf.KeyDiff, wc *dtf.WorkingContext, opts Options) string {
	p := painter{opts.Color}
	t, render := newTable(keyTitle, opts, "Key", dtf.SideA.Label(wc), dtf.SideB.Label(wc))

	has := func(d dtf.KeyDiff, s dtf.Side) string {
		if d.PresentOn == s {
			return p.paint(checkmark, color.FgGreen)
		}
		return p.paint(multiply, color.FgRed)
	}
	for _, d := range diffs {
		t.Row(d.Path, has(d, dtf.SideA), has(d, dtf.SideB))
	}
	return render(t)
}

// TypeTable renders type differences, one row per path
func TypeTable(diffs []dtf.TypeDiff, wc *dtf.WorkingContext, opts Options) string {
	t, render := newTable(typeTitle, opts, "Key", dtf.SideA.Label(wc), dtf.SideB.Label(wc))
	for _, d := range diffs {
		t.Row(d.Path, d.TypeA.String(), d.TypeB.String())
	}
	return render(t)
}

// ValueTable renders value differences with prettified values
func ValueTable(diffs []dtf.ValueDiff, wc *dtf.WorkingContext, opts Options) string {
	p := painter{opts.Color}
	f := formatOf(wc)
	t, render := newTable(valueTitle, opts, "Key", dtf.SideA.Label(wc), dtf.SideB.Label(wc))
	for _, d := range diffs {
		t.Row(d.Path,
			p.paint(Prettify(d.ValueA, f), color.FgRed),
			p.paint(Prettify(d.ValueB, f), color.FgGreen))
	}
	return render(t)
}

// ArrayTable renders array differences grouped by path, listing the elements
// only one side contains. AMisses & BMisses records restate the Has records
// and aren't shown
func ArrayTable(diffs []dtf.ArrayDiff, wc *dtf.WorkingContext, opts Options) string {
	p := painter{opts.Color}
	f := formatOf(wc)
	t, render := newTable(arrayTitle, opts,
		"Key",
		"Only "+dtf.SideA.Label(wc)+" contains",
		"Only "+dtf.SideB.Label(wc)+" contains")

	paths, groups := GroupArrayValues(diffs, f)
	for _, path := range paths {
		g := groups[path]
		t.Row(path,
			p.paint(joinValues(g.A, f), color.FgRed),
			p.paint(joinValues(g.B, f), color.FgGreen))
	}
	return render(t)
}

// ArrayValues holds the prettified elements each side alone contains at one
// array path
type ArrayValues struct {
	A []string
	B []string
}

// GroupArrayValues groups the AHas & BHas records of diffs by path, in order
// of first appearance, prettifying each element
func GroupArrayValues(diffs []dtf.ArrayDiff, f parse.Format) (paths []string, groups map[string]*ArrayValues) {
	paths, grouped := dtf.GroupArrayDiffs(diffs)
	groups = make(map[string]*ArrayValues, len(paths))
	for _, path := range paths {
		g := &ArrayValues{}
		for _, d := range grouped[path] {
			switch d.Desc {
			case dtf.AHas:
				g.A = append(g.A, Prettify(d.Value, f))
			case dtf.BHas:
				g.B = append(g.B, Prettify(d.Value, f))
			}
		}
		groups[path] = g
	}
	return paths, groups
}

func joinValues(values []string, f parse.Format) string {
	if f == parse.FormatYAML {
		return strings.Join(values, "\n")
	}
	return strings.Join(values, ",\n")
}
