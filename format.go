package dtf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// palette maps report elements to formatting funcs
type palette struct {
	header, insert, delete, update, neutral func(a ...interface{}) string
}

func newPalette(colorTTY bool) palette {
	if !colorTTY {
		plain := fmt.Sprint
		return palette{plain, plain, plain, plain, plain}
	}
	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		// the caller decided on colour, don't second guess based on stdout
		c.EnableColor()
		return c.SprintFunc()
	}
	return palette{
		header:  mk(color.Bold),
		insert:  mk(color.FgGreen),
		delete:  mk(color.FgRed),
		update:  mk(color.FgBlue),
		neutral: mk(color.FgWhite),
	}
}

// FormatPrettyString is a convenience wrapper that outputs to a string instead
// of an io.Writer
func FormatPrettyString(dc *DiffCollection, wc *WorkingContext, colorTTY bool) (string, error) {
	buf := &bytes.Buffer{}
	if err := FormatPretty(buf, dc, wc, colorTTY); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatPretty writes a text report to w, one section per checked category. if
// colorTTY is true it will add
// red "-" for things only side A has
// green "+" for things only side B has
// blue "~" for changes between sides
func FormatPretty(w io.Writer, dc *DiffCollection, wc *WorkingContext, colorTTY bool) error {
	p := newPalette(colorTTY)
	labelA, labelB := SideA.Label(wc), SideB.Label(wc)

	if diffs, ok := dc.KeyDiffs(); ok {
		if err := section(w, p, "keys", len(diffs)); err != nil {
			return err
		}
		for _, d := range diffs {
			sym, paint := "-", p.delete
			if d.PresentOn == SideB {
				sym, paint = "+", p.insert
			}
			if _, err := fmt.Fprintf(w, "  %s %s: only in %s\n", paint(sym), d.Path, d.PresentOn.Label(wc)); err != nil {
				return err
			}
		}
	}

	if diffs, ok := dc.TypeDiffs(); ok {
		if err := section(w, p, "types", len(diffs)); err != nil {
			return err
		}
		for _, d := range diffs {
			if _, err := fmt.Fprintf(w, "  %s %s: %s (%s) -> %s (%s)\n", p.update("~"), d.Path, d.TypeA, labelA, d.TypeB, labelB); err != nil {
				return err
			}
		}
	}

	if diffs, ok := dc.ValueDiffs(); ok {
		if err := section(w, p, "values", len(diffs)); err != nil {
			return err
		}
		for _, d := range diffs {
			if _, err := fmt.Fprintf(w, "  %s %s: %s -> %s\n", p.update("~"), d.Path, p.delete(d.ValueA), p.insert(d.ValueB)); err != nil {
				return err
			}
		}
	}

	if diffs, ok := dc.ArrayDiffs(); ok {
		if err := section(w, p, "arrays", len(diffs)); err != nil {
			return err
		}
		paths, groups := GroupArrayDiffs(diffs)
		for _, path := range paths {
			if _, err := fmt.Fprintf(w, "  %s:\n", path); err != nil {
				return err
			}
			// AMisses & BMisses mirror the Has tags, listing them again adds nothing
			for _, d := range groups[path] {
				var line string
				switch d.Desc {
				case AHas:
					line = fmt.Sprintf("    %s %s (only in %s)\n", p.delete("-"), d.Value, labelA)
				case BHas:
					line = fmt.Sprintf("    %s %s (only in %s)\n", p.insert("+"), d.Value, labelB)
				default:
					continue
				}
				if _, err := io.WriteString(w, line); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func section(w io.Writer, p palette, name string, n int) error {
	_, err := fmt.Fprintf(w, "%s %s\n", p.header(name+":"), p.neutral(fmt.Sprintf("(%d)", n)))
	return err
}

// FormatPrettyStats prints a string of stats info
func FormatPrettyStats(st *Stats) string {
	return formatStats(st, false)
}

// FormatPrettyStatsColor prints a string of stats info with ANSI colors
func FormatPrettyStatsColor(st *Stats) string {
	return formatStats(st, true)
}

func formatStats(st *Stats, colorTTY bool) string {
	if st == nil {
		return ""
	}
	p := newPalette(colorTTY)
	buf := &bytes.Buffer{}

	paint := p.insert
	sign := "+"
	change := st.NodeChange()
	if change < 0 {
		paint = p.delete
		sign = ""
	} else if change == 0 {
		paint = p.neutral
		sign = ""
	}
	fmt.Fprintf(buf, "%s %s.", paint(fmt.Sprintf("%s%d", sign, change)), p.neutral(plural(change, "element", "elements")))

	fmt.Fprintf(buf, " %s", p.delete(fmt.Sprintf("%d %s.", st.Keys, plural(st.Keys, "key", "keys"))))
	fmt.Fprintf(buf, " %s", p.update(fmt.Sprintf("%d %s.", st.Types, plural(st.Types, "type", "types"))))
	fmt.Fprintf(buf, " %s", p.update(fmt.Sprintf("%d %s.", st.Values, plural(st.Values, "value", "values"))))
	if st.Arrays > 0 {
		fmt.Fprintf(buf, " %s", p.insert(fmt.Sprintf("%d %s.", st.Arrays, plural(st.Arrays, "array element", "array elements"))))
	}
	buf.WriteRune('\n')
	return buf.String()
}

func plural(n int, one, many string) string {
	if n == 1 || n == -1 {
		return one
	}
	return many
}
