package render

import (
	"html/template"
	"io"

	"github.com/qri-io/dtf"
	"github.com/sergi/go-diff/diffmatchpatch"
)

type htmlKeyRow struct {
	Path     string
	InA, InB bool
}

type htmlValueRow struct {
	Path   string
	A, B   string
	Change template.HTML
}

type htmlArrayRow struct {
	Path string
	A, B []string
}

type htmlReport struct {
	SideA, SideB    string
	PrinterFriendly bool

	ShowKeys, ShowTypes, ShowValues, ShowArrays bool

	Keys   []htmlKeyRow
	Types  []dtf.TypeDiff
	Values []htmlValueRow
	Arrays []htmlArrayRow
}

// HTML writes a standalone HTML report covering every category present in dc.
// Value differences carry a character level highlight of what changed
func HTML(w io.Writer, dc *dtf.DiffCollection, wc *dtf.WorkingContext, opts Options) error {
	f := formatOf(wc)
	r := htmlReport{
		SideA:           dtf.SideA.Label(wc),
		SideB:           dtf.SideB.Label(wc),
		PrinterFriendly: opts.PrinterFriendly,
	}

	if diffs, ok := dc.KeyDiffs(); ok {
		r.ShowKeys = true
		for _, d := range diffs {
			r.Keys = append(r.Keys, htmlKeyRow{Path: d.Path, InA: d.PresentOn == dtf.SideA, InB: d.PresentOn == dtf.SideB})
		}
	}
	if diffs, ok := dc.TypeDiffs(); ok {
		r.ShowTypes = true
		r.Types = diffs
	}
	if diffs, ok := dc.ValueDiffs(); ok {
		r.ShowValues = true
		dmp := diffmatchpatch.New()
		for _, d := range diffs {
			a, b := Prettify(d.ValueA, f), Prettify(d.ValueB, f)
			r.Values = append(r.Values, htmlValueRow{Path: d.Path, A: a, B: b, Change: charDiff(dmp, a, b)})
		}
	}
	if diffs, ok := dc.ArrayDiffs(); ok {
		r.ShowArrays = true
		paths, groups := GroupArrayValues(diffs, f)
		for _, path := range paths {
			r.Arrays = append(r.Arrays, htmlArrayRow{Path: path, A: groups[path].A, B: groups[path].B})
		}
	}

	return reportTmpl.Execute(w, r)
}

// charDiff highlights the characters that differ between a & b. diffmatchpatch
// escapes the text it emits
func charDiff(dmp *diffmatchpatch.DiffMatchPatch, a, b string) template.HTML {
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return template.HTML(dmp.DiffPrettyHtml(diffs))
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<title>Data Differences comparing {{.SideA}} and {{.SideB}}</title>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<style>
* { font-family: Arial, Helvetica, sans-serif; }
body { padding: 1em; font-size: 14px; {{if .PrinterFriendly}}background-color: #fff; color: #000;{{else}}background-color: #0a0b0b; color: #fff;{{end}} }
h2 { margin-top: 2em; }
.code, pre { font-family: "Lucida Console", "Courier New", monospace; }
.header { display: flex; flex-direction: row; justify-content: space-between; }
.header .lead p .code { font-weight: bold; padding: 0.2em; border-radius: 2px; background-color: rgba(100, 100, 100, 0.4); }
ul.table-of-contents { margin: 2em 0; padding: 1em; list-style-type: none; border-radius: 10px; background-color: rgba(100, 100, 100, 0.2); }
ul.table-of-contents a { color: inherit; }
.diff-table { width: 100%; margin-top: 2em; border-collapse: collapse; }
.diff-table th, .diff-table td { padding: 1.2em; text-align: left; vertical-align: top; }
.diff-table th { background-color: rgba(100, 100, 100, 0.3); }
.diff-table tr:nth-child(even) { background-color: rgba(100, 100, 100, 0.15); }
.has { color: {{if .PrinterFriendly}}#000{{else}}#3c3{{end}}; }
.missing { color: {{if .PrinterFriendly}}#000{{else}}#e33{{end}}; }
{{if .PrinterFriendly}}del, ins { color: #000; }{{end}}
</style>
</head>
<body>
<div class="header">
  <div class="lead">
    <h1>Data Differences</h1>
    <p>The following differences were found comparing <span class="code">{{.SideA}}</span> against <span class="code">{{.SideB}}</span></p>
  </div>
  <ul class="table-of-contents">
    <li><h2>Table of Contents</h2></li>
    {{- if .ShowKeys}}<li><a href="#key_diff">Key Differences</a></li>{{end}}
    {{- if .ShowTypes}}<li><a href="#type_diff">Type Differences</a></li>{{end}}
    {{- if .ShowValues}}<li><a href="#value_diff">Value Differences</a></li>{{end}}
    {{- if .ShowArrays}}<li><a href="#array_diff">Array Differences</a></li>{{end}}
  </ul>
</div>
{{- if .ShowKeys}}
<h2 id="key_diff">Key Differences</h2>
<table class="diff-table">
<tr><th>Key</th><th>{{.SideA}}</th><th>{{.SideB}}</th></tr>
{{- range .Keys}}
<tr><td class="code">{{.Path}}</td><td>{{template "mark" .InA}}</td><td>{{template "mark" .InB}}</td></tr>
{{- end}}
</table>
{{- end}}
{{- if .ShowTypes}}
<h2 id="type_diff">Type Differences</h2>
<table class="diff-table">
<tr><th>Key</th><th>{{.SideA}}</th><th>{{.SideB}}</th></tr>
{{- range .Types}}
<tr><td class="code">{{.Path}}</td><td>{{.TypeA}}</td><td>{{.TypeB}}</td></tr>
{{- end}}
</table>
{{- end}}
{{- if .ShowValues}}
<h2 id="value_diff">Value Differences</h2>
<table class="diff-table">
<tr><th>Key</th><th>{{.SideA}}</th><th>{{.SideB}}</th><th>Change</th></tr>
{{- range .Values}}
<tr><td class="code">{{.Path}}</td><td><pre>{{.A}}</pre></td><td><pre>{{.B}}</pre></td><td><pre>{{.Change}}</pre></td></tr>
{{- end}}
</table>
{{- end}}
{{- if .ShowArrays}}
<h2 id="array_diff">Array Differences</h2>
<table class="diff-table">
<tr><th>Key</th><th>Only {{.SideA}} contains</th><th>Only {{.SideB}} contains</th></tr>
{{- range .Arrays}}
<tr><td class="code">{{.Path}}</td><td>{{range .A}}<pre>{{.}}</pre>{{end}}</td><td>{{range .B}}<pre>{{.}}</pre>{{end}}</td></tr>
{{- end}}
</table>
{{- end}}
</body>
</html>
{{define "mark"}}{{if .}}<span class="has">&#x2713;</span>{{else}}<span class="missing">&#xd7;</span>{{end}}{{end}}`))
