package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/qri-io/dtf"
)

func writeConfig(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	wc, err := cfg.WorkingContext("a.json", "b.json")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(dtf.AllCategories, wc.Categories.List()); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
	if wc.ArraySameOrder || wc.ArrayMatching != dtf.MatchMultiset {
		t.Errorf("unexpected array defaults: %+v", wc)
	}
	if lvl, _ := cfg.LogLevel(); lvl != slog.LevelWarn {
		t.Errorf("expected warn log level, got %s", lvl)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[diff]
categories = ["value", "array"]
array_same_order = true
array_matching = "membership"

[output]
color = "off"
log_level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	wc, err := cfg.WorkingContext("a.yaml", "b.yaml")
	if err != nil {
		t.Fatal(err)
	}
	expect := &dtf.WorkingContext{
		SideA:          "a.yaml",
		SideB:          "b.yaml",
		ArraySameOrder: true,
		ArrayMatching:  dtf.MatchMembership,
		Categories:     dtf.NewCategories(dtf.CatValue, dtf.CatArray),
	}
	if diff := cmp.Diff(expect, wc); diff != "" {
		t.Errorf("context mismatch (-want +got):\n%s", diff)
	}
	if cfg.UseColor(true) {
		t.Error("colour is off")
	}
	if lvl, _ := cfg.LogLevel(); lvl != slog.LevelDebug {
		t.Errorf("expected debug log level, got %s", lvl)
	}
	if cfg.Output.PrinterFriendly {
		t.Error("printer friendly should keep its default")
	}
}

func TestLoadPartial(t *testing.T) {
	cfg, err := Load(writeConfig(t, t.TempDir(), "[output]\nprinter_friendly = true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Output.PrinterFriendly {
		t.Error("expected printer friendly output")
	}
	if diff := cmp.Diff(Default().Diff, cfg.Diff); diff != "" {
		t.Errorf("unset settings should keep defaults (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		description string
		data        string
		is          error
	}{
		{"no categories", "[diff]\ncategories = []\n", ErrNoCategories},
		{"unknown category", "[diff]\ncategories = [\"keys\"]\n", nil},
		{"unknown matching", "[diff]\narray_matching = \"fuzzy\"\n", nil},
		{"unknown color", "[output]\ncolor = \"sometimes\"\n", nil},
		{"unknown log level", "[output]\nlog_level = \"loud\"\n", nil},
		{"unknown setting", "[diff]\nignore_case = true\n", nil},
		{"malformed", "[diff\n", nil},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), c.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if c.is != nil && !errors.Is(err, c.is) {
				t.Errorf("expected %v, got %v", c.is, err)
			}
		})
	}
}

func TestUseColor(t *testing.T) {
	cases := []struct {
		mode     string
		terminal bool
		expect   bool
	}{
		{ColorAuto, true, true},
		{ColorAuto, false, false},
		{ColorOn, false, true},
		{ColorOff, true, false},
	}
	for _, c := range cases {
		cfg := Default()
		cfg.Output.Color = c.mode
		if got := cfg.UseColor(c.terminal); got != c.expect {
			t.Errorf("%s (terminal: %t): want %t, got %t", c.mode, c.terminal, c.expect, got)
		}
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	expect := writeConfig(t, root, "")
	got, ok, err := Find(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || got != expect {
		t.Errorf("want %s, got %s (found: %t)", expect, got, ok)
	}
}
