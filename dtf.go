package dtf

import (
	"io"
	"log/slog"
)

// Config are any possible configuration parameters for running a comparison
type Config struct {
	// Provide a non-nil stats pointer & Compare will populate it with data from
	// the comparison
	Stats *Stats
	// Logger receives debug records about each checker run. defaults to
	// discarding output
	Logger *slog.Logger
}

// Option is a function that adjusts a config, zero or more Options can be
// passed to New
type Option func(cfg *Config)

// OptionSetStats will set the passed-in stats pointer when Compare is called
func OptionSetStats(st *Stats) Option {
	return func(cfg *Config) {
		cfg.Stats = st
	}
}

// OptionLogger sets the logger comparisons report to
func OptionLogger(l *slog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

// Engine runs the checkers enabled by a WorkingContext & assembles their
// results. An Engine holds no per-comparison state and can be reused
type Engine struct {
	cfg *Config
}

// New creates an Engine
func New(opts ...Option) *Engine {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{cfg: cfg}
}

// Compare is a convenience for comparing two documents with a default Engine
func Compare(a, b *Node, wc *WorkingContext) *DiffCollection {
	return New().Compare(a, b, wc)
}

// Compare checks two documents for differences in every category wc enables,
// starting each checker at the root path "". Categories wc doesn't enable are
// absent from the result. Compare trusts wc is valid and never fails; identical
// inputs always produce an identical result
func (e *Engine) Compare(a, b *Node, wc *WorkingContext) *DiffCollection {
	dc := &DiffCollection{Checked: wc.Categories}
	log := e.cfg.Logger.With("a", wc.SideA, "b", wc.SideB)

	for _, cat := range wc.Categories.List() {
		var n int
		switch cat {
		case CatKey:
			dc.Keys = CheckKeys("", a, b, wc)
			n = len(dc.Keys)
		case CatType:
			dc.Types = CheckTypes("", a, b, wc)
			n = len(dc.Types)
		case CatValue:
			dc.Values = CheckValues("", a, b, wc)
			n = len(dc.Values)
		case CatArray:
			dc.Arrays = CheckArrays("", a, b, wc)
			n = len(dc.Arrays)
		}
		log.Debug("checked documents", "category", cat, "diffs", n)
	}

	if e.cfg.Stats != nil {
		e.cfg.Stats.calc(a, b, dc)
	}
	return dc
}
