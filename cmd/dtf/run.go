package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/qri-io/dtf"
	"github.com/qri-io/dtf/config"
	"github.com/qri-io/dtf/parse"
	"github.com/qri-io/dtf/render"
	"github.com/qri-io/dtf/store"
	"golang.org/x/sync/errgroup"
)

const configFileName = config.FileName

// options holds command line flags
type options struct {
	keys, types, values, arrays bool

	sameOrder  bool
	membership bool

	write   string
	read    string
	browser string

	printerFriendly bool

	configPath string
	color      string
	logLevel   string
}

// categories lists the categories enabled by flags, nil if none were given
func (o *options) categories() []string {
	var cats []string
	for _, c := range []struct {
		on  bool
		cat dtf.Category
	}{
		{o.keys, dtf.CatKey},
		{o.types, dtf.CatType},
		{o.values, dtf.CatValue},
		{o.arrays, dtf.CatArray},
	} {
		if c.on {
			cats = append(cats, c.cat.String())
		}
	}
	return cats
}

// resolveConfig loads the config file, if any, and applies flag overrides
func resolveConfig(o *options) (*config.Config, error) {
	path := o.configPath
	if path == "" {
		found, ok, err := config.Find(".")
		if err != nil {
			return nil, err
		}
		if ok {
			path = found
		}
	}

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if cats := o.categories(); len(cats) > 0 {
		cfg.Diff.Categories = cats
	}
	if o.sameOrder {
		cfg.Diff.ArraySameOrder = true
	}
	if o.membership {
		cfg.Diff.ArrayMatching = dtf.MatchMembership.String()
	}
	if o.printerFriendly {
		cfg.Output.PrinterFriendly = true
	}
	if o.color != "" {
		cfg.Output.Color = o.color
	}
	if o.logLevel != "" {
		cfg.Output.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runDiff(ctx context.Context, o *options, args []string, stdout, stderr io.Writer, isTTY bool) error {
	switch {
	case o.read != "" && len(args) > 0:
		return errors.New("-r renders a saved result and takes no document arguments")
	case o.read != "" && o.write != "":
		return errors.New("-r and -w can't be combined")
	case o.read == "" && len(args) != 2:
		return fmt.Errorf("expected two documents to compare, got %d", len(args))
	}

	cfg, err := resolveConfig(o)
	if err != nil {
		return err
	}
	level, _ := cfg.LogLevel()
	log := newLogger(stderr, level)

	var (
		dc    *dtf.DiffCollection
		wc    *dtf.WorkingContext
		stats *dtf.Stats
	)
	if o.read != "" {
		saved, err := store.Load(o.read)
		if err != nil {
			return err
		}
		if wc, err = saved.WorkingContext(); err != nil {
			return err
		}
		dc = saved.Diffs
		log.Debug("loaded saved result", "path", o.read, "diffs", dc.Len())
	} else {
		if wc, err = cfg.WorkingContext(args[0], args[1]); err != nil {
			return err
		}
		a, b, err := loadDocuments(ctx, log, args[0], args[1])
		if err != nil {
			return err
		}
		stats = &dtf.Stats{}
		dc = dtf.New(dtf.OptionLogger(log), dtf.OptionSetStats(stats)).Compare(a, b, wc)
	}

	if o.write != "" {
		if err := store.Save(o.write, store.New(dc, wc)); err != nil {
			return err
		}
		log.Info("saved result", "path", o.write, "diffs", dc.Len())
		return nil
	}

	renderOpts := render.Options{
		Color:           cfg.UseColor(isTTY),
		PrinterFriendly: cfg.Output.PrinterFriendly,
	}
	if o.browser != "" {
		return writeHTML(o.browser, log, dc, wc, renderOpts)
	}

	if err := render.Tables(stdout, dc, wc, renderOpts); err != nil {
		return err
	}
	if stats != nil {
		if renderOpts.Color {
			_, err = io.WriteString(stdout, dtf.FormatPrettyStatsColor(stats))
		} else {
			_, err = io.WriteString(stdout, dtf.FormatPrettyStats(stats))
		}
	}
	return err
}

// loadDocuments parses both documents concurrently
func loadDocuments(ctx context.Context, log *slog.Logger, pathA, pathB string) (a, b *dtf.Node, err error) {
	if fa, fb := parse.FormatOf(pathA), parse.FormatOf(pathB); fa != fb {
		log.Warn("comparing documents of different formats", "a", fa, "b", fb)
	}

	g, ctx := errgroup.WithContext(ctx)
	docs := make([]*dtf.Node, 2)
	for i, path := range []string{pathA, pathB} {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, err := parse.File(path)
			if err != nil {
				return err
			}
			log.Debug("parsed document", "path", path, "nodes", n.Count())
			docs[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return docs[0], docs[1], nil
}

func writeHTML(path string, log *slog.Logger, dc *dtf.DiffCollection, wc *dtf.WorkingContext, opts render.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.HTML(f, dc, wc, opts); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info("wrote HTML report", "path", path)
	return nil
}
