package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// version is reported by --version
const version = "0.1.0"

var opts = &options{}

var rootCmd = &cobra.Command{
	Use:   "dtf [flags] <fileA> <fileB>",
	Short: "Structural diff for JSON & YAML documents",
	Long: `dtf compares two JSON or YAML documents structurally and reports keys
present on only one side, type mismatches, differing values and differing
array contents. Results can be rendered as terminal tables, written to an
HTML report, or saved and rendered again later with -r.`,
	Args:    cobra.MaximumNArgs(2),
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return runDiff(cmd.Context(), opts, args, cmd.OutOrStdout(), cmd.ErrOrStderr(), isTerminal(os.Stdout))
	},
}

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&opts.keys, "keys", "k", false, "check for key differences")
	f.BoolVarP(&opts.types, "types", "t", false, "check for type differences")
	f.BoolVarP(&opts.values, "values", "v", false, "check for value differences")
	f.BoolVarP(&opts.arrays, "arrays", "a", false, "check for array differences")
	f.BoolVarP(&opts.sameOrder, "array-same-order", "o", false, "compare arrays index by index when lengths match")
	f.BoolVar(&opts.membership, "membership", false, "match array elements by membership, ignoring duplicates")
	f.StringVarP(&opts.write, "write", "w", "", "save the result to a file instead of rendering it (.json, .msgpack)")
	f.StringVarP(&opts.read, "read", "r", "", "render a result saved with -w")
	f.StringVarP(&opts.browser, "html", "b", "", "write an HTML report to a file")
	f.BoolVarP(&opts.printerFriendly, "printer-friendly", "p", false, "use a light theme for the HTML report")
	f.StringVar(&opts.configPath, "config", "", "config file (default: nearest "+configFileName+")")
	f.StringVar(&opts.color, "color", "", "colorize output (auto|on|off)")
	f.StringVar(&opts.logLevel, "log-level", "", "log level (debug|info|warn|error)")
}

// main registers flags & executes the root command. any error is logged and
// the process exits with status code 1
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		newLogger(os.Stderr, defaultLogLevel).Error(err.Error())
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
