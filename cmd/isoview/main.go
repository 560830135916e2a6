package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/isoview/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type globalFlags struct {
	config  string
	verbose bool
	json    bool
	noColor bool
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and reports a failure on stderr. It returns the
// process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	flags := &globalFlags{}
	cmd := newRootCmd(flags, stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		errors.Printer{
			Out:   stderr,
			Color: !flags.noColor && !flags.json && os.Getenv("NO_COLOR") == "",
			JSON:  flags.json,
		}.Print(err)
		return 1
	}
	return 0
}

func newRootCmd(flags *globalFlags, stdout, stderr io.Writer) *cobra.Command {

	rootCmd := &cobra.Command{
		Use:   "isoview",
		Short: "Server-side rendering for hierarchical state trees",
		Long: `isoview renders a nested state tree to HTML on the server.

States are declared in a YAML manifest and configured by isoview.json.
Every state renders into its parent's placeholder, resolved data is
embedded as a data island and stylesheets are collected in order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if flags.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Path to isoview.json (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flags.json, "json", false, "Report errors as JSON lines on stderr")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored error output")

	rootCmd.AddCommand(
		initCmd(),
		renderCmd(flags),
		serveCmd(flags),
		exportCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
