package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/payquery/payquery/internal/config"
	"github.com/payquery/payquery/internal/debug"
	"github.com/payquery/payquery/internal/telemetry"
)

var (
	jsonOutput  bool
	yamlOutput  bool
	quietFlag   bool
	verboseFlag bool
	noPager     bool
	dryRun      bool

	rootCtx    context.Context
	rootCancel context.CancelFunc
)

var rootCmd = &cobra.Command{
	Use:   "pq [flags] <query...>",
	Short: "pq - query the Payabli API from the command line",
	Long: `Compile a short query sentence into a Payabli query request.

  pq transactions where amount gt 100, status paid by customer.name desc
  pq only 20 batches for prod where created ge last month
  pq customers org by lastName crop

Flags must come before the query: everything after the first query word
is query text, so "-7d" and ">=" are never mistaken for flags.

Run 'pq syntax' for the full query grammar.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupSignalContext()
		debug.SetVerbose(verboseFlag)
		debug.SetQuiet(quietFlag)
		if err := config.Initialize(); err != nil {
			WarnError("%v", err)
		}
		applyViperOverrides(cmd)
		if err := telemetry.Init(rootCtx, "pq", Version); err != nil {
			debug.Logf("telemetry init failed: %v\n", err)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		args, err := splitQueryArgs(args)
		if err != nil {
			fail(err)
		}
		if err := runQuery(rootCtx, cmd.OutOrStdout(), args); err != nil {
			fail(err)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		telemetry.Shutdown(shutdownCtx)
		if rootCancel != nil {
			rootCancel()
		}
	},
}

// setupSignalContext derives the root context, cancelled on SIGINT or
// SIGTERM so an in-flight request stops promptly.
func setupSignalContext() {
	rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// applyViperOverrides fills flags that were not set on the command line
// from settings (file and PQ_* environment variables).
// Priority: flags > viper (settings file + env vars) > defaults.
func applyViperOverrides(cmd *cobra.Command) {
	if !cmd.Flags().Changed("no-pager") {
		noPager = config.GetBool("no-pager")
	}
	if !cmd.Flags().Changed("json") && !cmd.Flags().Changed("yaml") {
		yamlOutput = config.GetString("format") == "yaml"
	}
}

// outputFormat returns the record format, "json" or "yaml". An explicit
// --json wins over --yaml.
func outputFormat() string {
	if yamlOutput && !jsonOutput {
		return "yaml"
	}
	return "json"
}

// splitQueryArgs lets a whole query be passed as one quoted argument:
// a lone argument holding whitespace is split with shell rules.
func splitQueryArgs(args []string) ([]string, error) {
	if len(args) != 1 || !strings.ContainsAny(args[0], " \t\n") {
		return args, nil
	}
	words, err := shellquote.Split(args[0])
	if err != nil {
		return nil, err
	}
	debug.Logf("split query %q into %q\n", args[0], words)
	return words, nil
}

func init() {
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&yamlOutput, "yaml", false, "Output records in YAML format")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress the status line and other non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().BoolVar(&noPager, "no-pager", false, "Disable pager output")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the request URL instead of sending it")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		FatalError("%v", err)
	}
}
