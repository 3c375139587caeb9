// Package main provides the CLI entry point for pdftables.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"

	"github.com/ukaji3/pdftables-go/internal/common"
	"github.com/ukaji3/pdftables-go/pkg/pdftables"
	"github.com/ukaji3/pdftables-go/pkg/pdftables/output"
)

var (
	configFiles   []string
	outputPath    string
	logLevel      string
	previewRows   int
	strategy      string
	minRows       int
	minCols       int
	minConfidence float64
	showVersion   bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pdftables [input.pdf]",
		Short: "Extract tables from a PDF into a CSV file",
		Long: `pdftables detects the tables on every page of a PDF, drops empty rows
and columns, and writes all tables into one CSV file.`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	flags := rootCmd.Flags()
	flags.StringSliceVarP(&configFiles, "config", "c", nil, "Configuration file path (repeatable, later files override earlier ones)")
	flags.StringVarP(&outputPath, "output", "o", "", "Output CSV path (default: csv_file.csv next to the executable)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.IntVar(&previewRows, "preview", -1, "Rows to preview after a successful run (0 disables)")
	flags.StringVar(&strategy, "strategy", "", "Table detection strategy: auto, lines, text, geometric")
	flags.IntVar(&minRows, "min-rows", 0, "Minimum rows for a detected table")
	flags.IntVar(&minCols, "min-cols", 0, "Minimum columns for a detected table")
	flags.Float64Var(&minConfidence, "min-confidence", 0, "Minimum detection confidence (0-1)")
	flags.BoolVarP(&showVersion, "version", "v", false, "Print version information")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	if showVersion {
		fmt.Fprintf(cmd.OutOrStdout(), "pdftables version %s (%s)\n", common.GetVersion(), common.GetGitCommit())
		return nil
	}

	if len(configFiles) == 0 {
		if _, err := os.Stat("pdftables.toml"); err == nil {
			configFiles = append(configFiles, "pdftables.toml")
		}
	}

	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyFlagOverrides(cmd, config)

	params, err := config.DetectionParams()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := common.SetupLogger(config)
	common.PrintBanner()

	baseDir := common.ExecutableDir()
	inputPath := common.ResolvePath(baseDir, config.Paths.Input)
	if len(args) == 1 {
		inputPath = args[0]
	}
	outPath := common.ResolvePath(baseDir, config.Paths.Output)
	if outputPath != "" {
		outPath = outputPath
	}

	logger.Debug().
		Str("input", inputPath).
		Str("output", outPath).
		Str("strategy", config.Detection.Strategy).
		Int("min_rows", config.Detection.MinRows).
		Int("min_cols", config.Detection.MinCols).
		Msg("Starting extraction")

	opts := pdftables.DefaultOptions()
	opts.Detection = params
	opts.Logger = logger

	result, err := pdftables.Extract(inputPath, outPath, opts)
	report(cmd, logger, result, err, config.Output.PreviewRows)
	return nil
}

// applyFlagOverrides applies flags the user set explicitly (highest priority).
func applyFlagOverrides(cmd *cobra.Command, config *common.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		config.Logging.Level = logLevel
	}
	if flags.Changed("preview") {
		config.Output.PreviewRows = previewRows
	}
	if flags.Changed("strategy") {
		config.Detection.Strategy = strategy
	}
	if flags.Changed("min-rows") {
		config.Detection.MinRows = minRows
	}
	if flags.Changed("min-cols") {
		config.Detection.MinCols = minCols
	}
	if flags.Changed("min-confidence") {
		config.Detection.MinConfidence = minConfidence
	}
}

// report maps the extraction outcome to console messages. Anticipated
// failures are reported, not returned, so the process still exits cleanly.
func report(cmd *cobra.Command, logger arbor.ILogger, result *pdftables.Result, err error, preview int) {
	switch pdftables.Classify(err) {
	case pdftables.FailureNone:
	case pdftables.FailureInputNotFound:
		logger.Error().Err(err).Msg("PDF file not found")
		return
	default:
		logger.Error().Err(err).Msgf("An error occurred: %v", err)
		return
	}

	if !result.Written {
		return
	}

	logger.Info().
		Int("tables", result.Tables).
		Int("rows", result.Rows).
		Int("columns", result.Columns).
		Str("output", result.OutputPath).
		Msg("Extraction complete")

	if preview > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\nFirst few rows of the extracted data:")
		fmt.Fprint(cmd.OutOrStdout(), output.Preview(result.Frame, preview))
	}
}
