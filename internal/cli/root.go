package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nconklindev/tabscope/internal/analyzer"
	"github.com/nconklindev/tabscope/internal/config"
	"github.com/nconklindev/tabscope/internal/ui"
)

// BuildInfo is stamped into the binary at release time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app carries the resolved configuration into each command.
type app struct {
	configPath string
	maxRows    int
	workers    int
	logLevel   string

	cfg *config.Config
}

// load resolves the config file, environment and explicitly set flags, in
// that order of precedence, and wires the logger.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("max-rows") {
		cfg.MaxRows = a.maxRows
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	analyzer.SetLogger(logger)
	ui.SetLogger(logger)

	logger.Debug("Configuration loaded", "max_rows", cfg.MaxRows, "workers", cfg.Workers)
	return nil
}

// NewRootCmd builds the tabscope command tree.
func NewRootCmd(info BuildInfo) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tabscope",
		Short: "Count and inspect worksheets in spreadsheet files",
		Long: "tabscope counts the sheets of .xlsx, .xlsm and .xls workbooks, finds the header row of each sheet " +
			"and groups sheets that share the same column mapping.\n\nRun without a command to open the terminal UI.",
		Version:       fmt.Sprintf("%s\ncommit: %s\nbuilt: %s", info.Version, info.Commit, info.Date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(a, nil)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ~/.config/tabscope/config.yml)")
	pf.IntVar(&a.maxRows, "max-rows", 50, "rows searched for a header in each sheet")
	pf.IntVar(&a.workers, "workers", 4, "files read in parallel")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(
		newCountCmd(a),
		newSheetsCmd(a),
		newColumnsCmd(a),
		newCompareCmd(a),
		newTUICmd(a),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute(info BuildInfo) {
	if err := NewRootCmd(info).Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
