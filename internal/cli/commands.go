// Package cli wires the commands: the interactive client by default, plus a
// one-shot pipeline and config helpers.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"foliodesk/config"
	"foliodesk/internal/api"
	"foliodesk/internal/router"
	"foliodesk/internal/session"
	"foliodesk/internal/ui"
	"foliodesk/pkg/logger"
)

// Build metadata, overridable through -ldflags on release builds.
var (
	version = "1.0.0"
	commit  = "dev"
)

type rootFlags struct {
	configPath string
	apiURL     string
	verbose    bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "foliodesk",
		Short: "FolioDesk - portfolio insights client",
		Long: `FolioDesk is a terminal client for the portfolio insights API.
Upload brokerage transaction history, record a market sentiment note, pull
stock and news data, and request an AI-generated portfolio analysis.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: start the interactive client
			return runTUI(flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "Portfolio API base URL override")
	rootCmd.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "Log at debug level")

	rootCmd.AddCommand(newAnalyzeCmd(&flags))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(&flags))

	return rootCmd
}

func newManager(configPath string) (*config.Manager, error) {
	var opts []config.ManagerOption
	if configPath != "" {
		opts = append(opts, config.WithConfigPath(configPath))
	}
	return config.NewManager(opts...)
}

// setup loads the configuration, applies flag overrides, and opens the
// logger. Every command that talks to the API goes through it.
func setup(flags rootFlags) (*config.Manager, config.Config, *logger.Logger, error) {
	mgr, err := newManager(flags.configPath)
	if err != nil {
		return nil, config.Config{}, nil, fmt.Errorf("load configuration: %w", err)
	}

	cfg := mgr.Get()
	if flags.apiURL != "" {
		cfg.APIBaseURL = flags.apiURL
	}
	if flags.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, config.Config{}, nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, config.Config{}, nil, err
	}

	log, err := logger.New(cfg.LogLevel, "json", cfg.LogFile)
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	mgr.SetLogger(log)

	return mgr, cfg, log, nil
}

// runTUI wires the client together and hands the terminal to bubbletea. The
// logger writes to the log file only, keeping the alt screen clean.
func runTUI(flags rootFlags) error {
	mgr, cfg, log, err := setup(flags)
	if err != nil {
		return err
	}
	defer log.Sync()

	ui.SetAccent(cfg.Accent)
	client := api.NewClient(&cfg)
	store := session.NewStore()
	nav := router.New()

	model := ui.NewModel(cfg, client, api.NewPreviewClient(&cfg), store, nav, log)
	program := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := mgr.Watch(ctx, func(updated config.Config) {
		program.Send(ui.ConfigReloadedMsg{Config: updated})
	}); err != nil {
		log.Warn("config watch unavailable", logger.ErrorField(err))
	}

	log.Info("starting interactive client",
		logger.StringField("api_base_url", cfg.APIBaseURL),
		logger.StringField("config", mgr.Path()))

	_, err = program.Run()
	return err
}

// newAnalyzeCmd creates the one-shot analyze command
func newAnalyzeCmd(flags *rootFlags) *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the upload-to-analysis pipeline without the TUI",
		Long: `Walk the whole flow in one shot: upload a transaction CSV, record a
sentiment note, fetch stock data and news for the portfolio tickers, and
request recommendations. Inputs not given as flags are collected with prompts.
Example: foliodesk analyze --file transactions.csv --sentiment "bullish on tech"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(*flags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Transaction CSV to upload")
	cmd.Flags().StringVar(&opts.sentiment, "sentiment", "", "Market sentiment note")
	cmd.Flags().StringVar(&opts.tickers, "tickers", "", "Comma-separated tickers (defaults to the uploaded portfolio)")
	cmd.Flags().StringVar(&opts.output, "output", "", "Also write the markdown report to this file")

	return cmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("FolioDesk v%s (%s)\n", version, commit)
			fmt.Println("Terminal client for the portfolio insights API")
		},
	}
}

// newConfigCmd creates the config command group
func newConfigCmd(flags *rootFlags) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the active configuration as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newManager(flags.configPath)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(mgr.Get(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default config file if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newManager(flags.configPath)
			if err != nil {
				return err
			}
			fmt.Printf("⚙️  Config ready at %s\n", mgr.Path())
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newManager(flags.configPath)
			if err != nil {
				return err
			}
			fmt.Println(mgr.Path())
			return nil
		},
	})

	return configCmd
}
