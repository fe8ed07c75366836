package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cartconsole/cmd/cartconsole/console"
	"cartconsole/internal/config"
	"cartconsole/internal/logging"
	"cartconsole/internal/shopcarts"
)

// Version is stamped by the release build.
var Version = "dev"

var (
	// Global flags
	verbose    bool
	baseURL    string
	configPath string
	timeout    time.Duration

	// Logger for the one-shot subcommands. The interactive console owns
	// the terminal and logs to files instead.
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cartconsole",
	Short: "Operator console for the shopcarts REST service",
	Long: `cartconsole is a terminal console for administering shopcart records
and their line items against a remote shopcarts REST service.

Run without arguments to start the interactive console: two panels
(shopcarts, items) with their own result tables and status areas.
The get, search, and items subcommands run single actions and print
the same tables to stdout.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive console has its own UI; skip the terminal logger.
		if cmd.Use == "cartconsole" && cmd.CalledAs() == "cartconsole" {
			return nil
		}
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsole()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cartconsole version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cartconsole %s\n", Version)
	},
}

// loadConfig resolves config and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.Service.BaseURL = baseURL
	}
	if timeout > 0 {
		cfg.Service.Timeout = timeout.String()
	}
	return cfg, nil
}

// runConsole launches the interactive console.
func runConsole() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logging.Initialize(config.StateDir(), logging.Settings{
		DebugMode:  cfg.Logging.DebugMode,
		Level:      cfg.Logging.Level,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		return err
	}
	defer logging.CloseAll()

	logging.Boot("cartconsole %s starting, service %s", Version, cfg.Service.BaseURL)

	client := shopcarts.NewClient(cfg.Service.BaseURL, cfg.RequestTimeout())
	program := tea.NewProgram(console.New(client, cfg.RequestTimeout()), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logging.BootError("console exited: %v", err)
		return fmt.Errorf("console error: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "", "Shopcarts service base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout (overrides config)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(itemsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
