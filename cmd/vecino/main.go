package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vecindario/cmd/vecino/ui"
	"vecindario/internal/api"
	"vecindario/internal/config"
	"vecindario/internal/logging"
	"vecindario/internal/session"
)

const version = "1.2.0"

var (
	// Global flags
	apiURL    string
	themeName string
	verbose   bool

	cfg    config.Config
	logger *zap.Logger
)

// rootCmd launches the interactive client. An optional positional path is
// treated as the initial location, so `vecino /negocios/7` deep-links into
// that business profile.
var rootCmd = &cobra.Command{
	Use:   "vecino [path]",
	Short: "vecino - directorio de negocios del barrio en la terminal",
	Long: `vecino is a terminal client for the Vecindario neighborhood marketplace.

Browse local businesses, check their products, register as a customer or a
business, and place orders that are handed off to WhatsApp.

Run without arguments to start at the home page; pass a path such as
/negocios/7 to open a business profile directly.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if apiURL != "" {
			cfg.APIBaseURL = apiURL
		}
		if themeName != "" {
			cfg.Theme = themeName
		}
		if verbose {
			cfg.Verbose = true
		}

		dir, err := config.Dir()
		if err != nil {
			return fmt.Errorf("failed to resolve config dir: %w", err)
		}
		logger = logging.New(logging.Options{
			LogFile: cfg.LogFile,
			Dir:     dir,
			Verbose: cfg.Verbose,
			// The TUI owns stdout; non-interactive subcommands print directly.
			Console: false,
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		initialPath := "/"
		if len(args) == 1 {
			initialPath = args[0]
		}
		return runInteractive(initialPath)
	},
}

// versionCmd prints the client version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vecino %s\n", version)
	},
}

// configCmd prints the effective configuration after file, .env and
// environment layering.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.File()
		if err != nil {
			return err
		}
		fmt.Printf("config file:  %s\n", path)
		fmt.Printf("api base url: %s\n", cfg.APIBaseURL)
		fmt.Printf("theme:        %s\n", cfg.Theme)
		fmt.Printf("timeout:      %ds\n", cfg.RequestTimeoutSeconds)
		fmt.Printf("verbose:      %v\n", cfg.Verbose)
		return nil
	},
}

func runInteractive(initialPath string) error {
	client := api.NewClientWithConfig(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
	}, logger)

	theme := ui.LightTheme()
	if cfg.Theme == "dark" {
		theme = ui.DarkTheme()
	}
	styles := ui.NewStyles(theme)

	sessions := session.Default()

	app, err := newApp(logger, client, sessions, styles, initialPath)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	logger.Info("starting client",
		zap.String("version", version),
		zap.String("api", cfg.APIBaseURL),
		zap.String("initial_path", initialPath))

	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("ui error: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "color theme: light or dark")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
