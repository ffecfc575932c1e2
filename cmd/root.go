package cmd

import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"barblend/internal/config"
	"barblend/internal/db"
	"barblend/internal/discover"
	"barblend/internal/logging"
	"barblend/internal/search"
	"barblend/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var (
	// Flags
	dbPath     string
	logPath    string
	configPath string
	apiBase    string
	verbose    bool
	noHistory  bool

	// Set up in PersistentPreRunE
	cfg       *config.Config
	configDir string
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "barblend",
	Short: "Find cocktails by name or by what's in your cabinet",
	Long: `barblend searches an online cocktail recipe database.

Run without arguments for the interactive browser, or use the search and
random subcommands for plain output.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to search history database (default: ~/.barblend/history.db)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "Path to log file (default: ~/.barblend/barblend.log)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.barblend/config.toml)")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api-base", "", "Cocktail database API base URL (or set BARBLEND_API_BASE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Do not read or record search history")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(randomCmd)
	rootCmd.AddCommand(historyCmd)
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd.Version = version
	return rootCmd.Execute()
}

// setup loads .env files, the config file and the logger.
func setup() error {
	loadDotEnv(".env")
	loadDotEnv(".env.local")

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".barblend")
		configPath = filepath.Join(configDir, "config.toml")
	} else {
		configDir = filepath.Dir(configPath)
	}

	loaded, err := loadOrCreateConfig(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	if v := os.Getenv("BARBLEND_API_BASE"); v != "" {
		cfg.APIBase = v
	}
	if apiBase != "" {
		cfg.APIBase = apiBase
	}
	if dbPath == "" {
		dbPath = os.Getenv("BARBLEND_DB")
	}
	if dbPath == "" {
		dbPath = filepath.Join(configDir, "history.db")
	}
	if logPath == "" {
		logPath = filepath.Join(configDir, "barblend.log")
	}

	settings, err := loadOnboardingSettings(configDir)
	if err != nil {
		return fmt.Errorf("failed to load onboarding settings: %w", err)
	}
	if settings.Completed && !settings.HistoryEnabled {
		cfg.HistoryEnabled = false
	}

	logger, err = logging.New(logging.Options{Path: logPath, Verbose: verbose})
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded",
		zap.String("config", configPath),
		zap.String("api_base", cfg.APIBase),
		zap.Bool("history", historyEnabled()))
	return nil
}

// loadOrCreateConfig loads path, writing the defaults there on first run.
func loadOrCreateConfig(path string) (*config.Config, error) {
	loaded, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := config.Save(loaded, path); err != nil {
			return nil, err
		}
	}
	return loaded, nil
}

func historyEnabled() bool {
	return cfg.HistoryEnabled && !noHistory
}

// openHistory opens the history store, or returns nil when history is off.
func openHistory() (*sql.DB, error) {
	if !historyEnabled() {
		return nil, nil
	}
	database, err := db.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return database, nil
}

func newClient() *search.Client {
	return search.NewClient(cfg.APIBase, cfg.Timeout.Duration, logger)
}

func newDispatcher(client discover.Source) *discover.Dispatcher {
	return discover.NewDispatcher(client, discover.Options{
		EnrichLimit:               cfg.Enrichment.Limit,
		EmptyOnTotalEnrichFailure: cfg.Enrichment.EmptyOnTotalFailure,
	}, logger)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the interactive browser needs a terminal; use `barblend search` or `barblend random` instead")
	}

	settings, err := loadOnboardingSettings(configDir)
	if err != nil {
		return fmt.Errorf("failed to load onboarding settings: %w", err)
	}
	if shouldRunOnboarding(settings) {
		settings, err = runOnboarding(configDir)
		if err != nil {
			return fmt.Errorf("failed to run onboarding: %w", err)
		}
		cfg.HistoryEnabled = cfg.HistoryEnabled && settings.HistoryEnabled
	}

	database, err := openHistory()
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
	}

	client := newClient()
	opts := ui.Options{
		Dispatcher: newDispatcher(client),
		Source:     client,
		History:    database,
		Config:     cfg,
		Logger:     logger,
		PrefsPath:  filepath.Join(configDir, "ui_prefs.json"),
	}
	if cfg.Thumbnails {
		opts.Thumbnails = client
	}

	logger.Info("starting interactive browser")
	p := tea.NewProgram(ui.New(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}

		value = strings.Trim(value, `"'`)
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}
