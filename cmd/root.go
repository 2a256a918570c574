package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/prostheticlab/myoctl/internal/backend"
	"github.com/prostheticlab/myoctl/internal/config"
	"github.com/prostheticlab/myoctl/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "myoctl",
	Short: "Operator console for a myoelectric prosthesis",
	Long: "myoctl guides an operator through calibrating the armband, training the\n" +
		"gesture model and running it in real time against the acquisition service.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel its context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite event database (overrides MYOCTL_DB env var)")
	rootCmd.PersistentFlags().String("backend", "", "Service base URL (overrides MYOCTL_BACKEND_URL env var)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads MYOCTL_* variables and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.ConfigFromEnv()
	if err != nil {
		return config.Config{}, err
	}
	if u, _ := cmd.Flags().GetString("backend"); u != "" {
		cfg.BackendURL = u
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns cfg.DBPath, which --db and MYOCTL_DB set, or the
// default XDG path when neither is given.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the event store at the path cfg resolves to.
func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// newClient builds the service client for cfg, recording every request
// into repo when it is non-nil.
func newClient(cfg config.Config, repo store.EventRepo) backend.Client {
	client := backend.NewHTTPClient(cfg.BackendURL, backend.Options{
		Timeout:    cfg.RequestTimeout,
		LenientAck: cfg.LenientAck,
		DatasetKey: cfg.DatasetKey,
		ModelKey:   cfg.ModelKey,
	})
	return backend.WithLogging(client, repo)
}
