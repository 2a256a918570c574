package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prostheticlab/myoctl/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch the operator console (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds the service client, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	return app.Run(app.Options{
		Client:    newClient(cfg, eventRepo),
		EventRepo: eventRepo,
	})
}
