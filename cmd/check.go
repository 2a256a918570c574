package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Query the service for captured dataset and trained model",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ready, err := newClient(cfg, st.EventRepo()).Check(cmd.Context())
		if err != nil {
			return fmt.Errorf("check %s: %w", cfg.BackendURL, err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Service:   %s\n", cfg.BackendURL)
		fmt.Fprintf(out, "Dataset:   %s  (%s)\n", mark(ready.DatasetCaptured), cfg.DatasetKey)
		fmt.Fprintf(out, "Model:     %s  (%s)\n", mark(ready.ModelTrained), cfg.ModelKey)
		return nil
	},
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
