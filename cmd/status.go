package cmd

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/prostheticlab/myoctl/internal/backend"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show readiness and model accuracy in one call",
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

		client := newClient(cfg, st.EventRepo())

		var (
			ready  *backend.Readiness
			acc    *backend.Accuracy
			accErr error
		)
		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			var err error
			ready, err = client.Check(ctx)
			return err
		})
		g.Go(func() error {
			// A missing model is reported as 404; keep it for display.
			acc, accErr = client.GetAccuracy(ctx)
			return nil
		})
		if err := g.Wait(); err != nil {
			return fmt.Errorf("status %s: %w", cfg.BackendURL, err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Service:   %s\n", cfg.BackendURL)
		fmt.Fprintf(out, "Dataset:   %s\n", mark(ready.DatasetCaptured))
		fmt.Fprintf(out, "Model:     %s\n", mark(ready.ModelTrained))
		fmt.Fprintf(out, "Accuracy:  %s\n", formatAccuracy(acc, accErr))
		return nil
	},
}

func formatAccuracy(acc *backend.Accuracy, err error) string {
	switch {
	case err == nil:
		return strconv.FormatFloat(acc.Value, 'f', -1, 64) + "%"
	case backend.StatusCodeOf(err) == http.StatusNotFound:
		return "-"
	default:
		return "? (" + backend.Describe(err) + ")"
	}
}
