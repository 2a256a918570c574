package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/prostheticlab/myoctl/internal/simulator"
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Serve a simulated acquisition and training service",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		opts := simulator.DefaultOptions()
		opts.Accuracy, _ = cmd.Flags().GetFloat64("accuracy")
		opts.CaptureDelay, _ = cmd.Flags().GetDuration("capture-delay")
		opts.TrainDelay, _ = cmd.Flags().GetDuration("train-delay")
		opts.ReconnectFails, _ = cmd.Flags().GetBool("reconnect-fails")

		srv := &http.Server{
			Addr:              addr,
			Handler:           simulator.New(opts).Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()
		fmt.Fprintf(cmd.OutOrStdout(), "Simulated service listening on %s\n", addr)

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-cmd.Context().Done():
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	simCmd.Flags().String("addr", "localhost:5000", "Listen address")
	simCmd.Flags().Float64("accuracy", 92.5, "Accuracy reported after training")
	simCmd.Flags().Duration("capture-delay", 2*time.Second, "Time each calibration capture takes")
	simCmd.Flags().Duration("train-delay", 5*time.Second, "Time training takes")
	simCmd.Flags().Bool("reconnect-fails", false, "Make every reconnect attempt time out")
}
