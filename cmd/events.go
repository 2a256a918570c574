package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/prostheticlab/myoctl/internal/store"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect recorded service requests and section transitions",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kind, _ := cmd.Flags().GetString("kind")
		session, _ := cmd.Flags().GetString("session")
		since, _ := cmd.Flags().GetDuration("since")

		if kind != "" && kind != store.KindRequest && kind != store.KindTransition {
			return fmt.Errorf("unknown kind %q (want %s or %s)", kind, store.KindRequest, store.KindTransition)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit, Kind: kind, SessionID: session}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		events, err := s.EventRepo().QueryEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No events found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-10s  %-22s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Kind", "Name", "Status", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 84))

		for _, e := range events {
			name := e.Name
			if len(name) > 22 {
				name = name[:22]
			}
			status := "-"
			if e.StatusCode > 0 {
				status = fmt.Sprintf("%d", e.StatusCode)
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-10s  %-22s  %-6s  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Kind,
				name,
				status,
				e.LatencyMs,
				mark(e.Success),
			)
		}
		return nil
	},
}

var eventsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View one event in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int64
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)

		fmt.Fprintf(out, "ID:        %d\n", e.ID)
		fmt.Fprintf(out, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Session:   %s\n", e.SessionID)
		fmt.Fprintf(out, "Kind:      %s\n", e.Kind)
		fmt.Fprintf(out, "Name:      %s\n", e.Name)
		if e.Kind == store.KindRequest {
			fmt.Fprintf(out, "Method:    %s\n", e.Method)
			fmt.Fprintf(out, "Status:    %d\n", e.StatusCode)
			fmt.Fprintf(out, "Latency:   %dms\n", e.LatencyMs)
		}
		fmt.Fprintf(out, "Success:   %v\n", e.Success)
		if e.ErrorMessage != "" {
			fmt.Fprintf(out, "Error:     %s\n", e.ErrorMessage)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, "DETAIL")
		fmt.Fprintln(out, sep)
		if e.Detail != "" {
			fmt.Fprintln(out, e.Detail)
		} else {
			fmt.Fprintln(out, "(not captured)")
		}
		return nil
	},
}

func init() {
	eventsListCmd.Flags().Int("limit", 50, "Maximum number of events to show")
	eventsListCmd.Flags().String("kind", "", "Only show events of this kind (request or transition)")
	eventsListCmd.Flags().String("session", "", "Only show events from this session ID")
	eventsListCmd.Flags().Duration("since", 0, "Only show events newer than this (e.g. 1h)")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsViewCmd)
}
