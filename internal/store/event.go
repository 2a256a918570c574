package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const eventsTable = "events"

// Event kinds.
const (
	KindRequest    = "request"
	KindTransition = "transition"
)

var eventColumns = []string{
	"id", "session_id", "kind", "name", "method", "status_code",
	"latency_ms", "success", "error_message", "detail", "created_at",
}

type eventRepo struct {
	drv       *entsql.Driver
	sessionID string
	now       func() time.Time
}

func (r *eventRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *eventRepo) AppendRequest(ctx context.Context, data RequestEventData) error {
	return r.insert(ctx, Event{
		Kind:         KindRequest,
		Name:         data.Endpoint,
		Method:       data.Method,
		StatusCode:   data.StatusCode,
		LatencyMs:    data.LatencyMs,
		Success:      data.Success,
		ErrorMessage: data.ErrorMessage,
		Detail:       data.ResponseBody,
	})
}

func (r *eventRepo) AppendTransition(ctx context.Context, data TransitionEventData) error {
	return r.insert(ctx, Event{
		Kind:    KindTransition,
		Name:    data.To,
		Success: true,
		Detail:  data.From + " -> " + data.To + describeReason(data.Reason),
	})
}

func describeReason(reason string) string {
	if reason == "" {
		return ""
	}
	return " (" + reason + ")"
}

func (r *eventRepo) insert(ctx context.Context, e Event) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(eventsTable).
		Columns("session_id", "kind", "name", "method", "status_code",
			"latency_ms", "success", "error_message", "detail", "created_at").
		Values(r.sessionID, e.Kind, e.Name, e.Method, e.StatusCode,
			e.LatencyMs, e.Success, e.ErrorMessage, e.Detail, r.clock().UnixMilli()).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("append %s event: %w", e.Kind, err)
	}
	return nil
}

func (r *eventRepo) QueryEvents(ctx context.Context, opts QueryOpts) ([]Event, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(eventColumns...).
		From(entsql.Table(eventsTable)).
		OrderBy(entsql.Desc("id"))

	if opts.Kind != "" {
		sel.Where(entsql.EQ("kind", opts.Kind))
	}
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if opts.ID > 0 {
		sel.Where(entsql.EQ("id", opts.ID))
	}
	if opts.After > 0 {
		sel.Where(entsql.GT("id", opts.After))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("created_at", opts.To.UnixMilli()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e       Event
			created int64
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Kind, &e.Name, &e.Method, &e.StatusCode,
			&e.LatencyMs, &e.Success, &e.ErrorMessage, &e.Detail, &created); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Timestamp = time.UnixMilli(created).UTC()
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) GetEvent(ctx context.Context, id int64) (*Event, error) {
	events, err := r.QueryEvents(ctx, QueryOpts{ID: id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}
