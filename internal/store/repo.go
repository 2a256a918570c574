package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are returned newest first.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	ID        int64     // exact event id (0 = any)
	After     int64     // id > After
	Kind      string    // KindRequest, KindTransition, or "" for all
	SessionID string    // restrict to one process run
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
}

// Event is a single row of the diagnostics log.
type Event struct {
	ID           int64
	SessionID    string
	Kind         string
	Name         string
	Method       string
	StatusCode   int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	Detail       string
	Timestamp    time.Time
}

// RequestEventData captures a single backend call.
type RequestEventData struct {
	Endpoint     string
	Method       string
	StatusCode   int // 0 when the request never returned
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	ResponseBody string
}

// TransitionEventData captures a workflow section change.
type TransitionEventData struct {
	From   string
	To     string
	Reason string
}

// EventRepo provides append and query access to diagnostic events.
type EventRepo interface {
	// AppendRequest records a backend call.
	AppendRequest(ctx context.Context, data RequestEventData) error

	// AppendTransition records a workflow section change.
	AppendTransition(ctx context.Context, data TransitionEventData) error

	// QueryEvents returns events matching opts, newest first.
	QueryEvents(ctx context.Context, opts QueryOpts) ([]Event, error)

	// GetEvent returns a single event by id, or nil if it does not exist.
	GetEvent(ctx context.Context, id int64) (*Event, error)
}
