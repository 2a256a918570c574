package backend

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prostheticlab/myoctl/internal/store"
)

// maxLoggedBody caps the response body stored with each event.
const maxLoggedBody = 4096

// LoggingClient is a decorator that records every backend call as an event.
type LoggingClient struct {
	inner     Client
	eventRepo store.EventRepo
}

var _ Client = (*LoggingClient)(nil)

// WithLogging wraps a Client with event logging.
func WithLogging(c Client, repo store.EventRepo) Client {
	if repo == nil {
		return c
	}
	return &LoggingClient{inner: c, eventRepo: repo}
}

type enveloped interface {
	envelope() Envelope
}

func (l *LoggingClient) Check(ctx context.Context) (*Readiness, error) {
	start := time.Now()
	resp, err := l.inner.Check(ctx)
	l.record(ctx, http.MethodGet, PathCheck, start, envelopeOf(resp), err)
	return resp, err
}

func (l *LoggingClient) CollectData(ctx context.Context, step int) (*Ack, error) {
	start := time.Now()
	resp, err := l.inner.CollectData(ctx, step)
	l.record(ctx, http.MethodPost, PathCollectData, start, envelopeOf(resp), err)
	return resp, err
}

func (l *LoggingClient) TrainModel(ctx context.Context) (*Ack, error) {
	start := time.Now()
	resp, err := l.inner.TrainModel(ctx)
	l.record(ctx, http.MethodPost, PathTrainModel, start, envelopeOf(resp), err)
	return resp, err
}

func (l *LoggingClient) GetAccuracy(ctx context.Context) (*Accuracy, error) {
	start := time.Now()
	resp, err := l.inner.GetAccuracy(ctx)
	l.record(ctx, http.MethodPost, PathGetAccuracy, start, envelopeOf(resp), err)
	return resp, err
}

func (l *LoggingClient) Reconnect(ctx context.Context) (*Ack, error) {
	start := time.Now()
	resp, err := l.inner.Reconnect(ctx)
	l.record(ctx, http.MethodPost, PathReconnect, start, envelopeOf(resp), err)
	return resp, err
}

func (l *LoggingClient) PowerOff(ctx context.Context) (*Ack, error) {
	start := time.Now()
	resp, err := l.inner.PowerOff(ctx)
	l.record(ctx, http.MethodPost, PathPowerOff, start, envelopeOf(resp), err)
	return resp, err
}

func (l *LoggingClient) Realtime(ctx context.Context, message string) (*Ack, error) {
	start := time.Now()
	resp, err := l.inner.Realtime(ctx, message)
	l.record(ctx, http.MethodPost, PathRealtime, start, envelopeOf(resp), err)
	return resp, err
}

// envelopeOf extracts the envelope from a typed response. A typed nil
// pointer yields the zero Envelope.
func envelopeOf[T any, P interface {
	*T
	enveloped
}](resp P) Envelope {
	if resp == nil {
		return Envelope{}
	}
	return resp.envelope()
}

func (l *LoggingClient) record(ctx context.Context, method, endpoint string, start time.Time, env Envelope, err error) {
	data := store.RequestEventData{
		Endpoint:   endpoint,
		Method:     method,
		StatusCode: env.StatusCode,
		LatencyMs:  time.Since(start).Milliseconds(),
		Success:    err == nil,
	}
	body := env.Body
	if err != nil {
		data.ErrorMessage = err.Error()
		data.StatusCode = StatusCodeOf(err)
		body = BodyOf(err)
	}
	data.ResponseBody = truncate(string(body), maxLoggedBody)

	// Cancelled section scopes still get logged; use a detached context so
	// the insert itself is not cancelled.
	logCtx := context.WithoutCancel(ctx)

	// Log the event but don't fail the request if logging fails.
	if logErr := l.eventRepo.AppendRequest(logCtx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log %s event: %v\n", endpoint, logErr)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
