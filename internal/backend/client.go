package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Options tunes an HTTPClient.
type Options struct {
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// LenientAck accepts any JSON object from /api/realtime and
	// /api/power-off as success, without an explicit status or message.
	LenientAck bool

	// DatasetKey and ModelKey name the artifacts read from /api/check.
	DatasetKey string
	ModelKey   string

	// HTTPClient overrides the transport. Defaults to a plain http.Client.
	HTTPClient *http.Client
}

// HTTPClient talks to the service over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	opts    Options
	http    *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the service at baseURL.
func NewHTTPClient(baseURL string, opts Options) *HTTPClient {
	if opts.DatasetKey == "" {
		opts.DatasetKey = DefaultDatasetKey
	}
	if opts.ModelKey == "" {
		opts.ModelKey = DefaultModelKey
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		opts:    opts,
		http:    hc,
	}
}

// BaseURL returns the service origin.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) Check(ctx context.Context) (*Readiness, error) {
	env, err := c.do(ctx, http.MethodGet, PathCheck, nil)
	if err != nil {
		return nil, err
	}
	if err := validate(PathCheck, "readiness", env.Body); err != nil {
		return nil, err
	}

	var artifacts map[string]bool
	if err := json.Unmarshal(env.Body, &artifacts); err != nil {
		return nil, &ErrInvalidResponse{Endpoint: PathCheck, Body: env.Body, Err: err}
	}
	return &Readiness{
		Envelope:        env,
		Artifacts:       artifacts,
		DatasetCaptured: artifacts[c.opts.DatasetKey],
		ModelTrained:    artifacts[c.opts.ModelKey],
	}, nil
}

func (c *HTTPClient) CollectData(ctx context.Context, step int) (*Ack, error) {
	if step < 0 || step > MaxStep {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStep, step)
	}
	return c.ack(ctx, PathCollectData, collectRequest{Step: step}, false)
}

func (c *HTTPClient) TrainModel(ctx context.Context) (*Ack, error) {
	return c.ack(ctx, PathTrainModel, nil, false)
}

func (c *HTTPClient) GetAccuracy(ctx context.Context) (*Accuracy, error) {
	env, err := c.do(ctx, http.MethodPost, PathGetAccuracy, nil)
	if err != nil {
		return nil, err
	}
	if err := validate(PathGetAccuracy, "accuracy", env.Body); err != nil {
		return nil, err
	}

	var body accuracyBody
	if err := json.Unmarshal(env.Body, &body); err != nil {
		return nil, &ErrInvalidResponse{Endpoint: PathGetAccuracy, Body: env.Body, Err: err}
	}
	return &Accuracy{Envelope: env, Value: body.Accuracy}, nil
}

func (c *HTTPClient) Reconnect(ctx context.Context) (*Ack, error) {
	return c.ack(ctx, PathReconnect, nil, false)
}

func (c *HTTPClient) PowerOff(ctx context.Context) (*Ack, error) {
	return c.ack(ctx, PathPowerOff, nil, !c.opts.LenientAck)
}

func (c *HTTPClient) Realtime(ctx context.Context, message string) (*Ack, error) {
	if message != MessageStart && message != MessagePause {
		return nil, fmt.Errorf("unknown realtime message %q", message)
	}
	return c.ack(ctx, PathRealtime, realtimeRequest{Mensaje: message}, !c.opts.LenientAck)
}

// ack posts body to path and decodes a generic acknowledgment. When strict
// is set the response must carry an explicit status or message.
func (c *HTTPClient) ack(ctx context.Context, path string, body any, strict bool) (*Ack, error) {
	env, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}

	if strict {
		err = validateAck(path, env.Body)
	} else {
		err = validate(path, "object", env.Body)
	}
	if err != nil {
		return nil, err
	}

	var decoded ackBody
	if err := json.Unmarshal(env.Body, &decoded); err != nil {
		return nil, &ErrInvalidResponse{Endpoint: path, Body: env.Body, Err: err}
	}
	ack := &Ack{
		Envelope: env,
		Status:   decoded.Status,
		Message:  decoded.Message,
	}
	if decoded.Result != nil {
		ack.Result = fmt.Sprint(decoded.Result)
	}
	return ack, nil
}

// do sends one request and returns the raw outcome. Non-2xx responses are
// returned as *ErrStatus, transport failures as *ErrTransport.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any) (Envelope, error) {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, fmt.Errorf("%s: marshal request: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Envelope{}, fmt.Errorf("%s: build request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Envelope{}, &ErrTransport{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{}, &ErrTransport{Endpoint: path, Err: fmt.Errorf("read body: %w", err)}
	}

	env := Envelope{StatusCode: resp.StatusCode, Body: raw}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		st := &ErrStatus{Endpoint: path, StatusCode: resp.StatusCode, Body: raw}
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil {
			st.Message = eb.Error
			if st.Message == "" {
				st.Message = eb.Message
			}
			st.Details = eb.Details
		}
		return env, st
	}
	return env, nil
}
