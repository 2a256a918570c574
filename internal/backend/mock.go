package backend

import (
	"context"
	"sync"
)

// MockResponse is a canned result for one MockClient call.
type MockResponse struct {
	Ack       *Ack
	Readiness *Readiness
	Accuracy  *Accuracy
	Err       error

	// Block, when non-nil, holds the call until it is closed or the
	// call's context is done.
	Block chan struct{}
}

// MockCall records one request made through a MockClient.
type MockCall struct {
	Endpoint string
	Step     int
	Message  string
}

// MockClient is a deterministic Client for testing. Each endpoint has its
// own FIFO queue of canned responses. An empty queue yields a transport
// error.
type MockClient struct {
	mu        sync.Mutex
	responses map[string][]MockResponse
	Calls     []MockCall
}

var _ Client = (*MockClient)(nil)

// NewMockClient creates an empty MockClient.
func NewMockClient() *MockClient {
	return &MockClient{responses: make(map[string][]MockResponse)}
}

// On queues a canned response for endpoint.
func (m *MockClient) On(endpoint string, resp MockResponse) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[endpoint] = append(m.responses[endpoint], resp)
	return m
}

// CallCount returns the number of calls made to endpoint.
func (m *MockClient) CallCount(endpoint string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c.Endpoint == endpoint {
			n++
		}
	}
	return n
}

// LastCall returns the most recent call, or the zero MockCall.
func (m *MockClient) LastCall() MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return MockCall{}
	}
	return m.Calls[len(m.Calls)-1]
}

// LastCallTo returns the most recent call to endpoint, or the zero
// MockCall.
func (m *MockClient) LastCallTo(endpoint string) MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.Calls) - 1; i >= 0; i-- {
		if m.Calls[i].Endpoint == endpoint {
			return m.Calls[i]
		}
	}
	return MockCall{}
}

func (m *MockClient) next(ctx context.Context, call MockCall) (MockResponse, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, call)
	queue := m.responses[call.Endpoint]
	if len(queue) == 0 {
		m.mu.Unlock()
		return MockResponse{}, &ErrTransport{Endpoint: call.Endpoint, Err: errMockExhausted}
	}
	resp := queue[0]
	m.responses[call.Endpoint] = queue[1:]
	m.mu.Unlock()

	if resp.Block != nil {
		select {
		case <-resp.Block:
		case <-ctx.Done():
			return MockResponse{}, &ErrTransport{Endpoint: call.Endpoint, Err: ctx.Err()}
		}
	}
	return resp, resp.Err
}

func (m *MockClient) Check(ctx context.Context) (*Readiness, error) {
	resp, err := m.next(ctx, MockCall{Endpoint: PathCheck})
	if err != nil {
		return nil, err
	}
	if resp.Readiness == nil {
		return &Readiness{Artifacts: map[string]bool{}}, nil
	}
	return resp.Readiness, nil
}

func (m *MockClient) CollectData(ctx context.Context, step int) (*Ack, error) {
	if step < 0 || step > MaxStep {
		return nil, ErrInvalidStep
	}
	resp, err := m.next(ctx, MockCall{Endpoint: PathCollectData, Step: step})
	return ackOrDefault(resp, err)
}

func (m *MockClient) TrainModel(ctx context.Context) (*Ack, error) {
	return ackOrDefault(m.next(ctx, MockCall{Endpoint: PathTrainModel}))
}

func (m *MockClient) GetAccuracy(ctx context.Context) (*Accuracy, error) {
	resp, err := m.next(ctx, MockCall{Endpoint: PathGetAccuracy})
	if err != nil {
		return nil, err
	}
	if resp.Accuracy == nil {
		return &Accuracy{}, nil
	}
	return resp.Accuracy, nil
}

func (m *MockClient) Reconnect(ctx context.Context) (*Ack, error) {
	return ackOrDefault(m.next(ctx, MockCall{Endpoint: PathReconnect}))
}

func (m *MockClient) PowerOff(ctx context.Context) (*Ack, error) {
	return ackOrDefault(m.next(ctx, MockCall{Endpoint: PathPowerOff}))
}

func (m *MockClient) Realtime(ctx context.Context, message string) (*Ack, error) {
	return ackOrDefault(m.next(ctx, MockCall{Endpoint: PathRealtime, Message: message}))
}

func ackOrDefault(resp MockResponse, err error) (*Ack, error) {
	if err != nil {
		return nil, err
	}
	if resp.Ack == nil {
		return &Ack{Status: "ok"}, nil
	}
	return resp.Ack, nil
}

type mockError string

func (e mockError) Error() string { return string(e) }

const errMockExhausted = mockError("no canned response queued")
