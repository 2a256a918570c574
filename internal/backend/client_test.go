package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
	CType  string
}

// fakeService answers every request with the status and body registered
// for its path and records what it received.
func fakeService(t *testing.T, routes map[string]struct {
	status int
	body   string
}) (*HTTPClient, func() []recordedRequest) {
	t.Helper()
	var (
		mu  sync.Mutex
		got []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		got = append(got, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(b), CType: r.Header.Get("Content-Type")})
		mu.Unlock()
		route, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(route.status)
		io.WriteString(w, route.body)
	}))
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", Options{}), func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), got...)
	}
}

type route = struct {
	status int
	body   string
}

func TestCheck(t *testing.T) {
	c, got := fakeService(t, map[string]route{
		PathCheck: {200, `{"MyoDataset.csv": true, "modelo_LSTM.keras": false}`},
	})

	r, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, r.DatasetCaptured)
	assert.False(t, r.ModelTrained)
	assert.Equal(t, 200, r.StatusCode)
	assert.Equal(t, http.MethodGet, got()[0].Method)
}

func TestCheck_CustomKeys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"emg.csv": true, "net.keras": true}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, Options{DatasetKey: "emg.csv", ModelKey: "net.keras"})
	r, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, r.DatasetCaptured)
	assert.True(t, r.ModelTrained)
}

func TestCheck_NonBooleanRejected(t *testing.T) {
	c, _ := fakeService(t, map[string]route{
		PathCheck: {200, `{"MyoDataset.csv": "yes"}`},
	})
	_, err := c.Check(context.Background())
	var inv *ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
}

func TestCollectData(t *testing.T) {
	c, got := fakeService(t, map[string]route{
		PathCollectData: {200, `{"status": "completed", "step": 3}`},
	})

	ack, err := c.CollectData(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "completed", ack.Status)

	require.Len(t, got(), 1)
	req := got()[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "application/json", req.CType)
	assert.JSONEq(t, `{"step": 3}`, req.Body)
}

func TestCollectData_InvalidStepNotSent(t *testing.T) {
	c, got := fakeService(t, map[string]route{})

	for _, step := range []int{-1, 6, 42} {
		_, err := c.CollectData(context.Background(), step)
		assert.ErrorIs(t, err, ErrInvalidStep)
	}
	assert.Empty(t, got())
}

func TestCollectData_StatusError(t *testing.T) {
	c, _ := fakeService(t, map[string]route{
		PathCollectData: {500, `{"error": "Recolección de datos tardó demasiado"}`},
	})

	_, err := c.CollectData(context.Background(), 3)
	var st *ErrStatus
	require.ErrorAs(t, err, &st)
	assert.Equal(t, 500, st.StatusCode)
	assert.Equal(t, "Recolección de datos tardó demasiado", st.Message)
	assert.Equal(t, 500, StatusCodeOf(err))
	assert.NotEmpty(t, BodyOf(err))
}

func TestTrainModel(t *testing.T) {
	c, _ := fakeService(t, map[string]route{
		PathTrainModel: {200, `{"status": "training_completed", "result": 0.93}`},
	})
	ack, err := c.TrainModel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "training_completed", ack.Status)
	assert.Equal(t, "0.93", ack.Result)
}

func TestTrainModel_NotJSON(t *testing.T) {
	c, _ := fakeService(t, map[string]route{
		PathTrainModel: {200, `<html>ok</html>`},
	})
	_, err := c.TrainModel(context.Background())
	var inv *ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
}

func TestGetAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    float64
		wantErr bool
	}{
		{"decimal", 200, `{"accuracy": 92.5}`, 92.5, false},
		{"integer", 200, `{"accuracy": 88}`, 88, false},
		{"missing", 200, `{}`, 0, true},
		{"string", 200, `{"accuracy": "92"}`, 0, true},
		{"not found", 404, `{"error": "Accuracy no encontrado"}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := fakeService(t, map[string]route{PathGetAccuracy: {tt.status, tt.body}})
			acc, err := c.GetAccuracy(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, acc.Value)
		})
	}
}

func TestReconnect_Timeout408(t *testing.T) {
	c, _ := fakeService(t, map[string]route{
		PathReconnect: {408, `{"error": "No se pudo reconectar al Myo"}`},
	})
	_, err := c.Reconnect(context.Background())
	var st *ErrStatus
	require.ErrorAs(t, err, &st)
	assert.Equal(t, 408, st.StatusCode)
}

func TestReconnect_Details(t *testing.T) {
	c, _ := fakeService(t, map[string]route{
		PathReconnect: {500, `{"error": "Falló la reconexión", "details": "bluetooth off"}`},
	})
	_, err := c.Reconnect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bluetooth off")
}

func TestRealtime_RequestBody(t *testing.T) {
	c, got := fakeService(t, map[string]route{
		PathRealtime: {200, `{"message": "Ejecución en tiempo real iniciada"}`},
	})

	_, err := c.Realtime(context.Background(), MessageStart)
	require.NoError(t, err)
	_, err = c.Realtime(context.Background(), MessagePause)
	require.NoError(t, err)

	var first, second map[string]string
	require.NoError(t, json.Unmarshal([]byte(got()[0].Body), &first))
	require.NoError(t, json.Unmarshal([]byte(got()[1].Body), &second))
	assert.Equal(t, "Iniciar ejecución", first["mensaje"])
	assert.Equal(t, "Pausar", second["mensaje"])
}

func TestRealtime_UnknownMessage(t *testing.T) {
	c, got := fakeService(t, map[string]route{})
	_, err := c.Realtime(context.Background(), "Start")
	require.Error(t, err)
	assert.Empty(t, got())
}

func TestAckDiscriminator(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		lenient  bool
		wantKind string
	}{
		{"status", `{"status": "success"}`, false, ""},
		{"message", `{"message": "detenida"}`, false, ""},
		{"empty object", `{}`, false, "unack"},
		{"empty status", `{"status": ""}`, false, "unack"},
		{"error field", `{"status": "success", "error": "device busy"}`, false, "unack"},
		{"not json", `done`, false, "invalid"},
		{"lenient empty object", `{}`, true, ""},
		{"lenient not json", `done`, true, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()
			c := NewHTTPClient(srv.URL, Options{LenientAck: tt.lenient})

			for _, call := range []func() error{
				func() error { _, err := c.PowerOff(context.Background()); return err },
				func() error { _, err := c.Realtime(context.Background(), MessageStart); return err },
			} {
				err := call()
				switch tt.wantKind {
				case "":
					assert.NoError(t, err)
				case "unack":
					var un *ErrUnacknowledged
					assert.ErrorAs(t, err, &un)
				case "invalid":
					var inv *ErrInvalidResponse
					assert.ErrorAs(t, err, &inv)
				}
			}
		})
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, Options{})
	_, err := c.Reconnect(context.Background())
	var tr *ErrTransport
	require.ErrorAs(t, err, &tr)
	assert.Equal(t, 0, StatusCodeOf(err))
	assert.Equal(t, "Sin conexión con el servicio", Describe(err))
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewHTTPClient(srv.URL, Options{Timeout: 50 * time.Millisecond})
	_, err := c.TrainModel(context.Background())
	var tr *ErrTransport
	require.ErrorAs(t, err, &tr)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestCancelledContext(t *testing.T) {
	c, got := fakeService(t, map[string]route{PathTrainModel: {200, `{}`}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.TrainModel(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, got())
}
