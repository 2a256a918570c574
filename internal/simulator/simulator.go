// Package simulator serves a stand-in for the acquisition and training
// service so the controller can be exercised without an armband.
package simulator

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/prostheticlab/myoctl/internal/backend"
)

// Options tunes the simulated service.
type Options struct {
	// Accuracy is the validation accuracy reported after training.
	Accuracy float64
	// CaptureDelay and TrainDelay stand in for recording and fitting time.
	CaptureDelay time.Duration
	TrainDelay   time.Duration
	// ReconnectFails makes every reconnect attempt time out.
	ReconnectFails bool
	DatasetKey     string
	ModelKey       string
}

// DefaultOptions returns options with short delays and a plausible accuracy.
func DefaultOptions() Options {
	return Options{
		Accuracy:     92.5,
		CaptureDelay: 2 * time.Second,
		TrainDelay:   5 * time.Second,
		DatasetKey:   backend.DefaultDatasetKey,
		ModelKey:     backend.DefaultModelKey,
	}
}

// Simulator holds the simulated device and artifact state.
type Simulator struct {
	opts Options

	mu             sync.Mutex
	datasetExists  bool
	captured       [backend.MaxStep + 1]bool
	modelExists    bool
	accuracy       *float64
	running        bool
	reconnectFails bool
}

// New creates a Simulator with no artifacts on disk.
func New(opts Options) *Simulator {
	if opts.DatasetKey == "" {
		opts.DatasetKey = backend.DefaultDatasetKey
	}
	if opts.ModelKey == "" {
		opts.ModelKey = backend.DefaultModelKey
	}
	return &Simulator{opts: opts, reconnectFails: opts.ReconnectFails}
}

// SetReconnectFails switches reconnect failures on or off.
func (s *Simulator) SetReconnectFails(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconnectFails = fail
}

// Running reports whether real-time execution is active.
func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Captured reports whether step has been recorded since the last reset.
func (s *Simulator) Captured(step int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return step >= 0 && step < len(s.captured) && s.captured[step]
}

// Handler returns the HTTP routes of the service.
func (s *Simulator) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc(backend.PathCheck, s.handleCheck).Methods("GET")
	r.HandleFunc(backend.PathCollectData, s.handleCollect).Methods("POST")
	r.HandleFunc(backend.PathTrainModel, s.handleTrain).Methods("POST")
	r.HandleFunc(backend.PathGetAccuracy, s.handleAccuracy).Methods("POST")
	r.HandleFunc(backend.PathReconnect, s.handleReconnect).Methods("POST")
	r.HandleFunc(backend.PathPowerOff, s.handlePowerOff).Methods("POST")
	r.HandleFunc(backend.PathRealtime, s.handleRealtime).Methods("POST")
	return r
}

func (s *Simulator) handleCheck(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	body := map[string]bool{
		s.opts.DatasetKey: s.datasetExists,
		s.opts.ModelKey:   s.modelExists,
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, body)
}

func (s *Simulator) handleCollect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Step *int `json:"step"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Step == nil ||
		*req.Step < 0 || *req.Step > backend.MaxStep {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Paso inválido"})
		return
	}
	step := *req.Step

	// The first step starts a fresh dataset.
	if step == 0 {
		s.mu.Lock()
		s.datasetExists = true
		s.captured = [backend.MaxStep + 1]bool{}
		s.mu.Unlock()
	}

	if !wait(r.Context(), s.opts.CaptureDelay) {
		return
	}

	s.mu.Lock()
	s.captured[step] = true
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"status": "completed", "step": step})
}

func (s *Simulator) handleTrain(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ready := s.datasetExists
	s.mu.Unlock()
	if !ready {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "Training failed"})
		return
	}

	if !wait(r.Context(), s.opts.TrainDelay) {
		return
	}

	s.mu.Lock()
	acc := s.opts.Accuracy
	s.modelExists = true
	s.accuracy = &acc
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"status": "training_completed"})
}

func (s *Simulator) handleAccuracy(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	acc := s.accuracy
	s.mu.Unlock()
	if acc == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Accuracy no encontrado"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"accuracy": *acc})
}

func (s *Simulator) handleReconnect(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	fail := s.reconnectFails
	s.mu.Unlock()
	if fail {
		writeJSON(w, http.StatusRequestTimeout, map[string]string{"error": "No se pudo reconectar al Myo"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reconnected"})
}

func (s *Simulator) handlePowerOff(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Simulator) handleRealtime(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mensaje string `json:"mensaje"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Cuerpo inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		s.running = true
		writeJSON(w, http.StatusOK, map[string]string{"message": "Ejecución en tiempo real iniciada"})
		return
	}
	s.running = false
	writeJSON(w, http.StatusOK, map[string]string{"message": "Ejecución en tiempo real detenida"})
}

// wait sleeps for d unless the request is cancelled first.
func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
