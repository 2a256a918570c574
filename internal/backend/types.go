package backend

import (
	"context"
	"encoding/json"
)

// Endpoint paths served by the capture/training/inference service.
const (
	PathCheck       = "/api/check"
	PathCollectData = "/api/collect-data"
	PathTrainModel  = "/api/train-model"
	PathGetAccuracy = "/api/get-accuracy"
	PathReconnect   = "/api/reconnect"
	PathPowerOff    = "/api/power-off"
	PathRealtime    = "/api/realtime"
)

// Realtime toggle messages. The service matches on these literals.
const (
	MessageStart = "Iniciar ejecución"
	MessagePause = "Pausar"
)

// MaxStep is the highest calibration step index the service accepts.
const MaxStep = 5

// Default artifact names reported by the readiness check.
const (
	DefaultDatasetKey = "MyoDataset.csv"
	DefaultModelKey   = "modelo_LSTM.keras"
)

// Client is the request/response contract of the remote service.
// Every method blocks until the service answers or ctx is done.
type Client interface {
	// Check reports which artifacts exist on the service.
	Check(ctx context.Context) (*Readiness, error)

	// CollectData captures one calibration movement.
	CollectData(ctx context.Context, step int) (*Ack, error)

	// TrainModel trains the gesture classifier on the captured dataset.
	TrainModel(ctx context.Context) (*Ack, error)

	// GetAccuracy returns the validation accuracy of the trained model.
	GetAccuracy(ctx context.Context) (*Accuracy, error)

	// Reconnect asks the service to re-establish the armband link.
	Reconnect(ctx context.Context) (*Ack, error)

	// PowerOff asks the service to power the armband down.
	PowerOff(ctx context.Context) (*Ack, error)

	// Realtime starts or pauses real-time inference. message is
	// MessageStart or MessagePause.
	Realtime(ctx context.Context, message string) (*Ack, error)
}

// Envelope carries the raw HTTP outcome behind a decoded response.
type Envelope struct {
	StatusCode int
	Body       json.RawMessage
}

func (e Envelope) envelope() Envelope { return e }

// Readiness is the decoded /api/check response.
type Readiness struct {
	Envelope
	Artifacts       map[string]bool
	DatasetCaptured bool
	ModelTrained    bool
}

// Accuracy is the decoded /api/get-accuracy response.
type Accuracy struct {
	Envelope
	Value float64
}

// Ack is a generic acknowledgment. Status, Message and Result are copied
// from the body when present.
type Ack struct {
	Envelope
	Status  string
	Message string
	Result  string
}

type collectRequest struct {
	Step int `json:"step"`
}

type realtimeRequest struct {
	Mensaje string `json:"mensaje"`
}

type ackBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  any    `json:"result"`
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Message string `json:"message"`
}

type accuracyBody struct {
	Accuracy float64 `json:"accuracy"`
}
