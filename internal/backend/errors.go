package backend

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidStep is returned when a capture is requested for a step outside
// the calibration table. The request is never sent.
var ErrInvalidStep = errors.New("calibration step out of range")

// ErrTransport indicates the request never reached the service or never
// returned from it.
type ErrTransport struct {
	Endpoint string
	Err      error
}

func (e *ErrTransport) Error() string {
	return fmt.Sprintf("%s: backend unreachable: %v", e.Endpoint, e.Err)
}

func (e *ErrTransport) Unwrap() error { return e.Err }

// ErrStatus indicates the service answered with a non-2xx status.
type ErrStatus struct {
	Endpoint   string
	StatusCode int
	Message    string // "error" field of the body, when present
	Details    string // "details" field of the body, when present
	Body       json.RawMessage
}

func (e *ErrStatus) Error() string {
	msg := fmt.Sprintf("%s: backend returned %d", e.Endpoint, e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

// ErrUnacknowledged indicates a 2xx response that does not carry an explicit
// acknowledgment. The requested effect must be assumed not to have happened.
type ErrUnacknowledged struct {
	Endpoint string
	Body     json.RawMessage
	Err      error
}

func (e *ErrUnacknowledged) Error() string {
	return fmt.Sprintf("%s: response not acknowledged: %v", e.Endpoint, e.Err)
}

func (e *ErrUnacknowledged) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates a 2xx response whose body is not the JSON
// shape the endpoint promises.
type ErrInvalidResponse struct {
	Endpoint string
	Body     json.RawMessage
	Err      error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("%s: invalid response: %v", e.Endpoint, e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// StatusCodeOf returns the HTTP status carried by err, or 0 when the
// request never produced one.
func StatusCodeOf(err error) int {
	var st *ErrStatus
	if errors.As(err, &st) {
		return st.StatusCode
	}
	var un *ErrUnacknowledged
	var inv *ErrInvalidResponse
	if errors.As(err, &un) || errors.As(err, &inv) {
		return 200
	}
	return 0
}

// BodyOf returns the response body carried by err, if any.
func BodyOf(err error) json.RawMessage {
	var st *ErrStatus
	if errors.As(err, &st) {
		return st.Body
	}
	var un *ErrUnacknowledged
	if errors.As(err, &un) {
		return un.Body
	}
	var inv *ErrInvalidResponse
	if errors.As(err, &inv) {
		return inv.Body
	}
	return nil
}

// Describe renders err as a short operator-facing line.
func Describe(err error) string {
	var (
		tr  *ErrTransport
		st  *ErrStatus
		un  *ErrUnacknowledged
		inv *ErrInvalidResponse
	)
	switch {
	case errors.As(err, &tr):
		return "Sin conexión con el servicio"
	case errors.As(err, &st):
		if st.Message != "" {
			return fmt.Sprintf("El servicio respondió %d: %s", st.StatusCode, st.Message)
		}
		return fmt.Sprintf("El servicio respondió %d", st.StatusCode)
	case errors.As(err, &un):
		return "El servicio no confirmó la operación"
	case errors.As(err, &inv):
		return "Respuesta inválida del servicio"
	case errors.Is(err, ErrInvalidStep):
		return "Paso de calibración inválido"
	default:
		return err.Error()
	}
}
