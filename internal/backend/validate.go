package backend

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Response schemas, keyed by name.
var schemaDefs = map[string]string{
	// Any JSON object. Bodies of capture/train/reconnect are only logged.
	"object": `{"type": "object"}`,

	// Artifact-presence map: every value is a boolean.
	"readiness": `{
		"type": "object",
		"additionalProperties": {"type": "boolean"}
	}`,

	"accuracy": `{
		"type": "object",
		"required": ["accuracy"],
		"properties": {"accuracy": {"type": "number"}}
	}`,

	// Explicit acknowledgment: a non-empty status or message, and no error.
	"ack": `{
		"type": "object",
		"not": {"required": ["error"]},
		"anyOf": [
			{"required": ["status"], "properties": {"status": {"type": "string", "minLength": 1}}},
			{"required": ["message"], "properties": {"message": {"type": "string", "minLength": 1}}}
		]
	}`,
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// decodeJSON parses raw into the generic form the validator expects
// (numbers as json.Number).
func decodeJSON(raw []byte) (any, error) {
	return jsonschema.UnmarshalJSON(bytes.NewReader(raw))
}

// validate checks raw against the named schema. It returns
// *ErrInvalidResponse for unparseable bodies and schema mismatches.
func validate(endpoint, name string, raw []byte) error {
	parsed, err := decodeJSON(raw)
	if err != nil {
		return &ErrInvalidResponse{
			Endpoint: endpoint,
			Body:     raw,
			Err:      fmt.Errorf("invalid JSON: %w", err),
		}
	}

	compiled, err := getCompiledSchema(name)
	if err != nil {
		return &ErrInvalidResponse{
			Endpoint: endpoint,
			Body:     raw,
			Err:      fmt.Errorf("compile schema %q: %w", name, err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidResponse{
			Endpoint: endpoint,
			Body:     raw,
			Err:      fmt.Errorf("schema %q: %w", name, err),
		}
	}
	return nil
}

// validateAck checks raw for an explicit acknowledgment. A parseable body
// without one is reported as *ErrUnacknowledged.
func validateAck(endpoint string, raw []byte) error {
	if err := validate(endpoint, "object", raw); err != nil {
		return err
	}
	if err := validate(endpoint, "ack", raw); err != nil {
		var inv *ErrInvalidResponse
		if asInvalid(err, &inv) {
			return &ErrUnacknowledged{Endpoint: endpoint, Body: raw, Err: inv.Err}
		}
		return err
	}
	return nil
}

func asInvalid(err error, target **ErrInvalidResponse) bool {
	inv, ok := err.(*ErrInvalidResponse)
	if ok {
		*target = inv
	}
	return ok
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(name string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, ok := schemaDefs[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(def)))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
