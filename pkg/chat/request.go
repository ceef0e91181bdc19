package chat

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Values used for body fields the caller left out
var (
	DefaultMessages    = json.RawMessage(`[]`)
	DefaultTemperature = json.RawMessage(`0.7`)
	DefaultMaxTokens   = json.RawMessage(`1000`)
	DefaultStream      = json.RawMessage(`false`)
)

var errNullBody = errors.New("request body must not be null")

// Payload is the chat completion request sent upstream. Fields hold the caller's
// raw JSON values, nothing is validated.
type Payload struct {
	Model       json.RawMessage `json:"model"`
	Messages    json.RawMessage `json:"messages"`
	Temperature json.RawMessage `json:"temperature"`
	MaxTokens   json.RawMessage `json:"max_tokens"`
	Stream      json.RawMessage `json:"stream"`
}

// ModelName returns the model as a string, or "" when it is not one
func (p Payload) ModelName() string {
	var name string
	_ = json.Unmarshal(p.Model, &name)
	return name
}

// BuildPayload parses body and fills absent or null fields with defaults.
// A JSON value other than an object carries no fields, so every default applies.
func BuildPayload(body []byte, defaultModel string) (*Payload, error) {
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &MalformedInputError{Err: err}
	}

	if doc == nil {
		return nil, &MalformedInputError{Err: errNullBody}
	}

	fields := make(map[string]json.RawMessage)
	if _, ok := doc.(map[string]interface{}); ok {
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, &MalformedInputError{Err: err}
		}
	}

	model, _ := json.Marshal(defaultModel)

	return &Payload{
		Model:       field(fields, "model", model),
		Messages:    field(fields, "messages", DefaultMessages),
		Temperature: field(fields, "temperature", DefaultTemperature),
		MaxTokens:   field(fields, "max_tokens", DefaultMaxTokens),
		Stream:      field(fields, "stream", DefaultStream),
	}, nil
}

func field(fields map[string]json.RawMessage, key string, def json.RawMessage) json.RawMessage {
	v, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return def
	}

	return v
}
