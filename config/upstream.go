package config

import "time"

// DefaultServerURL is the Moonshot (Kimi) OpenAI compatible API root
const DefaultServerURL = "https://api.moonshot.cn/v1"

type UpstreamConfig struct {
	// ServerURL API root, the chat endpoint is ServerURL + /chat/completions
	ServerURL string `json:"server_url,omitempty" yaml:"server_url,omitempty"`
	// APIKey upstream credential, sent as a bearer token
	APIKey string `json:"-" yaml:"api_key,omitempty"`
	// DefaultModel model used when the request does not name one
	DefaultModel string `json:"default_model,omitempty" yaml:"default_model,omitempty"`
	// Timeout bounds a single upstream call, zero means no limit
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// ChatCompletionsURL returns the full chat completions endpoint
func (conf UpstreamConfig) ChatCompletionsURL() string {
	return conf.ServerURL + "/chat/completions"
}
