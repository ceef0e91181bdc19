package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func env(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "gateway_token: secret\nupstream:\n  api_key: sk-test\n")

	conf, err := Load(path, true, env(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.Upstream.ServerURL != DefaultServerURL {
		t.Fatalf("expected server url %q, got %q", DefaultServerURL, conf.Upstream.ServerURL)
	}
	if conf.Upstream.DefaultModel != "moonshot-v1-8k" {
		t.Fatalf("expected default model moonshot-v1-8k, got %q", conf.Upstream.DefaultModel)
	}
	if conf.Upstream.Timeout != 0 {
		t.Fatalf("expected no timeout, got %s", conf.Upstream.Timeout)
	}
	if len(conf.Models) != 3 {
		t.Fatalf("expected 3 default models, got %d", len(conf.Models))
	}
	if conf.Models[2].ID != "moonshot-v1-128k" || conf.Models[2].Context != 128000 {
		t.Fatalf("unexpected third model: %+v", conf.Models[2])
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
gateway_token: secret
proxy_url: http://127.0.0.1:7890
upstream:
  server_url: http://localhost:9000/v1
  api_key: sk-test
  default_model: moonshot-v1-32k
  timeout: 30s
models:
  - id: moonshot-v1-32k
    name: Kimi 32K
    context: 32768
`)

	conf, err := Load(path, true, env(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.Upstream.ChatCompletionsURL() != "http://localhost:9000/v1/chat/completions" {
		t.Fatalf("unexpected chat url %q", conf.Upstream.ChatCompletionsURL())
	}
	if conf.Upstream.Timeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %s", conf.Upstream.Timeout)
	}
	if conf.ProxyURL != "http://127.0.0.1:7890" {
		t.Fatalf("unexpected proxy url %q", conf.ProxyURL)
	}
	if len(conf.Models) != 1 || conf.Models[0].Name != "Kimi 32K" {
		t.Fatalf("unexpected models: %+v", conf.Models)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "gateway_token: from-file\nupstream:\n  api_key: file-key\n")

	conf, err := Load(path, true, env(map[string]string{
		EnvGatewayToken: "from-env",
		EnvAPIKey:       "env-key",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.GatewayToken != "from-env" {
		t.Fatalf("expected token from env, got %q", conf.GatewayToken)
	}
	if conf.Upstream.APIKey != "env-key" {
		t.Fatalf("expected api key from env, got %q", conf.Upstream.APIKey)
	}
}

func TestLoad_MissingOptionalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	conf, err := Load(path, false, env(map[string]string{
		EnvGatewayToken: "secret",
		EnvAPIKey:       "sk-test",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.GatewayToken != "secret" {
		t.Fatalf("expected token secret, got %q", conf.GatewayToken)
	}
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	if _, err := Load(path, true, env(nil)); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "gateway_token: [unclosed\n")

	if _, err := Load(path, true, env(nil)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_Validation(t *testing.T) {
	path := writeConfig(t, "upstream:\n  api_key: sk-test\n")
	if _, err := Load(path, true, env(nil)); !errors.Is(err, ErrGatewayTokenRequired) {
		t.Fatalf("expected ErrGatewayTokenRequired, got %v", err)
	}

	path = writeConfig(t, "gateway_token: secret\n")
	if _, err := Load(path, true, env(nil)); !errors.Is(err, ErrAPIKeyRequired) {
		t.Fatalf("expected ErrAPIKeyRequired, got %v", err)
	}
}

func TestModelIDs(t *testing.T) {
	ids := ModelIDs(DefaultModels())
	expected := []string{"moonshot-v1-8k", "moonshot-v1-32k", "moonshot-v1-128k"}
	if len(ids) != len(expected) {
		t.Fatalf("expected %d ids, got %d", len(expected), len(ids))
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Fatalf("expected %q at %d, got %q", expected[i], i, ids[i])
		}
	}
}
