package controllers

import (
	"errors"
	"testing"

	"github.com/mylxsw/kimi-gateway/config"
	"github.com/mylxsw/kimi-gateway/pkg/chat"
	"github.com/prometheus/client_golang/prometheus"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		msg     string
		outcome string
	}{
		{&chat.UpstreamError{StatusCode: 401, Body: "bad key"}, 401, "bad key", OutcomeUpstreamError},
		{&chat.MalformedInputError{Err: errors.New("unexpected end of JSON input")}, 500, "unexpected end of JSON input", OutcomeMalformedInput},
		{&chat.TransportError{Err: errors.New("timeout")}, 500, "timeout", OutcomeTransportError},
	}

	for _, c := range cases {
		status, msg, outcome := Classify(c.err)
		if status != c.status || msg != c.msg || outcome != c.outcome {
			t.Fatalf("Classify(%v) = (%d, %q, %q), expected (%d, %q, %q)", c.err, status, msg, outcome, c.status, c.msg, c.outcome)
		}
	}
}

func TestModelLabel(t *testing.T) {
	conf := &config.Config{
		Upstream: config.UpstreamConfig{APIKey: "sk-test", DefaultModel: "moonshot-v1-auto"},
		Models:   []config.Model{{ID: "moonshot-v1-8k"}},
	}
	conf.Init()

	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_chat_request_count"}, []string{"model", "outcome"})
	ctl := NewGatewayController(conf, nil, nil, counter)

	cases := map[string]string{
		"moonshot-v1-8k":   "moonshot-v1-8k",
		"moonshot-v1-auto": "moonshot-v1-auto",
		"moonshot-v1-32k":  OtherModel,
		"":                 OtherModel,
	}
	for model, expected := range cases {
		if got := ctl.ModelLabel(model); got != expected {
			t.Fatalf("ModelLabel(%q) = %q, expected %q", model, got, expected)
		}
	}
}
