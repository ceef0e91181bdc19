package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mylxsw/asteria/log"
	"github.com/mylxsw/kimi-gateway/config"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/resty.v1"
)

var errInvalidUpstreamJSON = errors.New("upstream returned a response that is not valid JSON")

// Chatter forwards chat completion requests to the upstream API
type Chatter struct {
	conf   config.UpstreamConfig
	client *resty.Client
	tracer trace.Tracer
}

// NewChatter creates a Chatter sending requests through transport
func NewChatter(conf config.UpstreamConfig, transport *http.Transport, tracer trace.Tracer) *Chatter {
	// resty.New attaches a cookie jar, upstream cookies must not leak between callers
	client := resty.New().SetTransport(transport).SetCookieJar(nil)
	if conf.Timeout > 0 {
		client.SetTimeout(conf.Timeout)
	}

	return &Chatter{conf: conf, client: client, tracer: tracer}
}

// Send posts payload upstream and returns the upstream JSON unchanged.
// Failures are *MalformedInputError, *UpstreamError or *TransportError.
func (chat *Chatter) Send(ctx context.Context, payload *Payload) (json.RawMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, &MalformedInputError{Err: err}
	}

	model := payload.ModelName()

	ctx, span := chat.tracer.Start(ctx, "chat.completions", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("chat.model", model))

	startTime := time.Now()
	resp, err := chat.client.R().
		SetContext(ctx).
		SetAuthToken(chat.conf.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(data).
		Post(chat.conf.ChatCompletionsURL())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream request failed")
		log.F(log.M{"model": model, "elapse": time.Since(startTime).Milliseconds()}).
			Errorf("upstream request failed: %v", err)
		return nil, &TransportError{Err: err}
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))

	log.F(log.M{
		"model":  model,
		"status": resp.StatusCode(),
		"elapse": time.Since(startTime).Milliseconds(),
	}).Debugf("upstream request finished")

	if !resp.IsSuccess() {
		span.SetStatus(codes.Error, "upstream responded with an error")
		return nil, &UpstreamError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	if !json.Valid(resp.Body()) {
		span.SetStatus(codes.Error, errInvalidUpstreamJSON.Error())
		return nil, &TransportError{Err: errInvalidUpstreamJSON}
	}

	return resp.Body(), nil
}
