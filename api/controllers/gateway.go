package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mylxsw/asteria/log"
	"github.com/mylxsw/glacier/web"
	"github.com/mylxsw/go-utils/array"
	"github.com/mylxsw/kimi-gateway/api/ui"
	"github.com/mylxsw/kimi-gateway/config"
	"github.com/mylxsw/kimi-gateway/pkg/chat"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const NotFoundMessage = "Not Found"

// Chat outcomes, used as metric labels
const (
	OutcomeOK             = "ok"
	OutcomeMalformedInput = "malformed_input"
	OutcomeUpstreamError  = "upstream_error"
	OutcomeTransportError = "transport_error"
)

// OtherModel labels chat requests for models missing from the configuration
const OtherModel = "other"

// Sender relays a chat completion payload upstream
type Sender interface {
	Send(ctx context.Context, payload *chat.Payload) (json.RawMessage, error)
}

// ModelsResponse body of /api/models
type ModelsResponse struct {
	Models []config.Model `json:"models"`
}

// GatewayController serves the chat page, the model list, the chat proxy and
// the metrics endpoint. Every other path is answered with a 404.
type GatewayController struct {
	models       []config.Model
	knownModels  []string
	defaultModel string
	sender       Sender
	page         *ui.Page
	metrics      http.Handler
	chatCounter  *prometheus.CounterVec

	handlers map[string]web.WebHandler
}

// NewGatewayController creates a GatewayController, chatCounter must carry
// the model and outcome labels
func NewGatewayController(conf *config.Config, sender Sender, page *ui.Page, chatCounter *prometheus.CounterVec) *GatewayController {
	return &GatewayController{
		models:       conf.Models,
		knownModels:  append(config.ModelIDs(conf.Models), conf.Upstream.DefaultModel),
		defaultModel: conf.Upstream.DefaultModel,
		sender:       sender,
		page:         page,
		metrics:      promhttp.Handler(),
		chatCounter:  chatCounter,
		handlers:     make(map[string]web.WebHandler),
	}
}

func (ctl *GatewayController) Register(router web.Router) {
	ctl.any(router, "/", ctl.Home)
	ctl.any(router, "/api/chat", ctl.Chat)
	ctl.any(router, "/api/models", ctl.Models)
	ctl.any(router, "/metrics", ctl.Metrics)

	// registered last, matches whatever the routes above do not
	ctl.any(router, "/{path:.*}", ctl.NotFound)
}

func (ctl *GatewayController) any(router web.Router, path string, handler web.WebHandler) {
	ctl.handlers[path] = handler
	router.Any(path, handler)
}

// Options hands OPTIONS requests to the matched route handler. glacier answers
// them with an empty page before the route handler runs, which would give
// OPTIONS a different response from every other method.
func (ctl *GatewayController) Options(next web.WebHandler) web.WebHandler {
	return func(webCtx web.Context) web.Response {
		if webCtx.Method() != http.MethodOptions {
			return next(webCtx)
		}

		tpl, err := webCtx.CurrentRoute().GetPathTemplate()
		if err != nil {
			return next(webCtx)
		}

		if handler, ok := ctl.handlers[tpl]; ok {
			return handler(webCtx)
		}

		return next(webCtx)
	}
}

// Home returns the chat page
func (ctl *GatewayController) Home(webCtx web.Context) web.Response {
	return webCtx.HTML(ctl.page.HTML())
}

// Models returns the configured model list
func (ctl *GatewayController) Models(webCtx web.Context) web.Response {
	return webCtx.JSON(ModelsResponse{Models: ctl.models})
}

// Metrics exposes the prometheus metrics
func (ctl *GatewayController) Metrics(webCtx web.Context) web.Response {
	// raw responses report the recorded code to the access log
	webCtx.Response().SetCode(http.StatusOK)
	return webCtx.Raw(func(w http.ResponseWriter) {
		ctl.metrics.ServeHTTP(w, webCtx.Request().Raw())
	})
}

// NotFound answers every unknown path
func (ctl *GatewayController) NotFound(webCtx web.Context) web.Response {
	webCtx.Response().Header("Content-Type", "text/plain; charset=utf-8")
	return webCtx.Error(NotFoundMessage, http.StatusNotFound)
}

// Chat forwards the request body to the upstream chat completion API
func (ctl *GatewayController) Chat(webCtx web.Context) web.Response {
	payload, err := chat.BuildPayload(webCtx.Body(), ctl.defaultModel)
	if err != nil {
		return ctl.chatFailed(webCtx, OtherModel, err)
	}

	model := ctl.ModelLabel(payload.ModelName())

	res, err := ctl.sender.Send(webCtx.Context(), payload)
	if err != nil {
		return ctl.chatFailed(webCtx, model, err)
	}

	ctl.chatCounter.WithLabelValues(model, OutcomeOK).Inc()
	return webCtx.JSON(res)
}

func (ctl *GatewayController) chatFailed(webCtx web.Context, model string, err error) web.Response {
	status, msg, outcome := Classify(err)
	ctl.chatCounter.WithLabelValues(model, outcome).Inc()
	if outcome != OutcomeUpstreamError {
		log.F(log.M{"model": model, "outcome": outcome}).Warningf("chat request failed: %v", err)
	}

	return webCtx.JSONError(msg, status)
}

// ModelLabel returns model when it is configured and OtherModel otherwise,
// callers choose the model freely so the label set must stay bounded
func (ctl *GatewayController) ModelLabel(model string) string {
	if model != "" && array.In(model, ctl.knownModels) {
		return model
	}

	return OtherModel
}

// Classify maps a chat error to the response status, the error text
// returned to the caller and the outcome label
func Classify(err error) (int, string, string) {
	var upstreamErr *chat.UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.StatusCode, upstreamErr.Body, OutcomeUpstreamError
	}

	var malformedErr *chat.MalformedInputError
	if errors.As(err, &malformedErr) {
		return http.StatusInternalServerError, malformedErr.Error(), OutcomeMalformedInput
	}

	return http.StatusInternalServerError, err.Error(), OutcomeTransportError
}
