package api

import (
	"github.com/gorilla/mux"
	"github.com/mylxsw/asteria/log"
	"github.com/mylxsw/glacier/infra"
	"github.com/mylxsw/glacier/web"
	"github.com/mylxsw/kimi-gateway/api/controllers"
	"github.com/mylxsw/kimi-gateway/api/ui"
	"github.com/mylxsw/kimi-gateway/config"
	"github.com/mylxsw/kimi-gateway/pkg/chat"
)

// buildRouter 注册路由规则
func buildRouter(resolver infra.Resolver, router web.Router, mw web.RequestMiddleware) {
	resolver.MustResolve(func(conf *config.Config, chatter *chat.Chatter, page *ui.Page) {
		log.F(log.M{
			"upstream": conf.Upstream.ServerURL,
			"models":   config.ModelIDs(conf.Models),
		}).Debugf("gateway initialized")

		routes(router, mw, conf, chatter, page)
	})
}

func routes(router web.Router, mw web.RequestMiddleware, conf *config.Config, sender controllers.Sender, page *ui.Page) {
	reqCounterMetric := BuildCounterVec(
		metricNamespace,
		"http_request_count",
		"http request counts",
		[]string{"method", "path", "code"},
	)
	chatCounterMetric := BuildCounterVec(
		metricNamespace,
		"chat_request_count",
		"chat proxy request counts by model and outcome",
		[]string{"model", "outcome"},
	)

	ctl := controllers.NewGatewayController(conf, sender, page, chatCounterMetric)

	// the token check wraps every route, the catch-all 404 included
	router.WithMiddleware(
		requestID(),
		accessLog(mw, reqCounterMetric),
		tokenAuth(conf.GatewayToken),
		ctl.Options,
	).Controllers("", ctl)
}

// muxRoutes configures the underlying router. Routes added here would be
// matched after the catch-all 404 route, so /metrics is served by the
// controller instead.
func muxRoutes(_ infra.Resolver, router *mux.Router) {
	// a cleaned path would be answered with a redirect echoing the token
	router.SkipClean(true)
}
