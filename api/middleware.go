package api

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/hashicorp/go-uuid"
	"github.com/mylxsw/asteria/log"
	"github.com/mylxsw/glacier/web"
	"github.com/mylxsw/go-utils/must"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	unauthorizedMessage     = "Unauthorized: invalid or missing token"
	unauthorizedRootMessage = unauthorizedMessage + ". Add ?token=YOUR_TOKEN to the URL."
)

const requestIDHeader = "X-Request-Id"

// tokenAuth rejects requests whose token query parameter is not the gateway
// token. It runs before routing, unknown paths are rejected the same way.
func tokenAuth(token string) web.HandlerDecorator {
	return func(handler web.WebHandler) web.WebHandler {
		return func(webCtx web.Context) web.Response {
			req := webCtx.Request().Raw()
			if !validToken(token, req.URL.Query().Get("token")) {
				msg := unauthorizedMessage
				if req.URL.Path == "/" || req.URL.Path == "" {
					msg = unauthorizedRootMessage
				}

				webCtx.Response().Header("Content-Type", "text/plain; charset=utf-8")
				return webCtx.Error(msg, http.StatusUnauthorized)
			}

			return handler(webCtx)
		}
	}
}

// validToken compares in constant time, an empty gateway token accepts nothing
func validToken(expected, given string) bool {
	if expected == "" || given == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(given), []byte(expected)) == 1
}

// requestID tags the request and the response with a generated id
func requestID() web.HandlerDecorator {
	return func(handler web.WebHandler) web.WebHandler {
		return func(webCtx web.Context) web.Response {
			id := must.Must(uuid.GenerateUUID())
			webCtx.Request().Raw().Header.Set(requestIDHeader, id)
			webCtx.Response().Raw().Header().Set(requestIDHeader, id)

			return handler(webCtx)
		}
	}
}

// accessLog records every request, rejected ones included, in the access log
// and the request counter
func accessLog(mw web.RequestMiddleware, counter *prometheus.CounterVec) web.HandlerDecorator {
	return mw.CustomAccessLog(func(cal web.CustomAccessLog) {
		path, _ := cal.Context.CurrentRoute().GetPathTemplate()
		counter.WithLabelValues(cal.Method, path, strconv.Itoa(cal.ResponseCode)).Inc()

		// the query string carries the gateway token, only the path is logged
		log.F(log.M{
			"request_id": cal.Context.Header(requestIDHeader),
			"method":     cal.Method,
			"path":       cal.Context.Request().Raw().URL.Path,
			"code":       cal.ResponseCode,
			"elapse":     cal.Elapse.Milliseconds(),
			"ip":         cal.Context.Header("X-Real-IP"),
		}).Debug("request")
	})
}
