package telemetry

import (
	"context"
	"time"

	"github.com/mylxsw/asteria/log"
	"github.com/mylxsw/glacier/infra"
	"github.com/mylxsw/kimi-gateway/config"
)

// Version is stamped into the trace resource
var Version = DefaultVersion

type Provider struct{}

func (Provider) Register(binder infra.Binder) {
	binder.MustSingleton(func(conf *config.Config) (*Telemetry, error) {
		return New(context.Background(), conf.TracePath, Version)
	})
}

// Daemon waits for the application to stop, then flushes pending spans
func (Provider) Daemon(ctx context.Context, resolver infra.Resolver) {
	resolver.MustResolve(func(tel *Telemetry) {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := tel.Shutdown(shutdownCtx); err != nil {
			log.Errorf("telemetry shutdown failed: %v", err)
		}
	})
}
