package chat

import (
	"github.com/mylxsw/glacier/infra"
	"github.com/mylxsw/kimi-gateway/config"
	"github.com/mylxsw/kimi-gateway/pkg/proxy"
	"github.com/mylxsw/kimi-gateway/pkg/telemetry"
)

type Provider struct{}

func (Provider) Register(binder infra.Binder) {
	binder.MustSingleton(func(conf *config.Config, pp *proxy.Proxy, tel *telemetry.Telemetry) *Chatter {
		return NewChatter(conf.Upstream, pp.BuildTransport(), tel.Tracer())
	})
}
