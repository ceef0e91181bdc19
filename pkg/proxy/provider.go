package proxy

import (
	"github.com/mylxsw/asteria/log"
	"github.com/mylxsw/glacier/infra"
	"github.com/mylxsw/kimi-gateway/config"
)

type Provider struct{}

func (Provider) Register(binder infra.Binder) {
	binder.MustSingleton(func(conf *config.Config) (*Proxy, error) {
		pp, err := New(conf.ProxyURL)
		if err != nil {
			log.Errorf("invalid proxy url: %s", conf.ProxyURL)
			return nil, err
		}

		return pp, nil
	})
}
