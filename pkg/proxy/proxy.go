package proxy

import (
	"fmt"
	"net/http"
	"net/url"
)

// Proxy decides which proxy server an outbound request goes through
type Proxy struct {
	http func(*http.Request) (*url.URL, error)
}

// New creates a Proxy for proxyURL, an empty proxyURL falls back to
// HTTP_PROXY/HTTPS_PROXY/NO_PROXY from the environment
func New(proxyURL string) (*Proxy, error) {
	if proxyURL == "" {
		return &Proxy{http: http.ProxyFromEnvironment}, nil
	}

	p, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy url %q: %w", proxyURL, err)
	}

	return &Proxy{http: http.ProxyURL(p)}, nil
}

// BuildTransport returns a transport routed through the proxy
func (pp *Proxy) BuildTransport() *http.Transport {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = pp.http
	return transport
}
