package api

import (
	"fmt"
	"sync"

	"github.com/mylxsw/asteria/log"
	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "kimi_gateway"

var counterVecs = make(map[string]*prometheus.CounterVec)
var lock sync.Mutex

// BuildCounterVec creates and registers a counter, the same counter is
// returned for repeated calls with the same namespace, name and help
func BuildCounterVec(namespace, name, help string, tags []string) *prometheus.CounterVec {
	lock.Lock()
	defer lock.Unlock()

	cacheKey := fmt.Sprintf("%s:%s:%s", namespace, name, help)
	if sv, ok := counterVecs[cacheKey]; ok {
		return sv
	}

	counterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, tags)

	if err := prometheus.Register(counterVec); err != nil {
		log.Errorf("register prometheus metric failed: %v", err)
	}

	counterVecs[cacheKey] = counterVec

	return counterVec
}
