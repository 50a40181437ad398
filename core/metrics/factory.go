package metrics

import "github.com/betsim/betroute/core/factory"

// Config defines the metrics sinks to instantiate and the address of the
// Prometheus scrape endpoint, when enabled.
type Config struct {
	Sinks          []factory.ModuleConfig `json:"sinks"`
	PrometheusAddr string                 `json:"prometheus_addr"`
}

var sinkRegistry = factory.NewRegistry[MetricsSink]()

// RegisterMetricsSink adds a sink factory under the given type name.
func RegisterMetricsSink(name string, f factory.Factory[MetricsSink]) error {
	return sinkRegistry.Register(name, f)
}

// NewMetricsSink instantiates a sink from its module configuration.
func NewMetricsSink(cfg factory.ModuleConfig) (MetricsSink, error) {
	return sinkRegistry.Create(cfg)
}

func init() {
	_ = RegisterMetricsSink("nop", func(map[string]any) (MetricsSink, error) {
		return NopSink{}, nil
	})
}
