package metrics

import (
	"github.com/openlot/parkd/core/factory"
	coremetrics "github.com/openlot/parkd/core/metrics"
)

type influxConf struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

func init() {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(coremetrics.RegisterMetricsSink("nop", func(map[string]any) (coremetrics.MetricsSink, error) {
		return coremetrics.NopSink{}, nil
	}))
	must(coremetrics.RegisterMetricsSink("prom", func(map[string]any) (coremetrics.MetricsSink, error) {
		return NewPromSink()
	}))
	must(coremetrics.RegisterMetricsSink("influx", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c influxConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	}))
}
