package metrics

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusExporter exports collected metrics as Prometheus counters,
// gauges, and histograms, registered lazily on first sight of each metric
// name since the set of names (per-format, per-credential-type counters)
// is not known until a run starts.
type PrometheusExporter struct {
	registry *prometheus.Registry

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

// NewPrometheusExporter creates an exporter backed by its own registry (not
// the global default), so tests and multiple Orchestrators in one process
// don't collide on metric names.
func NewPrometheusExporter() *PrometheusExporter {
	return &PrometheusExporter{
		registry:   prometheus.NewRegistry(),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

// Handler returns an http.Handler serving this exporter's metrics in the
// Prometheus text exposition format, suitable for mounting at /metrics.
func (e *PrometheusExporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// Export records each metric against its Prometheus counterpart, keyed by
// metric name and registered on first use.
func (e *PrometheusExporter) Export(ms []Metric) error {
	for _, m := range ms {
		labelNames, labelValues := splitLabels(m.Labels)
		switch m.Type {
		case TypeCounter:
			vec, err := e.counterVec(m.Name, labelNames)
			if err != nil {
				return err
			}
			vec.WithLabelValues(labelValues...).Add(m.Value)
		case TypeGauge:
			vec, err := e.gaugeVec(m.Name, labelNames)
			if err != nil {
				return err
			}
			vec.WithLabelValues(labelValues...).Set(m.Value)
		case TypeDuration:
			vec, err := e.histogramVec(m.Name, labelNames)
			if err != nil {
				return err
			}
			vec.WithLabelValues(labelValues...).Observe(m.Value / 1000.0)
		}
	}
	return nil
}

func (e *PrometheusExporter) counterVec(name string, labelNames []string) (*prometheus.CounterVec, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := vecKey(name, labelNames)
	if vec, ok := e.counters[key]; ok {
		return vec, nil
	}
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: sanitizeMetricName(name),
		Help: fmt.Sprintf("forge counter %s", name),
	}, labelNames)
	if err := e.registry.Register(vec); err != nil {
		return nil, err
	}
	e.counters[key] = vec
	return vec, nil
}

func (e *PrometheusExporter) gaugeVec(name string, labelNames []string) (*prometheus.GaugeVec, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := vecKey(name, labelNames)
	if vec, ok := e.gauges[key]; ok {
		return vec, nil
	}
	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: sanitizeMetricName(name),
		Help: fmt.Sprintf("forge gauge %s", name),
	}, labelNames)
	if err := e.registry.Register(vec); err != nil {
		return nil, err
	}
	e.gauges[key] = vec
	return vec, nil
}

func (e *PrometheusExporter) histogramVec(name string, labelNames []string) (*prometheus.HistogramVec, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := vecKey(name, labelNames)
	if vec, ok := e.histograms[key]; ok {
		return vec, nil
	}
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    sanitizeMetricName(name) + "_seconds",
		Help:    fmt.Sprintf("forge duration %s", name),
		Buckets: prometheus.DefBuckets,
	}, labelNames)
	if err := e.registry.Register(vec); err != nil {
		return nil, err
	}
	e.histograms[key] = vec
	return vec, nil
}

// vecKey distinguishes two metrics of the same name but different label
// sets, which would otherwise collide on re-registration.
func vecKey(name string, labelNames []string) string {
	return name + "|" + strings.Join(labelNames, ",")
}

// sanitizeMetricName converts a dotted metric name (e.g. "forge.run.duration")
// into the underscore-separated form Prometheus metric names require.
func sanitizeMetricName(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}

// splitLabels deterministically orders a label map into parallel name/value
// slices, since prometheus.CounterVec requires a stable label name order.
func splitLabels(labels map[string]string) ([]string, []string) {
	if len(labels) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(labels))
	for k := range labels {
		names = append(names, k)
	}
	sortStrings(names)
	values := make([]string, len(names))
	for i, n := range names {
		values[i] = labels[n]
	}
	return names, values
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
