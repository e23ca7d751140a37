package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCartMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewCartMetrics(reg)

	metrics.IncEvent("added")
	metrics.IncEvent("added")
	metrics.IncEvent("")
	metrics.ObserveStorage("redis", "save", 250*time.Millisecond, nil)
	metrics.ObserveStorage("redis", "load", 10*time.Millisecond, errors.New("timeout"))

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "cart_events_total", "kind", "added"); err != nil {
		t.Fatalf("fetch events: %v", err)
	} else if got != 2 {
		t.Fatalf("expected added=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "cart_events_total", "kind", "unknown"); err != nil {
		t.Fatalf("fetch unknown events: %v", err)
	} else if got != 1 {
		t.Fatalf("expected unknown=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "cart_storage_failures_total", "op", "load"); err != nil {
		t.Fatalf("fetch failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected load failures=1, got %f", got)
	}

	if _, err := fetchCounterValue(mfs, "cart_storage_failures_total", "op", "save"); err == nil {
		t.Fatalf("successful saves must not count as failures")
	}

	if got, err := fetchHistogramSum(mfs, "cart_storage_duration_seconds", "op", "save"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestNilCartMetricsAreSafe(t *testing.T) {
	var metrics *CartMetrics
	metrics.IncEvent("added")
	metrics.ObserveStorage("sql", "save", time.Second, nil)

	unregistered := NewCartMetrics(nil)
	unregistered.IncEvent("added")
	unregistered.ObserveStorage("sql", "save", time.Second, errors.New("boom"))
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
