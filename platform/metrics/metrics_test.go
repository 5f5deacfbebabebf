package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestQuoteMetricsRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewQuoteMetrics(reg)

	m.IncEstimate("Rent", "outside_radius")
	m.IncEstimate("Rent", "outside_radius")
	m.IncSubmission("")
	m.IncEmail("operator", "success")
	m.ObserveGeocode("ok", 120*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := map[string]*dto.MetricFamily{}
	for _, f := range families {
		found[f.GetName()] = f
	}

	est := found["quote_estimates_total"]
	if est == nil || len(est.GetMetric()) != 1 {
		t.Fatalf("expected one estimate series, got %+v", est)
	}
	if v := est.GetMetric()[0].GetCounter().GetValue(); v != 2 {
		t.Fatalf("expected estimate counter 2, got %v", v)
	}

	sub := found["quote_submissions_total"]
	if sub == nil {
		t.Fatal("expected submissions metric")
	}
	labels := sub.GetMetric()[0].GetLabel()
	if len(labels) != 1 || labels[0].GetValue() != "unknown" {
		t.Fatalf("expected empty outcome to normalize to unknown, got %+v", labels)
	}

	if found["geocode_duration_seconds"] == nil {
		t.Fatal("expected geocode histogram")
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	m := NewQuoteMetrics(nil)
	m.IncEstimate("Sale", "not_applicable")
	m.ObserveGeocode("error", time.Second)

	var nilMetrics *QuoteMetrics
	nilMetrics.IncEmail("customer", "failure")
}
