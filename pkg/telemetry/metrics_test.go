package telemetry

import (
	stderrors "errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/vango-dev/vdsl/pkg/dsl"
	"github.com/vango-dev/vdsl/pkg/vdom"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func TestPrometheusRecordsRenders(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := Prometheus(WithRegistry(reg), WithNamespace("test"))
	c := dsl.NewContext(dsl.WithObserver(m))

	if _, err := c.Render("div", func() (any, error) { return c.Tag("span") }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Scope(func() (any, error) { return 1, nil }); err == nil {
		t.Fatal("expected improper render")
	}

	if got := metricCounterValue(t, m.rendersTotal.WithLabelValues("div", StatusOK)); got != 1 {
		t.Errorf("renders_total(div, ok) = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.rendersTotal.WithLabelValues("scope", StatusImproper)); got != 1 {
		t.Errorf("renders_total(scope, improper) = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.improperTotal.WithLabelValues("E104")); got != 1 {
		t.Errorf("improper_renders_total(E104) = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.renderDuration.WithLabelValues("div")); got != 1 {
		t.Errorf("render_duration_seconds(div) count = %d, want 1", got)
	}
	if got := metricHistogramCount(t, m.renderElements); got != 2 {
		t.Errorf("render_elements count = %d, want 2", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "test_renders_total" {
			found = true
		}
	}
	if !found {
		t.Error("test_renders_total not registered")
	}
}

func TestPrometheusRecordsWaitingAndNotQuiet(t *testing.T) {
	m := Prometheus(WithRegistry(prometheus.NewRegistry()))

	lenient := dsl.NewContext(dsl.WithObserver(m))
	if _, err := lenient.Render("td", func() (any, error) {
		lenient.MarkWaiting()
		return "…", nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := metricCounterValue(t, m.waitingTotal); got != 1 {
		t.Errorf("waiting_renders_total = %v, want 1", got)
	}

	strict := dsl.NewContext(dsl.WithStrict(true), dsl.WithObserver(m))
	if _, err := strict.Render("td", func() (any, error) {
		strict.MarkWaiting()
		return "…", nil
	}); !stderrors.Is(err, dsl.ErrNotQuiet) {
		t.Fatalf("err = %v, want ErrNotQuiet", err)
	}
	if got := metricCounterValue(t, m.rendersTotal.WithLabelValues("td", StatusNotQuiet)); got != 1 {
		t.Errorf("renders_total(td, not_quiet) = %v, want 1", got)
	}
}

func TestStatusAndCode(t *testing.T) {
	c := dsl.NewContext()
	_, improper := c.Scope(func() (any, error) { return vdom.Func(nil), nil })
	plain := stderrors.New("boom")

	tests := []struct {
		name       string
		err        error
		wantStatus string
		wantCode   string
	}{
		{"nil", nil, StatusOK, ""},
		{"improper", improper, StatusImproper, "E103"},
		{"not quiet", dsl.ErrNotQuiet, StatusNotQuiet, "E110"},
		{"plain", plain, StatusError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.err); got != tt.wantStatus {
				t.Errorf("Status() = %q, want %q", got, tt.wantStatus)
			}
			if got := Code(tt.err); got != tt.wantCode {
				t.Errorf("Code() = %q, want %q", got, tt.wantCode)
			}
		})
	}
}
