package collect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pulsehealth/pulsehealth/internal/config"
	"github.com/pulsehealth/pulsehealth/pkg/types"
)

const exposition = `# HELP node_load1 1m load average.
# TYPE node_load1 gauge
node_load1 2.5
# HELP node_memory_used_pct Memory in use.
# TYPE node_memory_used_pct gauge
node_memory_used_pct 61.0
# HELP smart_reallocated_sectors Reallocated sector count.
# TYPE smart_reallocated_sectors counter
smart_reallocated_sectors{disk="sda"} 12
smart_reallocated_sectors{disk="sdb"} 3
`

func serveExposition(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.Write([]byte(body)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCollector_Collect(t *testing.T) {
	srv := serveExposition(t, exposition)

	c := New(config.CollectorConfig{
		Endpoint: srv.URL,
		Mappings: []config.MetricMapping{
			{Family: "node_load1", Category: types.CategoryCPU, Scale: 10},
			{Family: "node_memory_used_pct", Category: types.CategoryMemory},
			{Family: "smart_reallocated_sectors", Indicator: "reallocated_sectors"},
			{Family: "not_exposed_anywhere", Category: types.CategoryGPU},
		},
	})
	fixed := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	scan, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if !scan.Timestamp.Equal(fixed) {
		t.Errorf("Timestamp = %v, want %v", scan.Timestamp, fixed)
	}
	if len(scan.Samples) != 2 {
		t.Fatalf("got %d samples, want 2 (absent family skipped)", len(scan.Samples))
	}

	values := scan.Values()
	if got := values[types.CategoryCPU]; got != 25 {
		t.Errorf("cpu = %v, want 25 (2.5 scaled by 10)", got)
	}
	if got := values[types.CategoryMemory]; got != 61 {
		t.Errorf("memory = %v, want 61", got)
	}

	// Label sets are summed within a family: 12 + 3.
	if got := scan.Indicators["reallocated_sectors"]; got != 15 {
		t.Errorf("reallocated_sectors = %v, want 15", got)
	}
}

func TestCollector_NoMappedFamilies(t *testing.T) {
	srv := serveExposition(t, exposition)

	c := New(config.CollectorConfig{
		Endpoint: srv.URL,
		Mappings: []config.MetricMapping{
			{Family: "ghost_metric", Category: types.CategoryCPU},
		},
	})

	if _, err := c.Collect(context.Background()); err == nil {
		t.Fatal("Collect succeeded with no mapped families, want error")
	}
}

func TestCollector_EndpointDown(t *testing.T) {
	srv := serveExposition(t, exposition)
	url := srv.URL
	srv.Close()

	c := New(config.CollectorConfig{
		Endpoint: url,
		Mappings: []config.MetricMapping{{Family: "node_load1", Category: types.CategoryCPU}},
	})
	if _, err := c.Collect(context.Background()); err == nil {
		t.Fatal("Collect succeeded against a closed endpoint, want error")
	}
}

func TestCollector_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := New(config.CollectorConfig{
		Endpoint: srv.URL,
		Mappings: []config.MetricMapping{{Family: "node_load1", Category: types.CategoryCPU}},
	})
	if _, err := c.Collect(context.Background()); err == nil {
		t.Fatal("Collect succeeded on HTTP 500, want error")
	}
}
