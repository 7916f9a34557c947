package collect

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/pulsehealth/pulsehealth/internal/config"
	"github.com/pulsehealth/pulsehealth/pkg/types"
)

const defaultCollectTimeout = 10 * time.Second

// Collector pulls one Prometheus text-format endpoint and turns configured
// metric families into a Scan: category samples for severity scores and
// raw indicator readings for failure extrapolation.
type Collector struct {
	endpoint string
	mappings []config.MetricMapping
	client   *http.Client

	now func() time.Time // injectable for deterministic tests
}

// New creates a Collector for the configured endpoint.
func New(cfg config.CollectorConfig) *Collector {
	return &Collector{
		endpoint: cfg.Endpoint,
		mappings: cfg.Mappings,
		client:   &http.Client{Timeout: defaultCollectTimeout},
		now:      time.Now,
	}
}

// Collect fetches the endpoint and builds a Scan from the configured
// mappings. Families absent from the exposition are skipped with a debug
// log; a scan with zero mapped values is an error, since the engine cannot
// analyze an empty scan.
func (c *Collector) Collect(ctx context.Context) (types.Scan, error) {
	mfs, err := fetchMetrics(ctx, c.client, c.endpoint)
	if err != nil {
		return types.Scan{}, fmt.Errorf("collect %q: %w", c.endpoint, err)
	}

	ts := c.now().UTC()
	scan := types.Scan{Timestamp: ts}

	for _, m := range c.mappings {
		mf, ok := mfs[m.Family]
		if !ok {
			slog.Debug("collect: metric family not exposed", "family", m.Family)
			continue
		}

		value := sumFamily(mf)
		if m.Scale != 0 {
			value *= m.Scale
		}

		if m.Indicator != "" {
			if scan.Indicators == nil {
				scan.Indicators = make(map[string]float64)
			}
			scan.Indicators[m.Indicator] = value
			continue
		}

		scan.Samples = append(scan.Samples, types.Sample{
			Category:  m.Category,
			Value:     value,
			Timestamp: ts,
		})
	}

	if len(scan.Samples) == 0 && len(scan.Indicators) == 0 {
		return types.Scan{}, fmt.Errorf("collect %q: no configured metric families present", c.endpoint)
	}
	return scan, nil
}

// fetchMetrics performs an HTTP GET to url and returns parsed metric families.
func fetchMetrics(ctx context.Context, client *http.Client, url string) (map[string]*dto.MetricFamily, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", string(expfmt.NewFormat(expfmt.TypeTextPlain)))

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return parseMetrics(resp.Body)
}

// parseMetrics decodes a Prometheus text exposition from r into metric
// families. A partial result with a non-fatal parse warning still counts
// as success.
func parseMetrics(r io.Reader) (map[string]*dto.MetricFamily, error) {
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(r)
	if err != nil && len(mfs) == 0 {
		return nil, fmt.Errorf("parse prometheus text: %w", err)
	}
	return mfs, nil
}

// sumFamily adds up all counter, gauge, or untyped values in a MetricFamily.
// Returns 0 if mf is nil.
func sumFamily(mf *dto.MetricFamily) float64 {
	if mf == nil {
		return 0
	}
	var total float64
	for _, m := range mf.GetMetric() {
		switch {
		case m.Counter != nil:
			total += m.Counter.GetValue()
		case m.Gauge != nil:
			total += m.Gauge.GetValue()
		case m.Untyped != nil:
			total += m.Untyped.GetValue()
		}
	}
	return total
}
