package sampler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// PrometheusSampler fetches the current utilization reading from the
// Prometheus HTTP API. It issues one /api/v1/query (instant query) call
// per metric. If a query returns multiple series, their values are SUMMED.
type PrometheusSampler struct {
	// ServerURL is the base URL to Prometheus, e.g. http://prometheus.monitoring.svc:9090
	ServerURL string

	// CPUQuery, MemoryQuery and DiskQuery are PromQL expressions that each
	// evaluate to a utilization percentage in [0,100]. All three are required.
	CPUQuery    string
	MemoryQuery string
	DiskQuery   string

	// HTTPClient is optional; if nil a default client with timeout is used.
	HTTPClient *http.Client
}

func (p *PrometheusSampler) Name() string { return "prometheus" }

// Sample implements Sampler. It evaluates the three configured queries
// against Prometheus and returns the combined reading. It respects the
// provided context for cancellation and deadlines.
func (p *PrometheusSampler) Sample(ctx context.Context) (Sample, error) {
	if p.ServerURL == "" {
		return Sample{}, errors.New("prometheus sampler: ServerURL is required")
	}
	if p.CPUQuery == "" || p.MemoryQuery == "" || p.DiskQuery == "" {
		return Sample{}, errors.New("prometheus sampler: CPUQuery, MemoryQuery and DiskQuery are required")
	}

	sample := Sample{Timestamp: time.Now().UTC()}

	for _, metric := range []struct {
		name  string
		query string
		dst   *float64
	}{
		{"cpu", p.CPUQuery, &sample.CPUPct},
		{"memory", p.MemoryQuery, &sample.MemoryPct},
		{"disk", p.DiskQuery, &sample.DiskPct},
	} {
		value, err := p.query(ctx, metric.query)
		if err != nil {
			return Sample{}, fmt.Errorf("%s query: %w", metric.name, err)
		}
		*metric.dst = value
	}

	return sample, nil
}

// query evaluates one instant query and sums the resulting vector.
func (p *PrometheusSampler) query(ctx context.Context, expr string) (float64, error) {
	u, err := url.Parse(p.ServerURL)
	if err != nil {
		return 0, fmt.Errorf("invalid ServerURL: %w", err)
	}
	u.Path = "/api/v1/query"

	q := u.Query()
	q.Set("query", expr)
	u.RawQuery = q.Encode()

	cli := p.HTTPClient
	if cli == nil {
		cli = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := cli.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("prometheus: status %d", resp.StatusCode)
	}

	var pr prometheusInstantResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return 0, fmt.Errorf("decode prometheus response: %w", err)
	}
	if pr.Status != "success" {
		return 0, fmt.Errorf("prometheus status: %s", pr.Status)
	}

	var total float64
	for _, serie := range pr.Data.Result {
		if len(serie.Value) != 2 {
			return 0, fmt.Errorf("invalid value pair length: %d", len(serie.Value))
		}
		raw, ok := serie.Value[1].(string)
		if !ok {
			return 0, fmt.Errorf("unexpected value type %T", serie.Value[1])
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("parse value: %w", err)
		}
		total += v
	}

	return total, nil
}

// prometheusInstantResponse represents the response from Prometheus
// (and compatible systems) for an instant query.
type prometheusInstantResponse struct {
	Status string `json:"status"`
	Data   struct {
		ResultType string `json:"resultType"`
		Result     []struct {
			Metric map[string]string `json:"metric"`
			// Value is [ <unix_time_float>, "<value_string>" ]
			Value []any `json:"value"`
		} `json:"result"`
	} `json:"data"`
}
