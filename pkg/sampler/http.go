package sampler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// HTTPSampler is a generic sampler that calls any REST API endpoint and
// extracts the current cpu/memory/disk percentages using JSON path
// expressions.
//
// It supports:
//   - Custom headers including authentication (Bearer tokens, API keys, etc.)
//   - JSON path extraction using gjson syntax
//   - An injected HTTP client (for timeouts and mTLS)
//
// Example configuration for a node-exporter style API:
//
//	sampler := &HTTPSampler{
//	    URL: "https://telemetry.example.com/v1/host",
//	    Headers: map[string]string{
//	        "Authorization": "Bearer abc123",
//	    },
//	    CPUPath:    "host.cpu.used_percent",
//	    MemoryPath: "host.memory.used_percent",
//	    DiskPath:   "host.disk.used_percent",
//	}
type HTTPSampler struct {
	// URL is the endpoint to call (required).
	URL string

	// Headers are custom HTTP headers to include in the request.
	Headers map[string]string

	// CPUPath, MemoryPath and DiskPath are gjson paths to the current
	// utilization percentages in the response body. All three are required.
	CPUPath    string
	MemoryPath string
	DiskPath   string

	// HTTPClient is optional; if nil a default client with timeout is used.
	HTTPClient *http.Client
}

func (h *HTTPSampler) Name() string { return "http" }

// Sample implements Sampler. It calls the configured endpoint and extracts
// the three utilization readings from the JSON response.
func (h *HTTPSampler) Sample(ctx context.Context) (Sample, error) {
	if h.URL == "" {
		return Sample{}, errors.New("http sampler: URL is required")
	}
	if h.CPUPath == "" || h.MemoryPath == "" || h.DiskPath == "" {
		return Sample{}, errors.New("http sampler: CPUPath, MemoryPath and DiskPath are required")
	}

	cli := h.HTTPClient
	if cli == nil {
		cli = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return Sample{}, err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range h.Headers {
		req.Header.Set(k, v)
	}

	resp, err := cli.Do(req)
	if err != nil {
		return Sample{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Sample{}, fmt.Errorf("http sampler: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Sample{}, fmt.Errorf("read response: %w", err)
	}

	if !gjson.ValidBytes(body) {
		return Sample{}, errors.New("http sampler: response is not valid JSON")
	}

	sample := Sample{Timestamp: time.Now().UTC()}

	for _, field := range []struct {
		name string
		path string
		dst  *float64
	}{
		{"cpu", h.CPUPath, &sample.CPUPct},
		{"memory", h.MemoryPath, &sample.MemoryPct},
		{"disk", h.DiskPath, &sample.DiskPct},
	} {
		result := gjson.GetBytes(body, field.path)
		if !result.Exists() {
			return Sample{}, fmt.Errorf("http sampler: path %q (%s) not found in response", field.path, field.name)
		}
		value := result.Float()
		if value < 0 || value > 100 {
			return Sample{}, fmt.Errorf("http sampler: %s value %.2f outside [0,100]", field.name, value)
		}
		*field.dst = value
	}

	return sample, nil
}
