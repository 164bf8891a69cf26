package sampler

import (
	"fmt"
	"net/http"
)

// New creates a sampler based on kind and a generic configuration map.
// This is the central extension point for adding new sampler types.
//
// Supported kinds:
//   - "simulated": pseudo-random readings (the default in development)
//   - "http": generic JSON API sampler
//   - "prometheus": Prometheus instant-query sampler
//
// providers is forwarded to samplers that report per-provider status.
// client is optional and only used by network-backed samplers.
// Returns an error if kind is unknown or required fields are missing.
func New(kind string, config map[string]string, providers []string, client *http.Client) (Sampler, error) {
	switch kind {
	case "simulated":
		return NewSimulatedSampler(providers), nil
	case "http":
		return newHTTP(config, client)
	case "prometheus":
		return newPrometheus(config, client)
	default:
		return nil, fmt.Errorf("unknown sampler kind: %s (must be simulated, http, or prometheus)", kind)
	}
}

// newHTTP creates an HTTP sampler from generic config.
func newHTTP(config map[string]string, client *http.Client) (Sampler, error) {
	url := config["url"]
	if url == "" {
		return nil, fmt.Errorf("http sampler requires 'url' config")
	}

	cpuPath := config["cpuPath"]
	memoryPath := config["memoryPath"]
	diskPath := config["diskPath"]
	if cpuPath == "" || memoryPath == "" || diskPath == "" {
		return nil, fmt.Errorf("http sampler requires 'cpuPath', 'memoryPath' and 'diskPath' config")
	}

	var headers map[string]string
	if token := config["bearerToken"]; token != "" {
		headers = map[string]string{"Authorization": "Bearer " + token}
	}

	return &HTTPSampler{
		URL:        url,
		Headers:    headers,
		CPUPath:    cpuPath,
		MemoryPath: memoryPath,
		DiskPath:   diskPath,
		HTTPClient: client,
	}, nil
}

// newPrometheus creates a Prometheus sampler from generic config.
func newPrometheus(config map[string]string, client *http.Client) (Sampler, error) {
	cpuQuery := config["cpuQuery"]
	memoryQuery := config["memoryQuery"]
	diskQuery := config["diskQuery"]
	if cpuQuery == "" || memoryQuery == "" || diskQuery == "" {
		return nil, fmt.Errorf("prometheus sampler requires 'cpuQuery', 'memoryQuery' and 'diskQuery' config")
	}

	url := config["url"]
	if url == "" {
		url = "http://localhost:9090"
	}

	return &PrometheusSampler{
		ServerURL:   url,
		CPUQuery:    cpuQuery,
		MemoryQuery: memoryQuery,
		DiskQuery:   diskQuery,
		HTTPClient:  client,
	}, nil
}
