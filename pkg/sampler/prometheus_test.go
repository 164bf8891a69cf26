package sampler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func promBody(value string) string {
	return fmt.Sprintf(`{
        "status": "success",
        "data": {
            "resultType": "vector",
            "result": [
                {"metric": {}, "value": [1704067200, %q]}
            ]
        }
    }`, value)
}

func TestPrometheusSampler_Sample(t *testing.T) {
	values := map[string]string{
		"cpu_query":    "55.5",
		"memory_query": "33.3",
		"disk_query":   "11.1",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/query" {
			t.Errorf("path = %q, want /api/v1/query", r.URL.Path)
		}
		query := r.URL.Query().Get("query")
		value, ok := values[query]
		if !ok {
			t.Errorf("unexpected query %q", query)
			value = "0"
		}
		fmt.Fprint(w, promBody(value))
	}))
	defer server.Close()

	s := &PrometheusSampler{
		ServerURL:   server.URL,
		CPUQuery:    "cpu_query",
		MemoryQuery: "memory_query",
		DiskQuery:   "disk_query",
	}

	sample, err := s.Sample(context.Background())
	if err != nil {
		t.Fatalf("Sample error: %v", err)
	}

	if sample.CPUPct != 55.5 {
		t.Errorf("CPUPct = %v, want 55.5", sample.CPUPct)
	}
	if sample.MemoryPct != 33.3 {
		t.Errorf("MemoryPct = %v, want 33.3", sample.MemoryPct)
	}
	if sample.DiskPct != 11.1 {
		t.Errorf("DiskPct = %v, want 11.1", sample.DiskPct)
	}
}

func TestPrometheusSampler_SumsMultipleSeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
            "status": "success",
            "data": {
                "resultType": "vector",
                "result": [
                    {"metric": {"core": "0"}, "value": [1704067200, "20"]},
                    {"metric": {"core": "1"}, "value": [1704067200, "22"]}
                ]
            }
        }`)
	}))
	defer server.Close()

	s := &PrometheusSampler{
		ServerURL:   server.URL,
		CPUQuery:    "q",
		MemoryQuery: "q",
		DiskQuery:   "q",
	}

	sample, err := s.Sample(context.Background())
	if err != nil {
		t.Fatalf("Sample error: %v", err)
	}
	if sample.CPUPct != 42 {
		t.Errorf("CPUPct = %v, want 42 (summed)", sample.CPUPct)
	}
}

func TestPrometheusSampler_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"error status", `{"status": "error", "data": {}}`},
		{"malformed value pair", `{"status": "success", "data": {"result": [{"metric": {}, "value": [1704067200]}]}}`},
		{"non-numeric value", `{"status": "success", "data": {"result": [{"metric": {}, "value": [1704067200, "NaN%"]}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			s := &PrometheusSampler{
				ServerURL:   server.URL,
				CPUQuery:    "q",
				MemoryQuery: "q",
				DiskQuery:   "q",
			}

			if _, err := s.Sample(context.Background()); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestPrometheusSampler_MissingConfig(t *testing.T) {
	s := &PrometheusSampler{}
	if _, err := s.Sample(context.Background()); err == nil {
		t.Error("expected error for missing ServerURL")
	}

	s = &PrometheusSampler{ServerURL: "http://localhost:9090"}
	if _, err := s.Sample(context.Background()); err == nil {
		t.Error("expected error for missing queries")
	}
}
