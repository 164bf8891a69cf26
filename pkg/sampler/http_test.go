package sampler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPSampler_BasicGET(t *testing.T) {
	json := `{
        "host": {
            "cpu": {"used_percent": 42.5},
            "memory": {"used_percent": 61.2},
            "disk": {"used_percent": 18.9}
        }
    }`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("expected Accept: application/json header")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, json)
	}))
	defer server.Close()

	s := &HTTPSampler{
		URL:        server.URL,
		CPUPath:    "host.cpu.used_percent",
		MemoryPath: "host.memory.used_percent",
		DiskPath:   "host.disk.used_percent",
	}

	sample, err := s.Sample(context.Background())
	if err != nil {
		t.Fatalf("Sample error: %v", err)
	}

	if sample.CPUPct != 42.5 {
		t.Errorf("CPUPct = %v, want 42.5", sample.CPUPct)
	}
	if sample.MemoryPct != 61.2 {
		t.Errorf("MemoryPct = %v, want 61.2", sample.MemoryPct)
	}
	if sample.DiskPct != 18.9 {
		t.Errorf("DiskPct = %v, want 18.9", sample.DiskPct)
	}
	if sample.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestHTTPSampler_CustomHeaders(t *testing.T) {
	receivedAuth := ""

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"cpu": 1, "memory": 2, "disk": 3}`)
	}))
	defer server.Close()

	s := &HTTPSampler{
		URL:        server.URL,
		Headers:    map[string]string{"Authorization": "Bearer secret-token"},
		CPUPath:    "cpu",
		MemoryPath: "memory",
		DiskPath:   "disk",
	}

	if _, err := s.Sample(context.Background()); err != nil {
		t.Fatalf("Sample error: %v", err)
	}

	if receivedAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q, want %q", receivedAuth, "Bearer secret-token")
	}
}

func TestHTTPSampler_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		sampler func(url string) *HTTPSampler
	}{
		{
			name:   "missing URL",
			status: http.StatusOK,
			body:   `{}`,
			sampler: func(url string) *HTTPSampler {
				return &HTTPSampler{CPUPath: "a", MemoryPath: "b", DiskPath: "c"}
			},
		},
		{
			name:   "missing paths",
			status: http.StatusOK,
			body:   `{}`,
			sampler: func(url string) *HTTPSampler {
				return &HTTPSampler{URL: url}
			},
		},
		{
			name:   "non-200 status",
			status: http.StatusInternalServerError,
			body:   `{}`,
			sampler: func(url string) *HTTPSampler {
				return &HTTPSampler{URL: url, CPUPath: "cpu", MemoryPath: "memory", DiskPath: "disk"}
			},
		},
		{
			name:   "path not found",
			status: http.StatusOK,
			body:   `{"cpu": 10, "memory": 20}`,
			sampler: func(url string) *HTTPSampler {
				return &HTTPSampler{URL: url, CPUPath: "cpu", MemoryPath: "memory", DiskPath: "disk"}
			},
		},
		{
			name:   "invalid JSON",
			status: http.StatusOK,
			body:   `not json`,
			sampler: func(url string) *HTTPSampler {
				return &HTTPSampler{URL: url, CPUPath: "cpu", MemoryPath: "memory", DiskPath: "disk"}
			},
		},
		{
			name:   "value out of range",
			status: http.StatusOK,
			body:   `{"cpu": 120, "memory": 20, "disk": 30}`,
			sampler: func(url string) *HTTPSampler {
				return &HTTPSampler{URL: url, CPUPath: "cpu", MemoryPath: "memory", DiskPath: "disk"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			if _, err := tt.sampler(server.URL).Sample(context.Background()); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
