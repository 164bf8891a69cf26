package sampler

import (
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		kind      string
		config    map[string]string
		providers []string
		wantName  string
		wantErr   bool
	}{
		{
			name:     "simulated",
			kind:     "simulated",
			wantName: "simulated",
		},
		{
			name:      "simulated with providers",
			kind:      "simulated",
			providers: []string{"aws", "azure"},
			wantName:  "simulated",
		},
		{
			name: "http",
			kind: "http",
			config: map[string]string{
				"url":        "http://telemetry:9100/host",
				"cpuPath":    "cpu",
				"memoryPath": "memory",
				"diskPath":   "disk",
			},
			wantName: "http",
		},
		{
			name:    "http missing url",
			kind:    "http",
			config:  map[string]string{"cpuPath": "a", "memoryPath": "b", "diskPath": "c"},
			wantErr: true,
		},
		{
			name:    "http missing paths",
			kind:    "http",
			config:  map[string]string{"url": "http://x"},
			wantErr: true,
		},
		{
			name: "prometheus",
			kind: "prometheus",
			config: map[string]string{
				"cpuQuery":    "cpu_percent",
				"memoryQuery": "memory_percent",
				"diskQuery":   "disk_percent",
			},
			wantName: "prometheus",
		},
		{
			name:    "prometheus missing queries",
			kind:    "prometheus",
			config:  map[string]string{"url": "http://prom:9090"},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			kind:    "snmp",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.kind, tt.config, tt.providers, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if s.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", s.Name(), tt.wantName)
			}
		})
	}
}

func TestNew_HTTPBearerToken(t *testing.T) {
	s, err := New("http", map[string]string{
		"url":         "http://x",
		"cpuPath":     "a",
		"memoryPath":  "b",
		"diskPath":    "c",
		"bearerToken": "tok",
	}, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	h := s.(*HTTPSampler)
	if h.Headers["Authorization"] != "Bearer tok" {
		t.Errorf("Authorization = %q, want %q", h.Headers["Authorization"], "Bearer tok")
	}
}

func TestNew_PrometheusDefaultURL(t *testing.T) {
	s, err := New("prometheus", map[string]string{
		"cpuQuery":    "a",
		"memoryQuery": "b",
		"diskQuery":   "c",
	}, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	p := s.(*PrometheusSampler)
	if p.ServerURL != "http://localhost:9090" {
		t.Errorf("ServerURL = %q, want default", p.ServerURL)
	}
}
