package dto

import "time"

// SystemMetrics summarises gateway health for the metrics endpoint.
type SystemMetrics struct {
	CacheHitRatio                float64   `json:"cache_hit_ratio"`
	CacheHits                    uint64    `json:"cache_hits"`
	CacheMisses                  uint64    `json:"cache_misses"`
	RequestsTotal                uint64    `json:"requests_total"`
	AverageRequestDurationMs     float64   `json:"avg_request_duration_ms"`
	BackendCallCount             uint64    `json:"backend_calls"`
	BackendFailureCount          uint64    `json:"backend_failures"`
	AverageBackendCallDurationMs float64   `json:"avg_backend_call_duration_ms"`
	Goroutines                   int       `json:"goroutines"`
	GeneratedAt                  time.Time `json:"generated_at"`
}
