package controlpanel

import (
	"fmt"
	"math/rand"
	"time"
)

// MockFallbackPolicy decides what happens when a performance fetch fails.
// When enabled, the failure is swallowed and randomly generated metrics are
// substituted so the UI keeps rendering; callers learn whether the policy
// engaged and can surface that to operators or tests.
type MockFallbackPolicy struct {
	Enabled bool
}

// Apply resolves a fetch result against the policy. It returns the metrics to
// serve and whether mock data was substituted. When the policy is disabled
// the original error passes through.
func (p MockFallbackPolicy) Apply(m Metrics, err error) (Metrics, bool, error) {
	if err == nil {
		return m, false, nil
	}
	if !p.Enabled {
		return Metrics{}, false, err
	}
	return GenerateMockMetrics(), true, nil
}

// GenerateMockMetrics produces a plausible random performance snapshot.
func GenerateMockMetrics() Metrics {
	return Metrics{
		CPU: CPUMetrics{
			Cores: rand.Intn(16) + 2,
			Usage: rand.Intn(80) + 10,
			Model: "Intel Xeon E5-2686 v4",
		},
		Memory: MemoryMetrics{
			Total: 16,
			Used:  rand.Float64()*14 + 1,
			Usage: rand.Intn(80) + 10,
		},
		Storage: StorageMetrics{
			Total: 500,
			Used:  rand.Float64()*400 + 50,
			Usage: rand.Intn(80) + 10,
			Type:  "NVMe SSD",
		},
		Network: NetworkMetrics{
			Bandwidth: "1 Gbps",
			Usage:     float64(rand.Intn(50) + 5),
		},
		Uptime:         fmt.Sprintf("%.1f%%", 99+rand.Float64()),
		ActiveAccounts: rand.Intn(100),
		LastUpdate:     time.Now().UTC(),
	}
}
