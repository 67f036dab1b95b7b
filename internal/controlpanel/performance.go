package controlpanel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/hostwire/hostpanel/internal/models"
)

// ErrPanelNotImplemented indicates the panel type has no native performance
// fetcher yet; the caller decides whether the mock fallback applies.
var ErrPanelNotImplemented = errors.New("controlpanel: performance fetch not implemented for panel")

// CPUMetrics describes processor load on a server.
type CPUMetrics struct {
	Cores int    `json:"cores"`
	Usage int    `json:"usage"` // Percent.
	Model string `json:"model"`
}

// MemoryMetrics describes RAM usage in GB.
type MemoryMetrics struct {
	Total float64 `json:"total"`
	Used  float64 `json:"used"`
	Usage int     `json:"usage"` // Percent.
}

// StorageMetrics describes disk usage in GB.
type StorageMetrics struct {
	Total float64 `json:"total"`
	Used  float64 `json:"used"`
	Usage int     `json:"usage"` // Percent.
	Type  string  `json:"type"`
}

// NetworkMetrics describes the uplink.
type NetworkMetrics struct {
	Bandwidth string  `json:"bandwidth"`
	Usage     float64 `json:"usage"` // Percent.
}

// Metrics is a point-in-time performance snapshot of a server.
type Metrics struct {
	CPU            CPUMetrics     `json:"cpu"`
	Memory         MemoryMetrics  `json:"memory"`
	Storage        StorageMetrics `json:"storage"`
	Network        NetworkMetrics `json:"network"`
	Uptime         string         `json:"uptime"`
	ActiveAccounts int            `json:"activeAccounts"`
	LastUpdate     time.Time      `json:"lastUpdate"`
}

// Performance fetches a performance snapshot, dispatching on the server's
// control panel type.
func (c *Client) Performance(ctx context.Context, server *models.Server) (Metrics, error) {
	switch server.ControlPanel {
	case models.ControlPanelCPanel:
		return c.fetchCPanelPerformance(ctx, server)
	case models.ControlPanelPlesk, models.ControlPanelDirectAdmin, models.ControlPanelCyberPanel:
		return Metrics{}, fmt.Errorf("%w: %s", ErrPanelNotImplemented, server.ControlPanel)
	default:
		return Metrics{}, fmt.Errorf("controlpanel: unsupported control panel: %s", server.ControlPanel)
	}
}

// whmLoadAvgResponse mirrors the WHM loadavg response.
type whmLoadAvgResponse struct {
	One     flexString `json:"one"`
	Five    flexString `json:"five"`
	Fifteen flexString `json:"fifteen"`
}

// whmListAcctsResponse mirrors the WHM listaccts response.
type whmListAcctsResponse struct {
	Acct []json.RawMessage `json:"acct"`
}

// fetchCPanelPerformance reads load and account stats from WHM. The two
// upstream calls run concurrently and both must settle before returning.
func (c *Client) fetchCPanelPerformance(ctx context.Context, server *models.Server) (Metrics, error) {
	base := c.baseURL(server.HostName)

	var (
		wg       sync.WaitGroup
		loadAvg  whmLoadAvgResponse
		accounts whmListAcctsResponse
		errLoad  error
		errAccts error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		errLoad = c.getJSON(ctx, server, base+"/json-api/loadavg", &loadAvg)
	}()
	go func() {
		defer wg.Done()
		errAccts = c.getJSON(ctx, server, base+"/json-api/listaccts", &accounts)
	}()
	wg.Wait()

	if errLoad != nil {
		return Metrics{}, errLoad
	}
	if errAccts != nil {
		return Metrics{}, errAccts
	}

	usage := 0
	if one, errParse := strconv.ParseFloat(string(loadAvg.One), 64); errParse == nil {
		usage = int(one * 100)
		if usage > 100 {
			usage = 100
		}
	}

	return Metrics{
		CPU: CPUMetrics{
			Cores: 4,
			Usage: usage,
			Model: "Intel Xeon",
		},
		Memory: MemoryMetrics{Total: 16, Used: 8, Usage: 50},
		Storage: StorageMetrics{
			Total: 500,
			Used:  180,
			Usage: 36,
			Type:  "SSD",
		},
		Network:        NetworkMetrics{Bandwidth: "1 Gbps", Usage: float64(usage) / 2},
		Uptime:         "99.9%",
		ActiveAccounts: len(accounts.Acct),
		LastUpdate:     time.Now().UTC(),
	}, nil
}

// getJSON issues an authenticated GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, server *models.Server, url string, out any) error {
	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if errReq != nil {
		return fmt.Errorf("controlpanel: build request: %w", errReq)
	}
	req.Header.Set("Authorization", "cpanel "+server.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, errDo := c.httpClient.Do(req)
	if errDo != nil {
		return fmt.Errorf("controlpanel: get %s: %w", url, errDo)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("controlpanel: get %s: unexpected status %d", url, resp.StatusCode)
	}

	body, errRead := io.ReadAll(resp.Body)
	if errRead != nil {
		return fmt.Errorf("controlpanel: read response: %w", errRead)
	}
	if errUnmarshal := json.Unmarshal(body, out); errUnmarshal != nil {
		return fmt.Errorf("controlpanel: decode response: %w", errUnmarshal)
	}
	return nil
}
