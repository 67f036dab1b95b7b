// Package controlpanel talks to hosting control panel APIs (WHM/cPanel,
// Plesk, DirectAdmin, CyberPanel) on behalf of the panel. Responses are
// treated as opaque JSON shapes owned by the vendors.
package controlpanel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hostwire/hostpanel/internal/models"
)

// managementPort is the WHM/cPanel management API port.
const managementPort = 2087

// Client issues authenticated HTTP calls to a server's control panel API.
type Client struct {
	httpClient *http.Client
	// baseURL builds the API base URL for a host. Overridable in tests.
	baseURL func(host string) string
}

// NewClient constructs a Client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL: func(host string) string {
			return fmt.Sprintf("https://%s:%d", host, managementPort)
		},
	}
}

// PackageTemplate is a remote package descriptor mapped into the shape the
// package create form consumes, so an operator can use it as a template.
type PackageTemplate struct {
	Name          string `json:"name"`
	DiskSpace     string `json:"diskSpace"`     // WHM QUOTA.
	Bandwidth     string `json:"bandwidth"`     // WHM BWLIMIT.
	Domains       string `json:"domains"`       // WHM MAXADDON.
	EmailAccounts string `json:"emailAccounts"` // WHM MAXPOP.
	Databases     string `json:"databases"`     // WHM MAXSQL.
	Subdomains    string `json:"subdomains"`    // WHM MAXSUB.
	ParkedDomains string `json:"parkedDomains"` // WHM MAXPARK.
}

// whmPackage mirrors one entry of the WHM listpkgs response. WHM emits
// quota fields as either numbers or strings ("unlimited" included), so every
// field goes through flexString.
type whmPackage struct {
	Name     string     `json:"name"`
	Quota    flexString `json:"QUOTA"`
	BWLimit  flexString `json:"BWLIMIT"`
	MaxSub   flexString `json:"MAXSUB"`
	MaxPop   flexString `json:"MAXPOP"`
	MaxSQL   flexString `json:"MAXSQL"`
	MaxAddon flexString `json:"MAXADDON"`
	MaxPark  flexString `json:"MAXPARK"`
}

// whmListPkgsResponse is the envelope of the WHM listpkgs call.
type whmListPkgsResponse struct {
	Package []whmPackage `json:"package"`
}

// flexString decodes a JSON string or number into a string.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var asString string
	if errString := json.Unmarshal(data, &asString); errString == nil {
		*f = flexString(asString)
		return nil
	}
	var asNumber json.Number
	if errNumber := json.Unmarshal(data, &asNumber); errNumber == nil {
		*f = flexString(asNumber.String())
		return nil
	}
	return fmt.Errorf("controlpanel: cannot decode %s as string", string(data))
}

// ListPackages lists the resource packages configured on a server, using the
// server's stored API key. Only WHM-style panels expose listpkgs; the call is
// issued against the management port regardless of panel type, matching how
// the panel has always imported templates.
func (c *Client) ListPackages(ctx context.Context, server *models.Server) ([]PackageTemplate, error) {
	url := c.baseURL(server.HostName) + "/json-api/listpkgs"
	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if errReq != nil {
		return nil, fmt.Errorf("controlpanel: build request: %w", errReq)
	}
	req.Header.Set("Authorization", "whm root:"+server.APIKey)

	resp, errDo := c.httpClient.Do(req)
	if errDo != nil {
		return nil, fmt.Errorf("controlpanel: listpkgs: %w", errDo)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("controlpanel: listpkgs: unexpected status %d", resp.StatusCode)
	}

	body, errRead := io.ReadAll(resp.Body)
	if errRead != nil {
		return nil, fmt.Errorf("controlpanel: read listpkgs response: %w", errRead)
	}

	var parsed whmListPkgsResponse
	if errUnmarshal := json.Unmarshal(body, &parsed); errUnmarshal != nil {
		return nil, fmt.Errorf("controlpanel: decode listpkgs response: %w", errUnmarshal)
	}

	templates := make([]PackageTemplate, 0, len(parsed.Package))
	for _, pkg := range parsed.Package {
		templates = append(templates, PackageTemplate{
			Name:          pkg.Name,
			DiskSpace:     string(pkg.Quota),
			Bandwidth:     string(pkg.BWLimit),
			Domains:       string(pkg.MaxAddon),
			EmailAccounts: string(pkg.MaxPop),
			Databases:     string(pkg.MaxSQL),
			Subdomains:    string(pkg.MaxSub),
			ParkedDomains: string(pkg.MaxPark),
		})
	}
	return templates, nil
}
