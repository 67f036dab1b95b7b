package controlpanel

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hostwire/hostpanel/internal/models"
)

func testClient(upstream *httptest.Server) *Client {
	client := NewClient(5 * time.Second)
	client.httpClient = upstream.Client()
	client.baseURL = func(string) string { return upstream.URL }
	return client
}

func TestListPackagesMapsWHMFields(t *testing.T) {
	var gotAuth string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/json-api/listpkgs" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		// WHM mixes numeric and string quota values.
		_, _ = w.Write([]byte(`{"package":[
			{"name":"starter","QUOTA":"10240","BWLIMIT":102400,"MAXADDON":"5","MAXPOP":"unlimited","MAXSQL":2,"MAXSUB":"10","MAXPARK":"0"}
		]}`))
	}))
	defer upstream.Close()

	client := testClient(upstream)
	server := &models.Server{HostName: "whm.example.com", APIKey: "secret"}

	templates, errList := client.ListPackages(context.Background(), server)
	if errList != nil {
		t.Fatalf("list packages: %v", errList)
	}
	if gotAuth != "whm root:secret" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
	if len(templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(templates))
	}

	pkg := templates[0]
	if pkg.Name != "starter" {
		t.Errorf("name = %q", pkg.Name)
	}
	if pkg.DiskSpace != "10240" {
		t.Errorf("disk space = %q", pkg.DiskSpace)
	}
	if pkg.Bandwidth != "102400" {
		t.Errorf("bandwidth = %q", pkg.Bandwidth)
	}
	if pkg.EmailAccounts != "unlimited" {
		t.Errorf("email accounts = %q", pkg.EmailAccounts)
	}
	if pkg.Databases != "2" {
		t.Errorf("databases = %q", pkg.Databases)
	}
}

func TestListPackagesUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer upstream.Close()

	client := testClient(upstream)
	server := &models.Server{HostName: "whm.example.com", APIKey: "bad"}

	if _, errList := client.ListPackages(context.Background(), server); errList == nil {
		t.Fatalf("expected error on upstream 403")
	}
}

func TestCPanelPerformanceCombinesLoadAndAccounts(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/json-api/loadavg":
			_, _ = w.Write([]byte(`{"one":"0.42","five":"0.30","fifteen":"0.25"}`))
		case "/json-api/listaccts":
			_, _ = w.Write([]byte(`{"acct":[{},{},{}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstream.Close()

	client := testClient(upstream)
	server := &models.Server{
		HostName:     "whm.example.com",
		APIKey:       "secret",
		ControlPanel: models.ControlPanelCPanel,
	}

	metrics, errFetch := client.Performance(context.Background(), server)
	if errFetch != nil {
		t.Fatalf("performance: %v", errFetch)
	}
	if metrics.CPU.Usage != 42 {
		t.Errorf("cpu usage = %d, want 42", metrics.CPU.Usage)
	}
	if metrics.ActiveAccounts != 3 {
		t.Errorf("active accounts = %d, want 3", metrics.ActiveAccounts)
	}
	if metrics.LastUpdate.IsZero() {
		t.Errorf("last update not set")
	}
}

func TestPerformanceUnimplementedPanels(t *testing.T) {
	client := NewClient(time.Second)
	for _, panel := range []string{
		models.ControlPanelPlesk,
		models.ControlPanelDirectAdmin,
		models.ControlPanelCyberPanel,
	} {
		server := &models.Server{HostName: "host", ControlPanel: panel}
		_, errFetch := client.Performance(context.Background(), server)
		if errFetch == nil {
			t.Fatalf("%s: expected error", panel)
		}
		if !errors.Is(errFetch, ErrPanelNotImplemented) {
			t.Fatalf("%s: expected ErrPanelNotImplemented, got %v", panel, errFetch)
		}
	}
}
