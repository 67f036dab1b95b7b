package catalog

import (
	"testing"

	"github.com/hostwire/hostpanel/internal/models"
)

func TestParseBandwidth(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"100", 100},
		{" 2048 ", 2048},
		{"unlimited", models.UnlimitedBandwidth},
		{"Unlimited", models.UnlimitedBandwidth},
		{"UNLIMITED", models.UnlimitedBandwidth},
		{"1000000000", models.UnlimitedBandwidth},
		{"999999999", 999999999},
		{"", 0},
		{"not-a-number", 0},
		{"12.5", 0},
	}
	for _, tc := range cases {
		if got := ParseBandwidth(tc.in); got != tc.want {
			t.Errorf("ParseBandwidth(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseQuota(t *testing.T) {
	if got := ParseQuota("25"); got != 25 {
		t.Errorf("ParseQuota(25) = %d", got)
	}
	if got := ParseQuota("junk"); got != 0 {
		t.Errorf("ParseQuota(junk) = %d", got)
	}
	if got := ParseQuota(""); got != 0 {
		t.Errorf("ParseQuota(empty) = %d", got)
	}
}

func TestNormalizeStatus(t *testing.T) {
	if got := NormalizeStatus("active"); got != models.PackageStatusActive {
		t.Errorf("NormalizeStatus(active) = %s", got)
	}
	if got := NormalizeStatus("ACTIVE"); got != models.PackageStatusActive {
		t.Errorf("NormalizeStatus(ACTIVE) = %s", got)
	}
	for _, raw := range []string{"", "inactive", "suspended", "anything"} {
		if got := NormalizeStatus(raw); got != models.PackageStatusInactive {
			t.Errorf("NormalizeStatus(%q) = %s", raw, got)
		}
	}
}

func TestParsePositivePrice(t *testing.T) {
	if price, ok := parsePositivePrice("9.99"); !ok || price != 9.99 {
		t.Errorf("parsePositivePrice(9.99) = %v, %v", price, ok)
	}
	for _, raw := range []string{"", "0", "-1", "free"} {
		if _, ok := parsePositivePrice(raw); ok {
			t.Errorf("parsePositivePrice(%q) accepted", raw)
		}
	}
}
