package catalog

import (
	"strconv"
	"strings"

	"github.com/hostwire/hostpanel/internal/models"
)

// bandwidthUnlimitedThreshold marks absurdly large bandwidth values as
// unlimited; anything above it collapses to the -1 sentinel.
const bandwidthUnlimitedThreshold = 999_999_999

// ParseBandwidth normalizes a form bandwidth value. The literal "unlimited"
// (any case) or a parsed value above the threshold maps to the -1 sentinel;
// parse failures default to 0.
func ParseBandwidth(raw string) int64 {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, "unlimited") {
		return models.UnlimitedBandwidth
	}
	value, errParse := strconv.ParseInt(trimmed, 10, 64)
	if errParse != nil {
		return 0
	}
	if value > bandwidthUnlimitedThreshold {
		return models.UnlimitedBandwidth
	}
	return value
}

// ParseQuota parses an integer quota field, defaulting to 0 on failure.
func ParseQuota(raw string) int {
	value, errParse := strconv.Atoi(strings.TrimSpace(raw))
	if errParse != nil {
		return 0
	}
	return value
}

// NormalizeStatus maps the form status to a stored status: the literal
// "active" becomes ACTIVE, anything else INACTIVE.
func NormalizeStatus(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), "active") {
		return models.PackageStatusActive
	}
	return models.PackageStatusInactive
}

// parsePositivePrice reports whether raw holds a price greater than zero.
func parsePositivePrice(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	value, errParse := strconv.ParseFloat(trimmed, 64)
	if errParse != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

// fallback returns the trimmed input when present, otherwise the existing
// value.
func fallback(input, existing string) string {
	if trimmed := strings.TrimSpace(input); trimmed != "" {
		return trimmed
	}
	return existing
}
