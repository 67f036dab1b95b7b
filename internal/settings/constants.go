package settings

// DB-backed panel setting keys and defaults.
const (
	// PanelNameKey is the setting key for the panel display name.
	PanelNameKey = "PANEL_NAME"
	// DefaultPanelName is the fallback panel display name.
	DefaultPanelName = "HostPanel"
	// PerformanceMockFallbackKey toggles mock metrics when a control panel
	// performance fetch fails.
	PerformanceMockFallbackKey = "PERFORMANCE_MOCK_FALLBACK"
	// DefaultPerformanceMockFallback enables the mock fallback by default.
	DefaultPerformanceMockFallback = true
)
