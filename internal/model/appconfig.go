package model

// AppConfig holds application-wide preferences and default layout settings.
type AppConfig struct {
	// Layout defaults applied to every new grid
	SizeCategory       string  `json:"size_category" toml:"size_category"`
	InsetMode          string  `json:"inset_mode" toml:"inset_mode"`
	EstimatedRowHeight float64 `json:"estimated_row_height" toml:"estimated_row_height"`
	ContentInsets      Insets  `json:"content_insets" toml:"content_insets"`

	// Application preferences
	WindowWidth    float64  `json:"window_width" toml:"window_width"`
	WindowHeight   float64  `json:"window_height" toml:"window_height"`
	RecentCatalogs []string `json:"recent_catalogs" toml:"recent_catalogs"`
	Theme          string   `json:"theme" toml:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultLayoutSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultLayoutSettings()
	return AppConfig{
		SizeCategory:       defaults.SizeCategory.String(),
		InsetMode:          defaults.InsetMode.String(),
		EstimatedRowHeight: defaults.EstimatedRowHeight,
		WindowWidth:        1000,
		WindowHeight:       700,
		RecentCatalogs:     []string{},
		Theme:              "system",
	}
}

// ApplyToSettings copies the layout defaults from AppConfig into a LayoutSettings.
// Unknown or empty values leave the corresponding setting untouched.
func (c AppConfig) ApplyToSettings(s *LayoutSettings) {
	if cat, ok := ParseSizeCategory(c.SizeCategory); ok {
		s.SizeCategory = cat
	}
	if mode, ok := ParseInsetMode(c.InsetMode); ok && c.InsetMode != "" {
		s.InsetMode = mode
	}
	if c.EstimatedRowHeight > 0 {
		s.EstimatedRowHeight = c.EstimatedRowHeight
	}
}

// AddRecentCatalog moves path to the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentCatalog(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentCatalogs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentCatalogs = recent
}
