package config

import "testing"

// TestLoad_Defaults tests the built-in defaults when no environment
// variables are set
func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.APIBaseURL != "https://atlas.ripe.net/api/v2" {
		t.Errorf("unexpected default API URL: %s", cfg.APIBaseURL)
	}
	if cfg.PageSize != 500 {
		t.Errorf("expected default page size 500, got %d", cfg.PageSize)
	}
	if cfg.SortKey != "id" {
		t.Errorf("expected default sort key 'id', got '%s'", cfg.SortKey)
	}
	if cfg.ProgressInterval != 500 {
		t.Errorf("expected default progress interval 500, got %d", cfg.ProgressInterval)
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("expected ops server disabled by default, got '%s'", cfg.MetricsAddr)
	}
}

// TestLoad_EnvOverrides tests that environment variables override defaults
func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ATLAS_API_URL", "http://localhost:8080/api/v2")
	t.Setenv("ATLAS_PAGE_SIZE", "100")
	t.Setenv("ATLAS_SORT", "-id")
	t.Setenv("PROGRESS_INTERVAL", "50")
	t.Setenv("METRICS_ADDR", "127.0.0.1:9100")

	cfg := Load()

	if cfg.APIBaseURL != "http://localhost:8080/api/v2" {
		t.Errorf("unexpected API URL: %s", cfg.APIBaseURL)
	}
	if cfg.PageSize != 100 {
		t.Errorf("expected page size 100, got %d", cfg.PageSize)
	}
	if cfg.SortKey != "-id" {
		t.Errorf("expected sort key '-id', got '%s'", cfg.SortKey)
	}
	if cfg.ProgressInterval != 50 {
		t.Errorf("expected progress interval 50, got %d", cfg.ProgressInterval)
	}
	if cfg.MetricsAddr != "127.0.0.1:9100" {
		t.Errorf("unexpected metrics addr: %s", cfg.MetricsAddr)
	}
}

// TestLoad_InvalidIntFallsBack tests that a malformed numeric variable
// keeps its default
func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("ATLAS_PAGE_SIZE", "lots")

	cfg := Load()
	if cfg.PageSize != 500 {
		t.Errorf("expected fallback page size 500, got %d", cfg.PageSize)
	}
}

// TestValidate tests the configuration constraints
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"page size above API maximum", func(c *Config) { c.PageSize = 1000 }, true},
		{"page size zero", func(c *Config) { c.PageSize = 0 }, true},
		{"missing API URL", func(c *Config) { c.APIBaseURL = "" }, true},
		{"API URL not a URL", func(c *Config) { c.APIBaseURL = "atlas ripe net" }, true},
		{"missing sort key", func(c *Config) { c.SortKey = "" }, true},
		{"progress interval zero", func(c *Config) { c.ProgressInterval = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
