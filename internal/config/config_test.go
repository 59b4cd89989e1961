package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Input.DefaultDir != "" {
		t.Errorf("Input.DefaultDir = %q, want empty", cfg.Input.DefaultDir)
	}
	if cfg.Output.DefaultDir != "" {
		t.Errorf("Output.DefaultDir = %q, want empty", cfg.Output.DefaultDir)
	}
	if cfg.Site.BaseURL != "" {
		t.Errorf("Site.BaseURL = %q, want empty", cfg.Site.BaseURL)
	}
	if cfg.Input.IncludeDrafts {
		t.Error("Input.IncludeDrafts = true, want false")
	}
	if cfg.Cache.BudgetBytes != 0 {
		t.Errorf("Cache.BudgetBytes = %d, want 0", cfg.Cache.BudgetBytes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10, wantErr: false},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10, wantErr: false},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				return
			}
			if err != nil {
				t.Errorf("error = %v, want nil", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "valid config",
			cfg: Config{
				Input: InputConfig{DefaultDir: "content"},
				Site:  SiteConfig{BaseURL: "https://example.com", Title: "Example"},
				Cache: CacheConfig{BudgetBytes: 1 << 20},
			},
		},
		{
			name:    "base url too long",
			cfg:     Config{Site: SiteConfig{BaseURL: strings.Repeat("x", MaxURLLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "title too long",
			cfg:     Config{Site: SiteConfig{Title: strings.Repeat("x", MaxTitleLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "negative cache budget",
			cfg:     Config{Cache: CacheConfig{BudgetBytes: -1}},
			wantErr: ErrInvalidBudget,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig
// ---------------------------------------------------------------------------

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `input:
  defaultDir: content
  includeDrafts: true
output:
  defaultDir: public
  fullPage: true
site:
  baseUrl: https://example.com/blog
  title: Example Blog
cache:
  budgetBytes: 1048576
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if got, want := cfg.Input.DefaultDir, "content"; got != want {
		t.Errorf("Input.DefaultDir = %q, want %q", got, want)
	}
	if !cfg.Input.IncludeDrafts {
		t.Error("Input.IncludeDrafts = false, want true")
	}
	if got, want := cfg.Output.DefaultDir, "public"; got != want {
		t.Errorf("Output.DefaultDir = %q, want %q", got, want)
	}
	if !cfg.Output.FullPage {
		t.Error("Output.FullPage = false, want true")
	}
	if got, want := cfg.Site.BaseURL, "https://example.com/blog"; got != want {
		t.Errorf("Site.BaseURL = %q, want %q", got, want)
	}
	if got, want := cfg.Cache.BudgetBytes, int64(1<<20); got != want {
		t.Errorf("Cache.BudgetBytes = %d, want %d", got, want)
	}
}

func TestLoadConfigEmptyName(t *testing.T) {
	t.Parallel()

	if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
		t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
	}
}

func TestLoadConfigNotFound(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := LoadConfig(path); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfigUnknownField(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "unknown_section:\n  key: value\n")
	if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "input: [unclosed\n")
	if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "cache:\n  budgetBytes: -5\n")
	if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidBudget) {
		t.Errorf("LoadConfig() error = %v, want ErrInvalidBudget", err)
	}
}
