package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// resetViper isolates tests from the package-global viper state.
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestNewManager_Defaults(t *testing.T) {
	resetViper(t)

	cm, err := NewManager("")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	cfg := cm.Get()
	want := DefaultConfig()
	if cfg.Input != want.Input || cfg.Output != want.Output {
		t.Errorf("dirs = %q/%q, want %q/%q", cfg.Input, cfg.Output, want.Input, want.Output)
	}
	if cfg.Workers != want.Workers || cfg.MaxPages != want.MaxPages {
		t.Errorf("workers/max_pages = %d/%d, want %d/%d", cfg.Workers, cfg.MaxPages, want.Workers, want.MaxPages)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log_level = %q, want info", cfg.LogLevel)
	}
	if cfg.Heuristics != want.Heuristics {
		t.Errorf("heuristics = %+v, want %+v", cfg.Heuristics, want.Heuristics)
	}
}

func TestNewManager_ConfigFile(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `input: /data/in
workers: 8
heuristics:
  heading_score: 4
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cm, err := NewManager(path)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	cfg := cm.Get()
	if cfg.Input != "/data/in" || cfg.Workers != 8 {
		t.Errorf("input/workers = %q/%d, want /data/in/8", cfg.Input, cfg.Workers)
	}
	if cfg.Heuristics.HeadingScore != 4 {
		t.Errorf("heading_score = %d, want 4", cfg.Heuristics.HeadingScore)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Output != "./output" || cfg.MaxPages != 2000 {
		t.Errorf("defaults lost: output %q max_pages %d", cfg.Output, cfg.MaxPages)
	}
}

func TestNewManager_EnvOverride(t *testing.T) {
	resetViper(t)
	t.Setenv("DOCLINE_WORKERS", "9")

	cm, err := NewManager("")
	if err != nil {
		t.Fatal(err)
	}
	if got := cm.Get().Workers; got != 9 {
		t.Errorf("workers = %d, want 9 from environment", got)
	}
}

func TestNewManager_MalformedConfigFile(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("workers: [not an int\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewManager(path); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("DOCLINE_TEST_SECRET", "s3cret")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"${DOCLINE_TEST_SECRET}", "s3cret"},
		{"pw-${DOCLINE_TEST_SECRET}-x", "pw-s3cret-x"},
		{"${DOCLINE_TEST_UNSET}", ""},
	}
	for _, tt := range tests {
		if got := ResolveEnvVars(tt.in); got != tt.want {
			t.Errorf("ResolveEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestThresholds(t *testing.T) {
	var zero Config
	th := zero.Thresholds()
	if th.HeadingScore != 3 || th.SizeRatio != 1.1 {
		t.Errorf("zero config thresholds = %+v, want heuristic defaults", th)
	}

	cfg := Config{Heuristics: HeuristicsCfg{HeadingScore: 5, MaxHeadingWords: 12}}
	th = cfg.Thresholds()
	if th.HeadingScore != 5 || th.MaxHeadingWords != 12 {
		t.Errorf("overrides not applied: %+v", th)
	}
	if th.SizeRatio != 1.1 || th.StrongSizeRatio != 1.3 {
		t.Errorf("unset values lost their defaults: %+v", th)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("write default: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# docline configuration") {
		t.Error("default config missing header comment")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("default config is not valid yaml: %v", err)
	}
	if cfg.Workers != 4 || cfg.Input != "./input" {
		t.Errorf("round-tripped defaults = %+v", cfg)
	}
}
