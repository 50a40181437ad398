package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `scenario: "scenario.json"
run:
  seed: 99
  workers: 2
  nearest_chargers: 3
router:
  mode: "truck"
  segment_length_m: 500
  freespeed_kmh: 65
energy:
  drive_wh_per_km: 1200
  aux_power_kw: 1.5
output:
  path: "out/plans.csv"
  format: "csv"
metrics:
  sinks:
    - type: "nop"
mqtt:
  enabled: false
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"scenario", cfg.Scenario, "scenario.json"},
		{"run.seed", cfg.Run.Seed, int64(99)},
		{"run.workers", cfg.Run.Workers, 2},
		{"run.nearest_chargers", cfg.Run.NearestChargers, 3},
		{"router.mode", cfg.Router.Mode, "truck"},
		{"router.segment_length_m", cfg.Router.SegmentLengthM, 500.0},
		{"router.freespeed_kmh", cfg.Router.FreespeedKmh, 65.0},
		{"energy.drive_wh_per_km", cfg.Energy.DriveWhPerKm, 1200.0},
		{"energy.aux_power_kw", cfg.Energy.AuxPowerKW, 1.5},
		{"output.path", cfg.Output.Path, "out/plans.csv"},
		{"output.format", cfg.Output.Format, "csv"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"mqtt.enabled", cfg.MQTT.Enabled, false},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"scenario": "scenario.json"}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Run.Seed != 4711 || cfg.Run.Workers != 4 || cfg.Run.NearestChargers != 2 {
		t.Errorf("unexpected run defaults: %+v", cfg.Run)
	}
	if cfg.Router.Mode != "car" || cfg.Router.SegmentLengthM != 1000 || cfg.Router.FreespeedKmh != 80 {
		t.Errorf("unexpected router defaults: %+v", cfg.Router)
	}
	if cfg.Energy.DriveWhPerKm != 1200 {
		t.Errorf("unexpected energy defaults: %+v", cfg.Energy)
	}
	if cfg.Output.Path != "plans.json" || cfg.Output.Format != "json" {
		t.Errorf("unexpected output defaults: %+v", cfg.Output)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "scenario: \"scenario.json\"\nrun:\n  workers: 2\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("K_RUN__WORKERS", "8")
	t.Setenv("K_OUTPUT__FORMAT", "csv")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Run.Workers != 8 {
		t.Errorf("env override not applied: %d", cfg.Run.Workers)
	}
	if cfg.Output.Format != "csv" {
		t.Errorf("env override not applied: %s", cfg.Output.Format)
	}
}

func TestLoadRejectsBadFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"scenario": "scenario.json", "output": {"format": "xml"}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unsupported output format")
	}
}

func TestLoadRequiresScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing scenario path")
	}
}
