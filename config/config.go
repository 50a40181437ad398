package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/betsim/betroute/core/metrics"
	"github.com/betsim/betroute/infra/mqtt"
)

type Config struct {
	Scenario string         `json:"scenario"`
	Run      RunConfig      `json:"run"`
	Router   RouterConfig   `json:"router"`
	Energy   EnergyConfig   `json:"energy"`
	Output   OutputConfig   `json:"output"`
	Metrics  metrics.Config `json:"metrics"`
	MQTT     mqtt.Config    `json:"mqtt"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides. The callback rewrites K_RUN__WORKERS
	// to run.workers, so the provider must split on "." when unflattening.
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Run.SetDefaults()
	cfg.Router.SetDefaults()
	cfg.Energy.SetDefaults()
	cfg.Output.SetDefaults()
	cfg.MQTT.SetDefaults()
	if cfg.Scenario == "" {
		return nil, fmt.Errorf("config: scenario path is required")
	}
	if err := cfg.Run.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Router.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Energy.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Output.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.MQTT.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
