package config

import "fmt"

// RunConfig controls how the scenario is executed.
type RunConfig struct {
	Seed              int64 `json:"seed"`
	Workers           int   `json:"workers"`
	NearestChargers   int   `json:"nearest_chargers"`
	FailFast          bool  `json:"fail_fast"`
	ShutdownTimeoutMS int   `json:"shutdown_timeout_ms"`
}

func (c *RunConfig) SetDefaults() {
	if c.Seed == 0 {
		c.Seed = 4711
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.NearestChargers <= 0 {
		c.NearestChargers = 2
	}
	if c.ShutdownTimeoutMS <= 0 {
		c.ShutdownTimeoutMS = 5000
	}
}

func (c RunConfig) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("config: workers must be positive")
	}
	if c.NearestChargers <= 0 {
		return fmt.Errorf("config: nearest_chargers must be positive")
	}
	return nil
}

// RouterConfig parametrises the synthetic beeline router used as the
// delegate for staged legs.
type RouterConfig struct {
	Mode           string  `json:"mode"`
	SegmentLengthM float64 `json:"segment_length_m"`
	FreespeedKmh   float64 `json:"freespeed_kmh"`
}

func (c *RouterConfig) SetDefaults() {
	if c.Mode == "" {
		c.Mode = "car"
	}
	if c.SegmentLengthM <= 0 {
		c.SegmentLengthM = 1000
	}
	if c.FreespeedKmh <= 0 {
		c.FreespeedKmh = 80
	}
}

func (c RouterConfig) Validate() error {
	if c.SegmentLengthM <= 0 {
		return fmt.Errorf("config: segment_length_m must be positive")
	}
	if c.FreespeedKmh <= 0 {
		return fmt.Errorf("config: freespeed_kmh must be positive")
	}
	return nil
}

// EnergyConfig sets the consumption model of the fleet.
type EnergyConfig struct {
	DriveWhPerKm float64 `json:"drive_wh_per_km"`
	AuxPowerKW   float64 `json:"aux_power_kw"`
}

func (c *EnergyConfig) SetDefaults() {
	if c.DriveWhPerKm <= 0 {
		c.DriveWhPerKm = 1200
	}
}

func (c EnergyConfig) Validate() error {
	if c.DriveWhPerKm <= 0 {
		return fmt.Errorf("config: drive_wh_per_km must be positive")
	}
	if c.AuxPowerKW < 0 {
		return fmt.Errorf("config: aux_power_kw must not be negative")
	}
	return nil
}

// OutputConfig controls where staged plans are written.
type OutputConfig struct {
	Path   string `json:"path"`
	Format string `json:"format"`
}

func (c *OutputConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "plans.json"
	}
	if c.Format == "" {
		c.Format = "json"
	}
}

func (c OutputConfig) Validate() error {
	switch c.Format {
	case "json", "csv":
		return nil
	default:
		return fmt.Errorf("config: unsupported output format: %s", c.Format)
	}
}
