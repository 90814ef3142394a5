package config

var defaultConfig = Config{
	Title:           "x-wmstate",
	Class:           "x-wmstate",
	Width:           400,
	Height:          300,
	Font:            "fixed",
	CacheAtoms:      true,
	ProbeIntervalMS: 250,
}

func Default() Config {
	return defaultConfig
}

type Config struct {
	Title           string `json:"title" yaml:"title" toml:"title"`
	Class           string `json:"class" yaml:"class" toml:"class"`
	Width           uint16 `json:"width" yaml:"width" toml:"width"`
	Height          uint16 `json:"height" yaml:"height" toml:"height"`
	Font            string `json:"font" yaml:"font" toml:"font"`
	CacheAtoms      bool   `json:"cache_atoms" yaml:"cache_atoms" toml:"cache_atoms"`
	ProbeIntervalMS int    `json:"probe_interval_ms" yaml:"probe_interval_ms" toml:"probe_interval_ms"`
}

// Normalize replaces zero values with defaults.
func Normalize(cfg Config) Config {
	if cfg.Title == "" {
		cfg.Title = defaultConfig.Title
	}
	if cfg.Class == "" {
		cfg.Class = defaultConfig.Class
	}
	if cfg.Width == 0 {
		cfg.Width = defaultConfig.Width
	}
	if cfg.Height == 0 {
		cfg.Height = defaultConfig.Height
	}
	if cfg.Font == "" {
		cfg.Font = defaultConfig.Font
	}
	if cfg.ProbeIntervalMS <= 0 {
		cfg.ProbeIntervalMS = defaultConfig.ProbeIntervalMS
	}
	return cfg
}
