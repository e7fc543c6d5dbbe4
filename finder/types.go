package finder

import (
	"encoding/json"
	"runtime"
)

// DefaultThreshold is the exclusive minimum score a corpus entry needs to match.
const DefaultThreshold = 65

// QuestionEntry is a single corpus row. Questions and variants may repeat.
type QuestionEntry struct {
	Question string `json:"question"`
	Variant  string `json:"variant"`
}

// MatchCandidate is a variant together with the score of its question.
type MatchCandidate struct {
	Variant string `json:"variant"`
	Score   int    `json:"score"`
}

// Answer is the result of a query: ranked, deduplicated variants plus the
// query exactly as it was given.
type Answer struct {
	Answer       []string `json:"answer"`
	OriginalText string   `json:"originalText"`
}

// LogConfig controls the logger built by the CLI.
type LogConfig struct {
	JSON  bool   `json:"json" toml:"json" mapstructure:"json"`
	Level string `json:"level" toml:"level" mapstructure:"level"`
}

// Config aggregates runtime settings.
type Config struct {
	Corpus             string    `json:"corpus" toml:"corpus" mapstructure:"corpus"`
	Threshold          int       `json:"threshold" toml:"threshold" mapstructure:"threshold"`
	Locale             string    `json:"locale" toml:"locale" mapstructure:"locale"`
	CacheSize          int       `json:"cacheSize" toml:"cache_size" mapstructure:"cache_size"`
	Workers            int       `json:"workers" toml:"workers" mapstructure:"workers"`
	LoadTimeoutSeconds int       `json:"loadTimeoutSeconds" toml:"load_timeout_seconds" mapstructure:"load_timeout_seconds"`
	Log                LogConfig `json:"log" toml:"log" mapstructure:"log"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	cfg := Config{
		Threshold: DefaultThreshold,
		CacheSize: 256,
	}
	cfg.ApplyDefaults()
	return cfg
}

// Clone creates a deep copy of the configuration so callers can mutate safely.
func (c Config) Clone() Config {
	buf, _ := json.Marshal(c)
	var out Config
	_ = json.Unmarshal(buf, &out)
	return out
}

// ApplyDefaults populates zero values and clamps out-of-range ones. A zero
// threshold is meaningful and left alone.
func (c *Config) ApplyDefaults() {
	if c.Threshold < MinScore {
		c.Threshold = MinScore
	}
	if c.Threshold > MaxScore {
		c.Threshold = MaxScore
	}
	if c.Locale == "" {
		c.Locale = "und"
	}
	if c.CacheSize < 0 {
		c.CacheSize = 0
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LoadTimeoutSeconds <= 0 {
		c.LoadTimeoutSeconds = 30
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
