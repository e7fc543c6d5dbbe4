package finder

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. ANSWERFINDER_CORPUS.
const EnvPrefix = "ANSWERFINDER"

// SetDefaults registers the default value of every configuration key.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("corpus", d.Corpus)
	v.SetDefault("threshold", d.Threshold)
	v.SetDefault("locale", d.Locale)
	v.SetDefault("cache_size", d.CacheSize)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("load_timeout_seconds", d.LoadTimeoutSeconds)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.level", d.Log.Level)
}

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// LoadConfig reads configuration from defaults, the optional TOML file at path
// and ANSWERFINDER_* environment variables, in increasing precedence. A
// missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	v := NewViper()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return Config{}, errors.Wrapf(err, "read config %s", path)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, errors.Wrapf(err, "stat config %s", path)
		}
	}
	return LoadConfigWithViper(v)
}

// LoadConfigWithViper decodes configuration from a prepared viper instance.
func LoadConfigWithViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "decode config")
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration as TOML.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create config dir")
	}
	cfg.ApplyDefaults()
	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "write temp config")
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(err, "rename config")
	}
	return nil
}
