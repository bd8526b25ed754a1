package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Storage struct {
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns    int    `yaml:"max_open_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		Kind  string `yaml:"kind"` // memory | redis
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	Session struct {
		// SnapshotTTL bounds staleness of the cached user snapshot and
		// role set read during session population. Duration string
		// ("5m", "30s"); ver SnapshotTTL().
		SnapshotTTL string `yaml:"snapshot_ttl"`
	} `yaml:"session"`

	// ───────── OAuth providers (enrichment credentials) ─────────
	OAuth struct {
		Twitter struct {
			ConsumerKey    string `yaml:"consumer_key"`
			ConsumerSecret string `yaml:"consumer_secret"`
		} `yaml:"twitter"`

		MicrosoftGraph struct {
			SavePhoto     bool   `yaml:"save_photo"`
			SavePhotoSize string `yaml:"save_photo_size"` // ej. "96x96", "240x240"
		} `yaml:"microsoftgraph"`
	} `yaml:"oauth"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	// sane defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "5m"
	}
	if c.Session.SnapshotTTL == "" {
		c.Session.SnapshotTTL = "5m"
	}
	if c.OAuth.MicrosoftGraph.SavePhotoSize == "" {
		c.OAuth.MicrosoftGraph.SavePhotoSize = "96x96"
	}

	// validate string durations
	if c.Storage.Postgres.ConnMaxLifetime != "" {
		if _, err := time.ParseDuration(c.Storage.Postgres.ConnMaxLifetime); err != nil {
			return nil, err
		}
	}
	if _, err := time.ParseDuration(c.Cache.Memory.DefaultTTL); err != nil {
		return nil, err
	}
	if _, err := time.ParseDuration(c.Session.SnapshotTTL); err != nil {
		return nil, err
	}

	// env overrides (útiles en contenedores)
	if v := os.Getenv("IDBRIDGE_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("IDBRIDGE_DSN"); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv("IDBRIDGE_REDIS_ADDR"); v != "" {
		c.Cache.Kind = "redis"
		c.Cache.Redis.Addr = v
	}

	return &c, nil
}

// SnapshotTTL retorna el TTL de snapshot de sesión ya parseado.
// Load garantiza que el string es válido.
func (c *Config) SnapshotTTL() time.Duration {
	d, _ := time.ParseDuration(c.Session.SnapshotTTL)
	return d
}
