// Package cachefactory abre el backend de cache según configuración.
package cachefactory

import (
	"strings"
	"time"

	"github.com/dropDatabas3/idbridge/internal/cache"
	cmem "github.com/dropDatabas3/idbridge/internal/cache/memory"
	credis "github.com/dropDatabas3/idbridge/internal/cache/redis"
)

type Config struct {
	Kind  string
	Redis struct {
		Addr   string
		DB     int
		Prefix string
	}
	Memory struct{ DefaultTTL string }
}

func Open(cfg Config) (cache.Cache, error) {
	switch strings.ToLower(cfg.Kind) {
	case "redis":
		return credis.New(cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.Prefix), nil
	default:
		d, _ := time.ParseDuration(cfg.Memory.DefaultTTL)
		if d == 0 {
			d = 5 * time.Minute
		}
		return cmem.New(d), nil
	}
}
