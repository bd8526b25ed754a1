// Package cache define la abstracción de cache usada por el enrichment
// de sesiones y el helper cache-aside GetOrCreate.
//
// Backends:
//   - memory (in-process, go-cache)
//   - redis (distribuido)
package cache

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/dropDatabas3/idbridge/internal/metrics"
)

// Cache define las operaciones mínimas de un backend.
type Cache interface {
	Get(key string) (value []byte, ok bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}

// GetOrCreate implementa el patrón cache-aside: consulta la key y, en
// miss (o entrada corrupta), ejecuta load, guarda el resultado con ttl
// y lo retorna.
//
// load debe ser idempotente: dos misses concurrentes para la misma key
// pueden ejecutarlo en paralelo y el último Set gana. No hay
// coalescing ni invalidación explícita; la entrada expira sola por TTL.
func GetOrCreate[T any](c Cache, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if b, ok := c.Get(key); ok {
		var v T
		if err := json.Unmarshal(b, &v); err == nil && !nilPointer(v) {
			metrics.CacheReads.WithLabelValues("hit").Inc()
			return v, nil
		}
		// entrada corrupta o null: recomputar
	}
	metrics.CacheReads.WithLabelValues("miss").Inc()

	var zero T
	v, err := load()
	if err != nil {
		return zero, err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return zero, err
	}
	c.Set(key, b, ttl)
	return v, nil
}

// nilPointer detecta el caso en que la entrada cacheada era el literal
// JSON null y T es un puntero: el unmarshal "exitoso" dejaría v en nil
// y el caller lo dereferenciaría. Slices y maps nil quedan fuera a
// propósito (un set de roles vacío cachea como null y sigue siendo un
// hit válido).
func nilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
