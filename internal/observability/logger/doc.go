// Package logger provides a singleton Zap logger with context-based scoping.
//
//   - Singleton: una sola instancia global inicializada con Init().
//   - Context Scoping: cada request/login puede llevar un logger "scoped"
//     con campos adicionales (provider, user_id) sin crear un nuevo core.
//   - Environments: "dev" usa consola con colores, "prod" usa JSON.
//
// Inicialización (una vez en main.go):
//
//	logger.Init(logger.Config{Env: "prod", Level: "info"})
//	defer logger.Sync()
//
// En services (con contexto):
//
//	logger.From(ctx).Info("external login", logger.Provider(name))
package logger
