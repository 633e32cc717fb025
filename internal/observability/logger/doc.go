// Package logger provee un logger Zap singleton con scoping por contexto.
//
// Decisiones:
//
//   - Singleton: una sola instancia global inicializada con Init().
//   - Context scoping: cada request lleva un logger "scoped" con campos
//     adicionales (request_id, user_id, etc.) sin crear un nuevo core.
//   - Entornos: "dev" usa consola con colores, "prod" usa JSON.
//   - Niveles: debug, info, warn, error (configurable vía LOG_LEVEL).
//
// Uso:
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
//	defer logger.Sync()
//
//	log := logger.From(ctx)
//	log.Info("token issued", logger.UserID(userID))
package logger
