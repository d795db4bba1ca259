// Package logger provides a singleton Zap logger shared by the SDK.
//
// # Design Decisions
//
//   - Singleton: Una sola instancia global inicializada con Init(). El SDK es
//     una librería, así que Init() es opcional: si el consumidor no lo llama,
//     se construye un logger por defecto (dev, info).
//   - Context Scoping: Cada llamada a la API puede llevar un logger "scoped"
//     con campos adicionales (request_id, service_api_key enmascarada, etc.)
//     sin crear un nuevo core.
//   - Environments: "dev" usa consola con colores, "prod" usa JSON.
//   - Levels: debug, info, warn, error (configurable via AUTHLETE_LOG_LEVEL).
//
// # Usage
//
// Inicialización (una vez, normalmente en main.go del consumidor):
//
//	logger.Init(logger.Config{
//	    Env:   os.Getenv("APP_ENV"),            // "dev" o "prod"
//	    Level: os.Getenv("AUTHLETE_LOG_LEVEL"), // "debug", "info", "warn", "error"
//	})
//	defer logger.Sync()
//
// En el cliente de la API (con contexto):
//
//	log := logger.From(ctx)
//	log.Debug("calling authlete", logger.Path("/api/auth/token"), logger.RequestID(rid))
//
// Sin contexto (fallback al singleton):
//
//	logger.L().Info("client ready")
package logger
