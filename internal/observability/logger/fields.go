package logger

import (
	"time"

	"go.uber.org/zap"

	"github.com/dropDatabas3/authlete-go/internal/util"
)

// =================================================================================
// CAMPOS ESTÁNDAR - HTTP
// =================================================================================

// RequestID crea un campo para el X-Request-Id de la llamada.
func RequestID(v string) zap.Field {
	return zap.String("request_id", v)
}

// Method crea un campo para el método HTTP.
func Method(v string) zap.Field {
	return zap.String("method", v)
}

// Path crea un campo para el path del endpoint de Authlete.
func Path(v string) zap.Field {
	return zap.String("path", v)
}

// Status crea un campo para el status code HTTP.
func Status(v int) zap.Field {
	return zap.Int("status", v)
}

// Duration crea un campo para la duración de la llamada.
func Duration(v time.Duration) zap.Field {
	return zap.Duration("duration", v)
}

// Attempt crea un campo para el número de intento (retries).
func Attempt(v int) zap.Field {
	return zap.Int("attempt", v)
}

// =================================================================================
// CAMPOS ESTÁNDAR - NEGOCIO
// =================================================================================

// ServiceAPIKey crea un campo para la API key del servicio, enmascarada.
func ServiceAPIKey(v string) zap.Field {
	return zap.String("service_api_key", util.MaskSecret(v))
}

// Token crea un campo para un token, siempre enmascarado.
// Nunca loguear tokens crudos.
func Token(v string) zap.Field {
	return zap.String("token", util.MaskToken(v))
}

// =================================================================================
// CAMPOS ESTÁNDAR - SISTEMA
// =================================================================================

// Component crea un campo para el componente/módulo.
func Component(v string) zap.Field {
	return zap.String("component", v)
}

// Op crea un campo para la operación actual.
func Op(v string) zap.Field {
	return zap.String("op", v)
}

// Err crea un campo para un error.
func Err(err error) zap.Field {
	return zap.Error(err)
}

// =================================================================================
// CAMPOS GENÉRICOS
// =================================================================================

// Key crea un campo genérico para una clave de cache.
func Key(v string) zap.Field {
	return zap.String("key", v)
}

// String crea un campo string genérico.
func String(key, v string) zap.Field {
	return zap.String(key, v)
}
