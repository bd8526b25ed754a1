package logger

import (
	"time"

	"go.uber.org/zap"
)

// Campos estándar del dominio para mantener nombres consistentes en logs.

// Provider crea un campo para el identity provider (twitter, google, ...).
func Provider(v string) zap.Field {
	return zap.String("provider", v)
}

// UserID crea un campo para el ID interno del usuario.
func UserID(v string) zap.Field {
	return zap.String("user_id", v)
}

// SessionID crea un campo para el ID de sesión.
func SessionID(v string) zap.Field {
	return zap.String("session_id", v)
}

// RequestID crea un campo para el ID del request.
func RequestID(v string) zap.Field {
	return zap.String("request_id", v)
}

// Method crea un campo para el método HTTP.
func Method(v string) zap.Field {
	return zap.String("method", v)
}

// Path crea un campo para el path del request.
func Path(v string) zap.Field {
	return zap.String("path", v)
}

// Status crea un campo para el status code HTTP.
func Status(v int) zap.Field {
	return zap.Int("status", v)
}

// Bytes crea un campo para los bytes escritos en la respuesta.
func Bytes(v int) zap.Field {
	return zap.Int("bytes", v)
}

// Duration crea un campo para la duración de una operación.
func Duration(v time.Duration) zap.Field {
	return zap.Duration("duration", v)
}

// Err crea un campo para un error.
func Err(err error) zap.Field {
	return zap.Error(err)
}
