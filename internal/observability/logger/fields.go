package logger

import (
	"time"

	"go.uber.org/zap"
)

// Campos estándar HTTP.

// RequestID crea un campo para el ID del request.
func RequestID(v string) zap.Field { return zap.String("request_id", v) }

// Method crea un campo para el método HTTP.
func Method(v string) zap.Field { return zap.String("method", v) }

// Path crea un campo para el path del request.
func Path(v string) zap.Field { return zap.String("path", v) }

// Status crea un campo para el status code HTTP.
func Status(v int) zap.Field { return zap.Int("status", v) }

// DurationMs crea un campo para la duración en milisegundos.
func DurationMs(v int64) zap.Field { return zap.Int64("duration_ms", v) }

// Bytes crea un campo para los bytes de respuesta.
func Bytes(v int) zap.Field { return zap.Int("bytes", v) }

// Campos estándar de negocio.

// UserID crea un campo para el ID del usuario.
func UserID(v string) zap.Field { return zap.String("user_id", v) }

// Email crea un campo para el email (usar con cuidado en prod).
func Email(v string) zap.Field { return zap.String("email", v) }

// Provider crea un campo para el proveedor de identidad federada.
func Provider(v string) zap.Field { return zap.String("provider", v) }

// TokenType crea un campo para el tipo de token (access/refresh).
func TokenType(v string) zap.Field { return zap.String("token_type", v) }

// Action crea un campo para la acción de un evento de avatar.
func Action(v string) zap.Field { return zap.String("action", v) }

// Key crea un campo genérico para una clave (p.ej. avatar key).
func Key(v string) zap.Field { return zap.String("key", v) }

// Campos estándar de sistema.

// Component crea un campo para el componente/módulo.
func Component(v string) zap.Field { return zap.String("component", v) }

// Op crea un campo para la operación actual.
func Op(v string) zap.Field { return zap.String("op", v) }

// Layer crea un campo para la capa (controller, service, repository).
func Layer(v string) zap.Field { return zap.String("layer", v) }

// Err crea un campo para un error.
func Err(err error) zap.Field { return zap.Error(err) }

// Genéricos.

// String crea un campo string genérico.
func String(key, v string) zap.Field { return zap.String(key, v) }

// Int crea un campo int genérico.
func Int(key string, v int) zap.Field { return zap.Int(key, v) }

// Dur crea un campo de duración.
func Dur(key string, v time.Duration) zap.Field { return zap.Duration(key, v) }

func Any(key string, v any) zap.Field { return zap.Any(key, v) }
