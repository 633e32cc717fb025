// Package events define el contrato de publicación de eventos de avatar.
//
// El bus es fire-and-forget desde la perspectiva del dominio: los flujos
// que publican (aprobación de un avatar nuevo, borrado del anterior) nunca
// propagan el fallo al cliente; quien llama loggea y sigue. La entrega es
// at-least-once, así que los consumidores deben ser idempotentes (un DELETE
// duplicado de la misma clave es un no-op).
package events

import "context"

// Action es el tipo de evento sobre un avatar.
type Action string

const (
	ActionApproved Action = "APPROVED"
	ActionDeleted  Action = "DELETED"
)

// Event es la unidad publicada: acción + clave del objeto en el storage.
type Event struct {
	Action Action `json:"action"`
	Key    string `json:"key"`
}

// Publisher publica eventos de avatar. Las implementaciones deben particionar
// por Key para preservar el orden relativo de eventos de un mismo avatar.
type Publisher interface {
	Publish(ctx context.Context, action Action, key string) error
}
