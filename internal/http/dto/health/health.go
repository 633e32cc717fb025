// Package health contiene DTOs para los endpoints de salud.
package health

// Status es la respuesta de /healthz y /readyz.
type Status struct {
	Status string            `json:"status"` // "ok" | "degraded"
	Checks map[string]string `json:"checks,omitempty"`
}
