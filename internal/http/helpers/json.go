package helpers

import (
	"encoding/json"
	"net/http"
	"strings"

	apperrors "github.com/sp1ral-dev/veridian/internal/http/errors"
)

// maxBodyBytes limita el body de los endpoints JSON.
const maxBodyBytes = 1 << 20 // 1 MiB

// DecodeJSON parsea el body JSON en dst con límite de tamaño.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.ErrInvalidJSON.WithCause(err)
	}
	return nil
}

// WriteJSON serializa v con el status dado.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// BearerToken extrae el token del header Authorization, o "".
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
