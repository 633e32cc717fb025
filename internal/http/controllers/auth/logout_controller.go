package auth

import (
	"net/http"

	dto "github.com/sp1ral-dev/veridian/internal/http/dto/auth"
	"github.com/sp1ral-dev/veridian/internal/http/helpers"
)

// LogoutController maneja el cierre de sesión.
// Los tokens son stateless: logout solo borra la cookie del refresh token,
// el access token vigente expira solo.
type LogoutController struct {
	cookies CookieSettings
}

// NewLogoutController crea el controller de logout.
func NewLogoutController(cookies CookieSettings) *LogoutController {
	return &LogoutController{cookies: cookies}
}

// Logout maneja POST /v1/auth/logout
func (c *LogoutController) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, helpers.BuildRefreshDeletionCookie(c.cookies.Domain, c.cookies.SameSite, c.cookies.Secure))
	w.Header().Set("Cache-Control", "no-store")
	helpers.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "sesión cerrada"})
}
