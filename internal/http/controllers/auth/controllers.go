// Package auth contiene los controllers de autenticación.
package auth

import (
	"time"

	svc "github.com/sp1ral-dev/veridian/internal/http/services/auth"
)

const contentTypeJSON = "application/json; charset=utf-8"

// CookieSettings parametriza la cookie HttpOnly del refresh token.
type CookieSettings struct {
	Domain   string
	SameSite string
	Secure   bool
	TTL      time.Duration
}

// CompletionMode define cómo termina el flujo OAuth2: cuerpo JSON o
// redirect con el access token fuera de banda.
type CompletionMode string

const (
	CompletionJSON     CompletionMode = "json"
	CompletionRedirect CompletionMode = "redirect"
)

// Controllers agrupa todos los controllers del dominio auth.
type Controllers struct {
	Register *RegisterController
	Login    *LoginController
	Refresh  *RefreshController
	Logout   *LogoutController
	Password *PasswordController
	OAuth2   *OAuth2Controller
	Validate *ValidateController
}

// Deps agrupa servicios y configuración de los controllers.
type Deps struct {
	Register svc.RegisterService
	Login    svc.LoginService
	Refresh  svc.RefreshService
	Password svc.PasswordService
	OAuth2   svc.FederationService
	Validate svc.ValidateService

	Cookies        CookieSettings
	Completion     CompletionMode
	RedirectTarget string // solo para CompletionRedirect
}

// New construye los controllers con sus dependencias.
func New(d Deps) *Controllers {
	return &Controllers{
		Register: NewRegisterController(d.Register, d.Cookies),
		Login:    NewLoginController(d.Login, d.Cookies),
		Refresh:  NewRefreshController(d.Refresh, d.Cookies),
		Logout:   NewLogoutController(d.Cookies),
		Password: NewPasswordController(d.Password),
		OAuth2:   NewOAuth2Controller(d.OAuth2, d.Cookies, d.Completion, d.RedirectTarget),
		Validate: NewValidateController(d.Validate),
	}
}
