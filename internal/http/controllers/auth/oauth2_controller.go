package auth

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	dto "github.com/sp1ral-dev/veridian/internal/http/dto/auth"
	httperrors "github.com/sp1ral-dev/veridian/internal/http/errors"
	"github.com/sp1ral-dev/veridian/internal/http/helpers"
	svc "github.com/sp1ral-dev/veridian/internal/http/services/auth"
	"github.com/sp1ral-dev/veridian/internal/observability/logger"
)

// OAuth2Controller finaliza el flujo de login federado.
type OAuth2Controller struct {
	service        svc.FederationService
	cookies        CookieSettings
	completion     CompletionMode
	redirectTarget string
}

// NewOAuth2Controller crea el controller del flujo OAuth2.
func NewOAuth2Controller(service svc.FederationService, cookies CookieSettings, completion CompletionMode, redirectTarget string) *OAuth2Controller {
	if completion == "" {
		completion = CompletionJSON
	}
	return &OAuth2Controller{
		service:        service,
		cookies:        cookies,
		completion:     completion,
		redirectTarget: redirectTarget,
	}
}

// Success maneja POST /v1/auth/oauth2/{provider}/success
func (c *OAuth2Controller) Success(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	provider := chi.URLParam(r, "provider")
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("OAuth2Controller.Success"),
		logger.Provider(provider),
	)

	var req dto.OAuth2SuccessRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}
	if len(req.Attributes) == 0 {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("attributes es obligatorio"))
		return
	}

	result, err := c.service.Complete(ctx, provider, req)
	if err != nil {
		log.Debug("oauth2 completion failed", logger.Err(err))
		switch {
		case errors.Is(err, svc.ErrEmailMissing):
			httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("el proveedor no entregó un email"))
		case errors.Is(err, svc.ErrUserDisabled):
			httperrors.WriteError(w, httperrors.ErrAccountDisabled)
		case errors.Is(err, svc.ErrTokenIssueFailed):
			httperrors.WriteError(w, httperrors.ErrInternalServerError.WithDetail("error al emitir tokens"))
		default:
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	http.SetCookie(w, helpers.BuildRefreshCookie(
		result.RefreshToken, c.cookies.Domain, c.cookies.SameSite, c.cookies.Secure, c.cookies.TTL,
	))
	w.Header().Set("Cache-Control", "no-store")

	// La finalización es configurable: JSON directo para SPAs, redirect
	// para frontends server-side que levantan el token del fragment.
	if c.completion == CompletionRedirect && c.redirectTarget != "" {
		target := c.redirectTarget + "#access_token=" + url.QueryEscape(result.Response.AccessToken)
		helpers.WriteJSON(w, http.StatusOK, dto.RedirectResponse{RedirectURL: target})
		return
	}
	helpers.WriteJSON(w, http.StatusOK, result.Response)
}
