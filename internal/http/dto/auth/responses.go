package auth

// UserPayload es la vista combinada identidad + perfil que acompaña a los
// tokens. Los campos de perfil pueden venir vacíos si el servicio de
// perfiles no está disponible (flujos donde el perfil es best-effort).
type UserPayload struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Provider    string `json:"provider"`
	Username    string `json:"username,omitempty"`
	AvatarKey   string `json:"avatar_key,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	GenderID    int64  `json:"gender_id,omitempty"`
}

// AuthResponse es la respuesta de register/login/refresh/oauth2-success.
// El refresh token NO aparece aquí: viaja solo en la cookie HttpOnly.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"` // siempre "Bearer"
	ExpiresIn   int64       `json:"expires_in"` // segundos
	User        UserPayload `json:"user"`
}

// RedirectResponse es la respuesta alternativa del flujo OAuth2 cuando la
// finalización está configurada como redirect.
type RedirectResponse struct {
	RedirectURL string `json:"redirect_url"`
}

// ValidateResponse es la respuesta de GET /v1/auth/validate.
type ValidateResponse struct {
	UserID  string `json:"user_id"`
	Subject string `json:"sub"`
}

// MessageResponse es una respuesta genérica de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}
