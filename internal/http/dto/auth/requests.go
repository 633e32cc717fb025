// Package auth contiene DTOs para los endpoints de autenticación.
package auth

// RegisterRequest es el input de POST /v1/auth/register.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Username        string `json:"username"`
	PhoneNumber     string `json:"phone_number"`
	DateOfBirth     string `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	GenderID        int64  `json:"gender_id,omitempty"`
	AvatarKey       string `json:"avatar_key,omitempty"`
}

// LoginRequest es el input de POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest es el input de POST /v1/auth/change-password.
// El actor sale del access token, no del body.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// OAuth2SuccessRequest es el input de POST /v1/auth/oauth2/{provider}/success.
// Attributes es el perfil crudo tal como lo devolvió el proveedor; el
// access token del proveedor permite enriquecimiento (p.ej. email privado).
type OAuth2SuccessRequest struct {
	ProviderAccessToken string         `json:"provider_access_token,omitempty"`
	Attributes          map[string]any `json:"attributes"`
}
