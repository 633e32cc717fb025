// Package profile contiene DTOs para el endpoint de perfil.
package profile

// UpdateRequest es el input de PUT /v1/profile.
type UpdateRequest struct {
	Username    string `json:"username"`
	PhoneNumber string `json:"phone_number,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	GenderID    int64  `json:"gender_id,omitempty"`
	AvatarKey   string `json:"avatar_key,omitempty"`
}

// UpdateResponse es el resultado tras aplicar el update.
type UpdateResponse struct {
	Username  string `json:"username"`
	AvatarKey string `json:"avatar_key,omitempty"`
}
