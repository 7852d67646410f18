// file: internals/features/users/auth/dto/auth_dto.go
package dto

import "strings"

type LoginRequest struct {
	// Username or email.
	Identifier string `json:"identifier" validate:"required,min=1,max=255"`
	Password   string `json:"password" validate:"required,min=8,max=100"`
}

func (r *LoginRequest) Normalize() {
	r.Identifier = strings.TrimSpace(r.Identifier)
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	UserName    string `json:"user_name"`
	Role        string `json:"role"`
}
