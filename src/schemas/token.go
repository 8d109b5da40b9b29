package schemas

import (
	"net/mail"
	"time"
)

type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterUserRequest) Validate() map[string]string {
	fields := map[string]string{}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		fields["email"] = "Email inválido"
	}
	if len(r.Password) < 8 {
		fields["password"] = "Senha deve ter ao menos 8 caracteres"
	}
	return fields
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
