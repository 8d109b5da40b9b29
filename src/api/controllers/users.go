package controllers

import (
	"context"
	"time"

	"carteira/src/models"
	"carteira/src/repositories"
	"carteira/src/schemas"
	"carteira/src/utils"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UsersControllerI interface {
	RegisterUser(ctx context.Context, req *schemas.RegisterUserRequest) (*schemas.UserResponse, error)
	PostToken(ctx context.Context, email, password string) (*schemas.TokenResponse, error)
}

type UsersController struct {
	Users     repositories.UserRepository
	TokenAuth *jwtauth.JWTAuth
	TokenTTL  time.Duration
}

func NewUsersController(users repositories.UserRepository, tokenAuth *jwtauth.JWTAuth, tokenTTL time.Duration) *UsersController {
	return &UsersController{Users: users, TokenAuth: tokenAuth, TokenTTL: tokenTTL}
}

func (c *UsersController) RegisterUser(ctx context.Context, req *schemas.RegisterUserRequest) (*schemas.UserResponse, error) {
	fields := req.Validate()
	if len(fields) == 0 {
		existing, err := c.Users.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			fields["email"] = "Email já cadastrado"
		}
	}
	if len(fields) > 0 {
		return nil, utils.NewValidationError(fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := c.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	return &schemas.UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (c *UsersController) PostToken(ctx context.Context, email, password string) (*schemas.TokenResponse, error) {
	user, err := c.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.Unauthorized("Credenciais inválidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, utils.Unauthorized("Credenciais inválidas")
	}

	claims := map[string]interface{}{
		"user_id": user.ID.String(),
		"email":   user.Email,
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, c.TokenTTL)

	_, tokenString, err := c.TokenAuth.Encode(claims)
	if err != nil {
		return nil, err
	}

	return &schemas.TokenResponse{
		AccessToken: tokenString,
		TokenType:   "Bearer",
		ExpiresIn:   int(c.TokenTTL.Seconds()),
	}, nil
}
