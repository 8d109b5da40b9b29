package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"carteira/src/schemas"
	"carteira/src/utils"
)

func (h *Handler) PostToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var tokenRequestCreds = new(schemas.TokenRequest)
	if err := json.NewDecoder(r.Body).Decode(tokenRequestCreds); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	tokenResponse, err := h.Users.PostToken(ctx, tokenRequestCreds.Email, tokenRequestCreds.Password)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, tokenResponse, 200)
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	req := new(schemas.RegisterUserRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	user, err := h.Users.RegisterUser(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, user, http.StatusCreated)
}
