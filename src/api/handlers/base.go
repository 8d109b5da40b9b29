package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"carteira/src/api/controllers"
	"carteira/src/utils"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
)

type Handler struct {
	Stocks    controllers.StocksControllerI
	Movements controllers.MovementsControllerI
	Dashboard controllers.DashboardControllerI
	Users     controllers.UsersControllerI
}

func NewHandler(
	stocks controllers.StocksControllerI,
	movements controllers.MovementsControllerI,
	dashboard controllers.DashboardControllerI,
	users controllers.UsersControllerI,
) *Handler {
	return &Handler{
		Stocks:    stocks,
		Movements: movements,
		Dashboard: dashboard,
		Users:     users,
	}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	var validationErr *utils.ValidationError
	if errors.Is(err, context.DeadlineExceeded) {
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	} else if errors.As(err, &validationErr) {
		h.respond(w, nil, validationErr, http.StatusBadRequest)
	} else if errors.As(err, &httpErr) {
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	} else if err != nil {
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusInternalServerError)
	} else {
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}

// userID pulls the owner's identity out of the verified JWT claims.
func (h *Handler) userID(r *http.Request) (uuid.UUID, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return uuid.Nil, utils.Unauthorized("token inválido")
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, utils.Unauthorized("token sem identidade do usuário")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, utils.Unauthorized("token sem identidade do usuário")
	}
	return id, nil
}
