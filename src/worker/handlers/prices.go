package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// RefreshAllPrices triggers the same run the cron schedule performs and
// returns the per-ticker feedback.
func (h *Handler) RefreshAllPrices(w http.ResponseWriter, r *http.Request) {
	// Scraping every registered ticker takes a while.
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	feedback, err := h.Controller.RefreshAllPrices(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, feedback, 200)
}

func (h *Handler) RefreshTickerPrice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	ticker := chi.URLParam(r, "ticker")
	message, err := h.Controller.RefreshTickerPrice(ctx, ticker)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]string{ticker: message}, 200)
}
