package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"carteira/src/utils/render"
)

// yearParam reads the optional ?year= filter, defaulting to the current
// year.
func yearParam(r *http.Request) int {
	if raw := r.URL.Query().Get("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			return year
		}
	}
	return time.Now().Year()
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	dashboard, err := h.Dashboard.GetDashboard(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, dashboard, 200)
}

func (h *Handler) GetMonthlyResults(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	results, err := h.Dashboard.GetMonthlyResults(ctx, userID, yearParam(r))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, results, 200)
}

// GetMonthlyResultsChart serves the lucro x prejuízo chart as HTML.
func (h *Handler) GetMonthlyResultsChart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	results, err := h.Dashboard.GetMonthlyResults(ctx, userID, yearParam(r))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	html, err := render.RenderMonthlyResultsHTML(results.Data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

// GetMonthlyResultsReport serves the same chart as a PDF download.
func (h *Handler) GetMonthlyResultsReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	results, err := h.Dashboard.GetMonthlyResults(ctx, userID, yearParam(r))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	html, err := render.RenderMonthlyResultsHTML(results.Data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	pdf, err := render.GeneratePDF([]string{html})
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=resultado-mensal.pdf")
	_, _ = w.Write(pdf.Bytes())
}
