package showdash

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"seriescope/lib/scrapers/imdb"
	"seriescope/lib/showtable"
)

func (s Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/show", s.handleShow)
	mux.HandleFunc("GET /api/show/export", s.handleExport)
}

func (s Service) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// scrapeStatus maps a failed scrape onto a response code: the caller's
// fault for urls that never pointed at a show, upstream's otherwise.
func scrapeStatus(err error) int {
	if errors.Is(err, imdb.ErrInvalidSource) {
		return http.StatusBadRequest
	}
	if errors.Is(err, showtable.ErrEmptyResult) {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func (s Service) handleShow(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing 'url' query parameter"))
		return
	}

	result, err := s.Scrape(r.Context(), rawURL)
	if err != nil {
		slog.WarnContext(r.Context(), "scrape failed", "url", rawURL, "err", err)
		writeError(w, scrapeStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(BuildDashboard(result))
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to encode dashboard payload", "err", err)
	}
}

func (s Service) handleExport(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing 'url' query parameter"))
		return
	}

	result, err := s.Scrape(r.Context(), rawURL)
	if err != nil {
		slog.WarnContext(r.Context(), "scrape failed", "url", rawURL, "err", err)
		writeError(w, scrapeStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", result.Show.ID+"_episodes.csv"),
	)
	err = result.Table.WriteCSV(w)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to write csv export", "err", err)
	}
}
