// Package server exposes the album repository as a small read-only JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/five82/albumfeed/internal/catalog"
	"github.com/five82/albumfeed/internal/repository"
)

const requestTimeout = 30 * time.Second

// Handler serves /api/albums, /api/albums/{id} and /health.
type Handler struct {
	source repository.Source
	logger *slog.Logger
}

// NewHandler builds a Handler over source.
func NewHandler(source repository.Source, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{source: source, logger: logger}
}

// RegisterRoutes adds the API routes to router.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/albums", h.ListAlbums).Methods(http.MethodGet)
	router.HandleFunc("/api/albums/{id}", h.GetAlbum).Methods(http.MethodGet)
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
}

// Router returns a mux.Router with every route registered.
func (h *Handler) Router() *mux.Router {
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router
}

type albumResponse struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	ArtistName           string           `json:"artist_name"`
	Genre                string           `json:"genre"`
	ArtworkSmall         string           `json:"artwork_small,omitempty"`
	ArtworkMedium        string           `json:"artwork_medium,omitempty"`
	ArtworkLarge         string           `json:"artwork_large,omitempty"`
	Price                string           `json:"price"`
	PriceAmount          *decimal.Decimal `json:"price_amount,omitempty"`
	Currency             string           `json:"currency,omitempty"`
	ReleaseDate          string           `json:"release_date"`
	ReleaseDateFormatted string           `json:"release_date_formatted"`
	ItemCount            int              `json:"item_count"`
	Copyright            string           `json:"copyright"`
	URL                  string           `json:"url"`
}

type listResponse struct {
	Albums []albumResponse `json:"albums"`
	Total  int             `json:"total"`
}

func toResponse(a catalog.Album) albumResponse {
	resp := albumResponse{
		ID:                   a.ID,
		Name:                 a.Name,
		ArtistName:           a.ArtistName,
		Genre:                a.Genre,
		ArtworkSmall:         a.ArtworkSmall,
		ArtworkMedium:        a.ArtworkMedium,
		ArtworkLarge:         a.ArtworkLarge,
		Price:                a.Price,
		Currency:             a.Currency,
		ReleaseDate:          a.ReleaseDate,
		ReleaseDateFormatted: a.ReleaseDateFormatted,
		ItemCount:            a.ItemCount,
		Copyright:            a.Copyright,
		URL:                  a.URL,
	}
	if a.HasPriceAmount() {
		amount := a.PriceAmount.Decimal
		resp.PriceAmount = &amount
	}
	return resp
}

// ListAlbums returns the top albums in feed order. limit defaults to
// repository.DefaultLimit.
func (h *Handler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	limit := repository.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.respondWithError(w, http.StatusBadRequest, catalog.ErrInvalidLimit.Error())
			return
		}
		limit = parsed
	}

	albums, err := h.source.ListTop(ctx, limit)
	if err != nil {
		h.respondWithFailure(w, r, err)
		return
	}
	resp := listResponse{Albums: make([]albumResponse, 0, len(albums)), Total: len(albums)}
	for _, a := range albums {
		resp.Albums = append(resp.Albums, toResponse(a))
	}
	h.respondWithJSON(w, http.StatusOK, resp)
}

// GetAlbum returns one album, served from the cache when possible.
func (h *Handler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id := mux.Vars(r)["id"]
	album, err := h.source.GetByID(ctx, id)
	if err != nil {
		h.respondWithFailure(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, toResponse(album))
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, "album not found"
	case errors.Is(err, catalog.ErrInvalidLimit):
		return http.StatusBadRequest, catalog.ErrInvalidLimit.Error()
	case errors.Is(err, catalog.ErrTransport):
		return http.StatusBadGateway, "feed unavailable"
	case errors.Is(err, catalog.ErrMalformedPayload):
		return http.StatusBadGateway, "feed returned a malformed payload"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func (h *Handler) respondWithFailure(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	h.logger.Warn("api request failed",
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.Any("error", err))
	h.respondWithError(w, status, msg)
}

func (h *Handler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, map[string]string{"error": message})
}

func (h *Handler) respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Debug("write response", slog.Any("error", err))
	}
}
