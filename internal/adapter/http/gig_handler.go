package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Muzammil2410/fiver-sub001/internal/adapter/http/middleware"
	"github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
	"github.com/Muzammil2410/fiver-sub001/internal/gig/usecase"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
)

const maxCoverUploadBytes = 10 << 20 // 10MB

// GigHandler serves the gig read and write endpoints.
type GigHandler struct {
	search *usecase.SearchUsecase
	gigs   *usecase.GigUsecase
	logger *logger.Logger
}

func NewGigHandler(search *usecase.SearchUsecase, gigs *usecase.GigUsecase, log *logger.Logger) *GigHandler {
	return &GigHandler{search: search, gigs: gigs, logger: log.Named("GigHandler")}
}

// HandleSearch is the discovery endpoint: filter, sort, paginate, enrich.
func (h *GigHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	filter := parseSearchFilter(r)

	result, err := h.search.SearchGigs(r.Context(), filter)
	if err != nil {
		h.logger.Error("search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to search gigs")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *GigHandler) HandleGetGig(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	gig, err := h.gigs.GetGig(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gig)
}

type gigRequest struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	Packages     []domain.Package `json:"packages"`
	BasePrice    int              `json:"basePrice"`
	DeliveryTime int              `json:"deliveryTime"`
}

func (h *GigHandler) HandleCreateGig(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req gigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	gig, err := h.gigs.CreateGig(r.Context(), userID, usecase.CreateGigInput{
		Title:        req.Title,
		Description:  req.Description,
		Category:     domain.Category(req.Category),
		Packages:     req.Packages,
		BasePrice:    req.BasePrice,
		DeliveryTime: req.DeliveryTime,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, gig)
}

func (h *GigHandler) HandleUpdateGig(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id := chi.URLParam(r, "id")

	var req gigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	gig, err := h.gigs.UpdateGig(r.Context(), id, userID, usecase.UpdateGigInput{
		Title:        req.Title,
		Description:  req.Description,
		Category:     domain.Category(req.Category),
		Packages:     req.Packages,
		BasePrice:    req.BasePrice,
		DeliveryTime: req.DeliveryTime,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, gig)
}

func (h *GigHandler) HandleDeleteGig(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.gigs.DeleteGig(r.Context(), id, userID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GigHandler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id := chi.URLParam(r, "id")

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	gig, err := h.gigs.SetActive(r.Context(), id, userID, req.Active)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, gig)
}

func (h *GigHandler) HandleUploadCover(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxCoverUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("cover")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing cover file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	gig, err := h.gigs.UploadCover(r.Context(), id, userID, header.Filename, data)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, gig)
}
