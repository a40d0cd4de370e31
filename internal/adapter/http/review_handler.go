package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Muzammil2410/fiver-sub001/internal/adapter/http/middleware"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
	"github.com/Muzammil2410/fiver-sub001/internal/review/usecase"
)

type ReviewHandler struct {
	reviews *usecase.ReviewUsecase
	logger  *logger.Logger
}

func NewReviewHandler(reviews *usecase.ReviewUsecase, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: log.Named("ReviewHandler")}
}

func (h *ReviewHandler) HandleCreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		GigID   string `json:"gigId"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GigID == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), userID, req.GigID, req.Rating, req.Comment)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	gigID := chi.URLParam(r, "id")
	q := r.URL.Query()

	reviews, total, err := h.reviews.ListReviews(r.Context(), gigID, intParam(q.Get("page")), intParam(q.Get("limit")))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"total":   total,
	})
}

// HandleGetRating serves the current rating aggregate for one gig. Polled by
// clients to keep displayed ratings fresh.
func (h *ReviewHandler) HandleGetRating(w http.ResponseWriter, r *http.Request) {
	gigID := chi.URLParam(r, "id")

	summary, err := h.reviews.GetRating(r.Context(), gigID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
