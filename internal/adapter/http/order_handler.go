package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Muzammil2410/fiver-sub001/internal/adapter/http/middleware"
	gigdomain "github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
	"github.com/Muzammil2410/fiver-sub001/internal/order/domain"
	"github.com/Muzammil2410/fiver-sub001/internal/order/usecase"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
)

type OrderHandler struct {
	orders *usecase.OrderUsecase
	logger *logger.Logger
}

func NewOrderHandler(orders *usecase.OrderUsecase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: log.Named("OrderHandler")}
}

func (h *OrderHandler) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		GigID       string `json:"gigId"`
		PackageTier string `json:"packageTier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GigID == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), userID, req.GigID, gigdomain.PackageTier(req.PackageTier))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q := r.URL.Query()
	orders, total, err := h.orders.ListOrders(r.Context(), userID, intParam(q.Get("page")), intParam(q.Get("limit")))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"total":  total,
	})
}

func (h *OrderHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id := chi.URLParam(r, "id")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id, userID, domain.Status(req.Status))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
