package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Muzammil2410/fiver-sub001/internal/adapter/http/middleware"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/metrics"
)

// Handlers bundles the endpoint handlers the router mounts.
type Handlers struct {
	Gigs    *GigHandler
	Orders  *OrderHandler
	Reviews *ReviewHandler
	Users   *UserHandler
}

// NewRouter wires all routes. Discovery endpoints are public; write endpoints
// sit behind JWT auth. The search route takes an optional token so "mine=true"
// can resolve the caller.
func NewRouter(h Handlers, jwtSecret string, mm *metrics.MetricsManager, log *logger.Logger) *chi.Mux {
	mux := chi.NewRouter()

	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.Recoverer)
	mux.Use(middleware.Logger(log))
	if mm != nil {
		mux.Use(middleware.ErrorCounter(mm.APIErrorsTotal))
	}

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public user routes
	mux.Post("/api/users/register", h.Users.HandleRegister)
	mux.Post("/api/users/login", h.Users.HandleLogin)

	// Public discovery routes
	mux.Group(func(r chi.Router) {
		r.Use(middleware.OptionalJWTAuth(jwtSecret))
		r.Get("/api/gigs", h.Gigs.HandleSearch)
	})
	mux.Get("/api/gigs/{id}", h.Gigs.HandleGetGig)
	mux.Get("/api/gigs/{id}/rating", h.Reviews.HandleGetRating)
	mux.Get("/api/gigs/{id}/reviews", h.Reviews.HandleListReviews)

	// Protected routes (require JWT authentication)
	mux.Group(func(authRouter chi.Router) {
		authRouter.Use(middleware.JWTAuth(jwtSecret))

		authRouter.Post("/api/gigs", h.Gigs.HandleCreateGig)
		authRouter.Put("/api/gigs/{id}", h.Gigs.HandleUpdateGig)
		authRouter.Delete("/api/gigs/{id}", h.Gigs.HandleDeleteGig)
		authRouter.Patch("/api/gigs/{id}/active", h.Gigs.HandleSetActive)
		authRouter.Post("/api/gigs/{id}/cover", h.Gigs.HandleUploadCover)

		authRouter.Post("/api/orders", h.Orders.HandleCreateOrder)
		authRouter.Get("/api/orders", h.Orders.HandleListOrders)
		authRouter.Patch("/api/orders/{id}/status", h.Orders.HandleUpdateStatus)

		authRouter.Post("/api/reviews", h.Reviews.HandleCreateReview)
	})

	return mux
}
