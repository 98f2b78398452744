package wire

import (
	"context"
	"net/http"
	"time"

	"booking-platform/internal/adaptor"
	"booking-platform/internal/data/repository"
	"booking-platform/internal/usecase"
	"booking-platform/pkg/database"
	"booking-platform/pkg/gateway"
	"booking-platform/pkg/middleware"
	"booking-platform/pkg/ratelimit"
	"booking-platform/pkg/utils"
	"booking-platform/pkg/whatsapp"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application.
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies.
func Wiring(repo *repository.Repository, db database.PgxIface, config *utils.Config, loc *time.Location, logger *zap.Logger) *App {
	yappy := gateway.NewYappyClient(config.Yappy, logger)
	twilio := whatsapp.NewTwilioClient(config.Twilio, logger)
	limiter := ratelimit.NewRedis(config.Redis)

	service := usecase.NewService(repo, config, yappy, twilio, loc, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, db, limiter, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	db database.PgxIface,
	limiter *ratelimit.Limiter,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wirePublic(r, handler, limiter, logger)
	wirePayment(r, handler.Payment)
	wireAdmin(r, handler.Booking)
	wireCron(r, handler.Outbox)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			utils.ResponseInternalError(w, "database unreachable")
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	})

	return r
}
