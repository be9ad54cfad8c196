package routers

import (
	"fmt"
	"roombook-service/internal/app/config"
	"roombook-service/internal/app/delivery/http/controllers"
	"roombook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	authController *controllers.AuthController,
	bookingController *controllers.BookingController,
	scheduleController *controllers.ScheduleController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.App.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.GlobalRateLimiter())
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, middlewares, authController)
			})

			r.Route("/bookings", func(r chi.Router) {
				attachBookingRoutes(r, middlewares, bookingController)
			})

			r.Route("/schedule", func(r chi.Router) {
				attachScheduleRoutes(r, middlewares, scheduleController)
			})
		})
	})
}
