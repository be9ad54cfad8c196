package routers

import (
	"roombook-service/internal/app/delivery/http/controllers"
	"roombook-service/internal/app/delivery/http/middlewares"
	"roombook-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachBookingRoutes(router chi.Router, middlewares *middlewares.Middlewares, bookingController *controllers.BookingController) {
	router.Use(middlewares.Authenticate)

	router.Get("/", bookingController.ListBookings)
	router.Post("/", bookingController.CreateBooking)
	router.Get("/types", bookingController.GetBookingTypes)
	router.Get("/flows", bookingController.GetFlows)
	router.Post("/{"+constvars.URLParamBookingID+"}/deletion", bookingController.RequestDeletion)
	router.Post("/{"+constvars.URLParamBookingID+"}/deletion/confirm", bookingController.ConfirmDeletion)
}
