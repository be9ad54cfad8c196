package routers

import (
	"roombook-service/internal/app/delivery/http/controllers"
	"roombook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachScheduleRoutes(router chi.Router, middlewares *middlewares.Middlewares, scheduleController *controllers.ScheduleController) {
	router.Use(middlewares.Authenticate)

	router.Get("/", scheduleController.GetSchedule)
	router.Get("/slots", scheduleController.GetSlots)
	router.Get("/week", scheduleController.GetWeek)
	router.Get("/live", scheduleController.GetLiveStatus)
	router.Put("/selected-date", scheduleController.SelectDate)
	router.Post("/export", scheduleController.ExportSchedule)
}
