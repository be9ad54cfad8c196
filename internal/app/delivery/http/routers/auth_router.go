package routers

import (
	"roombook-service/internal/app/delivery/http/controllers"
	"roombook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	signInLimiter := middlewares.SignInRateLimiter()

	router.Post("/register", authController.Register)
	router.With(signInLimiter.Limit).Post("/login", authController.SignIn)
	router.With(middlewares.Authenticate).Post("/logout", authController.SignOut)
	router.With(middlewares.Authenticate).Get("/me", authController.Me)
}
