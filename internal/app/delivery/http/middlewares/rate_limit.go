package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// GlobalRateLimiter caps every client IP at MaxRequests per second.
func (m *Middlewares) GlobalRateLimiter() func(next http.Handler) http.Handler {
	return httprate.LimitByIP(m.InternalConfig.App.MaxRequests, time.Second)
}

// SignInRateLimiter builds the brute force guard of the sign-in route.
func (m *Middlewares) SignInRateLimiter() *RateLimiter {
	return NewRateLimiter(
		m.Log,
		m.InternalConfig.App.LoginMaxAttemptsPerMinute,
		time.Minute,
		time.Duration(m.InternalConfig.App.LoginBlockTimeInMinutes)*time.Minute,
	)
}
