package middlewares

import (
	"net"
	"net/http"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/exceptions"
	"roombook-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter allows requests attempts per period for each IP. An IP that
// goes over is refused for blockTime, even once its bucket refills.
type RateLimiter struct {
	log       *zap.Logger
	limiters  map[string]*rate.Limiter
	blocked   map[string]time.Time
	mu        sync.Mutex
	requests  int
	per       time.Duration
	blockTime time.Duration
	now       func() time.Time
}

func NewRateLimiter(logger *zap.Logger, requests int, per, blockTime time.Duration) *RateLimiter {
	if requests < 1 {
		requests = 1
	}
	return &RateLimiter{
		log:       logger,
		limiters:  make(map[string]*rate.Limiter),
		blocked:   make(map[string]time.Time),
		requests:  requests,
		per:       per,
		blockTime: blockTime,
		now:       time.Now,
	}
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !rl.allow(ip) {
			requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
			rl.log.Warn("RateLimiter.Limit blocked request",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRemoteAddrKey, ip),
			)
			utils.BuildErrorResponse(rl.log, w, exceptions.ErrTooManyRequests(nil))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if blockedUntil, found := rl.blocked[ip]; found {
		if now.Before(blockedUntil) {
			return false
		}
		delete(rl.blocked, ip)
		delete(rl.limiters, ip)
	}

	limiter, exists := rl.limiters[ip]
	if !exists {
		limiter = rate.NewLimiter(rate.Every(rl.per/time.Duration(rl.requests)), rl.requests)
		rl.limiters[ip] = limiter
	}

	if !limiter.AllowN(now, 1) {
		rl.blocked[ip] = now.Add(rl.blockTime)
		return false
	}
	return true
}
