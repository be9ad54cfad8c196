package middlewares

import (
	"context"
	"net/http"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/exceptions"
	"roombook-service/internal/pkg/utils"
	"strings"
)

// Authenticate resolves the bearer token to a live session and stores it
// under CONTEXT_SESSION_DATA_KEY. Without one the request stops here.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, constvars.HeaderBearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.HeaderBearerPrefix))
		session, err := m.AuthUsecase.Authenticate(r.Context(), token)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}
		if session == nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrSessionNotFound(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
