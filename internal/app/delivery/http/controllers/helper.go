package controllers

import (
	"context"
	"errors"
	"net/http"
	"roombook-service/internal/app/models"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/exceptions"
	"roombook-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

func requestIDFromContext(r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID, ok && requestID != ""
}

// sessionFromContext reads the session stored by the Authenticate middleware.
func sessionFromContext(r *http.Request) (*models.Session, bool) {
	session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	return session, ok && session != nil
}

func buildUsecaseErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
