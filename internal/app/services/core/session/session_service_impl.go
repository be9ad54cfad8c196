package session

import (
	"context"
	"errors"
	"roombook-service/internal/app/contracts"
	"roombook-service/internal/app/models"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/exceptions"
	"roombook-service/internal/pkg/utils"
	"time"
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	Clock           utils.Clock
}

func NewSessionService(redisRepository contracts.RedisRepository, clock utils.Clock) contracts.SessionService {
	return &sessionService{
		RedisRepository: redisRepository,
		Clock:           clock,
	}
}

func sessionKey(sessionID string) string {
	return constvars.RedisKeySessionPrefix + sessionID
}

func (svc *sessionService) CreateSession(ctx context.Context, session *models.Session) error {
	return svc.store(ctx, session)
}

// GetSession returns nil without error when the session expired or never existed.
func (svc *sessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session := new(models.Session)
	found, err := svc.RedisRepository.GetInto(ctx, sessionKey(sessionID), session)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return session, nil
}

func (svc *sessionService) UpdateSession(ctx context.Context, session *models.Session) error {
	return svc.store(ctx, session)
}

func (svc *sessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return svc.RedisRepository.Delete(ctx, sessionKey(sessionID))
}

func (svc *sessionService) store(ctx context.Context, session *models.Session) error {
	ttl := session.ExpiresAt.Sub(svc.Clock.Now())
	if ttl <= 0 {
		return exceptions.ErrSessionNotFound(errors.New("session already expired"))
	}
	// Whole seconds, rounded up so a sub-second remainder never becomes 0 (no expiry).
	ttl = (ttl + time.Second - 1).Truncate(time.Second)
	return svc.RedisRepository.Set(ctx, sessionKey(session.SessionID), session, ttl)
}
