package contracts

import (
	"context"
	"roombook-service/internal/app/models"
	"roombook-service/internal/pkg/dto/requests"
	"roombook-service/internal/pkg/dto/responses"
	"time"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (string, error)
}

type SessionService interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	UpdateSession(ctx context.Context, session *models.Session) error
	DeleteSession(ctx context.Context, sessionID string) error
}

// IdentityProvider owns credentials and the bearer tokens handed to clients.
type IdentityProvider interface {
	// SignUp fails with exceptions.ErrEmailAlreadyExist when the email is taken.
	SignUp(ctx context.Context, request *requests.RegisterUser) (*models.User, error)
	// SignIn returns nil without error when the credentials do not match.
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	StartSession(ctx context.Context, user *models.User, expiresAt time.Time) (sessionID string, token string, err error)
	// ResolveToken fails with exceptions.ErrTokenInvalidOrExpired for a token it did not issue or that expired.
	ResolveToken(ctx context.Context, token string) (string, error)
	EndSession(ctx context.Context, sessionID string) error
}

type AuthUsecase interface {
	Register(ctx context.Context, request *requests.RegisterUser) (*responses.User, error)
	SignIn(ctx context.Context, request *requests.SignIn) (*responses.SignIn, error)
	SignOut(ctx context.Context, session *models.Session) error
	// CurrentUser returns nil without error when the session is gone.
	CurrentUser(ctx context.Context, sessionID string) (*models.Session, error)
	// Authenticate resolves a bearer token to its live session, nil when the session is gone.
	Authenticate(ctx context.Context, token string) (*models.Session, error)
}
