package auth

import (
	"context"
	"roombook-service/internal/app/config"
	"roombook-service/internal/app/contracts"
	"roombook-service/internal/app/models"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/dto/requests"
	"roombook-service/internal/pkg/exceptions"
	"roombook-service/internal/pkg/utils"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// localIdentityProvider keeps bcrypt hashes in the user repository and signs
// its own session tokens with the configured JWT secret.
type localIdentityProvider struct {
	UserRepository contracts.UserRepository
	InternalConfig *config.InternalConfig
	Clock          utils.Clock
	Log            *zap.Logger
}

func NewLocalIdentityProvider(
	userRepository contracts.UserRepository,
	internalConfig *config.InternalConfig,
	clock utils.Clock,
	logger *zap.Logger,
) contracts.IdentityProvider {
	return &localIdentityProvider{
		UserRepository: userRepository,
		InternalConfig: internalConfig,
		Clock:          clock,
		Log:            logger,
	}
}

func (p *localIdentityProvider) SignUp(ctx context.Context, request *requests.RegisterUser) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	existingUser, err := p.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		p.Log.Error("localIdentityProvider.SignUp error hashing password",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrHashPassword(err)
	}

	user := &models.User{
		Email:        request.Email,
		DisplayName:  request.DisplayName,
		PasswordHash: hashedPassword,
	}
	user.SetCreatedAt(p.Clock.Now())

	user.ID, err = p.UserRepository.Insert(ctx, user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (p *localIdentityProvider) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	user, err := p.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}

func (p *localIdentityProvider) StartSession(ctx context.Context, user *models.User, expiresAt time.Time) (string, string, error) {
	sessionID := uuid.NewString()
	token, err := utils.GenerateSessionJWT(sessionID, p.InternalConfig.JWT.Secret, expiresAt)
	if err != nil {
		return "", "", exceptions.ErrTokenGenerate(err)
	}
	return sessionID, token, nil
}

func (p *localIdentityProvider) ResolveToken(ctx context.Context, token string) (string, error) {
	sessionID, err := utils.ParseSessionJWT(token, p.InternalConfig.JWT.Secret, p.Clock)
	if err != nil {
		return "", exceptions.ErrTokenInvalidOrExpired(err)
	}
	return sessionID, nil
}

// EndSession has nothing to revoke; the token dies with the stored session.
func (p *localIdentityProvider) EndSession(ctx context.Context, sessionID string) error {
	return nil
}
