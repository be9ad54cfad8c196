package auth

import (
	"context"
	"roombook-service/internal/app/config"
	"roombook-service/internal/app/contracts"
	"roombook-service/internal/app/models"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/dto/requests"
	"roombook-service/internal/pkg/dto/responses"
	"roombook-service/internal/pkg/exceptions"
	"roombook-service/internal/pkg/utils"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type authUsecase struct {
	IdentityProvider contracts.IdentityProvider
	SessionService   contracts.SessionService
	BookingUsecase   contracts.BookingUsecase
	InternalConfig   *config.InternalConfig
	Clock            utils.Clock
	Log              *zap.Logger
}

var (
	authUsecaseInstance contracts.AuthUsecase
	onceAuthUsecase     sync.Once
)

func NewAuthUsecase(
	identityProvider contracts.IdentityProvider,
	sessionService contracts.SessionService,
	bookingUsecase contracts.BookingUsecase,
	internalConfig *config.InternalConfig,
	clock utils.Clock,
	logger *zap.Logger,
) contracts.AuthUsecase {
	onceAuthUsecase.Do(func() {
		authUsecaseInstance = newAuthUsecase(identityProvider, sessionService, bookingUsecase, internalConfig, clock, logger)
	})
	return authUsecaseInstance
}

func newAuthUsecase(
	identityProvider contracts.IdentityProvider,
	sessionService contracts.SessionService,
	bookingUsecase contracts.BookingUsecase,
	internalConfig *config.InternalConfig,
	clock utils.Clock,
	logger *zap.Logger,
) *authUsecase {
	return &authUsecase{
		IdentityProvider: identityProvider,
		SessionService:   sessionService,
		BookingUsecase:   bookingUsecase,
		InternalConfig:   internalConfig,
		Clock:            clock,
		Log:              logger,
	}
}

func (uc *authUsecase) Register(ctx context.Context, request *requests.RegisterUser) (*responses.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Register called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, request.Email),
	)

	user, err := uc.IdentityProvider.SignUp(ctx, request)
	if err != nil {
		uc.Log.Error("authUsecase.Register error calling IdentityProvider.SignUp",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("authUsecase.Register succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)
	return &responses.User{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}, nil
}

func (uc *authUsecase) SignIn(ctx context.Context, request *requests.SignIn) (*responses.SignIn, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.SignIn called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, request.Email),
	)

	user, err := uc.IdentityProvider.SignIn(ctx, request.Email, request.Password)
	if err != nil {
		uc.Log.Error("authUsecase.SignIn error calling IdentityProvider.SignIn",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	// Unknown email and wrong password answer the same way.
	if user == nil {
		uc.Log.Info("authUsecase.SignIn rejected credentials",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, exceptions.ErrInvalidEmailOrPassword(nil)
	}

	now := uc.Clock.Now()
	expiresAt := now.Add(time.Duration(uc.InternalConfig.App.LoginSessionExpiredTimeInHours) * time.Hour)
	sessionID, token, err := uc.IdentityProvider.StartSession(ctx, user, expiresAt)
	if err != nil {
		uc.Log.Error("authUsecase.SignIn error calling IdentityProvider.StartSession",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	session := &models.Session{
		SessionID:    sessionID,
		UserID:       user.ID,
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		SelectedDate: now.Format(constvars.DateLayout),
		ExpiresAt:    expiresAt,
	}
	err = uc.SessionService.CreateSession(ctx, session)
	if err != nil {
		uc.Log.Error("authUsecase.SignIn error calling SessionService.CreateSession",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("authUsecase.SignIn succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
		zap.String(constvars.LoggingSessionIDKey, session.SessionID),
	)
	return &responses.SignIn{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		User: responses.User{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
		},
	}, nil
}

func (uc *authUsecase) SignOut(ctx context.Context, session *models.Session) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.SignOut called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, session.SessionID),
	)

	// In-flight writes keep running; their results are just no longer recorded.
	uc.BookingUsecase.ForgetSession(ctx, session.SessionID)

	err := uc.SessionService.DeleteSession(ctx, session.SessionID)
	if err != nil {
		uc.Log.Error("authUsecase.SignOut error calling SessionService.DeleteSession",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	// The app session is gone already; a token the provider failed to revoke resolves to nothing.
	err = uc.IdentityProvider.EndSession(ctx, session.SessionID)
	if err != nil {
		uc.Log.Warn("authUsecase.SignOut error calling IdentityProvider.EndSession",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	uc.Log.Info("authUsecase.SignOut succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}

func (uc *authUsecase) CurrentUser(ctx context.Context, sessionID string) (*models.Session, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if strings.TrimSpace(sessionID) == "" {
		return nil, nil
	}

	session, err := uc.SessionService.GetSession(ctx, sessionID)
	if err != nil {
		uc.Log.Error("authUsecase.CurrentUser error calling SessionService.GetSession",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if session == nil || !session.ExpiresAt.After(uc.Clock.Now()) {
		return nil, nil
	}
	return session, nil
}

func (uc *authUsecase) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	sessionID, err := uc.IdentityProvider.ResolveToken(ctx, token)
	if err != nil {
		uc.Log.Info("authUsecase.Authenticate rejected token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return uc.CurrentUser(ctx, sessionID)
}
