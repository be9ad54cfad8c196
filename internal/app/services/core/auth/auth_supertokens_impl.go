package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"roombook-service/internal/app/config"
	"roombook-service/internal/app/contracts"
	"roombook-service/internal/app/models"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/dto/requests"
	"roombook-service/internal/pkg/exceptions"
	"roombook-service/internal/pkg/utils"
	"time"

	"github.com/supertokens/supertokens-golang/recipe/emailpassword"
	"github.com/supertokens/supertokens-golang/recipe/session"
	"github.com/supertokens/supertokens-golang/recipe/session/sessmodels"
	"github.com/supertokens/supertokens-golang/supertokens"
	"go.uber.org/zap"
)

var errSupertokensNoSession = errors.New("supertokens returned no session for the access token")

// SupertokensClient is the part of the SuperTokens SDK the identity provider calls.
type SupertokensClient interface {
	SignUp(tenantID, email, password string) (userID string, emailTaken bool, err error)
	SignIn(tenantID, email, password string) (userID string, ok bool, err error)
	CreateSession(tenantID, userID string) (handle string, accessToken string, err error)
	VerifySession(accessToken string) (handle string, err error)
	RevokeSession(handle string) error
}

// InitializeSupertokens registers the emailpassword and session recipes
// against the configured SuperTokens core.
func InitializeSupertokens(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig, logger *zap.Logger) (SupertokensClient, error) {
	apiBasePath := fmt.Sprintf("/%s/%s%s", internalConfig.App.EndpointPrefix, internalConfig.App.Version, driverConfig.Supertoken.ApiBasePath)
	websiteBasePath := driverConfig.Supertoken.WebsiteBasePath

	err := supertokens.Init(supertokens.TypeInput{
		OnSuperTokensAPIError: func(err error, req *http.Request, res http.ResponseWriter) {
			logger.Error("supertokens API error", zap.Error(err))
		},
		Supertokens: &supertokens.ConnectionInfo{
			ConnectionURI: driverConfig.Supertoken.ConnectionURI,
			APIKey:        driverConfig.Supertoken.APIKey,
		},
		AppInfo: supertokens.AppInfo{
			AppName:         driverConfig.Supertoken.AppName,
			APIDomain:       driverConfig.Supertoken.ApiDomain,
			WebsiteDomain:   driverConfig.Supertoken.WebsiteDomain,
			APIBasePath:     &apiBasePath,
			WebsiteBasePath: &websiteBasePath,
		},
		RecipeList: []supertokens.Recipe{
			emailpassword.Init(nil),
			session.Init(nil),
		},
	})
	if err != nil {
		return nil, err
	}
	log.Println("Successfully initialized supertokens SDK")
	return supertokensSDK{}, nil
}

type supertokensSDK struct{}

func (supertokensSDK) SignUp(tenantID, email, password string) (string, bool, error) {
	response, err := emailpassword.SignUp(tenantID, email, password)
	if err != nil {
		return "", false, err
	}
	if response.EmailAlreadyExistsError != nil {
		return "", true, nil
	}
	return response.OK.User.ID, false, nil
}

func (supertokensSDK) SignIn(tenantID, email, password string) (string, bool, error) {
	response, err := emailpassword.SignIn(tenantID, email, password)
	if err != nil {
		return "", false, err
	}
	if response.OK == nil {
		return "", false, nil
	}
	return response.OK.User.ID, true, nil
}

func (supertokensSDK) CreateSession(tenantID, userID string) (string, string, error) {
	// Tokens travel in the Authorization header, never in cookies.
	disableAntiCSRF := true
	sessionContainer, err := session.CreateNewSessionWithoutRequestResponse(tenantID, userID, map[string]interface{}{}, map[string]interface{}{}, &disableAntiCSRF)
	if err != nil {
		return "", "", err
	}
	return sessionContainer.GetHandle(), sessionContainer.GetAccessToken(), nil
}

func (supertokensSDK) VerifySession(accessToken string) (string, error) {
	antiCSRFCheck := false
	sessionContainer, err := session.GetSessionWithoutRequestResponse(accessToken, nil, &sessmodels.VerifySessionOptions{
		AntiCsrfCheck: &antiCSRFCheck,
	})
	if err != nil {
		return "", err
	}
	if sessionContainer == nil {
		return "", errSupertokensNoSession
	}
	return sessionContainer.GetHandle(), nil
}

func (supertokensSDK) RevokeSession(handle string) error {
	_, err := session.RevokeSession(handle)
	return err
}

// supertokensIdentityProvider keeps credentials in the SuperTokens core and
// the display name profile in the user repository. The session handle is the
// app session id.
type supertokensIdentityProvider struct {
	Client         SupertokensClient
	UserRepository contracts.UserRepository
	InternalConfig *config.InternalConfig
	Clock          utils.Clock
	Log            *zap.Logger
}

func NewSupertokensIdentityProvider(
	client SupertokensClient,
	userRepository contracts.UserRepository,
	internalConfig *config.InternalConfig,
	clock utils.Clock,
	logger *zap.Logger,
) contracts.IdentityProvider {
	return &supertokensIdentityProvider{
		Client:         client,
		UserRepository: userRepository,
		InternalConfig: internalConfig,
		Clock:          clock,
		Log:            logger,
	}
}

func (p *supertokensIdentityProvider) SignUp(ctx context.Context, request *requests.RegisterUser) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	supertokensUserID, emailTaken, err := p.Client.SignUp(p.InternalConfig.Supertoken.TenantID, request.Email, request.Password)
	if err != nil {
		p.Log.Error("supertokensIdentityProvider.SignUp error calling Client.SignUp",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSupertokens(err)
	}
	if emailTaken {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	user := &models.User{
		Email:       request.Email,
		DisplayName: request.DisplayName,
	}
	user.SetCreatedAt(p.Clock.Now())

	user.ID, err = p.UserRepository.Insert(ctx, user)
	if err != nil {
		p.Log.Error("supertokensIdentityProvider.SignUp error storing profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSupertokensUserIDKey, supertokensUserID),
			zap.Error(err),
		)
		return nil, err
	}
	return user, nil
}

func (p *supertokensIdentityProvider) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	supertokensUserID, ok, err := p.Client.SignIn(p.InternalConfig.Supertoken.TenantID, email, password)
	if err != nil {
		return nil, exceptions.ErrSupertokens(err)
	}
	if !ok {
		return nil, nil
	}

	user, err := p.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	// Accounts created straight in the core have no profile yet.
	if user == nil {
		return &models.User{ID: supertokensUserID, Email: email}, nil
	}
	return user, nil
}

// StartSession leaves the access token lifetime to the core's access_token_validity;
// the stored app session still ends at expiresAt.
func (p *supertokensIdentityProvider) StartSession(ctx context.Context, user *models.User, expiresAt time.Time) (string, string, error) {
	handle, accessToken, err := p.Client.CreateSession(p.InternalConfig.Supertoken.TenantID, user.ID)
	if err != nil {
		return "", "", exceptions.ErrSupertokens(err)
	}
	return handle, accessToken, nil
}

func (p *supertokensIdentityProvider) ResolveToken(ctx context.Context, token string) (string, error) {
	handle, err := p.Client.VerifySession(token)
	if err != nil {
		return "", exceptions.ErrTokenInvalidOrExpired(err)
	}
	return handle, nil
}

func (p *supertokensIdentityProvider) EndSession(ctx context.Context, sessionID string) error {
	err := p.Client.RevokeSession(sessionID)
	if err != nil {
		return exceptions.ErrSupertokens(err)
	}
	return nil
}
