package controllers

import (
	"context"
	"net/http"
	"roombook-service/internal/app/contracts"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/dto/requests"
	"roombook-service/internal/pkg/dto/responses"
	"roombook-service/internal/pkg/exceptions"
	"roombook-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AuthController struct {
	Log         *zap.Logger
	AuthUsecase contracts.AuthUsecase
}

func NewAuthController(logger *zap.Logger, authUsecase contracts.AuthUsecase) *AuthController {
	return &AuthController{
		Log:         logger,
		AuthUsecase: authUsecase,
	}
}

func (ctrl *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(r)
	if !ok {
		ctrl.Log.Error("AuthController.Register requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	// Bind body to request
	request := new(requests.RegisterUser)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeRegisterUserRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.AuthUsecase.Register(ctx, request)
	if err != nil {
		ctrl.Log.Error("AuthController.Register error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.RegisterSuccessMessage, result)
}

func (ctrl *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(r)
	if !ok {
		ctrl.Log.Error("AuthController.SignIn requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := new(requests.SignIn)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeSignInRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.AuthUsecase.SignIn(ctx, request)
	if err != nil {
		ctrl.Log.Info("AuthController.SignIn rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SignInSuccessMessage, result)
}

func (ctrl *AuthController) SignOut(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(r)
	if !ok {
		ctrl.Log.Error("AuthController.SignOut requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	session, ok := sessionFromContext(r)
	if !ok {
		ctrl.Log.Error("AuthController.SignOut session not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	err := ctrl.AuthUsecase.SignOut(ctx, session)
	if err != nil {
		ctrl.Log.Error("AuthController.SignOut error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SignOutSuccessMessage, nil)
}

// Me answers with the signed-in user; Authenticate already refused anonymous calls.
func (ctrl *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CurrentUserSuccessMessage, responses.CurrentUser{
		User: responses.User{
			ID:          session.UserID,
			Email:       session.Email,
			DisplayName: session.DisplayName,
		},
		SelectedDate: session.SelectedDate,
	})
}
