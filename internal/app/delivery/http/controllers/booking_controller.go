package controllers

import (
	"context"
	"net/http"
	"roombook-service/internal/app/contracts"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/dto/requests"
	"roombook-service/internal/pkg/exceptions"
	"roombook-service/internal/pkg/utils"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type BookingController struct {
	Log            *zap.Logger
	BookingUsecase contracts.BookingUsecase
}

func NewBookingController(logger *zap.Logger, bookingUsecase contracts.BookingUsecase) *BookingController {
	return &BookingController{
		Log:            logger,
		BookingUsecase: bookingUsecase,
	}
}

func (ctrl *BookingController) ListBookings(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(r)
	if !ok {
		ctrl.Log.Error("BookingController.ListBookings requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	query := requests.DateQuery{Date: strings.TrimSpace(r.URL.Query().Get(constvars.URLQueryDate))}
	err := utils.ValidateStruct(query)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLQueryDate))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.BookingUsecase.ListBookings(ctx, query.Date)
	if err != nil {
		ctrl.Log.Error("BookingController.ListBookings error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BookingListSuccessMessage, result)
}

func (ctrl *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(r)
	if !ok {
		ctrl.Log.Error("BookingController.CreateBooking requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	session, ok := sessionFromContext(r)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	// Bind body to request
	request := new(requests.CreateBooking)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeCreateBookingRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.BookingUsecase.CreateBooking(ctx, session, request)
	if err != nil {
		ctrl.Log.Error("BookingController.CreateBooking error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.BookingCreatedSuccessMessage, result)
}

func (ctrl *BookingController) GetBookingTypes(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BookingTypesSuccessMessage, ctrl.BookingUsecase.GetBookingTypes(r.Context()))
}

func (ctrl *BookingController) GetFlows(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	result, err := ctrl.BookingUsecase.GetFlows(r.Context(), session)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	message := constvars.BookingFlowsSuccessMessage
	if result.Submission.State == constvars.FlowStateSubmitting {
		message = constvars.BookingSubmissionPendingMessage
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, message, result)
}

func (ctrl *BookingController) RequestDeletion(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(r)
	if !ok {
		ctrl.Log.Error("BookingController.RequestDeletion requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	session, ok := sessionFromContext(r)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	bookingID := strings.TrimSpace(chi.URLParam(r, constvars.URLParamBookingID))
	if bookingID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamBookingID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.BookingUsecase.RequestDeletion(ctx, session, bookingID)
	if err != nil {
		ctrl.Log.Info("BookingController.RequestDeletion refused",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBookingIDKey, bookingID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BookingDeletionRequestedMessage, result)
}

func (ctrl *BookingController) ConfirmDeletion(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(r)
	if !ok {
		ctrl.Log.Error("BookingController.ConfirmDeletion requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	session, ok := sessionFromContext(r)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	bookingID := strings.TrimSpace(chi.URLParam(r, constvars.URLParamBookingID))
	if bookingID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamBookingID))
		return
	}

	request := new(requests.ConfirmDeletion)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.BookingUsecase.ConfirmDeletion(ctx, session, bookingID, request)
	if err != nil {
		ctrl.Log.Error("BookingController.ConfirmDeletion error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBookingIDKey, bookingID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	message := constvars.BookingDeletionDeclinedMessage
	if result.Deleted {
		message = constvars.BookingCancelledSuccessMessage
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, message, result)
}
