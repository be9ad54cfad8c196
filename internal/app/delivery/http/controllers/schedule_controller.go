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

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ScheduleController struct {
	Log             *zap.Logger
	ScheduleUsecase contracts.ScheduleUsecase
}

func NewScheduleController(logger *zap.Logger, scheduleUsecase contracts.ScheduleUsecase) *ScheduleController {
	return &ScheduleController{
		Log:             logger,
		ScheduleUsecase: scheduleUsecase,
	}
}

func (ctrl *ScheduleController) GetSlots(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ScheduleSlotsSuccessMessage, ctrl.ScheduleUsecase.GetSlots(r.Context()))
}

func (ctrl *ScheduleController) GetWeek(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ScheduleWeekSuccessMessage, ctrl.ScheduleUsecase.GetWeek(r.Context()))
}

func (ctrl *ScheduleController) GetLiveStatus(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ScheduleLiveStatusSuccessMessage, ctrl.ScheduleUsecase.GetLiveStatus(r.Context()))
}

func (ctrl *ScheduleController) GetSchedule(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(r)
	if !ok {
		ctrl.Log.Error("ScheduleController.GetSchedule requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	session, ok := sessionFromContext(r)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
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

	result, err := ctrl.ScheduleUsecase.GetSchedule(ctx, session, query.Date)
	if err != nil {
		ctrl.Log.Error("ScheduleController.GetSchedule error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ScheduleGetSuccessMessage, result)
}

func (ctrl *ScheduleController) SelectDate(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(r)
	if !ok {
		ctrl.Log.Error("ScheduleController.SelectDate requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	session, ok := sessionFromContext(r)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	request := new(requests.SelectDate)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.Date = strings.TrimSpace(request.Date)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.ScheduleUsecase.SelectDate(ctx, session, request)
	if err != nil {
		ctrl.Log.Error("ScheduleController.SelectDate error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ScheduleSelectDateSuccessMessage, result)
}

func (ctrl *ScheduleController) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFromContext(r)
	if !ok {
		ctrl.Log.Error("ScheduleController.ExportSchedule requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	session, ok := sessionFromContext(r)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
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

	result, err := ctrl.ScheduleUsecase.ExportSchedule(ctx, session, query.Date)
	if err != nil {
		ctrl.Log.Error("ScheduleController.ExportSchedule error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ScheduleExportSuccessMessage, result)
}
