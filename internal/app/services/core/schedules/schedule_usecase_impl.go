package schedules

import (
	"context"
	"roombook-service/internal/app/config"
	"roombook-service/internal/app/contracts"
	"roombook-service/internal/app/models"
	"roombook-service/internal/app/services/core/schedule"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/dto/requests"
	"roombook-service/internal/pkg/dto/responses"
	"roombook-service/internal/pkg/exceptions"
	"roombook-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type scheduleUsecase struct {
	BookingStore     contracts.BookingStore
	BookingUsecase   contracts.BookingUsecase
	SessionService   contracts.SessionService
	ScheduleExporter contracts.ScheduleExporter
	InternalConfig   *config.InternalConfig
	Clock            utils.Clock
	Log              *zap.Logger
}

var (
	scheduleUsecaseInstance contracts.ScheduleUsecase
	onceScheduleUsecase     sync.Once
)

func NewScheduleUsecase(
	bookingStore contracts.BookingStore,
	bookingUsecase contracts.BookingUsecase,
	sessionService contracts.SessionService,
	scheduleExporter contracts.ScheduleExporter,
	internalConfig *config.InternalConfig,
	clock utils.Clock,
	logger *zap.Logger,
) contracts.ScheduleUsecase {
	onceScheduleUsecase.Do(func() {
		scheduleUsecaseInstance = newScheduleUsecase(bookingStore, bookingUsecase, sessionService, scheduleExporter, internalConfig, clock, logger)
	})
	return scheduleUsecaseInstance
}

func newScheduleUsecase(
	bookingStore contracts.BookingStore,
	bookingUsecase contracts.BookingUsecase,
	sessionService contracts.SessionService,
	scheduleExporter contracts.ScheduleExporter,
	internalConfig *config.InternalConfig,
	clock utils.Clock,
	logger *zap.Logger,
) *scheduleUsecase {
	return &scheduleUsecase{
		BookingStore:     bookingStore,
		BookingUsecase:   bookingUsecase,
		SessionService:   sessionService,
		ScheduleExporter: scheduleExporter,
		InternalConfig:   internalConfig,
		Clock:            clock,
		Log:              logger,
	}
}

func (uc *scheduleUsecase) GetSlots(ctx context.Context) []string {
	return schedule.SlotLabels()
}

func (uc *scheduleUsecase) GetWeek(ctx context.Context) []schedule.Day {
	return schedule.WeekStrip(uc.Clock.Now())
}

func (uc *scheduleUsecase) GetSchedule(ctx context.Context, session *models.Session, date string) (*schedule.Schedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	var userID string
	if session != nil {
		userID = session.UserID
	}
	date = uc.resolveDate(session, date)
	rendered := schedule.Render(date, uc.BookingStore.Snapshot(), userID)

	uc.Log.Info("scheduleUsecase.GetSchedule succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSelectedDateKey, date),
		zap.Int(constvars.LoggingBookingCountKey, countPlaced(rendered)+len(rendered.Unplaced)),
	)
	return &rendered, nil
}

// SelectDate moves the session to another day. Any write still in flight
// for the previous day finishes, but its result no longer lands in the flows.
func (uc *scheduleUsecase) SelectDate(ctx context.Context, session *models.Session, request *requests.SelectDate) (*responses.SelectDate, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.SelectDate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSelectedDateKey, request.Date),
	)

	updated := *session
	updated.SelectedDate = request.Date
	err := uc.SessionService.UpdateSession(ctx, &updated)
	if err != nil {
		uc.Log.Error("scheduleUsecase.SelectDate error calling SessionService.UpdateSession",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	uc.BookingUsecase.ResetFlows(ctx, session.SessionID)

	return &responses.SelectDate{SelectedDate: request.Date}, nil
}

func (uc *scheduleUsecase) GetLiveStatus(ctx context.Context) models.LiveStatus {
	return schedule.LiveStatus(uc.BookingStore.Snapshot(), uc.Clock.Now())
}

func (uc *scheduleUsecase) ExportSchedule(ctx context.Context, session *models.Session, date string) (*responses.ScheduleExport, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.ExportSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSelectedDateKey, date),
	)

	rendered, err := uc.GetSchedule(ctx, session, date)
	if err != nil {
		return nil, err
	}

	content, err := json.Marshal(rendered)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	now := uc.Clock.Now()
	objectName, err := uc.ScheduleExporter.UploadScheduleExport(ctx, utils.GenerateScheduleExportName(rendered.Date, now), content)
	if err != nil {
		uc.Log.Error("scheduleUsecase.ExportSchedule error uploading export",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	url, err := uc.ScheduleExporter.GetObjectUrlWithExpiryTime(ctx, objectName)
	if err != nil {
		uc.Log.Error("scheduleUsecase.ExportSchedule error presigning export",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return nil, err
	}

	expiry := time.Duration(uc.InternalConfig.Minio.ScheduleExportPreSignedUrlExpiryInMinute) * time.Minute
	uc.Log.Info("scheduleUsecase.ExportSchedule succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
	return &responses.ScheduleExport{
		ObjectName: objectName,
		URL:        url,
		ExpiresAt:  now.Add(expiry).Format(time.RFC3339),
	}, nil
}

func (uc *scheduleUsecase) resolveDate(session *models.Session, date string) string {
	if date != "" {
		return date
	}
	if session != nil && session.SelectedDate != "" {
		return session.SelectedDate
	}
	return schedule.Today(uc.Clock.Now())
}

func countPlaced(rendered schedule.Schedule) int {
	count := 0
	for _, row := range rendered.Rows {
		if row.Booking != nil {
			count++
		}
	}
	return count
}
