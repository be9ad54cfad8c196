package bookings

import (
	"context"
	"errors"
	"fmt"
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

	"go.uber.org/zap"
)

type bookingUsecase struct {
	BookingStore   contracts.BookingStore
	LockerService  contracts.LockerService
	EventPublisher contracts.BookingEventPublisher
	InternalConfig *config.InternalConfig
	Clock          utils.Clock
	Log            *zap.Logger

	mu    sync.Mutex
	flows map[string]*sessionFlows
}

var (
	bookingUsecaseInstance contracts.BookingUsecase
	onceBookingUsecase     sync.Once
)

func NewBookingUsecase(
	bookingStore contracts.BookingStore,
	lockerService contracts.LockerService,
	eventPublisher contracts.BookingEventPublisher,
	internalConfig *config.InternalConfig,
	clock utils.Clock,
	logger *zap.Logger,
) contracts.BookingUsecase {
	onceBookingUsecase.Do(func() {
		bookingUsecaseInstance = newBookingUsecase(bookingStore, lockerService, eventPublisher, internalConfig, clock, logger)
	})
	return bookingUsecaseInstance
}

func newBookingUsecase(
	bookingStore contracts.BookingStore,
	lockerService contracts.LockerService,
	eventPublisher contracts.BookingEventPublisher,
	internalConfig *config.InternalConfig,
	clock utils.Clock,
	logger *zap.Logger,
) *bookingUsecase {
	return &bookingUsecase{
		BookingStore:   bookingStore,
		LockerService:  lockerService,
		EventPublisher: eventPublisher,
		InternalConfig: internalConfig,
		Clock:          clock,
		Log:            logger,
		flows:          make(map[string]*sessionFlows),
	}
}

func (uc *bookingUsecase) CreateBooking(ctx context.Context, session *models.Session, request *requests.CreateBooking) (*responses.CreateBooking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.CreateBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.String(constvars.LoggingBookingDateKey, request.Date),
		zap.String(constvars.LoggingBookingStartKey, request.StartTime),
		zap.String(constvars.LoggingBookingEndKey, request.EndTime),
	)

	if request.EndTime <= request.StartTime {
		return nil, exceptions.ErrBookingInvalidInterval(schedule.ErrInvalidInterval)
	}
	if request.Date < schedule.Today(uc.Clock.Now()) {
		return nil, exceptions.ErrBookingDateInPast(nil)
	}

	epoch, err := uc.beginSubmission(session, request)
	if err != nil {
		uc.Log.Info("bookingUsecase.CreateBooking rejected, submission already running",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, err
	}

	booking, err := uc.reserve(ctx, session, request)
	if err != nil {
		uc.Log.Error("bookingUsecase.CreateBooking error reserving slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.settleSubmission(session.SessionID, epoch, func(f *sessionFlows) {
			f.fail(clientMessageOf(err))
		})
		return nil, err
	}

	uc.publishBookingEvent(ctx, constvars.EventBookingCreated, *booking, session.UserID)

	flow := uc.settleSubmission(session.SessionID, epoch, func(f *sessionFlows) {
		f.succeed(booking.ID)
	})

	uc.Log.Info("bookingUsecase.CreateBooking succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, booking.ID),
		zap.String(constvars.LoggingFlowStateKey, flow.State),
	)
	return &responses.CreateBooking{
		ID:      booking.ID,
		Booking: *booking,
		Flow:    flow,
	}, nil
}

// reserve runs the conflict check against the snapshot current at this moment
// and writes the booking while holding the per-date lock.
func (uc *bookingUsecase) reserve(ctx context.Context, session *models.Session, request *requests.CreateBooking) (*models.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	lockKey := fmt.Sprintf(constvars.RedisKeyBookingDateLockFmt, request.Date)
	lockTTL := time.Duration(uc.InternalConfig.Booking.DateLockTimeInSeconds) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		// The lock narrows the race, the snapshot check below still runs without it.
		uc.Log.Warn("bookingUsecase.reserve proceeding without date lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, lockKey),
			zap.Error(err),
		)
	} else if !acquired {
		return nil, exceptions.ErrBookingLockNotAcquired(nil)
	} else {
		defer func() {
			if err := uc.LockerService.Unlock(ctx, lockKey, lockValue); err != nil {
				uc.Log.Error("bookingUsecase.reserve error releasing date lock",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(err),
				)
			}
		}()
	}

	conflict, err := schedule.HasConflict(uc.BookingStore.Snapshot(), request.Date, request.StartTime, request.EndTime)
	if err != nil {
		return nil, exceptions.ErrBookingInvalidInterval(err)
	}
	if conflict {
		return nil, exceptions.ErrBookingConflict(nil)
	}

	booking := models.Booking{
		Title:     request.Title,
		Organizer: request.Organizer,
		Date:      request.Date,
		StartTime: request.StartTime,
		EndTime:   request.EndTime,
		Type:      request.Type,
		BookedBy:  session.User().BookedByName(constvars.BookedByUnknown),
		UserID:    session.UserID,
	}
	booking.SetCreatedAt(uc.Clock.Now())

	bookingID, err := uc.BookingStore.Create(ctx, booking)
	if err != nil {
		return nil, err
	}
	booking.ID = bookingID
	return &booking, nil
}

func (uc *bookingUsecase) RequestDeletion(ctx context.Context, session *models.Session, bookingID string) (*responses.DeletionFlow, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.RequestDeletion called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)

	if _, err := uc.ownedBooking(session, bookingID); err != nil {
		uc.Log.Info("bookingUsecase.RequestDeletion rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	flows := uc.flowsFor(session)
	if flows.deletion.State == constvars.FlowStateDeleting {
		return nil, exceptions.ErrBookingDeletionNotPending(errors.New("a cancellation is already being written"))
	}
	flows.deletion = responses.DeletionFlow{
		State:     constvars.FlowStateConfirming,
		BookingID: bookingID,
	}

	uc.Log.Info("bookingUsecase.RequestDeletion succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFlowStateKey, flows.deletion.State),
	)
	deletion := flows.deletion
	return &deletion, nil
}

func (uc *bookingUsecase) ConfirmDeletion(ctx context.Context, session *models.Session, bookingID string, request *requests.ConfirmDeletion) (*responses.ConfirmDeletion, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.ConfirmDeletion called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
		zap.Bool("confirm", request.Confirm),
	)

	uc.mu.Lock()
	flows := uc.flowsFor(session)
	if flows.deletion.State != constvars.FlowStateConfirming || flows.deletion.BookingID != bookingID {
		uc.mu.Unlock()
		return nil, exceptions.ErrBookingDeletionNotPending(nil)
	}
	if !request.Confirm {
		flows.deletion = responses.DeletionFlow{State: constvars.FlowStateIdle}
		deletion := flows.deletion
		uc.mu.Unlock()

		uc.Log.Info("bookingUsecase.ConfirmDeletion declined",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return &responses.ConfirmDeletion{Deleted: false, Flow: deletion}, nil
	}
	flows.deletion.State = constvars.FlowStateDeleting
	epoch := flows.epoch
	uc.mu.Unlock()

	booking, err := uc.ownedBooking(session, bookingID)
	if err == nil {
		err = uc.BookingStore.Delete(ctx, bookingID)
	}

	deletion := uc.settleDeletion(session.SessionID, epoch)
	if err != nil {
		uc.Log.Error("bookingUsecase.ConfirmDeletion error deleting booking",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.publishBookingEvent(ctx, constvars.EventBookingDeleted, booking, session.UserID)

	uc.Log.Info("bookingUsecase.ConfirmDeletion succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)
	return &responses.ConfirmDeletion{Deleted: true, Flow: deletion}, nil
}

func (uc *bookingUsecase) ListBookings(ctx context.Context, date string) ([]models.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	snapshot := uc.BookingStore.Snapshot()
	result := make([]models.Booking, 0, len(snapshot))
	for _, b := range snapshot {
		if date == "" || b.Date == date {
			result = append(result, b)
		}
	}

	uc.Log.Info("bookingUsecase.ListBookings succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingDateKey, date),
		zap.Int(constvars.LoggingBookingCountKey, len(result)),
	)
	return result, nil
}

func (uc *bookingUsecase) GetFlows(ctx context.Context, session *models.Session) (*responses.BookingFlows, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	flows := uc.flowsFor(session).view()
	return &flows, nil
}

func (uc *bookingUsecase) GetBookingTypes(ctx context.Context) *responses.BookingTypes {
	return &responses.BookingTypes{
		Types: []responses.BookingType{
			{Type: constvars.BookingTypeInternal, Label: "Internal", Style: constvars.BookingTypeStyleInternal},
			{Type: constvars.BookingTypeClient, Label: "Client", Style: constvars.BookingTypeStyleClient},
			{Type: constvars.BookingTypeFocus, Label: "Focus", Style: constvars.BookingTypeStyleFocus},
			{Type: constvars.BookingTypeSocial, Label: "Social", Style: constvars.BookingTypeStyleSocial},
		},
		Guidelines: constvars.BookingGuidelines,
	}
}

func (uc *bookingUsecase) ResetFlows(ctx context.Context, sessionID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if flows, ok := uc.flows[sessionID]; ok {
		flows.reset()
		uc.Log.Info("bookingUsecase.ResetFlows succeeded",
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Uint64(constvars.LoggingFlowEpochKey, flows.epoch),
		)
	}
}

func (uc *bookingUsecase) ForgetSession(ctx context.Context, sessionID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	delete(uc.flows, sessionID)
}

// flowsFor must be called with uc.mu held.
func (uc *bookingUsecase) flowsFor(session *models.Session) *sessionFlows {
	flows, ok := uc.flows[session.SessionID]
	if !ok {
		date := session.SelectedDate
		if date == "" {
			date = schedule.Today(uc.Clock.Now())
		}
		flows = newSessionFlows(date)
		uc.flows[session.SessionID] = flows
	}
	return flows
}

func (uc *bookingUsecase) beginSubmission(session *models.Session, request *requests.CreateBooking) (uint64, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	flows := uc.flowsFor(session)
	if flows.submission.State == constvars.FlowStateSubmitting {
		return 0, exceptions.ErrBookingSubmissionInProgress(nil)
	}
	flows.submission = responses.SubmissionFlow{
		State: constvars.FlowStateSubmitting,
		Draft: draftFromRequest(request),
	}
	return flows.epoch, nil
}

// settleSubmission records the outcome only while the session is still on the
// epoch the write started under. The returned flow is the recorded one, or the
// unrecorded outcome when the session moved on.
func (uc *bookingUsecase) settleSubmission(sessionID string, epoch uint64, apply func(f *sessionFlows)) responses.SubmissionFlow {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	flows, ok := uc.flows[sessionID]
	if !ok || flows.epoch != epoch {
		detached := &sessionFlows{}
		apply(detached)
		uc.Log.Info("bookingUsecase.settleSubmission dropped stale result",
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Uint64(constvars.LoggingFlowEpochKey, epoch),
		)
		return detached.submission
	}
	apply(flows)
	return flows.submission
}

func (uc *bookingUsecase) settleDeletion(sessionID string, epoch uint64) responses.DeletionFlow {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	idle := responses.DeletionFlow{State: constvars.FlowStateIdle}
	flows, ok := uc.flows[sessionID]
	if ok && flows.epoch == epoch {
		flows.deletion = idle
	}
	return idle
}

// ownedBooking looks the booking up in the current snapshot and checks that
// the session user created it.
func (uc *bookingUsecase) ownedBooking(session *models.Session, bookingID string) (models.Booking, error) {
	for _, b := range uc.BookingStore.Snapshot() {
		if b.ID != bookingID {
			continue
		}
		if !b.IsOwnedBy(session.UserID) {
			return b, exceptions.ErrBookingNotOwned(nil)
		}
		return b, nil
	}
	return models.Booking{}, exceptions.ErrBookingNotFound(nil)
}

func (uc *bookingUsecase) publishBookingEvent(ctx context.Context, event string, booking models.Booking, actorID string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	err := uc.EventPublisher.PublishBookingEvent(ctx, models.BookingEvent{
		Event:      event,
		Booking:    booking,
		ActorID:    actorID,
		OccurredAt: uc.Clock.Now().Format(time.RFC3339),
	})
	if err != nil {
		uc.Log.Error("bookingUsecase.publishBookingEvent error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRoutingKey, event),
			zap.Error(err),
		)
	}
}

func clientMessageOf(err error) string {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr.ClientMessage
	}
	return constvars.ErrClientCannotProcessRequest
}
