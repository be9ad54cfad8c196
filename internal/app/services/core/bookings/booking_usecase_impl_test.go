package bookings

import (
	"context"
	"errors"
	"roombook-service/internal/app/config"
	"roombook-service/internal/app/models"
	"roombook-service/internal/app/services/shared/bookingstore"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/dto/requests"
	"roombook-service/internal/pkg/exceptions"
	"roombook-service/internal/pkg/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	return m.Called(ctx, key, lockValue).Error(0)
}

func (m *MockLockerService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return m.Called(ctx, key, lockValue, expiration).Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishBookingEvent(ctx context.Context, event models.BookingEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) PublishLiveStatus(ctx context.Context, status models.LiveStatus) error {
	return m.Called(ctx, status).Error(0)
}

var testNow = time.Date(2024, time.January, 2, 10, 15, 0, 0, time.UTC)

type fixture struct {
	usecase   *bookingUsecase
	store     *bookingstore.LiveStore
	repo      *bookingstore.MemoryRepository
	locker    *MockLockerService
	publisher *MockEventPublisher
}

func newFixture(t *testing.T, seed ...models.Booking) *fixture {
	t.Helper()

	repo := bookingstore.NewMemoryRepository(seed...)
	store := bookingstore.NewLiveStore(repo, nil, zap.NewNop(), 0)
	require.NoError(t, store.Reload(context.Background()))

	locker := new(MockLockerService)
	locker.On("TryLock", mock.Anything, mock.Anything, 10*time.Second).Return(true, "lock-token", nil).Maybe()
	locker.On("Unlock", mock.Anything, mock.Anything, "lock-token").Return(nil).Maybe()

	publisher := new(MockEventPublisher)
	publisher.On("PublishBookingEvent", mock.Anything, mock.Anything).Return(nil).Maybe()

	internalConfig := &config.InternalConfig{
		Booking: config.AppBooking{DateLockTimeInSeconds: 10},
	}

	return &fixture{
		usecase:   newBookingUsecase(store, locker, publisher, internalConfig, utils.FixedClock{At: testNow}, zap.NewNop()),
		store:     store,
		repo:      repo,
		locker:    locker,
		publisher: publisher,
	}
}

func sessionFor(userID, name string) *models.Session {
	return &models.Session{
		SessionID:    "session-" + userID,
		UserID:       userID,
		Email:        userID + "@example.com",
		DisplayName:  name,
		SelectedDate: "2024-01-02",
		ExpiresAt:    testNow.Add(time.Hour),
	}
}

func createRequest(start, end string) *requests.CreateBooking {
	return &requests.CreateBooking{
		Title:     "Planning",
		Organizer: "Product",
		Date:      "2024-01-02",
		StartTime: start,
		EndTime:   end,
		Type:      constvars.BookingTypeClient,
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the booking with creator details", func(t *testing.T) {
		f := newFixture(t)
		session := sessionFor("user-a", "Alex")

		result, err := f.usecase.CreateBooking(ctx, session, createRequest("10:00", "11:00"))

		require.NoError(t, err)
		assert.NotEmpty(t, result.ID)
		assert.Equal(t, "Alex", result.Booking.BookedBy)
		assert.Equal(t, "user-a", result.Booking.UserID)
		assert.Equal(t, constvars.FlowStateSucceeded, result.Flow.State)
		require.Len(t, f.store.Snapshot(), 1)
		f.publisher.AssertCalled(t, "PublishBookingEvent", mock.Anything, mock.MatchedBy(func(e models.BookingEvent) bool {
			return e.Event == constvars.EventBookingCreated && e.Booking.ID == result.ID
		}))
	})

	t.Run("falls back to email then Unknown for bookedBy", func(t *testing.T) {
		f := newFixture(t)
		session := sessionFor("user-a", "")

		result, err := f.usecase.CreateBooking(ctx, session, createRequest("10:00", "11:00"))
		require.NoError(t, err)
		assert.Equal(t, "user-a@example.com", result.Booking.BookedBy)

		anonymous := &models.Session{SessionID: "session-anon", UserID: "user-x"}
		result, err = f.usecase.CreateBooking(ctx, anonymous, createRequest("12:00", "13:00"))
		require.NoError(t, err)
		assert.Equal(t, constvars.BookedByUnknown, result.Booking.BookedBy)
	})

	t.Run("success clears title and organizer but keeps the rest of the draft", func(t *testing.T) {
		f := newFixture(t)

		result, err := f.usecase.CreateBooking(ctx, sessionFor("user-a", "Alex"), createRequest("10:00", "11:00"))

		require.NoError(t, err)
		assert.Empty(t, result.Flow.Draft.Title)
		assert.Empty(t, result.Flow.Draft.Organizer)
		assert.Equal(t, "2024-01-02", result.Flow.Draft.Date)
		assert.Equal(t, "10:00", result.Flow.Draft.StartTime)
		assert.Equal(t, "11:00", result.Flow.Draft.EndTime)
		assert.Equal(t, constvars.BookingTypeClient, result.Flow.Draft.Type)
	})

	t.Run("end not after start is rejected before any write", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.usecase.CreateBooking(ctx, sessionFor("user-a", "Alex"), createRequest("11:00", "11:00"))

		require.Error(t, err)
		assert.True(t, exceptions.IsValidationError(err))
		assert.Equal(t, constvars.ErrClientEndBeforeStart, clientMessageOf(err))
		assert.Empty(t, f.store.Snapshot())
		f.locker.AssertNotCalled(t, "TryLock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("date before the clock's today is rejected before any write", func(t *testing.T) {
		f := newFixture(t)
		request := createRequest("10:00", "11:00")
		request.Date = "2024-01-01"

		_, err := f.usecase.CreateBooking(ctx, sessionFor("user-a", "Alex"), request)

		require.Error(t, err)
		assert.True(t, exceptions.IsValidationError(err))
		assert.Equal(t, constvars.ErrClientDateInPast, clientMessageOf(err))
		assert.Empty(t, f.store.Snapshot())
		f.locker.AssertNotCalled(t, "TryLock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("overlap with the live snapshot is rejected and the draft kept", func(t *testing.T) {
		f := newFixture(t, models.Booking{
			ID: "existing", Date: "2024-01-02", StartTime: "10:00", EndTime: "11:00", UserID: "user-b",
		})
		session := sessionFor("user-a", "Alex")

		_, err := f.usecase.CreateBooking(ctx, session, createRequest("10:30", "11:30"))

		require.Error(t, err)
		assert.Equal(t, constvars.ErrClientSlotAlreadyReserved, clientMessageOf(err))
		assert.Len(t, f.store.Snapshot(), 1)

		flows, err := f.usecase.GetFlows(ctx, session)
		require.NoError(t, err)
		assert.Equal(t, constvars.FlowStateFailed, flows.Submission.State)
		assert.Equal(t, "Planning", flows.Submission.Draft.Title)
	})

	t.Run("touching intervals are accepted", func(t *testing.T) {
		f := newFixture(t, models.Booking{
			ID: "existing", Date: "2024-01-02", StartTime: "10:00", EndTime: "11:00", UserID: "user-b",
		})

		_, err := f.usecase.CreateBooking(ctx, sessionFor("user-a", "Alex"), createRequest("11:00", "12:00"))

		require.NoError(t, err)
		assert.Len(t, f.store.Snapshot(), 2)
	})

	t.Run("store failure is a write error", func(t *testing.T) {
		f := newFixture(t)
		f.repo.SetErr(errors.New("permission denied by backend"))

		_, err := f.usecase.CreateBooking(ctx, sessionFor("user-a", "Alex"), createRequest("10:00", "11:00"))

		require.Error(t, err)
		assert.True(t, exceptions.IsWriteError(err))
		assert.Equal(t, constvars.ErrClientFailedToSaveBooking, clientMessageOf(err))
	})

	t.Run("held date lock rejects the submission", func(t *testing.T) {
		f := newFixture(t)
		f.locker.ExpectedCalls = nil
		f.locker.On("TryLock", mock.Anything, "roombook:lock:bookings:2024-01-02", 10*time.Second).Return(false, "", nil)

		_, err := f.usecase.CreateBooking(ctx, sessionFor("user-a", "Alex"), createRequest("10:00", "11:00"))

		require.Error(t, err)
		assert.Empty(t, f.store.Snapshot())
	})

	t.Run("unreachable lock service does not block the booking", func(t *testing.T) {
		f := newFixture(t)
		f.locker.ExpectedCalls = nil
		f.locker.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(false, "", errors.New("redis down"))

		_, err := f.usecase.CreateBooking(ctx, sessionFor("user-a", "Alex"), createRequest("10:00", "11:00"))

		require.NoError(t, err)
		f.locker.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("publish failure does not fail the booking", func(t *testing.T) {
		f := newFixture(t)
		f.publisher.ExpectedCalls = nil
		f.publisher.On("PublishBookingEvent", mock.Anything, mock.Anything).Return(errors.New("broker down"))

		_, err := f.usecase.CreateBooking(ctx, sessionFor("user-a", "Alex"), createRequest("10:00", "11:00"))

		require.NoError(t, err)
	})

	t.Run("second submission while one is running is rejected", func(t *testing.T) {
		f := newFixture(t)
		session := sessionFor("user-a", "Alex")

		_, err := f.usecase.beginSubmission(session, createRequest("10:00", "11:00"))
		require.NoError(t, err)

		_, err = f.usecase.CreateBooking(ctx, session, createRequest("12:00", "13:00"))

		require.Error(t, err)
		assert.Equal(t, constvars.ErrClientSubmissionInProgress, clientMessageOf(err))
	})
}

func TestCreateBooking_SeparateClientsSeeEachOther(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.usecase.CreateBooking(ctx, sessionFor("user-a", "Alex"), createRequest("09:00", "10:00"))
	require.NoError(t, err)

	_, err = f.usecase.CreateBooking(ctx, sessionFor("user-b", "Blake"), createRequest("09:30", "10:30"))
	require.Error(t, err)
	assert.Equal(t, constvars.ErrClientSlotAlreadyReserved, clientMessageOf(err))

	_, err = f.usecase.CreateBooking(ctx, sessionFor("user-c", "Casey"), createRequest("10:00", "10:30"))
	require.NoError(t, err)

	bookings, err := f.usecase.ListBookings(ctx, "2024-01-02")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "09:00", bookings[0].StartTime)
	assert.Equal(t, "10:00", bookings[1].StartTime)
}

func TestSettleSubmission_StaleEpochIsDropped(t *testing.T) {
	f := newFixture(t)
	session := sessionFor("user-a", "Alex")

	epoch, err := f.usecase.beginSubmission(session, createRequest("10:00", "11:00"))
	require.NoError(t, err)

	// Switching date while the write is in flight.
	f.usecase.ResetFlows(context.Background(), session.SessionID)

	outcome := f.usecase.settleSubmission(session.SessionID, epoch, func(flows *sessionFlows) {
		flows.succeed("late-id")
	})
	assert.Equal(t, constvars.FlowStateSucceeded, outcome.State)

	flows, err := f.usecase.GetFlows(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, constvars.FlowStateIdle, flows.Submission.State)
	assert.Empty(t, flows.Submission.BookingID)
}

func TestSettleSubmission_ForgottenSessionIsDropped(t *testing.T) {
	f := newFixture(t)
	session := sessionFor("user-a", "Alex")

	epoch, err := f.usecase.beginSubmission(session, createRequest("10:00", "11:00"))
	require.NoError(t, err)
	f.usecase.ForgetSession(context.Background(), session.SessionID)

	f.usecase.settleSubmission(session.SessionID, epoch, func(flows *sessionFlows) {
		flows.succeed("late-id")
	})

	f.usecase.mu.Lock()
	_, exists := f.usecase.flows[session.SessionID]
	f.usecase.mu.Unlock()
	assert.False(t, exists)
}

func TestDeletion(t *testing.T) {
	ctx := context.Background()
	owned := models.Booking{
		ID: "owned", Title: "Sync", Date: "2024-01-02", StartTime: "10:00", EndTime: "11:00", UserID: "user-a",
	}

	t.Run("owner confirms and the booking is removed", func(t *testing.T) {
		f := newFixture(t, owned)
		session := sessionFor("user-a", "Alex")

		deletion, err := f.usecase.RequestDeletion(ctx, session, "owned")
		require.NoError(t, err)
		assert.Equal(t, constvars.FlowStateConfirming, deletion.State)

		result, err := f.usecase.ConfirmDeletion(ctx, session, "owned", &requests.ConfirmDeletion{Confirm: true})
		require.NoError(t, err)
		assert.True(t, result.Deleted)
		assert.Equal(t, constvars.FlowStateIdle, result.Flow.State)
		assert.Empty(t, f.store.Snapshot())
		f.publisher.AssertCalled(t, "PublishBookingEvent", mock.Anything, mock.MatchedBy(func(e models.BookingEvent) bool {
			return e.Event == constvars.EventBookingDeleted && e.Booking.ID == "owned"
		}))
	})

	t.Run("declining keeps the booking and issues no request", func(t *testing.T) {
		f := newFixture(t, owned)
		session := sessionFor("user-a", "Alex")

		_, err := f.usecase.RequestDeletion(ctx, session, "owned")
		require.NoError(t, err)

		result, err := f.usecase.ConfirmDeletion(ctx, session, "owned", &requests.ConfirmDeletion{Confirm: false})
		require.NoError(t, err)
		assert.False(t, result.Deleted)
		assert.Equal(t, constvars.FlowStateIdle, result.Flow.State)
		assert.Len(t, f.store.Snapshot(), 1)
		f.publisher.AssertNotCalled(t, "PublishBookingEvent", mock.Anything, mock.Anything)
	})

	t.Run("non-owner is refused before any write", func(t *testing.T) {
		f := newFixture(t, owned)

		_, err := f.usecase.RequestDeletion(ctx, sessionFor("user-b", "Blake"), "owned")

		require.Error(t, err)
		assert.Equal(t, constvars.ErrClientOnlyOwnersCanDelete, clientMessageOf(err))
		assert.Len(t, f.store.Snapshot(), 1)
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		f := newFixture(t, owned)

		_, err := f.usecase.RequestDeletion(ctx, sessionFor("user-a", "Alex"), "missing")

		require.Error(t, err)
		assert.Equal(t, constvars.ErrClientBookingNotFound, clientMessageOf(err))
	})

	t.Run("confirm without a pending request is rejected", func(t *testing.T) {
		f := newFixture(t, owned)

		_, err := f.usecase.ConfirmDeletion(ctx, sessionFor("user-a", "Alex"), "owned", &requests.ConfirmDeletion{Confirm: true})

		require.Error(t, err)
		assert.Equal(t, constvars.ErrClientNoPendingDeletion, clientMessageOf(err))
		assert.Len(t, f.store.Snapshot(), 1)
	})

	t.Run("store failure surfaces as permission denied and returns to idle", func(t *testing.T) {
		f := newFixture(t, owned)
		session := sessionFor("user-a", "Alex")

		_, err := f.usecase.RequestDeletion(ctx, session, "owned")
		require.NoError(t, err)
		f.repo.SetErr(errors.New("network unreachable"))

		_, err = f.usecase.ConfirmDeletion(ctx, session, "owned", &requests.ConfirmDeletion{Confirm: true})

		require.Error(t, err)
		assert.True(t, exceptions.IsWriteError(err))
		assert.Equal(t, constvars.ErrClientPermissionDenied, clientMessageOf(err))

		flows, err := f.usecase.GetFlows(ctx, session)
		require.NoError(t, err)
		assert.Equal(t, constvars.FlowStateIdle, flows.Deletion.State)
	})
}

func TestListBookings(t *testing.T) {
	f := newFixture(t,
		models.Booking{ID: "b", Date: "2024-01-03", StartTime: "09:00", EndTime: "10:00"},
		models.Booking{ID: "a", Date: "2024-01-02", StartTime: "14:00", EndTime: "15:00"},
		models.Booking{ID: "c", Date: "2024-01-02", StartTime: "09:00", EndTime: "09:30"},
	)

	t.Run("filters by date in start order", func(t *testing.T) {
		bookings, err := f.usecase.ListBookings(context.Background(), "2024-01-02")
		require.NoError(t, err)
		require.Len(t, bookings, 2)
		assert.Equal(t, "c", bookings[0].ID)
		assert.Equal(t, "a", bookings[1].ID)
	})

	t.Run("empty date returns everything", func(t *testing.T) {
		bookings, err := f.usecase.ListBookings(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, bookings, 3)
	})
}

func TestGetFlows_DefaultDraft(t *testing.T) {
	f := newFixture(t)

	flows, err := f.usecase.GetFlows(context.Background(), sessionFor("user-a", "Alex"))

	require.NoError(t, err)
	assert.Equal(t, constvars.FlowStateIdle, flows.Submission.State)
	assert.Equal(t, constvars.FlowStateIdle, flows.Deletion.State)
	assert.Equal(t, "2024-01-02", flows.Submission.Draft.Date)
	assert.Equal(t, constvars.DefaultStartTime, flows.Submission.Draft.StartTime)
	assert.Equal(t, constvars.DefaultEndTime, flows.Submission.Draft.EndTime)
	assert.Equal(t, constvars.DefaultBookingType, flows.Submission.Draft.Type)
}

func TestGetBookingTypes(t *testing.T) {
	f := newFixture(t)

	types := f.usecase.GetBookingTypes(context.Background())

	require.Len(t, types.Types, 4)
	for _, bookingType := range types.Types {
		assert.True(t, utils.IsBookingType(bookingType.Type))
	}
	assert.Contains(t, types.Guidelines, "Only owners can delete")
}
