package schedules

import (
	"context"
	"errors"
	"roombook-service/internal/app/config"
	"roombook-service/internal/app/contracts"
	"roombook-service/internal/app/models"
	"roombook-service/internal/app/services/shared/bookingstore"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/dto/requests"
	"roombook-service/internal/pkg/dto/responses"
	"roombook-service/internal/pkg/utils"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) CreateSession(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockSessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

func (m *MockSessionService) UpdateSession(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockSessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

// flowResetRecorder only tracks ResetFlows; the embedded interface is nil.
type flowResetRecorder struct {
	contracts.BookingUsecase
	resets []string
}

func (r *flowResetRecorder) ResetFlows(ctx context.Context, sessionID string) {
	r.resets = append(r.resets, sessionID)
}

type MockScheduleExporter struct {
	mock.Mock
}

func (m *MockScheduleExporter) UploadScheduleExport(ctx context.Context, objectName string, content []byte) (string, error) {
	args := m.Called(ctx, objectName, content)
	return args.String(0), args.Error(1)
}

func (m *MockScheduleExporter) GetObjectUrlWithExpiryTime(ctx context.Context, objectName string) (string, error) {
	args := m.Called(ctx, objectName)
	return args.String(0), args.Error(1)
}

var testNow = time.Date(2024, time.January, 2, 10, 15, 0, 0, time.UTC)

func newTestUsecase(t *testing.T, seed ...models.Booking) (*scheduleUsecase, *MockSessionService, *flowResetRecorder, *MockScheduleExporter) {
	t.Helper()

	store := bookingstore.NewLiveStore(bookingstore.NewMemoryRepository(seed...), nil, zap.NewNop(), 0)
	require.NoError(t, store.Reload(context.Background()))

	sessionService := new(MockSessionService)
	resets := &flowResetRecorder{}
	exporter := new(MockScheduleExporter)
	internalConfig := &config.InternalConfig{
		Minio: config.AppMinio{ScheduleExportPreSignedUrlExpiryInMinute: 15},
	}

	uc := newScheduleUsecase(store, resets, sessionService, exporter, internalConfig, utils.FixedClock{At: testNow}, zap.NewNop())
	return uc, sessionService, resets, exporter
}

func testSession() *models.Session {
	return &models.Session{
		SessionID:    "session-1",
		UserID:       "user-1",
		SelectedDate: "2024-01-03",
		ExpiresAt:    testNow.Add(time.Hour),
	}
}

func TestGetSchedule(t *testing.T) {
	uc, _, _, _ := newTestUsecase(t,
		models.Booking{ID: "mine", Date: "2024-01-03", StartTime: "09:00", EndTime: "10:00", UserID: "user-1"},
		models.Booking{ID: "today", Date: "2024-01-02", StartTime: "11:00", EndTime: "12:00", UserID: "user-2"},
	)

	t.Run("defaults to the session's selected date", func(t *testing.T) {
		rendered, err := uc.GetSchedule(context.Background(), testSession(), "")

		require.NoError(t, err)
		assert.Equal(t, "2024-01-03", rendered.Date)
		assert.Equal(t, "Schedule for Jan 3", rendered.Header)
		require.NotNil(t, rendered.Rows[0].Booking)
		assert.True(t, rendered.Rows[0].Owned)
	})

	t.Run("falls back to today without a selected date", func(t *testing.T) {
		session := testSession()
		session.SelectedDate = ""

		rendered, err := uc.GetSchedule(context.Background(), session, "")

		require.NoError(t, err)
		assert.Equal(t, "2024-01-02", rendered.Date)
	})

	t.Run("explicit date wins", func(t *testing.T) {
		rendered, err := uc.GetSchedule(context.Background(), testSession(), "2024-01-02")

		require.NoError(t, err)
		assert.Equal(t, "2024-01-02", rendered.Date)
		require.NotNil(t, rendered.Rows[4].Booking)
		assert.False(t, rendered.Rows[4].Owned)
	})
}

func TestSelectDate(t *testing.T) {
	t.Run("stores the date and resets the flows", func(t *testing.T) {
		uc, sessionService, resets, _ := newTestUsecase(t)
		sessionService.On("UpdateSession", mock.Anything, mock.MatchedBy(func(s *models.Session) bool {
			return s.SelectedDate == "2024-01-05" && s.SessionID == "session-1"
		})).Return(nil)

		result, err := uc.SelectDate(context.Background(), testSession(), &requests.SelectDate{Date: "2024-01-05"})

		require.NoError(t, err)
		assert.Equal(t, "2024-01-05", result.SelectedDate)
		assert.Equal(t, []string{"session-1"}, resets.resets)
		sessionService.AssertExpectations(t)
	})

	t.Run("session store failure leaves flows alone", func(t *testing.T) {
		uc, sessionService, resets, _ := newTestUsecase(t)
		sessionService.On("UpdateSession", mock.Anything, mock.Anything).Return(errors.New("redis down"))

		_, err := uc.SelectDate(context.Background(), testSession(), &requests.SelectDate{Date: "2024-01-05"})

		require.Error(t, err)
		assert.Empty(t, resets.resets)
	})
}

func TestGetWeekAndSlots(t *testing.T) {
	uc, _, _, _ := newTestUsecase(t)

	week := uc.GetWeek(context.Background())
	require.Len(t, week, 7)
	assert.Equal(t, constvars.WeekStripToday, week[0].Label)
	assert.Equal(t, "2024-01-02", week[0].Date)

	slots := uc.GetSlots(context.Background())
	require.Len(t, slots, 19)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "18:00", slots[18])
}

func TestGetLiveStatus(t *testing.T) {
	t.Run("occupied during a booking today", func(t *testing.T) {
		uc, _, _, _ := newTestUsecase(t,
			models.Booking{ID: "now", Date: "2024-01-02", StartTime: "10:00", EndTime: "10:30"},
		)

		status := uc.GetLiveStatus(context.Background())

		assert.True(t, status.Occupied)
		require.NotNil(t, status.CurrentBooking)
		assert.Equal(t, "now", status.CurrentBooking.ID)
	})

	t.Run("free when the booking is another day", func(t *testing.T) {
		uc, _, _, _ := newTestUsecase(t,
			models.Booking{ID: "later", Date: "2024-01-03", StartTime: "10:00", EndTime: "10:30"},
		)

		assert.False(t, uc.GetLiveStatus(context.Background()).Occupied)
	})
}

func TestExportSchedule(t *testing.T) {
	t.Run("uploads the rendered day and returns a presigned url", func(t *testing.T) {
		uc, _, _, exporter := newTestUsecase(t,
			models.Booking{ID: "mine", Date: "2024-01-03", StartTime: "09:00", EndTime: "10:00", UserID: "user-1"},
		)
		exporter.On("UploadScheduleExport", mock.Anything, mock.MatchedBy(func(name string) bool {
			return strings.HasPrefix(name, "schedules/2024-01-03/")
		}), mock.MatchedBy(func(content []byte) bool {
			var decoded struct {
				Date string `json:"date"`
			}
			return json.Unmarshal(content, &decoded) == nil && decoded.Date == "2024-01-03"
		})).Return("schedules/2024-01-03/export.json", nil)
		exporter.On("GetObjectUrlWithExpiryTime", mock.Anything, "schedules/2024-01-03/export.json").
			Return("https://minio.local/roombook/schedules/2024-01-03/export.json?sig", nil)

		result, err := uc.ExportSchedule(context.Background(), testSession(), "")

		require.NoError(t, err)
		assert.Equal(t, &responses.ScheduleExport{
			ObjectName: "schedules/2024-01-03/export.json",
			URL:        "https://minio.local/roombook/schedules/2024-01-03/export.json?sig",
			ExpiresAt:  testNow.Add(15 * time.Minute).Format(time.RFC3339),
		}, result)
		exporter.AssertExpectations(t)
	})

	t.Run("upload failure is returned", func(t *testing.T) {
		uc, _, _, exporter := newTestUsecase(t)
		exporter.On("UploadScheduleExport", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket missing"))

		_, err := uc.ExportSchedule(context.Background(), testSession(), "2024-01-03")

		require.Error(t, err)
		exporter.AssertNotCalled(t, "GetObjectUrlWithExpiryTime", mock.Anything, mock.Anything)
	})
}
