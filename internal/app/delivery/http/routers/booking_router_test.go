package routers

import (
	"context"
	"net/http"
	"roombook-service/internal/app/delivery/http/controllers"
	"roombook-service/internal/app/models"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/dto/requests"
	"roombook-service/internal/pkg/dto/responses"
	"roombook-service/internal/pkg/exceptions"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockBookingUsecase struct {
	mock.Mock
}

func (m *MockBookingUsecase) CreateBooking(ctx context.Context, session *models.Session, request *requests.CreateBooking) (*responses.CreateBooking, error) {
	args := m.Called(ctx, session, request)
	result, _ := args.Get(0).(*responses.CreateBooking)
	return result, args.Error(1)
}

func (m *MockBookingUsecase) RequestDeletion(ctx context.Context, session *models.Session, bookingID string) (*responses.DeletionFlow, error) {
	args := m.Called(ctx, session, bookingID)
	result, _ := args.Get(0).(*responses.DeletionFlow)
	return result, args.Error(1)
}

func (m *MockBookingUsecase) ConfirmDeletion(ctx context.Context, session *models.Session, bookingID string, request *requests.ConfirmDeletion) (*responses.ConfirmDeletion, error) {
	args := m.Called(ctx, session, bookingID, request)
	result, _ := args.Get(0).(*responses.ConfirmDeletion)
	return result, args.Error(1)
}

func (m *MockBookingUsecase) ListBookings(ctx context.Context, date string) ([]models.Booking, error) {
	args := m.Called(ctx, date)
	result, _ := args.Get(0).([]models.Booking)
	return result, args.Error(1)
}

func (m *MockBookingUsecase) GetFlows(ctx context.Context, session *models.Session) (*responses.BookingFlows, error) {
	args := m.Called(ctx, session)
	result, _ := args.Get(0).(*responses.BookingFlows)
	return result, args.Error(1)
}

func (m *MockBookingUsecase) GetBookingTypes(ctx context.Context) *responses.BookingTypes {
	result, _ := m.Called(ctx).Get(0).(*responses.BookingTypes)
	return result
}

func (m *MockBookingUsecase) ResetFlows(ctx context.Context, sessionID string) {
	m.Called(ctx, sessionID)
}

func (m *MockBookingUsecase) ForgetSession(ctx context.Context, sessionID string) {
	m.Called(ctx, sessionID)
}

func newBookingTestRouter(t *testing.T) (*chi.Mux, *MockBookingUsecase, string) {
	t.Helper()

	middlewareInstance, token := newTestMiddlewares(t, new(MockAuthUsecase))
	bookingUsecase := new(MockBookingUsecase)
	bookingController := controllers.NewBookingController(zap.NewNop(), bookingUsecase)

	router := chi.NewRouter()
	router.Use(middlewareInstance.RequestIDMiddleware)
	attachBookingRoutes(router, middlewareInstance, bookingController)
	return router, bookingUsecase, token
}

func validCreateBooking() requests.CreateBooking {
	return requests.CreateBooking{
		Title:     "Quarterly review",
		Organizer: "Finance",
		Date:      "2099-01-05",
		StartTime: "10:00",
		EndTime:   "11:00",
		Type:      constvars.BookingTypeClient,
	}
}

func TestBookingRouter_RequiresSession(t *testing.T) {
	router, bookingUsecase, _ := newBookingTestRouter(t)

	for _, path := range []string{"/", "/types", "/flows"} {
		rr := doRequest(router, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
	bookingUsecase.AssertNotCalled(t, "ListBookings", mock.Anything, mock.Anything)
}

func TestBookingRouter_CreateBooking(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router, bookingUsecase, token := newBookingTestRouter(t)
		bookingUsecase.On("CreateBooking", mock.Anything, testSession, mock.MatchedBy(func(r *requests.CreateBooking) bool {
			return r.Title == "Quarterly review" && r.StartTime == "10:00"
		})).Return(&responses.CreateBooking{ID: "b-1"}, nil)

		rr := doRequest(router, http.MethodPost, "/", validCreateBooking(), token)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, constvars.BookingCreatedSuccessMessage, decodeBody(t, rr)["message"])
	})

	cases := []struct {
		name   string
		mutate func(r *requests.CreateBooking)
	}{
		{name: "missing title", mutate: func(r *requests.CreateBooking) { r.Title = "  " }},
		{name: "off-grid start", mutate: func(r *requests.CreateBooking) { r.StartTime = "10:15" }},
		{name: "unknown type", mutate: func(r *requests.CreateBooking) { r.Type = "party" }},
	}
	for _, tc := range cases {
		t.Run(tc.name+" is rejected before the usecase", func(t *testing.T) {
			router, bookingUsecase, token := newBookingTestRouter(t)
			request := validCreateBooking()
			tc.mutate(&request)

			rr := doRequest(router, http.MethodPost, "/", request, token)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, constvars.ErrKindValidation, decodeBody(t, rr)["kind"])
			bookingUsecase.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("conflict surfaces the reserved message", func(t *testing.T) {
		router, bookingUsecase, token := newBookingTestRouter(t)
		bookingUsecase.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything).Return(nil, exceptions.ErrBookingConflict(nil))

		rr := doRequest(router, http.MethodPost, "/", validCreateBooking(), token)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, constvars.ErrClientSlotAlreadyReserved, decodeBody(t, rr)["message"])
	})

	t.Run("store failure is a write error", func(t *testing.T) {
		router, bookingUsecase, token := newBookingTestRouter(t)
		bookingUsecase.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything).Return(nil, exceptions.ErrBookingCreateWrite(nil))

		rr := doRequest(router, http.MethodPost, "/", validCreateBooking(), token)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, constvars.ErrClientFailedToSaveBooking, body["message"])
		assert.Equal(t, constvars.ErrKindWrite, body["kind"])
	})
}

func TestBookingRouter_ListBookings(t *testing.T) {
	t.Run("passes the date filter", func(t *testing.T) {
		router, bookingUsecase, token := newBookingTestRouter(t)
		bookingUsecase.On("ListBookings", mock.Anything, "2099-01-05").Return([]models.Booking{{ID: "b-1"}}, nil)

		rr := doRequest(router, http.MethodGet, "/?date=2099-01-05", nil, token)

		assert.Equal(t, http.StatusOK, rr.Code)
		bookingUsecase.AssertExpectations(t)
	})

	t.Run("malformed date", func(t *testing.T) {
		router, bookingUsecase, token := newBookingTestRouter(t)

		rr := doRequest(router, http.MethodGet, "/?date=05-01-2099", nil, token)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		bookingUsecase.AssertNotCalled(t, "ListBookings", mock.Anything, mock.Anything)
	})
}

func TestBookingRouter_Deletion(t *testing.T) {
	t.Run("request reads the booking id from the path", func(t *testing.T) {
		router, bookingUsecase, token := newBookingTestRouter(t)
		bookingUsecase.On("RequestDeletion", mock.Anything, testSession, "b-1").
			Return(&responses.DeletionFlow{State: constvars.FlowStateConfirming, BookingID: "b-1"}, nil)

		rr := doRequest(router, http.MethodPost, "/b-1/deletion", nil, token)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.BookingDeletionRequestedMessage, decodeBody(t, rr)["message"])
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		router, bookingUsecase, token := newBookingTestRouter(t)
		bookingUsecase.On("RequestDeletion", mock.Anything, mock.Anything, "b-2").Return(nil, exceptions.ErrBookingNotOwned(nil))

		rr := doRequest(router, http.MethodPost, "/b-2/deletion", nil, token)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, constvars.ErrClientOnlyOwnersCanDelete, decodeBody(t, rr)["message"])
	})

	t.Run("confirm", func(t *testing.T) {
		router, bookingUsecase, token := newBookingTestRouter(t)
		bookingUsecase.On("ConfirmDeletion", mock.Anything, testSession, "b-1", &requests.ConfirmDeletion{Confirm: true}).
			Return(&responses.ConfirmDeletion{Deleted: true}, nil)

		rr := doRequest(router, http.MethodPost, "/b-1/deletion/confirm", requests.ConfirmDeletion{Confirm: true}, token)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.BookingCancelledSuccessMessage, decodeBody(t, rr)["message"])
	})

	t.Run("decline", func(t *testing.T) {
		router, bookingUsecase, token := newBookingTestRouter(t)
		bookingUsecase.On("ConfirmDeletion", mock.Anything, testSession, "b-1", &requests.ConfirmDeletion{Confirm: false}).
			Return(&responses.ConfirmDeletion{Deleted: false}, nil)

		rr := doRequest(router, http.MethodPost, "/b-1/deletion/confirm", requests.ConfirmDeletion{Confirm: false}, token)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.BookingDeletionDeclinedMessage, decodeBody(t, rr)["message"])
	})
}

func TestBookingRouter_TypesAndFlows(t *testing.T) {
	router, bookingUsecase, token := newBookingTestRouter(t)
	bookingUsecase.On("GetBookingTypes", mock.Anything).Return(&responses.BookingTypes{
		Types: []responses.BookingType{{Type: constvars.BookingTypeInternal, Label: "Internal"}},
	})
	bookingUsecase.On("GetFlows", mock.Anything, testSession).Return(&responses.BookingFlows{
		Submission: responses.SubmissionFlow{State: constvars.FlowStateSubmitting},
	}, nil)

	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "/types", nil, token).Code)

	rr := doRequest(router, http.MethodGet, "/flows", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, constvars.BookingSubmissionPendingMessage, decodeBody(t, rr)["message"])
}
