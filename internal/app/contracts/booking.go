package contracts

import (
	"context"
	"roombook-service/internal/app/models"
	"roombook-service/internal/app/services/core/schedule"
	"roombook-service/internal/pkg/dto/requests"
	"roombook-service/internal/pkg/dto/responses"
)

// BookingRepository is the persistence behind the live booking store.
type BookingRepository interface {
	// FindAll returns every booking ordered by start time ascending.
	FindAll(ctx context.Context) ([]models.Booking, error)
	Insert(ctx context.Context, booking *models.Booking) (string, error)
	// DeleteByID reports false when no booking had the id.
	DeleteByID(ctx context.Context, bookingID string) (bool, error)
}

// BookingStore is the event-driven view over the booking collection.
type BookingStore interface {
	Subscribe(handler func(snapshot []models.Booking)) (unsubscribe func())
	Snapshot() []models.Booking
	Create(ctx context.Context, booking models.Booking) (string, error)
	Delete(ctx context.Context, bookingID string) error
}

type BookingEventPublisher interface {
	PublishBookingEvent(ctx context.Context, event models.BookingEvent) error
	PublishLiveStatus(ctx context.Context, status models.LiveStatus) error
}

type ScheduleExporter interface {
	UploadScheduleExport(ctx context.Context, objectName string, content []byte) (string, error)
	GetObjectUrlWithExpiryTime(ctx context.Context, objectName string) (string, error)
}

type BookingUsecase interface {
	CreateBooking(ctx context.Context, session *models.Session, request *requests.CreateBooking) (*responses.CreateBooking, error)
	RequestDeletion(ctx context.Context, session *models.Session, bookingID string) (*responses.DeletionFlow, error)
	ConfirmDeletion(ctx context.Context, session *models.Session, bookingID string, request *requests.ConfirmDeletion) (*responses.ConfirmDeletion, error)
	ListBookings(ctx context.Context, date string) ([]models.Booking, error)
	GetFlows(ctx context.Context, session *models.Session) (*responses.BookingFlows, error)
	GetBookingTypes(ctx context.Context) *responses.BookingTypes
	// ResetFlows drops references to in-flight results for the session.
	ResetFlows(ctx context.Context, sessionID string)
	ForgetSession(ctx context.Context, sessionID string)
}

type ScheduleUsecase interface {
	GetSlots(ctx context.Context) []string
	GetWeek(ctx context.Context) []schedule.Day
	GetSchedule(ctx context.Context, session *models.Session, date string) (*schedule.Schedule, error)
	SelectDate(ctx context.Context, session *models.Session, request *requests.SelectDate) (*responses.SelectDate, error)
	GetLiveStatus(ctx context.Context) models.LiveStatus
	ExportSchedule(ctx context.Context, session *models.Session, date string) (*responses.ScheduleExport, error)
}
