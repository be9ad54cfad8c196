package bookingstore

import (
	"context"
	"roombook-service/internal/app/contracts"
	"roombook-service/internal/app/models"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/exceptions"
	"roombook-service/internal/pkg/queries"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type bookingPostgresRepository struct {
	DB  *sqlx.DB
	Log *zap.Logger
}

func NewBookingPostgresRepository(db *sqlx.DB, logger *zap.Logger) contracts.BookingRepository {
	return &bookingPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

// EnsureBookingsTable creates the bookings table when it is missing.
func EnsureBookingsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, queries.CreateBookingsTable)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *bookingPostgresRepository) FindAll(ctx context.Context) ([]models.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Info("bookingPostgresRepository.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	bookings := make([]models.Booking, 0)
	err := repo.DB.SelectContext(ctx, &bookings, queries.GetAllBookings)
	if err != nil {
		repo.Log.Error("bookingPostgresRepository.FindAll error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	repo.Log.Info("bookingPostgresRepository.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingBookingCountKey, len(bookings)),
	)
	return bookings, nil
}

func (repo *bookingPostgresRepository) Insert(ctx context.Context, booking *models.Booking) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Info("bookingPostgresRepository.Insert called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	booking.ID = uuid.NewString()
	_, err := repo.DB.NamedExecContext(ctx, queries.InsertBooking, booking)
	if err != nil {
		repo.Log.Error("bookingPostgresRepository.Insert error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrPostgresDBInsertData(err)
	}

	repo.Log.Info("bookingPostgresRepository.Insert succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, booking.ID),
	)
	return booking.ID, nil
}

func (repo *bookingPostgresRepository) DeleteByID(ctx context.Context, bookingID string) (bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Info("bookingPostgresRepository.DeleteByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)

	result, err := repo.DB.ExecContext(ctx, queries.DeleteBookingByID, bookingID)
	if err != nil {
		repo.Log.Error("bookingPostgresRepository.DeleteByID error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	return affected > 0, nil
}
