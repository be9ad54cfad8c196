package bookingstore

import (
	"context"
	"roombook-service/internal/app/contracts"
	"roombook-service/internal/app/models"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type BookingMongoRepository struct {
	Collection *mongo.Collection
	Log        *zap.Logger
}

func NewBookingMongoRepository(db *mongo.Client, dbName string, logger *zap.Logger) contracts.BookingRepository {
	return &BookingMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionBookings),
		Log:        logger,
	}
}

func (repo *BookingMongoRepository) FindAll(ctx context.Context) ([]models.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := repo.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		repo.Log.Error("BookingMongoRepository.FindAll error executing find",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	bookings := make([]models.Booking, 0)
	err = cursor.All(ctx, &bookings)
	if err != nil {
		repo.Log.Error("BookingMongoRepository.FindAll error decoding documents",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return bookings, nil
}

func (repo *BookingMongoRepository) Insert(ctx context.Context, booking *models.Booking) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Info("BookingMongoRepository.Insert called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	booking.ID = ""
	result, err := repo.Collection.InsertOne(ctx, booking)
	if err != nil {
		repo.Log.Error("BookingMongoRepository.Insert error inserting document",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}

	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		repo.Log.Error("BookingMongoRepository.Insert inserted id is not an ObjectID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return "", exceptions.ErrMongoDBNotObjectID(nil)
	}
	booking.ID = objectID.Hex()

	repo.Log.Info("BookingMongoRepository.Insert succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, booking.ID),
	)
	return booking.ID, nil
}

func (repo *BookingMongoRepository) DeleteByID(ctx context.Context, bookingID string) (bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Info("BookingMongoRepository.DeleteByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)

	objectID, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		// Not an id this collection could have issued.
		return false, nil
	}

	result, err := repo.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		repo.Log.Error("BookingMongoRepository.DeleteByID error deleting document",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return false, exceptions.ErrMongoDBDeleteDocument(err)
	}

	repo.Log.Info("BookingMongoRepository.DeleteByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
		zap.Bool(constvars.LoggingSuccessKey, result.DeletedCount > 0),
	)
	return result.DeletedCount > 0, nil
}
