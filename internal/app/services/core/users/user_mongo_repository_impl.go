package users

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
)

type UserMongoRepository struct {
	Collection *mongo.Collection
}

func NewUserMongoRepository(db *mongo.Client, dbName string) contracts.UserRepository {
	return &UserMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionUsers),
	}
}

func (repo *UserMongoRepository) Insert(ctx context.Context, userModel *models.User) (string, error) {
	userModel.ID = ""
	result, err := repo.Collection.InsertOne(ctx, userModel)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrEmailAlreadyExist(err)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	userModel.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return userModel.ID, nil
}

func (repo *UserMongoRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := repo.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &user, nil
}

// EnsureUserIndexes adds the unique email index the duplicate check relies on.
func EnsureUserIndexes(ctx context.Context, db *mongo.Client, dbName string) error {
	_, err := db.Database(dbName).Collection(constvars.MongoCollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}
