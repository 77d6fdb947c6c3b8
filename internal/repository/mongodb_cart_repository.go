package repository

import (
	"context"
	"errors"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const CartsCollection = "carts"

type MongoDBCartRepositoryImpl struct {
	db *mongo.Database
}

func CreateMongoDBCartRepository(db *mongo.Database) CartRepository {
	return &MongoDBCartRepositoryImpl{db: db}
}

func (r *MongoDBCartRepositoryImpl) GetCartByUserID(ctx context.Context, userID string) (data domain.Cart, err error) {
	filter := bson.D{{Key: "user_id", Value: userID}}

	err = r.db.Collection(CartsCollection).FindOne(ctx, filter).Decode(&data)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return data, errs.ErrCartNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetCartByUserID").Msg("")
		return data, err
	}

	if data.Items == nil {
		data.Items = []domain.CartItem{}
	}

	return data, nil
}

func (r *MongoDBCartRepositoryImpl) InsertCart(ctx context.Context, data domain.Cart) (err error) {
	_, err = r.db.Collection(CartsCollection).InsertOne(ctx, data)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.ErrConflict
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "InsertCart").Msg("")
		return err
	}

	return nil
}

func (r *MongoDBCartRepositoryImpl) UpdateCart(ctx context.Context, data domain.Cart, expectedVersion int64) (err error) {
	filter := bson.D{
		{Key: "user_id", Value: data.UserID},
		{Key: "version", Value: expectedVersion},
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "items", Value: data.Items},
		{Key: "total_quantity", Value: data.TotalQuantity},
		{Key: "total_price", Value: data.TotalPrice},
		{Key: "version", Value: data.Version},
		{Key: "updated_at", Value: data.UpdatedAt},
	}}}

	result, err := r.db.Collection(CartsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateCart").Msg("Failed to update cart")
		return
	}

	if result.MatchedCount == 0 {
		log.Ctx(ctx).Warn().Str("component", "UpdateCart").Str("user_id", data.UserID).Int64("expected_version", expectedVersion).Msg("stale cart version")
		return errs.ErrCartWriteConflict
	}

	return nil
}
