package repository

import (
	"context"
	"errors"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	pkgdto "github.com/alimikegami/point-of-sales/storefront-service/pkg/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const OrdersCollection = "orders"

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

type MongoDBOrderRepositoryImpl struct {
	db *mongo.Database
}

func CreateMongoDBOrderRepository(db *mongo.Database) OrderRepository {
	return &MongoDBOrderRepositoryImpl{db: db}
}

func (r *MongoDBOrderRepositoryImpl) AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error) {
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}

	result, err := r.db.Collection(OrdersCollection).InsertOne(ctx, data)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return id, errs.ErrConflict
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "AddOrder").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBOrderRepositoryImpl) findOne(ctx context.Context, component string, filter bson.D) (data domain.Order, err error) {
	err = r.db.Collection(OrdersCollection).FindOne(ctx, filter).Decode(&data)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return data, errs.ErrOrderNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return data, err
	}

	return data, nil
}

func (r *MongoDBOrderRepositoryImpl) GetOrderByID(ctx context.Context, id string) (data domain.Order, err error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return data, errs.ErrOrderNotFound
	}

	return r.findOne(ctx, "GetOrderByID", bson.D{{Key: "_id", Value: orderID}})
}

func (r *MongoDBOrderRepositoryImpl) GetOrderByIdempotencyKey(ctx context.Context, userID string, key string) (data domain.Order, err error) {
	filter := bson.D{
		{Key: "user_id", Value: userID},
		{Key: "idempotency_key", Value: key},
	}

	return r.findOne(ctx, "GetOrderByIdempotencyKey", filter)
}

func (r *MongoDBOrderRepositoryImpl) find(ctx context.Context, component string, filter bson.D, opts *options.FindOptions) (data []domain.Order, err error) {
	cursor, err := r.db.Collection(OrdersCollection).Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	data = []domain.Order{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return nil, err
	}

	return data, nil
}

func (r *MongoDBOrderRepositoryImpl) GetOrdersByUserID(ctx context.Context, userID string) (data []domain.Order, err error) {
	filter := bson.D{{Key: "user_id", Value: userID}}

	return r.find(ctx, "GetOrdersByUserID", filter, options.Find().SetSort(newestFirst))
}

func orderFilter(filter pkgdto.Filter) bson.D {
	query := bson.D{}
	if filter.Status != "" {
		query = append(query, bson.E{Key: "status", Value: filter.Status})
	}
	return query
}

func (r *MongoDBOrderRepositoryImpl) GetOrders(ctx context.Context, filter pkgdto.Filter) (data []domain.Order, err error) {
	opts := options.Find().SetSort(newestFirst)

	if filter.Limit != 0 && filter.Page != 0 {
		opts = opts.SetSkip(int64(filter.Offset())).SetLimit(int64(filter.Limit))
	}

	return r.find(ctx, "GetOrders", orderFilter(filter), opts)
}

func (r *MongoDBOrderRepositoryImpl) CountOrders(ctx context.Context, filter pkgdto.Filter) (count int64, err error) {
	count, err = r.db.Collection(OrdersCollection).CountDocuments(ctx, orderFilter(filter))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CountOrders").Msg("")
		return 0, err
	}

	return
}

func (r *MongoDBOrderRepositoryImpl) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (data domain.Order, err error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return data, errs.ErrOrderNotFound
	}

	filter := bson.D{{Key: "_id", Value: orderID}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: status},
		{Key: "updated_at", Value: utils.NowUTC()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err = r.db.Collection(OrdersCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&data)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return data, errs.ErrOrderNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateOrderStatus").Msg("Failed to update order")
		return data, err
	}

	return data, nil
}
