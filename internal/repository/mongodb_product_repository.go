package repository

import (
	"context"
	"errors"
	"regexp"
	"sort"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	pkgdto "github.com/alimikegami/point-of-sales/storefront-service/pkg/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ProductsCollection = "products"

type MongoDBProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateMongoDBProductRepository(db *mongo.Database) ProductRepository {
	return &MongoDBProductRepositoryImpl{db: db}
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}

	result, err := r.db.Collection(ProductsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), err
}

func (r *MongoDBProductRepositoryImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return product, errs.ErrProductNotFound
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	err = r.db.Collection(ProductsCollection).FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, errs.ErrProductNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return product, err
	}

	return product, nil
}

func caseInsensitive(pattern string) primitive.Regex {
	return primitive.Regex{Pattern: pattern, Options: "i"}
}

// productFilter matches brand exactly (ignoring case) and q as a substring of
// name, brand or description.
func productFilter(filter pkgdto.Filter) bson.D {
	query := bson.D{}

	if filter.Brand != "" {
		query = append(query, bson.E{Key: "brand", Value: caseInsensitive("^" + regexp.QuoteMeta(filter.Brand) + "$")})
	}

	if filter.Q != "" {
		term := caseInsensitive(regexp.QuoteMeta(filter.Q))
		query = append(query, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: term}},
			bson.D{{Key: "brand", Value: term}},
			bson.D{{Key: "description", Value: term}},
		}})
	}

	return query
}

func (r *MongoDBProductRepositoryImpl) GetProducts(ctx context.Context, filter pkgdto.Filter) (data []domain.Product, err error) {
	opts := options.Find().SetSort(newestFirst)

	if filter.Limit != 0 && filter.Page != 0 {
		opts = opts.SetSkip(int64(filter.Offset())).SetLimit(int64(filter.Limit))
	}

	cursor, err := r.db.Collection(ProductsCollection).Find(ctx, productFilter(filter), opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	data = []domain.Product{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) CountProducts(ctx context.Context, filter pkgdto.Filter) (count int64, err error) {
	count, err = r.db.Collection(ProductsCollection).CountDocuments(ctx, productFilter(filter))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CountProducts").Msg("")
		return 0, err
	}

	return
}

func (r *MongoDBProductRepositoryImpl) GetBrands(ctx context.Context) (brands []string, err error) {
	filter := bson.D{{Key: "brand", Value: bson.D{{Key: "$ne", Value: ""}}}}

	values, err := r.db.Collection(ProductsCollection).Distinct(ctx, "brand", filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetBrands").Msg("")
		return nil, err
	}

	brands = make([]string, 0, len(values))
	for _, v := range values {
		if brand, ok := v.(string); ok {
			brands = append(brands, brand)
		}
	}
	sort.Strings(brands)

	return brands, nil
}

func (r *MongoDBProductRepositoryImpl) UpdateProduct(ctx context.Context, id string, data domain.ProductUpdate) (product domain.Product, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return product, errs.ErrProductNotFound
	}

	fields := bson.D{{Key: "updated_at", Value: data.UpdatedAt}}
	if data.Name != nil {
		fields = append(fields, bson.E{Key: "name", Value: *data.Name})
	}
	if data.Brand != nil {
		fields = append(fields, bson.E{Key: "brand", Value: *data.Brand})
	}
	if data.Description != nil {
		fields = append(fields, bson.E{Key: "description", Value: *data.Description})
	}
	if data.Price != nil {
		fields = append(fields, bson.E{Key: "price", Value: *data.Price})
	}
	if data.Image != nil {
		fields = append(fields, bson.E{Key: "image", Value: *data.Image})
	}
	if data.Images != nil {
		fields = append(fields, bson.E{Key: "images", Value: data.Images})
	}
	if data.Stock != nil {
		fields = append(fields, bson.E{Key: "stock", Value: *data.Stock})
	}

	filter := bson.D{{Key: "_id", Value: productID}}
	update := bson.D{{Key: "$set", Value: fields}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err = r.db.Collection(ProductsCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, errs.ErrProductNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("Failed to update product")
		return product, err
	}

	return product, nil
}

func (r *MongoDBProductRepositoryImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrProductNotFound
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	result, err := r.db.Collection(ProductsCollection).DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrProductNotFound
	}

	return nil
}
