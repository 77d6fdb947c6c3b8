package repository

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoDBTransactionManager struct {
	db *mongo.Database
}

func CreateMongoDBTransactionManager(db *mongo.Database) TransactionManager {
	return &MongoDBTransactionManager{db: db}
}

// HandleTrx needs a replica set or sharded cluster. WithTransaction retries fn on
// transient transaction errors, so fn must be safe to run more than once.
func (r *MongoDBTransactionManager) HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "HandleTrx").Msg("")
		return err
	}

	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})

	return err
}
