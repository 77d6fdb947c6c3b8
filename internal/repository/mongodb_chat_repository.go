package repository

import (
	"context"
	"errors"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const TranscriptsCollection = "chat_transcripts"

type MongoDBChatRepositoryImpl struct {
	db *mongo.Database
}

func CreateMongoDBChatRepository(db *mongo.Database) ChatRepository {
	return &MongoDBChatRepositoryImpl{db: db}
}

func (r *MongoDBChatRepositoryImpl) GetTranscript(ctx context.Context, sessionID string) (data domain.Transcript, err error) {
	filter := bson.D{{Key: "session_id", Value: sessionID}}

	err = r.db.Collection(TranscriptsCollection).FindOne(ctx, filter).Decode(&data)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return data, errs.ErrNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetTranscript").Msg("")
		return data, err
	}

	return data, nil
}

// AppendMessages creates the transcript on first use.
func (r *MongoDBChatRepositoryImpl) AppendMessages(ctx context.Context, sessionID string, userID string, messages ...domain.ChatMessage) (err error) {
	now := utils.NowUTC()

	onInsert := bson.D{{Key: "created_at", Value: now}}
	if userID != "" {
		onInsert = append(onInsert, bson.E{Key: "user_id", Value: userID})
	}

	filter := bson.D{{Key: "session_id", Value: sessionID}}
	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "messages", Value: bson.D{{Key: "$each", Value: messages}}}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: now}}},
		{Key: "$setOnInsert", Value: onInsert},
	}

	_, err = r.db.Collection(TranscriptsCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AppendMessages").Msg("")
		return
	}

	return nil
}
