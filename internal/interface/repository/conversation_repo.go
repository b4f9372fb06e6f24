package repository

import (
	"context"
	"errors"
	"time"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/internal/domain/repository"
	"ecomovex-service/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const turnsCollection = "conversationTurns"

// MongoConversationRepository implements the ConversationRepository interface
type MongoConversationRepository struct {
	collection *mongo.Collection
	logger     logger.Logger
}

// NewMongoConversationRepository creates a new MongoDB conversation repository
// and ensures the turn index exists.
func NewMongoConversationRepository(db *mongo.Database, logger logger.Logger) repository.ConversationRepository {
	repo := &MongoConversationRepository{
		collection: db.Collection(turnsCollection),
		logger:     logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "conversationId", Value: 1},
			{Key: "turnIndex", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Error("Failed to create conversation turn index", "error", err)
	}

	return repo
}

// LoadLast returns up to k turns of a conversation in chronological order.
func (r *MongoConversationRepository) LoadLast(ctx context.Context, conversationID uint, k int) ([]entity.ConversationTurn, error) {
	if k <= 0 {
		return nil, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "turnIndex", Value: -1}}).
		SetLimit(int64(k))

	cursor, err := r.collection.Find(ctx, bson.M{"conversationId": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var turns []entity.ConversationTurn
	if err := cursor.All(ctx, &turns); err != nil {
		return nil, err
	}

	// The query sorts newest-first so the limit keeps the right window,
	// the caller wants oldest-first.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// Append stores a single conversation turn.
func (r *MongoConversationRepository) Append(ctx context.Context, turn *entity.ConversationTurn) error {
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, turn)
	return err
}

// NextTurnIndex returns the index the next turn of this conversation should
// use, starting at zero for a fresh conversation.
func (r *MongoConversationRepository) NextTurnIndex(ctx context.Context, conversationID uint) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "turnIndex", Value: -1}})

	var last entity.ConversationTurn
	err := r.collection.FindOne(ctx, bson.M{"conversationId": conversationID}, opts).Decode(&last)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}
	return last.TurnIndex + 1, nil
}
