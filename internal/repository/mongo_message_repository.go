package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"messageboard/internal/model"
)

type messageDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Text      string             `bson:"message"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type MongoMessageRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoMessageRepository(client *mongo.Client, database, collection string) *MongoMessageRepository {
	return &MongoMessageRepository{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

// EnsureIndexes creates the ordering index used by ListAll.
func (r *MongoMessageRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create messages index failed: %w", err)
	}
	return nil
}

func (r *MongoMessageRepository) ListAll(ctx context.Context) ([]model.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list messages failed: %w", err)
	}

	var docs []messageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode messages failed: %w", err)
	}
	return toMessages(docs), nil
}

// FindByID treats an id that is not a valid ObjectID like any other unknown id.
func (r *MongoMessageRepository) FindByID(ctx context.Context, id string) ([]model.Message, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return []model.Message{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.D{{Key: "_id", Value: oid}}, options.Find().SetLimit(1))
	if err != nil {
		return nil, fmt.Errorf("find message failed: %w", err)
	}

	var docs []messageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode message failed: %w", err)
	}
	return toMessages(docs), nil
}

func (r *MongoMessageRepository) Create(ctx context.Context, name, text string) (*model.Message, error) {
	doc := messageDocument{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Text:      text,
		CreatedAt: now(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("create message failed: %w", err)
	}
	message := doc.toModel()
	return &message, nil
}

func (r *MongoMessageRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping mongodb failed: %w", err)
	}
	return nil
}

func (r *MongoMessageRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

func (d messageDocument) toModel() model.Message {
	return model.Message{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Text:      d.Text,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func toMessages(docs []messageDocument) []model.Message {
	messages := make([]model.Message, 0, len(docs))
	for _, doc := range docs {
		messages = append(messages, doc.toModel())
	}
	return messages
}
