package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.mongodb.org/mongo-driver/mongo/options"

	"messageboard/internal/model"
)

func Test_Mongo_FindByID_Malformed_Id_Is_Empty(t *testing.T) {
	req := require.New(t)
	// Connect is lazy; no server is contacted for a malformed id.
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	req.NoError(err)
	repo := NewMongoMessageRepository(client, "messageboard", "messages")
	t.Cleanup(func() { _ = repo.Close() })

	found, err := repo.FindByID(context.Background(), "definitely-not-an-object-id")
	req.NoError(err)
	req.NotNil(found)
	req.Empty(found)
}

func Test_Mongo_Document_To_Model(t *testing.T) {
	req := require.New(t)
	oid := primitive.NewObjectID()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	messages := toMessages([]messageDocument{{ID: oid, Name: "Ada", Text: "hello", CreatedAt: at}})
	req.Len(messages, 1)
	req.Equal(oid.Hex(), messages[0].ID)
	req.Equal("Ada", messages[0].Name)
	req.Equal("hello", messages[0].Text)
	req.Equal(time.UTC, messages[0].CreatedAt.Location())
	req.True(at.Equal(messages[0].CreatedAt))

	req.NotNil(toMessages(nil))
	req.Empty(toMessages(nil))
}

func mockRepository(mt *mtest.T) *MongoMessageRepository {
	return NewMongoMessageRepository(mt.Client, mt.DB.Name(), mt.Coll.Name())
}

func messageDoc(oid primitive.ObjectID, name, text string, at time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: oid},
		{Key: "name", Value: name},
		{Key: "message", Value: text},
		{Key: "createdAt", Value: primitive.NewDateTimeFromTime(at)},
	}
}

func Test_Mongo_Create_Then_FindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("round trip", func(mt *mtest.T) {
		req := require.New(mt)
		repo := mockRepository(mt)
		ctx := context.Background()

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		created, err := repo.Create(ctx, "Ada", "hello")
		req.NoError(err)
		req.Equal("Ada", created.Name)
		req.Equal("hello", created.Text)
		req.Equal(time.UTC, created.CreatedAt.Location())
		req.Zero(created.CreatedAt.Nanosecond() % int(time.Millisecond))

		insert := mt.GetStartedEvent()
		req.Equal("insert", insert.CommandName)
		doc := insert.Command.Lookup("documents", "0")
		req.Equal(created.ID, doc.Document().Lookup("_id").ObjectID().Hex())
		req.Equal("Ada", doc.Document().Lookup("name").StringValue())
		req.Equal("hello", doc.Document().Lookup("message").StringValue())
		req.True(created.CreatedAt.Equal(doc.Document().Lookup("createdAt").Time()))

		oid, err := primitive.ObjectIDFromHex(created.ID)
		req.NoError(err)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			messageDoc(oid, created.Name, created.Text, created.CreatedAt)))

		found, err := repo.FindByID(ctx, created.ID)
		req.NoError(err)
		req.Equal([]model.Message{*created}, found)

		find := mt.GetStartedEvent()
		req.Equal("find", find.CommandName)
		req.Equal(oid, find.Command.Lookup("filter", "_id").ObjectID())
	})

	mt.Run("unknown id", func(mt *mtest.T) {
		req := require.New(mt)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		found, err := mockRepository(mt).FindByID(context.Background(), primitive.NewObjectID().Hex())
		req.NoError(err)
		req.NotNil(found)
		req.Empty(found)
	})
}

func Test_Mongo_ListAll(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("empty collection", func(mt *mtest.T) {
		req := require.New(mt)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		messages, err := mockRepository(mt).ListAll(context.Background())
		req.NoError(err)
		req.NotNil(messages)
		req.Empty(messages)

		var sort bson.D
		req.NoError(mt.GetStartedEvent().Command.Lookup("sort").Unmarshal(&sort))
		req.Equal(bson.D{{Key: "createdAt", Value: int32(1)}, {Key: "_id", Value: int32(1)}}, sort)
	})

	mt.Run("every document across batches", func(mt *mtest.T) {
		req := require.New(mt)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
		ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()}

		mt.AddMockResponses(
			mtest.CreateCursorResponse(42, ns, mtest.FirstBatch,
				messageDoc(ids[0], "Ada", "one", base),
				messageDoc(ids[1], "Grace", "two", base.Add(time.Second))),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch,
				messageDoc(ids[2], "Linus", "three", base.Add(2*time.Second))),
		)

		messages, err := mockRepository(mt).ListAll(context.Background())
		req.NoError(err)
		req.Len(messages, 3)
		for i, m := range messages {
			req.Equal(ids[i].Hex(), m.ID)
			req.True(base.Add(time.Duration(i) * time.Second).Equal(m.CreatedAt))
		}
		req.Equal("Grace", messages[1].Name)
		req.Equal("three", messages[2].Text)
	})

	mt.Run("find failure", func(mt *mtest.T) {
		req := require.New(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad sort",
		}))

		messages, err := mockRepository(mt).ListAll(context.Background())
		req.Error(err)
		req.Nil(messages)
		req.Contains(err.Error(), "list messages failed")

		var cmdErr mongo.CommandError
		req.ErrorAs(err, &cmdErr)
		req.Equal(int32(2), cmdErr.Code)
	})
}
