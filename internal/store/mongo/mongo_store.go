package mongo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fitcoach/coach-app/internal/domain"
	"fitcoach/coach-app/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	stateCollectionName = "state"
	// stateDocID is the fixed key the whole application state lives under.
	// There is exactly one state document per database.
	stateDocID = "fitcoach_state"

	defaultTimeout = 10 * time.Second
)

// stateDocument wraps the state so it sits under the fixed _id.
type stateDocument struct {
	ID    string           `bson:"_id"`
	State *domain.AppState `bson:"state"`
}

// mongoStateStore implements store.StateStore using a single replace-upserted
// document in MongoDB.
type mongoStateStore struct {
	collection *mongo.Collection
}

// NewMongoStateStore creates a state store on the given database.
func NewMongoStateStore(db *mongo.Database) store.StateStore {
	return &mongoStateStore{
		collection: db.Collection(stateCollectionName),
	}
}

// Load fetches the single state document. A missing document or one that no
// longer decodes both report store.ErrNoState so startup falls open to a
// fresh state instead of crashing.
func (s *mongoStateStore) Load(ctx context.Context) (*domain.AppState, error) {
	filter := bson.M{"_id": stateDocID}

	raw, err := s.collection.FindOne(ctx, filter).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNoState
		}
		return nil, err
	}

	var doc stateDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		slog.Warn("state document is undecodable, treating as no prior state", "error", err)
		return nil, store.ErrNoState
	}
	if doc.State == nil {
		return nil, store.ErrNoState
	}
	return doc.State, nil
}

// Save overwrites the state document (upsert so the first save creates it).
func (s *mongoStateStore) Save(ctx context.Context, state *domain.AppState) error {
	filter := bson.M{"_id": stateDocID}
	doc := stateDocument{ID: stateDocID, State: state}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, filter, doc, opts); err != nil {
		return store.ErrSaveFailed
	}
	return nil
}

// ConnectDB establishes a connection to MongoDB using the provided URI and
// verifies it with a ping.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}
