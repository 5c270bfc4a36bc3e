package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/vinom-mazeview/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepo handles the persistence of saved mazes.
type SnapshotRepo struct {
	collection *mongo.Collection
}

// NewSnapshotRepo creates a new SnapshotRepo with the given MongoDB client, database name, and collection name.
func NewSnapshotRepo(client *mongo.Client, dbName, collectionName string) *SnapshotRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &SnapshotRepo{
		collection: collection,
	}
}

// Save inserts or updates a snapshot in the repository.
func (s *SnapshotRepo) Save(snapshot *dmn.Snapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	filter := bson.M{"_id": snapshot.ID}
	update := bson.M{
		"$set": bson.M{
			"name":      snapshot.Name,
			"rows":      snapshot.Rows,
			"cols":      snapshot.Cols,
			"text":      snapshot.Text,
			"createdAt": snapshot.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := s.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a snapshot by its ID.
// Returns ErrSnapshotNotFound if there is no such snapshot.
func (s *SnapshotRepo) ByID(id uuid.UUID) (*dmn.Snapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var snapshot dmn.Snapshot
	if err := s.collection.FindOne(ctx, filter).Decode(&snapshot); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSnapshotNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &snapshot, nil
}
