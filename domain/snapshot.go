// Package domain holds the persisted entities of the service.
package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-mazeview/codec"
	"github.com/google/uuid"
)

// Snapshot is a saved maze as stored in the database.
type Snapshot struct {
	ID        uuid.UUID `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Rows      int       `bson:"rows" json:"rows"`
	Cols      int       `bson:"cols" json:"cols"`
	Text      string    `bson:"text" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// SnapshotConfig holds parameters for creating a Snapshot.
type SnapshotConfig struct {
	ID        uuid.UUID
	Text      string
	CreatedAt time.Time
}

// NewSnapshot validates the text and creates a Snapshot named after its creation time.
func NewSnapshot(config SnapshotConfig) (*Snapshot, error) {
	if config.ID == uuid.Nil {
		return nil, errors.New("snapshot id is required")
	}

	m, err := codec.Decode(config.Text)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		ID:        config.ID,
		Name:      codec.FileName(config.CreatedAt),
		Rows:      m.Rows,
		Cols:      m.Cols,
		Text:      config.Text,
		CreatedAt: config.CreatedAt,
	}, nil
}
