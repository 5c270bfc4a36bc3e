package i

import (
	dmn "github.com/beka-birhanu/vinom-mazeview/domain"
	"github.com/google/uuid"
)

// SnapshotRepo defines the interface for saved maze persistence.
type SnapshotRepo interface {
	// Save inserts or updates a snapshot in the repository.
	Save(snapshot *dmn.Snapshot) error

	// ByID retrieves a snapshot by its unique ID.
	// Returns an error if the snapshot is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.Snapshot, error)
}
