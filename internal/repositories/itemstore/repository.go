// Package itemstore persists the items container under a single well-known key
package itemstore

//go:generate mockgen -destination=mock/mock_repository.go -package=itemstoremock github.com/KirkDiggler/rpg-items/internal/repositories/itemstore Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-items/internal/entities/items"
)

// StorageKey is the key the encoded container lives under
const StorageKey = "items"

// Repository defines the interface for items container persistence
type Repository interface {
	// Load reads and migrates the persisted container.
	// Returns Found=false with an empty container when nothing was saved yet.
	// Returns errors.MalformedEncoding / errors.UnsupportedSchemaVersion when
	// the stored text cannot be loaded
	// Returns errors.Internal or errors.Unavailable for storage failures
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Save encodes the container and replaces whatever was stored
	// Returns errors.Internal or errors.Unavailable for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}

// LoadInput defines the input for loading the container
type LoadInput struct{}

// LoadOutput defines the output for loading the container
type LoadOutput struct {
	Container items.Container
	// Found is false when nothing is persisted under StorageKey
	Found  bool
	Report items.LoadReport
}

// SaveInput defines the input for saving the container
type SaveInput struct {
	Container items.Container
}

// SaveOutput defines the output for saving the container
type SaveOutput struct {
	// Size is the length of the encoded container in bytes
	Size int
}
