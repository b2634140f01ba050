// Package storage provides the string key/value stores item containers are
// persisted to.
package storage

import "context"

const errKeyEmpty = "key cannot be empty"

//go:generate mockgen -destination=mock/mock_store.go -package=storagemock github.com/KirkDiggler/rpg-items/internal/storage Store

// Store is a string key/value store
type Store interface {
	// Get returns the value stored under key.
	// The boolean is false when nothing is stored there; that is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error
}
