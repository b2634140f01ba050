// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	storagemock "github.com/KirkDiggler/rpg-items/internal/storage/mock"
)

// ExpectStoreGet expects a single read of key returning value.
// An empty value means nothing is stored.
func ExpectStoreGet(ctx context.Context, store *storagemock.MockStore, key, value string) *gomock.Call {
	return store.EXPECT().
		Get(ctx, key).
		Return(value, value != "", nil)
}

// ExpectStoreSet expects a single write of key and hands the written value to
// capture when it is not nil
func ExpectStoreSet(ctx context.Context, store *storagemock.MockStore, key string, capture *string) *gomock.Call {
	return store.EXPECT().
		Set(ctx, key, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value string) error {
			if capture != nil {
				*capture = value
			}
			return nil
		})
}
