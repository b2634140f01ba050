package item

import (
	"github.com/KirkDiggler/rpg-items/internal/entities/items"
)

// CreateItemInput defines the request for creating an item (POST /items).
// Every field is optional; omitted fields keep the default item values.
type CreateItemInput struct {
	Name        string
	Description string
	ImageURL    *string
	AsBait      *items.Loot
	AsChest     *items.Loot
}

// CreateItemOutput defines the response for creating an item
type CreateItemOutput struct {
	Item items.Item
}

// GetItemInput defines the request for fetching an item (GET /items/:id)
type GetItemInput struct {
	ItemID items.ItemID
}

// GetItemOutput defines the response for fetching an item
type GetItemOutput struct {
	Item items.Item
}

// ListItemsInput defines the request for listing items (GET /items)
type ListItemsInput struct{}

// ListItemsOutput defines the response for listing items, ordered by id
type ListItemsOutput struct {
	Items []items.Item
}

// UpdateItemInput defines the request for upserting an item (POST /items/:id)
type UpdateItemInput struct {
	Item items.Item
}

// UpdateItemOutput defines the response for upserting an item
type UpdateItemOutput struct {
	Item items.Item
	// Created is true when no item with this id existed before
	Created bool
}

// DeleteItemInput defines the request for deleting an item (DELETE /items/:id)
type DeleteItemInput struct {
	ItemID items.ItemID
}

// DeleteItemOutput defines the response for deleting an item
type DeleteItemOutput struct {
	// Deleted is false when the item did not exist
	Deleted bool
}

// ExportItemsInput defines the request for exporting the encoded container
type ExportItemsInput struct{}

// ExportItemsOutput carries the container in its persisted text form
type ExportItemsOutput struct {
	Data  string
	Count int
}

// ImportItemsInput defines the request for replacing the container with
// persisted text, possibly written by an older schema
type ImportItemsInput struct {
	Data string
}

// ImportItemsOutput defines the response for an import
type ImportItemsOutput struct {
	Count    int
	Migrated int
}

// CheckItemsInput defines the request for inspecting the persisted container
type CheckItemsInput struct{}

// CheckItemsOutput summarizes the persisted container
type CheckItemsOutput struct {
	// Found is false when nothing has been persisted yet
	Found bool
	Total int
	// Pending counts records stored below the current version, keyed by
	// the version they were stored with
	Pending map[items.Version]int
}
