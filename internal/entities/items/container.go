package items

import (
	"slices"

	"github.com/samber/lo"

	"github.com/KirkDiggler/rpg-items/internal/pkg/idgen"
)

// maxCreateAttempts bounds how often Create asks its generator for an unused id
// before falling back to a random UUID.
const maxCreateAttempts = 16

// Container maps item ids to items. It is a value: Set, Remove and Create
// return a new Container and never modify the receiver, so any Container a
// caller holds stays a stable snapshot. Unchanged entries are shared between
// snapshots; items going in and out are copied.
//
// The zero value is an empty container.
type Container struct {
	items map[ItemID]Item
}

// NewContainer returns an empty container
func NewContainer() Container {
	return Container{items: make(map[ItemID]Item)}
}

// Len returns the number of items
func (c Container) Len() int {
	return len(c.items)
}

// Has reports whether id is a key of the container
func (c Container) Has(id ItemID) bool {
	_, ok := c.items[id]
	return ok
}

// Get returns a copy of the item stored under id.
// The boolean is false when there is no such item.
func (c Container) Get(id ItemID) (Item, bool) {
	item, ok := c.items[id]
	if !ok {
		return Item{}, false
	}
	return item.Clone(), true
}

// Set upserts item under item.ItemID. The stored copy is stamped with
// CurrentVersion.
func (c Container) Set(item Item) Container {
	stored := item.Clone()
	stored.Version = CurrentVersion

	return Container{
		items: lo.Assign(c.items, map[ItemID]Item{stored.ItemID: stored}),
	}
}

// Remove drops the item stored under id. Removing an unknown id returns the
// receiver unchanged.
func (c Container) Remove(id ItemID) Container {
	if !c.Has(id) {
		return c
	}
	return Container{
		items: lo.OmitByKeys(c.items, []ItemID{id}),
	}
}

// Create inserts a default item under a fresh id and returns that id with the
// new container. gen may be nil, in which case random UUIDs are used.
func (c Container) Create(gen idgen.Generator) (ItemID, Container) {
	if gen == nil {
		gen = idgen.NewUUID("")
	}

	id := c.freshID(gen)
	return id, c.Set(NewItem(id))
}

func (c Container) freshID(gen idgen.Generator) ItemID {
	for i := 0; i < maxCreateAttempts; i++ {
		id := ItemID(gen.Generate())
		if id != "" && !c.Has(id) {
			return id
		}
	}

	fallback := idgen.NewUUID("")
	for {
		id := ItemID(fallback.Generate())
		if !c.Has(id) {
			return id
		}
	}
}

// IDs returns the container keys in ascending order
func (c Container) IDs() []ItemID {
	ids := lo.Keys(c.items)
	slices.Sort(ids)
	return ids
}

// All returns copies of every item ordered by id
func (c Container) All() []Item {
	return lo.Map(c.IDs(), func(id ItemID, _ int) Item {
		return c.items[id].Clone()
	})
}
