// Package items holds the item data model, the copy-on-write items container
// and its versioned persistence format.
package items

// ItemID identifies an item. It is the container key and is never reused.
type ItemID string

// String returns the raw identifier
func (id ItemID) String() string {
	return string(id)
}

// Loot is an ordered list of referenced items. Duplicates and ids that are
// not in the container are allowed.
type Loot []ItemID

// Clone returns an independent copy of the loot list
func (l Loot) Clone() Loot {
	if l == nil {
		return nil
	}
	out := make(Loot, len(l))
	copy(out, l)
	return out
}

// Version is the schema tag stored with every item record
type Version int

const (
	// VersionV0 records carry a single undifferentiated Loot list
	VersionV0 Version = 0
	// VersionV1 records split loot into the bait and chest roles
	VersionV1 Version = 1

	// CurrentVersion is written for every created, updated or migrated item
	CurrentVersion = VersionV1
)

// Item is the current (V1) item record.
// Nil AsBait, AsChest and ImageURL mean the value is absent, which is not the
// same as an empty list or an empty string.
type Item struct {
	Version     Version `json:"Version"`
	ItemID      ItemID  `json:"ItemId"`
	Name        string  `json:"Name"`
	AsBait      *Loot   `json:"AsBait,omitempty"`
	AsChest     *Loot   `json:"AsChest,omitempty"`
	Description string  `json:"Description"`
	ImageURL    *string `json:"ImageUrl,omitempty"`
}

// NewItem builds the default item stored by Create
func NewItem(id ItemID) Item {
	return Item{
		Version: CurrentVersion,
		ItemID:  id,
	}
}

// Clone returns a deep copy so callers cannot reach into container state
func (i Item) Clone() Item {
	out := i
	out.AsBait = cloneLoot(i.AsBait)
	out.AsChest = cloneLoot(i.AsChest)
	if i.ImageURL != nil {
		url := *i.ImageURL
		out.ImageURL = &url
	}
	return out
}

// IsBait reports whether the item has the bait loot role
func (i Item) IsBait() bool {
	return i.AsBait != nil
}

// IsChest reports whether the item has the chest loot role
func (i Item) IsChest() bool {
	return i.AsChest != nil
}

func cloneLoot(l *Loot) *Loot {
	if l == nil {
		return nil
	}
	c := l.Clone()
	if c == nil {
		c = Loot{}
	}
	return &c
}

// LootOf wraps ids as a present loot slot
func LootOf(ids ...ItemID) *Loot {
	l := Loot(ids)
	if l == nil {
		l = Loot{}
	}
	return &l
}

// itemV0 is the legacy record shape. It is only ever decoded.
type itemV0 struct {
	ItemID      ItemID  `json:"ItemId"`
	Name        string  `json:"Name"`
	Loot        Loot    `json:"Loot"`
	Description string  `json:"Description"`
	ImageURL    *string `json:"ImageUrl,omitempty"`
}

// upgrade moves the legacy loot list into the bait slot. Legacy items never
// become chests.
func (old itemV0) upgrade() Item {
	bait := old.Loot
	if bait == nil {
		bait = Loot{}
	}
	return Item{
		Version:     VersionV1,
		ItemID:      old.ItemID,
		Name:        old.Name,
		AsBait:      &bait,
		Description: old.Description,
		ImageURL:    old.ImageURL,
	}
}
