package testutils

import (
	"github.com/KirkDiggler/rpg-items/internal/entities/items"
)

const (
	// LegacyEnvelope holds one V0 record whose loot becomes bait on load
	LegacyEnvelope = `{"dataType":"Map","value":[["trap",` +
		`{"Version":0,"ItemId":"trap","Name":"Snare","Loot":["rabbit","rabbit"],"Description":"","ImageUrl":"snare.png"}]]}`

	// MixedEnvelope holds one V0 and one V1 record
	MixedEnvelope = `{"dataType":"Map","value":[` +
		`["trap",{"Version":0,"ItemId":"trap","Name":"Snare","Loot":["rabbit"],"Description":""}],` +
		`["chest",{"Version":1,"ItemId":"chest","Name":"Chest","AsChest":["trap"],"Description":"oak"}]]}`

	// FutureEnvelope holds a record written by a newer schema
	FutureEnvelope = `{"dataType":"Map","value":[["x",{"Version":9,"ItemId":"x"}]]}`
)

// CreateTestItem creates a named item with both loot roles
func CreateTestItem(id items.ItemID) items.Item {
	url := "https://img.example/" + id.String() + ".png"
	return items.Item{
		Version:     items.CurrentVersion,
		ItemID:      id,
		Name:        "Test " + id.String(),
		AsBait:      items.LootOf("worm"),
		AsChest:     items.LootOf("coin", "coin", "gem"),
		Description: "fixture item",
		ImageURL:    &url,
	}
}

// CreateTestContainer creates a container holding a test item per id
func CreateTestContainer(ids ...items.ItemID) items.Container {
	c := items.NewContainer()
	for _, id := range ids {
		c = c.Set(CreateTestItem(id))
	}
	return c
}
