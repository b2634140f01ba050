package items_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"

	"github.com/KirkDiggler/rpg-items/internal/entities/items"
	"github.com/KirkDiggler/rpg-items/internal/errors"
	"github.com/KirkDiggler/rpg-items/internal/pkg/idgen"
)

type CodecTestSuite struct {
	suite.Suite
}

func TestCodecSuite(t *testing.T) {
	suite.Run(t, new(CodecTestSuite))
}

func (s *CodecTestSuite) TestEmptyCreateSaveLoad() {
	id, c := items.NewContainer().Create(idgen.NewSequential("item"))

	data, err := items.Save(c)
	s.Require().NoError(err)
	s.Contains(data, `"dataType":"Map"`)

	value := gjson.Get(data, "value")
	s.Require().True(value.IsArray())
	s.Len(value.Array(), 1)
	s.Equal(id.String(), gjson.Get(data, "value.0.0").String())
	s.Equal(int64(1), gjson.Get(data, "value.0.1.Version").Int())

	loaded, err := items.Load(data)
	s.Require().NoError(err)
	s.Equal(c, loaded)
}

func (s *CodecTestSuite) TestRoundTripKeepsOptionalPresence() {
	url := ""
	c := items.NewContainer().
		Set(items.Item{ItemID: "plain"}).
		Set(items.Item{
			ItemID:      "bait",
			Name:        "Worm",
			AsBait:      items.LootOf(),
			Description: "wriggles",
			ImageURL:    &url,
		}).
		Set(items.Item{
			ItemID:  "chest",
			Name:    "Old Chest",
			AsBait:  items.LootOf("bait"),
			AsChest: items.LootOf("bait", "bait", "missing"),
		})
	c = c.Remove("nothing-here")

	data, err := items.Save(c)
	s.Require().NoError(err)

	s.False(gjson.Get(data, `value.#(0=="plain").1.AsBait`).Exists())
	s.True(gjson.Get(data, `value.#(0=="bait").1.AsBait`).IsArray())
	s.True(gjson.Get(data, `value.#(0=="bait").1.ImageUrl`).Exists())

	loaded, err := items.Load(data)
	s.Require().NoError(err)
	s.Equal(c, loaded)

	bait, ok := loaded.Get("bait")
	s.Require().True(ok)
	s.Require().NotNil(bait.AsBait)
	s.Empty(*bait.AsBait)
	s.Nil(bait.AsChest)
	s.Require().NotNil(bait.ImageURL)
	s.Equal("", *bait.ImageURL)
}

func (s *CodecTestSuite) TestSaveIsDeterministic() {
	c := items.NewContainer().
		Set(items.NewItem("b")).
		Set(items.NewItem("a"))

	first, err := items.Save(c)
	s.Require().NoError(err)
	second, err := items.Save(c)
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Equal(`{"dataType":"Map","value":[`+
		`["a",{"Version":1,"ItemId":"a","Name":"","Description":""}],`+
		`["b",{"Version":1,"ItemId":"b","Name":"","Description":""}]]}`, first)
}

func (s *CodecTestSuite) TestSaveEmpty() {
	data, err := items.Save(items.NewContainer())
	s.Require().NoError(err)
	s.Equal(`{"dataType":"Map","value":[]}`, data)

	loaded, err := items.Load(data)
	s.Require().NoError(err)
	s.Equal(0, loaded.Len())
}

func (s *CodecTestSuite) TestMigrateV0() {
	data := `{"dataType":"Map","value":[["old",{"Version":0,"ItemId":"old","Name":"Trap",` +
		`"Loot":["a","b"],"Description":"snaps","ImageUrl":"trap.png"}]]}`

	loaded, report, err := items.LoadWithReport(data)
	s.Require().NoError(err)

	item, ok := loaded.Get("old")
	s.Require().True(ok)
	s.Equal(items.VersionV1, item.Version)
	s.Equal("Trap", item.Name)
	s.Equal("snaps", item.Description)
	s.Require().NotNil(item.ImageURL)
	s.Equal("trap.png", *item.ImageURL)
	s.Require().NotNil(item.AsBait)
	s.Equal(items.Loot{"a", "b"}, *item.AsBait)
	s.Nil(item.AsChest)

	s.Equal(1, report.Total)
	s.Equal(1, report.Migrated[items.VersionV0])
	s.Equal(1, report.MigratedCount())
}

func (s *CodecTestSuite) TestMigrateV0WithoutLootOrImage() {
	data := `{"dataType":"Map","value":[["old",{"Version":0,"ItemId":"old","Name":"","Description":""}]]}`

	loaded, err := items.Load(data)
	s.Require().NoError(err)

	item, _ := loaded.Get("old")
	s.Require().NotNil(item.AsBait, "legacy items always become bait")
	s.Empty(*item.AsBait)
	s.Nil(item.ImageURL)
}

func (s *CodecTestSuite) TestUntaggedRecordIsLegacy() {
	data := `{"dataType":"Map","value":[["old",{"ItemId":"old","Name":"Net","Loot":["fish"]}]]}`

	loaded, report, err := items.LoadWithReport(data)
	s.Require().NoError(err)

	item, _ := loaded.Get("old")
	s.Equal(items.VersionV1, item.Version)
	s.Equal(items.Loot{"fish"}, *item.AsBait)
	s.Equal(1, report.Migrated[items.VersionV0])
}

func (s *CodecTestSuite) TestMixedVersions() {
	data := `{"dataType":"Map","value":[` +
		`["v0",{"Version":0,"ItemId":"v0","Name":"Old","Loot":["v1"],"Description":""}],` +
		`["v1",{"Version":1,"ItemId":"v1","Name":"New","AsChest":["v0"],"Description":"d"}]]}`

	loaded, report, err := items.LoadWithReport(data)
	s.Require().NoError(err)
	s.Equal(2, loaded.Len())

	old, _ := loaded.Get("v0")
	s.Equal(items.Loot{"v1"}, *old.AsBait)
	s.Nil(old.AsChest)

	current, _ := loaded.Get("v1")
	s.Nil(current.AsBait)
	s.Equal(items.Loot{"v0"}, *current.AsChest)
	s.Equal("d", current.Description)

	s.Equal(2, report.Total)
	s.Equal(1, report.MigratedCount())

	resaved, err := items.Save(loaded)
	s.Require().NoError(err)
	s.False(gjson.Get(resaved, `value.#(0=="v0").1.Loot`).Exists(), "V0 fields are never written")
	s.Equal(int64(1), gjson.Get(resaved, `value.#(0=="v0").1.Version`).Int())
}

func (s *CodecTestSuite) TestUnsupportedVersions() {
	testCases := []struct {
		name    string
		version string
	}{
		{name: "future version", version: "2"},
		{name: "negative version", version: "-1"},
		{name: "fractional version", version: "1.5"},
		{name: "string version", version: `"1"`},
		{name: "null version", version: "null"},
		{name: "wraps to zero past int64", version: "18446744073709551616"},
		{name: "wraps to one past int64", version: "18446744073709551617"},
		{name: "past float precision", version: "9007199254740993"},
		{name: "integral float one", version: "1.0"},
		{name: "exponent one", version: "1e0"},
		{name: "integral float zero", version: "0.0"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			data := `{"dataType":"Map","value":[` +
				`["ok",{"Version":1,"ItemId":"ok","Name":"","Description":""}],` +
				`["bad",{"Version":` + tc.version + `,"ItemId":"bad","Name":"","Description":""}]]}`

			loaded, err := items.Load(data)

			s.Require().Error(err)
			s.True(errors.IsUnsupportedSchemaVersion(err), "got %v", err)
			s.Equal("bad", errors.GetMeta(err)["item_id"])
			s.Equal(0, loaded.Len(), "no partial container")
		})
	}
}

func (s *CodecTestSuite) TestMalformed() {
	testCases := []struct {
		name string
		data string
	}{
		{name: "empty string", data: ""},
		{name: "not json", data: "items"},
		{name: "plain object", data: `{"a":{"ItemId":"a"}}`},
		{name: "wrong data type", data: `{"dataType":"Set","value":[]}`},
		{name: "missing value", data: `{"dataType":"Map"}`},
		{name: "value not a list", data: `{"dataType":"Map","value":{}}`},
		{name: "entry not a pair", data: `{"dataType":"Map","value":["a"]}`},
		{name: "entry too short", data: `{"dataType":"Map","value":[["a"]]}`},
		{name: "non string key", data: `{"dataType":"Map","value":[[1,{"Version":1,"ItemId":"1"}]]}`},
		{name: "record not an object", data: `{"dataType":"Map","value":[["a",[]]]}`},
		{name: "key mismatch", data: `{"dataType":"Map","value":[["a",{"Version":1,"ItemId":"b"}]]}`},
		{name: "bad v1 field", data: `{"dataType":"Map","value":[["a",{"Version":1,"ItemId":"a","Name":3}]]}`},
		{name: "bad v0 loot", data: `{"dataType":"Map","value":[["a",{"Version":0,"ItemId":"a","Loot":"x"}]]}`},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			loaded, err := items.Load(tc.data)

			s.Require().Error(err)
			s.True(errors.IsMalformedEncoding(err), "got %v", err)
			s.Equal(0, loaded.Len())
		})
	}
}

func (s *CodecTestSuite) TestLaterDuplicateKeyWins() {
	data := `{"dataType":"Map","value":[` +
		`["a",{"Version":1,"ItemId":"a","Name":"first","Description":""}],` +
		`["a",{"Version":1,"ItemId":"a","Name":"second","Description":""}]]}`

	loaded, err := items.Load(data)
	s.Require().NoError(err)
	s.Equal(1, loaded.Len())

	item, _ := loaded.Get("a")
	s.Equal("second", item.Name)
}

func (s *CodecTestSuite) TestReportCountsDistinctItems() {
	data := `{"dataType":"Map","value":[` +
		`["a",{"Version":0,"ItemId":"a","Loot":[]}],` +
		`["a",{"Version":1,"ItemId":"a","Name":"","Description":""}],` +
		`["b",{"Version":1,"ItemId":"b","Name":"","Description":""}]]}`

	loaded, report, err := items.LoadWithReport(data)
	s.Require().NoError(err)

	s.Equal(2, loaded.Len())
	s.Equal(loaded.Len(), report.Total)
}
