package items

import (
	"strconv"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/KirkDiggler/rpg-items/internal/errors"
)

// MapDataType tags the envelope wrapping an encoded container
const MapDataType = "Map"

// envelope is the persisted form of a Container:
//
//	{"dataType":"Map","value":[["<id>",{...item...}], ...]}
type envelope struct {
	DataType string            `json:"dataType"`
	Value    []json.RawMessage `json:"value"`
}

// LoadReport describes what Load had to do to bring records up to date
type LoadReport struct {
	// Total is the number of distinct items loaded; a repeated key counts once
	Total int
	// Migrated counts upgraded records by the version they were stored with
	Migrated map[Version]int
}

// MigratedCount returns how many records were not stored at CurrentVersion
func (r LoadReport) MigratedCount() int {
	n := 0
	for _, count := range r.Migrated {
		n += count
	}
	return n
}

// Save encodes the container as a tagged envelope. Entries are written in
// ascending id order so equal containers encode identically.
func Save(c Container) (string, error) {
	env := envelope{
		DataType: MapDataType,
		Value:    make([]json.RawMessage, 0, c.Len()),
	}

	for _, id := range c.IDs() {
		pair, err := json.Marshal([2]interface{}{id, c.items[id]})
		if err != nil {
			return "", errors.Wrapf(err, "failed to encode item %s", id)
		}
		env.Value = append(env.Value, pair)
	}

	data, err := json.Marshal(env)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode items container")
	}
	return string(data), nil
}

// Load decodes a tagged envelope and migrates every record to CurrentVersion
func Load(data string) (Container, error) {
	c, _, err := LoadWithReport(data)
	return c, err
}

// LoadWithReport is Load that also reports which records were migrated.
// Records are migrated one by one, so a container may mix schema versions.
// Any failure discards the whole container.
func LoadWithReport(data string) (Container, LoadReport, error) {
	report := LoadReport{Migrated: make(map[Version]int)}

	var env envelope
	if err := json.Unmarshal([]byte(data), &env); err != nil {
		return Container{}, LoadReport{}, errors.WrapWithCode(err, errors.CodeMalformedEncoding,
			"items container is not valid JSON")
	}
	if env.DataType != MapDataType {
		return Container{}, LoadReport{}, errors.MalformedEncodingf(
			"expected dataType %q, got %q", MapDataType, env.DataType)
	}
	if env.Value == nil {
		return Container{}, LoadReport{}, errors.MalformedEncoding("items container has no value list")
	}

	items := make(map[ItemID]Item, len(env.Value))
	for i, raw := range env.Value {
		key, record, err := splitEntry(i, raw)
		if err != nil {
			return Container{}, LoadReport{}, err
		}

		item, from, err := migrate(key, record)
		if err != nil {
			return Container{}, LoadReport{}, err
		}

		if from != CurrentVersion {
			report.Migrated[from]++
		}
		items[key] = item
	}
	report.Total = len(items)

	return Container{items: items}, report, nil
}

func splitEntry(index int, raw json.RawMessage) (ItemID, json.RawMessage, error) {
	var pair []json.RawMessage
	if err := json.Unmarshal(raw, &pair); err != nil {
		return "", nil, errors.WrapWithCodef(err, errors.CodeMalformedEncoding,
			"entry %d is not a [key, value] pair", index).WithMeta("entry", index)
	}
	if len(pair) != 2 {
		return "", nil, errors.MalformedEncodingf("entry %d has %d elements, want 2", index, len(pair)).
			WithMeta("entry", index)
	}

	var key ItemID
	if err := json.Unmarshal(pair[0], &key); err != nil {
		return "", nil, errors.WrapWithCodef(err, errors.CodeMalformedEncoding,
			"entry %d key is not a string", index).WithMeta("entry", index)
	}
	return key, pair[1], nil
}

// migrate decodes one record according to its Version tag and upgrades it.
// It returns the version the record was stored with.
func migrate(key ItemID, record json.RawMessage) (Item, Version, error) {
	parsed := gjson.ParseBytes(record)
	if !gjson.ValidBytes(record) || !parsed.IsObject() {
		return Item{}, 0, errors.MalformedEncodingf("item %s is not an object", key).
			WithMeta("item_id", key.String())
	}

	version, err := recordVersion(key, parsed.Get("Version"))
	if err != nil {
		return Item{}, 0, err
	}

	var item Item
	switch version {
	case VersionV0:
		var old itemV0
		if err := json.Unmarshal(record, &old); err != nil {
			return Item{}, 0, malformedRecord(err, key, version)
		}
		item = old.upgrade()
	case VersionV1:
		if err := json.Unmarshal(record, &item); err != nil {
			return Item{}, 0, malformedRecord(err, key, version)
		}
	default:
		return Item{}, 0, unsupportedVersion(key, version)
	}

	if item.ItemID != key {
		return Item{}, 0, errors.MalformedEncodingf("item stored under %s has ItemId %s", key, item.ItemID).
			WithMeta("item_id", key.String())
	}
	return item, version, nil
}

// recordVersion reads the schema tag. Records without a tag predate
// versioning and have the V0 shape.
func recordVersion(key ItemID, tag gjson.Result) (Version, error) {
	if !tag.Exists() {
		return VersionV0, nil
	}
	// Only plain integer literals are versions; 1.0, 1e0 and values that
	// overflow int64 are rejected rather than rounded.
	n, err := strconv.ParseInt(tag.Raw, 10, 64)
	if tag.Type != gjson.Number || err != nil {
		return 0, errors.UnsupportedSchemaVersionf("item %s has non-integer version %s", key, tag.Raw).
			WithMeta("item_id", key.String()).
			WithMeta("version", tag.Raw)
	}
	if n != int64(VersionV0) && n != int64(VersionV1) {
		return 0, errors.UnsupportedSchemaVersionf("item %s has unsupported schema version %d", key, n).
			WithMeta("item_id", key.String()).
			WithMeta("version", n)
	}
	return Version(n), nil
}

func unsupportedVersion(key ItemID, version Version) error {
	return errors.UnsupportedSchemaVersionf("item %s has unsupported schema version %d", key, version).
		WithMeta("item_id", key.String()).
		WithMeta("version", int(version))
}

func malformedRecord(err error, key ItemID, version Version) error {
	return errors.WrapWithCodef(err, errors.CodeMalformedEncoding,
		"item %s does not match schema version %d", key, version).
		WithMeta("item_id", key.String())
}
