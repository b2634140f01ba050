package idgen_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-items/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	gen := idgen.NewUUID("")

	first := gen.Generate()
	second := gen.Generate()

	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
	assert.NotEqual(t, first, second)
}

func TestUUIDGeneratorPrefix(t *testing.T) {
	id := idgen.NewUUID("item").Generate()
	assert.Regexp(t, `^item_[0-9a-f-]{36}$`, id)
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("item")
	assert.Equal(t, "item_1", gen.Generate())
	assert.Equal(t, "item_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestFixed(t *testing.T) {
	gen := &idgen.Fixed{"a", "b"}
	assert.Equal(t, "a", gen.Generate())
	assert.Equal(t, "b", gen.Generate())
	assert.Equal(t, "b", gen.Generate())

	empty := &idgen.Fixed{}
	assert.Equal(t, "", empty.Generate())
}
