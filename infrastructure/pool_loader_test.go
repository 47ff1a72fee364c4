package infrastructure

import (
	"os"
	"path/filepath"
	"testing"

	"gachabot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePool = `
items:
  - name: Joker
    weight: 2
    rarity: SSR
    role: Phantom Thief
    promo: true
  - name: Arsene
    rarity: sr
    object: persona
    tokens: true
    collectable: 3
    role: Persona User
  - name: Coin
    weight: 90
    reply: "Just a coin"
`

func TestParsePool(t *testing.T) {
	t.Parallel()

	items, err := ParsePool([]byte(samplePool), 55)
	require.NoError(t, err)
	require.Len(t, items, 3)

	joker := items[0]
	assert.Equal(t, int64(55), joker.GuildID)
	assert.Equal(t, int64(2), joker.Weight)
	assert.Equal(t, entities.RaritySSR, joker.Rarity)
	assert.True(t, joker.IsPromotional)
	require.NotNil(t, joker.RoleOnAcquire)
	assert.Equal(t, "Phantom Thief", *joker.RoleOnAcquire)
	assert.Equal(t, entities.ObjectTypeCharacter, joker.ObjectType)

	arsene := items[1]
	assert.Equal(t, entities.RaritySR, arsene.Rarity)
	assert.Equal(t, entities.ObjectTypePersona, arsene.ObjectType)
	assert.True(t, arsene.GivesTokens)
	require.NotNil(t, arsene.CollectableThreshold)
	assert.Equal(t, 3, *arsene.CollectableThreshold)
	assert.Equal(t, int64(entities.DefaultItemWeight), arsene.Weight)

	coin := items[2]
	assert.Equal(t, entities.RarityR, coin.Rarity)
	assert.Equal(t, "Just a coin", coin.Reply)
	assert.Nil(t, coin.RoleOnAcquire)
}

func TestParsePool_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{name: "empty", yaml: "items: []"},
		{name: "malformed", yaml: "items: [name"},
		{name: "bad rarity", yaml: "items:\n  - name: X\n    rarity: legendary"},
		{name: "zero weight", yaml: "items:\n  - name: X\n    weight: 0"},
		{name: "missing name", yaml: "items:\n  - rarity: R"},
		{name: "duplicate", yaml: "items:\n  - name: X\n  - name: X"},
		{name: "bad object", yaml: "items:\n  - name: X\n    object: vehicle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParsePool([]byte(tt.yaml), 1)
			assert.Error(t, err)
		})
	}
}

func TestLoadPoolFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePool), 0o600))

	items, err := LoadPoolFile(path, 9)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	_, err = LoadPoolFile(filepath.Join(t.TempDir(), "missing.yaml"), 9)
	assert.Error(t, err)
}
