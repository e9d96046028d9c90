package npc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/quest-chronicles/internal/game/npc"
)

func defaultTemplates() []*npc.Template {
	return []*npc.Template{
		{ID: "dragon", Name: "Dragon", Health: 200, Strength: 25, Magic: 15, XPReward: 200, GoldReward: 100, MinLevel: 6},
		{ID: "goblin", Name: "Goblin", Health: 50, Strength: 8, Magic: 2, XPReward: 25, GoldReward: 10, MinLevel: 1, MaxLevel: 2},
		{ID: "orc", Name: "Orc", Health: 80, Strength: 12, Magic: 5, XPReward: 50, GoldReward: 25, MinLevel: 3, MaxLevel: 5},
	}
}

func TestBestiary_SpawnCaseInsensitive(t *testing.T) {
	b := npc.NewBestiary(defaultTemplates())
	for _, id := range []string{"goblin", "GOBLIN", " Goblin "} {
		inst, err := b.Spawn(id)
		require.NoError(t, err, id)
		assert.Equal(t, "Goblin", inst.Name)
		assert.Equal(t, "goblin", inst.TemplateID)
		assert.Equal(t, 50, inst.Health)
		assert.Equal(t, 50, inst.MaxHealth)
		assert.Equal(t, 25, inst.XPReward)
		assert.Equal(t, 10, inst.GoldReward)
	}
}

func TestBestiary_SpawnUnknown(t *testing.T) {
	b := npc.NewBestiary(defaultTemplates())
	_, err := b.Spawn("kraken")
	assert.True(t, errors.Is(err, npc.ErrUnknownEnemy))
}

func TestBestiary_SpawnAssignsUniqueIDs(t *testing.T) {
	b := npc.NewBestiary(defaultTemplates())
	a, err := b.Spawn("orc")
	require.NoError(t, err)
	c, err := b.Spawn("orc")
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestBestiary_ForLevel(t *testing.T) {
	b := npc.NewBestiary(defaultTemplates())
	cases := map[int]string{1: "goblin", 2: "goblin", 3: "orc", 5: "orc", 6: "dragon", 40: "dragon"}
	for level, want := range cases {
		inst, err := b.ForLevel(level)
		require.NoError(t, err)
		assert.Equal(t, want, inst.TemplateID, "level %d", level)
	}
}

func TestBestiary_ForLevelGapFallsBackToLowerBand(t *testing.T) {
	b := npc.NewBestiary([]*npc.Template{
		{ID: "rat", Name: "Rat", Health: 5, MinLevel: 1, MaxLevel: 2},
		{ID: "wolf", Name: "Wolf", Health: 20, MinLevel: 5, MaxLevel: 6},
	})
	inst, err := b.ForLevel(3)
	require.NoError(t, err)
	assert.Equal(t, "rat", inst.TemplateID)

	inst, err = b.ForLevel(9)
	require.NoError(t, err)
	assert.Equal(t, "wolf", inst.TemplateID)
}

func TestBestiary_ForLevelEmpty(t *testing.T) {
	b := npc.NewBestiary(nil)
	_, err := b.ForLevel(1)
	assert.True(t, errors.Is(err, npc.ErrUnknownEnemy))
}

func TestNewBestiary_NilTemplatePanics(t *testing.T) {
	assert.Panics(t, func() { npc.NewBestiary([]*npc.Template{nil}) })
}

func TestInstance_TakeDamageFloorsAtZero(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		hp := rapid.IntRange(1, 500).Draw(t, "hp")
		dmg := rapid.IntRange(0, 1000).Draw(t, "dmg")
		inst := npc.NewInstance("x", &npc.Template{ID: "x", Name: "X", Health: hp, MinLevel: 1})
		inst.TakeDamage(dmg)
		if inst.Health < 0 || inst.Health > inst.MaxHealth {
			t.Fatalf("health %d out of [0, %d]", inst.Health, inst.MaxHealth)
		}
		if inst.IsDead() != (dmg >= hp) {
			t.Fatalf("IsDead=%v after %d damage to %d hp", inst.IsDead(), dmg, hp)
		}
	})
}
