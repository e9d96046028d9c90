package savefile_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/quest-chronicles/internal/game/character"
	"github.com/cory-johannsen/quest-chronicles/internal/storage/savefile"
)

func sampleCharacter() *character.Character {
	return &character.Character{
		Name:            "Aria",
		Class:           "warrior",
		Level:           3,
		Experience:      40,
		Gold:            75,
		Health:          90,
		MaxHealth:       140,
		Strength:        24,
		Magic:           9,
		AbilityCooldown: 1,
		Inventory:       []string{"potion_small", "potion_small", "iron_sword"},
		ActiveQuests:    []string{"goblin_camp"},
		CompletedQuests: []string{"quest_intro"},
		Equipment: character.Equipment{
			Armor: &character.EquippedItem{ItemID: "chain_mail", Effect: character.StatEffect{Stat: "max_health", Value: 20}},
		},
	}
}

func newStore(t *testing.T) *savefile.Store {
	t.Helper()
	return savefile.NewStore(filepath.Join(t.TempDir(), "save_games"), zap.NewNop())
}

func TestEncode_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, savefile.Encode(&buf, sampleCharacter()))
	want := strings.Join([]string{
		"NAME: Aria",
		"CLASS: warrior",
		"LEVEL: 3",
		"HEALTH: 90",
		"MAX_HEALTH: 140",
		"STRENGTH: 24",
		"MAGIC: 9",
		"EXPERIENCE: 40",
		"GOLD: 75",
		"ABILITY_COOLDOWN: 1",
		"INVENTORY: potion_small,potion_small,iron_sword",
		"ACTIVE_QUESTS: goblin_camp",
		"COMPLETED_QUESTS: quest_intro",
		"EQUIPPED_ARMOR: chain_mail|max_health:20",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestDecode_LegacyDefaults(t *testing.T) {
	in := "NAME: Bram\nCLASS: Mage\nLEVEL: 1\nHEALTH: 80\nMAX_HEALTH: 80\nSTRENGTH: 8\nMAGIC: 20\nEXPERIENCE: 0\nGOLD: 100\nINVENTORY:\n"
	c, err := savefile.Decode(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "Bram", c.Name)
	assert.Equal(t, 0, c.AbilityCooldown)
	assert.Equal(t, []string{}, c.Inventory)
	assert.Equal(t, []string{}, c.ActiveQuests)
	assert.Equal(t, []string{}, c.CompletedQuests)
	assert.Nil(t, c.Equipment.Weapon)
}

func TestDecode_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing field": "NAME: Bram\nCLASS: Mage\n",
		"not a number":  "NAME: Bram\nCLASS: Mage\nLEVEL: one\nHEALTH: 80\nMAX_HEALTH: 80\nSTRENGTH: 8\nMAGIC: 20\nEXPERIENCE: 0\nGOLD: 100\n",
		"no separator":  "NAME Bram\n",
		"health > max":  "NAME: Bram\nCLASS: Mage\nLEVEL: 1\nHEALTH: 90\nMAX_HEALTH: 80\nSTRENGTH: 8\nMAGIC: 20\nEXPERIENCE: 0\nGOLD: 100\n",
		"bad equipment": "NAME: Bram\nCLASS: Mage\nLEVEL: 1\nHEALTH: 80\nMAX_HEALTH: 80\nSTRENGTH: 8\nMAGIC: 20\nEXPERIENCE: 0\nGOLD: 100\nEQUIPPED_WEAPON: staff\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := savefile.Decode(strings.NewReader(in))
			assert.True(t, errors.Is(err, savefile.ErrInvalidSaveData), "got %v", err)
		})
	}
}

func TestStore_SaveLoadListDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names, "missing directory lists as empty")

	c := sampleCharacter()
	require.NoError(t, s.Save(ctx, c))
	_, err = os.Stat(s.Path("Aria"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(s.Path("Aria"), "Aria_save.txt"))

	loaded, err := s.Load(ctx, "Aria")
	require.NoError(t, err)
	assert.Equal(t, c, loaded)

	other := sampleCharacter()
	other.Name = "Bram"
	require.NoError(t, s.Save(ctx, other))
	names, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Aria", "Bram"}, names)

	require.NoError(t, s.Delete(ctx, "Aria"))
	_, err = s.Load(ctx, "Aria")
	assert.True(t, errors.Is(err, savefile.ErrCharacterNotFound))
	assert.True(t, errors.Is(s.Delete(ctx, "Aria"), savefile.ErrCharacterNotFound))
}

func TestStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	c := sampleCharacter()
	require.NoError(t, s.Save(ctx, c))
	c.Gold = 999
	require.NoError(t, s.Save(ctx, c))
	loaded, err := s.Load(ctx, c.Name)
	require.NoError(t, err)
	assert.Equal(t, 999, loaded.Gold)
}

func TestStore_LoadCorruptedContent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path("x")), 0o755))
	require.NoError(t, os.WriteFile(s.Path("Broken"), []byte("garbage without separators\n"), 0o644))
	_, err := s.Load(ctx, "Broken")
	assert.True(t, errors.Is(err, savefile.ErrInvalidSaveData), "got %v", err)
}

func TestStore_RejectsUnsafeNames(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	for _, name := range []string{"", "..", "a/b", `a\b`} {
		_, err := s.Load(ctx, name)
		assert.True(t, errors.Is(err, savefile.ErrInvalidSaveData), "name %q", name)
	}
	c := sampleCharacter()
	c.Name = "../escape"
	assert.True(t, errors.Is(s.Save(ctx, c), savefile.ErrInvalidSaveData))
}

func TestStore_SaveRejectsInvalidCharacter(t *testing.T) {
	s := newStore(t)
	c := sampleCharacter()
	c.Health = c.MaxHealth + 1
	assert.True(t, errors.Is(s.Save(context.Background(), c), savefile.ErrInvalidSaveData))
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := newStore(t)
	assert.ErrorIs(t, s.Save(ctx, sampleCharacter()), context.Canceled)
}

func TestPropertySaveLoadRoundTrip(t *testing.T) {
	s := newStore(t)
	ident := rapid.StringMatching(`[a-z][a-z0-9_]{0,11}`)
	rapid.Check(t, func(t *rapid.T) {
		maxHealth := rapid.IntRange(1, 1000).Draw(t, "max_health")
		c := &character.Character{
			Name:            rapid.StringMatching(`[A-Za-z][A-Za-z0-9_]{0,15}`).Draw(t, "name"),
			Class:           rapid.SampledFrom([]string{"Warrior", "Mage", "Rogue", "Cleric"}).Draw(t, "class"),
			Level:           rapid.IntRange(1, 50).Draw(t, "level"),
			Experience:      rapid.IntRange(0, 5000).Draw(t, "xp"),
			Gold:            rapid.IntRange(0, 100000).Draw(t, "gold"),
			MaxHealth:       maxHealth,
			Health:          rapid.IntRange(0, maxHealth).Draw(t, "health"),
			Strength:        rapid.IntRange(0, 200).Draw(t, "str"),
			Magic:           rapid.IntRange(0, 200).Draw(t, "magic"),
			AbilityCooldown: rapid.IntRange(0, 2).Draw(t, "cooldown"),
			Inventory:       nonNil(rapid.SliceOfN(ident, 0, 20).Draw(t, "inventory")),
			ActiveQuests:    nonNil(rapid.SliceOfN(ident, 0, 5).Draw(t, "active")),
			CompletedQuests: nonNil(rapid.SliceOfN(ident, 0, 5).Draw(t, "completed")),
		}
		if rapid.Bool().Draw(t, "weapon") {
			c.Equipment.Weapon = &character.EquippedItem{
				ItemID: ident.Draw(t, "weapon_id"),
				Effect: character.StatEffect{Stat: "strength", Value: rapid.IntRange(-50, 50).Draw(t, "weapon_value")},
			}
		}

		if err := s.Save(context.Background(), c); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, err := s.Load(context.Background(), c.Name)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if !assert.ObjectsAreEqual(c, got) {
			t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", c, got)
		}
	})
}

// nonNil matches Decode, which always returns non-nil lists.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
