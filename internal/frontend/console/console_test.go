package console_test

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/quest-chronicles/internal/config"
	"github.com/cory-johannsen/quest-chronicles/internal/content"
	"github.com/cory-johannsen/quest-chronicles/internal/frontend/console"
	"github.com/cory-johannsen/quest-chronicles/internal/game/character"
	"github.com/cory-johannsen/quest-chronicles/internal/game/combat"
	"github.com/cory-johannsen/quest-chronicles/internal/game/npc"
	"github.com/cory-johannsen/quest-chronicles/internal/game/session"
	"github.com/cory-johannsen/quest-chronicles/internal/storage/savefile"
)

type fixedSrc struct{ val int }

func (f fixedSrc) Intn(n int) int {
	if f.val >= n {
		return n - 1
	}
	return f.val
}

type memStore struct {
	chars map[string]character.Character
}

func (m *memStore) Save(_ context.Context, c *character.Character) error {
	m.chars[c.Name] = *c
	return nil
}

func (m *memStore) Load(_ context.Context, name string) (*character.Character, error) {
	c, ok := m.chars[name]
	if !ok {
		return nil, savefile.ErrCharacterNotFound
	}
	return &c, nil
}

func (m *memStore) List(context.Context) ([]string, error) {
	var names []string
	for n := range m.chars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (m *memStore) Delete(_ context.Context, name string) error {
	if _, ok := m.chars[name]; !ok {
		return savefile.ErrCharacterNotFound
	}
	delete(m.chars, name)
	return nil
}

type harness struct {
	lib   *content.Library
	store *memStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	_, err := content.Materialize(dir, zap.NewNop())
	require.NoError(t, err)
	lib, err := content.Load(config.ContentConfig{Dir: dir}, zap.NewNop())
	require.NoError(t, err)
	return &harness{lib: lib, store: &memStore{chars: map[string]character.Character{}}}
}

// seed stores a warrior named name after applying mutate.
func (h *harness) seed(t *testing.T, name string, mutate func(*character.Character)) {
	t.Helper()
	class, ok := h.lib.Classes.Class("warrior")
	require.True(t, ok)
	c, err := character.Build(name, class, 100)
	require.NoError(t, err)
	if mutate != nil {
		mutate(c)
	}
	h.store.chars[name] = *c
}

// play runs the console over script and returns the output without colors.
func (h *harness) play(t *testing.T, script ...string) string {
	t.Helper()
	sess := session.New(h.lib, h.store, fixedSrc{0}, config.GameConfig{StartingGold: 100, ReviveCost: 20}, zap.NewNop())
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	require.NoError(t, console.New(sess, in, &out, zap.NewNop()).Run(context.Background()))
	return console.StripANSI(out.String())
}

func TestRun_Exit(t *testing.T) {
	out := newHarness(t).play(t, "4")
	assert.Contains(t, out, "QUEST CHRONICLES")
	assert.Contains(t, out, "Thanks for playing Quest Chronicles!")
}

func TestRun_EndOfInputIsNotAnError(t *testing.T) {
	h := newHarness(t)
	sess := session.New(h.lib, h.store, fixedSrc{0}, config.GameConfig{}, zap.NewNop())
	var out bytes.Buffer
	assert.NoError(t, console.New(sess, strings.NewReader(""), &out, zap.NewNop()).Run(context.Background()))
}

func TestRun_InvalidChoice(t *testing.T) {
	out := newHarness(t).play(t, "9", "4")
	assert.Contains(t, out, "Invalid choice. Please enter 1-4.")
}

func TestRun_CancelledContext(t *testing.T) {
	h := newHarness(t)
	sess := session.New(h.lib, h.store, fixedSrc{0}, config.GameConfig{}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := console.New(sess, strings.NewReader("4\n"), &bytes.Buffer{}, zap.NewNop()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewGame_ExploreAndSave(t *testing.T) {
	h := newHarness(t)
	out := h.play(t,
		"1", "Brom", "1", // new warrior
		"4", "1", "1", "1", "1", // explore, four attacks
		"6", // save and quit
		"4",
	)
	assert.Contains(t, out, "Character 'Brom' the warrior created successfully!")
	assert.Contains(t, out, "A wild Goblin appears!")
	assert.Contains(t, out, "Victory over the Goblin! Gained 25 XP and 10 gold.")
	assert.Contains(t, out, "Game saved.")

	saved, ok := h.store.chars["Brom"]
	require.True(t, ok)
	assert.Equal(t, 25, saved.Experience)
	assert.Equal(t, 110, saved.Gold)
	assert.Equal(t, 105, saved.Health)
}

func TestNewGame_InvalidClass(t *testing.T) {
	h := newHarness(t)
	out := h.play(t, "1", "Brom", "bard", "4")
	assert.Contains(t, out, "Could not create character")
	assert.Empty(t, h.store.chars)
}

func TestLoadGame_NoSaves(t *testing.T) {
	out := newHarness(t).play(t, "2", "4")
	assert.Contains(t, out, "No saved characters available.")
}

func TestLoadGame_ShowStats(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "Brom", func(c *character.Character) { c.Experience = 40 })
	out := h.play(t, "2", "1", "1", "6", "4")
	assert.Contains(t, out, "Loaded character 'Brom' successfully!")
	assert.Contains(t, out, "Health:     120/120")
	assert.Contains(t, out, "Experience: 40/100")
	assert.Contains(t, out, "Power Strike (ready)")
}

func TestDeleteSave(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "Brom", nil)
	out := h.play(t, "3", "1", "y", "4")
	assert.Contains(t, out, "Deleted Brom.")
	assert.Empty(t, h.store.chars)
}

func TestShopAndInventory(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "Brom", func(c *character.Character) { c.Health = 50 })
	out := h.play(t,
		"2", "1",
		"5", "1", "potion_small", // buy
		"2", "1", "potion_small", // use
		"5", "1", "iron_sword",
		"2", "2", "iron_sword", // equip
		"6", "4",
	)
	assert.Contains(t, out, "Purchase successful!")
	assert.Contains(t, out, "Used Small Health Potion: health:20.")
	assert.Contains(t, out, "Equipped Iron Sword.")

	saved := h.store.chars["Brom"]
	assert.Equal(t, 70, saved.Health)
	assert.Equal(t, 40, saved.Gold)
	assert.Equal(t, 20, saved.Strength)
	require.NotNil(t, saved.Equipment.Weapon)
	assert.Equal(t, "iron_sword", saved.Equipment.Weapon.ItemID)
}

func TestShop_InsufficientGold(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "Brom", func(c *character.Character) { c.Gold = 5 })
	out := h.play(t, "2", "1", "5", "1", "chain_mail", "6", "4")
	assert.Contains(t, out, "Error:")
	assert.Empty(t, h.store.chars["Brom"].Inventory)
}

func TestQuestMenu_AcceptAndComplete(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "Brom", nil)
	out := h.play(t,
		"2", "1",
		"3", "2", // available
		"3", "4", "quest_intro",
		"3", "6", "quest_intro",
		"6", "4",
	)
	assert.Contains(t, out, "quest_intro: First Steps")
	assert.Contains(t, out, "Quest accepted.")
	assert.Contains(t, out, "Quest 'First Steps' completed! Gained 50 XP and 20 gold.")
	assert.Equal(t, []string{"quest_intro"}, h.store.chars["Brom"].CompletedQuests)
}

func TestDeath_Revive(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "Brom", func(c *character.Character) { c.Health = 1 })
	out := h.play(t, "2", "1", "4", "1", "1", "6", "4")
	assert.Contains(t, out, "*** YOU HAVE FALLEN IN BATTLE ***")
	assert.Contains(t, out, "Revive (costs 20 gold)")
	assert.Contains(t, out, "Revived with 60 health!")
	saved := h.store.chars["Brom"]
	assert.Equal(t, 60, saved.Health)
	assert.Equal(t, 80, saved.Gold)
}

func TestDeath_NotEnoughGold(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "Brom", func(c *character.Character) {
		c.Health = 0
		c.Gold = 3
	})
	out := h.play(t, "2", "1", "4", "1", "4")
	assert.Contains(t, out, "YOU HAVE FALLEN")
	assert.Contains(t, out, "Not enough gold. Returning to main menu.")
	assert.Contains(t, out, "Thanks for playing")
}

func TestDeath_Quit(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "Brom", func(c *character.Character) { c.Health = 0 })
	out := h.play(t, "2", "1", "4", "2", "4")
	assert.Contains(t, out, "Returning to main menu.")
}

func TestPromptActions(t *testing.T) {
	h := newHarness(t)
	class, _ := h.lib.Classes.Class("mage")
	ch, err := character.Build("Aria", class, 0)
	require.NoError(t, err)
	tmpl, _ := h.lib.Bestiary.Template("orc")
	b, err := combat.NewBattle(ch, npc.NewInstance("orc-1", tmpl))
	require.NoError(t, err)

	var out bytes.Buffer
	p := console.NewPromptActions(strings.NewReader("dance\nfireball\n2\n"), &out)
	assert.Equal(t, combat.ActionAbility, p.NextAction(b))
	text := console.StripANSI(out.String())
	assert.Contains(t, text, "A wild Orc appears!")
	assert.Contains(t, text, "2. Fireball")
	assert.Equal(t, 2, strings.Count(text, "Choose 1 (attack), 2 (ability) or 3 (run)."))
	assert.False(t, p.EOF())

	assert.Equal(t, combat.ActionAttack, p.NextAction(b))
	assert.True(t, p.EOF())
	assert.Equal(t, 1, strings.Count(console.StripANSI(out.String()), "appears!"))
}

func TestPromptActions_FinalLineWithoutNewline(t *testing.T) {
	h := newHarness(t)
	class, _ := h.lib.Classes.Class("rogue")
	ch, err := character.Build("Vex", class, 0)
	require.NoError(t, err)
	tmpl, _ := h.lib.Bestiary.Template("goblin")
	b, err := combat.NewBattle(ch, npc.NewInstance("g-1", tmpl))
	require.NoError(t, err)

	p := console.NewPromptActions(strings.NewReader("run"), &bytes.Buffer{})
	assert.Equal(t, combat.ActionRun, p.NextAction(b))
	assert.False(t, p.EOF())
}
