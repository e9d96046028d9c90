package quest_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/quest-chronicles/internal/game/character"
	"github.com/cory-johannsen/quest-chronicles/internal/game/quest"
)

func testDefs() []*quest.Def {
	return []*quest.Def{
		{ID: "quest_intro", Title: "First Steps", RewardXP: 50, RewardGold: 20, RequiredLevel: 1, Prerequisite: "NONE"},
		{ID: "goblin_camp", Title: "Goblin Camp", RewardXP: 80, RewardGold: 30, RequiredLevel: 1, Prerequisite: "quest_intro"},
		{ID: "orc_warlord", Title: "The Orc Warlord", RewardXP: 200, RewardGold: 100, RequiredLevel: 3, Prerequisite: "goblin_camp"},
		{ID: "dragon_lair", Title: "Dragon's Lair", RewardXP: 500, RewardGold: 300, RequiredLevel: 6},
	}
}

func newBook() *quest.Book {
	return quest.NewBook(testDefs(), zap.NewNop())
}

func newHero() *character.Character {
	return &character.Character{
		Name: "Aria", Class: "warrior", Level: 1,
		Health: 120, MaxHealth: 120, Strength: 15, Magic: 5,
		ActiveQuests: []string{}, CompletedQuests: []string{},
	}
}

func TestAccept(t *testing.T) {
	b := newBook()
	c := newHero()
	require.NoError(t, b.Accept(c, "quest_intro"))
	assert.True(t, b.IsActive(c, "quest_intro"))
	assert.Equal(t, []string{"quest_intro"}, c.ActiveQuests)
}

func TestAccept_Errors(t *testing.T) {
	b := newBook()
	c := newHero()

	assert.True(t, errors.Is(b.Accept(c, "missing"), quest.ErrQuestNotFound))
	assert.True(t, errors.Is(b.Accept(c, "dragon_lair"), quest.ErrInsufficientLevel))
	assert.True(t, errors.Is(b.Accept(c, "goblin_camp"), quest.ErrRequirementsNotMet))

	require.NoError(t, b.Accept(c, "quest_intro"))
	assert.True(t, errors.Is(b.Accept(c, "quest_intro"), quest.ErrRequirementsNotMet), "already active")

	_, err := b.Complete(c, "quest_intro")
	require.NoError(t, err)
	assert.True(t, errors.Is(b.Accept(c, "quest_intro"), quest.ErrAlreadyCompleted))
}

func TestComplete_GrantsRewardsAndLevels(t *testing.T) {
	b := newBook()
	c := newHero()
	c.Experience = 60
	c.Gold = 5
	require.NoError(t, b.Accept(c, "quest_intro"))

	r, err := b.Complete(c, "quest_intro")
	require.NoError(t, err)
	assert.Equal(t, quest.Reward{Title: "First Steps", XP: 50, Gold: 20, LevelsGained: 1}, r)
	assert.Equal(t, 2, c.Level)
	assert.Equal(t, 10, c.Experience)
	assert.Equal(t, 25, c.Gold)
	assert.Empty(t, c.ActiveQuests)
	assert.Equal(t, []string{"quest_intro"}, c.CompletedQuests)
}

func TestComplete_Errors(t *testing.T) {
	b := newBook()
	c := newHero()
	_, err := b.Complete(c, "missing")
	assert.True(t, errors.Is(err, quest.ErrQuestNotFound))
	_, err = b.Complete(c, "quest_intro")
	assert.True(t, errors.Is(err, quest.ErrQuestNotActive))

	require.NoError(t, b.Accept(c, "quest_intro"))
	c.Health = 0
	_, err = b.Complete(c, "quest_intro")
	assert.True(t, errors.Is(err, character.ErrCharacterDead))
	assert.True(t, b.IsActive(c, "quest_intro"), "dead characters keep the quest active")
	assert.False(t, b.IsCompleted(c, "quest_intro"))
}

func TestAbandon(t *testing.T) {
	b := newBook()
	c := newHero()
	assert.True(t, errors.Is(b.Abandon(c, "quest_intro"), quest.ErrQuestNotActive))
	require.NoError(t, b.Accept(c, "quest_intro"))
	require.NoError(t, b.Abandon(c, "quest_intro"))
	assert.False(t, b.IsActive(c, "quest_intro"))
	assert.True(t, b.CanAccept(c, "quest_intro"))
}

func TestAvailableFollowsProgress(t *testing.T) {
	b := newBook()
	c := newHero()
	assert.Equal(t, []string{"quest_intro"}, ids(b.Available(c)))

	require.NoError(t, b.Accept(c, "quest_intro"))
	assert.Empty(t, b.Available(c))
	_, err := b.Complete(c, "quest_intro")
	require.NoError(t, err)
	assert.Equal(t, []string{"goblin_camp"}, ids(b.Available(c)))

	assert.Equal(t, []string{"quest_intro"}, ids(b.Completed(c)))
	require.NoError(t, b.Accept(c, "goblin_camp"))
	assert.Equal(t, []string{"goblin_camp"}, ids(b.Active(c)))
}

func TestPrerequisiteChain(t *testing.T) {
	b := newBook()
	chain, err := b.PrerequisiteChain("orc_warlord")
	require.NoError(t, err)
	assert.Equal(t, []string{"quest_intro", "goblin_camp", "orc_warlord"}, chain)

	chain, err = b.PrerequisiteChain("dragon_lair")
	require.NoError(t, err)
	assert.Equal(t, []string{"dragon_lair"}, chain)

	_, err = b.PrerequisiteChain("missing")
	assert.True(t, errors.Is(err, quest.ErrQuestNotFound))
}

func TestPrerequisiteChain_BrokenAndCyclic(t *testing.T) {
	b := quest.NewBook([]*quest.Def{
		{ID: "a", Title: "A", RequiredLevel: 1, Prerequisite: "ghost"},
		{ID: "b", Title: "B", RequiredLevel: 1, Prerequisite: "c"},
		{ID: "c", Title: "C", RequiredLevel: 1, Prerequisite: "b"},
	}, zap.NewNop())
	_, err := b.PrerequisiteChain("a")
	assert.True(t, errors.Is(err, quest.ErrQuestNotFound))
	_, err = b.PrerequisiteChain("b")
	assert.True(t, errors.Is(err, quest.ErrRequirementsNotMet))

	err = b.ValidatePrerequisites()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
	assert.NoError(t, newBook().ValidatePrerequisites())
}

func TestStatistics(t *testing.T) {
	b := newBook()
	c := newHero()
	assert.Zero(t, b.CompletionPercentage(c))

	c.CompletedQuests = []string{"quest_intro", "goblin_camp"}
	assert.InDelta(t, 50.0, b.CompletionPercentage(c), 0.0001)
	assert.Equal(t, quest.Totals{XP: 130, Gold: 50}, b.TotalRewards(c))

	assert.Equal(t, []string{"goblin_camp", "quest_intro", "orc_warlord"}, ids(b.ByLevel(1, 5)))
	assert.Equal(t, []string{"dragon_lair"}, ids(b.ByLevel(6, 6)))

	empty := quest.NewBook(nil, zap.NewNop())
	assert.Zero(t, empty.CompletionPercentage(c))
}

func TestPropertyCanAcceptAgreesWithAccept(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := newBook()
		c := newHero()
		c.Level = rapid.IntRange(1, 8).Draw(t, "level")
		all := []string{"quest_intro", "goblin_camp", "orc_warlord", "dragon_lair", "missing"}
		for _, id := range rapid.SliceOfN(rapid.SampledFrom(all), 0, 10).Draw(t, "completed") {
			if id != "missing" && !b.IsCompleted(c, id) {
				c.CompletedQuests = append(c.CompletedQuests, id)
			}
		}
		id := rapid.SampledFrom(all).Draw(t, "quest")
		can := b.CanAccept(c, id)
		err := b.Accept(c, id)
		if can != (err == nil) {
			t.Fatalf("CanAccept=%v but Accept err=%v", can, err)
		}
	})
}

func ids(defs []*quest.Def) []string {
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.ID)
	}
	return out
}
