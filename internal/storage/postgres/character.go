package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cory-johannsen/quest-chronicles/internal/game/character"
)

// ErrCharacterNotFound is returned when a character lookup yields no results.
var ErrCharacterNotFound = errors.New("character not found")

// CharacterRepository provides character persistence operations keyed by name.
type CharacterRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewCharacterRepository creates a CharacterRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool; logger must be non-nil.
func NewCharacterRepository(db *pgxpool.Pool, logger *zap.Logger) *CharacterRepository {
	return &CharacterRepository{db: db, logger: logger}
}

const characterColumns = `name, class, level, experience, gold, health, max_health,
	strength, magic, ability_cooldown, inventory, active_quests, completed_quests,
	weapon_id, weapon_effect, armor_id, armor_effect`

// Save inserts c or replaces the stored row with the same name.
//
// Precondition: c must pass Validate.
// Postcondition: Load(c.Name) returns an equal character, or a non-nil error.
func (r *CharacterRepository) Save(ctx context.Context, c *character.Character) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("saving character: %w", err)
	}
	weaponID, weaponEffect := equippedColumns(c.Equipment.Weapon)
	armorID, armorEffect := equippedColumns(c.Equipment.Armor)
	_, err := r.db.Exec(ctx, `
		INSERT INTO characters (`+characterColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		ON CONFLICT (name) DO UPDATE SET
			class = EXCLUDED.class,
			level = EXCLUDED.level,
			experience = EXCLUDED.experience,
			gold = EXCLUDED.gold,
			health = EXCLUDED.health,
			max_health = EXCLUDED.max_health,
			strength = EXCLUDED.strength,
			magic = EXCLUDED.magic,
			ability_cooldown = EXCLUDED.ability_cooldown,
			inventory = EXCLUDED.inventory,
			active_quests = EXCLUDED.active_quests,
			completed_quests = EXCLUDED.completed_quests,
			weapon_id = EXCLUDED.weapon_id,
			weapon_effect = EXCLUDED.weapon_effect,
			armor_id = EXCLUDED.armor_id,
			armor_effect = EXCLUDED.armor_effect,
			updated_at = NOW()`,
		c.Name, c.Class, c.Level, c.Experience, c.Gold, c.Health, c.MaxHealth,
		c.Strength, c.Magic, c.AbilityCooldown,
		nonNil(c.Inventory), nonNil(c.ActiveQuests), nonNil(c.CompletedQuests),
		weaponID, weaponEffect, armorID, armorEffect,
	)
	if err != nil {
		return fmt.Errorf("upserting character %q: %w", c.Name, err)
	}
	r.logger.Debug("character saved", zap.String("name", c.Name))
	return nil
}

// Load retrieves a character by name.
//
// Postcondition: Returns the Character or ErrCharacterNotFound.
func (r *CharacterRepository) Load(ctx context.Context, name string) (*character.Character, error) {
	var (
		c                      character.Character
		weaponID, weaponEffect *string
		armorID, armorEffect   *string
	)
	err := r.db.QueryRow(ctx, `SELECT `+characterColumns+` FROM characters WHERE name = $1`, name).Scan(
		&c.Name, &c.Class, &c.Level, &c.Experience, &c.Gold, &c.Health, &c.MaxHealth,
		&c.Strength, &c.Magic, &c.AbilityCooldown,
		&c.Inventory, &c.ActiveQuests, &c.CompletedQuests,
		&weaponID, &weaponEffect, &armorID, &armorEffect,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("loading %q: %w", name, ErrCharacterNotFound)
		}
		return nil, fmt.Errorf("querying character %q: %w", name, err)
	}
	if c.Equipment.Weapon, err = equippedFromColumns(weaponID, weaponEffect); err != nil {
		return nil, fmt.Errorf("character %q weapon: %w", name, err)
	}
	if c.Equipment.Armor, err = equippedFromColumns(armorID, armorEffect); err != nil {
		return nil, fmt.Errorf("character %q armor: %w", name, err)
	}
	c.Inventory = nonNil(c.Inventory)
	c.ActiveQuests = nonNil(c.ActiveQuests)
	c.CompletedQuests = nonNil(c.CompletedQuests)
	return &c, nil
}

// List returns every stored character name in ascending order.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *CharacterRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM characters ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning character names: %w", err)
	}
	return nonNil(names), nil
}

// Delete removes the character with the given name.
//
// Postcondition: Returns ErrCharacterNotFound if no row matched.
func (r *CharacterRepository) Delete(ctx context.Context, name string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM characters WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("deleting character %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting %q: %w", name, ErrCharacterNotFound)
	}
	r.logger.Info("character deleted", zap.String("name", name))
	return nil
}

func equippedColumns(e *character.EquippedItem) (*string, *string) {
	if e == nil {
		return nil, nil
	}
	id, effect := e.ItemID, e.Effect.String()
	return &id, &effect
}

func equippedFromColumns(id, effect *string) (*character.EquippedItem, error) {
	if id == nil {
		return nil, nil
	}
	if effect == nil {
		return nil, fmt.Errorf("item %q has no effect recorded", *id)
	}
	e, err := character.ParseStatEffect(*effect)
	if err != nil {
		return nil, err
	}
	return &character.EquippedItem{ItemID: *id, Effect: e}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
