// Package savefile persists characters as flat "KEY: VALUE" text files, one
// file per character.
package savefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cory-johannsen/quest-chronicles/internal/game/character"
)

var (
	// ErrCharacterNotFound is returned when no save exists for a name.
	ErrCharacterNotFound = errors.New("character save not found")
	// ErrSaveFileCorrupted is returned when a save exists but cannot be read.
	ErrSaveFileCorrupted = errors.New("save file corrupted")
	// ErrInvalidSaveData is returned when a save is readable but its contents are malformed or inconsistent.
	ErrInvalidSaveData = errors.New("invalid save data")
)

// Save file keys.
const (
	keyName            = "NAME"
	keyClass           = "CLASS"
	keyLevel           = "LEVEL"
	keyHealth          = "HEALTH"
	keyMaxHealth       = "MAX_HEALTH"
	keyStrength        = "STRENGTH"
	keyMagic           = "MAGIC"
	keyExperience      = "EXPERIENCE"
	keyGold            = "GOLD"
	keyAbilityCooldown = "ABILITY_COOLDOWN"
	keyInventory       = "INVENTORY"
	keyActiveQuests    = "ACTIVE_QUESTS"
	keyCompletedQuests = "COMPLETED_QUESTS"
	keyEquippedWeapon  = "EQUIPPED_WEAPON"
	keyEquippedArmor   = "EQUIPPED_ARMOR"
)

var requiredKeys = []string{
	keyName, keyClass, keyLevel, keyHealth, keyMaxHealth,
	keyStrength, keyMagic, keyExperience, keyGold,
}

// Encode writes c in save file format.
//
// Precondition: c must be non-nil; list entries must not contain commas.
func Encode(w io.Writer, c *character.Character) error {
	bw := bufio.NewWriter(w)
	line := func(key string, value any) {
		fmt.Fprintf(bw, "%s: %v\n", key, value)
	}
	line(keyName, c.Name)
	line(keyClass, c.Class)
	line(keyLevel, c.Level)
	line(keyHealth, c.Health)
	line(keyMaxHealth, c.MaxHealth)
	line(keyStrength, c.Strength)
	line(keyMagic, c.Magic)
	line(keyExperience, c.Experience)
	line(keyGold, c.Gold)
	line(keyAbilityCooldown, c.AbilityCooldown)
	line(keyInventory, strings.Join(c.Inventory, ","))
	line(keyActiveQuests, strings.Join(c.ActiveQuests, ","))
	line(keyCompletedQuests, strings.Join(c.CompletedQuests, ","))
	if wp := c.Equipment.Weapon; wp != nil {
		line(keyEquippedWeapon, encodeEquipped(wp))
	}
	if a := c.Equipment.Armor; a != nil {
		line(keyEquippedArmor, encodeEquipped(a))
	}
	return bw.Flush()
}

// Decode reads a character in save file format. Missing list fields and a
// missing ability cooldown default to empty and 0. Unknown keys are ignored.
//
// Postcondition: Returns a character that passes Validate, or an error
// wrapping ErrInvalidSaveData (malformed content) or ErrSaveFileCorrupted
// (unreadable stream).
func Decode(r io.Reader) (*character.Character, error) {
	fields := make(map[string]string)
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		key, value, ok := strings.Cut(text, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: missing ':' separator: %w", lineNo, ErrInvalidSaveData)
		}
		fields[strings.ToUpper(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaveFileCorrupted, err)
	}

	for _, k := range requiredKeys {
		if _, ok := fields[k]; !ok {
			return nil, fmt.Errorf("missing %s: %w", k, ErrInvalidSaveData)
		}
	}

	var errs []error
	num := func(key string) int {
		raw, ok := fields[key]
		if !ok {
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not an integer", key, raw))
		}
		return n
	}

	c := &character.Character{
		Name:            fields[keyName],
		Class:           fields[keyClass],
		Level:           num(keyLevel),
		Health:          num(keyHealth),
		MaxHealth:       num(keyMaxHealth),
		Strength:        num(keyStrength),
		Magic:           num(keyMagic),
		Experience:      num(keyExperience),
		Gold:            num(keyGold),
		AbilityCooldown: num(keyAbilityCooldown),
		Inventory:       splitList(fields[keyInventory]),
		ActiveQuests:    splitList(fields[keyActiveQuests]),
		CompletedQuests: splitList(fields[keyCompletedQuests]),
	}
	if raw, ok := fields[keyEquippedWeapon]; ok && raw != "" {
		item, err := decodeEquipped(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", keyEquippedWeapon, err))
		}
		c.Equipment.Weapon = item
	}
	if raw, ok := fields[keyEquippedArmor]; ok && raw != "" {
		item, err := decodeEquipped(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", keyEquippedArmor, err))
		}
		c.Equipment.Armor = item
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSaveData, errors.Join(errs...))
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSaveData, err)
	}
	return c, nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func encodeEquipped(e *character.EquippedItem) string {
	return e.ItemID + "|" + e.Effect.String()
}

func decodeEquipped(raw string) (*character.EquippedItem, error) {
	id, effect, ok := strings.Cut(raw, "|")
	if !ok || strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%q: want id|stat:value", raw)
	}
	e, err := character.ParseStatEffect(effect)
	if err != nil {
		return nil, err
	}
	return &character.EquippedItem{ItemID: strings.TrimSpace(id), Effect: e}, nil
}
