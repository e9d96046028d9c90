package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cory-johannsen/quest-chronicles/internal/game/character"
	"github.com/cory-johannsen/quest-chronicles/internal/game/combat"
	"github.com/cory-johannsen/quest-chronicles/internal/game/inventory"
	"github.com/cory-johannsen/quest-chronicles/internal/game/quest"
)

// gameLoop runs the in-game menu until the player saves and quits, dies
// without reviving, or input ends.
func (c *Console) gameLoop(ctx context.Context) error {
	defer c.sess.Close()
	c.println("")
	c.println(Colorize(Bold, "=== ENTERING GAME ==="))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.println("")
		c.println(Colorize(Bold+BrightCyan, "=== GAME MENU ==="))
		c.println("1. View Character Stats")
		c.println("2. View Inventory")
		c.println("3. Quest Menu")
		c.println("4. Explore")
		c.println("5. Shop")
		c.println("6. Save and Quit")
		choice, err := c.prompt("Choose an option (1-6): ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			c.showStats()
		case "2":
			err = c.inventoryMenu()
		case "3":
			err = c.questMenu()
		case "4":
			var alive bool
			alive, err = c.explore()
			if err == nil && !alive {
				return nil
			}
		case "5":
			err = c.shopMenu()
		case "6":
			if err := c.sess.SaveCharacter(ctx); err != nil {
				c.failure("Error saving game", err)
				continue
			}
			c.success("Game saved. Returning to main menu.")
			return nil
		default:
			c.warn("Invalid choice.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) showStats() {
	ch := c.sess.Character()
	ability := combat.AbilityFor(ch.Class)
	c.println("")
	c.println(Colorize(Bold+BrightCyan, "=== CHARACTER STATS ==="))
	c.printf("%s  %s\n", Colorize(Bold, ch.Name), Colorf(Dim, "Level %d %s", ch.Level, ch.Class))
	c.printf("Health:     %s\n", healthBar(ch.Health, ch.MaxHealth))
	c.printf("Strength:   %d\n", ch.Strength)
	c.printf("Magic:      %d\n", ch.Magic)
	c.printf("Experience: %d/%d\n", ch.Experience, ch.Level*character.XPPerLevel)
	c.printf("Gold:       %s\n", Colorf(Yellow, "%d", ch.Gold))
	if ch.AbilityCooldown > 0 {
		c.printf("Ability:    %s (ready in %d turns)\n", ability.Name, ch.AbilityCooldown)
	} else {
		c.printf("Ability:    %s (ready)\n", ability.Name)
	}
	c.printf("Weapon:     %s\n", c.equippedName(ch.Equipment.Weapon))
	c.printf("Armor:      %s\n", c.equippedName(ch.Equipment.Armor))

	book := c.sess.Library().Quests
	c.printf("Quests:     %d active, %d completed (%.0f%%)\n",
		len(ch.ActiveQuests), len(ch.CompletedQuests), book.CompletionPercentage(ch))
	totals := book.TotalRewards(ch)
	if totals.XP > 0 || totals.Gold > 0 {
		c.printf("Earned:     %d XP and %d gold from quests\n", totals.XP, totals.Gold)
	}
}

func (c *Console) equippedName(e *character.EquippedItem) string {
	if e == nil {
		return Colorize(Dim, "none")
	}
	return fmt.Sprintf("%s (%s)", c.itemName(e.ItemID), e.Effect)
}

func (c *Console) itemName(id string) string {
	if def, ok := c.sess.Library().Items.Item(id); ok {
		return def.Name
	}
	return id
}

func (c *Console) inventoryMenu() error {
	ch := c.sess.Character()
	c.println("")
	c.println(Colorize(Bold+BrightCyan, "=== INVENTORY MENU ==="))
	if len(ch.Inventory) == 0 {
		c.println(Colorize(Dim, "Your pack is empty."))
	}
	seen := map[string]bool{}
	for _, id := range ch.Inventory {
		if seen[id] {
			continue
		}
		seen[id] = true
		line := fmt.Sprintf("%s: %s x%d", id, c.itemName(id), inventory.Count(ch, id))
		if def, ok := c.sess.Library().Items.Item(id); ok {
			line += Colorf(Dim, " [%s, %s]", def.Type, def.Effect)
		}
		c.println(line)
	}
	c.printf("Slots used: %d/%d\n", len(ch.Inventory), inventory.MaxItems)
	c.printf("Weapon: %s  Armor: %s\n", c.equippedName(ch.Equipment.Weapon), c.equippedName(ch.Equipment.Armor))

	c.println("")
	c.println("1. Use Item")
	c.println("2. Equip Weapon")
	c.println("3. Equip Armor")
	c.println("4. Unequip")
	c.println("5. Drop Item")
	c.println("6. Back")
	choice, err := c.prompt("Choose: ")
	if err != nil {
		return err
	}
	switch choice {
	case "1":
		id, err := c.prompt("Enter item ID to use: ")
		if err != nil {
			return err
		}
		effect, err := c.sess.UseItem(id)
		if err != nil {
			c.failure("Error", err)
			return nil
		}
		c.success(fmt.Sprintf("Used %s: %s.", c.itemName(id), effect))
	case "2", "3":
		id, err := c.prompt("Enter item ID to equip: ")
		if err != nil {
			return err
		}
		var prev string
		if choice == "2" {
			prev, err = c.sess.EquipWeapon(id)
		} else {
			prev, err = c.sess.EquipArmor(id)
		}
		if err != nil {
			c.failure("Error", err)
			return nil
		}
		msg := fmt.Sprintf("Equipped %s.", c.itemName(id))
		if prev != "" {
			msg += fmt.Sprintf(" %s returned to your pack.", c.itemName(prev))
		}
		c.success(msg)
	case "4":
		slot, err := c.prompt("Slot to unequip (weapon/armor): ")
		if err != nil {
			return err
		}
		id, err := c.sess.Unequip(strings.ToLower(slot))
		if err != nil {
			c.failure("Error", err)
			return nil
		}
		if id == "" {
			c.warn("Nothing equipped there.")
			return nil
		}
		c.success(fmt.Sprintf("Unequipped %s.", c.itemName(id)))
	case "5":
		id, err := c.prompt("Enter item ID to drop: ")
		if err != nil {
			return err
		}
		if err := c.sess.DropItem(id); err != nil {
			c.warn("You don't have that item.")
			return nil
		}
		c.success("Item dropped.")
	}
	return nil
}

func (c *Console) questMenu() error {
	ch := c.sess.Character()
	book := c.sess.Library().Quests
	c.println("")
	c.println(Colorize(Bold+BrightCyan, "=== QUEST MENU ==="))
	c.println("1. View Active Quests")
	c.println("2. View Available Quests")
	c.println("3. View Completed Quests")
	c.println("4. Accept Quest")
	c.println("5. Abandon Quest")
	c.println("6. Complete Quest")
	c.println("7. Back")
	choice, err := c.prompt("Choose: ")
	if err != nil {
		return err
	}
	switch choice {
	case "1":
		c.listQuests("Active quests", book.Active(ch))
	case "2":
		c.listQuests("Available quests", book.Available(ch))
	case "3":
		c.listQuests("Completed quests", book.Completed(ch))
	case "4":
		id, err := c.prompt("Enter quest ID to accept: ")
		if err != nil {
			return err
		}
		if err := c.sess.AcceptQuest(id); err != nil {
			c.failure("Error", err)
			return nil
		}
		c.success("Quest accepted.")
	case "5":
		id, err := c.prompt("Enter quest ID to abandon: ")
		if err != nil {
			return err
		}
		if err := c.sess.AbandonQuest(id); err != nil {
			c.failure("Error", err)
			return nil
		}
		c.success("Quest abandoned.")
	case "6":
		id, err := c.prompt("Enter quest ID to complete: ")
		if err != nil {
			return err
		}
		r, err := c.sess.CompleteQuest(id)
		if err != nil {
			c.failure("Error", err)
			return nil
		}
		c.success(fmt.Sprintf("Quest '%s' completed! Gained %d XP and %d gold.", r.Title, r.XP, r.Gold))
		c.announceLevels(r.LevelsGained)
	}
	return nil
}

func (c *Console) listQuests(heading string, defs []*quest.Def) {
	c.println(Colorize(Bold, heading+":"))
	if len(defs) == 0 {
		c.println(Colorize(Dim, "  none"))
		return
	}
	for _, d := range defs {
		c.printf("  %s: %s %s\n", d.ID, Colorize(Bold, d.Title),
			Colorf(Dim, "(level %d, %d XP, %d gold)", d.RequiredLevel, d.RewardXP, d.RewardGold))
		if d.Description != "" {
			c.printf("    %s\n", d.Description)
		}
	}
}

func (c *Console) shopMenu() error {
	ch := c.sess.Character()
	c.println("")
	c.println(Colorize(Bold+BrightCyan, "=== SHOP ==="))
	c.printf("Gold: %s\n", Colorf(Yellow, "%d", ch.Gold))
	c.println("Items available:")
	for _, def := range c.sess.Library().Items.AllItems() {
		c.printf("  %s: %s - %s %s\n", def.ID, def.Name, Colorf(Yellow, "%d gold", def.Cost), Colorf(Dim, "[%s, %s]", def.Type, def.Effect))
	}
	c.println("")
	c.println("1. Buy")
	c.println("2. Sell")
	c.println("3. Back")
	choice, err := c.prompt("Choose: ")
	if err != nil {
		return err
	}
	switch choice {
	case "1":
		id, err := c.prompt("Item ID to buy: ")
		if err != nil {
			return err
		}
		if err := c.sess.Buy(id); err != nil {
			c.failure("Error", err)
			return nil
		}
		c.success("Purchase successful!")
	case "2":
		id, err := c.prompt("Item ID to sell: ")
		if err != nil {
			return err
		}
		gold, err := c.sess.Sell(id)
		if err != nil {
			c.failure("Error", err)
			return nil
		}
		c.success(fmt.Sprintf("Sold for %d gold.", gold))
	}
	return nil
}

// explore fights one encounter. It reports whether the game continues.
func (c *Console) explore() (bool, error) {
	c.println("")
	c.println(Colorize(Bold+BrightCyan, "=== EXPLORING... ==="))
	actions := &PromptActions{in: c.in, out: c.out}
	enc, err := c.sess.Explore(actions, c.showEvent)
	if errors.Is(err, combat.ErrCharacterDead) {
		return c.death()
	}
	if err != nil {
		c.failure("Combat error", err)
		return true, nil
	}
	if actions.EOF() {
		return false, io.EOF
	}

	switch enc.Result.Winner {
	case combat.WinnerPlayer:
		c.success(fmt.Sprintf("Victory over the %s! Gained %d XP and %d gold.", enc.Enemy.Name, enc.Result.XPGained, enc.Result.GoldGained))
		c.announceLevels(enc.LevelsGained)
	case combat.WinnerEscaped:
		c.warn("You escaped. No rewards this time.")
	case combat.WinnerEnemy:
		return c.death()
	}
	return true, nil
}

func (c *Console) announceLevels(n int) {
	if n <= 0 {
		return
	}
	ch := c.sess.Character()
	c.println(Colorf(Bold+BrightYellow, "LEVEL UP! %s is now level %d.", ch.Name, ch.Level))
}

func (c *Console) showEvent(e combat.Event) {
	color := BrightRed
	if ch := c.sess.Character(); ch != nil && e.Actor == ch.Name {
		color = BrightGreen
	}
	c.println(Colorize(color, e.Narrative))
}

// death offers a revive. It reports whether the game continues.
func (c *Console) death() (bool, error) {
	cost := c.sess.Config().ReviveCost
	c.println("")
	c.println(Colorize(Bold+Red, "*** YOU HAVE FALLEN IN BATTLE ***"))
	c.printf("1. Revive (costs %d gold)\n", cost)
	c.println("2. Quit")
	choice, err := c.prompt("Choose: ")
	if err != nil {
		return false, err
	}
	if choice != "1" {
		c.println("Returning to main menu.")
		return false, nil
	}
	if err := c.sess.Revive(); err != nil {
		if errors.Is(err, inventory.ErrInsufficientGold) {
			c.warn("Not enough gold. Returning to main menu.")
		} else {
			c.failure("Could not revive", err)
		}
		return false, nil
	}
	ch := c.sess.Character()
	c.success(fmt.Sprintf("Revived with %d health!", ch.Health))
	return true, nil
}
