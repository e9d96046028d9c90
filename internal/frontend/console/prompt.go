package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cory-johannsen/quest-chronicles/internal/game/combat"
)

// PromptActions asks the player for an action every turn.
//
// When input ends mid-battle it falls back to attacking, which always
// terminates because every hit deals at least 1 damage.
type PromptActions struct {
	in  *bufio.Reader
	out io.Writer

	announced bool
	eof       bool
}

// NewPromptActions returns an ActionSource reading answers from in.
func NewPromptActions(in io.Reader, out io.Writer) *PromptActions {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &PromptActions{in: br, out: out}
}

// EOF reports whether input ended during the battle.
func (p *PromptActions) EOF() bool { return p.eof }

// NextAction shows the battle status and reads a choice, re-prompting until
// it gets attack, ability or run.
func (p *PromptActions) NextAction(b *combat.Battle) combat.Action {
	ch, enemy := b.Character(), b.Enemy()
	if !p.announced {
		p.announced = true
		fmt.Fprintln(p.out, Colorf(Bold+BrightRed, "A wild %s appears!", enemy.Name))
	}
	if p.eof {
		return combat.ActionAttack
	}

	ability := combat.AbilityFor(ch.Class)
	abilityLabel := ability.Name
	if ch.AbilityCooldown > 0 {
		abilityLabel += Colorf(Dim, " (cooldown %d)", ch.AbilityCooldown)
	}
	fmt.Fprintf(p.out, "\n%s  %s %s  |  %s %s\n",
		Colorf(Bold, "Turn %d", b.Turn()),
		ch.Name, healthBar(ch.Health, ch.MaxHealth),
		enemy.Name, healthBar(enemy.Health, enemy.MaxHealth))
	fmt.Fprintf(p.out, "1. Attack  2. %s  3. Run\n", abilityLabel)

	for {
		fmt.Fprint(p.out, "Action: ")
		line, err := p.in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			p.eof = true
			return combat.ActionAttack
		}
		if a := combat.ParseAction(strings.TrimSpace(line)); a != combat.ActionUnknown {
			return a
		}
		fmt.Fprintln(p.out, Colorize(Yellow, "Choose 1 (attack), 2 (ability) or 3 (run)."))
	}
}
