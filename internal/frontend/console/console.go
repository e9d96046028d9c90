// Package console is the text menu frontend. It reads player input line by
// line from an io.Reader and writes ANSI-colored text to an io.Writer, driving
// the game through a session.Session.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/quest-chronicles/internal/game/session"
)

// Console runs the menus for one player.
type Console struct {
	sess   *session.Session
	in     *bufio.Reader
	out    io.Writer
	logger *zap.Logger
}

// New returns a Console reading from in and writing to out.
//
// Precondition: every argument must be non-nil.
func New(sess *session.Session, in io.Reader, out io.Writer, logger *zap.Logger) *Console {
	if sess == nil || in == nil || out == nil || logger == nil {
		panic("console.New: precondition violated: session, reader, writer and logger are required")
	}
	return &Console{sess: sess, in: bufio.NewReader(in), out: out, logger: logger}
}

// Run shows the welcome banner and loops on the main menu until the player
// exits or input ends.
//
// Postcondition: returns nil on exit or end of input, or the first
// unrecoverable error.
func (c *Console) Run(ctx context.Context) error {
	c.banner()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.println("")
		c.println(Colorize(Bold+BrightCyan, "=== MAIN MENU ==="))
		c.println("1. New Game")
		c.println("2. Load Game")
		c.println("3. Delete Save")
		c.println("4. Exit")
		choice, err := c.prompt("Choose an option (1-4): ")
		if err != nil {
			return endOfInput(err)
		}
		switch choice {
		case "1":
			err = c.newGame(ctx)
		case "2":
			err = c.loadGame(ctx)
		case "3":
			err = c.deleteSave(ctx)
		case "4":
			c.println("\nThanks for playing Quest Chronicles!")
			return nil
		default:
			c.warn("Invalid choice. Please enter 1-4.")
		}
		if err != nil {
			return endOfInput(err)
		}
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *Console) banner() {
	line := strings.Repeat("=", 50)
	c.println(Colorize(BrightYellow, line))
	c.println(Colorize(Bold+BrightYellow, "     QUEST CHRONICLES - A MODULAR RPG ADVENTURE"))
	c.println(Colorize(BrightYellow, line))
	c.println("Welcome! Begin your journey.")
}

func (c *Console) newGame(ctx context.Context) error {
	c.println("")
	c.println(Colorize(Bold+BrightCyan, "=== NEW GAME ==="))
	name, err := c.prompt("Enter your character name: ")
	if err != nil {
		return err
	}
	classes := c.sess.Library().Classes.All()
	c.println("Choose a class:")
	for i, cl := range classes {
		c.printf("%d. %s %s\n", i+1, Colorize(Bold, cl.Name), Colorf(Dim, "(HP %d, STR %d, MAG %d) %s", cl.Health, cl.Strength, cl.Magic, cl.Ability))
	}
	answer, err := c.prompt("Class: ")
	if err != nil {
		return err
	}
	classID := answer
	if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(classes) {
		classID = classes[n-1].ID
	}

	ch, err := c.sess.NewCharacter(ctx, name, classID)
	if err != nil {
		c.failure("Could not create character", err)
		return nil
	}
	c.success(fmt.Sprintf("Character '%s' the %s created successfully!", ch.Name, ch.Class))
	return c.gameLoop(ctx)
}

// pickSave lists the saves and returns the chosen name, or "" if the player
// chose nothing valid.
func (c *Console) pickSave(ctx context.Context) (string, error) {
	names, err := c.sess.ListSaves(ctx)
	if err != nil {
		c.failure("Could not list saves", err)
		return "", nil
	}
	if len(names) == 0 {
		c.warn("No saved characters available.")
		return "", nil
	}
	for i, n := range names {
		c.printf("%d. %s\n", i+1, n)
	}
	choice, err := c.prompt("Select a character number: ")
	if err != nil {
		return "", err
	}
	n, convErr := strconv.Atoi(choice)
	if convErr != nil || n < 1 || n > len(names) {
		c.warn("Invalid selection.")
		return "", nil
	}
	return names[n-1], nil
}

func (c *Console) loadGame(ctx context.Context) error {
	c.println("")
	c.println(Colorize(Bold+BrightCyan, "=== LOAD GAME ==="))
	name, err := c.pickSave(ctx)
	if err != nil || name == "" {
		return err
	}
	ch, err := c.sess.LoadCharacter(ctx, name)
	if err != nil {
		c.failure("Error loading character", err)
		return nil
	}
	c.success(fmt.Sprintf("Loaded character '%s' successfully!", ch.Name))
	return c.gameLoop(ctx)
}

func (c *Console) deleteSave(ctx context.Context) error {
	c.println("")
	c.println(Colorize(Bold+BrightCyan, "=== DELETE SAVE ==="))
	name, err := c.pickSave(ctx)
	if err != nil || name == "" {
		return err
	}
	confirm, err := c.prompt(fmt.Sprintf("Delete %s forever? (y/n): ", name))
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "y") {
		return nil
	}
	if err := c.sess.DeleteSave(ctx, name); err != nil {
		c.failure("Could not delete save", err)
		return nil
	}
	c.success(fmt.Sprintf("Deleted %s.", name))
	return nil
}

// prompt writes label and reads one trimmed line. A final line without a
// newline is returned normally; io.EOF is returned only when nothing was read.
func (c *Console) prompt(label string) (string, error) {
	c.printf("%s", label)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) success(msg string) {
	c.println(Colorize(BrightGreen, msg))
}

func (c *Console) warn(msg string) {
	c.println(Colorize(Yellow, msg))
}

func (c *Console) failure(msg string, err error) {
	c.logger.Debug("menu action failed", zap.String("action", msg), zap.Error(err))
	c.println(Colorf(Red, "%s: %v", msg, err))
}
