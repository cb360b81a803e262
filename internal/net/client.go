package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
)

// Client talks to a battle server and provides a terminal REPL.
type Client struct {
	conn io.ReadWriter
	in   *bufio.Reader
	out  io.Writer
}

// NewClient creates a client reading commands from in and drawing to out.
func NewClient(conn io.ReadWriter, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: bufio.NewReader(in), out: out}
}

// Connect dials a server and plays from the terminal.
func Connect(ctx context.Context, addr string, start ClientMessage) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	fmt.Println("Connected! Calling the plumbers...")
	return NewClient(conn, os.Stdin, os.Stdout).Run(ctx, start)
}

// Run sends start, then renders server messages and answers them with the
// player's commands until the player quits.
func (c *Client) Run(ctx context.Context, start ClientMessage) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	if err := enc.Encode(start); err != nil {
		return fmt.Errorf("send start: %w", err)
	}

	opening := true
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		var next ClientMessage
		switch msg.Type {
		case MsgState, MsgRejected:
			if opening && msg.State != nil {
				c.renderLog(msg.State.Log)
				opening = false
			}
			c.renderEvents(msg.Events)
			if msg.Type == MsgRejected {
				fmt.Fprintf(c.out, "! %s\n", msg.Error)
			}
			c.renderState(msg.State)
			next = c.readCommand(msg.State)

		case MsgGameOver:
			c.renderEvents(msg.Events)
			c.renderGameOver(msg)
			next = c.readRetry()
			opening = true

		case MsgError:
			return fmt.Errorf("server: %s", msg.Error)

		default:
			continue
		}

		if err := enc.Encode(next); err != nil {
			return fmt.Errorf("send %s: %w", next.Type, err)
		}
		if next.Type == MsgQuit {
			return nil
		}
	}
}

func (c *Client) renderLog(lines []string) {
	for _, line := range lines {
		fmt.Fprintf(c.out, "    %s\n", line)
	}
}

func (c *Client) renderEvents(events []EventView) {
	for _, ev := range events {
		// Format like the TextLogger
		phase := ev.Phase
		for len(phase) < 14 {
			phase += " "
		}
		fmt.Fprintf(c.out, "T%-2d %s| %s\n", ev.Turn, phase, ev.Details)
	}
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}
	em := sv.Emergency

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╔══════════════════════════════════════════════════════╗")
	fmt.Fprintf(c.out, "║  %s  HP: %d/%d  Turns left: %d\n", strings.ToUpper(em.Name), em.HP, em.MaxHP, em.TurnsLeft)
	fmt.Fprintln(c.out, "║──────────────────────────────────────────────────────")
	if p := sv.Plumber; p != nil {
		fmt.Fprintf(c.out, "║  Plumber: %s (HP: %d/%d)  Fix: %d/turn\n", p.Name, p.HP, p.MaxHP, p.Damage)
	} else {
		fmt.Fprintln(c.out, "║  Plumber: [ ]")
	}
	fmt.Fprintf(c.out, "║  Damage x%.2f  Health x%.2f", sv.DamageMultiplier, sv.HealthMultiplier)
	if len(sv.ActiveEffects) > 0 {
		fmt.Fprintf(c.out, "  [%s]", strings.Join(sv.ActiveEffects, ", "))
	}
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "║  Hand: %d  Draw: %d  Discard: %d\n", len(sv.Hand), sv.DrawCount, sv.DiscardCount)
	fmt.Fprintln(c.out, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | %s", sv.Turn, sv.Phase)
	if sv.CanUndo {
		turnInfo += " | undo available"
	}
	fmt.Fprintln(c.out, turnInfo)

	if len(sv.Hand) > 0 {
		fmt.Fprintln(c.out, "\nHand:")
		for _, cv := range sv.Hand {
			fmt.Fprintf(c.out, "  %d) %s\n", cv.Index+1, cv.Summary)
		}
	}
}

func (c *Client) renderGameOver(msg ServerMessage) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "═══════════════════════════════════")
	switch msg.Status {
	case "victory":
		fmt.Fprintln(c.out, "       EMERGENCY FIXED!")
		fmt.Fprintf(c.out, "       +%d coins\n", msg.Coins)
	default:
		fmt.Fprintln(c.out, "       THE HOUSE IS FLOODED")
	}
	fmt.Fprintln(c.out, "═══════════════════════════════════")
	if msg.Error != "" {
		fmt.Fprintf(c.out, "! %s\n", msg.Error)
	}
}

func (c *Client) printHelp() {
	fmt.Fprintln(c.out, "  <n>  play card n from your hand")
	fmt.Fprintln(c.out, "  e    end the turn")
	fmt.Fprintln(c.out, "  u    undo the last move")
	fmt.Fprintln(c.out, "  q    quit")
}

// readCommand prompts until the player enters a valid command. End of
// input quits.
func (c *Client) readCommand(sv *StateView) ClientMessage {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		line = strings.TrimSpace(strings.ToLower(line))
		if line == "" && err != nil {
			return ClientMessage{Type: MsgQuit}
		}

		switch line {
		case "":
			continue
		case "e", "end":
			return ClientMessage{Type: MsgEndTurn}
		case "u", "undo":
			if sv != nil && !sv.CanUndo {
				fmt.Fprintln(c.out, "Nothing to undo")
				continue
			}
			return ClientMessage{Type: MsgUndo}
		case "q", "quit":
			return ClientMessage{Type: MsgQuit}
		case "h", "?", "help":
			c.printHelp()
			continue
		}

		count := 0
		if sv != nil {
			count = len(sv.Hand)
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > count {
			if count == 0 {
				fmt.Fprintln(c.out, "Your hand is empty, enter e to end the turn")
			} else {
				fmt.Fprintf(c.out, "Enter a card number between 1 and %d, or h for help\n", count)
			}
			continue
		}
		return ClientMessage{Type: MsgPlay, Card: sv.Hand[n-1].ID}
	}
}

func (c *Client) readRetry() ClientMessage {
	for {
		fmt.Fprint(c.out, "[r]etry or [q]uit: ")
		line, err := c.in.ReadString('\n')
		switch strings.TrimSpace(strings.ToLower(line)) {
		case "r", "retry":
			return ClientMessage{Type: MsgRetry}
		case "q", "quit":
			return ClientMessage{Type: MsgQuit}
		}
		if err != nil {
			return ClientMessage{Type: MsgQuit}
		}
	}
}
