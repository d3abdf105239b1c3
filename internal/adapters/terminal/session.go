// Package terminal is a local transport for driving the conversation from a
// TTY, mainly for development against a sandbox store.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/shopfront/internal/engine"
	"github.com/aretw0/shopfront/pkg/domain"
)

// Session drives one conversation over stdin/stdout. Button presses are
// simulated: the session numbers the buttons of the last reply and maps a
// typed number (or exact label/data match) to a Selection payload; anything
// else is sent as Text.
type Session struct {
	engine *engine.Engine
	convID string
	in     io.Reader
	out    io.Writer

	output  *termenv.Output
	buttons []domain.Button
}

// New creates a terminal session for the given conversation id.
func New(eng *engine.Engine, conversationID string, in io.Reader, out io.Writer) *Session {
	return &Session{
		engine: eng,
		convID: conversationID,
		in:     in,
		out:    out,
		output: termenv.NewOutput(out),
	}
}

// Interactive reports whether stdin is a TTY. The chat command refuses to
// run without one, since the session blocks on line input.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Run reads lines until EOF or context cancellation, feeding each through
// the engine. The first turn is a synthetic /start.
func (s *Session) Run(ctx context.Context) error {
	if err := s.turn(ctx, domain.Text("/start")); err != nil {
		return err
	}

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := s.turn(ctx, s.payloadFor(line)); err != nil {
			return err
		}
	}
}

// payloadFor decides between a simulated button press and plain text.
func (s *Session) payloadFor(line string) domain.Payload {
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(s.buttons) {
		return domain.Selection(s.buttons[n-1].Data)
	}
	for _, b := range s.buttons {
		if strings.EqualFold(line, b.Label) || line == b.Data {
			return domain.Selection(b.Data)
		}
	}
	return domain.Text(line)
}

func (s *Session) turn(ctx context.Context, payload domain.Payload) error {
	reply, err := s.engine.HandleEvent(ctx, domain.Event{
		ConversationID: s.convID,
		Payload:        payload,
	})
	if err != nil {
		return err
	}
	s.render(reply)
	return nil
}

func (s *Session) render(reply *domain.Reply) {
	if reply == nil {
		return
	}

	if reply.Ack != "" {
		fmt.Fprintln(s.out, s.output.String(reply.Ack).Faint().Italic())
	}

	s.buttons = s.buttons[:0]
	for _, msg := range reply.Messages {
		if msg.ImageURL != "" {
			fmt.Fprintln(s.out, s.output.String("[image] "+msg.ImageURL).Faint())
		}
		if msg.Text != "" {
			fmt.Fprintln(s.out, msg.Text)
		}
		for _, row := range msg.Buttons {
			for _, b := range row {
				s.buttons = append(s.buttons, b)
				label := fmt.Sprintf("  [%d] %s", len(s.buttons), b.Label)
				fmt.Fprintln(s.out, s.output.String(label).Bold())
			}
		}
	}
}
