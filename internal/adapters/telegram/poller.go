package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/shopfront/internal/engine"
	"github.com/aretw0/shopfront/internal/logging"
	"github.com/aretw0/shopfront/pkg/domain"
)

const pollTimeout = 25 * time.Second

// Poller runs the long-poll loop: update -> event -> engine -> reply.
// Each update is handled in its own goroutine; Telegram serializes delivery
// per chat, so per-conversation ordering is the transport's promise, not ours.
type Poller struct {
	client *Client
	engine *engine.Engine
	logger *slog.Logger

	// last bot message per chat, deleted when a reply asks ReplacePrior.
	mu        sync.Mutex
	lastMsgID map[int64]int64
}

// NewPoller creates the poller.
func NewPoller(client *Client, eng *engine.Engine, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Poller{
		client:    client,
		engine:    eng,
		logger:    logger,
		lastMsgID: make(map[int64]int64),
	}
}

// Run polls until the context is cancelled. Transient getUpdates failures
// are logged and retried after a short pause.
func (p *Poller) Run(ctx context.Context) error {
	var offset int64
	for {
		updates, err := p.client.GetUpdates(ctx, offset, pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Warn("getUpdates failed", "err", err)
			select {
			case <-time.After(3 * time.Second):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			go p.handleUpdate(ctx, update)
		}
	}
}

// ConversationID derives the stable conversation id for a chat.
func ConversationID(chatID int64) string {
	return fmt.Sprintf("tg-%d", chatID)
}

// normalize maps an update to the chat it belongs to and an engine event.
// Returns false for update kinds the bot does not handle.
func normalize(update Update) (int64, string, domain.Event, bool) {
	switch {
	case update.Message != nil:
		chatID := update.Message.Chat.ID
		ev := domain.Event{
			ConversationID: ConversationID(chatID),
			Payload:        domain.Text(update.Message.Text),
		}
		return chatID, "", ev, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		chatID := update.CallbackQuery.Message.Chat.ID
		ev := domain.Event{
			ConversationID: ConversationID(chatID),
			Payload:        domain.Selection(update.CallbackQuery.Data),
		}
		return chatID, update.CallbackQuery.ID, ev, true
	default:
		return 0, "", domain.Event{}, false
	}
}

func (p *Poller) handleUpdate(ctx context.Context, update Update) {
	chatID, callbackID, ev, ok := normalize(update)
	if !ok {
		return
	}

	reply, err := p.engine.HandleEvent(ctx, ev)
	if err != nil {
		// Store failures abandon the turn: nothing is sent, the user
		// re-enters from the prior stored state.
		var storeErr *domain.StoreError
		if errors.As(err, &storeErr) {
			p.logger.Error("turn abandoned", "conversation", ev.ConversationID, "err", err)
			return
		}
		p.logger.Error("turn failed", "conversation", ev.ConversationID, "err", err)
		return
	}

	p.deliver(ctx, chatID, callbackID, reply)
}

// deliver plays a reply back into the chat: ack the callback first, then
// send messages, then drop the prior keyboard message if asked.
func (p *Poller) deliver(ctx context.Context, chatID int64, callbackID string, reply *domain.Reply) {
	if reply == nil {
		return
	}

	if callbackID != "" {
		if err := p.client.AnswerCallbackQuery(ctx, callbackID, reply.Ack); err != nil {
			p.logger.Warn("answerCallbackQuery failed", "chat", chatID, "err", err)
		}
	}

	var lastSent int64
	for _, msg := range reply.Messages {
		var id int64
		var err error
		if msg.ImageURL != "" {
			id, err = p.client.SendPhoto(ctx, chatID, msg.ImageURL, msg.Text, msg.Buttons)
		} else {
			id, err = p.client.SendMessage(ctx, chatID, msg.Text, msg.Buttons)
		}
		if err != nil {
			p.logger.Warn("send failed", "chat", chatID, "err", err)
			continue
		}
		lastSent = id
	}

	if lastSent == 0 {
		return
	}

	p.mu.Lock()
	prior := p.lastMsgID[chatID]
	p.lastMsgID[chatID] = lastSent
	p.mu.Unlock()

	if reply.ReplacePrior && prior != 0 {
		if err := p.client.DeleteMessage(ctx, chatID, prior); err != nil {
			p.logger.Debug("deleteMessage failed", "chat", chatID, "err", err)
		}
	}
}
