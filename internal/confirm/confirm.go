// Package confirm implements the accept/decline gate that guards
// destructive state overwrites. A prompt is posted with two reaction
// affordances; only the original requester can resolve it, a timeout counts
// as decline, and the prompt message is always cleaned up.
package confirm

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/emiliskiskis/mafia-bot/internal/gateway"
	"github.com/emiliskiskis/mafia-bot/internal/metrics"
)

const (
	// AcceptEmoji and DeclineEmoji are the two reaction affordances.
	AcceptEmoji  = "✅" // white heavy check mark
	DeclineEmoji = "❌" // cross mark

	// DefaultTimeout is how long a prompt waits before counting as declined.
	DefaultTimeout = 30 * time.Second

	// callbackTimeout bounds the accept/decline callback, which runs
	// detached from the originating command's context.
	callbackTimeout = 30 * time.Second
)

// Request describes one confirmation.
type Request struct {
	ChannelID   string
	RequesterID string
	Prompt      string

	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration

	// OnAccept runs exactly once if the requester accepts.
	OnAccept func(ctx context.Context)

	// OnDecline is optional; decline and timeout are a silent no-op
	// without it.
	OnDecline func(ctx context.Context)
}

type pending struct {
	req       Request
	messageID string
	timer     *time.Timer
}

// Gate tracks pending confirmations keyed by prompt message id. One gate
// serves all sessions; prompts from different sessions never collide because
// message ids are globally unique.
type Gate struct {
	chat   gateway.Chat
	logger zerolog.Logger

	mu      sync.Mutex
	pending map[string]*pending
}

// NewGate creates a confirmation gate on top of a chat transport.
func NewGate(chat gateway.Chat, logger zerolog.Logger) *Gate {
	return &Gate{
		chat:    chat,
		logger:  logger,
		pending: make(map[string]*pending),
	}
}

// RequestConfirmation posts the prompt with its two affordances and registers
// the pending confirmation. It returns once the prompt is up; the wait for a
// signal happens on the gate's own time, so the caller's command handler
// finishes and unrelated sessions keep flowing.
func (g *Gate) RequestConfirmation(ctx context.Context, req Request) error {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	messageID, err := g.chat.SendMessage(ctx, req.ChannelID, req.Prompt)
	if err != nil {
		return err
	}

	// Prompt cleanup on any setup failure; once registered, resolution
	// paths own the cleanup.
	if err := g.chat.React(ctx, req.ChannelID, messageID, AcceptEmoji); err != nil {
		g.deletePrompt(req.ChannelID, messageID)
		return err
	}
	if err := g.chat.React(ctx, req.ChannelID, messageID, DeclineEmoji); err != nil {
		g.deletePrompt(req.ChannelID, messageID)
		return err
	}

	p := &pending{req: req, messageID: messageID}
	p.timer = time.AfterFunc(timeout, func() {
		g.resolve(messageID, false, "timeout")
	})

	g.mu.Lock()
	g.pending[messageID] = p
	g.mu.Unlock()

	return nil
}

// HandleReaction feeds a gateway reaction event into the gate. It reports
// whether the event belonged to a pending prompt; reactions from anyone but
// the requester, and emojis outside the two affordances, are ignored.
func (g *Gate) HandleReaction(ev gateway.ReactionEvent) bool {
	g.mu.Lock()
	p, ok := g.pending[ev.MessageID]
	g.mu.Unlock()
	if !ok {
		return false
	}

	if ev.UserID != p.req.RequesterID {
		return true
	}

	switch ev.Emoji {
	case AcceptEmoji:
		g.resolve(ev.MessageID, true, "accept")
	case DeclineEmoji:
		g.resolve(ev.MessageID, false, "decline")
	}
	return true
}

// PendingCount returns the number of unresolved prompts.
func (g *Gate) PendingCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

// resolve fires a pending confirmation at most once. Removal from the map
// under the lock is what makes a second signal (or the timer racing a
// reaction) a no-op.
func (g *Gate) resolve(messageID string, accepted bool, result string) {
	g.mu.Lock()
	p, ok := g.pending[messageID]
	if ok {
		delete(g.pending, messageID)
	}
	g.mu.Unlock()
	if !ok {
		return
	}
	p.timer.Stop()

	metrics.ConfirmationsTotal.WithLabelValues(result).Inc()

	defer g.deletePrompt(p.req.ChannelID, p.messageID)

	ctx, cancel := context.WithTimeout(context.Background(), callbackTimeout)
	defer cancel()

	if accepted {
		p.req.OnAccept(ctx)
		return
	}
	if p.req.OnDecline != nil {
		p.req.OnDecline(ctx)
	}
}

func (g *Gate) deletePrompt(channelID, messageID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := g.chat.DeleteMessage(ctx, channelID, messageID); err != nil {
		g.logger.Warn().Err(err).Str("message_id", messageID).Msg("failed to delete confirmation prompt")
	}
}
