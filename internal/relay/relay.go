// Package relay implements the ventriloquist mechanic: a pair of hidden
// channels where everything the ventriloquist types in their control channel
// is reposted verbatim into the puppet's read-only channel.
package relay

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emiliskiskis/mafia-bot/internal/gateway"
)

const (
	ackEmoji  = "✅"
	failEmoji = "❌"
)

// Service tracks active relay routes. Routes live for the process lifetime;
// night-action channels are torn down by hand between games.
type Service struct {
	chat   gateway.Chat
	logger zerolog.Logger

	mu     sync.Mutex
	routes map[string]string // control channel -> puppet channel
}

// New creates a relay service on top of a chat transport.
func New(chat gateway.Chat, logger zerolog.Logger) *Service {
	return &Service{
		chat:   chat,
		logger: logger,
		routes: make(map[string]string),
	}
}

// StartVentriloquy creates the hidden channel pair and registers the relay
// route. The puppet channel is visible to the narrator and the puppet, with
// the puppet unable to send; the control channel is visible to the narrator
// and the ventriloquist.
func (s *Service) StartVentriloquy(ctx context.Context, guildID, groupID, narratorID, ventriloquistID, puppetID string) error {
	suffix := uuid.New().String()[:8]

	puppetCh, err := s.chat.CreateHiddenChannel(ctx, guildID, groupID, "puppet-"+suffix,
		[]string{narratorID, puppetID}, []string{puppetID})
	if err != nil {
		return fmt.Errorf("create puppet channel: %w", err)
	}
	controlCh, err := s.chat.CreateHiddenChannel(ctx, guildID, groupID, "ventriloquist-"+suffix,
		[]string{narratorID, ventriloquistID}, nil)
	if err != nil {
		return fmt.Errorf("create ventriloquist channel: %w", err)
	}

	s.mu.Lock()
	s.routes[controlCh] = puppetCh
	s.mu.Unlock()

	s.logger.Info().
		Str("guild_id", guildID).
		Str("control_channel", controlCh).
		Str("puppet_channel", puppetCh).
		Msg("ventriloquist relay started")
	return nil
}

// Relay forwards a message when its channel is a registered control channel
// and reports whether it consumed the event. The sender gets an ack reaction
// on success and a failure reaction when the repost did not go through.
func (s *Service) Relay(ctx context.Context, ev gateway.MessageEvent) bool {
	s.mu.Lock()
	dest, ok := s.routes[ev.ChannelID]
	s.mu.Unlock()
	if !ok {
		return false
	}

	if _, err := s.chat.SendMessage(ctx, dest, ev.Content); err != nil {
		s.logger.Warn().Err(err).Str("channel_id", dest).Msg("relay delivery failed")
		if err := s.chat.React(ctx, ev.ChannelID, ev.MessageID, failEmoji); err != nil {
			s.logger.Warn().Err(err).Msg("relay failure reaction failed")
		}
		return true
	}
	if err := s.chat.React(ctx, ev.ChannelID, ev.MessageID, ackEmoji); err != nil {
		s.logger.Warn().Err(err).Msg("relay ack reaction failed")
	}
	return true
}

// RouteCount returns the number of active relay routes.
func (s *Service) RouteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.routes)
}
