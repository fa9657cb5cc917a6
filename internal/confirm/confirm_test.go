package confirm

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/emiliskiskis/mafia-bot/internal/gateway"
)

// fakeChat records outbound traffic and satisfies gateway.Chat.
type fakeChat struct {
	mu       sync.Mutex
	nextID   int
	sent     []string
	reacted  []string
	deleted  []string
	failSend bool
}

func (f *fakeChat) SendMessage(ctx context.Context, channelID, content string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSend {
		return "", fmt.Errorf("send refused")
	}
	f.nextID++
	f.sent = append(f.sent, content)
	return fmt.Sprintf("msg-%d", f.nextID), nil
}

func (f *fakeChat) Reply(ctx context.Context, channelID, userID, content string) error {
	return nil
}

func (f *fakeChat) React(ctx context.Context, channelID, messageID, emoji string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reacted = append(f.reacted, messageID+":"+emoji)
	return nil
}

func (f *fakeChat) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeChat) MemberDisplayName(ctx context.Context, guildID, userID string) (string, error) {
	return userID, nil
}

func (f *fakeChat) MemberHasRole(ctx context.Context, guildID, userID, roleID string) (bool, error) {
	return false, nil
}

func (f *fakeChat) MemberCanManageGuild(ctx context.Context, guildID, userID string) (bool, error) {
	return false, nil
}

func (f *fakeChat) RoleName(ctx context.Context, guildID, roleID string) (string, error) {
	return "", nil
}

func (f *fakeChat) CreateHiddenChannel(ctx context.Context, guildID, groupID, name string, viewers, readOnly []string) (string, error) {
	return "", nil
}

func (f *fakeChat) DenySendMessages(ctx context.Context, channelID, userID string) error {
	return nil
}

func (f *fakeChat) deletedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deleted)
}

func newTestGate(t *testing.T) (*Gate, *fakeChat) {
	t.Helper()
	chat := &fakeChat{}
	return NewGate(chat, zerolog.Nop()), chat
}

func TestAcceptRunsCallbackOnce(t *testing.T) {
	gate, _ := newTestGate(t)

	var accepts int
	err := gate.RequestConfirmation(context.Background(), Request{
		ChannelID:   "chan",
		RequesterID: "alice",
		Prompt:      "replace?",
		Timeout:     time.Minute,
		OnAccept:    func(ctx context.Context) { accepts++ },
	})
	require.NoError(t, err)
	require.Equal(t, 1, gate.PendingCount())

	ev := gateway.ReactionEvent{MessageID: "msg-1", ChannelID: "chan", UserID: "alice", Emoji: AcceptEmoji}
	require.True(t, gate.HandleReaction(ev))
	require.Equal(t, 1, accepts)
	require.Equal(t, 0, gate.PendingCount())

	// A second signal for the same prompt is a no-op.
	require.False(t, gate.HandleReaction(ev))
	require.Equal(t, 1, accepts)
}

func TestDeclineRunsDeclineCallback(t *testing.T) {
	gate, _ := newTestGate(t)

	var accepts, declines int
	err := gate.RequestConfirmation(context.Background(), Request{
		ChannelID:   "chan",
		RequesterID: "alice",
		Prompt:      "replace?",
		Timeout:     time.Minute,
		OnAccept:    func(ctx context.Context) { accepts++ },
		OnDecline:   func(ctx context.Context) { declines++ },
	})
	require.NoError(t, err)

	gate.HandleReaction(gateway.ReactionEvent{MessageID: "msg-1", UserID: "alice", Emoji: DeclineEmoji})
	require.Equal(t, 0, accepts)
	require.Equal(t, 1, declines)
}

func TestNonRequesterReactionsIgnored(t *testing.T) {
	gate, _ := newTestGate(t)

	var accepts int
	err := gate.RequestConfirmation(context.Background(), Request{
		ChannelID:   "chan",
		RequesterID: "alice",
		Prompt:      "replace?",
		Timeout:     time.Minute,
		OnAccept:    func(ctx context.Context) { accepts++ },
	})
	require.NoError(t, err)

	// Someone else reacting belongs to the prompt but never resolves it.
	handled := gate.HandleReaction(gateway.ReactionEvent{MessageID: "msg-1", UserID: "mallory", Emoji: AcceptEmoji})
	require.True(t, handled)
	require.Equal(t, 0, accepts)
	require.Equal(t, 1, gate.PendingCount())

	// Unrelated emoji from the requester is ignored too.
	gate.HandleReaction(gateway.ReactionEvent{MessageID: "msg-1", UserID: "alice", Emoji: "🎉"})
	require.Equal(t, 0, accepts)
	require.Equal(t, 1, gate.PendingCount())
}

func TestUnknownMessageNotHandled(t *testing.T) {
	gate, _ := newTestGate(t)
	handled := gate.HandleReaction(gateway.ReactionEvent{MessageID: "nope", UserID: "alice", Emoji: AcceptEmoji})
	require.False(t, handled)
}

func TestTimeoutCountsAsDecline(t *testing.T) {
	gate, chat := newTestGate(t)

	declined := make(chan struct{})
	err := gate.RequestConfirmation(context.Background(), Request{
		ChannelID:   "chan",
		RequesterID: "alice",
		Prompt:      "replace?",
		Timeout:     20 * time.Millisecond,
		OnAccept:    func(ctx context.Context) { t.Error("accept must not run on timeout") },
		OnDecline:   func(ctx context.Context) { close(declined) },
	})
	require.NoError(t, err)

	select {
	case <-declined:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout never fired")
	}
	require.Equal(t, 0, gate.PendingCount())
	require.Eventually(t, func() bool { return chat.deletedCount() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestPromptAlwaysDeleted(t *testing.T) {
	gate, chat := newTestGate(t)

	err := gate.RequestConfirmation(context.Background(), Request{
		ChannelID:   "chan",
		RequesterID: "alice",
		Prompt:      "replace?",
		Timeout:     time.Minute,
		OnAccept:    func(ctx context.Context) {},
	})
	require.NoError(t, err)

	gate.HandleReaction(gateway.ReactionEvent{MessageID: "msg-1", UserID: "alice", Emoji: AcceptEmoji})
	require.Equal(t, []string{"msg-1"}, chat.deleted)
}

func TestSetupFailureSendsNothingPending(t *testing.T) {
	chat := &fakeChat{failSend: true}
	gate := NewGate(chat, zerolog.Nop())

	err := gate.RequestConfirmation(context.Background(), Request{
		ChannelID:   "chan",
		RequesterID: "alice",
		Prompt:      "replace?",
		OnAccept:    func(ctx context.Context) {},
	})
	require.Error(t, err)
	require.Equal(t, 0, gate.PendingCount())
}
