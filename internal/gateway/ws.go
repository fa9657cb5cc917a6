package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Frame types exchanged with the chat gateway.
const (
	typeHello    = "hello"
	typeHelloAck = "hello_ack"

	typeMessageEvent  = "event.message"
	typeReactionEvent = "event.reaction"

	typeResult = "result"
	typeError  = "error"

	opSendMessage      = "send_message"
	opReply            = "reply"
	opReact            = "react"
	opDeleteMessage    = "delete_message"
	opMemberInfo       = "member_info"
	opMemberHasRole    = "member_has_role"
	opMemberCanManage  = "member_can_manage"
	opRoleInfo         = "role_info"
	opCreateChannel    = "create_channel"
	opDenySendMessages = "deny_send_messages"
)

const (
	writeTimeout   = 10 * time.Second
	requestTimeout = 15 * time.Second
	pingInterval   = 30 * time.Second
	pongWait       = 60 * time.Second
)

// frame is the wire envelope for every gateway exchange.
type frame struct {
	Type      string          `json:"type"`
	Ts        int64           `json:"ts"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Code      string          `json:"code,omitempty"`
	Message   string          `json:"message,omitempty"`
}

// Client is a websocket chat-gateway client. It owns the single connection:
// a read pump fans events out to the handler and routes request results back
// to their callers.
type Client struct {
	conn    *websocket.Conn
	logger  zerolog.Logger
	handler EventHandler

	writeMu sync.Mutex

	pendingMu sync.Mutex
	pending   map[string]chan frame
}

// Dial connects to the chat gateway and completes the hello handshake.
func Dial(ctx context.Context, url, token string, handler EventHandler, logger zerolog.Logger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial gateway: %w", err)
	}

	c := &Client{
		conn:    conn,
		logger:  logger,
		handler: handler,
		pending: make(map[string]chan frame),
	}

	hello := struct {
		Token      string            `json:"token"`
		ClientMeta map[string]string `json:"client_meta,omitempty"`
	}{
		Token:      token,
		ClientMeta: map[string]string{"client": "mafia-bot"},
	}
	data, err := json.Marshal(hello)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := c.writeFrame(frame{Type: typeHello, Ts: time.Now().UnixMilli(), Data: data}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("write hello: %w", err)
	}

	var ack frame
	if err := conn.ReadJSON(&ack); err != nil {
		conn.Close()
		return nil, fmt.Errorf("read hello_ack: %w", err)
	}
	if ack.Type == typeError {
		conn.Close()
		return nil, fmt.Errorf("gateway rejected hello: %s", ack.Message)
	}
	if ack.Type != typeHelloAck {
		conn.Close()
		return nil, fmt.Errorf("unexpected handshake frame %q", ack.Type)
	}

	return c, nil
}

// Close closes the gateway connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Run reads gateway frames until the connection drops or ctx is cancelled.
// Events are handed to the handler in their own goroutines so a pending
// confirmation never stalls the read loop.
func (c *Client) Run(ctx context.Context) error {
	go c.pingLoop(ctx)

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var f frame
		if err := c.conn.ReadJSON(&f); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return fmt.Errorf("gateway read: %w", err)
			}
			return err
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))

		switch f.Type {
		case typeMessageEvent:
			var ev MessageEvent
			if err := json.Unmarshal(f.Data, &ev); err != nil {
				c.logger.Warn().Err(err).Msg("bad message event")
				continue
			}
			go c.handler.HandleMessage(ctx, ev)
		case typeReactionEvent:
			var ev ReactionEvent
			if err := json.Unmarshal(f.Data, &ev); err != nil {
				c.logger.Warn().Err(err).Msg("bad reaction event")
				continue
			}
			go c.handler.HandleReaction(ctx, ev)
		case typeResult, typeError:
			c.resolvePending(f)
		default:
			c.logger.Warn().Str("type", f.Type).Msg("unknown gateway frame")
		}
	}
}

func (c *Client) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.writeMu.Lock()
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (c *Client) writeFrame(f frame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(f)
}

func (c *Client) resolvePending(f frame) {
	c.pendingMu.Lock()
	ch, ok := c.pending[f.RequestID]
	if ok {
		delete(c.pending, f.RequestID)
	}
	c.pendingMu.Unlock()
	if !ok {
		c.logger.Warn().Str("request_id", f.RequestID).Msg("result for unknown request")
		return
	}
	ch <- f
}

// request performs one request/response exchange over the connection.
func (c *Client) request(ctx context.Context, op string, payload any) (json.RawMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	ch := make(chan frame, 1)
	c.pendingMu.Lock()
	c.pending[id] = ch
	c.pendingMu.Unlock()

	f := frame{Type: op, Ts: time.Now().UnixMilli(), RequestID: id, Data: data}
	if err := c.writeFrame(f); err != nil {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
		return nil, fmt.Errorf("write %s: %w", op, err)
	}

	timer := time.NewTimer(requestTimeout)
	defer timer.Stop()
	select {
	case resp := <-ch:
		if resp.Type == typeError {
			return nil, fmt.Errorf("gateway %s: %s (%s)", op, resp.Message, resp.Code)
		}
		return resp.Data, nil
	case <-timer.C:
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
		return nil, fmt.Errorf("gateway %s: timed out", op)
	case <-ctx.Done():
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
		return nil, ctx.Err()
	}
}

// SendMessage posts to a channel and returns the new message id.
func (c *Client) SendMessage(ctx context.Context, channelID, content string) (string, error) {
	resp, err := c.request(ctx, opSendMessage, map[string]string{
		"channel_id": channelID,
		"content":    content,
	})
	if err != nil {
		return "", err
	}
	var out struct {
		MessageID string `json:"message_id"`
	}
	if err := json.Unmarshal(resp, &out); err != nil {
		return "", err
	}
	return out.MessageID, nil
}

// Reply addresses a participant in a channel.
func (c *Client) Reply(ctx context.Context, channelID, userID, content string) error {
	_, err := c.request(ctx, opReply, map[string]string{
		"channel_id": channelID,
		"user_id":    userID,
		"content":    content,
	})
	return err
}

// React adds an emoji reaction to a message.
func (c *Client) React(ctx context.Context, channelID, messageID, emoji string) error {
	_, err := c.request(ctx, opReact, map[string]string{
		"channel_id": channelID,
		"message_id": messageID,
		"emoji":      emoji,
	})
	return err
}

// DeleteMessage removes a message the bot posted.
func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	_, err := c.request(ctx, opDeleteMessage, map[string]string{
		"channel_id": channelID,
		"message_id": messageID,
	})
	return err
}

// MemberDisplayName resolves a guild member's current display name.
func (c *Client) MemberDisplayName(ctx context.Context, guildID, userID string) (string, error) {
	resp, err := c.request(ctx, opMemberInfo, map[string]string{
		"guild_id": guildID,
		"user_id":  userID,
	})
	if err != nil {
		return "", err
	}
	var out struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.Unmarshal(resp, &out); err != nil {
		return "", err
	}
	return out.DisplayName, nil
}

// MemberHasRole reports whether a member holds a guild role.
func (c *Client) MemberHasRole(ctx context.Context, guildID, userID, roleID string) (bool, error) {
	resp, err := c.request(ctx, opMemberHasRole, map[string]string{
		"guild_id": guildID,
		"user_id":  userID,
		"role_id":  roleID,
	})
	if err != nil {
		return false, err
	}
	var out struct {
		HasRole bool `json:"has_role"`
	}
	if err := json.Unmarshal(resp, &out); err != nil {
		return false, err
	}
	return out.HasRole, nil
}

// MemberCanManageGuild reports whether a member may change guild settings.
func (c *Client) MemberCanManageGuild(ctx context.Context, guildID, userID string) (bool, error) {
	resp, err := c.request(ctx, opMemberCanManage, map[string]string{
		"guild_id": guildID,
		"user_id":  userID,
	})
	if err != nil {
		return false, err
	}
	var out struct {
		CanManage bool `json:"can_manage"`
	}
	if err := json.Unmarshal(resp, &out); err != nil {
		return false, err
	}
	return out.CanManage, nil
}

// RoleName resolves a guild role's name.
func (c *Client) RoleName(ctx context.Context, guildID, roleID string) (string, error) {
	resp, err := c.request(ctx, opRoleInfo, map[string]string{
		"guild_id": guildID,
		"role_id":  roleID,
	})
	if err != nil {
		return "", err
	}
	var out struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(resp, &out); err != nil {
		return "", err
	}
	return out.Name, nil
}

// CreateHiddenChannel creates a restricted text channel in a channel group.
func (c *Client) CreateHiddenChannel(ctx context.Context, guildID, groupID, name string, viewers, readOnly []string) (string, error) {
	resp, err := c.request(ctx, opCreateChannel, map[string]any{
		"guild_id":  guildID,
		"group_id":  groupID,
		"name":      name,
		"viewers":   viewers,
		"read_only": readOnly,
	})
	if err != nil {
		return "", err
	}
	var out struct {
		ChannelID string `json:"channel_id"`
	}
	if err := json.Unmarshal(resp, &out); err != nil {
		return "", err
	}
	return out.ChannelID, nil
}

// DenySendMessages removes a member's permission to send in a channel.
func (c *Client) DenySendMessages(ctx context.Context, channelID, userID string) error {
	_, err := c.request(ctx, opDenySendMessages, map[string]string{
		"channel_id": channelID,
		"user_id":    userID,
	})
	return err
}
