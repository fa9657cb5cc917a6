package command

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/emiliskiskis/mafia-bot/internal/config"
	"github.com/emiliskiskis/mafia-bot/internal/confirm"
	"github.com/emiliskiskis/mafia-bot/internal/game"
	"github.com/emiliskiskis/mafia-bot/internal/gateway"
	"github.com/emiliskiskis/mafia-bot/internal/metrics"
	"github.com/emiliskiskis/mafia-bot/internal/models"
	"github.com/emiliskiskis/mafia-bot/internal/relay"
	"github.com/emiliskiskis/mafia-bot/internal/store"
)

// keyedMutex hands out one mutex per session key. Commands against the same
// key run strictly one at a time; different keys never contend.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
	return m.Unlock
}

func settingsKey(guildID string) string { return "settings:" + guildID }

func sessionKey(guildID, groupID string) string { return "session:" + guildID + "/" + groupID }

// Dispatcher is the gateway event handler: it parses the command prefix,
// resolves the session key, serializes the load-mutate-persist cycle on that
// key and renders handler errors back to the issuer.
type Dispatcher struct {
	cfg      *config.Config
	gameCfg  game.Config
	store    store.SessionStore
	limiter  *store.RedisStore
	logger   zerolog.Logger
	registry *Registry
	locks    *keyedMutex
	now      func() time.Time

	chat  gateway.Chat
	gate  *confirm.Gate
	relay *relay.Service
}

// New creates the dispatcher and registers the command table. The limiter is
// optional; without it commands are never rate limited.
func New(cfg *config.Config, gameCfg game.Config, st store.SessionStore, limiter *store.RedisStore, logger zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		cfg:      cfg,
		gameCfg:  gameCfg,
		store:    st,
		limiter:  limiter,
		logger:   logger,
		registry: NewRegistry(),
		locks:    newKeyedMutex(),
		now:      time.Now,
	}
	d.register()
	return d
}

// Bind attaches the transport-side collaborators. The dispatcher is handed to
// the gateway before the connection exists, so chat, the confirmation gate and
// the relay arrive in this second step.
func (d *Dispatcher) Bind(chat gateway.Chat, gate *confirm.Gate, rl *relay.Service) {
	d.chat = chat
	d.gate = gate
	d.relay = rl
}

func (d *Dispatcher) register() {
	d.registry.Register(Command{Name: "help", Help: "list available commands", Scope: ScopeBasic, Handler: d.help})
	d.registry.Register(Command{Name: "join", Help: "sign up for the next game", Scope: ScopeGame, Handler: d.join})
	d.registry.Register(Command{Name: "leave", Help: "withdraw from the signup list", Scope: ScopeGame, Handler: d.leave})
	d.registry.Register(Command{Name: "playerlist", Help: "show the current signup list", Scope: ScopeGame, Handler: d.playerList})
	d.registry.Register(Command{Name: "setnarratorrole", ArgHelp: "@role", Help: "set the server role that may claim narrator", Scope: ScopeGuild, Handler: d.setNarratorRole})
	d.registry.Register(Command{Name: "setsignupchannel", Help: "make this channel the signup channel", Scope: ScopeBoth, Handler: d.setSignupChannel})
	d.registry.Register(Command{Name: "setnarrator", ArgHelp: "[@user]", Help: "set yourself or a tagged user as narrator", Scope: ScopeBoth, Handler: d.setNarrator})
	d.registry.Register(Command{Name: "setphasetime", ArgHelp: "HH:mm", Help: "set the daily phase change time (UTC)", Scope: ScopeGame, Handler: d.setPhaseTime})
	d.registry.Register(Command{Name: "start", Help: "lock the roster and deal roles", Scope: ScopeGame, Handler: d.start})
	d.registry.Register(Command{Name: "investigate", ArgHelp: "@user", Help: "narrator: look up a player's investigation result", Scope: ScopeGame, Handler: d.investigate})
	d.registry.Register(Command{Name: "blackmail", ArgHelp: "@user", Help: "narrator: silence a player in the town square", Scope: ScopeGame, Handler: d.blackmail})
	d.registry.Register(Command{Name: "ventriloquist", ArgHelp: "@ventriloquist @puppet", Help: "narrator: set up ventriloquist channels", Scope: ScopeGame, Handler: d.ventriloquist})
}

// HandleMessage implements gateway.EventHandler.
func (d *Dispatcher) HandleMessage(ctx context.Context, ev gateway.MessageEvent) {
	metrics.GatewayEvents.WithLabelValues("message").Inc()
	if ev.AuthorBot {
		return
	}

	if !strings.HasPrefix(ev.Content, d.cfg.CommandPrefix) {
		if d.relay != nil {
			d.relay.Relay(ctx, ev)
		}
		return
	}

	fields := strings.Fields(strings.TrimPrefix(ev.Content, d.cfg.CommandPrefix))
	if len(fields) == 0 {
		return
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	cmd, ok := d.registry.Lookup(name)
	if !ok {
		d.reply(ctx, ev, fmt.Sprintf("no such command, type %shelp for a list of commands", d.cfg.CommandPrefix))
		return
	}

	if !d.allowCommand(ctx, ev.AuthorID) {
		metrics.RateLimitHits.Inc()
		return
	}

	start := d.now()
	err := d.execute(ctx, cmd, ev, args)
	metrics.CommandDuration.WithLabelValues(cmd.Name).Observe(d.now().Sub(start).Seconds())

	switch {
	case err == nil:
		metrics.CommandsTotal.WithLabelValues(cmd.Name, "ok").Inc()
	case game.IsValidation(err):
		metrics.CommandsTotal.WithLabelValues(cmd.Name, "rejected").Inc()
		d.reply(ctx, ev, err.Error())
	default:
		metrics.CommandsTotal.WithLabelValues(cmd.Name, "error").Inc()
		d.logger.Error().Err(err).
			Str("command", cmd.Name).
			Str("guild_id", ev.GuildID).
			Str("channel_id", ev.ChannelID).
			Str("user_id", ev.AuthorID).
			Msg("command failed")
		d.reply(ctx, ev, "something went wrong executing the command, try again later")
	}
}

// HandleReaction implements gateway.EventHandler. Reactions only matter to
// pending confirmation prompts.
func (d *Dispatcher) HandleReaction(ctx context.Context, ev gateway.ReactionEvent) {
	metrics.GatewayEvents.WithLabelValues("reaction").Inc()
	if d.gate != nil {
		d.gate.HandleReaction(ev)
	}
}

// execute loads and locks the records the command's scope names, then runs
// the handler. Lock order is always settings before session so ScopeBoth
// commands cannot deadlock against each other.
func (d *Dispatcher) execute(ctx context.Context, cmd Command, ev gateway.MessageEvent, args []string) error {
	needsGuild := cmd.Scope == ScopeGuild || cmd.Scope == ScopeBoth
	needsGame := cmd.Scope == ScopeGame || cmd.Scope == ScopeBoth

	if (needsGuild || needsGame) && ev.GuildID == "" {
		return game.Validationf("the command only works in a server text channel")
	}
	if needsGame && ev.GroupID == "" {
		return game.Validationf("the text channel has to be in a channel category")
	}

	cc := &Context{Event: ev, Args: args, d: d}

	if needsGuild {
		unlock := d.locks.lock(settingsKey(ev.GuildID))
		defer unlock()

		settings, err := d.loadSettings(ctx, ev.GuildID)
		if err != nil {
			return err
		}
		cc.Settings = &settings
		cc.SaveSettings = func(ctx context.Context) error {
			return d.putSettings(ctx, ev.GuildID, *cc.Settings)
		}
	}
	if needsGame {
		unlock := d.locks.lock(sessionKey(ev.GuildID, ev.GroupID))
		defer unlock()

		session, err := d.loadSession(ctx, ev.GuildID, ev.GroupID)
		if err != nil {
			return err
		}
		cc.Session = &session
		cc.SaveSession = func(ctx context.Context) error {
			return d.putSession(ctx, ev.GuildID, ev.GroupID, *cc.Session)
		}
	}

	return cmd.Handler(ctx, cc)
}

// withSettings runs fn against a freshly loaded guild settings record under
// the settings lock and persists the result. Confirmation callbacks use this
// instead of the stale record their command saw.
func (d *Dispatcher) withSettings(ctx context.Context, guildID string, fn func(*models.GuildSettings) error) error {
	unlock := d.locks.lock(settingsKey(guildID))
	defer unlock()

	settings, err := d.loadSettings(ctx, guildID)
	if err != nil {
		return err
	}
	if err := fn(&settings); err != nil {
		return err
	}
	return d.putSettings(ctx, guildID, settings)
}

// withSession is withSettings for game sessions.
func (d *Dispatcher) withSession(ctx context.Context, guildID, groupID string, fn func(*models.GameSession) error) error {
	unlock := d.locks.lock(sessionKey(guildID, groupID))
	defer unlock()

	session, err := d.loadSession(ctx, guildID, groupID)
	if err != nil {
		return err
	}
	if err := fn(&session); err != nil {
		return err
	}
	return d.putSession(ctx, guildID, groupID, session)
}

func (d *Dispatcher) allowCommand(ctx context.Context, userID string) bool {
	if d.limiter == nil {
		return true
	}
	allowed, err := d.limiter.CheckRateLimit(ctx, userID, d.cfg.CommandRateLimit)
	if err != nil {
		// Fail open; losing Redis should not take commands down with it.
		d.logger.Warn().Err(err).Msg("rate limit check failed")
		return true
	}
	if !allowed {
		return false
	}
	if err := d.limiter.IncrementRateLimit(ctx, userID); err != nil {
		d.logger.Warn().Err(err).Msg("rate limit increment failed")
	}
	return true
}

func (d *Dispatcher) reply(ctx context.Context, ev gateway.MessageEvent, text string) {
	if err := d.chat.Reply(ctx, ev.ChannelID, ev.AuthorID, text); err != nil {
		d.logger.Warn().Err(err).Str("channel_id", ev.ChannelID).Msg("reply failed")
	}
}

func (d *Dispatcher) send(ctx context.Context, channelID, text string) {
	if _, err := d.chat.SendMessage(ctx, channelID, text); err != nil {
		d.logger.Warn().Err(err).Str("channel_id", channelID).Msg("send failed")
	}
}

// newRNG mints an independently seeded generator per assignment so concurrent
// starts never share generator state.
func (d *Dispatcher) newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (d *Dispatcher) loadSettings(ctx context.Context, guildID string) (models.GuildSettings, error) {
	timer := prometheus.NewTimer(metrics.StoreLatency.WithLabelValues("get_guild_settings"))
	defer timer.ObserveDuration()
	return d.store.GetGuildSettings(ctx, guildID)
}

func (d *Dispatcher) putSettings(ctx context.Context, guildID string, settings models.GuildSettings) error {
	timer := prometheus.NewTimer(metrics.StoreLatency.WithLabelValues("put_guild_settings"))
	defer timer.ObserveDuration()
	return d.store.PutGuildSettings(ctx, guildID, settings)
}

func (d *Dispatcher) loadSession(ctx context.Context, guildID, groupID string) (models.GameSession, error) {
	timer := prometheus.NewTimer(metrics.StoreLatency.WithLabelValues("get_game_session"))
	defer timer.ObserveDuration()
	return d.store.GetGameSession(ctx, guildID, groupID)
}

func (d *Dispatcher) putSession(ctx context.Context, guildID, groupID string, session models.GameSession) error {
	timer := prometheus.NewTimer(metrics.StoreLatency.WithLabelValues("put_game_session"))
	defer timer.ObserveDuration()
	return d.store.PutGameSession(ctx, guildID, groupID, session)
}
