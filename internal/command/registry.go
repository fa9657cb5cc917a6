// Package command routes inbound chat messages through a typed command
// registry into the game core. Each command declares the stored context it
// needs and the dispatcher supplies exactly that, with per-session-key
// serialization around every load-mutate-persist cycle.
package command

import (
	"context"
	"fmt"
	"strings"
)

// Scope declares which stored records a command needs. The dispatcher loads
// and locks only what the scope names.
type Scope int

const (
	// ScopeBasic commands use no stored state.
	ScopeBasic Scope = iota
	// ScopeGuild commands read and write guild settings.
	ScopeGuild
	// ScopeGame commands read and write the game session for the issuing
	// channel's group.
	ScopeGame
	// ScopeBoth commands need guild settings and the game session.
	ScopeBoth
)

// HandlerFunc executes one command against its loaded context.
type HandlerFunc func(ctx context.Context, cc *Context) error

// Command is one registry entry.
type Command struct {
	Name    string
	ArgHelp string
	Help    string
	Scope   Scope
	Handler HandlerFunc
}

// Registry is the command table. Registration order is the help order.
type Registry struct {
	order    []string
	commands map[string]Command
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command. Duplicate names are a programming error.
func (r *Registry) Register(cmd Command) {
	if _, exists := r.commands[cmd.Name]; exists {
		panic(fmt.Sprintf("command %q registered twice", cmd.Name))
	}
	r.order = append(r.order, cmd.Name)
	r.commands[cmd.Name] = cmd
}

// Lookup finds a command by name.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Help renders the command list with the active prefix.
func (r *Registry) Help(prefix string) string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, name := range r.order {
		cmd := r.commands[name]
		if cmd.ArgHelp != "" {
			fmt.Fprintf(&b, "%s%s %s - %s\n", prefix, name, cmd.ArgHelp, cmd.Help)
		} else {
			fmt.Fprintf(&b, "%s%s - %s\n", prefix, name, cmd.Help)
		}
	}
	return b.String()
}
