// Package cmd is the transport-agnostic command core: a command has a name, a
// description, and Run(ctx, invocation). Registration and dispatch (Discord
// slash, CLI) live in adapters that wrap this.
package cmd

import "context"

// Invocation is the minimal input a runner passes to a command: positional
// arguments plus an opaque payload. Adapters set Data to their own context
// (e.g. *discordgo.Session + event).
type Invocation struct {
	Args []string
	Data interface{}
}

// Command is the universal contract: identity plus execution. Permissions,
// option schemas, and transport registration stay in adapters.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}

// Middleware wraps a command (logging, permission checks, and the like).
type Middleware func(Command) Command

// Apply applies middlewares in order; the last in the list is the outermost.
func Apply(c Command, mws ...Middleware) Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}
