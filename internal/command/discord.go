// Package command defines the Discord command contract: what a slash command
// implements, the contexts the runtime hands it, and the adapter that places
// it in the universal registry. Command groups live in subpackages and
// register themselves from init(); each carries an explicit module tag the
// feature gate reads, so ownership is a static registration table, never
// runtime introspection.
package command

import (
	"context"

	"guildkeeper/internal/modules"
	"guildkeeper/internal/storage"
	"guildkeeper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// SlashContext is what the runtime passes when executing a slash command.
type SlashContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Store   *storage.Store
	Catalog *modules.Catalog

	// DeveloperID is the operator's user ID; the permission middleware
	// lets it through everywhere.
	DeveloperID string
}

// AutocompleteContext is what the runtime passes when resolving option
// suggestions. Autocomplete never goes through the gate; the offered values
// must simply match what the catalog and store would accept.
type AutocompleteContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Store   *storage.Store
	Catalog *modules.Catalog
}

// SlashProvider exposes the application-command definition registered with
// Discord.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// AutocompleteProvider is implemented by commands with autocompleted options.
type AutocompleteProvider interface {
	Autocomplete(ctx context.Context, ac *AutocompleteContext) ([]*discordgo.ApplicationCommandOptionChoice, error)
}

// Meta is what middleware and the gate read off a command without knowing its
// concrete type.
type Meta interface {
	Module() string
	Category() string
	UserPermissions() []int64
}

// DiscordCommand is what individual commands implement. Module returns the
// owning capability-module identifier ("" for module-less commands, which the
// gate always allows).
type DiscordCommand interface {
	Name() string
	Description() string
	Module() string
	Category() string
	UserPermissions() []int64
	Run(ctx context.Context, sc *SlashContext) error
}

// Adapter lifts a DiscordCommand into the universal registry, forwarding the
// provider interfaces middleware and the dispatcher probe for.
type Adapter struct {
	Cmd DiscordCommand
}

func (a *Adapter) Name() string { return a.Cmd.Name() }
func (a *Adapter) Description() string { return a.Cmd.Description() }
func (a *Adapter) Module() string { return a.Cmd.Module() }
func (a *Adapter) Category() string { return a.Cmd.Category() }
func (a *Adapter) UserPermissions() []int64 { return a.Cmd.UserPermissions() }

func (a *Adapter) Run(ctx context.Context, inv *cmd.Invocation) error {
	sc, ok := inv.Data.(*SlashContext)
	if !ok {
		return nil
	}
	return a.Cmd.Run(ctx, sc)
}

func (a *Adapter) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := a.Cmd.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

func (a *Adapter) Autocomplete(ctx context.Context, ac *AutocompleteContext) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	if ap, ok := a.Cmd.(AutocompleteProvider); ok {
		return ap.Autocomplete(ctx, ac)
	}
	return nil, nil
}

// Register places a Discord command in the default registry with middlewares
// applied. Called from each command package's init().
func Register(discordCmd DiscordCommand, mws ...cmd.Middleware) {
	cmd.DefaultRegistry.Register(cmd.Apply(&Adapter{Cmd: discordCmd}, mws...))
}

// ModuleOf resolves the owning module tag of a (possibly wrapped) registry
// command. Commands without metadata are module-less.
func ModuleOf(c cmd.Command) string {
	if meta, ok := cmd.Root(c).(Meta); ok {
		return meta.Module()
	}
	return ""
}

// Modules collects every module tag present in the default registry. The
// catalog is built from this exactly once at startup.
func Modules() []string {
	var ids []string
	for _, c := range cmd.DefaultRegistry.All() {
		if id := ModuleOf(c); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
