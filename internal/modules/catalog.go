// Package modules holds the capability-module catalog: the fixed set of
// toggleable command groups discovered at startup. One catalog value is built
// in main and injected into every consumer (gate, listing, autocomplete) so
// there is exactly one view of the module set per process.
package modules

import (
	"sort"
	"strings"
)

// Module identifiers are decorated with the command-package namespace and a
// type suffix, e.g. "command.youtube_module". Users only ever see and type the
// short form ("youtube"); DisplayName and Qualify convert between the two and
// must stay exact inverses of each other.
const (
	prefix = "command."
	suffix = "_module"

	// Privileged is the always-on module that manages toggling itself.
	// It never has an enablement row and can never be disabled.
	Privileged = "command.management_module"
)

// Catalog is the immutable set of module identifiers for this process.
type Catalog struct {
	ids []string
}

// New builds a catalog from the registered module tags. Duplicates collapse;
// the result is sorted and fixed for the process lifetime.
func New(ids []string) *Catalog {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return &Catalog{ids: out}
}

// All returns every module identifier, privileged included.
func (c *Catalog) All() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Toggleable returns every module identifier except the privileged one. This
// is the set offered anywhere modules can be listed, enabled, disabled, or
// autocompleted.
func (c *Catalog) Toggleable() []string {
	out := make([]string, 0, len(c.ids))
	for _, id := range c.ids {
		if id == Privileged {
			continue
		}
		out = append(out, id)
	}
	return out
}

// IsValid reports whether id is a known module identifier.
func (c *Catalog) IsValid(id string) bool {
	for _, known := range c.ids {
		if known == id {
			return true
		}
	}
	return false
}

// Suggest returns display names of toggleable modules containing partial
// (case-insensitive), capped at limit. Used for autocomplete.
func (c *Catalog) Suggest(partial string, limit int) []string {
	partial = strings.ToLower(partial)
	out := make([]string, 0, limit)
	for _, id := range c.Toggleable() {
		name := DisplayName(id)
		if partial != "" && !strings.Contains(name, partial) {
			continue
		}
		out = append(out, name)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// DisplayName strips the namespace prefix and type suffix from a module
// identifier and lowercases it: "command.youtube_module" -> "youtube".
func DisplayName(id string) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(id, prefix), suffix))
}

// Qualify rebuilds the full identifier from a user-typed short name. It is the
// exact inverse of DisplayName; if the two drift, enable/disable silently
// stops matching.
func Qualify(short string) string {
	return prefix + strings.ToLower(strings.TrimSpace(short)) + suffix
}
