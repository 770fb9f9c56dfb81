package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"
)

// BootstrapModules inserts one enabled row per catalog module for a freshly
// registered guild. Safe to include the privileged module; the gate never
// reads its row. Conflicting rows are left alone, so a partial earlier
// bootstrap completes instead of failing.
func (s *Store) BootstrapModules(ctx context.Context, guildID string, moduleIDs []string) error {
	if len(moduleIDs) == 0 {
		return nil
	}
	rows := make([]EnabledModule, 0, len(moduleIDs))
	for _, id := range moduleIDs {
		rows = append(rows, EnabledModule{GuildID: guildID, ModuleName: id})
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "guild_id"}, {Name: "module_name"}},
			DoNothing: true,
		}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("bootstrap modules for guild %s: %w", guildID, err)
	}
	return nil
}

// EnabledModules returns the module identifiers currently enabled for the
// guild. A module with no row is not enabled: after a new module ships,
// existing guilds read it as disabled until an admin runs /modules enable
// (SetModuleEnabled upserts, so that always works).
func (s *Store) EnabledModules(ctx context.Context, guildID string) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&EnabledModule{}).
		Where("guild_id = ?", guildID).
		Order("module_name").
		Pluck("module_name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("load enabled modules for guild %s: %w", guildID, err)
	}
	return names, nil
}

// SetModuleEnabled flips one (guild, module) pair: enabling upserts the row,
// disabling deletes it. Both directions are idempotent and atomic, so
// concurrent toggles serialize on the unique key and the last completed write
// wins.
func (s *Store) SetModuleEnabled(ctx context.Context, guildID, moduleID string, enabled bool) error {
	if enabled {
		err := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "guild_id"}, {Name: "module_name"}},
				DoNothing: true,
			}).
			Create(&EnabledModule{GuildID: guildID, ModuleName: moduleID}).Error
		if err != nil {
			return fmt.Errorf("enable module %s for guild %s: %w", moduleID, guildID, err)
		}
		return nil
	}

	err := s.db.WithContext(ctx).
		Where("guild_id = ? AND module_name = ?", guildID, moduleID).
		Delete(&EnabledModule{}).Error
	if err != nil {
		return fmt.Errorf("disable module %s for guild %s: %w", moduleID, guildID, err)
	}
	return nil
}
