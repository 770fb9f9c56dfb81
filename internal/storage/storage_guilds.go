package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Columns a user-driven config update may touch. Anything else is a
// programming error, not user input.
var guildConfigColumns = map[string]struct{}{
	"video_channel_id":   {},
	"mute_role_id":       {},
	"server_description": {},
	"server_host":        {},
}

// RegisterGuild inserts a guild row if none exists. It reports whether a row
// was actually created so the caller knows to run the enablement bootstrap;
// registration of an already-known guild is a no-op.
func (s *Store) RegisterGuild(ctx context.Context, guildID, name string) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "guild_id"}},
			DoNothing: true,
		}).
		Create(&Guild{GuildID: guildID, Name: name})
	if res.Error != nil {
		return false, fmt.Errorf("register guild %s: %w", guildID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// GuildConfig returns the guild's stored configuration.
func (s *Store) GuildConfig(ctx context.Context, guildID string) (*Guild, error) {
	var g Guild
	err := s.db.WithContext(ctx).Where("guild_id = ?", guildID).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGuildNotRegistered
	}
	if err != nil {
		return nil, fmt.Errorf("load guild %s: %w", guildID, err)
	}
	return &g, nil
}

// UpdateGuildConfig sets one scalar config column for a guild. The column must
// be in the allow list.
func (s *Store) UpdateGuildConfig(ctx context.Context, guildID, column string, value string) error {
	if _, ok := guildConfigColumns[column]; !ok {
		return fmt.Errorf("invalid guild config column %q", column)
	}
	res := s.db.WithContext(ctx).
		Model(&Guild{}).
		Where("guild_id = ?", guildID).
		Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("update guild %s config: %w", guildID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrGuildNotRegistered
	}
	return nil
}
