package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateTemplate stores a post template. Returns false if a template with
// that name already exists for the guild.
func (s *Store) CreateTemplate(ctx context.Context, t *PostTemplate) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "guild_id"}, {Name: "name"}},
			DoNothing: true,
		}).
		Create(t)
	if res.Error != nil {
		return false, fmt.Errorf("create template %q for guild %s: %w", t.Name, t.GuildID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Template returns the named template for the guild.
func (s *Store) Template(ctx context.Context, guildID, name string) (*PostTemplate, error) {
	var t PostTemplate
	err := s.db.WithContext(ctx).
		Where("guild_id = ? AND name = ?", guildID, name).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load template %q for guild %s: %w", name, guildID, err)
	}
	return &t, nil
}

// Templates returns all templates for the guild, ordered by name.
func (s *Store) Templates(ctx context.Context, guildID string) ([]PostTemplate, error) {
	var list []PostTemplate
	err := s.db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		Order("name").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("load templates for guild %s: %w", guildID, err)
	}
	return list, nil
}

// DeleteTemplate removes the named template. Returns false if it did not
// exist.
func (s *Store) DeleteTemplate(ctx context.Context, guildID, name string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("guild_id = ? AND name = ?", guildID, name).
		Delete(&PostTemplate{})
	if res.Error != nil {
		return false, fmt.Errorf("delete template %q for guild %s: %w", name, guildID, res.Error)
	}
	return res.RowsAffected > 0, nil
}
