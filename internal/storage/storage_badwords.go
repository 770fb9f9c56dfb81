package storage

import (
	"context"
	"fmt"

	"guildkeeper/internal/filter"

	"gorm.io/gorm/clause"
)

// AddBadWord stores a normalized word for the guild. Returns false if the
// word was already on the list.
func (s *Store) AddBadWord(ctx context.Context, guildID, word string) (bool, error) {
	word = filter.Normalize(word)
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "guild_id"}, {Name: "word"}},
			DoNothing: true,
		}).
		Create(&BadWord{GuildID: guildID, Word: word})
	if res.Error != nil {
		return false, fmt.Errorf("add bad word for guild %s: %w", guildID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// RemoveBadWord deletes a word from the guild's list. Returns false if the
// word was not on the list.
func (s *Store) RemoveBadWord(ctx context.Context, guildID, word string) (bool, error) {
	word = filter.Normalize(word)
	res := s.db.WithContext(ctx).
		Where("guild_id = ? AND word = ?", guildID, word).
		Delete(&BadWord{})
	if res.Error != nil {
		return false, fmt.Errorf("remove bad word for guild %s: %w", guildID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// BadWords returns the guild's banned words, sorted.
func (s *Store) BadWords(ctx context.Context, guildID string) ([]string, error) {
	var words []string
	err := s.db.WithContext(ctx).
		Model(&BadWord{}).
		Where("guild_id = ?", guildID).
		Order("word").
		Pluck("word", &words).Error
	if err != nil {
		return nil, fmt.Errorf("load bad words for guild %s: %w", guildID, err)
	}
	return words, nil
}
