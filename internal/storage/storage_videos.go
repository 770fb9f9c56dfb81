package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"
)

// MarkVideoPosted records that a video was posted to a guild. Returns false
// if the pair was already recorded (the video was posted before).
func (s *Store) MarkVideoPosted(ctx context.Context, videoID, guildID string) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "video_id"}, {Name: "guild_id"}},
			DoNothing: true,
		}).
		Create(&PostedVideo{VideoID: videoID, GuildID: guildID})
	if res.Error != nil {
		return false, fmt.Errorf("record posted video %s for guild %s: %w", videoID, guildID, res.Error)
	}
	return res.RowsAffected > 0, nil
}
