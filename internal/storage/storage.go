// Package storage is the relational store behind the bot: guild registry,
// per-guild module enablement, bad words, post templates, and the posted-video
// log. Every read and write goes through the pooled database connection; there
// is deliberately no in-process cache, so the store is the single source of
// truth for the feature gate.
package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	// ErrGuildNotRegistered is returned when an operation targets a guild
	// that has no row yet (a command arrived before bootstrap completed).
	ErrGuildNotRegistered = errors.New("guild is not registered")

	// ErrTemplateNotFound is returned when a named post template does not
	// exist for the guild.
	ErrTemplateNotFound = errors.New("template not found")
)

// Guild is one registered server and its scalar configuration.
type Guild struct {
	GuildID        string `gorm:"primaryKey;type:varchar(32);column:guild_id"`
	Name           string `gorm:"not null;type:varchar(255);column:guild_name"`
	VideoChannelID string `gorm:"type:varchar(32);column:video_channel_id"`
	MuteRoleID     string `gorm:"type:varchar(32);column:mute_role_id"`
	Description    string `gorm:"type:text;column:server_description"`
	Host           string `gorm:"type:varchar(255);column:server_host"`
	CPU            string `gorm:"type:varchar(255);column:server_cpu;default:'Placeholder CPU Info'"`
	RAM            string `gorm:"type:varchar(255);column:server_ram;default:'Placeholder RAM Info'"`
}

func (Guild) TableName() string { return "guilds" }

// EnabledModule is one (guild, module) enablement row. Presence means
// enabled; "disabled" and "never bootstrapped" are both row absence.
type EnabledModule struct {
	ID         uint   `gorm:"primaryKey"`
	GuildID    string `gorm:"not null;type:varchar(32);uniqueIndex:idx_guild_module;column:guild_id"`
	ModuleName string `gorm:"not null;type:varchar(100);uniqueIndex:idx_guild_module;column:module_name"`

	Guild Guild `gorm:"foreignKey:GuildID;references:GuildID;constraint:OnDelete:CASCADE"`
}

func (EnabledModule) TableName() string { return "enabled_modules" }

// BadWord is one banned substring for a guild, stored lowercased.
type BadWord struct {
	ID      uint   `gorm:"primaryKey"`
	GuildID string `gorm:"not null;type:varchar(32);uniqueIndex:idx_guild_word;column:guild_id"`
	Word    string `gorm:"not null;type:varchar(100);uniqueIndex:idx_guild_word"`

	Guild Guild `gorm:"foreignKey:GuildID;references:GuildID;constraint:OnDelete:CASCADE"`
}

func (BadWord) TableName() string { return "bad_words" }

// PostTemplate is a named embed template for /post-video.
type PostTemplate struct {
	ID          uint   `gorm:"primaryKey;column:template_id"`
	GuildID     string `gorm:"not null;type:varchar(32);uniqueIndex:idx_guild_template;column:guild_id"`
	Name        string `gorm:"not null;type:varchar(50);uniqueIndex:idx_guild_template"`
	Title       string `gorm:"not null;type:varchar(256);column:embed_title"`
	Description string `gorm:"type:text;column:embed_description"`
	Color       string `gorm:"type:varchar(7);default:'#FFFFFF'"`
	Footer      string `gorm:"type:varchar(200);column:embed_footer"`

	Guild Guild `gorm:"foreignKey:GuildID;references:GuildID;constraint:OnDelete:CASCADE"`
}

func (PostTemplate) TableName() string { return "post_templates" }

// PostedVideo records that a video was posted to a guild, for duplicate
// detection.
type PostedVideo struct {
	VideoID  string    `gorm:"primaryKey;type:varchar(20);column:video_id"`
	GuildID  string    `gorm:"primaryKey;type:varchar(32);column:guild_id"`
	PostedAt time.Time `gorm:"autoCreateTime;column:posted_at"`
}

func (PostedVideo) TableName() string { return "posted_videos" }

// Store wraps the gorm handle. All methods take a context and run exactly one
// statement (or one small statement group) per call.
type Store struct {
	db *gorm.DB
}

// New wraps an already-open database and migrates the schema. Used directly
// by tests with an in-memory database.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(
		&Guild{},
		&EnabledModule{},
		&BadWord{},
		&PostTemplate{},
		&PostedVideo{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Open connects to postgres with a bounded connection pool and migrates the
// schema.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return New(db)
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
