package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/northpine-labs/linkvault-back/internal/config"
)

const maxOpenConns = 10

type (
	GormForkedModel struct {
		ID        uint64    `gorm:"primarykey" json:"id"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	User struct {
		GormForkedModel
		Username     string       `gorm:"unique;not null" json:"username"`
		Email        string       `gorm:"unique;not null" json:"email"`
		PasswordHash string       `gorm:"not null" json:"-"`
		Bookmarks    []Bookmark   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
		Tags         []Tag        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
		Collections  []Collection `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	}

	Bookmark struct {
		GormForkedModel
		UserID      uint64       `gorm:"not null" json:"user_id"`
		Title       string       `gorm:"not null" json:"title"`
		Link        string       `gorm:"column:url;not null" json:"url"`
		Description string       `gorm:"not null;default:''" json:"description"`
		Tags        []Tag        `gorm:"many2many:bookmark_tags;constraint:OnDelete:CASCADE" json:"-"`
		Collections []Collection `gorm:"many2many:collection_bookmarks;constraint:OnDelete:CASCADE" json:"-"`
	}

	Tag struct {
		GormForkedModel
		UserID    uint64     `gorm:"not null;uniqueIndex:uidx_tag_name_user_id;uniqueIndex:uidx_tag_slug_user_id" json:"user_id"`
		Name      string     `gorm:"not null;uniqueIndex:uidx_tag_name_user_id" json:"name"`
		Slug      string     `gorm:"not null;uniqueIndex:uidx_tag_slug_user_id" json:"slug"`
		Bookmarks []Bookmark `gorm:"many2many:bookmark_tags;constraint:OnDelete:CASCADE" json:"-"`
	}

	Collection struct {
		GormForkedModel
		UserID      uint64     `gorm:"not null" json:"user_id"`
		Name        string     `gorm:"not null" json:"name"`
		Description string     `gorm:"not null;default:''" json:"description"`
		Bookmarks   []Bookmark `gorm:"many2many:collection_bookmarks;constraint:OnDelete:CASCADE" json:"-"`
	}

	BookmarkTag struct {
		BookmarkID uint64    `gorm:"primaryKey" json:"bookmark_id"`
		TagID      uint64    `gorm:"primaryKey" json:"tag_id"`
		CreatedAt  time.Time `json:"created_at"`
	}

	CollectionBookmark struct {
		CollectionID uint64    `gorm:"primaryKey" json:"collection_id"`
		BookmarkID   uint64    `gorm:"primaryKey" json:"bookmark_id"`
		CreatedAt    time.Time `json:"created_at"`
	}
)

func NewGormClient(cfg *config.Config) (*gorm.DB, error) {
	newLogger := logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Info,
		Colorful:                  true,
		IgnoreRecordNotFoundError: false,
	})

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql db")
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)

	if err := migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func migrate(db *gorm.DB) error {
	// Explicit join models so both join tables carry a created_at column
	// and a composite primary key. Both sides of each many2many must be
	// registered: the migrator dedupes join tables by name and an
	// unregistered inverse side would win with an auto-generated schema.
	if err := db.SetupJoinTable(&Bookmark{}, "Tags", &BookmarkTag{}); err != nil {
		return errors.Wrap(err, "setup join table bookmark_tags")
	}
	if err := db.SetupJoinTable(&Tag{}, "Bookmarks", &BookmarkTag{}); err != nil {
		return errors.Wrap(err, "setup join table bookmark_tags")
	}
	if err := db.SetupJoinTable(&Bookmark{}, "Collections", &CollectionBookmark{}); err != nil {
		return errors.Wrap(err, "setup join table collection_bookmarks")
	}
	if err := db.SetupJoinTable(&Collection{}, "Bookmarks", &CollectionBookmark{}); err != nil {
		return errors.Wrap(err, "setup join table collection_bookmarks")
	}

	// One call so the migrator sees every relation before it writes the
	// cascade constraints.
	if err := db.AutoMigrate(&User{}, &Bookmark{}, &Tag{}, &Collection{}); err != nil {
		return errors.Wrap(err, "migrate schema")
	}

	return nil
}
