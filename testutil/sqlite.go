// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpupo63/tutorial-blog-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a fresh in-memory SQLite database with the blog schema.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is its own database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	migrate(t, db)
	return db
}

// NewFileDB opens a SQLite database in a temporary file so several
// connections share it. Transactions take the write lock when they begin and
// wait up to five seconds for it.
func NewFileDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate&_journal_mode=WAL",
		filepath.Join(t.TempDir(), "blog.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(8)
	t.Cleanup(func() { _ = sqlDB.Close() })

	migrate(t, db)
	return db
}

func migrate(t testing.TB, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.WithContext(context.Background()).AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
	))
}

func SeedUser(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username}
	require.NoError(t, db.Create(user).Error)
	return user
}

func SeedCategory(t testing.TB, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func SeedTag(t testing.TB, db *gorm.DB, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

// SeedPost inserts a post directly, bypassing the save pipeline, so tests
// can pin create_time.
func SeedPost(t testing.TB, db *gorm.DB, title string, created time.Time, category *models.Category, author *models.User, tags ...models.Tag) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:        title,
		Body:         "Body of " + title,
		Excerpt:      "Body of " + title,
		CreateTime:   created.UTC(),
		ModifiedTime: created.UTC(),
		CategoryID:   category.ID,
		AuthorID:     author.ID,
	}
	require.NoError(t, db.Omit("Tags", "Category", "Author").Create(post).Error)
	if len(tags) > 0 {
		require.NoError(t, db.Model(post).Association("Tags").Append(tags))
	}
	return post
}
