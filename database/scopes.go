package database

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope narrows a post query. Listing pages differ only in the scope they pass.
type Scope = func(*gorm.DB) *gorm.DB

// DefaultOrder sorts newest first, breaking ties by title.
func DefaultOrder(db *gorm.DB) *gorm.DB {
	return db.Order("create_time DESC").Order("title ASC")
}

func InCategory(categoryID uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("category_id = ?", categoryID)
	}
}

func WithTag(tagID uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN (SELECT post_id FROM post_tags WHERE tag_id = ?)", tagID)
	}
}

// CreatedInMonth matches posts created in the given calendar month (UTC).
func CreatedInMonth(year int, month time.Month) Scope {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("create_time >= ? AND create_time < ?", start, end)
	}
}

// MatchingKeyword is a case-insensitive substring match on title or body.
func MatchingKeyword(keyword string) Scope {
	pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(body) LIKE ? ESCAPE '\\')", pattern, pattern)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
