package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an author. Users are only created through the token issuing mode.
type User struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Username string    `json:"username" db:"username" gorm:"type:varchar(150);not null;uniqueIndex" validate:"required,max=150"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
