package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a blog article. Excerpt and ModifiedTime are derived on every save
// and Views only changes through the view counter.
type Post struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title        string    `json:"title" db:"title" gorm:"type:varchar(70);not null" validate:"required,max=70"`
	Body         string    `json:"body" db:"body" gorm:"type:text;not null" validate:"required"`
	Excerpt      string    `json:"excerpt" db:"excerpt" gorm:"type:varchar(200);not null;default:''" validate:"max=200"`
	CreateTime   time.Time `json:"createTime" db:"create_time" gorm:"not null;index"`
	ModifiedTime time.Time `json:"modifiedTime" db:"modified_time" gorm:"not null"`
	CategoryID   uuid.UUID `json:"categoryId" db:"category_id" gorm:"type:uuid;not null;index" validate:"required"`
	AuthorID     uuid.UUID `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index" validate:"required"`
	Views        int       `json:"views" db:"views" gorm:"type:integer;not null;default:0"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE" validate:"-"`
	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE" validate:"-"`
	Tags     []Tag     `json:"tags" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE" validate:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
