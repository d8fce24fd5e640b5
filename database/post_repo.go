package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/tutorial-blog-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

func tagsByName(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}

// Find returns the posts matching every scope, in default order, with their
// category, author and tags loaded.
func (r *PostRepo) Find(ctx context.Context, scopes ...Scope) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Scopes(scopes...).
		Scopes(DefaultOrder).
		Preload("Category").
		Preload("Author").
		Preload("Tags", tagsByName).
		Find(&posts).Error
	return posts, err
}

// FindByID returns gorm.ErrRecordNotFound when no post has the id.
func (r *PostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Author").
		Preload("Tags", tagsByName).
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Add inserts a post and links its tags.
func (r *PostRepo) Add(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags := post.Tags
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		return tx.Model(post).Association("Tags").Replace(tags)
	})
}

// Update writes the editable columns, the author and the tag set. It never
// touches views or create_time.
func (r *PostRepo) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{ID: post.ID}).
			Select("title", "body", "excerpt", "modified_time", "category_id", "author_id").
			Updates(post)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if len(post.Tags) == 0 {
			return tx.Model(post).Association("Tags").Clear()
		}
		return tx.Model(post).Association("Tags").Replace(post.Tags)
	})
}

// Delete removes a post and its tag links.
func (r *PostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_tags WHERE post_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// IncrementViews adds one to the post's view count with a single UPDATE and
// returns the new count. A missing post yields gorm.ErrRecordNotFound and no
// row is written.
func (r *PostRepo) IncrementViews(ctx context.Context, id uuid.UUID) (int, error) {
	var views int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ?", id).
			UpdateColumn("views", gorm.Expr("views + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.Post{}).Where("id = ?", id).Select("views").Scan(&views).Error
	})
	return views, err
}
