package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/tutorial-blog-backend/errs"
	"github.com/rpupo63/tutorial-blog-backend/models"
	"github.com/rpupo63/tutorial-blog-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDeleteCategoryRemovesItsPosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gone := testutil.SeedPost(t, f.db, "Flask", day(2024, time.April, 1), f.python, f.author, *f.tutorial)
	kept := testutil.SeedPost(t, f.db, "Modules", day(2024, time.April, 2), f.golang, f.author, *f.tutorial)

	require.NoError(t, f.repo.CategoryRepo().Delete(ctx, f.python.ID))

	_, err := f.repo.PostRepo().FindByID(ctx, gone.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	stored, err := f.repo.PostRepo().FindByID(ctx, kept.ID)
	require.NoError(t, err)
	require.Len(t, stored.Tags, 1)

	var links int64
	require.NoError(t, f.db.Table("post_tags").Where("post_id = ?", gone.ID).Count(&links).Error)
	assert.Zero(t, links)

	categories, err := f.repo.CategoryRepo().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Go", categories[0].Name)
}

func TestDeleteMissingCategory(t *testing.T) {
	f := newFixture(t)
	err := f.repo.CategoryRepo().Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteTagKeepsPosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	post := testutil.SeedPost(t, f.db, "Tagged", day(2024, time.April, 1), f.python, f.author, *f.tutorial)

	require.NoError(t, f.repo.TagRepo().Delete(ctx, f.tutorial.ID))

	stored, err := f.repo.PostRepo().FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Tags)

	assert.ErrorIs(t, f.repo.TagRepo().Delete(ctx, f.tutorial.ID), gorm.ErrRecordNotFound)
}

func TestFindTagsByIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	beginner := testutil.SeedTag(t, f.db, "beginner")

	tags, err := f.repo.TagRepo().FindByIDs(ctx, []uuid.UUID{f.tutorial.ID, beginner.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "beginner", tags[0].Name)

	tags, err = f.repo.TagRepo().FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestUserFindOrCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	existing, err := f.repo.UserRepo().FindOrCreate(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, f.author.ID, existing.ID)

	created, err := f.repo.UserRepo().FindOrCreate(ctx, "bob")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	found, err := f.repo.UserRepo().FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", found.Username)

	var count int64
	require.NoError(t, f.db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestDuplicateUsernameConflicts(t *testing.T) {
	f := newFixture(t)

	err := f.db.Create(&models.User{Username: "alice"}).Error
	require.Error(t, err)
	assert.True(t, errs.IsConflict(errs.NewDatabaseError("create", "user", err)), err)
}
