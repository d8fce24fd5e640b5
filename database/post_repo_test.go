package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/tutorial-blog-backend/database"
	"github.com/rpupo63/tutorial-blog-backend/models"
	"github.com/rpupo63/tutorial-blog-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	repo     database.Database
	author   *models.User
	python   *models.Category
	golang   *models.Category
	tutorial *models.Tag
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewDB(t)
	return fixture{
		db:       db,
		repo:     database.New(db),
		author:   testutil.SeedUser(t, db, "alice"),
		python:   testutil.SeedCategory(t, db, "Python"),
		golang:   testutil.SeedCategory(t, db, "Go"),
		tutorial: testutil.SeedTag(t, db, "tutorial"),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func titles(posts []*models.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func TestFindOrdersNewestFirstThenTitle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	testutil.SeedPost(t, f.db, "B", day(2024, time.January, 2), f.python, f.author)
	testutil.SeedPost(t, f.db, "A", day(2024, time.January, 2), f.python, f.author)
	testutil.SeedPost(t, f.db, "C", day(2024, time.January, 3), f.python, f.author)

	posts, err := f.repo.PostRepo().Find(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, titles(posts))
}

func TestFindLoadsAssociations(t *testing.T) {
	f := newFixture(t)
	second := testutil.SeedTag(t, f.db, "beginner")
	testutil.SeedPost(t, f.db, "Hello", day(2024, time.March, 1), f.golang, f.author, *f.tutorial, *second)

	posts, err := f.repo.PostRepo().Find(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)

	post := posts[0]
	require.NotNil(t, post.Category)
	assert.Equal(t, "Go", post.Category.Name)
	require.NotNil(t, post.Author)
	assert.Equal(t, "alice", post.Author.Username)
	require.Len(t, post.Tags, 2)
	assert.Equal(t, "beginner", post.Tags[0].Name)
	assert.Equal(t, "tutorial", post.Tags[1].Name)
}

func TestFindScopes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	testutil.SeedPost(t, f.db, "Jan python", day(2024, time.January, 31), f.python, f.author, *f.tutorial)
	testutil.SeedPost(t, f.db, "Feb python", day(2024, time.February, 1), f.python, f.author)
	testutil.SeedPost(t, f.db, "Feb go", day(2024, time.February, 29), f.golang, f.author, *f.tutorial)
	testutil.SeedPost(t, f.db, "Mar go", day(2024, time.March, 1), f.golang, f.author)

	tests := []struct {
		name   string
		scopes []database.Scope
		want   []string
	}{
		{"category", []database.Scope{database.InCategory(f.golang.ID)}, []string{"Mar go", "Feb go"}},
		{"tag", []database.Scope{database.WithTag(f.tutorial.ID)}, []string{"Feb go", "Jan python"}},
		{"month", []database.Scope{database.CreatedInMonth(2024, time.February)}, []string{"Feb go", "Feb python"}},
		{"empty month", []database.Scope{database.CreatedInMonth(2023, time.February)}, []string{}},
		{"combined", []database.Scope{database.InCategory(f.python.ID), database.WithTag(f.tutorial.ID)}, []string{"Jan python"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := f.repo.PostRepo().Find(ctx, tt.scopes...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(posts))
		})
	}
}

func TestMatchingKeyword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := testutil.SeedPost(t, f.db, "Django Forms", day(2024, time.May, 1), f.python, f.author)
	require.NoError(t, f.db.Model(p).Update("body", "Validating 100% of input_fields").Error)
	testutil.SeedPost(t, f.db, "Goroutines", day(2024, time.May, 2), f.golang, f.author)
	testutil.SeedPost(t, f.db, "Channels 100 ways", day(2024, time.May, 3), f.golang, f.author)

	tests := []struct {
		keyword string
		want    []string
	}{
		{"django", []string{"Django Forms"}},
		{"GOROUTINE", []string{"Goroutines"}},
		{"100%", []string{"Django Forms"}},
		{"input_f", []string{"Django Forms"}},
		{"ro_t", []string{}},
		{"body of", []string{"Channels 100 ways", "Goroutines"}},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			posts, err := f.repo.PostRepo().Find(ctx, database.MatchingKeyword(tt.keyword))
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(posts))
		})
	}
}

func TestIncrementViews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	post := testutil.SeedPost(t, f.db, "Counted", day(2024, time.June, 1), f.python, f.author)

	views, err := f.repo.PostRepo().IncrementViews(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, views)

	views, err = f.repo.PostRepo().IncrementViews(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, views)

	stored, err := f.repo.PostRepo().FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Views)
}

func TestIncrementViewsConcurrently(t *testing.T) {
	db := testutil.NewFileDB(t)
	repo := database.New(db)
	post := testutil.SeedPost(t, db, "Popular", day(2024, time.June, 1),
		testutil.SeedCategory(t, db, "Go"), testutil.SeedUser(t, db, "alice"))

	const readers = 20
	var g errgroup.Group
	for i := 0; i < readers; i++ {
		g.Go(func() error {
			_, err := repo.PostRepo().IncrementViews(context.Background(), post.ID)
			return err
		})
	}
	require.NoError(t, g.Wait())

	stored, err := repo.PostRepo().FindByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, readers, stored.Views)
}

func TestIncrementViewsMissingPost(t *testing.T) {
	f := newFixture(t)

	_, err := f.repo.PostRepo().IncrementViews(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, f.db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddAndUpdateKeepTagsAndCounters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	beginner := testutil.SeedTag(t, f.db, "beginner")

	post := &models.Post{
		Title:        "Draft",
		Body:         "text",
		Excerpt:      "text",
		CreateTime:   day(2024, time.July, 1),
		ModifiedTime: day(2024, time.July, 1),
		CategoryID:   f.python.ID,
		AuthorID:     f.author.ID,
		Tags:         []models.Tag{*f.tutorial},
	}
	require.NoError(t, f.repo.PostRepo().Add(ctx, post))
	_, err := f.repo.PostRepo().IncrementViews(ctx, post.ID)
	require.NoError(t, err)

	editor := testutil.SeedUser(t, f.db, "bob")
	post.Title = "Final"
	post.AuthorID = editor.ID
	post.ModifiedTime = day(2024, time.July, 2)
	post.CategoryID = f.golang.ID
	post.Tags = []models.Tag{*beginner}
	require.NoError(t, f.repo.PostRepo().Update(ctx, post))

	stored, err := f.repo.PostRepo().FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", stored.Title)
	assert.Equal(t, f.golang.ID, stored.CategoryID)
	assert.Equal(t, editor.ID, stored.AuthorID)
	assert.Equal(t, 1, stored.Views)
	assert.True(t, stored.CreateTime.Equal(day(2024, time.July, 1)))
	require.Len(t, stored.Tags, 1)
	assert.Equal(t, "beginner", stored.Tags[0].Name)

	post.Tags = nil
	require.NoError(t, f.repo.PostRepo().Update(ctx, post))
	stored, err = f.repo.PostRepo().FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Tags)
}

func TestUpdateMissingPost(t *testing.T) {
	f := newFixture(t)
	err := f.repo.PostRepo().Update(context.Background(), &models.Post{
		ID:         uuid.New(),
		Title:      "ghost",
		Body:       "ghost",
		CategoryID: f.python.ID,
		AuthorID:   f.author.ID,
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeletePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	post := testutil.SeedPost(t, f.db, "Gone", day(2024, time.June, 1), f.python, f.author, *f.tutorial)

	require.NoError(t, f.repo.PostRepo().Delete(ctx, post.ID))
	_, err := f.repo.PostRepo().FindByID(ctx, post.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, f.repo.PostRepo().Delete(ctx, post.ID), gorm.ErrRecordNotFound)

	tag, err := f.repo.TagRepo().FindByID(ctx, f.tutorial.ID)
	require.NoError(t, err)
	assert.Equal(t, "tutorial", tag.Name)
}
