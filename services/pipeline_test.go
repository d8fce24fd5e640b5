package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/tutorial-blog-backend/errs"
	"github.com/rpupo63/tutorial-blog-backend/models"
	"github.com/rpupo63/tutorial-blog-backend/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type renderFunc func(string) (render.Result, error)

func (f renderFunc) Render(raw string) (render.Result, error) { return f(raw) }

var fixedNow = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

func validPost() models.Post {
	return models.Post{
		Title:      "Hello",
		Body:       "Hello **world**, this is a post about Go.",
		CategoryID: uuid.New(),
		AuthorID:   uuid.New(),
	}
}

func TestPrepareForSaveNewPost(t *testing.T) {
	prepared, err := PrepareForSave(render.NewMarkdown(false), validPost(), fixedNow)
	require.NoError(t, err)

	assert.Equal(t, fixedNow, prepared.CreateTime)
	assert.Equal(t, fixedNow, prepared.ModifiedTime)
	assert.True(t, strings.HasPrefix(prepared.Excerpt, "Hello world"), prepared.Excerpt)
	assert.LessOrEqual(t, len([]rune(prepared.Excerpt)), render.DefaultExcerptLength)
	assert.NotContains(t, prepared.Excerpt, "<")
}

func TestPrepareForSaveKeepsCreateTime(t *testing.T) {
	post := validPost()
	created := fixedNow.Add(-48 * time.Hour)
	post.CreateTime = created
	post.ModifiedTime = created
	post.Excerpt = "stale"

	prepared, err := PrepareForSave(render.NewMarkdown(false), post, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, created, prepared.CreateTime)
	assert.Equal(t, fixedNow, prepared.ModifiedTime)
	assert.NotEqual(t, "stale", prepared.Excerpt)
}

func TestPrepareForSaveLongBodyExcerpt(t *testing.T) {
	post := validPost()
	post.Body = strings.Repeat("word ", 100)

	prepared, err := PrepareForSave(render.NewMarkdown(false), post, fixedNow)
	require.NoError(t, err)
	assert.Len(t, []rune(prepared.Excerpt), render.DefaultExcerptLength)
}

func TestPrepareForSaveValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Post)
		field  string
	}{
		{"missing title", func(p *models.Post) { p.Title = "" }, "title"},
		{"long title", func(p *models.Post) { p.Title = strings.Repeat("x", 71) }, "title"},
		{"missing body", func(p *models.Post) { p.Body = "" }, "body"},
		{"missing category", func(p *models.Post) { p.CategoryID = uuid.Nil }, "categoryId"},
		{"missing author", func(p *models.Post) { p.AuthorID = uuid.Nil }, "authorId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			r := renderFunc(func(string) (render.Result, error) {
				called = true
				return render.Result{}, nil
			})

			post := validPost()
			tt.mutate(&post)

			_, err := PrepareForSave(r, post, fixedNow)
			require.Error(t, err)
			assert.True(t, errs.IsValidationError(err))
			assert.False(t, called)

			var apiErr *errs.ApiErr
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.field, apiErr.Field)
			assert.Equal(t, 400, apiErr.StatusCode)
		})
	}
}

func TestPrepareForSaveTitleAtLimit(t *testing.T) {
	post := validPost()
	post.Title = strings.Repeat("é", 70)

	_, err := PrepareForSave(render.NewMarkdown(false), post, fixedNow)
	assert.NoError(t, err)
}

func TestPrepareForSaveRenderFailure(t *testing.T) {
	r := renderFunc(func(string) (render.Result, error) {
		return render.Result{}, errors.New("boom")
	})

	_, err := PrepareForSave(r, validPost(), fixedNow)
	require.Error(t, err)

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.StatusCode)
}

func TestClockFunc(t *testing.T) {
	var c Clock = ClockFunc(func() time.Time { return fixedNow })
	assert.Equal(t, fixedNow, c.Now())

	assert.Equal(t, time.UTC, SystemClock{}.Now().Location())
}
