package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/tutorial-blog-backend/database"
	"github.com/rpupo63/tutorial-blog-backend/errs"
	"github.com/rpupo63/tutorial-blog-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type PostStore interface {
	Find(ctx context.Context, scopes ...database.Scope) ([]*models.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	Add(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) (int, error)
}

type CategoryStore interface {
	FindAll(ctx context.Context) ([]*models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Add(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TagStore interface {
	FindAll(ctx context.Context) ([]*models.Tag, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tag, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Tag, error)
	Add(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostInput is what an author may set on a post. The author itself comes
// from the authenticated identity, never from the payload.
type PostInput struct {
	Title      string      `json:"title"`
	Body       string      `json:"body"`
	CategoryID uuid.UUID   `json:"categoryId"`
	TagIDs     []uuid.UUID `json:"tagIds"`
}

// PostDetail is a post prepared for its detail page.
type PostDetail struct {
	*models.Post
	HTML string `json:"html"`
	TOC  string `json:"toc"`
}

type PostService struct {
	posts      PostStore
	categories CategoryStore
	tags       TagStore
	page       Renderer
	summary    Renderer
	clock      Clock
	logger     zerolog.Logger
}

// NewPostService wires the post operations. page renders detail pages (with
// a table of contents); summary renders bodies for excerpts.
func NewPostService(posts PostStore, categories CategoryStore, tags TagStore, page, summary Renderer, clock Clock) *PostService {
	return &PostService{
		posts:      posts,
		categories: categories,
		tags:       tags,
		page:       page,
		summary:    summary,
		clock:      clock,
		logger:     log.With().Str("service", "posts").Logger(),
	}
}

func (s *PostService) CreatePost(ctx context.Context, in PostInput, authorID uuid.UUID) (*models.Post, error) {
	post := models.Post{
		Title:      strings.TrimSpace(in.Title),
		Body:       in.Body,
		CategoryID: in.CategoryID,
		AuthorID:   authorID,
	}

	prepared, err := s.prepare(ctx, post, in.TagIDs)
	if err != nil {
		return nil, err
	}

	if err := s.posts.Add(ctx, &prepared); err != nil {
		return nil, errs.NewDatabaseError("create", "post", err)
	}
	s.logger.Info().Str("postID", prepared.ID.String()).Str("authorID", authorID.String()).Msg("post created")

	return s.reload(ctx, prepared.ID)
}

// UpdatePost replaces the editable fields and attributes the post to the
// author saving it. Creation time and view count are kept from the stored
// post.
func (s *PostService) UpdatePost(ctx context.Context, id uuid.UUID, in PostInput, authorID uuid.UUID) (*models.Post, error) {
	existing, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post", err)
	}

	post := *existing
	post.Title = strings.TrimSpace(in.Title)
	post.Body = in.Body
	post.CategoryID = in.CategoryID
	post.Category = nil
	post.AuthorID = authorID
	post.Author = nil

	prepared, err := s.prepare(ctx, post, in.TagIDs)
	if err != nil {
		return nil, err
	}

	if err := s.posts.Update(ctx, &prepared); err != nil {
		return nil, errs.NewDatabaseError("update", "post", err)
	}
	s.logger.Info().Str("postID", id.String()).Str("authorID", authorID.String()).Msg("post updated")

	return s.reload(ctx, id)
}

func (s *PostService) DeletePost(ctx context.Context, id uuid.UUID) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("delete", "post", err)
	}
	s.logger.Info().Str("postID", id.String()).Msg("post deleted")
	return nil
}

// ReadPost loads a post for its detail page: the body is rendered with
// heading anchors and a table of contents, and the view count goes up by one.
// Every call counts as a view.
func (s *PostService) ReadPost(ctx context.Context, id uuid.UUID) (*PostDetail, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post", err)
	}

	rendered, err := s.page.Render(post.Body)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("render post body", err)
	}

	views, err := s.posts.IncrementViews(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("count view of", "post", err)
	}
	post.Views = views

	return &PostDetail{Post: post, HTML: rendered.HTML, TOC: rendered.TOC}, nil
}

// IncrementViews bumps the view count of a post and returns the new count.
func (s *PostService) IncrementViews(ctx context.Context, id uuid.UUID) (int, error) {
	views, err := s.posts.IncrementViews(ctx, id)
	if err != nil {
		return 0, errs.NewDatabaseError("count view of", "post", err)
	}
	return views, nil
}

func (s *PostService) AllPosts(ctx context.Context) ([]*models.Post, error) {
	return s.listPosts(ctx)
}

func (s *PostService) PostsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Post, error) {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, errs.NewDatabaseError("find", "category", err)
	}
	return s.listPosts(ctx, database.InCategory(categoryID))
}

func (s *PostService) PostsByTag(ctx context.Context, tagID uuid.UUID) ([]*models.Post, error) {
	if _, err := s.tags.FindByID(ctx, tagID); err != nil {
		return nil, errs.NewDatabaseError("find", "tag", err)
	}
	return s.listPosts(ctx, database.WithTag(tagID))
}

// PostsByMonth lists the archive of one calendar month.
func (s *PostService) PostsByMonth(ctx context.Context, year, month int) ([]*models.Post, error) {
	if year < 1 || year > 9999 {
		return nil, errs.NewInvalidFieldError("year", "year must be between 1 and 9999")
	}
	if month < 1 || month > 12 {
		return nil, errs.NewInvalidFieldError("month", "month must be between 1 and 12")
	}
	return s.listPosts(ctx, database.CreatedInMonth(year, time.Month(month)))
}

// SearchPosts matches keyword case-insensitively against title and body. An
// empty keyword is a user error, not a request for every post.
func (s *PostService) SearchPosts(ctx context.Context, keyword string) ([]*models.Post, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errs.NewUserInputError("q", "please enter a search keyword")
	}
	return s.listPosts(ctx, database.MatchingKeyword(keyword))
}

func (s *PostService) listPosts(ctx context.Context, scopes ...database.Scope) ([]*models.Post, error) {
	posts, err := s.posts.Find(ctx, scopes...)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "posts", err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

// prepare validates the post, resolves its category and tags and runs the
// save pipeline.
func (s *PostService) prepare(ctx context.Context, post models.Post, tagIDs []uuid.UUID) (models.Post, error) {
	if err := validateStruct(post); err != nil {
		return models.Post{}, err
	}

	if _, err := s.categories.FindByID(ctx, post.CategoryID); err != nil {
		return models.Post{}, errs.NewDatabaseError("find", "category", err)
	}

	ids := uniqueIDs(tagIDs)
	tags, err := s.tags.FindByIDs(ctx, ids)
	if err != nil {
		return models.Post{}, errs.NewDatabaseError("find", "tags", err)
	}
	if len(tags) != len(ids) {
		return models.Post{}, errs.NewNotFound("tag")
	}
	post.Tags = tags

	return PrepareForSave(s.summary, post, s.clock.Now())
}

func (s *PostService) reload(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find saved", "post", err)
	}
	return post, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
