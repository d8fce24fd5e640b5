package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/tutorial-blog-backend/errs"
	"github.com/rpupo63/tutorial-blog-backend/models"
	"github.com/rpupo63/tutorial-blog-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     *services.PostService
}

func newPostHandler(posts *services.PostService) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
	}
}

// parseIDParam reads a UUID path parameter.
func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid " + name)
	}
	return id, nil
}

func (h postHandler) writePosts(w http.ResponseWriter, posts []*models.Post, messages []string) {
	h.responder.WriteJSON(w, PostCollection{
		Posts:    posts,
		Total:    len(posts),
		Messages: messages,
	})
}

// getAllPosts lists every post, newest first
// @Summary List posts
// @Description Retrieves all posts ordered by creation time (newest first), then title. Pending flash messages are returned and cleared.
// @Tags Posts
// @Produce json
// @Success 200 {object} PostCollection "List of posts"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /posts [get]
func (h postHandler) getAllPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages := drainFlash(w, r)

		posts, err := h.posts.AllPosts(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.writePosts(w, posts, messages)
	}
}

// getPost returns one post rendered for reading and counts the view
// @Summary Read post
// @Description Renders the post body with heading anchors and a table of contents, and increments the view count
// @Tags Posts
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Success 200 {object} services.PostDetail "Rendered post"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid postID"
// @Failure 404 {object} ErrorResponse "Not Found - Post not found"
// @Router /posts/{postID} [get]
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parseIDParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		detail, err := h.posts.ReadPost(r.Context(), postID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, detail)
	}
}

// createPost saves a new post authored by the authenticated user
// @Summary Create post
// @Description Creates a post. The author is taken from the bearer token; excerpt and timestamps are derived.
// @Tags Posts
// @Accept json
// @Produce json
// @Param post body services.PostInput true "Post data"
// @Success 201 {object} models.Post "Created post"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid post data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Unknown category or tag"
// @Router /posts [post]
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in services.PostInput
		if err := decodeJSON(w, r, "post", &in); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode post request body")
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.CreatePost(r.Context(), in, authorID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, post)
	}
}

// updatePost replaces the editable fields of a post
// @Summary Update post
// @Description Replaces title, body, category and tags. The post is attributed to the author in the bearer token.
// @Tags Posts
// @Accept json
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Param post body services.PostInput true "Post data"
// @Success 200 {object} models.Post "Updated post"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid post data"
// @Failure 404 {object} ErrorResponse "Not Found - Post, category or tag not found"
// @Router /posts/{postID} [put]
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		postID, err := parseIDParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in services.PostInput
		if err := decodeJSON(w, r, "post", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.UpdatePost(r.Context(), postID, in, authorID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// deletePost removes a post
// @Summary Delete post
// @Tags Posts
// @Param postID path string true "Post ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Not Found - Post not found"
// @Router /posts/{postID} [delete]
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parseIDParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.posts.DeletePost(r.Context(), postID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// getArchive lists the posts of one calendar month
// @Summary Monthly archive
// @Tags Posts
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} PostCollection "Posts created in the month"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid year or month"
// @Router /archives/{year}/{month} [get]
func (h postHandler) getArchive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := strconv.Atoi(chi.URLParam(r, "year"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("year", "year must be a number"))
			return
		}
		month, err := strconv.Atoi(chi.URLParam(r, "month"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("month", "month must be a number"))
			return
		}

		posts, err := h.posts.PostsByMonth(r.Context(), year, month)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.writePosts(w, posts, nil)
	}
}

// search matches the q parameter against post titles and bodies. A blank
// keyword sends the reader back to the index with a flash message.
// @Summary Search posts
// @Tags Posts
// @Produce json
// @Param q query string true "Keyword"
// @Success 200 {object} PostCollection "Matching posts"
// @Success 303 "Blank keyword, redirected to /posts"
// @Router /search [get]
func (h postHandler) search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.posts.SearchPosts(r.Context(), r.URL.Query().Get("q"))
		if errs.IsUserInputError(err) {
			var apiErr *errs.ApiErr
			message := "please enter a search keyword"
			if errors.As(err, &apiErr) && apiErr.Details != "" {
				message = apiErr.Details
			}
			setFlash(w, message)
			http.Redirect(w, r, "/posts", http.StatusSeeOther)
			return
		}
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.writePosts(w, posts, nil)
	}
}
