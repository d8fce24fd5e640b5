package api

import (
	"net/http"

	"github.com/rpupo63/tutorial-blog-backend/services"
	"github.com/rs/zerolog/log"
)

type taxonomyHandler struct {
	responder Responder
	taxonomy  *services.TaxonomyService
	posts     *services.PostService
}

func newTaxonomyHandler(taxonomy *services.TaxonomyService, posts *services.PostService) taxonomyHandler {
	logger := log.With().Str("handlerName", "taxonomyHandler").Logger()
	return taxonomyHandler{
		responder: NewResponder(logger),
		taxonomy:  taxonomy,
		posts:     posts,
	}
}

// @Router /categories [get]
func (h taxonomyHandler) getCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.taxonomy.ListCategories(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, categories)
	}
}

// @Router /categories [post]
func (h taxonomyHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nameRequest
		if err := decodeJSON(w, r, "category", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.taxonomy.CreateCategory(r.Context(), req.Name)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, category)
	}
}

// deleteCategory also deletes every post in the category.
// @Router /categories/{categoryID} [delete]
func (h taxonomyHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := parseIDParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.taxonomy.DeleteCategory(r.Context(), categoryID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// @Router /categories/{categoryID}/posts [get]
func (h taxonomyHandler) getCategoryPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := parseIDParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		posts, err := h.posts.PostsByCategory(r.Context(), categoryID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, PostCollection{Posts: posts, Total: len(posts)})
	}
}

// @Router /tags [get]
func (h taxonomyHandler) getTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.taxonomy.ListTags(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, tags)
	}
}

// @Router /tags [post]
func (h taxonomyHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nameRequest
		if err := decodeJSON(w, r, "tag", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag, err := h.taxonomy.CreateTag(r.Context(), req.Name)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, tag)
	}
}

// @Router /tags/{tagID} [delete]
func (h taxonomyHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := parseIDParam(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.taxonomy.DeleteTag(r.Context(), tagID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// @Router /tags/{tagID}/posts [get]
func (h taxonomyHandler) getTagPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := parseIDParam(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		posts, err := h.posts.PostsByTag(r.Context(), tagID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, PostCollection{Posts: posts, Total: len(posts)})
	}
}
