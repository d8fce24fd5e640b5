package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/rpupo63/tutorial-blog-backend/render"
	"github.com/rs/zerolog/log"
)

type statusHandler struct {
	responder   Responder
	startupTime time.Time
	markdown    *render.Markdown
}

func newStatusHandler(startupTime time.Time, markdown *render.Markdown) statusHandler {
	logger := log.With().Str("handlerName", "statusHandler").Logger()
	return statusHandler{
		responder:   NewResponder(logger),
		startupTime: startupTime,
		markdown:    markdown,
	}
}

// @Router /health [get]
func (h statusHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, healthResponse{
			Status:  "ok",
			Started: h.startupTime.UTC().Format(time.RFC3339),
			Uptime:  time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}

// highlightCSS serves the stylesheet for highlighted code blocks.
// @Router /highlight.css [get]
func (h statusHandler) highlightCSS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := h.markdown.WriteHighlightCSS(&buf); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		_, _ = w.Write(buf.Bytes())
	}
}
