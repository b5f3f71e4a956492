package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"parcacote/internal/domain/playgrounds"
	"parcacote/internal/domain/users"
	"parcacote/internal/notifications"
	"parcacote/internal/params"

	"github.com/go-chi/chi/v5"
)

type adminListResponse struct {
	Playgrounds []playgrounds.Playground `json:"playgrounds"`
	Pagination  params.Pagination        `json:"pagination"`
}

// adminListPlaygroundsHandler godoc
//
//	@Summary		List playgrounds (admin)
//	@Description	Admin route. List playgrounds by moderation status with pagination.
//	@Tags			admin
//	@Produce		json
//	@Param			status	query		string	false	"pending|approved|rejected"
//	@Param			page	query		int		false	"page number (default 1)"
//	@Param			limit	query		int		false	"page size (default 15, max 30)"
//	@Success		200		{object}	adminListResponse
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		401		{object}	error
//	@Failure		403		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/playgrounds [get]
func (app *application) adminListPlaygroundsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pagination := params.ParsePagination(q)

	var statusPtr *playgrounds.Status
	if s := strings.TrimSpace(q.Get("status")); s != "" {
		st := playgrounds.Status(s)
		if !st.Valid() {
			app.badRequestResponse(w, r, fmt.Errorf("invalid status"))
			return
		}
		statusPtr = &st
	}

	raws, total, err := app.store.Playgrounds.List(r.Context(), playgrounds.ListFilter{
		Status: statusPtr,
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	pagination.ComputeMeta(total)

	resp := adminListResponse{
		Playgrounds: playgrounds.NormalizeAll(raws),
		Pagination:  pagination,
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminApprovePlaygroundHandler godoc
//
//	@Summary		Approve a playground (admin)
//	@Description	Moves a pending or rejected playground to approved, making it publicly visible on the next cache refresh. The submitter is notified.
//	@Tags			admin
//	@Produce		json
//	@Param			playgroundID	path		int64	true	"Playground ID"
//	@Success		200				{object}	map[string]string
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		404				{object}	error
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/playgrounds/{playgroundID}/approve [post]
func (app *application) adminApprovePlaygroundHandler(w http.ResponseWriter, r *http.Request) {
	app.moderatePlayground(w, r, playgrounds.StatusApproved, nil)
}

type adminRejectPayload struct {
	Reason *string `json:"reason,omitempty"`
}

// adminRejectPlaygroundHandler godoc
//
//	@Summary		Reject a playground (admin)
//	@Description	Moves a playground to rejected with an optional reason shown to the submitter.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			playgroundID	path		int64				true	"Playground ID"
//	@Param			payload			body		adminRejectPayload	false	"Optional reason"
//	@Success		200				{object}	map[string]string
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		404				{object}	error
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/playgrounds/{playgroundID}/reject [post]
func (app *application) adminRejectPlaygroundHandler(w http.ResponseWriter, r *http.Request) {
	var payload adminRejectPayload
	_ = readJSON(w, r, &payload) // allow empty body

	app.moderatePlayground(w, r, playgrounds.StatusRejected, payload.Reason)
}

func (app *application) moderatePlayground(w http.ResponseWriter, r *http.Request, target playgrounds.Status, reason *string) {
	id, err := strconv.ParseInt(chi.URLParam(r, "playgroundID"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid playground ID"))
		return
	}

	raw, err := app.store.Playgrounds.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, playgrounds.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}
	// A decision overwrites the previous one, so a rejected playground can
	// still be approved later. Only repeating the same decision is refused.
	if playgrounds.Status(raw.Status) == target {
		app.badRequestResponse(w, r, fmt.Errorf("playground is already %s", target))
		return
	}

	if err := app.store.Playgrounds.UpdateStatus(r.Context(), id, target, reason); err != nil {
		if errors.Is(err, playgrounds.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.cache.Invalidate()
	app.notifyDecision(raw, target, reason)

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("playground %s", target),
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) notifyDecision(raw *playgrounds.Raw, target playgrounds.Status, reason *string) {
	submitterID := raw.SubmittedBy
	name := raw.Name
	id := raw.ID

	app.background(func() {
		ctx, cancel := backgroundContext()
		defer cancel()

		submitter, err := app.store.Users.GetByID(ctx, submitterID)
		if err != nil {
			if !errors.Is(err, users.ErrNotFound) {
				app.logger.Errorw("error loading submitter", "error", err)
			}
			return
		}

		event := notifications.SubmissionApproved
		if target == playgrounds.StatusRejected {
			event = notifications.SubmissionRejected
		}
		if err := notifications.NotifySubmitterOfDecision(ctx, app.push, app.store, submitter.ID, id, name, event); err != nil {
			app.logger.Warnw("submitter push notification skipped", "error", err)
		}

		if target == playgrounds.StatusApproved {
			err = app.sendApprovalEmail(submitter.FirstName, submitter.Email, name, playgrounds.ShareCode(id))
		} else {
			err = app.sendRejectionEmail(submitter.FirstName, submitter.Email, name, reason)
		}
		if err != nil {
			app.logger.Errorw("error sending decision email", "error", err)
		}
	})
}

// adminUpdatePlaygroundHandler godoc
//
//	@Summary		Edit any playground (admin)
//	@Description	Same contract as the owner edit, without the ownership check.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			playgroundID	path		int64	true	"Playground ID"
//	@Success		200				{object}	map[string]string
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		404				{object}	error
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/playgrounds/{playgroundID} [patch]
func (app *application) adminUpdatePlaygroundHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "playgroundID"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid playground ID"))
		return
	}

	in, err := app.readUpdatePayload(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Playgrounds.Update(r.Context(), id, in); err != nil {
		if errors.Is(err, playgrounds.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.cache.Invalidate()

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "playground updated"}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminDeletePlaygroundHandler godoc
//
//	@Summary		Delete any playground (admin)
//	@Description	Removes the playground, its images (also from Cloudinary) and its comments.
//	@Tags			admin
//	@Produce		json
//	@Param			playgroundID	path	int64	true	"Playground ID"
//	@Success		204				{string}	string	"No Content"
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		404				{object}	error
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/playgrounds/{playgroundID} [delete]
func (app *application) adminDeletePlaygroundHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "playgroundID"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid playground ID"))
		return
	}

	raw, err := app.store.Playgrounds.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, playgrounds.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Playgrounds.Delete(r.Context(), id); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.cache.Invalidate()

	// Cloudinary cleanup is best effort; the rows are already gone.
	images := raw.Images
	app.background(func() {
		for _, img := range images {
			if strings.Contains(img.URL, "cloudinary.com") {
				if err := app.deletePhotoFromCloudinary(img.URL); err != nil {
					app.logger.Warnw("cloudinary cleanup failed", "url", img.URL, "error", err)
				}
			}
		}
	})

	w.WriteHeader(http.StatusNoContent)
}
