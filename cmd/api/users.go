package main

import (
	"net/http"

	"parcacote/internal/domain/playgrounds"
	"parcacote/internal/domain/users"
)

type userKey string

const userCtx userKey = "user"

func getUserFromContext(r *http.Request) *users.User {
	user, _ := r.Context().Value(userCtx).(*users.User)
	return user
}

// getCurrentUserHandler godoc
//
//	@Summary		Current user profile
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	users.User
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/users/me [get]
func (app *application) getCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	if err := app.jsonResponse(w, http.StatusOK, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listMySubmissionsHandler godoc
//
//	@Summary		List the caller's submissions
//	@Description	Playgrounds submitted by the current user, any moderation status.
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	[]playgrounds.Playground
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/users/me/submissions [get]
func (app *application) listMySubmissionsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	raws, err := app.store.Playgrounds.ListBySubmitter(r.Context(), user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, playgrounds.NormalizeAll(raws)); err != nil {
		app.internalServerError(w, r, err)
	}
}
