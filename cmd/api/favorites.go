package main

import (
	"errors"
	"net/http"

	"parcacote/internal/domain/playgrounds"
)

// addFavoriteHandler godoc
//
//	@Summary		Favorite a playground
//	@Tags			favorites
//	@Produce		json
//	@Param			playgroundID	path		int64	true	"Playground ID"
//	@Success		204				{string}	string	"No Content"
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		404				{object}	error
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/users/favorites/{playgroundID} [put]
func (app *application) addFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	id, err := app.playgroundIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if _, err := app.store.Playgrounds.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, playgrounds.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Favorites.Add(r.Context(), user.ID, id); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// removeFavoriteHandler godoc
//
//	@Summary		Unfavorite a playground
//	@Tags			favorites
//	@Produce		json
//	@Param			playgroundID	path		int64	true	"Playground ID"
//	@Success		204				{string}	string	"No Content"
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/users/favorites/{playgroundID} [delete]
func (app *application) removeFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	id, err := app.playgroundIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Favorites.Remove(r.Context(), user.ID, id); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// favoriteStatusHandler godoc
//
//	@Summary		Check whether a playground is favorited
//	@Tags			favorites
//	@Produce		json
//	@Param			playgroundID	path		int64	true	"Playground ID"
//	@Success		200				{object}	map[string]bool
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/users/favorites/{playgroundID} [get]
func (app *application) favoriteStatusHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	id, err := app.playgroundIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	fav, err := app.store.Favorites.IsFavorite(r.Context(), user.ID, id)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]bool{"is_favorite": fav}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listFavoritesHandler godoc
//
//	@Summary		List favorite playgrounds
//	@Description	Resolved through the playground cache, newest favorite first. Favorites whose playground is no longer approved are skipped.
//	@Tags			favorites
//	@Produce		json
//	@Success		200	{object}	[]playgrounds.Playground
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/users/favorites [get]
func (app *application) listFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	ids, err := app.store.Favorites.ListPlaygroundIDs(r.Context(), user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	result := make([]playgrounds.Playground, 0, len(ids))
	for _, id := range ids {
		pg, _, err := app.cache.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, playgrounds.ErrNotFound) {
				continue
			}
			app.internalServerError(w, r, err)
			return
		}
		result = append(result, *pg)
	}

	if err := app.jsonResponse(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}
