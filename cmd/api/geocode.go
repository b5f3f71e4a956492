package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"parcacote/internal/geocode"
)

// geocodeSearchHandler godoc
//
//	@Summary		Geocode an address
//	@Description	Resolves a free-form address to coordinates, for the submission form.
//	@Tags			geocode
//	@Produce		json
//	@Param			q	query		string	true	"Address to resolve"
//	@Success		200	{object}	geocode.Result
//	@Failure		400	{object}	ErrorBadRequestResponse
//	@Failure		404	{object}	error
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Router			/geocode [get]
func (app *application) geocodeSearchHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		app.badRequestResponse(w, r, fmt.Errorf("q is required"))
		return
	}

	result, err := app.geocoder.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, geocode.ErrNoResult) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}

// geocodeReverseHandler godoc
//
//	@Summary		Reverse geocode coordinates
//	@Description	Resolves coordinates to an address, for the "use my location" flow.
//	@Tags			geocode
//	@Produce		json
//	@Param			lat	query		number	true	"Latitude"
//	@Param			lng	query		number	true	"Longitude"
//	@Success		200	{object}	geocode.Result
//	@Failure		400	{object}	ErrorBadRequestResponse
//	@Failure		404	{object}	error
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Router			/geocode/reverse [get]
func (app *application) geocodeReverseHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(strings.TrimSpace(q.Get("lat")), 64)
	if err != nil || lat < -90 || lat > 90 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid lat"))
		return
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(q.Get("lng")), 64)
	if err != nil || lng < -180 || lng > 180 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid lng"))
		return
	}

	result, err := app.geocoder.Reverse(r.Context(), lat, lng)
	if err != nil {
		if errors.Is(err, geocode.ErrNoResult) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}
