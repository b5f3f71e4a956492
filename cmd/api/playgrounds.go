package main

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"parcacote/internal/domain/playgrounds"
	"parcacote/internal/geo"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
)

const maxSubmissionPhotos = 7

// defaultImageURLs back a submission that arrives without photos, so the
// map never renders an empty card.
var defaultImageURLs = []string{
	"https://images.unsplash.com/photo-1575783970733-1aaedde1db74?w=800",
	"https://images.unsplash.com/photo-1596464716127-f2a82984de30?w=800",
}

type playgroundListResponse struct {
	Playgrounds []playgrounds.Playground `json:"playgrounds"`
	Fallback    bool                     `json:"fallback"`
	Total       int                      `json:"total"`
}

// listPlaygroundsHandler godoc
//
//	@Summary		List approved playgrounds
//	@Description	Approved playgrounds, optionally ranked by distance to lat/lng and filtered by radius_km. The fallback flag is true when sample data is served.
//	@Tags			playgrounds
//	@Produce		json
//	@Param			lat			query		number	false	"Reference latitude"
//	@Param			lng			query		number	false	"Reference longitude"
//	@Param			radius_km	query		number	false	"Keep only playgrounds within this distance"
//	@Param			limit		query		int		false	"Maximum results (default 50, ignored with all=true)"
//	@Param			all			query		bool	false	"Return the full list"
//	@Success		200			{object}	playgroundListResponse
//	@Failure		400			{object}	ErrorBadRequestResponse
//	@Failure		500			{object}	ErrorInternalServerResponse
//	@Router			/playgrounds [get]
func (app *application) listPlaygroundsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ref, err := parseRef(q.Get("lat"), q.Get("lng"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	radiusKm := 0.0
	if raw := strings.TrimSpace(q.Get("radius_km")); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil || radiusKm < 0 {
			app.badRequestResponse(w, r, fmt.Errorf("invalid radius_km"))
			return
		}
	}

	limit := 50
	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			app.badRequestResponse(w, r, fmt.Errorf("invalid limit"))
			return
		}
	}
	if all, _ := strconv.ParseBool(q.Get("all")); all {
		limit = 0
	}

	list, usedFallback, err := app.cache.GetAll(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	ranked := playgrounds.Rank(list, ref, radiusKm, limit)

	resp := playgroundListResponse{
		Playgrounds: ranked,
		Fallback:    usedFallback,
		Total:       len(ranked),
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

func parseRef(latRaw, lngRaw string) (*geo.Point, error) {
	latRaw, lngRaw = strings.TrimSpace(latRaw), strings.TrimSpace(lngRaw)
	if latRaw == "" && lngRaw == "" {
		return nil, nil
	}
	if latRaw == "" || lngRaw == "" {
		return nil, fmt.Errorf("lat and lng must be provided together")
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lat")
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lng")
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("coordinates out of range")
	}
	return &geo.Point{Lat: lat, Lng: lng}, nil
}

// getPlaygroundHandler godoc
//
//	@Summary		Playground detail
//	@Tags			playgrounds
//	@Produce		json
//	@Param			playgroundID	path		int64	true	"Playground ID"
//	@Success		200				{object}	playgrounds.Playground
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		404				{object}	error
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Router			/playgrounds/{playgroundID} [get]
func (app *application) getPlaygroundHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "playgroundID"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid playground ID"))
		return
	}

	pg, _, err := app.cache.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, playgrounds.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, pg); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getPlaygroundByShareCodeHandler godoc
//
//	@Summary		Resolve a share code
//	@Tags			playgrounds
//	@Produce		json
//	@Param			code	path		string	true	"Share code"
//	@Success		200		{object}	playgrounds.Playground
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Router			/playgrounds/share/{code} [get]
func (app *application) getPlaygroundByShareCodeHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := playgrounds.DecodeShareCode(chi.URLParam(r, "code"))
	if !ok {
		app.badRequestResponse(w, r, fmt.Errorf("invalid share code"))
		return
	}

	pg, _, err := app.cache.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, playgrounds.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, pg); err != nil {
		app.internalServerError(w, r, err)
	}
}

// submitPlaygroundHandler godoc
//
//	@Summary		Submit a playground
//	@Description	Creates a pending playground in one transaction: base row, photos (uploaded to Cloudinary, max 7, defaults when none) and equipment links. Admins are notified.
//	@Tags			playgrounds
//	@Accept			mpfd
//	@Produce		json
//	@Param			name	formData	string	true	"Playground name"
//	@Success		201		{object}	playgrounds.Playground
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/playgrounds [post]
func (app *application) submitPlaygroundHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("unable to parse form: %w", err))
		return
	}

	in, err := app.parseSubmissionForm(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	in.SubmittedBy = user.ID

	var files []*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File["photos"]
	}
	if len(files) > maxSubmissionPhotos {
		app.badRequestResponse(w, r, fmt.Errorf("at most %d photos are allowed", maxSubmissionPhotos))
		return
	}

	// Uploads happen before the transaction; a failed insert leaves
	// orphan assets in Cloudinary rather than half a submission in the
	// database.
	if len(files) > 0 {
		urls, err := app.uploadPlaygroundImages(r.Context(), files)
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		in.ImageURLs = urls
	} else {
		in.ImageURLs = append([]string{}, defaultImageURLs...)
	}

	var created *playgrounds.Raw
	err = app.store.WithSubmissionTx(r.Context(), func(tx pgx.Tx) error {
		raw, err := app.store.Playgrounds.Create(r.Context(), tx, in)
		if err != nil {
			return err
		}
		if err := app.store.Playgrounds.AddImages(r.Context(), tx, raw.ID, in.ImageURLs); err != nil {
			return err
		}
		if err := app.store.Playgrounds.ReplaceEquipments(r.Context(), tx, raw.ID, in.EquipmentIDs); err != nil {
			return err
		}
		created = raw
		return nil
	})
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	created.Images = rawImagesFromURLs(in.ImageURLs)
	created.EquipmentIDs = in.EquipmentIDs
	result := playgrounds.Normalize(*created)

	app.notifySubmission(&result, user.FirstName, user.Email)

	if err := app.jsonResponse(w, http.StatusCreated, result); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) parseSubmissionForm(r *http.Request) (*playgrounds.CreateInput, error) {
	form := func(key string) string { return strings.TrimSpace(r.FormValue(key)) }

	in := &playgrounds.CreateInput{
		Name:        form("name"),
		Description: form("description"),
		Address:     form("address"),
		City:        form("city"),
		PostalCode:  form("postal_code"),
		AgeRange:    form("age_range"),
	}
	if in.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	lat, err := strconv.ParseFloat(form("latitude"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("invalid latitude")
	}
	lng, err := strconv.ParseFloat(form("longitude"), 64)
	if err != nil || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("invalid longitude")
	}
	in.Latitude, in.Longitude = lat, lng

	if err := Validate.Var(in.PostalCode, "frpostcode"); err != nil {
		return nil, fmt.Errorf("invalid postal code")
	}

	for _, id := range r.Form["equipment_ids"] {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if err := Validate.Var(id, "equipmentid"); err != nil {
			return nil, fmt.Errorf("unknown equipment id %q", id)
		}
		in.EquipmentIDs = append(in.EquipmentIDs, id)
	}

	return in, nil
}

func rawImagesFromURLs(urls []string) []playgrounds.RawImage {
	out := make([]playgrounds.RawImage, 0, len(urls))
	for _, u := range urls {
		out = append(out, playgrounds.RawImage{URL: u, Status: string(playgrounds.StatusPending)})
	}
	return out
}

// notifySubmission fans out to the moderation queue: push to admins and a
// confirmation email to the submitter. Neither failure blocks the response.
func (app *application) notifySubmission(pg *playgrounds.Playground, firstName, email string) {
	app.background(func() {
		if err := app.sendSubmissionReceivedEmail(firstName, email, pg.Name); err != nil {
			app.logger.Errorw("error sending submission email", "error", err)
		}
	})
	app.background(func() {
		ctx, cancel := backgroundContext()
		defer cancel()
		if err := notifyAdmins(ctx, app, pg.ID, pg.Name); err != nil {
			app.logger.Warnw("admin push notification skipped", "error", err)
		}
	})
}

// updatePlaygroundHandler godoc
//
//	@Summary		Edit a submission
//	@Description	Owner-only partial edit of the base fields and equipment list. Photos are not editable here.
//	@Tags			playgrounds
//	@Accept			json
//	@Produce		json
//	@Param			playgroundID	path		int64	true	"Playground ID"
//	@Success		200				{object}	map[string]string
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		403				{object}	error
//	@Failure		404				{object}	error
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/playgrounds/{playgroundID} [patch]
func (app *application) updatePlaygroundHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "playgroundID"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid playground ID"))
		return
	}

	isSubmitter, err := app.store.Playgrounds.IsSubmitter(r.Context(), id, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if !isSubmitter {
		app.forbiddenResponse(w, r)
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

type updatePlaygroundPayload struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Description  *string  `json:"description,omitempty"`
	Address      *string  `json:"address,omitempty"`
	City         *string  `json:"city,omitempty" validate:"omitempty,max=255"`
	PostalCode   *string  `json:"postal_code,omitempty" validate:"omitempty,frpostcode"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	AgeRange     *string  `json:"age_range,omitempty" validate:"omitempty,max=50"`
	EquipmentIDs []string `json:"equipment_ids,omitempty" validate:"omitempty,dive,equipmentid"`
}

func (app *application) readUpdatePayload(w http.ResponseWriter, r *http.Request) (*playgrounds.UpdateInput, error) {
	var payload updatePlaygroundPayload
	if err := readJSON(w, r, &payload); err != nil {
		return nil, err
	}
	if err := Validate.Struct(payload); err != nil {
		return nil, err
	}

	return &playgrounds.UpdateInput{
		Name:         payload.Name,
		Description:  payload.Description,
		Address:      payload.Address,
		City:         payload.City,
		PostalCode:   payload.PostalCode,
		Latitude:     payload.Latitude,
		Longitude:    payload.Longitude,
		AgeRange:     payload.AgeRange,
		EquipmentIDs: payload.EquipmentIDs,
	}, nil
}

// deletePlaygroundHandler godoc
//
//	@Summary		Delete a submission
//	@Description	Owner-only removal. Comments and images go with the playground.
//	@Tags			playgrounds
//	@Produce		json
//	@Param			playgroundID	path	int64	true	"Playground ID"
//	@Success		204				{string}	string	"No Content"
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		403				{object}	error
//	@Failure		404				{object}	error
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/playgrounds/{playgroundID} [delete]
func (app *application) deletePlaygroundHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "playgroundID"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid playground ID"))
		return
	}

	isSubmitter, err := app.store.Playgrounds.IsSubmitter(r.Context(), id, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if !isSubmitter {
		app.forbiddenResponse(w, r)
		return
	}

	if err := app.store.Playgrounds.Delete(r.Context(), id); err != nil {
		if errors.Is(err, playgrounds.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.cache.Invalidate()

	w.WriteHeader(http.StatusNoContent)
}
