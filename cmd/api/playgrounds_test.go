package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"parcacote/internal/domain/playgrounds"

	"github.com/go-chi/chi/v5"
)

func TestListPlaygroundsRadiusFilter(t *testing.T) {
	// Offsets chosen so the playgrounds sit roughly 1, 4, 6 and 10 km
	// north of the reference point.
	ref := struct{ lat, lng float64 }{45.7640, 4.8357}
	kmNorth := func(km float64) float64 { return ref.lat + km/111.19 }

	pgStore := &mockPlaygroundStore{
		listApprovedFn: func(ctx context.Context) ([]playgrounds.Raw, error) {
			return []playgrounds.Raw{
				approvedRaw(1, "one", kmNorth(1), ref.lng),
				approvedRaw(2, "four", kmNorth(4), ref.lng),
				approvedRaw(3, "six", kmNorth(6), ref.lng),
				approvedRaw(4, "ten", kmNorth(10), ref.lng),
			}, nil
		},
	}
	app := newTestApp(pgStore)

	req := httptest.NewRequest(http.MethodGet, "/v1/playgrounds?lat=45.7640&lng=4.8357&radius_km=5", nil)
	rr := httptest.NewRecorder()
	app.listPlaygroundsHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp playgroundListResponse
	decodeData(t, rr.Body.Bytes(), &resp)

	if resp.Fallback {
		t.Error("fallback should be false when the store answers")
	}
	if len(resp.Playgrounds) != 2 {
		t.Fatalf("got %d playgrounds, want 2", len(resp.Playgrounds))
	}
	if resp.Playgrounds[0].Name != "one" || resp.Playgrounds[1].Name != "four" {
		t.Errorf("results not sorted by distance: %q, %q", resp.Playgrounds[0].Name, resp.Playgrounds[1].Name)
	}
	if resp.Playgrounds[0].DistanceKm == nil {
		t.Error("distance should be attached when a reference point is given")
	}
}

func TestListPlaygroundsFallback(t *testing.T) {
	pgStore := &mockPlaygroundStore{
		listApprovedFn: func(ctx context.Context) ([]playgrounds.Raw, error) {
			return nil, errors.New("connection refused")
		},
	}
	app := newTestApp(pgStore)

	req := httptest.NewRequest(http.MethodGet, "/v1/playgrounds?all=true", nil)
	rr := httptest.NewRecorder()
	app.listPlaygroundsHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rr.Code, http.StatusOK)
	}

	var resp playgroundListResponse
	decodeData(t, rr.Body.Bytes(), &resp)

	if !resp.Fallback {
		t.Error("fallback flag should be set when the store is unreachable")
	}
	if len(resp.Playgrounds) != 5 {
		t.Errorf("got %d sample playgrounds, want 5", len(resp.Playgrounds))
	}
}

func TestListPlaygroundsRejectsBadCoordinates(t *testing.T) {
	app := newTestApp(&mockPlaygroundStore{})

	for _, query := range []string{
		"?lat=45.7",        // lng missing
		"?lat=abc&lng=4.8", // not a number
		"?lat=95&lng=4.8",  // out of range
		"?lat=45.7&lng=4.8&radius_km=-2",
	} {
		req := httptest.NewRequest(http.MethodGet, "/v1/playgrounds"+query, nil)
		rr := httptest.NewRecorder()
		app.listPlaygroundsHandler(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("query %q: got status %d, want %d", query, rr.Code, http.StatusBadRequest)
		}
	}
}

func TestGetPlaygroundNotFound(t *testing.T) {
	app := newTestApp(&mockPlaygroundStore{})

	req := httptest.NewRequest(http.MethodGet, "/v1/playgrounds/999", nil)
	rr := httptest.NewRecorder()

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("playgroundID", "999")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	app.getPlaygroundHandler(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("got status %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestGetPlaygroundByShareCode(t *testing.T) {
	raw := approvedRaw(42, "Parc de la Tête d'Or", 45.7797, 4.8527)
	pgStore := &mockPlaygroundStore{
		getByIDFn: func(ctx context.Context, id int64) (*playgrounds.Raw, error) {
			if id != 42 {
				return nil, playgrounds.ErrNotFound
			}
			return &raw, nil
		},
	}
	app := newTestApp(pgStore)

	code := playgrounds.ShareCode(42)

	req := httptest.NewRequest(http.MethodGet, "/v1/playgrounds/share/"+code, nil)
	rr := httptest.NewRecorder()

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("code", code)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	app.getPlaygroundByShareCodeHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var pg playgrounds.Playground
	decodeData(t, rr.Body.Bytes(), &pg)
	if pg.ID != 42 {
		t.Errorf("got playground %d, want 42", pg.ID)
	}
}

func TestDefaultImagesOnPhotolessSubmission(t *testing.T) {
	if len(defaultImageURLs) != 2 {
		t.Fatalf("got %d default images, want 2", len(defaultImageURLs))
	}
	for _, u := range defaultImageURLs {
		if u == "" {
			t.Error("default image URL must not be empty")
		}
	}
}
