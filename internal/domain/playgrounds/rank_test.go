package playgrounds

import (
	"testing"

	"parcacote/internal/geo"
)

// atKm places a playground roughly km kilometers north of ref.
// 1 degree of latitude is ~111.19 km on the sphere used by geo.
func atKm(id int64, ref geo.Point, km float64) Playground {
	return Playground{
		ID:        id,
		Latitude:  ref.Lat + km/111.19,
		Longitude: ref.Lng,
	}
}

func TestRankRadiusFilter(t *testing.T) {
	ref := geo.Point{Lat: 45.76, Lng: 4.85}
	list := []Playground{
		atKm(1, ref, 1),
		atKm(2, ref, 4),
		atKm(3, ref, 6),
		atKm(4, ref, 10),
	}

	out := Rank(list, &ref, 5, 0)

	if len(out) != 2 {
		t.Fatalf("got %d results, want 2", len(out))
	}
	if out[0].ID != 1 || out[1].ID != 2 {
		t.Fatalf("wrong entries: %d, %d", out[0].ID, out[1].ID)
	}
	for _, p := range out {
		if p.DistanceKm == nil || *p.DistanceKm > 5 {
			t.Errorf("entry %d outside radius: %v", p.ID, p.DistanceKm)
		}
	}
}

func TestRankSortsAscending(t *testing.T) {
	ref := geo.Point{Lat: 45.76, Lng: 4.85}
	list := []Playground{
		atKm(1, ref, 8),
		atKm(2, ref, 2),
		atKm(3, ref, 5),
	}

	out := Rank(list, &ref, 0, 0)

	prev := -1.0
	for _, p := range out {
		if p.DistanceKm == nil {
			t.Fatalf("entry %d missing distance", p.ID)
		}
		if *p.DistanceKm < prev {
			t.Fatalf("output not sorted ascending")
		}
		prev = *p.DistanceKm
	}
	if out[0].ID != 2 || out[1].ID != 3 || out[2].ID != 1 {
		t.Fatalf("wrong order: %d %d %d", out[0].ID, out[1].ID, out[2].ID)
	}
}

func TestRankNoReferenceLocation(t *testing.T) {
	list := []Playground{{ID: 1}, {ID: 2}, {ID: 3}}

	// Radius must be a no-op without a reference point, and original order
	// must hold since nobody has a distance.
	out := Rank(list, nil, 5, 0)

	if len(out) != 3 {
		t.Fatalf("got %d results, want 3", len(out))
	}
	for i, p := range out {
		if p.ID != int64(i+1) {
			t.Fatalf("order changed: %+v", out)
		}
		if p.DistanceKm != nil {
			t.Errorf("entry %d has distance without reference location", p.ID)
		}
	}
}

func TestRankTruncates(t *testing.T) {
	ref := geo.Point{Lat: 45.76, Lng: 4.85}
	list := []Playground{
		atKm(1, ref, 1), atKm(2, ref, 2), atKm(3, ref, 3), atKm(4, ref, 4),
	}

	if out := Rank(list, &ref, 0, 2); len(out) != 2 {
		t.Fatalf("limit 2 returned %d entries", len(out))
	}
	// Unbounded when limit <= 0 ("show more").
	if out := Rank(list, &ref, 0, 0); len(out) != 4 {
		t.Fatalf("unbounded returned %d entries", len(out))
	}
}

func TestRankStableOnTies(t *testing.T) {
	ref := geo.Point{Lat: 45.76, Lng: 4.85}
	a := atKm(1, ref, 3)
	b := atKm(2, ref, 3)

	out := Rank([]Playground{a, b}, &ref, 0, 0)
	if out[0].ID != 1 || out[1].ID != 2 {
		t.Fatalf("tie broke input order: %d %d", out[0].ID, out[1].ID)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	ref := geo.Point{Lat: 45.76, Lng: 4.85}
	list := []Playground{atKm(1, ref, 1)}

	Rank(list, &ref, 0, 0)
	if list[0].DistanceKm != nil {
		t.Fatal("input slice mutated")
	}
}
