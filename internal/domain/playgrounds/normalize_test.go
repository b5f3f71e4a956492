package playgrounds

import (
	"testing"
	"time"
)

func TestNormalizeRenamesFields(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	reason := "photo floue"

	raw := Raw{
		ID:          42,
		Name:        "Parc Test",
		Description: "desc",
		Address:     "1 rue des Jeux",
		City:        "Lyon",
		PostalCode:  "69001",
		Latitude:    45.76,
		Longitude:   4.85,
		AgeRange:    "2-8 ans",
		Status:      "rejected",
		Rejection:   &reason,
		CreatedAt:   created,
		UpdatedAt:   updated,
		SubmittedBy: 7,
		Images: []RawImage{
			{ID: "img-1", URL: "https://example.com/a.jpg", Status: "approved", CreatedAt: created},
		},
		EquipmentIDs: []string{"slide", "swing"},
	}

	p := Normalize(raw)

	if p.ID != 42 || p.Name != "Parc Test" || p.PostalCode != "69001" {
		t.Fatalf("base fields not carried over: %+v", p)
	}
	if p.Status != StatusRejected || p.RejectionReason == nil || *p.RejectionReason != reason {
		t.Fatalf("status fields wrong: %+v", p)
	}
	if !p.CreatedAt.Equal(created) || !p.UpdatedAt.Equal(updated) {
		t.Fatalf("timestamps wrong: %+v", p)
	}
	if p.SubmittedBy != 7 {
		t.Fatalf("submitted_by wrong: %d", p.SubmittedBy)
	}
	if len(p.Images) != 1 || p.Images[0].URL != "https://example.com/a.jpg" || p.Images[0].Status != StatusApproved {
		t.Fatalf("images not reshaped: %+v", p.Images)
	}
	if p.ShareCode == "" {
		t.Fatal("share code missing")
	}
}

func TestNormalizeEquipmentLabels(t *testing.T) {
	raw := Raw{EquipmentIDs: []string{"slide", "swing", "spaceship"}}
	p := Normalize(raw)

	want := []string{"Toboggan", "Balançoires", "spaceship"}
	if len(p.Features) != len(want) {
		t.Fatalf("features = %v, want %v", p.Features, want)
	}
	for i := range want {
		if p.Features[i] != want[i] {
			t.Errorf("feature[%d] = %q, want %q", i, p.Features[i], want[i])
		}
	}
}

func TestNormalizeMissingCollections(t *testing.T) {
	p := Normalize(Raw{ID: 1})

	if p.Images == nil || len(p.Images) != 0 {
		t.Fatalf("images = %v, want empty non-nil", p.Images)
	}
	if p.Features == nil || len(p.Features) != 0 {
		t.Fatalf("features = %v, want empty non-nil", p.Features)
	}
	if p.EquipmentIDs == nil || len(p.EquipmentIDs) != 0 {
		t.Fatalf("equipment ids = %v, want empty non-nil", p.EquipmentIDs)
	}
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	raws := []Raw{{ID: 3}, {ID: 1}, {ID: 2}}
	out := NormalizeAll(raws)
	if len(out) != 3 || out[0].ID != 3 || out[1].ID != 1 || out[2].ID != 2 {
		t.Fatalf("order not preserved: %+v", out)
	}
}
