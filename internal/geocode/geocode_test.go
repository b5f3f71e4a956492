package geocode

import "testing"

func TestHitToResult(t *testing.T) {
	h := nominatimHit{Lat: "45.7741", Lon: "4.8553", DisplayName: "Parc de la Tête d'Or, Lyon"}
	h.Address.City = "Lyon"
	h.Address.Postcode = "69006"

	r, err := h.toResult()
	if err != nil {
		t.Fatal(err)
	}
	if r.Latitude != 45.7741 || r.Longitude != 4.8553 {
		t.Fatalf("coordinates = %v, %v", r.Latitude, r.Longitude)
	}
	if r.City != "Lyon" || r.PostalCode != "69006" {
		t.Fatalf("address fields = %q, %q", r.City, r.PostalCode)
	}
}

func TestHitToResultCityFallsBackToTown(t *testing.T) {
	h := nominatimHit{Lat: "45.0", Lon: "4.0"}
	h.Address.Town = "Givors"

	r, err := h.toResult()
	if err != nil {
		t.Fatal(err)
	}
	if r.City != "Givors" {
		t.Fatalf("city = %q", r.City)
	}
}

func TestHitToResultBadCoordinates(t *testing.T) {
	h := nominatimHit{Lat: "not-a-number", Lon: "4.0"}
	if _, err := h.toResult(); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewDefaultsBaseURL(t *testing.T) {
	c := New("", "parcacote/1.0")
	if c.baseURL != defaultBaseURL {
		t.Fatalf("baseURL = %q", c.baseURL)
	}
}
