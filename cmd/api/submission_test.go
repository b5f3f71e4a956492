package main

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

func multipartRequest(t *testing.T, fields map[string]string, equipmentIDs []string) *http.Request {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	for _, id := range equipmentIDs {
		if err := writer.WriteField("equipment_ids", id); err != nil {
			t.Fatalf("write equipment id: %v", err)
		}
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/playgrounds", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse multipart form: %v", err)
	}
	return req
}

func validSubmissionFields() map[string]string {
	return map[string]string{
		"name":        "Square des Lilas",
		"description": "Petit parc de quartier",
		"address":     "12 rue des Lilas",
		"city":        "Lyon",
		"postal_code": "69003",
		"latitude":    "45.7578",
		"longitude":   "4.8320",
		"age_range":   "2-10 ans",
	}
}

func TestParseSubmissionForm(t *testing.T) {
	app := newTestApp(&mockPlaygroundStore{})

	req := multipartRequest(t, validSubmissionFields(), []string{"slide", "swing"})

	in, err := app.parseSubmissionForm(req)
	if err != nil {
		t.Fatalf("parseSubmissionForm: %v", err)
	}
	if in.Name != "Square des Lilas" || in.City != "Lyon" {
		t.Errorf("base fields not parsed: %+v", in)
	}
	if in.Latitude != 45.7578 || in.Longitude != 4.8320 {
		t.Errorf("coordinates not parsed: %f, %f", in.Latitude, in.Longitude)
	}
	if len(in.EquipmentIDs) != 2 {
		t.Errorf("got %d equipment ids, want 2", len(in.EquipmentIDs))
	}
}

func TestParseSubmissionFormErrors(t *testing.T) {
	app := newTestApp(&mockPlaygroundStore{})

	tests := []struct {
		name     string
		mutate   func(map[string]string)
		equipIDs []string
	}{
		{"missing name", func(f map[string]string) { f["name"] = "" }, nil},
		{"bad latitude", func(f map[string]string) { f["latitude"] = "north" }, nil},
		{"latitude out of range", func(f map[string]string) { f["latitude"] = "91" }, nil},
		{"missing longitude", func(f map[string]string) { delete(f, "longitude") }, nil},
		{"bad postal code", func(f map[string]string) { f["postal_code"] = "6900" }, nil},
		{"unknown equipment", func(f map[string]string) {}, []string{"trampoline"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validSubmissionFields()
			tt.mutate(fields)

			req := multipartRequest(t, fields, tt.equipIDs)
			if _, err := app.parseSubmissionForm(req); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
