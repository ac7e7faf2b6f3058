package api

import (
	"net/http"
	"testing"
)

func TestGetHyponymCollection(t *testing.T) {
	s, store := newTestServer(t)
	seedData(t, store)

	rec := doRequest(s, http.MethodGet, "/api/synsets/n02103406/hyponyms/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	doc := decodeDocument(t, rec)

	// The collection describes its owner.
	if doc["wnid"] != "n02103406" || doc["words"] != "working dog" {
		t.Errorf("owner properties wrong: %v", doc)
	}

	if href := controlHref(t, doc, "self"); href != "/api/synsets/n02103406/hyponyms/?start=0" {
		t.Errorf("self href = %q", href)
	}
	if href := controlHref(t, doc, "wnbrowser:synsetitem"); href != "/api/synsets/n02103406/" {
		t.Errorf("synsetitem href = %q", href)
	}
	if _, ok := controls(t, doc)["wnbrowser:add_hyponym"]; !ok {
		t.Error("add_hyponym control missing")
	}

	items, _ := doc["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	item := items[0].(map[string]any)
	if item["wnid"] != "n02109047" {
		t.Errorf("hyponym wnid = %v, want n02109047", item["wnid"])
	}
	// Items link to the plain synset resource, not the relation resource.
	if href := controlHref(t, item, "self"); href != "/api/synsets/n02109047/" {
		t.Errorf("item self href = %q", href)
	}

	rec = doRequest(s, http.MethodGet, "/api/synsets/n99999999/hyponyms/", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown synset status = %d, want 404", rec.Code)
	}
}

func TestPostHyponymCollection(t *testing.T) {
	s, store := newTestServer(t)
	seedData(t, store)

	rec := doRequest(s, http.MethodPost, "/api/synsets/n02103406/hyponyms/", `{"wnid": "n02109391"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
	location := rec.Header().Get("Location")
	if location != "/api/synsets/n02103406/hyponyms/n02109391/" {
		t.Fatalf("Location = %q", location)
	}

	rec = doRequest(s, http.MethodGet, location, "")
	if rec.Code != http.StatusOK {
		t.Errorf("GET %s status = %d, want 200", location, rec.Code)
	}
}

func TestPostHyponymErrors(t *testing.T) {
	s, store := newTestServer(t)
	seedData(t, store)

	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
	}{
		{
			name:       "unknown parent",
			target:     "/api/synsets/n99999999/hyponyms/",
			body:       `{"wnid": "n02109047"}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "no body",
			target:     "/api/synsets/n02103406/hyponyms/",
			body:       "",
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:       "wnid pattern violation",
			target:     "/api/synsets/n02103406/hyponyms/",
			body:       `{"wnid": "dog"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown hyponym",
			target:     "/api/synsets/n02103406/hyponyms/",
			body:       `{"wnid": "n99999999"}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "relation already present",
			target:     "/api/synsets/n02103406/hyponyms/",
			body:       `{"wnid": "n02109047"}`,
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodPost, tt.target, tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestGetHyponymItem(t *testing.T) {
	s, store := newTestServer(t)
	seedData(t, store)

	rec := doRequest(s, http.MethodGet, "/api/synsets/n02103406/hyponyms/n02109047/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	doc := decodeDocument(t, rec)
	if doc["wnid"] != "n02109047" || doc["words"] != "Great Dane" {
		t.Errorf("hyponym properties wrong: %v", doc)
	}
	if href := controlHref(t, doc, "self"); href != "/api/synsets/n02103406/hyponyms/n02109047/" {
		t.Errorf("self href = %q", href)
	}
	if href := controlHref(t, doc, "collection"); href != "/api/synsets/n02103406/hyponyms/" {
		t.Errorf("collection href = %q", href)
	}
	if _, ok := controls(t, doc)["wnbrowser:delete"]; !ok {
		t.Error("delete control missing")
	}

	// A synset that exists but is not related is not a hyponym.
	rec = doRequest(s, http.MethodGet, "/api/synsets/n02103406/hyponyms/n02109391/", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unrelated synset status = %d, want 404", rec.Code)
	}
}

func TestDeleteHyponymItem(t *testing.T) {
	s, store := newTestServer(t)
	seedData(t, store)

	rec := doRequest(s, http.MethodDelete, "/api/synsets/n02103406/hyponyms/n02109047/", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	// Relation gone, both synsets intact.
	rec = doRequest(s, http.MethodGet, "/api/synsets/n02103406/hyponyms/n02109047/", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted relation status = %d, want 404", rec.Code)
	}
	rec = doRequest(s, http.MethodGet, "/api/synsets/n02109047/", "")
	if rec.Code != http.StatusOK {
		t.Errorf("hyponym synset status = %d, want 200", rec.Code)
	}

	rec = doRequest(s, http.MethodDelete, "/api/synsets/n02103406/hyponyms/n02109047/", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, want 404", rec.Code)
	}
}
