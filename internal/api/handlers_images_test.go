package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestGetSynsetImageCollection(t *testing.T) {
	s, store := newTestServer(t)
	seedData(t, store)

	rec := doRequest(s, http.MethodGet, "/api/synsets/n02103406/images/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	doc := decodeDocument(t, rec)
	if href := controlHref(t, doc, "self"); href != "/api/synsets/n02103406/images/?start=0" {
		t.Errorf("self href = %q", href)
	}
	if _, ok := controls(t, doc)["wnbrowser:add_image"]; !ok {
		t.Error("add_image control missing")
	}
	if href := controlHref(t, doc, "wnbrowser:synsetitem"); href != "/api/synsets/n02103406/" {
		t.Errorf("synsetitem href = %q", href)
	}

	items, _ := doc["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}

	// imid order; no synset_wnid property inside the owning synset's view
	first := items[0].(map[string]any)
	if first["imid"] != float64(9) {
		t.Errorf("first imid = %v, want 9", first["imid"])
	}
	if _, ok := first["synset_wnid"]; ok {
		t.Error("scoped item carries synset_wnid")
	}
	if href := controlHref(t, first, "self"); href != "/api/synsets/n02103406/images/9/" {
		t.Errorf("item self href = %q", href)
	}

	rec = doRequest(s, http.MethodGet, "/api/synsets/n99999999/images/", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown synset status = %d, want 404", rec.Code)
	}
}

func TestPostSynsetImageCollection(t *testing.T) {
	s, store := newTestServer(t)
	seedData(t, store)

	body := `{"imid": 100, "url": "http://static.flickr.com/100/100.jpg", "date": "2021-3-4"}`
	rec := doRequest(s, http.MethodPost, "/api/synsets/n02109391/images/", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
	location := rec.Header().Get("Location")
	if location != "/api/synsets/n02109391/images/100/" {
		t.Fatalf("Location = %q", location)
	}

	rec = doRequest(s, http.MethodGet, location, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s status = %d, want 200", location, rec.Code)
	}
	doc := decodeDocument(t, rec)
	if doc["date"] != "2021-3-4" {
		t.Errorf("date = %v, want 2021-3-4", doc["date"])
	}
}

func TestPostImageDefaultDate(t *testing.T) {
	s, store := newTestServer(t)
	seedData(t, store)

	body := `{"imid": 100, "url": "http://static.flickr.com/100/100.jpg"}`
	rec := doRequest(s, http.MethodPost, "/api/synsets/n02109391/images/", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(s, http.MethodGet, rec.Header().Get("Location"), "")
	doc := decodeDocument(t, rec)
	if doc["date"] != time.Now().Format("2006-01-02") {
		t.Errorf("date = %v, want today", doc["date"])
	}
}

func TestPostImageErrors(t *testing.T) {
	s, store := newTestServer(t)
	seedData(t, store)

	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
	}{
		{
			name:       "unknown synset",
			target:     "/api/synsets/n99999999/images/",
			body:       `{"imid": 1, "url": "http://static.flickr.com/1/1.jpg"}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "no body",
			target:     "/api/synsets/n02103406/images/",
			body:       "",
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:       "imid not an integer",
			target:     "/api/synsets/n02103406/images/",
			body:       `{"imid": 1.5, "url": "http://static.flickr.com/1/1.jpg"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "url pattern violation",
			target:     "/api/synsets/n02103406/images/",
			body:       `{"imid": 1, "url": "ftp://static.flickr.com/1/1.jpg"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "date pattern violation",
			target:     "/api/synsets/n02103406/images/",
			body:       `{"imid": 1, "url": "http://static.flickr.com/1/1.jpg", "date": "1990-12-31"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate imid",
			target:     "/api/synsets/n02103406/images/",
			body:       `{"imid": 9, "url": "http://static.flickr.com/9/9.jpg"}`,
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

func TestGetImageItem(t *testing.T) {
	s, store := newTestServer(t)
	seedData(t, store)

	rec := doRequest(s, http.MethodGet, "/api/synsets/n02103406/images/9/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	doc := decodeDocument(t, rec)
	if doc["imid"] != float64(9) {
		t.Errorf("imid = %v, want 9", doc["imid"])
	}
	for _, relation := range []string{"self", "profile", "collection", "edit", "wnbrowser:delete"} {
		if _, ok := controls(t, doc)[relation]; !ok {
			t.Errorf("%q control missing", relation)
		}
	}
	if href := controlHref(t, doc, "profile"); href != "/profiles/image/" {
		t.Errorf("profile href = %q", href)
	}
	if href := controlHref(t, doc, "wnbrowser:imagecollection"); href != "/api/images/" {
		t.Errorf("imagecollection href = %q", href)
	}

	// An imid that is not a number names nothing.
	rec = doRequest(s, http.MethodGet, "/api/synsets/n02103406/images/nine/", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("non-numeric imid status = %d, want 404", rec.Code)
	}

	rec = doRequest(s, http.MethodGet, "/api/synsets/n02103406/images/999/", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown imid status = %d, want 404", rec.Code)
	}
}

func TestPutImageItem(t *testing.T) {
	s, store := newTestServer(t)
	seedData(t, store)

	// Renumber; the omitted date sticks to the stored value.
	body := `{"imid": 10, "url": "http://farm4.static.flickr.com/3023/2900529252_c4b5cbbe28.jpg"}`
	rec := doRequest(s, http.MethodPut, "/api/synsets/n02103406/images/9/", body)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PUT status = %d, want 204; body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(s, http.MethodGet, "/api/synsets/n02103406/images/9/", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("old imid status = %d, want 404", rec.Code)
	}

	rec = doRequest(s, http.MethodGet, "/api/synsets/n02103406/images/10/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("new imid status = %d, want 200", rec.Code)
	}
	doc := decodeDocument(t, rec)
	if doc["date"] != "2020-10-15" {
		t.Errorf("date = %v, want 2020-10-15", doc["date"])
	}
}

func TestPutImageConflict(t *testing.T) {
	s, store := newTestServer(t)
	seedData(t, store)

	body := `{"imid": 282, "url": "http://farm4.static.flickr.com/3023/2900529252_c4b5cbbe28.jpg"}`
	rec := doRequest(s, http.MethodPut, "/api/synsets/n02103406/images/9/", body)
	if rec.Code != http.StatusConflict {
		t.Errorf("renumber onto taken imid status = %d, want 409", rec.Code)
	}
}

func TestDeleteImageItem(t *testing.T) {
	s, store := newTestServer(t)
	seedData(t, store)

	rec := doRequest(s, http.MethodDelete, "/api/synsets/n02103406/images/9/", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	rec = doRequest(s, http.MethodDelete, "/api/synsets/n02103406/images/9/", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, want 404", rec.Code)
	}
}

func TestGetImageCollection(t *testing.T) {
	s, store := newTestServer(t)
	seedData(t, store)

	rec := doRequest(s, http.MethodGet, "/api/images/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	doc := decodeDocument(t, rec)

	// Read-only view: no add control here.
	if _, ok := controls(t, doc)["wnbrowser:add_image"]; ok {
		t.Error("add_image control present on read-only collection")
	}

	items, _ := doc["items"].([]any)
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}

	// (synset_wnid, imid) order, with the owner visible on each item
	first := items[0].(map[string]any)
	if first["synset_wnid"] != "n02103406" || first["imid"] != float64(9) {
		t.Errorf("first item = %v", first)
	}
	last := items[2].(map[string]any)
	if last["synset_wnid"] != "n02109047" || last["imid"] != float64(11) {
		t.Errorf("last item = %v", last)
	}

	rec = doRequest(s, http.MethodPost, "/api/images/", `{"imid": 1, "url": "http://x.example/1.jpg"}`)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", rec.Code)
	}
}

func TestImagePaginationBoundaries(t *testing.T) {
	s, store := newTestServer(t)
	seedData(t, store)

	for i := 0; i < 40; i++ {
		rec := doRequest(s, http.MethodPost, "/api/synsets/n02109391/images/",
			fmt.Sprintf(`{"imid": %d, "url": "http://static.flickr.com/%d/%d.jpg"}`, i+1, i+1, i+1))
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed image %d status = %d", i+1, rec.Code)
		}
	}

	// 40 images: page one is full with no prev, page two is short with no next.
	rec := doRequest(s, http.MethodGet, "/api/synsets/n02109391/images/", "")
	doc := decodeDocument(t, rec)
	items, _ := doc["items"].([]any)
	if len(items) != 30 {
		t.Errorf("page one len(items) = %d, want 30", len(items))
	}
	if _, ok := controls(t, doc)["prev"]; ok {
		t.Error("prev present on page one")
	}
	if href := controlHref(t, doc, "next"); href != "/api/synsets/n02109391/images/?start=30" {
		t.Errorf("next href = %q", href)
	}

	rec = doRequest(s, http.MethodGet, "/api/synsets/n02109391/images/?start=30", "")
	doc = decodeDocument(t, rec)
	items, _ = doc["items"].([]any)
	if len(items) != 10 {
		t.Errorf("page two len(items) = %d, want 10", len(items))
	}
	if href := controlHref(t, doc, "prev"); href != "/api/synsets/n02109391/images/?start=0" {
		t.Errorf("prev href = %q", href)
	}
	if _, ok := controls(t, doc)["next"]; ok {
		t.Error("next present on final page")
	}
}
