package browser

import (
	"encoding/json"
	"testing"
)

func TestParseDocumentItem(t *testing.T) {
	data := []byte(`{
		"wnid": "n02103406",
		"words": "working dog",
		"gloss": "bred to work",
		"@namespaces": {"wnbrowser": {"name": "/wnbrowser/link-relations/"}},
		"@controls": {
			"self": {"href": "/api/synsets/n02103406/"},
			"edit": {
				"method": "PUT",
				"href": "/api/synsets/n02103406/",
				"title": "Edit this synset",
				"encoding": "json",
				"schema": {
					"type": "object",
					"required": ["wnid", "words", "gloss"],
					"properties": {
						"wnid": {"description": "WordNet ID", "type": "string", "pattern": "^n[0-9]{8}$"},
						"words": {"description": "Words", "type": "string"},
						"gloss": {"description": "Gloss", "type": "string"}
					}
				}
			},
			"wnbrowser:delete": {"method": "DELETE", "href": "/api/synsets/n02103406/"}
		}
	}`)

	doc, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}

	wantProps := []string{"wnid", "words", "gloss"}
	if len(doc.Properties) != len(wantProps) {
		t.Fatalf("len(Properties) = %d, want %d", len(doc.Properties), len(wantProps))
	}
	for i, name := range wantProps {
		if doc.Properties[i].Name != name {
			t.Errorf("Properties[%d].Name = %q, want %q", i, doc.Properties[i].Name, name)
		}
	}

	if doc.Namespaces["wnbrowser"] != "/wnbrowser/link-relations/" {
		t.Errorf("namespace = %q", doc.Namespaces["wnbrowser"])
	}

	wantControls := []string{"self", "edit", "wnbrowser:delete"}
	if len(doc.Controls) != len(wantControls) {
		t.Fatalf("len(Controls) = %d, want %d", len(doc.Controls), len(wantControls))
	}
	for i, relation := range wantControls {
		if doc.Controls[i].Relation != relation {
			t.Errorf("Controls[%d].Relation = %q, want %q", i, doc.Controls[i].Relation, relation)
		}
	}

	edit, ok := doc.Control("edit")
	if !ok {
		t.Fatal("edit control not found")
	}
	if edit.Method != "PUT" || edit.Encoding != "json" {
		t.Errorf("edit control = %+v", edit)
	}
	if edit.Schema == nil {
		t.Fatal("edit control has no schema")
	}

	wantFields := []string{"wnid", "words", "gloss"}
	for i, name := range wantFields {
		if edit.Schema.Properties[i].Name != name {
			t.Errorf("schema field %d = %q, want %q", i, edit.Schema.Properties[i].Name, name)
		}
	}
	if !edit.Schema.IsRequired("wnid") {
		t.Error("wnid not required")
	}
	if edit.Schema.Properties[0].Pattern == "" {
		t.Error("wnid pattern missing")
	}

	del, _ := doc.Control("wnbrowser:delete")
	if del.Method != "DELETE" || del.Schema != nil {
		t.Errorf("delete control = %+v", del)
	}

	if doc.HasItems {
		t.Error("item document reports items")
	}
}

func TestParseDocumentCollection(t *testing.T) {
	data := []byte(`{
		"@namespaces": {"wnbrowser": {"name": "/wnbrowser/link-relations/"}},
		"@controls": {"self": {"href": "/api/synsets/"}},
		"items": [
			{"wnid": "n00000001", "words": "a", "gloss": "b",
			 "@controls": {"self": {"href": "/api/synsets/n00000001/"}}},
			{"wnid": "n00000002", "words": "c", "gloss": "d",
			 "@controls": {"self": {"href": "/api/synsets/n00000002/"}}}
		]
	}`)

	doc, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}

	if !doc.HasItems {
		t.Fatal("HasItems = false")
	}
	if len(doc.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(doc.Items))
	}

	self, ok := doc.Items[1].Control("self")
	if !ok {
		t.Fatal("second item has no self control")
	}
	if self.Href != "/api/synsets/n00000002/" {
		t.Errorf("second item self href = %q", self.Href)
	}
}

func TestParseDocumentEmptyCollection(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"@controls": {}, "items": []}`))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	if !doc.HasItems {
		t.Error("HasItems = false for empty items array")
	}
	if len(doc.Items) != 0 || len(doc.Controls) != 0 {
		t.Errorf("unexpected content: %+v", doc)
	}
}

func TestParseDocumentError(t *testing.T) {
	data := []byte(`{"@error": {"@message": "Not found", "@messages": ["No synset with WordNet ID of 'n99999999' found"]}}`)

	doc, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	if doc.Error == nil {
		t.Fatal("Error = nil")
	}
	if doc.Error.Message != "Not found" || len(doc.Error.Messages) != 1 {
		t.Errorf("Error = %+v", doc.Error)
	}
}

func TestParseDocumentNotAnObject(t *testing.T) {
	for _, data := range []string{"link relations", `["a", "b"]`, `42`} {
		if _, err := ParseDocument([]byte(data)); err == nil {
			t.Errorf("ParseDocument(%q) error = nil, want error", data)
		}
	}
}

func TestParseDocumentIntegerProperty(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"imid": 9, "url": "http://x.example/9.jpg", "@controls": {}}`))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	if doc.Properties[0].Name != "imid" {
		t.Fatalf("first property = %q", doc.Properties[0].Name)
	}
	// Integers survive as json.Number so menus print 9, not 9e+00.
	if n, ok := doc.Properties[0].Value.(json.Number); !ok || n.String() != "9" {
		t.Errorf("imid value = %#v", doc.Properties[0].Value)
	}
}
