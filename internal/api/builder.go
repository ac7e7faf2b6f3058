package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/wnbrowser/internal/hypermedia"
	"evalgo.org/wnbrowser/internal/schema"
	"evalgo.org/wnbrowser/models"
)

// Route href helpers. Handlers never hardcode paths anywhere else; clients
// never see anything but these hrefs inside controls.

func hrefSynsetCollection() string {
	return "/api/synsets/"
}

func hrefSynsetItem(wnid string) string {
	return fmt.Sprintf("/api/synsets/%s/", wnid)
}

func hrefHyponymCollection(wnid string) string {
	return fmt.Sprintf("/api/synsets/%s/hyponyms/", wnid)
}

func hrefHyponymItem(wnid, hyponymWnid string) string {
	return fmt.Sprintf("/api/synsets/%s/hyponyms/%s/", wnid, hyponymWnid)
}

func hrefSynsetImageCollection(wnid string) string {
	return fmt.Sprintf("/api/synsets/%s/images/", wnid)
}

func hrefImageItem(wnid string, imid int) string {
	return fmt.Sprintf("/api/synsets/%s/images/%d/", wnid, imid)
}

func hrefImageCollection() string {
	return "/api/images/"
}

// newDocument builds a document with the wnbrowser namespace registered.
func newDocument(props ...hypermedia.Property) hypermedia.Document {
	doc := hypermedia.NewDocument(props...)
	doc.AddNamespace(namespace, linkRelationsHref)
	return doc
}

// synsetProperties renders a synset's values in their document order.
func synsetProperties(synset *models.Synset) []hypermedia.Property {
	return []hypermedia.Property{
		{Name: "wnid", Value: synset.Wnid},
		{Name: "words", Value: synset.Words},
		{Name: "gloss", Value: synset.Gloss},
	}
}

// synsetItemDocument renders one synset as a collection item carrying its
// own self and profile controls.
func synsetItemDocument(synset *models.Synset) hypermedia.Document {
	item := hypermedia.NewDocument(synsetProperties(synset)...)
	item.AddControl("self", hypermedia.Control{Href: hrefSynsetItem(synset.Wnid)})
	item.AddControl("profile", hypermedia.Control{Href: synsetProfile})
	return item
}

// imageItemDocument renders one image as a collection item. The scoping
// wnid appears as a property only in the cross-synset collection.
func imageItemDocument(img *models.Image, scoped bool) hypermedia.Document {
	var props []hypermedia.Property
	if !scoped {
		props = append(props, hypermedia.Property{Name: "synset_wnid", Value: img.SynsetWnid})
	}
	props = append(props,
		hypermedia.Property{Name: "imid", Value: img.Imid},
		hypermedia.Property{Name: "url", Value: img.URL},
		hypermedia.Property{Name: "date", Value: img.Date},
	)
	item := hypermedia.NewDocument(props...)
	item.AddControl("self", hypermedia.Control{Href: hrefImageItem(img.SynsetWnid, img.Imid)})
	item.AddControl("profile", hypermedia.Control{Href: imageProfile})
	return item
}

func addControlAddSynset(doc hypermedia.Document) {
	doc.AddControl(namespace+":add_synset", hypermedia.Control{
		Method: http.MethodPost,
		Href:   hrefSynsetCollection(),
		Title:  "Add a new synset",
		Schema: schema.Synset(),
	})
}

func addControlEditSynset(doc hypermedia.Document, wnid string) {
	doc.AddControl("edit", hypermedia.Control{
		Method: http.MethodPut,
		Href:   hrefSynsetItem(wnid),
		Title:  "Edit this synset",
		Schema: schema.Synset(),
	})
}

func addControlDeleteSynset(doc hypermedia.Document, wnid string) {
	doc.AddControl(namespace+":delete", hypermedia.Control{
		Method: http.MethodDelete,
		Href:   hrefSynsetItem(wnid),
		Title:  "Delete this synset",
	})
}

func addControlAddHyponym(doc hypermedia.Document, wnid string) {
	doc.AddControl(namespace+":add_hyponym", hypermedia.Control{
		Method: http.MethodPost,
		Href:   hrefHyponymCollection(wnid),
		Title:  "Add an existing synset as a hyponym",
		Schema: schema.SynsetRef(),
	})
}

func addControlDeleteHyponym(doc hypermedia.Document, wnid, hyponymWnid string) {
	doc.AddControl(namespace+":delete", hypermedia.Control{
		Method: http.MethodDelete,
		Href:   hrefHyponymItem(wnid, hyponymWnid),
		Title:  "Remove this hyponym relation",
	})
}

func addControlAddImage(doc hypermedia.Document, wnid string) {
	doc.AddControl(namespace+":add_image", hypermedia.Control{
		Method: http.MethodPost,
		Href:   hrefSynsetImageCollection(wnid),
		Title:  "Add a new image to this synset",
		Schema: schema.Image(),
	})
}

func addControlEditImage(doc hypermedia.Document, wnid string, imid int) {
	doc.AddControl("edit", hypermedia.Control{
		Method: http.MethodPut,
		Href:   hrefImageItem(wnid, imid),
		Title:  "Edit this image",
		Schema: schema.Image(),
	})
}

func addControlDeleteImage(doc hypermedia.Document, wnid string, imid int) {
	doc.AddControl(namespace+":delete", hypermedia.Control{
		Method: http.MethodDelete,
		Href:   hrefImageItem(wnid, imid),
		Title:  "Delete this image",
	})
}

// readBody decodes the request body as a JSON object. The boolean reports
// success; on failure a 415 has already been written (absent body, invalid
// JSON, or a JSON value that is not an object).
func readBody(c echo.Context) (map[string]any, bool, error) {
	data, err := io.ReadAll(c.Request().Body)
	if err != nil || len(data) == 0 {
		return nil, false, unsupportedMediaType(c)
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil || body == nil {
		return nil, false, unsupportedMediaType(c)
	}
	return body, true, nil
}
