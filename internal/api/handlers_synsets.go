package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/wnbrowser/internal/hypermedia"
	"evalgo.org/wnbrowser/internal/schema"
	"evalgo.org/wnbrowser/internal/storage"
	"evalgo.org/wnbrowser/models"
)

// getSynsetCollection handles GET /api/synsets/ with offset pagination over
// the wnid-ordered synset list.
func (s *Server) getSynsetCollection(c echo.Context) error {
	start, ok, err := parseStart(c)
	if !ok {
		return err
	}

	// One spare row decides whether a next page exists.
	synsets, err := s.storage.ListSynsets(start, synsetPageSize+1)
	if err != nil {
		return err
	}

	doc := newDocument()
	doc.AddControl("self", hypermedia.Control{Href: hrefSynsetCollection()})
	addControlAddSynset(doc)
	addPageControls(doc, hrefSynsetCollection(), start, synsetPageSize, len(synsets))

	doc.InitItems()
	for i := range synsets[:min(len(synsets), synsetPageSize)] {
		doc.AppendItem(synsetItemDocument(&synsets[i]))
	}

	return masonJSON(c, http.StatusOK, doc)
}

// postSynsetCollection handles POST /api/synsets/ and creates a new synset.
func (s *Server) postSynsetCollection(c echo.Context) error {
	body, ok, err := readBody(c)
	if !ok {
		return err
	}

	if messages := schema.Synset().Validate(body); messages != nil {
		return invalidDocument(c, messages)
	}

	synset := &models.Synset{
		Wnid:  body["wnid"].(string),
		Words: body["words"].(string),
		Gloss: body["gloss"].(string),
	}

	if err := s.storage.CreateSynset(synset); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return conflictSynset(c, synset.Wnid)
		}
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, hrefSynsetItem(synset.Wnid))
	return c.NoContent(http.StatusCreated)
}

// getSynsetItem handles GET /api/synsets/:wnid/.
func (s *Server) getSynsetItem(c echo.Context) error {
	wnid := c.Param("wnid")

	synset, err := s.storage.GetSynset(wnid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFoundSynset(c, wnid)
		}
		return err
	}

	doc := newDocument(synsetProperties(synset)...)
	doc.AddControl("self", hypermedia.Control{Href: hrefSynsetItem(wnid)})
	doc.AddControl("profile", hypermedia.Control{Href: synsetProfile})
	doc.AddControl("collection", hypermedia.Control{Href: hrefSynsetCollection()})
	addControlEditSynset(doc, wnid)
	addControlDeleteSynset(doc, wnid)
	doc.AddControl(namespace+":synsethyponymcollection", hypermedia.Control{
		Href:  hrefHyponymCollection(wnid),
		Title: "Hyponyms of this synset",
	})
	doc.AddControl(namespace+":synsetimagecollection", hypermedia.Control{
		Href:  hrefSynsetImageCollection(wnid),
		Title: "Images of this synset",
	})

	return masonJSON(c, http.StatusOK, doc)
}

// putSynsetItem handles PUT /api/synsets/:wnid/. A changed wnid in the body
// renames the synset; hyponym relations and images follow the rename.
func (s *Server) putSynsetItem(c echo.Context) error {
	wnid := c.Param("wnid")

	if _, err := s.storage.GetSynset(wnid); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFoundSynset(c, wnid)
		}
		return err
	}

	body, ok, err := readBody(c)
	if !ok {
		return err
	}

	if messages := schema.Synset().Validate(body); messages != nil {
		return invalidDocument(c, messages)
	}

	synset := &models.Synset{
		Wnid:  body["wnid"].(string),
		Words: body["words"].(string),
		Gloss: body["gloss"].(string),
	}

	if err := s.storage.UpdateSynset(wnid, synset); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return conflictSynset(c, synset.Wnid)
		}
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// deleteSynsetItem handles DELETE /api/synsets/:wnid/. Images and hyponym
// relations of the synset go with it.
func (s *Server) deleteSynsetItem(c echo.Context) error {
	wnid := c.Param("wnid")

	if err := s.storage.DeleteSynset(wnid); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFoundSynset(c, wnid)
		}
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
