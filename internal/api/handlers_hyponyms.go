package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/wnbrowser/internal/hypermedia"
	"evalgo.org/wnbrowser/internal/schema"
	"evalgo.org/wnbrowser/internal/storage"
)

// getHyponymCollection handles GET /api/synsets/:wnid/hyponyms/. The
// document's own properties describe the owning synset; the items are its
// hyponyms, each linking to the plain synset item resource.
func (s *Server) getHyponymCollection(c echo.Context) error {
	wnid := c.Param("wnid")

	synset, err := s.storage.GetSynset(wnid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFoundSynset(c, wnid)
		}
		return err
	}

	start, ok, err := parseStart(c)
	if !ok {
		return err
	}

	hyponyms, err := s.storage.ListHyponyms(wnid, start, synsetPageSize+1)
	if err != nil {
		return err
	}

	doc := newDocument(synsetProperties(synset)...)
	doc.AddControl("self", hypermedia.Control{
		Href: fmt.Sprintf("%s?start=%d", hrefHyponymCollection(wnid), start),
	})
	addControlAddHyponym(doc, wnid)
	doc.AddControl(namespace+":synsetitem", hypermedia.Control{
		Href:  hrefSynsetItem(wnid),
		Title: "The synset these hyponyms belong to",
	})
	addPageControls(doc, hrefHyponymCollection(wnid), start, synsetPageSize, len(hyponyms))

	doc.InitItems()
	for i := range hyponyms[:min(len(hyponyms), synsetPageSize)] {
		doc.AppendItem(synsetItemDocument(&hyponyms[i]))
	}

	return masonJSON(c, http.StatusOK, doc)
}

// postHyponymCollection handles POST /api/synsets/:wnid/hyponyms/. The body
// names an existing synset by wnid; the relation itself carries no data.
func (s *Server) postHyponymCollection(c echo.Context) error {
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

	if messages := schema.SynsetRef().Validate(body); messages != nil {
		return invalidDocument(c, messages)
	}
	hyponymWnid := body["wnid"].(string)

	if _, err := s.storage.GetSynset(hyponymWnid); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFoundSynset(c, hyponymWnid)
		}
		return err
	}

	if err := s.storage.AddHyponym(wnid, hyponymWnid); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return conflictHyponym(c, hyponymWnid)
		}
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, hrefHyponymItem(wnid, hyponymWnid))
	return c.NoContent(http.StatusCreated)
}

// getHyponymItem handles GET /api/synsets/:wnid/hyponyms/:hyponymWnid/.
func (s *Server) getHyponymItem(c echo.Context) error {
	wnid := c.Param("wnid")
	hyponymWnid := c.Param("hyponymWnid")

	if _, err := s.storage.GetSynset(wnid); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFoundSynset(c, wnid)
		}
		return err
	}

	exists, err := s.storage.HyponymExists(wnid, hyponymWnid)
	if err != nil {
		return err
	}
	if !exists {
		return notFoundHyponym(c, hyponymWnid)
	}

	hyponym, err := s.storage.GetSynset(hyponymWnid)
	if err != nil {
		return err
	}

	doc := newDocument(synsetProperties(hyponym)...)
	doc.AddControl("self", hypermedia.Control{Href: hrefHyponymItem(wnid, hyponymWnid)})
	doc.AddControl("profile", hypermedia.Control{Href: synsetProfile})
	doc.AddControl("collection", hypermedia.Control{Href: hrefHyponymCollection(wnid)})
	addControlDeleteHyponym(doc, wnid, hyponymWnid)

	return masonJSON(c, http.StatusOK, doc)
}

// deleteHyponymItem handles DELETE /api/synsets/:wnid/hyponyms/:hyponymWnid/.
// Only the relation is removed, never the hyponym synset itself.
func (s *Server) deleteHyponymItem(c echo.Context) error {
	wnid := c.Param("wnid")
	hyponymWnid := c.Param("hyponymWnid")

	if _, err := s.storage.GetSynset(wnid); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFoundSynset(c, wnid)
		}
		return err
	}

	if err := s.storage.RemoveHyponym(wnid, hyponymWnid); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFoundHyponym(c, hyponymWnid)
		}
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
