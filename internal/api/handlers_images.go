package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"evalgo.org/wnbrowser/internal/hypermedia"
	"evalgo.org/wnbrowser/internal/schema"
	"evalgo.org/wnbrowser/internal/storage"
	"evalgo.org/wnbrowser/models"
)

// getSynsetImageCollection handles GET /api/synsets/:wnid/images/.
func (s *Server) getSynsetImageCollection(c echo.Context) error {
	wnid := c.Param("wnid")

	if _, err := s.storage.GetSynset(wnid); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFoundSynset(c, wnid)
		}
		return err
	}

	start, ok, err := parseStart(c)
	if !ok {
		return err
	}

	images, err := s.storage.ListSynsetImages(wnid, start, imagePageSize+1)
	if err != nil {
		return err
	}

	doc := newDocument()
	doc.AddControl("self", hypermedia.Control{
		Href: fmt.Sprintf("%s?start=%d", hrefSynsetImageCollection(wnid), start),
	})
	addControlAddImage(doc, wnid)
	doc.AddControl(namespace+":synsetitem", hypermedia.Control{
		Href:  hrefSynsetItem(wnid),
		Title: "The synset these images belong to",
	})
	addPageControls(doc, hrefSynsetImageCollection(wnid), start, imagePageSize, len(images))

	doc.InitItems()
	for i := range images[:min(len(images), imagePageSize)] {
		doc.AppendItem(imageItemDocument(&images[i], true))
	}

	return masonJSON(c, http.StatusOK, doc)
}

// postSynsetImageCollection handles POST /api/synsets/:wnid/images/. An
// omitted date defaults to the current date.
func (s *Server) postSynsetImageCollection(c echo.Context) error {
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

	if messages := schema.Image().Validate(body); messages != nil {
		return invalidDocument(c, messages)
	}

	date, _ := body["date"].(string)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	img := &models.Image{
		Imid: int(body["imid"].(float64)),
		URL:  body["url"].(string),
		Date: date,
	}

	if err := s.storage.CreateImage(wnid, img); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return conflictImage(c, wnid, img.Imid)
		}
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, hrefImageItem(wnid, img.Imid))
	return c.NoContent(http.StatusCreated)
}

// parseImid parses the :imid path parameter. An unparseable value can never
// name a stored image, so the failure reads as absence.
func parseImid(c echo.Context, wnid string) (int, bool, error) {
	param := c.Param("imid")
	imid, err := strconv.Atoi(param)
	if err != nil {
		return 0, false, notFoundImage(c, wnid, param)
	}
	return imid, true, nil
}

// getImageItem handles GET /api/synsets/:wnid/images/:imid/.
func (s *Server) getImageItem(c echo.Context) error {
	wnid := c.Param("wnid")

	imid, ok, err := parseImid(c, wnid)
	if !ok {
		return err
	}

	img, err := s.storage.GetImage(wnid, imid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFoundImage(c, wnid, strconv.Itoa(imid))
		}
		return err
	}

	doc := newDocument(
		hypermedia.Property{Name: "imid", Value: img.Imid},
		hypermedia.Property{Name: "url", Value: img.URL},
		hypermedia.Property{Name: "date", Value: img.Date},
	)
	doc.AddControl("self", hypermedia.Control{Href: hrefImageItem(wnid, imid)})
	doc.AddControl("profile", hypermedia.Control{Href: imageProfile})
	doc.AddControl("collection", hypermedia.Control{Href: hrefSynsetImageCollection(wnid)})
	doc.AddControl(namespace+":imagecollection", hypermedia.Control{
		Href:  hrefImageCollection(),
		Title: "All images",
	})
	addControlEditImage(doc, wnid, imid)
	addControlDeleteImage(doc, wnid, imid)

	return masonJSON(c, http.StatusOK, doc)
}

// putImageItem handles PUT /api/synsets/:wnid/images/:imid/. A changed imid
// in the body renumbers the image; an omitted date keeps the stored one.
func (s *Server) putImageItem(c echo.Context) error {
	wnid := c.Param("wnid")

	imid, ok, err := parseImid(c, wnid)
	if !ok {
		return err
	}

	prior, err := s.storage.GetImage(wnid, imid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFoundImage(c, wnid, strconv.Itoa(imid))
		}
		return err
	}

	body, ok, err := readBody(c)
	if !ok {
		return err
	}

	if messages := schema.Image().Validate(body); messages != nil {
		return invalidDocument(c, messages)
	}

	date, _ := body["date"].(string)
	if date == "" {
		date = prior.Date
	}

	img := &models.Image{
		Imid: int(body["imid"].(float64)),
		URL:  body["url"].(string),
		Date: date,
	}

	if err := s.storage.UpdateImage(wnid, imid, img); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return conflictImage(c, wnid, img.Imid)
		}
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// deleteImageItem handles DELETE /api/synsets/:wnid/images/:imid/.
func (s *Server) deleteImageItem(c echo.Context) error {
	wnid := c.Param("wnid")

	imid, ok, err := parseImid(c, wnid)
	if !ok {
		return err
	}

	if err := s.storage.DeleteImage(wnid, imid); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFoundImage(c, wnid, strconv.Itoa(imid))
		}
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// getImageCollection handles GET /api/images/, a read-only view over every
// stored image, ordered by owning synset and image number.
func (s *Server) getImageCollection(c echo.Context) error {
	start, ok, err := parseStart(c)
	if !ok {
		return err
	}

	images, err := s.storage.ListImages(start, imagePageSize+1)
	if err != nil {
		return err
	}

	doc := newDocument()
	doc.AddControl("self", hypermedia.Control{Href: hrefImageCollection()})
	addPageControls(doc, hrefImageCollection(), start, imagePageSize, len(images))

	doc.InitItems()
	for i := range images[:min(len(images), imagePageSize)] {
		doc.AppendItem(imageItemDocument(&images[i], false))
	}

	return masonJSON(c, http.StatusOK, doc)
}
