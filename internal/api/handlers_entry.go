package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/wnbrowser/internal/hypermedia"
)

// entryPoint handles GET /api/ and returns the navigational root of the
// API. It carries no state of its own, only the controls leading into the
// two top-level collections.
func (s *Server) entryPoint(c echo.Context) error {
	doc := newDocument()
	doc.AddControl(namespace+":synsetcollection", hypermedia.Control{
		Href:  hrefSynsetCollection(),
		Title: "All synsets",
	})
	doc.AddControl(namespace+":imagecollection", hypermedia.Control{
		Href:  hrefImageCollection(),
		Title: "All images",
	})
	return masonJSON(c, http.StatusOK, doc)
}
