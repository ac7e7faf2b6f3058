package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/wnbrowser/internal/hypermedia"
)

// errorResponse sends a Mason error envelope with the given status code.
func errorResponse(c echo.Context, code int, title string, messages ...string) error {
	return masonJSON(c, code, hypermedia.NewError(title, messages...))
}

// masonJSON sends a document with the Mason media type.
func masonJSON(c echo.Context, code int, doc hypermedia.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return c.Blob(code, hypermedia.MediaType, data)
}

func notFoundSynset(c echo.Context, wnid string) error {
	return errorResponse(c, http.StatusNotFound, "Not found",
		fmt.Sprintf("No synset with WordNet ID of '%s' found", wnid))
}

func notFoundHyponym(c echo.Context, hyponymWnid string) error {
	return errorResponse(c, http.StatusNotFound, "Not found",
		fmt.Sprintf("No synset hyponym with WordNet ID of '%s' found", hyponymWnid))
}

func notFoundImage(c echo.Context, wnid, imid string) error {
	return errorResponse(c, http.StatusNotFound, "Not found",
		fmt.Sprintf("No image with WordNet ID of '%s' and image ID of '%s' found", wnid, imid))
}

func conflictSynset(c echo.Context, wnid string) error {
	return errorResponse(c, http.StatusConflict, "Already exists",
		fmt.Sprintf("Synset with WordNet ID of '%s' already exists", wnid))
}

func conflictHyponym(c echo.Context, hyponymWnid string) error {
	return errorResponse(c, http.StatusConflict, "Already exists",
		fmt.Sprintf("Synset hyponym with WordNet ID of '%s' already exists", hyponymWnid))
}

func conflictImage(c echo.Context, wnid string, imid int) error {
	return errorResponse(c, http.StatusConflict, "Already exists",
		fmt.Sprintf("Image with WordNet ID of '%s' and image ID of '%d' already exists", wnid, imid))
}

func unsupportedMediaType(c echo.Context) error {
	return errorResponse(c, http.StatusUnsupportedMediaType, "Unsupported media type",
		"Requests must be JSON")
}

func invalidDocument(c echo.Context, messages []string) error {
	return errorResponse(c, http.StatusBadRequest, "Invalid JSON document", messages...)
}

// HTTPErrorHandler is a custom error handler for Echo. Errors raised by the
// framework itself (unknown route, unsupported method, panics recovered by
// middleware) are rendered as the same Mason error envelope the handlers use.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	detail := err.Error()
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		detail = fmt.Sprintf("%v", he.Message)
	}

	// Internal details stay out of responses unless debugging.
	if code == http.StatusInternalServerError && !c.Echo().Debug {
		detail = "An internal error occurred"
	}

	if err := masonJSON(c, code, hypermedia.NewError(http.StatusText(code), detail)); err != nil {
		c.Logger().Error(err)
	}
}
