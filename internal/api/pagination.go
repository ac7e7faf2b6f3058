package api

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"evalgo.org/wnbrowser/internal/hypermedia"
)

// parseStart parses the 'start' query parameter: a non-negative offset into
// the identifier-ordered result set, defaulting to 0. The boolean reports
// whether parsing succeeded; on failure a 400 has already been written.
func parseStart(c echo.Context) (int, bool, error) {
	param := c.QueryParam("start")
	if param == "" {
		return 0, true, nil
	}

	start, err := strconv.Atoi(param)
	if err != nil || start < 0 {
		return 0, false, errorResponse(c, 400, "Invalid query parameter",
			"Query parameter 'start' must be a non-negative integer")
	}
	return start, true, nil
}

// addPageControls attaches prev/next controls to a collection document.
// prev is present iff a full previous page exists behind start; next is
// present iff more than a page of results remains beyond start.
//
// fetched is the number of rows obtained when querying pageSize+1 rows from
// the offset, so fetched > pageSize means a next page exists.
func addPageControls(doc hypermedia.Document, baseHref string, start, pageSize, fetched int) {
	if start >= pageSize {
		doc.AddControl("prev", hypermedia.Control{
			Href: fmt.Sprintf("%s?start=%d", baseHref, start-pageSize),
		})
	}
	if fetched > pageSize {
		doc.AddControl("next", hypermedia.Control{
			Href: fmt.Sprintf("%s?start=%d", baseHref, start+pageSize),
		})
	}
}
