package api

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// ValidateContentType middleware rejects POST and PUT requests whose body is
// not declared as JSON. Every mutating action of the API expects a
// schema-validated JSON object, so anything else is 415 up front.
func ValidateContentType(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		method := c.Request().Method

		if method == "POST" || method == "PUT" {
			contentType := c.Request().Header.Get("Content-Type")
			if !strings.HasPrefix(contentType, "application/json") {
				return unsupportedMediaType(c)
			}
		}

		return next(c)
	}
}
