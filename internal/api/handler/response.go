package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// errorBody documents the error envelope rendered by the API error handler.
type errorBody struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func message(c echo.Context, code int, msg string) error {
	return c.JSON(code, messageResponse{Message: msg})
}

// int64Param parses a numeric path parameter.
func int64Param(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name+".")
	}
	return id, nil
}

// intQuery parses an optional integer query parameter. Missing or malformed
// values yield def.
func intQuery(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
