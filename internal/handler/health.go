package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health responds to the liveness probe.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Root answers the API root with a short banner.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "CRM API"})
}
