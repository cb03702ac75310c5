package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness probe used by load balancers. It answers before any
// middleware so it works even when the database is down.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
