package handler // declare the package name; contains HTTP handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness endpoint polled by load balancers and booth
// devices to check the gate is up.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
