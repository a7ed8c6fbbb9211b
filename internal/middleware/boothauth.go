package middleware // middleware provides shared request processing for the booth endpoints

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/festwine/tasting-gate/internal/utils"
)

// BoothKeyAuth returns middleware that checks the X-Booth-Key header
// against the configured bcrypt hash.  Booth devices are provisioned
// with the key out of band; guests never see it.  An empty hash
// disables the check so a dev laptop can run without provisioning.
// This is device auth for point-of-service hardware, not a user
// identity system.
func BoothKeyAuth(keyHash string) echo.MiddlewareFunc {
	if keyHash == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get("X-Booth-Key")
			if key == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing booth key"})
			}
			if !utils.VerifyBoothKey(keyHash, key) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid booth key"})
			}
			return next(c)
		}
	}
}

// boothID extracts the booth identifier a device advertises for
// rate-limit keying.  Absence is not an error; unprovisioned devices
// share the "anon" bucket.
func boothID(c echo.Context) string {
	if v := c.Request().Header.Get("X-Booth-ID"); v != "" {
		return v
	}
	return "anon"
}
