package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/festwine/tasting-gate/internal/clock"
	"github.com/festwine/tasting-gate/internal/model"
)

// SessionHandler mints provisional identities.  A session is all the
// identity a guest ever gets: an opaque id for the duration of their
// visit, never persisted, never reused.
type SessionHandler struct {
	Clk clock.Clock
}

func NewSessionHandler(clk clock.Clock) *SessionHandler {
	return &SessionHandler{Clk: clk}
}

// Create mints a fresh ProvisionalIdentity.
func (h *SessionHandler) Create(c echo.Context) error {
	identity := model.ProvisionalIdentity{
		ID:        "guest_" + uuid.NewString(),
		CreatedAt: h.Clk.Now(),
	}
	return c.JSON(http.StatusCreated, identity)
}
