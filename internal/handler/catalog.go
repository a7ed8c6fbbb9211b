package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/festwine/tasting-gate/internal/catalog"
	"github.com/festwine/tasting-gate/internal/config"
	"github.com/festwine/tasting-gate/internal/model"
)

// CatalogHandler serves the pre-selection flow: which vintages a
// tribe can taste, and how long the queue will take.  The catalog is
// static data owned elsewhere; these endpoints only read it.
type CatalogHandler struct {
	Cfg     config.Config
	Catalog *catalog.Catalog
}

func NewCatalogHandler(cfg config.Config, cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{Cfg: cfg, Catalog: cat}
}

// Tribes lists the closed set of tribes in enumeration order.
func (h *CatalogHandler) Tribes(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"tribes": model.Categories()})
}

// ItemsForTribe returns the ordered vintages of one tribe.  An
// unknown tribe is a client error; a known tribe with nothing in
// stock is an empty list, not an error.
func (h *CatalogHandler) ItemsForTribe(c echo.Context) error {
	tribe, err := model.ParseCategory(c.Param("tribe"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"tribe":    tribe,
		"vintages": h.Catalog.ItemsFor(tribe),
	})
}

// WaitEstimate converts the current queue length into a minutes
// estimate from the venue's booth capacity and average service time.
func (h *CatalogHandler) WaitEstimate(c echo.Context) error {
	raw := c.QueryParam("queue_length")
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "queue_length required"})
	}
	queueLen, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "queue_length must be a non-negative integer"})
	}
	minutes := catalog.EstimateWait(uint(queueLen), h.Cfg.BoothCapacity, h.Cfg.AvgServiceMinutes)
	return c.JSON(http.StatusOK, echo.Map{
		"queue_length": queueLen,
		"wait_minutes": minutes,
	})
}
