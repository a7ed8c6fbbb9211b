package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/festwine/tasting-gate/internal/clock"
	"github.com/festwine/tasting-gate/internal/config"
	"github.com/festwine/tasting-gate/internal/model"
	"github.com/festwine/tasting-gate/internal/repository"
	"github.com/festwine/tasting-gate/internal/throughput"
)

// DashboardHandler serves the operator rollups.  Summary is the pure
// entry point over caller-supplied inputs; Live folds the audit
// store's exact per-event history when one is configured.
type DashboardHandler struct {
	Cfg   config.Config
	Audit *repository.AuditRepo // nil when no database is configured
	Clk   clock.Clock
}

type summaryReq struct {
	CompletedCount uint     `json:"completed_count"`
	ShiftMinutes   float64  `json:"shift_minutes"`
	UIAssist       bool     `json:"ui_assist"`
	Selections     []string `json:"selections"`
}

type summaryResp struct {
	Snapshot     model.ThroughputSnapshot   `json:"snapshot"`
	Distribution model.CategoryDistribution `json:"distribution"`
}

// Summary computes the shift snapshot and tribe distribution from the
// request body alone.  Status counts use the documented proportional
// estimator since no per-ticket history accompanies a bare count.
func (h *DashboardHandler) Summary(c echo.Context) error {
	var req summaryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ShiftMinutes <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "shift_minutes must be positive"})
	}
	selections := make([]model.Category, 0, len(req.Selections))
	for _, s := range req.Selections {
		tribe, err := model.ParseCategory(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		selections = append(selections, tribe)
	}

	return c.JSON(http.StatusOK, summaryResp{
		Snapshot:     throughput.Summarize(req.CompletedCount, req.ShiftMinutes, req.UIAssist),
		Distribution: throughput.DistributionBy(selections),
	})
}

// Live folds the audit store's accepted validations for the trailing
// shift window into an exact snapshot.  Without a configured store
// there is nothing to fold and the endpoint reports 503; callers fall
// back to Summary.
func (h *DashboardHandler) Live(c echo.Context) error {
	if h.Audit == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "no audit store configured"})
	}

	shiftMinutes := 60.0
	if raw := c.QueryParam("shift_minutes"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "shift_minutes must be positive"})
		}
		shiftMinutes = f
	}
	uiAssist := c.QueryParam("ui_assist") == "true"

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	since := h.Clk.Now().Add(-time.Duration(shiftMinutes * float64(time.Minute)))
	events, err := h.Audit.PourEventsSince(ctx, since)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query audit store failed"})
	}

	return c.JSON(http.StatusOK, summaryResp{
		Snapshot:     throughput.SummarizeEvents(events, shiftMinutes, uiAssist),
		Distribution: throughput.DistributionBy(throughput.Categories(events)),
	})
}
