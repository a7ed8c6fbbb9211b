package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festwine/tasting-gate/internal/clock"
	"github.com/festwine/tasting-gate/internal/config"
	"github.com/festwine/tasting-gate/internal/model"
)

func TestDashboardSummary(t *testing.T) {
	h := &DashboardHandler{Cfg: config.Config{}, Clk: clock.NewFake(time.Date(2026, 8, 28, 20, 0, 0, 0, time.UTC))}

	rec := postJSON(t, echo.New(), "/v1/dashboard", `{
		"completed_count": 45,
		"shift_minutes": 60,
		"ui_assist": true,
		"selections": ["Bold Reds", "Bold Reds", "Rosé All Day"]
	}`, h.Summary)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp summaryResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 56, resp.Snapshot.PoursPerHour)
	require.Len(t, resp.Distribution, 2)
	assert.Equal(t, model.TribeBoldReds, resp.Distribution[0].Category)
	assert.Equal(t, 67, resp.Distribution[0].Percent)
	assert.Equal(t, 33, resp.Distribution[1].Percent)
}

func TestDashboardSummaryRejectsBadShift(t *testing.T) {
	h := &DashboardHandler{Clk: clock.NewFake(time.Now())}
	rec := postJSON(t, echo.New(), "/v1/dashboard", `{"completed_count": 1, "shift_minutes": 0}`, h.Summary)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardSummaryRejectsUnknownTribe(t *testing.T) {
	h := &DashboardHandler{Clk: clock.NewFake(time.Now())}
	rec := postJSON(t, echo.New(), "/v1/dashboard", `{
		"completed_count": 1, "shift_minutes": 60, "selections": ["Mystery Tribe"]
	}`, h.Summary)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardLiveWithoutStore(t *testing.T) {
	h := &DashboardHandler{Clk: clock.NewFake(time.Now())}

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard/live", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	require.NoError(t, h.Live(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
