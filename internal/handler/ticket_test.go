package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festwine/tasting-gate/internal/catalog"
	"github.com/festwine/tasting-gate/internal/clock"
	"github.com/festwine/tasting-gate/internal/config"
	"github.com/festwine/tasting-gate/internal/repository"
	"github.com/festwine/tasting-gate/internal/ticket"
)

func newTestTicketHandler(clk clock.Clock) *TicketHandler {
	cfg := config.Config{
		TicketTTL:      30 * time.Minute,
		ValidateBudget: 3 * time.Second,
	}
	return &TicketHandler{
		Cfg:       cfg,
		Catalog:   catalog.Seed(),
		Issuer:    ticket.NewIssuer("handler-test-secret", cfg.TicketTTL, clk),
		Validator: ticket.NewValidator("handler-test-secret", cfg.ValidateBudget, clk, repository.NewMemoryConsumedStore(clk)),
		Clk:       clk,
	}
}

func postJSON(t *testing.T, e *echo.Echo, path, body string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestIssueThenScan(t *testing.T) {
	clk := clock.NewFake(time.Date(2026, 8, 28, 16, 0, 0, 0, time.UTC))
	h := newTestTicketHandler(clk)
	e := echo.New()

	rec := postJSON(t, e, "/v1/tickets", `{
		"holder_id": "guest_7",
		"tribe": "Bold Reds",
		"vintage_id": "vin_barolo_19",
		"booth_id": "booth_01",
		"age_verified": true,
		"consent_given": true
	}`, h.Issue)
	require.Equal(t, http.StatusCreated, rec.Code)

	var issued issueResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &issued))
	assert.True(t, issued.Ticket.Authorized)
	assert.NotEmpty(t, issued.Code)

	rec = postJSON(t, e, "/v1/scan", `{"code": "`+issued.Code+`"}`, h.Scan)
	require.Equal(t, http.StatusOK, rec.Code)

	var scanned scanResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scanned))
	assert.True(t, scanned.OK)
	assert.Equal(t, "accept", scanned.Action)

	// Replaying the same code is refused.
	rec = postJSON(t, e, "/v1/scan", `{"code": "`+issued.Code+`"}`, h.Scan)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scanned))
	assert.False(t, scanned.OK)
	assert.Equal(t, string(ticket.ReasonAlreadyConsumed), scanned.Reason)
	assert.Equal(t, "deny", scanned.Action)
}

func TestIssuePendingConsentLeadsToStaffDiscretion(t *testing.T) {
	clk := clock.NewFake(time.Date(2026, 8, 28, 16, 0, 0, 0, time.UTC))
	h := newTestTicketHandler(clk)
	e := echo.New()

	rec := postJSON(t, e, "/v1/tickets", `{
		"holder_id": "guest_8",
		"tribe": "Bold Reds",
		"vintage_id": "vin_barolo_19",
		"booth_id": "booth_01",
		"age_verified": true,
		"consent_given": false
	}`, h.Issue)
	require.Equal(t, http.StatusCreated, rec.Code)

	var issued issueResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &issued))
	assert.False(t, issued.Ticket.Authorized)

	rec = postJSON(t, e, "/v1/scan", `{"code": "`+issued.Code+`"}`, h.Scan)
	var scanned scanResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scanned))
	assert.False(t, scanned.OK)
	assert.Equal(t, string(ticket.ReasonNotAuthorized), scanned.Reason)
	assert.Equal(t, "ask_staff", scanned.Action)
}

func TestIssueRejectsUnknownTribe(t *testing.T) {
	h := newTestTicketHandler(clock.NewFake(time.Date(2026, 8, 28, 16, 0, 0, 0, time.UTC)))
	rec := postJSON(t, echo.New(), "/v1/tickets", `{
		"holder_id": "guest_9",
		"tribe": "Orange Wines",
		"vintage_id": "vin_barolo_19",
		"booth_id": "booth_01"
	}`, h.Issue)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIssueRejectsVintageOutsideTribe(t *testing.T) {
	h := newTestTicketHandler(clock.NewFake(time.Date(2026, 8, 28, 16, 0, 0, 0, time.UTC)))
	rec := postJSON(t, echo.New(), "/v1/tickets", `{
		"holder_id": "guest_9",
		"tribe": "Crisp Whites",
		"vintage_id": "vin_barolo_19",
		"booth_id": "booth_01"
	}`, h.Issue)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScanRequiresCode(t *testing.T) {
	h := newTestTicketHandler(clock.NewFake(time.Date(2026, 8, 28, 16, 0, 0, 0, time.UTC)))
	rec := postJSON(t, echo.New(), "/v1/scan", `{}`, h.Scan)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScanExpiredTicketSuggestsReissue(t *testing.T) {
	clk := clock.NewFake(time.Date(2026, 8, 28, 16, 0, 0, 0, time.UTC))
	h := newTestTicketHandler(clk)
	e := echo.New()

	rec := postJSON(t, e, "/v1/tickets", `{
		"holder_id": "guest_10",
		"tribe": "Bold Reds",
		"vintage_id": "vin_barolo_19",
		"booth_id": "booth_01",
		"age_verified": true,
		"consent_given": true
	}`, h.Issue)
	var issued issueResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &issued))

	clk.Advance(31 * time.Minute)
	rec = postJSON(t, e, "/v1/scan", `{"code": "`+issued.Code+`"}`, h.Scan)
	var scanned scanResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scanned))
	assert.False(t, scanned.OK)
	assert.Equal(t, string(ticket.ReasonExpired), scanned.Reason)
	assert.Equal(t, "reissue", scanned.Action)
}
