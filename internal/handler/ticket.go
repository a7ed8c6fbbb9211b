package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/festwine/tasting-gate/internal/catalog"
	"github.com/festwine/tasting-gate/internal/clock"
	"github.com/festwine/tasting-gate/internal/config"
	"github.com/festwine/tasting-gate/internal/gate"
	"github.com/festwine/tasting-gate/internal/model"
	"github.com/festwine/tasting-gate/internal/queue"
	"github.com/festwine/tasting-gate/internal/repository"
	"github.com/festwine/tasting-gate/internal/ticket"
)

// TicketHandler bundles the booth-facing entry points: issuing a
// ticket during pre-selection and scanning it at the pour.
type TicketHandler struct {
	Cfg       config.Config
	Catalog   *catalog.Catalog
	Issuer    *ticket.Issuer
	Validator *ticket.Validator
	Audit     *repository.AuditRepo // nil when no database is configured
	Publish   func(context.Context, queue.PourCompletedEvent) error
	Clk       clock.Clock
}

// ----- DTOs -----

type issueReq struct {
	HolderID     string `json:"holder_id"`
	Tribe        string `json:"tribe"`
	VintageID    string `json:"vintage_id"`
	BoothID      string `json:"booth_id"`
	AgeVerified  bool   `json:"age_verified"`
	ConsentGiven bool   `json:"consent_given"`
	StoryConsent bool   `json:"story_consent"`
}

type issueResp struct {
	Ticket model.Ticket `json:"ticket"`
	Code   string       `json:"code"` // wire string for the scannable code
}

type scanReq struct {
	Code string `json:"code"`
}

type scanResp struct {
	OK            bool   `json:"ok"`
	Reason        string `json:"reason,omitempty"`
	ElapsedMillis int64  `json:"elapsed_ms"`
	Action        string `json:"action"`
}

// Issue evaluates the guest's consent state, mints a signed ticket
// for the selection and returns it with its wire encoding.  The
// consent status is frozen onto the ticket here; changing one's
// answers afterwards requires a new ticket.
func (h *TicketHandler) Issue(c echo.Context) error {
	var req issueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.HolderID = strings.TrimSpace(req.HolderID)
	req.BoothID = strings.TrimSpace(req.BoothID)
	req.VintageID = strings.TrimSpace(req.VintageID)
	if req.HolderID == "" || req.BoothID == "" || req.VintageID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "holder_id/booth_id/vintage_id required"})
	}
	tribe, err := model.ParseCategory(req.Tribe)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if !h.Catalog.Contains(tribe, req.VintageID) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vintage not in selected tribe"})
	}

	consent := gate.EvaluateWithStory(req.AgeVerified, req.ConsentGiven, req.StoryConsent, h.Clk)
	t, wire, err := h.Issuer.Issue(req.HolderID, tribe, req.VintageID, consent, req.BoothID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue ticket failed"})
	}

	if h.Audit != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if err := h.Audit.RecordIssuance(ctx, t); err != nil {
			log.Printf("audit: record issuance %s: %v", t.ID, err)
		}
	}

	return c.JSON(http.StatusCreated, issueResp{Ticket: t, Code: wire})
}

// Scan is the booth entry point: it takes the wire string read from a
// guest's code and returns the validation decision.  The decision
// itself is always HTTP 200; only an unreadable request body is an
// HTTP error.  Accepted scans publish a pour.completed event, best
// effort.
func (h *TicketHandler) Scan(c echo.Context) error {
	var req scanReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}

	res := h.Validator.Validate(c.Request().Context(), strings.TrimSpace(req.Code))

	if h.Audit != nil && res.Ticket != nil && res.Ticket.ID != "" {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if err := h.Audit.RecordValidation(ctx, res.Ticket.ID, res.Ticket.BoothID, res.OK, string(res.Reason), res.ElapsedMillis, h.Clk.Now()); err != nil {
			log.Printf("audit: record validation %s: %v", res.Ticket.ID, err)
		}
	}

	if res.OK && h.Publish != nil {
		t := res.Ticket
		_ = h.Publish(c.Request().Context(), queue.PourCompletedEvent{
			TicketID:      t.ID,
			HolderID:      t.HolderID,
			BoothID:       t.BoothID,
			Tribe:         string(t.Category),
			VintageID:     t.VintageID,
			ConsentStatus: string(t.Consent.Status),
			ElapsedMillis: res.ElapsedMillis,
			CompletedAt:   h.Clk.Now().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, scanResp{
		OK:            res.OK,
		Reason:        string(res.Reason),
		ElapsedMillis: res.ElapsedMillis,
		Action:        operatorAction(res),
	})
}

// operatorAction maps a validation outcome to what the booth screen
// tells the operator: accept, ask-staff-discretion, deny, re-issue or
// ask-to-rescan.  No outcome is silent.
func operatorAction(res ticket.ValidationResult) string {
	if res.OK {
		return "accept"
	}
	switch res.Reason {
	case ticket.ReasonNotAuthorized:
		if res.Ticket != nil && res.Ticket.Consent.Status == model.StatusPending {
			return "ask_staff"
		}
		return "deny"
	case ticket.ReasonExpired:
		return "reissue"
	case ticket.ReasonAlreadyConsumed:
		return "deny"
	default: // decode, malformed, timeout
		return "rescan"
	}
}
