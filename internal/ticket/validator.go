package ticket

import (
	"context"
	"time"

	"github.com/festwine/tasting-gate/internal/clock"
	"github.com/festwine/tasting-gate/internal/model"
)

// Reason identifies why a validation did not accept a ticket.  All
// reasons are returned as values so booth UIs can render a specific
// message per kind; nothing here panics or throws.
type Reason string

const (
	// ReasonDecodeError: the wire string is not a well-formed signed
	// token (includes bad signatures).  Unrecoverable for that
	// string; the guest needs a fresh ticket.
	ReasonDecodeError Reason = "DECODE_ERROR"
	// ReasonMalformedTicket: decoded but missing required fields.
	ReasonMalformedTicket Reason = "MALFORMED_TICKET"
	// ReasonTimeoutExceeded: the checks did not finish inside the
	// budget.  Surfaced distinctly from NOT_AUTHORIZED so dashboards
	// can tell "system too slow" from "guest correctly denied".
	ReasonTimeoutExceeded Reason = "TIMEOUT_EXCEEDED"
	// ReasonExpired: the validity window has elapsed.  Recoverable by
	// re-issuing from the pre-selection step.
	ReasonExpired Reason = "EXPIRED"
	// ReasonNotAuthorized: structurally valid and unexpired, but the
	// consent status denies service.  Operator-visible, not an error.
	ReasonNotAuthorized Reason = "NOT_AUTHORIZED"
	// ReasonAlreadyConsumed: the ticket id was already spent at a
	// booth within its validity window.
	ReasonAlreadyConsumed Reason = "ALREADY_CONSUMED"
)

// ValidationResult is the booth-facing decision.  ElapsedMillis is
// always reported so operators can display "validated in Nms".
type ValidationResult struct {
	OK            bool          `json:"ok"`
	Reason        Reason        `json:"reason,omitempty"`
	ElapsedMillis int64         `json:"elapsed_ms"`
	Ticket        *model.Ticket `json:"-"`
}

// ConsumedStore tracks spent ticket ids within their validity window
// so the same wire string cannot be replayed at another booth.
// MarkConsumed must be atomic: it returns true only for the first
// caller to mark an id.
type ConsumedStore interface {
	MarkConsumed(ctx context.Context, ticketID string, ttl time.Duration) (bool, error)
}

// Validator decodes and re-verifies presented tickets.  Each call is
// independent; the budget is a local per-call deadline, not a
// distributed timeout.
type Validator struct {
	secret   []byte
	budget   time.Duration
	clk      clock.Clock
	consumed ConsumedStore
}

// NewValidator builds a Validator.  consumed may be nil, which
// disables single-use enforcement (not recommended outside tests).
func NewValidator(secret string, budget time.Duration, clk clock.Clock, consumed ConsumedStore) *Validator {
	return &Validator{secret: []byte(secret), budget: budget, clk: clk, consumed: consumed}
}

// Validate runs the full check sequence against a wire string:
// decode/signature, structural completeness, timing budget, expiry,
// authorization, single-use consumption.  Every exit path reports
// elapsed time.  A validation that fails never consumes the ticket,
// so a PENDING guest can re-present the same code to an operator.
func (v *Validator) Validate(ctx context.Context, wire string) ValidationResult {
	start := v.clk.Now()

	t, err := Decode(wire, v.secret)
	if err != nil {
		return v.fail(start, ReasonDecodeError, nil)
	}

	if t.ID == "" || t.HolderID == "" || t.Category == "" || t.BoothID == "" {
		return v.fail(start, ReasonMalformedTicket, &t)
	}

	// The contract is "decision within the budget", not "decision, if
	// fast enough": once decode plus structural checks have burned
	// the budget, the answer is TIMEOUT_EXCEEDED no matter what the
	// remaining checks would have said.
	now := v.clk.Now()
	if now.Sub(start) >= v.budget {
		return ValidationResult{Reason: ReasonTimeoutExceeded, ElapsedMillis: now.Sub(start).Milliseconds(), Ticket: &t}
	}

	// Expiry boundary is exclusive: a ticket presented at exactly its
	// expiry instant still passes; one millisecond later it does not.
	if now.After(t.ExpiresAt) {
		return v.fail(start, ReasonExpired, &t)
	}

	if !t.Authorized {
		return v.fail(start, ReasonNotAuthorized, &t)
	}

	if v.consumed != nil {
		ttl := t.ExpiresAt.Sub(now)
		if ttl <= 0 {
			ttl = time.Millisecond
		}
		first, err := v.consumed.MarkConsumed(ctx, t.ID, ttl)
		if err == nil && !first {
			return v.fail(start, ReasonAlreadyConsumed, &t)
		}
		// A store error degrades to accepting the ticket: the booth
		// still gets its decision inside the budget.
	}

	return ValidationResult{OK: true, ElapsedMillis: v.clk.Now().Sub(start).Milliseconds(), Ticket: &t}
}

func (v *Validator) fail(start time.Time, reason Reason, t *model.Ticket) ValidationResult {
	return ValidationResult{Reason: reason, ElapsedMillis: v.clk.Now().Sub(start).Milliseconds(), Ticket: t}
}
