package ticket

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/festwine/tasting-gate/internal/clock"
	"github.com/festwine/tasting-gate/internal/model"
)

// Issuer mints signed, time-bounded tasting tickets.  Each call is
// independent; booths can issue concurrently without coordination.
type Issuer struct {
	secret   []byte
	validity time.Duration
	clk      clock.Clock
}

// NewIssuer returns an Issuer signing with secret, stamping expiry at
// issuance plus validity.
func NewIssuer(secret string, validity time.Duration, clk clock.Clock) *Issuer {
	return &Issuer{secret: []byte(secret), validity: validity, clk: clk}
}

// Issue mints a ticket for the holder's selection and returns it with
// its wire encoding.  The authorized flag is frozen here from the
// consent status; later re-evaluation never touches an issued ticket.
// Catalog membership of vintageID in tribe is the caller's
// responsibility.  The Issuer persists nothing.
func (i *Issuer) Issue(holderID string, tribe model.Category, vintageID string, consent model.ConsentState, boothID string) (model.Ticket, string, error) {
	if holderID == "" {
		return model.Ticket{}, "", errors.New("holder id required")
	}
	if boothID == "" {
		return model.Ticket{}, "", errors.New("booth id required")
	}

	// Truncate to the wire format's millisecond precision so that
	// decode(encode(t)) reproduces the timestamps exactly.
	now := i.clk.Now().Truncate(time.Millisecond)
	if consent.VerifiedAt != nil {
		at := consent.VerifiedAt.Truncate(time.Millisecond)
		consent.VerifiedAt = &at
	}

	id, err := newTicketID(now)
	if err != nil {
		return model.Ticket{}, "", fmt.Errorf("mint ticket id: %w", err)
	}

	t := model.Ticket{
		ID:         id,
		HolderID:   holderID,
		Category:   tribe,
		VintageID:  vintageID,
		BoothID:    boothID,
		Consent:    consent,
		IssuedAt:   now,
		ExpiresAt:  now.Add(i.validity),
		Authorized: consent.Status == model.StatusAuthorized,
	}

	wire, err := Encode(t, i.secret)
	if err != nil {
		return model.Ticket{}, "", fmt.Errorf("encode ticket: %w", err)
	}
	return t, wire, nil
}

// newTicketID builds a collision-resistant identifier: a time-based
// prefix for rough ordering plus 8 bytes of crypto/rand, safe under
// concurrent issuance across booths.
func newTicketID(now time.Time) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("tkt_%d_%s", now.UnixMilli(), hex.EncodeToString(buf)), nil
}
