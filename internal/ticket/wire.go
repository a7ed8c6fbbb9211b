// Package ticket implements the tasting-ticket lifecycle: issuance,
// the signed wire encoding carried inside a scannable code, and
// point-of-service validation.
package ticket

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/festwine/tasting-gate/internal/model"
)

// ErrDecode covers every way a wire string can fail to yield a
// trusted ticket: not a token at all, wrong structure, or a signature
// that does not verify under the server key.  Callers must not
// distinguish forgery from corruption; both get a fresh scan.
var ErrDecode = errors.New("wire string did not decode to a signed ticket")

// Claim names for the flat wire record.  Timestamps travel as epoch
// milliseconds under non-registered names so the jwt library's own
// expiry validation stays out of the way; expiry is a distinct
// failure mode with its own reason code, not a decode error.
const (
	claimTicketID   = "jti"
	claimHolder     = "sub"
	claimTribe      = "tribe"
	claimVintage    = "vin"
	claimBooth      = "bth"
	claimIssuedMs   = "iatms"
	claimExpiresMs  = "expms"
	claimAuthorized = "authz"
	claimStatus     = "cst"
	claimAge        = "age"
	claimConsent    = "fpic"
	claimStory      = "story"
	claimVerifiedMs = "vfyms"
)

// Encode serializes a ticket as an HS256-signed JWT.  The encoding is
// a pure function of the ticket's public fields and round-trips
// exactly through Decode.
func Encode(t model.Ticket, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		claimTicketID:   t.ID,
		claimHolder:     t.HolderID,
		claimTribe:      string(t.Category),
		claimVintage:    t.VintageID,
		claimBooth:      t.BoothID,
		claimIssuedMs:   t.IssuedAt.UnixMilli(),
		claimExpiresMs:  t.ExpiresAt.UnixMilli(),
		claimAuthorized: t.Authorized,
		claimStatus:     string(t.Consent.Status),
		claimAge:        t.Consent.AgeVerified,
		claimConsent:    t.Consent.ConsentGiven,
		claimStory:      t.Consent.StoryConsent,
	}
	if t.Consent.VerifiedAt != nil {
		claims[claimVerifiedMs] = t.Consent.VerifiedAt.UnixMilli()
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(secret)
}

// Decode verifies the signature and rebuilds the ticket.  Nothing in
// the payload is trusted before the HMAC checks out.  Structural
// completeness is the validator's concern, not Decode's: a signed
// token with missing fields decodes to a ticket with zero values.
func Decode(wire string, secret []byte) (model.Ticket, error) {
	tok, err := jwt.Parse(wire, func(t *jwt.Token) (interface{}, error) {
		// Reject any signing method other than HMAC before handing
		// over the key.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrDecode
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return model.Ticket{}, ErrDecode
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return model.Ticket{}, ErrDecode
	}

	t := model.Ticket{
		ID:         claimString(claims, claimTicketID),
		HolderID:   claimString(claims, claimHolder),
		Category:   model.Category(claimString(claims, claimTribe)),
		VintageID:  claimString(claims, claimVintage),
		BoothID:    claimString(claims, claimBooth),
		IssuedAt:   millisTime(claims, claimIssuedMs),
		ExpiresAt:  millisTime(claims, claimExpiresMs),
		Authorized: claimBool(claims, claimAuthorized),
	}
	t.Consent = model.ConsentState{
		AgeVerified:  claimBool(claims, claimAge),
		ConsentGiven: claimBool(claims, claimConsent),
		StoryConsent: claimBool(claims, claimStory),
		Status:       model.ConsentStatus(claimString(claims, claimStatus)),
	}
	if _, present := claims[claimVerifiedMs]; present {
		at := millisTime(claims, claimVerifiedMs)
		t.Consent.VerifiedAt = &at
	}
	return t, nil
}

func claimString(m jwt.MapClaims, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func claimBool(m jwt.MapClaims, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

// millisTime reads an epoch-millisecond claim.  JSON numbers arrive
// as float64; within the service's lifetime that is exact for
// millisecond epochs.
func millisTime(m jwt.MapClaims, key string) time.Time {
	if v, ok := m[key].(float64); ok {
		return time.UnixMilli(int64(v)).UTC()
	}
	return time.Time{}
}
