package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festwine/tasting-gate/internal/clock"
	"github.com/festwine/tasting-gate/internal/gate"
	"github.com/festwine/tasting-gate/internal/model"
)

const testSecret = "wire-test-secret"

var wireEpoch = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func issueTestTicket(t *testing.T, clk clock.Clock, ageVerified, consentGiven bool) (model.Ticket, string) {
	t.Helper()
	consent := gate.EvaluateWithStory(ageVerified, consentGiven, true, clk)
	issuer := NewIssuer(testSecret, 30*time.Minute, clk)
	tkt, wire, err := issuer.Issue("guest_42", model.TribeBoldReds, "vin_barolo_19", consent, "booth_01")
	require.NoError(t, err)
	return tkt, wire
}

func TestRoundTrip(t *testing.T) {
	tkt, wire := issueTestTicket(t, clock.NewFake(wireEpoch), true, true)

	got, err := Decode(wire, []byte(testSecret))
	require.NoError(t, err)

	assert.Equal(t, tkt.ID, got.ID)
	assert.Equal(t, tkt.HolderID, got.HolderID)
	assert.Equal(t, tkt.Category, got.Category)
	assert.Equal(t, tkt.VintageID, got.VintageID)
	assert.Equal(t, tkt.BoothID, got.BoothID)
	assert.Equal(t, tkt.Authorized, got.Authorized)
	assert.True(t, got.IssuedAt.Equal(tkt.IssuedAt))
	assert.True(t, got.ExpiresAt.Equal(tkt.ExpiresAt))
	assert.Equal(t, tkt.Consent.Status, got.Consent.Status)
	assert.Equal(t, tkt.Consent.AgeVerified, got.Consent.AgeVerified)
	assert.Equal(t, tkt.Consent.ConsentGiven, got.Consent.ConsentGiven)
	assert.Equal(t, tkt.Consent.StoryConsent, got.Consent.StoryConsent)
	require.NotNil(t, got.Consent.VerifiedAt)
	assert.True(t, got.Consent.VerifiedAt.Equal(*tkt.Consent.VerifiedAt))
}

func TestRoundTripWithoutVerificationTimestamp(t *testing.T) {
	_, wire := issueTestTicket(t, clock.NewFake(wireEpoch), true, false) // PENDING carries no timestamp

	got, err := Decode(wire, []byte(testSecret))
	require.NoError(t, err)
	assert.Nil(t, got.Consent.VerifiedAt)
	assert.False(t, got.Authorized)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("not-a-ticket", []byte(testSecret))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDecodeRejectsWrongKey(t *testing.T) {
	_, wire := issueTestTicket(t, clock.NewFake(wireEpoch), true, true)
	_, err := Decode(wire, []byte("some-other-secret"))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDecodeRejectsSwappedSignature(t *testing.T) {
	// Two tickets signed with the same key; grafting one payload onto
	// the other's signature must not verify.
	_, wireA := issueTestTicket(t, clock.NewFake(wireEpoch), true, true)
	_, wireB := issueTestTicket(t, clock.NewFake(wireEpoch.Add(time.Second)), true, true)

	partsA := strings.Split(wireA, ".")
	partsB := strings.Split(wireB, ".")
	require.Len(t, partsA, 3)
	require.Len(t, partsB, 3)

	forged := partsA[0] + "." + partsA[1] + "." + partsB[2]
	_, err := Decode(forged, []byte(testSecret))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDecodeRejectsUnsignedToken(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		claimTicketID:   "tkt_forged",
		claimHolder:     "guest_42",
		claimTribe:      string(model.TribeBoldReds),
		claimBooth:      "booth_01",
		claimAuthorized: true,
	})
	wire, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Decode(wire, []byte(testSecret))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestTicketIDsAreUnique(t *testing.T) {
	clk := clock.NewFake(wireEpoch)
	issuer := NewIssuer(testSecret, 30*time.Minute, clk)
	consent := gate.Evaluate(true, true, clk)

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		tkt, _, err := issuer.Issue("guest_42", model.TribeBoldReds, "vin_barolo_19", consent, "booth_01")
		require.NoError(t, err)
		require.Falsef(t, seen[tkt.ID], "duplicate ticket id %s", tkt.ID)
		seen[tkt.ID] = true
	}
}
