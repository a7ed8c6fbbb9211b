package model

import "time"

// ConsentStatus is the three-valued outcome of the TQ safety gate.
// AUTHORIZED admits the guest, PENDING defers to operator discretion
// at the booth, DENIED refuses service outright.
type ConsentStatus string

const (
	StatusAuthorized ConsentStatus = "AUTHORIZED"
	StatusPending    ConsentStatus = "PENDING"
	StatusDenied     ConsentStatus = "DENIED"
)

// ConsentState captures a guest's age/consent answers and the status
// derived from them.  Status is always computed from the two gate
// booleans by gate.Evaluate and is never set independently.
//
// Fields:
//  AgeVerified  – the guest's age has been checked (hard legal gate).
//  ConsentGiven – free/prior/informed consent to participate.
//  StoryConsent – optional consent to story/media capture; orthogonal
//                 to authorization and never affects Status.
//  Status       – AUTHORIZED, PENDING or DENIED.
//  VerifiedAt   – set only when Status is AUTHORIZED (nullable).
type ConsentState struct {
	AgeVerified  bool          // hard gate: false always denies
	ConsentGiven bool          // soft gate: false defers to staff
	StoryConsent bool          // media consent, informational only
	Status       ConsentStatus // derived, see gate.Evaluate
	VerifiedAt   *time.Time    // verification timestamp, AUTHORIZED only
}
