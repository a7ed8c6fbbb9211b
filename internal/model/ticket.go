package model

import "time"

// Ticket is the tasting authorization artifact.  It is minted by the
// issuer, carried by the guest as a signed wire string inside a
// scannable code, and presented once at a booth.
//
// Authorized is frozen at issuance: re-running the consent gate later
// never changes an already-issued ticket; a new ticket must be issued
// instead.
//
// Fields:
//  ID         – unique per issuance (time prefix + random suffix).
//  HolderID   – provisional identity of the guest.
//  Category   – tribe selected during pre-selection.
//  VintageID  – catalog item selected.
//  BoothID    – booth that issued the ticket.
//  Consent    – consent state encoded at issuance.
//  IssuedAt   – issuance timestamp (millisecond precision).
//  ExpiresAt  – IssuedAt plus the configured validity window.
//  Authorized – true iff Consent.Status was AUTHORIZED at issuance.
type Ticket struct {
	ID         string       `json:"ticket_id"`
	HolderID   string       `json:"holder_id"`
	Category   Category     `json:"tribe"`
	VintageID  string       `json:"vintage_id"`
	BoothID    string       `json:"booth_id"`
	Consent    ConsentState `json:"consent"`
	IssuedAt   time.Time    `json:"issued_at"`
	ExpiresAt  time.Time    `json:"expires_at"`
	Authorized bool         `json:"authorized"`
}
