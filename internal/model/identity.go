package model

import "time"

// ProvisionalIdentity is an opaque per-session holder identifier.  It
// is minted at session start, never persisted beyond the session and
// never reused.  It is not an account: no credentials attach to it.
type ProvisionalIdentity struct {
	ID        string    `json:"holder_id"`
	CreatedAt time.Time `json:"created_at"`
}
