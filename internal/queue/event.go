// Package queue defines message payloads exchanged over the message broker.
package queue

// PourCompletedEvent is published after a booth scan passes and the
// pour goes ahead.  It carries enough for downstream consumers to
// log, notify or feed analytics without querying the audit store.
type PourCompletedEvent struct {
	TicketID      string `json:"ticket_id"`
	HolderID      string `json:"holder_id"`
	BoothID       string `json:"booth_id"`
	Tribe         string `json:"tribe"`
	VintageID     string `json:"vintage_id"`
	ConsentStatus string `json:"consent_status"`
	ElapsedMillis int64  `json:"elapsed_ms"`
	CompletedAt   string `json:"completed_at"`
}
