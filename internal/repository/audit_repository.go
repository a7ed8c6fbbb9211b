package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/festwine/tasting-gate/internal/model"
	"github.com/festwine/tasting-gate/internal/throughput"
)

const sqlTime = "2006-01-02 15:04:05"

// AuditRepo records issuances and validation outcomes.  The core
// never depends on it for correctness: every write is best effort and
// the service runs without a database.  When present, it supplies the
// exact per-status history the dashboard prefers over the
// proportional estimator.
type AuditRepo struct {
	db *sql.DB
}

func NewAuditRepo(db *sql.DB) *AuditRepo { return &AuditRepo{db: db} }

// EnsureSchema creates the audit tables when they do not exist yet.
func (r *AuditRepo) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ticket_issuances (
			ticket_id  VARCHAR(64) PRIMARY KEY,
			holder_id  VARCHAR(64)  NOT NULL,
			tribe      VARCHAR(32)  NOT NULL,
			vintage_id VARCHAR(64)  NOT NULL,
			booth_id   VARCHAR(64)  NOT NULL,
			status     VARCHAR(16)  NOT NULL,
			authorized TINYINT(1)   NOT NULL,
			issued_at  DATETIME     NOT NULL,
			expires_at DATETIME     NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ticket_validations (
			id           BIGINT AUTO_INCREMENT PRIMARY KEY,
			ticket_id    VARCHAR(64) NOT NULL,
			booth_id     VARCHAR(64) NOT NULL,
			ok           TINYINT(1)  NOT NULL,
			reason       VARCHAR(32) NOT NULL,
			elapsed_ms   BIGINT      NOT NULL,
			validated_at DATETIME    NOT NULL,
			INDEX idx_validations_at (validated_at)
		)`,
	}
	for _, q := range stmts {
		if _, err := r.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// RecordIssuance writes the write-once issuance row.  The ticket id
// is the key; a duplicate insert is a caller bug and surfaces as an
// error.
func (r *AuditRepo) RecordIssuance(ctx context.Context, t model.Ticket) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ticket_issuances
		 (ticket_id, holder_id, tribe, vintage_id, booth_id, status, authorized, issued_at, expires_at)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		t.ID, t.HolderID, string(t.Category), t.VintageID, t.BoothID,
		string(t.Consent.Status), t.Authorized,
		t.IssuedAt.UTC().Format(sqlTime), t.ExpiresAt.UTC().Format(sqlTime))
	return err
}

// RecordValidation appends one scan outcome, accepted or not.
func (r *AuditRepo) RecordValidation(ctx context.Context, ticketID, boothID string, ok bool, reason string, elapsedMs int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ticket_validations (ticket_id, booth_id, ok, reason, elapsed_ms, validated_at)
		 VALUES (?,?,?,?,?,?)`,
		ticketID, boothID, ok, reason, elapsedMs, at.UTC().Format(sqlTime))
	return err
}

// PourEventsSince returns the completed pours (accepted validations)
// from `since` on, joined with their issuance rows for tribe and
// consent status.  This is the exact-fold input for the dashboard.
func (r *AuditRepo) PourEventsSince(ctx context.Context, since time.Time) ([]throughput.PourEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT i.ticket_id, i.tribe, i.status, v.validated_at
		 FROM ticket_validations v
		 JOIN ticket_issuances i ON i.ticket_id = v.ticket_id
		 WHERE v.ok = 1 AND v.validated_at >= ?
		 ORDER BY v.validated_at`,
		since.UTC().Format(sqlTime))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []throughput.PourEvent
	for rows.Next() {
		var (
			ev     throughput.PourEvent
			tribe  string
			status string
		)
		if err := rows.Scan(&ev.TicketID, &tribe, &status, &ev.CompletedAt); err != nil {
			return nil, err
		}
		ev.Category = model.Category(tribe)
		ev.Status = model.ConsentStatus(status)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
