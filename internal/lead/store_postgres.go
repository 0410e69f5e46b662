package lead

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"propworth/internal/platform/config"
	"propworth/pkg/platform/sentinel"
)

// Schema is the leads table DDL, applied by deployment tooling and the
// integration suite.
const Schema = `
CREATE TABLE IF NOT EXISTS leads (
	id                   UUID PRIMARY KEY,
	name                 TEXT NOT NULL,
	phone                TEXT NOT NULL,
	email                TEXT NOT NULL DEFAULT '',
	buyer_type           TEXT NOT NULL,
	budget_range         TEXT NOT NULL,
	preferred_suburbs    TEXT[] NOT NULL,
	timeline             TEXT NOT NULL,
	pre_approved         TEXT NOT NULL,
	consent_timestamp    TIMESTAMPTZ NOT NULL,
	consent_text_version TEXT NOT NULL,
	consent_purpose      TEXT NOT NULL,
	source_url           TEXT NOT NULL DEFAULT '',
	user_agent           TEXT NOT NULL DEFAULT '',
	browser              TEXT NOT NULL DEFAULT '',
	os                   TEXT NOT NULL DEFAULT '',
	client_ip            TEXT NOT NULL DEFAULT '',
	status               TEXT NOT NULL DEFAULT 'new',
	assigned_agent_id    TEXT NOT NULL DEFAULT '',
	created_at           TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_leads_status ON leads (status);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads (created_at DESC);
`

// PostgresStore persists leads in PostgreSQL. A single-row INSERT gives
// CreateLead its atomicity: readers see the whole record or nothing.
type PostgresStore struct {
	pool    *pgxpool.Pool
	consent config.ConsentConfig
	logger  *slog.Logger
}

func NewPostgresStore(pool *pgxpool.Pool, consent config.ConsentConfig, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{pool: pool, consent: consent, logger: logger}
}

const leadColumns = `id, name, phone, email, buyer_type, budget_range, preferred_suburbs,
	timeline, pre_approved, consent_timestamp, consent_text_version, consent_purpose,
	source_url, user_agent, browser, os, client_ip, status, assigned_agent_id, created_at`

func (s *PostgresStore) CreateLead(ctx context.Context, sub ValidatedSubmission, prov Provenance, assignedAgentID string) (Lead, error) {
	l := buildLead(uuid.NewString(), time.Now().UTC(), sub, prov, assignedAgentID, s.consent)

	_, err := s.pool.Exec(ctx, `
		INSERT INTO leads (`+leadColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		l.ID, l.Name, l.Phone, l.Email, string(l.BuyerType), string(l.BudgetRange), l.PreferredSuburbs,
		string(l.Timeline), string(l.PreApproved), l.Consent.Timestamp, l.Consent.TextVersion, l.Consent.Purpose,
		l.Provenance.SourceURL, l.Provenance.UserAgent, l.Provenance.Browser, l.Provenance.OS, l.Provenance.ClientIP,
		string(l.Status), l.AssignedAgentID, l.CreatedAt,
	)
	if err != nil {
		return Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return l, nil
}

func (s *PostgresStore) GetLead(ctx context.Context, id string) (Lead, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	l, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, sentinel.ErrNotFound
		}
		return Lead{}, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

func (s *PostgresStore) ListLeads(ctx context.Context, filter ListFilter) ([]Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1`
	args := []any{}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.AssignedAgentID != "" {
		args = append(args, filter.AssignedAgentID)
		query += fmt.Sprintf(" AND assigned_agent_id = $%d", len(args))
	}
	if !filter.CreatedAfter.IsZero() {
		args = append(args, filter.CreatedAfter)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if !filter.CreatedBefore.IsZero() {
		args = append(args, filter.CreatedBefore)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

func (s *PostgresStore) UpdateLeadStatus(ctx context.Context, id string, status Status) bool {
	if !status.IsValid() {
		return false
	}

	tag, err := s.pool.Exec(ctx, `UPDATE leads SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update lead status",
			"lead_id", id,
			"status", status,
			"error", err,
		)
		return false
	}
	return tag.RowsAffected() == 1
}

func scanLead(row pgx.Row) (Lead, error) {
	var l Lead
	var buyerType, budgetRange, timeline, preApproved, status string
	err := row.Scan(
		&l.ID, &l.Name, &l.Phone, &l.Email, &buyerType, &budgetRange, &l.PreferredSuburbs,
		&timeline, &preApproved, &l.Consent.Timestamp, &l.Consent.TextVersion, &l.Consent.Purpose,
		&l.Provenance.SourceURL, &l.Provenance.UserAgent, &l.Provenance.Browser, &l.Provenance.OS, &l.Provenance.ClientIP,
		&status, &l.AssignedAgentID, &l.CreatedAt,
	)
	if err != nil {
		return Lead{}, err
	}
	l.BuyerType = BuyerType(buyerType)
	l.BudgetRange = BudgetRange(budgetRange)
	l.Timeline = Timeline(timeline)
	l.PreApproved = PreApproved(preApproved)
	l.Status = Status(status)
	return l, nil
}
