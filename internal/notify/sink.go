// Package notify delivers new-lead notifications to assigned agents.
//
// Delivery is best-effort by contract: the persisted lead is the durable
// source of truth, and a failed notification is retried or reconciled
// out-of-band rather than rolling anything back.
package notify

import (
	"context"
	"log/slog"
	"time"
)

// LeadAssigned is the notification payload for one routed lead.
type LeadAssigned struct {
	LeadID           string    `json:"lead_id"`
	LeadName         string    `json:"lead_name"`
	LeadPhone        string    `json:"lead_phone"`
	PreferredSuburbs []string  `json:"preferred_suburbs"`
	AgentID          string    `json:"agent_id"`
	AgentName        string    `json:"agent_name"`
	AgentEmail       string    `json:"agent_email"`
	Reason           string    `json:"reason"`
	AssignedAt       time.Time `json:"assigned_at"`
}

// Sink informs an assigned agent about a new lead.
type Sink interface {
	NotifyAgent(ctx context.Context, event LeadAssigned) error
}

// LogSink writes notifications to the structured log. Used in development and
// as the fallback when no broker is configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) NotifyAgent(ctx context.Context, event LeadAssigned) error {
	s.logger.InfoContext(ctx, "agent notified of new lead",
		"lead_id", event.LeadID,
		"agent_id", event.AgentID,
		"agent_email", event.AgentEmail,
		"reason", event.Reason,
	)
	return nil
}
