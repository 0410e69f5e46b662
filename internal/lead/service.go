package lead

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"propworth/internal/agent"
	"propworth/internal/notify"
	"propworth/internal/platform/metrics"
	"propworth/internal/ratelimit"
	dErrors "propworth/pkg/domain-errors"
	"propworth/pkg/platform/middleware/metadata"
)

// OutcomeKind tags how a submission was resolved. Blocked and Completed
// collapse into the same wire shape at the HTTP adapter; the distinction
// lives only in logs and metrics so abusers learn nothing.
type OutcomeKind string

const (
	OutcomeCompleted   OutcomeKind = "completed"
	OutcomeBlocked     OutcomeKind = "blocked"
	OutcomeRateLimited OutcomeKind = "rate_limited"
	OutcomeInvalid     OutcomeKind = "invalid"
	OutcomeNoConsent   OutcomeKind = "no_consent"
)

// Outcome is the resolved result of one submission.
type Outcome struct {
	Kind        OutcomeKind
	Lead        *Lead
	FieldErrors FieldErrors
	// RetryAfter is seconds until the rate-limit window resets; set only for
	// OutcomeRateLimited.
	RetryAfter int
	RateLimit  *ratelimit.Result
}

// Service orchestrates the intake pipeline:
// rate limit → honeypot → validation → consent → assignment → persistence →
// notification, short-circuiting on the first failure. Persistence failure is
// the only fatal error; notification failure is logged and absorbed.
type Service struct {
	limiter   *ratelimit.Limiter
	validator *Validator
	assigner  *agent.Assigner
	store     Store
	sink      notify.Sink

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(
	limiter *ratelimit.Limiter,
	validator *Validator,
	assigner *agent.Assigner,
	store Store,
	sink notify.Sink,
	opts ...Option,
) *Service {
	s := &Service{
		limiter:   limiter,
		validator: validator,
		assigner:  assigner,
		store:     store,
		sink:      sink,
		logger:    slog.Default(),
		tracer:    otel.Tracer("propworth/lead"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit runs one submission through the pipeline. The returned error is
// non-nil only for fatal dependency failures (the lead store); every policy
// rejection is expressed as an Outcome.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "lead.submit")
	defer span.End()

	clientIP := metadata.GetClientIP(ctx)

	rl, err := s.limiter.Check(ctx, clientIP)
	if err != nil {
		// Fail open: a broken limiter must not block real leads.
		s.logger.ErrorContext(ctx, "rate limit check failed", "error", err)
	} else if !rl.Allowed {
		span.SetAttributes(attribute.String("lead.outcome", string(OutcomeRateLimited)))
		if s.metrics != nil {
			s.metrics.RateLimited.Inc()
		}
		s.logger.InfoContext(ctx, "submission rate limited",
			"client_ip", clientIP,
			"retry_after", rl.RetryAfter,
		)
		return &Outcome{Kind: OutcomeRateLimited, RetryAfter: rl.RetryAfter, RateLimit: rl}, nil
	}

	if s.validator.HoneypotTripped(sub) {
		// Respond as if the submission succeeded so bots cannot detect the
		// trap; no record is created and no agent is notified.
		span.SetAttributes(attribute.String("lead.outcome", string(OutcomeBlocked)))
		if s.metrics != nil {
			s.metrics.LeadsBlocked.Inc()
		}
		s.logger.InfoContext(ctx, "honeypot tripped, submission discarded",
			"client_ip", clientIP,
			"source_url", sub.SourceURL,
		)
		return &Outcome{Kind: OutcomeBlocked}, nil
	}

	validated, fieldErrs := s.validator.Validate(sub)
	if fieldErrs != nil {
		span.SetAttributes(attribute.String("lead.outcome", string(OutcomeInvalid)))
		if s.metrics != nil {
			s.metrics.ValidationFailures.Inc()
		}
		return &Outcome{Kind: OutcomeInvalid, FieldErrors: fieldErrs}, nil
	}

	if !validated.ConsentGiven {
		span.SetAttributes(attribute.String("lead.outcome", string(OutcomeNoConsent)))
		if s.metrics != nil {
			s.metrics.ValidationFailures.Inc()
		}
		return &Outcome{Kind: OutcomeNoConsent}, nil
	}

	// Assignment never fails; nil means "no agent anywhere" and the lead is
	// persisted unassigned.
	assignment := s.assigner.Assign(validated.PreferredSuburbs)
	assignedAgentID := ""
	if assignment != nil {
		assignedAgentID = assignment.Agent.ID
		if s.metrics != nil {
			s.metrics.Assignments.WithLabelValues(string(assignment.Reason)).Inc()
		}
	}

	prov := NewProvenance(sub.SourceURL, metadata.GetUserAgent(ctx), clientIP)

	created, err := s.store.CreateLead(ctx, validated, prov, assignedAgentID)
	if err != nil {
		span.SetAttributes(attribute.String("lead.outcome", "store_failure"))
		// Log enough to diagnose without the raw PII.
		s.logger.ErrorContext(ctx, "failed to persist lead",
			"client_ip", clientIP,
			"assigned_agent_id", assignedAgentID,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store lead")
	}
	if s.metrics != nil {
		s.metrics.LeadsCreated.Inc()
	}

	if assignment != nil {
		// Best effort: the persisted lead is the source of truth and a failed
		// notification is reconciled out-of-band, never rolled back.
		if err := s.sink.NotifyAgent(ctx, notify.LeadAssigned{
			LeadID:           created.ID,
			LeadName:         created.Name,
			LeadPhone:        created.Phone,
			PreferredSuburbs: created.PreferredSuburbs,
			AgentID:          assignment.Agent.ID,
			AgentName:        assignment.Agent.Name,
			AgentEmail:       assignment.Agent.Email,
			Reason:           string(assignment.Reason),
			AssignedAt:       created.CreatedAt,
		}); err != nil {
			if s.metrics != nil {
				s.metrics.NotificationFailures.Inc()
			}
			s.logger.ErrorContext(ctx, "failed to notify assigned agent",
				"lead_id", created.ID,
				"agent_id", assignment.Agent.ID,
				"error", err,
			)
		}
	}

	span.SetAttributes(
		attribute.String("lead.outcome", string(OutcomeCompleted)),
		attribute.Bool("lead.assigned", assignment != nil),
	)
	s.logger.InfoContext(ctx, "lead created",
		"lead_id", created.ID,
		"assigned_agent_id", assignedAgentID,
		"suburbs", created.PreferredSuburbs,
	)
	return &Outcome{Kind: OutcomeCompleted, Lead: &created}, nil
}
