package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/ticketwiz/ticketwiz/internal/analysis"
	"github.com/ticketwiz/ticketwiz/internal/domain"
	"github.com/ticketwiz/ticketwiz/internal/events"
	"github.com/ticketwiz/ticketwiz/internal/observability"
	"github.com/ticketwiz/ticketwiz/internal/repository"
	apperrors "github.com/ticketwiz/ticketwiz/pkg/util/errorutil"
)

// TicketService is the intake orchestrator: it runs the analysis pipeline
// over incoming ticket text and commits the annotated record.
type TicketService struct {
	tickets    repository.TicketRepository
	analyzer   analysis.Analyzer
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewTicketService builds the service.
func NewTicketService(tickets repository.TicketRepository, analyzer analysis.Analyzer, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *TicketService {
	return &TicketService{
		tickets:    tickets,
		analyzer:   analyzer,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
	}
}

// IntakeResult is the outcome of one ticket submission.
type IntakeResult struct {
	Ticket   *domain.Ticket
	Analysis domain.Analysis
	Outcome  analysis.Outcome
}

// CreateForUser ingests a ticket on the authenticated path. Organization and
// user ids come from the verified token claims, never from the request body.
func (s *TicketService) CreateForUser(ctx context.Context, orgID, userID int64, title, description string) (*IntakeResult, error) {
	record, outcome, reason := s.annotate(ctx, title, description)

	ticket := &domain.Ticket{
		OrganizationID:      orgID,
		UserID:              &userID,
		Title:               title,
		Description:         description,
		Priority:            record.Priority,
		SentimentScore:      record.SentimentScore,
		AISuggestedSolution: record.SuggestedSolution,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.metrics.RecordTicketCreated(string(events.SourceAuthenticated))
	s.publishCreated(ctx, ticket, events.SourceAuthenticated, outcome, reason)
	return &IntakeResult{Ticket: ticket, Analysis: record, Outcome: outcome}, nil
}

// CreatePublic ingests a ticket without identity proof; the organization id
// comes from the URL path. A supplied contact email is preserved by
// appending a bracketed marker to the stored description. Analysis runs on
// the description as submitted, before the marker is added.
func (s *TicketService) CreatePublic(ctx context.Context, orgID int64, title, description, customerEmail string) (*IntakeResult, error) {
	record, outcome, reason := s.annotate(ctx, title, description)

	stored := description
	if customerEmail != "" {
		stored = fmt.Sprintf("%s [Contact: %s]", description, customerEmail)
	}

	ticket := &domain.Ticket{
		OrganizationID:      orgID,
		Title:               title,
		Description:         stored,
		Priority:            record.Priority,
		SentimentScore:      record.SentimentScore,
		AISuggestedSolution: record.SuggestedSolution,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.metrics.RecordTicketCreated(string(events.SourcePublic))
	s.publishCreated(ctx, ticket, events.SourcePublic, outcome, reason)
	return &IntakeResult{Ticket: ticket, Analysis: record, Outcome: outcome}, nil
}

// ListForOrganization returns the organization's tickets, newest first.
func (s *TicketService) ListForOrganization(ctx context.Context, orgID int64) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return tickets, nil
}

// UpdateStatus transitions a ticket within the caller's organization. Only
// the known lifecycle states are accepted.
func (s *TicketService) UpdateStatus(ctx context.Context, orgID, ticketID int64, status domain.TicketStatus) error {
	if !domain.ValidStatus(status) {
		return apperrors.NewValidationError("status must be open or resolved", map[string]any{"status": string(status)})
	}
	if err := s.tickets.UpdateStatus(ctx, orgID, ticketID, status); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("ticket", nil)
		}
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:           events.EventTicketStatusChanged,
		OrganizationID: orgID,
		TicketID:       ticketID,
		Payload:        events.TicketStatusChangedPayload{NewStatus: status},
	})
	return nil
}

// annotate runs the analysis client and parser. Provider failures are
// absorbed here: the returned record is always valid and the ticket
// submission proceeds regardless.
func (s *TicketService) annotate(ctx context.Context, title, description string) (domain.Analysis, analysis.Outcome, string) {
	start := time.Now()
	raw, err := s.analyzer.Analyze(ctx, title, description)
	s.metrics.RecordAnalysisDuration(time.Since(start))
	if err != nil {
		s.logger.Warn("analysis unavailable", zap.Error(err))
		s.metrics.RecordAnalysisResult("unavailable")
		return domain.DefaultAnalysis(), analysis.OutcomeDefaulted, "provider_unavailable"
	}

	result := analysis.Parse(raw)
	s.metrics.RecordAnalysisResult(string(result.Outcome))
	if result.Outcome == analysis.OutcomeDefaulted {
		s.logger.Warn("analysis response unparseable", zap.Int("raw_length", len(raw)))
		return result.Record, result.Outcome, "malformed_response"
	}
	return result.Record, result.Outcome, ""
}

func (s *TicketService) publishCreated(ctx context.Context, ticket *domain.Ticket, source events.Source, outcome analysis.Outcome, reason string) {
	s.publish(ctx, events.Event{
		Type:           events.EventTicketCreated,
		OrganizationID: ticket.OrganizationID,
		TicketID:       ticket.ID,
		Payload: events.TicketCreatedPayload{
			Source:   source,
			Title:    ticket.Title,
			Priority: ticket.Priority,
		},
	})
	if outcome == analysis.OutcomeDefaulted {
		s.publish(ctx, events.Event{
			Type:           events.EventAnalysisDefaulted,
			OrganizationID: ticket.OrganizationID,
			TicketID:       ticket.ID,
			Payload:        events.AnalysisDefaultedPayload{Reason: reason},
		})
	}
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
