package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ticketwiz/ticketwiz/internal/config"
	"github.com/ticketwiz/ticketwiz/internal/events"
)

// NotificationService reacts to intake events: every event is logged, and a
// webhook delivery is stubbed out when an endpoint is configured. The worker
// package decides which events reach it.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotifyConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotifyConfig) *NotificationService {
	return &NotificationService{
		logger: logger,
		cfg:    cfg,
	}
}

// HandleTicketCreated reacts to a new ticket from either intake path.
func (n *NotificationService) HandleTicketCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketCreated",
		zap.Int64("ticket_id", event.TicketID),
		zap.Int64("organization_id", event.OrganizationID),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

// HandleTicketStatusChanged reacts to a lifecycle transition.
func (n *NotificationService) HandleTicketStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketStatusChanged",
		zap.Int64("ticket_id", event.TicketID),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

// HandleAnalysisDefaulted flags a ticket that fell back to the default
// analysis record, so someone triages it manually.
func (n *NotificationService) HandleAnalysisDefaulted(_ context.Context, event events.Event) error {
	n.logger.Warn("AnalysisDefaulted",
		zap.Int64("ticket_id", event.TicketID),
		zap.Int64("organization_id", event.OrganizationID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}
