package worker

import (
	"github.com/ticketwiz/ticketwiz/internal/events"
	"github.com/ticketwiz/ticketwiz/internal/service"
)

// StartNotificationWorker binds the intake event stream to the notification
// service. Subscription order does not matter; the dispatcher delivers
// synchronously on publish.
func StartNotificationWorker(dispatcher events.Dispatcher, notifications *service.NotificationService) {
	if dispatcher == nil || notifications == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, notifications.HandleTicketCreated)
	dispatcher.Subscribe(events.EventTicketStatusChanged, notifications.HandleTicketStatusChanged)
	dispatcher.Subscribe(events.EventAnalysisDefaulted, notifications.HandleAnalysisDefaulted)
}
