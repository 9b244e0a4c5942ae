package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Lucas-Nascimentto/projeto-fan/pkg/helpers"
)

// Event is the envelope published to the audit queue for every state
// change of the catalog and the ledger. The worker drains the queue
// into audit_events.
type Event struct {
	Type     string         `json:"type"`
	ActorID  string         `json:"actor_id"`
	EntityID string         `json:"entity_id"`
	Payload  map[string]any `json:"payload,omitempty"`
	At       time.Time      `json:"at"`
}

const (
	EventDonationCreated  = "donation.created"
	EventDonationDeleted  = "donation.deleted"
	EventRequestSubmitted = "request.submitted"
	EventRequestDecided   = "request.decided"
)

// publishEvent is best-effort: a dead broker must never fail the
// operation that triggered the event.
func publishEvent(ctx context.Context, pub *helpers.RabbitPublisher, logger *logrus.Logger, ev Event) {
	if pub == nil {
		return
	}
	ev.At = time.Now().UTC()
	if err := pub.PublishJSON(ctx, ev); err != nil && logger != nil {
		logger.WithError(err).WithField("event", ev.Type).Warn("event publish failed")
	}
}
