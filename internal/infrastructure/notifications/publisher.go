package notifications

import (
	"context"
	"fmt"
	"html"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/pkg/logger"
)

// Publisher receives committed domain events
type Publisher interface {
	Publish(ctx context.Context, event entities.Event)
}

type sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type presence interface {
	IsOnline(userID uuid.UUID) bool
}

// EmailPublisher mails events that carry a recipient address.
// Sends run in the background; Wait blocks until they finish.
type EmailPublisher struct {
	sender   sender
	timeout  time.Duration
	wg       sync.WaitGroup
	presence presence
	live     map[entities.EventType]bool
}

func NewEmailPublisher(s sender) *EmailPublisher {
	return &EmailPublisher{sender: s, timeout: 30 * time.Second}
}

// SkipWhenOnline stops mail for the given event types while the recipient
// holds a live connection in p, which delivers those events itself.
func (p *EmailPublisher) SkipWhenOnline(online presence, types ...entities.EventType) *EmailPublisher {
	p.presence = online
	p.live = make(map[entities.EventType]bool, len(types))
	for _, t := range types {
		p.live[t] = true
	}
	return p
}

func (p *EmailPublisher) Publish(ctx context.Context, event entities.Event) {
	if p.sender == nil || event.Email == "" {
		return
	}
	if p.presence != nil && p.live[event.Type] && p.presence.IsOnline(event.RecipientID) {
		logger.Debug(ctx, "Recipient online, skipping notification email",
			zap.String("event", string(event.Type)),
			zap.String("recipient_id", event.RecipientID.String()),
		)
		return
	}

	subject := event.Subject
	if subject == "" {
		subject = "CareConnect update"
	}
	body := renderBody(event)
	sendCtx := context.WithoutCancel(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		c, cancel := context.WithTimeout(sendCtx, p.timeout)
		defer cancel()
		if err := p.sender.Send(c, event.Email, subject, body); err != nil {
			logger.Error(c, "Failed to send notification email",
				zap.String("event", string(event.Type)),
				zap.String("recipient_id", event.RecipientID.String()),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until in-flight sends complete
func (p *EmailPublisher) Wait() {
	p.wg.Wait()
}

func renderBody(event entities.Event) string {
	return fmt.Sprintf("<p>%s</p><p><small>%s</small></p>",
		html.EscapeString(event.Summary),
		event.OccurredAt.UTC().Format(time.RFC1123),
	)
}

// Fanout delivers each event to every publisher in order
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, event entities.Event) {
	for _, p := range f {
		if p != nil {
			p.Publish(ctx, event)
		}
	}
}
