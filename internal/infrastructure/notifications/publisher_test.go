package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careconnect.backend/internal/domain/entities"
)

type senderStub struct {
	mu   sync.Mutex
	sent []string
	body string
	err  error
}

func (s *senderStub) Send(_ context.Context, to, _, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, to)
	s.body = body
	return s.err
}

type recorder struct{ events []entities.Event }

func (r *recorder) Publish(_ context.Context, e entities.Event) { r.events = append(r.events, e) }

func TestEmailPublisher_SendsToEventEmail(t *testing.T) {
	s := &senderStub{}
	p := NewEmailPublisher(s)

	p.Publish(context.Background(), entities.Event{
		Type:        entities.EventBookingUpdated,
		RecipientID: uuid.New(),
		Email:       "asha@example.com",
		Summary:     "Booking <accepted>",
		OccurredAt:  time.Now(),
	})
	p.Publish(context.Background(), entities.Event{Type: entities.EventBookingUpdated})
	p.Wait()

	require.Equal(t, []string{"asha@example.com"}, s.sent)
	assert.Contains(t, s.body, "Booking &lt;accepted&gt;")
}

func TestEmailPublisher_SurvivesSendFailureAndCancelledCaller(t *testing.T) {
	s := &senderStub{err: errors.New("smtp down")}
	p := NewEmailPublisher(s)

	ctx, cancel := context.WithCancel(context.Background())
	p.Publish(ctx, entities.Event{Email: "a@b.c", Summary: "x"})
	cancel()
	p.Wait()

	assert.Len(t, s.sent, 1)
}

type onlineSet map[uuid.UUID]bool

func (s onlineSet) IsOnline(id uuid.UUID) bool { return s[id] }

func TestEmailPublisher_SkipsLiveEventsForOnlineRecipient(t *testing.T) {
	s := &senderStub{}
	online, offline := uuid.New(), uuid.New()
	p := NewEmailPublisher(s).SkipWhenOnline(onlineSet{online: true}, entities.EventVerificationUpdated)

	p.Publish(context.Background(), entities.Event{Type: entities.EventVerificationUpdated, RecipientID: online, Email: "online@example.com"})
	p.Publish(context.Background(), entities.Event{Type: entities.EventVerificationUpdated, RecipientID: offline, Email: "offline@example.com"})
	p.Publish(context.Background(), entities.Event{Type: entities.EventBookingUpdated, RecipientID: online, Email: "booking@example.com"})
	p.Wait()

	assert.ElementsMatch(t, []string{"offline@example.com", "booking@example.com"}, s.sent)
}

func TestEmailPublisher_NilSender(t *testing.T) {
	p := NewEmailPublisher(nil)
	p.Publish(context.Background(), entities.Event{Email: "a@b.c"})
	p.Wait()
}

func TestFanout_DeliversToAll(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	f := Fanout{a, nil, b}

	f.Publish(context.Background(), entities.Event{Type: entities.EventVerificationUpdated})

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}
