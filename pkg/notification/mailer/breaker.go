package mailer

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

type breakerSender struct {
	next Sender
	cb   *gobreaker.CircuitBreaker
}

// WithBreaker stops calling a provider that keeps failing, so task writes
// are not slowed down by mail timeouts.
func WithBreaker(next Sender, log *zap.Logger) Sender {
	if log == nil {
		log = zap.NewNop()
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "mailer",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("breaker state", zap.String("name", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
	return &breakerSender{next: next, cb: cb}
}

func (b *breakerSender) Send(ctx context.Context, m Message) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.next.Send(ctx, m)
	})
	return err
}

// ErrCircuitOpen is reported by Healthy while the breaker rejects sends.
var ErrCircuitOpen = errors.New("mailer: circuit open")

// Healthy reports whether s is accepting sends. Senders without a breaker
// are always healthy.
func Healthy(_ context.Context, s Sender) error {
	b, ok := s.(*breakerSender)
	if !ok {
		return nil
	}
	if b.cb.State() == gobreaker.StateOpen {
		return ErrCircuitOpen
	}
	return nil
}
