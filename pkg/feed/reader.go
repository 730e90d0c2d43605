package feed

import (
	"context"
	"time"
)

// UnreadWindow bounds the unread check before the first MarkRead.
const UnreadWindow = 24 * time.Hour

// Counter counts notification log entries created at or after since.
type Counter interface {
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type Reader struct {
	counter Counter
	store   *LastReadStore
	now     func() time.Time
}

func NewReader(counter Counter, store *LastReadStore) *Reader {
	return &Reader{counter: counter, store: store, now: time.Now}
}

// WithClock replaces the reader's time source.
func (r *Reader) WithClock(now func() time.Time) *Reader {
	r.now = now
	return r
}

// Since is the instant the unread count starts from.
func (r *Reader) Since() (time.Time, error) {
	last, ok, err := r.store.LastRead()
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		return r.now().Add(-UnreadWindow), nil
	}
	return last, nil
}

func (r *Reader) UnreadCount(ctx context.Context) (int64, error) {
	since, err := r.Since()
	if err != nil {
		return 0, err
	}
	return r.counter.CountSince(ctx, since)
}

func (r *Reader) HasUnread(ctx context.Context) (bool, error) {
	n, err := r.UnreadCount(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkRead is local only; the server is never told.
func (r *Reader) MarkRead() error {
	return r.store.SetLastRead(r.now())
}
