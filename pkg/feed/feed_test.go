package feed

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeCounter struct {
	mu    sync.Mutex
	n     int64
	err   error
	since []time.Time
}

func (f *fakeCounter) CountSince(_ context.Context, since time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.since = append(f.since, since)
	return f.n, f.err
}

func newStore(t *testing.T) *LastReadStore {
	return NewLastReadStore(filepath.Join(t.TempDir(), "state", "client.json"))
}

func TestHasUnread_FirstUseLooksBack24h(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	c := &fakeCounter{n: 1}
	r := NewReader(c, newStore(t)).WithClock(func() time.Time { return now })

	unread, err := r.HasUnread(context.Background())
	require.NoError(t, err)
	assert.True(t, unread)
	require.Len(t, c.since, 1)
	assert.Equal(t, now.Add(-24*time.Hour), c.since[0])
}

func TestHasUnread_AfterMarkRead(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	c := &fakeCounter{}
	store := newStore(t)
	r := NewReader(c, store).WithClock(func() time.Time { return now })

	require.NoError(t, r.MarkRead())
	unread, err := r.HasUnread(context.Background())
	require.NoError(t, err)
	assert.False(t, unread)
	assert.True(t, c.since[0].Equal(now))

	// a second reader over the same file sees the same instant
	again, ok, err := NewLastReadStore(store.path).LastRead()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, again.Equal(now))
}

func TestHasUnread_CounterError(t *testing.T) {
	r := NewReader(&fakeCounter{err: errors.New("offline")}, newStore(t))
	_, err := r.HasUnread(context.Background())
	assert.EqualError(t, err, "offline")
}

func TestTheme(t *testing.T) {
	s := newStore(t)
	th, err := s.Theme()
	require.NoError(t, err)
	assert.Equal(t, "system", th)

	require.NoError(t, s.SetTheme("dark"))
	require.NoError(t, s.SetLastRead(time.Now()))
	th, err = s.Theme()
	require.NoError(t, err)
	assert.Equal(t, "dark", th, "keys are independent")

	assert.ErrorIs(t, s.SetTheme("neon"), ErrUnknownTheme)
}

type flakySession struct{ calls atomic.Int32 }

func (f *flakySession) CheckSession(context.Context) error {
	f.calls.Add(1)
	return errors.New("expired")
}

func TestWatch_KeepsPollingThroughErrorsAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := &fakeCounter{err: errors.New("offline")}
	sess := &flakySession{}
	var invalid atomic.Int32

	r := NewReader(c, newStore(t))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, r, sess, WatchConfig{
			UnreadEvery:      5 * time.Millisecond,
			SessionEvery:     5 * time.Millisecond,
			OnSessionInvalid: func(error) { invalid.Add(1) },
		}, nil)
	}()

	assert.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return len(c.since) >= 3 && sess.calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
	assert.GreaterOrEqual(t, invalid.Load(), int32(3))
}

func TestWatch_ReportsUnread(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := &fakeCounter{n: 2}
	r := NewReader(c, newStore(t))
	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan bool, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, r, nil, WatchConfig{
			UnreadEvery: time.Hour,
			OnUnread: func(u bool) {
				select {
				case got <- u:
				default:
				}
			},
		}, nil)
	}()

	assert.True(t, <-got, "first poll runs immediately")
	cancel()
	require.NoError(t, <-done)
}
