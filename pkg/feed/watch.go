package feed

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	UnreadInterval  = 30 * time.Second
	SessionInterval = 5 * time.Minute
)

// SessionChecker reports whether the stored credentials are still accepted.
type SessionChecker interface {
	CheckSession(ctx context.Context) error
}

type WatchConfig struct {
	UnreadEvery  time.Duration
	SessionEvery time.Duration
	// OnUnread is called after every successful poll.
	OnUnread func(unread bool)
	// OnSessionInvalid is called when a session check fails.
	OnSessionInvalid func(err error)
}

// Watch polls unread state and session validity on fixed intervals until
// ctx is done. Failures are logged and the next tick runs as usual.
func Watch(ctx context.Context, r *Reader, sess SessionChecker, cfg WatchConfig, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.UnreadEvery <= 0 {
		cfg.UnreadEvery = UnreadInterval
	}
	if cfg.SessionEvery <= 0 {
		cfg.SessionEvery = SessionInterval
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		poll := func() {
			unread, err := r.HasUnread(gctx)
			if err != nil {
				log.Warn("unread poll failed", zap.Error(err))
				return
			}
			if cfg.OnUnread != nil {
				cfg.OnUnread(unread)
			}
		}
		poll()
		return every(gctx, cfg.UnreadEvery, poll)
	})
	if sess != nil {
		g.Go(func() error {
			return every(gctx, cfg.SessionEvery, func() {
				if err := sess.CheckSession(gctx); err != nil {
					log.Warn("session check failed", zap.Error(err))
					if cfg.OnSessionInvalid != nil {
						cfg.OnSessionInvalid(err)
					}
				}
			})
		})
	}
	return g.Wait()
}

func every(ctx context.Context, d time.Duration, fn func()) error {
	t := time.NewTicker(d)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			fn()
		}
	}
}
