package serviceImp

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"dispatch/entities"
	"dispatch/pkg/notification/mailer"
	"dispatch/pkg/notification/repository"
	svc "dispatch/pkg/notification/service"
	"dispatch/pkg/schedule"
)

const sendTimeout = 10 * time.Second

type service struct {
	repo       repository.Repo
	sender     mailer.Sender
	recipients []string
	loc        *time.Location
	now        func() time.Time
	log        *zap.Logger
}

type Option func(*service)

func WithClock(now func() time.Time) Option { return func(s *service) { s.now = now } }

func New(repo repository.Repo, sender mailer.Sender, recipients []string, loc *time.Location, log *zap.Logger, opts ...Option) svc.Service {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &service{repo: repo, sender: sender, recipients: recipients, loc: loc, now: time.Now, log: log.Named("notify")}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) Record(ctx context.Context, action entities.NotificationAction, t *entities.Task, actorName string) error {
	snap := entities.SnapshotOf(t)
	item := &entities.NotificationItem{
		ActionType: action,
		TaskData:   datatypes.NewJSONType(snap),
		UserName:   actorName,
	}
	if t.ID != 0 {
		id := t.ID
		item.TaskID = &id
	}
	if err := s.repo.Append(context.WithoutCancel(ctx), item); err != nil {
		return err
	}

	if s.sender == nil || len(s.recipients) == 0 {
		return nil
	}
	html, err := renderHTML(action, snap, actorName, s.loc)
	if err != nil {
		return err
	}

	// the mail outlives a client that hangs up after the write succeeded
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
	defer cancel()
	sendErr := s.sender.Send(sendCtx, mailer.Message{
		To:      s.recipients,
		Subject: subject(action, snap),
		HTML:    html,
	})

	var sentAt *time.Time
	var errMsg *string
	if sendErr != nil {
		m := sendErr.Error()
		errMsg = &m
	} else {
		now := s.now()
		sentAt = &now
	}
	if err := s.repo.MarkOutcome(context.WithoutCancel(ctx), item.ID, sentAt, errMsg); err != nil {
		s.log.Warn("mark outcome", zap.Uint("id", item.ID), zap.Error(err))
	}
	if sendErr != nil {
		return sendErr
	}
	s.log.Info("notification sent", zap.Uint("id", item.ID), zap.String("action", string(action)), zap.Int("recipients", len(s.recipients)))
	return nil
}

func (s *service) List(ctx context.Context, limit int) ([]entities.NotificationItem, error) {
	if limit <= 0 {
		limit = svc.DefaultLimit
	}
	if limit > svc.MaxLimit {
		limit = svc.MaxLimit
	}
	return s.repo.Latest(ctx, limit)
}

func (s *service) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return s.repo.CountSince(ctx, since)
}

// Stats runs the three counts concurrently.
func (s *service) Stats(ctx context.Context) (*svc.Stats, error) {
	now := s.now()
	todayStart, _ := schedule.DayBounds(now, s.loc)

	var out svc.Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Total, err = s.repo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Today, err = s.repo.CountSince(gctx, todayStart)
		return err
	})
	g.Go(func() (err error) {
		out.Unread, err = s.repo.CountSince(gctx, now.Add(-svc.UnreadWindow))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
