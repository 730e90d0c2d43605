package serviceImp

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"dispatch/entities"
	"dispatch/pkg/schedule"
	"dispatch/pkg/task/repository"
	svc "dispatch/pkg/task/service"
)

// ConflictChecker is satisfied by *schedule.ConflictValidator.
type ConflictChecker interface {
	Check(ctx context.Context, c schedule.Candidate) error
}

type service struct {
	repo     repository.Repo
	conflict ConflictChecker
	notify   svc.Notifier
	loc      *time.Location
	log      *zap.Logger
}

func New(r repository.Repo, conflict ConflictChecker, notify svc.Notifier, loc *time.Location, log *zap.Logger) svc.Service {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: r, conflict: conflict, notify: notify, loc: loc, log: log.Named("task")}
}

func (s *service) List(ctx context.Context, from, to *time.Time) ([]entities.Task, error) {
	return s.repo.List(ctx, from, to)
}

func (s *service) Get(ctx context.Context, id uint) (*entities.Task, error) {
	t, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svc.ErrNotFound
	}
	return t, err
}

func (s *service) Create(ctx context.Context, actor svc.Actor, in svc.TaskInput) (*entities.Task, error) {
	t := &entities.Task{UserID: actor.UserID}
	if err := s.apply(ctx, t, in, 0); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.log.Info("task created", zap.Uint("id", t.ID), zap.String("by", actor.UserID))
	s.record(ctx, entities.ActionCreated, t, actor)
	return t, nil
}

func (s *service) Update(ctx context.Context, actor svc.Actor, id uint, in svc.TaskInput) (*entities.Task, error) {
	cur, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, cur, in, id); err != nil {
		return nil, err
	}
	cur.Owner = nil
	if err := s.repo.Update(ctx, cur); err != nil {
		return nil, err
	}
	s.log.Info("task updated", zap.Uint("id", id), zap.String("by", actor.UserID))
	s.record(ctx, entities.ActionUpdated, cur, actor)
	return cur, nil
}

func (s *service) Delete(ctx context.Context, actor svc.Actor, id uint) error {
	cur, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return svc.ErrNotFound
		}
		return err
	}
	s.log.Info("task deleted", zap.Uint("id", id), zap.String("by", actor.UserID))
	s.record(ctx, entities.ActionDeleted, cur, actor)
	return nil
}

func (s *service) Stats(ctx context.Context, from, to *time.Time) (*svc.Stats, error) {
	counts, err := s.repo.CountByMethod(ctx, from, to)
	if err != nil {
		return nil, err
	}
	var out svc.Stats
	for stored, n := range counts {
		out.Total += n
		switch entities.NormalizeTransport(stored) {
		case entities.TransportMWork:
			out.MWork += n
		case entities.TransportSeparate:
			out.Separate += n
		case entities.TransportStaffOnly:
			out.StaffOnly += n
		default:
			out.Other += n
		}
	}
	return &out, nil
}

// owned loads a task the actor may mutate: admins any, users their own.
func (s *service) owned(ctx context.Context, actor svc.Actor, id uint) (*entities.Task, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && cur.UserID != actor.UserID {
		return nil, svc.ErrForbidden
	}
	return cur, nil
}

// apply validates in and copies it onto t. Order: part-timer, times,
// transport detail, then the same-day conflict check.
func (s *service) apply(ctx context.Context, t *entities.Task, in svc.TaskInput, excludeID uint) error {
	method := entities.NormalizeTransport(strings.TrimSpace(in.TransportMethod))

	hasPT, err := schedule.ApplyPartTimerRules(method, in.HasPartTimer, in.PartTimerDuration)
	if err != nil {
		return err
	}
	if err := schedule.ValidateTimes(in.StartTime, in.EndTime); err != nil {
		return err
	}
	if err := schedule.ValidateTransportCategories(in.TransportCategories); err != nil {
		return err
	}

	day, err := schedule.ParseDate(in.Date, s.loc)
	if err != nil {
		return err
	}
	start, err := schedule.Combine(day, in.StartTime, s.loc)
	if err != nil {
		return err
	}
	var end *time.Time
	if in.EndTime != "" {
		e, err := schedule.Combine(day, in.EndTime, s.loc)
		if err != nil {
			return err
		}
		e = e.UTC()
		end = &e
	}

	if s.conflict != nil {
		if err := s.conflict.Check(ctx, schedule.Candidate{
			Method:    method,
			Day:       day,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
			ExcludeID: excludeID,
		}); err != nil {
			return err
		}
	}

	t.CustomerName = in.CustomerName
	t.SiteName = in.SiteName
	t.SiteAddress = in.SiteAddress
	t.StartAt = start.UTC()
	t.EndAt = end
	t.GoodsDescription = in.GoodsDescription
	t.IsStaffAccompanied = in.IsStaffAccompanied
	t.HasPartTimer = hasPT
	t.PartTimerCount = in.PartTimerCount
	t.PartTimerDuration = in.PartTimerDuration
	if !hasPT {
		t.PartTimerCount, t.PartTimerDuration = nil, nil
	}
	t.TransportMethod = method
	t.TransportCategories = in.TransportCategories
	t.Remarks = in.Remarks
	return nil
}

func (s *service) record(ctx context.Context, action entities.NotificationAction, t *entities.Task, actor svc.Actor) {
	if s.notify == nil {
		return
	}
	name := actor.FullName
	if name == "" {
		name = actor.UserID
	}
	if err := s.notify.Record(ctx, action, t, name); err != nil {
		s.log.Warn("notification failed", zap.String("action", string(action)), zap.Uint("task_id", t.ID), zap.Error(err))
	}
}
