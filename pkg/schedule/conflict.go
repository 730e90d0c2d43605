package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"dispatch/entities"
	"dispatch/pkg/schedule/repository"
)

// FetchErrorPolicy decides what a conflict check does when the existing
// tasks cannot be loaded.
type FetchErrorPolicy int

const (
	AllowOnFetchError FetchErrorPolicy = iota
	DenyOnFetchError
)

// OnValidationFetchError keeps scheduling available when the store is not.
const OnValidationFetchError = AllowOnFetchError

var (
	ErrTimeConflict       = errors.New("エムワーク便の予定が重複しています。別便もしくは人員を別で手配してください。")
	ErrConflictCheckFetch = errors.New("予定の重複確認に失敗しました")
)

// Candidate is a task about to be written.
type Candidate struct {
	Method    entities.TransportMethod
	Day       time.Time
	StartTime string // HH:MM
	EndTime   string // HH:MM or ""
	ExcludeID uint   // the task being edited, 0 on create
}

type ConflictValidator struct {
	repo   repository.DayLister
	loc    *time.Location
	policy FetchErrorPolicy
	log    *zap.Logger
}

func NewConflictValidator(repo repository.DayLister, loc *time.Location, log *zap.Logger) *ConflictValidator {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ConflictValidator{repo: repo, loc: loc, policy: OnValidationFetchError, log: log}
}

func (v *ConflictValidator) WithPolicy(p FetchErrorPolicy) *ConflictValidator {
	cp := *v
	cp.policy = p
	return &cp
}

// Check returns ErrTimeConflict when c overlaps another constrained task on
// the same day. Non-constrained methods return nil without touching the store.
func (v *ConflictValidator) Check(ctx context.Context, c Candidate) error {
	if !c.Method.Constrained() {
		return nil
	}

	start, err := Combine(c.Day, c.StartTime, v.loc)
	if err != nil {
		return err
	}
	cand := Interval{Start: start}
	if c.EndTime != "" {
		end, err := Combine(c.Day, c.EndTime, v.loc)
		if err != nil {
			return err
		}
		cand.End = &end
	}

	from, to := DayBounds(c.Day, v.loc)
	existing, err := v.repo.ListConstrainedOnDay(ctx, from, to, c.Method.StoredValues(), c.ExcludeID)
	if err != nil {
		if v.policy == DenyOnFetchError {
			return fmt.Errorf("%w: %v", ErrConflictCheckFetch, err)
		}
		v.log.Warn("conflict check skipped, fetch failed",
			zap.Time("day", from), zap.Uint("exclude_id", c.ExcludeID), zap.Error(err))
		return nil
	}

	for _, t := range existing {
		if Overlaps(cand, Interval{Start: t.StartAt, End: t.EndAt}) {
			v.log.Info("time conflict", zap.Uint("with_task", t.ID), zap.Time("start", start))
			return ErrTimeConflict
		}
	}
	return nil
}
