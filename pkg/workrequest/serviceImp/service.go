package serviceImp

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"dispatch/entities"
	"dispatch/pkg/workrequest/repository"
	svc "dispatch/pkg/workrequest/service"
)

// TaskFinder is satisfied by the task repository.
type TaskFinder interface {
	FindByID(ctx context.Context, id uint) (*entities.Task, error)
}

// Renderer is satisfied by *document.Renderer.
type Renderer interface {
	Render(w *entities.WorkRequest) ([]byte, error)
}

type service struct {
	repo  repository.Repo
	tasks TaskFinder
	doc   Renderer
	log   *zap.Logger
}

func New(repo repository.Repo, tasks TaskFinder, doc Renderer, log *zap.Logger) svc.Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, tasks: tasks, doc: doc, log: log.Named("workrequest")}
}

func (s *service) Create(ctx context.Context, userID string, in svc.NewRequest) (*entities.WorkRequest, error) {
	if _, err := s.tasks.FindByID(ctx, in.TaskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svc.ErrTaskNotFound
		}
		return nil, err
	}
	w := &entities.WorkRequest{
		TaskID:                in.TaskID,
		UserID:                userID,
		MeetingTime:           in.MeetingTime,
		MeetingPlace:          in.MeetingPlace,
		CustomerContactPerson: in.CustomerContactPerson,
		CustomerPhone:         in.CustomerPhone,
		WorkContent:           in.WorkContent,
		Equipment:             in.Equipment,
		CartCount:             in.CartCount,
		AbacusCount:           in.AbacusCount,
		MaterialLoading:       in.MaterialLoading,
		AdditionalRemarks:     in.AdditionalRemarks,
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	s.log.Info("work request created", zap.Uint("id", w.ID), zap.Uint("task_id", w.TaskID))
	return w, nil
}

func (s *service) LatestForTask(ctx context.Context, taskID uint) (*entities.WorkRequest, error) {
	w, err := s.repo.LatestForTask(ctx, taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svc.ErrNotFound
	}
	return w, err
}

func (s *service) RenderPDF(ctx context.Context, id uint) ([]byte, error) {
	w, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svc.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if w.Task == nil {
		// the task was deleted after the request was written
		return nil, svc.ErrNotFound
	}
	return s.doc.Render(w)
}
