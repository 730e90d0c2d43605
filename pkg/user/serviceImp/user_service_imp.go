package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"dispatch/entities"
	"dispatch/pkg/identity"
	"dispatch/pkg/user/repository"
	"dispatch/pkg/user/service"
)

// identityTimeout bounds identity calls that must outlive the request.
const identityTimeout = 10 * time.Second

type userSvc struct {
	repo     repository.UserRepository
	idp      identity.Provider
	log      *zap.Logger
	onCreate service.ProfileCreateFailure
	onDelete service.IdentityDeleteFailure
}

type Option func(*userSvc)

func WithPolicies(c service.ProfileCreateFailure, d service.IdentityDeleteFailure) Option {
	return func(s *userSvc) { s.onCreate, s.onDelete = c, d }
}

func New(repo repository.UserRepository, idp identity.Provider, log *zap.Logger, opts ...Option) service.UserService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &userSvc{
		repo:     repo,
		idp:      idp,
		log:      log.Named("user"),
		onCreate: service.OnProfileCreateFailure,
		onDelete: service.OnIdentityDeleteFailure,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *userSvc) List(ctx context.Context) ([]entities.User, error) {
	return s.repo.List(ctx)
}

func (s *userSvc) Get(ctx context.Context, id string) (*entities.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrNotFound
	}
	return u, err
}

// Create provisions the identity first and the profile second. A failed
// profile write triggers exactly one identity delete; the caller always
// sees the profile error, never the rollback outcome.
func (s *userSvc) Create(ctx context.Context, in service.NewUser) (*entities.User, error) {
	if in.Role == "" {
		in.Role = entities.RoleUser
	}
	if !in.Role.Valid() {
		return nil, service.ErrInvalidRole
	}

	id, err := s.idp.CreateUser(ctx, identity.NewUser{
		Email:        in.Email,
		Password:     in.Password,
		EmailConfirm: true,
	})
	if err != nil {
		s.log.Warn("identity create failed", zap.Error(err))
		return nil, err
	}
	s.log.Info("identity created", zap.String("user_id", id.ID))

	email := strings.TrimSpace(in.Email)
	profile := &entities.User{ID: id.ID, FullName: in.FullName, Email: &email, Role: in.Role}
	if err := s.repo.Create(ctx, profile); err != nil {
		s.log.Error("profile create failed", zap.String("user_id", id.ID), zap.Error(err))
		if s.onCreate == service.CompensateIdentity {
			dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), identityTimeout)
			derr := s.idp.DeleteUser(dctx, id.ID)
			cancel()
			if derr != nil {
				s.log.Error("identity rollback failed", zap.String("user_id", id.ID), zap.Error(derr))
			} else {
				s.log.Info("identity rolled back", zap.String("user_id", id.ID))
			}
		}
		return nil, fmt.Errorf("プロフィール作成に失敗しました: %w", err)
	}
	return profile, nil
}

func (s *userSvc) Update(ctx context.Context, id string, p service.UserPatch) (*entities.User, error) {
	fields := map[string]any{}
	if p.FullName != nil {
		fields["full_name"] = *p.FullName
	}
	if p.Email != nil {
		fields["email"] = *p.Email
	}
	if p.Role != nil {
		if !p.Role.Valid() {
			return nil, service.ErrInvalidRole
		}
		fields["role"] = *p.Role
	}
	if len(fields) == 0 {
		return nil, service.ErrNoUpdates
	}
	u, err := s.repo.Update(ctx, id, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrNotFound
	}
	return u, err
}

// Delete removes the profile, then the identity. A profile failure stops
// before the identity is touched.
func (s *userSvc) Delete(ctx context.Context, actorID, id string) error {
	if actorID != "" && actorID == id {
		return service.ErrSelfDelete
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("profile delete failed", zap.String("user_id", id), zap.Error(err))
		return fmt.Errorf("プロフィール削除に失敗しました: %w", err)
	}
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), identityTimeout)
	defer cancel()
	if err := s.idp.DeleteUser(dctx, id); err != nil {
		if s.onDelete == service.FailOnOrphanIdentity {
			return fmt.Errorf("認証ユーザーの削除に失敗しました: %w", err)
		}
		s.log.Warn("identity delete failed, profile already removed", zap.String("user_id", id), zap.Error(err))
	}
	s.log.Info("user deleted", zap.String("user_id", id))
	return nil
}
