package service

import (
	"context"
	"errors"

	"dispatch/entities"
)

var (
	ErrNotFound    = errors.New("ユーザーが見つかりません")
	ErrSelfDelete  = errors.New("自分自身は削除できません。")
	ErrInvalidRole = errors.New("role must be admin or user")
	ErrNoUpdates   = errors.New("no fields to update")
)

// ProfileCreateFailure is what provisioning does with the identity it just
// created when the profile write fails.
type ProfileCreateFailure int

const (
	CompensateIdentity ProfileCreateFailure = iota // one delete attempt, outcome logged only
	KeepIdentity
)

// IdentityDeleteFailure is what deletion reports when the profile row is
// gone but the identity could not be removed.
type IdentityDeleteFailure int

const (
	TolerateOrphanIdentity IdentityDeleteFailure = iota // success with a warning
	FailOnOrphanIdentity
)

// A user counts as deleted once the profile row is gone; provisioning on
// the other hand never leaves an identity behind without trying to remove it.
const (
	OnProfileCreateFailure  = CompensateIdentity
	OnIdentityDeleteFailure = TolerateOrphanIdentity
)

type NewUser struct {
	Email    string        `json:"email" validate:"required,email"`
	Password string        `json:"password" validate:"required,min=6"`
	FullName string        `json:"full_name" validate:"required"`
	Role     entities.Role `json:"role" validate:"omitempty,oneof=admin user"`
}

type UserPatch struct {
	FullName *string        `json:"full_name"`
	Email    *string        `json:"email"`
	Role     *entities.Role `json:"role"`
}

type UserService interface {
	List(ctx context.Context) ([]entities.User, error)
	Get(ctx context.Context, id string) (*entities.User, error)
	Create(ctx context.Context, in NewUser) (*entities.User, error)
	Update(ctx context.Context, id string, p UserPatch) (*entities.User, error)
	Delete(ctx context.Context, actorID, id string) error
}
