package service

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/hostcraft/platform-api/internal/core/domain"
	"github.com/hostcraft/platform-api/internal/core/ports"
)

// UserService implements the admin user-management operations. The hierarchy
// check always reloads both actor and target from the store; a stale or
// tampered session claim cannot widen anyone's reach.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, filter ports.ListUsersFilter) (*ports.ListUsersResult, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	filter.Page = page
	filter.Limit = limit

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ListUsersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// ChangeRole assigns a new role to target. The actor must outrank the target
// and may only grant roles strictly below their own.
func (s *UserService) ChangeRole(ctx context.Context, actorID, targetID string, role domain.Role) error {
	if !role.Valid() {
		return domain.ErrInvalidRole
	}

	actor, target, err := s.loadPair(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if !domain.CanManage(actor, target) || !domain.CanAssign(actor, role) {
		return domain.ErrForbidden
	}

	if err := s.repo.UpdateRole(ctx, targetID, role); err != nil {
		return err
	}
	s.logger.Info().Str("actor_id", actorID).Str("target_id", targetID).
		Str("role", string(role)).Msg("user role changed")
	return nil
}

// Ban moves target to banned.
func (s *UserService) Ban(ctx context.Context, actorID, targetID string) error {
	return s.setStatus(ctx, actorID, targetID, domain.UserBanned)
}

// Unban moves target back to active.
func (s *UserService) Unban(ctx context.Context, actorID, targetID string) error {
	return s.setStatus(ctx, actorID, targetID, domain.UserActive)
}

func (s *UserService) setStatus(ctx context.Context, actorID, targetID string, status domain.UserStatus) error {
	actor, target, err := s.loadPair(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if !domain.CanManage(actor, target) {
		return domain.ErrForbidden
	}

	if err := s.repo.UpdateStatus(ctx, targetID, status); err != nil {
		return err
	}
	s.logger.Info().Str("actor_id", actorID).Str("target_id", targetID).
		Str("status", string(status)).Msg("user status changed")
	return nil
}

// Delete removes the target account.
func (s *UserService) Delete(ctx context.Context, actorID, targetID string) error {
	actor, target, err := s.loadPair(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if !domain.CanManage(actor, target) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}
	s.logger.Info().Str("actor_id", actorID).Str("target_id", targetID).Msg("user deleted")
	return nil
}

func (s *UserService) loadPair(ctx context.Context, actorID, targetID string) (actor, target *domain.User, err error) {
	actor, err = s.repo.FindByID(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	target, err = s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, nil, err
	}
	return actor, target, nil
}
