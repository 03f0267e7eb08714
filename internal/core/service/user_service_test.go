package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hostcraft/platform-api/internal/core/domain"
	"github.com/hostcraft/platform-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Upsert(_ context.Context, u *domain.User) (*domain.User, error) {
	if existing, ok := r.byID[u.ID]; ok {
		existing.Username = u.Username
		existing.Email = u.Email
		existing.AvatarURL = u.AvatarURL
		clone := *existing
		return &clone, nil
	}
	clone := *u
	r.byID[u.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	var matched []*domain.User
	for _, u := range r.byID {
		if f.Role != "" && string(u.Role) != f.Role {
			continue
		}
		if f.Status != "" && string(u.Status) != f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(f.Search)) {
			continue
		}
		clone := *u
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) UpdateStatus(_ context.Context, id string, status domain.UserStatus) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func seedUser(r *stubUserRepo, id string, role domain.Role) *domain.User {
	u := &domain.User{
		ID:        id,
		Username:  id,
		Role:      role,
		Status:    domain.UserActive,
		CreatedAt: time.Now().UTC(),
	}
	r.byID[id] = u
	return u
}

// ---------------------------------------------------------------------------
// ChangeRole tests
// ---------------------------------------------------------------------------

func TestUserService_ChangeRole_Success(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "admin1", domain.RoleAdmin)
	seedUser(repo, "member", domain.RoleUser)
	svc := NewUserService(repo, discardLogger)

	if err := svc.ChangeRole(context.Background(), "admin1", "member", domain.RoleStaff); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.byID["member"].Role != domain.RoleStaff {
		t.Errorf("role = %q, want staff", repo.byID["member"].Role)
	}
}

func TestUserService_ChangeRole_CannotGrantOwnRoleOrAbove(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "admin1", domain.RoleAdmin)
	seedUser(repo, "member", domain.RoleUser)
	svc := NewUserService(repo, discardLogger)

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin} {
		if err := svc.ChangeRole(context.Background(), "admin1", "member", role); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("granting %s: expected ErrForbidden, got %v", role, err)
		}
	}
}

func TestUserService_ChangeRole_ActorMustOutrankTarget(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "staff1", domain.RoleStaff)
	seedUser(repo, "staff2", domain.RoleStaff)
	seedUser(repo, "boss", domain.RoleManager)
	svc := NewUserService(repo, discardLogger)

	// Equal rank: refused.
	if err := svc.ChangeRole(context.Background(), "staff1", "staff2", domain.RoleUser); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("equal rank: expected ErrForbidden, got %v", err)
	}
	// Lower rank acting on higher: refused.
	if err := svc.ChangeRole(context.Background(), "staff1", "boss", domain.RoleUser); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("upward: expected ErrForbidden, got %v", err)
	}
}

func TestUserService_ChangeRole_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "admin1", domain.RoleAdmin)
	seedUser(repo, "member", domain.RoleUser)
	svc := NewUserService(repo, discardLogger)

	if err := svc.ChangeRole(context.Background(), "admin1", "member", domain.Role("owner")); !errors.Is(err, domain.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_ChangeRole_TargetNotFound(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "admin1", domain.RoleAdmin)
	svc := NewUserService(repo, discardLogger)

	if err := svc.ChangeRole(context.Background(), "admin1", "ghost", domain.RoleStaff); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Ban / Unban tests
// ---------------------------------------------------------------------------

func TestUserService_BanUnban_Toggle(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "mgr", domain.RoleManager)
	seedUser(repo, "member", domain.RoleUser)
	svc := NewUserService(repo, discardLogger)

	if err := svc.Ban(context.Background(), "mgr", "member"); err != nil {
		t.Fatalf("ban: %v", err)
	}
	if repo.byID["member"].Status != domain.UserBanned {
		t.Errorf("status = %q, want banned", repo.byID["member"].Status)
	}

	if err := svc.Unban(context.Background(), "mgr", "member"); err != nil {
		t.Fatalf("unban: %v", err)
	}
	if repo.byID["member"].Status != domain.UserActive {
		t.Errorf("status = %q, want active", repo.byID["member"].Status)
	}
}

func TestUserService_Ban_SelfRefused(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "admin1", domain.RoleAdmin)
	svc := NewUserService(repo, discardLogger)

	if err := svc.Ban(context.Background(), "admin1", "admin1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_Ban_StoredRoleWins(t *testing.T) {
	// The service must consult stored roles, not whatever the session claims:
	// a user whose role was demoted since login cannot keep banning people.
	repo := newStubUserRepo()
	seedUser(repo, "demoted", domain.RoleUser)
	seedUser(repo, "member", domain.RoleUser)
	svc := NewUserService(repo, discardLogger)

	if err := svc.Ban(context.Background(), "demoted", "member"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete tests
// ---------------------------------------------------------------------------

func TestUserService_Delete_RemovedFromList(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "admin1", domain.RoleAdmin)
	seedUser(repo, "member", domain.RoleUser)
	svc := NewUserService(repo, discardLogger)

	if err := svc.Delete(context.Background(), "admin1", "member"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	res, err := svc.List(context.Background(), ports.ListUsersFilter{})
	if err != nil {
		t.Fatal(err)
	}
	for _, u := range res.Items {
		if u.ID == "member" {
			t.Error("deleted user still present in list")
		}
	}
	if res.Total != 1 {
		t.Errorf("total = %d, want 1", res.Total)
	}
}

func TestUserService_Delete_Forbidden(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "staff1", domain.RoleStaff)
	seedUser(repo, "admin1", domain.RoleAdmin)
	svc := NewUserService(repo, discardLogger)

	if err := svc.Delete(context.Background(), "staff1", "admin1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}
