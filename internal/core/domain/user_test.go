package domain

import "testing"

var allRoles = []Role{RoleUser, RoleStaff, RoleManager, RoleAdmin, RoleSuperAdmin}

// Exhaustive 5×5 matrix: management holds iff the actor strictly outranks
// the target.
func TestCanManage_Matrix(t *testing.T) {
	for _, actorRole := range allRoles {
		for _, targetRole := range allRoles {
			actor := &User{ID: "actor", Role: actorRole}
			target := &User{ID: "target", Role: targetRole}

			want := actorRole.Level() > targetRole.Level()
			if got := CanManage(actor, target); got != want {
				t.Errorf("CanManage(%s, %s) = %v, want %v", actorRole, targetRole, got, want)
			}
		}
	}
}

func TestCanManage_NeverSelf(t *testing.T) {
	for _, role := range allRoles {
		u := &User{ID: "u1", Role: role}
		if CanManage(u, u) {
			t.Errorf("%s must not manage themselves", role)
		}
	}
	// Same id, different role records (stale session): still self.
	a := &User{ID: "u1", Role: RoleSuperAdmin}
	b := &User{ID: "u1", Role: RoleUser}
	if CanManage(a, b) {
		t.Error("actor must not manage a record with their own id")
	}
}

func TestCanManage_NilSafe(t *testing.T) {
	u := &User{ID: "u1", Role: RoleAdmin}
	if CanManage(nil, u) || CanManage(u, nil) || CanManage(nil, nil) {
		t.Error("nil participants must never be manageable")
	}
}

func TestCanManage_UnknownRoleOutranksNobody(t *testing.T) {
	actor := &User{ID: "a", Role: Role("owner")}
	target := &User{ID: "b", Role: RoleUser}
	if CanManage(actor, target) {
		t.Error("unknown role must not manage anyone")
	}
	if !CanManage(target, actor) {
		t.Error("known roles must outrank unknown ones")
	}
}

func TestCanAssign_StrictlyBelowActor(t *testing.T) {
	for _, actorRole := range allRoles {
		actor := &User{ID: "a", Role: actorRole}
		for _, granted := range allRoles {
			want := granted.Level() < actorRole.Level()
			if got := CanAssign(actor, granted); got != want {
				t.Errorf("CanAssign(%s, %s) = %v, want %v", actorRole, granted, got, want)
			}
		}
	}
}

func TestCanAssign_RejectsUnknownRole(t *testing.T) {
	actor := &User{ID: "a", Role: RoleSuperAdmin}
	if CanAssign(actor, Role("root")) {
		t.Error("unknown roles must never be assignable")
	}
}

func TestRole_Ordering(t *testing.T) {
	for i := 1; i < len(allRoles); i++ {
		if allRoles[i-1].Level() >= allRoles[i].Level() {
			t.Errorf("expected %s < %s", allRoles[i-1], allRoles[i])
		}
	}
}
