package domain

import (
	"errors"
	"time"
)

// Role is the position of a user in the staff hierarchy. Roles form a total
// order; every management decision reduces to comparing two levels.
type Role string

const (
	RoleUser       Role = "user"
	RoleStaff      Role = "staff"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// roleLevels encodes the total order user < staff < manager < admin < super_admin.
var roleLevels = map[Role]int{
	RoleUser:       0,
	RoleStaff:      1,
	RoleManager:    2,
	RoleAdmin:      3,
	RoleSuperAdmin: 4,
}

// Level returns the numeric rank of the role. Unknown roles rank below every
// known role so a corrupted record can never manage anyone.
func (r Role) Level() int {
	lvl, ok := roleLevels[r]
	if !ok {
		return -1
	}
	return lvl
}

// Valid reports whether r is one of the five known roles.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// UserStatus is the account state. active ⇄ banned, nothing in between.
type UserStatus string

const (
	UserActive UserStatus = "active"
	UserBanned UserStatus = "banned"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserBanned     = errors.New("user is banned")
	ErrForbidden      = errors.New("access forbidden")
	ErrInvalidRole    = errors.New("invalid role")
	ErrInvalidSession = errors.New("invalid session")
)

// User models an authenticated actor. Identity fields (username, email,
// avatar) mirror the OAuth provider; role and status are owned locally.
type User struct {
	ID        string     `json:"id" bson:"_id"`
	Username  string     `json:"username" bson:"username"`
	Email     string     `json:"email,omitempty" bson:"email,omitempty"`
	AvatarURL string     `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	Role      Role       `json:"role" bson:"role"`
	Status    UserStatus `json:"status" bson:"status"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
}

// Banned reports whether the account is banned.
func (u *User) Banned() bool {
	return u.Status == UserBanned
}

// CanManage reports whether actor may edit, ban, or delete target.
// It holds iff the actor strictly outranks the target and is not the target
// themselves. Equal ranks never manage each other.
func CanManage(actor, target *User) bool {
	if actor == nil || target == nil {
		return false
	}
	return actor.Role.Level() > target.Role.Level() && actor.ID != target.ID
}

// CanAssign reports whether actor may grant role to someone. An actor can
// only hand out roles strictly below their own.
func CanAssign(actor *User, role Role) bool {
	if actor == nil || !role.Valid() {
		return false
	}
	return role.Level() < actor.Role.Level()
}
