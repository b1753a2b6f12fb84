package user

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrUserIsNotConstructed is returned when using an improperly initialized User.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

// Role identifies what a user is allowed to do in the marketplace.
type Role string

const (
	// RoleClient places orders and receives their lifecycle notifications.
	RoleClient Role = "client"
	// RoleShopOwner manages a shop and drives its orders through preparation.
	RoleShopOwner Role = "shop_owner"
	// RoleCourier delivers orders; eligible for assignment only while active.
	RoleCourier Role = "delivery"
	// RoleAdmin can perform any operation.
	RoleAdmin Role = "admin"
)

// Validate checks that the role is one of the known values.
func (r Role) Validate() error {
	switch r {
	case RoleClient, RoleShopOwner, RoleCourier, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}

// Principal is the authenticated actor performing an operation.
// It is produced by the authentication layer and passed into every command
// and query; the core trusts it and applies its own authorization predicates.
type Principal struct {
	ID   kernel.UUID
	Role Role
}

// Validate checks that the principal carries a valid identity and role.
func (p Principal) Validate() error {
	if err := p.ID.Validate(); err != nil {
		return err
	}

	return p.Role.Validate()
}

// IsAdmin reports whether the principal has the administrator role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsCourier reports whether the principal has the courier role.
func (p Principal) IsCourier() bool {
	return p.Role == RoleCourier
}

// User represents a marketplace account: client, shop owner, courier, or admin.
// It doubles as the identity store record the REST and realtime layers validate
// bearer tokens against.
//
// Invariants:
//   - id is a valid UUID and name is non-empty
//   - role is one of the known roles
//   - token, when present, is the unique bearer credential for the account
type User struct {
	id     kernel.UUID
	name   string
	email  string
	role   Role
	active bool
	token  string

	guard guard.ConstructorGuard
}

// NewUser creates a validated User.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: display name (must be non-empty)
//   - email: contact address, not validated beyond presence of the field
//   - role: one of the known roles
//   - active: whether the account may act (couriers must be active to deliver)
//   - token: bearer credential, may be empty for accounts without API access
func NewUser(id kernel.UUID, name, email string, role Role, active bool, token string) (*User, error) {
	u := &User{
		email:  email,
		active: active,
		token:  token,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser reconstructs a User from persistence without re-running creation
// side effects. The same invariants apply.
func RestoreUser(id kernel.UUID, name, email string, role Role, active bool, token string) (*User, error) {
	return NewUser(id, name, email, role, active, token)
}

// Validate checks that the User was created through a constructor.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}

	return u.guard.Validate(ErrUserIsNotConstructed)
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the user's display name.
func (u *User) Name() string {
	return u.name
}

// Email returns the user's contact address.
func (u *User) Email() string {
	return u.email
}

// Role returns the user's role.
func (u *User) Role() Role {
	return u.role
}

// Active reports whether the account may act.
func (u *User) Active() bool {
	return u.active
}

// Token returns the bearer credential for the account, or empty.
func (u *User) Token() string {
	return u.token
}

// Principal returns the Principal identity of this user.
func (u *User) Principal() Principal {
	return Principal{ID: u.id, Role: u.role}
}

// IsActiveCourier reports whether the user may be assigned deliveries:
// courier role and currently active.
func (u *User) IsActiveCourier() bool {
	return u.role == RoleCourier && u.active
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
