package models

import (
	"context"
	"time"

	"github.com/google/uuid"

	"registrar/internal/reference"
	"registrar/pkg/platform/patch"
)

// Account statuses.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// User is a staff account. Deleted accounts stay in storage with IsDeleted
// set so audit history keeps resolving.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        *string
	PositionID   *int
	RoleID       *int
	Status       string
	IsDeleted    bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u.Status == StatusActive && !u.IsDeleted
}

// UserFilter narrows user listings.
type UserFilter struct {
	Search *string
	Status *string
	RoleID *int
}

// UserView is the public rendering of a user; it never carries the hash.
type UserView struct {
	ID         uuid.UUID           `json:"id"`
	Username   string              `json:"username"`
	Email      string              `json:"email"`
	FirstName  string              `json:"firstName"`
	LastName   string              `json:"lastName"`
	Phone      *string             `json:"phone"`
	PositionID *int                `json:"positionId"`
	RoleID     *int                `json:"roleId"`
	Position   *reference.Position `json:"position"`
	Role       *reference.Role     `json:"role"`
	Status     string              `json:"status"`
	IsActive   bool                `json:"isActive"`
	LastLogin  *time.Time          `json:"lastLogin"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// Directory resolves the role and position lookups of a user.
type Directory interface {
	RoleByID(ctx context.Context, id int) (*reference.Role, error)
	RoleByCode(ctx context.Context, code string) (*reference.Role, error)
	PositionByID(ctx context.Context, id int) (*reference.Position, error)
	PositionByCode(ctx context.Context, code string) (*reference.Position, error)
	ListRoles(ctx context.Context) ([]reference.Role, error)
	ListPositions(ctx context.Context) ([]reference.Position, error)
}

// NewView renders u, embedding its role and position when they resolve.
// A dangling lookup id renders as a nil embed rather than failing.
func NewView(ctx context.Context, dir Directory, u *User) *UserView {
	v := &UserView{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      u.Phone,
		PositionID: u.PositionID,
		RoleID:     u.RoleID,
		Status:     u.Status,
		IsActive:   u.IsActive(),
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	if dir == nil {
		return v
	}
	if u.RoleID != nil {
		if r, err := dir.RoleByID(ctx, *u.RoleID); err == nil {
			v.Role = r
		}
	}
	if u.PositionID != nil {
		if p, err := dir.PositionByID(ctx, *u.PositionID); err == nil {
			v.Position = p
		}
	}
	return v
}

// RoleCode resolves the role code of u, empty when it has none.
func RoleCode(ctx context.Context, dir Directory, u *User) (string, error) {
	if u.RoleID == nil {
		return "", nil
	}
	r, err := dir.RoleByID(ctx, *u.RoleID)
	if err != nil {
		return "", err
	}
	return r.RoleCode, nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username   patch.Field[string] `json:"username"`
	Email      patch.Field[string] `json:"email"`
	Password   patch.Field[string] `json:"password"`
	FirstName  patch.Field[string] `json:"firstName"`
	LastName   patch.Field[string] `json:"lastName"`
	Phone      patch.Field[string] `json:"phone"`
	PositionID patch.Field[int]    `json:"positionId"`
	RoleID     patch.Field[int]    `json:"roleId"`
}

type UpdateProfileRequest struct {
	FirstName patch.Field[string] `json:"firstName"`
	LastName  patch.Field[string] `json:"lastName"`
	Email     patch.Field[string] `json:"email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type RequestResetRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// TokenResult is returned by login and registration.
type TokenResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *UserView `json:"user"`
}

type CSRFToken struct {
	CSRFToken string `json:"csrfToken"`
}
