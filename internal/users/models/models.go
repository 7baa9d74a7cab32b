// Package models holds the request shapes of user administration.
package models

import "registrar/pkg/platform/patch"

type CreateUserRequest struct {
	Username   patch.Field[string] `json:"username"`
	Email      patch.Field[string] `json:"email"`
	Password   patch.Field[string] `json:"password"`
	FirstName  patch.Field[string] `json:"firstName"`
	LastName   patch.Field[string] `json:"lastName"`
	Phone      patch.Field[string] `json:"phone"`
	PositionID patch.Field[int]    `json:"positionId"`
	RoleID     patch.Field[int]    `json:"roleId"`
	Status     patch.Field[string] `json:"status"`
}

// UpdateUserRequest applies only the fields that are present. RoleID and
// Status are ignored unless the caller administers users.
type UpdateUserRequest struct {
	Username   patch.Field[string] `json:"username"`
	Email      patch.Field[string] `json:"email"`
	Password   patch.Field[string] `json:"password"`
	FirstName  patch.Field[string] `json:"firstName"`
	LastName   patch.Field[string] `json:"lastName"`
	Phone      patch.Field[string] `json:"phone"`
	PositionID patch.Field[int]    `json:"positionId"`
	RoleID     patch.Field[int]    `json:"roleId"`
	Status     patch.Field[string] `json:"status"`
}
