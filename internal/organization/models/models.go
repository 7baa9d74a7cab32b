// Package models holds organizations and the records they own: officials
// and constitution versions.
package models

import (
	"time"

	"github.com/google/uuid"

	"registrar/internal/reference"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/patch"
)

const (
	StatusActive       = "active"
	StatusSuspended    = "suspended"
	StatusDeregistered = "deregistered"
)

var Statuses = []string{StatusActive, StatusSuspended, StatusDeregistered}

var ConstitutionStatuses = []string{"draft", "pending", "approved", "rejected"}

// Organization is a registered union or employers' body. IsCompliant and
// LastComplianceCheck are a cache maintained by compliance writes; they are
// never accepted from clients.
type Organization struct {
	ID                  uuid.UUID   `json:"id"`
	RegistrationNumber  string      `json:"registrationNumber"`
	OrganizationName    string      `json:"organizationName"`
	OrganizationTypeID  *int        `json:"organizationTypeId"`
	RegistrationDate    dates.Date  `json:"registrationDate"`
	ExpiryDate          *dates.Date `json:"expiryDate"`
	Status              string      `json:"status"`
	Address             *string     `json:"address"`
	DistrictID          *int        `json:"districtId"`
	ContactPerson       *string     `json:"contactPerson"`
	ContactEmail        *string     `json:"contactEmail"`
	ContactPhone        *string     `json:"contactPhone"`
	Website             *string     `json:"website"`
	MembershipCount     *int        `json:"membershipCount"`
	IsCompliant         bool        `json:"isCompliant"`
	LastComplianceCheck *dates.Date `json:"lastComplianceCheck"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

// Summary is the embed other aggregates render for a referenced organization.
type Summary struct {
	ID                 uuid.UUID `json:"id"`
	RegistrationNumber string    `json:"registrationNumber"`
	OrganizationName   string    `json:"organizationName"`
}

func (o *Organization) Summary() *Summary {
	return &Summary{ID: o.ID, RegistrationNumber: o.RegistrationNumber, OrganizationName: o.OrganizationName}
}

// Detail is the single-organization rendering.
type Detail struct {
	*Organization
	OrganizationType *reference.LookupType `json:"organizationType"`
	District         *reference.District   `json:"district"`
	Officials        []Official            `json:"officials"`
	Constitutions    []Constitution        `json:"constitutions"`
}

type Official struct {
	ID             uuid.UUID   `json:"id"`
	OrganizationID uuid.UUID   `json:"organizationId"`
	Position       string      `json:"position"`
	FirstName      string      `json:"firstName"`
	LastName       string      `json:"lastName"`
	Email          *string     `json:"email"`
	Phone          *string     `json:"phone"`
	StartDate      dates.Date  `json:"startDate"`
	EndDate        *dates.Date `json:"endDate"`
	IsCurrent      bool        `json:"isCurrent"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

type Constitution struct {
	ID             uuid.UUID   `json:"id"`
	OrganizationID uuid.UUID   `json:"organizationId"`
	VersionNumber  int         `json:"versionNumber"`
	EffectiveDate  dates.Date  `json:"effectiveDate"`
	ApprovalDate   *dates.Date `json:"approvalDate"`
	ApprovedBy     *uuid.UUID  `json:"approvedBy"`
	DocumentPath   *string     `json:"documentPath"`
	Status         string      `json:"status"`
	Notes          *string     `json:"notes"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// Filter narrows organization listings. DistrictIn restricts to a set of
// districts when non-nil; an empty non-nil slice matches nothing.
type Filter struct {
	Search      *string
	Status      *string
	TypeID      *int
	DistrictID  *int
	DistrictIn  []int
	IsCompliant *bool
}

// OrganizationRequest is the create and update body. Dates arrive as strings
// so parse failures can name the field.
type OrganizationRequest struct {
	RegistrationNumber patch.Field[string] `json:"registrationNumber"`
	OrganizationName   patch.Field[string] `json:"organizationName"`
	OrganizationTypeID patch.Field[int]    `json:"organizationTypeId"`
	RegistrationDate   patch.Field[string] `json:"registrationDate"`
	ExpiryDate         patch.Field[string] `json:"expiryDate"`
	Status             patch.Field[string] `json:"status"`
	Address            patch.Field[string] `json:"address"`
	DistrictID         patch.Field[int]    `json:"districtId"`
	ContactPerson      patch.Field[string] `json:"contactPerson"`
	ContactEmail       patch.Field[string] `json:"contactEmail"`
	ContactPhone       patch.Field[string] `json:"contactPhone"`
	Website            patch.Field[string] `json:"website"`
	MembershipCount    patch.Field[int]    `json:"membershipCount"`
}

type OfficialRequest struct {
	Position  patch.Field[string] `json:"position"`
	FirstName patch.Field[string] `json:"firstName"`
	LastName  patch.Field[string] `json:"lastName"`
	Email     patch.Field[string] `json:"email"`
	Phone     patch.Field[string] `json:"phone"`
	StartDate patch.Field[string] `json:"startDate"`
	EndDate   patch.Field[string] `json:"endDate"`
	IsCurrent patch.Field[bool]   `json:"isCurrent"`
}

type ConstitutionRequest struct {
	VersionNumber patch.Field[int]    `json:"versionNumber"`
	EffectiveDate patch.Field[string] `json:"effectiveDate"`
	ApprovalDate  patch.Field[string] `json:"approvalDate"`
	ApprovedBy    patch.Field[string] `json:"approvedBy"`
	DocumentPath  patch.Field[string] `json:"documentPath"`
	Status        patch.Field[string] `json:"status"`
	Notes         patch.Field[string] `json:"notes"`
}
