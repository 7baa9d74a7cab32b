// Package models holds training workshops and their participants.
package models

import (
	"time"

	"github.com/google/uuid"

	"registrar/internal/reference"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/patch"
)

var (
	Statuses           = []string{"scheduled", "in_progress", "completed", "cancelled"}
	AttendanceStatuses = []string{"registered", "attended", "absent", "partial"}
)

const AttendanceRegistered = "registered"

type Workshop struct {
	ID              uuid.UUID  `json:"id"`
	WorkshopName    string     `json:"workshopName"`
	TrainingTypeID  *int       `json:"trainingTypeId"`
	StartDate       dates.Date `json:"startDate"`
	EndDate         dates.Date `json:"endDate"`
	Location        *string    `json:"location"`
	Facilitator     *string    `json:"facilitator"`
	MaxParticipants *int       `json:"maxParticipants"`
	Status          string     `json:"status"`
	Description     *string    `json:"description"`
	MaterialsPath   *string    `json:"materialsPath"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type Detail struct {
	*Workshop
	TrainingType *reference.LookupType `json:"trainingType"`
	Participants []Participant         `json:"participants"`
}

type Participant struct {
	ID                uuid.UUID  `json:"id"`
	WorkshopID        uuid.UUID  `json:"workshopId"`
	OrganizationID    *uuid.UUID `json:"organizationId"`
	OfficialID        *uuid.UUID `json:"officialId"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Email             *string    `json:"email"`
	Phone             *string    `json:"phone"`
	AttendanceStatus  string     `json:"attendanceStatus"`
	CertificateIssued bool       `json:"certificateIssued"`
	Notes             *string    `json:"notes"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type Filter struct {
	Search   *string
	Status   *string
	TypeID   *int
	DateFrom *dates.Date
	DateTo   *dates.Date
}

type WorkshopRequest struct {
	WorkshopName    patch.Field[string] `json:"workshopName"`
	TrainingTypeID  patch.Field[int]    `json:"trainingTypeId"`
	StartDate       patch.Field[string] `json:"startDate"`
	EndDate         patch.Field[string] `json:"endDate"`
	Location        patch.Field[string] `json:"location"`
	Facilitator     patch.Field[string] `json:"facilitator"`
	MaxParticipants patch.Field[int]    `json:"maxParticipants"`
	Status          patch.Field[string] `json:"status"`
	Description     patch.Field[string] `json:"description"`
	MaterialsPath   patch.Field[string] `json:"materialsPath"`
}

type ParticipantRequest struct {
	OrganizationID    patch.Field[string] `json:"organizationId"`
	OfficialID        patch.Field[string] `json:"officialId"`
	FirstName         patch.Field[string] `json:"firstName"`
	LastName          patch.Field[string] `json:"lastName"`
	Email             patch.Field[string] `json:"email"`
	Phone             patch.Field[string] `json:"phone"`
	AttendanceStatus  patch.Field[string] `json:"attendanceStatus"`
	CertificateIssued patch.Field[bool]   `json:"certificateIssued"`
	Notes             patch.Field[string] `json:"notes"`
}
