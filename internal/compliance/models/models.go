// Package models holds compliance records, inspections and
// non-compliance issues.
package models

import (
	"time"

	"github.com/google/uuid"

	orgmodels "registrar/internal/organization/models"
	"registrar/internal/reference"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/patch"
)

var (
	RecordStatuses     = []string{"pending", "submitted", "approved", "rejected", "overdue"}
	InspectionStatuses = []string{"scheduled", "completed", "cancelled", "follow-up-required"}
	IssueSeverities    = []string{"minor", "major", "critical"}
	IssueStatuses      = []string{"open", "in_progress", "resolved", "escalated"}
)

type Record struct {
	ID             uuid.UUID   `json:"id"`
	OrganizationID uuid.UUID   `json:"organizationId"`
	RequirementID  int         `json:"requirementId"`
	DueDate        dates.Date  `json:"dueDate"`
	SubmissionDate *dates.Date `json:"submissionDate"`
	Status         string      `json:"status"`
	ApprovedBy     *uuid.UUID  `json:"approvedBy"`
	DocumentPath   *string     `json:"documentPath"`
	Notes          *string     `json:"notes"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// Blocking reports whether the record makes its organization
// non-compliant.
func (r *Record) Blocking() bool {
	return r.Status == "overdue" || r.Status == "rejected"
}

type RecordDetail struct {
	*Record
	Organization *orgmodels.Summary     `json:"organization"`
	Requirement  *reference.Requirement `json:"requirement"`
}

type Inspection struct {
	ID              uuid.UUID  `json:"id"`
	OrganizationID  uuid.UUID  `json:"organizationId"`
	InspectionDate  dates.Date `json:"inspectionDate"`
	InspectorID     uuid.UUID  `json:"inspectorId"`
	InspectionType  string     `json:"inspectionType"`
	Findings        *string    `json:"findings"`
	Recommendations *string    `json:"recommendations"`
	Status          string     `json:"status"`
	DocumentPath    *string    `json:"documentPath"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type InspectionDetail struct {
	*Inspection
	Organization *orgmodels.Summary `json:"organization"`
	Issues       []*Issue           `json:"issues"`
}

type Issue struct {
	ID                 uuid.UUID   `json:"id"`
	OrganizationID     uuid.UUID   `json:"organizationId"`
	InspectionID       *uuid.UUID  `json:"inspectionId"`
	IssueDate          dates.Date  `json:"issueDate"`
	Description        string      `json:"description"`
	Severity           string      `json:"severity"`
	ResolutionDeadline *dates.Date `json:"resolutionDeadline"`
	ResolutionDate     *dates.Date `json:"resolutionDate"`
	Status             string      `json:"status"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

// Blocking reports whether the issue makes its organization
// non-compliant.
func (i *Issue) Blocking() bool {
	return i.Severity == "critical" && i.Status != "resolved"
}

type IssueDetail struct {
	*Issue
	Organization *orgmodels.Summary `json:"organization"`
}

// Standing counts what currently blocks an organization's compliance.
type Standing struct {
	BlockingRecords int
	OpenCritical    int
}

func (s Standing) Compliant() bool {
	return s.BlockingRecords == 0 && s.OpenCritical == 0
}

type RecordFilter struct {
	OrganizationID *uuid.UUID
	RequirementID  *int
	Status         *string
	DueBefore      *dates.Date
	DueAfter       *dates.Date
}

type InspectionFilter struct {
	OrganizationID *uuid.UUID
	InspectorID    *uuid.UUID
	Status         *string
	DateFrom       *dates.Date
	DateTo         *dates.Date
}

type IssueFilter struct {
	OrganizationID *uuid.UUID
	InspectionID   *uuid.UUID
	Status         *string
	Severity       *string
}

type RecordRequest struct {
	OrganizationID patch.Field[string] `json:"organizationId"`
	RequirementID  patch.Field[int]    `json:"requirementId"`
	DueDate        patch.Field[string] `json:"dueDate"`
	SubmissionDate patch.Field[string] `json:"submissionDate"`
	Status         patch.Field[string] `json:"status"`
	ApprovedBy     patch.Field[string] `json:"approvedBy"`
	DocumentPath   patch.Field[string] `json:"documentPath"`
	Notes          patch.Field[string] `json:"notes"`
}

type InspectionRequest struct {
	OrganizationID  patch.Field[string] `json:"organizationId"`
	InspectionDate  patch.Field[string] `json:"inspectionDate"`
	InspectorID     patch.Field[string] `json:"inspectorId"`
	InspectionType  patch.Field[string] `json:"inspectionType"`
	Findings        patch.Field[string] `json:"findings"`
	Recommendations patch.Field[string] `json:"recommendations"`
	Status          patch.Field[string] `json:"status"`
	DocumentPath    patch.Field[string] `json:"documentPath"`
}

type IssueRequest struct {
	OrganizationID     patch.Field[string] `json:"organizationId"`
	InspectionID       patch.Field[string] `json:"inspectionId"`
	IssueDate          patch.Field[string] `json:"issueDate"`
	Description        patch.Field[string] `json:"description"`
	Severity           patch.Field[string] `json:"severity"`
	ResolutionDeadline patch.Field[string] `json:"resolutionDeadline"`
	ResolutionDate     patch.Field[string] `json:"resolutionDate"`
	Status             patch.Field[string] `json:"status"`
}
