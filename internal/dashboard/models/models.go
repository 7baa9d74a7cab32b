// Package models holds the read-only aggregates rendered by the dashboard.
package models

import (
	"time"

	"github.com/google/uuid"

	"registrar/pkg/platform/dates"
)

// Metric names a single scalar count relative to a reference day.
type Metric string

const (
	OrganizationsTotal     Metric = "organizations.total"
	OrganizationsActive    Metric = "organizations.active"
	OrganizationsCompliant Metric = "organizations.compliant"
	AgreementsTotal        Metric = "agreements.total"
	AgreementsActive       Metric = "agreements.active"
	ElectionsTotal         Metric = "elections.total"
	ElectionsUpcoming      Metric = "elections.upcoming"
	WorkshopsTotal         Metric = "workshops.total"
	WorkshopsUpcoming      Metric = "workshops.upcoming"
	PendingSubmissions     Metric = "compliance.pending"
	RecentIssues           Metric = "compliance.recent_issues"
	ParticipantsTotal      Metric = "participants.total"
	CertificatesIssued     Metric = "participants.certificates"
)

// Breakdown names a "label, count" grouping.
type Breakdown string

const (
	OrganizationsByType       Breakdown = "organizations.type"
	OrganizationsByStatus     Breakdown = "organizations.status"
	OrganizationsByRegion     Breakdown = "organizations.region"
	OrganizationsByCompliance Breakdown = "organizations.compliance"
	AgreementsByStatus        Breakdown = "agreements.status"
	RecordsByStatus           Breakdown = "records.status"
	IssuesBySeverity          Breakdown = "issues.severity"
	IssuesByStatus            Breakdown = "issues.status"
	InspectionsByStatus       Breakdown = "inspections.status"
	WorkshopsByStatus         Breakdown = "workshops.status"
	WorkshopsByType           Breakdown = "workshops.type"
	ParticipantsByAttendance  Breakdown = "participants.attendance"
	ElectionsByStatus         Breakdown = "elections.status"
	DisputesByStatus          Breakdown = "disputes.status"
)

// Series names a dated column counted per calendar month.
type Series string

const (
	AgreementsEffective Series = "agreements.effective"
	ElectionsHeld       Series = "elections.held"
	InspectionsHeld     Series = "inspections.held"
	WorkshopsStarting   Series = "workshops.starting"
)

// Source is an entity family feeding deadlines and activities.
type Source string

const (
	SourceOrganization Source = "organization"
	SourceAgreement    Source = "agreement"
	SourceElection     Source = "election"
	SourceWorkshop     Source = "workshop"
	SourceCompliance   Source = "compliance"
	SourceInspection   Source = "inspection"
	SourceIssue        Source = "issue"
)

// DeadlineSources lists the families with upcoming dates, in render order.
var DeadlineSources = []Source{SourceCompliance, SourceAgreement, SourceElection, SourceWorkshop, SourceIssue}

// ActivitySources lists the families whose creation shows up as activity.
var ActivitySources = []Source{
	SourceOrganization, SourceAgreement, SourceElection, SourceWorkshop,
	SourceCompliance, SourceInspection, SourceIssue,
}

type OrganizationCounts struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Compliant    int `json:"compliant"`
	NonCompliant int `json:"nonCompliant"`
}

type TotalUpcoming struct {
	Total    int `json:"total"`
	Upcoming int `json:"upcoming"`
}

type AgreementCounts struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

type ComplianceCounts struct {
	PendingSubmissions int `json:"pendingSubmissions"`
	RecentIssues       int `json:"recentIssues"`
}

type Summary struct {
	Organizations OrganizationCounts `json:"organizations"`
	Agreements    AgreementCounts    `json:"agreements"`
	Elections     TotalUpcoming      `json:"elections"`
	Workshops     TotalUpcoming      `json:"workshops"`
	Compliance    ComplianceCounts   `json:"compliance"`
}

// Deadline is an upcoming dated obligation. EntityID is the owning
// organization; workshops have none.
type Deadline struct {
	Type       Source     `json:"type"`
	ID         uuid.UUID  `json:"id"`
	Date       dates.Date `json:"date"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	EntityID   *uuid.UUID `json:"entityId"`
	EntityName string     `json:"entityName"`
}

// Activity is a recently created record.
type Activity struct {
	Type        Source     `json:"type"`
	ID          uuid.UUID  `json:"id"`
	Date        time.Time  `json:"date"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	EntityID    *uuid.UUID `json:"entityId"`
	EntityName  string     `json:"entityName"`
}

type Bucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type OrganizationStats struct {
	ByType       []Bucket `json:"byType"`
	ByStatus     []Bucket `json:"byStatus"`
	ByRegion     []Bucket `json:"byRegion"`
	ByCompliance []Bucket `json:"byCompliance"`
}

type AgreementStats struct {
	ByStatus       []Bucket     `json:"byStatus"`
	ByExpiryPeriod []Bucket     `json:"byExpiryPeriod"`
	ByMonth        []MonthCount `json:"byMonth"`
}

type ComplianceStats struct {
	RecordsByStatus     []Bucket     `json:"complianceByStatus"`
	IssuesByStatus      []Bucket     `json:"issuesByStatus"`
	IssuesBySeverity    []Bucket     `json:"issuesBySeverity"`
	InspectionsByStatus []Bucket     `json:"inspectionsByStatus"`
	InspectionsByMonth  []MonthCount `json:"inspectionsByMonth"`
}

type ParticipantStats struct {
	Total              int      `json:"total"`
	ByAttendance       []Bucket `json:"byAttendance"`
	CertificatesIssued int      `json:"certificatesIssued"`
}

type TrainingStats struct {
	ByStatus     []Bucket         `json:"byStatus"`
	ByType       []Bucket         `json:"byType"`
	ByMonth      []MonthCount     `json:"byMonth"`
	Participants ParticipantStats `json:"participants"`
}

type ElectionStats struct {
	ByStatus []Bucket     `json:"byStatus"`
	ByMonth  []MonthCount `json:"byMonth"`
}

type OrganizationCompliance struct {
	ID               uuid.UUID `json:"id"`
	OrganizationName string    `json:"organizationName"`
	IsCompliant      bool      `json:"isCompliant"`
}

type Renewal struct {
	ID            uuid.UUID  `json:"id"`
	AgreementName string     `json:"agreementName"`
	ExpiryDate    dates.Date `json:"expiryDate"`
}

type UpcomingBallot struct {
	ID             uuid.UUID  `json:"id"`
	ElectionNumber string     `json:"electionNumber"`
	ElectionDate   dates.Date `json:"electionDate"`
}

type UpcomingTraining struct {
	ID           uuid.UUID  `json:"id"`
	WorkshopName string     `json:"workshopName"`
	StartDate    dates.Date `json:"startDate"`
}

type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type GeoCount struct {
	Region   string `json:"region"`
	District string `json:"district"`
	Count    int    `json:"count"`
}
