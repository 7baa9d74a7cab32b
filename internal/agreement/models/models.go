// Package models holds collective agreements, their amendments and the
// disputes filed against organizations.
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
	Statuses        = []string{"active", "expired", "terminated", "in_negotiation"}
	DisputeStatuses = []string{"pending", "in_progress", "resolved", "escalated"}
)

type Agreement struct {
	ID                         uuid.UUID   `json:"id"`
	AgreementNumber            string      `json:"agreementNumber"`
	AgreementName              string      `json:"agreementName"`
	AgreementTypeID            *int        `json:"agreementTypeId"`
	PrimaryOrganizationID      uuid.UUID   `json:"primaryOrganizationId"`
	CounterpartyName           *string     `json:"counterpartyName"`
	CounterpartyOrganizationID *uuid.UUID  `json:"counterpartyOrganizationId"`
	EffectiveDate              dates.Date  `json:"effectiveDate"`
	ExpiryDate                 *dates.Date `json:"expiryDate"`
	Status                     string      `json:"status"`
	DocumentPath               *string     `json:"documentPath"`
	Notes                      *string     `json:"notes"`
	CreatedAt                  time.Time   `json:"createdAt"`
	UpdatedAt                  time.Time   `json:"updatedAt"`
}

// Detail is the single-agreement rendering.
type Detail struct {
	*Agreement
	AgreementType            *reference.LookupType `json:"agreementType"`
	PrimaryOrganization      *orgmodels.Summary    `json:"primaryOrganization"`
	CounterpartyOrganization *orgmodels.Summary    `json:"counterpartyOrganization"`
	Amendments               []Amendment           `json:"amendments"`
}

type Summary struct {
	ID              uuid.UUID `json:"id"`
	AgreementNumber string    `json:"agreementNumber"`
	AgreementName   string    `json:"agreementName"`
}

func (a *Agreement) Summary() *Summary {
	return &Summary{ID: a.ID, AgreementNumber: a.AgreementNumber, AgreementName: a.AgreementName}
}

type Amendment struct {
	ID              uuid.UUID  `json:"id"`
	AgreementID     uuid.UUID  `json:"agreementId"`
	AmendmentNumber string     `json:"amendmentNumber"`
	AmendmentDate   dates.Date `json:"amendmentDate"`
	Description     *string    `json:"description"`
	DocumentPath    *string    `json:"documentPath"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type Dispute struct {
	ID                uuid.UUID   `json:"id"`
	DisputeNumber     string      `json:"disputeNumber"`
	DisputeTypeID     *int        `json:"disputeTypeId"`
	AgreementID       *uuid.UUID  `json:"agreementId"`
	OrganizationID    uuid.UUID   `json:"organizationId"`
	CounterpartyID    *uuid.UUID  `json:"counterpartyId"`
	FilingDate        dates.Date  `json:"filingDate"`
	ResolutionDate    *dates.Date `json:"resolutionDate"`
	Status            string      `json:"status"`
	ResolutionSummary *string     `json:"resolutionSummary"`
	DocumentPath      *string     `json:"documentPath"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

type DisputeDetail struct {
	*Dispute
	DisputeType  *reference.LookupType `json:"disputeType"`
	Organization *orgmodels.Summary    `json:"organization"`
	Counterparty *orgmodels.Summary    `json:"counterparty"`
	Agreement    *Summary              `json:"agreement"`
}

// Filter narrows agreement listings. OrganizationID matches either party.
type Filter struct {
	Search         *string
	Status         *string
	TypeID         *int
	OrganizationID *uuid.UUID
	ExpiringBefore *dates.Date
	ExpiringAfter  *dates.Date
}

type DisputeFilter struct {
	Search         *string
	Status         *string
	TypeID         *int
	OrganizationID *uuid.UUID
	DateFrom       *dates.Date
	DateTo         *dates.Date
}

type AgreementRequest struct {
	AgreementNumber            patch.Field[string] `json:"agreementNumber"`
	AgreementName              patch.Field[string] `json:"agreementName"`
	AgreementTypeID            patch.Field[int]    `json:"agreementTypeId"`
	PrimaryOrganizationID      patch.Field[string] `json:"primaryOrganizationId"`
	CounterpartyName           patch.Field[string] `json:"counterpartyName"`
	CounterpartyOrganizationID patch.Field[string] `json:"counterpartyOrganizationId"`
	EffectiveDate              patch.Field[string] `json:"effectiveDate"`
	ExpiryDate                 patch.Field[string] `json:"expiryDate"`
	Status                     patch.Field[string] `json:"status"`
	DocumentPath               patch.Field[string] `json:"documentPath"`
	Notes                      patch.Field[string] `json:"notes"`
}

type AmendmentRequest struct {
	AmendmentNumber patch.Field[string] `json:"amendmentNumber"`
	AmendmentDate   patch.Field[string] `json:"amendmentDate"`
	Description     patch.Field[string] `json:"description"`
	DocumentPath    patch.Field[string] `json:"documentPath"`
}

type DisputeRequest struct {
	DisputeNumber     patch.Field[string] `json:"disputeNumber"`
	DisputeTypeID     patch.Field[int]    `json:"disputeTypeId"`
	AgreementID       patch.Field[string] `json:"agreementId"`
	OrganizationID    patch.Field[string] `json:"organizationId"`
	CounterpartyID    patch.Field[string] `json:"counterpartyId"`
	FilingDate        patch.Field[string] `json:"filingDate"`
	ResolutionDate    patch.Field[string] `json:"resolutionDate"`
	Status            patch.Field[string] `json:"status"`
	ResolutionSummary patch.Field[string] `json:"resolutionSummary"`
	DocumentPath      patch.Field[string] `json:"documentPath"`
}
