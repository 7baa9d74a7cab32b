// Package models holds union ballot elections: the positions contested,
// the candidates standing and the tallied results.
package models

import (
	"time"

	"github.com/google/uuid"

	orgmodels "registrar/internal/organization/models"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/patch"
)

var Statuses = []string{"scheduled", "in_progress", "completed", "cancelled"}

type Election struct {
	ID             uuid.UUID  `json:"id"`
	ElectionNumber string     `json:"electionNumber"`
	OrganizationID uuid.UUID  `json:"organizationId"`
	ElectionDate   dates.Date `json:"electionDate"`
	Purpose        string     `json:"purpose"`
	Status         string     `json:"status"`
	SupervisorID   *uuid.UUID `json:"supervisorId"`
	Location       *string    `json:"location"`
	Notes          *string    `json:"notes"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Detail is the single-election rendering.
type Detail struct {
	*Election
	Organization *orgmodels.Summary `json:"organization"`
	Positions    []PositionDetail   `json:"positions"`
}

type Position struct {
	ID           uuid.UUID `json:"id"`
	ElectionID   uuid.UUID `json:"electionId"`
	PositionName string    `json:"positionName"`
	Description  *string   `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type PositionDetail struct {
	Position
	Candidates []Candidate `json:"candidates"`
}

type Candidate struct {
	ID         uuid.UUID `json:"id"`
	PositionID uuid.UUID `json:"positionId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Bio        *string   `json:"bio"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Result is one candidate's tally. (ElectionID, PositionID, CandidateID) is
// unique.
type Result struct {
	ID            uuid.UUID `json:"id"`
	ElectionID    uuid.UUID `json:"electionId"`
	PositionID    uuid.UUID `json:"positionId"`
	CandidateID   uuid.UUID `json:"candidateId"`
	VotesReceived int       `json:"votesReceived"`
	IsElected     bool      `json:"isElected"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ResultView is a result with the names it refers to.
type ResultView struct {
	Result
	PositionName  string `json:"positionName"`
	CandidateName string `json:"candidateName"`
}

type Filter struct {
	Search         *string
	Status         *string
	OrganizationID *uuid.UUID
	DateFrom       *dates.Date
	DateTo         *dates.Date
}

type ElectionRequest struct {
	ElectionNumber patch.Field[string] `json:"electionNumber"`
	OrganizationID patch.Field[string] `json:"organizationId"`
	ElectionDate   patch.Field[string] `json:"electionDate"`
	Purpose        patch.Field[string] `json:"purpose"`
	Status         patch.Field[string] `json:"status"`
	SupervisorID   patch.Field[string] `json:"supervisorId"`
	Location       patch.Field[string] `json:"location"`
	Notes          patch.Field[string] `json:"notes"`
}

type PositionRequest struct {
	PositionName patch.Field[string] `json:"positionName"`
	Description  patch.Field[string] `json:"description"`
}

type CandidateRequest struct {
	FirstName patch.Field[string] `json:"firstName"`
	LastName  patch.Field[string] `json:"lastName"`
	Bio       patch.Field[string] `json:"bio"`
}

type ResultRequest struct {
	PositionID    patch.Field[string] `json:"positionId"`
	CandidateID   patch.Field[string] `json:"candidateId"`
	VotesReceived patch.Field[int]    `json:"votesReceived"`
	IsElected     patch.Field[bool]   `json:"isElected"`
}
