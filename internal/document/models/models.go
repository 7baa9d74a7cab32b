// Package models holds document metadata. File bytes live outside the
// registry; a document only records where they are.
package models

import (
	"time"

	"github.com/google/uuid"

	authmodels "registrar/internal/auth/models"
	orgmodels "registrar/internal/organization/models"
	"registrar/internal/reference"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/patch"
)

type Document struct {
	ID             uuid.UUID  `json:"id"`
	DocumentNumber string     `json:"documentNumber"`
	DocumentName   string     `json:"documentName"`
	DocumentTypeID *int       `json:"documentTypeId"`
	OrganizationID *uuid.UUID `json:"organizationId"`
	AgreementID    *uuid.UUID `json:"agreementId"`
	ElectionID     *uuid.UUID `json:"electionId"`
	WorkshopID     *uuid.UUID `json:"workshopId"`
	FilePath       string     `json:"filePath"`
	FileSize       *int       `json:"fileSize"`
	FileType       *string    `json:"fileType"`
	UploadDate     dates.Date `json:"uploadDate"`
	UploadedBy     *uuid.UUID `json:"uploadedBy"`
	IsPublic       bool       `json:"isPublic"`
	Description    *string    `json:"description"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Uploader is the public face of the user who registered a document.
type Uploader struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

func NewUploader(u *authmodels.User) *Uploader {
	return &Uploader{ID: u.ID, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
}

type Detail struct {
	*Document
	DocumentType *reference.LookupType `json:"documentType"`
	Organization *orgmodels.Summary    `json:"organization"`
	Uploader     *Uploader             `json:"uploader"`
}

type Filter struct {
	Search         *string
	TypeID         *int
	OrganizationID *uuid.UUID
	AgreementID    *uuid.UUID
	ElectionID     *uuid.UUID
	WorkshopID     *uuid.UUID
	IsPublic       *bool
}

type DocumentRequest struct {
	DocumentNumber patch.Field[string] `json:"documentNumber"`
	DocumentName   patch.Field[string] `json:"documentName"`
	DocumentTypeID patch.Field[int]    `json:"documentTypeId"`
	OrganizationID patch.Field[string] `json:"organizationId"`
	AgreementID    patch.Field[string] `json:"agreementId"`
	ElectionID     patch.Field[string] `json:"electionId"`
	WorkshopID     patch.Field[string] `json:"workshopId"`
	FilePath       patch.Field[string] `json:"filePath"`
	FileSize       patch.Field[int]    `json:"fileSize"`
	FileType       patch.Field[string] `json:"fileType"`
	UploadDate     patch.Field[string] `json:"uploadDate"`
	IsPublic       patch.Field[bool]   `json:"isPublic"`
	Description    patch.Field[string] `json:"description"`
}

type TypeRequest struct {
	TypeName    patch.Field[string] `json:"typeName"`
	Description patch.Field[string] `json:"description"`
}
