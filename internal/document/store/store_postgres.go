package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"registrar/internal/document/models"
	"registrar/internal/platform/postgres"
	"registrar/pkg/platform/listing"
)

// PostgresStore persists documents. Links to organizations, agreements,
// elections and workshops are nulled when the target is deleted.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var documentColumns = []string{
	"id", "document_number", "document_name", "document_type_id", "organization_id", "agreement_id",
	"election_id", "workshop_id", "file_path", "file_size", "file_type", "upload_date", "uploaded_by",
	"is_public", "description", "created_at", "updated_at",
}

func scanDocument(row postgres.Scanner) (*models.Document, error) {
	var d models.Document
	err := row.Scan(&d.ID, &d.DocumentNumber, &d.DocumentName, &d.DocumentTypeID, &d.OrganizationID, &d.AgreementID,
		&d.ElectionID, &d.WorkshopID, &d.FilePath, &d.FileSize, &d.FileType, &d.UploadDate, &d.UploadedBy,
		&d.IsPublic, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func documentValues(d *models.Document) map[string]any {
	return map[string]any{
		"document_number":  d.DocumentNumber,
		"document_name":    d.DocumentName,
		"document_type_id": d.DocumentTypeID,
		"organization_id":  d.OrganizationID,
		"agreement_id":     d.AgreementID,
		"election_id":      d.ElectionID,
		"workshop_id":      d.WorkshopID,
		"file_path":        d.FilePath,
		"file_size":        d.FileSize,
		"file_type":        d.FileType,
		"upload_date":      d.UploadDate,
		"is_public":        d.IsPublic,
		"description":      d.Description,
		"updated_at":       d.UpdatedAt,
	}
}

func translate(err error) error {
	if postgres.Constraint(err) == "documents_document_number_key" {
		return ErrNumberTaken
	}
	return err
}

func (s *PostgresStore) Create(ctx context.Context, d *models.Document) error {
	values := documentValues(d)
	values["id"] = d.ID
	values["uploaded_by"] = d.UploadedBy
	values["created_at"] = d.CreatedAt
	if _, err := postgres.Exec(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Insert("documents").SetMap(values)); err != nil {
		return fmt.Errorf("create document: %w", translate(err))
	}
	return nil
}

func (s *PostgresStore) get(ctx context.Context, where sq.Sqlizer) (*models.Document, error) {
	return postgres.Get(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Select(documentColumns...).From("documents").Where(where), scanDocument)
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	d, err := s.get(ctx, sq.Eq{"id": id})
	if err != nil {
		return nil, fmt.Errorf("find document: %w", err)
	}
	return d, nil
}

func (s *PostgresStore) FindByNumber(ctx context.Context, number string) (*models.Document, error) {
	d, err := s.get(ctx, sq.Eq{"document_number": number})
	if err != nil {
		return nil, fmt.Errorf("find document by number: %w", err)
	}
	return d, nil
}

func (s *PostgresStore) Update(ctx context.Context, d *models.Document) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Update("documents").SetMap(documentValues(d)).Where(sq.Eq{"id": d.ID}), "document")
	if err != nil {
		return fmt.Errorf("update document: %w", translate(err))
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Delete("documents").Where(sq.Eq{"id": id}), "document")
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, f models.Filter, p listing.Page) ([]*models.Document, int, error) {
	where := sq.And{postgres.All}
	if f.Search != nil {
		like := postgres.Like(*f.Search)
		where = append(where, sq.Or{
			sq.ILike{"document_name": like}, sq.ILike{"document_number": like}, sq.ILike{"description": like},
		})
	}
	if f.TypeID != nil {
		where = append(where, sq.Eq{"document_type_id": *f.TypeID})
	}
	if f.OrganizationID != nil {
		where = append(where, sq.Eq{"organization_id": *f.OrganizationID})
	}
	if f.AgreementID != nil {
		where = append(where, sq.Eq{"agreement_id": *f.AgreementID})
	}
	if f.ElectionID != nil {
		where = append(where, sq.Eq{"election_id": *f.ElectionID})
	}
	if f.WorkshopID != nil {
		where = append(where, sq.Eq{"workshop_id": *f.WorkshopID})
	}
	if f.IsPublic != nil {
		where = append(where, sq.Eq{"is_public": *f.IsPublic})
	}
	out, total, err := postgres.Paged(ctx, postgres.Conn(ctx, s.db), "documents", where, documentColumns,
		[]string{"upload_date DESC", "document_number"}, p, scanDocument)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	return out, total, nil
}

func (s *PostgresStore) CountByType(ctx context.Context, typeID int) (int, error) {
	n, err := postgres.Count(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Select("count(*)").From("documents").Where(sq.Eq{"document_type_id": typeID}))
	if err != nil {
		return 0, fmt.Errorf("count documents by type: %w", err)
	}
	return n, nil
}
