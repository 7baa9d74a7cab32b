package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"registrar/internal/agreement/models"
	"registrar/internal/platform/postgres"
	"registrar/pkg/platform/listing"
)

// PostgresStore persists agreements. Amendments cascade with their
// agreement; disputes keep their row and lose the agreement link.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func translate(err error) error {
	switch postgres.Constraint(err) {
	case "agreements_agreement_number_key":
		return ErrNumberTaken
	case "agreement_amendments_number_key":
		return ErrAmendmentTaken
	case "disputes_dispute_number_key":
		return ErrDisputeNumberTaken
	}
	return err
}

var agreementColumns = []string{
	"id", "agreement_number", "agreement_name", "agreement_type_id", "primary_organization_id",
	"counterparty_name", "counterparty_organization_id", "effective_date", "expiry_date", "status",
	"document_path", "notes", "created_at", "updated_at",
}

func scanAgreement(row postgres.Scanner) (*models.Agreement, error) {
	var a models.Agreement
	err := row.Scan(&a.ID, &a.AgreementNumber, &a.AgreementName, &a.AgreementTypeID, &a.PrimaryOrganizationID,
		&a.CounterpartyName, &a.CounterpartyOrganizationID, &a.EffectiveDate, &a.ExpiryDate, &a.Status,
		&a.DocumentPath, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func agreementValues(a *models.Agreement) map[string]any {
	return map[string]any{
		"agreement_number":             a.AgreementNumber,
		"agreement_name":               a.AgreementName,
		"agreement_type_id":            a.AgreementTypeID,
		"primary_organization_id":      a.PrimaryOrganizationID,
		"counterparty_name":            a.CounterpartyName,
		"counterparty_organization_id": a.CounterpartyOrganizationID,
		"effective_date":               a.EffectiveDate,
		"expiry_date":                  a.ExpiryDate,
		"status":                       a.Status,
		"document_path":                a.DocumentPath,
		"notes":                        a.Notes,
		"updated_at":                   a.UpdatedAt,
	}
}

func (s *PostgresStore) Create(ctx context.Context, a *models.Agreement) error {
	values := agreementValues(a)
	values["id"] = a.ID
	values["created_at"] = a.CreatedAt
	if _, err := postgres.Exec(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Insert("agreements").SetMap(values)); err != nil {
		return fmt.Errorf("create agreement: %w", translate(err))
	}
	return nil
}

func (s *PostgresStore) findOne(ctx context.Context, where sq.Sqlizer) (*models.Agreement, error) {
	a, err := postgres.Get(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Select(agreementColumns...).From("agreements").Where(where), scanAgreement)
	if err != nil {
		return nil, fmt.Errorf("find agreement: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Agreement, error) {
	return s.findOne(ctx, sq.Eq{"id": id})
}

func (s *PostgresStore) FindByNumber(ctx context.Context, number string) (*models.Agreement, error) {
	return s.findOne(ctx, sq.Eq{"agreement_number": number})
}

func (s *PostgresStore) Update(ctx context.Context, a *models.Agreement) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Update("agreements").SetMap(agreementValues(a)).Where(sq.Eq{"id": a.ID}), "agreement")
	if err != nil {
		return fmt.Errorf("update agreement: %w", translate(err))
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Delete("agreements").Where(sq.Eq{"id": id}), "agreement")
	if err != nil {
		return fmt.Errorf("delete agreement: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, f models.Filter, p listing.Page) ([]*models.Agreement, int, error) {
	where := sq.And{postgres.All}
	if f.Search != nil {
		like := postgres.Like(*f.Search)
		where = append(where, sq.Or{sq.ILike{"agreement_name": like}, sq.ILike{"agreement_number": like}})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": *f.Status})
	}
	if f.TypeID != nil {
		where = append(where, sq.Eq{"agreement_type_id": *f.TypeID})
	}
	if f.OrganizationID != nil {
		where = append(where, sq.Or{
			sq.Eq{"primary_organization_id": *f.OrganizationID},
			sq.Eq{"counterparty_organization_id": *f.OrganizationID},
		})
	}
	if f.ExpiringBefore != nil {
		where = append(where, sq.LtOrEq{"expiry_date": *f.ExpiringBefore})
	}
	if f.ExpiringAfter != nil {
		where = append(where, sq.GtOrEq{"expiry_date": *f.ExpiringAfter})
	}
	out, total, err := postgres.Paged(ctx, postgres.Conn(ctx, s.db), "agreements", where, agreementColumns,
		[]string{"agreement_name", "agreement_number"}, p, scanAgreement)
	if err != nil {
		return nil, 0, fmt.Errorf("list agreements: %w", err)
	}
	return out, total, nil
}

var amendmentColumns = []string{
	"id", "agreement_id", "amendment_number", "amendment_date", "description", "document_path", "created_at", "updated_at",
}

func scanAmendment(row postgres.Scanner) (models.Amendment, error) {
	var a models.Amendment
	err := row.Scan(&a.ID, &a.AgreementID, &a.AmendmentNumber, &a.AmendmentDate, &a.Description, &a.DocumentPath,
		&a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func amendmentValues(a *models.Amendment) map[string]any {
	return map[string]any{
		"amendment_number": a.AmendmentNumber,
		"amendment_date":   a.AmendmentDate,
		"description":      a.Description,
		"document_path":    a.DocumentPath,
		"updated_at":       a.UpdatedAt,
	}
}

func (s *PostgresStore) ListAmendments(ctx context.Context, agreementID uuid.UUID) ([]models.Amendment, error) {
	out, err := postgres.Select(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Select(amendmentColumns...).
		From("agreement_amendments").Where(sq.Eq{"agreement_id": agreementID}).
		OrderBy("amendment_date DESC", "amendment_number DESC"), scanAmendment)
	if err != nil {
		return nil, fmt.Errorf("list amendments: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindAmendment(ctx context.Context, id uuid.UUID) (*models.Amendment, error) {
	a, err := postgres.Get(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Select(amendmentColumns...).From("agreement_amendments").Where(sq.Eq{"id": id}), scanAmendment)
	if err != nil {
		return nil, fmt.Errorf("find amendment: %w", err)
	}
	return &a, nil
}

func (s *PostgresStore) CreateAmendment(ctx context.Context, a *models.Amendment) error {
	values := amendmentValues(a)
	values["id"] = a.ID
	values["agreement_id"] = a.AgreementID
	values["created_at"] = a.CreatedAt
	if _, err := postgres.Exec(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Insert("agreement_amendments").SetMap(values)); err != nil {
		return fmt.Errorf("create amendment: %w", translate(err))
	}
	return nil
}

func (s *PostgresStore) UpdateAmendment(ctx context.Context, a *models.Amendment) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Update("agreement_amendments").SetMap(amendmentValues(a)).Where(sq.Eq{"id": a.ID}), "amendment")
	if err != nil {
		return fmt.Errorf("update amendment: %w", translate(err))
	}
	return nil
}

func (s *PostgresStore) DeleteAmendment(ctx context.Context, id uuid.UUID) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Delete("agreement_amendments").Where(sq.Eq{"id": id}), "amendment")
	if err != nil {
		return fmt.Errorf("delete amendment: %w", err)
	}
	return nil
}

var disputeColumns = []string{
	"id", "dispute_number", "dispute_type_id", "agreement_id", "organization_id", "counterparty_id", "filing_date",
	"resolution_date", "status", "resolution_summary", "document_path", "created_at", "updated_at",
}

func scanDispute(row postgres.Scanner) (*models.Dispute, error) {
	var d models.Dispute
	err := row.Scan(&d.ID, &d.DisputeNumber, &d.DisputeTypeID, &d.AgreementID, &d.OrganizationID, &d.CounterpartyID,
		&d.FilingDate, &d.ResolutionDate, &d.Status, &d.ResolutionSummary, &d.DocumentPath, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func disputeValues(d *models.Dispute) map[string]any {
	return map[string]any{
		"dispute_number":     d.DisputeNumber,
		"dispute_type_id":    d.DisputeTypeID,
		"agreement_id":       d.AgreementID,
		"organization_id":    d.OrganizationID,
		"counterparty_id":    d.CounterpartyID,
		"filing_date":        d.FilingDate,
		"resolution_date":    d.ResolutionDate,
		"status":             d.Status,
		"resolution_summary": d.ResolutionSummary,
		"document_path":      d.DocumentPath,
		"updated_at":         d.UpdatedAt,
	}
}

func (s *PostgresStore) CreateDispute(ctx context.Context, d *models.Dispute) error {
	values := disputeValues(d)
	values["id"] = d.ID
	values["created_at"] = d.CreatedAt
	if _, err := postgres.Exec(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Insert("disputes").SetMap(values)); err != nil {
		return fmt.Errorf("create dispute: %w", translate(err))
	}
	return nil
}

func (s *PostgresStore) findDispute(ctx context.Context, where sq.Sqlizer) (*models.Dispute, error) {
	d, err := postgres.Get(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Select(disputeColumns...).From("disputes").Where(where), scanDispute)
	if err != nil {
		return nil, fmt.Errorf("find dispute: %w", err)
	}
	return d, nil
}

func (s *PostgresStore) FindDispute(ctx context.Context, id uuid.UUID) (*models.Dispute, error) {
	return s.findDispute(ctx, sq.Eq{"id": id})
}

func (s *PostgresStore) FindDisputeByNumber(ctx context.Context, number string) (*models.Dispute, error) {
	return s.findDispute(ctx, sq.Eq{"dispute_number": number})
}

func (s *PostgresStore) UpdateDispute(ctx context.Context, d *models.Dispute) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Update("disputes").SetMap(disputeValues(d)).Where(sq.Eq{"id": d.ID}), "dispute")
	if err != nil {
		return fmt.Errorf("update dispute: %w", translate(err))
	}
	return nil
}

func (s *PostgresStore) DeleteDispute(ctx context.Context, id uuid.UUID) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Delete("disputes").Where(sq.Eq{"id": id}), "dispute")
	if err != nil {
		return fmt.Errorf("delete dispute: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListDisputes(ctx context.Context, f models.DisputeFilter, p listing.Page) ([]*models.Dispute, int, error) {
	where := sq.And{postgres.All}
	if f.Search != nil {
		like := postgres.Like(*f.Search)
		where = append(where, sq.Or{sq.ILike{"dispute_number": like}, sq.ILike{"resolution_summary": like}})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": *f.Status})
	}
	if f.TypeID != nil {
		where = append(where, sq.Eq{"dispute_type_id": *f.TypeID})
	}
	if f.OrganizationID != nil {
		where = append(where, sq.Or{sq.Eq{"organization_id": *f.OrganizationID}, sq.Eq{"counterparty_id": *f.OrganizationID}})
	}
	if f.DateFrom != nil {
		where = append(where, sq.GtOrEq{"filing_date": *f.DateFrom})
	}
	if f.DateTo != nil {
		where = append(where, sq.LtOrEq{"filing_date": *f.DateTo})
	}
	out, total, err := postgres.Paged(ctx, postgres.Conn(ctx, s.db), "disputes", where, disputeColumns,
		[]string{"filing_date DESC", "dispute_number"}, p, scanDispute)
	if err != nil {
		return nil, 0, fmt.Errorf("list disputes: %w", err)
	}
	return out, total, nil
}
