package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"registrar/internal/organization/models"
	"registrar/internal/platform/postgres"
	"registrar/pkg/platform/dates"
	"registrar/pkg/platform/listing"
)

// PostgresStore persists organizations. Registration numbers and
// constitution versions are unique in the schema; owned records cascade and
// references from other aggregates restrict deletion.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var orgColumns = []string{
	"id", "registration_number", "organization_name", "organization_type_id", "registration_date",
	"expiry_date", "status", "address", "district_id", "contact_person", "contact_email", "contact_phone",
	"website", "membership_count", "is_compliant", "last_compliance_check", "created_at", "updated_at",
}

func scanOrganization(row postgres.Scanner) (*models.Organization, error) {
	var o models.Organization
	err := row.Scan(&o.ID, &o.RegistrationNumber, &o.OrganizationName, &o.OrganizationTypeID, &o.RegistrationDate,
		&o.ExpiryDate, &o.Status, &o.Address, &o.DistrictID, &o.ContactPerson, &o.ContactEmail, &o.ContactPhone,
		&o.Website, &o.MembershipCount, &o.IsCompliant, &o.LastComplianceCheck, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func translate(err error) error {
	switch postgres.Constraint(err) {
	case "organizations_registration_number_key":
		return ErrRegistrationTaken
	case "organization_constitutions_version_key":
		return ErrVersionTaken
	}
	return err
}

func orgValues(o *models.Organization) map[string]any {
	return map[string]any{
		"registration_number":  o.RegistrationNumber,
		"organization_name":    o.OrganizationName,
		"organization_type_id": o.OrganizationTypeID,
		"registration_date":    o.RegistrationDate,
		"expiry_date":          o.ExpiryDate,
		"status":               o.Status,
		"address":              o.Address,
		"district_id":          o.DistrictID,
		"contact_person":       o.ContactPerson,
		"contact_email":        o.ContactEmail,
		"contact_phone":        o.ContactPhone,
		"website":              o.Website,
		"membership_count":     o.MembershipCount,
		"updated_at":           o.UpdatedAt,
	}
}

func (s *PostgresStore) Create(ctx context.Context, o *models.Organization) error {
	values := orgValues(o)
	values["id"] = o.ID
	values["is_compliant"] = o.IsCompliant
	values["created_at"] = o.CreatedAt
	if _, err := postgres.Exec(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Insert("organizations").SetMap(values)); err != nil {
		return fmt.Errorf("create organization: %w", translate(err))
	}
	return nil
}

func (s *PostgresStore) findOne(ctx context.Context, where sq.Sqlizer) (*models.Organization, error) {
	o, err := postgres.Get(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Select(orgColumns...).From("organizations").Where(where), scanOrganization)
	if err != nil {
		return nil, fmt.Errorf("find organization: %w", err)
	}
	return o, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	return s.findOne(ctx, sq.Eq{"id": id})
}

func (s *PostgresStore) FindByRegistrationNumber(ctx context.Context, number string) (*models.Organization, error) {
	return s.findOne(ctx, sq.Eq{"registration_number": number})
}

func (s *PostgresStore) Update(ctx context.Context, o *models.Organization) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Update("organizations").SetMap(orgValues(o)).Where(sq.Eq{"id": o.ID}), "organization")
	if err != nil {
		return fmt.Errorf("update organization: %w", translate(err))
	}
	return nil
}

// Delete removes the organization. A restricting reference surfaces as
// sentinel.ErrReferenced.
func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Delete("organizations").Where(sq.Eq{"id": id}), "organization")
	if err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, f models.Filter, p listing.Page) ([]*models.Organization, int, error) {
	where := sq.And{postgres.All}
	if f.Search != nil {
		like := postgres.Like(*f.Search)
		where = append(where, sq.Or{sq.ILike{"organization_name": like}, sq.ILike{"registration_number": like}})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": *f.Status})
	}
	if f.TypeID != nil {
		where = append(where, sq.Eq{"organization_type_id": *f.TypeID})
	}
	if f.DistrictID != nil {
		where = append(where, sq.Eq{"district_id": *f.DistrictID})
	}
	if f.DistrictIn != nil {
		where = append(where, sq.Eq{"district_id": f.DistrictIn})
	}
	if f.IsCompliant != nil {
		where = append(where, sq.Eq{"is_compliant": *f.IsCompliant})
	}
	out, total, err := postgres.Paged(ctx, postgres.Conn(ctx, s.db), "organizations", where, orgColumns,
		[]string{"organization_name", "registration_number"}, p, scanOrganization)
	if err != nil {
		return nil, 0, fmt.Errorf("list organizations: %w", err)
	}
	return out, total, nil
}

func (s *PostgresStore) SetCompliance(ctx context.Context, id uuid.UUID, compliant bool, checked dates.Date) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Update("organizations").
		Set("is_compliant", compliant).Set("last_compliance_check", checked).Where(sq.Eq{"id": id}), "organization")
	if err != nil {
		return fmt.Errorf("set compliance: %w", err)
	}
	return nil
}

var officialColumns = []string{
	"id", "organization_id", "position", "first_name", "last_name", "email", "phone",
	"start_date", "end_date", "is_current", "created_at", "updated_at",
}

func scanOfficial(row postgres.Scanner) (models.Official, error) {
	var o models.Official
	err := row.Scan(&o.ID, &o.OrganizationID, &o.Position, &o.FirstName, &o.LastName, &o.Email, &o.Phone,
		&o.StartDate, &o.EndDate, &o.IsCurrent, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func officialValues(o *models.Official) map[string]any {
	return map[string]any{
		"position":   o.Position,
		"first_name": o.FirstName,
		"last_name":  o.LastName,
		"email":      o.Email,
		"phone":      o.Phone,
		"start_date": o.StartDate,
		"end_date":   o.EndDate,
		"is_current": o.IsCurrent,
		"updated_at": o.UpdatedAt,
	}
}

func (s *PostgresStore) ListOfficials(ctx context.Context, orgID uuid.UUID) ([]models.Official, error) {
	out, err := postgres.Select(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Select(officialColumns...).
		From("organization_officials").Where(sq.Eq{"organization_id": orgID}).OrderBy("last_name", "first_name"), scanOfficial)
	if err != nil {
		return nil, fmt.Errorf("list officials: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindOfficial(ctx context.Context, id uuid.UUID) (*models.Official, error) {
	o, err := postgres.Get(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Select(officialColumns...).From("organization_officials").Where(sq.Eq{"id": id}), scanOfficial)
	if err != nil {
		return nil, fmt.Errorf("find official: %w", err)
	}
	return &o, nil
}

func (s *PostgresStore) CreateOfficial(ctx context.Context, o *models.Official) error {
	values := officialValues(o)
	values["id"] = o.ID
	values["organization_id"] = o.OrganizationID
	values["created_at"] = o.CreatedAt
	if _, err := postgres.Exec(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Insert("organization_officials").SetMap(values)); err != nil {
		return fmt.Errorf("create official: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateOfficial(ctx context.Context, o *models.Official) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Update("organization_officials").SetMap(officialValues(o)).Where(sq.Eq{"id": o.ID}), "official")
	if err != nil {
		return fmt.Errorf("update official: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteOfficial(ctx context.Context, id uuid.UUID) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Delete("organization_officials").Where(sq.Eq{"id": id}), "official")
	if err != nil {
		return fmt.Errorf("delete official: %w", err)
	}
	return nil
}

var constitutionColumns = []string{
	"id", "organization_id", "version_number", "effective_date", "approval_date", "approved_by",
	"document_path", "status", "notes", "created_at", "updated_at",
}

func scanConstitution(row postgres.Scanner) (models.Constitution, error) {
	var c models.Constitution
	err := row.Scan(&c.ID, &c.OrganizationID, &c.VersionNumber, &c.EffectiveDate, &c.ApprovalDate, &c.ApprovedBy,
		&c.DocumentPath, &c.Status, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func constitutionValues(c *models.Constitution) map[string]any {
	return map[string]any{
		"version_number": c.VersionNumber,
		"effective_date": c.EffectiveDate,
		"approval_date":  c.ApprovalDate,
		"approved_by":    c.ApprovedBy,
		"document_path":  c.DocumentPath,
		"status":         c.Status,
		"notes":          c.Notes,
		"updated_at":     c.UpdatedAt,
	}
}

func (s *PostgresStore) ListConstitutions(ctx context.Context, orgID uuid.UUID) ([]models.Constitution, error) {
	out, err := postgres.Select(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Select(constitutionColumns...).
		From("organization_constitutions").Where(sq.Eq{"organization_id": orgID}).OrderBy("version_number DESC"), scanConstitution)
	if err != nil {
		return nil, fmt.Errorf("list constitutions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindConstitution(ctx context.Context, id uuid.UUID) (*models.Constitution, error) {
	c, err := postgres.Get(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Select(constitutionColumns...).From("organization_constitutions").Where(sq.Eq{"id": id}), scanConstitution)
	if err != nil {
		return nil, fmt.Errorf("find constitution: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) CreateConstitution(ctx context.Context, c *models.Constitution) error {
	values := constitutionValues(c)
	values["id"] = c.ID
	values["organization_id"] = c.OrganizationID
	values["created_at"] = c.CreatedAt
	if _, err := postgres.Exec(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Insert("organization_constitutions").SetMap(values)); err != nil {
		return fmt.Errorf("create constitution: %w", translate(err))
	}
	return nil
}

func (s *PostgresStore) UpdateConstitution(ctx context.Context, c *models.Constitution) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Update("organization_constitutions").SetMap(constitutionValues(c)).Where(sq.Eq{"id": c.ID}), "constitution")
	if err != nil {
		return fmt.Errorf("update constitution: %w", translate(err))
	}
	return nil
}

func (s *PostgresStore) DeleteConstitution(ctx context.Context, id uuid.UUID) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Delete("organization_constitutions").Where(sq.Eq{"id": id}), "constitution")
	if err != nil {
		return fmt.Errorf("delete constitution: %w", err)
	}
	return nil
}
