package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"registrar/internal/compliance/models"
	"registrar/internal/platform/postgres"
	"registrar/pkg/platform/listing"
)

// PostgresStore persists compliance data. Issues keep their row when the
// inspection they came from is deleted.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var recordColumns = []string{
	"id", "organization_id", "requirement_id", "due_date", "submission_date", "status", "approved_by",
	"document_path", "notes", "created_at", "updated_at",
}

func scanRecord(row postgres.Scanner) (*models.Record, error) {
	var r models.Record
	err := row.Scan(&r.ID, &r.OrganizationID, &r.RequirementID, &r.DueDate, &r.SubmissionDate, &r.Status, &r.ApprovedBy,
		&r.DocumentPath, &r.Notes, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func recordValues(r *models.Record) map[string]any {
	return map[string]any{
		"organization_id": r.OrganizationID,
		"requirement_id":  r.RequirementID,
		"due_date":        r.DueDate,
		"submission_date": r.SubmissionDate,
		"status":          r.Status,
		"approved_by":     r.ApprovedBy,
		"document_path":   r.DocumentPath,
		"notes":           r.Notes,
		"updated_at":      r.UpdatedAt,
	}
}

func (s *PostgresStore) insert(ctx context.Context, table string, id uuid.UUID, values map[string]any, createdAt any) error {
	values["id"] = id
	values["created_at"] = createdAt
	_, err := postgres.Exec(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Insert(table).SetMap(values))
	return err
}

func (s *PostgresStore) CreateRecord(ctx context.Context, r *models.Record) error {
	if err := s.insert(ctx, "compliance_records", r.ID, recordValues(r), r.CreatedAt); err != nil {
		return fmt.Errorf("create compliance record: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindRecord(ctx context.Context, id uuid.UUID) (*models.Record, error) {
	r, err := postgres.Get(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Select(recordColumns...).From("compliance_records").Where(sq.Eq{"id": id}), scanRecord)
	if err != nil {
		return nil, fmt.Errorf("find compliance record: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) UpdateRecord(ctx context.Context, r *models.Record) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Update("compliance_records").SetMap(recordValues(r)).Where(sq.Eq{"id": r.ID}), "compliance record")
	if err != nil {
		return fmt.Errorf("update compliance record: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Delete("compliance_records").Where(sq.Eq{"id": id}), "compliance record")
	if err != nil {
		return fmt.Errorf("delete compliance record: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRecords(ctx context.Context, f models.RecordFilter, p listing.Page) ([]*models.Record, int, error) {
	where := sq.And{postgres.All}
	if f.OrganizationID != nil {
		where = append(where, sq.Eq{"organization_id": *f.OrganizationID})
	}
	if f.RequirementID != nil {
		where = append(where, sq.Eq{"requirement_id": *f.RequirementID})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": *f.Status})
	}
	if f.DueBefore != nil {
		where = append(where, sq.LtOrEq{"due_date": *f.DueBefore})
	}
	if f.DueAfter != nil {
		where = append(where, sq.GtOrEq{"due_date": *f.DueAfter})
	}
	out, total, err := postgres.Paged(ctx, postgres.Conn(ctx, s.db), "compliance_records", where, recordColumns,
		[]string{"due_date", "id"}, p, scanRecord)
	if err != nil {
		return nil, 0, fmt.Errorf("list compliance records: %w", err)
	}
	return out, total, nil
}

var inspectionColumns = []string{
	"id", "organization_id", "inspection_date", "inspector_id", "inspection_type", "findings", "recommendations",
	"status", "document_path", "created_at", "updated_at",
}

func scanInspection(row postgres.Scanner) (*models.Inspection, error) {
	var in models.Inspection
	err := row.Scan(&in.ID, &in.OrganizationID, &in.InspectionDate, &in.InspectorID, &in.InspectionType, &in.Findings,
		&in.Recommendations, &in.Status, &in.DocumentPath, &in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func inspectionValues(in *models.Inspection) map[string]any {
	return map[string]any{
		"organization_id": in.OrganizationID,
		"inspection_date": in.InspectionDate,
		"inspector_id":    in.InspectorID,
		"inspection_type": in.InspectionType,
		"findings":        in.Findings,
		"recommendations": in.Recommendations,
		"status":          in.Status,
		"document_path":   in.DocumentPath,
		"updated_at":      in.UpdatedAt,
	}
}

func (s *PostgresStore) CreateInspection(ctx context.Context, in *models.Inspection) error {
	if err := s.insert(ctx, "inspections", in.ID, inspectionValues(in), in.CreatedAt); err != nil {
		return fmt.Errorf("create inspection: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindInspection(ctx context.Context, id uuid.UUID) (*models.Inspection, error) {
	in, err := postgres.Get(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Select(inspectionColumns...).From("inspections").Where(sq.Eq{"id": id}), scanInspection)
	if err != nil {
		return nil, fmt.Errorf("find inspection: %w", err)
	}
	return in, nil
}

func (s *PostgresStore) UpdateInspection(ctx context.Context, in *models.Inspection) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Update("inspections").SetMap(inspectionValues(in)).Where(sq.Eq{"id": in.ID}), "inspection")
	if err != nil {
		return fmt.Errorf("update inspection: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteInspection(ctx context.Context, id uuid.UUID) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Delete("inspections").Where(sq.Eq{"id": id}), "inspection")
	if err != nil {
		return fmt.Errorf("delete inspection: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListInspections(ctx context.Context, f models.InspectionFilter, p listing.Page) ([]*models.Inspection, int, error) {
	where := sq.And{postgres.All}
	if f.OrganizationID != nil {
		where = append(where, sq.Eq{"organization_id": *f.OrganizationID})
	}
	if f.InspectorID != nil {
		where = append(where, sq.Eq{"inspector_id": *f.InspectorID})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": *f.Status})
	}
	if f.DateFrom != nil {
		where = append(where, sq.GtOrEq{"inspection_date": *f.DateFrom})
	}
	if f.DateTo != nil {
		where = append(where, sq.LtOrEq{"inspection_date": *f.DateTo})
	}
	out, total, err := postgres.Paged(ctx, postgres.Conn(ctx, s.db), "inspections", where, inspectionColumns,
		[]string{"inspection_date DESC", "id"}, p, scanInspection)
	if err != nil {
		return nil, 0, fmt.Errorf("list inspections: %w", err)
	}
	return out, total, nil
}

var issueColumns = []string{
	"id", "organization_id", "inspection_id", "issue_date", "description", "severity", "resolution_deadline",
	"resolution_date", "status", "created_at", "updated_at",
}

func scanIssue(row postgres.Scanner) (*models.Issue, error) {
	var is models.Issue
	err := row.Scan(&is.ID, &is.OrganizationID, &is.InspectionID, &is.IssueDate, &is.Description, &is.Severity,
		&is.ResolutionDeadline, &is.ResolutionDate, &is.Status, &is.CreatedAt, &is.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &is, nil
}

func issueValues(is *models.Issue) map[string]any {
	return map[string]any{
		"organization_id":     is.OrganizationID,
		"inspection_id":       is.InspectionID,
		"issue_date":          is.IssueDate,
		"description":         is.Description,
		"severity":            is.Severity,
		"resolution_deadline": is.ResolutionDeadline,
		"resolution_date":     is.ResolutionDate,
		"status":              is.Status,
		"updated_at":          is.UpdatedAt,
	}
}

func (s *PostgresStore) CreateIssue(ctx context.Context, is *models.Issue) error {
	if err := s.insert(ctx, "non_compliance_issues", is.ID, issueValues(is), is.CreatedAt); err != nil {
		return fmt.Errorf("create issue: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindIssue(ctx context.Context, id uuid.UUID) (*models.Issue, error) {
	is, err := postgres.Get(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Select(issueColumns...).From("non_compliance_issues").Where(sq.Eq{"id": id}), scanIssue)
	if err != nil {
		return nil, fmt.Errorf("find issue: %w", err)
	}
	return is, nil
}

func (s *PostgresStore) UpdateIssue(ctx context.Context, is *models.Issue) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Update("non_compliance_issues").SetMap(issueValues(is)).Where(sq.Eq{"id": is.ID}), "issue")
	if err != nil {
		return fmt.Errorf("update issue: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteIssue(ctx context.Context, id uuid.UUID) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Delete("non_compliance_issues").Where(sq.Eq{"id": id}), "issue")
	if err != nil {
		return fmt.Errorf("delete issue: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListIssues(ctx context.Context, f models.IssueFilter, p listing.Page) ([]*models.Issue, int, error) {
	where := sq.And{postgres.All}
	if f.OrganizationID != nil {
		where = append(where, sq.Eq{"organization_id": *f.OrganizationID})
	}
	if f.InspectionID != nil {
		where = append(where, sq.Eq{"inspection_id": *f.InspectionID})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": *f.Status})
	}
	if f.Severity != nil {
		where = append(where, sq.Eq{"severity": *f.Severity})
	}
	out, total, err := postgres.Paged(ctx, postgres.Conn(ctx, s.db), "non_compliance_issues", where, issueColumns,
		[]string{"issue_date DESC", "id"}, p, scanIssue)
	if err != nil {
		return nil, 0, fmt.Errorf("list issues: %w", err)
	}
	return out, total, nil
}

// Standing counts the organization's blocking records and unresolved
// critical issues. Inside a transaction it sees the caller's own writes.
func (s *PostgresStore) Standing(ctx context.Context, orgID uuid.UUID) (models.Standing, error) {
	conn := postgres.Conn(ctx, s.db)
	var st models.Standing
	var err error
	st.BlockingRecords, err = postgres.Count(ctx, conn, postgres.Builder.Select("count(*)").From("compliance_records").
		Where(sq.Eq{"organization_id": orgID, "status": []string{"overdue", "rejected"}}))
	if err != nil {
		return st, fmt.Errorf("count blocking records: %w", err)
	}
	st.OpenCritical, err = postgres.Count(ctx, conn, postgres.Builder.Select("count(*)").From("non_compliance_issues").
		Where(sq.And{sq.Eq{"organization_id": orgID, "severity": "critical"}, sq.NotEq{"status": "resolved"}}))
	if err != nil {
		return st, fmt.Errorf("count critical issues: %w", err)
	}
	return st, nil
}
