package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"registrar/internal/platform/postgres"
	"registrar/internal/reference"
)

// PostgresStore reads and maintains the lookup tables.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListRoles(ctx context.Context) ([]reference.Role, error) {
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT id, role_code, role_name, description FROM roles ORDER BY role_name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var out []reference.Role
	for rows.Next() {
		var r reference.Role
		if err := rows.Scan(&r.ID, &r.RoleCode, &r.RoleName, &r.Description); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) role(ctx context.Context, where string, arg any) (*reference.Role, error) {
	var r reference.Role
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT id, role_code, role_name, description FROM roles WHERE `+where, arg,
	).Scan(&r.ID, &r.RoleCode, &r.RoleName, &r.Description)
	if err != nil {
		return nil, fmt.Errorf("find role: %w", postgres.Classify(err))
	}
	return &r, nil
}

func (s *PostgresStore) RoleByID(ctx context.Context, id int) (*reference.Role, error) {
	return s.role(ctx, "id = $1", id)
}

func (s *PostgresStore) RoleByCode(ctx context.Context, code string) (*reference.Role, error) {
	return s.role(ctx, "role_code = $1", code)
}

func (s *PostgresStore) ListPositions(ctx context.Context) ([]reference.Position, error) {
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT id, position_code, position_name, salary_grade, description FROM positions ORDER BY position_name`)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()
	var out []reference.Position
	for rows.Next() {
		var p reference.Position
		if err := rows.Scan(&p.ID, &p.PositionCode, &p.PositionName, &p.SalaryGrade, &p.Description); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) position(ctx context.Context, where string, arg any) (*reference.Position, error) {
	var p reference.Position
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT id, position_code, position_name, salary_grade, description FROM positions WHERE `+where, arg,
	).Scan(&p.ID, &p.PositionCode, &p.PositionName, &p.SalaryGrade, &p.Description)
	if err != nil {
		return nil, fmt.Errorf("find position: %w", postgres.Classify(err))
	}
	return &p, nil
}

func (s *PostgresStore) PositionByID(ctx context.Context, id int) (*reference.Position, error) {
	return s.position(ctx, "id = $1", id)
}

func (s *PostgresStore) PositionByCode(ctx context.Context, code string) (*reference.Position, error) {
	return s.position(ctx, "position_code = $1", code)
}

func (s *PostgresStore) ListRegions(ctx context.Context) ([]reference.Region, error) {
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, `SELECT id, region_name FROM regions ORDER BY region_name`)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	defer rows.Close()
	var out []reference.Region
	for rows.Next() {
		var r reference.Region
		if err := rows.Scan(&r.ID, &r.RegionName); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

var districtColumns = []string{"d.id", "d.district_name", "d.region_id", "r.id", "r.region_name"}

func scanDistrict(row interface{ Scan(...any) error }) (reference.District, error) {
	var d reference.District
	var r reference.Region
	if err := row.Scan(&d.ID, &d.DistrictName, &d.RegionID, &r.ID, &r.RegionName); err != nil {
		return d, err
	}
	d.Region = &r
	return d, nil
}

func (s *PostgresStore) ListDistricts(ctx context.Context, regionID *int) ([]reference.District, error) {
	b := postgres.Builder.Select(districtColumns...).
		From("districts d").Join("regions r ON r.id = d.region_id").
		OrderBy("d.district_name")
	if regionID != nil {
		b = b.Where(sq.Eq{"d.region_id": *regionID})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build districts query: %w", err)
	}
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	defer rows.Close()
	var out []reference.District
	for rows.Next() {
		d, err := scanDistrict(rows)
		if err != nil {
			return nil, fmt.Errorf("scan district: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DistrictByID(ctx context.Context, id int) (*reference.District, error) {
	query, args, err := postgres.Builder.Select(districtColumns...).
		From("districts d").Join("regions r ON r.id = d.region_id").
		Where(sq.Eq{"d.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build district query: %w", err)
	}
	d, err := scanDistrict(postgres.Conn(ctx, s.db).QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("find district: %w", postgres.Classify(err))
	}
	return &d, nil
}

func (s *PostgresStore) ListTypes(ctx context.Context, kind reference.Kind) ([]reference.LookupType, error) {
	table, err := kind.Table()
	if err != nil {
		return nil, err
	}
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT id, type_name, description FROM `+table+` ORDER BY type_name`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()
	var out []reference.LookupType
	for rows.Next() {
		var t reference.LookupType
		if err := rows.Scan(&t.ID, &t.TypeName, &t.Description); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PostgresStore) TypeByID(ctx context.Context, kind reference.Kind, id int) (*reference.LookupType, error) {
	table, err := kind.Table()
	if err != nil {
		return nil, err
	}
	var t reference.LookupType
	err = postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT id, type_name, description FROM `+table+` WHERE id = $1`, id,
	).Scan(&t.ID, &t.TypeName, &t.Description)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", table, postgres.Classify(err))
	}
	return &t, nil
}

const requirementColumns = `id, requirement_name, description, legal_reference, frequency`

func (s *PostgresStore) ListRequirements(ctx context.Context) ([]reference.Requirement, error) {
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT `+requirementColumns+` FROM compliance_requirements ORDER BY requirement_name`)
	if err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}
	defer rows.Close()
	var out []reference.Requirement
	for rows.Next() {
		var r reference.Requirement
		if err := rows.Scan(&r.ID, &r.RequirementName, &r.Description, &r.LegalReference, &r.Frequency); err != nil {
			return nil, fmt.Errorf("scan requirement: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) RequirementByID(ctx context.Context, id int) (*reference.Requirement, error) {
	var r reference.Requirement
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+requirementColumns+` FROM compliance_requirements WHERE id = $1`, id,
	).Scan(&r.ID, &r.RequirementName, &r.Description, &r.LegalReference, &r.Frequency)
	if err != nil {
		return nil, fmt.Errorf("find requirement: %w", postgres.Classify(err))
	}
	return &r, nil
}

func (s *PostgresStore) UpsertRole(ctx context.Context, r reference.Role) (reference.Role, error) {
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO roles (role_code, role_name, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (role_code) DO UPDATE SET
			role_name = EXCLUDED.role_name,
			description = EXCLUDED.description,
			updated_at = now()
		RETURNING id`, r.RoleCode, r.RoleName, r.Description,
	).Scan(&r.ID)
	if err != nil {
		return r, fmt.Errorf("upsert role: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) UpsertPosition(ctx context.Context, p reference.Position) (reference.Position, error) {
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO positions (position_code, position_name, salary_grade, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (position_code) DO UPDATE SET
			position_name = EXCLUDED.position_name,
			salary_grade = EXCLUDED.salary_grade,
			description = EXCLUDED.description,
			updated_at = now()
		RETURNING id`, p.PositionCode, p.PositionName, p.SalaryGrade, p.Description,
	).Scan(&p.ID)
	if err != nil {
		return p, fmt.Errorf("upsert position: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) UpsertRegion(ctx context.Context, name string) (reference.Region, error) {
	r := reference.Region{RegionName: name}
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO regions (region_name) VALUES ($1)
		ON CONFLICT (region_name) DO UPDATE SET updated_at = now()
		RETURNING id`, name,
	).Scan(&r.ID)
	if err != nil {
		return r, fmt.Errorf("upsert region: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) UpsertDistrict(ctx context.Context, regionID int, name string) (reference.District, error) {
	d := reference.District{DistrictName: name, RegionID: regionID}
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO districts (district_name, region_id) VALUES ($1, $2)
		ON CONFLICT (region_id, district_name) DO UPDATE SET updated_at = now()
		RETURNING id`, name, regionID,
	).Scan(&d.ID)
	if err != nil {
		return d, fmt.Errorf("upsert district: %w", postgres.Classify(err))
	}
	return d, nil
}

func (s *PostgresStore) UpsertType(ctx context.Context, kind reference.Kind, t reference.LookupType) (reference.LookupType, error) {
	table, err := kind.Table()
	if err != nil {
		return t, err
	}
	err = postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO `+table+` (type_name, description) VALUES ($1, $2)
		ON CONFLICT (type_name) DO UPDATE SET
			description = EXCLUDED.description,
			updated_at = now()
		RETURNING id`, t.TypeName, t.Description,
	).Scan(&t.ID)
	if err != nil {
		return t, fmt.Errorf("upsert %s: %w", table, err)
	}
	return t, nil
}

func (s *PostgresStore) UpsertRequirement(ctx context.Context, r reference.Requirement) (reference.Requirement, error) {
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO compliance_requirements (requirement_name, description, legal_reference, frequency)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (requirement_name) DO UPDATE SET
			description = EXCLUDED.description,
			legal_reference = EXCLUDED.legal_reference,
			frequency = EXCLUDED.frequency,
			updated_at = now()
		RETURNING id`, r.RequirementName, r.Description, r.LegalReference, r.Frequency,
	).Scan(&r.ID)
	if err != nil {
		return r, fmt.Errorf("upsert requirement: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) CreateType(ctx context.Context, kind reference.Kind, t *reference.LookupType) error {
	table, err := kind.Table()
	if err != nil {
		return err
	}
	err = postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`INSERT INTO `+table+` (type_name, description) VALUES ($1, $2) RETURNING id`,
		t.TypeName, t.Description,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("create %s: %w", table, postgres.Classify(err))
	}
	return nil
}

func (s *PostgresStore) UpdateType(ctx context.Context, kind reference.Kind, t *reference.LookupType) error {
	table, err := kind.Table()
	if err != nil {
		return err
	}
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx,
		`UPDATE `+table+` SET type_name = $2, description = $3, updated_at = now() WHERE id = $1`,
		t.ID, t.TypeName, t.Description)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, postgres.Classify(err))
	}
	return postgres.RequireAffected(res, table)
}

func (s *PostgresStore) DeleteType(ctx context.Context, kind reference.Kind, id int) error {
	table, err := kind.Table()
	if err != nil {
		return err
	}
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, postgres.Classify(err))
	}
	return postgres.RequireAffected(res, table)
}
