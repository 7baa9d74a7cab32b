// Package store runs the dashboard's aggregate queries against Postgres.
// Every query is read-only and runs outside any transaction.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"registrar/internal/dashboard/models"
	"registrar/internal/platform/postgres"
	"registrar/pkg/platform/dates"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var (
	pendingRecord = sq.Eq{"status": []string{"pending", "overdue"}}
	openIssue     = sq.Eq{"status": []string{"open", "in_progress"}}
)

func metricQuery(m models.Metric, today dates.Date) (string, sq.Sqlizer, error) {
	switch m {
	case models.OrganizationsTotal:
		return "organizations", postgres.All, nil
	case models.OrganizationsActive:
		return "organizations", sq.Eq{"status": "active"}, nil
	case models.OrganizationsCompliant:
		return "organizations", sq.Eq{"is_compliant": true}, nil
	case models.AgreementsTotal:
		return "agreements", postgres.All, nil
	case models.AgreementsActive:
		return "agreements", sq.Eq{"status": "active"}, nil
	case models.ElectionsTotal:
		return "ballot_elections", postgres.All, nil
	case models.ElectionsUpcoming:
		return "ballot_elections", sq.And{sq.Eq{"status": "scheduled"}, sq.Gt{"election_date": today}}, nil
	case models.WorkshopsTotal:
		return "training_workshops", postgres.All, nil
	case models.WorkshopsUpcoming:
		return "training_workshops", sq.And{sq.Eq{"status": "scheduled"}, sq.Gt{"start_date": today}}, nil
	case models.PendingSubmissions:
		return "compliance_records", sq.And{pendingRecord, sq.LtOrEq{"due_date": today.AddDays(30)}}, nil
	case models.RecentIssues:
		return "non_compliance_issues", sq.And{openIssue, sq.GtOrEq{"issue_date": today.AddDays(-30)}}, nil
	case models.ParticipantsTotal:
		return "workshop_participants", postgres.All, nil
	case models.CertificatesIssued:
		return "workshop_participants", sq.Eq{"certificate_issued": true}, nil
	}
	return "", nil, fmt.Errorf("unknown metric %q", m)
}

func (s *PostgresStore) Count(ctx context.Context, m models.Metric, today dates.Date) (int, error) {
	table, where, err := metricQuery(m, today)
	if err != nil {
		return 0, err
	}
	n, err := postgres.Count(ctx, s.db, postgres.Builder.Select("count(*)").From(table).Where(where))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", m, err)
	}
	return n, nil
}

var breakdownQueries = map[models.Breakdown]string{
	models.OrganizationsByType: `SELECT t.type_name, count(*) FROM organizations o
		LEFT JOIN organization_types t ON t.id = o.organization_type_id GROUP BY 1`,
	models.OrganizationsByStatus: `SELECT status, count(*) FROM organizations GROUP BY 1`,
	models.OrganizationsByRegion: `SELECT r.region_name, count(*) FROM organizations o
		LEFT JOIN districts d ON d.id = o.district_id
		LEFT JOIN regions r ON r.id = d.region_id GROUP BY 1`,
	models.OrganizationsByCompliance: `SELECT CASE WHEN is_compliant THEN 'Compliant' ELSE 'Non-Compliant' END, count(*)
		FROM organizations GROUP BY 1`,
	models.AgreementsByStatus:  `SELECT status, count(*) FROM agreements GROUP BY 1`,
	models.RecordsByStatus:     `SELECT status, count(*) FROM compliance_records GROUP BY 1`,
	models.IssuesBySeverity:    `SELECT severity, count(*) FROM non_compliance_issues GROUP BY 1`,
	models.IssuesByStatus:      `SELECT status, count(*) FROM non_compliance_issues GROUP BY 1`,
	models.InspectionsByStatus: `SELECT status, count(*) FROM inspections GROUP BY 1`,
	models.WorkshopsByStatus:   `SELECT status, count(*) FROM training_workshops GROUP BY 1`,
	models.WorkshopsByType: `SELECT t.type_name, count(*) FROM training_workshops w
		LEFT JOIN training_types t ON t.id = w.training_type_id GROUP BY 1`,
	models.ParticipantsByAttendance: `SELECT attendance_status, count(*) FROM workshop_participants GROUP BY 1`,
	models.ElectionsByStatus:        `SELECT status, count(*) FROM ballot_elections GROUP BY 1`,
	models.DisputesByStatus:         `SELECT status, count(*) FROM disputes GROUP BY 1`,
}

// Breakdown groups rows by label. Missing lookups are labelled "unknown".
func (s *PostgresStore) Breakdown(ctx context.Context, b models.Breakdown) (map[string]int, error) {
	query, ok := breakdownQueries[b]
	if !ok {
		return nil, fmt.Errorf("unknown breakdown %q", b)
	}
	out, err := postgres.Grouped(ctx, s.db, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b, err)
	}
	return out, nil
}

var seriesColumns = map[models.Series][2]string{
	models.AgreementsEffective: {"agreements", "effective_date"},
	models.ElectionsHeld:       {"ballot_elections", "election_date"},
	models.InspectionsHeld:     {"inspections", "inspection_date"},
	models.WorkshopsStarting:   {"training_workshops", "start_date"},
}

func (s *PostgresStore) Monthly(ctx context.Context, series models.Series, year int) (map[time.Month]int, error) {
	tc, ok := seriesColumns[series]
	if !ok {
		return nil, fmt.Errorf("unknown series %q", series)
	}
	table, col := tc[0], tc[1]
	query := fmt.Sprintf(`SELECT EXTRACT(MONTH FROM %[2]s)::int::text, count(*) FROM %[1]s
		WHERE EXTRACT(YEAR FROM %[2]s) = $1 GROUP BY 1`, table, col)
	grouped, err := postgres.Grouped(ctx, s.db, query, year)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", series, err)
	}
	out := make(map[time.Month]int, len(grouped))
	for label, n := range grouped {
		m, err := strconv.Atoi(label)
		if err != nil {
			return nil, fmt.Errorf("%s: month %q: %w", series, label, err)
		}
		out[time.Month(m)] = n
	}
	return out, nil
}

func (s *PostgresStore) ActiveExpiries(ctx context.Context, from, to dates.Date) ([]dates.Date, error) {
	out, err := postgres.Select(ctx, s.db, postgres.Builder.Select("expiry_date").From("agreements").
		Where(sq.Eq{"status": "active"}).
		Where(sq.Expr("expiry_date BETWEEN ? AND ?", from, to)).
		OrderBy("expiry_date"),
		func(row postgres.Scanner) (dates.Date, error) {
			var d dates.Date
			err := row.Scan(&d)
			return d, err
		})
	if err != nil {
		return nil, fmt.Errorf("agreement expiries: %w", err)
	}
	return out, nil
}

// feed describes one entity family as a stream of dated rows.
type feed struct {
	from   string
	entity string
	name   string
	label  string
	detail string
	status string
	where  sq.Sqlizer
	title  func(label, name string) string
}

const orgName = "COALESCE(o.organization_name, 'Unknown')"

func prefixed(p string) func(label, name string) string {
	return func(label, _ string) string { return p + label }
}

func (f feed) columns(date string) []string {
	return []string{"x.id", date, f.status, f.entity, f.name, f.label, f.detail}
}

var deadlineFeeds = map[models.Source]struct {
	feed
	date string
}{
	models.SourceCompliance: {feed{
		from:   "compliance_records x LEFT JOIN organizations o ON o.id = x.organization_id",
		entity: "x.organization_id", name: orgName, label: orgName, detail: "''", status: "x.status",
		where: sq.Eq{"x.status": []string{"pending", "overdue"}},
		title: prefixed("Compliance submission due for "),
	}, "x.due_date"},
	models.SourceAgreement: {feed{
		from:   "agreements x LEFT JOIN organizations o ON o.id = x.primary_organization_id",
		entity: "x.primary_organization_id", name: orgName, label: "x.agreement_number", detail: "''", status: "x.status",
		where: sq.Eq{"x.status": "active"},
		title: func(label, _ string) string { return "Agreement " + label + " expires" },
	}, "x.expiry_date"},
	models.SourceElection: {feed{
		from:   "ballot_elections x LEFT JOIN organizations o ON o.id = x.organization_id",
		entity: "x.organization_id", name: orgName, label: orgName, detail: "''", status: "x.status",
		where: sq.Eq{"x.status": "scheduled"},
		title: prefixed("Ballot election for "),
	}, "x.election_date"},
	models.SourceWorkshop: {feed{
		from:   "training_workshops x",
		entity: "NULL::uuid", name: "x.workshop_name", label: "x.workshop_name", detail: "''", status: "x.status",
		where: sq.Eq{"x.status": "scheduled"},
		title: prefixed("Training workshop: "),
	}, "x.start_date"},
	models.SourceIssue: {feed{
		from:   "non_compliance_issues x LEFT JOIN organizations o ON o.id = x.organization_id",
		entity: "x.organization_id", name: orgName, label: orgName, detail: "''", status: "x.status",
		where: sq.Eq{"x.status": []string{"open", "in_progress"}},
		title: prefixed("Non-compliance resolution deadline for "),
	}, "x.resolution_deadline"},
}

var activityFeeds = map[models.Source]feed{
	models.SourceOrganization: {
		from:   "organizations x",
		entity: "x.id", name: "x.organization_name", label: "x.organization_name",
		detail: "x.registration_number", status: "x.status",
		title: prefixed("New organization registered: "),
	},
	models.SourceAgreement: {
		from:   "agreements x LEFT JOIN organizations o ON o.id = x.primary_organization_id",
		entity: "x.primary_organization_id", name: orgName, label: "x.agreement_number",
		detail: "x.agreement_name", status: "x.status",
		title: prefixed("New agreement registered: "),
	},
	models.SourceElection: {
		from:   "ballot_elections x LEFT JOIN organizations o ON o.id = x.organization_id",
		entity: "x.organization_id", name: orgName, label: orgName,
		detail: "x.purpose", status: "x.status",
		title: prefixed("New ballot election scheduled for "),
	},
	models.SourceWorkshop: {
		from:   "training_workshops x",
		entity: "NULL::uuid", name: "x.workshop_name", label: "x.workshop_name",
		detail: "COALESCE(x.location, '')", status: "x.status",
		title: prefixed("New training workshop scheduled: "),
	},
	models.SourceCompliance: {
		from: "compliance_records x LEFT JOIN organizations o ON o.id = x.organization_id" +
			" JOIN compliance_requirements r ON r.id = x.requirement_id",
		entity: "x.organization_id", name: orgName, label: orgName,
		detail: "r.requirement_name", status: "x.status",
		title: prefixed("New compliance record for "),
	},
	models.SourceInspection: {
		from:   "inspections x LEFT JOIN organizations o ON o.id = x.organization_id",
		entity: "x.organization_id", name: orgName, label: orgName,
		detail: "x.inspection_type", status: "x.status",
		title: prefixed("New inspection for "),
	},
	models.SourceIssue: {
		from:   "non_compliance_issues x LEFT JOIN organizations o ON o.id = x.organization_id",
		entity: "x.organization_id", name: orgName, label: orgName,
		detail: "x.severity", status: "x.status",
		title: prefixed("New non-compliance issue for "),
	},
}

// feedRow is the common projection of every feed.
type feedRow[D any] struct {
	id     uuid.UUID
	date   D
	status string
	entity uuid.NullUUID
	name   string
	label  string
	detail string
}

func scanFeed[D any](row postgres.Scanner) (feedRow[D], error) {
	var r feedRow[D]
	err := row.Scan(&r.id, &r.date, &r.status, &r.entity, &r.name, &r.label, &r.detail)
	return r, err
}

func entityID(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}
	id := n.UUID
	return &id
}

func (s *PostgresStore) Deadlines(ctx context.Context, src models.Source, from, to dates.Date) ([]models.Deadline, error) {
	f, ok := deadlineFeeds[src]
	if !ok {
		return nil, fmt.Errorf("unknown deadline source %q", src)
	}
	rows, err := postgres.Select(ctx, s.db, postgres.Builder.Select(f.columns(f.date)...).From(f.from).
		Where(f.where).
		Where(sq.Expr(f.date+" BETWEEN ? AND ?", from, to)).
		OrderBy(f.date),
		scanFeed[dates.Date])
	if err != nil {
		return nil, fmt.Errorf("%s deadlines: %w", src, err)
	}
	out := make([]models.Deadline, len(rows))
	for i, r := range rows {
		out[i] = models.Deadline{
			Type: src, ID: r.id, Date: r.date, Title: f.title(r.label, r.name), Status: r.status,
			EntityID: entityID(r.entity), EntityName: r.name,
		}
	}
	return out, nil
}

func (s *PostgresStore) Activities(ctx context.Context, src models.Source, since time.Time, limit int) ([]models.Activity, error) {
	f, ok := activityFeeds[src]
	if !ok {
		return nil, fmt.Errorf("unknown activity source %q", src)
	}
	rows, err := postgres.Select(ctx, s.db, postgres.Builder.Select(f.columns("x.created_at")...).From(f.from).
		Where(sq.GtOrEq{"x.created_at": since}).
		OrderBy("x.created_at DESC").
		Limit(uint64(limit)),
		scanFeed[time.Time])
	if err != nil {
		return nil, fmt.Errorf("%s activities: %w", src, err)
	}
	out := make([]models.Activity, len(rows))
	for i, r := range rows {
		out[i] = models.Activity{
			Type: src, ID: r.id, Date: r.date.UTC(), Title: f.title(r.label, r.name), Description: r.detail,
			Status: r.status, EntityID: entityID(r.entity), EntityName: r.name,
		}
	}
	return out, nil
}

func (s *PostgresStore) OrganizationCompliance(ctx context.Context) ([]models.OrganizationCompliance, error) {
	return postgres.Select(ctx, s.db, postgres.Builder.Select("id", "organization_name", "is_compliant").
		From("organizations").OrderBy("organization_name", "id"),
		func(row postgres.Scanner) (models.OrganizationCompliance, error) {
			var o models.OrganizationCompliance
			err := row.Scan(&o.ID, &o.OrganizationName, &o.IsCompliant)
			return o, err
		})
}

func (s *PostgresStore) Renewals(ctx context.Context, from, to dates.Date) ([]models.Renewal, error) {
	return postgres.Select(ctx, s.db, postgres.Builder.Select("id", "agreement_name", "expiry_date").
		From("agreements").
		Where(sq.Expr("expiry_date BETWEEN ? AND ?", from, to)).
		OrderBy("expiry_date", "agreement_name"),
		func(row postgres.Scanner) (models.Renewal, error) {
			var r models.Renewal
			err := row.Scan(&r.ID, &r.AgreementName, &r.ExpiryDate)
			return r, err
		})
}

func (s *PostgresStore) Ballots(ctx context.Context, from, to dates.Date) ([]models.UpcomingBallot, error) {
	return postgres.Select(ctx, s.db, postgres.Builder.Select("id", "election_number", "election_date").
		From("ballot_elections").
		Where(sq.Expr("election_date BETWEEN ? AND ?", from, to)).
		OrderBy("election_date", "election_number"),
		func(row postgres.Scanner) (models.UpcomingBallot, error) {
			var b models.UpcomingBallot
			err := row.Scan(&b.ID, &b.ElectionNumber, &b.ElectionDate)
			return b, err
		})
}

func (s *PostgresStore) Trainings(ctx context.Context, from dates.Date) ([]models.UpcomingTraining, error) {
	return postgres.Select(ctx, s.db, postgres.Builder.Select("id", "workshop_name", "start_date").
		From("training_workshops").
		Where(sq.GtOrEq{"start_date": from}).
		OrderBy("start_date", "workshop_name"),
		func(row postgres.Scanner) (models.UpcomingTraining, error) {
			var t models.UpcomingTraining
			err := row.Scan(&t.ID, &t.WorkshopName, &t.StartDate)
			return t, err
		})
}

func (s *PostgresStore) Growth(ctx context.Context) ([]models.YearCount, error) {
	return postgres.Select(ctx, s.db, postgres.Builder.
		Select("EXTRACT(YEAR FROM registration_date)::int AS year", "count(*)").
		From("organizations").GroupBy("year").OrderBy("year"),
		func(row postgres.Scanner) (models.YearCount, error) {
			var y models.YearCount
			err := row.Scan(&y.Year, &y.Count)
			return y, err
		})
}

// Geo counts organizations per district; organizations without a district
// are left out.
func (s *PostgresStore) Geo(ctx context.Context) ([]models.GeoCount, error) {
	return postgres.Select(ctx, s.db, postgres.Builder.
		Select("r.region_name", "d.district_name", "count(o.id)").
		From("organizations o").
		Join("districts d ON d.id = o.district_id").
		Join("regions r ON r.id = d.region_id").
		GroupBy("r.region_name", "d.district_name").
		OrderBy("r.region_name", "d.district_name"),
		func(row postgres.Scanner) (models.GeoCount, error) {
			var g models.GeoCount
			err := row.Scan(&g.Region, &g.District, &g.Count)
			return g, err
		})
}
