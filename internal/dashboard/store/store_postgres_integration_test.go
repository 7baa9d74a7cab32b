//go:build integration

package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/internal/dashboard/models"
	"registrar/internal/dashboard/service"
	"registrar/internal/dashboard/store"
	"registrar/internal/platform/postgres"
	"registrar/internal/reference"
	refstore "registrar/internal/reference/store"
	"registrar/pkg/platform/dates"
	"registrar/pkg/requestcontext"
	"registrar/pkg/testutil/containers"
)

var (
	now   = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	today = dates.New(2024, time.March, 1)
)

type fixture struct {
	ctx       context.Context
	db        *sql.DB
	store     *store.PostgresStore
	svc       *service.Service
	compliant uuid.UUID
	lapsed    uuid.UUID
}

func setup(t *testing.T) *fixture {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.GetManager().GetPostgres(t)
	ctx := requestcontext.WithTime(context.Background(), now)
	_, err := postgres.Migrate(ctx, pg.DB)
	require.NoError(t, err)
	require.NoError(t, pg.TruncateTables(ctx,
		"workshop_participants", "training_workshops", "non_compliance_issues", "inspections",
		"compliance_records", "ballot_elections", "disputes", "agreements", "organizations"))
	seed, err := reference.DefaultSeed()
	require.NoError(t, err)
	require.NoError(t, reference.Apply(ctx, refstore.NewPostgres(pg.DB), seed))

	s := store.NewPostgres(pg.DB)
	svc, err := service.New(s)
	require.NoError(t, err)
	f := &fixture{ctx: ctx, db: pg.DB, store: s, svc: svc, compliant: uuid.New(), lapsed: uuid.New()}
	f.populate(t)
	return f
}

func (f *fixture) exec(t *testing.T, query string, args ...any) {
	t.Helper()
	_, err := f.db.ExecContext(f.ctx, query, args...)
	require.NoError(t, err, query)
}

func (f *fixture) populate(t *testing.T) {
	f.exec(t, `INSERT INTO organizations (id, registration_number, organization_name, organization_type_id,
			registration_date, status, district_id, is_compliant, created_at, updated_at)
		VALUES ($1, 'TU-01', 'Dock Workers Union', (SELECT id FROM organization_types WHERE type_name = 'Trade Union'),
			'2019-06-01', 'active', (SELECT id FROM districts WHERE district_name = 'Lilongwe'), TRUE, $2, $2)`,
		f.compliant, now.Add(-2*time.Hour))
	f.exec(t, `INSERT INTO organizations (id, registration_number, organization_name, registration_date,
			status, is_compliant, created_at, updated_at)
		VALUES ($1, 'TU-02', 'Textile Union', '2021-02-01', 'suspended', FALSE, $2, $2)`,
		f.lapsed, now.Add(-time.Hour))

	f.exec(t, `INSERT INTO agreements (id, agreement_number, agreement_name, primary_organization_id,
			effective_date, expiry_date, status, created_at, updated_at)
		VALUES ($1, 'CBA-1', 'Port wages', $2, '2024-01-15', $3, 'active', $4, $4)`,
		uuid.New(), f.compliant, today.AddDays(45), now.AddDate(0, 0, -40))
	f.exec(t, `INSERT INTO ballot_elections (id, election_number, organization_id, election_date, purpose, status,
			created_at, updated_at)
		VALUES ($1, 'EL-1', $2, $3, 'Executive committee', 'scheduled', $4, $4)`,
		uuid.New(), f.compliant, today.AddDays(10), now.Add(-3*time.Hour))
	f.exec(t, `INSERT INTO training_workshops (id, workshop_name, start_date, end_date, status, created_at, updated_at)
		VALUES ($1, 'Shop steward basics', $2, $3, 'scheduled', $4, $4)`,
		uuid.New(), today.AddDays(5), today.AddDays(6), now.AddDate(0, 0, -60))
	f.exec(t, `INSERT INTO compliance_records (id, organization_id, requirement_id, due_date, status, created_at, updated_at)
		VALUES ($1, $2, (SELECT id FROM compliance_requirements WHERE requirement_name = 'Annual Return'), $3, 'pending', $4, $4)`,
		uuid.New(), f.lapsed, today.AddDays(3), now.AddDate(0, 0, -1))
	f.exec(t, `INSERT INTO non_compliance_issues (id, organization_id, issue_date, description, severity,
			resolution_deadline, status, created_at, updated_at)
		VALUES ($1, $2, $3, 'Accounts not audited', 'critical', $4, 'open', $5, $5)`,
		uuid.New(), f.lapsed, today.AddDays(-5), today.AddDays(20), now.AddDate(0, 0, -5))
}

func TestCountsAgainstToday(t *testing.T) {
	f := setup(t)

	sum, err := f.svc.Summary(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, models.OrganizationCounts{Total: 2, Active: 1, Compliant: 1, NonCompliant: 1}, sum.Organizations)
	assert.Equal(t, models.TotalUpcoming{Total: 1, Upcoming: 1}, sum.Elections)
	assert.Equal(t, models.TotalUpcoming{Total: 1, Upcoming: 1}, sum.Workshops)
	assert.Equal(t, models.ComplianceCounts{PendingSubmissions: 1, RecentIssues: 1}, sum.Compliance)
}

func TestBreakdownsLabelMissingLookups(t *testing.T) {
	f := setup(t)

	regions, err := f.store.Breakdown(f.ctx, models.OrganizationsByRegion)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Central": 1, "unknown": 1}, regions)

	compliance, err := f.store.Breakdown(f.ctx, models.OrganizationsByCompliance)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Compliant": 1, "Non-Compliant": 1}, compliance)

	types, err := f.store.Breakdown(f.ctx, models.OrganizationsByType)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Trade Union": 1, "unknown": 1}, types)
}

func TestAgreementStatsBucketsAndMonths(t *testing.T) {
	f := setup(t)

	out, err := f.svc.AgreementStats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Bucket{
		{Name: "0-30", Count: 0}, {Name: "31-60", Count: 1}, {Name: "61-90", Count: 0},
	}, out.ByExpiryPeriod)
	require.Len(t, out.ByMonth, 12)
	assert.Equal(t, models.MonthCount{Month: "January", Count: 1}, out.ByMonth[0])
}

func TestDeadlinesWindow(t *testing.T) {
	f := setup(t)

	out, err := f.svc.Deadlines(f.ctx, 30)
	require.NoError(t, err)
	var got []string
	for _, d := range out {
		got = append(got, d.Date.String()+" "+d.Title)
	}
	assert.Equal(t, []string{
		"2024-03-04 Compliance submission due for Textile Union",
		"2024-03-06 Training workshop: Shop steward basics",
		"2024-03-11 Ballot election for Dock Workers Union",
		"2024-03-21 Non-compliance resolution deadline for Textile Union",
	}, got)
	assert.Nil(t, out[1].EntityID)
	require.NotNil(t, out[2].EntityID)
	assert.Equal(t, f.compliant, *out[2].EntityID)

	wide, err := f.svc.Deadlines(f.ctx, 60)
	require.NoError(t, err)
	assert.Len(t, wide, 5)
}

func TestActivitiesWithinDays(t *testing.T) {
	f := setup(t)

	out, err := f.svc.Activities(f.ctx, 7, 10)
	require.NoError(t, err)
	var types []models.Source
	for _, a := range out {
		types = append(types, a.Type)
	}
	// The agreement and workshop were created outside the window.
	assert.Equal(t, []models.Source{
		models.SourceOrganization, models.SourceOrganization, models.SourceElection,
		models.SourceCompliance, models.SourceIssue,
	}, types)
	assert.Equal(t, "New organization registered: Textile Union", out[0].Title)
	assert.Equal(t, "TU-02", out[0].Description)
	assert.Equal(t, "Annual Return", out[3].Description)

	limited, err := f.svc.Activities(f.ctx, 7, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSupplementaryQueries(t *testing.T) {
	f := setup(t)

	growth, err := f.svc.OrganizationGrowth(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.YearCount{{Year: 2019, Count: 1}, {Year: 2021, Count: 1}}, growth)

	geo, err := f.svc.GeoDistribution(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.GeoCount{{Region: "Central", District: "Lilongwe", Count: 1}}, geo)

	renewals, err := f.svc.UpcomingRenewals(f.ctx)
	require.NoError(t, err)
	require.Len(t, renewals, 1)
	assert.Equal(t, "Port wages", renewals[0].AgreementName)

	ballots, err := f.svc.UpcomingBallots(f.ctx)
	require.NoError(t, err)
	require.Len(t, ballots, 1)
	assert.Equal(t, "EL-1", ballots[0].ElectionNumber)

	flags, err := f.svc.OrganizationCompliance(f.ctx)
	require.NoError(t, err)
	require.Len(t, flags, 2)
	assert.Equal(t, "Dock Workers Union", flags[0].OrganizationName)
	assert.True(t, flags[0].IsCompliant)

	disputes, err := f.svc.DisputeResolution(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, disputes)
}
