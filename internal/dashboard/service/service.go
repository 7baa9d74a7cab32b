// Package service assembles dashboard aggregates. Independent queries run
// in parallel and share cancellation: the first failure aborts the rest.
package service

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"registrar/internal/dashboard/models"
	"registrar/internal/platform/tracing"
	"registrar/internal/resource"
	"registrar/pkg/platform/dates"
	"registrar/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

type Store interface {
	Count(ctx context.Context, metric models.Metric, today dates.Date) (int, error)
	Breakdown(ctx context.Context, b models.Breakdown) (map[string]int, error)
	Monthly(ctx context.Context, s models.Series, year int) (map[time.Month]int, error)
	ActiveExpiries(ctx context.Context, from, to dates.Date) ([]dates.Date, error)
	Deadlines(ctx context.Context, src models.Source, from, to dates.Date) ([]models.Deadline, error)
	Activities(ctx context.Context, src models.Source, since time.Time, limit int) ([]models.Activity, error)

	OrganizationCompliance(ctx context.Context) ([]models.OrganizationCompliance, error)
	Renewals(ctx context.Context, from, to dates.Date) ([]models.Renewal, error)
	Ballots(ctx context.Context, from, to dates.Date) ([]models.UpcomingBallot, error)
	Trainings(ctx context.Context, from dates.Date) ([]models.UpcomingTraining, error)
	Growth(ctx context.Context) ([]models.YearCount, error)
	Geo(ctx context.Context) ([]models.GeoCount, error)
}

const (
	component = "dashboard"

	// UpcomingWindow bounds the renewal and ballot lookahead lists.
	UpcomingWindow = 90
)

// ExpiryPeriods are the active-agreement expiry buckets, in days from today.
var ExpiryPeriods = []struct {
	Name     string
	From, To int
}{
	{"0-30", 0, 30},
	{"31-60", 31, 60},
	{"61-90", 61, 90},
}

type Service struct {
	store Store
}

func New(store Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("dashboard store is required")
	}
	return &Service{store: store}, nil
}

func today(ctx context.Context) dates.Date {
	return dates.Today(requestcontext.Now(ctx))
}

// gather runs fns concurrently and returns the first error.
func gather(ctx context.Context, fns ...func(ctx context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		g.Go(func() error { return fn(ctx) })
	}
	return g.Wait()
}

func (s *Service) count(dst *int, m models.Metric, day dates.Date) func(context.Context) error {
	return func(ctx context.Context) error {
		n, err := s.store.Count(ctx, m, day)
		*dst = n
		return err
	}
}

func (s *Service) breakdown(dst *[]models.Bucket, b models.Breakdown) func(context.Context) error {
	return func(ctx context.Context) error {
		counts, err := s.store.Breakdown(ctx, b)
		*dst = buckets(counts)
		return err
	}
}

func (s *Service) monthly(dst *[]models.MonthCount, series models.Series, year int) func(context.Context) error {
	return func(ctx context.Context) error {
		counts, err := s.store.Monthly(ctx, series, year)
		*dst = months(counts)
		return err
	}
}

// buckets orders a grouping by descending count, then name.
func buckets(counts map[string]int) []models.Bucket {
	out := make([]models.Bucket, 0, len(counts))
	for name, n := range counts {
		out = append(out, models.Bucket{Name: name, Count: n})
	}
	slices.SortFunc(out, func(a, b models.Bucket) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// months renders all twelve months, zero-filled.
func months(counts map[time.Month]int) []models.MonthCount {
	out := make([]models.MonthCount, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, models.MonthCount{Month: m.String(), Count: counts[m]})
	}
	return out
}

func (s *Service) Summary(ctx context.Context) (_ *models.Summary, err error) {
	ctx, span := tracing.Start(ctx, component, "summary")
	defer func() { tracing.End(span, err) }()

	day := today(ctx)
	var out models.Summary
	err = gather(ctx,
		s.count(&out.Organizations.Total, models.OrganizationsTotal, day),
		s.count(&out.Organizations.Active, models.OrganizationsActive, day),
		s.count(&out.Organizations.Compliant, models.OrganizationsCompliant, day),
		s.count(&out.Agreements.Total, models.AgreementsTotal, day),
		s.count(&out.Agreements.Active, models.AgreementsActive, day),
		s.count(&out.Elections.Total, models.ElectionsTotal, day),
		s.count(&out.Elections.Upcoming, models.ElectionsUpcoming, day),
		s.count(&out.Workshops.Total, models.WorkshopsTotal, day),
		s.count(&out.Workshops.Upcoming, models.WorkshopsUpcoming, day),
		s.count(&out.Compliance.PendingSubmissions, models.PendingSubmissions, day),
		s.count(&out.Compliance.RecentIssues, models.RecentIssues, day),
	)
	if err != nil {
		return nil, resource.Internal(err, "load dashboard summary")
	}
	out.Organizations.NonCompliant = out.Organizations.Total - out.Organizations.Compliant
	return &out, nil
}

// Deadlines merges every dated obligation in [today, today+days], ordered
// by date, then type, then title.
func (s *Service) Deadlines(ctx context.Context, days int) (_ []models.Deadline, err error) {
	ctx, span := tracing.Start(ctx, component, "deadlines")
	defer func() { tracing.End(span, err) }()

	from := today(ctx)
	to := from.AddDays(days)
	parts := make([][]models.Deadline, len(models.DeadlineSources))
	fns := make([]func(context.Context) error, 0, len(parts))
	for i, src := range models.DeadlineSources {
		fns = append(fns, func(ctx context.Context) error {
			items, err := s.store.Deadlines(ctx, src, from, to)
			parts[i] = items
			return err
		})
	}
	if err = gather(ctx, fns...); err != nil {
		return nil, resource.Internal(err, "load deadlines")
	}

	out := slices.Concat(parts...)
	if out == nil {
		out = []models.Deadline{}
	}
	slices.SortStableFunc(out, func(a, b models.Deadline) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}
		if c := cmp.Compare(a.Type, b.Type); c != 0 {
			return c
		}
		return cmp.Compare(a.Title, b.Title)
	})
	return out, nil
}

// Activities merges records created since the start of today-days, newest
// first, truncated to limit.
func (s *Service) Activities(ctx context.Context, days, limit int) (_ []models.Activity, err error) {
	ctx, span := tracing.Start(ctx, component, "activities")
	defer func() { tracing.End(span, err) }()

	since := today(ctx).AddDays(-days).Time()
	parts := make([][]models.Activity, len(models.ActivitySources))
	fns := make([]func(context.Context) error, 0, len(parts))
	for i, src := range models.ActivitySources {
		fns = append(fns, func(ctx context.Context) error {
			items, err := s.store.Activities(ctx, src, since, limit)
			parts[i] = items
			return err
		})
	}
	if err = gather(ctx, fns...); err != nil {
		return nil, resource.Internal(err, "load activities")
	}

	out := slices.Concat(parts...)
	slices.SortStableFunc(out, func(a, b models.Activity) int {
		return b.Date.Compare(a.Date)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []models.Activity{}
	}
	return out, nil
}

func (s *Service) OrganizationStats(ctx context.Context) (*models.OrganizationStats, error) {
	var out models.OrganizationStats
	var compliance map[string]int
	err := gather(ctx,
		s.breakdown(&out.ByType, models.OrganizationsByType),
		s.breakdown(&out.ByStatus, models.OrganizationsByStatus),
		s.breakdown(&out.ByRegion, models.OrganizationsByRegion),
		func(ctx context.Context) error {
			var err error
			compliance, err = s.store.Breakdown(ctx, models.OrganizationsByCompliance)
			return err
		},
	)
	if err != nil {
		return nil, resource.Internal(err, "load organization stats")
	}
	out.ByCompliance = []models.Bucket{
		{Name: "Compliant", Count: compliance["Compliant"]},
		{Name: "Non-Compliant", Count: compliance["Non-Compliant"]},
	}
	return &out, nil
}

// AgreementStats buckets active agreements by days until expiry and counts
// effective dates per month of the current year.
func (s *Service) AgreementStats(ctx context.Context) (*models.AgreementStats, error) {
	day := today(ctx)
	last := ExpiryPeriods[len(ExpiryPeriods)-1].To
	var out models.AgreementStats
	var expiries []dates.Date
	err := gather(ctx,
		s.breakdown(&out.ByStatus, models.AgreementsByStatus),
		s.monthly(&out.ByMonth, models.AgreementsEffective, day.Year()),
		func(ctx context.Context) error {
			var err error
			expiries, err = s.store.ActiveExpiries(ctx, day, day.AddDays(last))
			return err
		},
	)
	if err != nil {
		return nil, resource.Internal(err, "load agreement stats")
	}
	out.ByExpiryPeriod = expiryBuckets(day, expiries)
	return &out, nil
}

func expiryBuckets(day dates.Date, expiries []dates.Date) []models.Bucket {
	out := make([]models.Bucket, len(ExpiryPeriods))
	for i, p := range ExpiryPeriods {
		out[i].Name = p.Name
	}
	for _, exp := range expiries {
		d := day.DaysUntil(exp)
		for i, p := range ExpiryPeriods {
			if d >= p.From && d <= p.To {
				out[i].Count++
				break
			}
		}
	}
	return out
}

func (s *Service) ComplianceStats(ctx context.Context) (*models.ComplianceStats, error) {
	var out models.ComplianceStats
	err := gather(ctx,
		s.breakdown(&out.RecordsByStatus, models.RecordsByStatus),
		s.breakdown(&out.IssuesByStatus, models.IssuesByStatus),
		s.breakdown(&out.IssuesBySeverity, models.IssuesBySeverity),
		s.breakdown(&out.InspectionsByStatus, models.InspectionsByStatus),
		s.monthly(&out.InspectionsByMonth, models.InspectionsHeld, today(ctx).Year()),
	)
	if err != nil {
		return nil, resource.Internal(err, "load compliance stats")
	}
	return &out, nil
}

func (s *Service) TrainingStats(ctx context.Context) (*models.TrainingStats, error) {
	day := today(ctx)
	var out models.TrainingStats
	err := gather(ctx,
		s.breakdown(&out.ByStatus, models.WorkshopsByStatus),
		s.breakdown(&out.ByType, models.WorkshopsByType),
		s.monthly(&out.ByMonth, models.WorkshopsStarting, day.Year()),
		s.breakdown(&out.Participants.ByAttendance, models.ParticipantsByAttendance),
		s.count(&out.Participants.Total, models.ParticipantsTotal, day),
		s.count(&out.Participants.CertificatesIssued, models.CertificatesIssued, day),
	)
	if err != nil {
		return nil, resource.Internal(err, "load training stats")
	}
	return &out, nil
}

func (s *Service) ElectionStats(ctx context.Context) (*models.ElectionStats, error) {
	var out models.ElectionStats
	err := gather(ctx,
		s.breakdown(&out.ByStatus, models.ElectionsByStatus),
		s.monthly(&out.ByMonth, models.ElectionsHeld, today(ctx).Year()),
	)
	if err != nil {
		return nil, resource.Internal(err, "load election stats")
	}
	return &out, nil
}

func (s *Service) OrganizationCompliance(ctx context.Context) ([]models.OrganizationCompliance, error) {
	out, err := s.store.OrganizationCompliance(ctx)
	if err != nil {
		return nil, resource.Internal(err, "load organization compliance")
	}
	return out, nil
}

func (s *Service) UpcomingRenewals(ctx context.Context) ([]models.Renewal, error) {
	day := today(ctx)
	out, err := s.store.Renewals(ctx, day, day.AddDays(UpcomingWindow))
	if err != nil {
		return nil, resource.Internal(err, "load agreement renewals")
	}
	return out, nil
}

func (s *Service) UpcomingBallots(ctx context.Context) ([]models.UpcomingBallot, error) {
	day := today(ctx)
	out, err := s.store.Ballots(ctx, day, day.AddDays(UpcomingWindow))
	if err != nil {
		return nil, resource.Internal(err, "load upcoming ballots")
	}
	return out, nil
}

func (s *Service) UpcomingTrainings(ctx context.Context) ([]models.UpcomingTraining, error) {
	out, err := s.store.Trainings(ctx, today(ctx))
	if err != nil {
		return nil, resource.Internal(err, "load upcoming trainings")
	}
	return out, nil
}

func (s *Service) OrganizationGrowth(ctx context.Context) ([]models.YearCount, error) {
	out, err := s.store.Growth(ctx)
	if err != nil {
		return nil, resource.Internal(err, "load organization growth")
	}
	return out, nil
}

// DisputeResolution counts disputes per status, ordered by status.
func (s *Service) DisputeResolution(ctx context.Context) ([]models.StatusCount, error) {
	counts, err := s.store.Breakdown(ctx, models.DisputesByStatus)
	if err != nil {
		return nil, resource.Internal(err, "load dispute resolution")
	}
	out := make([]models.StatusCount, 0, len(counts))
	for status, n := range counts {
		out = append(out, models.StatusCount{Status: status, Count: n})
	}
	slices.SortFunc(out, func(a, b models.StatusCount) int { return cmp.Compare(a.Status, b.Status) })
	return out, nil
}

func (s *Service) GeoDistribution(ctx context.Context) ([]models.GeoCount, error) {
	out, err := s.store.Geo(ctx)
	if err != nil {
		return nil, resource.Internal(err, "load geographic distribution")
	}
	return out, nil
}
