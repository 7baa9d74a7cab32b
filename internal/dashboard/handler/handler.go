// Package handler exposes read-only dashboard aggregates under
// /api/dashboard. Every route only needs an authenticated caller.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"registrar/internal/dashboard/models"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/httputil"
	"registrar/pkg/platform/listing"
)

type Service interface {
	Summary(ctx context.Context) (*models.Summary, error)
	Deadlines(ctx context.Context, days int) ([]models.Deadline, error)
	Activities(ctx context.Context, days, limit int) ([]models.Activity, error)
	OrganizationStats(ctx context.Context) (*models.OrganizationStats, error)
	AgreementStats(ctx context.Context) (*models.AgreementStats, error)
	ComplianceStats(ctx context.Context) (*models.ComplianceStats, error)
	TrainingStats(ctx context.Context) (*models.TrainingStats, error)
	ElectionStats(ctx context.Context) (*models.ElectionStats, error)

	OrganizationCompliance(ctx context.Context) ([]models.OrganizationCompliance, error)
	UpcomingRenewals(ctx context.Context) ([]models.Renewal, error)
	UpcomingBallots(ctx context.Context) ([]models.UpcomingBallot, error)
	UpcomingTrainings(ctx context.Context) ([]models.UpcomingTraining, error)
	OrganizationGrowth(ctx context.Context) ([]models.YearCount, error)
	DisputeResolution(ctx context.Context) ([]models.StatusCount, error)
	GeoDistribution(ctx context.Context) ([]models.GeoCount, error)
}

const (
	defaultDays  = 30
	defaultLimit = 10
	maxDays      = 366
	maxLimit     = 100
)

type Handler struct {
	dashboard Service
	logger    *slog.Logger
}

func New(dashboard Service, logger *slog.Logger) *Handler {
	return &Handler{dashboard: dashboard, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/summary", read(h, "Dashboard summary retrieved successfully", h.dashboard.Summary))
	r.Get("/deadlines", h.handleDeadlines)
	r.Get("/activities", h.handleActivities)
	r.Get("/organizations/stats", read(h, "Organization statistics retrieved successfully", h.dashboard.OrganizationStats))
	r.Get("/agreements/stats", read(h, "Agreement statistics retrieved successfully", h.dashboard.AgreementStats))
	r.Get("/compliance/stats", read(h, "Compliance statistics retrieved successfully", h.dashboard.ComplianceStats))
	r.Get("/trainings/stats", read(h, "Training statistics retrieved successfully", h.dashboard.TrainingStats))
	r.Get("/elections/stats", read(h, "Election statistics retrieved successfully", h.dashboard.ElectionStats))

	r.Get("/organization-compliance", read(h, "Organization compliance data retrieved successfully", h.dashboard.OrganizationCompliance))
	r.Get("/upcoming-agreement-renewals", read(h, "Upcoming agreement renewals retrieved successfully", h.dashboard.UpcomingRenewals))
	r.Get("/upcoming-ballots", read(h, "Upcoming ballots retrieved successfully", h.dashboard.UpcomingBallots))
	r.Get("/upcoming-trainings", read(h, "Upcoming trainings retrieved successfully", h.dashboard.UpcomingTrainings))
	r.Get("/organization-growth", read(h, "Organization growth data retrieved successfully", h.dashboard.OrganizationGrowth))
	r.Get("/dispute-resolution", read(h, "Dispute resolution data retrieved successfully", h.dashboard.DisputeResolution))
	r.Get("/geo-distribution", read(h, "Geographic distribution data retrieved successfully", h.dashboard.GeoDistribution))
}

// read adapts a parameterless aggregate to a handler.
func read[T any](h *Handler, message string, load func(context.Context) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := load(r.Context())
		if err != nil {
			httputil.Fail(w, r, h.logger, err)
			return
		}
		httputil.WriteSuccess(w, http.StatusOK, out, message)
	}
}

// bounded parses a positive integer parameter no larger than upper.
func bounded(r *http.Request, name string, def, upper int) (int, error) {
	n, err := listing.IntOr(r.URL.Query(), name, def)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > upper {
		return 0, dErrors.New(dErrors.CodeBadRequest, "Invalid "+name+" parameter")
	}
	return n, nil
}

func (h *Handler) handleDeadlines(w http.ResponseWriter, r *http.Request) {
	days, err := bounded(r, "days", defaultDays, maxDays)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	out, err := h.dashboard.Deadlines(r.Context(), days)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, out, "Upcoming deadlines retrieved successfully")
}

func (h *Handler) handleActivities(w http.ResponseWriter, r *http.Request) {
	days, err := bounded(r, "days", defaultDays, maxDays)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	limit, err := bounded(r, "limit", defaultLimit, maxLimit)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	out, err := h.dashboard.Activities(r.Context(), days, limit)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, out, "Recent activities retrieved successfully")
}
