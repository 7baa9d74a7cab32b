// Package handler exposes compliance records, inspections and issues under
// /api/compliance.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"registrar/internal/compliance/models"
	"registrar/internal/reference"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/httputil"
	"registrar/pkg/platform/listing"
)

type Service interface {
	Requirements(ctx context.Context) ([]reference.Requirement, error)

	Records(ctx context.Context, f models.RecordFilter, p listing.Page) (listing.Result[*models.Record], error)
	Record(ctx context.Context, id uuid.UUID) (*models.RecordDetail, error)
	CreateRecord(ctx context.Context, req models.RecordRequest) (*models.Record, error)
	UpdateRecord(ctx context.Context, id uuid.UUID, req models.RecordRequest) (*models.Record, error)
	DeleteRecord(ctx context.Context, id uuid.UUID) error

	Inspections(ctx context.Context, f models.InspectionFilter, p listing.Page) (listing.Result[*models.Inspection], error)
	Inspection(ctx context.Context, id uuid.UUID) (*models.InspectionDetail, error)
	CreateInspection(ctx context.Context, req models.InspectionRequest) (*models.Inspection, error)
	UpdateInspection(ctx context.Context, id uuid.UUID, req models.InspectionRequest) (*models.Inspection, error)
	DeleteInspection(ctx context.Context, id uuid.UUID) error

	Issues(ctx context.Context, f models.IssueFilter, p listing.Page) (listing.Result[*models.Issue], error)
	Issue(ctx context.Context, id uuid.UUID) (*models.IssueDetail, error)
	CreateIssue(ctx context.Context, req models.IssueRequest) (*models.Issue, error)
	UpdateIssue(ctx context.Context, id uuid.UUID, req models.IssueRequest) (*models.Issue, error)
	DeleteIssue(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	compliance Service
	logger     *slog.Logger
}

func New(compliance Service, logger *slog.Logger) *Handler {
	return &Handler{compliance: compliance, logger: logger}
}

var (
	errRecordNotFound     = dErrors.New(dErrors.CodeNotFound, "Compliance record not found")
	errInspectionNotFound = dErrors.New(dErrors.CodeNotFound, "Inspection not found")
	errIssueNotFound      = dErrors.New(dErrors.CodeNotFound, "Non-compliance issue not found")
)

func (h *Handler) Register(r chi.Router) {
	r.Get("/requirements", h.handleRequirements)

	r.Get("/records", h.handleRecords)
	r.Post("/records", h.handleCreateRecord)
	r.Get("/records/{id}", h.handleRecord)
	r.Put("/records/{id}", h.handleUpdateRecord)
	r.Delete("/records/{id}", h.handleDeleteRecord)

	r.Get("/inspections", h.handleInspections)
	r.Post("/inspections", h.handleCreateInspection)
	r.Get("/inspections/{id}", h.handleInspection)
	r.Put("/inspections/{id}", h.handleUpdateInspection)
	r.Delete("/inspections/{id}", h.handleDeleteInspection)

	r.Get("/issues", h.handleIssues)
	r.Post("/issues", h.handleCreateIssue)
	r.Get("/issues/{id}", h.handleIssue)
	r.Put("/issues/{id}", h.handleUpdateIssue)
	r.Delete("/issues/{id}", h.handleDeleteIssue)
}

// respond writes either the failure or the success envelope.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, data any, err error, msg string) {
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, status, data, msg)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, notFound error) (uuid.UUID, bool) {
	id, ok := httputil.PathUUID(r, "id")
	if !ok {
		httputil.Fail(w, r, h.logger, notFound)
	}
	return id, ok
}

func (h *Handler) handleRequirements(w http.ResponseWriter, r *http.Request) {
	out, err := h.compliance.Requirements(r.Context())
	h.respond(w, r, http.StatusOK, out, err, "Compliance requirements retrieved successfully")
}

func parseRecordFilter(r *http.Request) (models.RecordFilter, error) {
	q := r.URL.Query()
	f := models.RecordFilter{Status: listing.String(q, "status")}
	var err error
	if f.OrganizationID, err = listing.UUID(q, "organization"); err != nil {
		return f, err
	}
	if f.RequirementID, err = listing.Int(q, "requirement"); err != nil {
		return f, err
	}
	if f.DueBefore, err = listing.Date(q, "dueBefore"); err != nil {
		return f, err
	}
	if f.DueAfter, err = listing.Date(q, "dueAfter"); err != nil {
		return f, err
	}
	return f, nil
}

func (h *Handler) handleRecords(w http.ResponseWriter, r *http.Request) {
	f, err := parseRecordFilter(r)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	res, err := h.compliance.Records(r.Context(), f, listing.ParsePage(r.URL.Query()))
	h.respond(w, r, http.StatusOK, res, err, "Compliance records retrieved successfully")
}

func (h *Handler) handleRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, errRecordNotFound)
	if !ok {
		return
	}
	d, err := h.compliance.Record(r.Context(), id)
	h.respond(w, r, http.StatusOK, d, err, "Compliance record retrieved successfully")
}

func (h *Handler) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var req models.RecordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	rec, err := h.compliance.CreateRecord(r.Context(), req)
	h.respond(w, r, http.StatusCreated, rec, err, "Compliance record created successfully")
}

func (h *Handler) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, errRecordNotFound)
	if !ok {
		return
	}
	var req models.RecordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	rec, err := h.compliance.UpdateRecord(r.Context(), id, req)
	h.respond(w, r, http.StatusOK, rec, err, "Compliance record updated successfully")
}

func (h *Handler) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, errRecordNotFound)
	if !ok {
		return
	}
	if err := h.compliance.DeleteRecord(r.Context(), id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Compliance record deleted successfully")
}

func parseInspectionFilter(r *http.Request) (models.InspectionFilter, error) {
	q := r.URL.Query()
	f := models.InspectionFilter{Status: listing.String(q, "status")}
	var err error
	if f.OrganizationID, err = listing.UUID(q, "organization"); err != nil {
		return f, err
	}
	if f.InspectorID, err = listing.UUID(q, "inspector"); err != nil {
		return f, err
	}
	if f.DateFrom, err = listing.Date(q, "dateFrom"); err != nil {
		return f, err
	}
	if f.DateTo, err = listing.Date(q, "dateTo"); err != nil {
		return f, err
	}
	return f, nil
}

func (h *Handler) handleInspections(w http.ResponseWriter, r *http.Request) {
	f, err := parseInspectionFilter(r)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	res, err := h.compliance.Inspections(r.Context(), f, listing.ParsePage(r.URL.Query()))
	h.respond(w, r, http.StatusOK, res, err, "Inspections retrieved successfully")
}

func (h *Handler) handleInspection(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, errInspectionNotFound)
	if !ok {
		return
	}
	d, err := h.compliance.Inspection(r.Context(), id)
	h.respond(w, r, http.StatusOK, d, err, "Inspection retrieved successfully")
}

func (h *Handler) handleCreateInspection(w http.ResponseWriter, r *http.Request) {
	var req models.InspectionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	in, err := h.compliance.CreateInspection(r.Context(), req)
	h.respond(w, r, http.StatusCreated, in, err, "Inspection created successfully")
}

func (h *Handler) handleUpdateInspection(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, errInspectionNotFound)
	if !ok {
		return
	}
	var req models.InspectionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	in, err := h.compliance.UpdateInspection(r.Context(), id, req)
	h.respond(w, r, http.StatusOK, in, err, "Inspection updated successfully")
}

func (h *Handler) handleDeleteInspection(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, errInspectionNotFound)
	if !ok {
		return
	}
	if err := h.compliance.DeleteInspection(r.Context(), id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Inspection deleted successfully")
}

func parseIssueFilter(r *http.Request) (models.IssueFilter, error) {
	q := r.URL.Query()
	f := models.IssueFilter{Status: listing.String(q, "status"), Severity: listing.String(q, "severity")}
	var err error
	if f.OrganizationID, err = listing.UUID(q, "organization"); err != nil {
		return f, err
	}
	if f.InspectionID, err = listing.UUID(q, "inspection"); err != nil {
		return f, err
	}
	return f, nil
}

func (h *Handler) handleIssues(w http.ResponseWriter, r *http.Request) {
	f, err := parseIssueFilter(r)
	if err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	res, err := h.compliance.Issues(r.Context(), f, listing.ParsePage(r.URL.Query()))
	h.respond(w, r, http.StatusOK, res, err, "Non-compliance issues retrieved successfully")
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, errIssueNotFound)
	if !ok {
		return
	}
	d, err := h.compliance.Issue(r.Context(), id)
	h.respond(w, r, http.StatusOK, d, err, "Non-compliance issue retrieved successfully")
}

func (h *Handler) handleCreateIssue(w http.ResponseWriter, r *http.Request) {
	var req models.IssueRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	is, err := h.compliance.CreateIssue(r.Context(), req)
	h.respond(w, r, http.StatusCreated, is, err, "Non-compliance issue created successfully")
}

func (h *Handler) handleUpdateIssue(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, errIssueNotFound)
	if !ok {
		return
	}
	var req models.IssueRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	is, err := h.compliance.UpdateIssue(r.Context(), id, req)
	h.respond(w, r, http.StatusOK, is, err, "Non-compliance issue updated successfully")
}

func (h *Handler) handleDeleteIssue(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, errIssueNotFound)
	if !ok {
		return
	}
	if err := h.compliance.DeleteIssue(r.Context(), id); err != nil {
		httputil.Fail(w, r, h.logger, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Non-compliance issue deleted successfully")
}
