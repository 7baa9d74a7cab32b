// Package resource carries what every registry service shares: the optional
// collaborators (logger, audit publisher, metrics, transaction runner), audit
// and metric recording for mutations, and translation of store sentinels into
// coded domain errors.
package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"registrar/internal/platform/metrics"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/audit"
	"registrar/pkg/platform/patch"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/platform/tx"
)

// Deps are the collaborators a service may be given. Zero values are safe:
// logging falls back to slog.Default, audit and metrics are skipped and
// transactions run inline.
type Deps struct {
	Logger    *slog.Logger
	Publisher audit.Emitter
	Metrics   *metrics.Metrics
	Tx        tx.Runner
}

type Option func(*Deps)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Deps) { d.Logger = logger }
}

func WithAuditPublisher(p audit.Emitter) Option {
	return func(d *Deps) { d.Publisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Deps) { d.Metrics = m }
}

// WithTxRunner scopes multi-statement writes in one transaction.
func WithTxRunner(r tx.Runner) Option {
	return func(d *Deps) { d.Tx = r }
}

func NewDeps(opts ...Option) Deps {
	d := Deps{Logger: slog.Default(), Tx: tx.NopRunner{}}
	for _, opt := range opts {
		opt(&d)
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Tx == nil {
		d.Tx = tx.NopRunner{}
	}
	return d
}

// Created counts and audits a new entity.
func (d Deps) Created(ctx context.Context, entity string, id uuid.UUID) {
	if d.Metrics != nil {
		d.Metrics.IncrementCreated(entity)
	}
	d.record(ctx, entity, audit.VerbCreated, id.String())
}

func (d Deps) Updated(ctx context.Context, entity string, id uuid.UUID) {
	d.record(ctx, entity, audit.VerbUpdated, id.String())
}

func (d Deps) Deleted(ctx context.Context, entity string, id uuid.UUID) {
	d.record(ctx, entity, audit.VerbDeleted, id.String())
}

// Audit records a mutation of an entity keyed by something other than a UUID.
func (d Deps) Audit(ctx context.Context, entity string, verb audit.Verb, key string) {
	d.record(ctx, entity, verb, key)
}

func (d Deps) record(ctx context.Context, entity string, verb audit.Verb, key string) {
	audit.Record(ctx, d.Logger, d.Publisher, audit.Event{
		Action:     audit.EntityAction(entity, verb),
		EntityType: entity,
		EntityID:   key,
	})
}

// Conflict reports a natural-key collision as a 409 and counts it.
func (d Deps) Conflict(entity string, err error, message string) error {
	if d.Metrics != nil {
		d.Metrics.IncrementConflict(entity)
	}
	if err == nil {
		return dErrors.New(dErrors.CodeConflict, message)
	}
	return dErrors.Wrap(err, dErrors.CodeConflict, message)
}

// NotFound maps a store miss to a 404 with message and anything else to an
// internal error.
func NotFound(err error, message string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, message)
	}
	return Internal(err, message)
}

// Internal wraps an unexpected store failure. The message is logged, never
// rendered.
func Internal(err error, context string) error {
	if _, ok := dErrors.As(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, context)
}

// InvalidReference maps a missing lookup or body reference to a 400
// "Invalid <field>".
func InvalidReference(err error, field string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "Invalid "+field)
	}
	return Internal(err, fmt.Sprintf("resolve %s", field))
}

// Enum lower-cases v and checks it against allowed.
func Enum(field, v string, allowed []string) (string, error) {
	norm := strings.ToLower(strings.TrimSpace(v))
	if !slices.Contains(allowed, norm) {
		return "", dErrors.New(dErrors.CodeBadRequest, "Invalid "+field)
	}
	return norm, nil
}

// AssignEnum validates and writes a set enum field. Null is rejected.
func AssignEnum(dst *string, f patch.Field[string], field string, allowed []string) error {
	if !f.Set {
		return nil
	}
	if f.Null {
		return dErrors.New(dErrors.CodeBadRequest, field+" cannot be null")
	}
	v, err := Enum(field, f.Value, allowed)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// ParseID parses a UUID sent in a request body. A malformed value is a 400
// "Invalid <field>".
func ParseID(field, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "Invalid "+field)
	}
	return id, nil
}

// OptionalID parses an optional UUID reference; absent, null and empty
// values yield nil.
func OptionalID(field string, f patch.Field[string]) (*uuid.UUID, error) {
	if !f.Present() || strings.TrimSpace(f.Value) == "" {
		return nil, nil
	}
	id, err := ParseID(field, f.Value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// AssignID writes a set, required UUID reference.
func AssignID(dst *uuid.UUID, f patch.Field[string], field string) error {
	if !f.Set {
		return nil
	}
	if f.Null {
		return dErrors.New(dErrors.CodeBadRequest, field+" cannot be null")
	}
	id, err := ParseID(field, f.Value)
	if err != nil {
		return err
	}
	*dst = id
	return nil
}

// AssignOptionalID writes a set, nullable UUID reference.
func AssignOptionalID(dst **uuid.UUID, f patch.Field[string], field string) error {
	if !f.Set {
		return nil
	}
	id, err := OptionalID(field, f)
	if err != nil {
		return err
	}
	*dst = id
	return nil
}
