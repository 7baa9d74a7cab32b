// Package service implements system settings. Access control is applied by
// the router; every route needs settings:manage.
package service

import (
	"context"
	"errors"
	"strings"

	"registrar/internal/resource"
	"registrar/internal/settings/models"
	settingsStore "registrar/internal/settings/store"
	"registrar/pkg/platform/audit"
	"registrar/pkg/platform/patch"
	"registrar/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

type Store interface {
	Create(ctx context.Context, st *models.Setting) error
	Find(ctx context.Context, key string) (*models.Setting, error)
	Update(ctx context.Context, st *models.Setting) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]models.Setting, error)
}

type Service struct {
	store Store
	deps  resource.Deps
}

func New(store Store, opts ...resource.Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("settings store is required")
	}
	return &Service{store: store, deps: resource.NewDeps(opts...)}, nil
}

const (
	entity      = "setting"
	msgNotFound = "Setting not found"
	msgKeyTaken = "Setting with this key already exists"
)

func (s *Service) List(ctx context.Context) ([]models.Setting, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, resource.Internal(err, "list settings")
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, key string) (*models.Setting, error) {
	st, err := s.store.Find(ctx, key)
	if err != nil {
		return nil, resource.NotFound(err, msgNotFound)
	}
	return st, nil
}

func (s *Service) Create(ctx context.Context, req models.SettingRequest) (*models.Setting, error) {
	if err := patch.CheckRequired(
		patch.Req("settingKey", req.SettingKey),
		patch.Req("settingValue", req.SettingValue),
	); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	st := &models.Setting{
		SettingKey:   strings.TrimSpace(req.SettingKey.Value),
		SettingValue: req.SettingValue.Value,
		Description:  req.Description.Ptr(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, st); err != nil {
		if errors.Is(err, settingsStore.ErrKeyTaken) {
			return nil, s.deps.Conflict(entity, err, msgKeyTaken)
		}
		return nil, resource.Internal(err, "create setting")
	}
	s.deps.Audit(ctx, entity, audit.VerbCreated, st.SettingKey)
	return st, nil
}

// Update replaces the value and, when sent, the description.
func (s *Service) Update(ctx context.Context, key string, req models.SettingRequest) (*models.Setting, error) {
	if err := patch.CheckRequired(patch.Req("settingValue", req.SettingValue)); err != nil {
		return nil, err
	}
	st, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	st.SettingValue = req.SettingValue.Value
	patch.AssignNullable(&st.Description, req.Description)
	st.UpdatedAt = requestcontext.Now(ctx)
	if err := s.store.Update(ctx, st); err != nil {
		return nil, resource.NotFound(err, msgNotFound)
	}
	s.deps.Audit(ctx, entity, audit.VerbUpdated, key)
	return st, nil
}

func (s *Service) Delete(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		return resource.NotFound(err, msgNotFound)
	}
	s.deps.Audit(ctx, entity, audit.VerbDeleted, key)
	return nil
}
