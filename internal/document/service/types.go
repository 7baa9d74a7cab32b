package service

import (
	"context"
	"errors"
	"strconv"

	"registrar/internal/document/models"
	"registrar/internal/reference"
	"registrar/internal/resource"
	"registrar/pkg/platform/audit"
	"registrar/pkg/platform/patch"
	"registrar/pkg/platform/sentinel"
)

const (
	typeEntity       = "document_type"
	msgTypeNotFound  = "Document type not found"
	msgTypeNameTaken = "Document type name already exists"
	msgTypeInUse     = "Document type is in use and cannot be deleted"
)

func (s *Service) Types(ctx context.Context) ([]reference.LookupType, error) {
	types, err := s.types.ListTypes(ctx, reference.KindDocument)
	if err != nil {
		return nil, resource.Internal(err, "list document types")
	}
	return types, nil
}

func (s *Service) CreateType(ctx context.Context, req models.TypeRequest) (*reference.LookupType, error) {
	if err := patch.CheckRequired(patch.Req("typeName", req.TypeName)); err != nil {
		return nil, err
	}
	t := &reference.LookupType{TypeName: req.TypeName.Value, Description: req.Description.Ptr()}
	if err := s.types.CreateType(ctx, reference.KindDocument, t); err != nil {
		return nil, s.typeError(err, "create document type")
	}
	s.deps.Audit(ctx, typeEntity, audit.VerbCreated, strconv.Itoa(t.ID))
	return t, nil
}

func (s *Service) UpdateType(ctx context.Context, id int, req models.TypeRequest) (*reference.LookupType, error) {
	t, err := s.types.TypeByID(ctx, reference.KindDocument, id)
	if err != nil {
		return nil, resource.NotFound(err, msgTypeNotFound)
	}
	if err := patch.Assign(&t.TypeName, req.TypeName, "typeName"); err != nil {
		return nil, err
	}
	patch.AssignNullable(&t.Description, req.Description)
	if err := s.types.UpdateType(ctx, reference.KindDocument, t); err != nil {
		return nil, s.typeError(err, "update document type")
	}
	s.deps.Audit(ctx, typeEntity, audit.VerbUpdated, strconv.Itoa(t.ID))
	return t, nil
}

// DeleteType removes an unused document type.
func (s *Service) DeleteType(ctx context.Context, id int) error {
	if _, err := s.types.TypeByID(ctx, reference.KindDocument, id); err != nil {
		return resource.NotFound(err, msgTypeNotFound)
	}
	n, err := s.store.CountByType(ctx, id)
	if err != nil {
		return resource.Internal(err, "count documents by type")
	}
	if n > 0 {
		return s.deps.Conflict(typeEntity, nil, msgTypeInUse)
	}
	if err := s.types.DeleteType(ctx, reference.KindDocument, id); err != nil {
		return s.typeError(err, "delete document type")
	}
	s.deps.Audit(ctx, typeEntity, audit.VerbDeleted, strconv.Itoa(id))
	return nil
}

func (s *Service) typeError(err error, context string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return resource.NotFound(err, msgTypeNotFound)
	case errors.Is(err, sentinel.ErrConflict):
		return s.deps.Conflict(typeEntity, err, msgTypeNameTaken)
	case errors.Is(err, sentinel.ErrReferenced):
		return s.deps.Conflict(typeEntity, err, msgTypeInUse)
	}
	return resource.Internal(err, context)
}
