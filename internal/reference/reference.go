// Package reference holds the lookup tables every registry module points at:
// roles, positions, regions and districts, the typed lookups (organization,
// agreement, dispute, training and document types) and compliance
// requirements. Lookup rows use integer ids.
package reference

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind selects one of the typed lookup tables.
type Kind string

const (
	KindOrganization Kind = "organization"
	KindAgreement    Kind = "agreement"
	KindDispute      Kind = "dispute"
	KindTraining     Kind = "training"
	KindDocument     Kind = "document"
)

var kindTables = map[Kind]string{
	KindOrganization: "organization_types",
	KindAgreement:    "agreement_types",
	KindDispute:      "dispute_types",
	KindTraining:     "training_types",
	KindDocument:     "document_types",
}

// Table returns the table backing k.
func (k Kind) Table() (string, error) {
	t, ok := kindTables[k]
	if !ok {
		return "", fmt.Errorf("unknown lookup kind %q", k)
	}
	return t, nil
}

// Kinds lists every typed lookup.
func Kinds() []Kind {
	return []Kind{KindOrganization, KindAgreement, KindDispute, KindTraining, KindDocument}
}

type Role struct {
	ID          int     `json:"id" yaml:"-"`
	RoleCode    string  `json:"roleCode" yaml:"code"`
	RoleName    string  `json:"roleName" yaml:"name"`
	Description *string `json:"description" yaml:"description"`
}

type Position struct {
	ID           int     `json:"id" yaml:"-"`
	PositionCode string  `json:"positionCode" yaml:"code"`
	PositionName string  `json:"positionName" yaml:"name"`
	SalaryGrade  *string `json:"salaryGrade" yaml:"salaryGrade"`
	Description  *string `json:"description" yaml:"description"`
}

type Region struct {
	ID         int    `json:"id"`
	RegionName string `json:"regionName"`
}

type District struct {
	ID           int     `json:"id"`
	DistrictName string  `json:"districtName"`
	RegionID     int     `json:"regionId"`
	Region       *Region `json:"region,omitempty"`
}

// LookupType is a row of any typed lookup table.
type LookupType struct {
	ID          int     `json:"id" yaml:"-"`
	TypeName    string  `json:"typeName" yaml:"name"`
	Description *string `json:"description" yaml:"description"`
}

type Requirement struct {
	ID              int     `json:"id" yaml:"-"`
	RequirementName string  `json:"requirementName" yaml:"name"`
	Description     *string `json:"description" yaml:"description"`
	LegalReference  *string `json:"legalReference" yaml:"legalReference"`
	Frequency       *string `json:"frequency" yaml:"frequency"`
}

// Reader serves lookups. Missing ids and codes return sentinel.ErrNotFound.
type Reader interface {
	ListRoles(ctx context.Context) ([]Role, error)
	RoleByID(ctx context.Context, id int) (*Role, error)
	RoleByCode(ctx context.Context, code string) (*Role, error)
	ListPositions(ctx context.Context) ([]Position, error)
	PositionByID(ctx context.Context, id int) (*Position, error)
	PositionByCode(ctx context.Context, code string) (*Position, error)
	ListRegions(ctx context.Context) ([]Region, error)
	ListDistricts(ctx context.Context, regionID *int) ([]District, error)
	DistrictByID(ctx context.Context, id int) (*District, error)
	ListTypes(ctx context.Context, kind Kind) ([]LookupType, error)
	TypeByID(ctx context.Context, kind Kind, id int) (*LookupType, error)
	ListRequirements(ctx context.Context) ([]Requirement, error)
	RequirementByID(ctx context.Context, id int) (*Requirement, error)
}

// Writer maintains lookups. Upserts are keyed by the natural name or code;
// CreateType and UpdateType return sentinel.ErrConflict on a taken name and
// DeleteType returns sentinel.ErrReferenced while rows still use the type.
type Writer interface {
	UpsertRole(ctx context.Context, r Role) (Role, error)
	UpsertPosition(ctx context.Context, p Position) (Position, error)
	UpsertRegion(ctx context.Context, name string) (Region, error)
	UpsertDistrict(ctx context.Context, regionID int, name string) (District, error)
	UpsertType(ctx context.Context, kind Kind, t LookupType) (LookupType, error)
	UpsertRequirement(ctx context.Context, r Requirement) (Requirement, error)

	CreateType(ctx context.Context, kind Kind, t *LookupType) error
	UpdateType(ctx context.Context, kind Kind, t *LookupType) error
	DeleteType(ctx context.Context, kind Kind, id int) error
}

type Store interface {
	Reader
	Writer
}

// Seed is the YAML document loaded by the seed command.
type Seed struct {
	Roles        []Role                `yaml:"roles"`
	Positions    []Position            `yaml:"positions"`
	Types        map[Kind][]LookupType `yaml:"types"`
	Regions      []RegionSeed          `yaml:"regions"`
	Requirements []Requirement         `yaml:"requirements"`
}

type RegionSeed struct {
	Name      string   `yaml:"name"`
	Districts []string `yaml:"districts"`
}

//go:embed seed.yaml
var defaultSeed []byte

// DefaultSeed returns the reference data shipped with the binary.
func DefaultSeed() (Seed, error) {
	return ParseSeed(defaultSeed)
}

// ParseSeed decodes a seed document and checks its lookup kinds.
func ParseSeed(raw []byte) (Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Seed{}, fmt.Errorf("parse seed: %w", err)
	}
	for k := range s.Types {
		if _, err := k.Table(); err != nil {
			return Seed{}, err
		}
	}
	return s, nil
}

// Apply upserts every row of s. It is safe to run repeatedly.
func Apply(ctx context.Context, w Writer, s Seed) error {
	for _, r := range s.Roles {
		if _, err := w.UpsertRole(ctx, r); err != nil {
			return fmt.Errorf("seed role %s: %w", r.RoleCode, err)
		}
	}
	for _, p := range s.Positions {
		if _, err := w.UpsertPosition(ctx, p); err != nil {
			return fmt.Errorf("seed position %s: %w", p.PositionCode, err)
		}
	}
	for _, k := range Kinds() {
		for _, t := range s.Types[k] {
			if _, err := w.UpsertType(ctx, k, t); err != nil {
				return fmt.Errorf("seed %s type %s: %w", k, t.TypeName, err)
			}
		}
	}
	for _, rs := range s.Regions {
		region, err := w.UpsertRegion(ctx, rs.Name)
		if err != nil {
			return fmt.Errorf("seed region %s: %w", rs.Name, err)
		}
		for _, d := range rs.Districts {
			if _, err := w.UpsertDistrict(ctx, region.ID, d); err != nil {
				return fmt.Errorf("seed district %s: %w", d, err)
			}
		}
	}
	for _, r := range s.Requirements {
		if _, err := w.UpsertRequirement(ctx, r); err != nil {
			return fmt.Errorf("seed requirement %s: %w", r.RequirementName, err)
		}
	}
	return nil
}
