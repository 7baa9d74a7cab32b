package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	authmodels "registrar/internal/auth/models"
	"registrar/internal/auth/secrets"
	userstore "registrar/internal/auth/store/user"
	"registrar/internal/authz"
	"registrar/internal/platform/postgres"
	"registrar/internal/reference"
	refstore "registrar/internal/reference/store"
	mail "registrar/pkg/email"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/platform/tx"
)

// AdminSeed bootstraps the first administrator.
type AdminSeed struct {
	Username  string `yaml:"username"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
}

// SeedFile is the reference data plus an optional admin account.
type SeedFile struct {
	Reference reference.Seed
	Admin     *AdminSeed
}

// ParseSeedFile decodes a seed document. Without raw the shipped reference
// data is used.
func ParseSeedFile(raw []byte) (SeedFile, error) {
	if len(raw) == 0 {
		ref, err := reference.DefaultSeed()
		return SeedFile{Reference: ref}, err
	}
	ref, err := reference.ParseSeed(raw)
	if err != nil {
		return SeedFile{}, err
	}
	var extra struct {
		Admin *AdminSeed `yaml:"admin"`
	}
	if err := yaml.Unmarshal(raw, &extra); err != nil {
		return SeedFile{}, fmt.Errorf("parse seed admin: %w", err)
	}
	if extra.Admin != nil {
		if err := extra.Admin.validate(); err != nil {
			return SeedFile{}, err
		}
	}
	return SeedFile{Reference: ref, Admin: extra.Admin}, nil
}

func (a *AdminSeed) validate() error {
	for _, f := range []struct{ name, value string }{
		{"username", a.Username},
		{"email", a.Email},
		{"password", a.Password},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("seed admin: %s is required", f.name)
		}
	}
	return nil
}

// AdminUsers is what the admin bootstrap needs from the user store.
type AdminUsers interface {
	FindByEmail(ctx context.Context, email string) (*authmodels.User, error)
	Create(ctx context.Context, user *authmodels.User) error
}

// Roles resolves the admin role.
type Roles interface {
	RoleByCode(ctx context.Context, code string) (*reference.Role, error)
}

// EnsureAdmin creates the admin account unless one with its email exists.
// Missing names are derived from the email. It reports whether an account was
// created.
func EnsureAdmin(ctx context.Context, users AdminUsers, roles Roles, a AdminSeed, now time.Time) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(a.Email))
	if _, err := users.FindByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return false, fmt.Errorf("look up admin: %w", err)
	}

	role, err := roles.RoleByCode(ctx, string(authz.RoleSuperAdmin))
	if err != nil {
		return false, fmt.Errorf("resolve %s role: %w", authz.RoleSuperAdmin, err)
	}
	first, last := a.FirstName, a.LastName
	if first == "" || last == "" {
		df, dl := mail.NameParts(email, "Admin")
		if first == "" {
			first = df
		}
		if last == "" {
			last = dl
		}
	}
	hash, err := secrets.Hash(a.Password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	u := &authmodels.User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(a.Username),
		Email:        email,
		PasswordHash: hash,
		FirstName:    first,
		LastName:     last,
		RoleID:       &role.ID,
		Status:       authmodels.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, u); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}

func NewSeedCommand(opts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference data and an optional admin account",
		Long: `Upsert roles, positions, lookup types, regions with districts and
compliance requirements, then create the admin account named in the file
when it does not exist yet.

Without --file the reference data shipped with the binary is loaded.

Example:
  registrar seed --file seed.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var raw []byte
			if file != "" {
				b, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read seed file: %w", err)
				}
				raw = b
			}
			seed, err := ParseSeedFile(raw)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := postgres.Open(ctx, opts.Config.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			refs := refstore.NewPostgres(db)
			users := userstore.NewPostgres(db)
			created := false
			err = tx.SQLRunner{DB: db}.RunInTx(ctx, func(ctx context.Context) error {
				if err := reference.Apply(ctx, refs, seed.Reference); err != nil {
					return err
				}
				if seed.Admin == nil {
					return nil
				}
				created, err = EnsureAdmin(ctx, users, refs, *seed.Admin, time.Now().UTC())
				return err
			})
			if err != nil {
				return err
			}
			opts.Logger.Info("seed applied", "file", file, "admin_created", created)
			fmt.Fprintln(cmd.OutOrStdout(), "seed applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to a YAML seed file")
	return cmd
}
