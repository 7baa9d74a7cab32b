// Package authz is the closed role enum and the capability table that
// privileged operations are checked against.
//
// Roles are matched by exact code and capabilities by set membership. A role
// code that is not in the enum resolves to RoleUnknown, which holds nothing.
package authz

import (
	"context"
	"net/http"
	"slices"

	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/httputil"
	"registrar/pkg/requestcontext"
)

// Role is a user role code.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleRegistrar  Role = "REGISTRAR"
	RoleInspector  Role = "INSPECTOR"
	RoleDataEntry  Role = "DATA_ENTRY"
	RoleViewer     Role = "VIEWER"
	RoleUnknown    Role = ""
)

// Capability names one privileged operation family.
type Capability string

const (
	OrganizationsDelete Capability = "organizations:delete"
	AgreementsDelete    Capability = "agreements:delete"
	ElectionsDelete     Capability = "elections:delete"
	WorkshopsDelete     Capability = "workshops:delete"
	WorkshopsManage     Capability = "workshops:manage"
	DocumentsDeleteAny  Capability = "documents:delete-any"
	DocumentTypesManage Capability = "document-types:manage"
	UsersManage         Capability = "users:manage"
	SettingsManage      Capability = "settings:manage"
	NotificationsManage Capability = "notifications:manage"
	RolesRead           Capability = "roles:read"
)

var roles = []Role{RoleSuperAdmin, RoleAdmin, RoleRegistrar, RoleInspector, RoleDataEntry, RoleViewer}

var descriptions = map[Capability]string{
	OrganizationsDelete: "delete organizations",
	AgreementsDelete:    "delete agreements",
	ElectionsDelete:     "delete elections",
	WorkshopsDelete:     "delete workshops",
	WorkshopsManage:     "manage workshops",
	DocumentsDeleteAny:  "delete documents uploaded by other users",
	DocumentTypesManage: "manage document types",
	UsersManage:         "manage users",
	SettingsManage:      "manage system settings",
	NotificationsManage: "manage notifications",
	RolesRead:           "view roles",
}

var administrative = []Capability{
	OrganizationsDelete, AgreementsDelete, ElectionsDelete, WorkshopsDelete,
	WorkshopsManage, DocumentsDeleteAny, DocumentTypesManage, UsersManage, SettingsManage,
	NotificationsManage, RolesRead,
}

var grants = map[Role][]Capability{
	RoleSuperAdmin: administrative,
	RoleAdmin:      administrative,
}

// ParseRole maps a stored role code onto the enum.
func ParseRole(code string) Role {
	r := Role(code)
	if slices.Contains(roles, r) {
		return r
	}
	return RoleUnknown
}

// Roles lists the known roles in rank order.
func Roles() []Role {
	return slices.Clone(roles)
}

// Can reports whether r holds c.
func (r Role) Can(c Capability) bool {
	return slices.Contains(grants[r], c)
}

// Allows reports whether the role code holds c.
func Allows(roleCode string, c Capability) bool {
	return ParseRole(roleCode).Can(c)
}

// Describe is the human phrase for c, used in 403 messages.
func Describe(c Capability) string {
	if d, ok := descriptions[c]; ok {
		return d
	}
	return string(c)
}

// Forbidden is the error returned when a caller lacks c.
func Forbidden(c Capability) error {
	return dErrors.New(dErrors.CodeForbidden, "You do not have permission to "+Describe(c))
}

// Grant is one row of the rendered capability table.
type Grant struct {
	Capability  Capability `json:"capability"`
	Description string     `json:"description"`
	Roles       []Role     `json:"roles"`
}

// Table renders the capability table in a stable order.
func Table() []Grant {
	out := make([]Grant, 0, len(administrative))
	for _, c := range administrative {
		g := Grant{Capability: c, Description: Describe(c), Roles: []Role{}}
		for _, r := range roles {
			if r.Can(c) {
				g.Roles = append(g.Roles, r)
			}
		}
		out = append(out, g)
	}
	return out
}

// Check returns an Unauthorized error when ctx carries no caller and a
// Forbidden one when the caller's role lacks c. Handlers that must report a
// missing row before a missing grant call it after their lookup.
func Check(ctx context.Context, c Capability) error {
	caller, ok := requestcontext.CallerFrom(ctx)
	if !ok {
		return dErrors.New(dErrors.CodeUnauthorized, "Token is missing")
	}
	if !Allows(caller.Role, c) {
		return Forbidden(c)
	}
	return nil
}

// RequireCapability rejects callers without c before the handler runs.
func RequireCapability(c Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := Check(r.Context(), c); err != nil {
				httputil.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
