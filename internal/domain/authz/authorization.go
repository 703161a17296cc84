package authz

import (
	"context"
	"sort"
)

// Roles conocidos. Solo RoleAdmin tiene semántica especial.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleComprador = "comprador"
	RoleVendedor  = "vendedor"
	RoleAuditor   = "auditor"
)

// Authorization roles y permisos del usuario actual. Es un valor inmutable que se pasa
// explícitamente (parámetros o contexto de la petición), nunca un singleton.
type Authorization struct {
	roles map[string]struct{}
	perms PermissionSet
}

// NewAuthorization construye la autorización a partir de los claims del token.
func NewAuthorization(roles, permissions []string) Authorization {
	r := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		if role == "" {
			continue
		}
		r[role] = struct{}{}
	}
	return Authorization{roles: r, perms: NewPermissionSet(permissions...)}
}

// HasRole coincidencia exacta de rol.
func (a Authorization) HasRole(role string) bool {
	_, ok := a.roles[role]
	return ok
}

// IsAdmin el rol admin satisface cualquier requisito.
func (a Authorization) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}

// Roles devuelve los roles ordenados.
func (a Authorization) Roles() []string {
	out := make([]string, 0, len(a.roles))
	for r := range a.roles {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Permissions devuelve el conjunto de permisos tal cual (sin expandir).
func (a Authorization) Permissions() PermissionSet {
	return a.perms
}

// Satisfies evalúa un requisito con anulación de admin.
func (a Authorization) Satisfies(r Requirement) bool {
	return r.SatisfiedBy(a)
}

type ctxKey struct{}

// WithAuthorization adjunta la autorización al contexto.
func WithAuthorization(ctx context.Context, a Authorization) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext recupera la autorización; si no hay, devuelve una vacía (sin roles ni permisos).
func FromContext(ctx context.Context) Authorization {
	if ctx == nil {
		return Authorization{}
	}
	a, _ := ctx.Value(ctxKey{}).(Authorization)
	return a
}
