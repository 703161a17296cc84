package authz

import "sort"

// RolePermissions llaves de sistema que recibe cada rol por defecto al iniciar sesión.
// admin no figura: su anulación no depende de permisos.
var RolePermissions = map[string][]Permission{
	RoleBodeguero: {KeyDashboardRead, KeyCatalogRead, KeyInventoryReceive, KeyInventoryAdjust, KeyGRNCreate, KeyLabelsPrint, KeyPORead},
	RoleComprador: {KeyDashboardRead, KeyCatalogRead, KeyPORead, KeyPOCreate, KeyReportsRead},
	RoleVendedor:  {KeyDashboardRead, KeyCatalogRead},
	RoleAuditor:   {KeyDashboardRead, KeyCatalogRead, KeyPORead, KeyReportsRead},
}

// KnownRoles roles que reconoce el sistema, en orden alfabético.
func KnownRoles() []string {
	return []string{RoleAdmin, RoleAuditor, RoleBodeguero, RoleComprador, RoleVendedor}
}

// DefaultPermissions une los permisos por defecto de los roles con los extras del usuario.
// El resultado está ordenado y sin duplicados. Roles desconocidos no aportan nada.
func DefaultPermissions(roles []string, extra ...string) []string {
	seen := make(map[string]struct{})
	for _, role := range roles {
		for _, p := range RolePermissions[role] {
			seen[string(p)] = struct{}{}
		}
	}
	for _, p := range extra {
		if p != "" {
			seen[p] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
