// Package authz resuelve permisos de usuario: coincidencia directa, alias entre
// los dos esquemas de nombres y la anulación por rol admin.
//
// Todo el paquete es puro: no guarda estado global y ninguna función retorna error.
// Un conjunto de permisos vacío o nil simplemente no satisface nada.
package authz

import "sort"

// Permission nombre de un permiso. Conviven dos esquemas:
//   - nombres de cara al usuario, con punto: "inventory.read"
//   - llaves de sistema, con dos puntos: "catalog:read"
type Permission string

// Permisos de cara al usuario (los que declaran la navegación y las rutas).
const (
	PermDashboardView     Permission = "dashboard.view"
	PermInventoryRead     Permission = "inventory.read"
	PermInventoryWrite    Permission = "inventory.write"
	PermPurchasingRead    Permission = "purchasing.read"
	PermPurchasingWrite   Permission = "purchasing.write"
	PermPurchasingApprove Permission = "purchasing.approve"
	PermReceivingWrite    Permission = "receiving.write"
	PermLabelsPrint       Permission = "labels.print"
	PermReportsRead       Permission = "reports.read"
	PermUsersManage       Permission = "users.manage"
)

// Llaves de sistema (las que viajan en el token).
const (
	KeyDashboardRead    Permission = "dashboard:read"
	KeyCatalogRead      Permission = "catalog:read"
	KeyCatalogWrite     Permission = "catalog:write"
	KeyInventoryReceive Permission = "inventory:receive"
	KeyInventoryAdjust  Permission = "inventory:adjust"
	KeyPORead           Permission = "po:read"
	KeyPOCreate         Permission = "po:create"
	KeyPOApprove        Permission = "po:approve"
	KeyGRNCreate        Permission = "grn:create"
	KeyLabelsPrint      Permission = "labels:print"
	KeyReportsRead      Permission = "reports:read"
	KeyUsersManage      Permission = "users:manage"
)

// SystemKeys devuelve todas las llaves de sistema conocidas, ordenadas.
func SystemKeys() []Permission {
	keys := []Permission{
		KeyDashboardRead, KeyCatalogRead, KeyCatalogWrite,
		KeyInventoryReceive, KeyInventoryAdjust,
		KeyPORead, KeyPOCreate, KeyPOApprove, KeyGRNCreate,
		KeyLabelsPrint, KeyReportsRead, KeyUsersManage,
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// PermissionSet conjunto de permisos que posee un usuario.
// Un PermissionSet nil es válido y no contiene nada.
type PermissionSet map[Permission]struct{}

// NewPermissionSet construye el conjunto ignorando cadenas vacías.
func NewPermissionSet(perms ...string) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		if p == "" {
			continue
		}
		set[Permission(p)] = struct{}{}
	}
	return set
}

// Has informa coincidencia literal (sin alias).
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Strings devuelve los permisos ordenados, útil para claims y respuestas JSON.
func (s PermissionSet) Strings() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, string(p))
	}
	sort.Strings(out)
	return out
}
