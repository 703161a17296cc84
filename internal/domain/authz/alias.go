package authz

// Aliases traduce cada permiso de cara al usuario a las llaves de sistema que lo satisfacen.
// Basta con poseer UNA de las llaves (OR), igual que en los requisitos AnyOf de la navegación.
// Cualquier cambio aquí debe reflejarse en alias_test.go.
var Aliases = map[Permission][]Permission{
	PermDashboardView:     {KeyDashboardRead},
	PermInventoryRead:     {KeyCatalogRead, KeyInventoryReceive},
	PermInventoryWrite:    {KeyCatalogWrite, KeyInventoryAdjust},
	PermPurchasingRead:    {KeyPORead, KeyPOCreate},
	PermPurchasingWrite:   {KeyPOCreate},
	PermPurchasingApprove: {KeyPOApprove},
	PermReceivingWrite:    {KeyInventoryReceive, KeyGRNCreate},
	PermLabelsPrint:       {KeyLabelsPrint},
	PermReportsRead:       {KeyReportsRead},
	PermUsersManage:       {KeyUsersManage},
}

// Expand devuelve una copia de las llaves de sistema asociadas a p (nil si no hay alias).
func Expand(p Permission) []Permission {
	keys, ok := Aliases[p]
	if !ok {
		return nil
	}
	out := make([]Permission, len(keys))
	copy(out, keys)
	return out
}

// HasUserPermission informa si userPerms satisface required: por coincidencia literal o
// porque contiene al menos una de sus llaves de sistema.
//
// No aplica la anulación de admin; eso corresponde al llamador (Requirement.SatisfiedBy
// y el middleware RequirePermission).
func HasUserPermission(userPerms PermissionSet, required Permission) bool {
	if userPerms.Has(required) {
		return true
	}
	for _, key := range Aliases[required] {
		if userPerms.Has(key) {
			return true
		}
	}
	return false
}

// HasAnyUserPermission reducción OR sobre HasUserPermission.
// Una lista vacía se considera satisfecha (política abierta).
func HasAnyUserPermission(userPerms PermissionSet, required []Permission) bool {
	if len(required) == 0 {
		return true
	}
	for _, p := range required {
		if HasUserPermission(userPerms, p) {
			return true
		}
	}
	return false
}
