package authz

import "strings"

type requirementKind uint8

const (
	kindNone requirementKind = iota
	kindSingle
	kindAnyOf
)

// Requirement permiso exigido por un nodo de navegación, una ruta o una acción.
// Es una unión etiquetada: None | Single(p) | AnyOf(p1, p2, ...).
// El valor cero equivale a None.
type Requirement struct {
	kind  requirementKind
	perms []Permission
}

// None no exige permiso; siempre se satisface.
func None() Requirement { return Requirement{} }

// Single exige un permiso concreto (con expansión de alias).
func Single(p Permission) Requirement {
	return Requirement{kind: kindSingle, perms: []Permission{p}}
}

// AnyOf exige CUALQUIERA de los permisos (OR, nunca AND).
// AnyOf() sin elementos se satisface siempre, igual que HasAnyUserPermission.
func AnyOf(perms ...Permission) Requirement {
	cp := make([]Permission, len(perms))
	copy(cp, perms)
	return Requirement{kind: kindAnyOf, perms: cp}
}

// IsNone informa si el requisito es None.
func (r Requirement) IsNone() bool { return r.kind == kindNone }

// IsAnyOf informa si el requisito es una lista OR.
func (r Requirement) IsAnyOf() bool { return r.kind == kindAnyOf }

// Permissions copia de los permisos declarados (vacía para None).
func (r Requirement) Permissions() []Permission {
	out := make([]Permission, len(r.perms))
	copy(out, r.perms)
	return out
}

// SatisfiedBy reglas en orden: None → true; admin → true; Single/AnyOf → alias OR.
func (r Requirement) SatisfiedBy(a Authorization) bool {
	if r.kind == kindNone {
		return true
	}
	if a.IsAdmin() {
		return true
	}
	switch r.kind {
	case kindSingle:
		return HasUserPermission(a.perms, r.perms[0])
	case kindAnyOf:
		return HasAnyUserPermission(a.perms, r.perms)
	default:
		return false
	}
}

func (r Requirement) String() string {
	switch r.kind {
	case kindSingle:
		return string(r.perms[0])
	case kindAnyOf:
		parts := make([]string, len(r.perms))
		for i, p := range r.perms {
			parts[i] = string(p)
		}
		return "any(" + strings.Join(parts, "|") + ")"
	default:
		return "none"
	}
}
