package dto

// NavigationItemDTO nodo del menú visible para el usuario.
type NavigationItemDTO struct {
	Label    string              `json:"label"`
	Path     string              `json:"path"`
	Icon     string              `json:"icon,omitempty"`
	Children []NavigationItemDTO `json:"children,omitempty"`
}

// AllowedActionsDTO acciones permitidas sobre un tipo de registro (GET /api/authz/actions/:kind).
type AllowedActionsDTO struct {
	Kind    string   `json:"kind"`
	Actions []string `json:"actions"`
}

// RoleDTO permisos por defecto de un rol (GET /api/authz/roles). Admin: Override true y sin lista.
type RoleDTO struct {
	Role        string   `json:"role"`
	Override    bool     `json:"override"`
	Permissions []string `json:"permissions"`
}
