package entity

import "time"

// User representa un usuario de Core Stock.
// Roles y Permissions alimentan los claims del token; los permisos por defecto de cada
// rol se agregan al iniciar sesión (ver authz.DefaultPermissions).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Roles        []string
	Permissions  []string // llaves de sistema adicionales a las del rol
	Status       string   // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)
