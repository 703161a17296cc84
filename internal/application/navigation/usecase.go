package navigation

import (
	"context"

	"github.com/jhoicas/core-stock/internal/application/dto"
	"github.com/jhoicas/core-stock/internal/domain/authz"
	"github.com/jhoicas/core-stock/internal/domain/navigation"
)

// NavigationUseCase entrega el menú y las acciones permitidas según la autorización del usuario.
type NavigationUseCase struct {
	tree []navigation.Item
}

// NewNavigationUseCase tree nil usa el esquema embebido.
func NewNavigationUseCase(tree []navigation.Item) *NavigationUseCase {
	if tree == nil {
		tree = navigation.Default()
	}
	return &NavigationUseCase{tree: tree}
}

// Menu árbol filtrado con la autorización de ctx, listo para serializar.
func (uc *NavigationUseCase) Menu(ctx context.Context) []dto.NavigationItemDTO {
	return toDTO(navigation.FilterTree(uc.tree, authz.FromContext(ctx)))
}

// Actions acciones que el usuario de ctx puede ejecutar sobre registros de tipo kind.
func (uc *NavigationUseCase) Actions(ctx context.Context, kind string) dto.AllowedActionsDTO {
	return dto.AllowedActionsDTO{
		Kind:    kind,
		Actions: authz.AllowedActions(authz.FromContext(ctx), authz.RecordKind(kind)),
	}
}

// Roles matriz rol → permisos por defecto.
func (uc *NavigationUseCase) Roles() []dto.RoleDTO {
	out := make([]dto.RoleDTO, 0, len(authz.KnownRoles()))
	for _, role := range authz.KnownRoles() {
		out = append(out, dto.RoleDTO{
			Role:        role,
			Override:    role == authz.RoleAdmin,
			Permissions: authz.DefaultPermissions([]string{role}),
		})
	}
	return out
}

func toDTO(items []navigation.Item) []dto.NavigationItemDTO {
	out := make([]dto.NavigationItemDTO, 0, len(items))
	for _, it := range items {
		d := dto.NavigationItemDTO{Label: it.Label, Path: it.Path, Icon: it.Icon}
		if len(it.Children) > 0 {
			d.Children = toDTO(it.Children)
		}
		out = append(out, d)
	}
	return out
}
