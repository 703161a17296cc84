package navigation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/core-stock/internal/application/dto"
	"github.com/jhoicas/core-stock/internal/domain/authz"
	"github.com/jhoicas/core-stock/internal/domain/navigation"
)

func as(roles []string, perms ...string) context.Context {
	return authz.WithAuthorization(context.Background(), authz.NewAuthorization(roles, perms))
}

func paths(items []dto.NavigationItemDTO) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.Path)
		out = append(out, paths(it.Children)...)
	}
	return out
}

func TestMenu_FiltersByAuthorization(t *testing.T) {
	tree := []navigation.Item{
		{Label: "Inicio", Path: "/"},
		{Label: "Compras", Path: "/purchasing", Required: authz.Single(authz.PermPurchasingRead), Children: []navigation.Item{
			{Label: "Órdenes", Path: "/purchasing/orders", Required: authz.Single(authz.PermPurchasingRead)},
			{Label: "Aprobar", Path: "/purchasing/approve", Required: authz.Single(authz.PermPurchasingApprove)},
		}},
		{Label: "Admin", Path: "/admin", Required: authz.Single(authz.PermUsersManage)},
	}
	uc := NewNavigationUseCase(tree)

	assert.Equal(t, []string{"/", "/purchasing", "/purchasing/orders"}, paths(uc.Menu(as([]string{"comprador"}, "po:read"))))
	assert.Len(t, paths(uc.Menu(as([]string{"admin"}))), 5)
	assert.Equal(t, []string{"/"}, paths(uc.Menu(as(nil))))

	// contexto sin autorización: solo nodos abiertos
	assert.Equal(t, []string{"/"}, paths(uc.Menu(context.Background())))
}

func TestMenu_DefaultTree(t *testing.T) {
	uc := NewNavigationUseCase(nil)
	menu := uc.Menu(as([]string{"admin"}))
	require.NotEmpty(t, menu)
	assert.Equal(t, "/", menu[0].Path)
}

func TestActions(t *testing.T) {
	uc := NewNavigationUseCase(nil)
	ctx := as([]string{"bodeguero"}, authz.DefaultPermissions([]string{"bodeguero"})...)

	got := uc.Actions(ctx, string(authz.KindPurchaseOrder))
	assert.Equal(t, string(authz.KindPurchaseOrder), got.Kind)
	assert.Contains(t, got.Actions, "receive")
	assert.NotContains(t, got.Actions, "approve")

	assert.Empty(t, uc.Actions(ctx, "desconocido").Actions)
}

func TestRoles_MatrizPorDefecto(t *testing.T) {
	roles := NewNavigationUseCase(nil).Roles()
	require.Len(t, roles, 5)

	byRole := map[string]dto.RoleDTO{}
	for _, r := range roles {
		byRole[r.Role] = r
	}
	assert.True(t, byRole["admin"].Override)
	assert.Empty(t, byRole["admin"].Permissions)
	assert.False(t, byRole["bodeguero"].Override)
	assert.Contains(t, byRole["bodeguero"].Permissions, "labels:print")
	assert.NotContains(t, byRole["vendedor"].Permissions, "po:read")
}
