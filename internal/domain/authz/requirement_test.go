package authz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/core-stock/internal/domain/authz"
)

func TestRequirement_ValorCeroEsNone(t *testing.T) {
	var r authz.Requirement
	assert.True(t, r.IsNone())
	assert.True(t, r.SatisfiedBy(authz.Authorization{}))
	assert.Equal(t, "none", r.String())
}

func TestRequirement_AdminSatisfaceTodo(t *testing.T) {
	admin := authz.NewAuthorization([]string{"admin"}, nil)
	reqs := []authz.Requirement{
		authz.None(),
		authz.Single(authz.PermUsersManage),
		authz.Single("permiso.inexistente"),
		authz.AnyOf(authz.PermLabelsPrint, authz.PermReportsRead),
	}
	for _, r := range reqs {
		assert.True(t, admin.Satisfies(r), r.String())
	}
}

// [p1, p2] se satisface con cualquiera de los dos, no exige ambos.
func TestRequirement_AnyOfEsOR(t *testing.T) {
	r := authz.AnyOf("p1", "p2")

	assert.True(t, authz.NewAuthorization(nil, []string{"p1"}).Satisfies(r))
	assert.True(t, authz.NewAuthorization(nil, []string{"p2"}).Satisfies(r))
	assert.True(t, authz.NewAuthorization(nil, []string{"p1", "p2"}).Satisfies(r))
	assert.False(t, authz.NewAuthorization(nil, nil).Satisfies(r))
	assert.False(t, authz.NewAuthorization(nil, []string{"p3"}).Satisfies(r))
}

func TestRequirement_SingleConAlias(t *testing.T) {
	r := authz.Single(authz.PermInventoryRead)
	assert.True(t, authz.NewAuthorization([]string{"bodeguero"}, []string{"catalog:read"}).Satisfies(r))
	assert.False(t, authz.NewAuthorization([]string{"bodeguero"}, []string{"po:read"}).Satisfies(r))
}

func TestRequirement_AnyOfVacioSeSatisface(t *testing.T) {
	assert.True(t, authz.AnyOf().SatisfiedBy(authz.Authorization{}))
}

func TestRequirement_AnyOfCopiaLaEntrada(t *testing.T) {
	in := []authz.Permission{"a", "b"}
	r := authz.AnyOf(in...)
	in[0] = "z"
	assert.Equal(t, []authz.Permission{"a", "b"}, r.Permissions())
	assert.Equal(t, "any(a|b)", r.String())
}

func TestAuthorization_RolesYContexto(t *testing.T) {
	a := authz.NewAuthorization([]string{"comprador", "", "auditor"}, []string{"po:read", ""})
	assert.Equal(t, []string{"auditor", "comprador"}, a.Roles())
	assert.Equal(t, []string{"po:read"}, a.Permissions().Strings())
	assert.False(t, a.IsAdmin())

	ctx := authz.WithAuthorization(context.Background(), a)
	got := authz.FromContext(ctx)
	assert.True(t, got.HasRole("comprador"))

	empty := authz.FromContext(context.Background())
	assert.Empty(t, empty.Roles())
	assert.False(t, empty.Satisfies(authz.Single(authz.PermPurchasingRead)))
}
