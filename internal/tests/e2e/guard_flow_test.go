package e2e

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

func TestGuardRedirectsAnonymousToLogin(t *testing.T) {
	ts := NewTestServer(t)

	d := ts.Container.Guard.Evaluate("/landlord/properties", domain.RoleLandlord)
	assert.Equal(t, domain.DecisionNotAuthenticated, d.State)
	assert.Equal(t, "/login?from=%2Flandlord%2Fproperties", d.RedirectTo)
	assert.False(t, d.Render())
}

func TestGuardRoleMatrix(t *testing.T) {
	ts := NewTestServer(t)
	reg, _ := seedTenant(t, ts)
	login(t, ts, reg)

	tests := []struct {
		name  string
		path  string
		roles []domain.Role
		want  domain.AuthorizationDecision
	}{
		{"tenant on landlord route", "/landlord/properties", []domain.Role{domain.RoleLandlord}, domain.DecisionWrongRole},
		{"tenant on tenant route", "/tenant/dashboard", []domain.Role{domain.RoleTenant}, domain.DecisionGranted},
		{"tenant on shared route", "/profile", nil, domain.DecisionGranted},
		{"tenant where admin or landlord required", "/admin", []domain.Role{domain.RoleAdmin, domain.RoleLandlord}, domain.DecisionWrongRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ts.Container.Guard.Evaluate(tt.path, tt.roles...)
			assert.Equal(t, tt.want, d.State)
			if tt.want == domain.DecisionWrongRole {
				assert.Equal(t, "/unauthorized", d.RedirectTo, "wrong role never bounces back to login")
			}
		})
	}
}

// The client-side verdict and the server-side enforcement must agree: a
// tenant is denied the landlord tree on both layers.
func TestGuardAgreesWithServerEnforcement(t *testing.T) {
	ts := NewTestServer(t)
	reg, _ := seedTenant(t, ts)
	login(t, ts, reg)

	d := ts.Container.Guard.Evaluate("/landlord/properties", domain.RoleLandlord)
	assert.Equal(t, domain.DecisionWrongRole, d.State)

	_, err := ts.Container.Properties.ListMine(context.Background())
	require.Error(t, err)
	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok, "expected APIError, got %v", err)
	assert.Equal(t, 403, apiErr.Status)
}

func TestGuardAllowsLandlordTree(t *testing.T) {
	ts := NewTestServer(t)
	reg, _ := seedLandlord(t, ts)
	login(t, ts, reg)

	d := ts.Container.Guard.Evaluate("/landlord/properties", domain.RoleLandlord, domain.RoleAdmin)
	assert.Equal(t, domain.DecisionGranted, d.State)
	assert.True(t, d.Render())

	list, err := ts.Container.Properties.ListMine(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
