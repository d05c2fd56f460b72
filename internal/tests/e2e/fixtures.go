package e2e

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

var emailCounter atomic.Int64

// uniqueEmail returns an address that is unique within the test binary.
func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, emailCounter.Add(1))
}

const testPassword = "Sup3r-secret!"

// seedTenant registers a tenant directly in the backend and returns the
// registration used, with the password still in the clear.
func seedTenant(t *testing.T, ts *TestServer) (*domain.Registration, string) {
	t.Helper()
	reg := &domain.Registration{
		Email:       uniqueEmail("tenant"),
		Password:    testPassword,
		FirstName:   "Tess",
		LastName:    "Tenant",
		Role:        domain.RoleTenant,
		PhoneNumber: "555-0101",
	}
	id, err := ts.Backend.SeedUser(reg)
	require.NoError(t, err, "seeding tenant must succeed")
	return reg, id
}

func seedLandlord(t *testing.T, ts *TestServer) (*domain.Registration, string) {
	t.Helper()
	reg := &domain.Registration{
		Email:     uniqueEmail("landlord"),
		Password:  testPassword,
		FirstName: "Len",
		LastName:  "Landlord",
		Role:      domain.RoleLandlord,
	}
	id, err := ts.Backend.SeedUser(reg)
	require.NoError(t, err, "seeding landlord must succeed")
	return reg, id
}

// login signs the given account into the test server's container.
func login(t *testing.T, ts *TestServer, reg *domain.Registration) {
	t.Helper()
	err := ts.Container.Session.Login(context.Background(), reg.Email, reg.Password)
	require.NoError(t, err, "login must succeed for %s", reg.Email)
}
