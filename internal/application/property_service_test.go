package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/staynest/service-reservation/internal/common/auth"
	"github.com/staynest/service-reservation/internal/common/domain"
)

func newPropertyService() (*PropertyService, *fakePropertyRepo) {
	repo := newFakePropertyRepo()
	return NewPropertyService(repo, zap.NewNop()), repo
}

func validCreatePropertyRequest() CreatePropertyRequest {
	return CreatePropertyRequest{
		Title:            "Seaside Loft",
		Description:      "Bright loft near the harbor",
		City:             "Lisbon",
		Country:          "Portugal",
		NightlyRateCents: 10000,
		MaxGuests:        4,
	}
}

func TestCreateProperty_Succeeds(t *testing.T) {
	service, _ := newPropertyService()
	host := auth.Actor{ID: uuid.New(), Role: auth.RoleHost}

	dto, err := service.CreateProperty(context.Background(), host, validCreatePropertyRequest())
	require.NoError(t, err)

	assert.Equal(t, host.ID, dto.HostID)
	assert.Equal(t, "active", dto.Status)
	assert.Equal(t, int64(10000), dto.NightlyRateCents)
}

func TestCreateProperty_RoleGuard(t *testing.T) {
	service, _ := newPropertyService()

	_, err := service.CreateProperty(context.Background(), auth.Actor{}, validCreatePropertyRequest())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindUnauthenticated))

	renter := auth.Actor{ID: uuid.New(), Role: auth.RoleRenter}
	_, err = service.CreateProperty(context.Background(), renter, validCreatePropertyRequest())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
}

func TestUpdateProperty_OwnershipGuard(t *testing.T) {
	service, _ := newPropertyService()
	ctx := context.Background()
	host := auth.Actor{ID: uuid.New(), Role: auth.RoleHost}

	created, err := service.CreateProperty(ctx, host, validCreatePropertyRequest())
	require.NoError(t, err)

	updated, err := service.UpdateProperty(ctx, host, created.ID, UpdatePropertyRequest{Title: "Harbor Loft"})
	require.NoError(t, err)
	assert.Equal(t, "Harbor Loft", updated.Title)

	otherHost := auth.Actor{ID: uuid.New(), Role: auth.RoleHost}
	_, err = service.UpdateProperty(ctx, otherHost, created.ID, UpdatePropertyRequest{Title: "Stolen Loft"})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
}

func TestDeactivateActivateProperty(t *testing.T) {
	service, _ := newPropertyService()
	ctx := context.Background()
	host := auth.Actor{ID: uuid.New(), Role: auth.RoleHost}

	created, err := service.CreateProperty(ctx, host, validCreatePropertyRequest())
	require.NoError(t, err)

	deactivated, err := service.DeactivateProperty(ctx, host, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "inactive", deactivated.Status)

	// Deactivated listings drop out of the public list.
	listed, err := service.ListActiveProperties(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), listed.Total)

	activated, err := service.ActivateProperty(ctx, host, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", activated.Status)
}

func TestGetMyProperties(t *testing.T) {
	service, _ := newPropertyService()
	ctx := context.Background()
	host := auth.Actor{ID: uuid.New(), Role: auth.RoleHost}
	otherHost := auth.Actor{ID: uuid.New(), Role: auth.RoleHost}

	_, err := service.CreateProperty(ctx, host, validCreatePropertyRequest())
	require.NoError(t, err)
	_, err = service.CreateProperty(ctx, otherHost, validCreatePropertyRequest())
	require.NoError(t, err)

	mine, err := service.GetMyProperties(ctx, host)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, host.ID, mine[0].HostID)
}

func TestGetProperty_NotFound(t *testing.T) {
	service, _ := newPropertyService()

	_, err := service.GetProperty(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}
