package catalogue

import (
	"context"
	"testing"

	"clinichub/database/repository/repotest"
	"clinichub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogueCRUD(t *testing.T) {
	svc := &DefaultCatalogueService{Repo: repotest.NewServices()}
	ctx := context.Background()

	created, err := svc.Create(ctx, models.ServiceInput{Name: "General Checkup", Price: 30})
	require.NoError(t, err)
	assert.True(t, created.Active)
	assert.Equal(t, 30, created.DurationMinutes)

	_, err = svc.Create(ctx, models.ServiceInput{Name: "general checkup", Price: 10})
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = svc.Create(ctx, models.ServiceInput{Name: "", Price: -1})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "price")

	inactive := false
	updated, err := svc.Update(ctx, created.ID, models.ServiceInput{Name: "Checkup", Price: 35, Active: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
