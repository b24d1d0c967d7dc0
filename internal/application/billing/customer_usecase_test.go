package billing_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/billing"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/validation"
	"github.com/jhoicas/crm-api/internal/domain"
)

func TestCustomerUseCase_CreateNormalizaYDetectaGSTINDuplicado(t *testing.T) {
	repo := newMemCustomers()
	uc := billing.NewCustomerUseCase(repo, validation.New())
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateCustomerRequest{
		Name:  "  Acme Pvt Ltd ",
		GSTIN: "27aapfu0939f1zv",
		PAN:   "aapfu0939f",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Pvt Ltd", created.Name)
	assert.Equal(t, "27AAPFU0939F1ZV", created.GSTIN)
	assert.Equal(t, "AAPFU0939F", created.PAN)
	assert.Equal(t, "active", created.Status)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Name: "Otra", GSTIN: "27AAPFU0939F1ZV"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCustomerUseCase_UpdateConservaSuPropioGSTIN(t *testing.T) {
	repo := newMemCustomers()
	uc := billing.NewCustomerUseCase(repo, validation.New())
	ctx := context.Background()

	a, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "A", GSTIN: "27AAPFU0939F1ZV"})
	require.NoError(t, err)
	b, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "B", GSTIN: "07AAGFF2194N1Z1", Status: "inactive"})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, a.ID, dto.UpdateCustomerRequest{Name: "A renombrado", GSTIN: "27AAPFU0939F1ZV"})
	require.NoError(t, err)
	assert.Equal(t, "A renombrado", updated.Name)
	assert.Equal(t, "active", updated.Status)

	_, err = uc.Update(ctx, b.ID, dto.UpdateCustomerRequest{Name: "B", GSTIN: "27AAPFU0939F1ZV"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	kept, err := uc.Update(ctx, b.ID, dto.UpdateCustomerRequest{Name: "B", GSTIN: "07AAGFF2194N1Z1"})
	require.NoError(t, err)
	assert.Equal(t, "inactive", kept.Status)

	_, err = uc.Update(ctx, uuid.NewString(), dto.UpdateCustomerRequest{Name: "C"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerUseCase_ListYDelete(t *testing.T) {
	repo := newMemCustomers()
	uc := billing.NewCustomerUseCase(repo, validation.New())
	ctx := context.Background()

	a, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Alfa"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Name: "Beta", Status: "inactive"})
	require.NoError(t, err)

	list, err := uc.List(ctx, dto.CustomerListRequest{Status: "active"})
	require.NoError(t, err)
	require.Equal(t, 1, list.Page.Total)
	assert.Equal(t, "Alfa", list.Items[0].Name)

	assert.ErrorIs(t, uc.Delete(ctx, member, a.ID), domain.ErrForbidden)
	require.NoError(t, uc.Delete(ctx, manager, a.ID))
	_, err = uc.Get(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
