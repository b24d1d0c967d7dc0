package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/infrastructure/cache"
)

type countingRepo struct {
	repository.ProductRepository
	products map[string]*entity.Product
	calls    int
	err      error
}

func (r *countingRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func newRepo() *countingRepo {
	return &countingRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", Name: "Hosting", UnitPrice: decimal.NewFromInt(500), TaxRatePercent: decimal.NewFromInt(18), Active: true},
	}}
}

func TestCatalogCache_SegundaLecturaNoConsultaRepo(t *testing.T) {
	repo := newRepo()
	c := cache.NewCatalogCache(repo, time.Minute)

	p, err := c.Lookup(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Hosting", p.Name)

	_, err = c.Lookup(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
}

func TestCatalogCache_DevuelveCopias(t *testing.T) {
	c := cache.NewCatalogCache(newRepo(), time.Minute)
	p, _ := c.Lookup(context.Background(), "p1")
	p.Name = "modificado"

	again, _ := c.Lookup(context.Background(), "p1")
	assert.Equal(t, "Hosting", again.Name)
}

func TestCatalogCache_InvalidateRecarga(t *testing.T) {
	repo := newRepo()
	c := cache.NewCatalogCache(repo, time.Minute)
	_, _ = c.Lookup(context.Background(), "p1")

	repo.products["p1"].UnitPrice = decimal.NewFromInt(650)
	c.Invalidate("p1")

	p, err := c.Lookup(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, p.UnitPrice.Equal(decimal.NewFromInt(650)))
	assert.Equal(t, 2, repo.calls)
}

func TestCatalogCache_InexistenteNoSeGuarda(t *testing.T) {
	repo := newRepo()
	c := cache.NewCatalogCache(repo, time.Minute)

	p, err := c.Lookup(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, p)
	_, _ = c.Lookup(context.Background(), "nope")
	assert.Equal(t, 2, repo.calls)
}

func TestCatalogCache_PropagaError(t *testing.T) {
	repo := newRepo()
	repo.err = errors.New("db caída")
	c := cache.NewCatalogCache(repo, time.Minute)

	_, err := c.Lookup(context.Background(), "p1")
	assert.EqualError(t, err, "db caída")
}
