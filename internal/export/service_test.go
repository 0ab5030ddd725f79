package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartpantry/internal/export"
	"smartpantry/internal/inventory"
	"smartpantry/internal/inventory/store"
	"smartpantry/internal/product"
)

type stubCatalog struct{}

func (stubCatalog) Lookup(_ context.Context, code string) (product.Product, error) {
	return product.Product{Code: code}, nil
}

type stubEstimator struct{}

func (stubEstimator) Estimate(_ context.Context, _, _ string, now time.Time) time.Time {
	return now.AddDate(0, 0, 30)
}

func TestService_WritePurchasesCSV(t *testing.T) {
	inv := inventory.NewService(store.New(), stubCatalog{}, stubEstimator{})

	_, err := inv.Add(context.Background(), inventory.AddParams{
		Name:     "Milk",
		Price:    199,
		Quantity: 2,
		Store:    "Aldi",
	})
	require.NoError(t, err)

	_, err = inv.Add(context.Background(), inventory.AddParams{
		Name:     "Bread",
		Price:    250,
		Quantity: 1,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.NewService(inv).WritePurchasesCSV(context.Background(), &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"date", "upc", "name", "unit_price", "quantity", "store", "total"}, rows[0])

	assert.Equal(t, "Milk", rows[1][2])
	assert.Equal(t, "1.99", rows[1][3])
	assert.Equal(t, "2", rows[1][4])
	assert.Equal(t, "Aldi", rows[1][5])
	assert.Equal(t, "3.98", rows[1][6])

	assert.Equal(t, "Bread", rows[2][2])
	assert.Equal(t, "2.50", rows[2][3])
}

func TestService_WritePurchasesCSV_Empty(t *testing.T) {
	inv := inventory.NewService(store.New(), stubCatalog{}, stubEstimator{})

	var buf bytes.Buffer
	require.NoError(t, export.NewService(inv).WritePurchasesCSV(context.Background(), &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "an empty log still produces the header")
}
