package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartpantry/internal/importer"
	"smartpantry/internal/inventory"
)

func TestParser_Parse(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    []inventory.AddParams
		wantErr string
	}

	tests := []testCase{
		{
			name: "CommaSeparated",
			input: "Item,Price,Quantity,Store\n" +
				"Milk,1.99,2,Aldi\n" +
				"Bread,$2.49,1,Aldi\n",
			want: []inventory.AddParams{
				{Name: "Milk", Price: 199, Quantity: 2, Store: "Aldi"},
				{Name: "Bread", Price: 249, Quantity: 1, Store: "Aldi"},
			},
		},
		{
			name: "SemicolonWithEuropeanPrices",
			input: "Name;Price;Qty\n" +
				"Butter;1,79;1\n" +
				"Olive Oil;1.234,56;1\n",
			want: []inventory.AddParams{
				{Name: "Butter", Price: 179, Quantity: 1},
				{Name: "Olive Oil", Price: 123456, Quantity: 1},
			},
		},
		{
			name: "AliasColumnsAndExtras",
			input: "barcode,description,unit price,units,category,unit\n" +
				"737628064502,Rice Noodles,2.50,3,pantry,pack\n",
			want: []inventory.AddParams{
				{
					UPC:      "737628064502",
					Name:     "Rice Noodles",
					Price:    250,
					Quantity: 3,
					Category: "pantry",
					Unit:     "pack",
				},
			},
		},
		{
			name: "HeaderNotOnFirstLine",
			input: "Receipt export 2025-06-01\n" +
				"\n" +
				"Item,Price,Quantity\n" +
				"Milk,1.99,1\n",
			want: []inventory.AddParams{
				{Name: "Milk", Price: 199, Quantity: 1},
			},
		},
		{
			name: "BlankAndFooterRowsSkipped",
			input: "Item,Price,Quantity\n" +
				"Milk,1.99,1\n" +
				",,\n" +
				",12.47,\n",
			want: []inventory.AddParams{
				{Name: "Milk", Price: 199, Quantity: 1},
			},
		},
		{
			name:    "NoHeader",
			input:   "Milk,1.99\nBread,2.49\n",
			wantErr: "no receipt header found",
		},
		{
			name: "BadPrice",
			input: "Item,Price,Quantity\n" +
				"Milk,free,1\n",
			wantErr: "row 2",
		},
		{
			name: "BadQuantity",
			input: "Item,Price,Quantity\n" +
				"Milk,1.99,one\n",
			wantErr: "row 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := importer.NewParser().Parse(strings.NewReader(tt.input))

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParser_Parse_Windows1252(t *testing.T) {
	// "Müsli" with 0xFC for ü, as legacy store exports produce it.
	input := []byte("Item,Price,Quantity\nM\xFCsli,3.99,1\n")

	got, err := importer.NewParser().Parse(strings.NewReader(string(input)))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Müsli", got[0].Name)
}

func TestParser_Parse_UTF8BOM(t *testing.T) {
	input := "\xEF\xBB\xBFItem,Price,Quantity\nMilk,1.99,1\n"

	got, err := importer.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Milk", got[0].Name)
}
