package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"smartpantry/internal/inventory"
)

// Service streams the append-only purchase history as CSV, for spreadsheets
// and external budgeting tools.
type Service struct {
	inv *inventory.Service
}

func NewService(inv *inventory.Service) *Service {
	return &Service{inv: inv}
}

var header = []string{"date", "upc", "name", "unit_price", "quantity", "store", "total"}

// WritePurchasesCSV writes the full purchase log to w in insertion order.
// Prices are rendered in currency units with two decimals.
func (s *Service) WritePurchasesCSV(ctx context.Context, w io.Writer) error {
	recs, err := s.inv.Purchases(ctx)
	if err != nil {
		return fmt.Errorf("reading purchase log: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, rec := range recs {
		row := []string{
			rec.Timestamp.Format("2006-01-02"),
			rec.UPC,
			rec.Name,
			formatAmount(rec.UnitPrice),
			strconv.Itoa(rec.Quantity),
			rec.Store,
			formatAmount(rec.Total()),
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func formatAmount(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100.0)
}
