package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	enc "smartpantry/internal/encoding"
	"smartpantry/internal/inventory"
)

// Parser reads receipt CSV exports and produces inventory add params.
// Stores and spreadsheet apps disagree on both column names and separators,
// so the header is matched against known aliases and the separator is
// sniffed from the header line.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Column aliases, all matched lowercase.
var (
	nameCols     = []string{"item", "name", "product", "description"}
	priceCols    = []string{"price", "unit price", "unit_price"}
	quantityCols = []string{"quantity", "qty", "units"}
	upcCols      = []string{"upc", "barcode", "code"}
	categoryCols = []string{"category"}
	unitCols     = []string{"unit"}
	storeCols    = []string{"store", "shop"}
)

func (p *Parser) Parse(r io.Reader) ([]inventory.AddParams, error) {
	utf8r, err := enc.UTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("reading receipt: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffSeparator(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := findHeader(rows)
	if !ok {
		return nil, fmt.Errorf("no receipt header found: expected item, price and quantity columns")
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
}

// sniffSeparator picks ';' when the first line carries more semicolons than
// commas; European exports use ';' with ',' as the decimal mark.
func sniffSeparator(data []byte) rune {
	line, _, _ := bytes.Cut(data, []byte("\n"))

	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}

	return ','
}

// colIndex maps canonical column roles to their position in the row.
type colIndex struct {
	name     int
	price    int
	quantity int
	upc      int
	category int
	unit     int
	store    int
}

// findHeader scans rows for one that carries a name, price and quantity
// column. Returns the column mapping and the header's row index.
func findHeader(rows [][]string) (colIndex, int, bool) {
	for rowIdx, row := range rows {
		byName := make(map[string]int)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				byName[name] = i
			}
		}

		cols := colIndex{
			name:     findAlias(byName, nameCols),
			price:    findAlias(byName, priceCols),
			quantity: findAlias(byName, quantityCols),
			upc:      findAlias(byName, upcCols),
			category: findAlias(byName, categoryCols),
			unit:     findAlias(byName, unitCols),
			store:    findAlias(byName, storeCols),
		}

		if cols.name >= 0 && cols.price >= 0 && cols.quantity >= 0 {
			return cols, rowIdx, true
		}
	}

	return colIndex{}, 0, false
}

func findAlias(byName map[string]int, aliases []string) int {
	for _, alias := range aliases {
		if idx, ok := byName[alias]; ok {
			return idx
		}
	}

	return -1
}

func parseRows(cols colIndex, rows [][]string, headerRowNum int) ([]inventory.AddParams, error) {
	var params []inventory.AddParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1 // 1-based, counting the header

		name := cellValue(row, cols.name)
		if name == "" {
			// Footer and spacer rows are skipped, not errors.
			continue
		}

		price, err := parsePriceCents(cellValue(row, cols.price))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		quantity, err := strconv.Atoi(cellValue(row, cols.quantity))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid quantity %q", rowNum, cellValue(row, cols.quantity))
		}

		params = append(params, inventory.AddParams{
			UPC:      cellValue(row, cols.upc),
			Name:     name,
			Price:    price,
			Store:    cellValue(row, cols.store),
			Quantity: quantity,
			Category: cellValue(row, cols.category),
			Unit:     cellValue(row, cols.unit),
		})
	}

	return params, nil
}

// parsePriceCents accepts both "1.99" and the European "1,99" and returns
// cents. Currency symbols and spaces are stripped first.
func parsePriceCents(s string) (int64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			return r
		}

		return -1
	}, s)

	if cleaned == "" {
		return 0, fmt.Errorf("invalid price %q", s)
	}

	// European exports use ',' as the decimal mark and may use '.' for
	// thousands; the last separator wins as the decimal mark.
	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")

	if lastComma > lastDot {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}

	cents := int64(value*100 + 0.5)

	return cents, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
