// Package importer turns an uploaded spreadsheet into catalog products.
// Headers are normalized before lookup so accented or re-cased columns
// still map to the canonical fields; rows that miss a field get the
// documented fallbacks instead of failing the import.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/exclucatalog/exclucatalog/internal/models"
)

// ErrEmptyFile is returned when the sheet has no data rows. The catalog
// must stay untouched in that case.
var ErrEmptyFile = errors.New("importer: spreadsheet has no data rows")

const placeholderImage = "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500&auto=format&fit=crop&q=60"

type Importer struct {
	// Now supplies the timestamp used for generated product ids.
	Now func() time.Time
}

func New() *Importer {
	return &Importer{Now: time.Now}
}

// ReadProducts decodes the first sheet of an .xlsx upload, or a .csv
// file, and maps every row to a product. All-or-nothing: any decode
// failure aborts before the caller touches the catalog.
func (imp *Importer) ReadProducts(filename string, r io.Reader) ([]models.Product, error) {
	var (
		rows []Row
		err  error
	)
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		rows, err = decodeCSV(r)
	} else {
		rows, err = decodeXLSX(r)
	}
	if err != nil {
		return nil, err
	}
	return imp.Products(rows)
}

// Products maps raw rows to catalog products. An empty row set fails
// the whole import.
func (imp *Importer) Products(rows []Row) ([]models.Product, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	base := imp.Now().UnixMilli()
	products := make([]models.Product, 0, len(rows))
	for i, raw := range rows {
		row := normalizeRow(raw)

		code := cellString(row[headerCode])
		if !truthy(row[headerCode]) {
			code = fmt.Sprintf("GEN-%d", i)
		}
		name := cellString(row[headerName])
		if !truthy(row[headerName]) {
			name = "Producto sin nombre"
		}
		model := cellString(row[headerModel])
		if !truthy(row[headerModel]) {
			model = "General"
		}

		products = append(products, models.Product{
			// Unique within this batch only; collisions across rapid
			// successive imports are an accepted limitation.
			ID:       base + int64(i),
			Code:     code,
			Name:     name,
			Model:    model,
			Price:    cellFloat(row[headerPrice]),
			Discount: ExtractDiscount(row[headerDiscount]),
			Image:    placeholderImage,
		})
	}
	return products, nil
}

func decodeXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("importer: open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("importer: read sheet %q: %w", sheets[0], err)
	}
	return tableToRows(cells), nil
}

func decodeCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	cells, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("importer: read csv: %w", err)
	}
	return tableToRows(cells), nil
}

// tableToRows treats the first line as headers and skips fully blank
// data rows, the way sheet-to-record conversion usually does.
func tableToRows(cells [][]string) []Row {
	if len(cells) < 2 {
		return nil
	}

	headers := cells[0]
	rows := make([]Row, 0, len(cells)-1)
	for _, line := range cells[1:] {
		row := make(Row, len(headers))
		empty := true
		for i, h := range headers {
			if h == "" || i >= len(line) {
				continue
			}
			row[h] = line[i]
			if strings.TrimSpace(line[i]) != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}
