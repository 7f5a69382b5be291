// Package dataset loads the sales CSV into an immutable in-memory table.
package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"supermarket-dashboard/internal/models"
)

const (
	ColMonth         = "Month"
	ColCategory      = "Category"
	ColCustomerType  = "CustomerType"
	ColPaymentMethod = "PaymentMethod"
	ColSalesAmount   = "SalesAmount"
	ColProfit        = "Profit"
	ColDayOfWeek     = "DayOfWeek"

	ctxCheckInterval = 1000
)

// RequiredColumns lists the header names a dataset must provide.
var RequiredColumns = []string{
	ColMonth,
	ColCategory,
	ColCustomerType,
	ColPaymentMethod,
	ColSalesAmount,
	ColProfit,
	ColDayOfWeek,
}

// Table is the loaded dataset. It is never modified after Load returns and
// may be shared between goroutines.
type Table struct {
	rows     []models.Row
	options  models.FilterOptions
	source   string
	loadedAt time.Time
}

// NewTable builds a table from rows already in memory.
func NewTable(rows []models.Row) *Table {
	return newTable(slices.Clone(rows), "memory")
}

func newTable(rows []models.Row, source string) *Table {
	return &Table{
		rows:     rows,
		options:  distinctOptions(rows),
		source:   source,
		loadedAt: time.Now(),
	}
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of the table rows in file order.
func (t *Table) Rows() []models.Row {
	return slices.Clone(t.rows)
}

// Options returns the distinct labels of the four filter dimensions.
// Months and categories are sorted; customer types and payment methods keep
// first-appearance order.
func (t *Table) Options() models.FilterOptions {
	return models.FilterOptions{
		Months:         slices.Clone(t.options.Months),
		Categories:     slices.Clone(t.options.Categories),
		CustomerTypes:  slices.Clone(t.options.CustomerTypes),
		PaymentMethods: slices.Clone(t.options.PaymentMethods),
	}
}

func (t *Table) Source() string {
	return t.source
}

func (t *Table) LoadedAt() time.Time {
	return t.loadedAt
}

// LoadFile opens and parses the CSV at path.
func LoadFile(ctx context.Context, path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	rows, err := parse(ctx, bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return newTable(rows, path), nil
}

// Load parses CSV data from r. Any error aborts the load; no partial table
// is returned.
func Load(ctx context.Context, r io.Reader) (*Table, error) {
	rows, err := parse(ctx, r)
	if err != nil {
		return nil, err
	}
	return newTable(rows, "reader"), nil
}

func parse(ctx context.Context, r io.Reader) ([]models.Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []models.Row
	for {
		if len(rows)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		line, _ := reader.FieldPos(0)
		row, err := parseRow(record, idx, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// columnIndex maps each required column to its position in the header.
// Extra columns are ignored.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		name := strings.TrimSpace(h)
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &LoadError{Column: strings.Join(missing, ", "), Err: ErrMissingColumn}
	}
	return idx, nil
}

func parseRow(record []string, idx map[string]int, line int) (models.Row, error) {
	field := func(col string) string {
		return strings.TrimSpace(record[idx[col]])
	}

	sales, err := parseAmount(field(ColSalesAmount), ColSalesAmount, line)
	if err != nil {
		return models.Row{}, err
	}
	profit, err := parseAmount(field(ColProfit), ColProfit, line)
	if err != nil {
		return models.Row{}, err
	}

	return models.Row{
		Month:         field(ColMonth),
		Category:      field(ColCategory),
		CustomerType:  field(ColCustomerType),
		PaymentMethod: field(ColPaymentMethod),
		DayOfWeek:     field(ColDayOfWeek),
		SalesAmount:   sales,
		Profit:        profit,
	}, nil
}

func parseAmount(value, column string, line int) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, &LoadError{Line: line, Column: column, Value: value, Err: ErrMalformedValue}
	}
	return d, nil
}

func distinctOptions(rows []models.Row) models.FilterOptions {
	opts := models.FilterOptions{
		Months:         distinct(rows, func(r models.Row) string { return r.Month }),
		Categories:     distinct(rows, func(r models.Row) string { return r.Category }),
		CustomerTypes:  distinct(rows, func(r models.Row) string { return r.CustomerType }),
		PaymentMethods: distinct(rows, func(r models.Row) string { return r.PaymentMethod }),
	}
	slices.SortFunc(opts.Months, models.CompareMonths)
	slices.Sort(opts.Categories)
	return opts
}

// distinct returns the unique values of key in first-appearance order.
func distinct(rows []models.Row, key func(models.Row) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range rows {
		v := key(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
