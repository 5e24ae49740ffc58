// Package importer ingests invoice CSV exports. Files come from different
// ERP systems, so the parser tolerates either comma or semicolon separators,
// two date layouts, and both decimal-comma and decimal-point amounts.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/innobi/opsboard/internal/encoding"
	"github.com/innobi/opsboard/internal/invoice"
)

// Required header columns. Matching is case-insensitive on trimmed names.
var requiredCols = []string{"invoice_no", "project_no", "amount", "invoice_date", "due_date"}

// Optional columns that fill in when present.
const (
	colCurrency = "currency"
	colStatus   = "status"
)

var dateLayouts = []string{"2006-01-02", "02.01.2006"}

// RowError describes one rejected row. Row is 1-based and counts the header.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// Row is one accepted CSV row with its 1-based line number, kept so later
// stages can report errors against the original file.
type Row struct {
	Line   int
	Params invoice.CreateParams
}

// Parser reads invoice CSV files into create params. Rows that fail to
// parse are reported, not fatal; the caller decides whether to proceed.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]Row, []RowError, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("detect encoding: %w", err)
	}

	rows, err := readRows(utf8r)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("empty file")
	}

	cols, err := mapHeader(rows[0])
	if err != nil {
		return nil, nil, err
	}

	var (
		accepted []Row
		rowErrs  []RowError
	)

	for i, row := range rows[1:] {
		rowNum := i + 2

		if blankRow(row) {
			continue
		}

		param, err := parseRow(cols, row)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: err.Error()})
			continue
		}

		accepted = append(accepted, Row{Line: rowNum, Params: param})
	}

	return accepted, rowErrs, nil
}

// readRows reads the whole file, sniffing the separator from the first line.
func readRows(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = sniffComma(string(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

func sniffComma(data string) rune {
	line := data
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}

	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}

	return ','
}

type colIndex map[string]int

func mapHeader(header []string) (colIndex, error) {
	cols := make(colIndex)
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name != "" {
			cols[name] = i
		}
	}

	var missing []string
	for _, name := range requiredCols {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	return cols, nil
}

func parseRow(cols colIndex, row []string) (invoice.CreateParams, error) {
	invoiceNo := cellValue(row, cols["invoice_no"])
	if invoiceNo == "" {
		return invoice.CreateParams{}, fmt.Errorf("missing invoice_no")
	}

	projectNo := cellValue(row, cols["project_no"])
	if projectNo == "" {
		return invoice.CreateParams{}, fmt.Errorf("missing project_no")
	}

	amount, err := parseAmount(cellValue(row, cols["amount"]))
	if err != nil {
		return invoice.CreateParams{}, fmt.Errorf("bad amount: %v", err)
	}

	invoiceDate, err := parseDate(cellValue(row, cols["invoice_date"]))
	if err != nil {
		return invoice.CreateParams{}, fmt.Errorf("bad invoice_date: %v", err)
	}

	dueDate, err := parseDate(cellValue(row, cols["due_date"]))
	if err != nil {
		return invoice.CreateParams{}, fmt.Errorf("bad due_date: %v", err)
	}

	currency := "TRY"
	if idx, ok := cols[colCurrency]; ok {
		if v := cellValue(row, idx); v != "" {
			currency = strings.ToUpper(v)
		}
	}

	var status invoice.Status
	if idx, ok := cols[colStatus]; ok {
		status = invoice.NormalizeStatus(cellValue(row, idx))
	}

	return invoice.CreateParams{
		InvoiceNo:   invoiceNo,
		ProjectNo:   projectNo,
		Amount:      amount,
		Currency:    currency,
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		Status:      status,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseAmount accepts both "1.234,56" and "1,234.56". When both separators
// appear, the rightmost one is the decimal mark; a lone comma is treated as
// a decimal comma.
func parseAmount(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	clean := strings.ReplaceAll(s, " ", "")

	lastComma := strings.LastIndexByte(clean, ',')
	lastDot := strings.LastIndexByte(clean, '.')

	switch {
	case lastComma >= 0 && lastComma > lastDot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case lastDot >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	f, _ := d.Float64()

	return f, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
