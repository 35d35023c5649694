package ledger

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// Decode parses an xlsx byte buffer's first sheet into a Ledger using the
// header-implied column mapping, so column order in the file is not
// significant. Returns ErrDecode if the buffer is not a spreadsheet or the
// first sheet has no usable header.
func Decode(data []byte) (*Ledger, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrDecode)
	}

	// Raw cell values, not display-formatted ones: the running balance
	// carries full float64 precision and must survive a round trip.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: first sheet has no header row", ErrDecode)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[name] = i
	}
	for _, name := range []string{"Date", "Name", "Balance"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrDecode, name)
		}
	}

	l := &Ledger{}
	for n, cells := range rows[1:] {
		row := Row{
			Date: cell(cells, cols, "Date"),
			Name: cell(cells, cols, "Name"),
		}

		if row.In, err = intCell(cells, cols, "In"); err != nil {
			return nil, decodeRowErr(n, err)
		}
		if row.Percent, err = intCell(cells, cols, "Percent"); err != nil {
			return nil, decodeRowErr(n, err)
		}
		if row.AmountWithPercent, err = floatCell(cells, cols, "Amount with %"); err != nil {
			return nil, decodeRowErr(n, err)
		}
		if row.Out, err = intCell(cells, cols, "Out"); err != nil {
			return nil, decodeRowErr(n, err)
		}

		balance, err := floatCell(cells, cols, "Balance")
		if err != nil {
			return nil, decodeRowErr(n, err)
		}
		if balance != nil {
			row.Balance = *balance
		}

		l.Rows = append(l.Rows, row)
	}

	return l, nil
}

// Encode serializes the ledger back to a single-sheet xlsx buffer with the
// fixed header row, preserving row order. Decode(Encode(l)) reproduces l.
func Encode(l *Ledger) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range l.Rows {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		values := []interface{}{row.Date, row.Name, nil, nil, nil, nil, row.Balance}
		if row.In != nil {
			values[2] = *row.In
		}
		if row.Percent != nil {
			values[3] = *row.Percent
		}
		if row.AmountWithPercent != nil {
			values[4] = *row.AmountWithPercent
		}
		if row.Out != nil {
			values[5] = *row.Out
		}

		if err := f.SetSheetRow(sheetName, axis, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func decodeRowErr(n int, err error) error {
	return fmt.Errorf("%w: data row %d: %v", ErrDecode, n+1, err)
}

func cell(cells []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(cells) {
		return ""
	}
	return cells[i]
}

func intCell(cells []string, cols map[string]int, name string) (*int64, error) {
	s := cell(cells, cols, name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("column %q: %v", name, err)
	}
	return &v, nil
}

func floatCell(cells []string, cols map[string]int, name string) (*float64, error) {
	s := cell(cells, cols, name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("column %q: %v", name, err)
	}
	return &v, nil
}
