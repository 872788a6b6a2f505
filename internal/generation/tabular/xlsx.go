// Package tabular turns spreadsheet files into the tab-delimited text the
// data extractor reads.
package tabular

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrNoRows = errors.New("spreadsheet has no rows with data")

// ReadXLSX returns the non-empty rows of sheet as tab-separated lines. An
// empty sheet name selects the first sheet in the workbook.
func ReadXLSX(r io.Reader, sheet string) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return "", ErrNoRows
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	var lines []string
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		hasData := false
		for _, cell := range row {
			cell = strings.TrimSpace(strings.ReplaceAll(cell, "\t", " "))
			if cell != "" {
				hasData = true
			}
			cells = append(cells, cell)
		}
		if !hasData {
			continue
		}
		for len(cells) > 0 && cells[len(cells)-1] == "" {
			cells = cells[:len(cells)-1]
		}
		lines = append(lines, strings.Join(cells, "\t"))
	}
	if len(lines) == 0 {
		return "", ErrNoRows
	}
	return strings.Join(lines, "\n"), nil
}
