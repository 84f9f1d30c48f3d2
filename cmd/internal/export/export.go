// Package export renders a completed lookup as downloadable files: a
// one-row spreadsheet of the flat record and a UTF-8 text card.
package export

import (
	"consultacnpj/cmd/internal/domain/record"
	"consultacnpj/cmd/internal/infrastructure/cnpja"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	SpreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	CardContentType        = "text/plain; charset=utf-8"

	sheetName = "CNPJ"
)

func SpreadsheetFileName(cnpjID string) string {
	return fmt.Sprintf("CNPJ_%s.xlsx", cnpjID)
}

func CardFileName(cnpjID string) string {
	return fmt.Sprintf("Cartao_CNPJ_%s.txt", cnpjID)
}

// Spreadsheet builds a single-worksheet workbook: one header row with the
// flat-record labels and one data row, columns in flat-record order.
func Spreadsheet(flat record.Flat) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for i, field := range flat {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}

		if err = f.SetCellValue(sheetName, col+"1", field.Label); err != nil {
			return nil, err
		}
		if err = f.SetCellValue(sheetName, col+"2", FlattenCell(field.Value)); err != nil {
			return nil, err
		}
		if err = f.SetColWidth(sheetName, col, col, 28); err != nil {
			return nil, err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(flat))
	if err != nil {
		return nil, err
	}
	if err = f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CardBytes renders the fixed-width text card as UTF-8 plain text.
func CardBytes(office *cnpja.Office) []byte {
	return []byte(record.RenderCard(office))
}

// FlattenCell collapses multi-line field values into a single spreadsheet
// cell line: block separators become " || ", line separators " | ".
func FlattenCell(value string) string {
	value = strings.ReplaceAll(value, "\n\n", " || ")
	return strings.ReplaceAll(value, "\n", " | ")
}
