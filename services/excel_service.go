package services

import (
	"bytes"
	"fmt"

	"github.com/angelwang333/IPO-info/models"
	"github.com/xuri/excelize/v2"
)

// ExcelExportService serializes a classification into a single workbook with
// one sheet per lifecycle bucket.
type ExcelExportService struct{}

// NewExcelExportService creates a new export service instance
func NewExcelExportService() *ExcelExportService {
	return &ExcelExportService{}
}

// BuildWorkbook renders the three buckets as fixed-name sheets, each a header
// row of canonical column names followed by one row per record. No computed
// columns are added.
func (service *ExcelExportService) BuildWorkbook(classification Classification) ([]byte, error) {
	workbook := excelize.NewFile()
	defer workbook.Close()

	sheets := []struct {
		name    string
		records []models.AuctionRecord
	}{
		{models.SheetOngoing, classification.Ongoing},
		{models.SheetAwaitingListing, classification.AwaitingListing},
		{models.SheetListed, classification.Listed},
	}

	for _, sheet := range sheets {
		if _, err := workbook.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
		}

		if err := writeSheetRow(workbook, sheet.name, 1, models.CanonicalColumns()); err != nil {
			return nil, err
		}

		for i, record := range sheet.records {
			if err := writeSheetRow(workbook, sheet.name, i+2, record.Row()); err != nil {
				return nil, err
			}
		}
	}

	// Drop the default sheet excelize creates with every new file.
	if err := workbook.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	var buffer bytes.Buffer
	if err := workbook.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return buffer.Bytes(), nil
}

func writeSheetRow(workbook *excelize.File, sheetName string, rowNumber int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNumber)
	if err != nil {
		return fmt.Errorf("failed to compute cell coordinates: %w", err)
	}

	cells := make([]interface{}, len(values))
	for i, value := range values {
		cells[i] = value
	}

	if err := workbook.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d of sheet %s: %w", rowNumber, sheetName, err)
	}
	return nil
}
