package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/dmitrijs2005/contactbook/internal/client/models"
)

// SheetName is the worksheet holding the contacts.
const SheetName = "Contacts"

// XLSXExporter writes an Excel workbook with a single sheet.
type XLSXExporter struct{}

func (XLSXExporter) Export(w io.Writer, contacts []models.Contact) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, c := range contacts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := record(c)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	return f.Write(w)
}
