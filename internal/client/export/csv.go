package export

import (
	"encoding/csv"
	"io"

	"github.com/dmitrijs2005/contactbook/internal/client/models"
)

// CSVExporter writes RFC 4180 CSV with CRLF line endings.
type CSVExporter struct{}

func (CSVExporter) Export(w io.Writer, contacts []models.Contact) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return err
	}
	for _, c := range contacts {
		if err := writer.Write(record(c)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
