// Package export writes a contact list to spreadsheet files.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/contactbook/internal/client/models"
	"github.com/dmitrijs2005/contactbook/internal/common"
)

// Exporter serialises contacts to w.
type Exporter interface {
	Export(w io.Writer, contacts []models.Contact) error
}

// header is shared by every format. Photos are reported, not embedded.
var header = []string{"id", "name", "phone", "email", "has_image"}

func record(c models.Contact) []string {
	return []string{c.ID, c.Name, c.Phone, c.Email, strconv.FormatBool(c.HasImage())}
}

// ForPath picks an exporter from the file extension.
func ForPath(path string) (Exporter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSVExporter{}, nil
	case ".xlsx":
		return XLSXExporter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrorUnsupportedFormat, filepath.Ext(path))
	}
}

// WriteFile exports contacts into path, replacing any existing file.
func WriteFile(path string, e Exporter, contacts []models.Contact) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close export file: %w", cerr)
		}
	}()

	if err := e.Export(f, contacts); err != nil {
		return fmt.Errorf("export contacts: %w", err)
	}
	return nil
}
