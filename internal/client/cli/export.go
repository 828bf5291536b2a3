package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/client/export"
	"github.com/dmitrijs2005/contactbook/internal/filex"
)

// Export writes the current user's contacts to path. The format follows the
// extension; relative paths are placed under the configured export
// directory.
func (a *App) Export(ctx context.Context, path string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	e, err := export.ForPath(path)
	if err != nil {
		fmt.Fprintln(a.out, "Use a .csv or .xlsx file name.")
		return err
	}

	target, err := filex.ResolveIn(a.config.ExportDir, path)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return err
	}

	contacts := a.dir.CurrentUserContacts()
	if err := export.WriteFile(target, e, contacts); err != nil {
		a.logger.Error(ctx, "export failed", "path", target, "error", err)
		fmt.Fprintln(a.out, "error:", err)
		return err
	}

	fmt.Fprintf(a.out, "Exported %d contacts to %s\n", len(contacts), target)
	return nil
}
