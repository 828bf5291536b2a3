package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/contactbook/internal/client/forms"
	"github.com/dmitrijs2005/contactbook/internal/client/services"
	"github.com/dmitrijs2005/contactbook/internal/common"
)

// errNotLoggedIn is returned by commands run from a logged-out session; the
// user has already been sent to the sign-in screen.
var errNotLoggedIn = errors.New("not logged in")

// requireLogin gates contact commands. The auth redirect hook moves the
// navigator to sign-in.
func (a *App) requireLogin(ctx context.Context) error {
	if a.auth.RequireLogin(ctx) {
		return nil
	}
	fmt.Fprintln(a.out, "Please sign in first.")
	return errNotLoggedIn
}

func (a *App) printContacts() {
	contacts := a.dir.CurrentUserContacts()
	if len(contacts) == 0 {
		fmt.Fprintln(a.out, "No contacts yet. Type 'add' to create one.")
		return
	}
	for _, c := range contacts {
		fmt.Fprintln(a.out, c.String())
	}
}

// List shows the contact list screen.
func (a *App) List(ctx context.Context) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	_, err := a.navigate(ctx, services.PathContactList)
	return err
}

// Show prints every field of one contact.
func (a *App) Show(ctx context.Context, id string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	c, ok := a.dir.FindContact(id)
	if !ok {
		fmt.Fprintln(a.out, "Contact not found.")
		return common.ErrorNotFound
	}

	photo := "none"
	if c.HasImage() {
		photo = fmt.Sprintf("attached (%d bytes encoded)", len(c.Image))
	}
	fmt.Fprintf(a.out, "ID:    %s\nName:  %s\nPhone: %s\nEmail: %s\nPhoto: %s\n", c.ID, c.Name, c.Phone, c.Email, photo)
	return nil
}

// Delete removes a contact after confirmation.
func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	c, ok := a.dir.FindContact(id)
	if !ok {
		fmt.Fprintln(a.out, "Contact not found.")
		return common.ErrorNotFound
	}

	yes, err := Confirm(a.reader, fmt.Sprintf("Delete %s?", c.Name), a.out)
	if err != nil || !yes {
		return err
	}

	if _, err := a.dir.DeleteContact(ctx, id); err != nil {
		a.logger.Error(ctx, "delete failed", "id", id, "error", err)
		fmt.Fprintln(a.out, "error:", err)
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	_, err = a.navigate(ctx, services.PathContactList)
	return err
}

// Add opens the editor for a new contact.
func (a *App) Add(ctx context.Context) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	if err := a.dir.ClearEditContactID(ctx); err != nil {
		return err
	}
	nav, err := a.navigate(ctx, services.PathAddEditContact)
	if err != nil {
		return err
	}
	return a.editor(ctx, nav)
}

// Edit hands the contact over to the editor. The id is kept in the
// editContactId slot too, so an interrupted edit can be resumed.
func (a *App) Edit(ctx context.Context, id string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	if c, ok := a.dir.FindContact(id); ok {
		if err := a.dir.SetCurrentContact(ctx, c); err != nil {
			return err
		}
	}
	if err := a.dir.SetEditContactID(ctx, id); err != nil {
		return err
	}

	nav, err := a.navigate(ctx, services.PathAddEditContact+"?id="+url.QueryEscape(id))
	if err != nil {
		return err
	}
	return a.editor(ctx, nav)
}

// editor runs the add/edit form on the screen the navigator landed on. The
// id comes from the query, falling back to the editContactId slot; an id that
// resolves to no contact silently returns to the list.
func (a *App) editor(ctx context.Context, nav services.Navigation) error {
	if nav.Route.Path != services.PathAddEditContact {
		return nil
	}

	var f forms.ContactForm
	if id := a.editTarget(nav); id != "" {
		c, ok := a.dir.FindContact(id)
		if !ok {
			a.logger.Debug(ctx, "edit target not found", "id", id)
			if err := a.dir.ClearEditContactID(ctx); err != nil {
				return err
			}
			_, err := a.navigate(ctx, services.PathContactList)
			return err
		}
		f = forms.NewContactForm(c)
	}

	for {
		if err := a.fillContactForm(ctx, &f); err != nil {
			return err
		}
		f.Sanitize()
		errs := forms.Validate(f)
		if errs == nil {
			break
		}
		a.printErrors(errs)
	}

	saved, err := a.dir.SaveContact(ctx, f.Contact(), f.Editing())
	if err != nil {
		a.logger.Error(ctx, "save failed", "error", err)
		fmt.Fprintln(a.out, "error:", err)
		return err
	}
	a.logger.Info(ctx, "contact saved", "id", saved.ID)

	if err := a.dir.ClearCurrentContact(ctx); err != nil {
		return err
	}
	if err := a.dir.ClearEditContactID(ctx); err != nil {
		return err
	}

	_, err = a.navigate(ctx, services.PathContactList)
	return err
}

func (a *App) editTarget(nav services.Navigation) string {
	if id := nav.Params.Get("id"); id != "" {
		return id
	}
	return a.dir.EditContactID()
}

// fillContactForm prompts for each field; blank answers keep the value
// already in f.
func (a *App) fillContactForm(ctx context.Context, f *forms.ContactForm) error {
	var err error
	if f.Name, err = GetDefaultText(a.reader, "Name", f.Name, a.out); err != nil {
		return err
	}
	if f.Phone, err = GetDefaultText(a.reader, "Phone", f.Phone, a.out); err != nil {
		return err
	}
	if f.Email, err = GetDefaultText(a.reader, "Email", f.Email, a.out); err != nil {
		return err
	}

	prompt := "Photo file (blank to skip)"
	if f.Contact().HasImage() {
		prompt = "Photo file (blank keeps current, '-' removes)"
	}
	path, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	switch path {
	case "":
	case "-":
		f.Image = ""
	default:
		uri, err := a.images.LoadDataURI(ctx, path)
		if err != nil {
			fmt.Fprintln(a.out, "Photo not loaded:", err)
			return nil
		}
		f.Image = uri
	}
	return nil
}
