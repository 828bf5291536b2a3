// Package forms validates and cleans what the user types before it reaches
// the directory.
package forms

import (
	"errors"
	"html"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrijs2005/contactbook/internal/client/models"
	"github.com/dmitrijs2005/contactbook/internal/common"
)

var (
	validate = validator.New(validator.WithRequiredStructEnabled())
	strict   = bluemonday.StrictPolicy()
)

// Form is a struct with validate tags and a message for each field/tag pair
// ("Field.tag") it can fail on.
type Form interface {
	Messages() map[string]string
}

// ValidationErrors maps a field name to the message shown for it.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	return strings.Join(v.List(), " ")
}

func (v ValidationErrors) Unwrap() error {
	return common.ErrorValidation
}

// List returns the distinct messages ordered by field name.
func (v ValidationErrors) List() []string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	slices.Sort(fields)

	var out []string
	for _, f := range fields {
		if !slices.Contains(out, v[f]) {
			out = append(out, v[f])
		}
	}
	return out
}

// Validate checks f against its tags. Missing required fields are reported
// alone; other rules are only checked once every required field is present.
// A nil result means f is valid.
func Validate(f Form) ValidationErrors {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{"": err.Error()}
	}

	msgs := f.Messages()
	required := ValidationErrors{}
	other := ValidationErrors{}
	for _, fe := range fieldErrs {
		msg, ok := msgs[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		if fe.Tag() == "required" {
			required[fe.Field()] = msg
		} else {
			other[fe.Field()] = msg
		}
	}
	if len(required) > 0 {
		return required
	}
	return other
}

// maxCleanPasses bounds Clean on input with nested entity encoding.
const maxCleanPasses = 8

// Clean strips markup, including entity-encoded markup, and surrounding
// whitespace from free text. Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	for range maxCleanPasses {
		next := cleanOnce(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// cleanOnce decodes entities before the strict policy sees the text, then
// decodes the escapes the policy adds back into plain characters.
func cleanOnce(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(html.UnescapeString(s))))
}

type SignUpForm struct {
	Email           string `validate:"required"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"eqfield=Password"`
}

func (SignUpForm) Messages() map[string]string {
	return map[string]string{
		"Email.required":          "Email and password are required.",
		"Password.required":       "Email and password are required.",
		"ConfirmPassword.eqfield": "Passwords do not match.",
	}
}

type SignInForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

func (SignInForm) Messages() map[string]string {
	return map[string]string{
		"Email.required":    "Email and password are required.",
		"Password.required": "Email and password are required.",
	}
}

// ContactForm is the add/edit screen. ID is empty for a new contact.
type ContactForm struct {
	ID    string
	Name  string `validate:"required,max=200"`
	Phone string `validate:"max=50"`
	Email string `validate:"omitempty,email"`
	Image string `validate:"omitempty,startswith=data:image/"`
}

func (ContactForm) Messages() map[string]string {
	return map[string]string{
		"Name.required":    "Name is required.",
		"Name.max":         "Name is too long.",
		"Phone.max":        "Phone is too long.",
		"Email.email":      "Email is not a valid address.",
		"Image.startswith": "Photo must be an image.",
	}
}

// NewContactForm prefills the form from c.
func NewContactForm(c models.Contact) ContactForm {
	return ContactForm{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email, Image: c.Image}
}

// Sanitize cleans the text fields in place. The photo is left alone.
func (f *ContactForm) Sanitize() {
	f.Name = Clean(f.Name)
	f.Phone = Clean(f.Phone)
	f.Email = Clean(f.Email)
}

// Editing reports whether the form edits an existing contact.
func (f ContactForm) Editing() bool {
	return f.ID != ""
}

func (f ContactForm) Contact() models.Contact {
	return models.Contact{ID: f.ID, Name: f.Name, Phone: f.Phone, Email: f.Email, Image: f.Image}
}
