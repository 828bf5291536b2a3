// Package models defines the user and contact records kept by the directory.
package models

import (
	"fmt"
	"strings"
)

// Contact is one entry of a user's contact list. ID is assigned by the
// directory at creation time and is unique within the owning user's list.
// Image holds a data URI ("data:image/png;base64,...") or is empty.
type Contact struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Image string `json:"image,omitempty"`
}

// HasImage reports whether the contact carries a photo.
func (c Contact) HasImage() bool {
	return strings.HasPrefix(c.Image, "data:")
}

// String renders the one-line card shown in the contact list.
func (c Contact) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", c.ID, c.Name)
	if c.Phone != "" {
		fmt.Fprintf(&b, " | %s", c.Phone)
	}
	if c.Email != "" {
		fmt.Fprintf(&b, " | %s", c.Email)
	}
	if c.HasImage() {
		b.WriteString(" | photo")
	}
	return b.String()
}
