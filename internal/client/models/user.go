package models

import "slices"

// User is a registered account together with its contact list. Password is
// kept as entered.
type User struct {
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Contacts []Contact `json:"contacts"`
}

// NewUser returns a user with an empty, non-nil contact list so it encodes
// as "contacts": [].
func NewUser(email, password string) User {
	return User{Email: email, Password: password, Contacts: []Contact{}}
}

// Clone returns a deep copy; the contact slice is not shared.
func (u User) Clone() User {
	c := u
	c.Contacts = slices.Clone(u.Contacts)
	if c.Contacts == nil {
		c.Contacts = []Contact{}
	}
	return c
}

// ContactIndex returns the position of the first contact with the given id,
// or -1.
func (u User) ContactIndex(id string) int {
	return slices.IndexFunc(u.Contacts, func(c Contact) bool { return c.ID == id })
}

// Users is the whole directory in registration order.
type Users []User

// IndexByEmail returns the position of the user with exactly this email
// (case-sensitive), or -1.
func (us Users) IndexByEmail(email string) int {
	return slices.IndexFunc(us, func(u User) bool { return u.Email == email })
}
