package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser_EncodesEmptyContactList(t *testing.T) {
	b, err := json.Marshal(NewUser("a@x.com", "pw"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@x.com","password":"pw","contacts":[]}`, string(b))
}

func TestUser_Clone_DoesNotShareContacts(t *testing.T) {
	u := NewUser("a@x.com", "pw")
	u.Contacts = append(u.Contacts, Contact{ID: "1", Name: "Bob"})

	c := u.Clone()
	c.Contacts[0].Name = "Alice"

	assert.Equal(t, "Bob", u.Contacts[0].Name)
}

func TestUser_Clone_NilContactsBecomeEmpty(t *testing.T) {
	c := User{Email: "a@x.com"}.Clone()
	assert.NotNil(t, c.Contacts)
	assert.Empty(t, c.Contacts)
}

func TestUser_ContactIndex(t *testing.T) {
	u := User{Contacts: []Contact{{ID: "1"}, {ID: "2"}, {ID: "2"}}}

	assert.Equal(t, 1, u.ContactIndex("2"), "first match wins")
	assert.Equal(t, -1, u.ContactIndex("3"))
}

func TestUsers_IndexByEmail_IsCaseSensitive(t *testing.T) {
	us := Users{NewUser("a@x.com", "1"), NewUser("b@x.com", "2")}

	assert.Equal(t, 1, us.IndexByEmail("b@x.com"))
	assert.Equal(t, -1, us.IndexByEmail("B@x.com"))
}

func TestContact_String(t *testing.T) {
	c := Contact{ID: "17", Name: "Bob", Phone: "555", Image: "data:image/png;base64,AA=="}
	assert.Equal(t, "[17] Bob | 555 | photo", c.String())

	assert.Equal(t, "[18] Ann", Contact{ID: "18", Name: "Ann"}.String())
}

func TestContact_JSONShape(t *testing.T) {
	var c Contact
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1700000000000","name":"Bob","phone":"1","email":"b@x.com","image":""}`), &c))
	assert.Equal(t, Contact{ID: "1700000000000", Name: "Bob", Phone: "1", Email: "b@x.com"}, c)
}
