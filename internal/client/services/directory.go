package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/client/models"
	"github.com/dmitrijs2005/contactbook/internal/client/store"
	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/logging"
)

// now is a seam for id assignment in tests.
var now = time.Now

// Directory holds every registered user with their contacts and the session
// pointers (current user, current contact, edit target). Each mutation is
// written back to the store before the call returns.
//
// The current user is kept as an email reference into users; the users slot
// is the only copy of a user's record.
type Directory struct {
	store  *store.Store
	auth   AuthState
	logger logging.Logger

	mu             sync.Mutex
	users          models.Users
	currentEmail   string
	currentContact *models.Contact
	editContactID  string
}

// NewDirectory loads users and session pointers from st and subscribes to
// logouts on auth.
func NewDirectory(ctx context.Context, st *store.Store, auth AuthState, logger logging.Logger) (*Directory, error) {
	d := &Directory{store: st, auth: auth, logger: logger}

	if err := d.loadUsers(ctx); err != nil {
		return nil, err
	}

	var ref json.RawMessage
	ok, err := st.Get(ctx, common.SlotCurrentUser, &ref)
	if err != nil {
		return nil, err
	}
	if ok {
		d.currentEmail = decodeUserRef(ref)
	}

	var c models.Contact
	ok, err = st.Get(ctx, common.SlotCurrentContact, &c)
	if err != nil {
		return nil, err
	}
	if ok {
		d.currentContact = &c
	}

	id, _, err := st.GetString(ctx, common.SlotEditContactID)
	if err != nil {
		return nil, err
	}
	d.editContactID = id

	auth.Subscribe(d.onLogout)
	return d, nil
}

// decodeUserRef accepts the email string written by this package and the
// full user snapshot older data may hold. Anything else reads as no user.
func decodeUserRef(raw json.RawMessage) string {
	var email string
	if err := json.Unmarshal(raw, &email); err == nil {
		return email
	}
	var u struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(raw, &u); err == nil {
		return u.Email
	}
	return ""
}

func (d *Directory) loadUsers(ctx context.Context) error {
	var users models.Users
	if _, err := d.store.Get(ctx, common.SlotUsers, &users); err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	if users == nil {
		users = models.Users{}
	}
	d.users = users
	return nil
}

func (d *Directory) saveUsers(ctx context.Context) error {
	if err := d.store.Set(ctx, common.SlotUsers, d.users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// currentIndex resolves the current user; callers hold mu.
func (d *Directory) currentIndex() int {
	if d.currentEmail == "" {
		return -1
	}
	return d.users.IndexByEmail(d.currentEmail)
}

// SignIn logs in the user with exactly this email and password. A false
// result does not say whether the email or the password was wrong, and the
// auth flag is left untouched.
func (d *Directory) SignIn(ctx context.Context, email, password string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.users.IndexByEmail(email)
	if i < 0 || d.users[i].Password != password {
		d.logger.Debug(ctx, "sign in rejected", "email", email)
		return false, nil
	}

	if err := d.store.Set(ctx, common.SlotCurrentUser, email); err != nil {
		return false, fmt.Errorf("save current user: %w", err)
	}
	if err := d.auth.LogIn(ctx); err != nil {
		d.restoreCurrentUserLocked(ctx)
		return false, err
	}
	d.currentEmail = email

	d.logger.Info(ctx, "user signed in", "email", email)
	return true, nil
}

// SignUp registers a new user with an empty contact list. It reports false
// when the email is already taken.
func (d *Directory) SignUp(ctx context.Context, email, password string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.users.IndexByEmail(email) >= 0 {
		return false, nil
	}

	d.users = append(d.users, models.NewUser(email, password))
	if err := d.saveUsers(ctx); err != nil {
		d.users = d.users[:len(d.users)-1]
		return false, err
	}

	d.logger.Info(ctx, "user signed up", "email", email)
	return true, nil
}

// CurrentUser returns a copy of the current user's record.
func (d *Directory) CurrentUser() (models.User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.currentIndex()
	if i < 0 {
		return models.User{}, false
	}
	return d.users[i].Clone(), true
}

// CurrentUserContacts returns a copy of the current user's contacts in
// insertion order, or an empty list when nobody is signed in.
func (d *Directory) CurrentUserContacts() []models.Contact {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.currentIndex()
	if i < 0 {
		return []models.Contact{}
	}
	return d.users[i].Clone().Contacts
}

// FindContact looks id up in the current user's contacts.
func (d *Directory) FindContact(id string) (models.Contact, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.currentIndex()
	if i < 0 {
		return models.Contact{}, false
	}
	j := d.users[i].ContactIndex(id)
	if j < 0 {
		return models.Contact{}, false
	}
	return d.users[i].Contacts[j], true
}

// SaveContact stores c in the current user's list and returns it as stored.
// Unless editing, c gets a fresh id (the current Unix time in milliseconds);
// two saves within one millisecond would collide. An entry with the same id
// is replaced in place, otherwise c is appended. Without a current user this
// is a no-op returning the zero Contact.
func (d *Directory) SaveContact(ctx context.Context, c models.Contact, editing bool) (models.Contact, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.currentIndex()
	if i < 0 {
		return models.Contact{}, nil
	}

	if !editing {
		c.ID = strconv.FormatInt(now().UnixMilli(), 10)
	}

	prev := d.users[i].Contacts
	contacts := slices.Clone(prev)
	if j := d.users[i].ContactIndex(c.ID); j >= 0 {
		contacts[j] = c
	} else {
		contacts = append(contacts, c)
	}
	d.users[i].Contacts = contacts

	if err := d.saveUsers(ctx); err != nil {
		d.users[i].Contacts = prev
		return models.Contact{}, err
	}

	d.logger.Debug(ctx, "contact saved", "id", c.ID, "editing", editing)
	return c, nil
}

// DeleteContact removes the first contact with this id from the current
// user's list. It reports false when there is no current user or no such
// contact.
func (d *Directory) DeleteContact(ctx context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.currentIndex()
	if i < 0 {
		return false, nil
	}
	j := d.users[i].ContactIndex(id)
	if j < 0 {
		return false, nil
	}

	prev := d.users[i].Contacts
	d.users[i].Contacts = slices.Delete(slices.Clone(prev), j, j+1)

	if err := d.saveUsers(ctx); err != nil {
		d.users[i].Contacts = prev
		return false, err
	}

	d.logger.Debug(ctx, "contact deleted", "id", id)
	return true, nil
}

// SetCurrentContact hands c over to the edit screen.
func (d *Directory) SetCurrentContact(ctx context.Context, c models.Contact) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.store.Set(ctx, common.SlotCurrentContact, c); err != nil {
		return fmt.Errorf("save current contact: %w", err)
	}
	d.currentContact = &c
	return nil
}

func (d *Directory) CurrentContact() (models.Contact, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.currentContact == nil {
		return models.Contact{}, false
	}
	return *d.currentContact, true
}

func (d *Directory) ClearCurrentContact(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.store.Remove(ctx, common.SlotCurrentContact); err != nil {
		return fmt.Errorf("clear current contact: %w", err)
	}
	d.currentContact = nil
	return nil
}

// SetEditContactID records the contact being edited so the edit screen can
// recover it after a restart.
func (d *Directory) SetEditContactID(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.store.SetString(ctx, common.SlotEditContactID, id); err != nil {
		return fmt.Errorf("save edit contact id: %w", err)
	}
	d.editContactID = id
	return nil
}

func (d *Directory) EditContactID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.editContactID
}

func (d *Directory) ClearEditContactID(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.store.Remove(ctx, common.SlotEditContactID); err != nil {
		return fmt.Errorf("clear edit contact id: %w", err)
	}
	d.editContactID = ""
	return nil
}

// SetCurrentUser points the session at the user with this email. An unknown
// email clears the current user.
func (d *Directory) SetCurrentUser(ctx context.Context, email string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.users.IndexByEmail(email) < 0 {
		return d.clearCurrentUserLocked(ctx)
	}

	if err := d.store.Set(ctx, common.SlotCurrentUser, email); err != nil {
		return fmt.Errorf("save current user: %w", err)
	}
	d.currentEmail = email
	return nil
}

// restoreCurrentUserLocked puts the currentUser slot back to the in-memory
// reference after a failed sign in.
func (d *Directory) restoreCurrentUserLocked(ctx context.Context) {
	var err error
	if d.currentEmail == "" {
		err = d.store.Remove(ctx, common.SlotCurrentUser)
	} else {
		err = d.store.Set(ctx, common.SlotCurrentUser, d.currentEmail)
	}
	if err != nil {
		d.logger.Error(ctx, "failed to restore current user", "error", err)
	}
}

func (d *Directory) clearCurrentUserLocked(ctx context.Context) error {
	if err := d.store.Remove(ctx, common.SlotCurrentUser); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	d.currentEmail = ""
	return nil
}

// SetCurrentUserContacts re-reads users from the store, picking up writes
// made by other processes sharing it, and re-resolves the current user by
// email. A current user whose record has disappeared is cleared.
func (d *Directory) SetCurrentUserContacts(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.loadUsers(ctx); err != nil {
		return err
	}
	if d.currentEmail != "" && d.currentIndex() < 0 {
		d.logger.Warn(ctx, "current user no longer exists", "email", d.currentEmail)
		return d.clearCurrentUserLocked(ctx)
	}
	return nil
}

// Reconcile keeps the login flag and the current user in step: a set flag
// without a resolvable user logs out, and a current user without the flag is
// cleared.
func (d *Directory) Reconcile(ctx context.Context) error {
	loggedIn := d.auth.IsLoggedIn(ctx)

	d.mu.Lock()
	resolved := d.currentIndex() >= 0
	hasRef := d.currentEmail != ""
	d.mu.Unlock()

	switch {
	case loggedIn && !resolved:
		d.logger.Warn(ctx, "logged in without a current user, logging out")
		return d.auth.LogOut(ctx)
	case !loggedIn && hasRef:
		d.mu.Lock()
		defer d.mu.Unlock()
		return d.clearCurrentUserLocked(ctx)
	}
	return nil
}

// Users returns a deep copy of the whole directory.
func (d *Directory) Users() models.Users {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(models.Users, len(d.users))
	for i, u := range d.users {
		out[i] = u.Clone()
	}
	return out
}

// onLogout drops every session pointer in one write.
func (d *Directory) onLogout(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.currentEmail = ""
	d.currentContact = nil
	d.editContactID = ""

	b := d.store.NewBatch()
	b.Remove(common.SlotCurrentUser)
	b.Remove(common.SlotCurrentContact)
	b.Remove(common.SlotEditContactID)
	if err := d.store.Commit(ctx, b); err != nil {
		d.logger.Error(ctx, "failed to clear session after logout", "error", err)
	}
}
