package common

// Slot keys of the persistent store.
const (
	SlotUsers          = "users"
	SlotCurrentUser    = "currentUser"
	SlotCurrentContact = "currentContact"
	SlotLoggedIn       = "loggedIn"
	SlotEditContactID  = "editContactId"
)

// Literal values kept in the loggedIn slot.
const (
	LoggedInTrue  = "true"
	LoggedInFalse = "false"
)
