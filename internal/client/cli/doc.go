// Package cli provides the interactive contact book client.
//
// It wires configuration, the slot store, the auth/directory/navigator
// services and an interactive REPL. The REPL shows one screen at a time,
// addressed by the navigator's route paths:
//   - /sign-in and /sign-up while logged out
//   - /contact-list and /add-edit-contact while logged in
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// ctx is cancelled. See App and runREPL for details.
package cli
