// Package services contains the application services of the contact book:
// the persisted auth flag, the user/contact directory and the navigator that
// gates screens on the session.
package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/contactbook/internal/client/store"
	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/logging"
)

// AuthState tracks whether a user is logged in.
//
// Contract:
//   - LogIn: persist the flag as "true".
//   - LogOut: persist the flag as "false" and notify logout subscribers.
//   - IsLoggedIn: re-read the persisted flag on every call.
//   - RequireLogin: run the unauthenticated hook when logged out; never fails.
//   - Subscribe/Unsubscribe: manage logout observers.
//   - OnUnauthenticated: install the hook RequireLogin runs.
type AuthState interface {
	LogIn(ctx context.Context) error
	LogOut(ctx context.Context) error
	IsLoggedIn(ctx context.Context) bool
	RequireLogin(ctx context.Context) bool
	Subscribe(fn func(ctx context.Context)) uuid.UUID
	Unsubscribe(id uuid.UUID)
	OnUnauthenticated(fn func(ctx context.Context))
}

type subscriber struct {
	id uuid.UUID
	fn func(ctx context.Context)
}

// authState keeps no copy of the flag: the store is shared with other
// processes and is the only source of truth.
type authState struct {
	store  *store.Store
	logger logging.Logger

	mu              sync.Mutex
	subscribers     []subscriber
	unauthenticated func(ctx context.Context)
}

// NewAuthState binds the auth flag to st.
func NewAuthState(st *store.Store, logger logging.Logger) AuthState {
	return &authState{store: st, logger: logger}
}

func (a *authState) LogIn(ctx context.Context) error {
	if err := a.store.SetString(ctx, common.SlotLoggedIn, common.LoggedInTrue); err != nil {
		return fmt.Errorf("log in: %w", err)
	}
	return nil
}

// LogOut persists the logged-out flag, then calls every subscriber in
// subscription order. Subscribers are not called when the write fails.
func (a *authState) LogOut(ctx context.Context) error {
	if err := a.store.SetString(ctx, common.SlotLoggedIn, common.LoggedInFalse); err != nil {
		return fmt.Errorf("log out: %w", err)
	}

	a.mu.Lock()
	subs := slices.Clone(a.subscribers)
	a.mu.Unlock()

	for _, s := range subs {
		s.fn(ctx)
	}
	return nil
}

// IsLoggedIn treats an absent slot, any value other than "true" and a read
// failure as logged out.
func (a *authState) IsLoggedIn(ctx context.Context) bool {
	v, _, err := a.store.GetString(ctx, common.SlotLoggedIn)
	if err != nil {
		a.logger.Error(ctx, "failed to read login flag", "error", err)
		return false
	}
	return v == common.LoggedInTrue
}

func (a *authState) RequireLogin(ctx context.Context) bool {
	if a.IsLoggedIn(ctx) {
		return true
	}

	a.mu.Lock()
	hook := a.unauthenticated
	a.mu.Unlock()

	if hook != nil {
		hook(ctx)
	}
	return false
}

func (a *authState) Subscribe(fn func(ctx context.Context)) uuid.UUID {
	id := uuid.New()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.subscribers = append(a.subscribers, subscriber{id: id, fn: fn})
	return id
}

func (a *authState) Unsubscribe(id uuid.UUID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.subscribers = slices.DeleteFunc(a.subscribers, func(s subscriber) bool { return s.id == id })
}

func (a *authState) OnUnauthenticated(fn func(ctx context.Context)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.unauthenticated = fn
}
