package services

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"sync"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/logging"
)

// Screen paths.
const (
	PathSignIn         = "/sign-in"
	PathSignUp         = "/sign-up"
	PathContactList    = "/contact-list"
	PathAddEditContact = "/add-edit-contact"
)

// maxRedirects bounds the redirects a single Navigate may follow.
const maxRedirects = 4

// Route describes one screen.
type Route struct {
	Path         string
	RequiresAuth bool
}

// Routes is the route table; anything else redirects to sign-in.
var Routes = []Route{
	{Path: PathSignIn},
	{Path: PathSignUp},
	{Path: PathContactList, RequiresAuth: true},
	{Path: PathAddEditContact, RequiresAuth: true},
}

// Navigation is a resolved screen together with its query parameters.
type Navigation struct {
	Route  Route
	Params url.Values
}

// Navigator moves between screens, redirecting on the session state, and
// resyncs the directory after every successful move while logged in.
type Navigator struct {
	auth   AuthState
	dir    *Directory
	logger logging.Logger
	routes map[string]Route

	mu        sync.Mutex
	current   Navigation
	listeners []func(ctx context.Context, nav Navigation)
}

// NewNavigator builds a navigator over the default route table and makes
// auth's unauthenticated hook navigate to sign-in.
func NewNavigator(auth AuthState, dir *Directory, logger logging.Logger) *Navigator {
	n := &Navigator{
		auth:   auth,
		dir:    dir,
		logger: logger,
		routes: make(map[string]Route, len(Routes)),
	}
	for _, r := range Routes {
		n.routes[r.Path] = r
	}

	auth.OnUnauthenticated(func(ctx context.Context) {
		if _, err := n.Navigate(ctx, PathSignIn); err != nil {
			n.logger.Error(ctx, "redirect to sign in failed", "error", err)
		}
	})
	return n
}

// OnSuccess registers fn to run after every successful navigation, after the
// directory resync.
func (n *Navigator) OnSuccess(fn func(ctx context.Context, nav Navigation)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, fn)
}

// Current returns the last successful navigation.
func (n *Navigator) Current() Navigation {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Start performs the initial load: the session is reconciled, the directory
// is resynced when logged in, and initial is navigated to.
func (n *Navigator) Start(ctx context.Context, initial string) (Navigation, error) {
	if err := n.dir.Reconcile(ctx); err != nil {
		return Navigation{}, fmt.Errorf("reconcile session: %w", err)
	}
	if n.auth.IsLoggedIn(ctx) {
		if err := n.dir.SetCurrentUserContacts(ctx); err != nil {
			return Navigation{}, fmt.Errorf("resync: %w", err)
		}
	}
	return n.Navigate(ctx, initial)
}

// Navigate resolves target ("/path?query"). A target that needs a login
// while logged out goes to sign-in; sign-in while logged in goes to the
// contact list; unknown paths go to sign-in.
func (n *Navigator) Navigate(ctx context.Context, target string) (Navigation, error) {
	for range maxRedirects + 1 {
		u, err := url.Parse(target)
		if err != nil {
			return Navigation{}, fmt.Errorf("parse target %q: %w", target, err)
		}

		route, ok := n.routes[u.Path]
		if !ok {
			n.logger.Debug(ctx, "unknown route", "path", u.Path)
			target = PathSignIn
			continue
		}

		loggedIn := n.auth.IsLoggedIn(ctx)
		if route.RequiresAuth && !loggedIn {
			target = PathSignIn
			continue
		}
		if route.Path == PathSignIn && loggedIn {
			target = PathContactList
			continue
		}

		nav := Navigation{Route: route, Params: u.Query()}
		n.mu.Lock()
		n.current = nav
		listeners := slices.Clone(n.listeners)
		n.mu.Unlock()

		if loggedIn {
			if err := n.dir.SetCurrentUserContacts(ctx); err != nil {
				return nav, fmt.Errorf("resync: %w", err)
			}
		}
		for _, fn := range listeners {
			fn(ctx, nav)
		}
		return nav, nil
	}
	return Navigation{}, fmt.Errorf("navigate to %q: %w", target, common.ErrorTooManyRedirects)
}
