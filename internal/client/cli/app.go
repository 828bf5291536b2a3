package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/contactbook/internal/client/config"
	"github.com/dmitrijs2005/contactbook/internal/client/images"
	"github.com/dmitrijs2005/contactbook/internal/client/repositories/slots"
	"github.com/dmitrijs2005/contactbook/internal/client/services"
	"github.com/dmitrijs2005/contactbook/internal/client/store"
	"github.com/dmitrijs2005/contactbook/internal/logging"
)

// App is the interactive client: one directory, one session and one screen
// at a time.
type App struct {
	config *config.Config
	logger logging.Logger
	store  *store.Store
	auth   services.AuthState
	dir    *services.Directory
	nav    *services.Navigator
	images *images.Loader
	reader *bufio.Reader
	out    io.Writer
}

// openRepository is a seam for slots.Open.
var openRepository = slots.Open

// NewApp opens the configured store and wires the services over it.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repo, err := openRepository(ctx, c)
	if err != nil {
		logger.Error(ctx, "error opening store", "backend", c.StoreBackend, "error", err)
		return nil, err
	}

	a, err := newApp(ctx, c, logger, repo, os.Stdin, os.Stdout)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	return a, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, repo slots.Repository, in io.Reader, out io.Writer) (*App, error) {
	st := store.New(repo)
	auth := services.NewAuthState(st, logger)

	dir, err := services.NewDirectory(ctx, st, auth, logger)
	if err != nil {
		return nil, fmt.Errorf("load directory: %w", err)
	}

	a := &App{
		config: c,
		logger: logger,
		store:  st,
		auth:   auth,
		dir:    dir,
		nav:    services.NewNavigator(auth, dir, logger),
		images: images.NewLoader(c.MaxImageBytes, logger),
		reader: bufio.NewReader(in),
		out:    out,
	}
	a.nav.OnSuccess(a.render)
	return a, nil
}

// Run restores the previous session and serves the REPL until the user
// exits, input ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to the contact book (type 'help' for commands)")

	// an edit interrupted by the previous run is resumed first
	initial := services.PathSignIn
	if a.dir.EditContactID() != "" {
		initial = services.PathAddEditContact
	}
	nav, err := a.nav.Start(ctx, initial)
	if err != nil {
		return err
	}
	if nav.Route.Path == services.PathAddEditContact {
		fmt.Fprintln(a.out, "Resuming unfinished edit.")
		if err := a.editor(ctx, nav); err != nil {
			a.logger.Warn(ctx, "resumed edit abandoned", "error", err)
		}
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.auth.IsLoggedIn(ctx)
}

func (a *App) getStatus() string {
	s := a.nav.Current().Route.Path
	if u, ok := a.dir.CurrentUser(); ok {
		s = u.Email + " " + s
	}
	return s
}

// navigate moves to target and reports failures to the user. The returned
// navigation is where the navigator actually landed.
func (a *App) navigate(ctx context.Context, target string) (services.Navigation, error) {
	nav, err := a.nav.Navigate(ctx, target)
	if err != nil {
		a.logger.Error(ctx, "navigation failed", "target", target, "error", err)
		fmt.Fprintln(a.out, "error:", err)
	}
	return nav, err
}

// render draws the screen the navigator just moved to.
func (a *App) render(ctx context.Context, nav services.Navigation) {
	switch nav.Route.Path {
	case services.PathSignIn:
		fmt.Fprintln(a.out, "== Sign in == ('signin' to sign in, 'signup' to create an account)")
	case services.PathSignUp:
		fmt.Fprintln(a.out, "== Sign up ==")
	case services.PathContactList:
		fmt.Fprintln(a.out, "== Contacts ==")
		a.printContacts()
	case services.PathAddEditContact:
		if a.editTarget(nav) != "" {
			fmt.Fprintln(a.out, "== Edit contact ==")
		} else {
			fmt.Fprintln(a.out, "== Add contact ==")
		}
	}
}
