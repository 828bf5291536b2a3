package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	SignUp(ctx context.Context) error
	SignIn(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Show(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, path string) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the contact book.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done, or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Logged out:
//	  - help              — show available commands
//	  - signup            — create an account
//	  - signin | login    — authenticate
//	  - exit | quit       — leave the program
//
//	Logged in:
//	  - help              — show available commands
//	  - (l)ist            — list contacts
//	  - add               — add a contact
//	  - edit <id>         — edit a contact
//	  - show <id>         — show one contact
//	  - delete <id>       — delete a contact
//	  - export <path>     — write contacts to .csv or .xlsx
//	  - logout            — log out
//	  - exit | quit       — leave the program
//
// Command errors are not fatal here; handlers report their own errors. This
// keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("contacts (%s)> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: (l)ist, add, edit <id>, show <id>, delete <id>, export <path>, logout, exit")
			} else {
				printlnFn("Available commands: signup, signin, exit")
			}

		case "signup", "register":
			_ = a.SignUp(ctx)

		case "signin", "login":
			_ = a.SignIn(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "add":
			_ = a.Add(ctx)

		case "edit", "show", "delete", "export":
			if len(args) == 0 {
				if cmd == "export" {
					printlnFn("Usage: export <path>")
				} else {
					printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				}
				continue
			}
			switch cmd {
			case "edit":
				_ = a.Edit(ctx, args[0])
			case "show":
				_ = a.Show(ctx, args[0])
			case "delete":
				_ = a.Delete(ctx, args[0])
			case "export":
				_ = a.Export(ctx, strings.Join(args, " "))
			}

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
