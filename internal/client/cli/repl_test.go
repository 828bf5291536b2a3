package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return nil
}

func (f *fakeExec) isLoggedIn(ctx context.Context) bool { return f.loggedIn }
func (f *fakeExec) SignUp(ctx context.Context) error  { return f.record("signup") }
func (f *fakeExec) SignIn(ctx context.Context) error {
	f.loggedIn = true
	return f.record("signin")
}
func (f *fakeExec) List(ctx context.Context) error { return f.record("list") }
func (f *fakeExec) Add(ctx context.Context) error  { return f.record("add") }
func (f *fakeExec) Edit(ctx context.Context, id string) error {
	return f.record("edit " + id)
}
func (f *fakeExec) Show(ctx context.Context, id string) error {
	return f.record("show " + id)
}
func (f *fakeExec) Delete(ctx context.Context, id string) error {
	return f.record("delete " + id)
}
func (f *fakeExec) Export(ctx context.Context, path string) error {
	return f.record("export " + path)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

// capturePrints swaps printlnFn for a recorder.
func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_Dispatch(t *testing.T) {
	capturePrints(t)

	input := strings.Join([]string{
		"signup",
		"register",
		"login",
		"l",
		"list",
		"add",
		"edit 1700000000000",
		"show 1",
		"delete 2",
		"export my contacts.csv",
		"",
		"logout",
		"signin",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"signup", "signup", "signin", "list", "list", "add",
		"edit 1700000000000", "show 1", "delete 2", "export my contacts.csv",
		"logout", "signin",
	}, exec.calls)
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("help\nsignin\nhelp\n")))

	var help []string
	for _, l := range *lines {
		if strings.HasPrefix(l, "Available commands") {
			help = append(help, l)
		}
	}
	assert.Equal(t, []string{
		"Available commands: signup, signin, exit",
		"Available commands: (l)ist, add, edit <id>, show <id>, delete <id>, export <path>, logout, exit",
	}, help)
}

func TestRunREPL_UsageUnknownAndQuit(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("edit\nexport\nfoobar\nquit\nlist\n")))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Usage: edit <id>")
	assert.Contains(t, *lines, "Usage: export <path>")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("signup")))

	assert.Equal(t, []string{"signup"}, exec.calls)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrints(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("signup\n")))
	assert.Empty(t, exec.calls)
}
