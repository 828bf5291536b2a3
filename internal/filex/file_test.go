package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	defer chdir(t, tmp)()

	got, err := EnsureDir("exports")
	require.NoError(t, err)

	want := filepath.Join(tmp, "exports")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()

	first, err := EnsureDir(filepath.Join(tmp, "a", "b"))
	require.NoError(t, err)

	second, err := EnsureDir(filepath.Join(tmp, "a", "b"))
	require.NoError(t, err)

	require.Equal(t, first, second)
	fi, err := os.Stat(second)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "exports")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o660))

	_, err := EnsureDir(p)
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestResolveIn(t *testing.T) {
	base := t.TempDir()

	got, err := ResolveIn(base, filepath.Join("2024", "contacts.csv"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "2024", "contacts.csv"), got)

	fi, err := os.Stat(filepath.Join(base, "2024"))
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	abs := filepath.Join(t.TempDir(), "out.xlsx")
	got, err = ResolveIn(base, abs)
	require.NoError(t, err)
	require.Equal(t, abs, got)
}
