package quorumtest

import (
	"io/ioutil"
	"os"
	"testing"
)

// TempDir creates a directory for a test database. Call cleanup when the
// database is closed to remove it.
func TempDir(t testing.TB, prefix string) (dir string, cleanup func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", prefix)
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}
	return dir, func() { os.RemoveAll(dir) }
}
