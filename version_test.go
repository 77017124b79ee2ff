package quorum

import "testing"

func TestVersion(t *testing.T) {
	defer func(c string) { GitCommit = c }(GitCommit)

	const fullCommit = "3f2a9c1d7e5b40f6a1c0d9e8b7a6f5e4d3c2b1a0"
	cases := map[string]string{
		"":         "v0.1.0",
		"3f2a9c1d": "v0.1.0+3f2a9c1d",
		fullCommit: "v0.1.0+3f2a9c1d",
	}
	for commit, want := range cases {
		GitCommit = commit
		if got := Version(); got != want {
			t.Errorf("commit %q: want %q, got %q", commit, want, got)
		}
	}
}
