package quorum

// Release is the last released version of this module.
const Release = "v0.1.0"

// GitCommit is the commit a binary was built from. Set it at build time
// with -ldflags "-X github.com/iov-one/quorum.GitCommit=<hash>".
var GitCommit = ""

// Version returns the release with the abbreviated git commit attached as
// semver build metadata, for example v0.1.0+3f2a9c1d.
func Version() string {
	if GitCommit == "" {
		return Release
	}
	commit := GitCommit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	return Release + "+" + commit
}
