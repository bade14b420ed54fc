package main

import (
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X main.buildVersion=... -X main.buildCommit=...".
var (
	buildVersion = "dev"
	buildCommit  = "unknown"
)

func versionString() string {
	commit := buildCommit
	if shortCommit(commit) == "" {
		commit = vcsRevision()
	}
	return formatVersion(buildVersion, commit)
}

// vcsRevision reads the commit stamped by `go build` when no ldflags were
// given.
func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	rev, dirty := "", false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev != "" && dirty {
		return rev + "+dirty"
	}
	return rev
}

func formatVersion(version, commit string) string {
	v := strings.TrimPrefix(strings.TrimSpace(version), "v")
	if v == "" || v == "dev" {
		if c := shortCommit(commit); c != "" {
			return "dev-" + c
		}
		return "dev"
	}
	return "v" + v
}

// shortCommit keeps the first seven characters of a sha and any "+dirty"
// marker.
func shortCommit(commit string) string {
	c := strings.TrimSpace(commit)
	c, dirty := strings.CutSuffix(c, "+dirty")
	if c == "" || c == "unknown" {
		return ""
	}
	if len(c) > 7 {
		c = c[:7]
	}
	if dirty {
		c += "+dirty"
	}
	return c
}
