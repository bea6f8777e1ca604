// Package version reports which build of the analyzer is running.
//
// Release builds stamp Version, Commit and Date with -ldflags. Other builds
// fall back to the module build info and then to git in the working
// directory.
package version

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

// Name is the program name reported by Info.
const Name = "weblog-analyzer"

// Set with -ldflags "-X .../internal/version.Version=v1.2.3" and friends.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

const gitTimeout = 2 * time.Second

var (
	resolveOnce sync.Once

	// git runs git with args and returns its trimmed stdout.
	git = func(args ...string) (string, error) {
		ctx, cancel := context.WithTimeout(context.Background(), gitTimeout)
		defer cancel()
		out, err := exec.CommandContext(ctx, "git", args...).Output()
		return strings.TrimSpace(string(out)), err
	}

	// buildInfo is debug.ReadBuildInfo, replaced in tests.
	buildInfo = debug.ReadBuildInfo
)

func resolve() {
	resolveOnce.Do(func() {
		if Commit == "" {
			Commit = vcsRevision()
		}
		if Commit == "" {
			Commit = gitOr("unknown", "describe", "--always", "--dirty")
		}
		if Version == "" {
			Version = gitOr("dev", "describe", "--tags", "--abbrev=0")
		}
		if Date == "" {
			Date = time.Now().Format(time.DateOnly)
		}
	})
}

// vcsRevision returns the commit recorded by the go tool, shortened to the
// length git describe uses, or "" when the binary carries none.
func vcsRevision() string {
	info, ok := buildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return s.Value[:min(len(s.Value), 7)]
		}
	}
	return ""
}

func gitOr(fallback string, args ...string) string {
	out, err := git(args...)
	if err != nil || out == "" {
		return fallback
	}
	return out
}

// Reset forgets resolved values so the next lookup detects them again.
func Reset() {
	Version, Commit, Date = "", "", ""
	resolveOnce = sync.Once{}
}

// GetVersion returns the release tag, or "dev" outside a tagged checkout.
func GetVersion() string {
	resolve()
	return Version
}

// GetCommit returns the commit the binary was built from.
func GetCommit() string {
	resolve()
	return Commit
}

// GetDate returns the build date.
func GetDate() string {
	resolve()
	return Date
}

// Info is the --version line.
func Info() string {
	resolve()
	return fmt.Sprintf("%s %s (commit: %s, built: %s, %s/%s)",
		Name, Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}
