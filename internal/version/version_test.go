package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFill(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })

	Version, Commit = "", ""
	fill(&debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
		},
	}, true)

	if Version != "v0.4.1" {
		t.Errorf("Version = %q, want v0.4.1", Version)
	}
	if Commit != "0123456-dirty" {
		t.Errorf("Commit = %q, want 0123456-dirty", Commit)
	}
}

func TestFillKeepsLdflags(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })

	Version, Commit = "v9.9.9", "feed"
	fill(&debug.BuildInfo{Main: debug.Module{Version: "v0.1.0"}}, true)
	if Version != "v9.9.9" || Commit != "feed" {
		t.Errorf("fill() overwrote ldflags values: %s %s", Version, Commit)
	}

	fill(nil, false)
}

func TestInfoString(t *testing.T) {
	i := Info{Version: "v1.2.3", Commit: "abc", GoVersion: "go1.24", Platform: "linux/amd64"}
	if got := i.String(); got != "formguard 1.2.3 (commit: abc, go1.24, linux/amd64)" {
		t.Errorf("String() = %q", got)
	}
	if !strings.Contains(Full(), Commit) {
		t.Errorf("Full() = %q should contain commit", Full())
	}
	if Get().Version == "" {
		t.Error("Get().Version should never be empty")
	}
}
