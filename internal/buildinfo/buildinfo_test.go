package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestResolve_StampedValuesWin(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.22.4",
		Main:      debug.Module{Version: "v0.9.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-01-01T00:00:00Z"},
		},
	}

	got := resolve("v1.2.3", "abc123", "2026-02-03", bi)
	if got.Version != "v1.2.3" || got.Commit != "abc123" || got.Date != "2026-02-03" {
		t.Fatalf("expected stamped values, got %+v", got)
	}
	if got.GoVersion != "go1.22.4" {
		t.Fatalf("expected go version from build info, got %q", got.GoVersion)
	}
}

func TestResolve_FallsBackToBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.9.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-01-01T00:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	got := resolve("dev", "none", "unknown", bi)
	if got.Version != "v0.9.0" {
		t.Fatalf("expected module version, got %q", got.Version)
	}
	if got.Commit != "0123456789ab" {
		t.Fatalf("expected shortened revision, got %q", got.Commit)
	}
	if got.Date != "2026-01-01T00:00:00Z" || !got.Dirty {
		t.Fatalf("unexpected info %+v", got)
	}
	if !strings.Contains(got.String(), "commit=0123456789ab-dirty") {
		t.Fatalf("expected dirty marker in %q", got.String())
	}
}

func TestResolve_DevelModuleKeepsDefault(t *testing.T) {
	got := resolve("dev", "none", "unknown", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if got.Version != "dev" || got.Commit != "none" {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestString_Prefix(t *testing.T) {
	if s := resolve("dev", "none", "unknown", nil).String(); s != "triangle-area dev (commit=none, date=unknown)" {
		t.Fatalf("unexpected string %q", s)
	}
	if !strings.HasPrefix(String(), "triangle-area ") {
		t.Fatalf("unexpected String() %q", String())
	}
}
