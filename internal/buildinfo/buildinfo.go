// Package buildinfo reports which triangle-area build is running.
//
// Release builds stamp Version, Commit and Date through -ldflags -X. Builds
// without those flags (go install, go build in a checkout) fall back to the
// module and VCS metadata the toolchain embeds.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const shortCommit = 12

type Info struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
	Dirty     bool
}

func Read() Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(Version, Commit, Date, bi)
}

// resolve prefers stamped values and fills the rest from bi, which may be nil.
func resolve(version, commit, date string, bi *debug.BuildInfo) Info {
	info := Info{Version: version, Commit: commit, Date: date}
	if bi == nil {
		return info
	}
	info.GoVersion = bi.GoVersion

	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "unknown" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	if len(info.Commit) > shortCommit {
		info.Commit = info.Commit[:shortCommit]
	}
	return info
}

func (i Info) String() string {
	commit := i.Commit
	if i.Dirty {
		commit += "-dirty"
	}
	s := fmt.Sprintf("triangle-area %s (commit=%s, date=%s", i.Version, commit, i.Date)
	if i.GoVersion != "" {
		s += ", " + i.GoVersion
	}
	return s + ")"
}

func String() string {
	return Read().String()
}
