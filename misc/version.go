// Package misc provides program identification.
package misc

import (
	"runtime/debug"
	"sync"
)

const appName = "arender"

// set with -ldflags "-X arender/misc.version=... -X arender/misc.buildHash=..."
var (
	version   = ""
	buildHash = ""
)

var buildInfo = sync.OnceValues(func() (string, string) {
	ver, hash := version, buildHash
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ver, hash
	}
	if ver == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		ver = bi.Main.Version
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && hash == "" {
			hash = s.Value
		}
	}
	return ver, hash
})

func GetAppName() string {
	return appName
}

// GetVersion returns program version, "dev" when unknown.
func GetVersion() string {
	if v, _ := buildInfo(); v != "" {
		return v
	}
	return "dev"
}

// GetGitHash returns source revision the program was built from.
func GetGitHash() string {
	if _, h := buildInfo(); h != "" {
		return h
	}
	return "unknown"
}
