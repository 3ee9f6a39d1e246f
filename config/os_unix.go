//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

func forbiddenInName(sym rune) bool {
	return sym == os.PathSeparator || sym == os.PathListSeparator
}

func trimPlatformSuffix(name string) string {
	return name
}

func reservedName(name string) string {
	return name
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
