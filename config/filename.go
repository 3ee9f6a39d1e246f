package config

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxNameBytes keeps generated names below common file system limits with
// room left for the output extension.
const maxNameBytes = 200

const badFileName = "_bad_file_name_"

// CleanFileName turns in into a name usable for output files: characters
// not allowed by the platform and control characters are dropped, leading
// dots are removed so output never becomes hidden, and the name is cut to a
// sane length.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if sym == utf8.RuneError || unicode.IsControl(sym) || forbiddenInName(sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimLeft(out, ".")
	out = trimPlatformSuffix(out)
	if len(out) > maxNameBytes {
		cut := maxNameBytes
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = trimPlatformSuffix(out[:cut])
	}
	if len(out) == 0 {
		return badFileName
	}
	return reservedName(out)
}
