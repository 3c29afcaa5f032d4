// Package suggest produces "did you mean" hints for mistyped flags, commands
// and config keys.
package suggest

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

const maxSuggestions = 3

// CommonFlagAliases maps words users reach for to what they probably meant.
var CommonFlagAliases = map[string]string{
	"nomouse":  "--mouse=false",
	"no-mouse": "--mouse=false",
	"log":      "--log-file",
	"logfile":  "--log-file",
	"size":     "--width",
	"theme":    "--variant",
	"style":    "--variant",
	"depth":    "--max-depth",
	"version":  "use: modalfocus version",
	"focus":    "use: modalfocus config set initial_focus <id>",
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimLeft(s, "-"))
}

// GetFlagHint returns the alias hint for flag, or "".
func GetFlagHint(flag string) string {
	return CommonFlagAliases[normalize(flag)]
}

// Flag returns up to three entries of valid that are close to unknown, best
// first. Leading dashes and case are ignored when comparing; the returned
// entries keep their original form.
func Flag(unknown string, valid []string) []string {
	return closest(normalize(unknown), valid, normalize)
}

// Word is Flag for plain words such as command names and config keys.
func Word(unknown string, valid []string) []string {
	return closest(strings.ToLower(unknown), valid, strings.ToLower)
}

func closest(target string, valid []string, norm func(string) string) []string {
	type scored struct {
		value string
		dist  int
	}
	var matches []scored
	for _, v := range valid {
		n := norm(v)
		d := levenshtein.ComputeDistance(target, n)
		if d <= max(3, len(n)/2) {
			matches = append(matches, scored{v, d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].dist < matches[j].dist
	})

	var out []string
	for i := 0; i < len(matches) && i < maxSuggestions; i++ {
		out = append(out, matches[i].value)
	}
	return out
}
