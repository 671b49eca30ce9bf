package nvm

import (
	"regexp"
	"strings"
)

var (
	installedLineRe = regexp.MustCompile(`\d+\.\d+\.\d+`)
	currentNoteRe   = regexp.MustCompile(`\(Currently.*\)`)
	remoteVersionRe = regexp.MustCompile(`\bv\d+\.\d+\.\d+\b`)
)

// ParseInstalledList reads `nvm ls` output. Lines without a digit triplet
// (headers, blank lines, "Default: none") are dropped. A leading "*" marks
// the active version.
func ParseInstalledList(text string) []InstalledVersion {
	out := make([]InstalledVersion, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !installedLineRe.MatchString(line) {
			continue
		}
		current := strings.HasPrefix(line, "*")
		v := strings.Replace(line, "*", "", 1)
		v = currentNoteRe.ReplaceAllString(v, "")
		out = append(out, InstalledVersion{Version: strings.TrimSpace(v), IsCurrent: current})
	}
	return out
}

// ParseRemoteList reads `nvm ls-remote` output. The listing carries no local
// state, so every row is NotInstalled with an unknown npm version.
func ParseRemoteList(text string) []AvailableVersion {
	out := make([]AvailableVersion, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		v := remoteVersionRe.FindString(line)
		if v == "" {
			continue
		}
		out = append(out, AvailableVersion{Version: v, Status: StatusNotInstalled, NpmVersion: UnknownNpm})
	}
	return out
}
