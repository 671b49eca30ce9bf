// Package versions orders Node.js version strings numerically.
package versions

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var tripletRe = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)`)

// Normalize strips a single leading "v".
func Normalize(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "v")
}

// Parse reads the major.minor.patch triplet of v. Anything after the triplet
// (prerelease or build tags) is ignored for ordering. Zero-padded segments
// such as "18.09.1" read as their numeric value.
func Parse(v string) (*semver.Version, bool) {
	m := tripletRe.FindStringSubmatch(Normalize(v))
	if m == nil {
		return nil, false
	}
	var parts [3]uint64
	for i := range parts {
		n, err := strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			return nil, false
		}
		parts[i] = n
	}
	return semver.New(parts[0], parts[1], parts[2], "", ""), true
}

// Compare returns a negative number when a is newer than b, positive when b is
// newer, and zero when the triplets are equal. Unparseable strings sort after
// every parseable one and compare equal to each other.
func Compare(a, b string) int {
	av, aok := Parse(a)
	bv, bok := Parse(b)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}
	if av.Major() != bv.Major() {
		return cmpUint(bv.Major(), av.Major())
	}
	if av.Minor() != bv.Minor() {
		return cmpUint(bv.Minor(), av.Minor())
	}
	return cmpUint(bv.Patch(), av.Patch())
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// SortDescending sorts items newest first by the version returned from key.
// Ties keep their input order.
func SortDescending[T any](items []T, key func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return Compare(key(items[i]), key(items[j])) < 0
	})
}

// Major returns the major component, or -1 when v does not parse.
func Major(v string) int {
	sv, ok := Parse(v)
	if !ok {
		return -1
	}
	return int(sv.Major())
}
