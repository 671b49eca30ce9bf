package versions

import (
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestCompareDescending(t *testing.T) {
	in := []string{"18.9.1", "20.1.0", "18.9.2"}
	SortDescending(in, func(s string) string { return s })
	assert.Equal(t, []string{"20.1.0", "18.9.2", "18.9.1"}, in)
}

func TestCompareIsNumericNotLexicographic(t *testing.T) {
	assert.Negative(t, Compare("10.0.0", "9.12.3"))
	assert.Negative(t, Compare("v18.10.0", "18.9.0"))
	assert.Zero(t, Compare("v20.9.0", "20.9.0"))
	assert.Negative(t, Compare("18.09.1", "1.0.0"))
	assert.Zero(t, Compare("18.09.1", "18.9.1"))
	assert.Positive(t, Compare("18.09.1", "18.10.0"))
}

func TestUnparseableSortsLast(t *testing.T) {
	in := []string{"system", "16.3.0", "lts/*", "v21.0.0"}
	SortDescending(in, func(s string) string { return s })
	assert.Equal(t, []string{"v21.0.0", "16.3.0", "system", "lts/*"}, in)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "20.9.0", Normalize("v20.9.0"))
	assert.Equal(t, "20.9.0", Normalize(" 20.9.0 "))
}

func TestMajor(t *testing.T) {
	assert.Equal(t, 22, Major("v22.11.0"))
	assert.Equal(t, -1, Major("node"))
}

func versionGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Custom(func(t *rapid.T) string {
			prefix := rapid.SampledFrom([]string{"", "v"}).Draw(t, "prefix")
			segment := func(label string) string {
				pad := rapid.SampledFrom([]string{"", "", "0"}).Draw(t, label+"Pad")
				return pad + strconv.Itoa(rapid.IntRange(0, 30).Draw(t, label))
			}
			return prefix + segment("major") + "." + segment("minor") + "." + segment("patch")
		}),
		rapid.SampledFrom([]string{"system", "", "lts/iron", "N/A", "20.x"}),
	)
}

func TestSortDescendingProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		in := rapid.SliceOf(versionGen()).Draw(rt, "versions")
		out := slices.Clone(in)
		SortDescending(out, func(s string) string { return s })

		sortedIn := slices.Clone(in)
		slices.Sort(sortedIn)
		sortedOut := slices.Clone(out)
		slices.Sort(sortedOut)
		if !slices.Equal(sortedIn, sortedOut) {
			rt.Fatalf("sort is not a permutation: %v -> %v", in, out)
		}

		seenUnparseable := false
		for i, v := range out {
			_, ok := Parse(v)
			if !ok {
				seenUnparseable = true
				continue
			}
			if seenUnparseable {
				rt.Fatalf("parseable %q after an unparseable entry: %v", v, out)
			}
			if i > 0 && Compare(out[i-1], v) > 0 {
				rt.Fatalf("out of order at %d: %v", i, out)
			}
		}
	})
}
