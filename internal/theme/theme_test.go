package theme

import (
	"strings"
	"testing"
)

func TestPaletteHexValidate(t *testing.T) {
	p := DefaultPaletteHex()
	if err := p.Validate(); err != nil {
		t.Fatalf("expected valid default palette: %v", err)
	}
	p.Danger = "red"
	if err := p.Validate(); err == nil {
		t.Fatalf("expected invalid hex error")
	}
}

func TestResolveForTerminal(t *testing.T) {
	p := DefaultPaletteHex()
	resolvedTrue := ResolveForTerminal(p, true)
	if resolvedTrue.StatusInstalled != string(p.StatusInstalled) {
		t.Fatalf("expected truecolor to keep hex")
	}
	resolved256 := ResolveForTerminal(p, false)
	if resolved256.Danger == "" || resolved256.Danger[0] == '#' {
		t.Fatalf("expected numeric terminal color for 256 fallback, got %q", resolved256.Danger)
	}
	if resolved256.CurrentBadge == "" || resolved256.ColNpm == "" {
		t.Fatalf("expected all fields to resolve")
	}
}

func TestNearestXterm256ExactMatches(t *testing.T) {
	if got := nearestXterm256(rgb{255, 0, 0}); got != 9 {
		t.Fatalf("expected pure red to map to 9, got %d", got)
	}
	if got := nearestXterm256(rgb{0, 0, 0}); got != 0 {
		t.Fatalf("expected black to map to 0, got %d", got)
	}
}

func TestWithOverrides(t *testing.T) {
	p, err := WithOverrides(map[string]string{"status_installed": "#112233", " Current_Badge ": "#abcdef"})
	if err != nil {
		t.Fatalf("overrides: %v", err)
	}
	if p.StatusInstalled != "#112233" || p.CurrentBadge != "#abcdef" {
		t.Fatalf("overrides not applied: %#v", p)
	}
	if p.Danger != DefaultPaletteHex().Danger {
		t.Fatalf("untouched keys should keep defaults")
	}
}

func TestWithOverridesRejectsUnknownKey(t *testing.T) {
	_, err := WithOverrides(map[string]string{"col_fork": "#112233"})
	if err == nil || !strings.Contains(err.Error(), "unknown theme color") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWithOverridesRejectsBadHex(t *testing.T) {
	_, err := WithOverrides(map[string]string{"success": "green"})
	if err == nil || !strings.Contains(err.Error(), "invalid hex color for success") {
		t.Fatalf("unexpected error: %v", err)
	}
}
