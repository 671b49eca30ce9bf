package nvm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseInstalledList(t *testing.T) {
	got := ParseInstalledList("* 18.9.2 (Currently using 64-bit executable)\n  16.3.0\nDefault: none")
	want := []InstalledVersion{
		{Version: "18.9.2", IsCurrent: true},
		{Version: "16.3.0", IsCurrent: false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("installed list mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInstalledListWindowsFormat(t *testing.T) {
	text := "\r\n    20.11.1\r\n  * 18.19.0 (Currently using 64-bit executable)\r\n    16.20.2\r\n\r\n"
	got := ParseInstalledList(text)
	want := []InstalledVersion{
		{Version: "20.11.1"},
		{Version: "18.19.0", IsCurrent: true},
		{Version: "16.20.2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("installed list mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInstalledListNoMatches(t *testing.T) {
	got := ParseInstalledList("No installations recognized.\n")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestParseRemoteList(t *testing.T) {
	got := ParseRemoteList("v21.0.0   (LTS)\nv20.9.0\n")
	want := []AvailableVersion{
		{Version: "v21.0.0", Status: StatusNotInstalled, NpmVersion: UnknownNpm},
		{Version: "v20.9.0", Status: StatusNotInstalled, NpmVersion: UnknownNpm},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("remote list mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRemoteListSkipsNoise(t *testing.T) {
	text := "       v0.1.14\n->     v18.19.0   (Latest LTS: Hydrogen)\n  iojs-v1.0.0\nN/A\n"
	got := ParseRemoteList(text)
	want := []string{"v0.1.14", "v18.19.0", "v1.0.0"}
	if len(got) != len(want) {
		t.Fatalf("unexpected rows: %#v", got)
	}
	for i := range want {
		if got[i].Version != want[i] {
			t.Fatalf("row %d: expected %s got %s", i, want[i], got[i].Version)
		}
	}
}
