package main

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Rehearsed", statusError, "Not running", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Rehearsed:", "[ERROR] Not running")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Rehearsed", statusOK, "Running", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatal("expected non-file writer to disable color")
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Metric", "Value"},
		[][]string{{"Sessions", "3"}, {"Average score", "77%"}},
		[]columnAlignment{alignLeft, alignRight},
	)
	requireContains(t, out, "Metric")
	requireContains(t, out, "Sessions")
	requireContains(t, out, "77%")
}

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{42, "42s"},
		{60, "1m 00s"},
		{95, "1m 35s"},
		{600, "10m 00s"},
		{-5, "0s"},
	}
	for _, tc := range cases {
		if got := formatSeconds(tc.seconds); got != tc.want {
			t.Errorf("formatSeconds(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
