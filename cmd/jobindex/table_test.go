package main

import (
	"strings"
	"testing"
)

func TestStatusLabel(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"queued_first", "Queued First"},
		{"failure_exception", "Failure Exception"},
		{"success", "Success"},
		{"transition", "Transition"},
	}
	for _, tc := range cases {
		if got := statusLabel(tc.input); got != tc.want {
			t.Fatalf("statusLabel(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"only-a"}}, 2)
	if !strings.Contains(out, "only-a") {
		t.Fatalf("missing cell: %q", out)
	}
	if !strings.Contains(out, "A") || !strings.Contains(out, "B") {
		t.Fatalf("missing headers: %q", out)
	}
}
