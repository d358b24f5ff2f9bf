package ui

import (
	"bytes"
	"testing"
)

func TestContentHeight(t *testing.T) {
	tests := map[string]int{
		"":          0,
		"one":       1,
		"one\n":     1,
		"a\nb\nc":   3,
		"a\nb\nc\n": 3,
	}
	for content, want := range tests {
		if got := contentHeight(content); got != want {
			t.Errorf("contentHeight(%q) = %d, want %d", content, got, want)
		}
	}
}

func TestGetPagerCommand(t *testing.T) {
	t.Setenv("PQ_PAGER", "")
	t.Setenv("PAGER", "")
	if got := getPagerCommand(PagerOptions{}); got != "less" {
		t.Errorf("default pager = %q, want less", got)
	}

	t.Setenv("PAGER", "more")
	if got := getPagerCommand(PagerOptions{}); got != "more" {
		t.Errorf("pager with PAGER = %q, want more", got)
	}

	t.Setenv("PQ_PAGER", "bat -p")
	if got := getPagerCommand(PagerOptions{}); got != "bat -p" {
		t.Errorf("pager with PQ_PAGER = %q, want bat -p", got)
	}

	if got := getPagerCommand(PagerOptions{Command: "most"}); got != "most" {
		t.Errorf("pager with explicit command = %q, want most", got)
	}
}

func TestShouldUsePager(t *testing.T) {
	t.Setenv("PQ_NO_PAGER", "")
	if shouldUsePager(PagerOptions{NoPager: true}) {
		t.Error("NoPager option ignored")
	}
	if shouldUsePager(PagerOptions{Out: &bytes.Buffer{}}) {
		t.Error("pager used for a non-stdout writer")
	}

	t.Setenv("PQ_NO_PAGER", "1")
	if shouldUsePager(PagerOptions{}) {
		t.Error("PQ_NO_PAGER ignored")
	}
}

func TestToPager_Direct(t *testing.T) {
	var buf bytes.Buffer
	if err := ToPager("line 1\nline 2\n", PagerOptions{Out: &buf}); err != nil {
		t.Fatalf("ToPager() error = %v", err)
	}
	if got := buf.String(); got != "line 1\nline 2\n" {
		t.Errorf("ToPager() wrote %q", got)
	}
}
