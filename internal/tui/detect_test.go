package tui

import (
	"bytes"
	"os"
	"testing"
)

func TestColorEnabled_NO_COLOR(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if ColorEnabled(os.Stdout) {
		t.Error("ColorEnabled() = true, want false when NO_COLOR is set")
	}
}

func TestColorEnabled_SWAPIFY_NO_COLOR(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("SWAPIFY_NO_COLOR", "1")

	if ColorEnabled(os.Stdout) {
		t.Error("ColorEnabled() = true, want false when SWAPIFY_NO_COLOR=1")
	}
}

func TestColorEnabled_DumbTerminal(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("SWAPIFY_NO_COLOR", "")
	t.Setenv("TERM", "dumb")

	if ColorEnabled(os.Stdout) {
		t.Error("ColorEnabled() = true, want false for TERM=dumb")
	}
}

func TestColorEnabled_NonFileWriter(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("SWAPIFY_NO_COLOR", "")
	t.Setenv("TERM", "xterm-256color")

	if ColorEnabled(&bytes.Buffer{}) {
		t.Error("ColorEnabled() = true, want false for a buffer")
	}
}

func TestColorEnabled_PipeIsNotTerminal(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("SWAPIFY_NO_COLOR", "")
	t.Setenv("TERM", "xterm-256color")

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	defer r.Close()
	defer w.Close()

	if ColorEnabled(w) {
		t.Error("ColorEnabled() = true, want false for a pipe")
	}
}
