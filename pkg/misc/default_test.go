package misc

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	if got := Default("", "moonshot-v1-8k"); got != "moonshot-v1-8k" {
		t.Fatalf("expected default, got %q", got)
	}
	if got := Default("moonshot-v1-32k", "moonshot-v1-8k"); got != "moonshot-v1-32k" {
		t.Fatalf("expected value kept, got %q", got)
	}
	if got := Default(0, 8192); got != 8192 {
		t.Fatalf("expected 8192, got %d", got)
	}
}

func TestDurationDefault(t *testing.T) {
	if got := DurationDefault(-time.Second, 0); got != 0 {
		t.Fatalf("expected 0, got %s", got)
	}
	if got := DurationDefault(3*time.Second, 0); got != 3*time.Second {
		t.Fatalf("expected 3s, got %s", got)
	}
}
