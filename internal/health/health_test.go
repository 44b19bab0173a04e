package health

import (
	"context"
	"testing"
)

func TestCheckBasicWithoutDatabase(t *testing.T) {
	h := NewHealthChecker(nil, "memory")
	got := h.CheckBasic(context.Background())
	if got.Status != "healthy" {
		t.Fatalf("status: want=healthy got=%s", got.Status)
	}
	if got.Database.Status != "not_configured" || got.Redis.Status != "not_configured" {
		t.Fatalf("dependencies: got db=%s redis=%s", got.Database.Status, got.Redis.Status)
	}
}

func TestFormatBytes(t *testing.T) {
	cases := map[uint64]string{
		512 * 1024 * 1024:      "512.0 MB",
		3 * 1024 * 1024 * 1024: "3.0 GB",
	}
	for in, want := range cases {
		if got := formatBytes(in); got != want {
			t.Fatalf("formatBytes(%d): want=%q got=%q", in, want, got)
		}
	}
}
