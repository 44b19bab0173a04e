package services

import (
	"context"
	"testing"
	"time"

	"jobcard-backend/internal/timeutil"
)

func TestDailyTotalSumsToday(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, timeutil.Location())

	for _, c := range []struct {
		date string
		paid float64
	}{
		{"2026-03-10T00:00:00+05:30", 100},
		{"2026-03-10T23:59:00+05:30", 250},
		{"2026-03-09T23:59:00+05:30", 999},
		{"2026-03-11T00:00:00+05:30", 999},
	} {
		req := createReq("A", "B", c.paid, f64(c.paid), nil)
		req.Date = c.date
		if _, err := fx.jobcards.Create(ctx, req); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	stats, err := NewStatsService(fx.store).DailyTotal(ctx, now)
	if err != nil {
		t.Fatalf("DailyTotal: %v", err)
	}
	if stats.Total != 350 || stats.Date != "2026-03-10" {
		t.Fatalf("want 2026-03-10/350 got=%s/%v", stats.Date, stats.Total)
	}
}
