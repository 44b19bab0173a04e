package services

import (
	"context"
	"time"

	"jobcard-backend/internal/cache"
	"jobcard-backend/internal/models"
	"jobcard-backend/internal/timeutil"
)

type StatsService struct {
	Repo JobcardStore
}

func NewStatsService(repo JobcardStore) *StatsService {
	return &StatsService{Repo: repo}
}

// DailyTotal sums paid over the jobcards dated on now's calendar day
func (s *StatsService) DailyTotal(ctx context.Context, now time.Time) (*models.DailyStats, error) {
	date := timeutil.StartOfDay(now).Format(timeutil.DateLayout)
	if total, ok := cache.GetCachedDailyTotal(ctx, date); ok {
		return &models.DailyStats{Date: date, Total: total}, nil
	}

	total, err := s.Repo.SumPaid(ctx, timeutil.StartOfDay(now), timeutil.EndOfDay(now))
	if err != nil {
		return nil, err
	}
	cache.CacheDailyTotal(ctx, date, total)
	return &models.DailyStats{Date: date, Total: total}, nil
}
