package service

import (
	"context"
	"errors"
	"time"

	"transistor_bench/internal/models"
	"transistor_bench/internal/repository"
)

type HistoryService struct {
	runRepo repository.RunRepo
}

func NewHistoryService(runRepo repository.RunRepo) *HistoryService {
	return &HistoryService{runRepo: runRepo}
}

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func (s *HistoryService) List(ctx context.Context, f HistoryFilter) ([]models.SimulationRun, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errInvalidTimeRange
	}
	return s.runRepo.List(ctx, from, to)
}
