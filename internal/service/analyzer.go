package service

import (
	"context"
	"time"

	"transistor_bench/internal/models"
	"transistor_bench/internal/repository"
	"transistor_bench/internal/simulation"

	"github.com/google/uuid"
)

// AnalyzerService orchestrates one run: cooling profile lookup, unit
// normalization, the current search, and history persistence.
type AnalyzerService struct {
	coolingRepo repository.CoolingRepo
	runRepo     repository.RunRepo
}

func NewAnalyzerService(coolingRepo repository.CoolingRepo, runRepo repository.RunRepo) *AnalyzerService {
	return &AnalyzerService{coolingRepo: coolingRepo, runRepo: runRepo}
}

// prepare resolves the cooling profile and normalizes the raw inputs.
// Configuration errors surface here, before any evaluation starts.
func (s *AnalyzerService) prepare(ctx context.Context, input models.SimulationInput) (simulation.Params, error) {
	profile, err := s.coolingRepo.Get(ctx, input.CoolingProfileID)
	if err != nil {
		return simulation.Params{}, err
	}
	return simulation.Normalize(input, profile)
}

func (s *AnalyzerService) Analyze(ctx context.Context, input models.SimulationInput) (models.SimulationResult, []models.LiveDataPoint, error) {
	params, err := s.prepare(ctx, input)
	if err != nil {
		return models.SimulationResult{}, nil, err
	}

	var sink simulation.Collector
	result := simulation.New(params).Run(&sink)

	if err := s.record(ctx, input, result); err != nil {
		return models.SimulationResult{}, nil, err
	}
	return result, sink.Points(), nil
}

func (s *AnalyzerService) AnalyzeStream(ctx context.Context, input models.SimulationInput) (*simulation.Stream, <-chan models.SimulationResult, error) {
	params, err := s.prepare(ctx, input)
	if err != nil {
		return nil, nil, err
	}

	stream := simulation.NewStream()
	results := make(chan models.SimulationResult, 1)
	go func() {
		result := simulation.New(params).Run(stream)
		stream.Close()
		results <- result
		// History stays best-effort on the live path; the stream consumer
		// owns the response and must not wait on the write.
		_ = s.record(context.WithoutCancel(ctx), input, result)
	}()
	return stream, results, nil
}

func (s *AnalyzerService) record(ctx context.Context, input models.SimulationInput, result models.SimulationResult) error {
	return s.runRepo.Save(ctx, models.SimulationRun{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Params:    input,
		Result:    result,
	})
}
