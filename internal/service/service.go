package service

import (
	"context"

	"transistor_bench/internal/models"
	"transistor_bench/internal/repository"
	"transistor_bench/internal/simulation"
)

// Analyzer runs current-limit analyses. Each invocation is independent;
// nothing is shared between runs.
type Analyzer interface {
	// Analyze runs synchronously and returns the terminal result plus the
	// full ordered point series for pseudo-stream replay.
	Analyze(ctx context.Context, input models.SimulationInput) (models.SimulationResult, []models.LiveDataPoint, error)
	// AnalyzeStream starts the run in its own goroutine. Points arrive
	// through the returned stream; the terminal result is delivered on the
	// channel exactly once, after the stream closes.
	AnalyzeStream(ctx context.Context, input models.SimulationInput) (*simulation.Stream, <-chan models.SimulationResult, error)
}

// Catalog exposes the read-only cooling profile catalog.
type Catalog interface {
	List(ctx context.Context) ([]models.CoolingProfile, error)
	Get(ctx context.Context, id string) (models.CoolingProfile, error)
}

// History exposes persisted runs with time-range filtering.
type History interface {
	List(ctx context.Context, f HistoryFilter) ([]models.SimulationRun, error)
}

// Advisor turns a completed result into adjusted parameters for an
// independent follow-up run.
type Advisor interface {
	Advise(ctx context.Context, req AdviceRequest) (Advice, error)
}

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Analyzer
	Catalog
	History
	Advisor
	Authorization
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, authCfg AuthConfig) *Service {
	return &Service{
		Analyzer:      NewAnalyzerService(repos.Cooling, repos.Runs),
		Catalog:       NewCatalogService(repos.Cooling),
		History:       NewHistoryService(repos.Runs),
		Advisor:       NewAdvisorService(repos.Cooling),
		Authorization: NewAuthService(repos.Auth, authCfg),
	}
}
