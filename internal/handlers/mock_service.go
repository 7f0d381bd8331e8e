package handlers

import (
	"context"
	"net/http"

	"transistor_bench/internal/models"
	"transistor_bench/internal/service"
	"transistor_bench/internal/simulation"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockAnalyzer struct {
	result models.SimulationResult
	points []models.LiveDataPoint
	err    error

	lastInput    models.SimulationInput
	analyzeCalls int
	streamCalls  int
}

func (m *mockAnalyzer) Analyze(ctx context.Context, input models.SimulationInput) (models.SimulationResult, []models.LiveDataPoint, error) {
	m.analyzeCalls++
	m.lastInput = input
	return m.result, m.points, m.err
}

// AnalyzeStream replays the canned points through a pre-closed stream so the
// consumer exercises its full drain-then-result path.
func (m *mockAnalyzer) AnalyzeStream(ctx context.Context, input models.SimulationInput) (*simulation.Stream, <-chan models.SimulationResult, error) {
	m.streamCalls++
	m.lastInput = input
	if m.err != nil {
		return nil, nil, m.err
	}
	stream := simulation.NewStream()
	for _, p := range m.points {
		stream.Emit(p)
	}
	stream.Close()
	results := make(chan models.SimulationResult, 1)
	results <- m.result
	return stream, results, nil
}

type mockCatalog struct {
	profiles []models.CoolingProfile
	getResp  models.CoolingProfile
	err      error
	lastID   string
}

func (m *mockCatalog) List(ctx context.Context) ([]models.CoolingProfile, error) {
	return m.profiles, m.err
}
func (m *mockCatalog) Get(ctx context.Context, id string) (models.CoolingProfile, error) {
	m.lastID = id
	return m.getResp, m.err
}

type mockHistory struct {
	resp []models.SimulationRun
	err  error
	last service.HistoryFilter
}

func (m *mockHistory) List(ctx context.Context, f service.HistoryFilter) ([]models.SimulationRun, error) {
	m.last = f
	return m.resp, m.err
}

type mockAdvisor struct {
	advice  service.Advice
	err     error
	lastReq service.AdviceRequest
}

func (m *mockAdvisor) Advise(ctx context.Context, req service.AdviceRequest) (service.Advice, error) {
	m.lastReq = req
	return m.advice, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
