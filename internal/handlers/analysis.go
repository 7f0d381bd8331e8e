package handlers

import (
	"errors"
	"net/http"

	"transistor_bench/internal/chart"
	"transistor_bench/internal/models"
	"transistor_bench/internal/repository"
	"transistor_bench/internal/service"
	"transistor_bench/internal/simulation"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errRunAnalysis    = "analysis failed"
	errRenderChart    = "failed to render chart"
	errListProfiles   = "failed to load cooling profiles"
	errComputeAdvice  = "failed to compute advice"
	errInvalidBodyPre = "invalid body: "
)

// configErrors are rejected parameter sets: the client's problem, not ours.
var configErrors = []error{
	simulation.ErrInvalidMaxCurrent,
	simulation.ErrInvalidMaxVoltage,
	simulation.ErrInvalidTotalRth,
	simulation.ErrInvalidPrecision,
	simulation.ErrMissingCoefficient,
	simulation.ErrInvalidMode,
	simulation.ErrInvalidAlgorithm,
	simulation.ErrInvalidCoolingBudget,
	repository.ErrProfileNotFound,
}

func isConfigError(err error) bool {
	for _, sentinel := range configErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Run a maximum-safe-current analysis
// @Description  Runs the full current search synchronously and returns the terminal result plus the ordered point series.
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        body  body   models.SimulationInput  true  "Device and run parameters"
// @Success      200   {object}  map[string]interface{}  "result, points"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/analysis [post]
// @Security     BearerAuth
func (h *Handler) runAnalysis(c *gin.Context) {
	var input models.SimulationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPre + err.Error()})
		return
	}

	ctx := c.Request.Context()
	result, points, err := h.services.Analyzer.Analyze(ctx, input)
	if err != nil {
		if isConfigError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errRunAnalysis, "analysis_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": result,
		"points": points,
	})
}

// @Summary      Render an analysis chart
// @Description  Runs the analysis and returns a PNG plotting junction temperature and power loss against current.
// @Tags         analysis
// @Accept       json
// @Produce      png
// @Param        body  body   models.SimulationInput  true  "Device and run parameters"
// @Success      200   {file}    file
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/analysis/chart [post]
// @Security     BearerAuth
func (h *Handler) renderChart(c *gin.Context) {
	var input models.SimulationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPre + err.Error()})
		return
	}

	ctx := c.Request.Context()
	_, points, err := h.services.Analyzer.Analyze(ctx, input)
	if err != nil {
		if isConfigError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errRunAnalysis, "analysis_failed", err)
		return
	}

	png, err := chart.Render(input.TransistorType, points)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errRenderChart, "chart_render_failed", err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// @Summary      List cooling profiles
// @Tags         cooling
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, profiles"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/cooling-profiles [get]
// @Security     BearerAuth
func (h *Handler) listCoolingProfiles(c *gin.Context) {
	profiles, err := h.services.Catalog.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListProfiles, "cooling_profiles_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(profiles),
		"profiles": profiles,
	})
}

// @Summary      Get one cooling profile
// @Tags         cooling
// @Produce      json
// @Param        id  path  string  true  "Profile id"
// @Success      200  {object}  models.CoolingProfile
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/cooling-profiles/{id} [get]
// @Security     BearerAuth
func (h *Handler) getCoolingProfile(c *gin.Context) {
	profile, err := h.services.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errListProfiles, "cooling_profile_get_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, profile)
}

// @Summary      Advise a follow-up run
// @Description  Maps a completed result to adjusted parameters worth trying next.
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        body  body   service.AdviceRequest  true  "Parameters plus the result they produced"
// @Success      200   {object}  service.Advice
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/advice [post]
// @Security     BearerAuth
func (h *Handler) getAdvice(c *gin.Context) {
	var req service.AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPre + err.Error()})
		return
	}

	advice, err := h.services.Advisor.Advise(c.Request.Context(), req)
	if err != nil {
		if isConfigError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errComputeAdvice, "advice_failed", err)
		return
	}
	c.JSON(http.StatusOK, advice)
}
