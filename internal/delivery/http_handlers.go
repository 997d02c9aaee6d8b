package delivery

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"adprofit/internal/domain"
	"adprofit/internal/usecase"
	"adprofit/pkg/logger"

	"github.com/gin-gonic/gin"
)

// handles HTTP requests
type HTTPHandlers struct {
	analysisService *usecase.AnalysisService
	ingestService   *usecase.IngestService
	logger          *logger.Logger
}

// creates new HTTP handlers
func NewHTTPHandlers(
	analysisService *usecase.AnalysisService,
	ingestService *usecase.IngestService,
	logger *logger.Logger,
) *HTTPHandlers {
	return &HTTPHandlers{
		analysisService: analysisService,
		ingestService:   ingestService,
		logger:          logger,
	}
}

// diagnoseRequest is the calculation inputs plus the campaign settings and
// traffic counters a diagnosis needs. A null or absent daily_budget means
// the spend is uncapped.
type diagnoseRequest struct {
	domain.CalculationInputs
	domain.DiagnosticOptions
}

// CalculateMetrics derives unit economics from raw campaign counters
func (h *HTTPHandlers) CalculateMetrics(c *gin.Context) {
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()
	log := h.logger.WithContext(ctx)

	var inputs domain.CalculationInputs
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid request body",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	results, err := h.analysisService.Calculate(ctx, inputs)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "Invalid inputs",
				"message":    err.Error(),
				"request_id": requestID,
			})
			return
		}
		log.WithError(err).Error("Calculation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Calculation failed",
			"request_id": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results":    results,
		"request_id": requestID,
	})
}

// DiagnoseCampaign runs the full calculate-classify-diagnose pipeline
func (h *HTTPHandlers) DiagnoseCampaign(c *gin.Context) {
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()
	log := h.logger.WithContext(ctx)

	var req diagnoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid request body",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	record, err := h.analysisService.Diagnose(ctx, req.CalculationInputs, req.DiagnosticOptions)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "Invalid inputs",
				"message":    err.Error(),
				"request_id": requestID,
			})
			return
		}
		log.WithError(err).Error("Diagnosis failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Diagnosis failed",
			"request_id": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis":   record,
		"request_id": requestID,
	})
}

// GetAnalysis returns one stored diagnostic run
func (h *HTTPHandlers) GetAnalysis(c *gin.Context) {
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	record, err := h.analysisService.GetAnalysis(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":      "Analysis not found",
				"request_id": requestID,
			})
			return
		}
		h.logger.WithContext(ctx).WithError(err).Error("Failed to get analysis")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Failed to get analysis",
			"request_id": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis":   record,
		"request_id": requestID,
	})
}

// GetAnalysisHistory lists stored diagnostic runs newest first
func (h *HTTPHandlers) GetAnalysisHistory(c *gin.Context) {
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, total, err := h.analysisService.History(ctx, limit, offset)
	if err != nil {
		h.logger.WithContext(ctx).WithError(err).Error("Failed to list analyses")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Failed to list analyses",
			"request_id": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       records,
		"total":      total,
		"limit":      limit,
		"offset":     offset,
		"request_id": requestID,
	})
}

// IngestPerformanceReport aggregates an uploaded ad-performance CSV
func (h *HTTPHandlers) IngestPerformanceReport(c *gin.Context) {
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	totals, err := h.ingestService.ParsePerformanceReport(ctx, c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Failed to parse performance report",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totals":     totals,
		"request_id": requestID,
	})
}

// IngestChangeLog counts manual configuration changes from an uploaded CSV
func (h *HTTPHandlers) IngestChangeLog(c *gin.Context) {
	requestID := c.GetString("request_id")
	ctx := c.Request.Context()

	summary, err := h.ingestService.ParseChangeLog(ctx, c.Request.Body, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Failed to parse change log",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":    summary,
		"request_id": requestID,
	})
}

// HealthCheck returns service health status
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "adprofit",
	})
}

// GetAPIInfo returns API v1 information and available endpoints
func (h *HTTPHandlers) GetAPIInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"api_version": "v1",
		"service":     "Ad Profitability Service",
		"description": "Profitability and competitiveness diagnostics for marketplace ad campaigns",
		"endpoints": gin.H{
			"analysis": gin.H{
				"calculate": gin.H{
					"path":        "/api/v1/analysis/calculate",
					"methods":     []string{"POST"},
					"description": "Derive per-unit economics from raw campaign counters and the cost structure",
				},
				"diagnose": gin.H{
					"path":        "/api/v1/analysis/diagnose",
					"methods":     []string{"POST"},
					"description": "Classify the campaign scenario and build issues, recommendations and an action plan",
				},
				"history": gin.H{
					"path":        "/api/v1/analysis",
					"methods":     []string{"GET"},
					"description": "List stored diagnostic runs",
					"parameters": gin.H{
						"limit":  "Page size",
						"offset": "Page offset",
					},
				},
			},
			"reports": gin.H{
				"performance": gin.H{
					"path":        "/api/v1/reports/performance",
					"methods":     []string{"POST"},
					"description": "Aggregate an ad-performance CSV into campaign totals",
				},
				"changes": gin.H{
					"path":        "/api/v1/reports/changes",
					"methods":     []string{"POST"},
					"description": "Count manual configuration changes from a change-log CSV",
				},
			},
		},
	})
}
