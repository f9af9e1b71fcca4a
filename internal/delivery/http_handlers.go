package delivery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"adscope/internal/domain"
	"adscope/internal/usecase"
	"adscope/pkg/config"
	"adscope/pkg/logger"
	"adscope/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// handles HTTP requests
type HTTPHandlers struct {
	reportService   *usecase.ReportService
	analysisService *usecase.AnalysisService
	metricsService  *usecase.MetricsService
	exportService   *usecase.ExportService
	cfg             *config.Config
	logger          *logger.Logger
	metrics         *metrics.Metrics
}

// creates new HTTP handlers
func NewHTTPHandlers(
	reportService *usecase.ReportService,
	analysisService *usecase.AnalysisService,
	metricsService *usecase.MetricsService,
	exportService *usecase.ExportService,
	cfg *config.Config,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *HTTPHandlers {
	return &HTTPHandlers{
		reportService:   reportService,
		analysisService: analysisService,
		metricsService:  metricsService,
		exportService:   exportService,
		cfg:             cfg,
		logger:          logger,
		metrics:         metrics,
	}
}

// UploadSearchTermReport ingests a search term report file
func (h *HTTPHandlers) UploadSearchTermReport(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	content, filename, ok := h.readUploadedFile(c, "/upload/search-term-report", requestID, start)
	if !ok {
		return
	}

	result, err := h.reportService.UploadSearchTermReport(ctx, content, filename)
	if err != nil {
		status := uploadErrorStatus(err)
		h.metrics.RecordHTTPRequest("POST", "/upload/search-term-report", strconv.Itoa(status), time.Since(start))
		h.logger.WithContext(ctx).WithError(err).Error("Search term report upload failed")
		c.JSON(status, gin.H{
			"error":      "Upload failed",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("POST", "/upload/search-term-report", "200", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"session_id": result.SessionID,
		"file_type":  result.FileType,
		"row_count":  result.RowCount,
		"columns":    result.Columns,
		"date_range": result.DateRange,
		"campaigns":  result.Campaigns,
		"message":    result.Message,
		"request_id": requestID,
	})
}

// UploadBulkFile stores an optional bulk operations file
func (h *HTTPHandlers) UploadBulkFile(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	content, filename, ok := h.readUploadedFile(c, "/upload/bulk-file", requestID, start)
	if !ok {
		return
	}

	sessionID := c.PostForm("session_id")

	result, err := h.reportService.UploadBulkFile(ctx, content, filename, sessionID)
	if err != nil {
		status := uploadErrorStatus(err)
		h.metrics.RecordHTTPRequest("POST", "/upload/bulk-file", strconv.Itoa(status), time.Since(start))
		h.logger.WithContext(ctx).WithError(err).Error("Bulk file upload failed")
		c.JSON(status, gin.H{
			"error":      "Upload failed",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("POST", "/upload/bulk-file", "200", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"session_id": result.SessionID,
		"file_type":  result.FileType,
		"row_count":  result.RowCount,
		"columns":    result.Columns,
		"campaigns":  result.Campaigns,
		"message":    result.Message,
		"request_id": requestID,
	})
}

// ValidateFile checks an upload's structure without storing it
func (h *HTTPHandlers) ValidateFile(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	content, filename, ok := h.readUploadedFile(c, "/upload/validate", requestID, start)
	if !ok {
		return
	}

	report, err := h.reportService.ValidateFile(ctx, content, filename)
	if err != nil {
		h.metrics.RecordHTTPRequest("POST", "/upload/validate", "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Validation failed",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("POST", "/upload/validate", "200", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"valid":           report.Valid,
		"columns":         report.Columns,
		"row_count":       report.RowCount,
		"file_type":       report.FileType,
		"missing_columns": report.MissingColumns,
		"request_id":      requestID,
	})
}

// DeleteSession drops a session and all its state
func (h *HTTPHandlers) DeleteSession(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	sessionID := c.Param("id")
	if err := h.reportService.DeleteSession(ctx, sessionID); err != nil {
		status := sessionErrorStatus(err)
		h.metrics.RecordHTTPRequest("DELETE", "/upload/session", strconv.Itoa(status), time.Since(start))
		c.JSON(status, gin.H{
			"error":      "Failed to delete session",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("DELETE", "/upload/session", "200", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"message":    "Session deleted",
		"session_id": sessionID,
		"request_id": requestID,
	})
}

// GetKPIs returns account-level roll-ups for a session
func (h *HTTPHandlers) GetKPIs(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	filter, err := h.parseRowFilter(c)
	if err != nil {
		h.metrics.RecordHTTPRequest("GET", "/analysis/kpis", "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid date format",
			"message":    "Dates must be in YYYY-MM-DD format",
			"request_id": requestID,
		})
		return
	}

	kpis, err := h.metricsService.GetKPIs(ctx, c.Param("id"), filter)
	if err != nil {
		status := sessionErrorStatus(err)
		h.metrics.RecordHTTPRequest("GET", "/analysis/kpis", strconv.Itoa(status), time.Since(start))
		c.JSON(status, gin.H{
			"error":      "Failed to retrieve KPIs",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("GET", "/analysis/kpis", "200", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"data":       kpis,
		"request_id": requestID,
	})
}

// GetCampaignMetrics returns per-campaign roll-ups for a session
func (h *HTTPHandlers) GetCampaignMetrics(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	filter, err := h.parseRowFilter(c)
	if err != nil {
		h.metrics.RecordHTTPRequest("GET", "/analysis/campaigns", "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid date format",
			"message":    "Dates must be in YYYY-MM-DD format",
			"request_id": requestID,
		})
		return
	}

	campaigns, err := h.metricsService.GetCampaignMetrics(ctx, c.Param("id"), filter)
	if err != nil {
		status := sessionErrorStatus(err)
		h.metrics.RecordHTTPRequest("GET", "/analysis/campaigns", strconv.Itoa(status), time.Since(start))
		c.JSON(status, gin.H{
			"error":      "Failed to retrieve campaign metrics",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("GET", "/analysis/campaigns", "200", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"data":       campaigns,
		"total":      len(campaigns),
		"request_id": requestID,
	})
}

// GetMonthlyData returns the month-by-month sales vs spend series
func (h *HTTPHandlers) GetMonthlyData(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	points, err := h.metricsService.GetMonthlyData(ctx, c.Param("id"), c.Query("campaign"))
	if err != nil {
		status := sessionErrorStatus(err)
		h.metrics.RecordHTTPRequest("GET", "/analysis/monthly", strconv.Itoa(status), time.Since(start))
		c.JSON(status, gin.H{
			"error":      "Failed to retrieve monthly data",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("GET", "/analysis/monthly", "200", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"data":       points,
		"request_id": requestID,
	})
}

// GetFilterOptions returns distinct filter values for a session
func (h *HTTPHandlers) GetFilterOptions(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	options, err := h.metricsService.GetFilterOptions(ctx, c.Param("id"))
	if err != nil {
		status := sessionErrorStatus(err)
		h.metrics.RecordHTTPRequest("GET", "/analysis/filters", strconv.Itoa(status), time.Since(start))
		c.JSON(status, gin.H{
			"error":      "Failed to retrieve filter options",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("GET", "/analysis/filters", "200", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"data":       options,
		"request_id": requestID,
	})
}

// analysis run request body; absent numeric fields fall back to the
// configured defaults.
type analyzeRequest struct {
	TargetACOS        *float64 `json:"target_acos"`
	MinSpend          *float64 `json:"min_spend"`
	MaxSales          *float64 `json:"max_sales"`
	UseNegativePhrase bool     `json:"use_negative_phrase"`
	ExcludeBranded    bool     `json:"exclude_branded"`
	BrandedTerms      []string `json:"branded_terms"`
	IncludePoorROAS   bool     `json:"include_poor_roas"`
}

// AnalyzeSearchTerms runs the flagging rules over a session
func (h *HTTPHandlers) AnalyzeSearchTerms(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.metrics.RecordHTTPRequest("POST", "/analysis/search-terms", "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid request body",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	cfg := domain.AnalysisConfig{
		TargetACOS:        h.cfg.Analysis.TargetACOS,
		MinSpend:          h.cfg.Analysis.MinSpend,
		MaxSales:          h.cfg.Analysis.MaxSales,
		UseNegativePhrase: req.UseNegativePhrase,
		ExcludeBranded:    req.ExcludeBranded,
		BrandedTerms:      req.BrandedTerms,
		IncludePoorROAS:   req.IncludePoorROAS,
	}
	if req.TargetACOS != nil {
		cfg.TargetACOS = *req.TargetACOS
	}
	if req.MinSpend != nil {
		cfg.MinSpend = *req.MinSpend
	}
	if req.MaxSales != nil {
		cfg.MaxSales = *req.MaxSales
	}

	result, err := h.analysisService.Run(ctx, c.Param("id"), cfg)
	if err != nil {
		status := sessionErrorStatus(err)
		h.metrics.RecordHTTPRequest("POST", "/analysis/search-terms", strconv.Itoa(status), time.Since(start))
		h.logger.WithContext(ctx).WithError(err).Error("Search term analysis failed")
		c.JSON(status, gin.H{
			"error":      "Analysis failed",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("POST", "/analysis/search-terms", "200", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"total_flagged":     result.TotalFlagged,
		"negative_keywords": result.NegativeKeywords,
		"negative_asins":    result.NegativeASINs,
		"results":           result.Results,
		"request_id":        requestID,
	})
}

// GetSearchTermData returns one sorted, paginated slice of raw rows
func (h *HTTPHandlers) GetSearchTermData(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	filter, err := h.parseRowFilter(c)
	if err != nil {
		h.metrics.RecordHTTPRequest("GET", "/analysis/search-terms/data", "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid date format",
			"message":    "Dates must be in YYYY-MM-DD format",
			"request_id": requestID,
		})
		return
	}

	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 50)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}

	result, err := h.metricsService.GetSearchTermsPage(ctx, c.Param("id"), page, pageSize, filter, c.Query("sort_by"), c.DefaultQuery("sort_order", "desc"))
	if err != nil {
		status := sessionErrorStatus(err)
		h.metrics.RecordHTTPRequest("GET", "/analysis/search-terms/data", strconv.Itoa(status), time.Since(start))
		c.JSON(status, gin.H{
			"error":      "Failed to retrieve search terms",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("GET", "/analysis/search-terms/data", "200", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"data":        result.Data,
		"total":       result.Total,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"total_pages": result.TotalPages,
		"request_id":  requestID,
	})
}

// export request body for negatives
type exportNegativesRequest struct {
	SessionID         string `json:"session_id" binding:"required"`
	SelectedIDs       []int  `json:"selected_ids"`
	UseNegativePhrase bool   `json:"use_negative_phrase"`
	Format            string `json:"format"` // "xlsx" (default) or "csv"
}

// ExportNegatives streams a negatives bulk workbook
func (h *HTTPHandlers) ExportNegatives(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	var req exportNegativesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordHTTPRequest("POST", "/export/negatives", "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid request body",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	var file *usecase.ExportFile
	var err error
	if req.Format == "csv" {
		file, err = h.exportService.ExportNegativesCSV(ctx, req.SessionID, req.SelectedIDs, req.UseNegativePhrase)
	} else {
		file, err = h.exportService.ExportNegatives(ctx, req.SessionID, req.SelectedIDs, req.UseNegativePhrase)
	}
	if err != nil {
		status := exportErrorStatus(err)
		h.metrics.RecordHTTPRequest("POST", "/export/negatives", strconv.Itoa(status), time.Since(start))
		h.logger.WithContext(ctx).WithError(err).Error("Negatives export failed")
		c.JSON(status, gin.H{
			"error":      "Export failed",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("POST", "/export/negatives", "200", time.Since(start))
	h.writeFile(c, file)
}

// PreviewNegatives summarizes what an export would contain
func (h *HTTPHandlers) PreviewNegatives(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	var req exportNegativesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordHTTPRequest("POST", "/export/negatives/preview", "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid request body",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	preview, err := h.exportService.PreviewNegatives(ctx, req.SessionID, req.SelectedIDs, req.UseNegativePhrase)
	if err != nil {
		status := exportErrorStatus(err)
		h.metrics.RecordHTTPRequest("POST", "/export/negatives/preview", strconv.Itoa(status), time.Since(start))
		c.JSON(status, gin.H{
			"error":      "Preview failed",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("POST", "/export/negatives/preview", "200", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"total_selected":    preview.TotalSelected,
		"negative_keywords": preview.NegativeKeywords,
		"negative_asins":    preview.NegativeASINs,
		"match_type":        preview.MatchType,
		"items":             preview.Items,
		"request_id":        requestID,
	})
}

// ExportAutoCampaign streams an auto campaign bulk workbook
func (h *HTTPHandlers) ExportAutoCampaign(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	var cfg domain.AutoCampaignConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		h.metrics.RecordHTTPRequest("POST", "/export/auto-campaign", "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid request body",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}
	if cfg.StartDate.IsZero() {
		cfg.StartDate = time.Now()
	}

	file, err := h.exportService.ExportAutoCampaign(ctx, cfg)
	if err != nil {
		status := exportErrorStatus(err)
		h.metrics.RecordHTTPRequest("POST", "/export/auto-campaign", strconv.Itoa(status), time.Since(start))
		h.logger.WithContext(ctx).WithError(err).Error("Auto campaign export failed")
		c.JSON(status, gin.H{
			"error":      "Export failed",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("POST", "/export/auto-campaign", "200", time.Since(start))
	h.writeFile(c, file)
}

// ExportManualCampaign streams a manual campaign bulksheet
func (h *HTTPHandlers) ExportManualCampaign(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	var cfg domain.ManualCampaignConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		h.metrics.RecordHTTPRequest("POST", "/export/manual-campaign", "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid request body",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}
	if cfg.StartDate.IsZero() {
		cfg.StartDate = time.Now()
	}

	file, err := h.exportService.ExportManualCampaign(ctx, cfg)
	if err != nil {
		status := exportErrorStatus(err)
		h.metrics.RecordHTTPRequest("POST", "/export/manual-campaign", strconv.Itoa(status), time.Since(start))
		h.logger.WithContext(ctx).WithError(err).Error("Manual campaign export failed")
		c.JSON(status, gin.H{
			"error":      "Export failed",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("POST", "/export/manual-campaign", "200", time.Since(start))
	h.writeFile(c, file)
}

// GetAPIInfo returns API v1 information and available endpoints
func (h *HTTPHandlers) GetAPIInfo(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()

	apiInfo := gin.H{
		"api_version": "v1",
		"service":     "AdScope",
		"version":     "1.0.0",
		"description": "Search term report analysis and bulk file generation for Sponsored Products",
		"endpoints": gin.H{
			"upload": gin.H{
				"description": "Upload and validate report files",
				"methods":     []string{"POST", "DELETE"},
				"endpoints": gin.H{
					"search_term_report": gin.H{
						"path":        "/api/v1/upload/search-term-report",
						"description": "Upload a search term performance report (CSV or XLSX)",
					},
					"bulk_file": gin.H{
						"path":        "/api/v1/upload/bulk-file",
						"description": "Upload an optional bulk operations file",
					},
					"validate": gin.H{
						"path":        "/api/v1/upload/validate",
						"description": "Check a file's structure without storing it",
					},
					"session": gin.H{
						"path":        "/api/v1/upload/session/:id",
						"description": "Delete a session and all its state",
					},
				},
			},
			"analysis": gin.H{
				"description": "Aggregate metrics and search term flagging",
				"methods":     []string{"GET", "POST"},
				"endpoints": gin.H{
					"kpis": gin.H{
						"path":        "/api/v1/analysis/kpis/:id",
						"description": "Account-level KPI roll-up",
						"parameters": gin.H{
							"campaign":   "Optional campaign filter",
							"ad_group":   "Optional ad group filter",
							"start_date": "Optional start date (YYYY-MM-DD)",
							"end_date":   "Optional end date (YYYY-MM-DD)",
						},
					},
					"campaigns": gin.H{
						"path":        "/api/v1/analysis/campaigns/:id",
						"description": "Per-campaign roll-ups",
					},
					"monthly": gin.H{
						"path":        "/api/v1/analysis/monthly/:id",
						"description": "Month-by-month sales vs spend series",
					},
					"filters": gin.H{
						"path":        "/api/v1/analysis/filters/:id",
						"description": "Distinct filter values in the dataset",
					},
					"search_terms": gin.H{
						"path":        "/api/v1/analysis/search-terms/:id",
						"description": "Run the flagging rules over the session dataset",
						"parameters": gin.H{
							"target_acos":         "ACOS threshold, percent (default 30)",
							"min_spend":           "Spend floor for the no-sales rule (default 10)",
							"max_sales":           "Sales cap for the no-sales rule (default 0)",
							"use_negative_phrase": "Suggest Negative Phrase instead of Negative Exact",
							"exclude_branded":     "Skip terms containing any branded term",
						},
					},
					"search_term_data": gin.H{
						"path":        "/api/v1/analysis/search-terms/:id/data",
						"description": "Sorted, paginated raw report rows",
					},
				},
			},
			"export": gin.H{
				"description": "Generate bulk-upload files",
				"methods":     []string{"POST"},
				"endpoints": gin.H{
					"negatives": gin.H{
						"path":        "/api/v1/export/negatives",
						"description": "Negative keyword/product workbook from flagged terms",
					},
					"negatives_preview": gin.H{
						"path":        "/api/v1/export/negatives/preview",
						"description": "Preview the export split without generating the file",
					},
					"auto_campaign": gin.H{
						"path":        "/api/v1/export/auto-campaign",
						"description": "Auto-targeting campaign bulk workbook",
					},
					"manual_campaign": gin.H{
						"path":        "/api/v1/export/manual-campaign",
						"description": "Manual campaign bulksheet",
					},
				},
			},
		},
		"request_id": requestID,
	}

	h.metrics.RecordHTTPRequest("GET", "/api/v1", "200", time.Since(start))
	c.JSON(http.StatusOK, apiInfo)
}

// HealthCheck returns the health status of the service
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()

	health := gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"service":    "adscope",
		"version":    "1.0.0",
		"request_id": requestID,
	}

	h.metrics.RecordHTTPRequest("GET", "/health", "200", time.Since(start))
	c.JSON(http.StatusOK, health)
}

// readUploadedFile pulls the multipart "file" field into memory and
// answers the request itself on failure.
func (h *HTTPHandlers) readUploadedFile(c *gin.Context, endpoint, requestID string, start time.Time) ([]byte, string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.metrics.RecordHTTPRequest("POST", endpoint, "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Missing file",
			"message":    "multipart field 'file' is required",
			"request_id": requestID,
		})
		return nil, "", false
	}
	if fileHeader.Size > h.cfg.Upload.MaxUploadBytes {
		h.metrics.RecordHTTPRequest("POST", endpoint, "413", time.Since(start))
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error":      "File too large",
			"message":    fmt.Sprintf("file exceeds the %d byte upload limit", h.cfg.Upload.MaxUploadBytes),
			"request_id": requestID,
		})
		return nil, "", false
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.metrics.RecordHTTPRequest("POST", endpoint, "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Unreadable file",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return nil, "", false
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		h.metrics.RecordHTTPRequest("POST", endpoint, "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Unreadable file",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return nil, "", false
	}

	return content, fileHeader.Filename, true
}

// writeFile streams a generated workbook as an attachment.
func (h *HTTPHandlers) writeFile(c *gin.Context, file *usecase.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// parseRowFilter parses common dataset filter query parameters
func (h *HTTPHandlers) parseRowFilter(c *gin.Context) (usecase.RowFilter, error) {
	filter := usecase.RowFilter{
		Campaign: c.Query("campaign"),
		AdGroup:  c.Query("ad_group"),
	}

	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return usecase.RowFilter{}, err
		}
		filter.StartDate = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return usecase.RowFilter{}, err
		}
		filter.EndDate = &t
	}

	return filter, nil
}

func queryInt(c *gin.Context, key string, defaultValue int) int {
	s := c.Query(key)
	if s == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return v
}

// maps upload pipeline failures to status codes
func uploadErrorStatus(err error) int {
	var schemaErr *usecase.SchemaError
	if errors.As(err, &schemaErr) {
		return http.StatusBadRequest
	}
	if errors.Is(err, domain.ErrSessionNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// maps session lookups to status codes
func sessionErrorStatus(err error) int {
	if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrNoResults) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// maps export failures to status codes
func exportErrorStatus(err error) int {
	var cfgErr *usecase.ConfigValidationError
	if errors.As(err, &cfgErr) {
		return http.StatusBadRequest
	}
	if errors.Is(err, usecase.ErrNoneSelected) {
		return http.StatusBadRequest
	}
	if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrNoResults) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
