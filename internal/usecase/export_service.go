package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"adscope/internal/bulk"
	"adscope/internal/domain"
	"adscope/pkg/logger"
	"adscope/pkg/metrics"
)

// ErrNoneSelected signals an export request whose selection matched no
// flagged term.
var ErrNoneSelected = errors.New("no search terms selected for export")

// ConfigValidationError carries every campaign config violation so the
// caller can surface them all at once.
type ConfigValidationError struct {
	Errors []string
}

func (e *ConfigValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}

// ExportFile is a generated bulk file ready to stream to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportService turns analysis results and campaign configs into
// bulk-upload files.
type ExportService struct {
	sessions domain.SessionRepository
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

// NewExportService creates a new export service
func NewExportService(
	sessions domain.SessionRepository,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *ExportService {
	return &ExportService{
		sessions: sessions,
		logger:   logger,
		metrics:  metrics,
	}
}

// NegativesPreview summarizes what an export would contain without
// generating the workbook.
type NegativesPreview struct {
	TotalSelected    int                  `json:"total_selected"`
	NegativeKeywords int                  `json:"negative_keywords"`
	NegativeASINs    int                  `json:"negative_asins"`
	MatchType        string               `json:"match_type"`
	Items            []domain.FlaggedTerm `json:"items"`
}

// ExportNegatives builds a negative keyword/product workbook from the
// session's flagged terms. A nil selection exports everything; an
// explicit selection keeps only the listed row IDs.
func (s *ExportService) ExportNegatives(ctx context.Context, sessionID string, selectedIDs []int, useNegativePhrase bool) (*ExportFile, error) {
	log := s.logger.WithContext(ctx)
	start := time.Now()

	selected, err := s.selectResults(ctx, sessionID, selectedIDs)
	if err != nil {
		s.metrics.RecordExport("negatives", "failed", time.Since(start))
		return nil, err
	}

	data, err := bulk.GenerateNegatives(selected, useNegativePhrase)
	if err != nil {
		s.metrics.RecordExport("negatives", "failed", time.Since(start))
		return nil, fmt.Errorf("failed to generate negatives workbook: %w", err)
	}
	s.metrics.RecordExport("negatives", "success", time.Since(start))

	log.WithFields(map[string]any{
		"session_id":          sessionID,
		"selected":            len(selected),
		"use_negative_phrase": useNegativePhrase,
	}).Info("Negatives export generated")

	return &ExportFile{
		Filename:    fmt.Sprintf("negative_keywords_%s.xlsx", time.Now().Format("20060102")),
		ContentType: xlsxContentType,
		Data:        data,
	}, nil
}

// ExportNegativesCSV is the single-file CSV variant of ExportNegatives,
// mixing keyword and product rows in flagged order.
func (s *ExportService) ExportNegativesCSV(ctx context.Context, sessionID string, selectedIDs []int, useNegativePhrase bool) (*ExportFile, error) {
	start := time.Now()

	selected, err := s.selectResults(ctx, sessionID, selectedIDs)
	if err != nil {
		s.metrics.RecordExport("negatives_csv", "failed", time.Since(start))
		return nil, err
	}

	data, err := bulk.GenerateNegativesCSV(selected, useNegativePhrase)
	if err != nil {
		s.metrics.RecordExport("negatives_csv", "failed", time.Since(start))
		return nil, fmt.Errorf("failed to generate negatives csv: %w", err)
	}
	s.metrics.RecordExport("negatives_csv", "success", time.Since(start))

	return &ExportFile{
		Filename:    fmt.Sprintf("negative_keywords_%s.csv", time.Now().Format("20060102")),
		ContentType: "text/csv",
		Data:        data,
	}, nil
}

// PreviewNegatives reports the keyword/ASIN split an export would
// produce for the given selection.
func (s *ExportService) PreviewNegatives(ctx context.Context, sessionID string, selectedIDs []int, useNegativePhrase bool) (*NegativesPreview, error) {
	selected, err := s.selectResults(ctx, sessionID, selectedIDs)
	if err != nil {
		return nil, err
	}

	matchType := domain.NegativeExact
	if useNegativePhrase {
		matchType = domain.NegativePhrase
	}

	var keywords, asins int
	for _, item := range selected {
		if item.IsASIN {
			asins++
		} else {
			keywords++
		}
	}

	return &NegativesPreview{
		TotalSelected:    len(selected),
		NegativeKeywords: keywords,
		NegativeASINs:    asins,
		MatchType:        string(matchType),
		Items:            selected,
	}, nil
}

// ExportAutoCampaign validates the config and renders an auto campaign
// bulk workbook.
func (s *ExportService) ExportAutoCampaign(ctx context.Context, cfg domain.AutoCampaignConfig) (*ExportFile, error) {
	log := s.logger.WithContext(ctx)
	start := time.Now()

	if errs := validateAutoCampaign(cfg); len(errs) > 0 {
		s.metrics.RecordExport("auto_campaign", "invalid", time.Since(start))
		return nil, &ConfigValidationError{Errors: errs}
	}

	data, err := bulk.GenerateAutoCampaign(cfg)
	if err != nil {
		s.metrics.RecordExport("auto_campaign", "failed", time.Since(start))
		return nil, fmt.Errorf("failed to generate auto campaign workbook: %w", err)
	}
	s.metrics.RecordExport("auto_campaign", "success", time.Since(start))

	log.WithFields(map[string]any{
		"campaign_name": cfg.CampaignName,
		"ad_groups":     len(cfg.AdGroups),
	}).Info("Auto campaign export generated")

	return &ExportFile{
		Filename:    fmt.Sprintf("auto_campaign_%s.xlsx", safeFilename(cfg.CampaignName)),
		ContentType: xlsxContentType,
		Data:        data,
	}, nil
}

// ExportManualCampaign validates the config and renders a manual
// campaign bulksheet.
func (s *ExportService) ExportManualCampaign(ctx context.Context, cfg domain.ManualCampaignConfig) (*ExportFile, error) {
	log := s.logger.WithContext(ctx)
	start := time.Now()

	if errs := validateManualCampaign(cfg); len(errs) > 0 {
		s.metrics.RecordExport("manual_campaign", "invalid", time.Since(start))
		return nil, &ConfigValidationError{Errors: errs}
	}

	data, err := bulk.GenerateManualCampaign(cfg)
	if err != nil {
		s.metrics.RecordExport("manual_campaign", "failed", time.Since(start))
		return nil, fmt.Errorf("failed to generate manual campaign workbook: %w", err)
	}
	s.metrics.RecordExport("manual_campaign", "success", time.Since(start))

	log.WithFields(map[string]any{
		"campaign_name": cfg.CampaignName,
		"ad_groups":     len(cfg.AdGroups),
	}).Info("Manual campaign export generated")

	return &ExportFile{
		Filename:    fmt.Sprintf("manual_campaign_%s.xlsx", safeFilename(cfg.CampaignName)),
		ContentType: xlsxContentType,
		Data:        data,
	}, nil
}

// selectResults loads the session's flagged terms and applies the ID
// selection. A nil selection means all; an empty match is an error.
func (s *ExportService) selectResults(ctx context.Context, sessionID string, selectedIDs []int) ([]domain.FlaggedTerm, error) {
	results, err := s.sessions.GetResults(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if selectedIDs == nil {
		if len(results) == 0 {
			return nil, ErrNoneSelected
		}
		return results, nil
	}

	wanted := make(map[int]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		wanted[id] = true
	}

	var selected []domain.FlaggedTerm
	for _, item := range results {
		if wanted[item.ID] {
			selected = append(selected, item)
		}
	}
	if len(selected) == 0 {
		return nil, ErrNoneSelected
	}
	return selected, nil
}

func validateAutoCampaign(cfg domain.AutoCampaignConfig) []string {
	var errs []string
	if strings.TrimSpace(cfg.CampaignName) == "" {
		errs = append(errs, "Campaign name is required")
	}
	if len(cfg.AdGroups) == 0 {
		errs = append(errs, "At least one ad group is required")
	}
	for i, ag := range cfg.AdGroups {
		for _, e := range bulk.ValidateAdGroup(ag) {
			errs = append(errs, fmt.Sprintf("Ad Group %d: %s", i+1, e))
		}
	}
	return errs
}

func validateManualCampaign(cfg domain.ManualCampaignConfig) []string {
	var errs []string
	if strings.TrimSpace(cfg.CampaignName) == "" {
		errs = append(errs, "Campaign name is required")
	}
	if len(cfg.AdGroups) == 0 {
		errs = append(errs, "At least one ad group is required")
	}
	for i, ag := range cfg.AdGroups {
		for _, e := range bulk.ValidateManualAdGroup(ag) {
			errs = append(errs, fmt.Sprintf("Ad Group %d: %s", i+1, e))
		}
	}
	return errs
}

// safeFilename makes a campaign name usable inside a download filename.
func safeFilename(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "_")
	if len(name) > 50 {
		name = name[:50]
	}
	return name
}
