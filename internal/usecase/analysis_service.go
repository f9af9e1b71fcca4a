package usecase

import (
	"context"
	"strings"

	"adscope/internal/domain"
	"adscope/pkg/logger"
	"adscope/pkg/metrics"
)

// AnalysisService runs the flagging rules over a session's dataset
type AnalysisService struct {
	sessions domain.SessionRepository
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	sessions domain.SessionRepository,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *AnalysisService {
	return &AnalysisService{
		sessions: sessions,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run evaluates the rules against the session dataset and caches the
// flagged set for export.
func (s *AnalysisService) Run(ctx context.Context, sessionID string, cfg domain.AnalysisConfig) (*domain.AnalysisResult, error) {
	log := s.logger.WithContext(ctx)

	ds, err := s.sessions.GetDataset(ctx, sessionID)
	if err != nil {
		s.metrics.RecordAnalysisRun("failed")
		return nil, err
	}

	flagged := AnalyzeSearchTerms(ds.Rows, cfg)

	if err := s.sessions.StoreResults(ctx, sessionID, flagged); err != nil {
		s.metrics.RecordAnalysisRun("failed")
		return nil, err
	}

	var keywords, asins int
	byRule := make(map[domain.RuleLabel]int)
	for _, f := range flagged {
		if f.IsASIN {
			asins++
		} else {
			keywords++
		}
		byRule[f.RuleTriggered]++
	}
	for rule, count := range byRule {
		s.metrics.RecordFlaggedTerms(string(rule), count)
	}
	s.metrics.RecordAnalysisRun("success")

	log.WithFields(map[string]any{
		"session_id":        sessionID,
		"rows":              len(ds.Rows),
		"flagged":           len(flagged),
		"target_acos":       cfg.TargetACOS,
		"min_spend":         cfg.MinSpend,
		"max_sales":         cfg.MaxSales,
		"include_poor_roas": cfg.IncludePoorROAS,
	}).Info("Search term analysis completed")

	return &domain.AnalysisResult{
		TotalFlagged:     len(flagged),
		NegativeKeywords: keywords,
		NegativeASINs:    asins,
		Results:          flagged,
	}, nil
}

// AnalyzeSearchTerms evaluates every row against the flagging rules, in
// original order. Rows matching no rule are dropped, and a row never
// carries more than one rule. The returned IDs are source row positions.
func AnalyzeSearchTerms(rows []domain.SearchTermRow, cfg domain.AnalysisConfig) []domain.FlaggedTerm {
	flagged := []domain.FlaggedTerm{}

	for idx, row := range rows {
		searchTerm := row.CustomerSearchTerm
		if strings.TrimSpace(searchTerm) == "" {
			continue
		}

		if cfg.ExcludeBranded && isBrandedTerm(searchTerm, cfg.BrandedTerms) {
			continue
		}

		var rule domain.RuleLabel
		switch {
		case ruleHighACOS(row, cfg):
			rule = domain.RuleHighACOS
		case ruleSpendWithoutSales(row, cfg):
			rule = domain.RuleSpendNoSales
		default:
			continue
		}

		// The search term predicate decides the negative family; the
		// targeting predicate above only decided rule applicability.
		termIsASIN := domain.IsASIN(searchTerm)

		var negType domain.NegativeMatchType
		switch {
		case termIsASIN:
			negType = domain.NegativeProductTargeting
		case cfg.UseNegativePhrase:
			negType = domain.NegativePhrase
		default:
			negType = domain.NegativeExact
		}

		var date *string
		if row.Date != nil {
			d := row.Date.Format("2006-01-02")
			date = &d
		}
		var portfolio *string
		if row.Portfolio != "" {
			p := row.Portfolio
			portfolio = &p
		}

		flagged = append(flagged, domain.FlaggedTerm{
			ID:                 idx,
			Date:               date,
			CampaignName:       row.CampaignName,
			AdGroupName:        row.AdGroupName,
			Portfolio:          portfolio,
			Targeting:          row.Targeting,
			MatchType:          row.MatchType,
			CustomerSearchTerm: searchTerm,
			Impressions:        row.Impressions,
			Clicks:             row.Clicks,
			Spend:              row.Spend,
			Sales:              row.Sales,
			ACOS:               row.ACOS,
			Orders:             row.Orders,
			RuleTriggered:      rule,
			IsASIN:             termIsASIN,
			NegativeMatchType:  negType,
			Selected:           true,
		})
	}

	return flagged
}

// High ACOS: reported ACOS present and non-zero, non-exact match type,
// targeting expression not an ASIN, ACOS at or above the target.
func ruleHighACOS(row domain.SearchTermRow, cfg domain.AnalysisConfig) bool {
	if row.ACOS == nil || *row.ACOS == 0 {
		return false
	}
	if strings.Contains(strings.ToLower(row.MatchType), "exact") {
		return false
	}
	if domain.IsASIN(row.Targeting) {
		return false
	}
	return *row.ACOS >= cfg.TargetACOS
}

// Spend Without Sales: non-exact match type, targeting expression not an
// ASIN, spend at or above the floor and sales at or below the cap. ACOS
// presence plays no part here.
func ruleSpendWithoutSales(row domain.SearchTermRow, cfg domain.AnalysisConfig) bool {
	if strings.Contains(strings.ToLower(row.MatchType), "exact") {
		return false
	}
	if domain.IsASIN(row.Targeting) {
		return false
	}
	return row.Spend >= cfg.MinSpend && row.Sales <= cfg.MaxSales
}

func isBrandedTerm(searchTerm string, brands []string) bool {
	if len(brands) == 0 {
		return false
	}
	term := strings.ToLower(searchTerm)
	for _, brand := range brands {
		if brand != "" && strings.Contains(term, strings.ToLower(brand)) {
			return true
		}
	}
	return false
}
