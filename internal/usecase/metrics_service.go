package usecase

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"adscope/internal/domain"
	"adscope/pkg/logger"
	"adscope/pkg/metrics"
)

// MetricsService serves aggregate queries over a session's dataset
type MetricsService struct {
	sessions domain.SessionRepository
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

// NewMetricsService creates a new metrics service
func NewMetricsService(
	sessions domain.SessionRepository,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *MetricsService {
	return &MetricsService{
		sessions: sessions,
		logger:   logger,
		metrics:  metrics,
	}
}

// caller-supplied narrowing applied before aggregation.
type RowFilter struct {
	Campaign  string
	AdGroup   string
	StartDate *time.Time
	EndDate   *time.Time
}

// GetKPIs returns the account-level roll-up for the filtered dataset.
func (s *MetricsService) GetKPIs(ctx context.Context, sessionID string, filter RowFilter) (*domain.KPIReport, error) {
	ds, err := s.sessions.GetDataset(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kpis := CalculateKPIs(FilterRows(ds.Rows, filter))
	return &kpis, nil
}

// GetCampaignMetrics returns per-campaign roll-ups for the filtered dataset.
func (s *MetricsService) GetCampaignMetrics(ctx context.Context, sessionID string, filter RowFilter) ([]domain.CampaignMetrics, error) {
	ds, err := s.sessions.GetDataset(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return CalculateCampaignMetrics(FilterRows(ds.Rows, filter)), nil
}

// GetMonthlyData returns the month-by-month sales vs spend series.
func (s *MetricsService) GetMonthlyData(ctx context.Context, sessionID, campaign string) ([]domain.MonthlyPoint, error) {
	ds, err := s.sessions.GetDataset(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return CalculateMonthlyData(FilterRows(ds.Rows, RowFilter{Campaign: campaign})), nil
}

// GetFilterOptions returns distinct filter values from the dataset.
func (s *MetricsService) GetFilterOptions(ctx context.Context, sessionID string) (*domain.FilterOptions, error) {
	ds, err := s.sessions.GetDataset(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &domain.FilterOptions{
		Campaigns:  UniqueCampaigns(ds.Rows),
		AdGroups:   UniqueAdGroups(ds.Rows),
		Portfolios: UniquePortfolios(ds.Rows),
		DateRange:  DatasetDateRange(ds.Rows),
	}, nil
}

// GetSearchTermsPage returns one sorted, paginated slice of raw rows.
func (s *MetricsService) GetSearchTermsPage(ctx context.Context, sessionID string, page, pageSize int, filter RowFilter, sortBy, sortOrder string) (*domain.SearchTermPage, error) {
	ds, err := s.sessions.GetDataset(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	rows := FilterRows(ds.Rows, filter)
	sortRows(rows, sortBy, sortOrder == "asc")

	total := len(rows)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &domain.SearchTermPage{
		Data:       rows[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

// FilterRows narrows rows by campaign, ad group and date range. Rows
// without a date pass date filters untouched only when no bound is set;
// otherwise they are excluded, matching a date-keyed comparison. The
// result is always a fresh slice: callers sort it, and the input may be
// the session store's own backing array.
func FilterRows(rows []domain.SearchTermRow, filter RowFilter) []domain.SearchTermRow {
	if filter.Campaign == "" && filter.AdGroup == "" && filter.StartDate == nil && filter.EndDate == nil {
		out := make([]domain.SearchTermRow, len(rows))
		copy(out, rows)
		return out
	}

	filtered := make([]domain.SearchTermRow, 0, len(rows))
	for _, row := range rows {
		if filter.Campaign != "" && row.CampaignName != filter.Campaign {
			continue
		}
		if filter.AdGroup != "" && row.AdGroupName != filter.AdGroup {
			continue
		}
		if filter.StartDate != nil && (row.Date == nil || row.Date.Before(*filter.StartDate)) {
			continue
		}
		if filter.EndDate != nil && (row.Date == nil || row.Date.After(*filter.EndDate)) {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// CalculateKPIs sums the base metrics and derives the ratio KPIs with
// safe division: a zero denominator yields zero, never an error.
func CalculateKPIs(rows []domain.SearchTermRow) domain.KPIReport {
	var kpi domain.KPIReport

	for _, row := range rows {
		kpi.TotalSales += row.Sales
		kpi.AdSpend += row.Spend
		kpi.Orders += row.Orders
		kpi.Impressions += row.Impressions
		kpi.Clicks += row.Clicks
	}

	if kpi.AdSpend > 0 {
		kpi.ROAS = kpi.TotalSales / kpi.AdSpend
	}
	if kpi.TotalSales > 0 {
		kpi.ACOS = kpi.AdSpend / kpi.TotalSales * 100
	}
	if kpi.Impressions > 0 {
		kpi.CTR = float64(kpi.Clicks) / float64(kpi.Impressions) * 100
	}
	if kpi.Clicks > 0 {
		kpi.ConversionRate = float64(kpi.Orders) / float64(kpi.Clicks) * 100
		kpi.AvgCPC = kpi.AdSpend / float64(kpi.Clicks)
	}

	kpi.TotalSales = round2(kpi.TotalSales)
	kpi.AdSpend = round2(kpi.AdSpend)
	kpi.ROAS = round2(kpi.ROAS)
	kpi.ACOS = round2(kpi.ACOS)
	kpi.CTR = round2(kpi.CTR)
	kpi.ConversionRate = round2(kpi.ConversionRate)
	kpi.AvgCPC = round2(kpi.AvgCPC)

	return kpi
}

// CalculateCampaignMetrics groups rows by campaign name, sums the base
// metrics and attaches the first-seen portfolio per campaign. Output is
// sorted by campaign name.
func CalculateCampaignMetrics(rows []domain.SearchTermRow) []domain.CampaignMetrics {
	grouped := make(map[string]*domain.CampaignMetrics)
	names := []string{}

	for _, row := range rows {
		m, ok := grouped[row.CampaignName]
		if !ok {
			m = &domain.CampaignMetrics{CampaignName: row.CampaignName}
			grouped[row.CampaignName] = m
			names = append(names, row.CampaignName)
		}
		m.Impressions += row.Impressions
		m.Clicks += row.Clicks
		m.Spend += row.Spend
		m.Sales += row.Sales
		m.Orders += row.Orders
		if m.Portfolio == nil && row.Portfolio != "" {
			p := row.Portfolio
			m.Portfolio = &p
		}
	}

	sort.Strings(names)

	results := make([]domain.CampaignMetrics, 0, len(names))
	for _, name := range names {
		m := grouped[name]
		if m.Sales > 0 {
			m.ACOS = round2(m.Spend / m.Sales * 100)
		}
		if m.Spend > 0 {
			m.ROAS = round2(m.Sales / m.Spend)
		}
		m.Spend = round2(m.Spend)
		m.Sales = round2(m.Sales)
		results = append(results, *m)
	}
	return results
}

// CalculateMonthlyData buckets sales and spend by calendar month,
// ascending. Rows without a date are left out entirely.
func CalculateMonthlyData(rows []domain.SearchTermRow) []domain.MonthlyPoint {
	grouped := make(map[string]*domain.MonthlyPoint)

	for _, row := range rows {
		if row.Date == nil {
			continue
		}
		month := row.Date.Format("2006-01")
		p, ok := grouped[month]
		if !ok {
			p = &domain.MonthlyPoint{Month: month}
			grouped[month] = p
		}
		p.Sales += row.Sales
		p.Spend += row.Spend
	}

	months := make([]string, 0, len(grouped))
	for month := range grouped {
		months = append(months, month)
	}
	sort.Strings(months)

	results := make([]domain.MonthlyPoint, 0, len(months))
	for _, month := range months {
		p := grouped[month]
		p.Sales = round2(p.Sales)
		p.Spend = round2(p.Spend)
		results = append(results, *p)
	}
	return results
}

// DatasetDateRange returns the inclusive date bounds across dated rows.
func DatasetDateRange(rows []domain.SearchTermRow) domain.DateRange {
	var min, max *time.Time
	for i := range rows {
		d := rows[i].Date
		if d == nil {
			continue
		}
		if min == nil || d.Before(*min) {
			min = d
		}
		if max == nil || d.After(*max) {
			max = d
		}
	}

	var dr domain.DateRange
	if min != nil {
		start := min.Format("2006-01-02")
		dr.Start = &start
	}
	if max != nil {
		end := max.Format("2006-01-02")
		dr.End = &end
	}
	return dr
}

// UniqueCampaigns returns distinct campaign names in first-seen order.
func UniqueCampaigns(rows []domain.SearchTermRow) []string {
	return uniqueValues(rows, func(r domain.SearchTermRow) string { return r.CampaignName })
}

// UniqueAdGroups returns distinct ad group names in first-seen order.
func UniqueAdGroups(rows []domain.SearchTermRow) []string {
	return uniqueValues(rows, func(r domain.SearchTermRow) string { return r.AdGroupName })
}

// UniquePortfolios returns distinct non-blank portfolios in first-seen order.
func UniquePortfolios(rows []domain.SearchTermRow) []string {
	return uniqueValues(rows, func(r domain.SearchTermRow) string { return r.Portfolio })
}

func uniqueValues(rows []domain.SearchTermRow, key func(domain.SearchTermRow) string) []string {
	seen := make(map[string]bool)
	values := []string{}
	for _, row := range rows {
		v := key(row)
		if strings.TrimSpace(v) == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

// sortRows orders rows by a canonical column name; unknown columns leave
// the slice untouched.
func sortRows(rows []domain.SearchTermRow, sortBy string, ascending bool) {
	less := rowComparator(sortBy)
	if less == nil {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if ascending {
			return less(rows[i], rows[j])
		}
		return less(rows[j], rows[i])
	})
}

func rowComparator(sortBy string) func(a, b domain.SearchTermRow) bool {
	switch sortBy {
	case domain.ColCampaignName:
		return func(a, b domain.SearchTermRow) bool { return a.CampaignName < b.CampaignName }
	case domain.ColAdGroupName:
		return func(a, b domain.SearchTermRow) bool { return a.AdGroupName < b.AdGroupName }
	case domain.ColCustomerSearchTerm:
		return func(a, b domain.SearchTermRow) bool { return a.CustomerSearchTerm < b.CustomerSearchTerm }
	case domain.ColImpressions:
		return func(a, b domain.SearchTermRow) bool { return a.Impressions < b.Impressions }
	case domain.ColClicks:
		return func(a, b domain.SearchTermRow) bool { return a.Clicks < b.Clicks }
	case domain.ColSpend:
		return func(a, b domain.SearchTermRow) bool { return a.Spend < b.Spend }
	case domain.ColSales:
		return func(a, b domain.SearchTermRow) bool { return a.Sales < b.Sales }
	case domain.ColOrders:
		return func(a, b domain.SearchTermRow) bool { return a.Orders < b.Orders }
	case domain.ColACOS:
		return func(a, b domain.SearchTermRow) bool { return derefOrZero(a.ACOS) < derefOrZero(b.ACOS) }
	default:
		return nil
	}
}

func derefOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// presentation rounding for derived ratios.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
