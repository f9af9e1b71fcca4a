package ingest

import (
	"strconv"
	"strings"
	"time"

	"adscope/internal/domain"
)

// Source reports spell the same column many ways; keys are lower-cased,
// trimmed headers, values the canonical name. Unmatched headers pass
// through unchanged.
var columnSynonyms = map[string]string{
	"7 day total sales":                          domain.ColSales,
	"7 day total sales ($)":                      domain.ColSales,
	"total sales":                                domain.ColSales,
	"sales":                                      domain.ColSales,
	"total advertising cost of sales (acos)":     domain.ColACOS,
	"acos":                                       domain.ColACOS,
	"advertising cost of sales":                  domain.ColACOS,
	"total return on advertising spend (roas)":   domain.ColROAS,
	"roas":                                       domain.ColROAS,
	"return on advertising spend":                domain.ColROAS,
	"7 day total orders (#)":                     domain.ColOrders,
	"7 day total orders":                         domain.ColOrders,
	"orders":                                     domain.ColOrders,
	"7 day total units (#)":                      domain.ColUnits,
	"7 day total units":                          domain.ColUnits,
	"units":                                      domain.ColUnits,
	"7 day conversion rate":                      domain.ColConversionRate,
	"conversion rate":                            domain.ColConversionRate,
	"cost per click (cpc)":                       domain.ColCPC,
	"cpc":                                        domain.ColCPC,
	"average cpc":                                domain.ColCPC,
	"click-thru rate (ctr)":                      domain.ColCTR,
	"click-through rate":                         domain.ColCTR,
	"ctr":                                        domain.ColCTR,
	"portfolio name":                             domain.ColPortfolio,
	"portfolio":                                  domain.ColPortfolio,
}

// Columns a search term report must carry after normalization.
var requiredColumns = []string{
	domain.ColCampaignName,
	domain.ColAdGroupName,
	domain.ColTargeting,
	domain.ColMatchType,
	domain.ColCustomerSearchTerm,
	domain.ColImpressions,
	domain.ColClicks,
	domain.ColSpend,
}

// Date layouts tried in order when parsing report dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
	time.RFC3339,
}

// NormalizeHeaders maps raw header spellings onto the canonical schema.
func NormalizeHeaders(headers []string) []string {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := columnSynonyms[key]; ok {
			normalized[i] = canonical
		} else {
			normalized[i] = h
		}
	}
	return normalized
}

// MissingColumns returns the required canonical names absent from the
// normalized header set, in schema order. Matching is case and whitespace
// insensitive so raw pass-through headers still count.
func MissingColumns(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[strings.ToLower(strings.TrimSpace(h))] = true
	}

	var missing []string
	for _, required := range requiredColumns {
		if !present[strings.ToLower(required)] {
			missing = append(missing, required)
		}
	}
	return missing
}

// BuildDataset turns a raw table (normalized header row first) into typed
// rows. Cell-level problems never fail the build; they degrade to zero or
// absent per field type.
func BuildDataset(headers []string, records [][]string) *domain.Dataset {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}

	cell := func(record []string, col string) (string, bool) {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return "", false
		}
		return record[i], true
	}

	rows := make([]domain.SearchTermRow, 0, len(records))
	for _, record := range records {
		row := domain.SearchTermRow{}

		if v, ok := cell(record, domain.ColDate); ok {
			row.Date = CleanDate(v)
		}
		row.CampaignName, _ = cell(record, domain.ColCampaignName)
		row.AdGroupName, _ = cell(record, domain.ColAdGroupName)
		row.Portfolio, _ = cell(record, domain.ColPortfolio)
		row.Targeting, _ = cell(record, domain.ColTargeting)
		row.MatchType, _ = cell(record, domain.ColMatchType)
		row.CustomerSearchTerm, _ = cell(record, domain.ColCustomerSearchTerm)

		if v, ok := cell(record, domain.ColImpressions); ok {
			row.Impressions = CleanInteger(v)
		}
		if v, ok := cell(record, domain.ColClicks); ok {
			row.Clicks = CleanInteger(v)
		}
		if v, ok := cell(record, domain.ColSpend); ok {
			row.Spend = CleanCurrency(v)
		}
		if v, ok := cell(record, domain.ColSales); ok {
			row.Sales = CleanCurrency(v)
		}
		if v, ok := cell(record, domain.ColOrders); ok {
			row.Orders = CleanInteger(v)
		}
		if v, ok := cell(record, domain.ColUnits); ok {
			row.Units = CleanInteger(v)
		}
		if v, ok := cell(record, domain.ColCPC); ok {
			row.CPC = CleanCurrency(v)
		}
		if v, ok := cell(record, domain.ColACOS); ok {
			row.ACOS = CleanPercentage(v)
		}
		if v, ok := cell(record, domain.ColROAS); ok {
			row.ROAS = CleanPercentage(v)
		}
		if v, ok := cell(record, domain.ColCTR); ok {
			row.CTR = CleanPercentage(v)
		}
		if v, ok := cell(record, domain.ColConversionRate); ok {
			row.ConversionRate = CleanPercentage(v)
		}

		rows = append(rows, row)
	}

	return &domain.Dataset{Rows: rows, Columns: headers}
}

// CleanInteger strips thousands separators and truncates toward zero.
// Missing or unparseable values coerce to 0.
func CleanInteger(value string) int {
	v := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// CleanCurrency strips a leading currency symbol and thousands separators.
// Missing or unparseable values coerce to 0.
func CleanCurrency(value string) float64 {
	v := strings.ReplaceAll(value, "$", "")
	v = strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// CleanPercentage strips a % suffix and thousands separators. Missing or
// unparseable values stay absent: a reported 0% is not the same as no
// value at all.
func CleanPercentage(value string) *float64 {
	v := strings.ReplaceAll(value, "%", "")
	v = strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

// CleanDate tries the known report layouts in order; unparseable dates
// become absent, never an error.
func CleanDate(value string) *time.Time {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}
