package domain

import "time"

// Canonical column names after header normalization.
const (
	ColDate               = "Date"
	ColCampaignName       = "Campaign Name"
	ColAdGroupName        = "Ad Group Name"
	ColPortfolio          = "Portfolio"
	ColTargeting          = "Targeting"
	ColMatchType          = "Match Type"
	ColCustomerSearchTerm = "Customer Search Term"
	ColImpressions        = "Impressions"
	ColClicks             = "Clicks"
	ColSpend              = "Spend"
	ColSales              = "Sales"
	ColOrders             = "Orders"
	ColUnits              = "Units"
	ColACOS               = "ACOS"
	ColROAS               = "ROAS"
	ColCTR                = "CTR"
	ColCPC                = "CPC"
	ColConversionRate     = "Conversion Rate"
)

// one normalized search-term observation from a performance report.
// Count and currency fields are always present (missing cells coerce to
// zero); reported ratios stay nil when the source omits them, since a
// reported 0% is not the same as "not reported".
type SearchTermRow struct {
	Date               *time.Time `json:"date,omitempty"`
	CampaignName       string     `json:"campaign_name"`
	AdGroupName        string     `json:"ad_group_name"`
	Portfolio          string     `json:"portfolio,omitempty"`
	Targeting          string     `json:"targeting"`
	MatchType          string     `json:"match_type"`
	CustomerSearchTerm string     `json:"customer_search_term"`
	Impressions        int        `json:"impressions"`
	Clicks             int        `json:"clicks"`
	Spend              float64    `json:"spend"`
	Sales              float64    `json:"sales"`
	Orders             int        `json:"orders"`
	Units              int        `json:"units"`
	ACOS               *float64   `json:"acos,omitempty"`
	ROAS               *float64   `json:"roas,omitempty"`
	CTR                *float64   `json:"ctr,omitempty"`
	ConversionRate     *float64   `json:"conversion_rate,omitempty"`
	CPC                float64    `json:"cpc"`
}

// a normalized report held in a session.
type Dataset struct {
	Rows    []SearchTermRow `json:"rows"`
	Columns []string        `json:"columns"`
}

// inclusive date bounds of a dataset; nil when no row carries a date.
type DateRange struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}
