package domain

// represents aggregated account-level KPIs. Derived ratios are rounded to
// two decimals and use safe division (zero denominator yields zero).
type KPIReport struct {
	TotalSales     float64 `json:"total_sales"`
	AdSpend        float64 `json:"ad_spend"`
	ROAS           float64 `json:"roas"`
	ACOS           float64 `json:"acos"`
	Orders         int     `json:"orders"`
	Impressions    int     `json:"impressions"`
	Clicks         int     `json:"clicks"`
	CTR            float64 `json:"ctr"`
	ConversionRate float64 `json:"conversion_rate"`
	AvgCPC         float64 `json:"avg_cpc"`
}

// campaign-level roll-up. Portfolio is the first-seen value in row order;
// when a campaign spans portfolios the pick is order-dependent.
type CampaignMetrics struct {
	CampaignName string  `json:"campaign_name"`
	Portfolio    *string `json:"portfolio"`
	Impressions  int     `json:"impressions"`
	Clicks       int     `json:"clicks"`
	Spend        float64 `json:"spend"`
	Sales        float64 `json:"sales"`
	Orders       int     `json:"orders"`
	ACOS         float64 `json:"acos"`
	ROAS         float64 `json:"roas"`
}

// one month of sales vs spend, labeled YYYY-MM.
type MonthlyPoint struct {
	Month string  `json:"month"`
	Sales float64 `json:"sales"`
	Spend float64 `json:"spend"`
}

// distinct values available for client-side filtering.
type FilterOptions struct {
	Campaigns  []string  `json:"campaigns"`
	AdGroups   []string  `json:"ad_groups"`
	Portfolios []string  `json:"portfolios"`
	DateRange  DateRange `json:"date_range"`
}

// one page of raw rows for browsing.
type SearchTermPage struct {
	Data       []SearchTermRow `json:"data"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}
