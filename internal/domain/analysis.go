package domain

// Rule labels assigned by the analysis engine. A flagged term carries
// exactly one.
type RuleLabel string

const (
	RuleHighACOS     RuleLabel = "High ACOS"
	RuleSpendNoSales RuleLabel = "Spend Without Sales"
)

// Suggested negative match types for flagged terms.
type NegativeMatchType string

const (
	NegativeExact            NegativeMatchType = "Negative Exact"
	NegativePhrase           NegativeMatchType = "Negative Phrase"
	NegativeProductTargeting NegativeMatchType = "Negative Product Targeting"
)

// parameter set for one analysis run.
type AnalysisConfig struct {
	TargetACOS        float64  `json:"target_acos"`
	MinSpend          float64  `json:"min_spend"`
	MaxSales          float64  `json:"max_sales"`
	UseNegativePhrase bool     `json:"use_negative_phrase"`
	ExcludeBranded    bool     `json:"exclude_branded"`
	BrandedTerms      []string `json:"branded_terms"`
	// Declared in the contract but not consulted by any rule yet; kept so
	// callers can send it without breaking once the feature lands.
	IncludePoorROAS bool `json:"include_poor_roas"`
}

// DefaultAnalysisConfig returns the stock thresholds.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		TargetACOS: 30.0,
		MinSpend:   10.0,
		MaxSales:   0.0,
	}
}

// one row the rule engine flagged. ID is the row's position in the
// uploaded report and is stable across export-time selection.
type FlaggedTerm struct {
	ID                 int               `json:"id"`
	Date               *string           `json:"date"`
	CampaignName       string            `json:"campaign_name"`
	AdGroupName        string            `json:"ad_group_name"`
	Portfolio          *string           `json:"portfolio"`
	Targeting          string            `json:"targeting"`
	MatchType          string            `json:"match_type"`
	CustomerSearchTerm string            `json:"customer_search_term"`
	Impressions        int               `json:"impressions"`
	Clicks             int               `json:"clicks"`
	Spend              float64           `json:"spend"`
	Sales              float64           `json:"sales"`
	ACOS               *float64          `json:"acos"`
	Orders             int               `json:"orders"`
	RuleTriggered      RuleLabel         `json:"rule_triggered"`
	IsASIN             bool              `json:"is_asin"`
	NegativeMatchType  NegativeMatchType `json:"negative_match_type"`
	Selected           bool              `json:"selected"`
}

// analysis run summary plus the flagged set.
type AnalysisResult struct {
	TotalFlagged     int           `json:"total_flagged"`
	NegativeKeywords int           `json:"negative_keywords"`
	NegativeASINs    int           `json:"negative_asins"`
	Results          []FlaggedTerm `json:"results"`
}
