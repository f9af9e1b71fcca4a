package domain

import "time"

type BiddingStrategy string

const (
	BiddingDynamicDown   BiddingStrategy = "dynamic bids - down only"
	BiddingDynamicUpDown BiddingStrategy = "dynamic bids - up and down"
	BiddingFixed         BiddingStrategy = "fixed bids"
)

// ad group settings for an auto campaign. Per-type bids are overrides;
// nil means the platform falls back to the ad group default bid.
type AdGroupConfig struct {
	AdGroupName    string   `json:"ad_group_name"`
	DefaultBid     float64  `json:"default_bid"`
	CloseMatch     bool     `json:"close_match"`
	CloseMatchBid  *float64 `json:"close_match_bid"`
	LooseMatch     bool     `json:"loose_match"`
	LooseMatchBid  *float64 `json:"loose_match_bid"`
	Substitutes    bool     `json:"substitutes"`
	SubstitutesBid *float64 `json:"substitutes_bid"`
	Complements    bool     `json:"complements"`
	ComplementsBid *float64 `json:"complements_bid"`
}

type AutoCampaignConfig struct {
	CampaignName    string          `json:"campaign_name"`
	Portfolio       string          `json:"portfolio,omitempty"`
	DailyBudget     float64         `json:"daily_budget"`
	BiddingStrategy BiddingStrategy `json:"bidding_strategy"`
	StartDate       time.Time       `json:"start_date"`
	AdGroups        []AdGroupConfig `json:"ad_groups"`
}

// a keyword target inside a manual ad group.
type KeywordConfig struct {
	Keyword   string   `json:"keyword"`
	MatchType string   `json:"match_type"`
	Bid       *float64 `json:"bid"`
}

// an ASIN target inside a manual ad group.
type ProductTargetConfig struct {
	ASIN string   `json:"asin"`
	Bid  *float64 `json:"bid"`
}

type ManualAdGroupConfig struct {
	AdGroupName    string                `json:"ad_group_name"`
	DefaultBid     float64               `json:"default_bid"`
	SKUs           []string              `json:"skus"`
	Keywords       []KeywordConfig       `json:"keywords"`
	ProductTargets []ProductTargetConfig `json:"product_targets"`
}

// placement bid modifiers; a placement row is emitted only when its
// percentage is positive.
type PlacementAdjustment struct {
	TopOfSearch  int `json:"top_of_search"`
	ProductPages int `json:"product_pages"`
	RestOfSearch int `json:"rest_of_search"`
}

type ManualCampaignConfig struct {
	CampaignName    string                `json:"campaign_name"`
	Portfolio       string                `json:"portfolio,omitempty"`
	DailyBudget     float64               `json:"daily_budget"`
	BiddingStrategy BiddingStrategy       `json:"bidding_strategy"`
	StartDate       time.Time             `json:"start_date"`
	AdGroups        []ManualAdGroupConfig `json:"ad_groups"`
	Placement       *PlacementAdjustment  `json:"placement_bid_adjustment,omitempty"`
}
