package bulk

import (
	"time"

	"adscope/internal/domain"

	"github.com/xuri/excelize/v2"
)

// Sheet name for auto campaign bulk uploads.
const SheetSponsoredProducts = "Sponsored Products"

// Auto-targeting expression types, in emission order.
var autoTargetingTypes = []string{"close-match", "loose-match", "substitutes", "complements"}

// Fixed wide column schema shared by every record type in an auto
// campaign upload; entity-irrelevant fields stay blank per row.
var AutoCampaignColumns = []string{
	"Record Type",
	"Campaign ID",
	"Campaign Name",
	"Campaign State",
	"Campaign Daily Budget",
	"Portfolio ID",
	"Campaign Start Date",
	"Campaign End Date",
	"Campaign Targeting Type",
	"Campaign Bidding Strategy",
	"Ad Group ID",
	"Ad Group Name",
	"Ad Group State",
	"Ad Group Default Bid",
	"Targeting ID",
	"Targeting Expression",
	"Targeting Expression State",
	"Targeting Expression Bid",
	"Operation",
}

type autoCampaignHeader struct {
	campaignName string
	dailyBudget  float64
	strategy     domain.BiddingStrategy
	startDate    time.Time
}

func (r autoCampaignHeader) cells() []interface{} {
	return []interface{}{
		"Campaign",
		"",
		r.campaignName,
		"Enabled",
		r.dailyBudget,
		"",
		r.startDate.Format("20060102"),
		"",
		"Auto",
		string(r.strategy),
		"", "", "", "", "", "", "", "",
		"Create",
	}
}

type autoAdGroupRow struct {
	campaignName string
	adGroupName  string
	defaultBid   float64
}

func (r autoAdGroupRow) cells() []interface{} {
	return []interface{}{
		"Ad Group",
		"",
		r.campaignName,
		"", "", "", "", "", "", "",
		"",
		r.adGroupName,
		"Enabled",
		r.defaultBid,
		"", "", "", "",
		"Create",
	}
}

type autoTargetingRow struct {
	campaignName  string
	adGroupName   string
	targetingType string
	bid           *float64
}

func (r autoTargetingRow) cells() []interface{} {
	var bid interface{} = ""
	if r.bid != nil {
		bid = *r.bid
	}
	return []interface{}{
		"Product Targeting",
		"",
		r.campaignName,
		"", "", "", "", "", "", "",
		"",
		r.adGroupName,
		"", "",
		"",
		"auto-targeting=" + r.targetingType,
		"Enabled",
		bid,
		"Create",
	}
}

// GenerateAutoCampaign renders a campaign header row, then per ad group
// one ad-group row followed by a targeting row for each enabled auto
// targeting type. Missing bid overrides render blank so the platform
// falls back to the ad group default bid.
func GenerateAutoCampaign(cfg domain.AutoCampaignConfig) ([]byte, error) {
	rows := [][]interface{}{
		autoCampaignHeader{
			campaignName: cfg.CampaignName,
			dailyBudget:  cfg.DailyBudget,
			strategy:     cfg.BiddingStrategy,
			startDate:    cfg.StartDate,
		}.cells(),
	}

	for _, ag := range cfg.AdGroups {
		rows = append(rows, autoAdGroupRow{
			campaignName: cfg.CampaignName,
			adGroupName:  ag.AdGroupName,
			defaultBid:   ag.DefaultBid,
		}.cells())

		enabled := []struct {
			on  bool
			bid *float64
		}{
			{ag.CloseMatch, ag.CloseMatchBid},
			{ag.LooseMatch, ag.LooseMatchBid},
			{ag.Substitutes, ag.SubstitutesBid},
			{ag.Complements, ag.ComplementsBid},
		}
		for i, t := range enabled {
			if !t.on {
				continue
			}
			rows = append(rows, autoTargetingRow{
				campaignName:  cfg.CampaignName,
				adGroupName:   ag.AdGroupName,
				targetingType: autoTargetingTypes[i],
				bid:           t.bid,
			}.cells())
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, SheetSponsoredProducts, AutoCampaignColumns, rows); err != nil {
		return nil, err
	}
	return finish(f)
}
