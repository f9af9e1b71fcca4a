package bulk

import (
	"fmt"
	"strings"
	"time"

	"adscope/internal/domain"

	"github.com/xuri/excelize/v2"
)

// Sheet name for manual campaign bulksheets.
const SheetSponsoredProductsCampaigns = "Sponsored Products Campaigns"

// Official Sponsored Products bulksheet column order, shared by every
// entity row in the sheet.
var ManualCampaignColumns = []string{
	"Product",
	"Entity",
	"Operation",
	"Campaign ID",
	"Ad Group ID",
	"Portfolio ID",
	"Ad ID",
	"Keyword ID",
	"Product Targeting ID",
	"Campaign Name",
	"Ad Group Name",
	"Start Date",
	"End Date",
	"Targeting Type",
	"State",
	"Daily Budget",
	"SKU",
	"ASIN (Informational only)",
	"Ad Group Default Bid",
	"Bid",
	"Keyword Text",
	"Match Type",
	"Bidding Strategy",
	"Placement",
	"Percentage",
}

var manualColIndex = func() map[string]int {
	m := make(map[string]int, len(ManualCampaignColumns))
	for i, col := range ManualCampaignColumns {
		m[col] = i
	}
	return m
}()

// blank row at full bulksheet width; entities fill only their fields.
func emptyManualRow() []interface{} {
	cells := make([]interface{}, len(ManualCampaignColumns))
	for i := range cells {
		cells[i] = ""
	}
	return cells
}

func setCell(cells []interface{}, column string, value interface{}) {
	cells[manualColIndex[column]] = value
}

type manualCampaignRow struct {
	campaignName string
	dailyBudget  float64
	strategy     domain.BiddingStrategy
	startDate    time.Time
	portfolioID  string
}

func (r manualCampaignRow) cells() []interface{} {
	cells := emptyManualRow()
	setCell(cells, "Product", "Sponsored Products")
	setCell(cells, "Entity", "Campaign")
	setCell(cells, "Operation", "Create")
	// Campaign name doubles as a temporary ID for entities created in
	// the same sheet.
	setCell(cells, "Campaign ID", r.campaignName)
	setCell(cells, "Campaign Name", r.campaignName)
	setCell(cells, "State", "enabled")
	setCell(cells, "Daily Budget", r.dailyBudget)
	setCell(cells, "Start Date", r.startDate.Format("20060102"))
	setCell(cells, "Targeting Type", "Manual")
	setCell(cells, "Bidding Strategy", string(r.strategy))
	if r.portfolioID != "" {
		setCell(cells, "Portfolio ID", r.portfolioID)
	}
	return cells
}

type biddingAdjustmentRow struct {
	campaignName string
	placement    string
	percentage   int
}

func (r biddingAdjustmentRow) cells() []interface{} {
	cells := emptyManualRow()
	setCell(cells, "Product", "Sponsored Products")
	setCell(cells, "Entity", "Bidding Adjustment")
	setCell(cells, "Operation", "Create")
	setCell(cells, "Campaign ID", r.campaignName)
	setCell(cells, "Campaign Name", r.campaignName)
	setCell(cells, "Placement", r.placement)
	setCell(cells, "Percentage", r.percentage)
	return cells
}

type manualAdGroupRow struct {
	campaignName string
	adGroupName  string
	defaultBid   float64
}

func (r manualAdGroupRow) cells() []interface{} {
	cells := emptyManualRow()
	setCell(cells, "Product", "Sponsored Products")
	setCell(cells, "Entity", "Ad Group")
	setCell(cells, "Operation", "Create")
	setCell(cells, "Campaign ID", r.campaignName)
	setCell(cells, "Ad Group ID", r.adGroupName)
	setCell(cells, "Campaign Name", r.campaignName)
	setCell(cells, "Ad Group Name", r.adGroupName)
	setCell(cells, "State", "enabled")
	setCell(cells, "Ad Group Default Bid", r.defaultBid)
	return cells
}

type productAdRow struct {
	campaignName string
	adGroupName  string
	sku          string
}

func (r productAdRow) cells() []interface{} {
	cells := emptyManualRow()
	setCell(cells, "Product", "Sponsored Products")
	setCell(cells, "Entity", "Product Ad")
	setCell(cells, "Operation", "Create")
	setCell(cells, "Campaign ID", r.campaignName)
	setCell(cells, "Ad Group ID", r.adGroupName)
	setCell(cells, "Campaign Name", r.campaignName)
	setCell(cells, "Ad Group Name", r.adGroupName)
	setCell(cells, "State", "enabled")
	setCell(cells, "SKU", r.sku)
	return cells
}

type keywordRow struct {
	campaignName string
	adGroupName  string
	keyword      string
	matchType    string
	bid          *float64
}

func (r keywordRow) cells() []interface{} {
	cells := emptyManualRow()
	setCell(cells, "Product", "Sponsored Products")
	setCell(cells, "Entity", "Keyword")
	setCell(cells, "Operation", "Create")
	setCell(cells, "Campaign ID", r.campaignName)
	setCell(cells, "Ad Group ID", r.adGroupName)
	setCell(cells, "Campaign Name", r.campaignName)
	setCell(cells, "Ad Group Name", r.adGroupName)
	setCell(cells, "State", "enabled")
	setCell(cells, "Keyword Text", r.keyword)
	setCell(cells, "Match Type", r.matchType)
	if r.bid != nil {
		setCell(cells, "Bid", *r.bid)
	}
	return cells
}

type productTargetRow struct {
	campaignName string
	adGroupName  string
	asin         string
	bid          *float64
}

func (r productTargetRow) cells() []interface{} {
	cells := emptyManualRow()
	setCell(cells, "Product", "Sponsored Products")
	setCell(cells, "Entity", "Product Targeting")
	setCell(cells, "Operation", "Create")
	setCell(cells, "Campaign ID", r.campaignName)
	setCell(cells, "Ad Group ID", r.adGroupName)
	setCell(cells, "Campaign Name", r.campaignName)
	setCell(cells, "Ad Group Name", r.adGroupName)
	setCell(cells, "State", "enabled")
	setCell(cells, "Product Targeting ID", fmt.Sprintf("asin=%q", r.asin))
	if r.bid != nil {
		setCell(cells, "Bid", *r.bid)
	}
	return cells
}

// GenerateManualCampaign renders a manual campaign into the official
// bulksheet schema: one campaign row, placement adjustment rows for each
// positive percentage, then per ad group one ad-group row plus a row per
// SKU, keyword and ASIN product target.
func GenerateManualCampaign(cfg domain.ManualCampaignConfig) ([]byte, error) {
	rows := [][]interface{}{
		manualCampaignRow{
			campaignName: cfg.CampaignName,
			dailyBudget:  cfg.DailyBudget,
			strategy:     cfg.BiddingStrategy,
			startDate:    cfg.StartDate,
			portfolioID:  cfg.Portfolio,
		}.cells(),
	}

	if cfg.Placement != nil {
		placements := []struct {
			name string
			pct  int
		}{
			{"Placement Top", cfg.Placement.TopOfSearch},
			{"Placement Product Page", cfg.Placement.ProductPages},
			{"Placement Rest Of Search", cfg.Placement.RestOfSearch},
		}
		for _, p := range placements {
			if p.pct <= 0 {
				continue
			}
			rows = append(rows, biddingAdjustmentRow{
				campaignName: cfg.CampaignName,
				placement:    p.name,
				percentage:   p.pct,
			}.cells())
		}
	}

	for _, ag := range cfg.AdGroups {
		rows = append(rows, manualAdGroupRow{
			campaignName: cfg.CampaignName,
			adGroupName:  ag.AdGroupName,
			defaultBid:   ag.DefaultBid,
		}.cells())

		for _, sku := range ag.SKUs {
			sku = strings.TrimSpace(sku)
			if sku == "" {
				continue
			}
			rows = append(rows, productAdRow{
				campaignName: cfg.CampaignName,
				adGroupName:  ag.AdGroupName,
				sku:          sku,
			}.cells())
		}

		for _, kw := range ag.Keywords {
			if kw.Keyword == "" {
				continue
			}
			matchType := kw.MatchType
			if matchType == "" {
				matchType = "exact"
			}
			rows = append(rows, keywordRow{
				campaignName: cfg.CampaignName,
				adGroupName:  ag.AdGroupName,
				keyword:      kw.Keyword,
				matchType:    matchType,
				bid:          kw.Bid,
			}.cells())
		}

		for _, pt := range ag.ProductTargets {
			if pt.ASIN == "" {
				continue
			}
			rows = append(rows, productTargetRow{
				campaignName: cfg.CampaignName,
				adGroupName:  ag.AdGroupName,
				asin:         pt.ASIN,
				bid:          pt.Bid,
			}.cells())
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, SheetSponsoredProductsCampaigns, ManualCampaignColumns, rows); err != nil {
		return nil, err
	}
	return finish(f)
}
