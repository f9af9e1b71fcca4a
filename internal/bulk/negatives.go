package bulk

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"adscope/internal/domain"

	"github.com/xuri/excelize/v2"
)

// Sheet names the downstream platform expects for negatives.
const (
	SheetNegativeKeywords = "Negative Keywords"
	SheetNegativeProducts = "Negative Products"
)

// Fixed bulk-upload column order for negative keyword rows. The platform
// matches headers positionally; never reorder.
var NegativeKeywordColumns = []string{
	"Record Type",
	"Campaign ID",
	"Campaign Name",
	"Ad Group ID",
	"Ad Group Name",
	"Portfolio ID",
	"Keyword",
	"Match Type",
	"Operation",
	"Status",
}

// Fixed bulk-upload column order for negative product targeting rows.
var NegativeProductColumns = []string{
	"Record Type",
	"Campaign ID",
	"Campaign Name",
	"Ad Group ID",
	"Ad Group Name",
	"Portfolio ID",
	"Product Targeting Expression",
	"Operation",
	"Status",
}

type negativeKeywordRow struct {
	campaignName string
	adGroupName  string
	keyword      string
	matchType    domain.NegativeMatchType
}

func (r negativeKeywordRow) cells() []interface{} {
	return []interface{}{
		"Keyword",
		"",
		r.campaignName,
		"",
		r.adGroupName,
		"",
		r.keyword,
		string(r.matchType),
		"Create",
		"Enabled",
	}
}

type negativeProductRow struct {
	campaignName string
	adGroupName  string
	asin         string
}

func (r negativeProductRow) cells() []interface{} {
	return []interface{}{
		"Product Targeting",
		"",
		r.campaignName,
		"",
		r.adGroupName,
		"",
		fmt.Sprintf("asin=%q", strings.ToUpper(r.asin)),
		"Create",
		"Enabled",
	}
}

// GenerateNegatives renders flagged terms into a bulk-upload workbook,
// partitioned into keyword and product sheets by the is-ASIN flag. The
// keyword match type is uniform across the batch. An empty input still
// yields a headers-only keyword sheet, never an empty document.
func GenerateNegatives(items []domain.FlaggedTerm, useNegativePhrase bool) ([]byte, error) {
	matchType := domain.NegativeExact
	if useNegativePhrase {
		matchType = domain.NegativePhrase
	}

	var keywordRows, productRows [][]interface{}
	for _, item := range items {
		if item.IsASIN {
			productRows = append(productRows, negativeProductRow{
				campaignName: item.CampaignName,
				adGroupName:  item.AdGroupName,
				asin:         item.CustomerSearchTerm,
			}.cells())
		} else {
			keywordRows = append(keywordRows, negativeKeywordRow{
				campaignName: item.CampaignName,
				adGroupName:  item.AdGroupName,
				keyword:      item.CustomerSearchTerm,
				matchType:    matchType,
			}.cells())
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if len(keywordRows) > 0 || len(productRows) == 0 {
		if err := writeSheet(f, SheetNegativeKeywords, NegativeKeywordColumns, keywordRows); err != nil {
			return nil, err
		}
	}
	if len(productRows) > 0 {
		if err := writeSheet(f, SheetNegativeProducts, NegativeProductColumns, productRows); err != nil {
			return nil, err
		}
	}

	return finish(f)
}

// GenerateNegativesCSV renders the single-sheet CSV variant, mixing
// keyword and product rows in input order.
func GenerateNegativesCSV(items []domain.FlaggedTerm, useNegativePhrase bool) ([]byte, error) {
	matchType := domain.NegativeExact
	if useNegativePhrase {
		matchType = domain.NegativePhrase
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"Record Type", "Campaign Name", "Ad Group Name", "Keyword", "Match Type", "Product Targeting Expression", "Operation", "Status"}}
	for _, item := range items {
		if item.IsASIN {
			expr := fmt.Sprintf("asin=%q", strings.ToUpper(item.CustomerSearchTerm))
			records = append(records, []string{"Product Targeting", item.CampaignName, item.AdGroupName, "", "", expr, "Create", "Enabled"})
		} else {
			records = append(records, []string{"Keyword", item.CampaignName, item.AdGroupName, item.CustomerSearchTerm, string(matchType), "", "Create", "Enabled"})
		}
	}

	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
