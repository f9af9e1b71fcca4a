package usecase

import (
	"context"
	"testing"
	"time"

	"adscope/internal/domain"
	"adscope/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dt(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestCalculateKPIs(t *testing.T) {
	rows := []domain.SearchTermRow{
		{Impressions: 1000, Clicks: 40, Spend: 20.0, Sales: 80.0, Orders: 4},
		{Impressions: 500, Clicks: 10, Spend: 5.0, Sales: 20.0, Orders: 1},
	}

	kpi := CalculateKPIs(rows)

	assert.Equal(t, 100.0, kpi.TotalSales)
	assert.Equal(t, 25.0, kpi.AdSpend)
	assert.Equal(t, 4.0, kpi.ROAS)
	assert.Equal(t, 25.0, kpi.ACOS)
	assert.Equal(t, 1500, kpi.Impressions)
	assert.Equal(t, 50, kpi.Clicks)
	assert.Equal(t, 5, kpi.Orders)
	assert.InDelta(t, 3.33, kpi.CTR, 0.001)
	assert.Equal(t, 10.0, kpi.ConversionRate)
	assert.Equal(t, 0.5, kpi.AvgCPC)
}

func TestCalculateKPIsSafeDivision(t *testing.T) {
	t.Run("spend without sales", func(t *testing.T) {
		kpi := CalculateKPIs([]domain.SearchTermRow{{Spend: 100.0}})
		assert.Equal(t, 0.0, kpi.ACOS)
		assert.Equal(t, 0.0, kpi.ROAS)
	})

	t.Run("no impressions", func(t *testing.T) {
		kpi := CalculateKPIs([]domain.SearchTermRow{{Clicks: 0}})
		assert.Equal(t, 0.0, kpi.CTR)
		assert.Equal(t, 0.0, kpi.ConversionRate)
		assert.Equal(t, 0.0, kpi.AvgCPC)
	})

	t.Run("empty dataset", func(t *testing.T) {
		kpi := CalculateKPIs(nil)
		assert.Equal(t, 0.0, kpi.TotalSales)
		assert.Equal(t, 0.0, kpi.ACOS)
	})
}

func TestCalculateCampaignMetrics(t *testing.T) {
	rows := []domain.SearchTermRow{
		{CampaignName: "Zeta", Spend: 10.0, Sales: 40.0, Clicks: 5, Portfolio: "Pets"},
		{CampaignName: "Alpha", Spend: 5.0, Sales: 0.0, Clicks: 2},
		{CampaignName: "Zeta", Spend: 10.0, Sales: 10.0, Clicks: 5, Portfolio: "Other"},
	}

	got := CalculateCampaignMetrics(rows)
	require.Len(t, got, 2)

	// sorted by campaign name
	assert.Equal(t, "Alpha", got[0].CampaignName)
	assert.Equal(t, "Zeta", got[1].CampaignName)

	zeta := got[1]
	assert.Equal(t, 20.0, zeta.Spend)
	assert.Equal(t, 50.0, zeta.Sales)
	assert.Equal(t, 40.0, zeta.ACOS)
	assert.Equal(t, 2.5, zeta.ROAS)
	require.NotNil(t, zeta.Portfolio)
	assert.Equal(t, "Pets", *zeta.Portfolio) // first seen wins

	alpha := got[0]
	assert.Equal(t, 0.0, alpha.ACOS) // no sales, safe division
	assert.Nil(t, alpha.Portfolio)
}

func TestCalculateMonthlyData(t *testing.T) {
	rows := []domain.SearchTermRow{
		{Date: dt("2024-02-01"), Sales: 5.0, Spend: 1.0},
		{Date: dt("2024-01-15"), Sales: 10.0, Spend: 2.0},
		{Date: dt("2024-01-20"), Sales: 20.0, Spend: 3.0},
		{Date: nil, Sales: 99.0, Spend: 99.0}, // undated rows are left out
	}

	got := CalculateMonthlyData(rows)
	require.Len(t, got, 2)

	assert.Equal(t, "2024-01", got[0].Month)
	assert.Equal(t, 30.0, got[0].Sales)
	assert.Equal(t, 5.0, got[0].Spend)
	assert.Equal(t, "2024-02", got[1].Month)
}

func TestFilterRows(t *testing.T) {
	rows := []domain.SearchTermRow{
		{CampaignName: "A", AdGroupName: "AG1", Date: dt("2024-01-10")},
		{CampaignName: "A", AdGroupName: "AG2", Date: dt("2024-02-10")},
		{CampaignName: "B", AdGroupName: "AG1", Date: nil},
	}

	t.Run("no filter returns all", func(t *testing.T) {
		assert.Len(t, FilterRows(rows, RowFilter{}), 3)
	})

	t.Run("campaign", func(t *testing.T) {
		got := FilterRows(rows, RowFilter{Campaign: "A"})
		assert.Len(t, got, 2)
	})

	t.Run("campaign and ad group", func(t *testing.T) {
		got := FilterRows(rows, RowFilter{Campaign: "A", AdGroup: "AG2"})
		require.Len(t, got, 1)
		assert.Equal(t, "AG2", got[0].AdGroupName)
	})

	t.Run("date bounds exclude undated rows", func(t *testing.T) {
		got := FilterRows(rows, RowFilter{StartDate: dt("2024-01-01"), EndDate: dt("2024-01-31")})
		require.Len(t, got, 1)
		assert.Equal(t, "AG1", got[0].AdGroupName)
	})
}

func TestDatasetDateRange(t *testing.T) {
	rows := []domain.SearchTermRow{
		{Date: dt("2024-03-01")},
		{Date: dt("2024-01-15")},
		{Date: nil},
		{Date: dt("2024-02-10")},
	}

	dr := DatasetDateRange(rows)
	require.NotNil(t, dr.Start)
	require.NotNil(t, dr.End)
	assert.Equal(t, "2024-01-15", *dr.Start)
	assert.Equal(t, "2024-03-01", *dr.End)

	empty := DatasetDateRange(nil)
	assert.Nil(t, empty.Start)
	assert.Nil(t, empty.End)
}

func TestUniqueValuesFirstSeenOrder(t *testing.T) {
	rows := []domain.SearchTermRow{
		{CampaignName: "B", AdGroupName: "AG2", Portfolio: ""},
		{CampaignName: "A", AdGroupName: "AG1", Portfolio: "Pets"},
		{CampaignName: "B", AdGroupName: "AG2", Portfolio: "Pets"},
	}

	assert.Equal(t, []string{"B", "A"}, UniqueCampaigns(rows))
	assert.Equal(t, []string{"AG2", "AG1"}, UniqueAdGroups(rows))
	assert.Equal(t, []string{"Pets"}, UniquePortfolios(rows))
}

func TestFilterRowsReturnsFreshSlice(t *testing.T) {
	rows := []domain.SearchTermRow{
		{CustomerSearchTerm: "a"},
		{CustomerSearchTerm: "b"},
	}

	got := FilterRows(rows, RowFilter{})
	require.Len(t, got, 2)

	got[0], got[1] = got[1], got[0]
	assert.Equal(t, "a", rows[0].CustomerSearchTerm)
}

func TestGetSearchTermsPageLeavesStoredDatasetAlone(t *testing.T) {
	sessions := newTestSessions()
	ctx := context.Background()

	ds := &domain.Dataset{Rows: []domain.SearchTermRow{
		{CustomerSearchTerm: "a", Spend: 3.0},
		{CustomerSearchTerm: "b", Spend: 1.0},
		{CustomerSearchTerm: "c", Spend: 2.0},
	}}
	require.NoError(t, sessions.StoreDataset(ctx, "s1", ds))

	svc := NewMetricsService(sessions, logger.New("error"), testMetrics)

	page, err := svc.GetSearchTermsPage(ctx, "s1", 1, 10, RowFilter{}, domain.ColSpend, "asc")
	require.NoError(t, err)
	require.Len(t, page.Data, 3)
	assert.Equal(t, "b", page.Data[0].CustomerSearchTerm)

	// the store keeps upload order; row positions stay valid as flag IDs
	stored, err := sessions.GetDataset(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "a", stored.Rows[0].CustomerSearchTerm)
	assert.Equal(t, "b", stored.Rows[1].CustomerSearchTerm)
	assert.Equal(t, "c", stored.Rows[2].CustomerSearchTerm)
}

func TestSortRows(t *testing.T) {
	rows := []domain.SearchTermRow{
		{CustomerSearchTerm: "b", Spend: 2.0, ACOS: fp(10.0)},
		{CustomerSearchTerm: "a", Spend: 3.0, ACOS: nil},
		{CustomerSearchTerm: "c", Spend: 1.0, ACOS: fp(50.0)},
	}

	sortRows(rows, domain.ColSpend, true)
	assert.Equal(t, 1.0, rows[0].Spend)
	assert.Equal(t, 3.0, rows[2].Spend)

	sortRows(rows, domain.ColACOS, false)
	require.NotNil(t, rows[0].ACOS)
	assert.Equal(t, 50.0, *rows[0].ACOS)
	assert.Nil(t, rows[2].ACOS) // nil sorts as zero

	// unknown column leaves order untouched
	before := append([]domain.SearchTermRow(nil), rows...)
	sortRows(rows, "Nonsense", true)
	assert.Equal(t, before, rows)
}
