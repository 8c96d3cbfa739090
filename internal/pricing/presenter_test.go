package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ImAlagar/zohra-admin-core/internal/catalog"
)

func sampleGroups() []SubcategoryRules {
	return []SubcategoryRules{
		{
			Subcategory: catalog.Subcategory{
				ID: "sub-1", Name: "Silk Pyjamas",
				CategoryID: "cat-1", Category: "Nightwear",
			},
			Rules: []QuantityPriceRule{
				{ID: "r1", SubcategoryID: "sub-1", Quantity: 3, PriceType: PriceTypePercentage, Value: decimal.NewFromInt(10), IsActive: true},
				{ID: "r2", SubcategoryID: "sub-1", Quantity: 5, PriceType: PriceTypeFixedAmount, Value: decimal.RequireFromString("49.99"), IsActive: false},
			},
		},
		{
			Subcategory: catalog.Subcategory{
				ID: "sub-2", Name: "Cotton Robes",
				CategoryID: "cat-1", Category: "Nightwear",
			},
			Rules: []QuantityPriceRule{
				{ID: "r3", SubcategoryID: "sub-2", Quantity: 2, PriceType: PriceTypePercentage, Value: decimal.NewFromInt(5), IsActive: true},
			},
		},
		{
			Subcategory: catalog.Subcategory{
				ID: "sub-3", Name: "Slips",
				CategoryID: "cat-2", Category: "Loungewear",
			},
			Rules: []QuantityPriceRule{},
		},
	}
}

func TestBuildOverviewStats(t *testing.T) {
	overview := BuildOverview(sampleGroups(), "")

	require.Equal(t, 3, overview.Stats.TotalSubcategories)
	require.Equal(t, 2, overview.Stats.SubcategoriesWithRule)
	require.Equal(t, 3, overview.Stats.TotalRules)
	require.Equal(t, 2, overview.Stats.ActiveRules)
	require.Len(t, overview.Groups, 3)
}

func TestBuildOverviewStatsIgnoreFilter(t *testing.T) {
	overview := BuildOverview(sampleGroups(), "silk")

	require.Equal(t, 3, overview.Stats.TotalSubcategories, "stats cover the full set regardless of filter")
	require.Equal(t, 3, overview.Stats.TotalRules)
	require.Len(t, overview.Groups, 1)
	require.Equal(t, "sub-1", overview.Groups[0].Subcategory.ID)
}

func TestFilterGroupsBySubcategoryName(t *testing.T) {
	filtered := FilterGroups(sampleGroups(), "SILK")
	require.Len(t, filtered, 1)
	require.Equal(t, "Silk Pyjamas", filtered[0].Subcategory.Name)
	require.Len(t, filtered[0].Rules, 2, "name match keeps every rule in the group")
}

func TestFilterGroupsByCategoryName(t *testing.T) {
	filtered := FilterGroups(sampleGroups(), "nightwear")
	require.Len(t, filtered, 2)
}

func TestFilterGroupsByRuleValue(t *testing.T) {
	filtered := FilterGroups(sampleGroups(), "49.99")
	require.Len(t, filtered, 1)
	require.Equal(t, "sub-1", filtered[0].Subcategory.ID)
	require.Len(t, filtered[0].Rules, 1, "value match keeps only the matching rule")
	require.Equal(t, "r2", filtered[0].Rules[0].ID)
}

func TestFilterGroupsByQuantity(t *testing.T) {
	filtered := FilterGroups(sampleGroups(), "2")
	require.Len(t, filtered, 1)
	require.Equal(t, "sub-2", filtered[0].Subcategory.ID)
}

func TestFilterGroupsNoMatch(t *testing.T) {
	filtered := FilterGroups(sampleGroups(), "velvet")
	require.Empty(t, filtered)
}

func TestFilterGroupsBlankQueryReturnsAll(t *testing.T) {
	groups := sampleGroups()
	require.Len(t, FilterGroups(groups, ""), 3)
	require.Len(t, FilterGroups(groups, "   "), 3)
}

func TestLayoutForBreakpoint(t *testing.T) {
	require.Equal(t, LayoutCards, LayoutFor(320))
	require.Equal(t, LayoutCards, LayoutFor(768))
	require.Equal(t, LayoutTable, LayoutFor(769))
	require.Equal(t, LayoutTable, LayoutFor(1440))
}

func TestExpansionStateSinglePanel(t *testing.T) {
	var state ExpansionState

	_, open := state.Expanded()
	require.False(t, open)

	require.Equal(t, "sub-1", state.Toggle("sub-1"))

	// Expanding another panel collapses the first.
	require.Equal(t, "sub-2", state.Toggle("sub-2"))
	expanded, open := state.Expanded()
	require.True(t, open)
	require.Equal(t, "sub-2", expanded)

	// Toggling the open panel collapses everything.
	require.Equal(t, "", state.Toggle("sub-2"))
	_, open = state.Expanded()
	require.False(t, open)
}
