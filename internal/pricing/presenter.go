package pricing

import (
	"strconv"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Layout is the rendering mode suggested for a given viewport width.
type Layout string

const (
	LayoutTable Layout = "TABLE"
	LayoutCards Layout = "CARDS"

	cardLayoutMaxWidth = 768
)

// LayoutFor picks the layout for a viewport width in pixels. Widths at or
// below the breakpoint get stacked cards, wider viewports get the table.
func LayoutFor(width int) Layout {
	if width <= cardLayoutMaxWidth {
		return LayoutCards
	}
	return LayoutTable
}

// OverviewStats summarizes the whole rule set for the dashboard header.
type OverviewStats struct {
	TotalSubcategories    int `json:"total_subcategories"`
	SubcategoriesWithRule int `json:"subcategories_with_rules"`
	TotalRules            int `json:"total_rules"`
	ActiveRules           int `json:"active_rules"`
}

// Overview is the presenter's full dashboard payload.
type Overview struct {
	Stats  OverviewStats      `json:"stats"`
	Groups []SubcategoryRules `json:"groups"`
	Filter string             `json:"filter,omitempty"`
}

// BuildOverview assembles the dashboard view: stats are computed over the
// full rule set, then groups are narrowed by the filter. Stats never change
// with the filter.
func BuildOverview(groups []SubcategoryRules, filter string) Overview {
	stats := OverviewStats{TotalSubcategories: len(groups)}
	for _, group := range groups {
		stats.TotalRules += len(group.Rules)
		if len(group.Rules) > 0 {
			stats.SubcategoriesWithRule++
		}
		stats.ActiveRules += group.ActiveRuleCount()
	}

	return Overview{
		Stats:  stats,
		Groups: FilterGroups(groups, filter),
		Filter: strings.TrimSpace(filter),
	}
}

// FilterGroups narrows groups to those matching the query. Matching is
// case-insensitive substring over subcategory name, category name, and each
// rule's quantity and value. A group whose name matches keeps all of its
// rules; otherwise only the matching rules are kept. A blank query returns
// the input unchanged.
func FilterGroups(groups []SubcategoryRules, query string) []SubcategoryRules {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return groups
	}

	return lo.FilterMap(groups, func(group SubcategoryRules, _ int) (SubcategoryRules, bool) {
		if containsFold(group.Subcategory.Name, needle) ||
			containsFold(group.Subcategory.Category, needle) {
			return group, true
		}
		matched := lo.Filter(group.Rules, func(rule QuantityPriceRule, _ int) bool {
			return ruleMatches(rule, needle)
		})
		if len(matched) == 0 {
			return SubcategoryRules{}, false
		}
		narrowed := group
		narrowed.Rules = matched
		return narrowed, true
	})
}

func ruleMatches(rule QuantityPriceRule, needle string) bool {
	if strings.Contains(strconv.Itoa(rule.Quantity), needle) {
		return true
	}
	return strings.Contains(rule.Value.String(), needle)
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}

// ExpansionState tracks which subcategory panel is open. At most one panel
// is expanded at a time; expanding another collapses the previous one.
type ExpansionState struct {
	mu       sync.Mutex
	expanded string
}

// Toggle expands the given subcategory, or collapses it if it was already
// expanded. Returns the now-expanded id, empty when everything is collapsed.
func (s *ExpansionState) Toggle(subcategoryID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expanded == subcategoryID {
		s.expanded = ""
	} else {
		s.expanded = subcategoryID
	}
	return s.expanded
}

// Expanded returns the currently expanded subcategory id, if any.
func (s *ExpansionState) Expanded() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded, s.expanded != ""
}

// Collapse closes any open panel.
func (s *ExpansionState) Collapse() {
	s.mu.Lock()
	s.expanded = ""
	s.mu.Unlock()
}
