package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ImAlagar/zohra-admin-core/internal/catalog"
)

// PriceType selects how a rule's value is interpreted.
type PriceType string

const (
	// PriceTypePercentage treats the value as a discount percentage off the
	// unit price, constrained to [0, 100].
	PriceTypePercentage PriceType = "PERCENTAGE"
	// PriceTypeFixedAmount treats the value as the total price for the rule's
	// quantity, not a per-unit price.
	PriceTypeFixedAmount PriceType = "FIXED_AMOUNT"
)

// ParsePriceType normalizes and validates a price type string.
func ParsePriceType(raw string) (PriceType, error) {
	switch PriceType(strings.ToUpper(strings.TrimSpace(raw))) {
	case PriceTypePercentage:
		return PriceTypePercentage, nil
	case PriceTypeFixedAmount:
		return PriceTypeFixedAmount, nil
	}
	return "", fmt.Errorf("unknown price type %q", raw)
}

// QuantityPriceRule ties a minimum purchase quantity to either a percentage
// discount or a fixed total price, scoped to one subcategory. The backend
// assigns id and timestamps; this service holds only a re-fetchable copy.
type QuantityPriceRule struct {
	ID            string          `json:"id"`
	SubcategoryID string          `json:"subcategory_id"`
	Quantity      int             `json:"quantity"`
	PriceType     PriceType       `json:"price_type"`
	Value         decimal.Decimal `json:"value"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// RuleDetail is a single rule with the denormalized names the backend embeds
// on the detail endpoint.
type RuleDetail struct {
	QuantityPriceRule
	SubcategoryName string `json:"subcategory_name"`
	CategoryName    string `json:"category_name"`
}

// SubcategoryRules is one subcategory with its rule set, as returned by the
// grouped listing.
type SubcategoryRules struct {
	Subcategory catalog.Subcategory `json:"subcategory"`
	Rules       []QuantityPriceRule `json:"rules"`
}

// ActiveRuleCount returns the number of active rules in the group.
func (g SubcategoryRules) ActiveRuleCount() int {
	count := 0
	for _, rule := range g.Rules {
		if rule.IsActive {
			count++
		}
	}
	return count
}

// RulePayload is a candidate rule as submitted from the admin screens.
// Pointer fields distinguish "absent" from zero so validation can report
// missing inputs precisely.
type RulePayload struct {
	Quantity  *float64         `json:"quantity,omitempty"`
	PriceType PriceType        `json:"price_type"`
	Value     *decimal.Decimal `json:"value,omitempty"`
}

// QuantityInt returns the quantity as an integer. Only meaningful after the
// payload has passed validation.
func (p RulePayload) QuantityInt() int {
	if p.Quantity == nil {
		return 0
	}
	return int(*p.Quantity)
}
