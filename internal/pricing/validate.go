package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/ImAlagar/zohra-admin-core/pkg/errors"
)

// MinRuleQuantity is the smallest purchase count a rule may require. A rule
// for a single unit would just be the base price.
const MinRuleQuantity = 2

var maxPercentage = decimal.NewFromInt(100)

// ValidateQuantity rejects a missing, non-integer, or too-small quantity.
func ValidateQuantity(quantity *float64) error {
	if quantity == nil {
		return pkgerrors.New(pkgerrors.CodeInvalidQuantity, "quantity is required")
	}
	if *quantity != math.Trunc(*quantity) {
		return pkgerrors.New(pkgerrors.CodeInvalidQuantity, "quantity must be a whole number").
			WithDetails(map[string]any{"quantity": *quantity})
	}
	if *quantity < MinRuleQuantity {
		return pkgerrors.New(pkgerrors.CodeInvalidQuantity, "quantity must be at least 2").
			WithDetails(map[string]any{"quantity": *quantity})
	}
	return nil
}

// ValidateValue checks the value against the bound implied by the price type.
func ValidateValue(priceType PriceType, value *decimal.Decimal) error {
	if value == nil {
		return pkgerrors.New(pkgerrors.CodeMissingValue, "value is required")
	}
	if value.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeNegativeValue, "value cannot be negative").
			WithDetails(map[string]any{"value": value.String()})
	}
	if priceType == PriceTypePercentage && value.GreaterThan(maxPercentage) {
		return pkgerrors.New(pkgerrors.CodePercentageOutOfRange, "percentage cannot exceed 100").
			WithDetails(map[string]any{"value": value.String()})
	}
	return nil
}

// ValidateRule composes the field checks, fail-fast: the first failing kind is
// returned and nothing is accumulated. No I/O happens here.
func ValidateRule(payload RulePayload) error {
	if err := ValidateQuantity(payload.Quantity); err != nil {
		return err
	}
	if err := ValidateValue(payload.PriceType, payload.Value); err != nil {
		return err
	}
	return nil
}
