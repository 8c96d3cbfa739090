package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/ImAlagar/zohra-admin-core/pkg/errors"
)

func floatPtr(v float64) *float64 { return &v }

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestValidateQuantity(t *testing.T) {
	cases := []struct {
		name     string
		quantity *float64
		wantCode pkgerrors.Code
	}{
		{name: "missing", quantity: nil, wantCode: pkgerrors.CodeInvalidQuantity},
		{name: "nonInteger", quantity: floatPtr(2.5), wantCode: pkgerrors.CodeInvalidQuantity},
		{name: "zero", quantity: floatPtr(0), wantCode: pkgerrors.CodeInvalidQuantity},
		{name: "one", quantity: floatPtr(1), wantCode: pkgerrors.CodeInvalidQuantity},
		{name: "negative", quantity: floatPtr(-3), wantCode: pkgerrors.CodeInvalidQuantity},
		{name: "minimum", quantity: floatPtr(2)},
		{name: "large", quantity: floatPtr(500)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateQuantity(tc.quantity)
			if tc.wantCode == "" {
				if err != nil {
					t.Fatalf("expected valid quantity, got %v", err)
				}
				return
			}
			if !pkgerrors.Is(err, tc.wantCode) {
				t.Fatalf("expected %s, got %v", tc.wantCode, err)
			}
		})
	}
}

func TestValidateValue(t *testing.T) {
	cases := []struct {
		name      string
		priceType PriceType
		value     *decimal.Decimal
		wantCode  pkgerrors.Code
	}{
		{name: "missing", priceType: PriceTypePercentage, value: nil, wantCode: pkgerrors.CodeMissingValue},
		{name: "negativePercentage", priceType: PriceTypePercentage, value: decPtr("-1"), wantCode: pkgerrors.CodeNegativeValue},
		{name: "negativeFixed", priceType: PriceTypeFixedAmount, value: decPtr("-0.01"), wantCode: pkgerrors.CodeNegativeValue},
		{name: "over100Percentage", priceType: PriceTypePercentage, value: decPtr("150"), wantCode: pkgerrors.CodePercentageOutOfRange},
		{name: "just over boundary", priceType: PriceTypePercentage, value: decPtr("100.01"), wantCode: pkgerrors.CodePercentageOutOfRange},
		{name: "boundary100", priceType: PriceTypePercentage, value: decPtr("100")},
		{name: "zero", priceType: PriceTypePercentage, value: decPtr("0")},
		{name: "fixedAbove100", priceType: PriceTypeFixedAmount, value: decPtr("2499.99")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateValue(tc.priceType, tc.value)
			if tc.wantCode == "" {
				if err != nil {
					t.Fatalf("expected valid value, got %v", err)
				}
				return
			}
			if !pkgerrors.Is(err, tc.wantCode) {
				t.Fatalf("expected %s, got %v", tc.wantCode, err)
			}
		})
	}
}

func TestValidateRuleFailsFast(t *testing.T) {
	// Both fields invalid: the quantity failure wins.
	err := ValidateRule(RulePayload{
		Quantity:  floatPtr(1),
		PriceType: PriceTypePercentage,
		Value:     decPtr("150"),
	})
	if !pkgerrors.Is(err, pkgerrors.CodeInvalidQuantity) {
		t.Fatalf("expected quantity failure first, got %v", err)
	}

	err = ValidateRule(RulePayload{
		Quantity:  floatPtr(2),
		PriceType: PriceTypePercentage,
		Value:     decPtr("150"),
	})
	if !pkgerrors.Is(err, pkgerrors.CodePercentageOutOfRange) {
		t.Fatalf("expected percentage failure, got %v", err)
	}

	err = ValidateRule(RulePayload{
		Quantity:  floatPtr(3),
		PriceType: PriceTypePercentage,
		Value:     decPtr("10"),
	})
	if err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestParsePriceType(t *testing.T) {
	if pt, err := ParsePriceType(" percentage "); err != nil || pt != PriceTypePercentage {
		t.Fatalf("expected PERCENTAGE, got %v %v", pt, err)
	}
	if pt, err := ParsePriceType("FIXED_AMOUNT"); err != nil || pt != PriceTypeFixedAmount {
		t.Fatalf("expected FIXED_AMOUNT, got %v %v", pt, err)
	}
	if _, err := ParsePriceType("per-unit"); err == nil {
		t.Fatal("expected error for unknown price type")
	}
}
