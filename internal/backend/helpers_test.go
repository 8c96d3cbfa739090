package backend

import (
	"testing"

	"github.com/shopspring/decimal"
)

func decimalFromString(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", value, err)
	}
	return d
}
