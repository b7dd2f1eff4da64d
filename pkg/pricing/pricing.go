// Package pricing computes the effective price of a training from its base
// price and an optional discount. Prices are exact decimals end to end, the
// database column is decimal(10,2).
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/leafclutch/leafclutch-backend/dao/model"
)

var hundred = decimal.NewFromInt(100)

// EffectivePrice applies the configured discount to base. A missing or zero
// discount value, or a missing kind, leaves base unchanged. The result is not
// clamped: a discount larger than base yields a negative price.
func EffectivePrice(base decimal.Decimal, discountValue *decimal.Decimal, discountKind *model.DiscountKind) decimal.Decimal {
	if discountValue == nil || discountValue.IsZero() || discountKind == nil {
		return base
	}
	if *discountKind == model.DiscountPercentage {
		return base.Sub(base.Mul(*discountValue).Div(hundred))
	}
	return base.Sub(*discountValue)
}
