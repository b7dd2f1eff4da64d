package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/leafclutch/leafclutch-backend/dao/model"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func kp(k model.DiscountKind) *model.DiscountKind {
	return &k
}

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name  string
		base  decimal.Decimal
		value *decimal.Decimal
		kind  *model.DiscountKind
		want  decimal.Decimal
	}{
		{
			name:  "percentage discount",
			base:  d("100"),
			value: dp("10"),
			kind:  kp(model.DiscountPercentage),
			want:  d("90"),
		},
		{
			name:  "flat discount",
			base:  d("100"),
			value: dp("10"),
			kind:  kp(model.DiscountFlat),
			want:  d("90"),
		},
		{
			name: "no discount",
			base: d("100"),
			want: d("100"),
		},
		{
			name:  "zero discount value",
			base:  d("100"),
			value: dp("0"),
			kind:  kp(model.DiscountPercentage),
			want:  d("100"),
		},
		{
			name:  "value without kind",
			base:  d("100"),
			value: dp("10"),
			want:  d("100"),
		},
		{
			name:  "flat discount larger than base",
			base:  d("50"),
			value: dp("80"),
			kind:  kp(model.DiscountFlat),
			want:  d("-30"),
		},
		{
			name:  "fractional percentage stays exact",
			base:  d("19.99"),
			value: dp("25"),
			kind:  kp(model.DiscountPercentage),
			want:  d("14.9925"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectivePrice(tt.base, tt.value, tt.kind)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}
