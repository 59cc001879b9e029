package fees

import (
	"github.com/shopspring/decimal"
)

// Schedule holds the tiered buyer's premium rates and the fixed documentation
// fee. Values come from configuration; the zero value is not usable.
type Schedule struct {
	Tier1Cap         int64 // premium charged at Tier1Rate up to this price
	Tier2Cap         int64 // then at Tier2Rate up to this price, Tier3Rate above
	Tier1Rate        decimal.Decimal
	Tier2Rate        decimal.Decimal
	Tier3Rate        decimal.Decimal
	DocumentationFee int64
}

// DefaultSchedule returns the standard fee schedule: 10% up to 250k, 5% up to
// 1M, 2% above, plus a 5,000 documentation fee.
func DefaultSchedule() Schedule {
	return Schedule{
		Tier1Cap:         250_000,
		Tier2Cap:         1_000_000,
		Tier1Rate:        decimal.NewFromFloat(0.10),
		Tier2Rate:        decimal.NewFromFloat(0.05),
		Tier3Rate:        decimal.NewFromFloat(0.02),
		DocumentationFee: 5_000,
	}
}

// Quote is the fee breakdown for a given hammer price.
type Quote struct {
	Price            int64 `json:"price"`
	BuyersPremium    int64 `json:"buyers_premium"`
	DocumentationFee int64 `json:"documentation_fee"`
	TotalFees        int64 `json:"total_fees"`
	TotalWithFees    int64 `json:"total_with_fees"`
}

// Calc maps a price to its fee breakdown. Pure function; negative prices are
// clamped to 0.
func (s Schedule) Calc(price int64) Quote {
	if price < 0 {
		price = 0
	}

	premium := decimal.Zero
	remaining := decimal.NewFromInt(price)

	tier1 := decimal.NewFromInt(s.Tier1Cap)
	tier2 := decimal.NewFromInt(s.Tier2Cap - s.Tier1Cap)

	portion := decimal.Min(remaining, tier1)
	premium = premium.Add(portion.Mul(s.Tier1Rate))
	remaining = remaining.Sub(portion)

	portion = decimal.Min(remaining, tier2)
	premium = premium.Add(portion.Mul(s.Tier2Rate))
	remaining = remaining.Sub(portion)

	premium = premium.Add(remaining.Mul(s.Tier3Rate))

	buyersPremium := premium.Round(0).IntPart()
	totalFees := buyersPremium + s.DocumentationFee

	return Quote{
		Price:            price,
		BuyersPremium:    buyersPremium,
		DocumentationFee: s.DocumentationFee,
		TotalFees:        totalFees,
		TotalWithFees:    price + totalFees,
	}
}
