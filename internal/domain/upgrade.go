package domain

import "math"

// Currency a catalog entry is priced in.
type Currency string

const (
	CurrencyGold Currency = "GOLD"
	CurrencyNGN  Currency = "NGN"
)

// UpgradeDefinition is an immutable catalog entry for a purchasable miner.
type UpgradeDefinition struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	BasePrice      float64  `json:"base_price"`
	Currency       Currency `json:"currency"`
	CostMultiplier float64  `json:"cost_multiplier"` // gold-priced entries only
	BasePower      int64    `json:"base_power"`
	DailyCapacity  int64    `json:"daily_capacity"` // per owned unit
}

// GoldCostAt returns the gold cost of the next unit when count units are
// already owned: floor(base * multiplier^count). NGN entries have a flat
// price regardless of count.
func (d *UpgradeDefinition) GoldCostAt(count int64) int64 {
	return int64(math.Floor(d.BasePrice * math.Pow(d.CostMultiplier, float64(count))))
}

// UpgradeState pairs a catalog entry with the number of units owned.
// Count only ever grows; there is no sell path.
type UpgradeState struct {
	Def   *UpgradeDefinition `json:"def"`
	Count int64              `json:"count"`
}
