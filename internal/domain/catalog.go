package domain

// DefaultCatalog returns the launch miner catalog. Gold-priced entries scale
// exponentially with owned count; NGN entries are flat-priced and funded
// through audited deposits.
func DefaultCatalog() []*UpgradeDefinition {
	return []*UpgradeDefinition{
		{
			ID:             "hand-drill",
			Name:           "Hand Drill",
			BasePrice:      150,
			Currency:       CurrencyGold,
			CostMultiplier: 1.15,
			BasePower:      1,
			DailyCapacity:  500,
		},
		{
			ID:             "rock-crusher",
			Name:           "Rock Crusher",
			BasePrice:      900,
			Currency:       CurrencyGold,
			CostMultiplier: 1.18,
			BasePower:      5,
			DailyCapacity:  1500,
		},
		{
			ID:            "starter-rig",
			Name:          "Starter Rig",
			BasePrice:     5000,
			Currency:      CurrencyNGN,
			BasePower:     10,
			DailyCapacity: 4000,
		},
		{
			ID:            "pro-rig",
			Name:          "Pro Rig",
			BasePrice:     15000,
			Currency:      CurrencyNGN,
			BasePower:     35,
			DailyCapacity: 15000,
		},
		{
			ID:            "titan-rig",
			Name:          "Titan Rig",
			BasePrice:     50000,
			Currency:      CurrencyNGN,
			BasePower:     120,
			DailyCapacity: 60000,
		},
	}
}
