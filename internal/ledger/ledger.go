package ledger

import (
	"math/rand"
	"sync"

	"crestgold_backend/internal/config"
	"crestgold_backend/internal/domain"

	"github.com/benbjohnson/clock"
)

// Ledger is the single-session mining economy state: balances, owned
// upgrades, the daily capacity tracker and the geode counter. All methods
// are safe for concurrent use; every access runs the calendar-day rollover
// check first.
type Ledger struct {
	mu  sync.Mutex
	clk clock.Clock
	rng *rand.Rand
	eco config.Economy

	gold             int64
	cash             float64
	referralEarnings float64
	totalMined       int64
	clickPower       int64
	dailyMined       int64
	dailyClaimed     bool
	lastDate         string
	geodes           int64

	upgrades []*domain.UpgradeState
	byID     map[string]*domain.UpgradeState

	// GeodeReward generates the gold value of one analyzed geode. The draw
	// policy is a collaborator concern; tests override it.
	GeodeReward func(rng *rand.Rand) int64
}

// New builds a ledger over the given catalog with every owned count at zero.
func New(catalog []*domain.UpgradeDefinition, eco config.Economy, clk clock.Clock, rng *rand.Rand) *Ledger {
	l := &Ledger{
		clk:      clk,
		rng:      rng,
		eco:      eco,
		lastDate: localDate(clk),
		byID:     make(map[string]*domain.UpgradeState, len(catalog)),
	}
	for _, def := range catalog {
		st := &domain.UpgradeState{Def: def}
		l.upgrades = append(l.upgrades, st)
		l.byID[def.ID] = st
	}
	l.GeodeReward = func(rng *rand.Rand) int64 {
		span := eco.GeodeRewardMax - eco.GeodeRewardMin
		return eco.GeodeRewardMin + rng.Int63n(span+1)
	}
	return l
}

func localDate(clk clock.Clock) string {
	return clk.Now().Format("2006-01-02")
}

// rollover resets the daily counters when the process-local calendar day
// has changed since the last access. Caller must hold l.mu.
func (l *Ledger) rollover() {
	today := localDate(l.clk)
	if today != l.lastDate {
		l.dailyMined = 0
		l.dailyClaimed = false
		l.lastDate = today
	}
}

func (l *Ledger) dailyLimit() int64 {
	var limit int64
	for _, u := range l.upgrades {
		limit += u.Count * u.Def.DailyCapacity
	}
	return limit
}

func (l *Ledger) hasActiveMiners() bool {
	for _, u := range l.upgrades {
		if u.Count > 0 {
			return true
		}
	}
	return false
}

// MineResult reports the outcome of one mining click.
type MineResult struct {
	// Locked is set when no miner is owned; the click is a no-op.
	Locked bool `json:"locked"`
	// Gain is the gold actually produced, clamped to remaining capacity.
	Gain int64 `json:"gain"`
	// GeodeFound reports that the independent geode draw fired. Gold still
	// accrues; the caller shows the geode event instead of the gain text.
	GeodeFound bool `json:"geode_found"`
}

// Mine processes one mining click. It fails with ErrCapacityExceeded once
// the daily capacity is used up; with no owned miners it is a silent no-op.
func (l *Ledger) Mine() (MineResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover()

	if !l.hasActiveMiners() {
		return MineResult{Locked: true}, nil
	}

	limit := l.dailyLimit()
	if l.dailyMined >= limit {
		return MineResult{}, ErrCapacityExceeded
	}

	gain := l.clickPower
	if remaining := limit - l.dailyMined; gain > remaining {
		gain = remaining
	}

	l.gold += gain
	l.totalMined += gain
	l.dailyMined += gain

	res := MineResult{Gain: gain}
	if l.rng.Float64() < l.eco.GeodeChance {
		l.geodes++
		res.GeodeFound = true
	}
	return res, nil
}

// ClaimDailyBonus credits the flat daily bonus once per calendar day.
// The second claim of a day is a no-op and reports claimed=false.
func (l *Ledger) ClaimDailyBonus() (credited int64, claimed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover()

	if l.dailyClaimed {
		return 0, false
	}
	l.gold += l.eco.DailyBonusGold
	l.dailyClaimed = true
	return l.eco.DailyBonusGold, true
}

// AnalyzeGeode consumes one found geode and credits its reward value to
// both gold and the lifetime mined counter.
func (l *Ledger) AnalyzeGeode() (reward int64, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover()

	if l.geodes == 0 {
		return 0, ErrNoGeodesAvailable
	}
	reward = l.GeodeReward(l.rng)
	l.gold += reward
	l.totalMined += reward
	l.geodes--
	return reward, nil
}

// PurchaseWithGold buys one unit of a gold-priced upgrade at the current
// exponential cost. An unaffordable purchase is rejected without error;
// callers are expected to pre-check affordability.
func (l *Ledger) PurchaseWithGold(upgradeID string) (purchased bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover()

	st, ok := l.byID[upgradeID]
	if !ok {
		return false, ErrUnknownUpgrade
	}
	cost := st.Def.GoldCostAt(st.Count)
	if l.gold < cost {
		return false, nil
	}
	l.gold -= cost
	st.Count++
	l.clickPower += st.Def.BasePower
	return true, nil
}

// PurchaseWithCash buys one unit of an NGN-priced miner from the deposit
// balance. When cash is short it reports purchased=false so the caller can
// open a funding request instead.
func (l *Ledger) PurchaseWithCash(upgradeID string) (purchased bool, price float64, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover()

	st, ok := l.byID[upgradeID]
	if !ok {
		return false, 0, ErrUnknownUpgrade
	}
	price = st.Def.BasePrice
	if l.cash < price {
		return false, price, nil
	}
	l.cash -= price
	st.Count++
	l.clickPower += st.Def.BasePower
	return true, price, nil
}

// WithdrawFunds debits gold, and the whole referral balance when bundled,
// for a withdrawal submission. On error nothing is debited.
func (l *Ledger) WithdrawFunds(goldAmount int64, includeReferral bool) (referralNgn float64, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover()

	if goldAmount > l.gold {
		return 0, ErrInsufficientBalance
	}
	l.gold -= goldAmount
	if includeReferral {
		referralNgn = l.referralEarnings
		l.referralEarnings = 0
	}
	return referralNgn, nil
}

// Refund restores balances debited by WithdrawFunds after a decline.
func (l *Ledger) Refund(goldAmount int64, referralNgn float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover()

	l.gold += goldAmount
	l.referralEarnings += referralNgn
}

// CreditCash adds approved deposit funds to the spendable NGN balance.
func (l *Ledger) CreditCash(amount float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover()
	l.cash += amount
}

// CreditReferral adds referral commission to the referral NGN balance.
func (l *Ledger) CreditReferral(amount float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover()
	l.referralEarnings += amount
}

func (l *Ledger) Gold() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover()
	return l.gold
}

func (l *Ledger) Cash() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover()
	return l.cash
}

func (l *Ledger) ReferralEarnings() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover()
	return l.referralEarnings
}

func (l *Ledger) Geodes() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover()
	return l.geodes
}

// UpgradeView is a catalog entry projected with session-local pricing.
type UpgradeView struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Currency      domain.Currency `json:"currency"`
	Count         int64           `json:"count"`
	NextCost      float64         `json:"next_cost"`
	BasePower     int64           `json:"base_power"`
	DailyCapacity int64           `json:"daily_capacity"`
	Affordable    bool            `json:"affordable"`
}

// Snapshot is a consistent read of the whole ledger for the presentation
// layer.
type Snapshot struct {
	Gold             int64         `json:"gold"`
	GoldValueNgn     float64       `json:"gold_value_ngn"`
	Cash             float64       `json:"cash"`
	ReferralEarnings float64       `json:"referral_earnings"`
	TotalMined       int64         `json:"total_mined"`
	ClickPower       int64         `json:"click_power"`
	DailyMined       int64         `json:"daily_mined"`
	DailyLimit       int64         `json:"daily_limit"`
	DailyClaimed     bool          `json:"daily_claimed"`
	Geodes           int64         `json:"geodes"`
	MiningLocked     bool          `json:"mining_locked"`
	Upgrades         []UpgradeView `json:"upgrades"`
}

// Snapshot returns a point-in-time copy of every ledger field.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover()

	snap := Snapshot{
		Gold:             l.gold,
		GoldValueNgn:     float64(l.gold) * l.eco.GoldToNgnRate,
		Cash:             l.cash,
		ReferralEarnings: l.referralEarnings,
		TotalMined:       l.totalMined,
		ClickPower:       l.clickPower,
		DailyMined:       l.dailyMined,
		DailyLimit:       l.dailyLimit(),
		DailyClaimed:     l.dailyClaimed,
		Geodes:           l.geodes,
		MiningLocked:     !l.hasActiveMiners(),
	}
	for _, u := range l.upgrades {
		v := UpgradeView{
			ID:            u.Def.ID,
			Name:          u.Def.Name,
			Currency:      u.Def.Currency,
			Count:         u.Count,
			BasePower:     u.Def.BasePower,
			DailyCapacity: u.Def.DailyCapacity,
		}
		if u.Def.Currency == domain.CurrencyGold {
			cost := u.Def.GoldCostAt(u.Count)
			v.NextCost = float64(cost)
			v.Affordable = l.gold >= cost
		} else {
			v.NextCost = u.Def.BasePrice
			v.Affordable = l.cash >= u.Def.BasePrice
		}
		snap.Upgrades = append(snap.Upgrades, v)
	}
	return snap
}
