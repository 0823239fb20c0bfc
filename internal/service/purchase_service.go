package service

import (
	"crestgold_backend/internal/domain"
	"crestgold_backend/internal/ledger"
	"crestgold_backend/internal/session"
)

// PurchaseOutcome classifies the result of a purchase attempt.
type PurchaseOutcome string

const (
	// OutcomePurchased means the unit was paid for and deployed.
	OutcomePurchased PurchaseOutcome = "purchased"
	// OutcomeRejected means a gold purchase was unaffordable. This path is
	// deliberately silent: the UI only enables the action when affordable.
	OutcomeRejected PurchaseOutcome = "rejected"
	// OutcomeDepositRequired means an NGN purchase needs an audited funding
	// request before it can complete.
	OutcomeDepositRequired PurchaseOutcome = "deposit_required"
)

// PurchaseService executes upgrade acquisition against the session ledger
// and the catalog pricing rules.
type PurchaseService struct{}

func NewPurchaseService() *PurchaseService {
	return &PurchaseService{}
}

// Purchase buys one unit of the given upgrade.
//
// NGN-priced miners are paid from the deposit balance; when cash is short
// the caller is directed to open a funding request unless one already
// exists for this miner today (ErrDuplicateDailyDeposit). Gold-priced
// upgrades cost floor(base × multiplier^owned) and fail silently when
// unaffordable.
func (ps *PurchaseService) Purchase(s *session.Session, upgradeID string) (PurchaseOutcome, float64, error) {
	def, ok := s.Upgrade(upgradeID)
	if !ok {
		return "", 0, ledger.ErrUnknownUpgrade
	}

	if def.Currency == domain.CurrencyNGN {
		purchased, price, err := s.Ledger.PurchaseWithCash(upgradeID)
		if err != nil {
			return "", 0, err
		}
		if purchased {
			return OutcomePurchased, price, nil
		}
		if s.Book.HasDailyDepositFor(upgradeID) {
			return "", price, ledger.ErrDuplicateDailyDeposit
		}
		return OutcomeDepositRequired, price, nil
	}

	purchased, err := s.Ledger.PurchaseWithGold(upgradeID)
	if err != nil {
		return "", 0, err
	}
	if !purchased {
		return OutcomeRejected, 0, nil
	}
	return OutcomePurchased, 0, nil
}
