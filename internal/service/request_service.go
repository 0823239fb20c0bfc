package service

import (
	"strconv"
	"time"

	"crestgold_backend/internal/config"
	"crestgold_backend/internal/domain"
	"crestgold_backend/internal/ledger"
	"crestgold_backend/internal/logger"
	"crestgold_backend/internal/session"

	"github.com/benbjohnson/clock"
)

// RequestService drives the deposit and withdrawal request lifecycle on top
// of a session's request book.
type RequestService struct {
	clk clock.Clock
	eco config.Economy
}

func NewRequestService(eco config.Economy, clk clock.Clock) *RequestService {
	return &RequestService{clk: clk, eco: eco}
}

// SubmitDeposit schedules a funding request for an NGN miner. The request
// only becomes visible in the book after the settlement delay, modelling
// the audit round-trip; if the session is torn down first the deferred
// effect is discarded. The daily-duplicate rule is checked both now and at
// settlement time.
func (rs *RequestService) SubmitDeposit(s *session.Session, upgradeID, proofRef string) (settleIn time.Duration, err error) {
	def, ok := s.Upgrade(upgradeID)
	if !ok {
		return 0, ledger.ErrUnknownUpgrade
	}
	if def.Currency != domain.CurrencyNGN {
		return 0, ledger.ErrUnknownUpgrade
	}
	if s.Book.HasDailyDepositFor(upgradeID) {
		return 0, ledger.ErrDuplicateDailyDeposit
	}

	rs.clk.AfterFunc(rs.eco.SettleDelay, func() {
		if s.Closed() {
			return
		}
		if _, err := s.Book.AddDeposit(s.ID, def, proofRef); err != nil {
			logger.Warn("deposit settlement dropped", "session", s.ID, "upgrade", upgradeID, "err", err)
		}
	})

	return rs.eco.SettleDelay, nil
}

// SubmitWithdrawal parses the requested amount and records a payout
// request. A non-integer amount fails the same way as one below the
// minimum, mirroring the form input it comes from.
func (rs *RequestService) SubmitWithdrawal(s *session.Session, amountGold string, includeReferral bool, bank domain.BankDetails) (*domain.WithdrawalRequest, error) {
	amount, err := strconv.ParseInt(amountGold, 10, 64)
	if err != nil {
		return nil, ledger.ErrBelowMinimum
	}
	return s.Book.SubmitWithdrawal(s.ID, amount, includeReferral, bank)
}

// WithdrawalEligible reports whether the withdrawal form should be offered:
// the session has an approved deposit, or at least one deposit request of
// any status. Derived from the book; submission still validates regardless.
func (rs *RequestService) WithdrawalEligible(s *session.Session) bool {
	return s.Book.HasApprovedDeposit() || s.Book.HasAnyDeposit()
}
