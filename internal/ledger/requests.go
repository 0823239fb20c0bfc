package ledger

import (
	"strings"
	"sync"

	"crestgold_backend/internal/config"
	"crestgold_backend/internal/domain"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
)

// Book owns the deposit and withdrawal request collections for one session
// and applies the balance effects of their lifecycle transitions to the
// ledger. Requests are immutable once resolved.
type Book struct {
	mu  sync.Mutex
	clk clock.Clock
	eco config.Economy
	led *Ledger

	deposits    []*domain.DepositRequest
	withdrawals []*domain.WithdrawalRequest
}

// NewBook creates an empty request book bound to the session ledger.
func NewBook(led *Ledger, eco config.Economy, clk clock.Clock) *Book {
	return &Book{clk: clk, eco: eco, led: led}
}

func newRequestID() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

// HasDailyDepositFor reports whether a pending or approved deposit request
// for the given miner was already created on the current calendar day.
// One funding request per miner per day.
func (b *Book) HasDailyDepositFor(upgradeID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasDailyDepositFor(upgradeID)
}

func (b *Book) hasDailyDepositFor(upgradeID string) bool {
	today := b.clk.Now().Format("2006-01-02")
	for _, r := range b.deposits {
		if r.UpgradeID != upgradeID {
			continue
		}
		if r.Status != domain.RequestStatusPending && r.Status != domain.RequestStatusApproved {
			continue
		}
		if r.CreatedAt.Format("2006-01-02") == today {
			return true
		}
	}
	return false
}

// AddDeposit records a pending funding request snapshotting the catalog
// price. The daily-duplicate rule is enforced again here because creation
// is deferred behind the settlement delay.
func (b *Book) AddDeposit(userID string, def *domain.UpgradeDefinition, proofRef string) (*domain.DepositRequest, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.hasDailyDepositFor(def.ID) {
		return nil, ErrDuplicateDailyDeposit
	}

	req := &domain.DepositRequest{
		ID:        newRequestID(),
		UserID:    userID,
		UpgradeID: def.ID,
		Name:      def.Name,
		AmountNgn: def.BasePrice,
		ProofRef:  proofRef,
		CreatedAt: b.clk.Now(),
		Status:    domain.RequestStatusPending,
	}
	b.deposits = append(b.deposits, req)
	return req, nil
}

// ApproveDeposit credits the deposit amount to cash and, when this is the
// user's first approved deposit ever, pays the one-time referral commission.
func (b *Book) ApproveDeposit(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	req, err := b.findDeposit(id)
	if err != nil {
		return err
	}

	if !b.hasApprovedDepositFor(req.UserID) {
		b.led.CreditReferral(req.AmountNgn * b.eco.ReferralCommission)
	}
	b.led.CreditCash(req.AmountNgn)
	req.Status = domain.RequestStatusApproved
	return nil
}

// DeclineDeposit resolves a pending deposit without any balance effect;
// funds were never debited at request time.
func (b *Book) DeclineDeposit(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	req, err := b.findDeposit(id)
	if err != nil {
		return err
	}
	req.Status = domain.RequestStatusDeclined
	return nil
}

func (b *Book) findDeposit(id string) (*domain.DepositRequest, error) {
	for _, r := range b.deposits {
		if r.ID == id {
			if r.Status != domain.RequestStatusPending {
				return nil, ErrRequestResolved
			}
			return r, nil
		}
	}
	return nil, ErrRequestNotFound
}

func (b *Book) hasApprovedDepositFor(userID string) bool {
	for _, r := range b.deposits {
		if r.UserID == userID && r.Status == domain.RequestStatusApproved {
			return true
		}
	}
	return false
}

// SubmitWithdrawal validates and records a payout request. Validation
// short-circuits in order: minimum amount, gold balance, bank details.
// On success gold (and the bundled referral balance) is debited immediately.
func (b *Book) SubmitWithdrawal(userID string, goldAmount int64, includeReferral bool, bank domain.BankDetails) (*domain.WithdrawalRequest, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if goldAmount < b.eco.MinWithdrawalGold {
		return nil, ErrBelowMinimum
	}
	if goldAmount > b.led.Gold() {
		return nil, ErrInsufficientBalance
	}
	if bank.BankName == "" || bank.AccountNumber == "" || bank.AccountName == "" {
		return nil, ErrIncompleteBankDetails
	}

	referralNgn, err := b.led.WithdrawFunds(goldAmount, includeReferral)
	if err != nil {
		return nil, err
	}

	req := &domain.WithdrawalRequest{
		ID:                newRequestID(),
		UserID:            userID,
		AmountGold:        goldAmount,
		AmountReferralNgn: referralNgn,
		TotalNgnValue:     float64(goldAmount)*b.eco.GoldToNgnRate + referralNgn,
		BankDetails:       bank,
		CreatedAt:         b.clk.Now(),
		Status:            domain.RequestStatusPending,
	}
	b.withdrawals = append(b.withdrawals, req)
	return req, nil
}

// ApproveWithdrawal resolves a pending payout. Balances were already
// debited at submission, so approval only flips the status.
func (b *Book) ApproveWithdrawal(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	req, err := b.findWithdrawal(id)
	if err != nil {
		return err
	}
	req.Status = domain.RequestStatusApproved
	return nil
}

// DeclineWithdrawal refunds exactly what the submission debited, then
// resolves the request.
func (b *Book) DeclineWithdrawal(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	req, err := b.findWithdrawal(id)
	if err != nil {
		return err
	}
	b.led.Refund(req.AmountGold, req.AmountReferralNgn)
	req.Status = domain.RequestStatusDeclined
	return nil
}

func (b *Book) findWithdrawal(id string) (*domain.WithdrawalRequest, error) {
	for _, r := range b.withdrawals {
		if r.ID == id {
			if r.Status != domain.RequestStatusPending {
				return nil, ErrRequestResolved
			}
			return r, nil
		}
	}
	return nil, ErrRequestNotFound
}

// HasApprovedDeposit reports whether any deposit was ever approved for the
// session. Withdrawal eligibility is derived from the book instead of a
// stored flag so it cannot drift from the request history.
func (b *Book) HasApprovedDeposit() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.deposits {
		if r.Status == domain.RequestStatusApproved {
			return true
		}
	}
	return false
}

// HasAnyDeposit reports whether any deposit request exists, in any status.
func (b *Book) HasAnyDeposit() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.deposits) > 0
}

// Deposits returns the deposit history, newest first.
func (b *Book) Deposits() []*domain.DepositRequest {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*domain.DepositRequest, len(b.deposits))
	for i, r := range b.deposits {
		cp := *r
		out[len(b.deposits)-1-i] = &cp
	}
	return out
}

// Withdrawals returns the withdrawal history, newest first.
func (b *Book) Withdrawals() []*domain.WithdrawalRequest {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*domain.WithdrawalRequest, len(b.withdrawals))
	for i, r := range b.withdrawals {
		cp := *r
		out[len(b.withdrawals)-1-i] = &cp
	}
	return out
}

// PendingCounts reports open deposit and withdrawal requests for the
// operator dashboard.
func (b *Book) PendingCounts() (deposits, withdrawals int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.deposits {
		if r.Status == domain.RequestStatusPending {
			deposits++
		}
	}
	for _, r := range b.withdrawals {
		if r.Status == domain.RequestStatusPending {
			withdrawals++
		}
	}
	return deposits, withdrawals
}
