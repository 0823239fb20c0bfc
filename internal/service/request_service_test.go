package service

import (
	"testing"
	"time"

	"crestgold_backend/internal/config"
	"crestgold_backend/internal/domain"
	"crestgold_backend/internal/ledger"
	"crestgold_backend/internal/session"

	"github.com/benbjohnson/clock"
)

func newTestSession(t *testing.T) (*session.Session, *RequestService, *clock.Mock, config.Economy) {
	t.Helper()
	mock := clock.NewMock()
	eco := config.DefaultEconomy()
	eco.GeodeChance = 0
	s := session.New("USER_10001", eco, mock, 1)
	return s, NewRequestService(eco, mock), mock, eco
}

func TestSubmitDepositSettlesAfterDelay(t *testing.T) {
	s, rs, mock, eco := newTestSession(t)

	settleIn, err := rs.SubmitDeposit(s, "starter-rig", "proof_a")
	if err != nil {
		t.Fatalf("SubmitDeposit() error = %v", err)
	}
	if settleIn != eco.SettleDelay {
		t.Fatalf("settleIn = %v; want %v", settleIn, eco.SettleDelay)
	}

	// nothing visible until the settlement delay elapses
	mock.Add(eco.SettleDelay - 100*time.Millisecond)
	if s.Book.HasAnyDeposit() {
		t.Fatal("deposit visible before settlement")
	}

	mock.Add(100 * time.Millisecond)
	deps := s.Book.Deposits()
	if len(deps) != 1 {
		t.Fatalf("deposits = %d; want 1", len(deps))
	}
	got := deps[0]
	if got.UpgradeID != "starter-rig" || got.ProofRef != "proof_a" || got.Status != domain.RequestStatusPending {
		t.Fatalf("settled deposit = %+v", got)
	}
	if got.AmountNgn != 5000 {
		t.Fatalf("AmountNgn = %v; want catalog price 5000", got.AmountNgn)
	}
}

func TestSubmitDepositRejectsNonNgnMiner(t *testing.T) {
	s, rs, _, _ := newTestSession(t)

	if _, err := rs.SubmitDeposit(s, "hand-drill", "proof_a"); err != ledger.ErrUnknownUpgrade {
		t.Fatalf("gold miner deposit error = %v; want ErrUnknownUpgrade", err)
	}
	if _, err := rs.SubmitDeposit(s, "no-such-rig", "proof_a"); err != ledger.ErrUnknownUpgrade {
		t.Fatalf("unknown miner deposit error = %v; want ErrUnknownUpgrade", err)
	}
}

func TestSubmitDepositDuplicatePerDay(t *testing.T) {
	s, rs, mock, eco := newTestSession(t)

	if _, err := rs.SubmitDeposit(s, "starter-rig", "proof_a"); err != nil {
		t.Fatalf("SubmitDeposit() error = %v", err)
	}
	mock.Add(eco.SettleDelay)

	if _, err := rs.SubmitDeposit(s, "starter-rig", "proof_b"); err != ledger.ErrDuplicateDailyDeposit {
		t.Fatalf("same-day resubmit error = %v; want ErrDuplicateDailyDeposit", err)
	}

	// a different miner is fine the same day
	if _, err := rs.SubmitDeposit(s, "pro-rig", "proof_c"); err != nil {
		t.Fatalf("other-miner deposit error = %v", err)
	}

	mock.Add(24 * time.Hour)
	if _, err := rs.SubmitDeposit(s, "starter-rig", "proof_d"); err != nil {
		t.Fatalf("next-day resubmit error = %v", err)
	}
}

func TestSubmitDepositRaceSettlesOnce(t *testing.T) {
	s, rs, mock, eco := newTestSession(t)

	// both pass the pre-check while the book is still empty; the settlement
	// re-check drops the second one
	if _, err := rs.SubmitDeposit(s, "starter-rig", "proof_a"); err != nil {
		t.Fatalf("first SubmitDeposit() error = %v", err)
	}
	if _, err := rs.SubmitDeposit(s, "starter-rig", "proof_b"); err != nil {
		t.Fatalf("second SubmitDeposit() error = %v", err)
	}

	mock.Add(eco.SettleDelay)
	if got := len(s.Book.Deposits()); got != 1 {
		t.Fatalf("settled deposits = %d; want 1", got)
	}
}

func TestSubmitDepositDroppedOnClose(t *testing.T) {
	s, rs, mock, eco := newTestSession(t)

	if _, err := rs.SubmitDeposit(s, "starter-rig", "proof_a"); err != nil {
		t.Fatalf("SubmitDeposit() error = %v", err)
	}
	s.Close()

	mock.Add(eco.SettleDelay)
	if s.Book.HasAnyDeposit() {
		t.Fatal("deposit settled into a closed session")
	}
}

func TestSubmitWithdrawalAmountParsing(t *testing.T) {
	s, rs, _, _ := newTestSession(t)

	for _, raw := range []string{"", "abc", "12.5", "1e4"} {
		if _, err := rs.SubmitWithdrawal(s, raw, false, testBank()); err != ledger.ErrBelowMinimum {
			t.Fatalf("amount %q error = %v; want ErrBelowMinimum", raw, err)
		}
	}

	// a well-formed amount reaches the book and fails its balance check
	if _, err := rs.SubmitWithdrawal(s, "5000", false, testBank()); err != ledger.ErrInsufficientBalance {
		t.Fatalf("amount 5000 error = %v; want ErrInsufficientBalance", err)
	}
}

func TestWithdrawalEligible(t *testing.T) {
	s, rs, _, _ := newTestSession(t)

	if rs.WithdrawalEligible(s) {
		t.Fatal("fresh session reported eligible")
	}

	def, _ := s.Upgrade("starter-rig")
	req, err := s.Book.AddDeposit(s.ID, def, "proof_a")
	if err != nil {
		t.Fatalf("AddDeposit() error = %v", err)
	}
	if !rs.WithdrawalEligible(s) {
		t.Fatal("pending deposit should grant eligibility")
	}

	// declined history still counts as having engaged with deposits
	if err := s.Book.DeclineDeposit(req.ID); err != nil {
		t.Fatalf("DeclineDeposit() error = %v", err)
	}
	if !rs.WithdrawalEligible(s) {
		t.Fatal("declined deposit should keep eligibility")
	}
}

func testBank() domain.BankDetails {
	return domain.BankDetails{BankName: "First Bank", AccountNumber: "0123456789", AccountName: "A Tester"}
}
