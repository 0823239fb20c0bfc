package ledger

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"crestgold_backend/internal/domain"

	"github.com/benbjohnson/clock"
)

func newTestBook(t *testing.T) (*Book, *Ledger, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	eco := testEconomy()
	l := New(testCatalog(), eco, mock, rand.New(rand.NewSource(1)))
	return NewBook(l, eco, mock), l, mock
}

func testBank() domain.BankDetails {
	return domain.BankDetails{BankName: "First Bank", AccountNumber: "0123456789", AccountName: "A Tester"}
}

func approxEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestDepositDuplicatePerDay(t *testing.T) {
	b, l, mock := newTestBook(t)
	rig := l.byID["rig"].Def

	if _, err := b.AddDeposit("USER_10001", rig, "proof_a"); err != nil {
		t.Fatalf("AddDeposit() error = %v", err)
	}
	if _, err := b.AddDeposit("USER_10001", rig, "proof_b"); err != ErrDuplicateDailyDeposit {
		t.Fatalf("second same-day AddDeposit() error = %v; want ErrDuplicateDailyDeposit", err)
	}

	mock.Add(24 * time.Hour)
	if _, err := b.AddDeposit("USER_10001", rig, "proof_c"); err != nil {
		t.Fatalf("next-day AddDeposit() error = %v; want nil", err)
	}
}

func TestDepositDuplicateIgnoresDeclined(t *testing.T) {
	b, l, _ := newTestBook(t)
	rig := l.byID["rig"].Def

	req, err := b.AddDeposit("USER_10001", rig, "proof_a")
	if err != nil {
		t.Fatalf("AddDeposit() error = %v", err)
	}
	if err := b.DeclineDeposit(req.ID); err != nil {
		t.Fatalf("DeclineDeposit() error = %v", err)
	}

	// only pending/approved requests block a retry
	if _, err := b.AddDeposit("USER_10001", rig, "proof_b"); err != nil {
		t.Fatalf("AddDeposit() after decline error = %v; want nil", err)
	}
}

func TestApproveDepositPaysReferralOnce(t *testing.T) {
	b, l, mock := newTestBook(t)
	rig := l.byID["rig"].Def // 5000 NGN

	first, err := b.AddDeposit("USER_10001", rig, "proof_a")
	if err != nil {
		t.Fatalf("AddDeposit() error = %v", err)
	}
	if err := b.ApproveDeposit(first.ID); err != nil {
		t.Fatalf("ApproveDeposit() error = %v", err)
	}
	if l.Cash() != 5000 {
		t.Fatalf("cash = %v; want 5000", l.Cash())
	}
	if !approxEq(l.ReferralEarnings(), 500) {
		t.Fatalf("referral = %v; want 500 (10%% of first deposit)", l.ReferralEarnings())
	}

	mock.Add(24 * time.Hour)
	second, err := b.AddDeposit("USER_10001", rig, "proof_b")
	if err != nil {
		t.Fatalf("AddDeposit() error = %v", err)
	}
	if err := b.ApproveDeposit(second.ID); err != nil {
		t.Fatalf("ApproveDeposit() error = %v", err)
	}
	if l.Cash() != 10000 {
		t.Fatalf("cash = %v; want 10000", l.Cash())
	}
	if !approxEq(l.ReferralEarnings(), 500) {
		t.Fatalf("referral = %v; want unchanged 500 after second approval", l.ReferralEarnings())
	}
}

func TestDeclineDepositNoBalanceEffect(t *testing.T) {
	b, l, _ := newTestBook(t)
	rig := l.byID["rig"].Def

	req, _ := b.AddDeposit("USER_10001", rig, "proof_a")
	if err := b.DeclineDeposit(req.ID); err != nil {
		t.Fatalf("DeclineDeposit() error = %v", err)
	}
	if l.Cash() != 0 || l.ReferralEarnings() != 0 {
		t.Fatalf("decline touched balances: cash=%v referral=%v", l.Cash(), l.ReferralEarnings())
	}
}

func TestResolvedRequestsAreImmutable(t *testing.T) {
	b, l, _ := newTestBook(t)
	rig := l.byID["rig"].Def

	req, _ := b.AddDeposit("USER_10001", rig, "proof_a")
	if err := b.ApproveDeposit(req.ID); err != nil {
		t.Fatalf("ApproveDeposit() error = %v", err)
	}

	if err := b.ApproveDeposit(req.ID); err != ErrRequestResolved {
		t.Fatalf("re-approve error = %v; want ErrRequestResolved", err)
	}
	if err := b.DeclineDeposit(req.ID); err != ErrRequestResolved {
		t.Fatalf("decline after approve error = %v; want ErrRequestResolved", err)
	}
	if l.Cash() != 5000 {
		t.Fatalf("cash = %v; want single credit of 5000", l.Cash())
	}

	if err := b.ApproveDeposit("NOPE1234"); err != ErrRequestNotFound {
		t.Fatalf("unknown id error = %v; want ErrRequestNotFound", err)
	}
}

func TestSubmitWithdrawalValidationOrder(t *testing.T) {
	b, l, _ := newTestBook(t)
	l.gold = 6000

	cases := []struct {
		name    string
		amount  int64
		bank    domain.BankDetails
		wantErr error
	}{
		{"below minimum", 4999, testBank(), ErrBelowMinimum},
		{"minimum beats balance check", 100, domain.BankDetails{}, ErrBelowMinimum},
		{"insufficient balance", 9000, testBank(), ErrInsufficientBalance},
		{"balance beats bank check", 9000, domain.BankDetails{}, ErrInsufficientBalance},
		{"missing bank name", 5000, domain.BankDetails{AccountNumber: "01", AccountName: "x"}, ErrIncompleteBankDetails},
		{"missing account number", 5000, domain.BankDetails{BankName: "b", AccountName: "x"}, ErrIncompleteBankDetails},
	}
	for _, tc := range cases {
		if _, err := b.SubmitWithdrawal("USER_10001", tc.amount, false, tc.bank); err != tc.wantErr {
			t.Fatalf("%s: err = %v; want %v", tc.name, err, tc.wantErr)
		}
	}
	if l.Gold() != 6000 {
		t.Fatalf("rejected submissions debited gold: %d", l.Gold())
	}
}

func TestSubmitWithdrawalDebitsAndValues(t *testing.T) {
	b, l, _ := newTestBook(t)
	l.gold = 6000
	l.referralEarnings = 250

	req, err := b.SubmitWithdrawal("USER_10001", 5000, true, testBank())
	if err != nil {
		t.Fatalf("SubmitWithdrawal() error = %v", err)
	}
	if req.AmountGold != 5000 || req.AmountReferralNgn != 250 {
		t.Fatalf("request = %+v; want gold 5000, referral 250", req)
	}
	// 5000 gold * 0.28 + 250 referral
	if !approxEq(req.TotalNgnValue, 1650) {
		t.Fatalf("TotalNgnValue = %v; want 1650", req.TotalNgnValue)
	}
	if l.Gold() != 1000 || l.ReferralEarnings() != 0 {
		t.Fatalf("after submit: gold=%d referral=%v; want 1000, 0", l.Gold(), l.ReferralEarnings())
	}
}

func TestWithdrawalLifecycle(t *testing.T) {
	b, l, _ := newTestBook(t)
	l.gold = 12000
	l.referralEarnings = 100

	declined, err := b.SubmitWithdrawal("USER_10001", 5000, true, testBank())
	if err != nil {
		t.Fatalf("SubmitWithdrawal() error = %v", err)
	}
	if err := b.DeclineWithdrawal(declined.ID); err != nil {
		t.Fatalf("DeclineWithdrawal() error = %v", err)
	}
	// decline restores exactly what submission took
	if l.Gold() != 12000 || l.ReferralEarnings() != 100 {
		t.Fatalf("after decline: gold=%d referral=%v; want 12000, 100", l.Gold(), l.ReferralEarnings())
	}

	approved, err := b.SubmitWithdrawal("USER_10001", 5000, false, testBank())
	if err != nil {
		t.Fatalf("SubmitWithdrawal() error = %v", err)
	}
	if err := b.ApproveWithdrawal(approved.ID); err != nil {
		t.Fatalf("ApproveWithdrawal() error = %v", err)
	}
	// approval is status-only; the debit already happened
	if l.Gold() != 7000 || l.ReferralEarnings() != 100 {
		t.Fatalf("after approve: gold=%d referral=%v; want 7000, 100", l.Gold(), l.ReferralEarnings())
	}

	if err := b.ApproveWithdrawal(approved.ID); err != ErrRequestResolved {
		t.Fatalf("re-approve error = %v; want ErrRequestResolved", err)
	}
	if err := b.DeclineWithdrawal(declined.ID); err != ErrRequestResolved {
		t.Fatalf("re-decline error = %v; want ErrRequestResolved", err)
	}
}

func TestEligibilityAndHistory(t *testing.T) {
	b, l, _ := newTestBook(t)
	rig := l.byID["rig"].Def

	if b.HasAnyDeposit() || b.HasApprovedDeposit() {
		t.Fatal("fresh book reports deposits")
	}

	req, _ := b.AddDeposit("USER_10001", rig, "proof_a")
	if !b.HasAnyDeposit() || b.HasApprovedDeposit() {
		t.Fatal("pending deposit eligibility mismatch")
	}

	if err := b.ApproveDeposit(req.ID); err != nil {
		t.Fatalf("ApproveDeposit() error = %v", err)
	}
	if !b.HasApprovedDeposit() {
		t.Fatal("approved deposit not reported")
	}

	l.gold = 6000
	if _, err := b.SubmitWithdrawal("USER_10001", 5000, false, testBank()); err != nil {
		t.Fatalf("SubmitWithdrawal() error = %v", err)
	}

	deps, wds := b.Deposits(), b.Withdrawals()
	if len(deps) != 1 || len(wds) != 1 {
		t.Fatalf("history sizes = %d, %d; want 1, 1", len(deps), len(wds))
	}
	// history returns copies
	deps[0].Status = domain.RequestStatusDeclined
	if b.Deposits()[0].Status != domain.RequestStatusApproved {
		t.Fatal("history exposed internal request state")
	}

	pd, pw := b.PendingCounts()
	if pd != 0 || pw != 1 {
		t.Fatalf("PendingCounts() = %d, %d; want 0, 1", pd, pw)
	}
}
