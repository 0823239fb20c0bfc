package domain

import "time"

// RequestStatus is the lifecycle state of an operator-audited request.
// Requests are immutable once resolved.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusDeclined RequestStatus = "declined"
)

// DepositRequest asserts that the user paid an NGN amount out of band to
// fund a miner. Funds are only credited when an operator approves it.
type DepositRequest struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	UpgradeID string        `json:"upgrade_id"`
	Name      string        `json:"upgrade_name"`
	AmountNgn float64       `json:"amount_ngn"`
	ProofRef  string        `json:"proof_ref"`
	CreatedAt time.Time     `json:"created_at"`
	Status    RequestStatus `json:"status"`
}

// BankDetails is the payout destination snapshotted into a withdrawal.
type BankDetails struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

// WithdrawalRequest asks the operator to pay out gold (and optionally the
// bundled referral balance) in NGN. Balances are debited at submission;
// a decline refunds exactly what was taken.
type WithdrawalRequest struct {
	ID                string        `json:"id"`
	UserID            string        `json:"user_id"`
	AmountGold        int64         `json:"amount_gold"`
	AmountReferralNgn float64       `json:"amount_referral_ngn"`
	TotalNgnValue     float64       `json:"total_ngn_value"`
	BankDetails       BankDetails   `json:"bank_details"`
	CreatedAt         time.Time     `json:"created_at"`
	Status            RequestStatus `json:"status"`
}
